// SPDX-License-Identifier: MIT

// Package diag implements the diagonal matrix container.
//
// An Array is logically an R x C matrix whose only stored elements are the
// positions (i,i) for i < min(R,C). Reads off the diagonal yield zero; writes
// off the diagonal fail with ErrInvalidAssignment. Dims always reports the
// full logical R x C shape even though the backing store is a single slice of
// length min(R,C).
//
// Array owns its store directly and has no relationship to array.Dense; the
// conversions ToDense, FromVector and FromDense cross between the two.
//
// Example:
//
//	d, _ := diag.FromDiagonal([]float64{1, 2, 3})
//	v, _ := d.At(1, 1) // 2
//	_, _ = d.At(0, 1)  // 0
//	err := d.Set(0, 1, 5)
//	errors.Is(err, diag.ErrInvalidAssignment) // true
package diag
