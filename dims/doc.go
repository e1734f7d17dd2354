// SPDX-License-Identifier: MIT

// Package dims provides dimension vectors and the index arithmetic shared by
// every array container in ndarith.
//
// The package provides:
//
//   - Vector, an ordered list of non-negative sizes. A Vector always has at
//     least two entries; trailing size-1 dimensions beyond the second are
//     dropped on construction, so 2x3x1 and 2x3 describe the same shape.
//   - Column-major (first dimension fastest) linear index computation with
//     bounds checking (ComputeIndex, LinearIndex, Ind2Sub).
//   - An odometer (IncrementIndex) that drives generic N-dimensional loops.
//   - Structural predicates (IsScalar, IsVector, VectorEquivalent).
//   - The shape-related error kinds used by the kernel layer: ErrNonconformant,
//     ErrDimensionMismatch and ErrIndexOutOfBounds (see errors.go).
//
// All functions are pure and allocate at most one small slice.
package dims
