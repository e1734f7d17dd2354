// SPDX-License-Identifier: MIT

// Package diag - Array: logical R x C matrix backed by its diagonal only.
//
// Contracts:
//   - len(data) == min(rows, cols) at all times.
//   - At/Set are bounds-checked against the logical shape.
//   - Set with r != c fails with ErrInvalidAssignment and leaves the array untouched.
//
// Complexity quicksheet:
//   - At/Set/Elem: O(1); Resize/Clone/Transpose/Diag: O(min(R,C));
//     ToDense: O(R*C).

package diag

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
)

// Elem is the set of element types a diagonal matrix may hold.
type Elem interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Array is a diagonal matrix.
type Array[T Elem] struct {
	rows, cols int
	data       []T
}

// New returns a rows x cols diagonal matrix with a zero diagonal.
// Errors: dims.ErrBadShape for negative sizes.
func New[T Elem](rows, cols int) (*Array[T], error) {
	if rows < 0 || cols < 0 {
		return nil, diagErrorf("New", fmt.Errorf("%dx%d: %w", rows, cols, dims.ErrBadShape))
	}

	return &Array[T]{rows: rows, cols: cols, data: make([]T, min(rows, cols))}, nil
}

// NewFilled returns a rows x cols diagonal matrix whose diagonal is v.
func NewFilled[T Elem](rows, cols int, v T) (*Array[T], error) {
	a, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = v
	}

	return a, nil
}

// FromDiagonal returns a square diagonal matrix of side len(values) holding a
// copy of values.
func FromDiagonal[T Elem](values []T) *Array[T] {
	n := len(values)
	buf := make([]T, n)
	copy(buf, values)

	return &Array[T]{rows: n, cols: n, data: buf}
}

// FromVector reinterprets a row or column vector as the diagonal of a square
// matrix of side numel(v).
// Errors: ErrNotVector when v is not vector-shaped.
func FromVector[T Elem](v *array.Dense[T]) (*Array[T], error) {
	if !dims.IsVector(v.Dims()) {
		return nil, diagErrorf("FromVector", fmt.Errorf("shape %s: %w", v.Dims(), ErrNotVector))
	}

	return FromDiagonal(v.Data()), nil
}

// FromDense converts a 2-D matrix to a diagonal matrix of the same shape.
// MAIN DESCRIPTION:
//   - The source must be a full matrix whose off-diagonal entries are all
//     zero; the main diagonal is copied.
//
// Errors:
//   - ErrNotDiagonal for a nonzero off-diagonal entry or an N-d (N>2) source.
//
// Complexity: O(R*C).
func FromDense[T Elem](m *array.Dense[T]) (*Array[T], error) {
	d := m.Dims()
	if !dims.IsMatrix(d) {
		return nil, diagErrorf("FromDense", fmt.Errorf("shape %s: %w", d, ErrNotDiagonal))
	}
	r, c := d[0], d[1]
	var zero T
	out := &Array[T]{rows: r, cols: c, data: make([]T, min(r, c))}
	src := m.Data()
	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			v := src[i+j*r]
			if i == j {
				out.data[i] = v
				continue
			}
			if v != zero {
				return nil, diagErrorf("FromDense",
					fmt.Errorf("entry (%d,%d) is %v: %w", i, j, v, ErrNotDiagonal))
			}
		}
	}

	return out, nil
}

// Dims returns the logical shape rows x cols.
func (a *Array[T]) Dims() dims.Vector { return dims.New(a.rows, a.cols) }

// Rows returns the logical row count.
func (a *Array[T]) Rows() int { return a.rows }

// Cols returns the logical column count.
func (a *Array[T]) Cols() int { return a.cols }

// Len returns the length of the diagonal store, min(rows, cols).
func (a *Array[T]) Len() int { return len(a.data) }

// Numel returns the logical element count rows*cols.
func (a *Array[T]) Numel() int { return a.rows * a.cols }

// Data exposes the diagonal store. The slice aliases the array.
func (a *Array[T]) Data() []T { return a.data }

// checkBounds returns an IndexError for (r,c) outside the logical shape.
func (a *Array[T]) checkBounds(r, c int) error {
	if r < 0 || r >= a.rows {
		return &dims.IndexError{Pos: 0, NDims: 2, Index: r, Extent: a.rows, Dims: a.Dims()}
	}
	if c < 0 || c >= a.cols {
		return &dims.IndexError{Pos: 1, NDims: 2, Index: c, Extent: a.cols, Dims: a.Dims()}
	}

	return nil
}

// At returns the element at (r,c): the stored value on the diagonal, zero
// elsewhere.
// Errors: *dims.IndexError when (r,c) is outside the logical shape.
func (a *Array[T]) At(r, c int) (T, error) {
	if err := a.checkBounds(r, c); err != nil {
		var zero T
		return zero, diagErrorf("At", err)
	}

	return a.Elem(r, c), nil
}

// Elem is the unchecked form of At. Callers guarantee (r,c) is in range.
func (a *Array[T]) Elem(r, c int) T {
	if r != c {
		var zero T
		return zero
	}

	return a.data[r]
}

// Set stores v at (r,c).
// Errors:
//   - *dims.IndexError when (r,c) is outside the logical shape.
//   - ErrInvalidAssignment when r != c.
func (a *Array[T]) Set(r, c int, v T) error {
	if err := a.checkBounds(r, c); err != nil {
		return diagErrorf("Set", err)
	}
	if r != c {
		return diagErrorf("Set", fmt.Errorf("(%d,%d): %w", r, c, ErrInvalidAssignment))
	}
	a.data[r] = v

	return nil
}

// Resize changes the logical shape in place, keeping the leading
// min(old, new) diagonal entries; new slots are zero.
func (a *Array[T]) Resize(rows, cols int) error {
	var zero T

	return a.ResizeFill(rows, cols, zero)
}

// ResizeFill is Resize with an explicit fill value for newly exposed
// diagonal slots.
// Errors: dims.ErrBadShape for negative sizes.
// Complexity: O(min(rows, cols)).
func (a *Array[T]) ResizeFill(rows, cols int, fill T) error {
	if rows < 0 || cols < 0 {
		return diagErrorf("Resize", fmt.Errorf("%dx%d: %w", rows, cols, dims.ErrBadShape))
	}
	if rows == a.rows && cols == a.cols {
		return nil
	}
	n := min(rows, cols)
	buf := make([]T, n)
	kept := copy(buf, a.data)
	for i := kept; i < n; i++ {
		buf[i] = fill
	}
	a.rows, a.cols, a.data = rows, cols, buf

	return nil
}

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	buf := make([]T, len(a.data))
	copy(buf, a.data)

	return &Array[T]{rows: a.rows, cols: a.cols, data: buf}
}

// Transpose returns a copy with rows and cols swapped; the diagonal is
// unchanged.
func (a *Array[T]) Transpose() *Array[T] {
	out := a.Clone()
	out.rows, out.cols = a.cols, a.rows

	return out
}

// Hermitian returns the conjugate transpose. For real element types it is
// identical to Transpose.
func (a *Array[T]) Hermitian() *Array[T] {
	out := a.Transpose()
	for i, v := range out.data {
		out.data[i] = Conj(v)
	}

	return out
}

// Diag extracts the k-th diagonal as a plain vector.
// MAIN DESCRIPTION:
//   - k == 0: a copy of the stored diagonal.
//   - k > 0 and k < cols: zeros of length min(cols-k, rows).
//   - k < 0 and -k < rows: zeros of length min(rows+k, cols).
//   - otherwise: an empty (0x1) vector.
func (a *Array[T]) Diag(k int) []T {
	switch {
	case k == 0:
		out := make([]T, len(a.data))
		copy(out, a.data)
		return out
	case k > 0 && k < a.cols:
		return make([]T, min(a.cols-k, a.rows))
	case k < 0 && -k < a.rows:
		return make([]T, min(a.rows+k, a.cols))
	default:
		return []T{}
	}
}

// ToDense expands the diagonal matrix to a full rows x cols array.
// Complexity: O(R*C).
func (a *Array[T]) ToDense() *array.Dense[T] {
	// Shape was validated at construction, New cannot fail here.
	out, _ := array.New[T](dims.New(a.rows, a.cols))
	for i, v := range a.data {
		out.SetElem(i+i*a.rows, v)
	}

	return out
}

// Equal reports whether a and b have the same shape and diagonal.
func (a *Array[T]) Equal(b *Array[T]) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}

// String renders the logical matrix row by row.
func (a *Array[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "diag %dx%d\n", a.rows, a.cols)
	var i, j int
	for i = 0; i < a.rows; i++ {
		b.WriteString("[")
		for j = 0; j < a.cols; j++ {
			fmt.Fprintf(&b, "%v", a.Elem(i, j))
			if j+1 < a.cols {
				b.WriteString(", ")
			}
		}
		b.WriteString("]\n")
	}

	return b.String()
}

// Conj returns the complex conjugate of v; real values are returned as is.
func Conj[T Elem](v T) T {
	switch x := any(v).(type) {
	case complex128:
		return any(cmplx.Conj(x)).(T)
	case complex64:
		return any(complex64(cmplx.Conj(complex128(x)))).(T)
	default:
		return v
	}
}
