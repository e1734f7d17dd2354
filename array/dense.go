// SPDX-License-Identifier: MIT

// Package array - Dense storage (column-major) & safe accessors.
//
// Purpose:
//   - Provide a flat buffer with the explicit index formula of dims.ComputeIndex.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep loops deterministic: linear order for elementwise work, the
//     dims.IncrementIndex odometer for N-d walks.
//
// Complexity quicksheet:
//   - New: O(numel) zero-init; At/Set: O(ndims); Clone: O(numel);
//     Transpose: O(numel); Resize: O(numel(new)); Concat: O(numel(a)+numel(b)).

package array

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ndarith/dims"
)

// ---------- error context tags ----------

const (
	ctxNew       = "New"
	ctxFromSlice = "FromSlice"
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxTranspose = "Transpose"
	ctxResize    = "Resize"
	ctxReshape   = "Reshape"
	ctxConcat    = "Concat"
)

// Elem is the set of element types a Dense may hold.
type Elem interface {
	~bool | ~int8 | ~float32 | ~float64 | ~complex64 | ~complex128
}

// Dense is a column-major N-d array.
//   - dims is the normalized shape; numel(dims) == len(data).
//   - data is the flat buffer; offset of (i0,i1,...) is i0 + d0*(i1 + d1*(...)).
type Dense[T Elem] struct {
	dims dims.Vector
	data []T
}

// denseErrorf wraps err with a uniform "Dense.<method>" context.
func denseErrorf(method string, err error) error {
	return fmt.Errorf("Dense.%s: %w", method, err)
}

// New allocates a zero-filled array of shape d.
// Errors: dims.ErrBadShape for negative sizes, dims.ErrOverflow for huge shapes.
// Complexity: O(numel).
func New[T Elem](d dims.Vector) (*Dense[T], error) {
	n, err := d.CheckedNumel()
	if err != nil {
		return nil, denseErrorf(ctxNew, err)
	}

	return &Dense[T]{dims: d.Normalize(), data: make([]T, n)}, nil
}

// Filled allocates an array of shape d with every element set to v.
func Filled[T Elem](d dims.Vector, v T) (*Dense[T], error) {
	a, err := New[T](d)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = v
	}

	return a, nil
}

// FromSlice builds an array of shape d from column-major data.
// The slice is copied; later changes to data do not affect the array.
// Errors: dims.ErrNonconformant when len(data) != numel(d).
func FromSlice[T Elem](d dims.Vector, data []T) (*Dense[T], error) {
	n, err := d.CheckedNumel()
	if err != nil {
		return nil, denseErrorf(ctxFromSlice, err)
	}
	if n != len(data) {
		return nil, denseErrorf(ctxFromSlice,
			fmt.Errorf("%d elements for shape %s: %w", len(data), d, dims.ErrNonconformant))
	}
	buf := make([]T, n)
	copy(buf, data)

	return &Dense[T]{dims: d.Normalize(), data: buf}, nil
}

// Scalar returns a 1x1 array holding v.
func Scalar[T Elem](v T) *Dense[T] {
	return &Dense[T]{dims: dims.New(1, 1), data: []T{v}}
}

// Dims returns a copy of the shape.
func (a *Dense[T]) Dims() dims.Vector { return a.dims.Clone() }

// Rows returns the first dimension.
func (a *Dense[T]) Rows() int { return a.dims.Rows() }

// Cols returns the second dimension.
func (a *Dense[T]) Cols() int { return a.dims.Cols() }

// Numel returns the element count.
func (a *Dense[T]) Numel() int { return len(a.data) }

// IsEmpty reports whether the array holds no elements.
func (a *Dense[T]) IsEmpty() bool { return len(a.data) == 0 }

// Data exposes the flat column-major buffer. The slice aliases the array:
// kernels may read it freely, and only the owner of a freshly allocated
// result may write to it.
func (a *Dense[T]) Data() []T { return a.data }

// Elem returns the element at linear offset i without bounds checking
// beyond the runtime slice check.
func (a *Dense[T]) Elem(i int) T { return a.data[i] }

// SetElem stores v at linear offset i without bounds checking beyond the
// runtime slice check.
func (a *Dense[T]) SetElem(i int, v T) { a.data[i] = v }

// At returns the element at coords (column-major; fewer coordinates than
// dimensions address the folded shape, see dims.ComputeIndex).
// Errors: *dims.IndexError for out-of-range coordinates.
// Complexity: O(len(coords)).
func (a *Dense[T]) At(coords ...int) (T, error) {
	var zero T
	off, err := dims.ComputeIndex(coords, a.dims)
	if err != nil {
		return zero, denseErrorf(ctxAt, err)
	}

	return a.data[off], nil
}

// Set stores v at coords.
// Errors: *dims.IndexError for out-of-range coordinates.
// Complexity: O(len(coords)).
func (a *Dense[T]) Set(v T, coords ...int) error {
	off, err := dims.ComputeIndex(coords, a.dims)
	if err != nil {
		return denseErrorf(ctxSet, err)
	}
	a.data[off] = v

	return nil
}

// Clone returns a deep copy.
// Complexity: O(numel).
func (a *Dense[T]) Clone() *Dense[T] {
	cp := make([]T, len(a.data))
	copy(cp, a.data)

	return &Dense[T]{dims: a.dims.Clone(), data: cp}
}

// Transpose returns a new array with rows and columns swapped.
// Errors: dims.ErrNonconformant for arrays with more than two dimensions.
// Complexity: O(numel).
func (a *Dense[T]) Transpose() (*Dense[T], error) {
	if !dims.IsMatrix(a.dims) {
		return nil, denseErrorf(ctxTranspose,
			fmt.Errorf("transpose not defined for %s array: %w", a.dims, dims.ErrNonconformant))
	}
	r, c := a.dims[0], a.dims[1]
	out := &Dense[T]{dims: dims.New(c, r), data: make([]T, len(a.data))}
	var i, j, base int
	for j = 0; j < c; j++ {
		base = j * r
		for i = 0; i < r; i++ {
			// (i,j) in a lands on (j,i) in out: offset j + i*c.
			out.data[j+i*c] = a.data[base+i]
		}
	}

	return out, nil
}

// Reshape returns an array sharing a copy of the data with a new shape of
// equal element count.
// Errors: dims.ErrNonconformant when the element counts differ.
func (a *Dense[T]) Reshape(d dims.Vector) (*Dense[T], error) {
	n, err := d.CheckedNumel()
	if err != nil {
		return nil, denseErrorf(ctxReshape, err)
	}
	if n != len(a.data) {
		return nil, denseErrorf(ctxReshape,
			fmt.Errorf("can't reshape %s array to %s: %w", a.dims, d, dims.ErrNonconformant))
	}
	out := a.Clone()
	out.dims = d.Normalize()

	return out, nil
}

// Resize returns a new array of shape d. Elements whose coordinates exist in
// both shapes are retained; new positions take fill.
// Implementation:
//   - Stage 1: allocate the target filled with fill.
//   - Stage 2: walk the overlap box with the dims odometer and copy.
//
// Complexity: O(numel(d)).
func (a *Dense[T]) Resize(d dims.Vector, fill T) (*Dense[T], error) {
	out, err := Filled(d, fill)
	if err != nil {
		return nil, denseErrorf(ctxResize, err)
	}
	nd := len(a.dims)
	if len(out.dims) > nd {
		nd = len(out.dims)
	}
	src, dst := a.dims.Redim(nd), out.dims.Redim(nd)
	overlap := make(dims.Vector, nd)
	for i := range overlap {
		overlap[i] = min(src[i], dst[i])
	}
	if overlap.IsEmpty() {
		return out, nil
	}

	srcStride, dstStride := src.Strides(), dst.Strides()
	idx := make([]int, nd)
	for ok := true; ok; ok = dims.IncrementIndex(idx, overlap, 0) {
		so, do := 0, 0
		for k, c := range idx {
			so += c * stride(srcStride, k)
			do += c * stride(dstStride, k)
		}
		out.data[do] = a.data[so]
	}

	return out, nil
}

// stride returns s[k], or 0 past the normalized rank where every
// coordinate is 0.
func stride(s []int, k int) int {
	if k < len(s) {
		return s[k]
	}

	return 0
}

// Map applies f to every element and returns a fresh array of the result type.
// Complexity: O(numel).
func Map[T, U Elem](a *Dense[T], f func(T) U) *Dense[U] {
	out := &Dense[U]{dims: a.dims.Clone(), data: make([]U, len(a.data))}
	for i, v := range a.data {
		out.data[i] = f(v)
	}

	return out
}

// Concat joins a and b along axis (0 = rows, 1 = columns, 2+ = pages).
// MAIN DESCRIPTION:
//   - All dimensions other than axis must agree; a 0x0 operand is skipped.
//
// Implementation:
//   - Stage 1: compute the result shape with dims.Vector.Concat.
//   - Stage 2: copy each operand block by walking its coordinates with the
//     odometer and offsetting the axis coordinate of b by a's extent.
//
// Errors:
//   - dims.ErrDimensionMismatch when the shapes are incompatible.
//
// Complexity:
//   - Time O(numel(a)+numel(b)), Space O(numel(result)).
func Concat[T Elem](a, b *Dense[T], axis int) (*Dense[T], error) {
	rd, ok := a.dims.Concat(b.dims, axis)
	if !ok {
		return nil, denseErrorf(ctxConcat,
			fmt.Errorf("axis %d: %s vs %s: %w", axis, a.dims, b.dims, dims.ErrDimensionMismatch))
	}
	out, err := New[T](rd)
	if err != nil {
		return nil, denseErrorf(ctxConcat, err)
	}
	// A 0x0 operand has zero extent on every axis and copies nothing.
	offset := copyBlock(out, a, axis, 0)
	copyBlock(out, b, axis, offset)

	return out, nil
}

// copyBlock copies src into dst with the axis coordinate shifted by offset.
// It returns the extent of src along axis.
func copyBlock[T Elem](dst, src *Dense[T], axis, offset int) int {
	nd := len(dst.dims)
	if axis+1 > nd {
		nd = axis + 1
	}
	sd := src.dims.Redim(nd)
	if src.IsEmpty() {
		return sd[axis]
	}
	dd := dst.dims.Redim(nd)
	ds := dd.Strides()
	idx := make([]int, nd)
	lin := 0
	for ok := true; ok; ok = dims.IncrementIndex(idx, sd, 0) {
		off := 0
		for k, c := range idx {
			if k == axis {
				c += offset
			}
			off += c * stride(ds, k)
		}
		dst.data[off] = src.data[lin]
		lin++
	}

	return sd[axis]
}

// String renders 2-D arrays row by row; higher dimensions print one 2-D
// page after another.
func (a *Dense[T]) String() string {
	var b strings.Builder
	if a.IsEmpty() {
		fmt.Fprintf(&b, "[](%s)\n", a.dims)
		return b.String()
	}
	r, c := a.dims[0], a.dims[1]
	page := r * c
	pages := len(a.data) / page
	var p, i, j int
	for p = 0; p < pages; p++ {
		if pages > 1 {
			fmt.Fprintf(&b, "page %d:\n", p)
		}
		for i = 0; i < r; i++ {
			b.WriteString("[")
			for j = 0; j < c; j++ {
				fmt.Fprintf(&b, "%v", a.data[p*page+j*r+i])
				if j+1 < c {
					b.WriteString(", ")
				}
			}
			b.WriteString("]\n")
		}
	}

	return b.String()
}
