// SPDX-License-Identifier: MIT

package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
)

// mustFrom builds a Dense or fails the test.
func mustFrom[T array.Elem](t *testing.T, d dims.Vector, data []T) *array.Dense[T] {
	t.Helper()
	a, err := array.FromSlice(d, data)
	require.NoError(t, err)

	return a
}

func TestDense_NewAndAccess(t *testing.T) {
	t.Parallel()

	a, err := array.New[float64](dims.New(2, 3))
	require.NoError(t, err)
	require.Equal(t, 6, a.Numel())
	require.Equal(t, 2, a.Rows())
	require.Equal(t, 3, a.Cols())

	require.NoError(t, a.Set(7, 1, 2))
	v, err := a.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
	require.Equal(t, 7.0, a.Elem(5), "column-major offset of (1,2) in 2x3 is 5")

	_, err = a.At(2, 0)
	require.ErrorIs(t, err, dims.ErrIndexOutOfBounds)
	require.ErrorIs(t, a.Set(1, 0, 3), dims.ErrIndexOutOfBounds)

	_, err = array.New[int8](dims.Vector{-1, 2})
	require.ErrorIs(t, err, dims.ErrBadShape)
}

func TestDense_FromSliceCopies(t *testing.T) {
	t.Parallel()

	src := []float64{1, 2, 3, 4}
	a := mustFrom(t, dims.New(2, 2), src)
	src[0] = 99
	require.Equal(t, 1.0, a.Elem(0))

	_, err := array.FromSlice(dims.New(2, 2), []float64{1, 2, 3})
	require.ErrorIs(t, err, dims.ErrNonconformant)
}

func TestDense_CloneIndependent(t *testing.T) {
	t.Parallel()

	a := mustFrom(t, dims.New(1, 2), []bool{true, false})
	b := a.Clone()
	b.SetElem(0, false)
	require.True(t, a.Elem(0))
}

func TestDense_Transpose(t *testing.T) {
	t.Parallel()

	// [1 3 5; 2 4 6] in column-major order.
	a := mustFrom(t, dims.New(2, 3), []int8{1, 2, 3, 4, 5, 6})
	tr, err := a.Transpose()
	require.NoError(t, err)
	require.Equal(t, dims.Vector{3, 2}, tr.Dims())
	require.Equal(t, []int8{1, 3, 5, 2, 4, 6}, tr.Data())

	back, err := tr.Transpose()
	require.NoError(t, err)
	require.Equal(t, a.Data(), back.Data())

	cube, err := array.New[int8](dims.New(2, 2, 2))
	require.NoError(t, err)
	_, err = cube.Transpose()
	require.ErrorIs(t, err, dims.ErrNonconformant)
}

func TestDense_ResizeKeepsOverlap(t *testing.T) {
	t.Parallel()

	a := mustFrom(t, dims.New(2, 2), []float64{1, 2, 3, 4})
	grown, err := a.Resize(dims.New(3, 3), -1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, -1, 3, 4, -1, -1, -1, -1}, grown.Data())

	shrunk, err := a.Resize(dims.New(1, 2), 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, shrunk.Data())

	paged, err := a.Resize(dims.New(2, 2, 2), 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4, 0, 0, 0, 0}, paged.Data())
}

func TestDense_Reshape(t *testing.T) {
	t.Parallel()

	a := mustFrom(t, dims.New(2, 3), []float64{1, 2, 3, 4, 5, 6})
	r, err := a.Reshape(dims.New(3, 2))
	require.NoError(t, err)
	require.Equal(t, a.Data(), r.Data())
	require.Equal(t, dims.Vector{3, 2}, r.Dims())

	_, err = a.Reshape(dims.New(4, 2))
	require.ErrorIs(t, err, dims.ErrNonconformant)
}

func TestDense_Concat(t *testing.T) {
	t.Parallel()

	a := mustFrom(t, dims.New(2, 1), []float64{1, 2})
	b := mustFrom(t, dims.New(2, 2), []float64{3, 4, 5, 6})

	h, err := array.Concat(a, b, 1)
	require.NoError(t, err)
	require.Equal(t, dims.Vector{2, 3}, h.Dims())
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, h.Data())

	c := mustFrom(t, dims.New(1, 2), []float64{7, 8})
	v, err := array.Concat(b, c, 0)
	require.NoError(t, err)
	require.Equal(t, dims.Vector{3, 2}, v.Dims())
	require.Equal(t, []float64{3, 4, 7, 5, 6, 8}, v.Data())

	p, err := array.Concat(b, b, 2)
	require.NoError(t, err)
	require.Equal(t, dims.Vector{2, 2, 2}, p.Dims())
	require.Equal(t, []float64{3, 4, 5, 6, 3, 4, 5, 6}, p.Data())

	empty, err := array.New[float64](dims.New())
	require.NoError(t, err)
	e, err := array.Concat(empty, b, 1)
	require.NoError(t, err)
	require.Equal(t, b.Data(), e.Data())

	_, err = array.Concat(a, c, 1)
	require.ErrorIs(t, err, dims.ErrDimensionMismatch)
}

func TestMap(t *testing.T) {
	t.Parallel()

	a := mustFrom(t, dims.New(1, 3), []float64{-1, 0, 2})
	pos := array.Map(a, func(x float64) bool { return x > 0 })
	require.Equal(t, []bool{false, false, true}, pos.Data())
	require.Equal(t, a.Dims(), pos.Dims())
}

func TestDense_String(t *testing.T) {
	t.Parallel()

	a := mustFrom(t, dims.New(2, 2), []int8{1, 2, 3, 4})
	require.Equal(t, "[1, 3]\n[2, 4]\n", a.String())

	e, err := array.New[int8](dims.New(0, 3))
	require.NoError(t, err)
	require.Equal(t, "[](0x3)\n", e.String())
}
