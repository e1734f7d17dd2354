// SPDX-License-Identifier: MIT

package dims_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ndarith/dims"
)

func TestNew_Normalization(t *testing.T) {
	t.Parallel()

	require.Equal(t, dims.Vector{0, 0}, dims.New())
	require.Equal(t, dims.Vector{5, 1}, dims.New(5))
	require.Equal(t, dims.Vector{2, 3}, dims.New(2, 3, 1, 1))
	require.Equal(t, dims.Vector{2, 1, 4}, dims.New(2, 1, 4, 1))
	require.Equal(t, dims.Vector{1, 1}, dims.New(1, 1, 1))
	require.Equal(t, 3, dims.New(2, 1, 4).NDims())
}

func TestVector_NumelAndEmpty(t *testing.T) {
	t.Parallel()

	require.Equal(t, 24, dims.New(2, 3, 4).Numel())
	require.False(t, dims.New(2, 3).IsEmpty())
	require.True(t, dims.New(0, 3).IsEmpty())
	require.True(t, dims.New().IsEmpty())

	n, err := dims.New(2, 3, 4).CheckedNumel()
	require.NoError(t, err)
	require.Equal(t, 24, n)

	_, err = dims.Vector{math.MaxInt / 2, 3}.CheckedNumel()
	require.True(t, errors.Is(err, dims.ErrOverflow))

	_, err = dims.Vector{-1, 3}.CheckedNumel()
	require.True(t, errors.Is(err, dims.ErrBadShape))
	require.ErrorIs(t, dims.Vector{2, -3}.Validate(), dims.ErrBadShape)
}

func TestVector_EqualAndString(t *testing.T) {
	t.Parallel()

	require.True(t, dims.Vector{2, 3, 1}.Equal(dims.New(2, 3)))
	require.False(t, dims.New(2, 3).Equal(dims.New(3, 2)))
	require.Equal(t, "2x3x4", dims.New(2, 3, 4).String())
	require.Equal(t, "3x2", dims.New(2, 3).Transpose().String())
}

func TestVector_Redim(t *testing.T) {
	t.Parallel()

	d := dims.New(2, 3, 4)
	require.Equal(t, dims.Vector{24, 1}, d.Redim(1))
	require.Equal(t, dims.Vector{2, 12}, d.Redim(2))
	require.Equal(t, dims.Vector{2, 3, 4, 1}, d.Redim(4))
	require.Equal(t, dims.Vector{2, 3, 4}, d.Redim(3))
}

func TestVector_Concat(t *testing.T) {
	t.Parallel()

	got, ok := dims.New(2, 3).Concat(dims.New(2, 5), 1)
	require.True(t, ok)
	require.Equal(t, dims.Vector{2, 8}, got)

	got, ok = dims.New(2, 3).Concat(dims.New(4, 3), 0)
	require.True(t, ok)
	require.Equal(t, dims.Vector{6, 3}, got)

	got, ok = dims.New(2, 3).Concat(dims.New(2, 3), 2)
	require.True(t, ok)
	require.Equal(t, dims.Vector{2, 3, 2}, got)

	_, ok = dims.New(2, 3).Concat(dims.New(3, 3), 1)
	require.False(t, ok)

	got, ok = dims.New().Concat(dims.New(3, 3), 1)
	require.True(t, ok, "0x0 operand is skipped")
	require.Equal(t, dims.Vector{3, 3}, got)

	got, ok = dims.New(3, 3).Concat(dims.New(), 0)
	require.True(t, ok)
	require.Equal(t, dims.Vector{3, 3}, got)
}

func TestComputeIndex_ColumnMajor(t *testing.T) {
	t.Parallel()

	d := dims.New(2, 3)
	cases := []struct {
		coords []int
		want   int
	}{
		{[]int{0, 0}, 0},
		{[]int{1, 0}, 1},
		{[]int{0, 1}, 2},
		{[]int{1, 2}, 5},
		{[]int{4}, 4},
		{[]int{1, 2, 0}, 5},
	}
	for _, tc := range cases {
		got, err := dims.ComputeIndex(tc.coords, d)
		require.NoError(t, err, "coords %v", tc.coords)
		require.Equal(t, tc.want, got, "coords %v", tc.coords)
	}

	got, err := dims.LinearIndex(dims.New(2, 3, 4), 1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 1+2*2+3*6, got)
}

func TestComputeIndex_OutOfBounds(t *testing.T) {
	t.Parallel()

	d := dims.New(2, 3)
	_, err := dims.ComputeIndex([]int{0, 3}, d)
	require.True(t, errors.Is(err, dims.ErrIndexOutOfBounds))

	var ie *dims.IndexError
	require.True(t, errors.As(err, &ie))
	require.Equal(t, 1, ie.Pos)
	require.Equal(t, 3, ie.Index)
	require.Equal(t, 3, ie.Extent)
	require.Equal(t, "2x3", ie.Dims.String())
	require.Contains(t, ie.Error(), "index (_,3): out of bound 3 (dimensions are 2x3)")

	_, err = dims.ComputeIndex([]int{-1, 0}, d)
	require.ErrorIs(t, err, dims.ErrIndexOutOfBounds)

	_, err = dims.ComputeIndex([]int{0, 0, 1}, d)
	require.ErrorIs(t, err, dims.ErrIndexOutOfBounds)

	_, err = dims.ComputeIndex(nil, d)
	require.ErrorIs(t, err, dims.ErrBadShape)
}

func TestIncrementIndex_Odometer(t *testing.T) {
	t.Parallel()

	d := dims.New(2, 3)
	idx := []int{0, 0}
	require.True(t, dims.IncrementIndex(idx, d, 0))
	require.Equal(t, []int{1, 0}, idx)

	idx = []int{1, 0}
	require.True(t, dims.IncrementIndex(idx, d, 0))
	require.Equal(t, []int{0, 1}, idx)

	// Full sweep visits every element exactly once in linear order.
	idx = []int{0, 0}
	visited := 0
	for ok := true; ok; ok = dims.IncrementIndex(idx, d, 0) {
		lin, err := dims.ComputeIndex(idx, d)
		require.NoError(t, err)
		require.Equal(t, visited, lin)
		visited++
	}
	require.Equal(t, 6, visited)
	require.Equal(t, []int{0, 3}, idx)

	// Starting at dimension 1 skips the row coordinate.
	idx = []int{1, 0}
	require.True(t, dims.IncrementIndex(idx, d, 1))
	require.Equal(t, []int{1, 1}, idx)

	require.False(t, dims.IncrementIndex(idx, d, 5))
}

func TestInd2Sub(t *testing.T) {
	t.Parallel()

	got, err := dims.Ind2Sub(5, dims.New(2, 3))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)

	_, err = dims.Ind2Sub(6, dims.New(2, 3))
	require.ErrorIs(t, err, dims.ErrIndexOutOfBounds)
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	require.True(t, dims.IsScalar(dims.New(1, 1)))
	require.True(t, dims.IsScalar(dims.Vector{1, 1, 1}))
	require.False(t, dims.IsScalar(dims.New(1, 2)))

	require.True(t, dims.IsVector(dims.New(1, 5)))
	require.True(t, dims.IsVector(dims.New(5, 1)))
	require.False(t, dims.IsVector(dims.New(2, 2)))
	require.False(t, dims.IsVector(dims.New(1, 2, 3)))

	require.True(t, dims.VectorEquivalent(dims.New(1, 1, 7)))
	require.False(t, dims.VectorEquivalent(dims.New(2, 1, 7)))

	require.Equal(t, 2, dims.NumOnes([]int{1, 3, 1}))
	require.True(t, dims.AnyOnes([]int{4, 1}))
	require.False(t, dims.AllOnes([]int{1, 2}))

	require.True(t, dims.Conformant(dims.New(1, 1), dims.New(2, 3)))
	require.True(t, dims.Conformant(dims.New(2, 3), dims.New(2, 3)))
	require.False(t, dims.Conformant(dims.New(2, 3), dims.New(3, 2)))
}
