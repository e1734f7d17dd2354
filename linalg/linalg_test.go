// SPDX-License-Identifier: MIT

package linalg_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
	"github.com/katalvlaran/ndarith/linalg"
)

const tol = 1e-10

// rowMajor builds a column-major Dense from row-major literal rows.
func rowMajor[T linalg.Scalar](t *testing.T, rows ...[]T) *array.Dense[T] {
	t.Helper()
	r, c := len(rows), len(rows[0])
	data := make([]T, r*c)
	for i := range rows {
		for j := range rows[i] {
			data[i+j*r] = rows[i][j]
		}
	}
	a, err := array.FromSlice(dims.New(r, c), data)
	require.NoError(t, err)

	return a
}

func requireClose(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], tol, "index %d", i)
	}
}

func TestMatMul(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{1, 2, 3}, []float64{4, 5, 6})
	b := rowMajor(t, []float64{7, 8}, []float64{9, 10}, []float64{11, 12})
	c, err := linalg.MatMul(a, b)
	require.NoError(t, err)
	require.Equal(t, dims.Vector{2, 2}, c.Dims())
	// [58 64; 139 154] column-major.
	require.Equal(t, []float64{58, 139, 64, 154}, c.Data())

	_, err = linalg.MatMul(a, a)
	require.ErrorIs(t, err, dims.ErrNonconformant)
}

func TestMatMul_PropagatesIEEE(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{0, 1})
	b := rowMajor(t, []float64{math.Inf(1)}, []float64{1})
	c, err := linalg.MatMul(a, b)
	require.NoError(t, err)
	require.True(t, math.IsNaN(c.Elem(0)), "0*Inf must not be skipped")
}

func TestClassify(t *testing.T) {
	t.Parallel()

	p := linalg.DefaultParams
	cases := []struct {
		name string
		a    *array.Dense[float64]
		want linalg.MatrixType
	}{
		{"diagonal", rowMajor(t, []float64{2, 0}, []float64{0, 3}), linalg.Diagonal},
		{"upper", rowMajor(t, []float64{2, 1}, []float64{0, 3}), linalg.Upper},
		{"lower", rowMajor(t, []float64{2, 0}, []float64{1, 3}), linalg.Lower},
		{"hermitian", rowMajor(t, []float64{4, 1}, []float64{1, 3}), linalg.Hermitian},
		{"full", rowMajor(t, []float64{1, 2}, []float64{3, 4}), linalg.Full},
		{"banded", rowMajor(t,
			[]float64{1, 2, 0, 0},
			[]float64{3, 1, 2, 0},
			[]float64{0, 3, 1, 2},
			[]float64{0, 0, 3, 1}), linalg.Banded},
	}
	for _, tc := range cases {
		s := linalg.Classify(tc.a, p)
		require.Equal(t, tc.want, s.Type, tc.name)
	}
	require.Equal(t, "hermitian", linalg.Hermitian.String())
}

func TestSolve_Square(t *testing.T) {
	t.Parallel()

	p := linalg.DefaultParams
	systems := []*array.Dense[float64]{
		rowMajor(t, []float64{2, 0}, []float64{0, 4}),
		rowMajor(t, []float64{2, 1}, []float64{0, 4}),
		rowMajor(t, []float64{2, 0}, []float64{1, 4}),
		rowMajor(t, []float64{4, 1}, []float64{1, 3}),
		rowMajor(t, []float64{0, 1}, []float64{1, 0}),
		rowMajor(t,
			[]float64{4, 1, 0, 0},
			[]float64{2, 5, 1, 0},
			[]float64{0, 2, 6, 1},
			[]float64{0, 0, 2, 7}),
	}
	for i, a := range systems {
		n := a.Rows()
		want := make([]float64, n)
		for k := range want {
			want[k] = float64(k + 1)
		}
		xw, err := array.FromSlice(dims.New(n, 1), want)
		require.NoError(t, err)
		b, err := linalg.MatMul(a, xw)
		require.NoError(t, err)

		x, info, err := linalg.Solve(a, b, p)
		require.NoError(t, err, "system %d", i)
		require.False(t, info.Singular, "system %d", i)
		require.Equal(t, n, info.Rank)
		requireClose(t, want, x.Data())
	}
}

func TestSolve_SingularWarnsAndReturnsInf(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{1, 0}, []float64{0, 0})
	b := rowMajor(t, []float64{1}, []float64{1})
	x, info, err := linalg.Solve(a, b, linalg.DefaultParams)
	require.NoError(t, err)
	require.True(t, info.Singular)
	require.Zero(t, info.RCond)
	require.Equal(t, 1, info.Rank)
	require.True(t, math.IsInf(x.Elem(1), 1))

	full := rowMajor(t, []float64{1, 2}, []float64{2, 4.0000000000000001})
	_, info, err = linalg.Solve(full, b, linalg.DefaultParams)
	require.NoError(t, err)
	require.True(t, info.Singular)
}

func TestSolve_RCond(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{1, 2}, []float64{3, 4})
	_, info, err := linalg.Inverse(a, linalg.DefaultParams)
	require.NoError(t, err)
	// ‖A‖₁ = 6, ‖A⁻¹‖₁ = 3.5.
	require.InDelta(t, 1/21.0, info.RCond, 1e-12)
}

func TestSolve_Complex(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []complex128{1 + 1i, 2}, []complex128{3, 4 - 1i})
	want := []complex128{1 - 1i, 2i}
	xw, err := array.FromSlice(dims.New(2, 1), want)
	require.NoError(t, err)
	b, err := linalg.MatMul(a, xw)
	require.NoError(t, err)

	x, info, err := linalg.Solve(a, b, linalg.DefaultParams)
	require.NoError(t, err)
	require.False(t, info.Singular)
	for i := range want {
		require.Less(t, cmplx.Abs(want[i]-x.Elem(i)), tol)
	}

	// Hermitian positive definite goes through Cholesky.
	h := rowMajor(t, []complex128{4, 1 - 1i}, []complex128{1 + 1i, 3})
	require.Equal(t, linalg.Hermitian, linalg.Classify(h, linalg.DefaultParams).Type)
	b, err = linalg.MatMul(h, xw)
	require.NoError(t, err)
	x, info, err = linalg.Solve(h, b, linalg.DefaultParams)
	require.NoError(t, err)
	require.Equal(t, linalg.Hermitian, info.Type)
	for i := range want {
		require.Less(t, cmplx.Abs(want[i]-x.Elem(i)), tol)
	}
}

func TestSolve_HermitianNotPositiveFallsBack(t *testing.T) {
	t.Parallel()

	// Symmetric, positive diagonal, indefinite.
	a := rowMajor(t, []float64{1, 2}, []float64{2, 1})
	b := rowMajor(t, []float64{3}, []float64{3})
	x, info, err := linalg.Solve(a, b, linalg.DefaultParams)
	require.NoError(t, err)
	require.Equal(t, linalg.Full, info.Type)
	requireClose(t, []float64{1, 1}, x.Data())
}

func TestSolve_LeastSquares(t *testing.T) {
	t.Parallel()

	// Overdetermined: fit y = 1 + 2t through exact points.
	a := rowMajor(t, []float64{1, 0}, []float64{1, 1}, []float64{1, 2})
	b := rowMajor(t, []float64{1}, []float64{3}, []float64{5})
	x, info, err := linalg.Solve(a, b, linalg.DefaultParams)
	require.NoError(t, err)
	require.Equal(t, 2, info.Rank)
	requireClose(t, []float64{1, 2}, x.Data())

	// Underdetermined: minimum norm solution of x1 + x2 = 2 is (1, 1).
	u := rowMajor(t, []float64{1, 1})
	bu := rowMajor(t, []float64{2})
	x, info, err = linalg.Solve(u, bu, linalg.DefaultParams)
	require.NoError(t, err)
	require.Equal(t, 1, info.Rank)
	require.Equal(t, dims.Vector{2, 1}, x.Dims())
	requireClose(t, []float64{1, 1}, x.Data())
}

func TestSolve_Nonconformant(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{1, 2}, []float64{3, 4})
	b := rowMajor(t, []float64{1, 2, 3})
	_, _, err := linalg.Solve(a, b, linalg.DefaultParams)
	require.ErrorIs(t, err, dims.ErrNonconformant)

	_, _, err = linalg.SolveRight(b, a, linalg.DefaultParams)
	require.ErrorIs(t, err, dims.ErrNonconformant)
}

func TestSolveRight(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{2, 1}, []float64{1, 3})
	want := rowMajor(t, []float64{1, 2})
	b, err := linalg.MatMul(want, a)
	require.NoError(t, err)
	x, _, err := linalg.SolveRight(b, a, linalg.DefaultParams)
	require.NoError(t, err)
	require.Equal(t, dims.Vector{1, 2}, x.Dims())
	requireClose(t, want.Data(), x.Data())
}

func TestInverse(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{4, 7}, []float64{2, 6})
	inv, info, err := linalg.Inverse(a, linalg.DefaultParams)
	require.NoError(t, err)
	require.False(t, info.Singular)
	requireClose(t, []float64{0.6, -0.2, -0.7, 0.4}, inv.Data())

	_, _, err = linalg.Inverse(rowMajor(t, []float64{1, 2}), linalg.DefaultParams)
	require.ErrorIs(t, err, linalg.ErrNotSquare)
}

func TestMPowInt(t *testing.T) {
	t.Parallel()

	a := rowMajor(t, []float64{1, 1}, []float64{0, 1})
	p5, _, err := linalg.MPowInt(a, 5, linalg.DefaultParams)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 5, 1}, p5.Data())

	p0, _, err := linalg.MPowInt(a, 0, linalg.DefaultParams)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 1}, p0.Data())

	pm2, info, err := linalg.MPowInt(a, -2, linalg.DefaultParams)
	require.NoError(t, err)
	require.False(t, info.Singular)
	requireClose(t, []float64{1, 0, -2, 1}, pm2.Data())

	_, _, err = linalg.MPowInt(rowMajor(t, []float64{1, 2}), 2, linalg.DefaultParams)
	require.ErrorIs(t, err, linalg.ErrNotSquare)
}

func TestExpm(t *testing.T) {
	t.Parallel()

	z := rowMajor(t, []float64{0, 0}, []float64{0, 0})
	e, err := linalg.Expm(z)
	require.NoError(t, err)
	requireClose(t, []float64{1, 0, 0, 1}, e.Data())

	d := rowMajor(t, []float64{1, 0}, []float64{0, 2})
	e, err = linalg.Expm(d)
	require.NoError(t, err)
	requireClose(t, []float64{math.E, 0, 0, math.Exp(2)}, e.Data())

	// Nilpotent: expm([0 1; 0 0]) = [1 1; 0 1].
	n := rowMajor(t, []float64{0, 1}, []float64{0, 0})
	e, err = linalg.Expm(n)
	require.NoError(t, err)
	requireClose(t, []float64{1, 0, 1, 1}, e.Data())
}
