// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
)

// Info describes the numerical state of a solve.
//   - Type is the solver actually used (a Hermitian matrix that fails
//     Cholesky is reported as Full).
//   - RCond is the 1-norm reciprocal condition estimate (square systems), or
//     the ratio of the smallest to the largest R diagonal (least squares).
//   - Rank is the numerical rank.
//   - Singular is set when RCond < Eps, RCond is NaN, or Rank is deficient.
type Info struct {
	Type     MatrixType
	RCond    float64
	Rank     int
	Singular bool
	Square   bool
}

// Solve returns x with A·x = B (the left division A\B).
// MAIN DESCRIPTION:
//   - Square A is classified (Classify with p) and solved with the matching
//     factorization. Non-square A is solved in the least-squares sense, with
//     the minimum-norm solution for underdetermined systems.
//   - A singular A still yields the IEEE best-effort result; Info reports it.
//
// Errors:
//   - ErrNotMatrix for N-d operands.
//   - dims.ErrNonconformant when rows(A) != rows(B).
//
// Complexity:
//   - O(n²·k) for diagonal/triangular, O(n³) for full square, O(m·n²) for
//     least squares, with k = cols(B).
func Solve[T Scalar](a, b *array.Dense[T], p Params) (*array.Dense[T], Info, error) {
	ar, ac, err := shape2(a)
	if err != nil {
		return nil, Info{}, linalgErrorf(opSolve, err)
	}
	br, bc, err := shape2(b)
	if err != nil {
		return nil, Info{}, linalgErrorf(opSolve, err)
	}
	if ar != br {
		return nil, Info{}, linalgErrorf(opSolve,
			fmt.Errorf("operator \\: %dx%d by %dx%d: %w", ar, ac, br, bc, dims.ErrNonconformant))
	}
	if ar == 0 || ac == 0 || bc == 0 {
		x, err := array.New[T](dims.New(ac, bc))
		if err != nil {
			return nil, Info{}, linalgErrorf(opSolve, err)
		}
		return x, Info{RCond: math.Inf(1), Rank: 0, Square: ar == ac}, nil
	}
	if ar != ac {
		return leastSquares(a, b)
	}

	f, info := factorize(a, p)
	x := b.Clone()
	xd := x.Data()
	for j := 0; j < bc; j++ {
		f.solve(xd[j*ar : (j+1)*ar])
	}

	return x, info, nil
}

// factorize classifies and factors a square matrix and fills Info.
func factorize[T Scalar](a *array.Dense[T], p Params) (factor[T], Info) {
	n := a.Rows()
	data := a.Data()
	s := Classify(a, p)
	info := Info{Type: s.Type, Square: true}

	var f factor[T]
	switch s.Type {
	case Diagonal:
		d := make([]T, n)
		for i := range d {
			d[i] = data[i+i*n]
		}
		f = &diagFactor[T]{d: d}
	case Upper, Lower:
		f = &triFactor[T]{a: data, n: n, upper: s.Type == Upper}
	case Hermitian:
		if ch, ok := newCholesky(data, n); ok {
			f = ch
		} else {
			info.Type = Full
			f = newLU(data, n, n-1, n-1)
		}
	case Banded:
		f = newLU(data, n, s.Lower, s.Upper)
	default:
		f = newLU(data, n, n-1, n-1)
	}

	info.RCond = rcond(f, Norm1(a), n)
	info.Rank = rankFromPivots(f.pivots())
	info.Singular = info.RCond < Eps || math.IsNaN(info.RCond) || info.Rank < n

	return f, info
}

// rcond estimates 1 / (‖A‖₁·‖A⁻¹‖₁).
func rcond[T Scalar](f factor[T], anorm float64, n int) float64 {
	if math.IsNaN(anorm) {
		return math.NaN()
	}
	if anorm == 0 {
		return 0
	}
	for _, p := range f.pivots() {
		if p == 0 {
			return 0
		}
	}
	inv := invNorm1(f, n)
	if math.IsNaN(inv) {
		return math.NaN()
	}
	if math.IsInf(inv, 1) {
		return 0
	}

	return 1 / (anorm * inv)
}

// invNorm1 estimates ‖A⁻¹‖₁ with Hager's method.
// Implementation:
//   - Stage 1: x = (1/n, ..., 1/n).
//   - Stage 2: y = A⁻¹x, ξ = phase(y), z = A⁻ᴴξ.
//   - Stage 3: stop when max|z| <= Re(zᴴx), else restart from e_j with
//     j = argmax|z|.
//
// At most five iterations; the estimate is a lower bound, usually exact.
func invNorm1[T Scalar](f factor[T], n int) float64 {
	x := make([]T, n)
	for i := range x {
		x[i] = FromFloat[T](1 / float64(n))
	}
	y := make([]T, n)
	z := make([]T, n)
	est := 0.0
	prev := -1
	for iter := 0; iter < 5; iter++ {
		copy(y, x)
		f.solve(y)
		est = 0
		for _, v := range y {
			est += Abs(v)
		}
		for i, v := range y {
			z[i] = phase(v)
		}
		f.solveH(z)

		j, zmax := 0, -1.0
		var ztx float64
		for i, v := range z {
			if a := Abs(v); a > zmax {
				j, zmax = i, a
			}
			ztx += Real(Conj(v) * x[i])
		}
		if iter > 0 && (zmax <= ztx || j == prev) {
			break
		}
		for i := range x {
			x[i] = 0
		}
		x[j] = FromFloat[T](1)
		prev = j
	}

	return est
}

// rankFromPivots counts pivots above n·eps·max|pivot|.
func rankFromPivots(p []float64) int {
	mx := 0.0
	for _, v := range p {
		if v > mx {
			mx = v
		}
	}
	tol := float64(len(p)) * Eps * mx
	r := 0
	for _, v := range p {
		if v > tol {
			r++
		}
	}

	return r
}

// Inverse returns A⁻¹ for a square A. A singular A yields an Inf/NaN
// populated result with Info.Singular set.
// Errors: ErrNotMatrix, ErrNotSquare.
func Inverse[T Scalar](a *array.Dense[T], p Params) (*array.Dense[T], Info, error) {
	r, c, err := shape2(a)
	if err != nil {
		return nil, Info{}, linalgErrorf(opInv, err)
	}
	if r != c {
		return nil, Info{}, linalgErrorf(opInv, fmt.Errorf("%dx%d: %w", r, c, ErrNotSquare))
	}

	return Solve(a, Identity[T](r), p)
}

// SolveRight returns x with x·A = B (the right division B/A), computed as
// (Aᴴ \ Bᴴ)ᴴ.
// Errors: dims.ErrNonconformant when cols(A) != cols(B).
func SolveRight[T Scalar](b, a *array.Dense[T], p Params) (*array.Dense[T], Info, error) {
	_, ac, err := shape2(a)
	if err != nil {
		return nil, Info{}, linalgErrorf(opSolve, err)
	}
	br, bc, err := shape2(b)
	if err != nil {
		return nil, Info{}, linalgErrorf(opSolve, err)
	}
	if ac != bc {
		return nil, Info{}, linalgErrorf(opSolve,
			fmt.Errorf("operator /: %dx%d by %dx%d: %w", br, bc, a.Rows(), ac, dims.ErrNonconformant))
	}
	ah, err := ConjTranspose(a)
	if err != nil {
		return nil, Info{}, linalgErrorf(opSolve, err)
	}
	bh, err := ConjTranspose(b)
	if err != nil {
		return nil, Info{}, linalgErrorf(opSolve, err)
	}
	xh, info, err := Solve(ah, bh, p)
	if err != nil {
		return nil, info, err
	}
	x, err := ConjTranspose(xh)
	if err != nil {
		return nil, info, linalgErrorf(opSolve, err)
	}

	return x, info, nil
}
