// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ndarith/array"
)

// MPowInt returns A^p for a square A and integer p.
// Implementation:
//   - p == 0 yields the identity; p < 0 inverts A first (Info from the
//     inversion is returned so callers can warn on singular A).
//   - Binary exponentiation: O(log|p|) products.
//
// Errors: ErrNotMatrix, ErrNotSquare.
// Complexity: O(n³·log|p|).
func MPowInt[T Scalar](a *array.Dense[T], p int, prm Params) (*array.Dense[T], Info, error) {
	r, c, err := shape2(a)
	if err != nil {
		return nil, Info{}, linalgErrorf(opPow, err)
	}
	if r != c {
		return nil, Info{}, linalgErrorf(opPow, fmt.Errorf("%dx%d: %w", r, c, ErrNotSquare))
	}

	info := Info{Type: Full, RCond: math.Inf(1), Rank: r, Square: true}
	base := a
	if p < 0 {
		base, info, err = Inverse(a, prm)
		if err != nil {
			return nil, info, linalgErrorf(opPow, err)
		}
		p = -p
	}

	var result *array.Dense[T]
	for p > 0 {
		if p&1 == 1 {
			if result == nil {
				result = base.Clone()
			} else if result, err = MatMul(result, base); err != nil {
				return nil, info, linalgErrorf(opPow, err)
			}
		}
		p >>= 1
		if p > 0 {
			if base, err = MatMul(base, base); err != nil {
				return nil, info, linalgErrorf(opPow, err)
			}
		}
	}
	if result == nil {
		result = Identity[T](r)
	}

	return result, info, nil
}

// expmDegree is the Padé approximant degree used by Expm.
const expmDegree = 6

// Expm returns the matrix exponential e^A of a square A.
// MAIN DESCRIPTION:
//   - Scaling and squaring with a diagonal Padé approximant:
//     A is scaled by 2^-s so that ‖A‖₁/2^s < 1/2, e^(A/2^s) ≈ D⁻¹·N, and the
//     result is squared s times.
//
// Errors: ErrNotMatrix, ErrNotSquare.
// Complexity: O(n³·(degree + s)).
func Expm[T Scalar](a *array.Dense[T]) (*array.Dense[T], error) {
	r, c, err := shape2(a)
	if err != nil {
		return nil, linalgErrorf(opExpm, err)
	}
	if r != c {
		return nil, linalgErrorf(opExpm, fmt.Errorf("%dx%d: %w", r, c, ErrNotSquare))
	}
	if r == 0 {
		return a.Clone(), nil
	}

	// Stage 1: scaling.
	s := 0
	if nrm := Norm1(a); nrm > 0.5 && !math.IsInf(nrm, 0) && !math.IsNaN(nrm) {
		_, e := math.Frexp(nrm)
		s = max(0, e+1)
	}
	as := scale(a, FromFloat[T](math.Ldexp(1, -s)))

	// Stage 2: Padé numerator and denominator.
	cf := 0.5
	x := as.Clone()
	num := addScaled(Identity[T](r), as, FromFloat[T](cf))
	den := addScaled(Identity[T](r), as, FromFloat[T](-cf))
	positive := true
	for k := 2; k <= expmDegree; k++ {
		cf = cf * float64(expmDegree-k+1) / float64(k*(2*expmDegree-k+1))
		if x, err = MatMul(as, x); err != nil {
			return nil, linalgErrorf(opExpm, err)
		}
		num = addScaled(num, x, FromFloat[T](cf))
		if positive {
			den = addScaled(den, x, FromFloat[T](cf))
		} else {
			den = addScaled(den, x, FromFloat[T](-cf))
		}
		positive = !positive
	}

	// Stage 3: e ≈ D⁻¹N, then square s times.
	e, _, err := Solve(den, num, Params{Bandden: 1, SymTol: 0})
	if err != nil {
		return nil, linalgErrorf(opExpm, err)
	}
	for ; s > 0; s-- {
		if e, err = MatMul(e, e); err != nil {
			return nil, linalgErrorf(opExpm, err)
		}
	}

	return e, nil
}

// scale returns alpha·A.
func scale[T Scalar](a *array.Dense[T], alpha T) *array.Dense[T] {
	out := a.Clone()
	d := out.Data()
	for i := range d {
		d[i] *= alpha
	}

	return out
}

// addScaled returns A + alpha·B for equal shapes.
func addScaled[T Scalar](a, b *array.Dense[T], alpha T) *array.Dense[T] {
	out := a.Clone()
	d, bd := out.Data(), b.Data()
	for i := range d {
		d[i] += alpha * bd[i]
	}

	return out
}
