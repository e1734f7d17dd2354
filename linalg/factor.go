// SPDX-License-Identifier: MIT

// Package linalg - square factorizations.
//
// Purpose:
//   - Factor a square matrix once, then solve A·x = b and Aᴴ·x = b in place
//     for any number of right-hand sides (the second form feeds the
//     condition estimator).
//
// Factor kinds:
//   - diagFactor: diagonal scaling.
//   - triFactor:  substitution on an upper or lower triangle.
//   - luFactor:   LU with partial pivoting, loops clipped to the band
//     (kl, ku); a full matrix is the band kl = ku = n-1.
//   - cholFactor: A = L·Lᴴ for Hermitian positive definite matrices.
//
// Singular factors are not rejected: zero pivots divide through to IEEE
// Inf/NaN and are reported by pivots().

package linalg

import (
	"math"
)

// factor is a factored square matrix.
type factor[T Scalar] interface {
	// solve overwrites b with A⁻¹·b.
	solve(b []T)
	// solveH overwrites b with A⁻ᴴ·b.
	solveH(b []T)
	// pivots returns the magnitudes used as divisors (diagonal of U, L or D).
	pivots() []float64
}

// ---------- diagonal ----------

type diagFactor[T Scalar] struct {
	d []T
}

func (f *diagFactor[T]) solve(b []T) {
	for i, v := range f.d {
		b[i] /= v
	}
}

func (f *diagFactor[T]) solveH(b []T) {
	for i, v := range f.d {
		b[i] /= Conj(v)
	}
}

func (f *diagFactor[T]) pivots() []float64 { return absAll(f.d) }

// ---------- triangular ----------

type triFactor[T Scalar] struct {
	a     []T // column-major n x n
	n     int
	upper bool
}

func (f *triFactor[T]) solve(b []T) {
	if f.upper {
		backUpper(f.a, f.n, b, false)
	} else {
		forwardLower(f.a, f.n, b, false)
	}
}

func (f *triFactor[T]) solveH(b []T) {
	// Aᴴ of an upper triangle is lower and vice versa.
	if f.upper {
		forwardUpperH(f.a, f.n, b)
	} else {
		backLowerH(f.a, f.n, b)
	}
}

func (f *triFactor[T]) pivots() []float64 { return diagAbs(f.a, f.n) }

// backUpper solves U·x = b (column-oriented). unit skips the diagonal division.
func backUpper[T Scalar](a []T, n int, b []T, unit bool) {
	var i, k int
	for k = n - 1; k >= 0; k-- {
		if !unit {
			b[k] /= a[k+k*n]
		}
		for i = 0; i < k; i++ {
			b[i] -= a[i+k*n] * b[k]
		}
	}
}

// forwardLower solves L·x = b (column-oriented).
func forwardLower[T Scalar](a []T, n int, b []T, unit bool) {
	var i, k int
	for k = 0; k < n; k++ {
		if !unit {
			b[k] /= a[k+k*n]
		}
		for i = k + 1; i < n; i++ {
			b[i] -= a[i+k*n] * b[k]
		}
	}
}

// forwardUpperH solves Uᴴ·x = b where U is the upper triangle of a.
func forwardUpperH[T Scalar](a []T, n int, b []T) {
	var i, k int
	var s T
	for k = 0; k < n; k++ {
		s = b[k]
		for i = 0; i < k; i++ {
			s -= Conj(a[i+k*n]) * b[i]
		}
		b[k] = s / Conj(a[k+k*n])
	}
}

// backLowerH solves Lᴴ·x = b where L is the lower triangle of a.
func backLowerH[T Scalar](a []T, n int, b []T) {
	var i, k int
	var s T
	for k = n - 1; k >= 0; k-- {
		s = b[k]
		for i = k + 1; i < n; i++ {
			s -= Conj(a[i+k*n]) * b[i]
		}
		b[k] = s / Conj(a[k+k*n])
	}
}

// ---------- LU with partial pivoting ----------

// luFactor stores U in the upper triangle and the elimination multipliers
// of step k in column k below the diagonal. Row swaps are applied to the
// trailing columns only, so solves interleave swaps and eliminations.
type luFactor[T Scalar] struct {
	lu     []T
	n      int
	piv    []int
	kl, ku int
}

// newLU factors a (column-major n x n, copied) with bandwidths kl, ku.
// Implementation:
//   - Stage 1: For column k pick the largest |a(i,k)| for i in [k, k+kl].
//   - Stage 2: Swap rows k and p over columns [k, k+kl+ku].
//   - Stage 3: Scale the multipliers and update the trailing band.
//
// A zero pivot column is left as is; the factorization continues.
// Complexity: O(n·kl·(kl+ku)), O(n³) for a full matrix.
func newLU[T Scalar](a []T, n, kl, ku int) *luFactor[T] {
	lu := make([]T, len(a))
	copy(lu, a)
	f := &luFactor[T]{lu: lu, n: n, piv: make([]int, n), kl: kl, ku: ku}

	var (
		i, j, k, p   int
		iMax, jMax   int
		best, mag    float64
		pivot, t, zr T
	)
	for k = 0; k < n; k++ {
		iMax = min(n-1, k+kl)
		jMax = min(n-1, k+kl+ku)

		// Stage 1: pivot search.
		p, best = k, -1
		for i = k; i <= iMax; i++ {
			mag = Abs(lu[i+k*n])
			if mag > best || math.IsNaN(mag) {
				p, best = i, mag
				if math.IsNaN(mag) {
					break
				}
			}
		}
		f.piv[k] = p

		// Stage 2: row swap over the trailing band.
		if p != k {
			for j = k; j <= jMax; j++ {
				lu[k+j*n], lu[p+j*n] = lu[p+j*n], lu[k+j*n]
			}
		}

		pivot = lu[k+k*n]
		if pivot == zr {
			continue
		}

		// Stage 3: multipliers and rank-1 update.
		for i = k + 1; i <= iMax; i++ {
			lu[i+k*n] /= pivot
		}
		for j = k + 1; j <= jMax; j++ {
			t = lu[k+j*n]
			for i = k + 1; i <= iMax; i++ {
				lu[i+j*n] -= lu[i+k*n] * t
			}
		}
	}

	return f
}

func (f *luFactor[T]) solve(b []T) {
	n, lu := f.n, f.lu
	var i, k, p int
	for k = 0; k < n; k++ {
		if p = f.piv[k]; p != k {
			b[k], b[p] = b[p], b[k]
		}
		for i = k + 1; i <= min(n-1, k+f.kl); i++ {
			b[i] -= lu[i+k*n] * b[k]
		}
	}
	for k = n - 1; k >= 0; k-- {
		b[k] /= lu[k+k*n]
		for i = max(0, k-f.kl-f.ku); i < k; i++ {
			b[i] -= lu[i+k*n] * b[k]
		}
	}
}

func (f *luFactor[T]) solveH(b []T) {
	n, lu := f.n, f.lu
	var i, k, p int
	var s T
	// Uᴴ·y = b.
	for k = 0; k < n; k++ {
		s = b[k]
		for i = max(0, k-f.kl-f.ku); i < k; i++ {
			s -= Conj(lu[i+k*n]) * b[i]
		}
		b[k] = s / Conj(lu[k+k*n])
	}
	// Undo the elementary eliminations and swaps in reverse.
	for k = n - 1; k >= 0; k-- {
		s = b[k]
		for i = k + 1; i <= min(n-1, k+f.kl); i++ {
			s -= Conj(lu[i+k*n]) * b[i]
		}
		b[k] = s
		if p = f.piv[k]; p != k {
			b[k], b[p] = b[p], b[k]
		}
	}
}

func (f *luFactor[T]) pivots() []float64 { return diagAbs(f.lu, f.n) }

// ---------- Cholesky ----------

// cholFactor holds L with A = L·Lᴴ in its lower triangle.
type cholFactor[T Scalar] struct {
	l []T
	n int
}

// newCholesky factors the Hermitian matrix a using its lower triangle.
// It reports false when a is not positive definite.
// Complexity: O(n³/3).
func newCholesky[T Scalar](a []T, n int) (*cholFactor[T], bool) {
	l := make([]T, n*n)
	var (
		i, j, k int
		d       float64
		s       T
	)
	for j = 0; j < n; j++ {
		d = Real(a[j+j*n])
		for k = 0; k < j; k++ {
			m := Abs(l[j+k*n])
			d -= m * m
		}
		if !(d > 0) {
			return nil, false
		}
		ljj := math.Sqrt(d)
		l[j+j*n] = FromFloat[T](ljj)
		for i = j + 1; i < n; i++ {
			s = a[i+j*n]
			for k = 0; k < j; k++ {
				s -= l[i+k*n] * Conj(l[j+k*n])
			}
			l[i+j*n] = s / FromFloat[T](ljj)
		}
	}

	return &cholFactor[T]{l: l, n: n}, true
}

func (f *cholFactor[T]) solve(b []T) {
	forwardLower(f.l, f.n, b, false)
	backLowerH(f.l, f.n, b)
}

// solveH equals solve since A is Hermitian.
func (f *cholFactor[T]) solveH(b []T) { f.solve(b) }

func (f *cholFactor[T]) pivots() []float64 {
	p := diagAbs(f.l, f.n)
	for i := range p {
		p[i] *= p[i]
	}

	return p
}

// ---------- helpers ----------

func absAll[T Scalar](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = Abs(x)
	}

	return out
}

func diagAbs[T Scalar](a []T, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = Abs(a[i+i*n])
	}

	return out
}
