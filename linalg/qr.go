// SPDX-License-Identifier: MIT

// Package linalg - Householder QR for rectangular systems.
//
// Purpose:
//   - Overdetermined A (m > n): minimize ‖A·x - b‖₂ with x = R⁻¹·Qᴴ·b.
//   - Underdetermined A (m < n): minimum-norm x from the QR of Aᴴ:
//     Aᴴ = Q·R, Rᴴ·y = b, x = Q·[y; 0].
//
// Rank deficiency: diagonal entries of R below max(m,n)·eps·max|R(i,i)| are
// treated as zero and the matching unknowns are set to zero.

package linalg

import (
	"math"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
)

// householder is an in-place QR of a column-major m x n matrix (m >= n).
// After factoring, R occupies the upper triangle of w and reflector k is
// I - tau[k]·v[k]·v[k]ᴴ acting on rows k..m-1.
type householder[T Scalar] struct {
	w    []T
	m, n int
	v    [][]T
	tau  []float64
}

// newHouseholder factors a copy of a (m x n, m >= n).
// Implementation:
//   - Stage 1: norm of column k below the diagonal.
//   - Stage 2: alpha = -phase(w(k,k))·norm, v = w(k:,k) - alpha·e1.
//   - Stage 3: apply I - 2vvᴴ/(vᴴv) to the trailing columns.
//
// Complexity: O(m·n²).
func newHouseholder[T Scalar](a []T, m, n int) *householder[T] {
	w := make([]T, len(a))
	copy(w, a)
	h := &householder[T]{w: w, m: m, n: n, v: make([][]T, n), tau: make([]float64, n)}

	var (
		i, j, k     int
		norm, beta  float64
		alpha, s    T
		tauT, scale T
	)
	for k = 0; k < n; k++ {
		// Stage 1: column norm.
		norm = 0
		for i = k; i < m; i++ {
			x := Abs(w[i+k*m])
			norm += x * x
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}

		// Stage 2: reflector vector.
		alpha = -phase(w[k+k*m]) * FromFloat[T](norm)
		v := make([]T, m-k)
		for i = k; i < m; i++ {
			v[i-k] = w[i+k*m]
		}
		v[0] -= alpha
		beta = 0
		for _, x := range v {
			a := Abs(x)
			beta += a * a
		}
		if beta == 0 {
			continue
		}
		h.v[k] = v
		h.tau[k] = 2 / beta
		tauT = FromFloat[T](h.tau[k])

		// Stage 3: update trailing columns.
		for j = k; j < n; j++ {
			s = 0
			for i = k; i < m; i++ {
				s += Conj(v[i-k]) * w[i+j*m]
			}
			scale = tauT * s
			for i = k; i < m; i++ {
				w[i+j*m] -= v[i-k] * scale
			}
		}
	}

	return h
}

// applyQH overwrites b (length m) with Qᴴ·b.
func (h *householder[T]) applyQH(b []T) {
	for k := 0; k < h.n; k++ {
		h.reflect(k, b)
	}
}

// applyQ overwrites b (length m) with Q·b.
func (h *householder[T]) applyQ(b []T) {
	for k := h.n - 1; k >= 0; k-- {
		h.reflect(k, b)
	}
}

// reflect applies reflector k to b.
func (h *householder[T]) reflect(k int, b []T) {
	v := h.v[k]
	if v == nil {
		return
	}
	var s T
	for i, x := range v {
		s += Conj(x) * b[k+i]
	}
	s *= FromFloat[T](h.tau[k])
	for i, x := range v {
		b[k+i] -= x * s
	}
}

// rdiag returns |R(i,i)| and the rank tolerance.
func (h *householder[T]) rdiag() ([]float64, float64) {
	d := make([]float64, h.n)
	mx := 0.0
	for i := range d {
		d[i] = Abs(h.w[i+i*h.m])
		if d[i] > mx {
			mx = d[i]
		}
	}

	return d, float64(max(h.m, h.n)) * Eps * mx
}

// leastSquares solves a rectangular system; see the file header.
func leastSquares[T Scalar](a, b *array.Dense[T]) (*array.Dense[T], Info, error) {
	m, n := a.Rows(), a.Cols()
	k := b.Cols()
	bd := b.Data()
	x, err := array.New[T](dims.New(n, k))
	if err != nil {
		return nil, Info{}, linalgErrorf(opLstSq, err)
	}
	xd := x.Data()

	var h *householder[T]
	if m > n {
		h = newHouseholder(a.Data(), m, n)
	} else {
		ah, err := ConjTranspose(a)
		if err != nil {
			return nil, Info{}, linalgErrorf(opLstSq, err)
		}
		h = newHouseholder(ah.Data(), n, m)
	}
	d, tol := h.rdiag()
	info := rankInfo(d, tol)

	col := make([]T, max(m, n))
	for j := 0; j < k; j++ {
		if m > n {
			// x = R⁻¹ · (Qᴴ b)[0:n].
			copy(col[:m], bd[j*m:(j+1)*m])
			h.applyQH(col[:m])
			backR(h.w, m, n, col[:n], d, tol)
			copy(xd[j*n:(j+1)*n], col[:n])
			continue
		}
		// Rᴴ y = b, x = Q [y; 0].
		copy(col[:m], bd[j*m:(j+1)*m])
		forwardRH(h.w, n, m, col[:m], d, tol)
		for i := m; i < n; i++ {
			col[i] = 0
		}
		h.applyQ(col[:n])
		copy(xd[j*n:(j+1)*n], col[:n])
	}

	return x, info, nil
}

// backR solves R·x = c where R is the leading p x p triangle of the
// ld-row matrix w; unknowns with negligible pivots are zero.
func backR[T Scalar](w []T, ld, p int, c []T, d []float64, tol float64) {
	var i, j int
	var s T
	for i = p - 1; i >= 0; i-- {
		if d[i] <= tol {
			c[i] = 0
			continue
		}
		s = c[i]
		for j = i + 1; j < p; j++ {
			s -= w[i+j*ld] * c[j]
		}
		c[i] = s / w[i+i*ld]
	}
}

// forwardRH solves Rᴴ·y = c for the leading p x p triangle of w.
func forwardRH[T Scalar](w []T, ld, p int, c []T, d []float64, tol float64) {
	var i, j int
	var s T
	for i = 0; i < p; i++ {
		if d[i] <= tol {
			c[i] = 0
			continue
		}
		s = c[i]
		for j = 0; j < i; j++ {
			s -= Conj(w[j+i*ld]) * c[j]
		}
		c[i] = s / Conj(w[i+i*ld])
	}
}

// rankInfo turns R diagonal magnitudes into an Info.
func rankInfo(d []float64, tol float64) Info {
	info := Info{Type: Full}
	mn, mx := math.Inf(1), 0.0
	for _, v := range d {
		if v > tol {
			info.Rank++
		}
		mn = math.Min(mn, v)
		mx = math.Max(mx, v)
	}
	if mx > 0 {
		info.RCond = mn / mx
	}
	info.Singular = info.Rank < len(d)

	return info
}
