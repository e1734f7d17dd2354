// SPDX-License-Identifier: MIT

package linalg

import (
	"math"

	"github.com/katalvlaran/ndarith/array"
)

// MatrixType is the structural class of a square coefficient matrix. It
// selects the solver used by Solve.
type MatrixType int

const (
	Full MatrixType = iota
	Diagonal
	Upper
	Lower
	Banded
	Hermitian
)

var matrixTypeNames = [...]string{"full", "diagonal", "upper", "lower", "banded", "hermitian"}

// String returns the lowercase class name.
func (t MatrixType) String() string {
	if t < 0 || int(t) >= len(matrixTypeNames) {
		return "unknown"
	}

	return matrixTypeNames[t]
}

// Params tune the classification.
//   - Bandden: a matrix is banded when the nonzero density inside its band
//     exceeds this ratio.
//   - SymTol: relative tolerance for the Hermitian symmetry test.
type Params struct {
	Bandden float64
	SymTol  float64
}

// DefaultParams mirrors the default sparse parameter table.
var DefaultParams = Params{Bandden: 0.5, SymTol: 0.001}

// Structure is the classification result.
type Structure struct {
	Type  MatrixType
	Lower int // lower bandwidth
	Upper int // upper bandwidth
}

// Classify inspects a square n x n matrix and returns its structure.
// MAIN DESCRIPTION:
//   - Diagonal when both bandwidths are zero.
//   - Upper / Lower when one bandwidth is zero.
//   - Hermitian when the diagonal is real and positive and
//     |a(i,j) - conj(a(j,i))| <= SymTol * sqrt(a(i,i)*a(j,j)) for all i, j.
//   - Banded when the band is narrower than the matrix and the nonzero
//     density inside it exceeds Bandden.
//   - Full otherwise.
//
// Complexity: O(n²).
func Classify[T Scalar](a *array.Dense[T], p Params) Structure {
	n := a.Rows()
	data := a.Data()
	var zero T

	// Stage 1: bandwidths and nonzero count.
	kl, ku, nnz := 0, 0, 0
	var i, j int
	for j = 0; j < n; j++ {
		for i = 0; i < n; i++ {
			if data[i+j*n] == zero {
				continue
			}
			nnz++
			if i > j && i-j > kl {
				kl = i - j
			}
			if j > i && j-i > ku {
				ku = j - i
			}
		}
	}
	s := Structure{Type: Full, Lower: kl, Upper: ku}
	switch {
	case kl == 0 && ku == 0:
		s.Type = Diagonal
		return s
	case kl == 0:
		s.Type = Upper
		return s
	case ku == 0:
		s.Type = Lower
		return s
	}

	// Stage 2: Hermitian positive diagonal.
	if isHermitian(data, n, p.SymTol) {
		s.Type = Hermitian
		return s
	}

	// Stage 3: band density.
	if kl+ku+1 < n {
		band := (kl+ku+1)*n - (1+ku)*ku/2 - (1+kl)*kl/2
		if float64(nnz)/float64(band) > p.Bandden {
			s.Type = Banded
		}
	}

	return s
}

// isHermitian runs the symmetry test of Classify.
func isHermitian[T Scalar](data []T, n int, tol float64) bool {
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		v := data[i+i*n]
		if Abs(v-FromFloat[T](Real(v))) != 0 || Real(v) <= 0 {
			return false
		}
		diag[i] = Real(v)
	}
	var i, j int
	for j = 0; j < n; j++ {
		for i = j + 1; i < n; i++ {
			d := Abs(data[i+j*n] - Conj(data[j+i*n]))
			if d > tol*math.Sqrt(diag[i]*diag[j]) {
				return false
			}
		}
	}

	return true
}
