// SPDX-License-Identifier: MIT

package linalg

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
)

// Scalar is the element set the numeric routines operate on. Single
// precision operands are widened by the caller and narrowed on return.
type Scalar interface {
	float64 | complex128
}

// Eps is the double precision machine epsilon.
const Eps = 0x1p-52

// Abs returns |v|.
func Abs[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}

	return 0
}

// Conj returns the complex conjugate of v (v itself for reals).
func Conj[T Scalar](v T) T {
	if x, ok := any(v).(complex128); ok {
		return any(cmplx.Conj(x)).(T)
	}

	return v
}

// Real returns the real part of v.
func Real[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x
	case complex128:
		return real(x)
	}

	return 0
}

// FromFloat lifts a float64 into T.
func FromFloat[T Scalar](f float64) T {
	var z T
	if _, ok := any(z).(complex128); ok {
		return any(complex(f, 0)).(T)
	}

	return any(f).(T)
}

// phase returns v/|v|, or 1 for v == 0.
func phase[T Scalar](v T) T {
	a := Abs(v)
	if a == 0 {
		return FromFloat[T](1)
	}

	return v / FromFloat[T](a)
}

// isNaN reports whether any component of v is NaN.
func isNaN[T Scalar](v T) bool {
	switch x := any(v).(type) {
	case float64:
		return math.IsNaN(x)
	case complex128:
		return cmplx.IsNaN(x)
	}

	return false
}

// shape2 returns rows and cols of a 2-D operand or ErrNotMatrix.
func shape2[T Scalar](a *array.Dense[T]) (int, int, error) {
	d := a.Dims()
	if !dims.IsMatrix(d) {
		return 0, 0, ErrNotMatrix
	}

	return d[0], d[1], nil
}

// Identity returns the n x n identity.
func Identity[T Scalar](n int) *array.Dense[T] {
	out, _ := array.New[T](dims.New(n, n))
	one := FromFloat[T](1)
	for i := 0; i < n; i++ {
		out.SetElem(i+i*n, one)
	}

	return out
}

// ConjTranspose returns the conjugate transpose aᴴ of a 2-D array.
func ConjTranspose[T Scalar](a *array.Dense[T]) (*array.Dense[T], error) {
	t, err := a.Transpose()
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i, v := range data {
		data[i] = Conj(v)
	}

	return t, nil
}

// Norm1 returns the maximum absolute column sum of a 2-D array.
func Norm1[T Scalar](a *array.Dense[T]) float64 {
	r, c := a.Rows(), a.Cols()
	data := a.Data()
	best := 0.0
	var i, j int
	var s float64
	for j = 0; j < c; j++ {
		s = 0
		for i = 0; i < r; i++ {
			s += Abs(data[i+j*r])
		}
		if s > best || math.IsNaN(s) {
			best = s
		}
	}

	return best
}
