// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
	"github.com/katalvlaran/ndarith/linalg"
	"github.com/katalvlaran/ndarith/value"
)

// maxIntPow bounds the exponent handled by repeated squaring for complex
// bases; larger exponents go through cmplx.Pow.
const maxIntPow = 1 << 20

// numeric returns the kernel of op for full and scalar operands whose
// documented result type is res. Arithmetic runs in complex128 when either
// operand is complex and in float64 otherwise.
func numeric(op Op, res value.Type) Kernel {
	return func(x *Env, a, b value.Value) (value.Value, error) {
		if isComplex(a, b) {
			return compute[complex128](x, op, a, b, res)
		}

		return compute[float64](x, op, a, b, res)
	}
}

// compute evaluates op over a and b in element type E.
// Implementation:
//   - Stage 1: expand both operands to full arrays of E.
//   - Stage 2: relational and logical operators yield bool arrays.
//   - Stage 3: real powers that need complex results restart in complex128
//     with a complex result kind.
//   - Stage 4: arithmetic, then narrowing to res.
func compute[E num](x *Env, op Op, a, b value.Value, res value.Type) (value.Value, error) {
	fa, fb := full[E](a), full[E](b)
	switch {
	case op.IsComparison():
		r, err := compare(x.ordering, op, fa, fb)
		if err != nil {
			return nil, err
		}
		return denseResult(r, res)
	case op.IsLogical():
		r, err := logical(op, fa, fb)
		if err != nil {
			return nil, err
		}
		return denseResult(r, res)
	case (op == Pow || op == ElPow) && isRealElem[E]() && res.Kind.IsFloat():
		if powNeedsComplex(op, fa, fb) {
			return compute[complex128](x, op, a, b, res.WithKind(res.Kind.Complexify()))
		}
	}
	r, err := arith(x, op, fa, fb)
	if err != nil {
		return nil, err
	}

	return denseResult(r, res)
}

// arith evaluates an arithmetic operator on full arrays.
func arith[E num](x *Env, op Op, a, b *array.Dense[E]) (*array.Dense[E], error) {
	switch op {
	case Add:
		return broadcast(op, a, b, func(p, q E) E { return p + q })
	case Sub:
		return broadcast(op, a, b, func(p, q E) E { return p - q })
	case ElMul:
		return broadcast(op, a, b, func(p, q E) E { return p * q })
	case ElDiv:
		return broadcast(op, a, b, func(p, q E) E { return p / q })
	case ElLDiv:
		return broadcast(op, a, b, func(p, q E) E { return q / p })
	case ElPow:
		return broadcast(op, a, b, powElem[E])
	case Mul:
		if a.Numel() == 1 || b.Numel() == 1 {
			return broadcast(op, a, b, func(p, q E) E { return p * q })
		}
		r, err := linalg.MatMul(a, b)
		return r, shapeErr(err)
	case Div:
		if b.Numel() == 1 {
			return broadcast(op, a, b, func(p, q E) E { return p / q })
		}
		r, info, err := linalg.SolveRight(a, b, x.params())
		if err != nil {
			return nil, shapeErr(err)
		}
		x.solved(info)
		return r, nil
	case LDiv:
		if a.Numel() == 1 {
			return broadcast(op, a, b, func(p, q E) E { return q / p })
		}
		r, info, err := linalg.Solve(a, b, x.params())
		if err != nil {
			return nil, shapeErr(err)
		}
		x.solved(info)
		return r, nil
	case Pow:
		return mpower(x, a, b)
	}

	return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedOperator)
}

// broadcast applies f element by element. A one-element operand is applied
// against every element of the other; otherwise the shapes must be equal.
// Complexity: O(numel).
func broadcast[E, R array.Elem](op Op, a, b *array.Dense[E], f func(E, E) R) (*array.Dense[R], error) {
	ad, bd := a.Dims(), b.Dims()
	var d dims.Vector
	switch {
	case a.Numel() == 1:
		d = bd
	case b.Numel() == 1:
		d = ad
	case ad.Equal(bd):
		d = ad
	default:
		return nil, fmt.Errorf("operator %s: nonconformant arguments (op1 is %s, op2 is %s): %w",
			op.Symbol(), ad, bd, ErrNonconformant)
	}
	out, err := array.New[R](d)
	if err != nil {
		return nil, err
	}
	as, bs := a.Numel() == 1, b.Numel() == 1
	dst := out.Data()
	var i, ia, ib int
	for i = range dst {
		ia, ib = i, i
		if as {
			ia = 0
		}
		if bs {
			ib = 0
		}
		dst[i] = f(a.Elem(ia), b.Elem(ib))
	}

	return out, nil
}

// shapeErr classifies N-d and non-square operands of matrix operators as
// nonconformant.
func shapeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, linalg.ErrNotMatrix) || errors.Is(err, linalg.ErrNotSquare) {
		return fmt.Errorf("%w: %w", ErrNonconformant, err)
	}

	return err
}

// isRealElem reports whether E is float64.
func isRealElem[E num]() bool {
	var z E
	_, ok := any(z).(float64)

	return ok
}

// isInteger reports whether f is a finite integer value.
func isInteger(f float64) bool { return f == math.Trunc(f) && !math.IsInf(f, 0) }

// powElem is the scalar power: math.Pow for reals, exact repeated
// squaring for complex bases with integer exponents, cmplx.Pow otherwise.
func powElem[E num](p, q E) E {
	switch pv := any(p).(type) {
	case float64:
		return any(math.Pow(pv, any(q).(float64))).(E)
	case complex128:
		qv := any(q).(complex128)
		if imag(qv) == 0 && isInteger(real(qv)) && math.Abs(real(qv)) <= maxIntPow {
			return any(cpowInt(pv, int(real(qv)))).(E)
		}
		return any(cmplx.Pow(pv, qv)).(E)
	}

	return p
}

// cpowInt returns z^n by binary exponentiation.
func cpowInt(z complex128, n int) complex128 {
	if n < 0 {
		return 1 / cpowInt(z, -n)
	}
	r := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			r *= z
		}
		z *= z
		n >>= 1
	}

	return r
}

// powNeedsComplex reports whether a real power produces complex values:
// a negative base meets a non-integer exponent, or a negative scalar is
// raised to a matrix.
func powNeedsComplex[E num](op Op, a, b *array.Dense[E]) bool {
	if a.Numel() == 0 || b.Numel() == 0 {
		return false
	}
	an, bn := a.Numel() == 1, b.Numel() == 1
	if op == Pow && an && !bn {
		return linalg.Real(a.Elem(0)) < 0
	}
	if op == Pow && !an {
		return false
	}
	if !an && !bn && !a.Dims().Equal(b.Dims()) {
		return false
	}
	n := max(a.Numel(), b.Numel())
	var i int
	var p, q float64
	for i = 0; i < n; i++ {
		p, q = linalg.Real(a.Elem(min(i, a.Numel()-1))), linalg.Real(b.Elem(min(i, b.Numel()-1)))
		if p < 0 && !isInteger(q) && !math.IsInf(q, 0) {
			return true
		}
	}

	return false
}

// mpower is the matrix power a^b.
//   - scalar ^ scalar: elementwise power.
//   - square matrix ^ integer scalar: repeated squaring, inverse for
//     negative exponents.
//   - scalar ^ square matrix: s raised to each entry when B is diagonal,
//     expm(log(s) * B) otherwise. The expm path is accurate to a few ulps
//     of the result norm, not exact.
//
// Errors:
//   - ErrNonconformant for non-square or two non-scalar operands.
//   - ErrNotImplemented for a non-integer power of a non-scalar matrix.
func mpower[E num](x *Env, a, b *array.Dense[E]) (*array.Dense[E], error) {
	an, bn := a.Numel() == 1, b.Numel() == 1
	switch {
	case an && bn:
		return broadcast(Pow, a, b, powElem[E])
	case bn:
		if !isSquare(a) {
			return nil, powShapeErr(a, b)
		}
		p := b.Elem(0)
		pr := linalg.Real(p)
		if linalg.Abs(p) != math.Abs(pr) || !isInteger(pr) || math.Abs(pr) > math.MaxInt32 {
			return nil, fmt.Errorf("operator ^: non-integer power %v of a %s matrix: %w",
				p, a.Dims(), ErrNotImplemented)
		}
		r, info, err := linalg.MPowInt(a, int(pr), x.params())
		if err != nil {
			return nil, shapeErr(err)
		}
		x.solved(info)
		return r, nil
	case an:
		if !isSquare(b) {
			return nil, powShapeErr(a, b)
		}
		if isDiagonal(b) {
			return diagPower(a.Elem(0), b)
		}
		l := logElem(a.Elem(0))
		return linalg.Expm(array.Map(b, func(v E) E { return v * l }))
	}

	return nil, powShapeErr(a, b)
}

// isDiagonal reports whether every off-diagonal entry of the square b is
// zero.
func isDiagonal[E num](b *array.Dense[E]) bool {
	var zero E
	n := b.Rows()
	var i, j int
	for j = 0; j < n; j++ {
		for i = 0; i < n; i++ {
			if i != j && b.Elem(i+j*n) != zero {
				return false
			}
		}
	}

	return true
}

// diagPower is s^B for a diagonal B: s raised to each diagonal entry, zero
// elsewhere.
func diagPower[E num](s E, b *array.Dense[E]) (*array.Dense[E], error) {
	out, err := array.New[E](b.Dims())
	if err != nil {
		return nil, err
	}
	n := b.Rows()
	for i := 0; i < n; i++ {
		out.SetElem(i+i*n, powElem(s, b.Elem(i+i*n)))
	}

	return out, nil
}

func isSquare[E array.Elem](a *array.Dense[E]) bool {
	return dims.IsMatrix(a.Dims()) && a.Rows() == a.Cols()
}

func powShapeErr[E array.Elem](a, b *array.Dense[E]) error {
	return fmt.Errorf("for x^y, only square matrix arguments are permitted and one argument must be scalar (op1 is %s, op2 is %s): %w",
		a.Dims(), b.Dims(), ErrNonconformant)
}

// logElem is the natural logarithm (principal branch for complex).
func logElem[E num](v E) E {
	switch x := any(v).(type) {
	case float64:
		return any(math.Log(x)).(E)
	case complex128:
		return any(cmplx.Log(x)).(E)
	}

	return v
}
