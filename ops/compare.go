// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/ndarith/array"
)

// compare evaluates a relational operator elementwise. Equality is exact;
// ordering of complex operands follows ord. Any comparison with NaN is
// false except !=.
func compare[E num](ord ComplexOrdering, op Op, a, b *array.Dense[E]) (*array.Dense[bool], error) {
	var test func(int) bool
	switch op {
	case Eq:
		return broadcast(op, a, b, func(p, q E) bool { return p == q })
	case Ne:
		return broadcast(op, a, b, func(p, q E) bool { return p != q })
	case Lt:
		test = func(c int) bool { return c < 0 }
	case Le:
		test = func(c int) bool { return c <= 0 }
	case Ge:
		test = func(c int) bool { return c >= 0 }
	case Gt:
		test = func(c int) bool { return c > 0 }
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedOperator)
	}

	return broadcast(op, a, b, func(p, q E) bool {
		c, ok := order(ord, p, q)
		return ok && test(c)
	})
}

// order compares p and q; ok is false when they are unordered (NaN).
func order[E num](ord ComplexOrdering, p, q E) (int, bool) {
	switch pv := any(p).(type) {
	case float64:
		return cmp3(pv, any(q).(float64))
	case complex128:
		qv := any(q).(complex128)
		if ord == OrderRealImag {
			if c, ok := cmp3(real(pv), real(qv)); !ok || c != 0 {
				return c, ok
			}
			return cmp3(imag(pv), imag(qv))
		}
		if c, ok := cmp3(cmplx.Abs(pv), cmplx.Abs(qv)); !ok || c != 0 {
			return c, ok
		}
		return cmp3(arg(pv), arg(qv))
	}

	return 0, false
}

// arg is the argument in (-pi, pi].
func arg(z complex128) float64 {
	if a := cmplx.Phase(z); a != -math.Pi {
		return a
	}

	return math.Pi
}

func cmp3(p, q float64) (int, bool) {
	switch {
	case math.IsNaN(p) || math.IsNaN(q):
		return 0, false
	case p < q:
		return -1, true
	case p > q:
		return 1, true
	}

	return 0, true
}

// logical evaluates & or | on the nonzero test of each element.
// Errors: ErrNaNToLogical when an operand holds NaN.
func logical[E num](op Op, a, b *array.Dense[E]) (*array.Dense[bool], error) {
	for _, m := range []*array.Dense[E]{a, b} {
		for _, v := range m.Data() {
			if isNaN(v) {
				return nil, fmt.Errorf("operator %s: %w", op.Symbol(), ErrNaNToLogical)
			}
		}
	}
	var zero E
	if op == ElAnd {
		return broadcast(op, a, b, func(p, q E) bool { return p != zero && q != zero })
	}

	return broadcast(op, a, b, func(p, q E) bool { return p != zero || q != zero })
}
