// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/diag"
	"github.com/katalvlaran/ndarith/linalg"
	"github.com/katalvlaran/ndarith/value"
)

// num is the element set kernels compute in; single precision operands are
// computed in double and rounded back by value.Recast.
type num = linalg.Scalar

// full returns v as a full array of element type E. Scalars become 1x1 and
// diagonal matrices are expanded.
func full[E array.Elem](v value.Value) *array.Dense[E] {
	m, err := value.Convert(v, v.Type().WithClass(value.ClassMatrix))
	if err != nil {
		// class widening of a valid value cannot fail
		m = v
	}
	switch x := m.(type) {
	case value.Dense[bool]:
		return array.Map(x.A, value.Cast[E, bool])
	case value.Dense[int8]:
		return array.Map(x.A, value.Cast[E, int8])
	case value.Dense[float32]:
		return array.Map(x.A, value.Cast[E, float32])
	case value.Dense[float64]:
		return array.Map(x.A, value.Cast[E, float64])
	case value.Dense[complex64]:
		return array.Map(x.A, value.Cast[E, complex64])
	case value.Dense[complex128]:
		return array.Map(x.A, value.Cast[E, complex128])
	}

	return array.Scalar(value.Cast[E](value.ComplexData(v)[0]))
}

// diagOf returns the diagonal store of v as element type E. v must be of
// diagonal class.
func diagOf[E diag.Elem](v value.Value) *diag.Array[E] {
	switch x := v.(type) {
	case value.Diag[float32]:
		return value.CastDiag[E](x.D)
	case value.Diag[float64]:
		return value.CastDiag[E](x.D)
	case value.Diag[complex64]:
		return value.CastDiag[E](x.D)
	case value.Diag[complex128]:
		return value.CastDiag[E](x.D)
	}

	return diag.FromDiagonal([]E{scalarOf[E](v)})
}

// scalarOf returns the first element of v as E.
func scalarOf[E array.Elem](v value.Value) E {
	return value.Cast[E](value.ComplexData(v)[0])
}

// isComplex reports whether either operand holds complex elements.
func isComplex(a, b value.Value) bool {
	return a.Type().Kind.IsComplex() || b.Type().Kind.IsComplex()
}

// denseResult narrows a computed array to the documented result type.
func denseResult[E array.Elem](a *array.Dense[E], res value.Type) (value.Value, error) {
	return value.Recast(value.NewDense(a), res)
}

// diagResult builds an r x c diagonal result of kind k from its entries.
func diagResult[E array.Elem](k value.Kind, r, c int, entries []E) (value.Value, error) {
	return value.DiagOf(k, r, c, value.CastSlice[complex128](entries))
}

// isNaN reports whether v (or either part of a complex v) is NaN.
func isNaN[E num](v E) bool { return v != v }
