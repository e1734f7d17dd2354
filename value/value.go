// SPDX-License-Identifier: MIT

package value

import (
	"fmt"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/diag"
	"github.com/katalvlaran/ndarith/dims"
)

// Value is a typed runtime value. The interface is sealed: the only
// implementations are Scalar, Dense and Diag.
type Value interface {
	// Type returns the runtime type tag.
	Type() Type
	// Dims returns the logical shape (1x1 for scalars).
	Dims() dims.Vector
	// String renders the value for diagnostics.
	String() string

	toKind(k Kind) Value
	toClass(c Class) Value
	complexData() []complex128
}

// Scalar is a single element of type T.
type Scalar[T array.Elem] struct {
	V T
}

// Dense is a full array value.
type Dense[T array.Elem] struct {
	A *array.Dense[T]
}

// Diag is a diagonal matrix value.
type Diag[T diag.Elem] struct {
	D *diag.Array[T]
}

// NewScalar wraps v.
func NewScalar[T array.Elem](v T) Scalar[T] { return Scalar[T]{V: v} }

// NewDense wraps a.
func NewDense[T array.Elem](a *array.Dense[T]) Dense[T] { return Dense[T]{A: a} }

// NewDiag wraps d.
func NewDiag[T diag.Elem](d *diag.Array[T]) Diag[T] { return Diag[T]{D: d} }

// MatrixOf builds a Dense value of shape d from column-major data.
func MatrixOf[T array.Elem](d dims.Vector, data []T) (Dense[T], error) {
	a, err := array.FromSlice(d, data)
	if err != nil {
		return Dense[T]{}, valueErrorf("MatrixOf", err)
	}

	return Dense[T]{A: a}, nil
}

// KindOf returns the Kind matching the Go element type T.
func KindOf[T array.Elem]() Kind {
	var z T
	switch any(z).(type) {
	case bool:
		return KindBool
	case int8:
		return KindInt8
	case float32:
		return KindSingle
	case float64:
		return KindDouble
	case complex64:
		return KindSingleComplex
	default:
		return KindComplex
	}
}

// ---------- Scalar ----------

func (s Scalar[T]) Type() Type { return Type{Class: ClassScalar, Kind: KindOf[T]()} }
func (s Scalar[T]) Dims() dims.Vector { return dims.New(1, 1) }
func (s Scalar[T]) String() string { return fmt.Sprintf("%v", s.V) }
func (s Scalar[T]) toKind(k Kind) Value { return scalarAs(s.V, k) }
func (s Scalar[T]) complexData() []complex128 { return []complex128{toComplex(s.V)} }

func (s Scalar[T]) toClass(c Class) Value {
	switch c {
	case ClassMatrix:
		return Dense[T]{A: array.Scalar(s.V)}
	case ClassDiagonal:
		return diagOfScalar(s.V)
	}

	return s
}

// ---------- Dense ----------

func (m Dense[T]) Type() Type { return Type{Class: ClassMatrix, Kind: KindOf[T]()} }
func (m Dense[T]) Dims() dims.Vector { return m.A.Dims() }
func (m Dense[T]) String() string { return m.A.String() }
func (m Dense[T]) toClass(Class) Value { return m }
func (m Dense[T]) toKind(k Kind) Value { return denseAs(m.A, k) }

func (m Dense[T]) complexData() []complex128 {
	src := m.A.Data()
	out := make([]complex128, len(src))
	for i, v := range src {
		out[i] = toComplex(v)
	}

	return out
}

// ---------- Diag ----------

func (d Diag[T]) Type() Type { return Type{Class: ClassDiagonal, Kind: KindOf[T]()} }
func (d Diag[T]) Dims() dims.Vector { return d.D.Dims() }
func (d Diag[T]) String() string { return d.D.String() }
func (d Diag[T]) toKind(k Kind) Value { return diagAs(d.D, k) }

func (d Diag[T]) toClass(c Class) Value {
	if c == ClassMatrix {
		return Dense[T]{A: d.D.ToDense()}
	}

	return d
}

func (d Diag[T]) complexData() []complex128 {
	src := d.D.Data()
	out := make([]complex128, len(src))
	for i, v := range src {
		out[i] = toComplex(v)
	}

	return out
}

// diagOfScalar builds a 1x1 diagonal matrix. Non-floating kinds cannot be
// diagonal; Convert never asks for them because the target type is valid.
func diagOfScalar[T array.Elem](v T) Value {
	switch x := any(v).(type) {
	case float32:
		return Diag[float32]{D: diag.FromDiagonal([]float32{x})}
	case float64:
		return Diag[float64]{D: diag.FromDiagonal([]float64{x})}
	case complex64:
		return Diag[complex64]{D: diag.FromDiagonal([]complex64{x})}
	case complex128:
		return Diag[complex128]{D: diag.FromDiagonal([]complex128{x})}
	}

	return Scalar[T]{V: v}
}

// Numel returns the logical element count of v.
func Numel(v Value) int { return v.Dims().Numel() }

// IsScalarShaped reports whether v holds exactly one element, whatever its
// class.
func IsScalarShaped(v Value) bool { return Numel(v) == 1 }

// Equal reports whether a and b have the same type, shape and elements.
// NaN compares equal to NaN.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() || !a.Dims().Equal(b.Dims()) {
		return false
	}
	ad, bd := a.complexData(), b.complexData()
	if len(ad) != len(bd) {
		return false
	}
	for i := range ad {
		if ad[i] != bd[i] && !(isNaNC(ad[i]) && isNaNC(bd[i])) {
			return false
		}
	}

	return true
}

// ComplexData returns the elements of v widened to complex128 (the diagonal
// entries for diagonal values), column-major.
func ComplexData(v Value) []complex128 { return v.complexData() }
