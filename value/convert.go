// SPDX-License-Identifier: MIT

// Package value - lossless conversion between type tags.
//
// Purpose:
//   - Widen a value to a larger kind (bool < int8 < single < double,
//     real < complex) and a larger class (scalar < diagonal < matrix).
//   - Reject narrowing with ErrNarrowing so kernels never silently lose
//     imaginary parts or precision.
//
// Kind order for lossless widening:
//
//	bool  -> any kind
//	int8  -> any kind but bool
//	single -> double, single complex, complex
//	double -> complex
//	single complex -> complex

package value

import (
	"fmt"
	"math"
	"math/cmplx"

	"fortio.org/safecast"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/diag"
	"github.com/katalvlaran/ndarith/dims"
)

// KindWidens reports whether every value of kind from is exactly
// representable in kind to.
func KindWidens(from, to Kind) bool {
	if from == to {
		return true
	}
	switch from {
	case KindBool:
		return true
	case KindInt8:
		return to != KindBool
	case KindSingle:
		return to == KindDouble || to == KindSingleComplex || to == KindComplex
	case KindDouble, KindSingleComplex:
		return to == KindComplex
	}

	return false
}

// ClassWidens reports whether a value of class from can be re-expressed in
// class to without losing elements.
func ClassWidens(from, to Class) bool { return from <= to }

// Convert returns v re-expressed as type to.
// Implementation:
//   - Stage 1: validate the target and the direction of both axes.
//   - Stage 2: convert the element kind, keeping the class.
//   - Stage 3: convert the class (scalar -> 1x1, diagonal -> full).
//
// Errors:
//   - ErrUnknownType for an invalid target tag.
//   - ErrNarrowing when either axis would narrow.
//
// Complexity: O(numel).
func Convert(v Value, to Type) (Value, error) {
	if !to.Valid() {
		return nil, valueErrorf("Convert", fmt.Errorf("%v: %w", to, ErrUnknownType))
	}
	from := v.Type()
	if from == to {
		return v, nil
	}
	if !KindWidens(from.Kind, to.Kind) || !ClassWidens(from.Class, to.Class) {
		return nil, valueErrorf("Convert",
			fmt.Errorf("%s to %s: %w", from, to, ErrNarrowing))
	}
	out := v
	if from.Kind != to.Kind {
		out = out.toKind(to.Kind)
	}
	if from.Class != to.Class {
		out = out.toClass(to.Class)
	}

	return out, nil
}

// Zero returns the default instance of t: a zero scalar, or a 1x1 zero
// matrix or diagonal matrix.
// Errors: ErrUnknownType for an invalid tag.
func Zero(t Type) (Value, error) {
	if !t.Valid() {
		return nil, valueErrorf("Zero", fmt.Errorf("%v: %w", t, ErrUnknownType))
	}

	return Scalar[bool]{}.toKind(t.Kind).toClass(t.Class), nil
}

// SaturateInt8 rounds f half away from zero and clamps it to [-128, 127].
// NaN maps to 0.
func SaturateInt8(f float64) int8 {
	if math.IsNaN(f) {
		return 0
	}
	v, err := safecast.Round[int8](f)
	if err != nil {
		if f > 0 {
			return math.MaxInt8
		}
		return math.MinInt8
	}

	return v
}

// toComplex widens any element to complex128.
func toComplex[T array.Elem](x T) complex128 {
	switch v := any(x).(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case int8:
		return complex(float64(v), 0)
	case float32:
		return complex(float64(v), 0)
	case float64:
		return complex(v, 0)
	case complex64:
		return complex128(v)
	case complex128:
		return v
	}

	return 0
}

// fromComplex narrows c to U: bool is c != 0, int8 saturates the real part,
// reals drop the imaginary part.
func fromComplex[U array.Elem](c complex128) U {
	var z U
	switch any(z).(type) {
	case bool:
		return any(c != 0).(U)
	case int8:
		return any(SaturateInt8(real(c))).(U)
	case float32:
		return any(float32(real(c))).(U)
	case float64:
		return any(real(c)).(U)
	case complex64:
		return any(complex64(c)).(U)
	}

	return any(c).(U)
}

// Cast converts one element between element types (see fromComplex for the
// narrowing rules).
func Cast[U, T array.Elem](x T) U { return fromComplex[U](toComplex(x)) }

// CastSlice converts every element of src.
func CastSlice[U, T array.Elem](src []T) []U {
	out := make([]U, len(src))
	for i, x := range src {
		out[i] = Cast[U](x)
	}

	return out
}

func isNaNC(c complex128) bool { return cmplx.IsNaN(c) }

// scalarAs re-expresses a scalar element in kind k.
func scalarAs[T array.Elem](v T, k Kind) Value {
	switch k {
	case KindBool:
		return Scalar[bool]{V: Cast[bool](v)}
	case KindInt8:
		return Scalar[int8]{V: Cast[int8](v)}
	case KindSingle:
		return Scalar[float32]{V: Cast[float32](v)}
	case KindDouble:
		return Scalar[float64]{V: Cast[float64](v)}
	case KindSingleComplex:
		return Scalar[complex64]{V: Cast[complex64](v)}
	default:
		return Scalar[complex128]{V: Cast[complex128](v)}
	}
}

// denseAs re-expresses a full array in kind k.
func denseAs[T array.Elem](a *array.Dense[T], k Kind) Value {
	switch k {
	case KindBool:
		return Dense[bool]{A: array.Map(a, Cast[bool, T])}
	case KindInt8:
		return Dense[int8]{A: array.Map(a, Cast[int8, T])}
	case KindSingle:
		return Dense[float32]{A: array.Map(a, Cast[float32, T])}
	case KindDouble:
		return Dense[float64]{A: array.Map(a, Cast[float64, T])}
	case KindSingleComplex:
		return Dense[complex64]{A: array.Map(a, Cast[complex64, T])}
	default:
		return Dense[complex128]{A: array.Map(a, Cast[complex128, T])}
	}
}

// diagAs re-expresses a diagonal matrix in floating kind k. Non-floating
// kinds fall back to the full matrix form.
func diagAs[T diag.Elem](d *diag.Array[T], k Kind) Value {
	switch k {
	case KindSingle:
		return Diag[float32]{D: CastDiag[float32](d)}
	case KindDouble:
		return Diag[float64]{D: CastDiag[float64](d)}
	case KindSingleComplex:
		return Diag[complex64]{D: CastDiag[complex64](d)}
	case KindComplex:
		return Diag[complex128]{D: CastDiag[complex128](d)}
	default:
		return denseAs(d.ToDense(), k)
	}
}

// CastDiag copies d into a diagonal matrix of element type U (see Cast).
func CastDiag[U, T diag.Elem](d *diag.Array[T]) *diag.Array[U] {
	out, _ := diag.New[U](d.Rows(), d.Cols())
	dst := out.Data()
	for i, v := range d.Data() {
		dst[i] = Cast[U](v)
	}

	return out
}

// DiagOf builds a diagonal value of kind k and shape r x c from complex
// diagonal entries; k must be a floating kind.
func DiagOf(k Kind, r, c int, entries []complex128) (Value, error) {
	base, err := diag.New[complex128](r, c)
	if err != nil {
		return nil, valueErrorf("DiagOf", err)
	}
	if len(entries) != base.Len() {
		return nil, valueErrorf("DiagOf",
			fmt.Errorf("%d entries for %s: %w", len(entries), dims.New(r, c), ErrBadLiteral))
	}
	if !k.IsFloat() {
		return nil, valueErrorf("DiagOf", fmt.Errorf("%v diagonal: %w", k, ErrUnknownType))
	}
	copy(base.Data(), entries)

	return diagAs(base, k), nil
}

// Recast re-expresses v as type to, narrowing when needed.
//   - Kinds follow the Cast rules (int8 saturates, reals drop the
//     imaginary part, single rounds).
//   - A one-element value may become a scalar; any value may widen its
//     class. Other class narrowing (matrix to diagonal, or a larger matrix
//     to scalar) fails with ErrNarrowing.
//
// Kernels use Recast to bring a result computed in double precision back to
// its documented type.
func Recast(v Value, to Type) (Value, error) {
	if !to.Valid() {
		return nil, valueErrorf("Recast", fmt.Errorf("%v: %w", to, ErrUnknownType))
	}
	from := v.Type()
	if from == to {
		return v, nil
	}
	if to.Class == ClassScalar && from.Class != ClassScalar {
		if Numel(v) != 1 {
			return nil, valueErrorf("Recast",
				fmt.Errorf("%s %s to %s: %w", v.Dims(), from, to, ErrNarrowing))
		}
		return Scalar[complex128]{V: v.complexData()[0]}.toKind(to.Kind), nil
	}
	if to.Class == ClassDiagonal && from.Class == ClassMatrix {
		return nil, valueErrorf("Recast", fmt.Errorf("%s to %s: %w", from, to, ErrNarrowing))
	}
	out := v
	if from.Kind != to.Kind {
		out = out.toKind(to.Kind)
	}
	if out.Type().Class != to.Class {
		out = out.toClass(to.Class)
	}

	return out, nil
}
