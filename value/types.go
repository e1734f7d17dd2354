// SPDX-License-Identifier: MIT

package value

import (
	"fmt"
	"strings"
)

// Class is the structural class of a value.
type Class uint8

const (
	ClassScalar Class = iota
	ClassDiagonal
	ClassMatrix
)

// Kind is the element category of a value.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt8
	KindSingle
	KindDouble
	KindSingleComplex
	KindComplex
)

// numKinds and numClasses size the rank arithmetic.
const (
	numClasses = 3
	numKinds   = 6
)

var kindNames = [numKinds]string{"bool", "int8", "single", "double", "single complex", "complex"}

// String returns the element category name.
func (k Kind) String() string {
	if int(k) >= numKinds {
		return fmt.Sprintf("Kind(%d)", k)
	}

	return kindNames[k]
}

// IsComplex reports whether k holds complex elements.
func (k Kind) IsComplex() bool { return k == KindSingleComplex || k == KindComplex }

// IsSingle reports whether k is single precision.
func (k Kind) IsSingle() bool { return k == KindSingle || k == KindSingleComplex }

// IsFloat reports whether k is one of the four floating kinds.
func (k Kind) IsFloat() bool { return k >= KindSingle && k <= KindComplex }

// Complexify returns the complex kind of the same precision (identity for
// complex kinds; bool and int8 map to double complex).
func (k Kind) Complexify() Kind {
	switch k {
	case KindSingle, KindSingleComplex:
		return KindSingleComplex
	default:
		return KindComplex
	}
}

// Realify returns the real kind of the same precision.
func (k Kind) Realify() Kind {
	switch k {
	case KindSingleComplex:
		return KindSingle
	case KindComplex:
		return KindDouble
	default:
		return k
	}
}

// Type is the runtime type tag of a value: (Class, Kind).
type Type struct {
	Class Class
	Kind  Kind
}

// Valid reports whether t names one of AllTypes. Diagonal values exist only
// for the floating kinds.
func (t Type) Valid() bool {
	if int(t.Class) >= numClasses || int(t.Kind) >= numKinds {
		return false
	}

	return t.Class != ClassDiagonal || t.Kind.IsFloat()
}

// Rank orders types for widening preference: kind first, then class.
func (t Type) Rank() int { return int(t.Kind)*numClasses + int(t.Class) }

// WithClass returns t with its class replaced.
func (t Type) WithClass(c Class) Type { return Type{Class: c, Kind: t.Kind} }

// WithKind returns t with its kind replaced.
func (t Type) WithKind(k Kind) Type { return Type{Class: t.Class, Kind: k} }

// String returns the interpreter type name, e.g. "complex matrix".
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d,%d)", t.Class, t.Kind)
	}
	switch t.Class {
	case ClassScalar:
		return scalarNames[t.Kind]
	case ClassDiagonal:
		return prefix[t.Kind] + "diagonal matrix"
	default:
		return prefix[t.Kind] + "matrix"
	}
}

var (
	scalarNames = [numKinds]string{"bool", "int8 scalar", "float scalar", "scalar", "float complex scalar", "complex scalar"}
	prefix      = [numKinds]string{"bool ", "int8 ", "float ", "", "float complex ", "complex "}
)

// Shorthand type tags.
var (
	Bool                 = Type{ClassScalar, KindBool}
	BoolMatrix           = Type{ClassMatrix, KindBool}
	Int8Scalar           = Type{ClassScalar, KindInt8}
	Int8Matrix           = Type{ClassMatrix, KindInt8}
	FloatScalar          = Type{ClassScalar, KindSingle}
	Double               = Type{ClassScalar, KindDouble}
	FloatComplexScalar   = Type{ClassScalar, KindSingleComplex}
	ComplexScalar        = Type{ClassScalar, KindComplex}
	FloatMatrix          = Type{ClassMatrix, KindSingle}
	Matrix               = Type{ClassMatrix, KindDouble}
	FloatComplexMatrix   = Type{ClassMatrix, KindSingleComplex}
	ComplexMatrix        = Type{ClassMatrix, KindComplex}
	FloatDiagonal        = Type{ClassDiagonal, KindSingle}
	Diagonal             = Type{ClassDiagonal, KindDouble}
	FloatComplexDiagonal = Type{ClassDiagonal, KindSingleComplex}
	ComplexDiagonal      = Type{ClassDiagonal, KindComplex}
)

// AllTypes lists every valid type tag in rank order.
var AllTypes = func() []Type {
	out := make([]Type, 0, 16)
	for k := Kind(0); k < numKinds; k++ {
		for c := Class(0); c < numClasses; c++ {
			if t := (Type{Class: c, Kind: k}); t.Valid() {
				out = append(out, t)
			}
		}
	}

	return out
}()

// ParseType resolves an interpreter type name (case-insensitive, surrounding
// blanks ignored).
// Errors: ErrUnknownType.
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.Join(strings.Fields(name), " "))
	for _, t := range AllTypes {
		if t.String() == n {
			return t, nil
		}
	}

	return Type{}, fmt.Errorf("%q: %w", name, ErrUnknownType)
}
