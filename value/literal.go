// SPDX-License-Identifier: MIT

package value

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
)

// Literal is the plain interchange form of a value.
//   - Type is the interpreter type name ("complex matrix", "bool", ...).
//   - Dims is the shape; empty means 1x1 for scalars, 1xN for matrices
//     and NxN for diagonal matrices.
//   - Re and Im hold the column-major elements (the diagonal entries for
//     diagonal types). Im is empty for real types and optional for complex
//     ones. Bool elements are nonzero/zero.
type Literal struct {
	Type string    `toml:"type" yaml:"type" msgpack:"type"`
	Dims []int64   `toml:"dims,omitempty" yaml:"dims,omitempty" msgpack:"dims,omitempty"`
	Re   []float64 `toml:"re" yaml:"re" msgpack:"re"`
	Im   []float64 `toml:"im,omitempty" yaml:"im,omitempty" msgpack:"im,omitempty"`
}

// Value builds the typed value described by l.
// Implementation:
//   - Stage 1: resolve the type name and the shape (safecast narrows dims).
//   - Stage 2: check element counts against the shape.
//   - Stage 3: build a complex128 value and narrow it to the target kind.
//
// Errors: ErrUnknownType, ErrBadLiteral, dims.ErrBadShape.
func (l Literal) Value() (Value, error) {
	t, err := ParseType(l.Type)
	if err != nil {
		return nil, valueErrorf("Literal", err)
	}
	d, err := l.shape(t)
	if err != nil {
		return nil, valueErrorf("Literal", err)
	}
	if err = d.Validate(); err != nil {
		return nil, valueErrorf("Literal", err)
	}

	n := d.Numel()
	if t.Class == ClassDiagonal {
		n = min(d.Rows(), d.Cols())
	}
	if len(l.Re) != n {
		return nil, valueErrorf("Literal",
			fmt.Errorf("%s %s needs %d elements, got %d: %w", d, t, n, len(l.Re), ErrBadLiteral))
	}
	if len(l.Im) != 0 && (!t.Kind.IsComplex() || len(l.Im) != n) {
		return nil, valueErrorf("Literal",
			fmt.Errorf("%d imaginary parts for %s: %w", len(l.Im), t, ErrBadLiteral))
	}
	c := make([]complex128, n)
	for i, re := range l.Re {
		im := 0.0
		if len(l.Im) != 0 {
			im = l.Im[i]
		}
		c[i] = complex(re, im)
	}

	switch t.Class {
	case ClassScalar:
		return Scalar[complex128]{V: c[0]}.toKind(t.Kind), nil
	case ClassDiagonal:
		return DiagOf(t.Kind, d.Rows(), d.Cols(), c)
	default:
		a, err := array.FromSlice(d, c)
		if err != nil {
			return nil, valueErrorf("Literal", err)
		}
		return denseAs(a, t.Kind), nil
	}
}

// shape resolves the literal dims with their class defaults.
func (l Literal) shape(t Type) (dims.Vector, error) {
	if len(l.Dims) == 0 {
		switch t.Class {
		case ClassScalar:
			return dims.New(1, 1), nil
		case ClassDiagonal:
			return dims.New(len(l.Re), len(l.Re)), nil
		default:
			return dims.New(1, len(l.Re)), nil
		}
	}
	d := make(dims.Vector, len(l.Dims))
	for i, x := range l.Dims {
		v, err := safecast.Conv[int](x)
		if err != nil {
			return nil, fmt.Errorf("dim %d = %d: %w", i, x, dims.ErrOverflow)
		}
		d[i] = v
	}
	d = d.Normalize()
	if t.Class == ClassScalar && !dims.IsScalar(d) {
		return nil, fmt.Errorf("scalar with shape %s: %w", d, ErrBadLiteral)
	}
	if t.Class == ClassDiagonal && !dims.IsMatrix(d) {
		return nil, fmt.Errorf("diagonal with shape %s: %w", d, ErrBadLiteral)
	}

	return d, nil
}

// LiteralOf returns the interchange form of v.
func LiteralOf(v Value) Literal {
	t := v.Type()
	d := v.Dims()
	l := Literal{Type: t.String(), Dims: make([]int64, len(d))}
	for i, x := range d {
		l.Dims[i] = int64(x)
	}
	c := v.complexData()
	l.Re = make([]float64, len(c))
	for i, x := range c {
		l.Re[i] = real(x)
	}
	if t.Kind.IsComplex() {
		l.Im = make([]float64, len(c))
		for i, x := range c {
			l.Im[i] = imag(x)
		}
	}

	return l
}

// ---------- msgpack codec ----------

// codecSchema is bumped whenever Envelope changes shape.
const codecSchema uint16 = 1

// Envelope is the msgpack record written by Encode.
type Envelope struct {
	Schema uint16    `msgpack:"schema"`
	Values []Literal `msgpack:"values"`
}

// Encode writes vs as one msgpack envelope.
func Encode(w io.Writer, vs ...Value) error {
	env := Envelope{Schema: codecSchema, Values: make([]Literal, len(vs))}
	for i, v := range vs {
		env.Values[i] = LiteralOf(v)
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&env); err != nil {
		return valueErrorf("Encode", err)
	}

	return nil
}

// Decode reads one msgpack envelope written by Encode.
// Errors: ErrSchema, decoding errors, and Literal.Value errors.
func Decode(r io.Reader) ([]Value, error) {
	var env Envelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, valueErrorf("Decode", err)
	}
	if env.Schema != codecSchema {
		return nil, valueErrorf("Decode", fmt.Errorf("schema %d: %w", env.Schema, ErrSchema))
	}
	out := make([]Value, len(env.Values))
	for i, l := range env.Values {
		v, err := l.Value()
		if err != nil {
			return nil, valueErrorf("Decode", fmt.Errorf("value %d: %w", i, err))
		}
		out[i] = v
	}

	return out, nil
}
