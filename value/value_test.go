// SPDX-License-Identifier: MIT

package value_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ndarith/dims"
	"github.com/katalvlaran/ndarith/value"
)

func TestTypes_NamesAndParse(t *testing.T) {
	t.Parallel()

	require.Len(t, value.AllTypes, 16)
	want := map[value.Type]string{
		value.Bool:                 "bool",
		value.BoolMatrix:           "bool matrix",
		value.Int8Scalar:           "int8 scalar",
		value.Int8Matrix:           "int8 matrix",
		value.FloatScalar:          "float scalar",
		value.Double:               "scalar",
		value.ComplexScalar:        "complex scalar",
		value.FloatComplexMatrix:   "float complex matrix",
		value.Matrix:               "matrix",
		value.Diagonal:             "diagonal matrix",
		value.ComplexDiagonal:      "complex diagonal matrix",
		value.FloatComplexDiagonal: "float complex diagonal matrix",
	}
	for typ, name := range want {
		require.Equal(t, name, typ.String())
		got, err := value.ParseType("  " + name + " ")
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}

	_, err := value.ParseType("bool diagonal matrix")
	require.ErrorIs(t, err, value.ErrUnknownType)
	require.False(t, value.Type{Class: value.ClassDiagonal, Kind: value.KindInt8}.Valid())
}

func TestTypes_RankOrder(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(value.AllTypes); i++ {
		require.Less(t, value.AllTypes[i-1].Rank(), value.AllTypes[i].Rank())
	}
	require.Less(t, value.Double.Rank(), value.Matrix.Rank())
	require.Less(t, value.Matrix.Rank(), value.ComplexScalar.Rank())
	require.Less(t, value.FloatMatrix.Rank(), value.Double.Rank())
}

func TestZero_AllTypes(t *testing.T) {
	t.Parallel()

	for _, typ := range value.AllTypes {
		z, err := value.Zero(typ)
		require.NoError(t, err, typ.String())
		require.Equal(t, typ, z.Type())
		require.Equal(t, dims.Vector{1, 1}, z.Dims())
		require.Equal(t, []complex128{0}, value.ComplexData(z))
	}
}

func TestConvert_Widening(t *testing.T) {
	t.Parallel()

	m, err := value.MatrixOf(dims.New(2, 1), []float64{1, -2})
	require.NoError(t, err)

	c, err := value.Convert(m, value.ComplexMatrix)
	require.NoError(t, err)
	require.Equal(t, value.ComplexMatrix, c.Type())
	require.Equal(t, []complex128{1, -2}, value.ComplexData(c))

	s, err := value.Convert(value.NewScalar(true), value.Matrix)
	require.NoError(t, err)
	require.Equal(t, value.Matrix, s.Type())
	require.Equal(t, []complex128{1}, value.ComplexData(s))

	d, err := value.Convert(value.NewScalar(float32(3)), value.Diagonal)
	require.NoError(t, err)
	require.Equal(t, value.Diagonal, d.Type())

	i8, err := value.Convert(value.NewScalar(int8(-7)), value.FloatComplexScalar)
	require.NoError(t, err)
	require.Equal(t, []complex128{-7}, value.ComplexData(i8))
}

func TestConvert_Narrowing(t *testing.T) {
	t.Parallel()

	_, err := value.Convert(value.NewScalar(complex(1, 1)), value.Double)
	require.ErrorIs(t, err, value.ErrNarrowing)

	_, err = value.Convert(value.NewScalar(1.0), value.FloatScalar)
	require.ErrorIs(t, err, value.ErrNarrowing)

	m, err := value.MatrixOf(dims.New(1, 1), []float64{1})
	require.NoError(t, err)
	_, err = value.Convert(m, value.Double)
	require.ErrorIs(t, err, value.ErrNarrowing)

	_, err = value.Convert(m, value.Type{Class: value.ClassDiagonal, Kind: value.KindBool})
	require.ErrorIs(t, err, value.ErrUnknownType)
}

func TestSaturateInt8(t *testing.T) {
	t.Parallel()

	cases := map[float64]int8{
		0: 0, 2.5: 3, -2.5: -3, 126.6: 127, 300: 127, -1e9: -128,
	}
	for in, want := range cases {
		require.Equal(t, want, value.SaturateInt8(in), "%v", in)
	}
	require.Equal(t, int8(0), value.SaturateInt8(math.NaN()))
}

func TestLiteral_RoundTrip(t *testing.T) {
	t.Parallel()

	lits := []value.Literal{
		{Type: "scalar", Re: []float64{2}},
		{Type: "complex matrix", Dims: []int64{2, 2}, Re: []float64{1, 1, 1, 1}, Im: []float64{1, 0, 0, 1}},
		{Type: "bool matrix", Re: []float64{1, 0, 3}},
		{Type: "int8 matrix", Dims: []int64{1, 2}, Re: []float64{200, -3.4}},
		{Type: "diagonal matrix", Dims: []int64{3, 5}, Re: []float64{1, 2, 3}},
		{Type: "float complex scalar", Re: []float64{1}, Im: []float64{-1}},
	}
	vals := make([]value.Value, len(lits))
	for i, l := range lits {
		v, err := l.Value()
		require.NoError(t, err, l.Type)
		vals[i] = v
	}
	require.Equal(t, []complex128{1, 0, 1}, value.ComplexData(vals[2]))
	require.Equal(t, []complex128{127, -3}, value.ComplexData(vals[3]))
	require.Equal(t, dims.Vector{3, 5}, vals[4].Dims())

	for _, v := range vals {
		back, err := value.LiteralOf(v).Value()
		require.NoError(t, err)
		require.True(t, value.Equal(v, back), v.Type().String())
	}

	var buf bytes.Buffer
	require.NoError(t, value.Encode(&buf, vals...))
	decoded, err := value.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, len(vals))
	for i := range vals {
		require.True(t, value.Equal(vals[i], decoded[i]), vals[i].Type().String())
	}
}

func TestLiteral_Errors(t *testing.T) {
	t.Parallel()

	bad := []value.Literal{
		{Type: "matrix", Dims: []int64{2, 2}, Re: []float64{1}},
		{Type: "scalar", Re: []float64{1}, Im: []float64{1}},
		{Type: "scalar", Dims: []int64{1, 2}, Re: []float64{1, 2}},
		{Type: "complex matrix", Re: []float64{1, 2}, Im: []float64{1}},
	}
	for _, l := range bad {
		_, err := l.Value()
		require.ErrorIs(t, err, value.ErrBadLiteral, "%+v", l)
	}

	_, err := value.Literal{Type: "quaternion"}.Value()
	require.ErrorIs(t, err, value.ErrUnknownType)

	_, err = value.Literal{Type: "matrix", Dims: []int64{-1, 2}}.Value()
	require.ErrorIs(t, err, dims.ErrBadShape)
}

func TestRecast(t *testing.T) {
	t.Parallel()

	m, err := value.MatrixOf(dims.New(1, 1), []complex128{complex(300, 0)})
	require.NoError(t, err)

	out, err := value.Recast(m, value.Int8Scalar)
	require.NoError(t, err)
	require.Equal(t, value.NewScalar(int8(127)), out)

	out, err = value.Recast(m, value.Matrix)
	require.NoError(t, err)
	require.Equal(t, value.Matrix, out.Type())
	require.Equal(t, []complex128{300}, value.ComplexData(out))

	same, err := value.Recast(m, value.ComplexMatrix)
	require.NoError(t, err)
	require.Equal(t, m, same)

	wide, err := value.MatrixOf(dims.New(1, 2), []float64{1, 2})
	require.NoError(t, err)
	_, err = value.Recast(wide, value.Double)
	require.ErrorIs(t, err, value.ErrNarrowing)
	_, err = value.Recast(wide, value.Diagonal)
	require.ErrorIs(t, err, value.ErrNarrowing)
	_, err = value.Recast(wide, value.Type{Class: value.ClassDiagonal, Kind: value.KindInt8})
	require.ErrorIs(t, err, value.ErrUnknownType)
}
