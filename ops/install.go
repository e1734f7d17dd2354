// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/katalvlaran/ndarith/value"
)

// families is the fixed enumeration installed by InstallOperators. Each
// family only adds keys, so the order is irrelevant.
var families = []func(*Builder){
	installNumeric,
	installDiagonal,
	installBool,
	installInt8,
	installConcat,
	installWidenings,
	installAssignConv,
}

// InstallOperators registers the standard kernels, widenings and assignment
// conversions on b.
func InstallOperators(b *Builder) {
	for _, install := range families {
		install(b)
	}
}

// precisions are the two floating precisions; kernels only pair operands of
// equal precision and widening covers the rest.
var precisions = []value.Kind{value.KindSingle, value.KindDouble}

// installNumeric: every operator over scalar and full operands of one
// precision, real and complex mixed.
func installNumeric(b *Builder) {
	for _, p := range precisions {
		var types []value.Type
		for _, k := range []value.Kind{p, p.Complexify()} {
			types = append(types,
				value.Type{Class: value.ClassScalar, Kind: k},
				value.Type{Class: value.ClassMatrix, Kind: k})
		}
		for _, l := range types {
			for _, r := range types {
				for _, op := range Ops() {
					res := resultType(op, l, r)
					b.Register(op, l, r, res, numeric(op, res))
				}
			}
		}
	}
}

// installDiagonal: structure-preserving diagonal kernels.
//
//	dm + dm, dm - dm, dm * dm, dm / dm, dm \ dm -> dm
//	dm * s, s * dm, dm / s                      -> dm
//	dm + m, dm - m, dm * m, dm \ m              -> m
//	m + dm, m - dm, m * dm, m / dm              -> m
func installDiagonal(b *Builder) {
	reg := func(op Op, l, r, res value.Type) { b.Register(op, l, r, res, diagonal(op, res)) }
	for _, p := range precisions {
		kinds := []value.Kind{p, p.Complexify()}
		for _, lk := range kinds {
			for _, rk := range kinds {
				k := combineKind(lk, rk)
				d := value.Type{Class: value.ClassDiagonal, Kind: k}
				m := value.Type{Class: value.ClassMatrix, Kind: k}
				dl, dr := value.Type{Class: value.ClassDiagonal, Kind: lk}, value.Type{Class: value.ClassDiagonal, Kind: rk}
				sl, sr := value.Type{Class: value.ClassScalar, Kind: lk}, value.Type{Class: value.ClassScalar, Kind: rk}
				ml, mr := value.Type{Class: value.ClassMatrix, Kind: lk}, value.Type{Class: value.ClassMatrix, Kind: rk}
				for _, op := range []Op{Add, Sub, Mul, Div, LDiv} {
					reg(op, dl, dr, d)
				}
				reg(Mul, dl, sr, d)
				reg(Div, dl, sr, d)
				reg(Mul, sl, dr, d)
				for _, op := range []Op{Add, Sub, Mul, LDiv} {
					reg(op, dl, mr, m)
				}
				for _, op := range []Op{Add, Sub, Mul, Div} {
					reg(op, ml, dr, m)
				}
			}
		}
	}
}

// installBool: logical and equality operators on bool operands. Other
// operators reach bool values through the bool -> double widening.
func installBool(b *Builder) {
	types := []value.Type{value.Bool, value.BoolMatrix}
	for _, l := range types {
		for _, r := range types {
			for _, op := range []Op{ElAnd, ElOr, Eq, Ne} {
				res := resultType(op, l, r)
				b.Register(op, l, r, res, numeric(op, res))
			}
		}
	}
}

// installInt8: int8 with int8 or double operands. Arithmetic is computed in
// double and saturated back to int8. Matrix products, quotients and powers
// need a scalar operand.
func installInt8(b *Builder) {
	ints := []value.Type{value.Int8Scalar, value.Int8Matrix}
	dbls := []value.Type{value.Double, value.Matrix}
	var pairs [][2]value.Type
	for _, i := range ints {
		for _, j := range ints {
			pairs = append(pairs, [2]value.Type{i, j})
		}
		for _, d := range dbls {
			pairs = append(pairs, [2]value.Type{i, d}, [2]value.Type{d, i})
		}
	}
	scalar := func(t value.Type) bool { return t.Class == value.ClassScalar }
	for _, pr := range pairs {
		l, r := pr[0], pr[1]
		for _, op := range Ops() {
			switch op {
			case Mul:
				if !scalar(l) && !scalar(r) {
					continue
				}
			case Div:
				if !scalar(r) {
					continue
				}
			case LDiv:
				if !scalar(l) {
					continue
				}
			case Pow:
				if !scalar(l) || !scalar(r) {
					continue
				}
			}
			res := resultType(op, l, r)
			b.Register(op, l, r, res, numeric(op, res))
		}
	}
}

// installConcat: same-kind full pairs, plus the mixed pairs whose result
// takes the narrower element type (int8 with double, single with double).
func installConcat(b *Builder) {
	reg := func(l, r, res value.Type) { b.RegisterCat(l, r, res, joiner(res)) }
	for _, t := range value.AllTypes {
		if t.Class == value.ClassMatrix {
			reg(t, t, t)
		}
	}
	mixed := [][3]value.Type{
		{value.Int8Matrix, value.Matrix, value.Int8Matrix},
		{value.FloatMatrix, value.Matrix, value.FloatMatrix},
		{value.FloatComplexMatrix, value.ComplexMatrix, value.FloatComplexMatrix},
		{value.FloatMatrix, value.ComplexMatrix, value.FloatComplexMatrix},
		{value.FloatComplexMatrix, value.Matrix, value.FloatComplexMatrix},
	}
	for _, m := range mixed {
		reg(m[0], m[1], m[2])
		reg(m[1], m[0], m[2])
	}
}

// kindEdges are the lossless single-step kind widenings.
var kindEdges = [][2]value.Kind{
	{value.KindBool, value.KindDouble},
	{value.KindBool, value.KindInt8},
	{value.KindSingle, value.KindDouble},
	{value.KindSingle, value.KindSingleComplex},
	{value.KindDouble, value.KindComplex},
	{value.KindSingleComplex, value.KindComplex},
}

// installWidenings: every kind edge for every class it is valid in, and
// scalar -> matrix, diagonal -> matrix for every kind.
func installWidenings(b *Builder) {
	reg := func(from, to value.Type) {
		b.RegisterWidening(from, to, func(v value.Value) (value.Value, error) {
			return value.Convert(v, to)
		})
	}
	for _, t := range value.AllTypes {
		for _, e := range kindEdges {
			if to := t.WithKind(e[1]); t.Kind == e[0] && to.Valid() {
				reg(t, to)
			}
		}
		if t.Class != value.ClassMatrix {
			reg(t, t.WithClass(value.ClassMatrix))
		}
	}
}

// installAssignConv: the target takes the combined kind of target and rhs;
// a diagonal target that cannot hold the kind becomes a full matrix. int8
// and complex do not mix.
func installAssignConv(b *Builder) {
	for _, t := range value.AllTypes {
		for _, r := range value.AllTypes {
			if (t.Kind == value.KindInt8 && r.Kind.IsComplex()) || (r.Kind == value.KindInt8 && t.Kind.IsComplex()) {
				continue
			}
			res := t.WithKind(combineKind(t.Kind, r.Kind))
			if !res.Valid() {
				res = res.WithClass(value.ClassMatrix)
			}
			b.RegisterAssignConv(t, r, res)
		}
	}
}

// resultType is the documented result of op over l and r: scalar only when
// both operands are scalars, bool for relational and logical operators.
func resultType(op Op, l, r value.Type) value.Type {
	c := value.ClassMatrix
	if l.Class == value.ClassScalar && r.Class == value.ClassScalar {
		c = value.ClassScalar
	}
	if op.IsComparison() || op.IsLogical() {
		return value.Type{Class: c, Kind: value.KindBool}
	}

	return value.Type{Class: c, Kind: combineKind(l.Kind, r.Kind)}
}

// combineKind merges two element kinds: int8 dominates, bool defers to the
// other kind, and floats are complex when either is and single when
// either is.
func combineKind(a, b value.Kind) value.Kind {
	switch {
	case a == value.KindInt8 || b == value.KindInt8:
		return value.KindInt8
	case a == value.KindBool:
		return b
	case b == value.KindBool:
		return a
	}
	k := value.KindDouble
	if a.IsSingle() || b.IsSingle() {
		k = value.KindSingle
	}
	if a.IsComplex() || b.IsComplex() {
		k = k.Complexify()
	}

	return k
}
