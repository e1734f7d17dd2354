// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/diag"
	"github.com/katalvlaran/ndarith/dims"
	"github.com/katalvlaran/ndarith/linalg"
	"github.com/katalvlaran/ndarith/value"
)

// diagonal returns the kernel of op for operand pairs involving a diagonal
// matrix. Products and quotients with a diagonal or scalar partner keep
// the diagonal structure; pairs with a full matrix yield a full matrix.
func diagonal(op Op, res value.Type) Kernel {
	return func(x *Env, a, b value.Value) (value.Value, error) {
		if isComplex(a, b) {
			return diagCompute[complex128](x, op, a, b, res)
		}

		return diagCompute[float64](x, op, a, b, res)
	}
}

// diagCompute routes by operand classes.
func diagCompute[E num](x *Env, op Op, a, b value.Value, res value.Type) (value.Value, error) {
	lc, rc := a.Type().Class, b.Type().Class
	switch {
	case lc == value.ClassDiagonal && rc == value.ClassDiagonal:
		return diagDiag(x, op, diagOf[E](a), diagOf[E](b), res.Kind)
	case lc == value.ClassDiagonal && rc == value.ClassScalar:
		return diagScale(op, diagOf[E](a), scalarOf[E](b), false, res.Kind)
	case lc == value.ClassScalar && rc == value.ClassDiagonal:
		return diagScale(op, diagOf[E](b), scalarOf[E](a), true, res.Kind)
	}
	if op == Add || op == Sub {
		r, err := arith(x, op, full[E](a), full[E](b))
		if err != nil {
			return nil, err
		}
		return denseResult(r, res)
	}
	var r *array.Dense[E]
	var err error
	if lc == value.ClassDiagonal {
		r, err = diagDense(x, op, diagOf[E](a), full[E](b))
	} else {
		r, err = denseDiag(x, op, full[E](a), diagOf[E](b))
	}
	if err != nil {
		return nil, err
	}

	return denseResult(r, res)
}

// diagDiag combines two diagonal matrices into a diagonal matrix.
//   - + and -: equal shapes, entrywise.
//   - *: cols(a) == rows(b); entries multiply.
//   - \ and /: rows (resp. cols) equal; entries divide, a zero divisor
//     follows IEEE and warns.
func diagDiag[E num](x *Env, op Op, a, b *diag.Array[E], k value.Kind) (value.Value, error) {
	ar, ac, br, bc := a.Rows(), a.Cols(), b.Rows(), b.Cols()
	ad, bd := a.Data(), b.Data()
	var r, c int
	switch op {
	case Add, Sub:
		if ar != br || ac != bc {
			return nil, diagShapeErr(op, a.Dims(), b.Dims())
		}
		r, c = ar, ac
	case Mul:
		if ac != br {
			return nil, diagShapeErr(op, a.Dims(), b.Dims())
		}
		r, c = ar, bc
	case LDiv:
		if ar != br {
			return nil, diagShapeErr(op, a.Dims(), b.Dims())
		}
		r, c = ac, bc
		warnSingularDiag(x, ad)
	case Div:
		if ac != bc {
			return nil, diagShapeErr(op, a.Dims(), b.Dims())
		}
		r, c = ar, br
		warnSingularDiag(x, bd)
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedOperator)
	}

	out := make([]E, min(r, c))
	var i int
	var p, q E
	for i = range out {
		p, q = at(ad, i), at(bd, i)
		switch op {
		case Add:
			out[i] = p + q
		case Sub:
			out[i] = p - q
		case Mul:
			out[i] = p * q
		case LDiv:
			if i < len(ad) {
				out[i] = q / p
			}
		case Div:
			if i < len(bd) {
				out[i] = p / q
			}
		}
	}

	return diagResult(k, r, c, out)
}

// diagScale multiplies (or divides) the diagonal entries by a scalar.
func diagScale[E num](op Op, d *diag.Array[E], s E, scalarLeft bool, k value.Kind) (value.Value, error) {
	if op != Mul && (op != Div || scalarLeft) {
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedOperator)
	}
	out := make([]E, d.Len())
	for i, v := range d.Data() {
		switch {
		case op == Div:
			out[i] = v / s
		case scalarLeft:
			out[i] = s * v
		default:
			out[i] = v * s
		}
	}

	return diagResult(k, d.Rows(), d.Cols(), out)
}

// diagDense computes d*m or d\m without expanding d.
// Complexity: O(numel(result)).
func diagDense[E num](x *Env, op Op, d *diag.Array[E], m *array.Dense[E]) (*array.Dense[E], error) {
	if m.Numel() == 1 {
		return arith(x, op, d.ToDense(), m)
	}
	if !dims.IsMatrix(m.Dims()) {
		return nil, diagShapeErr(op, d.Dims(), m.Dims())
	}
	dd := d.Data()
	mr, mc := m.Rows(), m.Cols()
	var rows int
	switch op {
	case Mul:
		if d.Cols() != mr {
			return nil, diagShapeErr(op, d.Dims(), m.Dims())
		}
		rows = d.Rows()
	case LDiv:
		if d.Rows() != mr {
			return nil, diagShapeErr(op, d.Dims(), m.Dims())
		}
		rows = d.Cols()
		warnSingularDiag(x, dd)
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedOperator)
	}
	out, err := array.New[E](dims.New(rows, mc))
	if err != nil {
		return nil, err
	}
	dst, src := out.Data(), m.Data()
	n := min(len(dd), rows)
	var i, j int
	for j = 0; j < mc; j++ {
		for i = 0; i < n; i++ {
			if op == Mul {
				dst[j*rows+i] = dd[i] * src[j*mr+i]
			} else {
				dst[j*rows+i] = src[j*mr+i] / dd[i]
			}
		}
	}

	return out, nil
}

// denseDiag computes m*d or m/d without expanding d.
// Complexity: O(numel(result)).
func denseDiag[E num](x *Env, op Op, m *array.Dense[E], d *diag.Array[E]) (*array.Dense[E], error) {
	if m.Numel() == 1 {
		return arith(x, op, m, d.ToDense())
	}
	if !dims.IsMatrix(m.Dims()) {
		return nil, diagShapeErr(op, m.Dims(), d.Dims())
	}
	dd := d.Data()
	mr, mc := m.Rows(), m.Cols()
	var cols int
	switch op {
	case Mul:
		if mc != d.Rows() {
			return nil, diagShapeErr(op, m.Dims(), d.Dims())
		}
		cols = d.Cols()
	case Div:
		if mc != d.Cols() {
			return nil, diagShapeErr(op, m.Dims(), d.Dims())
		}
		cols = d.Rows()
		warnSingularDiag(x, dd)
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedOperator)
	}
	out, err := array.New[E](dims.New(mr, cols))
	if err != nil {
		return nil, err
	}
	dst, src := out.Data(), m.Data()
	n := min(len(dd), cols)
	var i, j int
	for j = 0; j < n; j++ {
		for i = 0; i < mr; i++ {
			if op == Mul {
				dst[j*mr+i] = src[j*mr+i] * dd[j]
			} else {
				dst[j*mr+i] = src[j*mr+i] / dd[j]
			}
		}
	}

	return out, nil
}

// at reads the i-th diagonal entry, zero past the store.
func at[E num](d []E, i int) E {
	var zero E
	if i < len(d) {
		return d[i]
	}

	return zero
}

func diagShapeErr(op Op, a, b dims.Vector) error {
	return fmt.Errorf("operator %s: nonconformant arguments (op1 is %s, op2 is %s): %w",
		op.Symbol(), a, b, ErrNonconformant)
}

// warnSingularDiag warns when a diagonal divisor has a zero entry; rcond
// is the ratio of the smallest to the largest entry magnitude.
func warnSingularDiag[E num](x *Env, d []E) {
	lo, hi, rank := 0.0, 0.0, 0
	for i, v := range d {
		m := linalg.Abs(v)
		if m != 0 {
			rank++
		}
		if i == 0 || m < lo {
			lo = m
		}
		hi = max(hi, m)
	}
	if rank == len(d) {
		return
	}
	rcond := 0.0
	if hi > 0 {
		rcond = lo / hi
	}
	x.warn(rcond, rank, "division by a singular diagonal matrix")
}
