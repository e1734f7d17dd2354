// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/diag"
	"github.com/katalvlaran/ndarith/dims"
	"github.com/katalvlaran/ndarith/value"
)

const assignName = "="

// Assign stores the single element rhs at coords of target and returns the
// updated target.
// Implementation:
//   - Stage 1: rhs must hold one element; coords must lie inside target.
//   - Stage 2: the assignment-conversion table gives the target's new type.
//   - Stage 3: a diagonal target whose type is unchanged is written in
//     place (off-diagonal coordinates fail); any other target is converted
//     to a fresh value and written there.
//
// Errors: *OpError wrapping ErrNonconformant, ErrIndexOutOfBounds,
// ErrInvalidDiagonalAssignment or ErrUnsupportedOperator. On failure
// target is unchanged.
func (t *Table) Assign(target value.Value, coords []int, rhs value.Value) (value.Value, error) {
	if target == nil || rhs == nil {
		return nil, opErrorf(assignName, target, rhs, ErrUnsupportedOperator)
	}
	if value.Numel(rhs) != 1 {
		return nil, opErrorf(assignName, target, rhs,
			fmt.Errorf("=: %s right-hand side for one element: %w", rhs.Dims(), ErrNonconformant))
	}
	if _, err := dims.ComputeIndex(coords, target.Dims()); err != nil {
		return nil, opErrorf(assignName, target, rhs, err)
	}
	res, ok := t.assign[pairKey{target.Type(), rhs.Type()}]
	if !ok {
		return nil, opErrorf(assignName, target, rhs, ErrUnsupportedOperator)
	}
	c := value.ComplexData(rhs)[0]

	if res.Class == value.ClassScalar {
		out, err := value.Recast(value.NewScalar(c), res)
		if err != nil {
			return nil, opErrorf(assignName, target, rhs, err)
		}
		return out, nil
	}
	dst := target
	if res != target.Type() {
		var err error
		if dst, err = value.Recast(target, res); err != nil {
			return nil, opErrorf(assignName, target, rhs, err)
		}
	}
	out, err := store(dst, coords, c)
	if err != nil {
		return nil, opErrorf(assignName, target, rhs, err)
	}

	return out, nil
}

// store writes c at coords: diagonal values in place, full values into a
// copy.
func store(v value.Value, coords []int, c complex128) (value.Value, error) {
	switch x := v.(type) {
	case value.Dense[bool]:
		return storeDense(x.A, coords, c)
	case value.Dense[int8]:
		return storeDense(x.A, coords, c)
	case value.Dense[float32]:
		return storeDense(x.A, coords, c)
	case value.Dense[float64]:
		return storeDense(x.A, coords, c)
	case value.Dense[complex64]:
		return storeDense(x.A, coords, c)
	case value.Dense[complex128]:
		return storeDense(x.A, coords, c)
	case value.Diag[float32]:
		return v, storeDiag(x.D, coords, c)
	case value.Diag[float64]:
		return v, storeDiag(x.D, coords, c)
	case value.Diag[complex64]:
		return v, storeDiag(x.D, coords, c)
	case value.Diag[complex128]:
		return v, storeDiag(x.D, coords, c)
	}

	return nil, fmt.Errorf("%s: %w", v.Type(), ErrUnsupportedOperator)
}

func storeDense[T array.Elem](a *array.Dense[T], coords []int, c complex128) (value.Value, error) {
	out := a.Clone()
	if err := out.Set(value.Cast[T](c), coords...); err != nil {
		return nil, err
	}

	return value.NewDense(out), nil
}

// storeDiag folds coords to (row, col) and writes the diagonal.
func storeDiag[T diag.Elem](d *diag.Array[T], coords []int, c complex128) error {
	lin, err := dims.ComputeIndex(coords, d.Dims())
	if err != nil {
		return err
	}
	rc, err := dims.Ind2Sub(lin, d.Dims())
	if err != nil {
		return err
	}

	return d.Set(rc[0], rc[1], value.Cast[T](c))
}
