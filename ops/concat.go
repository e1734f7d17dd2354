// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/value"
)

// joiner returns the concatenation kernel producing res. Both operands are
// recast to res first, so mixed pairs (int8 with double, single with
// double) take the element type of res.
func joiner(res value.Type) CatKernel {
	return func(_ *Env, a, b value.Value, axis int) (value.Value, error) {
		ra, err := value.Recast(a, res)
		if err != nil {
			return nil, err
		}
		rb, err := value.Recast(b, res)
		if err != nil {
			return nil, err
		}
		switch x := ra.(type) {
		case value.Dense[bool]:
			return join(x, rb, axis)
		case value.Dense[int8]:
			return join(x, rb, axis)
		case value.Dense[float32]:
			return join(x, rb, axis)
		case value.Dense[float64]:
			return join(x, rb, axis)
		case value.Dense[complex64]:
			return join(x, rb, axis)
		case value.Dense[complex128]:
			return join(x, rb, axis)
		}

		return nil, fmt.Errorf("%s %s: %w", catName, res, ErrUnsupportedOperator)
	}
}

// join concatenates two full arrays of the same element type.
func join[T array.Elem](a value.Dense[T], b value.Value, axis int) (value.Value, error) {
	bd, ok := b.(value.Dense[T])
	if !ok {
		return nil, fmt.Errorf("%s %s with %s: %w", catName, a.Type(), b.Type(), ErrUnsupportedOperator)
	}
	out, err := array.Concat(a.A, bd.A, axis)
	if err != nil {
		return nil, err
	}

	return value.NewDense(out), nil
}
