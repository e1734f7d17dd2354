// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/dims"
)

// MatMul computes the matrix product C = A·B and returns a fresh result.
// Implementation:
//   - Stage 1: Validate both operands are 2-D and cols(A) == rows(B).
//   - Stage 2: Column-major j→k→i loop: C[:,j] += A[:,k]·B[k,j].
//
// Behavior highlights:
//   - Zero entries are not skipped so Inf/NaN propagate as IEEE requires.
//   - Deterministic loop order; one allocation for C.
//
// Errors:
//   - ErrNotMatrix for N-d operands.
//   - dims.ErrNonconformant when the inner dimensions differ.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func MatMul[T Scalar](a, b *array.Dense[T]) (*array.Dense[T], error) {
	ar, ac, err := shape2(a)
	if err != nil {
		return nil, linalgErrorf(opMatMul, err)
	}
	br, bc, err := shape2(b)
	if err != nil {
		return nil, linalgErrorf(opMatMul, err)
	}
	if ac != br {
		return nil, linalgErrorf(opMatMul,
			fmt.Errorf("operator *: %dx%d by %dx%d: %w", ar, ac, br, bc, dims.ErrNonconformant))
	}

	res, err := array.New[T](dims.New(ar, bc))
	if err != nil {
		return nil, linalgErrorf(opMatMul, err)
	}
	ad, bd, rd := a.Data(), b.Data(), res.Data()
	var (
		i, j, k  int
		bv       T
		colA, cR int
	)
	for j = 0; j < bc; j++ {
		cR = j * ar
		for k = 0; k < ac; k++ {
			bv = bd[k+j*br]
			colA = k * ar
			for i = 0; i < ar; i++ {
				rd[cR+i] += ad[colA+i] * bv
			}
		}
	}

	return res, nil
}
