// SPDX-License-Identifier: MIT
// Package linalg: sentinel error set.
// Shape failures reuse dims.ErrNonconformant so callers match one sentinel
// across layers; only conditions specific to this package are declared here.

package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSquare signals that a square matrix was required.
	ErrNotSquare = errors.New("linalg: matrix is not square")

	// ErrNotMatrix signals an operand with more than two dimensions.
	ErrNotMatrix = errors.New("linalg: operand is not a 2-D matrix")
)

// Operation tags for error wrapping.
const (
	opMatMul = "MatMul"
	opSolve  = "Solve"
	opLU     = "LU"
	opLstSq  = "LeastSquares"
	opPow    = "MPowInt"
	opExpm   = "Expm"
	opInv    = "Inverse"
)

// linalgErrorf wraps err with an operation tag, preserving it for errors.Is.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
