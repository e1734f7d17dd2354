// SPDX-License-Identifier: MIT
// Package diag: sentinel error set.
// Every message is prefixed with "diag: ..." so it greps cleanly in logs.
// Index failures are reported with *dims.IndexError (wraps
// dims.ErrIndexOutOfBounds) and are not duplicated here.

package diag

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAssignment is returned by Set when r != c. The write is
	// rejected, never silently dropped.
	ErrInvalidAssignment = errors.New("diag: invalid off-diagonal assignment")

	// ErrNotVector signals that FromVector received a source that is not a
	// row or column vector.
	ErrNotVector = errors.New("diag: source is not a vector")

	// ErrNotDiagonal signals that FromDense received a matrix with a nonzero
	// off-diagonal entry, or a source with more than two dimensions.
	ErrNotDiagonal = errors.New("diag: source matrix is not diagonal")
)

// diagErrorf wraps err with a method tag: "Array.Set: diag: ...".
func diagErrorf(method string, err error) error {
	return fmt.Errorf("Array.%s: %w", method, err)
}
