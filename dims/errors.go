// SPDX-License-Identifier: MIT
// Package dims: sentinel error set and the structured index error.
// Every sentinel is prefixed with "dims: ..." for consistency; callers match
// them with errors.Is. Wrap with fmt.Errorf("ctx: %w", ErrX) at boundaries.

package dims

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadShape is returned when a dimension is negative or a coordinate
	// vector is empty.
	ErrBadShape = errors.New("dims: invalid shape")

	// ErrOverflow signals that the product of dimensions does not fit in an int.
	ErrOverflow = errors.New("dims: dimension product overflows int")

	// ErrIndexOutOfBounds indicates a coordinate outside the array extent.
	// Returned wrapped in *IndexError, which carries the offending index and shape.
	ErrIndexOutOfBounds = errors.New("dims: index out of bounds")

	// ErrNonconformant indicates operand shapes that are incompatible for an
	// elementwise or matrix operation (e.g. 2x3 .* 3x2).
	ErrNonconformant = errors.New("dims: nonconformant arguments")

	// ErrDimensionMismatch indicates that concatenation operands disagree on a
	// dimension other than the concatenation axis.
	ErrDimensionMismatch = errors.New("dims: dimension mismatch")
)

// IndexError reports an out-of-range coordinate.
//   - Pos is the dimension (0-based) holding the offending coordinate.
//   - Index is the offending coordinate value, Extent the bound it violated.
//   - NDims is the number of coordinates supplied by the caller.
//   - Dims is the full shape of the indexed array.
type IndexError struct {
	Pos    int
	NDims  int
	Index  int
	Extent int
	Dims   Vector
}

// Error renders the position with underscores for the other coordinates,
// e.g. "index (_,4): out of bound 3 (dimensions are 3x3)".
func (e *IndexError) Error() string {
	var b strings.Builder
	b.WriteString("dims: index (")
	n := e.NDims
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		if i == e.Pos {
			fmt.Fprintf(&b, "%d", e.Index)
		} else {
			b.WriteByte('_')
		}
	}
	fmt.Fprintf(&b, "): out of bound %d (dimensions are %s)", e.Extent, e.Dims)

	return b.String()
}

// Unwrap exposes ErrIndexOutOfBounds to errors.Is.
func (e *IndexError) Unwrap() error { return ErrIndexOutOfBounds }

// dimsErrorf wraps err with a function tag.
func dimsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
