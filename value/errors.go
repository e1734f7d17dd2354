// SPDX-License-Identifier: MIT
// Package value: sentinel error set.
// Messages are prefixed with "value: ..."; match with errors.Is.

package value

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned by ParseType for an unrecognized type name,
	// and by constructors for an invalid Type tag.
	ErrUnknownType = errors.New("value: unknown type")

	// ErrNarrowing is returned by Convert when the target cannot hold every
	// value of the source type (e.g. complex to real, matrix to scalar).
	ErrNarrowing = errors.New("value: narrowing conversion")

	// ErrBadLiteral signals a literal whose element count does not match its
	// shape, or imaginary parts on a real type.
	ErrBadLiteral = errors.New("value: malformed literal")

	// ErrSchema is returned by Decode for an envelope of another schema version.
	ErrSchema = errors.New("value: unsupported codec schema")
)

// valueErrorf wraps err with a function tag.
func valueErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
