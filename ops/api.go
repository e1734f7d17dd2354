// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: package-level facade over the process-wide Default table.

package ops

import "github.com/katalvlaran/ndarith/value"

// Apply evaluates op over a and b with the Default table.
func Apply(op Op, a, b value.Value) (value.Value, error) { return Default().Apply(op, a, b) }

// Concat joins a and b along axis with the Default table.
func Concat(a, b value.Value, axis int) (value.Value, error) { return Default().Concat(a, b, axis) }

// Convert widens v to type to with the Default table.
func Convert(v value.Value, to value.Type) (value.Value, error) { return Default().Convert(v, to) }

// Assign stores rhs at coords of target with the Default table.
func Assign(target value.Value, coords []int, rhs value.Value) (value.Value, error) {
	return Default().Assign(target, coords, rhs)
}
