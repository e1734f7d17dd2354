// SPDX-License-Identifier: MIT

// Package array provides Dense, the generic N-dimensional container behind
// every non-diagonal matrix value in ndarith.
//
// Dense stores elements in a flat column-major slice (first dimension
// fastest), matching the linear index convention of package dims. Public
// accessors (At/Set) are bounds-checked and return *dims.IndexError instead of
// panicking; hot loops in the kernel layer use Data/Elem/SetElem directly.
//
// Supported element types are bool, int8, float32, float64, complex64 and
// complex128 (see Elem).
package array
