// SPDX-License-Identifier: MIT

// Package value defines the typed values exchanged with the operator
// dispatch layer.
//
// Every value carries a Type tag (Class x Kind) and a shape:
//
//	Scalar[T]  one element, shape 1x1
//	Dense[T]   full N-d array (*array.Dense)
//	Diag[T]    diagonal matrix (*diag.Array), floating kinds only
//
// Values are immutable from the dispatcher's point of view: kernels read
// their operands and allocate fresh results.
//
// Convert performs lossless promotion between types (bool to double, single
// to double, real to complex, scalar or diagonal to full matrix) and rejects
// narrowing with ErrNarrowing. Literal is the plain interchange form used by
// configuration files and the msgpack codec.
package value
