// SPDX-License-Identifier: MIT

// Package ops is the binary-operator dispatch table of ndarith.
//
// A Table maps (operator, left type, right type) to a kernel. When no kernel
// is registered for the operand types, the table widens one or both
// operands through registered lossless conversions (bool -> double,
// single -> double, real -> complex, scalar -> matrix, diagonal -> matrix)
// until a kernel applies. Plans for every type pair are computed once, when
// the Builder is built, so dispatch is a map lookup.
//
// Operators:
//
//	+  -  *  /  ^  \            matrix-aware arithmetic
//	<  <=  ==  >=  >  !=        relational, bool result
//	.*  ./  .^  .\              elementwise arithmetic
//	&  |                        elementwise logical
//
// plus concatenation along any axis (Table.Concat), widening (Table.Convert)
// and single-element assignment (Table.Assign).
//
// Semantics:
//
//   - A one-element operand broadcasts against the other; otherwise shapes
//     must match (ErrNonconformant).
//   - A*B with two non-scalar operands is the matrix product; A\B and A/B
//     solve linear systems. Singular divisors emit a Warning (kind
//     ErrSingularOperand) and return the IEEE best-effort result.
//   - Scalar division by zero follows IEEE-754.
//   - Diagonal operands keep their structure where the result is diagonal
//     (dm*dm, dm*s, dm/s, ...) and produce full matrices otherwise.
//   - int8 arithmetic rounds half away from zero and saturates.
//   - Real powers switch to complex results when a negative base meets a
//     non-integer exponent.
//
// Errors are *OpError values carrying the operator, both operand types and
// shapes; match their kind with errors.Is.
//
// Example:
//
//	m, _ := value.MatrixOf(dims.New(2, 2), []complex128{1 + 1i, 1, 1, 1 + 1i})
//	r, err := ops.Apply(ops.Add, value.NewScalar(2.0), m)
//	// r is a complex matrix with r(0,0) == 3+1i
package ops
