// Package ndarith is a typed-value arithmetic core: binary operators over
// scalars, dense N-d arrays and diagonal matrices of six element kinds,
// resolved through a dispatch table that widens operands until a kernel
// applies.
//
// 🚀 What is in the box?
//
//	• Typed values: bool, int8, single, double, single complex and complex
//	  elements in scalar, matrix and diagonal classes
//	• Dispatch: 18 operators plus concatenation, with precomputed widening
//	  plans and a conversion table for indexed assignment
//	• Diagonal arrays: O(n) storage, structure-preserving products and
//	  divisions, zero reads off the diagonal
//	• Dense kernels: broadcasting, matrix product, solvers chosen by matrix
//	  structure, matrix powers
//	• Shape utilities: dimension vectors, index arithmetic, conformance
//
// ✨ Behavior
//
//   - Nonconformant shapes, unknown operand pairs and bad indices are errors.
//   - Singular divisors only warn and yield Inf or NaN.
//   - int8 results saturate; complex results never silently drop to real.
//
// Subpackages:
//
//	dims/     dimension vectors, index/subscript conversion, predicates
//	array/    column-major dense N-d arrays
//	diag/     rectangular diagonal arrays
//	linalg/   matrix product, factorizations, structure-aware solve, powers
//	value/    type tags, typed values, conversions, literals, msgpack codec
//	ops/      dispatch table, operator kernels, assignment
//	spparms/  solver parameter table
//	config/   TOML/YAML settings and operator cases
//
// Quick example:
//
//	m, _ := value.MatrixOf(dims.New(2, 2), []complex128{1 + 1i, 1, 1, 1 + 1i})
//	out, err := ops.Apply(ops.Add, value.NewScalar(2.0), m)
//	// out is a complex matrix with out(0,0) == 3+1i
//
// The ndarith command (cmd/ndarith) evaluates case files and prints the
// widening plan for any operator and operand pair.
package ndarith
