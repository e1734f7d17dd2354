// SPDX-License-Identifier: MIT

// Package linalg holds the dense numeric routines behind the matrix
// operators of package ops: matrix product, square solves (diagonal,
// triangular, banded LU, Hermitian Cholesky, full LU with partial pivoting),
// rectangular least squares by Householder QR, a 1-norm reciprocal condition
// estimate, integer matrix powers and the matrix exponential.
//
// All routines are generic over float64 and complex128 (Scalar). Inputs are
// never mutated; every routine allocates its result.
//
// Singularity is not an error here. Solvers return the IEEE best-effort
// result together with an Info record (RCond, Rank, Singular) that callers
// turn into warnings.
package linalg
