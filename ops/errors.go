// SPDX-License-Identifier: MIT
// Package ops: sentinel error set and the structured dispatch error.
//
// Errors:
//
//	ErrUnsupportedOperator       - no kernel, direct or widened, for (op, L, R).
//	ErrNonconformant             - operand shapes incompatible for the operator.
//	ErrDimensionMismatch         - concatenation sizes differ off the join axis.
//	ErrIndexOutOfBounds          - assignment coordinate outside the target.
//	ErrInvalidDiagonalAssignment - off-diagonal write into a diagonal matrix.
//	ErrSingularOperand           - warning kind only; never returned.
//	ErrNotImplemented            - recognised operation without a kernel path.
//	ErrNaNToLogical              - NaN operand of a logical operator.
//	ErrAlreadyBuilt              - Build called twice on one Builder.
//	ErrUnknownOrdering           - unrecognised complex ordering name.

package ops

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ndarith/diag"
	"github.com/katalvlaran/ndarith/dims"
	"github.com/katalvlaran/ndarith/value"
)

var (
	// ErrUnsupportedOperator is returned when neither a direct kernel nor a
	// widening plan exists for the operand types.
	ErrUnsupportedOperator = errors.New("ops: binary operator not implemented for these operands")

	// ErrSingularOperand is the Kind of the warning emitted for singular or
	// ill-conditioned divisors.
	ErrSingularOperand = errors.New("ops: matrix singular to machine precision")

	// ErrNotImplemented signals an operand combination the kernels know but
	// do not compute (non-integer power of a non-scalar matrix).
	ErrNotImplemented = errors.New("ops: not implemented")

	// ErrNaNToLogical is returned by & and | when an operand holds NaN.
	ErrNaNToLogical = errors.New("ops: logical conversion from NaN")

	// ErrAlreadyBuilt is returned by a second Builder.Build.
	ErrAlreadyBuilt = errors.New("ops: builder already built")

	// ErrUnknownOrdering is returned by ParseComplexOrdering.
	ErrUnknownOrdering = errors.New("ops: unknown complex ordering")
)

// Shared sentinels, re-exported so callers match one name per failure.
var (
	ErrNonconformant             = dims.ErrNonconformant
	ErrDimensionMismatch         = dims.ErrDimensionMismatch
	ErrIndexOutOfBounds          = dims.ErrIndexOutOfBounds
	ErrInvalidDiagonalAssignment = diag.ErrInvalidAssignment
)

// kinds lists the sentinels OpError.Kind is chosen from, most specific first.
var kinds = []error{
	ErrNonconformant,
	ErrDimensionMismatch,
	ErrIndexOutOfBounds,
	ErrInvalidDiagonalAssignment,
	ErrNotImplemented,
	ErrNaNToLogical,
	ErrUnsupportedOperator,
	value.ErrNarrowing,
}

// OpError is the structured failure of a dispatched operation.
// Kind is the sentinel describing the failure; Err is the underlying error
// chain (Kind itself when there is nothing more specific).
type OpError struct {
	Kind      error
	Op        string
	Left      value.Type
	Right     value.Type
	LeftDims  dims.Vector
	RightDims dims.Vector
	Err       error
}

// Error renders the failure with both operand types and, when known,
// their shapes.
func (e *OpError) Error() string {
	msg := fmt.Sprintf("operator %s: %v", e.Op, e.Kind)
	if e.Err != nil && e.Err != e.Kind {
		msg = fmt.Sprintf("operator %s: %v", e.Op, e.Err)
	}
	if e.LeftDims == nil {
		return fmt.Sprintf("%s (op1 is %s, op2 is %s)", msg, e.Left, e.Right)
	}

	return fmt.Sprintf("%s (op1 is %s %s, op2 is %s %s)",
		msg, e.LeftDims, e.Left, e.RightDims, e.Right)
}

// Unwrap exposes Kind and the underlying chain to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil || e.Err == e.Kind {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// opErrorf builds an OpError for op over a and b, classifying err by the
// first matching sentinel (err itself when none matches). An err that
// already is an *OpError is returned unchanged.
func opErrorf(op string, a, b value.Value, err error) error {
	var oe *OpError
	if errors.As(err, &oe) {
		return err
	}
	kind := err
	for _, k := range kinds {
		if errors.Is(err, k) {
			kind = k
			break
		}
	}
	e := &OpError{Kind: kind, Op: op, Err: err}
	if a != nil {
		e.Left, e.LeftDims = a.Type(), a.Dims()
	}
	if b != nil {
		e.Right, e.RightDims = b.Type(), b.Dims()
	}

	return e
}
