// SPDX-License-Identifier: MIT

// Package ops - functional configuration of a dispatch Table.
//
// Defaults:
//   - complex ordering: OrderAbsArg (magnitude, then argument);
//   - warnings: logged at warn level through the table logger;
//   - logger: slog.Default();
//   - sparse parameters: spparms.Current() at NewTable time.
//
// Constructors panic only on nonsensical arguments (programmer error).

package ops

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/ndarith/spparms"
)

// ComplexOrdering selects how <, <=, >= and > order complex operands.
type ComplexOrdering uint8

const (
	// OrderAbsArg compares magnitudes, then arguments in (-pi, pi].
	OrderAbsArg ComplexOrdering = iota
	// OrderRealImag compares real parts, then imaginary parts.
	OrderRealImag
)

// String returns "abs-arg" or "real-imag".
func (c ComplexOrdering) String() string {
	if c == OrderRealImag {
		return "real-imag"
	}

	return "abs-arg"
}

// ParseComplexOrdering accepts "abs-arg" or "real-imag" (case-insensitive,
// "_" for "-").
func ParseComplexOrdering(s string) (ComplexOrdering, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", "abs-arg":
		return OrderAbsArg, nil
	case "real-imag":
		return OrderRealImag, nil
	}

	return 0, fmt.Errorf("ops: complex ordering %q: %w", s, ErrUnknownOrdering)
}

// ---------- Internal panic messages ----------

const (
	panicOrderingInvalid = "ops: WithComplexOrdering: unknown ordering"
	panicNilHandler      = "ops: WithWarningHandler: handler must not be nil"
	panicNilLogger       = "ops: WithLogger: logger must not be nil"
)

// Option configures a Table built by NewTable.
type Option func(*Options)

// Options is the resolved configuration; fields are read through Env.
type Options struct {
	ordering ComplexOrdering
	handler  WarningHandler
	logger   *slog.Logger
	sparse   *spparms.Table
}

// WithComplexOrdering selects the ordering used by relational operators on
// complex operands. Panics on an unknown value.
func WithComplexOrdering(o ComplexOrdering) Option {
	if o != OrderAbsArg && o != OrderRealImag {
		panic(panicOrderingInvalid)
	}

	return func(opts *Options) { opts.ordering = o }
}

// WithWarningHandler routes SingularOperand warnings to h instead of the
// logger. Panics on nil.
func WithWarningHandler(h WarningHandler) Option {
	if h == nil {
		panic(panicNilHandler)
	}

	return func(opts *Options) { opts.handler = h }
}

// WithLogger sets the structured logger for build and solver records and
// for the default warning handler. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(opts *Options) { opts.logger = l }
}

// WithSparseParams pins the sparse parameter table consulted by the matrix
// solvers, instead of the process-wide one.
func WithSparseParams(t spparms.Table) Option {
	return func(opts *Options) { opts.sparse = &t }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{ordering: OrderAbsArg}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.sparse == nil {
		t := spparms.Current()
		o.sparse = &t
	}
	if o.handler == nil {
		o.handler = logWarnings(o.logger)
	}

	return o
}
