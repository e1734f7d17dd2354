// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/ndarith/linalg"
	"github.com/katalvlaran/ndarith/spparms"
	"github.com/katalvlaran/ndarith/value"
)

// Warning is a non-fatal diagnostic raised while a kernel still completes.
type Warning struct {
	Kind    error // ErrSingularOperand
	Op      string
	Left    value.Type
	Right   value.Type
	RCond   float64
	Rank    int
	Message string
}

// Error lets a Warning travel through error-typed channels.
func (w Warning) Error() string { return w.Message }

// Unwrap returns Kind.
func (w Warning) Unwrap() error { return w.Kind }

// WarningHandler consumes warnings. It is called synchronously on the
// goroutine running the kernel.
type WarningHandler func(Warning)

// logWarnings returns the default handler: one warn record per warning.
func logWarnings(l *slog.Logger) WarningHandler {
	return func(w Warning) {
		l.LogAttrs(context.Background(), slog.LevelWarn, w.Message,
			slog.String("op", w.Op),
			slog.String("left", w.Left.String()),
			slog.String("right", w.Right.String()),
			slog.Float64("rcond", w.RCond),
			slog.Int("rank", w.Rank),
		)
	}
}

// Env is the read-only context handed to every kernel.
type Env struct {
	ordering ComplexOrdering
	handler  WarningHandler
	logger   *slog.Logger
	sparse   spparms.Table

	// op and operand types of the running dispatch, for warnings
	op          string
	left, right value.Type
}

// newEnv freezes the resolved options.
func newEnv(o Options) *Env {
	return &Env{ordering: o.ordering, handler: o.handler, logger: o.logger, sparse: *o.sparse}
}

// Ordering returns the complex ordering in force.
func (x *Env) Ordering() ComplexOrdering { return x.ordering }

// Sparse returns the sparse parameter table consulted by the solvers.
func (x *Env) Sparse() spparms.Table { return x.sparse }

// Logger returns the structured logger.
func (x *Env) Logger() *slog.Logger { return x.logger }

// with returns a copy of x labelled for one dispatch.
func (x *Env) with(op string, l, r value.Type) *Env {
	c := *x
	c.op, c.left, c.right = op, l, r

	return &c
}

// params maps the sparse table onto the solver classification knobs.
func (x *Env) params() linalg.Params {
	return linalg.Params{Bandden: x.sparse.Bandden(), SymTol: x.sparse.SymTol()}
}

// solved reports the outcome of a solve: a debug record when spumoni is
// set, and a SingularOperand warning for singular or ill-conditioned
// systems.
func (x *Env) solved(info linalg.Info) {
	if x.sparse.Spumoni() > 0 {
		x.logger.Debug("solve",
			slog.String("op", x.op),
			slog.String("type", info.Type.String()),
			slog.Float64("rcond", info.RCond),
			slog.Int("rank", info.Rank))
	}
	if !info.Singular {
		return
	}
	msg := "matrix singular to machine precision"
	if !info.Square {
		msg = "matrix is rank deficient"
	} else if info.RCond > 0 {
		msg = "matrix singular to machine precision, rcond below eps"
	}
	x.warn(info.RCond, info.Rank, msg)
}

// warn emits a SingularOperand warning.
func (x *Env) warn(rcond float64, rank int, msg string) {
	x.handler(Warning{
		Kind: ErrSingularOperand, Op: x.op, Left: x.left, Right: x.right,
		RCond: rcond, Rank: rank, Message: msg,
	})
}
