// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ndarith/value"
)

// Kernel computes one operator for one pair of operand types.
type Kernel func(x *Env, a, b value.Value) (value.Value, error)

// CatKernel concatenates two operands along a zero-based axis.
type CatKernel func(x *Env, a, b value.Value, axis int) (value.Value, error)

// Widening converts a value into a wider type without loss.
type Widening func(v value.Value) (value.Value, error)

// Entry is one registered operator kernel. Result is the documented type;
// real powers may return the complex kind of Result.
type Entry struct {
	Op     Op
	Left   value.Type
	Right  value.Type
	Result value.Type
	Fn     Kernel
}

// CatEntry is one registered concatenation kernel.
type CatEntry struct {
	Left   value.Type
	Right  value.Type
	Result value.Type
	Fn     CatKernel
}

// WideningEntry is one registered single-step widening.
type WideningEntry struct {
	From value.Type
	To   value.Type
	Fn   Widening
}

type pairKey struct{ l, r value.Type }

type opKey struct {
	op   Op
	l, r value.Type
}

// catSlot indexes the concatenation plans next to the operator plans.
const catSlot = int(numOps)

// Plan is the resolved dispatch of one operand type pair: the widening
// steps for each operand and the kernel they reach.
type Plan struct {
	Op          string
	Left        value.Type // operand types as given
	Right       value.Type
	LeftSteps   []value.Type // widening targets applied to the left operand, in order
	RightSteps  []value.Type
	KernelLeft  value.Type // kernel key reached by the steps
	KernelRight value.Type
	Result      value.Type

	lfns, rfns []Widening
	fn         Kernel
	cat        CatKernel
}

// Direct reports whether the plan needs no widening.
func (p *Plan) Direct() bool { return len(p.LeftSteps) == 0 && len(p.RightSteps) == 0 }

// String renders the plan, e.g. "bool + complex matrix: bool -> scalar; (scalar, complex matrix) -> complex matrix".
func (p *Plan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s:", p.Left, p.Op, p.Right)
	for _, side := range []struct {
		from  value.Type
		steps []value.Type
	}{{p.Left, p.LeftSteps}, {p.Right, p.RightSteps}} {
		if len(side.steps) == 0 {
			continue
		}
		sb.WriteString(" " + side.from.String())
		for _, s := range side.steps {
			sb.WriteString(" -> " + s.String())
		}
		sb.WriteString(";")
	}
	fmt.Fprintf(&sb, " (%s, %s) -> %s", p.KernelLeft, p.KernelRight, p.Result)

	return sb.String()
}

// widen applies the plan's widening steps to both operands.
func (p *Plan) widen(a, b value.Value) (value.Value, value.Value, error) {
	var err error
	for _, f := range p.lfns {
		if a, err = f(a); err != nil {
			return nil, nil, err
		}
	}
	for _, f := range p.rfns {
		if b, err = f(b); err != nil {
			return nil, nil, err
		}
	}

	return a, b, nil
}

// ---------- Builder ----------

// Builder collects registrations. Registering the same key again replaces
// the earlier entry, so installation order does not matter for identical
// writes. A Builder builds exactly one Table.
type Builder struct {
	kernels map[opKey]Entry
	cats    map[pairKey]CatEntry
	widen   map[pairKey]WideningEntry
	assign  map[pairKey]value.Type
	built   bool
}

// NewBuilder returns an empty registry.
func NewBuilder() *Builder {
	return &Builder{
		kernels: make(map[opKey]Entry),
		cats:    make(map[pairKey]CatEntry),
		widen:   make(map[pairKey]WideningEntry),
		assign:  make(map[pairKey]value.Type),
	}
}

// Register installs the kernel of op for (l, r) with documented result res.
func (b *Builder) Register(op Op, l, r, res value.Type, fn Kernel) {
	b.kernels[opKey{op, l, r}] = Entry{Op: op, Left: l, Right: r, Result: res, Fn: fn}
}

// RegisterCat installs the concatenation kernel for (l, r).
func (b *Builder) RegisterCat(l, r, res value.Type, fn CatKernel) {
	b.cats[pairKey{l, r}] = CatEntry{Left: l, Right: r, Result: res, Fn: fn}
}

// RegisterWidening installs a single-step widening from -> to.
func (b *Builder) RegisterWidening(from, to value.Type, fn Widening) {
	b.widen[pairKey{from, to}] = WideningEntry{From: from, To: to, Fn: fn}
}

// RegisterAssignConv records the type a target of type target takes when
// an element of type rhs is stored into it.
func (b *Builder) RegisterAssignConv(target, rhs, res value.Type) {
	b.assign[pairKey{target, rhs}] = res
}

// Build freezes the registry into a Table.
// Implementation:
//   - Stage 1: validate every registered type tag.
//   - Stage 2: one goroutine per operator (plus one for concatenation and
//     one for conversions) searches a plan for each of the 16x16 operand
//     type pairs.
//   - Stage 3: publish the immutable Table.
//
// Errors: ErrAlreadyBuilt, value.ErrUnknownType for invalid registrations.
// Complexity: O(ops * types² * widening states).
func (b *Builder) Build(opts ...Option) (*Table, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	t := &Table{
		env:     newEnv(gatherOptions(opts...)),
		kernels: b.kernels,
		cats:    b.cats,
		assign:  b.assign,
		convs:   make(map[pairKey]*Plan),
	}
	for _, w := range b.widen {
		t.widenings = append(t.widenings, w)
	}
	slices.SortFunc(t.widenings, func(p, q WideningEntry) int {
		if c := p.From.Rank() - q.From.Rank(); c != 0 {
			return c
		}
		return p.To.Rank() - q.To.Rank()
	})
	adj := make(map[value.Type][]WideningEntry)
	for _, w := range t.widenings {
		adj[w.From] = append(adj[w.From], w)
	}

	var g errgroup.Group
	for slot := 0; slot <= catSlot; slot++ {
		slot := slot
		g.Go(func() error {
			plans, err := t.planSlot(slot, adj)
			if err != nil {
				return err
			}
			t.plans[slot] = plans
			return nil
		})
	}
	g.Go(func() error {
		return t.planConversions(adj)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ops: Build: %w", err)
	}

	n := 0
	for _, m := range t.plans {
		n += len(m)
	}
	t.env.logger.Debug("dispatch table built",
		slog.Int("kernels", len(t.kernels)),
		slog.Int("concat", len(t.cats)),
		slog.Int("widenings", len(t.widenings)),
		slog.Int("plans", n))

	return t, nil
}

// ---------- Table ----------

// Table is the immutable dispatch registry. All methods are safe for
// concurrent use.
type Table struct {
	env       *Env
	kernels   map[opKey]Entry
	cats      map[pairKey]CatEntry
	assign    map[pairKey]value.Type
	widenings []WideningEntry
	plans     [catSlot + 1]map[pairKey]*Plan
	convs     map[pairKey]*Plan
}

// NewTable builds a Table holding the standard operator families.
func NewTable(opts ...Option) (*Table, error) {
	b := NewBuilder()
	InstallOperators(b)

	return b.Build(opts...)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide table, built on first use with the
// default options and the process-wide sparse parameters.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable()
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})

	return defaultTable
}

// Env returns the kernel environment of t.
func (t *Table) Env() *Env { return t.env }

// Apply evaluates op over a and b.
// Implementation:
//   - Stage 1: look up the precomputed plan for (op, type(a), type(b)).
//   - Stage 2: apply the plan's widenings, then its kernel.
//
// Errors: *OpError wrapping ErrUnsupportedOperator, ErrNonconformant,
// ErrNotImplemented or ErrNaNToLogical. Singular divisors only warn.
func (t *Table) Apply(op Op, a, b value.Value) (value.Value, error) {
	if op >= numOps || a == nil || b == nil {
		return nil, opErrorf(op.Symbol(), a, b, ErrUnsupportedOperator)
	}
	p := t.plans[op][pairKey{a.Type(), b.Type()}]
	if p == nil {
		return nil, opErrorf(op.Symbol(), a, b, ErrUnsupportedOperator)
	}
	wa, wb, err := p.widen(a, b)
	if err != nil {
		return nil, opErrorf(op.Symbol(), a, b, err)
	}
	out, err := p.fn(t.env.with(op.Symbol(), a.Type(), b.Type()), wa, wb)
	if err != nil {
		return nil, opErrorf(op.Symbol(), a, b, err)
	}

	return out, nil
}

// Concat joins a and b along the zero-based axis (0 stacks rows, 1 appends
// columns, 2 and above add pages). A 0x0 operand is skipped.
// Errors: *OpError wrapping ErrDimensionMismatch or ErrUnsupportedOperator.
func (t *Table) Concat(a, b value.Value, axis int) (value.Value, error) {
	if a == nil || b == nil {
		return nil, opErrorf(catName, a, b, ErrUnsupportedOperator)
	}
	if axis < 0 {
		return nil, opErrorf(catName, a, b, fmt.Errorf("axis %d: %w", axis, ErrDimensionMismatch))
	}
	p := t.plans[catSlot][pairKey{a.Type(), b.Type()}]
	if p == nil {
		return nil, opErrorf(catName, a, b, ErrUnsupportedOperator)
	}
	wa, wb, err := p.widen(a, b)
	if err != nil {
		return nil, opErrorf(catName, a, b, err)
	}
	out, err := p.cat(t.env.with(catName, a.Type(), b.Type()), wa, wb, axis)
	if err != nil {
		return nil, opErrorf(catName, a, b, err)
	}

	return out, nil
}

// Convert widens v to type to through registered widening steps.
// Errors: *OpError wrapping ErrUnsupportedOperator when no chain of
// widenings reaches to.
func (t *Table) Convert(v value.Value, to value.Type) (value.Value, error) {
	if v == nil {
		return nil, opErrorf("convert", v, nil, ErrUnsupportedOperator)
	}
	p := t.convs[pairKey{v.Type(), to}]
	if p == nil {
		return nil, convError(v, to, ErrUnsupportedOperator)
	}
	out, _, err := p.widen(v, nil)
	if err != nil {
		return nil, convError(v, to, err)
	}

	return out, nil
}

// convError reports a failed conversion with the target as the second type.
func convError(v value.Value, to value.Type, err error) error {
	e := &OpError{Kind: ErrUnsupportedOperator, Op: "convert", Left: v.Type(), Right: to,
		LeftDims: v.Dims(), RightDims: v.Dims(), Err: err}
	for _, k := range kinds {
		if errors.Is(err, k) {
			e.Kind = k
			break
		}
	}

	return e
}

// Resolve returns the plan for op over operand types l and r.
// Errors: *OpError wrapping ErrUnsupportedOperator.
func (t *Table) Resolve(op Op, l, r value.Type) (*Plan, error) {
	if op >= numOps {
		return nil, &OpError{Kind: ErrUnsupportedOperator, Op: op.String(), Left: l, Right: r}
	}
	if p := t.plans[op][pairKey{l, r}]; p != nil {
		return p, nil
	}

	return nil, &OpError{Kind: ErrUnsupportedOperator, Op: op.Symbol(), Left: l, Right: r}
}

// ResolveConcat returns the concatenation plan for l and r.
func (t *Table) ResolveConcat(l, r value.Type) (*Plan, error) {
	if p := t.plans[catSlot][pairKey{l, r}]; p != nil {
		return p, nil
	}

	return nil, &OpError{Kind: ErrUnsupportedOperator, Op: catName, Left: l, Right: r}
}

// Kernels lists the registered operator entries ordered by operator, then
// left and right rank.
func (t *Table) Kernels() []Entry {
	out := make([]Entry, 0, len(t.kernels))
	for _, e := range t.kernels {
		out = append(out, e)
	}
	slices.SortFunc(out, func(p, q Entry) int {
		if p.Op != q.Op {
			return int(p.Op) - int(q.Op)
		}
		if c := p.Left.Rank() - q.Left.Rank(); c != 0 {
			return c
		}
		return p.Right.Rank() - q.Right.Rank()
	})

	return out
}

// CatKernels lists the registered concatenation entries by rank.
func (t *Table) CatKernels() []CatEntry {
	out := make([]CatEntry, 0, len(t.cats))
	for _, e := range t.cats {
		out = append(out, e)
	}
	slices.SortFunc(out, func(p, q CatEntry) int {
		if c := p.Left.Rank() - q.Left.Rank(); c != 0 {
			return c
		}
		return p.Right.Rank() - q.Right.Rank()
	})

	return out
}

// Widenings lists the registered widening steps ordered by source, then
// target rank.
func (t *Table) Widenings() []WideningEntry { return slices.Clone(t.widenings) }

// ---------- plan search ----------

// planSlot validates the entries of one operator slot and resolves a plan
// for every operand type pair.
func (t *Table) planSlot(slot int, adj map[value.Type][]WideningEntry) (map[pairKey]*Plan, error) {
	name := catName
	var has func(l, r value.Type) bool
	if slot == catSlot {
		for k, e := range t.cats {
			if err := validTypes(k.l, k.r, e.Result); err != nil {
				return nil, fmt.Errorf("%s: %w", catName, err)
			}
		}
		has = func(l, r value.Type) bool {
			_, ok := t.cats[pairKey{l, r}]
			return ok
		}
	} else {
		op := Op(slot)
		name = op.Symbol()
		for k, e := range t.kernels {
			if k.op != op {
				continue
			}
			if err := validTypes(k.l, k.r, e.Result); err != nil {
				return nil, fmt.Errorf("operator %s: %w", name, err)
			}
		}
		has = func(l, r value.Type) bool {
			_, ok := t.kernels[opKey{op, l, r}]
			return ok
		}
	}

	plans := make(map[pairKey]*Plan)
	for _, l := range value.AllTypes {
		for _, r := range value.AllTypes {
			s := search(l, r, adj, has)
			if s == nil {
				continue
			}
			p := s.plan(name, l, r)
			if slot == catSlot {
				e := t.cats[pairKey{s.l, s.r}]
				p.Result, p.cat = e.Result, e.Fn
			} else {
				e := t.kernels[opKey{Op(slot), s.l, s.r}]
				p.Result, p.fn = e.Result, e.Fn
			}
			plans[pairKey{l, r}] = p
		}
	}

	return plans, nil
}

// planConversions resolves the shortest widening chain from every type to
// every type it can reach.
func (t *Table) planConversions(adj map[value.Type][]WideningEntry) error {
	for _, w := range t.widenings {
		if err := validTypes(w.From, w.To); err != nil {
			return fmt.Errorf("widening: %w", err)
		}
	}
	for _, from := range value.AllTypes {
		paths := map[value.Type][]WideningEntry{from: nil}
		queue := []value.Type{from}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, w := range adj[cur] {
				if _, ok := paths[w.To]; ok {
					continue
				}
				paths[w.To] = append(slices.Clip(paths[cur]), w)
				queue = append(queue, w.To)
			}
		}
		for to, path := range paths {
			p := state{l: to, lp: path}.plan("convert", from, value.Type{})
			p.KernelRight, p.Result = value.Type{}, to
			t.convs[pairKey{from, to}] = p
		}
	}

	return nil
}

func validTypes(ts ...value.Type) error {
	var errs []error
	for _, x := range ts {
		if !x.Valid() {
			errs = append(errs, fmt.Errorf("%v: %w", x, value.ErrUnknownType))
		}
	}

	return errors.Join(errs...)
}

// state is one node of the widening search: the current operand types and
// the steps taken on each side.
type state struct {
	l, r   value.Type
	lp, rp []WideningEntry
}

func (s state) plan(name string, l, r value.Type) *Plan {
	p := &Plan{Op: name, Left: l, Right: r, KernelLeft: s.l, KernelRight: s.r}
	for _, w := range s.lp {
		p.LeftSteps = append(p.LeftSteps, w.To)
		p.lfns = append(p.lfns, w.Fn)
	}
	for _, w := range s.rp {
		p.RightSteps = append(p.RightSteps, w.To)
		p.rfns = append(p.rfns, w.Fn)
	}

	return p
}

// search finds the kernel key reachable from (l, r) with the fewest
// widening steps.
// Implementation:
//   - Stage 1: breadth-first over single-step widenings of either operand.
//   - Stage 2: at the first depth with a registered key, prefer
//     (a) fewer steps on the operand that started with the higher rank,
//     (b) the larger total rank of the widened pair,
//     (c) the larger left rank.
//
// Returns nil when no key is reachable.
func search(l, r value.Type, adj map[value.Type][]WideningEntry, has func(l, r value.Type) bool) *state {
	frontier := []state{{l: l, r: r}}
	// A pair is first reached at depth dist(l, X) + dist(r, Y), so every
	// path reaching it then takes the shortest route on both sides and the
	// left/right split is unique; dedup by pair drops no candidate.
	seen := map[pairKey]bool{{l, r}: true}
	leftHigher := l.Rank() >= r.Rank()
	for len(frontier) > 0 {
		var best *state
		for i := range frontier {
			s := &frontier[i]
			if has(s.l, s.r) && (best == nil || better(s, best, leftHigher)) {
				best = s
			}
		}
		if best != nil {
			return best
		}
		var next []state
		for _, s := range frontier {
			for _, w := range adj[s.l] {
				if k := (pairKey{w.To, s.r}); !seen[k] {
					seen[k] = true
					next = append(next, state{l: w.To, r: s.r, lp: append(slices.Clip(s.lp), w), rp: s.rp})
				}
			}
			for _, w := range adj[s.r] {
				if k := (pairKey{s.l, w.To}); !seen[k] {
					seen[k] = true
					next = append(next, state{l: s.l, r: w.To, lp: s.lp, rp: append(slices.Clip(s.rp), w)})
				}
			}
		}
		frontier = next
	}

	return nil
}

// better reports whether candidate s beats cur.
func better(s, cur *state, leftHigher bool) bool {
	hs, hc := len(s.rp), len(cur.rp)
	if leftHigher {
		hs, hc = len(s.lp), len(cur.lp)
	}
	if hs != hc {
		return hs < hc
	}
	ts, tc := s.l.Rank()+s.r.Rank(), cur.l.Rank()+cur.r.Rank()
	if ts != tc {
		return ts > tc
	}

	return s.l.Rank() > cur.l.Rank()
}
