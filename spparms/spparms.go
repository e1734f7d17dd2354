// SPDX-License-Identifier: MIT

package spparms

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	// ErrUnknownKey is returned for a key outside Keys (matching is
	// case-insensitive).
	ErrUnknownKey = errors.New("spparms: unknown key")

	// ErrTooManyValues is returned by WithValues for more than NumKeys values.
	ErrTooManyValues = errors.New("spparms: too many values")

	// ErrFrozen is returned by Install once the process-wide table is set.
	ErrFrozen = errors.New("spparms: table already installed")
)

// NumKeys is the number of parameters.
const NumKeys = 13

// Parameter keys, in table order.
const (
	Spumoni = "spumoni"
	ThsRel  = "ths_rel"
	ThsAbs  = "ths_abs"
	ExactD  = "exact_d"
	Supernd = "supernd"
	Rreduce = "rreduce"
	WhFrac  = "wh_frac"
	Autommd = "autommd"
	Autoamd = "autoamd"
	PivTol  = "piv_tol"
	Bandden = "bandden"
	Umfpack = "umfpack"
	SymTol  = "sym_tol"
)

var keys = [NumKeys]string{
	Spumoni, ThsRel, ThsAbs, ExactD, Supernd, Rreduce, WhFrac,
	Autommd, Autoamd, PivTol, Bandden, Umfpack, SymTol,
}

var (
	defaultVals = [NumKeys]float64{0, 1, 1, 0, 3, 3, 0.5, 1, 1, 0.1, 0.5, 1, 0.001}
	tightVals   = [NumKeys]float64{0, 1, 0, 0, 1, 1, 0.5, 1, 1, 0.1, 0.5, 1, 0.001}
)

// Table is a full parameter set.
type Table struct {
	vals [NumKeys]float64
}

// Defaults returns the default preset.
func Defaults() Table { return Table{vals: defaultVals} }

// Tight returns the tight preset.
func Tight() Table { return Table{vals: tightVals} }

// Keys returns the parameter names in table order.
func Keys() []string {
	out := make([]string, NumKeys)
	copy(out, keys[:])

	return out
}

// index resolves key case-insensitively.
func index(key string) (int, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for i, name := range keys {
		if name == k {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", key, ErrUnknownKey)
}

// Get returns the value for key.
func (t Table) Get(key string) (float64, error) {
	i, err := index(key)
	if err != nil {
		return 0, err
	}

	return t.vals[i], nil
}

// With returns a copy of t with key set to v.
func (t Table) With(key string, v float64) (Table, error) {
	i, err := index(key)
	if err != nil {
		return t, err
	}
	t.vals[i] = v

	return t, nil
}

// WithValues returns a copy of t whose leading len(vals) parameters are
// replaced, in table order.
func (t Table) WithValues(vals []float64) (Table, error) {
	if len(vals) > NumKeys {
		return t, fmt.Errorf("%d values: %w", len(vals), ErrTooManyValues)
	}
	copy(t.vals[:], vals)

	return t, nil
}

// Values returns all parameters in table order.
func (t Table) Values() []float64 {
	out := make([]float64, NumKeys)
	copy(out, t.vals[:])

	return out
}

// Bandden returns the band density threshold.
func (t Table) Bandden() float64 { return t.vals[10] }

// SymTol returns the symmetry tolerance.
func (t Table) SymTol() float64 { return t.vals[12] }

// Spumoni returns the solver verbosity level.
func (t Table) Spumoni() float64 { return t.vals[0] }

// PrintInfo writes one "prefix key: value" line per parameter.
func (t Table) PrintInfo(w io.Writer, prefix string) error {
	for i, k := range keys {
		if _, err := fmt.Fprintf(w, "%s%s: %g\n", prefix, k, t.vals[i]); err != nil {
			return err
		}
	}

	return nil
}

// ---------- process-wide table ----------

var (
	mu      sync.Mutex
	current *Table
)

// Install sets the process-wide table.
// Errors: ErrFrozen when a table was already installed or read.
func Install(t Table) error {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return ErrFrozen
	}
	current = &t

	return nil
}

// Current returns the process-wide table, installing Defaults when nothing
// was installed yet. After the first call the table is frozen.
func Current() Table {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		d := Defaults()
		current = &d
	}

	return *current
}
