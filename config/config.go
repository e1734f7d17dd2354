// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ndarith/ops"
	"github.com/katalvlaran/ndarith/spparms"
	"github.com/katalvlaran/ndarith/value"
)

// Format names a file syntax.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Warning modes.
const (
	WarningsLog = "log"
	WarningsOff = "off"
)

// Sparse presets.
const (
	PresetDefault = "default"
	PresetTight   = "tight"
)

// File is a decoded configuration file.
type File struct {
	Dispatch Dispatch `toml:"dispatch" yaml:"dispatch"`
	Sparse   Sparse   `toml:"sparse" yaml:"sparse"`
	Cases    []Case   `toml:"case" yaml:"cases"`
}

// Dispatch holds the dispatch-table settings.
type Dispatch struct {
	ComplexOrdering string `toml:"complex_ordering" yaml:"complex_ordering"`
	Warnings        string `toml:"warnings" yaml:"warnings"`
}

// Sparse selects a parameter preset and per-key overrides.
type Sparse struct {
	Preset string             `toml:"preset" yaml:"preset"`
	Set    map[string]float64 `toml:"set" yaml:"set"`
}

// Case is one operation to evaluate. Op is an operator symbol or name, or
// "cat" to concatenate along Axis.
type Case struct {
	Name  string        `toml:"name" yaml:"name"`
	Op    string        `toml:"op" yaml:"op"`
	Axis  int           `toml:"axis" yaml:"axis"`
	Left  value.Literal `toml:"left" yaml:"left"`
	Right value.Literal `toml:"right" yaml:"right"`
}

// CatOp is the Case.Op that selects concatenation.
const CatOp = "cat"

// FormatOf maps a path extension to its Format.
// Errors: ErrUnknownFormat.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}

	return "", fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnknownFormat)
}

// Load reads and decodes the file at path, picking the syntax from its
// extension.
// Errors: ErrUnknownFormat, ErrBadSetting, decoder and I/O errors.
func Load(path string) (*File, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, configErrorf(path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErrorf(path, err)
	}
	cfg, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, configErrorf(path, err)
	}

	return cfg, nil
}

// Decode reads a configuration in format f from r. Unknown keys are
// rejected, then the settings are validated.
// Errors: ErrUnknownFormat, ErrBadSetting, decoder errors.
func Decode(r io.Reader, f Format) (*File, error) {
	var cfg File
	switch f {
	case TOML:
		meta, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if extra := meta.Undecoded(); len(extra) > 0 {
			return nil, fmt.Errorf("unknown key %q: %w", extra[0].String(), ErrBadSetting)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the settings without building anything.
func (c *File) validate() error {
	if _, err := ops.ParseComplexOrdering(c.Dispatch.ComplexOrdering); err != nil {
		return fmt.Errorf("dispatch.complex_ordering: %w: %w", ErrBadSetting, err)
	}
	switch strings.ToLower(c.Dispatch.Warnings) {
	case "", WarningsLog, WarningsOff:
	default:
		return fmt.Errorf("dispatch.warnings %q: %w", c.Dispatch.Warnings, ErrBadSetting)
	}
	if _, err := c.SparseParams(); err != nil {
		return err
	}
	for i, cs := range c.Cases {
		if strings.EqualFold(cs.Op, CatOp) {
			continue
		}
		if _, err := ops.ParseOp(cs.Op); err != nil {
			return fmt.Errorf("case %d: %w: %w", i, ErrBadSetting, err)
		}
	}

	return nil
}

// SparseParams builds the parameter table: the preset, then the overrides
// in key order.
// Errors: ErrBadSetting wrapping spparms.ErrUnknownKey.
func (c *File) SparseParams() (spparms.Table, error) {
	var t spparms.Table
	switch strings.ToLower(c.Sparse.Preset) {
	case "", PresetDefault:
		t = spparms.Defaults()
	case PresetTight:
		t = spparms.Tight()
	default:
		return spparms.Table{}, fmt.Errorf("sparse.preset %q: %w", c.Sparse.Preset, ErrBadSetting)
	}

	keys := make([]string, 0, len(c.Sparse.Set))
	for k := range c.Sparse.Set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		next, err := t.With(strings.ToLower(k), c.Sparse.Set[k])
		if err != nil {
			return spparms.Table{}, fmt.Errorf("sparse.set: %w: %w", ErrBadSetting, err)
		}
		t = next
	}

	return t, nil
}

// Options returns the ops options the file selects. A file with warnings
// "off" installs a handler that drops every warning.
func (c *File) Options() ([]ops.Option, error) {
	ord, err := ops.ParseComplexOrdering(c.Dispatch.ComplexOrdering)
	if err != nil {
		return nil, fmt.Errorf("dispatch.complex_ordering: %w: %w", ErrBadSetting, err)
	}
	sp, err := c.SparseParams()
	if err != nil {
		return nil, err
	}
	opts := []ops.Option{ops.WithComplexOrdering(ord), ops.WithSparseParams(sp)}
	if strings.EqualFold(c.Dispatch.Warnings, WarningsOff) {
		opts = append(opts, ops.WithWarningHandler(func(ops.Warning) {}))
	}

	return opts, nil
}

// Values decodes both operands of the case.
func (cs Case) Values() (value.Value, value.Value, error) {
	l, err := cs.Left.Value()
	if err != nil {
		return nil, nil, fmt.Errorf("left: %w", err)
	}
	r, err := cs.Right.Value()
	if err != nil {
		return nil, nil, fmt.Errorf("right: %w", err)
	}

	return l, r, nil
}

// Run evaluates the case on t.
func (cs Case) Run(t *ops.Table) (value.Value, error) {
	l, r, err := cs.Values()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cs.Op, CatOp) {
		return t.Concat(l, r, cs.Axis)
	}
	op, err := ops.ParseOp(cs.Op)
	if err != nil {
		return nil, err
	}

	return t.Apply(op, l, r)
}
