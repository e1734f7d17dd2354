// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ndarith/config"
	"github.com/katalvlaran/ndarith/ops"
	"github.com/katalvlaran/ndarith/spparms"
	"github.com/katalvlaran/ndarith/value"
)

const tomlCfg = `
[dispatch]
complex_ordering = "real-imag"
warnings = "off"

[sparse]
preset = "tight"
[sparse.set]
bandden = 0.25

[[case]]
name = "shift"
op = "+"
left = { type = "scalar", re = [2.0] }
right = { type = "complex matrix", dims = [2, 2], re = [1.0, 1.0, 1.0, 1.0], im = [1.0, 0.0, 0.0, 1.0] }

[[case]]
op = "cat"
axis = 1
left = { type = "matrix", re = [1.0, 2.0] }
right = { type = "scalar", re = [3.0] }
`

const yamlCfg = `
dispatch:
  complex_ordering: abs-arg
sparse:
  set:
    spumoni: 1
cases:
  - op: "<"
    left: {type: complex scalar, re: [1], im: [1]}
    right: {type: scalar, re: [-2]}
`

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(write(t, "ndarith.toml", tomlCfg))
	require.NoError(t, err)
	require.Equal(t, "real-imag", cfg.Dispatch.ComplexOrdering)
	require.Len(t, cfg.Cases, 2)
	require.Equal(t, "shift", cfg.Cases[0].Name)

	sp, err := cfg.SparseParams()
	require.NoError(t, err)
	require.Equal(t, 0.25, sp.Bandden())
	want, _ := spparms.Tight().With(spparms.Bandden, 0.25)
	require.Equal(t, want, sp)

	opts, err := cfg.Options()
	require.NoError(t, err)
	tbl, err := ops.NewTable(opts...)
	require.NoError(t, err)
	require.Equal(t, ops.OrderRealImag, tbl.Env().Ordering())

	out, err := cfg.Cases[0].Run(tbl)
	require.NoError(t, err)
	require.Equal(t, value.ComplexMatrix, out.Type())
	require.Equal(t, complex(3, 1), value.ComplexData(out)[0])

	out, err = cfg.Cases[1].Run(tbl)
	require.NoError(t, err)
	require.Equal(t, []complex128{1, 2, 3}, value.ComplexData(out))
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(write(t, "ndarith.yml", yamlCfg))
	require.NoError(t, err)
	sp, err := cfg.SparseParams()
	require.NoError(t, err)
	require.Equal(t, 1.0, sp.Spumoni())

	opts, err := cfg.Options()
	require.NoError(t, err)
	tbl, err := ops.NewTable(opts...)
	require.NoError(t, err)
	out, err := cfg.Cases[0].Run(tbl)
	require.NoError(t, err)
	require.Equal(t, value.NewScalar(true), out)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(write(t, "ndarith.json", "{}"))
	require.ErrorIs(t, err, config.ErrUnknownFormat)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	cases := map[string]string{
		"unknown key":    "[dispatch]\ncolour = \"x\"\n",
		"bad ordering":   "[dispatch]\ncomplex_ordering = \"lexical\"\n",
		"bad warnings":   "[dispatch]\nwarnings = \"loud\"\n",
		"bad preset":     "[sparse]\npreset = \"loose\"\n",
		"bad sparse key": "[sparse.set]\nfoo = 1.0\n",
		"bad case op":    "[[case]]\nop = \"**\"\n",
	}
	for name, body := range cases {
		_, err := config.Decode(strings.NewReader(body), config.TOML)
		require.ErrorIs(t, err, config.ErrBadSetting, name)
	}

	_, err = config.Decode(strings.NewReader("dispatch:\n  colour: x\n"), config.YAML)
	require.Error(t, err)

	_, err = config.Decode(strings.NewReader(""), config.Format("ini"))
	require.ErrorIs(t, err, config.ErrUnknownFormat)
}

func TestDecode_EmptyUsesDefaults(t *testing.T) {
	t.Parallel()

	for _, f := range []config.Format{config.TOML, config.YAML} {
		cfg, err := config.Decode(strings.NewReader(""), f)
		require.NoError(t, err)
		sp, err := cfg.SparseParams()
		require.NoError(t, err)
		require.Equal(t, spparms.Defaults(), sp)
		opts, err := cfg.Options()
		require.NoError(t, err)
		require.Len(t, opts, 2)
	}
}

func TestCase_BadLiteral(t *testing.T) {
	t.Parallel()

	cs := config.Case{Op: "+", Left: value.Literal{Type: "scalar", Re: []float64{1, 2}}}
	_, err := cs.Run(ops.Default())
	require.ErrorIs(t, err, value.ErrBadLiteral)
}
