// SPDX-License-Identifier: MIT

package spparms_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ndarith/spparms"
)

func TestPresets(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		[]float64{0, 1, 1, 0, 3, 3, 0.5, 1, 1, 0.1, 0.5, 1, 0.001},
		spparms.Defaults().Values())
	require.Equal(t,
		[]float64{0, 1, 0, 0, 1, 1, 0.5, 1, 1, 0.1, 0.5, 1, 0.001},
		spparms.Tight().Values())
	require.Len(t, spparms.Keys(), spparms.NumKeys)
	require.Equal(t, 0.5, spparms.Defaults().Bandden())
	require.Equal(t, 0.001, spparms.Defaults().SymTol())
}

func TestTable_GetWith(t *testing.T) {
	t.Parallel()

	d := spparms.Defaults()
	v, err := d.Get("PIV_TOL")
	require.NoError(t, err)
	require.Equal(t, 0.1, v)

	e, err := d.With(spparms.Bandden, 0.9)
	require.NoError(t, err)
	require.Equal(t, 0.9, e.Bandden())
	require.Equal(t, 0.5, d.Bandden(), "With must not mutate the receiver")

	_, err = d.Get("nope")
	require.ErrorIs(t, err, spparms.ErrUnknownKey)
	_, err = d.With("nope", 1)
	require.ErrorIs(t, err, spparms.ErrUnknownKey)
}

func TestTable_WithValues(t *testing.T) {
	t.Parallel()

	d, err := spparms.Defaults().WithValues([]float64{2, 7})
	require.NoError(t, err)
	require.Equal(t, 2.0, d.Spumoni())
	v, _ := d.Get(spparms.ThsRel)
	require.Equal(t, 7.0, v)
	v, _ = d.Get(spparms.ThsAbs)
	require.Equal(t, 1.0, v)

	_, err = d.WithValues(make([]float64, spparms.NumKeys+1))
	require.ErrorIs(t, err, spparms.ErrTooManyValues)
}

func TestTable_PrintInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, spparms.Defaults().PrintInfo(&buf, "  "))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, spparms.NumKeys)
	require.Equal(t, "  spumoni: 0", lines[0])
	require.Equal(t, "  sym_tol: 0.001", lines[12])
}

// Install-once is process state; these tests run sequentially.
func TestInstallOnce(t *testing.T) {
	spparms.ResetForTest()
	t.Cleanup(spparms.ResetForTest)

	require.NoError(t, spparms.Install(spparms.Tight()))
	require.Equal(t, spparms.Tight(), spparms.Current())
	require.ErrorIs(t, spparms.Install(spparms.Defaults()), spparms.ErrFrozen)
	require.Equal(t, spparms.Tight(), spparms.Current())
}

func TestCurrentFreezesDefaults(t *testing.T) {
	spparms.ResetForTest()
	t.Cleanup(spparms.ResetForTest)

	require.Equal(t, spparms.Defaults(), spparms.Current())
	require.ErrorIs(t, spparms.Install(spparms.Tight()), spparms.ErrFrozen)
}
