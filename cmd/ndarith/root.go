// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndarith/config"
	"github.com/katalvlaran/ndarith/ops"
)

// version is overridden at link time.
var version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	config string
	color  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:               "ndarith",
		Short:             "Typed array operator dispatch",
		Long:              `ndarith applies binary operators to typed scalar, matrix and diagonal values and shows how operands are widened.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return applyColorMode(g.color)
		},
	}
	root.PersistentFlags().StringVar(&g.config, "config", "", "settings file (.toml, .yaml)")
	root.PersistentFlags().StringVar(&g.color, "color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(
		newApplyCmd(g),
		newTableCmd(g),
		newResolveCmd(g),
		newSpparmsCmd(g),
		newDecodeCmd(),
		newVersionCmd(),
	)
	root.SetErrPrefix(errColor.Sprint("error:"))

	return root
}

func applyColorMode(mode string) error {
	switch strings.ToLower(mode) {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("--color %q: want auto, on or off", mode)
	}

	return nil
}

// loadConfig reads the --config file; no flag means defaults.
func (g *globalFlags) loadConfig() (*config.File, error) {
	if g.config == "" {
		return &config.File{}, nil
	}

	return config.Load(g.config)
}

// tableFor builds a dispatch table from cfg, printing warnings to the command
// unless cfg turns them off.
func tableFor(cmd *cobra.Command, cfg *config.File) (*ops.Table, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(cfg.Dispatch.Warnings, config.WarningsOff) {
		w := cmd.ErrOrStderr()
		opts = append(opts, ops.WithWarningHandler(func(x ops.Warning) {
			fmt.Fprintf(w, "%s %s (%s %s %s, rcond=%g)\n",
				warnColor.Sprint("warning:"), x.Message, x.Left, x.Op, x.Right, x.RCond)
		}))
	}

	return ops.NewTable(opts...)
}
