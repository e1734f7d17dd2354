// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

func newSpparmsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "spparms",
		Short: "Print the sparse parameter table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			t, err := cfg.SparseParams()
			if err != nil {
				return err
			}

			return t.PrintInfo(cmd.OutOrStdout(), "  ")
		},
	}
}
