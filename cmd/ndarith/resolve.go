// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndarith/config"
	"github.com/katalvlaran/ndarith/ops"
	"github.com/katalvlaran/ndarith/value"
)

func newResolveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve OP LEFT RIGHT",
		Short: "Show the widening plan for an operator and two operand types",
		Example: `  ndarith resolve + bool "complex matrix"
  ndarith resolve cat "int8 scalar" scalar`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			tbl, err := tableFor(cmd, cfg)
			if err != nil {
				return err
			}
			l, err := value.ParseType(args[1])
			if err != nil {
				return err
			}
			r, err := value.ParseType(args[2])
			if err != nil {
				return err
			}

			var p *ops.Plan
			if strings.EqualFold(args[0], config.CatOp) {
				p, err = tbl.ResolveConcat(l, r)
			} else {
				op, perr := ops.ParseOp(args[0])
				if perr != nil {
					return perr
				}
				p, err = tbl.Resolve(op, l, r)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)

			return nil
		},
	}
}
