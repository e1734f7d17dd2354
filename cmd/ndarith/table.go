// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndarith/ops"
)

func newTableCmd(g *globalFlags) *cobra.Command {
	var (
		opName    string
		widenings bool
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "List the registered kernels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			tbl, err := tableFor(cmd, cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if widenings {
				for _, e := range tbl.Widenings() {
					fmt.Fprintf(w, "%s -> %s\n", typeColor.Sprint(e.From), typeColor.Sprint(e.To))
				}
				return nil
			}

			var filter *ops.Op
			if opName != "" {
				op, err := ops.ParseOp(opName)
				if err != nil {
					return err
				}
				filter = &op
			}
			for _, e := range tbl.Kernels() {
				if filter != nil && e.Op != *filter {
					continue
				}
				fmt.Fprintf(w, "%-8s %s %s %s -> %s\n", e.Op, typeColor.Sprint(e.Left),
					opColor.Sprint(e.Op.Symbol()), typeColor.Sprint(e.Right), typeColor.Sprint(e.Result))
			}
			if filter == nil {
				for _, e := range tbl.CatKernels() {
					fmt.Fprintf(w, "%-8s [%s, %s] -> %s\n", "cat", typeColor.Sprint(e.Left),
						typeColor.Sprint(e.Right), typeColor.Sprint(e.Result))
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&opName, "op", "", "only list kernels of this operator")
	cmd.Flags().BoolVar(&widenings, "widenings", false, "list widening steps instead")

	return cmd
}
