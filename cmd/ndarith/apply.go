// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndarith/config"
	"github.com/katalvlaran/ndarith/value"
)

func newApplyCmd(g *globalFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "apply CASEFILE",
		Short: "Evaluate the cases of a TOML or YAML file",
		Long: `apply evaluates every case of CASEFILE in order. Settings come from
--config when given, otherwise from CASEFILE itself. With --out the
results are written as one msgpack envelope.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := config.Load(args[0])
			if err != nil {
				return err
			}
			settings := cases
			if g.config != "" {
				if settings, err = g.loadConfig(); err != nil {
					return err
				}
			}
			tbl, err := tableFor(cmd, settings)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			results := make([]value.Value, 0, len(cases.Cases))
			failed := 0
			for i, cs := range cases.Cases {
				name := cs.Name
				if name == "" {
					name = fmt.Sprintf("case %d", i+1)
				}
				fmt.Fprintf(w, "%s %s\n", titleColor.Sprint(name), opColor.Sprint(cs.Op))
				res, err := cs.Run(tbl)
				if err != nil {
					failed++
					fmt.Fprintf(w, "  %s %v\n", errColor.Sprint("error:"), err)
					continue
				}
				fmt.Fprint(w, "  ")
				printValue(w, res)
				results = append(results, res)
			}

			if out != "" {
				if err := writeResults(out, results); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d cases failed", failed, len(cases.Cases))
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write results to this msgpack file")

	return cmd
}

func writeResults(path string, vs []value.Value) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return value.Encode(f, vs...)
}
