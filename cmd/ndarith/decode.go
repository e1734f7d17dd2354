// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndarith/value"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode FILE",
		Short: "Print the values of a msgpack file written by apply --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			vs, err := value.Decode(f)
			if err != nil {
				return err
			}
			for _, v := range vs {
				printValue(cmd.OutOrStdout(), v)
			}

			return nil
		},
	}
}
