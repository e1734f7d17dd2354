// SPDX-License-Identifier: MIT

// Command ndarith evaluates operator cases and inspects the dispatch table.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
