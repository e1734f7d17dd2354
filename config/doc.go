// SPDX-License-Identifier: MIT

// Package config loads ndarith settings and operator cases from TOML or
// YAML files.
//
// A file has three optional parts:
//
//	[dispatch]
//	complex_ordering = "abs-arg"   # or "real-imag"
//	warnings = "log"               # or "off"
//
//	[sparse]
//	preset = "default"             # or "tight"
//	[sparse.set]
//	bandden = 0.5
//
//	[[case]]
//	op = "+"
//	left  = { type = "scalar", re = [2] }
//	right = { type = "complex matrix", dims = [2, 2], re = [1, 1, 1, 1], im = [1, 0, 0, 1] }
//
// The YAML form uses the same keys, with "cases" for the case list.
// Options and SparseParams turn the settings into ops options.
package config
