// SPDX-License-Identifier: MIT

// Package spparms holds the process-wide sparse solver parameter table.
//
// The table has thirteen keyed values (see Keys). Two presets exist:
// Defaults and Tight. A Table is a plain value; editing returns a copy.
//
// The process-wide table is installed at most once: Install succeeds only
// before the first Install or Current call, after which the table is frozen
// and readers need no locking. Solvers read bandden and sym_tol to classify
// coefficient matrices, and spumoni to enable solver debug logging.
package spparms
