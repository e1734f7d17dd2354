// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/katalvlaran/ndarith/value"
)

var (
	typeColor  = color.New(color.FgCyan)
	opColor    = color.New(color.FgYellow, color.Bold)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
	titleColor = color.New(color.FgGreen, color.Bold)
)

// printValue writes "type dims = elements" for v.
func printValue(w io.Writer, v value.Value) {
	fmt.Fprintf(w, "%s %s = %s\n", typeColor.Sprint(v.Type()), v.Dims(), elements(v))
}

// elements renders the column-major elements, dropping zero imaginary
// parts of real types.
func elements(v value.Value) string {
	data := value.ComplexData(v)
	parts := make([]string, len(data))
	cplx := v.Type().Kind.IsComplex()
	for i, c := range data {
		switch {
		case v.Type().Kind == value.KindBool:
			parts[i] = fmt.Sprint(real(c) != 0)
		case cplx:
			parts[i] = fmt.Sprintf("%g%+gi", real(c), imag(c))
		default:
			parts[i] = fmt.Sprintf("%g", real(c))
		}
	}

	return "[" + strings.Join(parts, " ") + "]"
}
