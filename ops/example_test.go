// SPDX-License-Identifier: MIT

package ops_test

import (
	"fmt"

	"github.com/katalvlaran/ndarith/dims"
	"github.com/katalvlaran/ndarith/ops"
	"github.com/katalvlaran/ndarith/value"
)

// ExampleApply adds a real scalar to a complex matrix; no widening step is
// needed because the mixed kernel is registered.
func ExampleApply() {
	m, _ := value.MatrixOf(dims.New(1, 2), []complex128{1i, 2})
	out, err := ops.Apply(ops.Add, value.NewScalar(1.0), m)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out.Type(), value.ComplexData(out))
	// Output: complex matrix [(1+1i) (3+0i)]
}

// ExampleTable_Resolve shows the widening chosen for a bool pair.
func ExampleTable_Resolve() {
	p, err := ops.Default().Resolve(ops.Add, value.Bool, value.Bool)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.KernelLeft, p.KernelRight, p.Result)
	// Output: scalar scalar scalar
}
