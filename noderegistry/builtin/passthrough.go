//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package builtin

import (
	"context"

	"github.com/flowlang-dev/flowlang/noderegistry"
)

// TypeAccumulator is the registered type name for a single-input flow sink
// driven from a loop body. It is a passthrough exec_class node: it has
// exactly one control output, "next", so the structural exec_class rule
// falls through to passthrough rather than matching loop_again or branch.
const TypeAccumulator = "accumulator"

// AccumulatorState records every value the node has observed across calls
// (its driving loop's iteration count), for callers to inspect via
// graph.Node.State() after cooking completes.
type AccumulatorState struct {
	Values []any
}

func init() {
	if err := noderegistry.Register(TypeAccumulator, newAccumulator); err != nil {
		panic(err)
	}
}

func newAccumulator(opts noderegistry.Options) (*noderegistry.Spec, error) {
	return &noderegistry.Spec{
		Inputs: []noderegistry.PortSpec{
			{Name: "val"},
			{Name: "exec", Control: true},
		},
		Outputs: []noderegistry.PortSpec{
			{Name: "next", Control: true},
		},
		FlowControl: true,
		Compute: func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*noderegistry.Result, error) {
			st, _ := state.(*AccumulatorState)
			if st == nil {
				st = &AccumulatorState{}
			}
			st.Values = append(st.Values, inputs["val"])
			setState(st)
			return &noderegistry.Result{
				Command:  noderegistry.CommandContinue,
				Controls: map[string]bool{"next": true},
			}, nil
		},
	}, nil
}
