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

// TypeForEach is the registered type name for a list-driven loop_again
// driver. Like forloop it exposes loop_body and completed control outputs;
// unlike forloop, its iteration count comes from a data input rather than
// static options, so an empty list fires completed immediately.
const TypeForEach = "foreach"

type forEachState struct {
	items []any
	index int
}

func init() {
	if err := noderegistry.Register(TypeForEach, newForEach); err != nil {
		panic(err)
	}
}

func newForEach(opts noderegistry.Options) (*noderegistry.Spec, error) {
	return &noderegistry.Spec{
		Inputs: []noderegistry.PortSpec{{Name: "items", Type: "array"}},
		Outputs: []noderegistry.PortSpec{
			{Name: "item"},
			{Name: "index", Type: "int"},
			{Name: "total", Type: "int"},
			{Name: "loop_body", Control: true},
			{Name: "completed", Control: true},
		},
		FlowControl: true,
		Compute: func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*noderegistry.Result, error) {
			st, _ := state.(*forEachState)
			if st == nil {
				items, _ := inputs["items"].([]any)
				st = &forEachState{items: items}
			}
			if st.index >= len(st.items) {
				total := len(st.items)
				setState(nil)
				return &noderegistry.Result{
					Command:  noderegistry.CommandCompleted,
					Outputs:  map[string]any{"total": total},
					Controls: map[string]bool{"completed": true},
				}, nil
			}
			item := st.items[st.index]
			index := st.index
			st.index++
			setState(st)
			return &noderegistry.Result{
				Command:  noderegistry.CommandLoopAgain,
				Outputs:  map[string]any{"item": item, "index": index},
				Controls: map[string]bool{"loop_body": true},
			}, nil
		},
	}, nil
}
