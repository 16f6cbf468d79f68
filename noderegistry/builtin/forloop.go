//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package builtin

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/flowlang-dev/flowlang/noderegistry"
)

// TypeForLoop is the registered type name for a bounded counting loop
// driver. It is a loop_again exec_class node: it exposes control outputs
// loop_body and completed.
const TypeForLoop = "forloop"

type forLoopConfig struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

// forLoopState carries the current index across loop_again calls.
type forLoopState struct {
	index int
}

func init() {
	if err := noderegistry.Register(TypeForLoop, newForLoop); err != nil {
		panic(err)
	}
}

func newForLoop(opts noderegistry.Options) (*noderegistry.Spec, error) {
	var cfg forLoopConfig
	if err := mapstructure.Decode(map[string]any(opts), &cfg); err != nil {
		return nil, fmt.Errorf("forloop: decoding options: %w", err)
	}
	return &noderegistry.Spec{
		Outputs: []noderegistry.PortSpec{
			{Name: "index", Type: "int"},
			{Name: "loop_body", Control: true},
			{Name: "completed", Control: true},
		},
		FlowControl: true,
		Compute: func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*noderegistry.Result, error) {
			st, _ := state.(*forLoopState)
			if st == nil {
				st = &forLoopState{index: cfg.Start}
			}
			if st.index >= cfg.End {
				setState(nil)
				return &noderegistry.Result{
					Command:  noderegistry.CommandCompleted,
					Controls: map[string]bool{"completed": true},
				}, nil
			}
			index := st.index
			st.index++
			setState(st)
			return &noderegistry.Result{
				Command:  noderegistry.CommandLoopAgain,
				Outputs:  map[string]any{"index": index},
				Controls: map[string]bool{"loop_body": true},
			}, nil
		},
	}, nil
}
