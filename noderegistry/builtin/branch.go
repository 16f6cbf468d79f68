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

// TypeBranch is the registered type name for a two-way conditional. Its
// true_out/false_out control outputs are what the structural exec_class
// rule uses to classify a flow node as branch.
const TypeBranch = "branch"

func init() {
	if err := noderegistry.Register(TypeBranch, newBranch); err != nil {
		panic(err)
	}
}

func newBranch(opts noderegistry.Options) (*noderegistry.Spec, error) {
	return &noderegistry.Spec{
		Inputs: []noderegistry.PortSpec{
			{Name: "condition", Type: "bool"},
			{Name: "exec", Control: true},
		},
		Outputs: []noderegistry.PortSpec{
			{Name: "true_out", Control: true},
			{Name: "false_out", Control: true},
		},
		FlowControl: true,
		Compute: func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*noderegistry.Result, error) {
			cond, _ := inputs["condition"].(bool)
			return &noderegistry.Result{
				Command: noderegistry.CommandContinue,
				Controls: map[string]bool{
					"true_out":  cond,
					"false_out": !cond,
				},
			}, nil
		},
	}, nil
}
