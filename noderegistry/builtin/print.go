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

// TypePrint is the registered type name for the sink node that writes a
// value to the cooking context's bound output.
const TypePrint = "print"

type printConfig struct {
	// Prefix is written before the value, with no separating space.
	Prefix string `mapstructure:"prefix"`
}

func init() {
	if err := noderegistry.Register(TypePrint, newPrint); err != nil {
		panic(err)
	}
}

func newPrint(opts noderegistry.Options) (*noderegistry.Spec, error) {
	var cfg printConfig
	if err := mapstructure.Decode(map[string]any(opts), &cfg); err != nil {
		return nil, fmt.Errorf("print: decoding options: %w", err)
	}
	return &noderegistry.Spec{
		Inputs: []noderegistry.PortSpec{
			{Name: "value"},
			{Name: "exec", Control: true},
		},
		Outputs: []noderegistry.PortSpec{
			{Name: "next", Control: true},
		},
		// print is usable both as a pure data sink (cook_data_nodes pulls
		// "value" directly) and, via its exec/next ports, as a passthrough
		// step inside a loop body (cook_flow_control_nodes), matching how
		// the end-to-end scenarios use it in both roles.
		FlowControl: true,
		Compute: func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*noderegistry.Result, error) {
			v := inputs["value"]
			fmt.Fprintf(noderegistry.OutputFrom(ctx), "%s%v\n", cfg.Prefix, v)
			setState(v)
			return &noderegistry.Result{
				Command:  noderegistry.CommandContinue,
				Controls: map[string]bool{"next": true},
			}, nil
		},
	}, nil
}
