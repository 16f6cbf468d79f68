//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package builtin registers the stock node kinds every graph can draw on:
// constant, print, arithmetic, loop drivers, branch and passthrough. Each
// kind registers itself into noderegistry's global table from an init
// function, so importing the package for its side effect makes them
// available.
package builtin

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/flowlang-dev/flowlang/noderegistry"
)

// TypeConstant is the registered type name for a constant-value source node.
const TypeConstant = "constant"

// constantConfig is the options shape for a constant node: a single
// statically-known value, exposed on its "value" output. exec_class
// classification treats any data node with no data-input ports as constant,
// so this node's single output port is enough.
type constantConfig struct {
	Value any `mapstructure:"value"`
}

func init() {
	if err := noderegistry.Register(TypeConstant, newConstant); err != nil {
		panic(err)
	}
}

func newConstant(opts noderegistry.Options) (*noderegistry.Spec, error) {
	var cfg constantConfig
	if err := mapstructure.Decode(map[string]any(opts), &cfg); err != nil {
		return nil, fmt.Errorf("constant: decoding options: %w", err)
	}
	value := cfg.Value
	return &noderegistry.Spec{
		Outputs: []noderegistry.PortSpec{{Name: "value"}},
		Compute: func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*noderegistry.Result, error) {
			return &noderegistry.Result{
				Command: noderegistry.CommandContinue,
				Outputs: map[string]any{"value": value},
			}, nil
		},
	}, nil
}
