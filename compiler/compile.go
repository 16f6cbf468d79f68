//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package compiler

import (
	"fmt"

	"github.com/flowlang-dev/flowlang/compiler/ir"
	"github.com/flowlang-dev/flowlang/graph"
)

// Analyze runs the first two compiler phases on one network: Extract
// (graph.Network -> ir.Graph) followed by ir.Schedule (ir.Graph ->
// ir.Schedule). The emit phase consumes the returned Schedule separately,
// since its output format depends on the target template profile.
func Analyze(net *graph.Network) (*ir.Schedule, error) {
	irg, err := Extract(net)
	if err != nil {
		return nil, err
	}
	sched, err := ir.Schedule(irg)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", net.Node().Name, err)
	}
	return sched, nil
}
