//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package compiler turns a live graph.Network into generated Go source,
// through a three-phase pipeline: Extract, Schedule, and Emit.
package compiler

import (
	"fmt"

	"github.com/flowlang-dev/flowlang/compiler/ir"
	"github.com/flowlang-dev/flowlang/graph"
)

// Extract converts one network's flat children into an *ir.Graph: a
// serialisable, graph-agnostic snapshot suitable for Schedule. Nested
// KindNetwork children are not addressable at this flat IR level — this
// compiler compiles one network at a time; edges touching them are dropped
// along with the nodes themselves. A caller wanting a fully compiled tree
// calls Extract once per network and stitches the results at the call-site
// boundary (a tunnel edge becomes a materialized value or a direct call
// argument in the emitted code, not an IR edge).
func Extract(net *graph.Network) (*ir.Graph, error) {
	g := net.Graph()
	children := g.Nodes(net.ID())

	addressable := make(map[string]bool, len(children))
	var nodes []*ir.IRNode
	for _, n := range children {
		if n.Kind == graph.KindNetwork {
			continue
		}
		addressable[n.ID] = true
	}

	for _, n := range children {
		if n.Kind == graph.KindNetwork {
			continue
		}
		irn, err := extractNode(n)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", n.Name, err)
		}
		nodes = append(nodes, irn)
	}

	var edges []*ir.IREdge
	for _, e := range g.AllEdges() {
		if !addressable[e.FromNode] || !addressable[e.ToNode] {
			continue
		}
		class := ir.EdgeData
		if e.Class == graph.EdgeControl {
			class = ir.EdgeControl
		}
		edges = append(edges, &ir.IREdge{
			FromID:   e.FromNode,
			FromPort: e.FromPort,
			ToID:     e.ToNode,
			ToPort:   e.ToPort,
			Class:    class,
		})
	}

	return &ir.Graph{ID: net.ID(), Name: net.Node().Name, Nodes: nodes, Edges: edges}, nil
}

// extractNode converts a single function node to its IR form, classifying
// its ExecClass structurally and capturing static output values for
// constant-class nodes.
func extractNode(n *graph.Node) (*ir.IRNode, error) {
	irn := &ir.IRNode{
		ID:       n.ID,
		Name:     n.Name,
		TypeName: n.TypeName,
	}

	for name, p := range n.Inputs {
		irn.Inputs = append(irn.Inputs, toIRPort(name, p))
	}
	for name, p := range n.Outputs {
		irn.Outputs = append(irn.Outputs, toIRPort(name, p))
	}

	irn.ExecClass = classify(n)
	irn.IsFlowControl = n.FlowControl

	if irn.ExecClass == ir.ExecConstant {
		irn.StaticOutputValues = make(map[string]any, len(n.Outputs))
		for name, p := range n.Outputs {
			irn.StaticOutputValues[name] = p.Value()
		}
	}

	return irn, nil
}

func toIRPort(name string, p *graph.Port) ir.Port {
	class := ir.PortData
	if p.Function == graph.FunctionControl {
		class = ir.PortControl
	}
	return ir.Port{Name: name, Class: class, Type: string(p.ValueType)}
}

// classify implements the structural exec-class rule:
//   - a flow-control node with loop_body and completed outputs is loop_again
//   - a flow-control node with true_out and false_out outputs is branch
//   - any other flow-control node is passthrough
//   - a data node with no data-input ports is constant
//   - any other data node is data
func classify(n *graph.Node) ir.ExecClass {
	if n.FlowControl {
		hasOut := func(name string) bool {
			p, ok := n.Outputs[name]
			return ok && p.Function == graph.FunctionControl
		}
		switch {
		case hasOut("loop_body") && hasOut("completed"):
			return ir.ExecLoopAgain
		case hasOut("true_out") && hasOut("false_out"):
			return ir.ExecBranch
		default:
			return ir.ExecPassthrough
		}
	}

	for _, p := range n.Inputs {
		if p.Function == graph.FunctionData {
			return ir.ExecData
		}
	}
	return ir.ExecConstant
}
