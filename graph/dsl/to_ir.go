//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package dsl

import (
	"fmt"

	"github.com/flowlang-dev/flowlang/compiler/ir"
	"github.com/flowlang-dev/flowlang/graph"
	"github.com/flowlang-dev/flowlang/noderegistry"
)

// ToIR converts a parsed Document directly into an ir.Graph, without first
// materializing a live graph.Network: decoding a document this way must
// produce an IR structurally equal to extracting the equivalent live graph,
// for every node whose type name is registered. Nodes with an unregistered
// type are rejected with an error rather than silently degraded to a stub,
// since this path (unlike Build) has no live network to attach stub compute
// behavior to.
func ToIR(doc *Document) (*ir.Graph, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var nodes []*ir.IRNode
	for _, nd := range doc.Nodes {
		ctor, ok := noderegistry.Lookup(nd.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, nd.Type)
		}
		spec, err := ctor(noderegistry.Options(nd.Inputs))
		if err != nil {
			return nil, fmt.Errorf("node %s: constructing %s: %w", nd.ID, nd.Type, err)
		}
		nodes = append(nodes, toIRNode(nd, spec))
	}

	var edges []*ir.IREdge
	for _, ed := range doc.Edges {
		class := ir.EdgeData
		if isReservedControlName(ed.FromPort) {
			class = ir.EdgeControl
		}
		edges = append(edges, &ir.IREdge{
			FromID:   ed.FromNode,
			FromPort: ed.FromPort,
			ToID:     ed.ToNode,
			ToPort:   ed.ToPort,
			Class:    class,
		})
	}

	return &ir.Graph{ID: doc.ID, Name: doc.GraphName, Nodes: nodes, Edges: edges}, nil
}

func toIRNode(nd NodeDoc, spec *noderegistry.Spec) *ir.IRNode {
	irn := &ir.IRNode{
		ID:            nd.ID,
		Name:          nd.displayName(),
		TypeName:      nd.Type,
		IsFlowControl: spec.FlowControl,
	}
	for _, p := range spec.Inputs {
		irn.Inputs = append(irn.Inputs, specToIRPort(p))
	}
	for _, p := range spec.Outputs {
		irn.Outputs = append(irn.Outputs, specToIRPort(p))
	}
	irn.ExecClass = classifyFromSpec(spec)
	if irn.ExecClass == ir.ExecConstant && len(nd.Outputs) > 0 {
		irn.StaticOutputValues = nd.Outputs
	}
	return irn
}

// specToIRPort normalizes the port type the way graph.NewPort does (control
// ports are bool, an empty data type is any), so the result matches what
// Extract reads from a live node's ports.
func specToIRPort(p noderegistry.PortSpec) ir.Port {
	class := ir.PortData
	typ := p.Type
	if p.Control {
		class = ir.PortControl
		typ = string(graph.TypeBool)
	} else if typ == "" {
		typ = string(graph.TypeAny)
	}
	return ir.Port{Name: p.Name, Class: class, Type: typ}
}

// classifyFromSpec mirrors compiler.classify's structural rule, operating
// on a noderegistry.Spec instead of a live graph.Node.
func classifyFromSpec(spec *noderegistry.Spec) ir.ExecClass {
	if spec.FlowControl {
		hasOut := func(name string) bool {
			for _, p := range spec.Outputs {
				if p.Name == name && p.Control {
					return true
				}
			}
			return false
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
	for _, p := range spec.Inputs {
		if !p.Control {
			return ir.ExecData
		}
	}
	return ir.ExecConstant
}
