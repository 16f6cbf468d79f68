//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package dsl

import (
	"errors"
	"fmt"

	"github.com/flowlang-dev/flowlang/graph"
)

// BuildResult is the outcome of Build: the constructed network plus any
// non-fatal warnings collected along the way (one per permissive-mode
// unknown type that fell back to a stub).
type BuildResult struct {
	Network  *graph.Network
	Warnings []string
}

// Build validates doc and constructs a live graph.Network from it. strict
// mode turns an unknown node type into a fatal ErrUnknownNodeType; permissive
// mode instead falls back to a stub node and records a warning.
func Build(doc *Document, strict bool) (*BuildResult, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	root := graph.NewRootNetwork(doc.GraphName, "network")
	result := &BuildResult{Network: root}

	idToName := make(map[string]string, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		idToName[nd.ID] = nd.displayName()
	}

	for _, nd := range doc.Nodes {
		if err := buildNode(root, nd, strict, result); err != nil {
			return nil, err
		}
	}

	for i, ed := range doc.Edges {
		fromName, ok := idToName[ed.FromNode]
		if !ok {
			return nil, fmt.Errorf("%w: edge %d from_node %q", ErrUnknownEdgeEndpoint, i, ed.FromNode)
		}
		toName, ok := idToName[ed.ToNode]
		if !ok {
			return nil, fmt.Errorf("%w: edge %d to_node %q", ErrUnknownEdgeEndpoint, i, ed.ToNode)
		}
		if _, err := root.Connect(fromName, ed.FromPort, toName, ed.ToPort); err != nil {
			return nil, fmt.Errorf("edge %d (%s:%s -> %s:%s): %w", i, fromName, ed.FromPort, toName, ed.ToPort, err)
		}
	}

	return result, nil
}

func buildNode(root *graph.Network, nd NodeDoc, strict bool, result *BuildResult) error {
	name := nd.displayName()
	n, err := root.CreateNode(name, nd.Type, nd.Inputs)
	if err == nil {
		applyStaticOutputs(n, nd.Outputs)
		return nil
	}
	if !isUnknownTypeErr(err) {
		return fmt.Errorf("node %s: %w", name, err)
	}
	if strict {
		return fmt.Errorf("%w: %s", ErrUnknownNodeType, nd.Type)
	}

	result.Warnings = append(result.Warnings, fmt.Sprintf("node %s: %v: falling back to a stub node", name, ErrUnknownNodeType))
	stub, err := root.CreateUnknownTypeStub(name, nd.Type, keysOf(nd.Inputs), keysOf(nd.Outputs), classifyPort)
	if err != nil {
		return fmt.Errorf("node %s: building stub: %w", name, err)
	}
	applyStaticOutputs(stub, nd.Outputs)
	return nil
}

// applyStaticOutputs writes a node doc's preset "outputs" values directly
// onto the constructed node's own output ports, for documents that author
// a value in place rather than wiring it from another node.
func applyStaticOutputs(n *graph.Node, outputs map[string]any) {
	for name, v := range outputs {
		if p, ok := n.OutputPort(name); ok {
			_ = p.SetValue(v)
		}
	}
}

func classifyPort(name string) graph.Function {
	if isReservedControlName(name) {
		return graph.FunctionControl
	}
	return graph.FunctionData
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// isUnknownTypeErr reports whether err is graph's ErrUnknownType, the
// signal that CreateNode failed to resolve the registry rather than
// failing for some other construction reason.
func isUnknownTypeErr(err error) bool {
	return errors.Is(err, graph.ErrUnknownType)
}
