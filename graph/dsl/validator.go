//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package dsl

import "fmt"

// reservedControlPorts is the closed set of port names whose class is
// inferred as control rather than data: for the ports of a stub node whose
// type has no registered schema (Build), and for every edge's class by its
// source port name (ToIR). A document that wires a port a registered type
// does not declare fails in Build with graph.ErrUnknownPort.
var reservedControlPorts = map[string]bool{
	"exec": true, "next": true, "loop_body": true, "completed": true,
	"true_out": true, "false_out": true, "trigger": true, "done": true,
}

// isReservedControlName reports whether name infers as a control port
// under the reserved-name table.
func isReservedControlName(name string) bool {
	return reservedControlPorts[name]
}

// Validate checks structural invariants independent of the node type
// registry: unique node ids, and every edge endpoint naming a node present
// in the document. An unknown node id on an edge is always fatal here;
// strict has no further effect beyond what Build separately does for
// unknown types.
func Validate(doc *Document) error {
	seen := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return fmt.Errorf("dsl: node with empty id")
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: node id %q", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = true
	}
	for i, e := range doc.Edges {
		if !seen[e.FromNode] {
			return fmt.Errorf("%w: edge %d from_node %q", ErrUnknownEdgeEndpoint, i, e.FromNode)
		}
		if !seen[e.ToNode] {
			return fmt.Errorf("%w: edge %d to_node %q", ErrUnknownEdgeEndpoint, i, e.ToNode)
		}
	}
	return nil
}
