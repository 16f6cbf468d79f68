//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package graph implements the data-flow data model: typed ports joined by
// directed edges, nodes, networks (nodes that own a nested subgraph), and
// the flat arena (Graph) all of them live in.
package graph

import (
	"fmt"
	"strings"
	"sync"
)

// Graph is the flat arena shared by a root Network and all of its
// descendant networks. It owns every Node and Edge; external references are
// by opaque id only, so a node or edge can be relocated or renamed without
// invalidating anything that already holds its id.
type Graph struct {
	mu sync.RWMutex

	nodes map[string]*Node
	edges []*Edge

	// incoming/outgoing index (node, port) -> edges, for O(1) lookups.
	incoming map[endpointKey][]*Edge
	outgoing map[endpointKey][]*Edge

	rootID string
}

// NewGraph creates an empty arena. Use NewRootNetwork to also create and
// register the root network node in one step.
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		incoming: make(map[endpointKey][]*Edge),
		outgoing: make(map[endpointKey][]*Edge),
	}
}

// AddNode inserts a node into the arena. Fails with ErrDuplicateNode if its
// id is already present.
func (g *Graph) AddNode(n *Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n.ID == "" {
		return fmt.Errorf("node id cannot be empty for %q", n.Name)
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	g.nodes[n.ID] = n
	return nil
}

// Node returns a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node owned by the given network id (its direct
// children only).
func (g *Graph) Nodes(ownerNetwork string) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*Node
	for _, n := range g.nodes {
		if n.OwnerNetwork == ownerNetwork {
			out = append(out, n)
		}
	}
	return out
}

// AddEdge validates both endpoints exist, appends to the edge list, and
// updates both adjacency indexes. It does not enforce port type
// compatibility (a Port concern); it does reject a second data edge into an
// already-sourced data input port rather than silently overwriting its
// sibling.
func (g *Graph) AddEdge(fromNode, fromPort, toNode, toPort string) (*Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	from, ok := g.nodes[fromNode]
	if !ok {
		return nil, fmt.Errorf("%w: source node %s", ErrUnknownEndpoint, fromNode)
	}
	to, ok := g.nodes[toNode]
	if !ok {
		return nil, fmt.Errorf("%w: target node %s", ErrUnknownEndpoint, toNode)
	}
	srcPort, ok := from.OutputPort(fromPort)
	if !ok {
		// Network nodes expose their input ports as internal output sources
		// (tunnel semantics); accept that shape too.
		srcPort, ok = from.InputPort(fromPort)
		if !ok || from.Kind != KindNetwork {
			return nil, fmt.Errorf("%w: %s:%s", ErrUnknownPort, fromNode, fromPort)
		}
	}
	dstPort, ok := to.InputPort(toPort)
	if !ok {
		dstPort, ok = to.OutputPort(toPort)
		if !ok || to.Kind != KindNetwork {
			return nil, fmt.Errorf("%w: %s:%s", ErrUnknownPort, toNode, toPort)
		}
	}
	if fromNode == toNode && fromPort == toPort {
		return nil, fmt.Errorf("%w: %s:%s", ErrSelfConnection, fromNode, fromPort)
	}

	class := EdgeData
	if srcPort.Function == FunctionControl {
		class = EdgeControl
	}

	if class == EdgeData && dstPort.Function == FunctionData {
		dstKey := endpointKey{toNode, toPort}
		for _, e := range g.incoming[dstKey] {
			if e.Class == EdgeData {
				return nil, fmt.Errorf("%w: %s:%s", ErrMultipleDataSources, toNode, toPort)
			}
		}
	}

	e := &Edge{FromNode: fromNode, FromPort: fromPort, ToNode: toNode, ToPort: toPort, Class: class}
	g.edges = append(g.edges, e)
	g.outgoing[endpointKey{fromNode, fromPort}] = append(g.outgoing[endpointKey{fromNode, fromPort}], e)
	g.incoming[endpointKey{toNode, toPort}] = append(g.incoming[endpointKey{toNode, toPort}], e)
	return e, nil
}

// DeleteNode removes the node and every edge whose endpoints reference it,
// atomically. Fails with ErrNodeNotFound if absent.
func (g *Graph) DeleteNode(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.FromNode == id || e.ToNode == id {
			delete(g.incoming, endpointKey{e.ToNode, e.ToPort})
			delete(g.outgoing, endpointKey{e.FromNode, e.FromPort})
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	// Rebuild indexes from the surviving edge list to avoid leaving stale
	// partial entries behind for ports that still have other edges.
	g.incoming = make(map[endpointKey][]*Edge, len(g.edges))
	g.outgoing = make(map[endpointKey][]*Edge, len(g.edges))
	for _, e := range g.edges {
		g.incoming[endpointKey{e.ToNode, e.ToPort}] = append(g.incoming[endpointKey{e.ToNode, e.ToPort}], e)
		g.outgoing[endpointKey{e.FromNode, e.FromPort}] = append(g.outgoing[endpointKey{e.FromNode, e.FromPort}], e)
	}
	delete(g.nodes, id)
	return nil
}

// IncomingEdges returns the edges whose target is (nodeID, port), O(1) via
// the incoming index.
func (g *Graph) IncomingEdges(nodeID, port string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*Edge(nil), g.incoming[endpointKey{nodeID, port}]...)
}

// OutgoingEdges returns the edges whose source is (nodeID, port), O(1) via
// the outgoing index.
func (g *Graph) OutgoingEdges(nodeID, port string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*Edge(nil), g.outgoing[endpointKey{nodeID, port}]...)
}

// AllEdges returns every edge in the arena.
func (g *Graph) AllEdges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*Edge(nil), g.edges...)
}

// Path returns the canonical path of a node: network nesting separated by
// "/", with the terminal non-network node prefixed by ":". Networks
// themselves are addressable without a leading ":" segment.
func (g *Graph) Path(id string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	var ancestors []string
	cur := n.OwnerNetwork
	for cur != "" {
		owner, ok := g.nodes[cur]
		if !ok {
			return "", fmt.Errorf("%w: dangling owner %s", ErrInvalidPath, cur)
		}
		ancestors = append([]string{owner.Name}, ancestors...)
		cur = owner.OwnerNetwork
	}
	if n.Kind == KindNetwork {
		return "/" + strings.Join(append(ancestors, n.Name), "/"), nil
	}
	return "/" + strings.Join(ancestors, "/") + ":" + n.Name, nil
}

// NodeByPath resolves a path of the form "/root/subnet:nodename" (or
// "/root/subnet" for a network itself) into a node id. Resolution is a pure
// function of the current node table.
func (g *Graph) NodeByPath(path string) (*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	networkPart, terminal, hasTerminal := strings.Cut(path, ":")
	segments := strings.Split(strings.Trim(networkPart, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	// Find the unique root network by name.
	var cur *Node
	for _, n := range g.nodes {
		if n.OwnerNetwork == "" && n.Kind == KindNetwork && n.Name == segments[0] {
			cur = n
			break
		}
	}
	if cur == nil {
		return nil, fmt.Errorf("%w: no root network named %q", ErrInvalidPath, segments[0])
	}

	for _, seg := range segments[1:] {
		child := g.childByName(cur.ID, seg)
		if child == nil || child.Kind != KindNetwork {
			return nil, fmt.Errorf("%w: no subnetwork named %q under %q", ErrInvalidPath, seg, cur.Name)
		}
		cur = child
	}

	if !hasTerminal {
		return cur, nil
	}
	child := g.childByName(cur.ID, terminal)
	if child == nil {
		return nil, fmt.Errorf("%w: no node named %q under %q", ErrInvalidPath, terminal, cur.Name)
	}
	return child, nil
}

func (g *Graph) childByName(ownerID, name string) *Node {
	for _, n := range g.nodes {
		if n.OwnerNetwork == ownerID && n.Name == name {
			return n
		}
	}
	return nil
}
