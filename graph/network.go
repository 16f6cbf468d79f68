//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowlang-dev/flowlang/noderegistry"
)

// Network is the builder-facing handle for a KindNetwork node: it is a node
// in the shared Graph that also owns a set of child nodes and child
// networks (transitively). Its own input ports act as output sources for
// its children; its own output ports act as input sinks for them (tunnel
// semantics).
type Network struct {
	graph *Graph
	node  *Node
}

// NewRootNetwork creates a new network with a fresh graph; its id has no
// parent. This is the sole entry point for constructing a Graph from
// scratch.
func NewRootNetwork(name, typeName string) *Network {
	g := NewGraph()
	n := newNode(newID(), name, typeName, KindNetwork, "")
	_ = g.AddNode(n) // cannot fail: fresh id, fresh graph.
	g.rootID = n.ID
	return &Network{graph: g, node: n}
}

// Graph returns the shared arena this network and all its descendants live in.
func (net *Network) Graph() *Graph { return net.graph }

// ID returns the network node's id.
func (net *Network) ID() string { return net.node.ID }

// Node returns the underlying Node for this network.
func (net *Network) Node() *Node { return net.node }

// AddTunnelInput declares an input port on the network node. From the
// perspective of internal children, this port is an output source.
func (net *Network) AddTunnelInput(name string, fn Function, vt ValueType) (*Port, error) {
	return net.node.AddInput(name, fn, vt)
}

// AddTunnelOutput declares an output port on the network node. From the
// perspective of internal children, this port is an input sink.
func (net *Network) AddTunnelOutput(name string, fn Function, vt ValueType) (*Port, error) {
	return net.node.AddOutput(name, fn, vt)
}

// CreateNetwork creates a nested network owned by net. Fails with
// ErrDuplicatePath if name collides with an existing child in scope.
func (net *Network) CreateNetwork(name, typeName string) (*Network, error) {
	if net.graph.childByNameLocked(net.node.ID, name) != nil {
		return nil, fmt.Errorf("%w: %s under %s", ErrDuplicatePath, name, net.node.Name)
	}
	child := newNode(newID(), name, typeName, KindNetwork, net.node.ID)
	if err := net.graph.AddNode(child); err != nil {
		return nil, err
	}
	return &Network{graph: net.graph, node: child}, nil
}

// CreateNode creates a function node of the given registered type, owned by
// net. Fails with ErrUnknownType if typeName is not registered, and with
// ErrDuplicatePath if name collides with an existing child.
func (net *Network) CreateNode(name, typeName string, options map[string]any) (*Node, error) {
	if net.graph.childByNameLocked(net.node.ID, name) != nil {
		return nil, fmt.Errorf("%w: %s under %s", ErrDuplicatePath, name, net.node.Name)
	}
	ctor, ok := noderegistry.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	id := newID()
	n := newNode(id, name, typeName, KindFunction, net.node.ID)
	spec, err := ctor(noderegistry.Options(options))
	if err != nil {
		return nil, fmt.Errorf("constructing node %s (%s): %w", name, typeName, err)
	}
	for _, p := range spec.Inputs {
		if _, err := n.AddInput(p.Name, toFunction(p.Control), toValueType(p.Type)); err != nil {
			return nil, err
		}
	}
	for _, p := range spec.Outputs {
		if _, err := n.AddOutput(p.Name, toFunction(p.Control), toValueType(p.Type)); err != nil {
			return nil, err
		}
	}
	n.FlowControl = spec.FlowControl
	n.Function = adaptCompute(spec.Compute)
	if err := net.graph.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// adaptCompute wraps a registry-level ComputeFunc (which knows nothing
// about package graph) into a graph.NodeFunc, translating the execution
// context and result shapes both ways. This is the one seam where the two
// packages' otherwise-independent vocabularies meet.
func adaptCompute(fn noderegistry.ComputeFunc) NodeFunc {
	return func(ctx context.Context, ec *ExecutionContext) (*ExecutionResult, error) {
		res, err := fn(ctx, ec.Inputs, ec.Controls, ec.State(), ec.SetState)
		if err != nil {
			return nil, err
		}
		return &ExecutionResult{
			Command:  fromRegistryCommand(res.Command),
			Outputs:  res.Outputs,
			Controls: res.Controls,
		}, nil
	}
}

func fromRegistryCommand(c noderegistry.Command) Command {
	switch c {
	case noderegistry.CommandLoopAgain:
		return CommandLoopAgain
	case noderegistry.CommandCompleted:
		return CommandCompleted
	case noderegistry.CommandWait:
		return CommandWait
	default:
		return CommandContinue
	}
}

// Connect adds a data or control edge between two of net's children. It
// does not address net's own tunnel ports; ConnectTunnelIn and
// ConnectTunnelOut do. Fails with ErrUnknownEndpoint or ErrSelfConnection.
func (net *Network) Connect(fromName, fromPort, toName, toPort string) (*Edge, error) {
	from := net.graph.childByNameLocked(net.node.ID, fromName)
	if from == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, fromName)
	}
	to := net.graph.childByNameLocked(net.node.ID, toName)
	if to == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, toName)
	}
	return net.graph.AddEdge(from.ID, fromPort, to.ID, toPort)
}

// ConnectTunnelIn wires one of net's own input (tunnel) ports to a child's
// input port, making the tunnel value available inside the network.
func (net *Network) ConnectTunnelIn(tunnelPort, toName, toPort string) (*Edge, error) {
	to := net.graph.childByNameLocked(net.node.ID, toName)
	if to == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, toName)
	}
	return net.graph.AddEdge(net.node.ID, tunnelPort, to.ID, toPort)
}

// ConnectTunnelOut wires a child's output port to one of net's own output
// (tunnel) ports, exposing the internal value outward.
func (net *Network) ConnectTunnelOut(fromName, fromPort, tunnelPort string) (*Edge, error) {
	from := net.graph.childByNameLocked(net.node.ID, fromName)
	if from == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, fromName)
	}
	return net.graph.AddEdge(from.ID, fromPort, net.node.ID, tunnelPort)
}

// CreateUnknownTypeStub creates a function node for a type name that is not
// registered, for permissive-mode callers that tolerate an unresolved
// RegistryError instead of rejecting it outright: its
// ports are declared directly from the caller-supplied name lists rather
// than resolved through the registry, its FlowControl is always true, and
// its compute call is a no-op that simply continues (the runtime analogue
// of the compiler's emit-time Fallback template). Strict callers should
// reject an unknown type instead of calling this.
func (net *Network) CreateUnknownTypeStub(name, typeName string, inputNames, outputNames []string, classify func(string) Function) (*Node, error) {
	if net.graph.childByNameLocked(net.node.ID, name) != nil {
		return nil, fmt.Errorf("%w: %s under %s", ErrDuplicatePath, name, net.node.Name)
	}
	n := newNode(newID(), name, typeName, KindFunction, net.node.ID)
	for _, pn := range inputNames {
		if _, err := n.AddInput(pn, classify(pn), TypeAny); err != nil {
			return nil, err
		}
	}
	for _, pn := range outputNames {
		if _, err := n.AddOutput(pn, classify(pn), TypeAny); err != nil {
			return nil, err
		}
	}
	n.FlowControl = true
	n.Function = func(ctx context.Context, ec *ExecutionContext) (*ExecutionResult, error) {
		return Continue(nil, nil), nil
	}
	if err := net.graph.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNode removes a child node by name and all its edges.
func (net *Network) DeleteNode(name string) error {
	child := net.graph.childByNameLocked(net.node.ID, name)
	if child == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, name)
	}
	return net.graph.DeleteNode(child.ID)
}

// childByNameLocked is a locking wrapper around childByName for use from
// outside the graph package's own methods.
func (g *Graph) childByNameLocked(ownerID, name string) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.childByName(ownerID, name)
}

func toFunction(control bool) Function {
	if control {
		return FunctionControl
	}
	return FunctionData
}

func toValueType(t string) ValueType {
	if t == "" {
		return TypeAny
	}
	return ValueType(t)
}

func newID() string {
	return uuid.New().String()
}
