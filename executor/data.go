//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package executor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowlang-dev/flowlang/event"
	"github.com/flowlang-dev/flowlang/graph"
	"github.com/flowlang-dev/flowlang/internal/telemetry"
)

// CookDataNodes evaluates the data-only subgraph needed so that target's
// inputs are clean, then computes target. It is a pull: each data input is
// resolved by recursively ensuring its source node has been computed first,
// so a node never runs before any of its data predecessors. Nodes are
// memoized per call; a dependency chain that revisits a node in progress
// fails with ErrCycle instead of recursing forever.
func (e *Executor) CookDataNodes(ctx context.Context, g *graph.Graph, target *graph.Node) error {
	ctx, span := telemetry.Tracer.Start(ctx, "cook_data_nodes")
	defer span.End()

	invocationID := uuid.New().String()
	e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookStarted))

	s := &dataSession{
		e:        e,
		g:        g,
		ctx:      ctx,
		invoke:   invocationID,
		computed: make(map[string]bool),
		visiting: make(map[string]bool),
	}
	err := s.ensureComputed(target.ID)

	if err != nil {
		e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookFinished, event.WithError(err)))
		return err
	}
	e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookFinished))
	return nil
}

type dataSession struct {
	e      *Executor
	g      *graph.Graph
	ctx    context.Context
	invoke string

	computed map[string]bool
	visiting map[string]bool
}

// ensureComputed recursively resolves every data predecessor of id, then
// (for function nodes) invokes its compute callback exactly once per call.
// Network nodes have no Function of their own: computing one pulls each of
// its data input (tunnel) ports from whatever feeds it externally, then
// pulls each wired data output (tunnel) port from the internal edge that
// feeds it, so a node downstream of the network reads the internal value.
func (s *dataSession) ensureComputed(id string) error {
	if s.computed[id] {
		return nil
	}
	if s.visiting[id] {
		return fmt.Errorf("%w: at node %s", ErrCycle, id)
	}
	s.visiting[id] = true
	defer delete(s.visiting, id)

	n, ok := s.g.Node(id)
	if !ok {
		return fmt.Errorf("executor: node %s not found", id)
	}
	if n.Kind == graph.KindNetwork {
		// A network node has no Function of its own; "computing" it means
		// pulling each of its own input (tunnel) ports from whatever feeds
		// them externally, so that internal nodes later see the pushed-in
		// value when they resolve their own inputs through this same port.
		for name, p := range n.Inputs {
			if p.Function != graph.FunctionData {
				continue
			}
			v, err := s.resolvePort(id, name)
			if err != nil {
				return err
			}
			if err := p.SetValue(v); err != nil {
				return &NodeError{NodeID: n.ID, NodeName: n.Name, Err: err}
			}
		}
		// Marked computed before pull-out, so internal nodes that resolve
		// their inputs through this network's input ports see no cycle.
		s.computed[id] = true
		for name, p := range n.Outputs {
			if p.Function != graph.FunctionData || len(s.g.IncomingEdges(id, name)) == 0 {
				continue
			}
			v, err := s.resolvePort(id, name)
			if err != nil {
				return err
			}
			if err := p.SetValue(v); err != nil {
				return &NodeError{NodeID: n.ID, NodeName: n.Name, Err: err}
			}
		}
		return nil
	}
	if n.Function == nil {
		s.computed[id] = true
		return nil
	}

	inputs := make(map[string]any, len(n.Inputs))
	controls := make(map[string]bool, len(n.Inputs))
	for name, p := range n.Inputs {
		v, err := s.resolvePort(id, name)
		if err != nil {
			return err
		}
		if p.Function == graph.FunctionControl {
			controls[name], _ = v.(bool)
		} else {
			inputs[name] = v
		}
	}

	nodeCtx, span := telemetry.Tracer.Start(s.ctx, fmt.Sprintf("compute_node %s", n.Name))
	s.e.sink.Emit(s.ctx, event.New(s.invoke, "executor", event.KindNodeStarted, event.WithNode(n.ID, n.Name)))
	ec := graph.NewExecutionContext(nodeCtx, n, inputs, controls)
	res, err := n.Function(nodeCtx, ec)
	span.End()
	if err != nil {
		s.e.sink.Emit(s.ctx, event.New(s.invoke, "executor", event.KindNodeError, event.WithNode(n.ID, n.Name), event.WithError(err)))
		return &NodeError{NodeID: n.ID, NodeName: n.Name, Err: err}
	}
	for name, v := range res.Outputs {
		if p, ok := n.OutputPort(name); ok {
			if err := p.SetValue(v); err != nil {
				return &NodeError{NodeID: n.ID, NodeName: n.Name, Err: err}
			}
		}
	}
	for name, activated := range res.Controls {
		if p, ok := n.OutputPort(name); ok {
			_ = p.SetValue(activated)
		}
	}
	s.e.sink.Emit(s.ctx, event.New(s.invoke, "executor", event.KindNodeFinished, event.WithNode(n.ID, n.Name)))
	s.computed[id] = true
	return nil
}

// resolvePort returns the value currently available at (nodeID, port),
// ensuring its source has been computed first when the value arrives over a
// data edge. With no incoming edge, the port's own last-set value is used
// (the mechanism by which a root network's externally-supplied tunnel
// inputs, set directly via Port.SetValue, enter the pull chain).
func (s *dataSession) resolvePort(nodeID, port string) (any, error) {
	edges := s.g.IncomingEdges(nodeID, port)
	if len(edges) == 0 {
		n, ok := s.g.Node(nodeID)
		if !ok {
			return nil, fmt.Errorf("executor: node %s not found", nodeID)
		}
		if p, ok := n.InputPort(port); ok {
			return p.Value(), nil
		}
		if p, ok := n.OutputPort(port); ok {
			return p.Value(), nil
		}
		return nil, fmt.Errorf("executor: unknown port %s:%s", nodeID, port)
	}
	// graph.AddEdge rejects a second data edge into an already-sourced data
	// input port, so a data port can never have more than one incoming
	// edge here; control ports can, but only one is ever pulled as a value.
	e := edges[len(edges)-1]
	if err := s.ensureComputed(e.FromNode); err != nil {
		return nil, err
	}
	from, ok := s.g.Node(e.FromNode)
	if !ok {
		return nil, fmt.Errorf("executor: node %s not found", e.FromNode)
	}
	var srcPort *graph.Port
	if p, ok := from.OutputPort(e.FromPort); ok {
		srcPort = p
	} else if p, ok := from.InputPort(e.FromPort); ok {
		srcPort = p
	} else {
		return nil, fmt.Errorf("executor: unknown port %s:%s", e.FromNode, e.FromPort)
	}
	return srcPort.Value(), nil
}
