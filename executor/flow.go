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
	"golang.org/x/sync/errgroup"

	"github.com/flowlang-dev/flowlang/event"
	"github.com/flowlang-dev/flowlang/graph"
	"github.com/flowlang-dev/flowlang/internal/telemetry"
)

// batchResult is one node's outcome within a single batch.
type batchResult struct {
	nodeID string
	res    *graph.ExecutionResult
	err    error
}

// CookFlowControlNodes drives root and every node reachable through control
// edges until no work remains, batch by batch: an executor stack of nodes
// ready this batch, a deferred stack of nodes that requested loop_again,
// promoted back into the executor stack once the current stack drains (the
// loop's "next iteration" boundary). ctx is checked before every batch; once
// it is cancelled the call returns ctx's error.
func (e *Executor) CookFlowControlNodes(ctx context.Context, g *graph.Graph, root *graph.Node) error {
	ctx, span := telemetry.Tracer.Start(ctx, "cook_flow_control_nodes")
	defer span.End()

	invocationID := uuid.New().String()
	e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookStarted))

	pool, err := e.newPool()
	if err != nil {
		return fmt.Errorf("executor: building worker pool: %w", err)
	}
	defer pool.Release()

	execStack := []string{root.ID}
	var deferredStack []string
	steps := 0

	for len(execStack) > 0 || len(deferredStack) > 0 {
		if err := ctx.Err(); err != nil {
			e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookFinished, event.WithError(err)))
			return err
		}
		if len(execStack) == 0 {
			execStack, deferredStack = deferredStack, nil
		}
		steps++
		if steps > e.maxSteps {
			e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookFinished, event.WithError(ErrStepLimitExceeded)))
			return ErrStepLimitExceeded
		}

		batch := execStack
		execStack = nil
		e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindBatchStarted, event.WithStep(steps)))

		results, err := e.computeBatch(ctx, invocationID, pool, g, batch)
		if err != nil {
			e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookFinished, event.WithError(err)))
			return err
		}

		var nodeErrs []*NodeError
		var candidates []string
		seen := make(map[string]bool)
		for _, r := range results {
			n, ok := g.Node(r.nodeID)
			if !ok {
				continue
			}
			if r.err != nil {
				nodeErrs = append(nodeErrs, &NodeError{NodeID: n.ID, NodeName: n.Name, Err: r.err})
				continue
			}
			if r.res.Command == graph.CommandWait {
				// Parks this node's branch: nothing downstream is enqueued.
				continue
			}
			if r.res.Command == graph.CommandLoopAgain {
				deferredStack = append(deferredStack, r.nodeID)
			}
			for name, val := range r.res.Outputs {
				propagateData(g, n, name, val)
			}
			for name, activated := range r.res.Controls {
				next := propagateControl(g, n, name, activated)
				for _, c := range next {
					if !seen[c] {
						seen[c] = true
						candidates = append(candidates, c)
					}
				}
			}
		}
		e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindBatchFinished, event.WithStep(steps)))
		if len(nodeErrs) > 0 {
			aggErr := &AggregateError{Errors: nodeErrs}
			e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookFinished, event.WithError(aggErr)))
			return aggErr
		}
		execStack = candidates
	}

	e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindCookFinished))
	return nil
}

// computeBatch runs every node in batch concurrently through the executor's
// bounded worker pool, aggregating into a per-node slice so sibling work
// finishes even when one node's compute call returns an error. errgroup
// surfaces only submission failures (the pool rejecting work); per-node
// compute errors are captured in the returned slice for the caller to fold
// into a single AggregateError.
func (e *Executor) computeBatch(ctx context.Context, invocationID string, pool interface {
	Submit(func()) error
}, g *graph.Graph, batch []string) ([]batchResult, error) {
	results := make([]batchResult, len(batch))
	grp, gctx := errgroup.WithContext(ctx)
	for i, nodeID := range batch {
		i, nodeID := i, nodeID
		grp.Go(func() error {
			done := make(chan struct{})
			submitErr := pool.Submit(func() {
				defer close(done)
				res, err := e.computeFlowNode(gctx, invocationID, g, nodeID)
				results[i] = batchResult{nodeID: nodeID, res: res, err: err}
			})
			if submitErr != nil {
				return fmt.Errorf("submitting node %s: %w", nodeID, submitErr)
			}
			<-done
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// computeFlowNode reads a node's current input port values (already pushed
// in by the previous batch's propagation, or externally for the root) and
// invokes its compute callback. A network node reached through control
// edges has no Function of its own: "computing" it means tunnel push-in
// only — forwarding each of its data input (tunnel) values along the tunnel
// edges onto the input ports of the internal nodes wired to them, so an
// internal node that later reads them (via CookDataNodes) sees the
// pushed-in value. Tunnel pull-out back onto the network's output ports
// happens through propagateData's network-port fallback when an internal
// node's output is propagated. The network's own internal control graph is
// not scheduled from here; Extract likewise operates on one network's nodes
// at a time, and nothing in this module resolves flow-control across a
// network boundary.
func (e *Executor) computeFlowNode(ctx context.Context, invocationID string, g *graph.Graph, nodeID string) (*graph.ExecutionResult, error) {
	n, ok := g.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("executor: node %s not found", nodeID)
	}
	if n.Kind == graph.KindNetwork {
		for name, p := range n.Inputs {
			if p.Function != graph.FunctionData {
				continue
			}
			propagateData(g, n, name, p.Value())
		}
		return graph.Continue(nil, nil), nil
	}
	if n.Function == nil {
		return graph.Continue(nil, nil), nil
	}

	inputs := make(map[string]any, len(n.Inputs))
	controls := make(map[string]bool, len(n.Inputs))
	for name, p := range n.Inputs {
		if p.Function == graph.FunctionControl {
			controls[name], _ = p.Value().(bool)
		} else {
			inputs[name] = p.Value()
		}
	}

	e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindNodeStarted, event.WithNode(n.ID, n.Name)))
	ec := graph.NewExecutionContext(ctx, n, inputs, controls)
	res, err := n.Function(ctx, ec)
	if err != nil {
		e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindNodeError, event.WithNode(n.ID, n.Name), event.WithError(err)))
		return nil, err
	}
	if res.Command == graph.CommandLoopAgain {
		e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindNodeLoopAgain, event.WithNode(n.ID, n.Name)))
	}
	e.sink.Emit(ctx, event.New(invocationID, "executor", event.KindNodeFinished, event.WithNode(n.ID, n.Name)))
	return res, nil
}

// propagateData writes a node's output value to its own port and to every
// data-edge target downstream of it. A target edge's ToPort is normally one
// of the target's input ports; when the target is a network node, the same
// edge shape is also used for tunnel pull-out onto the network's own output
// (tunnel) port, so the input-port lookup falls back to an output-port
// lookup for that case.
func propagateData(g *graph.Graph, n *graph.Node, portName string, value any) {
	if p, ok := n.OutputPort(portName); ok {
		_ = p.SetValue(value)
	}
	for _, edge := range g.OutgoingEdges(n.ID, portName) {
		to, ok := g.Node(edge.ToNode)
		if !ok {
			continue
		}
		if tp, ok := to.InputPort(edge.ToPort); ok {
			_ = tp.SetValue(value)
		} else if tp, ok := to.OutputPort(edge.ToPort); ok {
			_ = tp.SetValue(value)
		}
	}
}

// propagateControl writes a control output's activation to its own port
// and, when activated, to every downstream control edge's target input
// port, returning the target node ids as next-batch candidates.
func propagateControl(g *graph.Graph, n *graph.Node, portName string, activated bool) []string {
	if p, ok := n.OutputPort(portName); ok {
		_ = p.SetValue(activated)
	}
	if !activated {
		return nil
	}
	var next []string
	for _, edge := range g.OutgoingEdges(n.ID, portName) {
		to, ok := g.Node(edge.ToNode)
		if !ok {
			continue
		}
		if tp, ok := to.InputPort(edge.ToPort); ok {
			_ = tp.SetValue(true)
		}
		next = append(next, edge.ToNode)
	}
	return next
}
