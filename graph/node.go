//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package graph

import (
	"context"
	"fmt"
)

// Kind distinguishes a plain function node from a network (subgraph) node.
type Kind int

// Node kinds.
const (
	// KindFunction nodes have a Function compute callback.
	KindFunction Kind = iota
	// KindNetwork nodes own a nested set of child nodes addressed through
	// the same Graph arena; their own input/output ports are tunnel ports.
	KindNetwork
)

// Command is the scheduling directive a node's compute call returns.
type Command int

// Commands a node's compute call can return, driving the scheduler's
// decision about what runs next.
const (
	// CommandContinue enqueues nodes downstream of every activated control
	// output. This is the default for data nodes and passthrough flow nodes.
	CommandContinue Command = iota
	// CommandLoopAgain re-enqueues the same node for another turn after first
	// running the nodes downstream of whichever control outputs were
	// activated this turn (typically loop_body).
	CommandLoopAgain
	// CommandCompleted stops re-enqueuing and resets the node's iteration
	// state; downstream of activated control outputs still cooks.
	CommandCompleted
	// CommandWait is reserved for a future suspend-pending-external-event
	// primitive: the scheduler parks the node's branch without enqueuing
	// further work and without treating it as an error.
	CommandWait
)

// String implements fmt.Stringer.
func (c Command) String() string {
	switch c {
	case CommandContinue:
		return "continue"
	case CommandLoopAgain:
		return "loop_again"
	case CommandCompleted:
		return "completed"
	case CommandWait:
		return "wait"
	default:
		return "unknown"
	}
}

// ExecutionContext is the read-only snapshot a node's compute call receives.
// It is built by the executor immediately before the call and must not be
// mutated by node implementations to reach back into the graph.
type ExecutionContext struct {
	ctx context.Context

	// NodeID and NodeName identify the node being computed.
	NodeID   string
	NodeName string

	// Inputs holds the node's current data-input values, pulled through the
	// graph by the executor's input-value resolution.
	Inputs map[string]any

	// Controls holds the activation state of the node's control inputs.
	Controls map[string]bool

	// state and setState expose the node's carried iteration state (e.g. a
	// loop_again driver's current index) without handing the compute call
	// a reference to the Node itself.
	state    any
	setState func(any)
}

// Context returns the cooking call's context.Context, for suspending I/O.
func (ec *ExecutionContext) Context() context.Context {
	if ec.ctx == nil {
		return context.Background()
	}
	return ec.ctx
}

// Input returns a data input's value and whether it was present.
func (ec *ExecutionContext) Input(name string) (any, bool) {
	v, ok := ec.Inputs[name]
	return v, ok
}

// Control returns a control input's activation state.
func (ec *ExecutionContext) Control(name string) bool {
	return ec.Controls[name]
}

// State returns the node's carried iteration state from the previous call,
// or nil on the node's first call.
func (ec *ExecutionContext) State() any { return ec.state }

// SetState replaces the node's carried iteration state for the next call.
func (ec *ExecutionContext) SetState(s any) {
	ec.state = s
	if ec.setState != nil {
		ec.setState(s)
	}
}

// NewExecutionContext builds the read-only snapshot a node's compute call
// receives. The executor calls this immediately before invoking a node's
// Function, binding setState back to the node it is cooking.
func NewExecutionContext(ctx context.Context, n *Node, inputs map[string]any, controls map[string]bool) *ExecutionContext {
	return &ExecutionContext{
		ctx:      ctx,
		NodeID:   n.ID,
		NodeName: n.Name,
		Inputs:   inputs,
		Controls: controls,
		state:    n.state,
		setState: n.SetState,
	}
}

// ExecutionResult is what a node's compute call returns.
type ExecutionResult struct {
	// Command directs the scheduler, per the Command constants above.
	Command Command
	// Outputs maps data-output port name to its new value.
	Outputs map[string]any
	// Controls maps control-output port name to its boolean activation.
	Controls map[string]bool
}

// Continue is a convenience constructor for the common case: a data result
// with no control outputs activated, or explicit control activations.
func Continue(outputs map[string]any, controls map[string]bool) *ExecutionResult {
	return &ExecutionResult{Command: CommandContinue, Outputs: outputs, Controls: controls}
}

// NodeFunc is the compute contract every registered node kind implements.
type NodeFunc func(ctx context.Context, ec *ExecutionContext) (*ExecutionResult, error)

// Node is a stable-id entity in a Graph: a display name, a kind tag, a
// registry type name, typed input/output ports, and (for function nodes) a
// compute callback.
type Node struct {
	ID          string
	Name        string
	Kind        Kind
	TypeName    string
	FlowControl bool

	// OwnerNetwork is the id of the network this node belongs to; the root
	// network itself has OwnerNetwork == "".
	OwnerNetwork string

	Inputs  map[string]*Port
	Outputs map[string]*Port

	// Function computes the node. Nil for KindNetwork nodes: their behavior
	// comes from cooking their internal children and tunneling values
	// through their own ports (see executor/data.go, executor/flow.go).
	Function NodeFunc

	// Iteration state a loop_again driver carries across calls. Nodes own
	// this; the executor never reads or writes it directly.
	state any

	dirty bool
}

// newNode constructs a Node with empty port maps.
func newNode(id, name, typeName string, kind Kind, owner string) *Node {
	return &Node{
		ID:           id,
		Name:         name,
		TypeName:     typeName,
		Kind:         kind,
		OwnerNetwork: owner,
		Inputs:       make(map[string]*Port),
		Outputs:      make(map[string]*Port),
		dirty:        true,
	}
}

// AddInput declares an input port on the node. Fails if the name already
// exists among the node's inputs, matching the invariant that port names
// are unique per direction.
func (n *Node) AddInput(name string, fn Function, vt ValueType) (*Port, error) {
	if _, exists := n.Inputs[name]; exists {
		return nil, fmt.Errorf("node %s: %w: input %q", n.ID, ErrDuplicatePath, name)
	}
	p := NewPort(name, DirectionInput, fn, vt)
	n.Inputs[name] = p
	return p, nil
}

// AddOutput declares an output port on the node.
func (n *Node) AddOutput(name string, fn Function, vt ValueType) (*Port, error) {
	if _, exists := n.Outputs[name]; exists {
		return nil, fmt.Errorf("node %s: %w: output %q", n.ID, ErrDuplicatePath, name)
	}
	p := NewPort(name, DirectionOutput, fn, vt)
	n.Outputs[name] = p
	return p, nil
}

// InputPort looks up a declared input port by name.
func (n *Node) InputPort(name string) (*Port, bool) {
	p, ok := n.Inputs[name]
	return p, ok
}

// OutputPort looks up a declared output port by name.
func (n *Node) OutputPort(name string) (*Port, bool) {
	p, ok := n.Outputs[name]
	return p, ok
}

// State returns the node's carried iteration state (used by loop_again
// drivers across calls).
func (n *Node) State() any { return n.state }

// SetState replaces the node's carried iteration state.
func (n *Node) SetState(s any) { n.state = s }
