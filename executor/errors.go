//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package executor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStepLimitExceeded is returned by CookFlowControlNodes when a cook call
// runs past the executor's configured maxSteps without the work queues
// draining — the guard against a driver that never reaches completed.
var ErrStepLimitExceeded = errors.New("executor: step limit exceeded")

// ErrCycle is returned by CookDataNodes when a data dependency chain loops
// back on itself, which would otherwise recurse forever.
var ErrCycle = errors.New("executor: data dependency cycle")

// NodeError records a single node's compute failure against its identity.
type NodeError struct {
	NodeID   string
	NodeName string
	Err      error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s (%s): %v", e.NodeName, e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// AggregateError is the single error a cooking call propagates when one or
// more nodes in a batch failed: sibling batch work still completes, and the
// call still returns one error summarizing every failure.
type AggregateError struct {
	Errors []*NodeError
}

func (a *AggregateError) Error() string {
	parts := make([]string, len(a.Errors))
	for i, e := range a.Errors {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("executor: %d node(s) failed: %s", len(a.Errors), strings.Join(parts, "; "))
}

func (a *AggregateError) Unwrap() []error {
	errs := make([]error, len(a.Errors))
	for i, e := range a.Errors {
		errs[i] = e
	}
	return errs
}
