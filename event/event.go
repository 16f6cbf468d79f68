//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package event provides the trace event system emitted by the executor and
// compiler while they work. It is the single collaborator boundary the
// runtime uses to talk to external observers (a websocket fan-out, a CLI
// progress bar, a test harness) without depending on any of them directly.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies an Event.
type Kind string

// Event kinds emitted during cooking and compilation.
const (
	// KindCookStarted marks the beginning of a cooking call.
	KindCookStarted Kind = "cook_started"
	// KindCookFinished marks the end of a cooking call (success or failure).
	KindCookFinished Kind = "cook_finished"
	// KindBatchStarted marks the start of one scheduler batch.
	KindBatchStarted Kind = "batch_started"
	// KindBatchFinished marks the end of one scheduler batch.
	KindBatchFinished Kind = "batch_finished"
	// KindNodeStarted marks a node's compute call starting.
	KindNodeStarted Kind = "node_started"
	// KindNodeFinished marks a node's compute call finishing successfully.
	KindNodeFinished Kind = "node_finished"
	// KindNodeLoopAgain marks a node requesting another iteration.
	KindNodeLoopAgain Kind = "node_loop_again"
	// KindNodeError marks a node's compute call failing.
	KindNodeError Kind = "node_error"
	// KindCompileStarted marks the start of a compile() call.
	KindCompileStarted Kind = "compile_started"
	// KindCompileFinished marks the end of a compile() call.
	KindCompileFinished Kind = "compile_finished"
)

// Event represents a single observable occurrence inside a cooking call or a
// compile call. Events are immutable once created.
type Event struct {
	// ID is the unique identifier of the event.
	ID string `json:"id"`
	// InvocationID groups every event belonging to one cooking or compile call.
	InvocationID string `json:"invocation_id"`
	// Author names the component that raised the event (e.g. "executor", "compiler").
	Author string `json:"author"`
	// Kind classifies the event.
	Kind Kind `json:"kind"`
	// NodeID is set for node-scoped events.
	NodeID string `json:"node_id,omitempty"`
	// NodeName is set for node-scoped events.
	NodeName string `json:"node_name,omitempty"`
	// Step is the scheduler batch/superstep number this event belongs to.
	Step int `json:"step,omitempty"`
	// Message is a short human-readable summary.
	Message string `json:"message,omitempty"`
	// Err carries an error message when Kind is an error kind.
	Err string `json:"error,omitempty"`
	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`
}

// Option configures an Event at construction time.
type Option func(*Event)

// New creates an Event with a generated ID and the current timestamp.
func New(invocationID, author string, kind Kind, opts ...Option) *Event {
	e := &Event{
		ID:           uuid.New().String(),
		InvocationID: invocationID,
		Author:       author,
		Kind:         kind,
		Timestamp:    time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithNode annotates the event with the node it concerns.
func WithNode(id, name string) Option {
	return func(e *Event) {
		e.NodeID = id
		e.NodeName = name
	}
}

// WithStep annotates the event with the scheduler batch number.
func WithStep(step int) Option {
	return func(e *Event) {
		e.Step = step
	}
}

// WithMessage sets a human-readable summary.
func WithMessage(msg string) Option {
	return func(e *Event) {
		e.Message = msg
	}
}

// WithError marks the event as an error and records its message.
func WithError(err error) Option {
	return func(e *Event) {
		if err != nil {
			e.Err = err.Error()
		}
	}
}
