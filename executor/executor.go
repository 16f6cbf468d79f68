//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package executor implements the two cooking entry points over a graph:
// cook_data_nodes (pull-based evaluation of a data subgraph) and
// cook_flow_control_nodes (the batched scheduler that drives loops,
// branches and tunnels through control edges). Both share the same
// underlying node-compute contract from package graph.
package executor

import (
	"github.com/panjf2000/ants/v2"

	"github.com/flowlang-dev/flowlang/event"
	"github.com/flowlang-dev/flowlang/internal/log"
)

const (
	defaultMaxSteps   = 10_000
	defaultPoolSize   = 8
	defaultBufferSize = 64
)

// Executor cooks graphs. The zero value is not usable; construct with New.
type Executor struct {
	maxSteps   int
	poolSize   int
	bufferSize int
	sink       event.Sink
	logger     log.Logger
}

// Option configures an Executor, following this module's functional-options
// idiom (see graph's tunnel builder methods and the teacher's own Option
// types in orchestration/runner).
type Option func(*Executor)

// WithMaxSteps bounds the number of batch iterations cook_flow_control_nodes
// will run before giving up and returning an error, guarding against a
// misbehaving loop driver that never reaches completed.
func WithMaxSteps(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// WithPoolSize bounds the number of node computations run concurrently
// within a single batch.
func WithPoolSize(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.poolSize = n
		}
	}
}

// WithChannelBufferSize sets the buffer size of any event channel the
// executor creates on the caller's behalf (it does not apply to a Sink
// supplied via WithSink).
func WithChannelBufferSize(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.bufferSize = n
		}
	}
}

// WithSink installs a trace event sink. Every cook call emits
// KindCookStarted/KindCookFinished and KindNodeStarted/KindNodeFinished/
// KindNodeError events to it; CookFlowControlNodes also emits
// KindBatchStarted/KindBatchFinished and KindNodeLoopAgain. Defaults to
// event.NopSink{}.
func WithSink(s event.Sink) Option {
	return func(e *Executor) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithLogger overrides the package-default logger.
func WithLogger(l log.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New constructs an Executor with the given options applied over sensible
// defaults.
func New(opts ...Option) *Executor {
	e := &Executor{
		maxSteps:   defaultMaxSteps,
		poolSize:   defaultPoolSize,
		bufferSize: defaultBufferSize,
		sink:       event.NopSink{},
		logger:     log.Default,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// newPool builds a bounded goroutine pool sized to this executor's
// configured concurrency, released by the caller when the batch completes.
func (e *Executor) newPool() (*ants.Pool, error) {
	return ants.NewPool(e.poolSize, ants.WithNonblocking(false))
}
