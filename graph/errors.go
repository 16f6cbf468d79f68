//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package graph

import "errors"

// Structural and type errors raised by the graph arena and its ports.
// They fail fast at construction time and never reach the executor.
var (
	// ErrDuplicateNode is returned by AddNode when the id already exists.
	ErrDuplicateNode = errors.New("duplicate node id")
	// ErrNodeNotFound is returned when an operation references a missing node.
	ErrNodeNotFound = errors.New("node not found")
	// ErrUnknownEndpoint is returned by AddEdge when an endpoint node is missing.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")
	// ErrSelfConnection is returned when an edge connects a node's own ports
	// to itself.
	ErrSelfConnection = errors.New("self connection")
	// ErrMultipleDataSources is returned by AddEdge when a second data edge
	// targets a data input port that already has one incoming data edge:
	// fan-in is rejected at construction time rather than silently
	// overwriting the existing source at pull time.
	ErrMultipleDataSources = errors.New("data input port already has a source")
	// ErrPortType is returned by Port.SetValue when the value does not match
	// the port's declared ValueType.
	ErrPortType = errors.New("port type error")
	// ErrDuplicatePath is returned by CreateNetwork/CreateNode when a name
	// collides in scope.
	ErrDuplicatePath = errors.New("duplicate path")
	// ErrUnknownType is returned by CreateNode when the type name is not registered.
	ErrUnknownType = errors.New("unknown node type")
	// ErrInvalidPath is returned by NodeByPath when the path cannot be resolved.
	ErrInvalidPath = errors.New("invalid path")
	// ErrUnknownPort is returned when a connection names a port the node does
	// not declare.
	ErrUnknownPort = errors.New("unknown port")
)
