//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package noderegistry is the process-wide type-name to constructor table
// node kinds register themselves into. It intentionally has no dependency on
// package graph: Spec describes a node's ports and compute behavior in
// graph-agnostic terms so that graph.Network.CreateNode can adapt a looked-up
// Spec into the concrete *graph.Node it owns, without an import cycle.
package noderegistry

import (
	"context"
	"fmt"
	"sync"
)

// Options holds the construction options for one node instance (a DSL
// document supplies them as a node's `inputs` object). Constructors that
// take options decode it with github.com/mitchellh/mapstructure into their
// own config struct.
type Options map[string]any

// PortSpec describes one port a constructed node exposes.
type PortSpec struct {
	Name    string
	Control bool
	Type    string // graph.ValueType string form; "" means any.
}

// Command mirrors graph.Command without importing package graph.
type Command int

// Commands a node's Compute call can return. Kept in lockstep with
// graph.Command's constants; graph/network.go translates between them.
const (
	CommandContinue Command = iota
	CommandLoopAgain
	CommandCompleted
	CommandWait
)

// Result is what a node's Compute call returns.
type Result struct {
	Command  Command
	Outputs  map[string]any
	Controls map[string]bool
}

// ComputeFunc is the node-kind-agnostic compute contract. state is the
// node's carried iteration state (nil on first call); setState replaces it
// for the next call. Neither the context snapshot nor the result reference
// package graph.
type ComputeFunc func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*Result, error)

// Spec is what a Constructor returns: the ports a node instance exposes and
// its compute behavior.
type Spec struct {
	Inputs      []PortSpec
	Outputs     []PortSpec
	FlowControl bool
	Compute     ComputeFunc
}

// Constructor builds a Spec from a node instance's decoded options. It
// returns an error for invalid options (e.g. a malformed constant literal).
type Constructor func(opts Options) (*Spec, error)

// Registry is a name -> Constructor table. The zero value is not usable;
// construct with NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Constructor)}
}

// Register adds a constructor under typeName. It returns an error if
// typeName is empty or already registered, mirroring the "fail fast,
// don't silently overwrite" idiom used elsewhere in this module.
func (r *Registry) Register(typeName string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if typeName == "" {
		return fmt.Errorf("node type name cannot be empty")
	}
	if _, exists := r.types[typeName]; exists {
		return fmt.Errorf("node type %q already registered", typeName)
	}
	r.types[typeName] = ctor
	return nil
}

// Lookup retrieves a constructor by type name.
func (r *Registry) Lookup(typeName string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.types[typeName]
	return ctor, ok
}

// Types lists every registered type name.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// Reset clears every registration. Primarily used for testing.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]Constructor)
}

// globalRegistry is the default registry builtin node kinds register into
// via their package init(), and graph.Network.CreateNode resolves against.
var globalRegistry = NewRegistry()

// Register adds typeName to the global registry.
func Register(typeName string, ctor Constructor) error {
	return globalRegistry.Register(typeName, ctor)
}

// Lookup retrieves a constructor from the global registry.
func Lookup(typeName string) (Constructor, bool) {
	return globalRegistry.Lookup(typeName)
}

// Types lists every type name registered in the global registry.
func Types() []string {
	return globalRegistry.Types()
}
