//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package emit

import (
	"sync"

	"github.com/flowlang-dev/flowlang/compiler/ir"
)

// Profile names which companion target a TemplateRegistry renders calls
// against: Framework emits calls into this module's compiler/emit/runtime
// package (a standalone copy of noderegistry/builtin's compute behavior,
// serving as the "companion orchestration framework"); ZeroFramework emits the minimum
// raw Go needed to reproduce the same behavior with no import of this
// module at all.
type Profile string

const (
	Framework     Profile = "framework"
	ZeroFramework Profile = "zero_framework"
)

// Template is the four-hook contract a node type's emitter implements.
type Template interface {
	// Preamble returns any per-template source that must appear once near
	// the top of the file (an import, a helper type) the first time this
	// template is used; called at most once per Emit call regardless of how
	// many nodes of this type appear.
	Preamble() string
	// EmitInline writes the in-function body computing node's outputs at
	// the writer's current indent.
	EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer)
	// EmitLoopExpr returns the expression used as a loop construct's
	// iterable, for loop-driver (ExecLoopAgain) node types only.
	EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string
	// EmitLoopBreak writes the pre-body unpacking and termination check
	// inside the loop, for loop-driver node types only.
	EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer)
}

// TemplateRegistry is a type-name-keyed lookup table of Templates, one per
// Profile: each profile owns its own template registry, so the same node
// type can render differently depending on which companion it targets.
type TemplateRegistry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewTemplateRegistry creates an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]Template)}
}

// Register binds typeName to tmpl. A later call with the same typeName
// replaces the earlier binding, so a caller can shadow a profile's default
// set of templates with a custom one.
func (r *TemplateRegistry) Register(typeName string, tmpl Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[typeName] = tmpl
}

// Lookup returns typeName's template, or the default fallback template and
// false when none is registered.
func (r *TemplateRegistry) Lookup(typeName string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.templates[typeName]
	if !ok {
		return defaultTemplate{}, false
	}
	return tmpl, true
}
