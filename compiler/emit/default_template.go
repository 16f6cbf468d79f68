//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package emit

import "github.com/flowlang-dev/flowlang/compiler/ir"

// defaultTemplate is the Fallback template for an unknown or unregistered
// node type: it emits a clearly marked TODO comment and zero-values the
// node's outputs, so the generated program still compiles.
type defaultTemplate struct{}

func (defaultTemplate) Preamble() string { return "" }

func (defaultTemplate) EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer) {
	w.Line("// TODO: no emitter registered for node type %q (node %q); stubbing its outputs.", node.TypeName, node.Name)
	for _, p := range node.Outputs {
		if p.Class != ir.PortData {
			continue
		}
		if name, ok := vars[p.Name]; ok {
			w.Line("var %s any", name)
		}
	}
}

func (defaultTemplate) EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string {
	return "([]any)(nil)"
}

func (defaultTemplate) EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer) {
	w.Line("// TODO: no loop-driver emitter registered for node type %q", node.TypeName)
	w.Line("break")
}
