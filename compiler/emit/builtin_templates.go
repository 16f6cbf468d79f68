//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package emit

import (
	"fmt"

	"github.com/flowlang-dev/flowlang/compiler/ir"
	"github.com/flowlang-dev/flowlang/noderegistry/builtin"
)

// RegistryFor returns the stock TemplateRegistry for profile, populated
// with a template for every builtin node kind that has one. Branch has
// scaffolding in the scheduler (a SequenceBlock concatenating the driver
// with both outcome bodies) but no concrete emitter template in either
// profile yet, so it resolves to the default Fallback template instead.
func RegistryFor(profile Profile) *TemplateRegistry {
	reg := NewTemplateRegistry()
	reg.Register(builtin.TypeConstant, constantTemplate{})
	reg.Register(builtin.TypeAdd, binaryOpTemplate{profile: profile, outputName: "sum", frameworkFunc: "Add", zeroOp: "+"})
	reg.Register(builtin.TypeMultiply, binaryOpTemplate{profile: profile, outputName: "product", frameworkFunc: "Multiply", zeroOp: "*"})
	reg.Register(builtin.TypePrint, printTemplate{profile: profile})
	reg.Register(builtin.TypeForLoop, forLoopTemplate{profile: profile})
	reg.Register(builtin.TypeForEach, forEachTemplate{profile: profile})
	reg.Register(builtin.TypeAccumulator, accumulatorTemplate{profile: profile})
	return reg
}

// constantTemplate emits a single assignment binding a node's statically
// known output value(s) to their scheduled variable names. Identical for
// both profiles: a Go literal needs no companion framework.
type constantTemplate struct{}

func (constantTemplate) Preamble() string { return "" }

func (constantTemplate) EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer) {
	for _, p := range node.Outputs {
		name, ok := vars[p.Name]
		if !ok {
			continue
		}
		literal := "nil"
		if v, ok := node.StaticOutputValues[p.Name]; ok {
			literal = ir.LiteralRepr(v)
		}
		w.Line("%s := %s", name, literal)
	}
}

func (constantTemplate) EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string { return "" }
func (constantTemplate) EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer) {}

// binaryOpTemplate emits scenario 1's add/multiply nodes: a Framework-profile
// call into runtime.Add/runtime.Multiply (which returns an error, checked
// inline), or a ZeroFramework-profile raw arithmetic expression.
type binaryOpTemplate struct {
	profile       Profile
	outputName    string
	frameworkFunc string
	zeroOp        string
}

func (binaryOpTemplate) Preamble() string { return "" }

func (t binaryOpTemplate) EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer) {
	name, ok := vars[t.outputName]
	if !ok {
		return
	}
	a, b := exprOr(inputs["a"], "nil"), exprOr(inputs["b"], "nil")
	if t.profile == Framework {
		w.Line("%s, err := runtime.%s(%s, %s)", name, t.frameworkFunc, a, b)
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		return
	}
	w.Line("%s := %s %s %s", name, a, t.zeroOp, b)
}

func (binaryOpTemplate) EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string { return "" }
func (binaryOpTemplate) EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer) {}

// printTemplate emits scenario 1/2's sink node.
type printTemplate struct{ profile Profile }

func (printTemplate) Preamble() string { return "" }

func (t printTemplate) EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer) {
	value := exprOr(inputs["value"], "nil")
	prefix := ir.LiteralRepr(prefixOf(node))
	if t.profile == Framework {
		w.Line("runtime.PrintValue(%s, %s)", prefix, value)
		return
	}
	w.Line("fmt.Printf(\"%%s%%v\\n\", %s, %s)", prefix, value)
}

func (printTemplate) EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string { return "" }
func (printTemplate) EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer) {}

// prefixOf extracts a print node's configured prefix from its captured
// static outputs, when present; emitted print nodes have no such capture
// today (prefix is construction-time configuration, not a port value), so
// this always falls back to the empty string. Kept as a named seam so a
// future schedule step that threads construction options through IRNode
// has a single place to plug into.
func prefixOf(node *ir.IRNode) string { return "" }

func exprOr(expr, fallback string) string {
	if expr == "" {
		return fallback
	}
	return expr
}
