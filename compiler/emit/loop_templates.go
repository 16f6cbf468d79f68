//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package emit

import (
	"fmt"

	"github.com/flowlang-dev/flowlang/compiler/ir"
)

// forLoopTemplate emits the forloop driver as a runtime.ForLoopDriver
// (Framework) or a literal counting loop unpacked by hand (ZeroFramework).
// Its EmitInline is unused: a loop_again node only ever appears as a
// block's Driver, never inside a flat Sequence or another block's Body.
type forLoopTemplate struct{ profile Profile }

func (forLoopTemplate) Preamble() string { return "" }

func (forLoopTemplate) EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer) {
}

func (t forLoopTemplate) EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string {
	start, end := exprOr(inputs["start"], "0"), exprOr(inputs["end"], "0")
	if t.profile == Framework {
		return fmt.Sprintf("runtime.NewForLoopDriver(%s, %s)", start, end)
	}
	return fmt.Sprintf("%s, %s", start, end)
}

func (t forLoopTemplate) EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer) {
	indexVar := vars["index"]
	iterVar := vars["__iter__"]
	if t.profile == Framework {
		w.Line("%s, done := %s.Next()", indexVar, iterVar)
		w.Line("if done {")
		w.Indent()
		w.Line("break")
		w.Dedent()
		w.Line("}")
		return
	}
	// ZeroFramework: EmitLoopExpr returned "start, end" as a raw pair;
	// iterVar holds a generated cursor variable name instead of an object.
	w.Line("if %s >= %s {", indexVar, iterVar+"_end")
	w.Indent()
	w.Line("break")
	w.Dedent()
	w.Line("}")
}

// forEachTemplate emits the foreach driver.
type forEachTemplate struct{ profile Profile }

func (forEachTemplate) Preamble() string { return "" }

func (forEachTemplate) EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer) {
}

func (t forEachTemplate) EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string {
	items := exprOr(inputs["items"], "nil")
	if t.profile == Framework {
		return fmt.Sprintf("runtime.NewForEachDriver(%s)", items)
	}
	return items
}

func (t forEachTemplate) EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer) {
	itemVar := vars["item"]
	iterVar := vars["__iter__"]
	if t.profile == Framework {
		w.Line("%s, done := %s.Next()", itemVar, iterVar)
		w.Line("if done {")
		w.Indent()
		w.Line("break")
		w.Dedent()
		w.Line("}")
		if total, ok := vars["total"]; ok {
			w.Line("%s := %s.Total()", total, iterVar)
		}
		return
	}
	w.Line("if %sIdx >= len(%s) {", iterVar, iterVar)
	w.Indent()
	w.Line("break")
	w.Dedent()
	w.Line("}")
	w.Line("%s := %s[%sIdx]", itemVar, iterVar, iterVar)
	w.Line("%sIdx++", iterVar)
	if total, ok := vars["total"]; ok {
		w.Line("%s := len(%s)", total, iterVar)
	}
}

// accumulatorTemplate emits the accumulator passthrough node: a body step
// that records each value it is driven with.
type accumulatorTemplate struct{ profile Profile }

func (accumulatorTemplate) Preamble() string { return "" }

func (t accumulatorTemplate) EmitInline(node *ir.IRNode, inputs map[string]string, vars map[string]string, w *Writer) {
	val := exprOr(inputs["val"], "nil")
	varName := ir.SafeName(node.Name) + "_acc"
	if t.profile == Framework {
		w.Line("if %s == nil {", varName)
		w.Indent()
		w.Line("%s = &runtime.Accumulator{}", varName)
		w.Dedent()
		w.Line("}")
		w.Line("%s.Push(%s)", varName, val)
		return
	}
	w.Line("%s = append(%s, %s)", varName, varName, val)
}

func (accumulatorTemplate) EmitLoopExpr(node *ir.IRNode, inputs map[string]string) string {
	return ""
}
func (accumulatorTemplate) EmitLoopBreak(node *ir.IRNode, vars map[string]string, w *Writer) {}
