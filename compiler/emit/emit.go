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

// Emit renders sched as a standalone Go program under the given profile: a
// generated-file header, the union of templates' unique preambles, a run()
// function assembling the schedule's preamble nodes, blocks (sequences and
// loops), and a main() entrypoint invoking run().
func Emit(sched *ir.Schedule, profile Profile, moduleName string) (string, error) {
	reg := RegistryFor(profile)
	w := NewWriter()

	writeHeader(w, moduleName, profile)

	emittedPreamble := make(map[string]bool)
	for _, n := range sched.Graph.Nodes {
		tmpl, _ := reg.Lookup(n.TypeName)
		if emittedPreamble[n.TypeName] {
			continue
		}
		emittedPreamble[n.TypeName] = true
		if p := tmpl.Preamble(); p != "" {
			w.Line(p)
		}
	}

	w.Blank()
	w.Line("func run() error {")
	w.Indent()

	for _, id := range sched.Preamble {
		if err := emitNode(w, sched, id, reg); err != nil {
			return "", err
		}
	}
	for _, block := range sched.Blocks {
		if block.IsLoop() {
			if err := emitLoopBlock(w, sched, block, reg); err != nil {
				return "", err
			}
			continue
		}
		for _, id := range block.Sequence {
			if err := emitNode(w, sched, id, reg); err != nil {
				return "", err
			}
		}
	}

	w.Line("return nil")
	w.Dedent()
	w.Line("}")
	w.Blank()
	w.Line("func main() {")
	w.Indent()
	w.Line("if err := run(); err != nil {")
	w.Indent()
	w.Line("panic(err)")
	w.Dedent()
	w.Line("}")
	w.Dedent()
	w.Line("}")

	return w.String(), nil
}

func writeHeader(w *Writer, moduleName string, profile Profile) {
	w.Line("// Code generated by flowc from %s. DO NOT EDIT.", moduleName)
	w.Line("// Profile: %s", profile)
	w.Line("package main")
	w.Blank()
	if profile == Framework {
		w.Line(`import "github.com/flowlang-dev/flowlang/compiler/emit/runtime"`)
	} else {
		w.Line(`import "fmt"`)
	}
}

func emitNode(w *Writer, sched *ir.Schedule, id string, reg *TemplateRegistry) error {
	n := sched.Graph.NodeByID(id)
	if n == nil {
		return fmt.Errorf("emit: node %s not found in schedule's graph", id)
	}
	tmpl, _ := reg.Lookup(n.TypeName)
	tmpl.EmitInline(n, inputsFor(sched, id), varsFor(sched, id), w)
	return nil
}

func emitLoopBlock(w *Writer, sched *ir.Schedule, block *ir.Block, reg *TemplateRegistry) error {
	driver := sched.Graph.NodeByID(block.Driver)
	if driver == nil {
		return fmt.Errorf("emit: loop driver %s not found in schedule's graph", block.Driver)
	}
	tmpl, _ := reg.Lookup(driver.TypeName)

	vars := varsFor(sched, driver.ID)
	iterVar := ir.SafeName(driver.Name) + "_iter"
	vars["__iter__"] = iterVar

	w.Line("%s := %s", iterVar, tmpl.EmitLoopExpr(driver, inputsFor(sched, driver.ID)))
	w.Line("for {")
	w.Indent()
	tmpl.EmitLoopBreak(driver, vars, w)
	for _, id := range block.Body {
		if err := emitNode(w, sched, id, reg); err != nil {
			return err
		}
	}
	w.Dedent()
	w.Line("}")
	for _, id := range block.Post {
		if err := emitNode(w, sched, id, reg); err != nil {
			return err
		}
	}
	return nil
}

func inputsFor(sched *ir.Schedule, nodeID string) map[string]string {
	m := make(map[string]string)
	for _, in := range sched.Inputs {
		if in.NodeID == nodeID {
			m[in.Port] = in.Expr
		}
	}
	return m
}

func varsFor(sched *ir.Schedule, nodeID string) map[string]string {
	m := make(map[string]string)
	for _, v := range sched.Vars {
		if v.NodeID == nodeID {
			m[v.Port] = v.Name
		}
	}
	return m
}
