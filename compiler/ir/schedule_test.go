//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlang-dev/flowlang/compiler/ir"
)

func dataPort(name string) ir.Port    { return ir.Port{Name: name, Class: ir.PortData, Type: "any"} }
func controlPort(name string) ir.Port { return ir.Port{Name: name, Class: ir.PortControl} }

// buildPipelineGraph is a pure data pipeline with no flow-control node:
// const8 -> add.a, const4 -> add.b.
func buildPipelineGraph() *ir.Graph {
	return &ir.Graph{
		ID:   "root",
		Name: "root",
		Nodes: []*ir.IRNode{
			{ID: "n1", Name: "const8", ExecClass: ir.ExecConstant,
				Outputs:            []ir.Port{dataPort("value")},
				StaticOutputValues: map[string]any{"value": 8}},
			{ID: "n2", Name: "const4", ExecClass: ir.ExecConstant,
				Outputs:            []ir.Port{dataPort("value")},
				StaticOutputValues: map[string]any{"value": 4}},
			{ID: "n3", Name: "add", ExecClass: ir.ExecData,
				Inputs:  []ir.Port{dataPort("a"), dataPort("b")},
				Outputs: []ir.Port{dataPort("sum")}},
		},
		Edges: []*ir.IREdge{
			{FromID: "n1", FromPort: "value", ToID: "n3", ToPort: "a", Class: ir.EdgeData},
			{FromID: "n2", FromPort: "value", ToID: "n3", ToPort: "b", Class: ir.EdgeData},
		},
	}
}

func TestScheduleDataPipelineHasNoBlocks(t *testing.T) {
	g := buildPipelineGraph()
	sched, err := ir.Schedule(g)
	require.NoError(t, err)
	assert.Empty(t, sched.Blocks)
	assert.Equal(t, []string{"n1", "n2", "n3"}, sched.Preamble)

	var addA, addB string
	for _, in := range sched.Inputs {
		if in.NodeID == "n3" && in.Port == "a" {
			addA = in.Expr
		}
		if in.NodeID == "n3" && in.Port == "b" {
			addB = in.Expr
		}
	}
	assert.Equal(t, "const8_value", addA)
	assert.Equal(t, "const4_value", addB)
}

// buildForLoopGraph mirrors scenario 3: a forloop driver wired loop_body ->
// acc.exec, index -> acc.val.
func buildForLoopGraph() *ir.Graph {
	return &ir.Graph{
		ID:   "root",
		Name: "root",
		Nodes: []*ir.IRNode{
			{ID: "driver", Name: "driver", ExecClass: ir.ExecLoopAgain, IsFlowControl: true,
				Outputs: []ir.Port{dataPort("index"), controlPort("loop_body"), controlPort("completed")}},
			{ID: "acc", Name: "acc", ExecClass: ir.ExecPassthrough, IsFlowControl: true,
				Inputs:  []ir.Port{dataPort("val"), controlPort("exec")},
				Outputs: []ir.Port{controlPort("next")}},
		},
		Edges: []*ir.IREdge{
			{FromID: "driver", FromPort: "loop_body", ToID: "acc", ToPort: "exec", Class: ir.EdgeControl},
			{FromID: "driver", FromPort: "index", ToID: "acc", ToPort: "val", Class: ir.EdgeData},
		},
	}
}

func TestScheduleForLoopProducesLoopBlock(t *testing.T) {
	g := buildForLoopGraph()
	sched, err := ir.Schedule(g)
	require.NoError(t, err)
	require.Len(t, sched.Blocks, 1)

	b := sched.Blocks[0]
	assert.True(t, b.IsLoop())
	assert.Equal(t, "driver", b.Driver)
	assert.Equal(t, []string{"acc"}, b.Body)
	assert.Empty(t, b.Post)
	assert.Empty(t, sched.Preamble)

	var accVal string
	for _, in := range sched.Inputs {
		if in.NodeID == "acc" && in.Port == "val" {
			accVal = in.Expr
		}
	}
	assert.Equal(t, "driver_index", accVal)
}

func TestScheduleRejectsAmbiguousDriver(t *testing.T) {
	g := &ir.Graph{
		Nodes: []*ir.IRNode{
			{ID: "d1", Name: "d1", ExecClass: ir.ExecLoopAgain, IsFlowControl: true,
				Outputs: []ir.Port{controlPort("loop_body"), controlPort("completed")}},
			{ID: "d2", Name: "d2", ExecClass: ir.ExecLoopAgain, IsFlowControl: true,
				Outputs: []ir.Port{controlPort("loop_body"), controlPort("completed")}},
		},
	}
	_, err := ir.Schedule(g)
	assert.ErrorIs(t, err, ir.ErrAmbiguousDriver)
}

func TestVarNameForSanitizesNodeAndPortNames(t *testing.T) {
	assert.Equal(t, "my_node_out_1", ir.VarNameFor("My Node!", "out-1"))
	assert.Equal(t, "n_3d_value", ir.VarNameFor("3d", "value"))
}
