//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlang-dev/flowlang/compiler"
	"github.com/flowlang-dev/flowlang/compiler/ir"
	"github.com/flowlang-dev/flowlang/graph"
	"github.com/flowlang-dev/flowlang/noderegistry/builtin"
)

// buildAddPrintGraph is the scenario-1 add-then-print network also used by
// the executor package's end-to-end tests.
func buildAddPrintGraph(t *testing.T) *graph.Network {
	t.Helper()
	root := graph.NewRootNetwork("root", "network")
	_, err := root.CreateNode("const8", builtin.TypeConstant, map[string]any{"value": 8})
	require.NoError(t, err)
	_, err = root.CreateNode("const4", builtin.TypeConstant, map[string]any{"value": 4})
	require.NoError(t, err)
	_, err = root.CreateNode("add", builtin.TypeAdd, nil)
	require.NoError(t, err)
	_, err = root.CreateNode("print", builtin.TypePrint, map[string]any{"prefix": ""})
	require.NoError(t, err)

	_, err = root.Connect("const8", "value", "add", "a")
	require.NoError(t, err)
	_, err = root.Connect("const4", "value", "add", "b")
	require.NoError(t, err)
	_, err = root.Connect("add", "sum", "print", "value")
	require.NoError(t, err)
	return root
}

func TestExtractClassifiesConstantAndDataNodes(t *testing.T) {
	root := buildAddPrintGraph(t)
	irg, err := compiler.Extract(root)
	require.NoError(t, err)

	byName := make(map[string]*ir.IRNode, len(irg.Nodes))
	for _, n := range irg.Nodes {
		byName[n.Name] = n
	}

	require.Contains(t, byName, "const8")
	assert.Equal(t, ir.ExecConstant, byName["const8"].ExecClass)
	assert.Equal(t, 8, byName["const8"].StaticOutputValues["value"])

	require.Contains(t, byName, "add")
	assert.Equal(t, ir.ExecData, byName["add"].ExecClass)
	assert.Nil(t, byName["add"].StaticOutputValues)

	// print declares FlowControl=true but has neither loop_body/completed
	// nor true_out/false_out outputs, so it classifies as passthrough.
	require.Contains(t, byName, "print")
	assert.Equal(t, ir.ExecPassthrough, byName["print"].ExecClass)

	assert.Len(t, irg.Edges, 3)
}

func TestExtractDropsNestedNetworkNodesAndTheirEdges(t *testing.T) {
	root := graph.NewRootNetwork("root", "network")
	_, err := root.CreateNode("const8", builtin.TypeConstant, map[string]any{"value": 8})
	require.NoError(t, err)
	sub, err := root.CreateNetwork("sub", "network")
	require.NoError(t, err)
	_, err = sub.AddTunnelInput("in", graph.FunctionData, graph.TypeAny)
	require.NoError(t, err)
	_, err = root.Connect("const8", "value", "sub", "in")
	require.NoError(t, err)

	irg, err := compiler.Extract(root)
	require.NoError(t, err)

	for _, n := range irg.Nodes {
		assert.NotEqual(t, "sub", n.Name)
	}
	assert.Empty(t, irg.Edges)
}

func TestExtractClassifiesForLoopDriverAsLoopAgain(t *testing.T) {
	root := graph.NewRootNetwork("root", "network")
	_, err := root.CreateNode("driver", builtin.TypeForLoop, map[string]any{"start": 0, "end": 5})
	require.NoError(t, err)
	_, err = root.CreateNode("acc", builtin.TypeAccumulator, nil)
	require.NoError(t, err)
	_, err = root.Connect("driver", "loop_body", "acc", "exec")
	require.NoError(t, err)
	_, err = root.Connect("driver", "index", "acc", "val")
	require.NoError(t, err)

	irg, err := compiler.Extract(root)
	require.NoError(t, err)

	var driver *ir.IRNode
	for _, n := range irg.Nodes {
		if n.Name == "driver" {
			driver = n
		}
	}
	require.NotNil(t, driver)
	assert.Equal(t, ir.ExecLoopAgain, driver.ExecClass)
	assert.True(t, driver.IsFlowControl)
}
