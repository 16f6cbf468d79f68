//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlang-dev/flowlang/graph/dsl"
	_ "github.com/flowlang-dev/flowlang/noderegistry/builtin"
)

const addPrintDoc = `{
  "graph_name": "add_print",
  "nodes": [
    {"id": "n1", "type": "constant", "name": "const8", "inputs": {"value": 8}},
    {"id": "n2", "type": "constant", "name": "const4", "inputs": {"value": 4}},
    {"id": "n3", "type": "add", "name": "add"},
    {"id": "n4", "type": "print", "name": "print", "inputs": {"prefix": ""}}
  ],
  "edges": [
    {"from_node": "n1", "from_port": "value", "to_node": "n3", "to_port": "a"},
    {"from_node": "n2", "from_port": "value", "to_node": "n3", "to_port": "b"},
    {"from_node": "n3", "from_port": "sum", "to_node": "n4", "to_port": "value"}
  ]
}`

func TestParseRejectsMissingRequiredKey(t *testing.T) {
	_, err := dsl.Parse([]byte(`{"graph_name": "x", "nodes": []}`))
	assert.Error(t, err)
}

func TestParseThenBuildConstructsNetwork(t *testing.T) {
	doc, err := dsl.Parse([]byte(addPrintDoc))
	require.NoError(t, err)

	result, err := dsl.Build(doc, true)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "add_print", result.Network.Node().Name)
}

func TestBuildStrictRejectsUnknownType(t *testing.T) {
	doc, err := dsl.Parse([]byte(`{
		"graph_name": "g",
		"nodes": [{"id": "n1", "type": "nonexistent_type"}],
		"edges": []
	}`))
	require.NoError(t, err)
	_, err = dsl.Build(doc, true)
	assert.ErrorIs(t, err, dsl.ErrUnknownNodeType)
}

func TestBuildPermissiveFallsBackToStubWithWarning(t *testing.T) {
	doc, err := dsl.Parse([]byte(`{
		"graph_name": "g",
		"nodes": [{"id": "n1", "type": "nonexistent_type", "outputs": {"value": 1}}],
		"edges": []
	}`))
	require.NoError(t, err)
	result, err := dsl.Build(doc, false)
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
}

func TestSerializeIsDeterministic(t *testing.T) {
	doc, err := dsl.Parse([]byte(addPrintDoc))
	require.NoError(t, err)
	result, err := dsl.Build(doc, true)
	require.NoError(t, err)

	first, err := dsl.Serialize(result.Network)
	require.NoError(t, err)
	second, err := dsl.Serialize(result.Network)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestToIRRejectsUnregisteredType(t *testing.T) {
	doc, err := dsl.Parse([]byte(`{
		"graph_name": "g",
		"nodes": [{"id": "n1", "type": "nonexistent_type"}],
		"edges": []
	}`))
	require.NoError(t, err)
	_, err = dsl.ToIR(doc)
	assert.ErrorIs(t, err, dsl.ErrUnknownNodeType)
}
