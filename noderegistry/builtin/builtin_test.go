//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package builtin

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlang-dev/flowlang/noderegistry"
)

func mustSpec(t *testing.T, typeName string, opts noderegistry.Options) *noderegistry.Spec {
	t.Helper()
	ctor, ok := noderegistry.Lookup(typeName)
	require.True(t, ok)
	spec, err := ctor(opts)
	require.NoError(t, err)
	return spec
}

func TestConstantEmitsConfiguredValue(t *testing.T) {
	spec := mustSpec(t, TypeConstant, noderegistry.Options{"value": 8})
	res, err := spec.Compute(context.Background(), nil, nil, nil, func(any) {})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Outputs["value"])
}

func TestAddSumsTwoInts(t *testing.T) {
	spec := mustSpec(t, TypeAdd, nil)
	var state any
	res, err := spec.Compute(context.Background(), map[string]any{"a": 8, "b": 4}, nil, nil, func(s any) { state = s })
	require.NoError(t, err)
	assert.Equal(t, 12, res.Outputs["sum"])
	assert.Equal(t, 12, state)
}

func TestMultiplyProducesProduct(t *testing.T) {
	spec := mustSpec(t, TypeMultiply, nil)
	res, err := spec.Compute(context.Background(), map[string]any{"a": 12, "b": 2}, nil, nil, func(any) {})
	require.NoError(t, err)
	assert.Equal(t, 24, res.Outputs["product"])
}

func TestPrintWritesValueToBoundOutput(t *testing.T) {
	spec := mustSpec(t, TypePrint, noderegistry.Options{"prefix": ""})
	var buf bytes.Buffer
	ctx := noderegistry.WithOutput(context.Background(), &buf)
	res, err := spec.Compute(ctx, map[string]any{"value": 12}, nil, nil, func(any) {})
	require.NoError(t, err)
	assert.Equal(t, "12\n", buf.String())
	assert.True(t, res.Controls["next"])
}

func TestForLoopDrivesFixedIterations(t *testing.T) {
	spec := mustSpec(t, TypeForLoop, noderegistry.Options{"start": 0, "end": 3})
	var state any
	setState := func(s any) { state = s }

	var indexes []int
	for i := 0; i < 3; i++ {
		res, err := spec.Compute(context.Background(), nil, nil, state, setState)
		require.NoError(t, err)
		require.Equal(t, noderegistry.CommandLoopAgain, res.Command)
		indexes = append(indexes, res.Outputs["index"].(int))
	}
	assert.Equal(t, []int{0, 1, 2}, indexes)

	res, err := spec.Compute(context.Background(), nil, nil, state, setState)
	require.NoError(t, err)
	assert.Equal(t, noderegistry.CommandCompleted, res.Command)
	assert.True(t, res.Controls["completed"])
}

func TestForLoopZeroIterationsWhenStartEqualsEnd(t *testing.T) {
	spec := mustSpec(t, TypeForLoop, noderegistry.Options{"start": 5, "end": 5})
	res, err := spec.Compute(context.Background(), nil, nil, nil, func(any) {})
	require.NoError(t, err)
	assert.Equal(t, noderegistry.CommandCompleted, res.Command)
}

func TestForEachDrivesItemsThenCompletesWithTotal(t *testing.T) {
	spec := mustSpec(t, TypeForEach, nil)
	var state any
	setState := func(s any) { state = s }

	items := []any{"apple", "banana", "cherry"}
	var seen []any
	for i := 0; i < 3; i++ {
		inputs := map[string]any{"items": items}
		res, err := spec.Compute(context.Background(), inputs, nil, state, setState)
		require.NoError(t, err)
		require.Equal(t, noderegistry.CommandLoopAgain, res.Command)
		seen = append(seen, res.Outputs["item"])
	}
	assert.Equal(t, items, seen)

	res, err := spec.Compute(context.Background(), nil, nil, state, setState)
	require.NoError(t, err)
	assert.Equal(t, noderegistry.CommandCompleted, res.Command)
	assert.Equal(t, 3, res.Outputs["total"])
}

func TestForEachEmptyListCompletesImmediately(t *testing.T) {
	spec := mustSpec(t, TypeForEach, nil)
	res, err := spec.Compute(context.Background(), map[string]any{"items": []any{}}, nil, nil, func(any) {})
	require.NoError(t, err)
	assert.Equal(t, noderegistry.CommandCompleted, res.Command)
	assert.Equal(t, 0, res.Outputs["total"])
}

func TestBranchActivatesExactlyOneSide(t *testing.T) {
	spec := mustSpec(t, TypeBranch, nil)
	res, err := spec.Compute(context.Background(), map[string]any{"condition": true}, nil, nil, func(any) {})
	require.NoError(t, err)
	assert.True(t, res.Controls["true_out"])
	assert.False(t, res.Controls["false_out"])
}

func TestAccumulatorRecordsEveryCall(t *testing.T) {
	spec := mustSpec(t, TypeAccumulator, nil)
	var state any
	setState := func(s any) { state = s }
	for _, v := range []any{0, 1, 2} {
		res, err := spec.Compute(context.Background(), map[string]any{"val": v}, nil, state, setState)
		require.NoError(t, err)
		assert.True(t, res.Controls["next"])
	}
	got := state.(*AccumulatorState)
	assert.Equal(t, []any{0, 1, 2}, got.Values)
}
