//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddInputRejectsDuplicateName(t *testing.T) {
	n := newNode("n1", "one", "test", KindFunction, "")
	_, err := n.AddInput("a", FunctionData, TypeAny)
	require.NoError(t, err)
	_, err = n.AddInput("a", FunctionData, TypeAny)
	assert.ErrorIs(t, err, ErrDuplicatePath)
}

func TestExecutionContextCarriesState(t *testing.T) {
	n := newNode("n1", "one", "test", KindFunction, "")
	n.SetState(7)

	ec := NewExecutionContext(context.Background(), n, map[string]any{"a": 1}, map[string]bool{"exec": true})
	assert.Equal(t, 7, ec.State())
	assert.Equal(t, 1, mustInput(t, ec, "a"))
	assert.True(t, ec.Control("exec"))

	ec.SetState(8)
	assert.Equal(t, 8, n.State())
}

func mustInput(t *testing.T, ec *ExecutionContext, name string) any {
	t.Helper()
	v, ok := ec.Input(name)
	require.True(t, ok)
	return v
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "continue", CommandContinue.String())
	assert.Equal(t, "loop_again", CommandLoopAgain.String())
	assert.Equal(t, "completed", CommandCompleted.String())
	assert.Equal(t, "wait", CommandWait.String())
}
