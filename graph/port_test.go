//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortControlAlwaysBool(t *testing.T) {
	p := NewPort("exec", DirectionInput, FunctionControl, TypeString)
	assert.Equal(t, TypeBool, p.ValueType)

	require.NoError(t, p.SetValue(true))
	assert.True(t, p.Dirty())
	assert.Equal(t, true, p.Value())

	err := p.SetValue("not a bool")
	assert.ErrorIs(t, err, ErrPortType)
}

func TestPortTypeAnyAcceptsAnything(t *testing.T) {
	p := NewPort("value", DirectionOutput, FunctionData, TypeAny)
	require.NoError(t, p.SetValue(42))
	require.NoError(t, p.SetValue("hello"))
	require.NoError(t, p.SetValue(map[string]any{"k": "v"}))
}

func TestPortFloatAcceptsInt(t *testing.T) {
	p := NewPort("n", DirectionInput, FunctionData, TypeFloat)
	require.NoError(t, p.SetValue(3))
	assert.Equal(t, 3, p.Value())
}

func TestPortStringRejectsInt(t *testing.T) {
	p := NewPort("s", DirectionInput, FunctionData, TypeString)
	err := p.SetValue(3)
	assert.ErrorIs(t, err, ErrPortType)
}

func TestPortClearDirty(t *testing.T) {
	p := NewPort("value", DirectionOutput, FunctionData, TypeAny)
	require.NoError(t, p.SetValue(1))
	assert.True(t, p.Dirty())
	p.clearDirty()
	assert.False(t, p.Dirty())
}
