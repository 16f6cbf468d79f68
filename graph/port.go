//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package graph

import (
	"fmt"
	"sync"
)

// Direction is the direction of a Port relative to its owning node.
type Direction int

// Port directions.
const (
	// DirectionInput means the port receives values from upstream edges.
	DirectionInput Direction = iota
	// DirectionOutput means the port produces values for downstream edges.
	DirectionOutput
	// DirectionInputOutput names a port that is both an input and an output.
	// Nothing in this package creates one: network tunnel ports are plain
	// DirectionInput and DirectionOutput ports on the network node (an input
	// port acts as an output source for the network's internal nodes, and an
	// output port acts as an input sink for them).
	DirectionInputOutput
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	case DirectionInputOutput:
		return "input_output"
	default:
		return "unknown"
	}
}

// Function is the class of a Port: it either carries data or carries a
// boolean control activation.
type Function int

// Port functions.
const (
	// FunctionData ports carry typed values.
	FunctionData Function = iota
	// FunctionControl ports carry only boolean activation.
	FunctionControl
)

// String implements fmt.Stringer.
func (f Function) String() string {
	if f == FunctionControl {
		return "control"
	}
	return "data"
}

// ValueType is the closed set of value types a data Port may declare.
type ValueType string

// The closed enumeration of port value types.
const (
	TypeAny    ValueType = "any"
	TypeInt    ValueType = "int"
	TypeFloat  ValueType = "float"
	TypeString ValueType = "string"
	TypeBool   ValueType = "bool"
	TypeDict   ValueType = "dict"
	TypeArray  ValueType = "array"
	TypeObject ValueType = "object"
	TypeVector ValueType = "vector"
	TypeMatrix ValueType = "matrix"
	TypeColor  ValueType = "color"
	TypeBinary ValueType = "binary"
)

// Port is a typed endpoint on a Node.
type Port struct {
	mu sync.RWMutex

	// Name is unique within its owning node's input or output set.
	Name string
	// Direction is immutable after construction.
	Direction Direction
	// Function is data or control.
	Function Function
	// ValueType constrains the values this port accepts. Always TypeBool when
	// Function is FunctionControl, and such a port accepts only bool values.
	ValueType ValueType

	value any
	dirty bool
}

// NewPort creates a Port. Control ports are always TypeBool regardless of
// the valueType argument, matching the invariant that control ports carry
// only boolean activation.
func NewPort(name string, direction Direction, function Function, valueType ValueType) *Port {
	if function == FunctionControl {
		valueType = TypeBool
	}
	if valueType == "" {
		valueType = TypeAny
	}
	return &Port{
		Name:      name,
		Direction: direction,
		Function:  function,
		ValueType: valueType,
		dirty:     true,
	}
}

// Value returns the port's current value.
func (p *Port) Value() any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Dirty reports whether the port's value has not yet been consumed since
// its last update.
func (p *Port) Dirty() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dirty
}

// SetValue type-checks v against the port's declared ValueType and, if
// acceptable, stores it and marks the port dirty. Returns ErrPortType if v
// does not satisfy the declared type.
func (p *Port) SetValue(v any) error {
	if err := checkValueType(p.Function, p.ValueType, v); err != nil {
		return fmt.Errorf("port %q: %w", p.Name, err)
	}
	p.mu.Lock()
	p.value = v
	p.dirty = true
	p.mu.Unlock()
	return nil
}

// clearDirty marks the port as consumed. Unexported, so only package graph
// can call it; the executor package does not clear dirty flags.
func (p *Port) clearDirty() {
	p.mu.Lock()
	p.dirty = false
	p.mu.Unlock()
}

// checkValueType enforces port type compatibility: control ports only ever
// carry bool; data ports type-check against ValueType, except TypeAny which
// accepts unconditionally; an int value is accepted into a float port.
func checkValueType(fn Function, vt ValueType, v any) error {
	if v == nil {
		return nil
	}
	if fn == FunctionControl {
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: control ports only accept bool, got %T", ErrPortType, v)
		}
		return nil
	}
	if vt == TypeAny {
		return nil
	}
	switch vt {
	case TypeInt:
		switch v.(type) {
		case int, int32, int64:
			return nil
		}
	case TypeFloat:
		switch v.(type) {
		case float32, float64:
			return nil
		case int, int32, int64:
			// Int values are accepted into float ports.
			return nil
		}
	case TypeString:
		if _, ok := v.(string); ok {
			return nil
		}
	case TypeBool:
		if _, ok := v.(bool); ok {
			return nil
		}
	case TypeDict, TypeObject:
		switch v.(type) {
		case map[string]any:
			return nil
		}
	case TypeArray, TypeVector, TypeMatrix:
		switch v.(type) {
		case []any:
			return nil
		}
	case TypeColor:
		switch v.(type) {
		case string, [3]float64, [4]float64, []float64:
			return nil
		}
	case TypeBinary:
		if _, ok := v.([]byte); ok {
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown value type %q", ErrPortType, vt)
	}
	return fmt.Errorf("%w: value %v (%T) is not assignable to port of type %q", ErrPortType, v, v, vt)
}
