//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Package runtime is the companion orchestration framework the Framework
// emit profile's templates generate calls into: small, dependency-free
// helpers that reproduce the same arithmetic coercion and
// loop-driver semantics as noderegistry/builtin, so a compiled program
// observes the same values a live cooking call would. The ZeroFramework
// profile never imports this package; it inlines the equivalent raw Go at
// each call site instead.
package runtime

import "fmt"

// Add mirrors noderegistry/builtin's add node: int+int stays int, any float
// operand promotes the result to float64.
func Add(a, b any) (any, error) { return binaryOp(a, b, func(x, y float64) float64 { return x + y }) }

// Multiply mirrors noderegistry/builtin's multiply node.
func Multiply(a, b any) (any, error) {
	return binaryOp(a, b, func(x, y float64) float64 { return x * y })
}

func binaryOp(a, b any, op func(x, y float64) float64) (any, error) {
	af, aIsFloat, err := toNumber(a)
	if err != nil {
		return nil, err
	}
	bf, bIsFloat, err := toNumber(b)
	if err != nil {
		return nil, err
	}
	result := op(af, bf)
	if aIsFloat || bIsFloat {
		return result, nil
	}
	return int(result), nil
}

func toNumber(v any) (float64, bool, error) {
	switch n := v.(type) {
	case int:
		return float64(n), false, nil
	case int32:
		return float64(n), false, nil
	case int64:
		return float64(n), false, nil
	case float32:
		return float64(n), true, nil
	case float64:
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("runtime: value %v (%T) is not numeric", v, v)
	}
}

// PrintValue writes prefix immediately followed by v's default formatting
// and a trailing newline, matching noderegistry/builtin's print node.
func PrintValue(prefix string, v any) {
	fmt.Printf("%s%v\n", prefix, v)
}

// ForLoopDriver reproduces the forloop node's bounded counting iteration.
type ForLoopDriver struct {
	cur, end int
}

// NewForLoopDriver creates a driver that yields start, start+1, ..., end-1.
func NewForLoopDriver(start, end int) *ForLoopDriver {
	return &ForLoopDriver{cur: start, end: end}
}

// Next returns the next index and false, or a zero value and true once the
// driver is exhausted (mirrors forloop's completed transition).
func (d *ForLoopDriver) Next() (int, bool) {
	if d.cur >= d.end {
		return 0, true
	}
	v := d.cur
	d.cur++
	return v, false
}

// ForEachDriver reproduces the foreach node's item-by-item iteration.
type ForEachDriver struct {
	items []any
	idx   int
}

// NewForEachDriver creates a driver over items.
func NewForEachDriver(items []any) *ForEachDriver {
	return &ForEachDriver{items: items}
}

// Next returns the next item and false, or nil and true once exhausted.
func (d *ForEachDriver) Next() (any, bool) {
	if d.idx >= len(d.items) {
		return nil, true
	}
	v := d.items[d.idx]
	d.idx++
	return v, false
}

// Total returns the number of items, available immediately (foreach's
// "total" output is known up front, unlike its per-item "item" output).
func (d *ForEachDriver) Total() int { return len(d.items) }

// Accumulator reproduces the accumulator passthrough node: it records every
// value it is driven with, in order.
type Accumulator struct {
	Values []any
}

// Push records v.
func (a *Accumulator) Push(v any) { a.Values = append(a.Values, v) }
