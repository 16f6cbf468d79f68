//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package builtin

import (
	"context"
	"fmt"

	"github.com/flowlang-dev/flowlang/noderegistry"
)

// TypeAdd is the registered type name for a binary addition node.
const TypeAdd = "add"

// TypeMultiply is the registered type name for a binary multiplication node.
const TypeMultiply = "multiply"

func init() {
	if err := noderegistry.Register(TypeAdd, newBinaryOp("sum", addNumbers)); err != nil {
		panic(err)
	}
	if err := noderegistry.Register(TypeMultiply, newBinaryOp("product", mulNumbers)); err != nil {
		panic(err)
	}
}

// newBinaryOp builds a two-input, one-output arithmetic node. outputName is
// also the state field callers inspect after cooking (e.g. add.sum); op
// combines the two input values, coercing ints to float64 only when at
// least one operand is already a float.
func newBinaryOp(outputName string, op func(a, b any) (any, error)) noderegistry.Constructor {
	return func(opts noderegistry.Options) (*noderegistry.Spec, error) {
		return &noderegistry.Spec{
			Inputs: []noderegistry.PortSpec{{Name: "a"}, {Name: "b"}},
			Outputs: []noderegistry.PortSpec{{Name: outputName}},
			Compute: func(ctx context.Context, inputs map[string]any, controls map[string]bool, state any, setState func(any)) (*noderegistry.Result, error) {
				result, err := op(inputs["a"], inputs["b"])
				if err != nil {
					return nil, err
				}
				setState(result)
				return &noderegistry.Result{
					Command: noderegistry.CommandContinue,
					Outputs: map[string]any{outputName: result},
				}, nil
			},
		}, nil
	}
}

func addNumbers(a, b any) (any, error) {
	af, aIsFloat, err := toNumber(a)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	bf, bIsFloat, err := toNumber(b)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	if !aIsFloat && !bIsFloat {
		return int(af) + int(bf), nil
	}
	return af + bf, nil
}

func mulNumbers(a, b any) (any, error) {
	af, aIsFloat, err := toNumber(a)
	if err != nil {
		return nil, fmt.Errorf("multiply: %w", err)
	}
	bf, bIsFloat, err := toNumber(b)
	if err != nil {
		return nil, fmt.Errorf("multiply: %w", err)
	}
	if !aIsFloat && !bIsFloat {
		return int(af) * int(bf), nil
	}
	return af * bf, nil
}

// toNumber coerces v to float64, reporting whether it was already a
// floating-point value (so callers can keep int results as int).
func toNumber(v any) (f float64, wasFloat bool, err error) {
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
		return 0, false, fmt.Errorf("expected a number, got %T", v)
	}
}
