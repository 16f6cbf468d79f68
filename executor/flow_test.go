//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package executor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlang-dev/flowlang/executor"
	"github.com/flowlang-dev/flowlang/graph"
	"github.com/flowlang-dev/flowlang/noderegistry/builtin"
)

// TestForLoopDrivesAccumulatorInOrder is end-to-end scenario 3: a driver
// with start=0, end=5 wired loop_body -> accumulator, and the driver's
// index wired into accumulator.val. After cooking, the accumulator must
// have been called 5 times with values 0..4 in order.
func TestForLoopDrivesAccumulatorInOrder(t *testing.T) {
	root := graph.NewRootNetwork("root", "network")
	driver, err := root.CreateNode("driver", builtin.TypeForLoop, map[string]any{"start": 0, "end": 5})
	require.NoError(t, err)
	acc, err := root.CreateNode("acc", builtin.TypeAccumulator, nil)
	require.NoError(t, err)

	_, err = root.Connect("driver", "loop_body", "acc", "exec")
	require.NoError(t, err)
	_, err = root.Connect("driver", "index", "acc", "val")
	require.NoError(t, err)

	exec := executor.New()
	require.NoError(t, exec.CookFlowControlNodes(context.Background(), root.Graph(), driver))

	got := acc.State().(*builtin.AccumulatorState)
	assert.Equal(t, []any{0, 1, 2, 3, 4}, got.Values)
}

// TestForLoopZeroIterations is the boundary behavior: start == end produces
// zero body iterations.
func TestForLoopZeroIterations(t *testing.T) {
	root := graph.NewRootNetwork("root", "network")
	driver, err := root.CreateNode("driver", builtin.TypeForLoop, map[string]any{"start": 3, "end": 3})
	require.NoError(t, err)
	acc, err := root.CreateNode("acc", builtin.TypeAccumulator, nil)
	require.NoError(t, err)
	_, err = root.Connect("driver", "loop_body", "acc", "exec")
	require.NoError(t, err)

	exec := executor.New()
	require.NoError(t, exec.CookFlowControlNodes(context.Background(), root.Graph(), driver))
	assert.Nil(t, acc.State())
}

// TestForEachDrivesItemPrinterThenDonePrinter is end-to-end scenario 4:
// items = ["apple","banana","cherry"] wired into a for-each; loop_body
// fires an item printer; completed fires a done printer receiving total=3.
func TestForEachDrivesItemPrinterThenDonePrinter(t *testing.T) {
	root := graph.NewRootNetwork("root", "network")
	items, err := root.CreateNode("items", "constant", map[string]any{"value": []any{"apple", "banana", "cherry"}})
	require.NoError(t, err)
	driver, err := root.CreateNode("driver", "foreach", nil)
	require.NoError(t, err)
	itemPrinter, err := root.CreateNode("item_printer", "print", map[string]any{"prefix": ""})
	require.NoError(t, err)
	donePrinter, err := root.CreateNode("done_printer", "print", map[string]any{"prefix": "total="})
	require.NoError(t, err)

	_, err = root.Connect("items", "value", "driver", "items")
	require.NoError(t, err)
	_, err = root.Connect("driver", "loop_body", "item_printer", "exec")
	require.NoError(t, err)
	_, err = root.Connect("driver", "item", "item_printer", "value")
	require.NoError(t, err)
	_, err = root.Connect("driver", "completed", "done_printer", "exec")
	require.NoError(t, err)
	_, err = root.Connect("driver", "total", "done_printer", "value")
	require.NoError(t, err)

	// The for-each driver's "items" input comes from a constant preamble
	// node rather than from another flow-control node; materialize it
	// before cooking starts, the way a compiled schedule's preamble would.
	dataExec := executor.New()
	require.NoError(t, dataExec.CookDataNodes(context.Background(), root.Graph(), items))
	itemsOut, _ := items.OutputPort("value")
	driverIn, _ := driver.InputPort("items")
	require.NoError(t, driverIn.SetValue(itemsOut.Value()))

	exec := executor.New()
	require.NoError(t, exec.CookFlowControlNodes(context.Background(), root.Graph(), driver))

	assert.Equal(t, "cherry", itemPrinter.State())
	assert.Equal(t, 3, donePrinter.State())
}
