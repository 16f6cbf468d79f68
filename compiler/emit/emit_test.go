//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlang-dev/flowlang/compiler"
	"github.com/flowlang-dev/flowlang/compiler/emit"
	"github.com/flowlang-dev/flowlang/graph"
	"github.com/flowlang-dev/flowlang/noderegistry/builtin"
)

// TestEmitTrivialPipelineBindsThenPrints is end-to-end scenario 5: a
// Constant(7) -> Print pipeline's emitted program must contain, in order,
// an assignment binding 7 and a print of that variable.
func TestEmitTrivialPipelineBindsThenPrints(t *testing.T) {
	root := graph.NewRootNetwork("root", "network")
	_, err := root.CreateNode("seven", builtin.TypeConstant, map[string]any{"value": 7})
	require.NoError(t, err)
	_, err = root.CreateNode("print", builtin.TypePrint, map[string]any{"prefix": ""})
	require.NoError(t, err)
	_, err = root.Connect("seven", "value", "print", "value")
	require.NoError(t, err)

	sched, err := compiler.Analyze(root)
	require.NoError(t, err)

	src, err := emit.Emit(sched, emit.ZeroFramework, "trivial_pipeline")
	require.NoError(t, err)

	bindIdx := indexOf(t, src, "seven_value := 7")
	printIdx := indexOf(t, src, "seven_value)")
	assert.Less(t, bindIdx, printIdx, "assignment must precede the print call")
}

// TestEmitForEachProducesOneLoopBlock is end-to-end scenario 6: the schedule
// must produce exactly one loop block whose driver is the foreach node,
// whose body contains the item printer and whose post contains the done
// printer; the emitted source contains an iterator-style loop with a
// termination check.
func TestEmitForEachProducesOneLoopBlock(t *testing.T) {
	root := graph.NewRootNetwork("root", "network")
	items, err := root.CreateNode("items", builtin.TypeConstant, map[string]any{"value": []any{"a", "b", "c"}})
	require.NoError(t, err)
	driver, err := root.CreateNode("driver", builtin.TypeForEach, nil)
	require.NoError(t, err)
	itemPrinter, err := root.CreateNode("item_printer", builtin.TypePrint, map[string]any{"prefix": ""})
	require.NoError(t, err)
	donePrinter, err := root.CreateNode("done_printer", builtin.TypePrint, map[string]any{"prefix": "total="})
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

	sched, err := compiler.Analyze(root)
	require.NoError(t, err)
	require.Len(t, sched.Blocks, 1)
	block := sched.Blocks[0]
	assert.True(t, block.IsLoop())
	assert.Equal(t, driver.ID, block.Driver)
	assert.Contains(t, block.Body, itemPrinter.ID)
	assert.Contains(t, block.Post, donePrinter.ID)

	src, err := emit.Emit(sched, emit.Framework, "foreach_pipeline")
	require.NoError(t, err)
	assert.Contains(t, src, "runtime.NewForEachDriver(items_value)")
	assert.Contains(t, src, "for {")
	assert.Contains(t, src, "if done {")
}

func indexOf(t *testing.T, s, substr string) int {
	t.Helper()
	idx := indexOfString(s, substr)
	require.GreaterOrEqual(t, idx, 0, "expected %q to contain %q", s, substr)
	return idx
}

func indexOfString(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
