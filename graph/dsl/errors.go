//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package dsl

import "errors"

// Structural errors: fail fast at JSON load, never enter the executor.
var (
	ErrDuplicateNodeID     = errors.New("dsl: duplicate node id")
	ErrUnknownEdgeEndpoint = errors.New("dsl: edge references unknown node id")
	// ErrUnknownNodeType is a registry resolution failure: in strict mode it
	// is fatal, in permissive mode Build instead falls back to a stub type
	// and reports a warning.
	ErrUnknownNodeType = errors.New("dsl: unknown node type")
)
