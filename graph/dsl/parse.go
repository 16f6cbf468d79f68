//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package dsl

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Parse decodes a graph JSON document. Required-key presence (graph_name,
// nodes, edges) is checked up front with gjson before the full
// encoding/json.Unmarshal, so a missing required key is reported as a
// structural error naming the missing key rather than a generic decode
// failure. The permissive/strict distinction (made in Build) applies to
// unknown node types, not to this top-level shape, which must always be
// present.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("dsl: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	for _, key := range []string{"graph_name", "nodes", "edges"} {
		if !root.Get(key).Exists() {
			return nil, fmt.Errorf("dsl: missing required key %q", key)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dsl: decoding document: %w", err)
	}
	return &doc, nil
}
