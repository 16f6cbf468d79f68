//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package ir

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var identCaser = cases.Lower(language.Und)

// SafeName sanitizes a node's display name into the identifier fragment
// used to build its output ports' variable names: lower-cased, with every
// run of non-alphanumeric characters collapsed to a single underscore.
// Source names come from an author-controlled DSL document, not untrusted
// free text, so this need only produce a valid identifier, not canonicalize
// arbitrary Unicode.
func SafeName(name string) string {
	lowered := identCaser.String(name)
	var b strings.Builder
	prevUnderscore := false
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "node"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "n_" + out
	}
	return out
}

// VarNameFor builds the "{safe_node_name}_{port_name}" variable name for
// one output port.
func VarNameFor(nodeName, port string) string {
	return SafeName(nodeName) + "_" + SafeName(port)
}
