//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package dsl

import (
	"sort"
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/flowlang-dev/flowlang/graph"
)

// Serialize renders net's flat children and edges as canonical graph JSON:
// nodes and edges sorted by id so that two calls on an unchanged network
// produce byte-identical output. Nested networks are not represented in
// this single document; a caller serialising a tree calls Serialize once
// per network, the same granularity Extract operates at.
func Serialize(net *graph.Network) ([]byte, error) {
	g := net.Graph()
	children := g.Nodes(net.ID())
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })

	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, v)
	}

	set("graph_name", net.Node().Name)
	set("id", net.ID())
	set("nodes", []any{})
	set("edges", []any{})
	if err != nil {
		return nil, err
	}

	idx := 0
	for _, n := range children {
		if n.Kind == graph.KindNetwork {
			continue
		}
		base := sjsonIndexPath("nodes", idx)
		idx++
		set(base+".id", n.ID)
		set(base+".type", n.TypeName)
		set(base+".name", n.Name)
		if err != nil {
			return nil, err
		}
	}

	edges := g.AllEdges()
	filtered := edges[:0:0]
	for _, e := range edges {
		fromNode, fromOK := g.Node(e.FromNode)
		toNode, toOK := g.Node(e.ToNode)
		if fromOK && toOK && fromNode.OwnerNetwork == net.ID() && toNode.OwnerNetwork == net.ID() &&
			fromNode.Kind != graph.KindNetwork && toNode.Kind != graph.KindNetwork {
			filtered = append(filtered, e)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].FromNode != filtered[j].FromNode {
			return filtered[i].FromNode < filtered[j].FromNode
		}
		return filtered[i].FromPort < filtered[j].FromPort
	})
	for i, e := range filtered {
		base := sjsonIndexPath("edges", i)
		set(base+".from_node", e.FromNode)
		set(base+".from_port", e.FromPort)
		set(base+".to_node", e.ToNode)
		set(base+".to_port", e.ToPort)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func sjsonIndexPath(array string, i int) string {
	return array + "." + strconv.Itoa(i)
}
