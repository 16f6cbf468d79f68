//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

package ir

import (
	"fmt"
	"sort"
)

// ErrAmbiguousDriver is returned by Schedule when more than one
// flow-control node has no incoming control edge: the driver must be
// unique.
var ErrAmbiguousDriver = fmt.Errorf("schedule: more than one candidate driver node")

func isFlowControl(c ExecClass) bool {
	return c == ExecLoopAgain || c == ExecBranch || c == ExecPassthrough
}

// Schedule produces an IRSchedule from an IRGraph: find the unique driver,
// topologically sort its data ancestors into a preamble, then build one
// block per the driver's exec_class. A graph with no flow-control node at
// all schedules into a single preamble containing every node in
// topological order and an empty blocks list.
func Schedule(g *Graph) (*Schedule, error) {
	driver, err := findDriver(g)
	if err != nil {
		return nil, err
	}

	sched := &Schedule{Graph: g}

	if driver == nil {
		order, err := topoSortData(g, nodeIDs(g.Nodes))
		if err != nil {
			return nil, err
		}
		sched.Preamble = order
		assignVarsAndInputs(g, order, sched)
		return sched, nil
	}

	ancestors := dataAncestors(g, driver.ID)
	preamble, err := topoSortData(g, ancestors)
	if err != nil {
		return nil, err
	}
	sched.Preamble = preamble

	var block *Block
	switch driver.ExecClass {
	case ExecLoopAgain:
		block = &Block{
			Driver: driver.ID,
			Body:   controlChainFrom(g, driver.ID, "loop_body"),
			Post:   controlChainFrom(g, driver.ID, "completed"),
		}
	case ExecBranch:
		seq := []string{driver.ID}
		seq = append(seq, controlChainFrom(g, driver.ID, "true_out")...)
		seq = append(seq, controlChainFrom(g, driver.ID, "false_out")...)
		block = &Block{Sequence: seq}
	default: // ExecPassthrough
		seq := []string{driver.ID}
		if firstOut := firstControlOutput(driver); firstOut != "" {
			seq = append(seq, controlChainFrom(g, driver.ID, firstOut)...)
		}
		block = &Block{Sequence: seq}
	}
	sched.Blocks = []*Block{block}

	scheduled := append(append([]string{}, preamble...), driver.ID)
	if block.IsLoop() {
		scheduled = append(scheduled, block.Body...)
		scheduled = append(scheduled, block.Post...)
	} else {
		scheduled = append(scheduled, block.Sequence[1:]...)
	}
	assignVarsAndInputs(g, scheduled, sched)
	return sched, nil
}

// findDriver returns the unique flow-control node with no incoming control
// edge, nil if the graph is a pure data pipeline, or ErrAmbiguousDriver if
// more than one candidate exists.
func findDriver(g *Graph) (*IRNode, error) {
	var candidates []*IRNode
	for _, n := range g.Nodes {
		if !isFlowControl(n.ExecClass) {
			continue
		}
		hasIncomingControl := false
		for _, e := range g.Edges {
			if e.Class == EdgeControl && e.ToID == n.ID {
				hasIncomingControl = true
				break
			}
		}
		if !hasIncomingControl {
			candidates = append(candidates, n)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return candidates[0], nil
	default:
		return nil, ErrAmbiguousDriver
	}
}

// dataAncestors returns the ids of every non-flow-control node reachable
// from nodeID's data input ports, transitively, through data edges.
func dataAncestors(g *Graph, nodeID string) []string {
	visited := make(map[string]bool)
	var order []string
	var visit func(id string)
	visit = func(id string) {
		n := g.NodeByID(id)
		if n == nil {
			return
		}
		for _, p := range n.Inputs {
			if p.Class != PortData {
				continue
			}
			for _, e := range g.InEdges(id, p.Name) {
				if visited[e.FromID] {
					continue
				}
				src := g.NodeByID(e.FromID)
				if src == nil || isFlowControl(src.ExecClass) {
					continue
				}
				visited[e.FromID] = true
				visit(e.FromID)
				order = append(order, e.FromID)
			}
		}
	}
	visit(nodeID)
	return order
}

// topoSortData Kahn-sorts the given node ids by their data-edge
// dependencies among themselves only.
func topoSortData(g *Graph, ids []string) ([]string, error) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	indegree := make(map[string]int, len(ids))
	adj := make(map[string][]string)
	for _, id := range ids {
		indegree[id] = 0
	}
	for _, e := range g.Edges {
		if e.Class != EdgeData || !set[e.FromID] || !set[e.ToID] {
			continue
		}
		adj[e.FromID] = append(adj[e.FromID], e.ToID)
		indegree[e.ToID]++
	}

	var ready []string
	for _, id := range ids {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		var newlyReady []string
		for _, next := range adj[id] {
			indegree[next]--
			if indegree[next] == 0 {
				newlyReady = append(newlyReady, next)
			}
		}
		sort.Strings(newlyReady)
		ready = append(ready, newlyReady...)
		sort.Strings(ready)
	}
	if len(order) != len(ids) {
		return nil, fmt.Errorf("schedule: data dependency cycle among %d node(s)", len(ids)-len(order))
	}
	return order, nil
}

// controlChainFrom follows control edges starting at (nodeID, port),
// visiting each reached node's own control outputs in turn, and returns the
// reached node ids in discovery order (deduplicated).
func controlChainFrom(g *Graph, nodeID, port string) []string {
	visited := make(map[string]bool)
	var order []string
	frontier := []struct{ id, port string }{{nodeID, port}}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, e := range g.OutEdges(cur.id, cur.port) {
			if visited[e.ToID] {
				continue
			}
			visited[e.ToID] = true
			order = append(order, e.ToID)
			target := g.NodeByID(e.ToID)
			if target == nil {
				continue
			}
			for _, out := range target.Outputs {
				if out.Class == PortControl {
					frontier = append(frontier, struct{ id, port string }{e.ToID, out.Name})
				}
			}
		}
	}
	return order
}

func firstControlOutput(n *IRNode) string {
	for _, p := range n.Outputs {
		if p.Class == PortControl {
			return p.Name
		}
	}
	return ""
}

func nodeIDs(nodes []*IRNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// assignVarsAndInputs assigns every scheduled node's output ports a
// variable name and resolves every input port's expression.
func assignVarsAndInputs(g *Graph, scheduledIDs []string, sched *Schedule) {
	varName := make(map[string]string) // "nodeID:port" -> variable name
	for _, id := range scheduledIDs {
		n := g.NodeByID(id)
		if n == nil {
			continue
		}
		for _, p := range n.Outputs {
			name := VarNameFor(n.Name, p.Name)
			varName[id+":"+p.Name] = name
			sched.Vars = append(sched.Vars, VarName{NodeID: id, Port: p.Name, Name: name})
		}
	}
	for _, id := range scheduledIDs {
		n := g.NodeByID(id)
		if n == nil {
			continue
		}
		for _, p := range n.Inputs {
			expr := ""
			if edges := g.InEdges(id, p.Name); len(edges) > 0 {
				e := edges[len(edges)-1]
				if name, ok := varName[e.FromID+":"+e.FromPort]; ok {
					expr = name
				}
			} else if n.ExecClass == ExecConstant && p.Class == PortData {
				if v, ok := n.StaticOutputValues[p.Name]; ok {
					expr = LiteralRepr(v)
				}
			}
			sched.Inputs = append(sched.Inputs, InputExpr{NodeID: id, Port: p.Name, Expr: expr})
		}
	}
}

// LiteralRepr renders a Go literal for a statically-known value. It covers
// the value shapes the builtin node kinds can hold as static output values;
// anything else falls back to its %#v (Go-syntax) representation.
func LiteralRepr(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprintf("%v", t)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%#v", t)
	}
}
