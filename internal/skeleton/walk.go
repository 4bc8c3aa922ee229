package skeleton

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// graph is the filtered skeleton: node positions plus undirected adjacency.
// Node ids are dense and deterministic for a given input.
type graph struct {
	pos []r2.Vec
	adj map[int][]int
}

func newGraph() *graph {
	return &graph{adj: make(map[int][]int)}
}

func (g *graph) addEdge(a, b int) {
	for _, n := range g.adj[a] {
		if n == b {
			return
		}
	}
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

func (g *graph) sortAdjacency() {
	for _, ns := range g.adj {
		sort.Ints(ns)
	}
}

func (g *graph) degree(n int) int {
	return len(g.adj[n])
}

// walk decomposes the graph into maximal chains. Nodes of degree != 2 are
// chain terminals; chains run terminal to terminal through degree-2 interior
// nodes. Any leftover pure cycles are emitted as closed chains. Traversal
// order is ascending node id, then ascending neighbour id, so the output is
// deterministic.
func (g *graph) walk() [][]int {
	used := make(map[[2]int]bool)
	take := func(a, b int) bool {
		k := edgeKey(a, b)
		if used[k] {
			return false
		}
		used[k] = true
		return true
	}

	var nodes []int
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	var chains [][]int
	trace := func(start, next int) []int {
		path := []int{start, next}
		prev, cur := start, next
		for g.degree(cur) == 2 {
			var fwd int
			if g.adj[cur][0] == prev {
				fwd = g.adj[cur][1]
			} else {
				fwd = g.adj[cur][0]
			}
			if !take(cur, fwd) {
				break
			}
			path = append(path, fwd)
			prev, cur = cur, fwd
		}
		return path
	}

	for _, n := range nodes {
		if g.degree(n) == 2 {
			continue
		}
		for _, nb := range g.adj[n] {
			if take(n, nb) {
				chains = append(chains, trace(n, nb))
			}
		}
	}

	// Remaining unused edges belong to cycles of degree-2 nodes.
	for _, n := range nodes {
		for _, nb := range g.adj[n] {
			if take(n, nb) {
				chains = append(chains, trace(n, nb))
			}
		}
	}
	return chains
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
