// Package netgraph provides the undirected social network the agents live
// on: adjacency lookups plus the tie additions and removals driven by
// incarceration rewiring.
package netgraph

import "slices"

// Graph is an undirected simple graph over node ids 0..n-1.
// No self-loops, no parallel edges; edge existence is symmetric by
// construction because both endpoint sets are updated together.
type Graph struct {
	adj   []map[int]struct{}
	edges int
}

// New creates an empty graph on n nodes.
func New(n int) *Graph {
	adj := make([]map[int]struct{}, n)
	for i := range adj {
		adj[i] = make(map[int]struct{})
	}
	return &Graph{adj: adj}
}

// N returns the number of nodes.
func (g *Graph) N() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Degree returns the number of neighbors of node id.
func (g *Graph) Degree(id int) int {
	if !g.valid(id) {
		return 0
	}
	return len(g.adj[id])
}

// Neighbors returns the neighbor ids of node id in ascending order.
// The sorted order keeps iteration over ties deterministic for a fixed seed.
func (g *Graph) Neighbors(id int) []int {
	if !g.valid(id) {
		return nil
	}
	out := make([]int, 0, len(g.adj[id]))
	for nbr := range g.adj[id] {
		out = append(out, nbr)
	}
	slices.Sort(out)
	return out
}

// HasEdge reports whether an edge between a and b exists.
func (g *Graph) HasEdge(a, b int) bool {
	if !g.valid(a) || !g.valid(b) {
		return false
	}
	_, ok := g.adj[a][b]
	return ok
}

// AddEdge inserts the undirected edge {a,b}. Self-loops and duplicates are
// rejected; returns true only if a new edge was created.
func (g *Graph) AddEdge(a, b int) bool {
	if a == b || !g.valid(a) || !g.valid(b) {
		return false
	}
	if _, ok := g.adj[a][b]; ok {
		return false
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	g.edges++
	return true
}

// RemoveEdge deletes the undirected edge {a,b}. No-op if absent.
func (g *Graph) RemoveEdge(a, b int) bool {
	if !g.valid(a) || !g.valid(b) {
		return false
	}
	if _, ok := g.adj[a][b]; !ok {
		return false
	}
	delete(g.adj[a], b)
	delete(g.adj[b], a)
	g.edges--
	return true
}

func (g *Graph) valid(id int) bool {
	return id >= 0 && id < len(g.adj)
}
