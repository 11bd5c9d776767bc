package netgraph

import (
	"fmt"
	"math/rand"
)

// ScaleFree builds a Barabási–Albert preferential-attachment graph on n
// nodes: each new node attaches to m existing nodes chosen with probability
// proportional to their current degree. The result is connected with a
// heavy-tailed degree distribution.
func ScaleFree(n, m int, rng *rand.Rand) (*Graph, error) {
	if m < 1 || m >= n {
		return nil, fmt.Errorf("scale-free network requires 1 <= m < n, got m=%d n=%d", m, n)
	}

	g := New(n)

	// repeated holds every edge endpoint once per incidence, so uniform
	// sampling from it is degree-weighted sampling.
	repeated := make([]int, 0, 2*m*(n-m))

	// The first new node attaches to the m seed nodes.
	targets := make([]int, m)
	for i := range targets {
		targets[i] = i
	}

	for v := m; v < n; v++ {
		for _, t := range targets {
			g.AddEdge(v, t)
			repeated = append(repeated, v, t)
		}
		targets = distinctSample(repeated, m, rng)
	}

	return g, nil
}

// distinctSample draws m distinct values from pool, sampling uniformly with
// replacement until m distinct ones have been seen.
func distinctSample(pool []int, m int, rng *rand.Rand) []int {
	seen := make(map[int]struct{}, m)
	out := make([]int, 0, m)
	for len(out) < m {
		v := pool[rng.Intn(len(pool))]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
