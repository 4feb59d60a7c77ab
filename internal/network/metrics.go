package network

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// AverageWeight returns the mean edge weight. A graph with no edges has no
// mean; that surfaces as ErrEmptyGraph rather than a NaN.
func (g *Graph) AverageWeight() (float64, error) {
	if len(g.edges) == 0 {
		return 0, ErrEmptyGraph
	}
	weights := make([]float64, len(g.edges))
	for i, e := range g.edges {
		weights[i] = float64(e.Weight)
	}
	return stat.Mean(weights, nil), nil
}

// Betweenness returns the shortest-path betweenness centrality of a single
// vertex. See BetweennessAll for the normalization rule.
func (g *Graph) Betweenness(vertex string, normalized bool) (float64, error) {
	vals, err := g.BetweennessAll([]string{vertex}, normalized)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// BetweennessAll returns shortest-path betweenness centrality for the given
// vertices (all vertices when nil), in request order. Paths are unweighted.
//
// When normalized, each value x maps to x * 2/(n²−3n+2), matching the
// normalization convention of the R igraph package.
// Normalization is undefined for n < 2 and fails with ErrDegenerateGraph.
func (g *Graph) BetweennessAll(vertices []string, normalized bool) ([]float64, error) {
	n := len(g.names)
	if normalized && n < 2 {
		return nil, fmt.Errorf("betweenness normalization: %w", ErrDegenerateGraph)
	}
	if vertices == nil {
		vertices = g.names
	}
	all := g.brandes()
	out := make([]float64, len(vertices))
	for i, v := range vertices {
		idx, ok := g.index[v]
		if !ok {
			return nil, fmt.Errorf("betweenness: unknown vertex %q", v)
		}
		x := all[idx]
		if normalized && x != 0 {
			// x == 0 short-circuits so the n == 2 case never divides by zero.
			x = x * 2 / float64(n*n-3*n+2)
		}
		out[i] = x
	}
	return out, nil
}

// brandes computes raw betweenness for every vertex using Brandes'
// algorithm over unweighted BFS shortest paths. For undirected graphs each
// vertex pair is counted once, so the accumulated values are halved.
func (g *Graph) brandes() []float64 {
	n := len(g.names)
	adj := g.adjacency()
	cb := make([]float64, n)

	stack := make([]int, 0, n)
	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	pred := make([][]int, n)

	for s := 0; s < n; s++ {
		stack = stack[:0]
		for i := 0; i < n; i++ {
			sigma[i] = 0
			dist[i] = -1
			delta[i] = 0
			pred[i] = pred[i][:0]
		}
		sigma[s] = 1
		dist[s] = 0

		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range adj[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		// Back-propagation of pair dependencies.
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	if !g.directed {
		for i := range cb {
			cb[i] /= 2
		}
	}
	return cb
}

// Hierarchy returns Krackhardt's hierarchy measure: the fraction of
// reachable ordered vertex pairs (i,j) whose reverse pair (j,i) is not also
// reachable. Only defined for directed graphs. defined is false when the
// graph has no reachable pairs at all, which is distinct from a ratio of
// zero.
func (g *Graph) Hierarchy() (ratio float64, defined bool, err error) {
	if !g.directed {
		return 0, false, fmt.Errorf("hierarchy: %w", ErrNotDirected)
	}
	n := len(g.names)
	adj := g.adjacency()

	// reach[i][j]: a finite-length path i→j exists.
	reach := make([][]bool, n)
	for s := 0; s < n; s++ {
		reach[s] = make([]bool, n)
		queue := []int{s}
		reach[s][s] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range adj[v] {
				if !reach[s][w] {
					reach[s][w] = true
					queue = append(queue, w)
				}
			}
		}
	}

	hierarchical, cyclical := 0, 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || !reach[i][j] {
				continue
			}
			if reach[j][i] {
				cyclical++
			} else {
				hierarchical++
			}
		}
	}
	if hierarchical == 0 && cyclical == 0 {
		return 0, false, nil
	}
	return float64(hierarchical) / float64(hierarchical+cyclical), true, nil
}

// EffectiveSize returns Burt's effective size of a vertex's ego network:
// the number of direct neighbors minus their mean degree within the
// subgraph induced by those neighbors (the ego itself excluded). A vertex
// with no neighbors fails with ErrIsolatedVertex.
func (g *Graph) EffectiveSize(vertex string) (float64, error) {
	if !g.HasVertex(vertex) {
		return 0, fmt.Errorf("effective size: unknown vertex %q", vertex)
	}
	neighbors := g.Neighbors(vertex)
	if len(neighbors) == 0 {
		return 0, fmt.Errorf("effective size of %q: %w", vertex, ErrIsolatedVertex)
	}
	sub := g.Subgraph(neighbors)
	degree := make([]float64, len(sub.names))
	for _, e := range sub.edges {
		degree[sub.index[e.From]]++
		degree[sub.index[e.To]]++
	}
	return float64(len(neighbors)) - stat.Mean(degree, nil), nil
}

// adjacency builds the out-neighbor lists used by the metric queries,
// deduplicating parallel edges. Undirected edges appear in both lists.
func (g *Graph) adjacency() [][]int {
	n := len(g.names)
	adj := make([][]int, n)
	seen := make(map[[2]int]bool, len(g.edges))
	add := func(a, b int) {
		if a == b || seen[[2]int{a, b}] {
			return
		}
		seen[[2]int{a, b}] = true
		adj[a] = append(adj[a], b)
	}
	for _, e := range g.edges {
		f, t := g.index[e.From], g.index[e.To]
		add(f, t)
		if !g.directed {
			add(t, f)
		}
	}
	return adj
}
