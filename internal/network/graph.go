package network

import (
	"errors"
	"sort"
)

// Sentinel errors for metric preconditions. They are local to the query
// that raises them and do not invalidate the graph.
var (
	ErrInvalidNetworkType = errors.New(`network type must be "coedit", "collaboration", or "talk"`)
	ErrEmptyGraph         = errors.New("graph has no edges")
	ErrDegenerateGraph    = errors.New("graph has fewer than two vertices")
	ErrNotDirected        = errors.New("measure is only defined for directed networks")
	ErrIsolatedVertex     = errors.New("vertex has no neighbors")
)

// Edge is a weighted tie between two contributors. For undirected graphs
// the orientation is canonical after CollapseWeights (From <= To).
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// Graph is a weighted graph over named contributor vertices. It is built in
// two phases: edge proposals accumulate in a staging buffer via StageEdges,
// then Finalize derives the vertex set and materializes one weight-1 edge
// per proposal. CollapseWeights merges parallel edges into summed weights.
//
// A Graph is exclusively owned by one builder invocation; no concurrent
// mutation is supported.
type Graph struct {
	directed bool
	staged   [][2]string
	names    []string
	index    map[string]int
	edges    []Edge
}

// NewGraph returns an empty graph. Directedness is fixed for the graph's
// lifetime; the talk network is directed, the others are not.
func NewGraph(directed bool) *Graph {
	return &Graph{
		directed: directed,
		index:    make(map[string]int),
	}
}

// FromEdges builds a finalized, collapsed graph directly from weighted
// edges. Used when merging partition results and when loading a persisted
// network.
func FromEdges(directed bool, edges []Edge) *Graph {
	g := NewGraph(directed)
	seen := make(map[string]bool)
	for _, e := range edges {
		seen[e.From] = true
		seen[e.To] = true
	}
	g.names = make([]string, 0, len(seen))
	for name := range seen {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	for i, name := range g.names {
		g.index[name] = i
	}
	g.edges = append(g.edges, edges...)
	g.CollapseWeights()
	return g
}

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool { return g.directed }

// StageEdges appends one proposal per target, paired with from. Vertices
// are inferred later by Finalize; nothing is validated here and the
// committed graph is not touched.
func (g *Graph) StageEdges(from string, to []string) {
	for _, t := range to {
		g.staged = append(g.staged, [2]string{from, t})
	}
}

// Finalize derives the vertex set from all staged endpoints, in sorted
// order, then inserts one weight-1 edge per proposal. The sorted order is
// load-bearing: it gives deterministic vertex indexing across runs.
// CollapseWeights must follow to reach the canonical representation; the
// intermediate multigraph stays observable for debugging.
func (g *Graph) Finalize() {
	seen := make(map[string]bool, len(g.staged)*2)
	for _, p := range g.staged {
		seen[p[0]] = true
		seen[p[1]] = true
	}
	g.names = make([]string, 0, len(seen))
	for name := range seen {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	g.index = make(map[string]int, len(g.names))
	for i, name := range g.names {
		g.index[name] = i
	}
	g.edges = make([]Edge, 0, len(g.staged))
	for _, p := range g.staged {
		g.edges = append(g.edges, Edge{From: p[0], To: p[1], Weight: 1})
	}
	g.staged = nil
}

// CollapseWeights replaces every set of parallel edges sharing the same
// endpoint pair (unordered for undirected graphs) with a single edge whose
// weight is the sum. Idempotent. Collapsed edges keep the first-seen order;
// undirected edges come out with From <= To.
func (g *Graph) CollapseWeights() {
	type key struct{ from, to string }
	pos := make(map[key]int, len(g.edges))
	out := g.edges[:0]
	for _, e := range g.edges {
		from, to := e.From, e.To
		if !g.directed && from > to {
			from, to = to, from
		}
		k := key{from, to}
		if i, ok := pos[k]; ok {
			out[i].Weight += e.Weight
			continue
		}
		pos[k] = len(out)
		out = append(out, Edge{From: from, To: to, Weight: e.Weight})
	}
	g.edges = out
}

// Vertices returns the vertex names in their canonical sorted order.
func (g *Graph) Vertices() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.names) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasVertex reports whether name is a vertex of the graph.
func (g *Graph) HasVertex(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Weight returns the total weight between two vertices, respecting
// direction for directed graphs. ok is false when no such edge exists.
func (g *Graph) Weight(from, to string) (int, bool) {
	total := 0
	found := false
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			total += e.Weight
			found = true
		} else if !g.directed && e.From == to && e.To == from {
			total += e.Weight
			found = true
		}
	}
	return total, found
}

// Neighbors returns the vertices adjacent to name, in either direction,
// excluding name itself. The result is sorted.
func (g *Graph) Neighbors(name string) []string {
	seen := make(map[string]bool)
	for _, e := range g.edges {
		if e.From == name && e.To != name {
			seen[e.To] = true
		}
		if e.To == name && e.From != name {
			seen[e.From] = true
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Subgraph returns the subgraph induced by the given vertices. Names that
// are not vertices of the graph are silently dropped.
func (g *Graph) Subgraph(vertices []string) *Graph {
	keep := make(map[string]bool, len(vertices))
	for _, v := range vertices {
		if g.HasVertex(v) {
			keep[v] = true
		}
	}
	sub := NewGraph(g.directed)
	sub.names = make([]string, 0, len(keep))
	for name := range keep {
		sub.names = append(sub.names, name)
	}
	sort.Strings(sub.names)
	for i, name := range sub.names {
		sub.index[name] = i
	}
	for _, e := range g.edges {
		if keep[e.From] && keep[e.To] {
			sub.edges = append(sub.edges, e)
		}
	}
	return sub
}

// MergeGraphs folds per-partition graphs into one by summing edge weights
// per canonical endpoint pair. The merge is commutative and associative, so
// partitioned builds combined here equal a single whole-stream build. All
// inputs must share directedness.
func MergeGraphs(graphs ...*Graph) (*Graph, error) {
	if len(graphs) == 0 {
		return nil, errors.New("merge: no graphs given")
	}
	directed := graphs[0].directed
	var edges []Edge
	for _, g := range graphs {
		if g.directed != directed {
			return nil, errors.New("merge: graphs disagree on directedness")
		}
		edges = append(edges, g.edges...)
	}
	return FromEdges(directed, edges), nil
}
