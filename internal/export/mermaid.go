package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wikimetrics/editnet/internal/network"
)

// GenerateMermaid produces a Mermaid graph TD diagram of the network's
// strongest ties. Edges are kept in descending weight order until maxEdges
// is reached; maxEdges <= 0 keeps everything. Large networks make
// unreadable diagrams otherwise.
func GenerateMermaid(g *network.Graph, maxEdges int) string {
	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight > edges[j].Weight })
	if maxEdges > 0 && len(edges) > maxEdges {
		edges = edges[:maxEdges]
	}

	// Build vertex → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(name string) string {
		if id, ok := nodeIDs[name]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[name] = id
		return id
	}

	arrow := " ---"
	if g.Directed() {
		arrow = " -->"
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var declared []string
	for _, e := range edges {
		for _, v := range []string{e.From, e.To} {
			if _, ok := nodeIDs[v]; !ok {
				declared = append(declared, fmt.Sprintf("  %s[\"%s\"]\n", getID(v), v))
			}
		}
	}
	for _, d := range declared {
		sb.WriteString(d)
	}
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %s%s|%d| %s\n", nodeIDs[e.From], arrow, e.Weight, nodeIDs[e.To]))
	}
	return sb.String()
}
