// Package export renders finalized contributor networks as JSON
// documents, edge-list CSV and Mermaid diagrams.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/wikimetrics/editnet/internal/network"
)

// NetworkExport is the top-level JSON export structure.
type NetworkExport struct {
	Name       string              `json:"name"`
	Type       network.NetworkType `json:"type"`
	Directed   bool                `json:"directed"`
	ExportedAt string              `json:"exportedAt"`
	Vertices   []string            `json:"vertices"`
	Edges      []network.Edge      `json:"edges"`
}

// BuildExport assembles a NetworkExport from a finalized graph.
func BuildExport(name string, typ network.NetworkType, g *network.Graph) *NetworkExport {
	return &NetworkExport{
		Name:       name,
		Type:       typ,
		Directed:   g.Directed(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Vertices:   g.Vertices(),
		Edges:      g.Edges(),
	}
}

// WriteJSON writes the export as indented JSON.
func WriteJSON(w io.Writer, ex *NetworkExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ex); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// WriteEdgeList writes the graph as a source,target,weight CSV, one row
// per collapsed tie.
func WriteEdgeList(w io.Writer, g *network.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "target", "weight"}); err != nil {
		return fmt.Errorf("export edge list: %w", err)
	}
	for _, e := range g.Edges() {
		if err := cw.Write([]string{e.From, e.To, strconv.Itoa(e.Weight)}); err != nil {
			return fmt.Errorf("export edge list: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
