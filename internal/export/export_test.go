package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimetrics/editnet/internal/network"
)

func sampleGraph() *network.Graph {
	return network.FromEdges(false, []network.Edge{
		{From: "ann", To: "bea", Weight: 3},
		{From: "bea", To: "cal", Weight: 1},
	})
}

func TestBuildExport(t *testing.T) {
	ex := BuildExport("may-coedit", network.Coedit, sampleGraph())
	assert.Equal(t, "may-coedit", ex.Name)
	assert.Equal(t, network.Coedit, ex.Type)
	assert.False(t, ex.Directed)
	assert.Equal(t, []string{"ann", "bea", "cal"}, ex.Vertices)
	require.Len(t, ex.Edges, 2)
	assert.NotEmpty(t, ex.ExportedAt)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, BuildExport("n", network.Talk, sampleGraph())))

	var got NetworkExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "n", got.Name)
	assert.Equal(t, network.Talk, got.Type)
	require.Len(t, got.Edges, 2)
	assert.Equal(t, 3, got.Edges[0].Weight)
}

func TestWriteEdgeList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEdgeList(&buf, sampleGraph()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "source,target,weight", lines[0])
	assert.Contains(t, lines, "ann,bea,3")
	assert.Contains(t, lines, "bea,cal,1")
}

func TestGenerateMermaid_Undirected(t *testing.T) {
	out := GenerateMermaid(sampleGraph(), 0)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `N0["ann"]`)
	assert.Contains(t, out, "N0 ---|3| N1")
	assert.Contains(t, out, "---|1|")
	assert.NotContains(t, out, "-->")
}

func TestGenerateMermaid_DirectedAndCapped(t *testing.T) {
	g := network.FromEdges(true, []network.Edge{
		{From: "ann", To: "bea", Weight: 5},
		{From: "bea", To: "cal", Weight: 1},
	})
	out := GenerateMermaid(g, 1)
	assert.Contains(t, out, "-->|5|")
	// Weight-1 tie falls below the cap.
	assert.NotContains(t, out, "|1|")
	assert.NotContains(t, out, "cal")
}
