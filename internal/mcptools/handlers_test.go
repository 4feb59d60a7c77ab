package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimetrics/editnet/internal/editstore"
	"github.com/wikimetrics/editnet/internal/netstore"
	"github.com/wikimetrics/editnet/internal/network"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newTestService creates a Service over in-memory stores, seeded with one
// page edited by three editors in turn.
func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	edits := editstore.NewMemStore()
	require.NoError(t, edits.InitSchema(ctx))

	base := time.Date(2004, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, editor := range []string{"ann", "bea", "cal"} {
		require.NoError(t, edits.AddEdit(ctx, network.EditRecord{
			Editor:    editor,
			PageID:    "100",
			Namespace: "0",
			Title:     "Sandbox",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	return NewService(edits, netstore.NewMemStore())
}

// buildTestNetwork runs the build_network tool and fails the test on error.
func buildTestNetwork(t *testing.T, svc *Service, name string) {
	t.Helper()
	_, out, err := svc.BuildNetwork(context.Background(), nil, BuildNetworkInput{
		Name:        name,
		NetworkType: "coedit",
	})
	require.NoError(t, err)
	require.Equal(t, name, out.Meta.Name)
}

// ---------------------------------------------------------------------------
// import_edits
// ---------------------------------------------------------------------------

func TestImportEdits(t *testing.T) {
	svc := NewService(editstore.NewMemStore(), netstore.NewMemStore())

	csvPath := filepath.Join(t.TempDir(), "edits.csv")
	content := "editor,articleid,namespace,title,comment,date_time\n" +
		"ann,100,0,Sandbox,,2004-05-01 12:00:00\n" +
		"bea,100,0,Sandbox,,2004-05-01 13:00:00\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	_, out, err := svc.ImportEdits(context.Background(), nil, ImportEditsInput{CSVPath: csvPath})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, 2, out.Stats.EditCount)
	assert.Equal(t, 1, out.Stats.PageCount)
}

func TestImportEdits_MissingPath(t *testing.T) {
	svc := NewService(editstore.NewMemStore(), netstore.NewMemStore())
	_, _, err := svc.ImportEdits(context.Background(), nil, ImportEditsInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csvPath")
}

// ---------------------------------------------------------------------------
// build_network
// ---------------------------------------------------------------------------

func TestBuildNetwork(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.BuildNetwork(context.Background(), nil, BuildNetworkInput{
		Name:        "sandbox",
		NetworkType: "coedit",
	})
	require.NoError(t, err)
	assert.Equal(t, network.Coedit, out.Meta.Type)
	assert.False(t, out.Meta.Directed)
	assert.Equal(t, 3, out.Meta.VertexCount)
	assert.Equal(t, 3, out.Meta.EdgeCount)
}

func TestBuildNetwork_InvalidType(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.BuildNetwork(context.Background(), nil, BuildNetworkInput{
		Name:        "bad",
		NetworkType: "friendship",
	})
	require.ErrorIs(t, err, network.ErrInvalidNetworkType)
}

func TestBuildNetwork_TimeBounds(t *testing.T) {
	svc := newTestService(t)
	// Only the first two edits fall inside the bound, leaving a single tie.
	_, out, err := svc.BuildNetwork(context.Background(), nil, BuildNetworkInput{
		Name:        "bounded",
		NetworkType: "coedit",
		To:          "2004-05-01 14:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Meta.VertexCount)
	assert.Equal(t, 1, out.Meta.EdgeCount)
}

// ---------------------------------------------------------------------------
// network_stats
// ---------------------------------------------------------------------------

func TestNetworkStats(t *testing.T) {
	svc := newTestService(t)
	buildTestNetwork(t, svc, "sandbox")

	_, out, err := svc.NetworkStats(context.Background(), nil, NetworkStatsInput{Name: "sandbox"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Meta.VertexCount)
	require.NotNil(t, out.AverageWeight)
	assert.Equal(t, 1.0, *out.AverageWeight)
	// Undirected network: hierarchy does not apply.
	assert.Nil(t, out.Hierarchy)
}

func TestNetworkStats_UnknownName(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.NetworkStats(context.Background(), nil, NetworkStatsInput{Name: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no network named")
}

// ---------------------------------------------------------------------------
// editor_metrics
// ---------------------------------------------------------------------------

func TestEditorMetrics(t *testing.T) {
	svc := newTestService(t)
	buildTestNetwork(t, svc, "sandbox")

	_, out, err := svc.EditorMetrics(context.Background(), nil, EditorMetricsInput{
		Name:   "sandbox",
		Editor: "bea",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Degree)
	require.NotNil(t, out.Betweenness)
	assert.Equal(t, 0.0, *out.Betweenness)
	require.NotNil(t, out.EffectiveSize)
	assert.Equal(t, 1.0, *out.EffectiveSize)
}

func TestEditorMetrics_UnknownEditor(t *testing.T) {
	svc := newTestService(t)
	buildTestNetwork(t, svc, "sandbox")
	_, _, err := svc.EditorMetrics(context.Background(), nil, EditorMetricsInput{
		Name:   "sandbox",
		Editor: "zed",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in network")
}
