//go:build e2e

package e2e

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimetrics/editnet/internal/export"
	"github.com/wikimetrics/editnet/internal/network"
)

var update = flag.Bool("update", false, "update golden files")

// goldenDir returns the path to the testdata/golden directory.
func goldenDir() string {
	return filepath.Join("..", "..", "testdata", "golden")
}

// renderCoeditEdgeList builds the coedit network from the fixture and
// renders its edge list. Edge order is the builder's first-seen order, so
// the output is deterministic.
func renderCoeditEdgeList(t *testing.T) []byte {
	t.Helper()

	edits := importFixture(t)
	g, err := network.Build(edits, network.Options{Type: network.Coedit})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteEdgeList(&buf, g))
	return buf.Bytes()
}

// TestGolden compares the exported edge list against the golden file. If
// the golden file does not exist, the test is skipped with a message to run
// with -update.
func TestGolden(t *testing.T) {
	actual := renderCoeditEdgeList(t)

	goldenPath := filepath.Join(goldenDir(), "coedit_edges.csv")
	golden, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Skip("golden file coedit_edges.csv not found; run with -update to generate")
		return
	}
	require.NoError(t, err)

	assert.Equal(t, string(golden), string(actual),
		"edge list does not match golden file")
}

// TestUpdateGolden regenerates golden files from the current output.
// Run with: go test -tags e2e -run TestUpdateGolden ./internal/e2e/ -update
func TestUpdateGolden(t *testing.T) {
	if !*update {
		t.Skip("skipping golden file update; run with -update flag")
	}

	actual := renderCoeditEdgeList(t)

	require.NoError(t, os.MkdirAll(goldenDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir(), "coedit_edges.csv"), actual, 0o644))
	t.Logf("updated coedit_edges.csv")
}
