package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2004, 5, 1, 12, 0, 0, 0, time.UTC)

// edit builds an article-namespace EditRecord offset from t0 by the given
// duration.
func edit(page, editor string, offset time.Duration) EditRecord {
	return EditRecord{
		Editor:    editor,
		PageID:    page,
		Namespace: "0",
		Title:     "Page " + page,
		Timestamp: t0.Add(offset),
	}
}

// talkEdit builds a talk-namespace EditRecord.
func talkEdit(page, editor, namespace, title string, offset time.Duration) EditRecord {
	return EditRecord{
		Editor:    editor,
		PageID:    page,
		Namespace: namespace,
		Title:     title,
		Timestamp: t0.Add(offset),
	}
}

func TestBuild_InvalidNetworkType(t *testing.T) {
	_, err := Build(nil, Options{Type: "friendship"})
	assert.ErrorIs(t, err, ErrInvalidNetworkType)
}

func TestBuild_Coedit_ConnectsAllEarlierEditors(t *testing.T) {
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
		edit("1", "C", 2*time.Minute),
	}
	g, err := Build(edits, Options{Type: Coedit})
	require.NoError(t, err)

	assert.False(t, g.Directed())
	want := map[[2]string]int{
		{"A", "B"}: 1,
		{"A", "C"}: 1,
		{"B", "C"}: 1,
	}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Coedit_RepeatContactIncrementsWeight(t *testing.T) {
	// A's second edit stops at its own earlier edit, so only the B tie is
	// proposed again: A–B accumulates to 2.
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
		edit("1", "A", 2*time.Minute),
	}
	g, err := Build(edits, Options{Type: Coedit})
	require.NoError(t, err)

	want := map[[2]string]int{{"A", "B"}: 2}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Coedit_EditorLimit(t *testing.T) {
	// With editorLimit=1, C only reaches the nearest earlier editor B.
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
		edit("1", "C", 2*time.Minute),
	}
	g, err := Build(edits, Options{Type: Coedit, EditorLimit: 1})
	require.NoError(t, err)

	want := map[[2]string]int{
		{"A", "B"}: 1,
		{"B", "C"}: 1,
	}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Coedit_EditLimit(t *testing.T) {
	// editLimit=1 keeps only the single most recent prior edit in scope.
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
		edit("1", "C", 2*time.Minute),
		edit("1", "D", 3*time.Minute),
	}
	g, err := Build(edits, Options{Type: Coedit, EditLimit: 1})
	require.NoError(t, err)

	want := map[[2]string]int{
		{"A", "B"}: 1,
		{"B", "C"}: 1,
		{"C", "D"}: 1,
	}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Coedit_TimeLimit(t *testing.T) {
	// C arrives 49h after B; with a 24h window the scan stops immediately
	// and the stale entries are dropped, so the later D only reaches C.
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Hour),
		edit("1", "C", 50*time.Hour),
		edit("1", "D", 50*time.Hour+30*time.Minute),
	}
	g, err := Build(edits, Options{Type: Coedit, TimeLimit: 24 * time.Hour})
	require.NoError(t, err)

	want := map[[2]string]int{
		{"A", "B"}: 1,
		{"C", "D"}: 1,
	}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Coedit_SkipsTalkPages(t *testing.T) {
	edits := []EditRecord{
		talkEdit("9", "A", "1", "Talk:Something", 0),
		talkEdit("9", "B", "1", "Talk:Something", time.Minute),
	}
	g, err := Build(edits, Options{Type: Coedit})
	require.NoError(t, err)
	assert.Zero(t, g.VertexCount())
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_Coedit_PageBoundaryResetsWindow(t *testing.T) {
	// A and B share page 1; C and D share page 2. No cross-page ties.
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
		edit("2", "C", 2*time.Minute),
		edit("2", "D", 3*time.Minute),
	}
	g, err := Build(edits, Options{Type: Coedit})
	require.NoError(t, err)

	want := map[[2]string]int{
		{"A", "B"}: 1,
		{"C", "D"}: 1,
	}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Collaboration_RequiresReturnCycle(t *testing.T) {
	// No editor returns, so no edges at all.
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
		edit("1", "C", 2*time.Minute),
	}
	g, err := Build(edits, Options{Type: Collaboration})
	require.NoError(t, err)
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_Collaboration_ReturnConnectsInterveningEditors(t *testing.T) {
	// A returns after B and C edited: A ties to both. The scan stops at
	// A's own earlier edit.
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
		edit("1", "C", 2*time.Minute),
		edit("1", "A", 3*time.Minute),
	}
	g, err := Build(edits, Options{Type: Collaboration})
	require.NoError(t, err)

	want := map[[2]string]int{
		{"A", "B"}: 1,
		{"A", "C"}: 1,
	}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Talk_UserTalkOwnerEdge(t *testing.T) {
	// The very first post to someone's user-talk page still addresses the
	// owner even though the page window is empty.
	edits := []EditRecord{
		talkEdit("7", "bob", "3", "User talk:alice", 0),
	}
	g, err := Build(edits, Options{Type: Talk})
	require.NoError(t, err)

	require.True(t, g.Directed())
	w, ok := g.Weight("bob", "alice")
	require.True(t, ok)
	assert.Equal(t, 1, w)
	_, ok = g.Weight("alice", "bob")
	assert.False(t, ok, "talk edges are directed at the owner")
}

func TestBuild_Talk_OwnerAndDiscussantEdges(t *testing.T) {
	edits := []EditRecord{
		talkEdit("7", "bob", "3", "User talk:alice", 0),
		talkEdit("7", "carol", "3", "User talk:alice", time.Minute),
	}
	g, err := Build(edits, Options{Type: Talk})
	require.NoError(t, err)

	want := map[[2]string]int{
		{"bob", "alice"}:   1,
		{"carol", "alice"}: 1,
		{"carol", "bob"}:   1,
	}
	assert.Equal(t, want, edgeWeights(t, g))
}

func TestBuild_Talk_NoSelfEdgeOnOwnTalkPage(t *testing.T) {
	edits := []EditRecord{
		talkEdit("7", "alice", "3", "User talk:alice", 0),
	}
	g, err := Build(edits, Options{Type: Talk})
	require.NoError(t, err)
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_Talk_SkipsArticlePages(t *testing.T) {
	edits := []EditRecord{
		edit("1", "A", 0),
		edit("1", "B", time.Minute),
	}
	g, err := Build(edits, Options{Type: Talk})
	require.NoError(t, err)
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_SectionFilter(t *testing.T) {
	withComment := func(e EditRecord, comment string) EditRecord {
		e.Comment = comment
		return e
	}
	edits := []EditRecord{
		withComment(edit("1", "A", 0), "/* Intro */ fix typo"),
		withComment(edit("1", "B", time.Minute), "/* Intro */ expand"),
		withComment(edit("1", "C", 2*time.Minute), "/* History */ new source"),
		edit("1", "D", 3*time.Minute), // no comment, no label
	}

	g, err := Build(edits, Options{Type: Coedit, SectionFilter: true})
	require.NoError(t, err)

	// Only A and B share a label; edits without an extractable label match
	// nothing while the filter is on.
	want := map[[2]string]int{{"A", "B"}: 1}
	assert.Equal(t, want, edgeWeights(t, g))

	// The same stream without the filter connects everyone.
	g, err = Build(edits, Options{Type: Coedit})
	require.NoError(t, err)
	assert.Equal(t, 6, g.EdgeCount())
}

func TestBuild_EmptyStream(t *testing.T) {
	g, err := Build(nil, Options{Type: Coedit})
	require.NoError(t, err)
	assert.Zero(t, g.VertexCount())
	_, err = g.AverageWeight()
	assert.ErrorIs(t, err, ErrEmptyGraph)
}
