// Package editstore supplies ordered edit records to the network builder.
//
// Every implementation guarantees the builder's precondition at the source:
// records come back grouped by page and ordered by non-decreasing timestamp
// within each page.
package editstore

import (
	"context"
	"io"
	"time"

	"github.com/wikimetrics/editnet/internal/network"
)

// Store is the interface for edit record access.
// Implementations: SQLiteStore (production), MemStore (testing).
type Store interface {
	io.Closer

	// Schema setup — called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddEdit(ctx context.Context, edit network.EditRecord) error

	// Read operations. Zero from/to times mean unbounded. Results are
	// grouped by page and time-ordered within each page.
	EditsByPage(ctx context.Context, pageID string, from, to time.Time) ([]network.EditRecord, error)
	AllEdits(ctx context.Context, from, to time.Time) ([]network.EditRecord, error)

	// Stats.
	Stats(ctx context.Context) (*StoreStats, error)
}

// StoreStats summarizes the contents of an edit store.
type StoreStats struct {
	EditCount   int `json:"editCount"`
	PageCount   int `json:"pageCount"`
	EditorCount int `json:"editorCount"`
}

// inRange reports whether ts falls inside the [from, to) range, where a
// zero bound is open.
func inRange(ts, from, to time.Time) bool {
	if !from.IsZero() && ts.Before(from) {
		return false
	}
	if !to.IsZero() && !ts.Before(to) {
		return false
	}
	return true
}
