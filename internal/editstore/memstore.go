package editstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wikimetrics/editnet/internal/network"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu     sync.RWMutex
	byPage map[string][]network.EditRecord
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{byPage: make(map[string][]network.EditRecord)}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddEdit stores an edit record under its page.
func (m *MemStore) AddEdit(_ context.Context, edit network.EditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPage[edit.PageID] = append(m.byPage[edit.PageID], edit)
	return nil
}

// EditsByPage returns the time-ordered edits of one page within the range.
func (m *MemStore) EditsByPage(_ context.Context, pageID string, from, to time.Time) ([]network.EditRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return orderedPageEdits(m.byPage[pageID], from, to), nil
}

// AllEdits returns every stored edit grouped by page (pages in sorted
// order) and time-ordered within each page.
func (m *MemStore) AllEdits(_ context.Context, from, to time.Time) ([]network.EditRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pages := make([]string, 0, len(m.byPage))
	for p := range m.byPage {
		pages = append(pages, p)
	}
	sort.Strings(pages)

	var out []network.EditRecord
	for _, p := range pages {
		out = append(out, orderedPageEdits(m.byPage[p], from, to)...)
	}
	return out, nil
}

// Stats returns edit, page, and editor counts.
func (m *MemStore) Stats(_ context.Context) (*StoreStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	editors := make(map[string]bool)
	edits := 0
	for _, page := range m.byPage {
		edits += len(page)
		for _, e := range page {
			editors[e.Editor] = true
		}
	}
	return &StoreStats{
		EditCount:   edits,
		PageCount:   len(m.byPage),
		EditorCount: len(editors),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// orderedPageEdits filters one page's edits to the range and sorts them by
// timestamp, preserving insertion order for equal timestamps.
func orderedPageEdits(edits []network.EditRecord, from, to time.Time) []network.EditRecord {
	var out []network.EditRecord
	for _, e := range edits {
		if inRange(e.Timestamp, from, to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
