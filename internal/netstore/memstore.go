package netstore

import (
	"context"
	"sort"
	"sync"

	"github.com/wikimetrics/editnet/internal/network"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store in memory. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu       sync.RWMutex
	networks map[string]savedNetwork
}

type savedNetwork struct {
	meta  NetworkMeta
	edges []network.Edge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{networks: make(map[string]savedNetwork)}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// SaveNetwork stores the graph's edges under meta.Name.
func (m *MemStore) SaveNetwork(_ context.Context, meta NetworkMeta, g *network.Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.networks[meta.Name] = savedNetwork{
		meta:  metaFor(meta, g),
		edges: g.Edges(),
	}
	return nil
}

// LoadNetwork rebuilds a stored graph, or returns nils when absent.
func (m *MemStore) LoadNetwork(_ context.Context, name string) (*NetworkMeta, *network.Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	saved, ok := m.networks[name]
	if !ok {
		return nil, nil, nil
	}
	meta := saved.meta
	return &meta, network.FromEdges(meta.Directed, saved.edges), nil
}

// ListNetworks returns stored metadata sorted by name.
func (m *MemStore) ListNetworks(_ context.Context) ([]NetworkMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]NetworkMeta, 0, len(m.networks))
	for _, saved := range m.networks {
		out = append(out, saved.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
