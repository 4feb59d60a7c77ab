// Package netstore persists finalized contributor networks so metric
// queries and exports can run without replaying the edit stream.
package netstore

import (
	"context"
	"io"
	"time"

	"github.com/wikimetrics/editnet/internal/network"
)

// Store is the interface for the network persistence backend.
// Implementations: KuzuStore (production, CGO), MemStore (testing).
type Store interface {
	io.Closer

	// Schema setup — called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// SaveNetwork stores a finalized, collapsed graph under meta.Name,
	// replacing any previous network with that name.
	SaveNetwork(ctx context.Context, meta NetworkMeta, g *network.Graph) error

	// LoadNetwork reconstructs a stored graph. Returns (nil, nil, nil)
	// when no network with that name exists.
	LoadNetwork(ctx context.Context, name string) (*NetworkMeta, *network.Graph, error)

	// ListNetworks returns metadata for every stored network.
	ListNetworks(ctx context.Context) ([]NetworkMeta, error)
}

// NetworkMeta describes a stored network.
type NetworkMeta struct {
	Name        string              `json:"name"`
	Type        network.NetworkType `json:"type"`
	Directed    bool                `json:"directed"`
	BuiltAt     time.Time           `json:"builtAt"`
	VertexCount int                 `json:"vertexCount"`
	EdgeCount   int                 `json:"edgeCount"`
}

// metaFor fills in the counts a caller usually leaves zero.
func metaFor(meta NetworkMeta, g *network.Graph) NetworkMeta {
	meta.Directed = g.Directed()
	meta.VertexCount = g.VertexCount()
	meta.EdgeCount = g.EdgeCount()
	if meta.BuiltAt.IsZero() {
		meta.BuiltAt = time.Now().UTC()
	}
	return meta
}
