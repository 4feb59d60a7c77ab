//go:build cgo

package netstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/wikimetrics/editnet/internal/network"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend. It requires CGO because the go-kuzu driver wraps KuzuDB's C
// library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path, so networks survive across sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	// Ensure parent directory exists (KuzuDB creates the leaf directory).
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Contributors are scoped per network (id = "network|name") so the same
// editor can appear in several stored networks.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Network(
		name STRING,
		type STRING,
		directed BOOLEAN,
		built_at STRING,
		vertex_count INT64,
		edge_count INT64,
		PRIMARY KEY(name)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Contributor(
		id STRING,
		network STRING,
		name STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS TIE(FROM Contributor TO Contributor, weight INT64)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// SaveNetwork stores the graph under meta.Name, replacing any previous
// network with that name.
func (s *KuzuStore) SaveNetwork(_ context.Context, meta NetworkMeta, g *network.Graph) error {
	meta = metaFor(meta, g)
	if err := s.deleteNetwork(meta.Name); err != nil {
		return err
	}
	if err := s.exec(
		`CREATE (n:Network {
			name: $name, type: $type, directed: $directed,
			built_at: $built, vertex_count: $vc, edge_count: $ec
		})`,
		map[string]any{
			"name":     meta.Name,
			"type":     string(meta.Type),
			"directed": meta.Directed,
			"built":    meta.BuiltAt.UTC().Format(time.RFC3339),
			"vc":       int64(meta.VertexCount),
			"ec":       int64(meta.EdgeCount),
		},
	); err != nil {
		return err
	}
	for _, v := range g.Vertices() {
		if err := s.exec(
			"CREATE (c:Contributor {id: $id, network: $net, name: $name})",
			map[string]any{
				"id":   contributorID(meta.Name, v),
				"net":  meta.Name,
				"name": v,
			},
		); err != nil {
			return err
		}
	}
	for _, e := range g.Edges() {
		if err := s.exec(
			`MATCH (a:Contributor {id: $src}), (b:Contributor {id: $dst})
			 CREATE (a)-[:TIE {weight: $w}]->(b)`,
			map[string]any{
				"src": contributorID(meta.Name, e.From),
				"dst": contributorID(meta.Name, e.To),
				"w":   int64(e.Weight),
			},
		); err != nil {
			return err
		}
	}
	return nil
}

// LoadNetwork reconstructs a stored graph, or returns nils when absent.
func (s *KuzuStore) LoadNetwork(_ context.Context, name string) (*NetworkMeta, *network.Graph, error) {
	meta, err := s.getMeta(name)
	if err != nil || meta == nil {
		return nil, nil, err
	}

	rows, err := s.query(
		`MATCH (a:Contributor {network: $net})-[t:TIE]->(b:Contributor {network: $net})
		 RETURN a.name, b.name, t.weight`,
		map[string]any{"net": name},
	)
	if err != nil {
		return nil, nil, err
	}
	edges := make([]network.Edge, 0, len(rows))
	for _, r := range rows {
		edges = append(edges, network.Edge{
			From:   toString(r[0]),
			To:     toString(r[1]),
			Weight: toInt(r[2]),
		})
	}
	return meta, network.FromEdges(meta.Directed, edges), nil
}

// ListNetworks returns metadata for every stored network.
func (s *KuzuStore) ListNetworks(_ context.Context) ([]NetworkMeta, error) {
	rows, err := s.query(
		`MATCH (n:Network)
		 RETURN n.name, n.type, n.directed, n.built_at, n.vertex_count, n.edge_count
		 ORDER BY n.name`,
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]NetworkMeta, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToMeta(r))
	}
	return out, nil
}

// ---------- Internal helpers ----------

func (s *KuzuStore) getMeta(name string) (*NetworkMeta, error) {
	rows, err := s.query(
		`MATCH (n:Network {name: $name})
		 RETURN n.name, n.type, n.directed, n.built_at, n.vertex_count, n.edge_count`,
		map[string]any{"name": name},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	meta := rowToMeta(rows[0])
	return &meta, nil
}

func (s *KuzuStore) deleteNetwork(name string) error {
	stmts := []string{
		"MATCH (c:Contributor {network: $name}) DETACH DELETE c",
		"MATCH (n:Network {name: $name}) DELETE n",
	}
	for _, stmt := range stmts {
		if err := s.exec(stmt, map[string]any{"name": name}); err != nil {
			return err
		}
	}
	return nil
}

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// contributorID produces the per-network vertex identifier.
func contributorID(networkName, vertex string) string {
	return networkName + "|" + vertex
}

// rowToMeta converts a 6-column result row into a NetworkMeta.
// Column order: name, type, directed, built_at, vertex_count, edge_count.
func rowToMeta(r []any) NetworkMeta {
	builtAt, _ := time.Parse(time.RFC3339, toString(r[3]))
	return NetworkMeta{
		Name:        toString(r[0]),
		Type:        network.NetworkType(toString(r[1])),
		Directed:    toBool(r[2]),
		BuiltAt:     builtAt,
		VertexCount: toInt(r[4]),
		EdgeCount:   toInt(r[5]),
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int32:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
