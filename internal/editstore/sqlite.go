package editstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wikimetrics/editnet/internal/network"
)

// Compile-time assertion: *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store on a SQLite database. The pure-Go driver
// keeps the binary CGO-free.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the edit database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create parent directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable WAL mode: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// InitSchema creates the edits table and its ordering index.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS edits (
			editor    TEXT NOT NULL,
			page_id   TEXT NOT NULL,
			namespace TEXT NOT NULL DEFAULT '',
			title     TEXT NOT NULL DEFAULT '',
			comment   TEXT NOT NULL DEFAULT '',
			edit_time TEXT NOT NULL
		)`,
		// The index makes ORDER BY page_id, edit_time a walk, which is
		// how every read hands the builder its ordering invariant.
		`CREATE INDEX IF NOT EXISTS idx_edits_page_time ON edits(page_id, edit_time)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: init schema: %w", err)
		}
	}
	return nil
}

// AddEdit inserts one edit record.
func (s *SQLiteStore) AddEdit(ctx context.Context, edit network.EditRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO edits (editor, page_id, namespace, title, comment, edit_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		edit.Editor, edit.PageID, edit.Namespace, edit.Title, edit.Comment,
		edit.Timestamp.UTC().Format(network.TimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert edit: %w", err)
	}
	return nil
}

// EditsByPage returns the time-ordered edits of one page within the range.
func (s *SQLiteStore) EditsByPage(ctx context.Context, pageID string, from, to time.Time) ([]network.EditRecord, error) {
	query := `SELECT editor, page_id, namespace, title, comment, edit_time
		FROM edits WHERE page_id = ?`
	args := []any{pageID}
	query, args = appendTimeRange(query, args, from, to)
	query += ` ORDER BY edit_time, rowid`
	return s.queryEdits(ctx, query, args)
}

// AllEdits returns every stored edit grouped by page and time-ordered
// within each page — the shape the network builder requires.
func (s *SQLiteStore) AllEdits(ctx context.Context, from, to time.Time) ([]network.EditRecord, error) {
	query := `SELECT editor, page_id, namespace, title, comment, edit_time
		FROM edits WHERE 1=1`
	var args []any
	query, args = appendTimeRange(query, args, from, to)
	query += ` ORDER BY page_id, edit_time, rowid`
	return s.queryEdits(ctx, query, args)
}

// Stats returns edit, page, and editor counts.
func (s *SQLiteStore) Stats(ctx context.Context) (*StoreStats, error) {
	var st StoreStats
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT page_id), COUNT(DISTINCT editor) FROM edits`)
	if err := row.Scan(&st.EditCount, &st.PageCount, &st.EditorCount); err != nil {
		return nil, fmt.Errorf("sqlite: stats: %w", err)
	}
	return &st, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// appendTimeRange adds [from, to) bounds to a query. The textual timestamp
// format sorts lexicographically in time order.
func appendTimeRange(query string, args []any, from, to time.Time) (string, []any) {
	if !from.IsZero() {
		query += ` AND edit_time >= ?`
		args = append(args, from.UTC().Format(network.TimestampLayout))
	}
	if !to.IsZero() {
		query += ` AND edit_time < ?`
		args = append(args, to.UTC().Format(network.TimestampLayout))
	}
	return query, args
}

// queryEdits runs a SELECT over the edits table and scans the rows.
func (s *SQLiteStore) queryEdits(ctx context.Context, query string, args []any) ([]network.EditRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query edits: %w", err)
	}
	defer rows.Close()

	var out []network.EditRecord
	for rows.Next() {
		var e network.EditRecord
		var ts string
		if err := rows.Scan(&e.Editor, &e.PageID, &e.Namespace, &e.Title, &e.Comment, &ts); err != nil {
			return nil, fmt.Errorf("sqlite: scan edit: %w", err)
		}
		e.Timestamp, err = network.ParseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("sqlite: stored edit: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate edits: %w", err)
	}
	return out, nil
}
