package editstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/wikimetrics/editnet/internal/network"
)

// CSV column names for the flat-file edit format. Header order is free;
// columns are resolved by name. editor, articleid, and date_time are
// required, the rest degrade to empty values when absent.
const (
	colEditor    = "editor"
	colPageID    = "articleid"
	colNamespace = "namespace"
	colTitle     = "title"
	colComment   = "comment"
	colTimestamp = "date_time"
)

// ReadEdits parses edit records from CSV. The row order of the file is
// preserved: dumps are expected to already satisfy the page-grouped,
// time-ordered invariant, and this reader does not re-sort.
func ReadEdits(r io.Reader) ([]network.EditRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colEditor, colPageID, colTimestamp} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv: missing required column %q", required)
		}
	}
	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var out []network.EditRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		line++
		ts, err := network.ParseTimestamp(field(row, colTimestamp))
		if err != nil {
			// A bad timestamp would silently corrupt windowing downstream,
			// so unlike the optional metadata it is a hard error.
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		out = append(out, network.EditRecord{
			Editor:    field(row, colEditor),
			PageID:    field(row, colPageID),
			Namespace: field(row, colNamespace),
			Title:     field(row, colTitle),
			Comment:   field(row, colComment),
			Timestamp: ts,
		})
	}
	return out, nil
}

// ReadEditsFile reads edit records from a CSV file on disk.
func ReadEditsFile(path string) ([]network.EditRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEdits(f)
}

// WriteEdits writes edit records as CSV with the canonical header.
func WriteEdits(w io.Writer, edits []network.EditRecord) error {
	cw := csv.NewWriter(w)
	header := []string{colEditor, colPageID, colNamespace, colTitle, colComment, colTimestamp}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, e := range edits {
		row := []string{
			e.Editor, e.PageID, e.Namespace, e.Title, e.Comment,
			e.Timestamp.UTC().Format(network.TimestampLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
