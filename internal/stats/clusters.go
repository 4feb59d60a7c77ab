package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrMissingColumn reports a table whose header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ClusterAssignment is one editor-window's cluster labels from an external
// clustering run. All fields are carried as strings; the labels are opaque
// identifiers, not quantities.
type ClusterAssignment struct {
	UserID    string
	StartDate string
	KMeans    string
	GMM       string
	KMedoids  string
}

// ReadClusterAssignments parses a cluster-assignment CSV. The header must
// name user_id, start_date, kCluster, mCluster and kMedCluster columns, in
// any order.
func ReadClusterAssignments(r io.Reader) ([]ClusterAssignment, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cluster csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range []string{"user_id", "start_date", "kCluster", "mCluster", "kMedCluster"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("cluster csv: %w: %s", ErrMissingColumn, name)
		}
	}

	out := make([]ClusterAssignment, 0, len(records)-1)
	for _, rec := range records[1:] {
		out = append(out, ClusterAssignment{
			UserID:    rec[col["user_id"]],
			StartDate: rec[col["start_date"]],
			KMeans:    rec[col["kCluster"]],
			GMM:       rec[col["mCluster"]],
			KMedoids:  rec[col["kMedCluster"]],
		})
	}
	return out, nil
}

// MergeClusterAssignments joins cluster labels onto a stats table by
// (user_id, start_date) and returns the table with three label columns
// appended. Rows without an assignment get the label "0", meaning the
// editor-window was not clustered.
func MergeClusterAssignments(table [][]string, assignments []ClusterAssignment) ([][]string, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("stats table: %w: user_id", ErrMissingColumn)
	}
	header := table[0]
	userCol, startCol := -1, -1
	for i, name := range header {
		switch name {
		case "user_id":
			userCol = i
		case "start_date":
			startCol = i
		}
	}
	if userCol < 0 {
		return nil, fmt.Errorf("stats table: %w: user_id", ErrMissingColumn)
	}
	if startCol < 0 {
		return nil, fmt.Errorf("stats table: %w: start_date", ErrMissingColumn)
	}

	type key struct{ user, start string }
	byKey := make(map[key]ClusterAssignment, len(assignments))
	for _, a := range assignments {
		byKey[key{a.UserID, a.StartDate}] = a
	}

	out := make([][]string, 0, len(table))
	out = append(out, append(append([]string{}, header...), "kMeansCluster", "GMMCluster", "kMedCluster"))
	for _, row := range table[1:] {
		a := byKey[key{row[userCol], row[startCol]}]
		if a.KMeans == "" {
			a.KMeans = "0"
		}
		if a.GMM == "" {
			a.GMM = "0"
		}
		if a.KMedoids == "" {
			a.KMedoids = "0"
		}
		out = append(out, append(append([]string{}, row...), a.KMeans, a.GMM, a.KMedoids))
	}
	return out, nil
}

// ReadTable reads a whole CSV file into memory for merging.
func ReadTable(r io.Reader) ([][]string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("stats csv: %w", err)
	}
	return records, nil
}

// WriteTable writes a merged table back out.
func WriteTable(w io.Writer, table [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(table); err != nil {
		return fmt.Errorf("stats csv: %w", err)
	}
	return nil
}
