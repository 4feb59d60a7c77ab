// Package stats derives per-editor statistics over a series of time
// windows: activity counts plus network metrics from the window's
// contributor network.
package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/wikimetrics/editnet/internal/network"
)

// DateLayout is the format for window boundary dates in CSV output.
const DateLayout = "2006-01-02"

// Window is a half-open [Start, End) time slice.
type Window struct {
	Start time.Time
	End   time.Time
}

// Windows returns consecutive windows of length delta covering [start,
// end]. The last window that would overrun end is omitted.
func Windows(start, end time.Time, delta time.Duration) []Window {
	var out []Window
	for cur := start; !cur.After(end.Add(-delta)); cur = cur.Add(delta) {
		out = append(out, Window{Start: cur, End: cur.Add(delta)})
	}
	return out
}

// EditorRow is one editor's statistics within one window. The metric
// fields carry a presence flag because several are undefined on degenerate
// or disconnected networks; absent values serialize as empty CSV cells
// rather than zeros.
type EditorRow struct {
	Editor     string
	Window     Window
	Edits      int
	TalkEdits  int
	Pages      int
	ActiveDays int

	Betweenness      float64
	HasBetweenness   bool
	EffectiveSize    float64
	HasEffectiveSize bool
	MeanTieWeight    float64
	HasMeanTieWeight bool
}

// ComputeWindows builds one network per window from the ordered edit
// stream and emits a row per active editor per window, editors in sorted
// order within each window.
//
// The stream must satisfy the builder's ordering invariant; slicing by
// time preserves it.
func ComputeWindows(edits []network.EditRecord, windows []Window, opts network.Options) ([]EditorRow, error) {
	var out []EditorRow
	for _, w := range windows {
		var slice []network.EditRecord
		for _, e := range edits {
			if !e.Timestamp.Before(w.Start) && e.Timestamp.Before(w.End) {
				slice = append(slice, e)
			}
		}
		rows, err := computeWindow(slice, w, opts)
		if err != nil {
			return nil, fmt.Errorf("window starting %s: %w", w.Start.Format(DateLayout), err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

// activity is the per-editor tally accumulated before metric lookup.
type activity struct {
	edits     int
	talkEdits int
	pages     map[string]bool
	days      map[string]bool
}

func computeWindow(slice []network.EditRecord, w Window, opts network.Options) ([]EditorRow, error) {
	g, err := network.Build(slice, opts)
	if err != nil {
		return nil, err
	}

	byEditor := make(map[string]*activity)
	var order []string
	for _, e := range slice {
		a, ok := byEditor[e.Editor]
		if !ok {
			a = &activity{pages: make(map[string]bool), days: make(map[string]bool)}
			byEditor[e.Editor] = a
			order = append(order, e.Editor)
		}
		a.edits++
		if network.IsTalkPage(e.Namespace) {
			a.talkEdits++
		}
		a.pages[e.PageID] = true
		a.days[e.Timestamp.Format(DateLayout)] = true
	}
	sort.Strings(order)

	betweenness, err := windowBetweenness(g)
	if err != nil {
		return nil, err
	}

	rows := make([]EditorRow, 0, len(order))
	for _, editor := range order {
		a := byEditor[editor]
		row := EditorRow{
			Editor:     editor,
			Window:     w,
			Edits:      a.edits,
			TalkEdits:  a.talkEdits,
			Pages:      len(a.pages),
			ActiveDays: len(a.days),
		}
		if b, ok := betweenness[editor]; ok {
			row.Betweenness, row.HasBetweenness = b, true
		}
		if g.HasVertex(editor) {
			if es, err := g.EffectiveSize(editor); err == nil {
				row.EffectiveSize, row.HasEffectiveSize = es, true
			} else if !errors.Is(err, network.ErrIsolatedVertex) {
				return nil, err
			}
			if mw, ok := meanTieWeight(g, editor); ok {
				row.MeanTieWeight, row.HasMeanTieWeight = mw, true
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// windowBetweenness maps every vertex to its normalized betweenness, or to
// nothing when the window's network is too small to normalize.
func windowBetweenness(g *network.Graph) (map[string]float64, error) {
	vals, err := g.BetweennessAll(nil, true)
	if errors.Is(err, network.ErrDegenerateGraph) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(vals))
	for i, v := range g.Vertices() {
		out[v] = vals[i]
	}
	return out, nil
}

// meanTieWeight averages the weights of an editor's incident ties.
func meanTieWeight(g *network.Graph, editor string) (float64, bool) {
	var weights []float64
	for _, e := range g.Edges() {
		if e.From == editor || e.To == editor {
			weights = append(weights, float64(e.Weight))
		}
	}
	if len(weights) == 0 {
		return 0, false
	}
	return stat.Mean(weights, nil), true
}

// csvHeader is the column layout of the stats table.
var csvHeader = []string{
	"user_id", "start_date", "end_date",
	"all_edits", "talk_edits", "pages", "active_days",
	"betweenness", "effective_size", "mean_tie_weight",
}

// WriteCSV writes the stats table with its canonical header.
func WriteCSV(w io.Writer, rows []EditorRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("stats csv: write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Editor,
			r.Window.Start.Format(DateLayout),
			r.Window.End.Format(DateLayout),
			strconv.Itoa(r.Edits),
			strconv.Itoa(r.TalkEdits),
			strconv.Itoa(r.Pages),
			strconv.Itoa(r.ActiveDays),
			formatMetric(r.Betweenness, r.HasBetweenness),
			formatMetric(r.EffectiveSize, r.HasEffectiveSize),
			formatMetric(r.MeanTieWeight, r.HasMeanTieWeight),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("stats csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMetric(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
