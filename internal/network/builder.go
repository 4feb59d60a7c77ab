package network

import (
	"fmt"
	"slices"
	"time"
)

// NetworkType selects which social network Build derives from the stream.
type NetworkType string

const (
	// Coedit connects editors who modified the same non-talk page within
	// the lookback window. Undirected.
	Coedit NetworkType = "coedit"
	// Collaboration connects editors who appear together in a return
	// cycle: an editor revisiting a page they previously edited, tied to
	// everyone who edited in between. Undirected.
	Collaboration NetworkType = "collaboration"
	// Talk connects an editor to the owner of a user-talk page they posted
	// to, or to prior discussants on the same talk page. Directed.
	Talk NetworkType = "talk"
)

// Valid reports whether t is one of the recognized network types.
func (t NetworkType) Valid() bool {
	switch t {
	case Coedit, Collaboration, Talk:
		return true
	}
	return false
}

// Options configures a Build invocation. Zero-valued limits mean
// unbounded.
type Options struct {
	// Type selects the network to derive. Required.
	Type NetworkType
	// EditLimit bounds the lookback window to the last N edits of a page.
	EditLimit int
	// EditorLimit bounds the number of distinct co-editors collected per
	// edit.
	EditorLimit int
	// TimeLimit bounds the elapsed time between an edit and a prior edit
	// for them to be connected.
	TimeLimit time.Duration
	// SectionFilter, when set, only connects edits whose comments resolve
	// to the same section label. Edits without an extractable label match
	// nothing.
	SectionFilter bool
}

// windowEntry is a prior edit retained in a page's lookback window, with
// its resolved section label and timestamp attached.
type windowEntry struct {
	editor     string
	section    string
	hasSection bool
	at         time.Time
}

// pageWindow is the per-page builder state: the ordered list of previous
// edits seen on the current page, oldest first.
type pageWindow struct {
	prev []windowEntry
}

// scanResult is what one pass over the window yields for the current edit.
type scanResult struct {
	coeditors []string
	// collaboration is set when the current editor already appears in the
	// window, i.e. they have returned to a page they previously touched.
	collaboration bool
}

func (w *pageWindow) reset(first windowEntry) {
	w.prev = w.prev[:0]
	w.prev = append(w.prev, first)
}

func (w *pageWindow) add(e windowEntry) {
	w.prev = append(w.prev, e)
}

// scan walks the retained window in reverse chronological order collecting
// co-editors for cur. seed pre-populates the co-editor list (the user-talk
// page owner, for talk networks) and counts toward the editor limit.
//
// When the editor limit is reached or a candidate falls outside the time
// limit, scanning stops and the window is truncated to the entries scanned
// so far: anything older would fail the same checks for every later edit
// too. Finding cur's own editor stops the scan without truncating, since
// edges beyond that point were captured on the editor's previous visit but
// may still serve later edits by others.
func (w *pageWindow) scan(cur windowEntry, seed []string, opts Options) scanResult {
	if opts.EditLimit > 0 && len(w.prev) > opts.EditLimit {
		w.prev = w.prev[len(w.prev)-opts.EditLimit:]
	}
	res := scanResult{coeditors: slices.Clone(seed)}
	for i := len(w.prev) - 1; i >= 0; i-- {
		cand := w.prev[i]
		scanned := len(w.prev) - 1 - i
		if (opts.EditorLimit > 0 && len(res.coeditors) >= opts.EditorLimit) ||
			(opts.TimeLimit > 0 && cur.at.Sub(cand.at) > opts.TimeLimit) {
			w.prev = w.prev[len(w.prev)-scanned:]
			break
		}
		if cand.editor == cur.editor {
			res.collaboration = true
			break
		}
		if sectionsMatch(opts.SectionFilter, cur, cand) && !slices.Contains(res.coeditors, cand.editor) {
			res.coeditors = append(res.coeditors, cand.editor)
		}
	}
	return res
}

// sectionsMatch decides whether two edits are topically connected. With the
// filter off, everything matches. With it on, both edits must resolve to
// the same extracted label; absence is not a wildcard.
func sectionsMatch(filter bool, a, b windowEntry) bool {
	if !filter {
		return true
	}
	return a.hasSection && b.hasSection && a.section == b.section
}

// Build derives a weighted network from an ordered edit stream in a single
// forward pass.
//
// Precondition: edits must be grouped contiguously by page and ordered by
// non-decreasing timestamp within each page. Build cannot detect a
// violation; callers that break the ordering get silently incorrect
// windowing, not an error.
func Build(edits []EditRecord, opts Options) (*Graph, error) {
	if !opts.Type.Valid() {
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidNetworkType, opts.Type)
	}

	g := NewGraph(opts.Type == Talk)
	var (
		w        pageWindow
		currPage string
		started  bool
	)

	for _, edit := range edits {
		var section string
		var hasSection bool
		if opts.SectionFilter {
			section, hasSection = ExtractSection(edit.Comment)
		}
		entry := windowEntry{
			editor:     edit.Editor,
			section:    section,
			hasSection: hasSection,
			at:         edit.Timestamp,
		}

		talk := IsTalkPage(edit.Namespace)
		if opts.Type != Talk && talk {
			continue
		}
		var seed []string
		if opts.Type == Talk {
			if !talk {
				continue
			}
			// Posting to someone else's user-talk page addresses that
			// person directly, independent of the window.
			if owner, ok := TalkPageOwner(edit.Namespace, edit.Title); ok && owner != edit.Editor {
				seed = append(seed, owner)
			}
		}

		if !started || edit.PageID != currPage {
			// The first edit of a page has nobody to connect to, but an
			// owner-talk edge still applies.
			if len(seed) > 0 {
				g.StageEdges(edit.Editor, seed)
			}
			currPage = edit.PageID
			started = true
			w.reset(entry)
			continue
		}

		res := w.scan(entry, seed, opts)
		if opts.Type != Collaboration || res.collaboration {
			g.StageEdges(edit.Editor, res.coeditors)
		}
		w.add(entry)
	}

	g.Finalize()
	g.CollapseWeights()
	return g, nil
}
