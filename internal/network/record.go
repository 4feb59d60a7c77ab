package network

import (
	"fmt"
	"time"
)

// TimestampLayout is the wire format used for edit timestamps in dumps and
// the edit store ("YYYY-MM-DD HH:MM:SS").
const TimestampLayout = "2006-01-02 15:04:05"

// EditRecord is one observed page-modification event.
//
// Namespace is kept as the raw token from the dump: values that do not parse
// as integers must classify as "not a talk page" instead of failing, so
// interpretation happens at the classification site (see IsTalkPage).
type EditRecord struct {
	Editor    string
	PageID    string
	Namespace string
	Title     string
	Comment   string
	Timestamp time.Time
}

// ParseTimestamp parses an edit timestamp in TimestampLayout.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
