package catalog

import (
	"strings"
	"time"
)

// timestampLayouts are the date_modified shapes written by the exporter over
// its history.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// Timestamp is a date_modified value. Raw is serialized verbatim; the parsed
// time is only used for ordering.
type Timestamp struct {
	Raw    string
	parsed time.Time
	ok     bool
}

// ParseTimestamp wraps raw, parsing it when it matches a known layout.
func ParseTimestamp(raw string) Timestamp {
	ts := Timestamp{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			ts.parsed = parsed
			ts.ok = true
			break
		}
	}
	return ts
}

// Time returns the parsed time and whether parsing succeeded.
func (t Timestamp) Time() (time.Time, bool) {
	return t.parsed, t.ok
}

// After reports whether t is strictly more recent than other. When either side
// does not parse, the raw strings are compared instead.
func (t Timestamp) After(other Timestamp) bool {
	if t.ok && other.ok {
		return t.parsed.After(other.parsed)
	}
	return t.Raw > other.Raw
}
