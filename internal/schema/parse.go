package schema

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when no strict format is configured.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// ParseDate parses a date cell. When layout is non-empty only that layout
// is accepted; otherwise the common layouts above are tried in order.
func ParseDate(value, layout string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if layout != "" {
		t, err := time.Parse(layout, value)
		return t, err == nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a numeric cell. Empty cells are "missing", not
// numbers; callers decide how to treat them.
func ParseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	return f, err == nil
}
