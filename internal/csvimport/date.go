package csvimport

import "time"

// dateLayouts are the recognized date formats, tried in order. Order is the
// tiebreaker for strings valid under more than one format (e.g. "03/04/2024"
// reads as March 4 because month-first layouts come first); that precedence
// is a documented heuristic, not a correctness guarantee, and must not be
// reordered without breaking reproducibility for existing imports.
var dateLayouts = []string{
	"01/02/2006", // MM/dd/yyyy
	"02/01/2006", // dd/MM/yyyy
	"2006-01-02",
	"1/2/2006",
	"2/1/2006",
	"01-02-2006",
	"02-01-2006",
	"2006/01/02",
	"Jan 02, 2006",
	"02 Jan 2006",
	"January 02, 2006",
}

// fallbackLayouts approximate a general free-form parse for exports that use
// a timestamped or long-form date column.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2 2006",
	"2 January 2006",
}

// ParseDateString attempts each known date format in priority order, then
// the general fallbacks. Returns false when nothing matches.
func ParseDateString(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
