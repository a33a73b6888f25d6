package fields

import (
	"strings"
	"time"
)

// Day-first layouts tried when normalizing an issue date. Spreadsheet
// exports are inconsistent; ISO appears when the source column was typed as
// a date, the others when it was typed by hand.
var issueDateLayouts = []string{
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"02.01.06",
	"2.1.2006",
}

// formatIssueDate normalizes a raw date cell to DD.MM.YYYY. On parse
// failure the raw text is kept verbatim, which keeps hand-written values
// like "май 2015" visible in the output document.
func formatIssueDate(val string) string {
	s := strings.TrimSpace(val)
	// Date-typed cells exported with a time component.
	if i := strings.IndexAny(s, " T"); i > 0 && len(s) > 10 {
		if t, ok := parseDayFirst(s[:i]); ok {
			return t.Format("02.01.2006")
		}
	}
	if t, ok := parseDayFirst(s); ok {
		return t.Format("02.01.2006")
	}
	return val
}

func parseDayFirst(s string) (time.Time, bool) {
	for _, layout := range issueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
