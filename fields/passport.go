// Package fields locates semantically-named fields in roster rows via
// fuzzy label matching and reconstructs formatted composite strings.
//
// Roster columns are authored by people, not machines: the passport number
// may live under "Паспорт", "Серия и номер" or "Номер документа", the
// issuing authority under "Кем выдан", the issue date under "Дата выдачи".
// Each field is found by an ordered rule: the first column whose lowercased
// label matches wins, with explicit exclusions to disambiguate labels that
// share substrings.
package fields

import (
	"strings"

	"github.com/tsawler/docassembly/roster"
)

// passportPlaceholder is rendered when no ID-like column is found.
const passportPlaceholder = "__________________"

// labelRule matches a column by substring tokens in its lowercased label.
type labelRule struct {
	anyOf   []string // label must contain at least one of these
	noneOf  []string // label must contain none of these
	extract func(value string) string
}

func (r labelRule) matches(label string) bool {
	for _, tok := range r.noneOf {
		if strings.Contains(label, tok) {
			return false
		}
	}
	for _, tok := range r.anyOf {
		if strings.Contains(label, tok) {
			return true
		}
	}
	return false
}

// apply scans row columns in source order and returns the extracted value
// of the first matching column with a non-empty cleaned value.
func (r labelRule) apply(row roster.Row) string {
	for _, col := range row.Columns() {
		if !r.matches(strings.ToLower(strings.TrimSpace(col))) {
			continue
		}
		val, ok := CleanValue(row.Get(col))
		if !ok {
			continue
		}
		if r.extract != nil {
			val = r.extract(val)
		}
		return val
	}
	return ""
}

var (
	numberRule = labelRule{
		anyOf:   []string{"паспорт", "серия", "номер", "документ"},
		extract: FormatPassportNumber,
	}
	issuedByRule = labelRule{
		anyOf:  []string{"кем выдан", "выдан", "кем"},
		noneOf: []string{"дата", "когда"},
	}
	issueDateRule = labelRule{
		anyOf:   []string{"дата", "когда", "число"},
		extract: formatIssueDate,
	}
)

// ExtractPassport composes the full passport clause for a roster row:
// "Паспорт: <num>, выдан <issuer>, дата выдачи <date>". A missing number
// renders as a placeholder underscore run; missing issuer or date clauses
// are omitted. Never fails.
func ExtractPassport(row roster.Row) string {
	parts := make([]string, 0, 3)

	if num := numberRule.apply(row); num != "" {
		parts = append(parts, "Паспорт: "+num)
	} else {
		parts = append(parts, "Паспорт: "+passportPlaceholder)
	}
	if issuer := issuedByRule.apply(row); issuer != "" {
		parts = append(parts, "выдан "+issuer)
	}
	if date := issueDateRule.apply(row); date != "" {
		parts = append(parts, "дата выдачи "+date)
	}

	return strings.Join(parts, ", ")
}

// FormatPassportNumber reformats a bare 10-digit Russian passport number as
// "XXXX XXXXXX" (series + number). Anything else passes through unchanged.
func FormatPassportNumber(val string) string {
	if len(val) == 10 && isAllDigits(val) {
		return val[:4] + " " + val[4:]
	}
	return val
}

// CleanValue trims a raw cell value and reports whether anything usable
// remains. Empty strings and the literal "nan" (a spreadsheet-export
// artifact) count as absent.
func CleanValue(val string) (string, bool) {
	s := strings.TrimSpace(val)
	if s == "" || strings.EqualFold(s, "nan") {
		return "", false
	}
	return s, true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
