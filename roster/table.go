// Package roster loads employee and responsible-person tables from
// spreadsheet (XLSX), HTML-table, and delimited-text sources, normalizes
// column labels, and derives a per-row search key used for selection.
package roster

import "strings"

// Column labels recognized for search-key derivation.
const (
	ColFullName = "ФИО"
	ColPosition = "Должность"
)

// searchKeySeparator joins the name and position parts of a search key.
const searchKeySeparator = " — "

// Row is a single roster entry: a mapping of normalized column label to the
// raw cell value, plus the derived SearchKey display label. Rows are created
// at load time and read-only afterward.
type Row struct {
	columns []string
	values  map[string]string

	// SearchKey is the display label used for selecting this row. It may
	// collide with other rows; selection picks the first match.
	SearchKey string
}

// NewRow builds a standalone row from column labels in order and a
// label-to-value mapping. Intended for callers that assemble rows outside a
// loaded table, such as tests and fixtures.
func NewRow(columns []string, values map[string]string) Row {
	return Row{columns: columns, values: values}
}

// Get returns the raw value for the given column label, or "" when the
// column is absent.
func (r Row) Get(label string) string {
	return r.values[label]
}

// Lookup returns the raw value for the given column label and whether the
// column exists.
func (r Row) Lookup(label string) (string, bool) {
	v, ok := r.values[label]
	return v, ok
}

// Columns returns the column labels in source order. The slice is shared
// with the owning table and must not be modified.
func (r Row) Columns() []string {
	return r.columns
}

// Table is a loaded roster: normalized column labels in source order and
// one row per person.
type Table struct {
	Columns []string
	Rows    []Row
}

// SearchKeys returns the search keys of all rows in source order, including
// duplicates.
func (t *Table) SearchKeys() []string {
	keys := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		keys[i] = r.SearchKey
	}
	return keys
}

// FindRow returns the first row whose search key equals key.
func (t *Table) FindRow(key string) (Row, bool) {
	for _, r := range t.Rows {
		if r.SearchKey == key {
			return r, true
		}
	}
	return Row{}, false
}

// newTable builds a Table from a header row and data rows, trimming column
// labels and deriving search keys. Rows shorter than the header are padded
// with empty cells; extra cells are dropped.
func newTable(header []string, rows [][]string) *Table {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	t := &Table{Columns: columns}
	_, hasName := indexOf(columns, ColFullName)
	_, hasPos := indexOf(columns, ColPosition)

	for _, cells := range rows {
		values := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(cells) {
				values[col] = cells[i]
			} else {
				values[col] = ""
			}
		}

		row := Row{columns: columns, values: values}
		if hasName {
			name := strings.TrimSpace(values[ColFullName])
			row.SearchKey = name
			if hasPos {
				if pos := strings.TrimSpace(values[ColPosition]); pos != "" {
					row.SearchKey = name + searchKeySeparator + pos
				}
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

func indexOf(columns []string, label string) (int, bool) {
	for i, c := range columns {
		if c == label {
			return i, true
		}
	}
	return 0, false
}
