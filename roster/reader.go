package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// csvAttempt is one (encoding, delimiter) pair tried when parsing a
// delimited-text source. The UTF-8 decoder substitutes replacement runes
// for invalid bytes instead of failing, so the UTF-8 attempt additionally
// requires the raw bytes to be valid UTF-8; otherwise a Windows-1251 file
// would be accepted as mojibake and the later attempts never reached.
type csvAttempt struct {
	enc           encoding.Encoding
	sep           rune
	needValidUTF8 bool
}

// Delimited rosters come from uncontrolled exports; the attempt order
// mirrors what those exports actually produce: Windows-1251 with
// semicolons, UTF-8 with a BOM and commas, then Windows-1251 with commas.
var csvAttempts = []csvAttempt{
	{charmap.Windows1251, ';', false},
	{unicode.UTF8BOM, ',', true},
	{charmap.Windows1251, ',', false},
}

// Load reads a roster from a file, detecting XLSX, HTML-table, and
// delimited-text formats. Any read or parse failure is returned as an
// error; callers treat it as "no table available" rather than a fatal
// condition.
func Load(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", filename, err)
	}
	return Parse(filename, data)
}

// Parse builds a roster table from in-memory source data. The filename is
// used only as a format-detection hint.
func Parse(filename string, data []byte) (*Table, error) {
	switch detectFormat(filename, data) {
	case formatXLSX:
		return parseXLSX(data)
	case formatHTML:
		return parseHTMLTable(data)
	default:
		return parseDelimited(data)
	}
}

// parseDelimited tries each (encoding, delimiter) attempt in order and
// accepts the first parse that yields more than one column. Malformed lines
// are skipped rather than failing the whole parse.
func parseDelimited(data []byte) (*Table, error) {
	for _, attempt := range csvAttempts {
		t, err := parseDelimitedWith(data, attempt)
		if err == nil && len(t.Columns) > 1 {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no delimiter/encoding combination produced a table with more than one column")
}

func parseDelimitedWith(data []byte, attempt csvAttempt) (*Table, error) {
	if attempt.needValidUTF8 && !utf8.Valid(data) {
		return nil, fmt.Errorf("source is not valid UTF-8")
	}

	decoded, err := io.ReadAll(attempt.enc.NewDecoder().Reader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decoding roster text: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = attempt.sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed lines.
			continue
		}
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, record)
	}

	return newTable(header, rows), nil
}

func isBlankRecord(record []string) bool {
	for _, c := range record {
		if c != "" {
			return false
		}
	}
	return true
}
