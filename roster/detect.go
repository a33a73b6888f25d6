package roster

import (
	"path/filepath"
	"strings"
)

// sourceFormat represents a supported roster source format.
type sourceFormat int

const (
	formatUnknown sourceFormat = iota
	formatXLSX
	formatHTML
	formatDelimited
)

// detectFormat determines the roster source format from magic bytes, falling
// back to the filename extension. HR systems routinely export ".xls" files
// that are really HTML tables, so content sniffing runs first.
func detectFormat(filename string, data []byte) sourceFormat {
	// ZIP magic (XLSX is a ZIP archive): PK\x03\x04
	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return formatXLSX
	}

	if detectHTMLMagic(data) {
		return formatHTML
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return formatXLSX
	case ".html", ".htm":
		return formatHTML
	case ".csv", ".txt":
		return formatDelimited
	}

	return formatDelimited
}

// detectHTMLMagic checks whether the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}

	head := data[start:]
	if len(head) > 512 {
		head = head[:512]
	}

	upper := strings.ToUpper(string(head))
	return strings.HasPrefix(upper, "<!DOCTYPE HTML") ||
		strings.HasPrefix(upper, "<HTML") ||
		strings.HasPrefix(upper, "<TABLE")
}
