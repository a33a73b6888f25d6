package roster

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// XLSX roster support. Only the first worksheet is read; the first
// non-empty row is the header. Sheets that fail to parse are skipped the
// same way malformed CSV lines are.

type xlsxWorkbook struct {
	XMLName xml.Name `xml:"workbook"`
	Sheets  struct {
		Sheet []struct {
			Name string `xml:"name,attr"`
			RID  string `xml:"id,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

type xlsxWorksheet struct {
	XMLName   xml.Name `xml:"worksheet"`
	SheetData struct {
		Rows []xlsxRow `xml:"row"`
	} `xml:"sheetData"`
}

type xlsxRow struct {
	R     int        `xml:"r,attr"`
	Cells []xlsxCell `xml:"c"`
}

type xlsxCell struct {
	R  string `xml:"r,attr"`
	T  string `xml:"t,attr"`
	V  string `xml:"v"`
	Is *struct {
		T string `xml:"t"`
	} `xml:"is"`
}

type xlsxSharedStrings struct {
	XMLName xml.Name `xml:"sst"`
	SI      []struct {
		T string `xml:"t"`
		R []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type xlsxRels struct {
	XMLName      xml.Name `xml:"Relationships"`
	Relationship []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// parseXLSX reads the first worksheet of an XLSX workbook into a Table.
func parseXLSX(data []byte) (*Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	wbData, err := zipFileContent(zr, "xl/workbook.xml")
	if err != nil {
		return nil, fmt.Errorf("missing workbook: %w", err)
	}
	var wb xlsxWorkbook
	if err := xml.Unmarshal(wbData, &wb); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	if len(wb.Sheets.Sheet) == 0 {
		return nil, fmt.Errorf("no worksheets found")
	}

	shared := parseSharedStrings(zr)
	rels := parseWorkbookRels(zr)

	target := rels[wb.Sheets.Sheet[0].RID]
	if target == "" {
		target = "worksheets/sheet1.xml"
	}
	if !strings.HasPrefix(target, "xl/") {
		target = "xl/" + strings.TrimPrefix(target, "/")
	}

	wsData, err := zipFileContent(zr, target)
	if err != nil {
		return nil, fmt.Errorf("reading worksheet: %w", err)
	}
	var ws xlsxWorksheet
	if err := xml.Unmarshal(wsData, &ws); err != nil {
		return nil, fmt.Errorf("parsing worksheet: %w", err)
	}

	grid := sheetGrid(&ws, shared)
	if len(grid) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	return newTable(grid[0], grid[1:]), nil
}

// sheetGrid flattens worksheet XML into dense string rows, resolving shared
// strings and skipping fully blank leading rows.
func sheetGrid(ws *xlsxWorksheet, shared []string) [][]string {
	maxCol := 0
	for _, row := range ws.SheetData.Rows {
		for _, cell := range row.Cells {
			if col, ok := cellColumn(cell.R); ok && col > maxCol {
				maxCol = col
			}
		}
	}

	var grid [][]string
	for _, row := range ws.SheetData.Rows {
		cells := make([]string, maxCol+1)
		for _, cell := range row.Cells {
			col, ok := cellColumn(cell.R)
			if !ok || col >= len(cells) {
				continue
			}
			cells[col] = cellValue(cell, shared)
		}
		if len(grid) == 0 && isBlankRecord(cells) {
			continue
		}
		grid = append(grid, cells)
	}
	return grid
}

// cellValue resolves a cell's display value.
func cellValue(cell xlsxCell, shared []string) string {
	switch cell.T {
	case "s":
		idx, err := strconv.Atoi(cell.V)
		if err == nil && idx >= 0 && idx < len(shared) {
			return shared[idx]
		}
		return ""
	case "inlineStr":
		if cell.Is != nil {
			return cell.Is.T
		}
		return ""
	case "b":
		if cell.V == "1" {
			return "TRUE"
		}
		return "FALSE"
	default:
		return cell.V
	}
}

// cellColumn extracts the 0-indexed column from a cell reference like "C7".
func cellColumn(ref string) (int, bool) {
	col := 0
	seen := false
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			col = col*26 + int(c-'A') + 1
			seen = true
		case c >= 'a' && c <= 'z':
			col = col*26 + int(c-'a') + 1
			seen = true
		default:
			if !seen {
				return 0, false
			}
			return col - 1, true
		}
	}
	if !seen {
		return 0, false
	}
	return col - 1, true
}

func parseSharedStrings(zr *zip.Reader) []string {
	data, err := zipFileContent(zr, "xl/sharedStrings.xml")
	if err != nil {
		return nil // Shared strings are optional.
	}
	var sst xlsxSharedStrings
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil
	}

	shared := make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			shared[i] = si.T
			continue
		}
		// Rich text: concatenate all runs.
		var text strings.Builder
		for _, run := range si.R {
			text.WriteString(run.T)
		}
		shared[i] = text.String()
	}
	return shared
}

func parseWorkbookRels(zr *zip.Reader) map[string]string {
	rels := make(map[string]string)
	data, err := zipFileContent(zr, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return rels // Relationships are optional.
	}
	var parsed xlsxRels
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return rels
	}
	for _, rel := range parsed.Relationship {
		rels[rel.ID] = rel.Target
	}
	return rels
}

func zipFileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}
