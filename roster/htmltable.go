package roster

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// HTML-table roster support. Several HR systems export ".xls" files that are
// actually HTML documents containing a single table; the first table found
// is used, with its first row as the header.

// parseHTMLTable parses an HTML document and converts its first table into
// a roster Table.
func parseHTMLTable(data []byte) (*Table, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tableNode := findElement(doc, "table")
	if tableNode == nil {
		return nil, fmt.Errorf("no table element found")
	}

	var grid [][]string
	collectTableRows(tableNode, &grid)
	if len(grid) == 0 {
		return nil, fmt.Errorf("table has no rows")
	}

	return newTable(grid[0], grid[1:]), nil
}

// collectTableRows walks thead/tbody/tfoot sections and direct tr children,
// appending one cell slice per row.
func collectTableRows(n *html.Node, grid *[][]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			collectTableRows(c, grid)
		case "tr":
			row := parseTableRow(c)
			if !isBlankRecord(row) {
				*grid = append(*grid, row)
			}
		}
	}
}

// parseTableRow extracts cell text from a tr element.
func parseTableRow(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, getTextContent(c))
		}
	}
	return cells
}

// findElement finds the first element with the given tag name via DFS.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// getTextContent returns the concatenated text content of a node tree.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
