// Package extract recovers result records and event names from the two
// result-document layouts. Each document is flattened into the ordered
// sequence of its table cells and the per-format extractors walk that
// sequence with one cell of lookahead or lookback.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const cellSelector = "table > tbody > tr > td"

// CellKind is the marker a table cell carries.
type CellKind int

const (
	// CellPlain has no recognised marker.
	CellPlain CellKind = iota
	// CellRank is an IJS placement cell (class "rank").
	CellRank
	// CellName is an IJS competitor cell (class "name").
	CellName
	// CellSpan is a 6.0 competitor cell, marked by exactly rowspan="1" and
	// colspan="1" in either order.
	CellSpan
)

// Cell is one table cell in document order.
type Cell struct {
	Kind CellKind
	// Text is the decoded, whitespace-trimmed text content.
	Text string
	// Break is set when the cell contains a <br>, the layout's signal for a
	// multi-skater entry.
	Break bool
}

// ReadDocument parses the document at path, honouring a charset declared in
// the markup.
func ReadDocument(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseDocument(f)
}

// ParseDocument parses a result document from r.
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	utf8Reader, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("could not determine document encoding: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Cells flattens every body cell of every table in doc into one sequence.
func Cells(doc *goquery.Document) []Cell {
	sel := doc.Find(cellSelector)
	cells := make([]Cell, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		cells = append(cells, Cell{
			Kind:  cellKind(s),
			Text:  strings.TrimSpace(s.Text()),
			Break: s.Find("br").Length() > 0,
		})
	})
	return cells
}

func cellKind(s *goquery.Selection) CellKind {
	switch {
	case s.HasClass("rank"):
		return CellRank
	case s.HasClass("name"):
		return CellName
	case isSpanCell(s.Nodes[0]):
		return CellSpan
	}
	return CellPlain
}

func isSpanCell(n *html.Node) bool {
	if len(n.Attr) != 2 {
		return false
	}
	var rowspan, colspan bool
	for _, a := range n.Attr {
		switch {
		case a.Key == "rowspan" && a.Val == "1":
			rowspan = true
		case a.Key == "colspan" && a.Val == "1":
			colspan = true
		}
	}
	return rowspan && colspan
}
