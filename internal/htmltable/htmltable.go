// Package htmltable reads HTML tables into header and row string grids.
package htmltable

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is a parsed HTML table. Every row is aligned with Header by position.
type Table struct {
	Header []string
	Rows   [][]string
}

// All parses every table in the document, in document order
func All(doc *goquery.Document) []Table {
	tables := make([]Table, 0)
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		tables = append(tables, Parse(s))
	})
	return tables
}

// Parse reads a single table selection.
//
// The header is the last row of thead, which picks the specific column names when a table
// carries grouped "over headers". Without a thead the first row is the header. Repeated
// header rows inside the body (class "thead") are skipped. Rows of nested tables are not
// read, and a cell spanning several columns fills each of them.
func Parse(s *goquery.Selection) Table {
	var t Table

	headRows := s.ChildrenFiltered("thead").ChildrenFiltered("tr")
	bodyRows := s.ChildrenFiltered("tbody").ChildrenFiltered("tr")
	if headRows.Length() > 0 {
		t.Header = cells(headRows.Last())
	} else {
		all := Rows(s)
		if all.Length() == 0 {
			return t
		}
		t.Header = cells(all.First())
		bodyRows = all.Slice(1, all.Length())
	}

	bodyRows.Each(func(i int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		row := cells(tr)
		if len(row) == 0 || isHeader(row, t.Header) {
			return
		}
		t.Rows = append(t.Rows, row)
	})

	return t
}

// Rows returns the table's own rows, excluding rows of nested tables
func Rows(s *goquery.Selection) *goquery.Selection {
	return s.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr").
		AddSelection(s.ChildrenFiltered("tr"))
}

// Column returns the index of the named column, or -1
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumns reports whether every named column is present
func (t Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if t.Column(name) < 0 {
			return false
		}
	}
	return true
}

// Value returns the cell of a row under the named column
func (t Table) Value(row []string, name string) (string, bool) {
	i := t.Column(name)
	if i < 0 || i >= len(row) {
		return "", false
	}
	return row[i], true
}

func cells(tr *goquery.Selection) []string {
	var row []string
	tr.ChildrenFiltered("th,td").Each(func(i int, cell *goquery.Selection) {
		text := normalizeText(cell.Text())
		for n := span(cell); n > 0; n-- {
			row = append(row, text)
		}
	})
	return row
}

// span is the cell's colspan, at least 1
func span(cell *goquery.Selection) int {
	v, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func isHeader(row, header []string) bool {
	if len(row) != len(header) || len(header) == 0 {
		return false
	}
	for i := range row {
		if row[i] != header[i] {
			return false
		}
	}
	return true
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
