package scraper

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/extract"
	"github.com/pfrederiksen/nfl-combine/internal/htmltable"
)

// Combine results table column headers
const (
	ColPlayer    = "Player"
	ColPos       = "Pos"
	ColSchool    = "School"
	ColCollege   = "College"
	ColHt        = "Ht"
	ColWt        = "Wt"
	ColForty     = "40yd"
	ColVertical  = "Vertical"
	ColBench     = "Bench"
	ColBroadJump = "Broad Jump"
	ColThreeCone = "3Cone"
	ColShuttle   = "Shuttle"
	ColDrafted   = "Drafted (tm/rnd/yr)"
)

// CombinePage is one year's combine results page
type CombinePage struct {
	Year int
	URL  string
	Doc  *goquery.Document
}

// FetchCombine fetches the combine results page for a year
func (s *Scraper) FetchCombine(ctx context.Context, year int) (*CombinePage, error) {
	url := s.CombineURL(year)
	doc, err := s.FetchDocument(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %d combine page: %w", year, err)
	}
	return &CombinePage{Year: year, URL: url, Doc: doc}, nil
}

// Records parses the page's results table
func (p *CombinePage) Records() ([]combine.Record, error) {
	return ParseCombineTable(p.Doc, p.Year)
}

// Table returns the page's results table, the one Records reads
func (p *CombinePage) Table() (*goquery.Selection, error) {
	sel, _, err := CombineTable(p.Doc)
	if err != nil {
		return nil, fmt.Errorf("%d combine table: %w", p.Year, err)
	}
	return sel, nil
}

// CombineTable finds the first table carrying the combine schema.
// Drill columns may be absent; Player, Pos, Ht and Wt may not.
func CombineTable(doc *goquery.Document) (*goquery.Selection, htmltable.Table, error) {
	var (
		found *goquery.Selection
		table htmltable.Table
	)
	doc.Find("table").EachWithBreak(func(i int, s *goquery.Selection) bool {
		t := htmltable.Parse(s)
		if !t.HasColumns(ColPlayer, ColPos, ColHt, ColWt) {
			return true
		}
		found, table = s, t
		return false
	})
	if found == nil {
		return nil, htmltable.Table{}, ErrLayout
	}
	return found, table, nil
}

// ParseCombineTable extracts combine records from the page's results table
func ParseCombineTable(doc *goquery.Document, year int) ([]combine.Record, error) {
	_, t, err := CombineTable(doc)
	if err != nil {
		return nil, fmt.Errorf("%d combine table: %w", year, err)
	}

	records := make([]combine.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		text := func(col string) string {
			v, _ := t.Value(row, col)
			return v
		}
		num := func(col string) *float64 {
			return extract.Number(text(col))
		}

		player := text(ColPlayer)
		if player == "" {
			continue
		}

		records = append(records, combine.Record{
			Year:      year,
			Player:    player,
			Pos:       text(ColPos),
			School:    text(ColSchool),
			College:   text(ColCollege),
			Ht:        text(ColHt),
			Drafted:   text(ColDrafted),
			Wt:        num(ColWt),
			Forty:     num(ColForty),
			Vertical:  num(ColVertical),
			Bench:     num(ColBench),
			BroadJump: num(ColBroadJump),
			ThreeCone: num(ColThreeCone),
			Shuttle:   num(ColShuttle),
		})
	}
	return records, nil
}
