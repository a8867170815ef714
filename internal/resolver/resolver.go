// Package resolver maps combine participants to their player profile pages.
//
// The combine results table shows each player's name as a link to the player's career page. The
// resolver scans the rows of the same table the records were parsed from and records
// link text -> link target. Rows without a link are skipped: those players have no
// profile and cannot have career value computed. Links elsewhere on the page are ignored.
package resolver

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/htmltable"
)

// PlayerCell selects the player-name cell of a results row
const PlayerCell = `th[data-stat="player"], td[data-stat="player"]`

// Resolve builds the name -> profile path map for one year's results table
func Resolve(table *goquery.Selection, year int) *combine.URLMap {
	urls := combine.NewURLMap(year)
	if table == nil {
		return urls
	}

	htmltable.Rows(table).Each(func(i int, row *goquery.Selection) {
		link := row.ChildrenFiltered(PlayerCell).First().Find("a[href]").First()
		if link.Length() == 0 {
			return
		}

		name := strings.Join(strings.Fields(link.Text()), " ")
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		if name == "" || href == "" {
			return
		}
		urls.Set(name, href)
	})

	return urls
}
