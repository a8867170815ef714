// Package scraper provides HTTP fetching and HTML parsing for pro-football-reference pages.
//
// The scraper fetches a year's combine results page and individual player profile pages.
// A combine page is fetched once and the same parsed document feeds both the results
// table and the player link scan, so the two views of the page can never disagree.
package scraper
