// Package pipeline runs a scrape from the yearly combine pages to the per-position datasets.
//
// A Run owns everything a scrape needs: the configuration, the HTTP scraper, the career
// value pool, the data store and the records accumulated so far. Years are processed in
// order. For each year the combine page is fetched once, its table parsed, its player
// links resolved from the same document, career value computed for every row and the
// augmented table written as a yearly snapshot. A run manifest is rewritten after every
// year so an interrupted scrape still leaves a record of what finished.
package pipeline
