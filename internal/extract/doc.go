// Package extract parses the noisy text fields of the combine results table.
//
// Every function here is total: any input, including an empty string, produces either a
// value or an explicit miss. Nothing panics and nothing defaults to zero.
package extract
