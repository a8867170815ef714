// Package cli implements the command-line interface for nfl-combine.
//
// The cli package provides the Cobra-based CLI with commands to scrape combine years,
// rebuild the per-position datasets from saved snapshots, run the regression studies and
// summarize the archived dataset. Output is text tables or JSON. It coordinates the
// config, pipeline, regression and storage packages.
package cli
