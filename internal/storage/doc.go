// Package storage persists combine datasets under a data directory.
//
// Yearly snapshots and per-position datasets are CSV files (<year>.csv, <group>.csv) so
// they can be opened in any spreadsheet or dataframe tool. Regression results and the run
// manifest are JSON. The cleaned dataset is also archived into a SQLite database
// (combine.db) for ad hoc queries. The default location is ~/.local/share/nfl-combine/.
package storage
