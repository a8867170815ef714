package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pfrederiksen/nfl-combine/internal/combine"

	_ "modernc.org/sqlite"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS players (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	grp         TEXT NOT NULL,
	year        INTEGER NOT NULL,
	player      TEXT NOT NULL,
	pos         TEXT NOT NULL,
	wt          REAL,
	forty       REAL,
	vertical    REAL,
	broad_jump  REAL,
	three_cone  REAL,
	shuttle     REAL,
	av          INTEGER,
	pick        INTEGER,
	height_cm   REAL
);
CREATE INDEX IF NOT EXISTS idx_players_grp ON players(grp);
`

// Archive is a SQLite copy of the most recent cleaned, segmented dataset
type Archive struct {
	db   *sql.DB
	path string
}

// OpenArchive opens or creates the archive database at path
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	if _, err := db.Exec(archiveSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing archive schema: %w", err)
	}

	return &Archive{db: db, path: path}, nil
}

// Path returns the database file path
func (a *Archive) Path() string {
	return a.path
}

// Close closes the database
func (a *Archive) Close() error {
	return a.db.Close()
}

// ReplaceGroups replaces the archived dataset with groups, tagged with runID
func (a *Archive) ReplaceGroups(ctx context.Context, runID string, groups map[combine.Group][]combine.Record) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM players"); err != nil {
		return fmt.Errorf("clearing players: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO players
		(run_id, grp, year, player, pos, wt, forty, vertical, broad_jump, three_cone, shuttle, av, pick, height_cm)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range combine.Groups() {
		for _, r := range groups[g] {
			_, err := stmt.ExecContext(ctx, runID, string(g), r.Year, r.Player, r.Pos,
				nullFloat(r.Wt), nullFloat(r.Forty), nullFloat(r.Vertical), nullFloat(r.BroadJump),
				nullFloat(r.ThreeCone), nullFloat(r.Shuttle), nullInt(r.AV), nullInt(r.Pick),
				nullFloat(r.HeightCM))
			if err != nil {
				return fmt.Errorf("inserting %s: %w", r.Player, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	return nil
}

// GroupSummary is a per-group aggregate over the archive
type GroupSummary struct {
	Group    combine.Group `json:"group"`
	Players  int           `json:"players"`
	MeanAV   float64       `json:"mean_av"`
	MeanPick float64       `json:"mean_pick"`
}

// Summarize returns player counts and means per group, in group order
func (a *Archive) Summarize(ctx context.Context) ([]GroupSummary, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT grp, COUNT(*), COALESCE(AVG(av), 0), COALESCE(AVG(pick), 0) FROM players GROUP BY grp")
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	byGroup := make(map[combine.Group]GroupSummary)
	for rows.Next() {
		var s GroupSummary
		var grp string
		if err := rows.Scan(&grp, &s.Players, &s.MeanAV, &s.MeanPick); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		s.Group = combine.Group(grp)
		byGroup[s.Group] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	summaries := make([]GroupSummary, 0, len(byGroup))
	for _, g := range combine.Groups() {
		s, ok := byGroup[g]
		if !ok {
			s = GroupSummary{Group: g}
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
