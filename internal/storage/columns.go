package storage

import (
	"strconv"

	"github.com/pfrederiksen/nfl-combine/internal/combine"
)

type column struct {
	name string
	get  func(*combine.Record) string
	set  func(*combine.Record, string) error
}

func textColumn(name string, field func(*combine.Record) *string) column {
	return column{
		name: name,
		get:  func(r *combine.Record) string { return *field(r) },
		set: func(r *combine.Record, v string) error {
			*field(r) = v
			return nil
		},
	}
}

func floatColumn(name string, field func(*combine.Record) **float64) column {
	return column{
		name: name,
		get:  func(r *combine.Record) string { return formatFloat(*field(r)) },
		set: func(r *combine.Record, v string) error {
			f, err := parseFloat(v)
			if err != nil {
				return err
			}
			*field(r) = f
			return nil
		},
	}
}

func intColumn(name string, field func(*combine.Record) **int) column {
	return column{
		name: name,
		get:  func(r *combine.Record) string { return formatInt(*field(r)) },
		set: func(r *combine.Record, v string) error {
			i, err := parseInt(v)
			if err != nil {
				return err
			}
			*field(r) = i
			return nil
		},
	}
}

var (
	colYear = column{
		name: "Year",
		get:  func(r *combine.Record) string { return strconv.Itoa(r.Year) },
		set: func(r *combine.Record, v string) error {
			if v == "" {
				return nil
			}
			year, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			r.Year = year
			return nil
		},
	}
	colPlayer    = textColumn("Player", func(r *combine.Record) *string { return &r.Player })
	colPos       = textColumn("Pos", func(r *combine.Record) *string { return &r.Pos })
	colWt        = floatColumn("Wt", func(r *combine.Record) **float64 { return &r.Wt })
	colForty     = floatColumn("40yd", func(r *combine.Record) **float64 { return &r.Forty })
	colVertical  = floatColumn("Vertical", func(r *combine.Record) **float64 { return &r.Vertical })
	colBroadJump = floatColumn("Broad Jump", func(r *combine.Record) **float64 { return &r.BroadJump })
	colThreeCone = floatColumn("3Cone", func(r *combine.Record) **float64 { return &r.ThreeCone })
	colShuttle   = floatColumn("Shuttle", func(r *combine.Record) **float64 { return &r.Shuttle })
	colAV        = intColumn("5AV", func(r *combine.Record) **int { return &r.AV })
)

// yearColumns is the schema of a yearly snapshot: the scraped table plus career value
var yearColumns = []column{
	colYear,
	colPlayer,
	colPos,
	textColumn("School", func(r *combine.Record) *string { return &r.School }),
	textColumn("College", func(r *combine.Record) *string { return &r.College }),
	textColumn("Ht", func(r *combine.Record) *string { return &r.Ht }),
	colWt,
	colForty,
	colVertical,
	floatColumn("Bench", func(r *combine.Record) **float64 { return &r.Bench }),
	colBroadJump,
	colThreeCone,
	colShuttle,
	textColumn("Drafted (tm/rnd/yr)", func(r *combine.Record) *string { return &r.Drafted }),
	textColumn("Profile", func(r *combine.Record) *string { return &r.ProfilePath }),
	colAV,
	{
		name: "5AV Miss",
		get:  func(r *combine.Record) string { return string(r.AVMiss) },
		set: func(r *combine.Record, v string) error {
			r.AVMiss = combine.MissKind(v)
			return nil
		},
	},
	{
		name: "Ambiguous",
		get: func(r *combine.Record) string {
			if r.Ambiguous {
				return "true"
			}
			return ""
		},
		set: func(r *combine.Record, v string) error {
			r.Ambiguous = v == "true"
			return nil
		},
	},
}

// groupColumns is the schema of a cleaned per-position dataset
var groupColumns = []column{
	colYear,
	colPlayer,
	colPos,
	colWt,
	colForty,
	colVertical,
	colBroadJump,
	colThreeCone,
	colShuttle,
	colAV,
	intColumn("Pick", func(r *combine.Record) **int { return &r.Pick }),
	floatColumn("Height (cm)", func(r *combine.Record) **float64 { return &r.HeightCM }),
}
