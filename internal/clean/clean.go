// Package clean turns scraped combine records into the modelling dataset.
//
// Process derives the numeric pick and height from their raw descriptors, drops the raw
// text columns and removes every row with a missing value. Segment then splits the
// cleaned rows into the nine position groups.
package clean

import (
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/extract"
)

// Weight tie-breaks in pounds. OLBs at or above EdgeWeight rush the passer; DEs at or
// above InteriorWeight play inside.
const (
	EdgeWeight     = 247
	InteriorWeight = 277
)

// Process derives Pick and HeightCM, clears the raw text columns and keeps only complete
// rows. Records that no longer carry raw descriptors keep their derived values, so
// processing already-cleaned data is a no-op.
func Process(records []combine.Record) []combine.Record {
	cleaned := make([]combine.Record, 0, len(records))

	for _, r := range records {
		if r.Drafted != "" {
			r.Pick = nil
			if pick, ok := extract.Pick(r.Drafted); ok {
				r.Pick = combine.Int(pick)
			}
		}
		if r.Ht != "" {
			r.HeightCM = nil
			if cm, ok := extract.HeightCM(r.Ht); ok {
				r.HeightCM = combine.Float(cm)
			}
		}

		r.Drafted = ""
		r.Ht = ""
		r.School = ""
		r.College = ""
		r.Bench = nil

		if !r.Complete() {
			continue
		}
		cleaned = append(cleaned, r)
	}

	return cleaned
}

// GroupOf assigns a position and weight to its group.
// Positions outside the nine groups (QB, FB, K, P, LS) return false.
func GroupOf(pos string, wt float64) (combine.Group, bool) {
	switch pos {
	case "RB":
		return combine.GroupRB, true
	case "TE":
		return combine.GroupTE, true
	case "WR":
		return combine.GroupWR, true
	case "C", "OG", "OT":
		return combine.GroupOL, true
	case "S":
		return combine.GroupS, true
	case "CB":
		return combine.GroupCB, true
	case "ILB":
		return combine.GroupLB, true
	case "OLB":
		if wt < EdgeWeight {
			return combine.GroupLB, true
		}
		return combine.GroupEdge, true
	case "DE":
		if wt < InteriorWeight {
			return combine.GroupEdge, true
		}
		return combine.GroupDL, true
	case "DT":
		return combine.GroupDL, true
	}
	return "", false
}

// Segment partitions records into position groups. Every group is present in the
// result, possibly empty. Records without a weight or with an unknown position are left out.
func Segment(records []combine.Record) map[combine.Group][]combine.Record {
	groups := make(map[combine.Group][]combine.Record, len(combine.Groups()))
	for _, g := range combine.Groups() {
		groups[g] = []combine.Record{}
	}

	for _, r := range records {
		if r.Wt == nil {
			continue
		}
		g, ok := GroupOf(r.Pos, *r.Wt)
		if !ok {
			continue
		}
		groups[g] = append(groups[g], r)
	}

	return groups
}
