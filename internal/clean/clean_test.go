package clean

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
)

func rawRecord(player, pos string, wt float64) combine.Record {
	return combine.Record{
		Year:      2005,
		Player:    player,
		Pos:       pos,
		School:    "State",
		College:   "College Stats",
		Ht:        "6-2",
		Drafted:   "Team / 1st / 12th pick / 2005",
		Wt:        combine.Float(wt),
		Forty:     combine.Float(4.5),
		Vertical:  combine.Float(35),
		Bench:     combine.Float(20),
		BroadJump: combine.Float(120),
		ThreeCone: combine.Float(7.0),
		Shuttle:   combine.Float(4.3),
		AV:        combine.Int(20),
	}
}

func TestProcess(t *testing.T) {
	undrafted := rawRecord("Undrafted Guy", "WR", 190)
	undrafted.Drafted = ""

	noAV := rawRecord("No Profile", "RB", 210)
	noAV.AV = nil
	noAV.AVMiss = combine.MissNoURL

	noShuttle := rawRecord("Skipped Drill", "CB", 190)
	noShuttle.Shuttle = nil

	badHeight := rawRecord("Bad Height", "TE", 250)
	badHeight.Ht = "tall"

	records := []combine.Record{
		rawRecord("Test Player", "OLB", 250),
		undrafted,
		noAV,
		noShuttle,
		badHeight,
	}

	got := Process(records)
	if len(got) != 1 {
		t.Fatalf("Process() kept %d rows, want 1", len(got))
	}

	r := got[0]
	if r.Player != "Test Player" {
		t.Errorf("kept %q, want Test Player", r.Player)
	}
	if r.Pick == nil || *r.Pick != 12 {
		t.Errorf("Pick = %v, want 12", r.Pick)
	}
	if r.HeightCM == nil || math.Abs(*r.HeightCM-187.96) > 1e-9 {
		t.Errorf("HeightCM = %v, want 187.96", r.HeightCM)
	}
	if r.AV == nil || *r.AV != 20 {
		t.Errorf("AV = %v, want 20", r.AV)
	}
	if r.Ht != "" || r.Drafted != "" || r.School != "" || r.College != "" || r.Bench != nil {
		t.Errorf("raw columns not dropped: %+v", r)
	}

	// input slice is untouched
	if records[0].Drafted == "" || records[0].Pick != nil {
		t.Error("Process() modified its input")
	}
}

func TestProcess_Idempotent(t *testing.T) {
	records := []combine.Record{
		rawRecord("A", "RB", 210),
		rawRecord("B", "DE", 280),
		rawRecord("C", "QB", 220),
	}

	once := Process(records)
	twice := Process(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Process() not idempotent (-once +twice):\n%s", diff)
	}
	if len(once) != 3 {
		t.Errorf("Process() kept %d rows, want 3", len(once))
	}
}

func TestGroupOf(t *testing.T) {
	tests := []struct {
		pos    string
		wt     float64
		want   combine.Group
		wantOK bool
	}{
		{"RB", 215, combine.GroupRB, true},
		{"TE", 255, combine.GroupTE, true},
		{"WR", 190, combine.GroupWR, true},
		{"C", 300, combine.GroupOL, true},
		{"OG", 315, combine.GroupOL, true},
		{"OT", 320, combine.GroupOL, true},
		{"S", 205, combine.GroupS, true},
		{"CB", 190, combine.GroupCB, true},
		{"ILB", 245, combine.GroupLB, true},
		{"ILB", 260, combine.GroupLB, true},
		{"OLB", 246.9, combine.GroupLB, true},
		{"OLB", 247, combine.GroupEdge, true},
		{"OLB", 260, combine.GroupEdge, true},
		{"DE", 276.9, combine.GroupEdge, true},
		{"DE", 277, combine.GroupDL, true},
		{"DT", 250, combine.GroupDL, true},
		{"QB", 220, "", false},
		{"FB", 240, "", false},
		{"K", 200, "", false},
		{"P", 210, "", false},
		{"LS", 240, "", false},
		{"", 240, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.pos, func(t *testing.T) {
			got, ok := GroupOf(tt.pos, tt.wt)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("GroupOf(%q, %v) = %q, %v, want %q, %v", tt.pos, tt.wt, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	positions := []struct {
		pos string
		wt  float64
	}{
		{"RB", 210}, {"TE", 250}, {"WR", 190}, {"C", 300}, {"OG", 310}, {"OT", 315},
		{"S", 205}, {"CB", 190}, {"ILB", 240}, {"OLB", 240}, {"OLB", 247}, {"DE", 260},
		{"DE", 290}, {"DT", 300}, {"QB", 220}, {"K", 190},
	}

	records := make([]combine.Record, 0, len(positions))
	for i, p := range positions {
		r := rawRecord(string(rune('A'+i)), p.pos, p.wt)
		records = append(records, r)
	}

	groups := Segment(Process(records))

	if len(groups) != 9 {
		t.Fatalf("Segment() returned %d groups, want 9", len(groups))
	}

	wantCounts := map[combine.Group]int{
		combine.GroupRB: 1, combine.GroupTE: 1, combine.GroupWR: 1, combine.GroupOL: 3,
		combine.GroupS: 1, combine.GroupCB: 1, combine.GroupLB: 2, combine.GroupEdge: 2,
		combine.GroupDL: 2,
	}
	gotCounts := make(map[combine.Group]int)
	seen := make(map[string]int)
	for g, rows := range groups {
		gotCounts[g] = len(rows)
		for _, r := range rows {
			seen[r.Player]++
		}
	}
	if diff := cmp.Diff(wantCounts, gotCounts); diff != "" {
		t.Errorf("group sizes mismatch (-want +got):\n%s", diff)
	}

	// every recognized row lands in exactly one group
	for player, n := range seen {
		if n != 1 {
			t.Errorf("player %s appears in %d groups", player, n)
		}
	}
	if len(seen) != 14 {
		t.Errorf("%d players segmented, want 14 (QB and K excluded)", len(seen))
	}

	for _, r := range groups[combine.GroupEdge] {
		if r.Pos == "OLB" && *r.Wt != 247 {
			t.Errorf("unexpected OLB in Edge: %+v", r)
		}
	}
}

func TestSegment_Empty(t *testing.T) {
	groups := Segment(nil)
	for _, g := range combine.Groups() {
		rows, ok := groups[g]
		if !ok {
			t.Errorf("group %s missing from result", g)
		}
		if len(rows) != 0 {
			t.Errorf("group %s has %d rows, want 0", g, len(rows))
		}
	}
}
