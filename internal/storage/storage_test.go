package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return s
}

func yearRecords() []combine.Record {
	return []combine.Record{
		{
			Year:        2005,
			Player:      "Ronnie Runner",
			Pos:         "RB",
			School:      "Auburn",
			College:     "College Stats",
			Ht:          "5-11",
			Drafted:     "Miami Dolphins / 1st / 2nd pick / 2005",
			Wt:          combine.Float(217),
			Forty:       combine.Float(4.43),
			Vertical:    combine.Float(41.5),
			Bench:       combine.Float(24),
			BroadJump:   combine.Float(123),
			ThreeCone:   combine.Float(6.84),
			Shuttle:     combine.Float(4.07),
			ProfilePath: "/players/R/RunnRo00.htm",
			AV:          combine.Int(25),
		},
		{
			Year:      2005,
			Player:    "Nate, \"The Nolink\"",
			Pos:       "WR",
			Ht:        "6-1",
			Wt:        combine.Float(198),
			Forty:     combine.Float(4.51),
			AVMiss:    combine.MissNoURL,
			Ambiguous: true,
		},
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/combine-data")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if want := filepath.Join(home, "combine-data"); s.Dir() != want {
		t.Errorf("Dir() = %q, want %q", s.Dir(), want)
	}
	if _, err := os.Stat(s.Dir()); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
}

func TestSaveLoadYear(t *testing.T) {
	s := newTestStorage(t)
	want := yearRecords()

	if err := s.SaveYear(2005, want); err != nil {
		t.Fatalf("SaveYear() error: %v", err)
	}

	got, err := s.LoadYear(2005)
	if err != nil {
		t.Fatalf("LoadYear() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadYear() mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(s.YearPath(2005))
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	if !strings.Contains(header, "Drafted (tm/rnd/yr)") || !strings.Contains(header, "5AV") {
		t.Errorf("snapshot header = %q", header)
	}
}

func TestLoadYears(t *testing.T) {
	s := newTestStorage(t)
	records := yearRecords()

	if err := s.SaveYear(2005, records[:1]); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveYear(2006, records[1:]); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadYears([]int{2005, 2006})
	if err != nil {
		t.Fatalf("LoadYears() error: %v", err)
	}
	if len(got) != 2 || got[1].Year != 2006 {
		t.Errorf("LoadYears() = %d records, second year %d", len(got), got[1].Year)
	}

	_, err = s.LoadYears([]int{2005, 2007})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadYears() with missing year error = %v, want ErrNotExist", err)
	}
}

func TestLoadYear_BadNumber(t *testing.T) {
	s := newTestStorage(t)
	content := "Year,Player,Pos,Wt\n2005,A,RB,heavy\n"
	if err := os.WriteFile(s.YearPath(2005), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.LoadYear(2005); err == nil || !strings.Contains(err.Error(), `"Wt"`) {
		t.Errorf("LoadYear() error = %v, want Wt parse error", err)
	}
}

func TestSaveLoadGroups(t *testing.T) {
	s := newTestStorage(t)
	edge := combine.Record{
		Year:      2005,
		Player:    "Test Player",
		Pos:       "OLB",
		Wt:        combine.Float(250),
		Forty:     combine.Float(4.5),
		Vertical:  combine.Float(35),
		BroadJump: combine.Float(120),
		ThreeCone: combine.Float(7.0),
		Shuttle:   combine.Float(4.3),
		AV:        combine.Int(20),
		Pick:      combine.Int(12),
		HeightCM:  combine.Float(187.96),
	}
	groups := map[combine.Group][]combine.Record{combine.GroupEdge: {edge}}

	if err := s.SaveGroups(groups); err != nil {
		t.Fatalf("SaveGroups() error: %v", err)
	}

	for _, g := range combine.Groups() {
		if _, err := os.Stat(s.GroupPath(g)); err != nil {
			t.Errorf("group file %s missing: %v", g, err)
		}
	}

	got, err := s.LoadGroup(combine.GroupEdge)
	if err != nil {
		t.Fatalf("LoadGroup() error: %v", err)
	}
	if diff := cmp.Diff([]combine.Record{edge}, got); diff != "" {
		t.Errorf("LoadGroup() mismatch (-want +got):\n%s", diff)
	}

	empty, err := s.LoadGroup(combine.GroupWR)
	if err != nil || len(empty) != 0 {
		t.Errorf("LoadGroup(WR) = %v, %v, want empty", empty, err)
	}
}

func TestSaveLoadJSON(t *testing.T) {
	s := newTestStorage(t)
	type payload struct {
		Score float64 `json:"score"`
	}

	if err := s.SaveJSON("results/test.json", map[string]payload{"CB": {Score: 0.25}}); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	var got map[string]payload
	if err := s.LoadJSON("results/test.json", &got); err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}
	if got["CB"].Score != 0.25 {
		t.Errorf("LoadJSON() = %+v", got)
	}

	if err := s.LoadJSON("missing.json", &got); err == nil {
		t.Error("LoadJSON() on missing file should fail")
	}
}

func TestArchive(t *testing.T) {
	s := newTestStorage(t)
	archive, err := s.OpenArchive()
	if err != nil {
		t.Fatalf("OpenArchive() error: %v", err)
	}
	defer archive.Close()

	row := func(player string, av, pick int) combine.Record {
		return combine.Record{
			Year: 2010, Player: player, Pos: "CB",
			Wt: combine.Float(190), AV: combine.Int(av), Pick: combine.Int(pick),
			HeightCM: combine.Float(180),
		}
	}
	groups := map[combine.Group][]combine.Record{
		combine.GroupCB: {row("A", 10, 20), row("B", 20, 40)},
	}

	ctx := context.Background()
	if err := archive.ReplaceGroups(ctx, "run-1", groups); err != nil {
		t.Fatalf("ReplaceGroups() error: %v", err)
	}
	// replacing again must not duplicate rows
	if err := archive.ReplaceGroups(ctx, "run-2", groups); err != nil {
		t.Fatalf("ReplaceGroups() second call error: %v", err)
	}

	summaries, err := archive.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if len(summaries) != 9 {
		t.Fatalf("Summarize() returned %d groups, want 9", len(summaries))
	}

	cb := summaries[0]
	if cb.Group != combine.GroupCB || cb.Players != 2 || cb.MeanAV != 15 || cb.MeanPick != 30 {
		t.Errorf("CB summary = %+v", cb)
	}
	if summaries[1].Players != 0 {
		t.Errorf("DL summary = %+v, want empty", summaries[1])
	}
}
