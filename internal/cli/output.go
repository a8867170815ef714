package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/logger"
	"github.com/pfrederiksen/nfl-combine/internal/pipeline"
	"github.com/pfrederiksen/nfl-combine/internal/regression"
	"github.com/pfrederiksen/nfl-combine/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

type textWriter interface {
	writeText(w io.Writer, verbose bool) error
}

// ScrapeOutput is the result of the scrape command
type ScrapeOutput struct {
	RunID      string                 `json:"run_id"`
	FinishedAt time.Time              `json:"finished_at"`
	Years      []pipeline.YearSummary `json:"years"`
	Groups     map[combine.Group]int  `json:"groups"`
	Metrics    logger.Snapshot        `json:"metrics"`
}

// CleanOutput is the result of the clean command
type CleanOutput struct {
	Years  []int                 `json:"years"`
	Groups map[combine.Group]int `json:"groups"`
}

// RegressOutput is the result of the regress command
type RegressOutput struct {
	Seed    uint64               `json:"seed"`
	Reports []*regression.Report `json:"reports"`

	order SortOrder
}

// SummaryOutput is the result of the summary command
type SummaryOutput struct {
	Archive string                 `json:"archive"`
	Groups  []storage.GroupSummary `json:"groups"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result textWriter, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return result.writeText(w, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func writeGroupCounts(w io.Writer, groups map[combine.Group]int) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Group", "Players"})
	total := 0
	for _, g := range combine.Groups() {
		t.AppendRow(table.Row{g, groups[g]})
		total += groups[g]
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
}

func (o *ScrapeOutput) writeText(w io.Writer, verbose bool) error {
	fmt.Fprintf(w, "Run %s\n", o.RunID)

	t := newTable(w)
	t.AppendHeader(table.Row{"Year", "Rows", "Resolved", "No URL", "Fetch", "No Table", "Parse", "Duration"})
	for _, y := range o.Years {
		t.AppendRow(table.Row{
			y.Year, y.Rows, y.Resolved,
			y.Misses[combine.MissNoURL], y.Misses[combine.MissFetch],
			y.Misses[combine.MissNoTable], y.Misses[combine.MissParse],
			y.Duration,
		})
	}
	t.Render()

	if verbose {
		for _, y := range o.Years {
			if len(y.Ambiguous) > 0 {
				fmt.Fprintf(w, "%d ambiguous names: %s\n", y.Year, strings.Join(y.Ambiguous, ", "))
			}
		}
	}

	writeGroupCounts(w, o.Groups)
	return nil
}

func (o *CleanOutput) writeText(w io.Writer, verbose bool) error {
	if len(o.Years) > 0 {
		fmt.Fprintf(w, "Rebuilt from %d-%d\n", o.Years[0], o.Years[len(o.Years)-1])
	}
	writeGroupCounts(w, o.Groups)
	return nil
}

func (o *RegressOutput) writeText(w io.Writer, verbose bool) error {
	for _, r := range o.Reports {
		fmt.Fprintf(w, "\n%s: %s -> %s (%s)\n", r.Study, strings.Join(r.Inputs, ", "), r.Outcome, r.File)

		header := table.Row{"Group", "Ridge R²", "SVR R²", "Intercept"}
		if verbose {
			for _, name := range r.Inputs {
				header = append(header, name)
			}
		}

		t := newTable(w)
		t.AppendHeader(header)
		for _, row := range sortedResults(r.Results, o.order) {
			line := table.Row{row.group, fmt.Sprintf("%.3f", row.result.LRR2), fmt.Sprintf("%.3f", row.result.SVRR2), row.result.LRInt}
			if verbose {
				for _, c := range row.result.LRCoef {
					line = append(line, fmt.Sprintf("%.3f", c))
				}
			}
			t.AppendRow(line)
		}
		t.Render()

		if len(r.Skipped) > 0 {
			skipped := make([]string, len(r.Skipped))
			for i, g := range r.Skipped {
				skipped[i] = string(g)
			}
			fmt.Fprintf(w, "Skipped (insufficient data): %s\n", strings.Join(skipped, ", "))
		}
	}
	return nil
}

func (o *SummaryOutput) writeText(w io.Writer, verbose bool) error {
	if verbose {
		fmt.Fprintf(w, "Archive: %s\n", o.Archive)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Group", "Players", "Mean 5AV", "Mean Pick"})
	total := 0
	for _, s := range o.Groups {
		t.AppendRow(table.Row{s.Group, s.Players, fmt.Sprintf("%.1f", s.MeanAV), fmt.Sprintf("%.1f", s.MeanPick)})
		total += s.Players
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
	return nil
}
