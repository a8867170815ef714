package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/regression"
	"github.com/pfrederiksen/nfl-combine/internal/storage"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByGroup   SortOrder = "group"
	SortByLR      SortOrder = "lr"
	SortBySVR     SortOrder = "svr"
	SortByPlayers SortOrder = "players"
	SortByAV      SortOrder = "av"
)

func parseSortOrder(s string, allowed ...SortOrder) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, len(allowed))
	for i, a := range allowed {
		if order == a {
			return order, nil
		}
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid sort: %s (must be one of %s)", s, strings.Join(names, ", "))
}

type groupResult struct {
	group  combine.Group
	result regression.Result
}

// sortedResults orders a study's results. Scores sort best first; ties fall back to group order.
func sortedResults(results map[combine.Group]regression.Result, order SortOrder) []groupResult {
	rows := make([]groupResult, 0, len(results))
	for _, g := range combine.Groups() {
		if r, ok := results[g]; ok {
			rows = append(rows, groupResult{group: g, result: r})
		}
	}

	switch order {
	case SortByLR:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].result.LRR2 > rows[j].result.LRR2
		})
	case SortBySVR:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].result.SVRR2 > rows[j].result.SVRR2
		})
	}
	return rows
}

// sortSummaries orders archive summaries in place. Summarize already returns group order.
func sortSummaries(summaries []storage.GroupSummary, order SortOrder) {
	switch order {
	case SortByPlayers:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Players > summaries[j].Players
		})
	case SortByAV:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].MeanAV > summaries[j].MeanAV
		})
	}
}
