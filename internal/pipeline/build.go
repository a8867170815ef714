package pipeline

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/nfl-combine/internal/clean"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/logger"
	"github.com/pfrederiksen/nfl-combine/internal/storage"
)

// Build cleans records, segments them into position groups, writes one dataset per group
// and replaces the archive contents with the new groups.
func Build(ctx context.Context, store *storage.Storage, records []combine.Record, runID string, log *logger.Logger) (map[combine.Group][]combine.Record, error) {
	cleaned := clean.Process(records)
	groups := clean.Segment(cleaned)

	if err := store.SaveGroups(groups); err != nil {
		return nil, err
	}

	archive, err := store.OpenArchive()
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	if err := archive.ReplaceGroups(ctx, runID, groups); err != nil {
		return nil, fmt.Errorf("archiving groups: %w", err)
	}

	fields := logger.Fields{
		"rows":    len(records),
		"cleaned": len(cleaned),
	}
	for _, g := range combine.Groups() {
		fields[string(g)] = len(groups[g])
	}
	log.Info("Datasets written", fields)

	return groups, nil
}

// Rebuild reloads yearly snapshots from store and runs Build over them
func Rebuild(ctx context.Context, store *storage.Storage, years []int, runID string, log *logger.Logger) (map[combine.Group][]combine.Record, error) {
	records, err := store.LoadYears(years)
	if err != nil {
		return nil, err
	}
	return Build(ctx, store, records, runID, log)
}
