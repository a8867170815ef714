package careervalue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/htmltable"
	"github.com/pfrederiksen/nfl-combine/internal/logger"
)

const (
	// ValueColumn is the header of the per-season value column
	ValueColumn = "AV"

	// Seasons is how many leading career rows are summed
	Seasons = 5
)

var (
	errNoTable  = errors.New("no table with an AV column")
	errNotValue = errors.New("non-numeric AV cell")
)

// ProfileFetcher fetches a player's profile page by site-relative path
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, path string) (*goquery.Document, error)
}

// Result is the outcome of one career value computation
type Result struct {
	Player    string
	Path      string
	AV        int
	Miss      combine.MissKind
	Ambiguous bool
	Cached    bool
	Err       error
}

// OK reports whether the value was computed
func (r Result) OK() bool {
	return r.Miss == combine.MissNone
}

// Aggregator computes five-year career value for players of one combine year
type Aggregator struct {
	fetcher    ProfileFetcher
	log        *logger.Logger
	metrics    *logger.Metrics
	cache      *Cache
	onProgress func(player string, av int)
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithLogger sets the logger used for progress and miss reporting
func WithLogger(l *logger.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// WithMetrics sets the metrics tracker that counts resolutions and misses
func WithMetrics(m *logger.Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// WithCache reuses values computed for the same profile path, e.g. by an earlier run
func WithCache(c *Cache) Option {
	return func(a *Aggregator) {
		a.cache = c
	}
}

// WithProgress registers a callback invoked after each successful computation
func WithProgress(fn func(player string, av int)) Option {
	return func(a *Aggregator) {
		a.onProgress = fn
	}
}

// New creates an Aggregator backed by fetcher
func New(fetcher ProfileFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		log:     logger.Default(),
		metrics: logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Compute returns the player's five-year AV sum or the reason it is missing.
// A player absent from urls is a miss without any network call.
func (a *Aggregator) Compute(ctx context.Context, player string, urls *combine.URLMap) Result {
	result := Result{Player: player}

	path, ok := urls.Get(player)
	if !ok {
		result.Miss = combine.MissNoURL
		return a.finish(result)
	}
	result.Path = path
	result.Ambiguous = urls.IsAmbiguous(player)

	if a.cache != nil {
		if av, ok := a.cache.Get(path); ok {
			result.AV = av
			result.Cached = true
			return a.finish(result)
		}
	}

	doc, err := a.fetcher.FetchProfile(ctx, path)
	if err != nil {
		result.Miss = combine.MissFetch
		result.Err = err
		return a.finish(result)
	}

	av, miss, err := SumAV(doc)
	result.AV = av
	result.Miss = miss
	result.Err = err
	if a.cache != nil && result.OK() {
		a.cache.Set(path, av)
	}
	return a.finish(result)
}

func (a *Aggregator) finish(r Result) Result {
	fields := logger.Fields{"player": r.Player}
	if r.Ambiguous {
		fields["ambiguous"] = true
	}

	if r.OK() {
		a.metrics.IncrCounter("careervalue.resolved")
		fields["av"] = r.AV
		if r.Cached {
			a.metrics.IncrCounter("careervalue.cached")
			fields["cached"] = true
		}
		a.log.Info("Resolved player", fields)
		if a.onProgress != nil {
			a.onProgress(r.Player, r.AV)
		}
		return r
	}

	a.metrics.IncrCounter("careervalue.miss." + string(r.Miss))
	fields["miss"] = string(r.Miss)
	if r.Path != "" {
		fields["path"] = r.Path
	}
	if r.Miss == combine.MissNoURL {
		a.log.Debug("No profile link", fields)
	} else {
		a.log.Warn(fmt.Sprintf("Career value unavailable: %v", r.Err), fields)
	}
	return r
}

// SumAV finds the first table with an AV column and sums it over the first five rows.
// Blank cells count as zero.
func SumAV(doc *goquery.Document) (int, combine.MissKind, error) {
	for _, t := range htmltable.All(doc) {
		if t.Column(ValueColumn) < 0 {
			continue
		}

		rows := t.Rows
		if len(rows) > Seasons {
			rows = rows[:Seasons]
		}

		var total float64
		for _, row := range rows {
			cell, _ := t.Value(row, ValueColumn)
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return 0, combine.MissParse, fmt.Errorf("%w: %q", errNotValue, cell)
			}
			total += v
		}
		return int(total), combine.MissNone, nil
	}

	return 0, combine.MissNoTable, errNoTable
}
