package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/nfl-combine/internal/careervalue"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/config"
	"github.com/pfrederiksen/nfl-combine/internal/logger"
	"github.com/pfrederiksen/nfl-combine/internal/resolver"
	"github.com/pfrederiksen/nfl-combine/internal/scraper"
	"github.com/pfrederiksen/nfl-combine/internal/storage"
)

const (
	// ManifestName is the run manifest file inside the data directory
	ManifestName = "run.json"

	// CacheName holds career values reused across runs
	CacheName = "av_cache.json"
)

// YearSummary describes the outcome of one scraped year
type YearSummary struct {
	Year      int                      `json:"year"`
	Rows      int                      `json:"rows"`
	Resolved  int                      `json:"resolved"`
	Misses    map[combine.MissKind]int `json:"misses,omitempty"`
	Ambiguous []string                 `json:"ambiguous,omitempty"`
	Duration  string                   `json:"duration"`
}

// Manifest records a run's progress
type Manifest struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Origin    string        `json:"origin"`
	Years     []YearSummary `json:"years"`
}

// Run is one scrape over a range of years
type Run struct {
	ID string

	cfg     *config.Config
	scraper *scraper.Scraper
	pool    *careervalue.Pool
	store   *storage.Storage
	log     *logger.Logger
	metrics *logger.Metrics
	cache   *careervalue.Cache

	onProgress func(year int, player string, av int)

	started   time.Time
	dataset   []combine.Record
	summaries []YearSummary
}

// Option configures a Run
type Option func(*Run)

// WithLogger sets the run's logger
func WithLogger(l *logger.Logger) Option {
	return func(r *Run) {
		r.log = l
	}
}

// WithMetrics sets the run's metrics tracker
func WithMetrics(m *logger.Metrics) Option {
	return func(r *Run) {
		r.metrics = m
	}
}

// WithProgress registers a callback for every player whose career value was computed
func WithProgress(fn func(year int, player string, av int)) Option {
	return func(r *Run) {
		r.onProgress = fn
	}
}

// New creates a Run from cfg that persists to store
func New(cfg *config.Config, store *storage.Storage, opts ...Option) *Run {
	r := &Run{
		ID:      uuid.NewString(),
		cfg:     cfg,
		store:   store,
		log:     logger.Default(),
		metrics: logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.scraper = scraper.New(
		scraper.WithOrigin(cfg.Origin),
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithRateLimit(cfg.RequestsPerSecond, cfg.Burst),
	)
	return r
}

// Scrape processes every configured year in order. A year whose combine page cannot be
// fetched or parsed aborts the run; years already finished keep their snapshots.
func (r *Run) Scrape(ctx context.Context) error {
	r.started = time.Now()
	r.dataset = nil
	r.summaries = nil
	if err := r.loadCache(); err != nil {
		return err
	}
	r.log.Info("Starting scrape", logger.Fields{
		"run_id": r.ID,
		"start":  r.cfg.StartYear,
		"end":    r.cfg.EndYear,
	})

	for _, year := range r.cfg.Years() {
		start := time.Now()

		records, summary, err := r.ScrapeYear(ctx, year)
		if err != nil {
			r.log.Error("Year failed", logger.Fields{"year": year}, err)
			return fmt.Errorf("scraping %d: %w", year, err)
		}

		if err := r.store.SaveYear(year, records); err != nil {
			return err
		}
		r.dataset = append(r.dataset, records...)

		elapsed := time.Since(start)
		summary.Duration = elapsed.Round(time.Millisecond).String()
		r.summaries = append(r.summaries, summary)
		r.metrics.RecordTiming("scrape.year", elapsed)
		r.metrics.AddCounter("scrape.rows", int64(summary.Rows))

		if err := r.saveManifest(); err != nil {
			return err
		}
		if err := r.saveCache(); err != nil {
			return err
		}

		r.log.Info("Year done", logger.Fields{
			"year":     year,
			"rows":     summary.Rows,
			"resolved": summary.Resolved,
			"duration": summary.Duration,
		})
	}

	return nil
}

// ScrapeYear fetches one year and returns its records with career value filled in
func (r *Run) ScrapeYear(ctx context.Context, year int) ([]combine.Record, YearSummary, error) {
	summary := YearSummary{Year: year, Misses: make(map[combine.MissKind]int)}

	page, err := r.scraper.FetchCombine(ctx, year)
	if err != nil {
		return nil, summary, err
	}
	records, err := page.Records()
	if err != nil {
		return nil, summary, err
	}
	table, err := page.Table()
	if err != nil {
		return nil, summary, err
	}
	urls := resolver.Resolve(table, year)

	players := make([]string, len(records))
	for i, rec := range records {
		players[i] = rec.Player
	}

	aggOpts := []careervalue.Option{
		careervalue.WithLogger(r.log),
		careervalue.WithMetrics(r.metrics),
		careervalue.WithProgress(func(player string, av int) {
			if r.onProgress != nil {
				r.onProgress(year, player, av)
			}
		}),
	}
	if r.cache != nil {
		aggOpts = append(aggOpts, careervalue.WithCache(r.cache))
	}
	agg := careervalue.New(r.scraper, aggOpts...)
	results, err := careervalue.NewPool(agg, r.cfg.Workers).ComputeAll(ctx, players, urls)
	if err != nil {
		return nil, summary, err
	}

	for i, res := range results {
		records[i].ProfilePath = res.Path
		records[i].Ambiguous = res.Ambiguous
		if res.OK() {
			records[i].AV = combine.Int(res.AV)
			summary.Resolved++
			continue
		}
		records[i].AVMiss = res.Miss
		summary.Misses[res.Miss]++
	}

	summary.Rows = len(records)
	summary.Ambiguous = urls.Ambiguous()
	return records, summary, nil
}

// Dataset returns the records accumulated so far
func (r *Run) Dataset() []combine.Record {
	return r.dataset
}

// Summaries returns the per-year summaries accumulated so far
func (r *Run) Summaries() []YearSummary {
	return r.summaries
}

// Build cleans the accumulated dataset and writes the per-position datasets
func (r *Run) Build(ctx context.Context) (map[combine.Group][]combine.Record, error) {
	return Build(ctx, r.store, r.dataset, r.ID, r.log)
}

func (r *Run) saveManifest() error {
	m := Manifest{
		RunID:     r.ID,
		StartedAt: r.started.UTC(),
		Origin:    r.cfg.Origin,
		Years:     r.summaries,
	}
	if err := r.store.SaveJSON(ManifestName, m); err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}
	return nil
}

// loadCache reads the value cache left by earlier runs, starting empty when there is none
func (r *Run) loadCache() error {
	if r.cfg.CacheTTL <= 0 {
		return nil
	}

	cache := careervalue.NewCache(r.cfg.CacheTTL)
	err := r.store.LoadJSON(CacheName, cache)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cache = careervalue.NewCache(r.cfg.CacheTTL)
	case err != nil:
		return fmt.Errorf("loading value cache: %w", err)
	}
	cache.TTL = r.cfg.CacheTTL
	if cache.Values == nil || cache.CachedAt == nil {
		r.log.Warn("Discarding malformed value cache", logger.Fields{"file": CacheName})
		cache = careervalue.NewCache(r.cfg.CacheTTL)
	}

	if removed := cache.CleanExpired(); removed > 0 {
		r.log.Debug("Expired cached values", logger.Fields{"removed": removed})
	}
	r.cache = cache
	return nil
}

func (r *Run) saveCache() error {
	if r.cache == nil {
		return nil
	}
	if err := r.store.SaveJSON(CacheName, r.cache); err != nil {
		return fmt.Errorf("saving value cache: %w", err)
	}
	return nil
}
