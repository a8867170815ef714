package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/config"
	"github.com/pfrederiksen/nfl-combine/internal/logger"
	"github.com/pfrederiksen/nfl-combine/internal/pipeline"
	"github.com/pfrederiksen/nfl-combine/internal/regression"
	"github.com/pfrederiksen/nfl-combine/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	// ExitSkipped means a regression study skipped at least one group
	ExitSkipped = 2
)

// errSkipped is returned by regress when a study skipped a group
var errSkipped = errors.New("some groups were skipped")

type rootOptions struct {
	configPath string
	dataDir    string
	format     string
	verbose    bool

	start   int
	end     int
	workers int
	seed    uint64
	sort    string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nfl-combine",
		Short: "Scrape NFL combine results and model draft outcomes",
		Long: `A CLI tool to scrape NFL scouting combine measurements and draft results,
join them with five-year career value, split them into position groups and fit
regression models per group.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default $NFLCOMBINE_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory for snapshots and datasets")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScrapeCmd(opts),
		newCleanCmd(opts),
		newRegressCmd(opts),
		newSummaryCmd(opts),
	)
	return cmd
}

func newScrapeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape combine years and rebuild the position datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.start, "start", 0, "First combine year (default from config)")
	cmd.Flags().IntVar(&opts.end, "end", 0, "Last combine year (default from config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent profile fetches (default from config)")
	return cmd
}

func newCleanCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Rebuild the position datasets from saved yearly snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.start, "start", 0, "First combine year (default from config)")
	cmd.Flags().IntVar(&opts.end, "end", 0, "Last combine year (default from config)")
	return cmd
}

func newRegressCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "regress [study...]",
		Short:     "Fit ridge and SVR models per position group",
		Long:      "Runs the named studies (results, just_pick, pick), or all of them, and saves each to the results directory.",
		ValidArgs: []string{"results", "just_pick", "pick"},
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegress(cmd, opts, args)
		},
	}
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Train/test split seed (default from config)")
	cmd.Flags().StringVar(&opts.sort, "sort", string(SortByGroup), "Sort rows by: group, lr or svr")
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show player counts and means per group from the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.sort, "sort", string(SortByGroup), "Sort rows by: group, players or av")
	return cmd
}

// env is everything a command needs after flags and config are resolved
type env struct {
	cfg    *config.Config
	store  *storage.Storage
	log    *logger.Logger
	format OutputFormat
}

func (o *rootOptions) setup(cmd *cobra.Command) (*env, error) {
	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON {
		return nil, fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("start") {
		cfg.StartYear = o.start
	}
	if flags.Changed("end") {
		cfg.EndYear = o.end
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	log.Debug("Configuration loaded", logger.Fields{
		"data_dir": store.Dir(),
		"origin":   cfg.Origin,
		"start":    cfg.StartYear,
		"end":      cfg.EndYear,
		"workers":  cfg.Workers,
	})

	return &env{cfg: cfg, store: store, log: log, format: format}, nil
}

func runScrape(cmd *cobra.Command, opts *rootOptions) error {
	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	metrics := logger.NewMetrics()
	runOpts := []pipeline.Option{
		pipeline.WithLogger(e.log),
		pipeline.WithMetrics(metrics),
	}
	if opts.verbose {
		runOpts = append(runOpts, pipeline.WithProgress(func(year int, player string, av int) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d: %s (%d)\n", year, player, av)
		}))
	}

	run := pipeline.New(e.cfg, e.store, runOpts...)
	ctx := cmd.Context()
	if err := run.Scrape(ctx); err != nil {
		return err
	}

	groups, err := run.Build(ctx)
	if err != nil {
		return fmt.Errorf("building datasets: %w", err)
	}

	result := &ScrapeOutput{
		RunID:      run.ID,
		FinishedAt: time.Now().UTC(),
		Years:      run.Summaries(),
		Groups:     groupCounts(groups),
		Metrics:    metrics.GetSnapshot(),
	}
	return writeResult(cmd.OutOrStdout(), result, e.format, opts.verbose)
}

func runClean(cmd *cobra.Command, opts *rootOptions) error {
	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	groups, err := pipeline.Rebuild(cmd.Context(), e.store, e.cfg.Years(), uuid.NewString(), e.log)
	if err != nil {
		return fmt.Errorf("rebuilding datasets: %w", err)
	}

	result := &CleanOutput{
		Years:  e.cfg.Years(),
		Groups: groupCounts(groups),
	}
	return writeResult(cmd.OutOrStdout(), result, e.format, opts.verbose)
}

func runRegress(cmd *cobra.Command, opts *rootOptions, args []string) error {
	order, err := parseSortOrder(opts.sort, SortByGroup, SortByLR, SortBySVR)
	if err != nil {
		return err
	}

	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	studies := regression.Studies()
	if len(args) > 0 {
		studies = studies[:0]
		for _, name := range args {
			s, _ := regression.StudyByName(name)
			studies = append(studies, s)
		}
	}

	runner := regression.NewRunner(e.store,
		regression.WithSeed(e.cfg.Seed),
		regression.WithTrainFraction(e.cfg.TrainFraction),
		regression.WithLogger(e.log),
	)
	reports, err := runner.RunAll(cmd.Context(), studies)
	if err != nil {
		return fmt.Errorf("running regressions: %w", err)
	}

	result := &RegressOutput{Seed: e.cfg.Seed, Reports: reports, order: order}
	if err := writeResult(cmd.OutOrStdout(), result, e.format, opts.verbose); err != nil {
		return err
	}

	for _, r := range reports {
		if len(r.Skipped) > 0 {
			return errSkipped
		}
	}
	return nil
}

func runSummary(cmd *cobra.Command, opts *rootOptions) error {
	order, err := parseSortOrder(opts.sort, SortByGroup, SortByPlayers, SortByAV)
	if err != nil {
		return err
	}

	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	archive, err := e.store.OpenArchive()
	if err != nil {
		return err
	}
	defer archive.Close()

	summaries, err := archive.Summarize(cmd.Context())
	if err != nil {
		return err
	}
	sortSummaries(summaries, order)

	result := &SummaryOutput{Archive: archive.Path(), Groups: summaries}
	return writeResult(cmd.OutOrStdout(), result, e.format, opts.verbose)
}

func groupCounts(groups map[combine.Group][]combine.Record) map[combine.Group]int {
	counts := make(map[combine.Group]int, len(groups))
	for g, records := range groups {
		counts[g] = len(records)
	}
	return counts
}

func writeResult(w io.Writer, result textWriter, format OutputFormat, verbose bool) error {
	if err := WriteOutput(w, result, format, verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI and exits with the matching status code
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, errSkipped):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		os.Exit(ExitSkipped)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
