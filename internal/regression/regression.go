package regression

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"github.com/pfrederiksen/nfl-combine/internal/logger"
	"gonum.org/v1/gonum/stat"
)

const (
	// TrainFraction is the chance of each row landing in the train split
	TrainFraction = 0.55

	// MinRows is the smallest group that is fitted
	MinRows = 4

	// RidgeAlpha is the ridge penalty
	RidgeAlpha = 1.0
)

// ErrInsufficientData means a group has too few usable rows to fit and score
var ErrInsufficientData = errors.New("insufficient data")

// Result is the outcome of one study for one position group
type Result struct {
	LRR2      float64   `json:"lr_r2_score"`
	SVRR2     float64   `json:"svr_r2_score"`
	LRCoef    []float64 `json:"lr_coef"`
	LRInt     int       `json:"lr_int"`
	TrainRows int       `json:"train_rows"`
	TestRows  int       `json:"test_rows"`
}

// Fit standardizes the study variables, splits the rows with rng and fits both models.
// Rows missing any study variable are ignored.
func Fit(records []combine.Record, study Study, trainFraction float64, rng *rand.Rand) (Result, error) {
	vars := append(append([]Variable{}, study.Inputs...), study.Outcome)

	var table [][]float64
	for i := range records {
		row := make([]float64, len(vars))
		ok := true
		for j, v := range vars {
			if row[j], ok = v.Value(&records[i]); !ok {
				break
			}
		}
		if ok {
			table = append(table, row)
		}
	}
	if len(table) < MinRows {
		return Result{}, fmt.Errorf("%w: %d complete rows, need %d", ErrInsufficientData, len(table), MinRows)
	}

	for j, v := range vars {
		standardize(table, j, v.LowerIsBetter)
	}

	last := len(vars) - 1
	var trainX, testX [][]float64
	var trainY, testY []float64
	for _, row := range table {
		if rng.Float64() < trainFraction {
			trainX = append(trainX, row[:last])
			trainY = append(trainY, row[last])
		} else {
			testX = append(testX, row[:last])
			testY = append(testY, row[last])
		}
	}
	if len(trainX) == 0 || len(testX) < 2 {
		return Result{}, fmt.Errorf("%w: split into %d train and %d test rows", ErrInsufficientData, len(trainX), len(testX))
	}

	ridge := NewRidge(RidgeAlpha)
	if err := ridge.Fit(trainX, trainY); err != nil {
		return Result{}, fmt.Errorf("fitting ridge: %w", err)
	}
	svr := NewSVR()
	if err := svr.Fit(trainX, trainY); err != nil {
		return Result{}, fmt.Errorf("fitting svr: %w", err)
	}

	lrPred := make([]float64, len(testX))
	svrPred := make([]float64, len(testX))
	for i, row := range testX {
		lrPred[i] = ridge.Predict(row)
		svrPred[i] = svr.Predict(row)
	}

	result := Result{
		LRR2:      stat.RSquaredFrom(lrPred, testY, nil),
		SVRR2:     stat.RSquaredFrom(svrPred, testY, nil),
		LRCoef:    ridge.Coef,
		LRInt:     int(ridge.Intercept),
		TrainRows: len(trainX),
		TestRows:  len(testX),
	}
	if !finite(result.LRR2) || !finite(result.SVRR2) {
		return Result{}, fmt.Errorf("%w: test outcome is constant", ErrInsufficientData)
	}
	return result, nil
}

// standardize rescales column j to zero mean and unit sample deviation.
// A constant column is only centered.
func standardize(table [][]float64, j int, negate bool) {
	col := make([]float64, len(table))
	for i, row := range table {
		col[i] = row[j]
	}
	mean, std := stat.MeanStdDev(col, nil)

	for _, row := range table {
		v := row[j] - mean
		if std > 0 {
			v /= std
		}
		if negate {
			v = -v
		}
		row[j] = v
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Store loads cleaned groups and saves study results
type Store interface {
	LoadGroup(g combine.Group) ([]combine.Record, error)
	SaveJSON(name string, v interface{}) error
}

// Runner runs studies over every position group
type Runner struct {
	store         Store
	seed          uint64
	trainFraction float64
	log           *logger.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithSeed sets the seed of the train/test split
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithTrainFraction overrides TrainFraction
func WithTrainFraction(f float64) Option {
	return func(r *Runner) {
		if f > 0 && f < 1 {
			r.trainFraction = f
		}
	}
}

// WithLogger sets the logger used for skipped groups
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// NewRunner creates a Runner reading from and writing to store
func NewRunner(store Store, opts ...Option) *Runner {
	r := &Runner{
		store:         store,
		trainFraction: TrainFraction,
		log:           logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report is the outcome of one study across all groups
type Report struct {
	Study   string                   `json:"study"`
	File    string                   `json:"file"`
	Inputs  []string                 `json:"inputs"`
	Outcome string                   `json:"outcome"`
	Results map[combine.Group]Result `json:"results"`
	Skipped []combine.Group          `json:"skipped,omitempty"`
}

// Run fits study for every group and saves the results keyed by group.
// Groups with too little data are skipped with a warning; any other failure aborts.
func (r *Runner) Run(ctx context.Context, study Study) (*Report, error) {
	rng := rand.New(rand.NewPCG(r.seed, r.seed))
	report := &Report{
		Study:   study.Name,
		File:    study.File,
		Inputs:  study.InputNames(),
		Outcome: study.Outcome.Name,
		Results: make(map[combine.Group]Result),
	}

	for _, g := range combine.Groups() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := r.store.LoadGroup(g)
		if err != nil {
			return nil, err
		}

		result, err := Fit(records, study, r.trainFraction, rng)
		if errors.Is(err, ErrInsufficientData) {
			r.log.Warn("Skipping group", logger.Fields{
				"study":  study.Name,
				"group":  string(g),
				"reason": err.Error(),
			})
			report.Skipped = append(report.Skipped, g)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fitting %s for %s: %w", study.Name, g, err)
		}
		report.Results[g] = result
	}

	if err := r.store.SaveJSON(study.File, report.Results); err != nil {
		return nil, fmt.Errorf("saving %s results: %w", study.Name, err)
	}
	return report, nil
}

// RunAll runs every study in order
func (r *Runner) RunAll(ctx context.Context, studies []Study) ([]*Report, error) {
	reports := make([]*Report, 0, len(studies))
	for _, s := range studies {
		report, err := r.Run(ctx, s)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
