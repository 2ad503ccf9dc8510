// Package crossval orchestrates K-fold cross-validation of rating systems:
// every fold in turn is held out, each registered system is trained on the
// remaining folds, and the held-out fold is scored with the relative-order
// metric.
package crossval

import (
	"context"
	"math"
	"sort"

	"github.com/okian/ratelab/internal/domain/eval"
	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// Report summarizes one system's error across all folds.
type Report struct {
	System     string
	FoldErrors []float64
	Mean       float64
	// StdDev is the sample standard deviation of the fold errors; zero
	// with fewer than two folds.
	StdDev float64
}

// Validator runs registered systems over pre-partitioned folds. Every
// fold/system pair trains from a fresh table; no state crosses fold or
// system boundaries.
type Validator struct {
	systems   []rating.System
	evaluator *eval.Evaluator
	log       logger.Logger
}

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithSystem registers a rating system. Order of registration is the order
// of the reports.
func WithSystem(s rating.System) Option {
	return func(v *Validator) {
		if s != nil {
			v.systems = append(v.systems, s)
		}
	}
}

// WithEvaluator overrides the default evaluator.
func WithEvaluator(e *eval.Evaluator) Option {
	return func(v *Validator) {
		if e != nil {
			v.evaluator = e
		}
	}
}

// WithLogger attaches a logger for progress and imbalance warnings.
func WithLogger(log logger.Logger) Option {
	return func(v *Validator) {
		v.log = log
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{evaluator: eval.New()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run cross-validates every registered system, one report per system in
// registration order.
func (v *Validator) Run(ctx context.Context, folds []Fold) ([]Report, error) {
	if len(folds) == 0 {
		return nil, ErrNoFolds
	}
	if len(v.systems) == 0 {
		return nil, ErrNoSystems
	}
	if d := imbalance(folds); d > 1 {
		if v.log != nil {
			v.log.Warn(ctx, "partition size varies by more than one game",
				logger.Int("delta", d))
		}
	}

	errorRates := make(map[string][]float64, len(v.systems))
	for testIdx, test := range folds {
		testResults := model.Results(test)
		trainResults := v.trainingSet(folds, testIdx)

		for _, system := range v.systems {
			table, err := system.Train(ctx, trainResults)
			if err != nil {
				return nil, err
			}
			stats := v.evaluator.OrderError(ctx, testResults, table)
			errorRates[system.Name()] = append(errorRates[system.Name()], stats.Value)
			metrics.RecordFoldCompleted(stats.Value)
			if v.log != nil {
				v.log.Info(ctx, "finished fold",
					logger.Int("fold", testIdx+1),
					logger.String("system", system.Name()),
					logger.Float64("error", stats.Value))
			}
		}
	}

	reports := make([]Report, 0, len(v.systems))
	for _, system := range v.systems {
		rates := errorRates[system.Name()]
		mean, stddev := meanStdDev(rates)
		reports = append(reports, Report{
			System:     system.Name(),
			FoldErrors: rates,
			Mean:       mean,
			StdDev:     stddev,
		})
	}
	return reports, nil
}

// trainingSet concatenates every fold except the held-out one and re-sorts
// by gameID so training order is deterministic.
func (v *Validator) trainingSet(folds []Fold, testIdx int) []model.Result {
	var train []model.GameRecord
	for i, f := range folds {
		if i == testIdx {
			continue
		}
		train = append(train, f...)
	}
	sort.Slice(train, func(a, b int) bool { return train[a].GameID < train[b].GameID })
	return model.Results(train)
}

func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if len(values) < 2 {
		return mean, 0
	}
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)-1))
}
