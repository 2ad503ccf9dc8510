// Package plackett implements the batch Plackett-Luce strength estimator
// using the minorization-maximization algorithm for generalized
// Bradley-Terry models (Hunter 2004, section 5). The estimate is
// order-independent: it depends only on the set of games, not the sequence
// they arrived in.
package plackett

import (
	"context"
	"math"
	"time"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// DefaultTolerance matches the original rating runs.
const DefaultTolerance = 1e-9

// Estimator computes one unnormalized strength per player over an entire
// game corpus.
//
// The iteration requires the beats-graph over players to be strongly
// connected; on a disconnected corpus it diverges rather than fail. Run
// CheckConnectivity first, or enable the anchor player.
type Estimator struct {
	tolerance float64
	backend   Backend
	observer  Observer
	anchor    bool
	log       logger.Logger
}

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithTolerance sets the convergence tolerance on the L2 distance between
// successive gamma vectors.
func WithTolerance(tolerance float64) Option {
	return func(e *Estimator) {
		if tolerance > 0 {
			e.tolerance = tolerance
		}
	}
}

// WithBackend selects the sweep strategy.
func WithBackend(backend Backend) Option {
	return func(e *Estimator) {
		if backend != nil {
			e.backend = backend
		}
	}
}

// WithObserver injects the convergence diagnostics sink.
func WithObserver(observer Observer) Option {
	return func(e *Estimator) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// WithAnchor enables the synthetic anchor player.
func WithAnchor(enabled bool) Option {
	return func(e *Estimator) {
		e.anchor = enabled
	}
}

// WithLogger attaches a logger for connectivity warnings.
func WithLogger(log logger.Logger) Option {
	return func(e *Estimator) {
		e.log = log
	}
}

// New creates an Estimator. Defaults: tolerance 1e-9, dense backend, no
// anchor, no diagnostics.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		tolerance: DefaultTolerance,
		backend:   NewDenseBackend(),
		observer:  NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements rating.System.
func (e *Estimator) Name() string { return "plackett-luce" }

// Train implements rating.System.
func (e *Estimator) Train(ctx context.Context, games []model.Result) (rating.Table, error) {
	return e.Estimate(ctx, games)
}

// Estimate runs the MM iteration to the configured tolerance and returns
// the unnormalized strengths. Normalization is presentation and belongs to
// the caller.
func (e *Estimator) Estimate(ctx context.Context, games []model.Result) (*rating.StrengthTable, error) {
	if len(games) == 0 {
		return nil, ErrNoGames
	}

	if e.log != nil {
		undefeated, winless := CheckConnectivity(games)
		if len(undefeated) > 0 || len(winless) > 0 {
			e.log.Warn(ctx, "comparison graph is not strongly connected; ratings will almost certainly not converge",
				logger.Int("undefeated", len(undefeated)),
				logger.Int("winless", len(winless)),
				logger.Any("anchor_enabled", e.anchor))
		}
	}

	work := games
	anchor := ""
	if e.anchor {
		anchor, work = withAnchor(games)
	}

	e.backend.Prepare(work)
	players := e.backend.Players()
	gammas := make([]float64, len(players))
	for i := range gammas {
		gammas[i] = 1 / float64(len(players))
	}

	started := time.Now()
	last := started
	prev := math.Inf(1)
	iteration := 0
	for {
		next := e.backend.Sweep(gammas)
		dist := l2(next, gammas)
		gammas = next
		iteration++

		now := time.Now()
		e.observer.Sweep(iteration, now.Sub(last), dist)
		if dist > prev {
			e.observer.Diverged(dist, prev)
		}
		last = now
		prev = dist

		if dist <= e.tolerance {
			break
		}
	}
	metrics.RecordEstimatorDuration(time.Since(started).Seconds())

	out := make(map[string]float64, len(players))
	for i, p := range players {
		out[p] = gammas[i]
	}
	table := rating.NewStrengthTable(out)
	if anchor != "" {
		table.Delete(anchor)
	}
	return table, nil
}

// l2 is the Euclidean distance between successive gamma vectors.
func l2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
