package plackett

import (
	"context"
	"time"

	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// Observer receives convergence-loop diagnostics. The estimator itself has
// no display dependency; progress reporting is injected through this
// interface.
type Observer interface {
	// Sweep is invoked after every iteration with the L2 distance between
	// successive gamma vectors.
	Sweep(iteration int, elapsed time.Duration, dist float64)
	// Diverged is invoked when the distance increased over the previous
	// sweep. This is a diagnostic, not an error: it usually indicates a
	// poorly connected comparison graph.
	Diverged(dist, prev float64)
}

// NopObserver discards all diagnostics.
type NopObserver struct{}

func (NopObserver) Sweep(int, time.Duration, float64) {}
func (NopObserver) Diverged(float64, float64)         {}

// LogObserver reports sweeps at debug level and divergence at warn level.
type LogObserver struct {
	Log logger.Logger
}

func (o LogObserver) Sweep(iteration int, elapsed time.Duration, dist float64) {
	o.Log.Debug(context.Background(), "mm sweep",
		logger.Int("iteration", iteration),
		logger.Float64("seconds", elapsed.Seconds()),
		logger.Float64("l2", dist))
}

func (o LogObserver) Diverged(dist, prev float64) {
	o.Log.Warn(context.Background(), "gamma difference increased",
		logger.Float64("l2", dist),
		logger.Float64("previous", prev))
}

// MetricsObserver records sweep and divergence counters.
type MetricsObserver struct{}

func (MetricsObserver) Sweep(int, time.Duration, float64) {
	metrics.RecordEstimatorSweep()
}

func (MetricsObserver) Diverged(float64, float64) {
	metrics.RecordEstimatorDivergence()
}

// MultiObserver fans diagnostics out to several observers.
type MultiObserver []Observer

func (m MultiObserver) Sweep(iteration int, elapsed time.Duration, dist float64) {
	for _, o := range m {
		o.Sweep(iteration, elapsed, dist)
	}
}

func (m MultiObserver) Diverged(dist, prev float64) {
	for _, o := range m {
		o.Diverged(dist, prev)
	}
}
