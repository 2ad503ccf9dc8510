// Package metrics provides Prometheus metrics for the ratelab toolkit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the toolkit.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Corpus metrics
	gamesLoaded    prometheus.Counter
	gamesDuplicate prometheus.Counter
	gamesFiltered  prometheus.Counter
	totalPlayers   prometheus.Gauge

	// Estimator metrics
	estimatorSweeps     prometheus.Counter
	estimatorDivergence prometheus.Counter
	estimatorDuration   prometheus.Histogram
	gamesRated          prometheus.Counter

	// Evaluation metrics
	evalPairs      prometheus.Counter
	evalMissed     prometheus.Counter
	foldsCompleted prometheus.Counter
	foldError      prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ratelab",
		subsystem:        "rating",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.gamesLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_loaded_total",
		Help:      "Total number of unique game records loaded",
	})

	m.gamesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_duplicate_total",
		Help:      "Total number of duplicate gameIDs discarded during load",
	})

	m.gamesFiltered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_filtered_total",
		Help:      "Total number of games removed by corpus filters",
	})

	m.totalPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_players",
		Help:      "Number of distinct players in the working corpus",
	})

	m.estimatorSweeps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimator_sweeps_total",
		Help:      "Total number of minorization-maximization sweeps executed",
	})

	m.estimatorDivergence = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimator_divergence_total",
		Help:      "Times the convergence distance increased between sweeps",
	})

	m.estimatorDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimator_duration_seconds",
		Help:      "Wall-clock duration of batch estimations",
		Buckets:   m.histogramBuckets,
	})

	m.gamesRated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_rated_total",
		Help:      "Total number of games applied by online updaters",
	})

	m.evalPairs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eval_pairs_total",
		Help:      "Total number of player pairs scored during evaluation",
	})

	m.evalMissed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eval_pairs_missed_total",
		Help:      "Pairs skipped because a participant had no rating",
	})

	m.foldsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "folds_completed_total",
		Help:      "Fold/system evaluations completed during cross-validation",
	})

	m.foldError = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fold_error_ratio",
		Help:      "Per-fold order prediction error rates",
		Buckets:   prometheus.LinearBuckets(0, 0.05, 20),
	})
}

// RecordGamesLoaded adds to the unique games counter.
func RecordGamesLoaded(n int) {
	globalManager.gamesLoaded.Add(float64(n))
}

// RecordGameDuplicate increments the duplicate games counter.
func RecordGameDuplicate() {
	globalManager.gamesDuplicate.Inc()
}

// RecordGamesFiltered adds to the filtered games counter.
func RecordGamesFiltered(n int) {
	globalManager.gamesFiltered.Add(float64(n))
}

// UpdateTotalPlayers sets the distinct player count.
func UpdateTotalPlayers(count int) {
	globalManager.totalPlayers.Set(float64(count))
}

// RecordEstimatorSweep increments the MM sweep counter.
func RecordEstimatorSweep() {
	globalManager.estimatorSweeps.Inc()
}

// RecordEstimatorDivergence increments the divergence diagnostic counter.
func RecordEstimatorDivergence() {
	globalManager.estimatorDivergence.Inc()
}

// RecordEstimatorDuration records a batch estimation duration in seconds.
func RecordEstimatorDuration(seconds float64) {
	globalManager.estimatorDuration.Observe(seconds)
}

// RecordGamesRated adds to the online-updater games counter.
func RecordGamesRated(n int) {
	globalManager.gamesRated.Add(float64(n))
}

// RecordEvalPairs adds to the scored pairs counter.
func RecordEvalPairs(n int) {
	globalManager.evalPairs.Add(float64(n))
}

// RecordEvalMissed adds to the missed pairs counter.
func RecordEvalMissed(n int) {
	globalManager.evalMissed.Add(float64(n))
}

// RecordFoldCompleted increments the fold counter and records its error rate.
func RecordFoldCompleted(errorRate float64) {
	globalManager.foldsCompleted.Inc()
	globalManager.foldError.Observe(errorRate)
}

// GetRegistry returns the custom registry for exposing via HTTP.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
