// Package config defines toolkit configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration shared by the command-line tools.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Tolerance is the Plackett-Luce convergence tolerance on the L2
	// distance between successive strength vectors.
	Tolerance float64 `koanf:"tolerance"`

	// Backend selects the estimator sweep strategy: "scalar" or "dense".
	Backend string `koanf:"backend"`

	// Anchor injects a synthetic player with one win and one loss against
	// everyone to force the comparison graph connected.
	Anchor bool `koanf:"anchor"`

	// PriorMu and PriorSigma are the Weng-Lin prior belief.
	PriorMu    float64 `koanf:"prior_mu"`
	PriorSigma float64 `koanf:"prior_sigma"`

	// SigmaFloor bounds the variance shrink factor away from zero.
	SigmaFloor float64 `koanf:"sigma_floor"`

	// ProgressEvery reports online-updater progress every N games.
	ProgressEvery int `koanf:"progress_every"`

	// WorkerCutoff is the highest trusted worker id for suspect-game
	// filtering.
	WorkerCutoff int64 `koanf:"worker_cutoff"`

	// DisplayLimit caps console rating output; zero shows everything.
	DisplayLimit int `koanf:"display_limit"`

	// Folds is the default partition count for cross-validation splits.
	Folds int `koanf:"folds"`

	// MetricsAddr, when set, serves the Prometheus registry during long
	// runs, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Tolerance:     1e-9,
		Backend:       "dense",
		Anchor:        false,
		PriorMu:       25,
		PriorSigma:    25.0 / 3,
		SigmaFloor:    1e-4,
		ProgressEvery: 10000,
		WorkerCutoff:  160,
		DisplayLimit:  40,
		Folds:         10,
		MetricsAddr:   "",
	}
}
