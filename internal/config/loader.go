package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RATELAB_CONFIG is set
//  3. env (prefix RATELAB_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("RATELAB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: RATELAB_TOLERANCE, RATELAB_BACKEND, ...
	// Map env keys like RATELAB_PRIOR_MU -> prior_mu (flat keys);
	// underscores are preserved to match koanf tags on the struct.
	envProvider := env.Provider("RATELAB_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ratelab_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidConfig)
	}
	if c.Backend != "scalar" && c.Backend != "dense" {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.PriorSigma <= 0 {
		return fmt.Errorf("%w: prior_sigma must be positive", ErrInvalidConfig)
	}
	if c.SigmaFloor <= 0 || c.SigmaFloor >= 1 {
		return fmt.Errorf("%w: sigma_floor must be in (0, 1)", ErrInvalidConfig)
	}
	if c.Folds < 2 {
		return fmt.Errorf("%w: folds must be at least 2", ErrInvalidConfig)
	}
	return nil
}
