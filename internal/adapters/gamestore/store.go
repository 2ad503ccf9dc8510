// Package gamestore loads game records from JSON files into an ordered,
// deduplicated corpus and provides the filters applied before rating.
package gamestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// Store reads game data files. The zero value is usable; the logger is
// optional.
type Store struct {
	log logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger attaches a logger for load progress.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads each file (a JSON array of game objects), concatenates them,
// silently discards later duplicates of a gameID (first occurrence wins),
// and returns the corpus sorted ascending by gameID so downstream folds
// and training order are deterministic.
func (s *Store) Load(ctx context.Context, paths ...string) ([]model.GameRecord, error) {
	var games []model.GameRecord
	for _, path := range paths {
		if s.log != nil {
			s.log.Info(ctx, "reading game file", logger.String("path", path))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
		}
		var part []model.GameRecord
		if err := json.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadGameData, path, err)
		}
		games = append(games, part...)
	}

	seen := make(map[model.ID]bool, len(games))
	unique := games[:0]
	for _, g := range games {
		if seen[g.GameID] {
			metrics.RecordGameDuplicate()
			continue
		}
		seen[g.GameID] = true
		unique = append(unique, g)
	}
	games = unique

	sort.Slice(games, func(i, j int) bool { return games[i].GameID < games[j].GameID })

	metrics.RecordGamesLoaded(len(games))
	if s.log != nil {
		s.log.Info(ctx, "games loaded", logger.Int("count", len(games)))
	}
	return games, nil
}

// Results converts records to rating inputs, dropping excluded usernames
// and any game left with fewer than two participants.
func Results(games []model.GameRecord, excludeNames []string) []model.Result {
	exclude := make(map[string]bool, len(excludeNames))
	for _, name := range excludeNames {
		exclude[name] = true
	}
	out := make([]model.Result, 0, len(games))
	for _, g := range games {
		r := g.Result(exclude)
		if len(r) < 2 {
			continue
		}
		out = append(out, r)
	}
	return out
}
