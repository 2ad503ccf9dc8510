// Package baseline wraps the go-openskill factor-graph rating library as a
// comparison baseline for the native estimators. The heavy lifting is
// delegated entirely to the library; this package only feeds it games in
// corpus order and converts the result to a rating table.
package baseline

import (
	"context"
	"sort"

	openskill "github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// Prior matching the library's defaults.
const (
	DefaultMu    = 25.0
	DefaultSigma = DefaultMu / 3
)

// System rates players through go-openskill, one single-player team per
// participant. It is order-dependent like the other online updaters.
type System struct {
	mu0    float64
	sigma0 float64
	log    logger.Logger
}

// Option applies a configuration option to the System.
type Option func(*System)

// WithPrior overrides the prior belief for unseen players.
func WithPrior(mu, sigma float64) Option {
	return func(s *System) {
		if sigma > 0 {
			s.mu0 = mu
			s.sigma0 = sigma
		}
	}
}

// WithLogger attaches a logger for tie diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(s *System) {
		s.log = log
	}
}

// New creates the baseline system.
func New(opts ...Option) *System {
	s := &System{
		mu0:    DefaultMu,
		sigma0: DefaultSigma,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements rating.System.
func (s *System) Name() string { return "openskill" }

// Train applies every game in corpus order and returns the final beliefs
// as a normal-CDF table. Teams are handed to the library ordered by
// finish; tied ranks are logged and broken by player name.
func (s *System) Train(ctx context.Context, games []model.Result) (rating.Table, error) {
	beliefs := make(map[string]types.Rating)

	for _, game := range games {
		players := game.Players()
		sort.Slice(players, func(i, j int) bool {
			ri, rj := game[players[i]], game[players[j]]
			if ri != rj {
				return ri < rj
			}
			return players[i] < players[j]
		})
		if s.log != nil && tied(game, players) {
			s.log.Debug(ctx, "found tied ranks; breaking by player name",
				logger.Int("players", len(players)))
		}

		teams := make([]types.Team, len(players))
		for i, p := range players {
			b, ok := beliefs[p]
			if !ok {
				b = types.Rating{Mu: s.mu0, Sigma: s.sigma0}
			}
			teams[i] = types.Team{b}
		}

		rated := openskill.Rate(teams, nil)
		for i, p := range players {
			beliefs[p] = rated[i][0]
		}
	}
	metrics.RecordGamesRated(len(games))

	out := make(map[string]rating.Gaussian, len(beliefs))
	for p, b := range beliefs {
		out[p] = rating.Gaussian{Mu: b.Mu, Sigma: b.Sigma}
	}
	return rating.NewNormalTable(out, s.sigma0/2), nil
}

func tied(game model.Result, players []string) bool {
	for i := 1; i < len(players); i++ {
		if game[players[i]] == game[players[i-1]] {
			return true
		}
	}
	return false
}
