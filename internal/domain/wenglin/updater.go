// Package wenglin implements the two online Bayesian update rules from
// Weng and Lin, "A Bayesian Approximation Method for Online Ranking"
// (JMLR 2011): the Bradley-Terry full-pair rule and the Plackett-Luce
// pooled rule. Both are sequential state machines: the resulting table
// depends on the exact order games are applied in.
package wenglin

import (
	"context"
	"math"
	"sort"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// Prior and update constants from the paper's TrueSkill-compatible setup.
const (
	DefaultMu    = 25.0
	DefaultSigma = DefaultMu / 3

	// DefaultFloor bounds the variance shrink factor away from zero so
	// sigma stays strictly positive under any combined update.
	DefaultFloor = 1e-4

	defaultProgressEvery = 10000
)

// Rule selects the per-game update computation.
type Rule string

const (
	// RuleBradleyTerry compares every ordered pair in a game independently.
	RuleBradleyTerry Rule = "bradley-terry"
	// RulePlackettLuce pools all participants under one normalizing
	// constant and splits credit across rank groups.
	RulePlackettLuce Rule = "plackett-luce"
)

// Updater applies one of the update rules to games strictly in the order
// given. Each Train call starts from an explicitly supplied initial state
// (or the configured prior); no state is carried between calls.
type Updater struct {
	rule    Rule
	mu0     float64
	sigma0  float64
	floor   float64
	initial map[string]rating.Gaussian

	progressEvery int
	progress      func(rated int)
	log           logger.Logger
}

// Option applies a configuration option to the Updater.
type Option func(*Updater)

// WithPrior overrides the prior belief for unseen players.
func WithPrior(mu, sigma float64) Option {
	return func(u *Updater) {
		if sigma > 0 {
			u.mu0 = mu
			u.sigma0 = sigma
		}
	}
}

// WithFloor overrides the variance shrink floor.
func WithFloor(floor float64) Option {
	return func(u *Updater) {
		if floor > 0 {
			u.floor = floor
		}
	}
}

// WithInitial supplies the starting beliefs explicitly. The map is copied;
// players absent from it start at the prior.
func WithInitial(initial map[string]rating.Gaussian) Option {
	return func(u *Updater) {
		u.initial = make(map[string]rating.Gaussian, len(initial))
		for p, g := range initial {
			u.initial[p] = g
		}
	}
}

// WithProgress invokes fn after every `every` games processed.
func WithProgress(every int, fn func(rated int)) Option {
	return func(u *Updater) {
		if every > 0 && fn != nil {
			u.progressEvery = every
			u.progress = fn
		}
	}
}

// WithLogger attaches a logger for tie diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(u *Updater) {
		u.log = log
	}
}

// NewBradleyTerry creates an Updater using the full-pair rule.
func NewBradleyTerry(opts ...Option) *Updater {
	return newUpdater(RuleBradleyTerry, opts)
}

// NewPlackettLuce creates an Updater using the pooled rule.
func NewPlackettLuce(opts ...Option) *Updater {
	return newUpdater(RulePlackettLuce, opts)
}

func newUpdater(rule Rule, opts []Option) *Updater {
	u := &Updater{
		rule:          rule,
		mu0:           DefaultMu,
		sigma0:        DefaultSigma,
		floor:         DefaultFloor,
		progressEvery: defaultProgressEvery,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Name implements rating.System.
func (u *Updater) Name() string {
	if u.rule == RulePlackettLuce {
		return "weng-lin-pl"
	}
	return "weng-lin-bt"
}

// Beta is the fixed performance-variance constant, sigma0/2.
func (u *Updater) Beta() float64 {
	return u.sigma0 / 2
}

// Train applies every game in corpus order and returns the final beliefs
// as a logistic-link table.
func (u *Updater) Train(ctx context.Context, games []model.Result) (rating.Table, error) {
	mu := make(map[string]float64)
	sigma := make(map[string]float64)
	for _, g := range games {
		for p := range g {
			if _, ok := mu[p]; ok {
				continue
			}
			prior := rating.Gaussian{Mu: u.mu0, Sigma: u.sigma0}
			if init, ok := u.initial[p]; ok {
				prior = init
			}
			mu[p] = prior.Mu
			sigma[p] = prior.Sigma
		}
	}

	for i, game := range games {
		switch u.rule {
		case RulePlackettLuce:
			u.applyPlackettLuce(ctx, game, mu, sigma)
		default:
			u.applyBradleyTerry(game, mu, sigma)
		}
		if u.progress != nil && (i+1)%u.progressEvery == 0 {
			u.progress(i + 1)
		}
	}
	metrics.RecordGamesRated(len(games))

	out := make(map[string]rating.Gaussian, len(mu))
	for p := range mu {
		out[p] = rating.Gaussian{Mu: mu[p], Sigma: sigma[p]}
	}
	return rating.NewLogisticTable(out, u.Beta()), nil
}

// applyShift applies the accumulated mean shifts and variance shrinks at
// the end of a game. The shrink factor is floored so sigma never reaches
// zero or below.
func (u *Updater) applyShift(players []string, omega, delta map[string]float64, mu, sigma map[string]float64) {
	for _, p := range players {
		mu[p] += omega[p]
		mul := 1 - delta[p]
		if mul < u.floor {
			mul = u.floor
		}
		sigma[p] *= math.Sqrt(mul)
	}
}

// sortedPlayers returns the game's players in lexical order. Accumulation
// order is fixed so repeated runs produce bit-identical tables.
func sortedPlayers(game model.Result) []string {
	players := game.Players()
	sort.Strings(players)
	return players
}
