// Package eval scores a frozen rating table against held-out games. Two
// metrics are provided: probability calibration (RMSE over pairwise win
// predictions) and relative-order error (fraction of pairs the table
// orders wrongly or not at all). Pairs involving unrated players are never
// an error; they are excluded from the denominator and reported separately.
package eval

import (
	"context"
	"math"
	"sort"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/pkg/logger"
	"github.com/okian/ratelab/pkg/metrics"
)

// Stats is the outcome of one metric over a game set.
type Stats struct {
	// Value is the metric: RMSE or wrong-prediction fraction. Zero when no
	// pair could be scored.
	Value float64
	// Pairs is the number of co-participant pairs actually scored.
	Pairs int
	// Missed is the number of pairs skipped because a participant was
	// absent from the table.
	Missed int
}

// Evaluator scores tables. The zero value is usable; the logger is
// optional.
type Evaluator struct {
	log logger.Logger
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithLogger attaches a logger for missed-pair reporting.
func WithLogger(log logger.Logger) Option {
	return func(e *Evaluator) {
		e.log = log
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RMSE computes the root-mean-square error of predicted win probabilities
// against observed binary outcomes over every unordered pair of
// co-participants.
func (e *Evaluator) RMSE(ctx context.Context, games []model.Result, table rating.Table) Stats {
	var sumErrors float64
	var pairs, missed int

	forEachPair(games, func(a, b string, aBetter bool) {
		if !table.Has(a) || !table.Has(b) {
			missed++
			return
		}
		winp := table.WinProb(a, b)
		winr := 0.0
		if aBetter {
			winr = 1
		}
		sumErrors += (winp - winr) * (winp - winr)
		pairs++
	})

	e.report(ctx, pairs, missed)
	value := 0.0
	if pairs > 0 {
		value = math.Sqrt(sumErrors / float64(pairs))
	}
	return Stats{Value: value, Pairs: pairs, Missed: missed}
}

// OrderError computes the fraction of pairs predicted wrongly. A
// prediction is wrong when the order predicate is indecisive in both
// directions, or when it disagrees with the true finish order. An
// indecisive pair counts as wrong even when the true order is unambiguous.
func (e *Evaluator) OrderError(ctx context.Context, games []model.Result, table rating.Table) Stats {
	var wrong, pairs, missed int

	forEachPair(games, func(a, b string, aBetter bool) {
		if !table.Has(a) || !table.Has(b) {
			missed++
			return
		}
		better := table.Better(a, b)
		worse := table.Better(b, a)
		if better == worse || better != aBetter {
			wrong++
		}
		pairs++
	})

	e.report(ctx, pairs, missed)
	value := 0.0
	if pairs > 0 {
		value = float64(wrong) / float64(pairs)
	}
	return Stats{Value: value, Pairs: pairs, Missed: missed}
}

// forEachPair visits every unordered pair of co-participants per game,
// first player sorted ahead by (rank, name). aBetter reports whether the
// first finished strictly better than the second; ties yield false.
func forEachPair(games []model.Result, visit func(a, b string, aBetter bool)) {
	for _, game := range games {
		players := game.Players()
		sort.Slice(players, func(i, j int) bool {
			ri, rj := game[players[i]], game[players[j]]
			if ri != rj {
				return ri < rj
			}
			return players[i] < players[j]
		})
		for i := 0; i < len(players)-1; i++ {
			for j := i + 1; j < len(players); j++ {
				visit(players[i], players[j], game[players[i]] < game[players[j]])
			}
		}
	}
}

func (e *Evaluator) report(ctx context.Context, pairs, missed int) {
	metrics.RecordEvalPairs(pairs)
	metrics.RecordEvalMissed(missed)
	if missed > 0 && e.log != nil {
		e.log.Warn(ctx, "could not make a prediction for some pairs",
			logger.Int("missed", missed),
			logger.Int("predicted", pairs))
	}
}
