package wenglin

import (
	"context"
	"math"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/pkg/logger"
)

// applyPlackettLuce runs the pooled update: all participants share one
// normalizing constant, and credit within a rank group is split across the
// players tied at that rank.
func (u *Updater) applyPlackettLuce(ctx context.Context, game model.Result, mu, sigma map[string]float64) {
	players := sortedPlayers(game)
	beta := u.Beta()

	var c2 float64
	for _, p := range players {
		c2 += sigma[p]*sigma[p] + beta*beta
	}
	c := math.Sqrt(c2)

	// groupSize counts how many players share each rank.
	groupSize := make(map[int]int, len(players))
	for _, p := range players {
		groupSize[game[p]]++
	}
	if u.log != nil && len(groupSize) < len(players) {
		u.log.Debug(ctx, "found tied ranks", logger.Int("players", len(players)),
			logger.Int("rank_groups", len(groupSize)))
	}

	// sumExp[q] pools exp(mu/c) over everyone ranked at or worse than q.
	sumExp := make(map[string]float64, len(players))
	for _, q := range players {
		var sum float64
		for _, i := range players {
			if game[i] >= game[q] {
				sum += math.Exp(mu[i] / c)
			}
		}
		sumExp[q] = sum
	}

	omega := make(map[string]float64, len(players))
	delta := make(map[string]float64, len(players))
	for _, p := range players {
		prank := game[p]
		sp2 := sigma[p] * sigma[p]
		gamma := sigma[p] / c
		for _, opp := range players {
			orank := game[opp]
			if orank > prank {
				continue
			}
			piCq := math.Exp(mu[p]/c) / sumExp[opp]
			mf := -piCq
			if opp == p {
				mf = 1 - piCq
			}
			omega[p] += mf * sp2 / (c * float64(groupSize[orank]))

			etaq := (gamma * sp2) / (c * c * float64(groupSize[orank]))
			etaq *= piCq * (1 - piCq)
			delta[p] += etaq
		}
	}

	u.applyShift(players, omega, delta, mu, sigma)
}
