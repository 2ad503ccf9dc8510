package wenglin

import (
	"math"

	"github.com/okian/ratelab/internal/domain/model"
)

// applyBradleyTerry runs the full-pair update: every ordered pair in the
// game is compared independently and the contributions are summed before
// the end-of-game apply step.
func (u *Updater) applyBradleyTerry(game model.Result, mu, sigma map[string]float64) {
	players := sortedPlayers(game)
	beta := u.Beta()

	omega := make(map[string]float64, len(players))
	delta := make(map[string]float64, len(players))
	for _, p := range players {
		prank := game[p]
		sp2 := sigma[p] * sigma[p]
		for _, opp := range players {
			if opp == p {
				continue
			}
			orank := game[opp]

			c := math.Sqrt(sp2 + sigma[opp]*sigma[opp] + 2*beta*beta)
			piq := 1 / (1 + math.Exp((mu[opp]-mu[p])/c))

			// Observed score: win 1, tie 0.5, loss 0.
			s := 0.0
			switch {
			case orank > prank:
				s = 1
			case orank == prank:
				s = 0.5
			}

			omega[p] += (sp2 / c) * (s - piq)
			gamma := sigma[p] / c
			delta[p] += gamma * (sp2 / c) / c * piq * (1 - piq)
		}
	}

	u.applyShift(players, omega, delta, mu, sigma)
}
