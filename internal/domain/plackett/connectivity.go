package plackett

import (
	"sort"

	"github.com/okian/ratelab/internal/domain/model"
)

// CheckConnectivity classifies players the iteration cannot anchor: those
// who never finished behind anyone (undefeated) and those who never
// finished ahead of anyone (winless). Either set being non-empty means the
// beats-graph is not strongly connected and the estimator will almost
// certainly diverge. The check is structural only; it does not prove
// convergence when both sets are empty.
func CheckConnectivity(games []model.Result) (undefeated, winless []string) {
	hasWin := make(map[string]bool)
	hasLoss := make(map[string]bool)
	for _, g := range games {
		best := g.BestRank()
		worst := g.WorstRank()
		for p, rank := range g {
			if rank < worst {
				hasWin[p] = true
			}
			if rank > best {
				hasLoss[p] = true
			}
		}
	}

	players := make(map[string]bool)
	for _, g := range games {
		for p := range g {
			players[p] = true
		}
	}
	for p := range players {
		if !hasLoss[p] {
			undefeated = append(undefeated, p)
		}
		if !hasWin[p] {
			winless = append(winless, p)
		}
	}
	sort.Strings(undefeated)
	sort.Strings(winless)
	return undefeated, winless
}
