package plackett

import "github.com/okian/ratelab/internal/domain/model"

// scalarBackend recomputes every denominator sum directly each sweep. It
// is the transparent reference implementation of the update rule; prefer
// the dense backend for large corpora.
type scalarBackend struct {
	c *corpus
}

// NewScalarBackend returns the direct-summation sweep strategy.
func NewScalarBackend() Backend {
	return &scalarBackend{}
}

func (b *scalarBackend) Prepare(games []model.Result) {
	b.c = newCorpus(games)
}

func (b *scalarBackend) Players() []string {
	return b.c.players
}

// Sweep applies one minorization-maximization update: for each player the
// new gamma is win credit divided by a denominator accumulating, per game
// and per place taken (the rank multiset minus its final entry), the
// reciprocal sum of gammas of everyone finishing at or below that place.
// Players ranked strictly above a place contribute nothing for it.
func (b *scalarBackend) Sweep(gammas []float64) []float64 {
	denoms := make([]float64, len(gammas))
	for _, game := range b.c.games {
		last := len(game.ranks) - 1
		for k := 0; k < last; k++ {
			place := game.ranks[k]
			var sum float64
			for i, rank := range game.ranks {
				if rank >= place {
					sum += gammas[game.players[i]]
				}
			}
			for i, rank := range game.ranks {
				if rank >= place {
					denoms[game.players[i]] += 1 / sum
				}
			}
		}
	}

	next := make([]float64, len(gammas))
	for i := range next {
		next[i] = b.c.wins[i] / denoms[i]
	}
	return next
}
