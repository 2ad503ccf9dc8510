package plackett

import "github.com/okian/ratelab/internal/domain/model"

// denseBackend precomputes rank-group boundaries per game so each sweep
// runs in one pass per game: a suffix sum of gammas from worst place to
// best, then a prefix sum of reciprocal place terms shared by every
// participant still in contention at that place. Same fixed point as the
// scalar backend, much less per-sweep arithmetic.
type denseBackend struct {
	c *corpus

	// groupStart[g][i] is the first sorted index sharing game g entry i's
	// rank; groupEnd[g][i] is one past the last.
	groupStart [][]int
	groupEnd   [][]int

	// scratch buffers sized to the largest game.
	suffix []float64
	prefix []float64
}

// NewDenseBackend returns the precomputed-index sweep strategy.
func NewDenseBackend() Backend {
	return &denseBackend{}
}

func (b *denseBackend) Prepare(games []model.Result) {
	b.c = newCorpus(games)
	b.groupStart = make([][]int, len(b.c.games))
	b.groupEnd = make([][]int, len(b.c.games))

	maxSize := 0
	for gi, game := range b.c.games {
		n := len(game.ranks)
		if n > maxSize {
			maxSize = n
		}
		start := make([]int, n)
		end := make([]int, n)
		for i := 0; i < n; i++ {
			if i > 0 && game.ranks[i] == game.ranks[i-1] {
				start[i] = start[i-1]
			} else {
				start[i] = i
			}
		}
		for i := n - 1; i >= 0; i-- {
			if i < n-1 && game.ranks[i] == game.ranks[i+1] {
				end[i] = end[i+1]
			} else {
				end[i] = i + 1
			}
		}
		b.groupStart[gi] = start
		b.groupEnd[gi] = end
	}
	b.suffix = make([]float64, maxSize+1)
	b.prefix = make([]float64, maxSize+1)
}

func (b *denseBackend) Players() []string {
	return b.c.players
}

func (b *denseBackend) Sweep(gammas []float64) []float64 {
	denoms := make([]float64, len(gammas))
	for gi, game := range b.c.games {
		n := len(game.ranks)
		start := b.groupStart[gi]
		end := b.groupEnd[gi]

		// Gammas of everyone finishing at or below each sorted position.
		b.suffix[n] = 0
		for i := n - 1; i >= 0; i-- {
			b.suffix[i] = b.suffix[i+1] + gammas[game.players[i]]
		}

		// Accumulated place terms; the final sorted entry takes no place.
		b.prefix[0] = 0
		for k := 0; k < n-1; k++ {
			b.prefix[k+1] = b.prefix[k] + 1/b.suffix[start[k]]
		}

		// A participant collects every place term up to and including its
		// own rank group.
		for i := 0; i < n; i++ {
			cnt := end[i]
			if cnt > n-1 {
				cnt = n - 1
			}
			denoms[game.players[i]] += b.prefix[cnt]
		}
	}

	next := make([]float64, len(gammas))
	for i := range next {
		next[i] = b.c.wins[i] / denoms[i]
	}
	return next
}
