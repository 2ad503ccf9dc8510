package plackett

import (
	"sort"

	"github.com/okian/ratelab/internal/domain/model"
)

// Backend is one sweep strategy for the minorization-maximization
// iteration. Prepare indexes the corpus once; Sweep maps the previous
// gamma vector to the next one. All backends converge to the same fixed
// point; they differ only in how much per-sweep work they precompute.
type Backend interface {
	// Prepare indexes the corpus. Must be called before Sweep.
	Prepare(games []model.Result)
	// Players returns the player order gamma vectors are aligned with.
	Players() []string
	// Sweep computes the next gamma vector from the current one. Every
	// entry is derived from the previous vector, never from values updated
	// mid-sweep.
	Sweep(gammas []float64) []float64
}

// indexedGame is one game with participants resolved to player indices and
// sorted by rank ascending (player order as a deterministic tie-break).
type indexedGame struct {
	players []int
	ranks   []int
}

// corpus is the shared index both backends build in Prepare.
type corpus struct {
	players []string
	index   map[string]int
	wins    []float64
	games   []indexedGame
}

// newCorpus indexes players lexically and games by rank order, and counts
// win credit: one unit per game in which the player finishes strictly
// better than the game's worst recorded rank.
func newCorpus(games []model.Result) *corpus {
	seen := make(map[string]bool)
	for _, g := range games {
		for p := range g {
			seen[p] = true
		}
	}
	players := make([]string, 0, len(seen))
	for p := range seen {
		players = append(players, p)
	}
	sort.Strings(players)

	index := make(map[string]int, len(players))
	for i, p := range players {
		index[p] = i
	}

	c := &corpus{
		players: players,
		index:   index,
		wins:    make([]float64, len(players)),
		games:   make([]indexedGame, 0, len(games)),
	}

	for _, g := range games {
		names := g.Players()
		sort.Slice(names, func(i, j int) bool {
			ri, rj := g[names[i]], g[names[j]]
			if ri != rj {
				return ri < rj
			}
			return names[i] < names[j]
		})
		ig := indexedGame{
			players: make([]int, len(names)),
			ranks:   make([]int, len(names)),
		}
		worst := g.WorstRank()
		for i, name := range names {
			ig.players[i] = index[name]
			ig.ranks[i] = g[name]
			if g[name] < worst {
				c.wins[index[name]]++
			}
		}
		c.games = append(c.games, ig)
	}
	return c
}
