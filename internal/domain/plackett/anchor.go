package plackett

import (
	"sort"

	"github.com/google/uuid"

	"github.com/okian/ratelab/internal/domain/model"
)

// withAnchor appends a synthetic player holding exactly one two-player win
// and one two-player loss against every real player, which forces the
// beats-graph strongly connected without biasing the relative order of
// real players. The returned name must be deleted from the estimated table
// before it is handed to callers.
func withAnchor(games []model.Result) (string, []model.Result) {
	anchor := "anchor-" + uuid.NewString()

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

	out := make([]model.Result, 0, len(games)+2*len(players))
	out = append(out, games...)
	for _, p := range players {
		out = append(out, model.Result{anchor: 1, p: 2})
		out = append(out, model.Result{anchor: 2, p: 1})
	}
	return anchor, out
}
