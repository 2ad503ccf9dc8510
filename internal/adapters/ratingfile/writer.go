// Package ratingfile reads and writes the flat CSV rating formats:
// strength tables as "rank,score,player" and Gaussian tables as
// "rank,player,score,mu,sigma" with score = mu - 3*sigma. Neither format
// carries a header; the rating kind is always stated by the caller, never
// inferred from the column count.
package ratingfile

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/okian/ratelab/internal/domain/rating"
)

// WriteStrength writes the table ranked by descending strength. Callers
// normalize first if they want comparable scores across runs.
func WriteStrength(w io.Writer, table *rating.StrengthTable) error {
	for i, player := range byScore(table) {
		gamma, _ := table.Gamma(player)
		if _, err := fmt.Fprintf(w, "%d,%e,%s\n", i+1, gamma, player); err != nil {
			return err
		}
	}
	return nil
}

// WriteGaussian writes the table ranked by descending conservative score.
// Mu and sigma keep full round-trip precision.
func WriteGaussian(w io.Writer, table *rating.GaussianTable) error {
	for i, player := range byScore(table) {
		g, _ := table.Rating(player)
		if _, err := fmt.Fprintf(w, "%d,%s,%f,%s,%s\n", i+1, player, g.Score(),
			strconv.FormatFloat(g.Mu, 'g', -1, 64),
			strconv.FormatFloat(g.Sigma, 'g', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}

// byScore orders players by descending score, name as tie-break.
func byScore(table rating.Table) []string {
	players := table.Players()
	sort.SliceStable(players, func(i, j int) bool {
		si, sj := table.Score(players[i]), table.Score(players[j])
		if si != sj {
			return si > sj
		}
		return players[i] < players[j]
	})
	return players
}
