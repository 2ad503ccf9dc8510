package crossval

import (
	"math/rand"
	"sort"

	"github.com/okian/ratelab/internal/domain/model"
)

// Fold is a disjoint subset of the game corpus, sorted by gameID and
// immutable once formed.
type Fold []model.GameRecord

// Partition shuffles the corpus with the given seed and splits it into
// parts whose sizes differ by at most one game, each re-sorted by gameID.
func Partition(games []model.GameRecord, parts int, seed int64) []Fold {
	if parts < 1 {
		parts = 1
	}
	shuffled := make([]model.GameRecord, len(games))
	copy(shuffled, games)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic shuffle for reproducible folds
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	folds := make([]Fold, 0, parts)
	end := 0
	for i := 0; i < parts; i++ {
		start := end
		end = start + len(shuffled)/parts
		if i < len(shuffled)%parts {
			end++
		}
		fold := Fold(shuffled[start:end:end])
		sort.Slice(fold, func(a, b int) bool { return fold[a].GameID < fold[b].GameID })
		folds = append(folds, fold)
	}
	return folds
}

// imbalance is the difference between the largest and smallest fold.
func imbalance(folds []Fold) int {
	if len(folds) == 0 {
		return 0
	}
	minSize, maxSize := len(folds[0]), len(folds[0])
	for _, f := range folds[1:] {
		if len(f) < minSize {
			minSize = len(f)
		}
		if len(f) > maxSize {
			maxSize = len(f)
		}
	}
	return maxSize - minSize
}
