package gamestore

import (
	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/pkg/metrics"
)

// DefaultWorkerCutoff is the highest trusted worker id; games from later
// workers are suspect when they also contain bot errors.
const DefaultWorkerCutoff = 160

// WithoutErrorGames drops games in which any participant produced an
// error log.
func WithoutErrorGames(games []model.GameRecord) []model.GameRecord {
	return filter(games, func(g model.GameRecord) bool {
		return !g.HasError()
	})
}

// WithoutSuspectGames drops games from unknown or post-cutoff workers that
// also contain an error log. Games from trusted workers are kept even with
// errors.
func WithoutSuspectGames(games []model.GameRecord, cutoff int64) []model.GameRecord {
	return filter(games, func(g model.GameRecord) bool {
		if g.WorkerID == nil || int64(*g.WorkerID) > cutoff {
			return !g.HasError()
		}
		return true
	})
}

// WithoutPlayers drops games in which any of the named players took part.
func WithoutPlayers(games []model.GameRecord, usernames []string) []model.GameRecord {
	drop := nameSet(usernames)
	return filter(games, func(g model.GameRecord) bool {
		for _, u := range g.Users {
			if drop[u.Username] {
				return false
			}
		}
		return true
	})
}

// OnlyPlayers keeps games in which at least one of the named players took
// part.
func OnlyPlayers(games []model.GameRecord, usernames []string) []model.GameRecord {
	keep := nameSet(usernames)
	return filter(games, func(g model.GameRecord) bool {
		for _, u := range g.Users {
			if keep[u.Username] {
				return true
			}
		}
		return false
	})
}

// Limit keeps the first n games when n is positive, or the last |n| games
// when n is negative. Zero keeps everything.
func Limit(games []model.GameRecord, n int) []model.GameRecord {
	switch {
	case n == 0 || len(games) == 0:
		return games
	case n > 0:
		if n > len(games) {
			n = len(games)
		}
		return games[:n]
	default:
		if -n > len(games) {
			n = -len(games)
		}
		return games[len(games)+n:]
	}
}

func filter(games []model.GameRecord, keep func(model.GameRecord) bool) []model.GameRecord {
	out := make([]model.GameRecord, 0, len(games))
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	if dropped := len(games) - len(out); dropped > 0 {
		metrics.RecordGamesFiltered(dropped)
	}
	return out
}

func nameSet(usernames []string) map[string]bool {
	set := make(map[string]bool, len(usernames))
	for _, name := range usernames {
		set[name] = true
	}
	return set
}
