package plackett

import "errors"

// Sentinel kinds for estimator errors.
var (
	ErrNoGames = errors.New("no games to estimate from")
)
