package crossval

import "errors"

// Sentinel kinds for cross-validation errors.
var (
	ErrNoFolds   = errors.New("no folds to validate on")
	ErrNoSystems = errors.New("no rating systems registered")
)
