package ratingfile

import "errors"

// Sentinel kinds for rating file errors.
var (
	ErrBadRecord   = errors.New("invalid rating record")
	ErrUnknownKind = errors.New("unknown rating kind")
)
