package gamestore

import "errors"

// Sentinel kinds for game loading errors.
var (
	ErrReadFile    = errors.New("read game file failed")
	ErrBadGameData = errors.New("invalid game data")
)
