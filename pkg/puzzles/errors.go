package puzzles

import "errors"

var (
	ErrNoMoves = errors.New("puzzle has no moves")
)
