package engine

import (
	"time"

	"tictactoe/game"
)

// Engine drives a single game to its end.
type Engine interface {
	Run() (Result, error)
}

type Result struct {
	Winner   game.Symbol // Empty on a draw
	Moves    int
	Duration time.Duration
}

func (r Result) Draw() bool {
	return r.Winner == game.Empty
}
