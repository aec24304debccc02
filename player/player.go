package player

import (
	"tictactoe/game"
)

// Player is anything that can choose a move for a side.
type Player interface {
	FindMove(board *game.Board, own game.Symbol) (int, error)
}

// Learner is a Player that learns from the games it plays.
type Learner interface {
	Player
	RecordVisited(board *game.Board)
	ApplyTerminalReward(reward float64)
	ResetEpisode()
}

// Named is implemented by players that report under a name.
type Named interface {
	Name() string
}

// NameOf returns the name of p, or fallback when it has none.
func NameOf(p Player, fallback string) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fallback
}
