package searcher

import (
	"errors"

	"tictactoe/game"
)

// Terminal scores from the searching side's perspective
const WIN = 10
const LOSS = -WIN
const DRAW = 0

// ErrSearchInvariant marks a logic bug in the search. It is raised with panic
// and never returned to be retried.
var ErrSearchInvariant = errors.New("search invariant violated")

// noMove is returned alongside terminal scores.
const noMove = -1

// score evaluates a terminal position for me. ok is false for positions that
// are still in play.
func score(cells [game.Size]game.Symbol, me game.Symbol) (value int, ok bool) {
	terminal, winner := game.Winner(cells)
	if !terminal {
		return 0, false
	}
	switch winner {
	case game.Empty:
		return DRAW, true
	case me:
		return WIN, true
	default:
		return LOSS, true
	}
}
