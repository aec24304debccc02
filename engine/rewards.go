package engine

import "tictactoe/game"

// Rewards decides what a learner receives when a game ends. A side missing
// from Draw gets no update at all on a draw.
type Rewards struct {
	Win  float64
	Loss float64
	Draw map[game.Symbol]float64
}

// DefaultRewards pays 0.5 for a draw to O only.
func DefaultRewards() Rewards {
	return Rewards{
		Win:  1.0,
		Loss: -1.0,
		Draw: map[game.Symbol]float64{game.O: 0.5},
	}
}

// For returns the reward of seat when winner won, and whether one applies.
func (r Rewards) For(winner, seat game.Symbol) (float64, bool) {
	switch winner {
	case game.Empty:
		reward, ok := r.Draw[seat]
		return reward, ok
	case seat:
		return r.Win, true
	default:
		return r.Loss, true
	}
}
