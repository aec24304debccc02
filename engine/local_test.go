package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
	"tictactoe/learner"
	"tictactoe/searcher"
)

// scripted plays a fixed list of moves and records what the engine feeds it.
type scripted struct {
	moves   []int
	visited []string
	rewards []float64
	resets  int
}

func (s *scripted) FindMove(_ *game.Board, _ game.Symbol) (int, error) {
	if len(s.moves) == 0 {
		return 0, errors.New("out of moves")
	}
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m, nil
}

func (s *scripted) RecordVisited(board *game.Board) {
	s.visited = append(s.visited, board.Hash())
}

func (s *scripted) ApplyTerminalReward(reward float64) {
	s.rewards = append(s.rewards, reward)
}

func (s *scripted) ResetEpisode() {
	s.resets++
}

// silent is a plain player without learning hooks.
type silent struct {
	moves []int
}

func (s *silent) FindMove(_ *game.Board, _ game.Symbol) (int, error) {
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m, nil
}

func TestRewards(t *testing.T) {
	t.Run("x wins", func(t *testing.T) {
		x := &scripted{moves: []int{0, 1, 2}}
		o := &scripted{moves: []int{3, 4}}
		result, err := New(x, o).Run()
		require.NoError(t, err)
		require.Equal(t, game.X, result.Winner)
		require.Equal(t, 5, result.Moves)

		require.Equal(t, []float64{1.0}, x.rewards)
		require.Equal(t, []float64{-1.0}, o.rewards)
		require.Equal(t, []string{"X        ", "XX O     ", "XXXOO    "}, x.visited)
		require.Len(t, o.visited, 2, "O records only its own moves")
	})

	t.Run("o wins", func(t *testing.T) {
		x := &scripted{moves: []int{0, 1, 8}}
		o := &scripted{moves: []int{3, 4, 5}}
		result, err := New(x, o).Run()
		require.NoError(t, err)
		require.Equal(t, game.O, result.Winner)
		require.Equal(t, []float64{-1.0}, x.rewards)
		require.Equal(t, []float64{1.0}, o.rewards)
	})

	// Draws pay O only. Whether X should also get 0.5 is unresolved; changing
	// it would shift the values of every trained table.
	t.Run("draw rewards only o", func(t *testing.T) {
		x := &scripted{moves: []int{0, 2, 3, 7, 8}}
		o := &scripted{moves: []int{1, 4, 5, 6}}
		result, err := New(x, o).Run()
		require.NoError(t, err)
		require.True(t, result.Draw())
		require.Equal(t, 9, result.Moves)
		require.Empty(t, x.rewards, "X gets no update on a draw")
		require.Equal(t, []float64{0.5}, o.rewards)
	})

	t.Run("custom draw reward", func(t *testing.T) {
		x := &scripted{moves: []int{0, 2, 3, 7, 8}}
		o := &scripted{moves: []int{1, 4, 5, 6}}
		rewards := DefaultRewards()
		rewards.Draw = map[game.Symbol]float64{game.X: 0.5, game.O: 0.5}
		_, err := New(x, o, WithRewards(rewards)).Run()
		require.NoError(t, err)
		require.Equal(t, []float64{0.5}, x.rewards)
		require.Equal(t, []float64{0.5}, o.rewards)
	})

	t.Run("scheme", func(t *testing.T) {
		r := DefaultRewards()
		for _, tt := range []struct {
			winner, seat game.Symbol
			reward       float64
			ok           bool
		}{
			{game.X, game.X, 1, true},
			{game.X, game.O, -1, true},
			{game.O, game.O, 1, true},
			{game.O, game.X, -1, true},
			{game.Empty, game.O, 0.5, true},
			{game.Empty, game.X, 0, false},
		} {
			reward, ok := r.For(tt.winner, tt.seat)
			require.Equal(t, tt.ok, ok, "winner %s seat %s", tt.winner, tt.seat)
			require.Equal(t, tt.reward, reward, "winner %s seat %s", tt.winner, tt.seat)
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("episodes are reset", func(t *testing.T) {
		x := &scripted{moves: []int{0, 1, 2}}
		o := &scripted{moves: []int{3, 4}}
		_, err := New(x, o).Run()
		require.NoError(t, err)
		require.Equal(t, 1, x.resets)
		require.Equal(t, 1, o.resets)
	})

	t.Run("occupied cell is reprompted", func(t *testing.T) {
		x := &scripted{moves: []int{0, 1, 2}}
		o := &scripted{moves: []int{0, 3, 1, 4}}
		result, err := New(x, o).Run()
		require.NoError(t, err)
		require.Equal(t, game.X, result.Winner)
		require.Len(t, o.visited, 2, "rejected moves are not recorded")
	})

	t.Run("out of range is reprompted", func(t *testing.T) {
		x := &scripted{moves: []int{9, 0, 1, 2}}
		o := &scripted{moves: []int{3, 4}}
		result, err := New(x, o).Run()
		require.NoError(t, err)
		require.Equal(t, game.X, result.Winner)
	})

	t.Run("too many rejected moves", func(t *testing.T) {
		x := &scripted{moves: []int{4}}
		o := &scripted{moves: []int{4, 4, 4}}
		_, err := New(x, o, WithMaxAttempts(3)).Run()
		require.ErrorIs(t, err, game.ErrOccupiedCell)
		require.Empty(t, x.rewards)
		require.Equal(t, 1, x.resets, "episodes are reset on error")
		require.Equal(t, 1, o.resets)
	})

	t.Run("player error", func(t *testing.T) {
		x := &scripted{moves: []int{0}}
		o := &scripted{moves: []int{4}}
		_, err := New(x, o).Run()
		require.ErrorContains(t, err, "out of moves")
		require.Equal(t, 1, x.resets)
	})

	t.Run("plain players", func(t *testing.T) {
		x := &silent{moves: []int{0, 1, 2}}
		o := &scripted{moves: []int{3, 4}}
		result, err := New(x, o).Run()
		require.NoError(t, err)
		require.Equal(t, game.X, result.Winner)
		require.Equal(t, []float64{-1.0}, o.rewards)
	})

	t.Run("observer and starting board", func(t *testing.T) {
		board, err := game.ParseBoard("XX OO    ")
		require.NoError(t, err)
		var seen []game.Symbol
		x := &scripted{moves: []int{2}}
		o := &scripted{}
		e := New(x, o, WithBoard(board), WithObserver(func(_ *game.Board, mover game.Symbol) {
			seen = append(seen, mover)
		}))
		result, err := e.Run()
		require.NoError(t, err)
		require.Equal(t, game.X, result.Winner)
		require.Equal(t, 1, result.Moves)
		require.Equal(t, []game.Symbol{game.X}, seen)
		require.Same(t, board, e.Board())
	})
}

func TestAgentAgainstMinimax(t *testing.T) {
	table := learner.FromValues(map[string]float64{"    X    ": 1})
	agent := learner.NewAgent("center", learner.WithTable(table), learner.WithSeed(7), learner.WithExplorationRate(0.3))
	minimax := searcher.NewMinimax()

	for i := range 50 {
		board := game.NewBoard()
		require.NoError(t, board.ApplyMove(agent.SelectAction(board, game.X), game.X))
		agent.RecordVisited(board)

		result, err := New(agent, minimax, WithBoard(board)).Run()
		require.NoError(t, err)
		require.NotEqual(t, game.X, result.Winner, "game %d: minimax must never lose", i)
		require.Empty(t, agent.Trace())
	}
	require.Greater(t, table.Len(), 1, "the agent should have learned from its games")
}
