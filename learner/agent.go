package learner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/store"
)

type Option func(a *Agent)

// Agent plays from a value table with an epsilon-greedy policy and learns from
// the outcome of each game.
type Agent struct {
	name            string
	table           *Table
	learningRate    float64
	explorationRate float64
	rng             *rand.Rand
	trace           []string
}

// WithTable binds the agent to a shared table.
func WithTable(table *Table) Option {
	return func(a *Agent) {
		if table != nil {
			a.table = table
		}
	}
}

func WithLearningRate(lr float64) Option {
	return func(a *Agent) {
		if lr > 0 {
			a.learningRate = lr
		}
	}
}

// WithExplorationRate sets the probability of a random move. Zero makes the
// agent fully greedy.
func WithExplorationRate(rate float64) Option {
	return func(a *Agent) {
		if rate >= 0 && rate <= 1 {
			a.explorationRate = rate
		}
	}
}

// WithSeed makes exploration reproducible. Zero keeps a time based seed.
func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		if seed != 0 {
			a.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func NewAgent(name string, options ...Option) *Agent {
	a := &Agent{ // Default values
		name:            name,
		table:           NewTable(),
		learningRate:    meta.LearningRate,
		explorationRate: meta.ExplorationRate,
		rng:             rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Table() *Table {
	return a.table
}

// Trace returns the states recorded since the last reset.
func (a *Agent) Trace() []string {
	return a.trace
}

// SelectAction picks a move for own. With probability explorationRate the move
// is uniform among the empty cells, otherwise it leads to the best valued
// state, the lowest position winning ties. The board is never modified.
func (a *Agent) SelectAction(board *game.Board, own game.Symbol) int {
	positions := board.AvailablePositions()
	if len(positions) == 0 {
		panic("no available positions")
	}

	if a.rng.Float64() < a.explorationRate {
		return positions[a.rng.Intn(len(positions))]
	}

	best := positions[0]
	bestValue := math.Inf(-1)
	cells := board.Cells()
	for _, p := range positions {
		cells[p] = own
		v := a.table.Value(game.Hash(cells))
		cells[p] = game.Empty
		if v > bestValue {
			bestValue = v
			best = p
		}
	}
	return best
}

func (a *Agent) FindMove(board *game.Board, own game.Symbol) (int, error) {
	return a.SelectAction(board, own), nil
}

// RecordVisited appends the state reached by the agent's own move.
func (a *Agent) RecordVisited(board *game.Board) {
	a.trace = append(a.trace, board.Hash())
}

func (a *Agent) ApplyTerminalReward(reward float64) {
	a.table.Update(a.trace, reward, a.learningRate)
}

func (a *Agent) ResetEpisode() {
	a.trace = nil
}

// Save persists the table under the agent name.
func (a *Agent) Save(ctx context.Context, s store.Store) error {
	if err := s.Save(ctx, a.name, a.table.Values()); err != nil {
		return fmt.Errorf("failed to save agent %s: %w", a.name, err)
	}
	return nil
}

// Load replaces the table content with the one saved under the agent name.
func (a *Agent) Load(ctx context.Context, s store.Store) error {
	values, err := s.Load(ctx, a.name)
	if err != nil {
		return err
	}
	a.table.Replace(values)
	log.Info().Str("agent", a.name).Int("states", len(values)).Msg("loaded model")
	return nil
}
