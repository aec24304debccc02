package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
)

type Option func(e *Local)

// Observer is called after every applied move.
type Observer func(board *game.Board, mover game.Symbol)

// Local runs a game between two in-process players.
type Local struct {
	board       *game.Board
	players     [3]player.Player // indexed by game.Symbol
	rewards     Rewards
	observer    Observer
	maxAttempts int
}

// WithBoard starts the game from an existing position.
func WithBoard(board *game.Board) Option {
	return func(e *Local) {
		if board != nil {
			e.board = board
		}
	}
}

func WithRewards(rewards Rewards) Option {
	return func(e *Local) {
		e.rewards = rewards
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Local) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// WithMaxAttempts bounds consecutive rejected moves of the same side.
func WithMaxAttempts(attempts int) Option {
	return func(e *Local) {
		if attempts > 0 {
			e.maxAttempts = attempts
		}
	}
}

func New(x, o player.Player, options ...Option) *Local {
	if x == nil || o == nil {
		panic("need two players")
	}
	e := &Local{ // Default values
		board:       game.NewBoard(),
		rewards:     DefaultRewards(),
		observer:    func(*game.Board, game.Symbol) {},
		maxAttempts: meta.MaxAttempts,
	}
	e.players[game.X] = x
	e.players[game.O] = o
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Local) Board() *game.Board {
	return e.board
}

// Run plays until the board is terminal. Learners are rewarded on a finished
// game and their episodes are reset whatever the outcome.
func (e *Local) Run() (Result, error) {
	start := time.Now()
	defer e.resetEpisodes()

	moves := 0
	attempts := 0
	for {
		if over, winner := e.board.Winner(); over {
			e.feedRewards(winner)
			result := Result{Winner: winner, Moves: moves, Duration: time.Since(start)}
			log.Debug().Str("winner", winner.String()).Int("moves", moves).Dur("duration", result.Duration).Msg("game over")
			return result, nil
		}

		turn := e.board.TurnToMove()
		p := e.players[turn]
		position, err := p.FindMove(e.board, turn)
		if err != nil {
			return Result{}, fmt.Errorf("player %s failed to move: %w", turn, err)
		}

		if err := e.board.ApplyMove(position, turn); err != nil {
			if !errors.Is(err, game.ErrOccupiedCell) && !errors.Is(err, game.ErrInvalidPosition) {
				return Result{}, err
			}
			attempts++
			log.Warn().Err(err).Str("player", turn.String()).Int("attempt", attempts).Msg("move rejected")
			if attempts >= e.maxAttempts {
				return Result{}, fmt.Errorf("player %s made %d invalid moves in a row: %w", turn, attempts, err)
			}
			continue
		}
		attempts = 0
		moves++

		if l, ok := p.(player.Learner); ok {
			l.RecordVisited(e.board)
		}
		e.observer(e.board, turn)
	}
}

func (e *Local) feedRewards(winner game.Symbol) {
	for _, seat := range []game.Symbol{game.X, game.O} {
		l, ok := e.players[seat].(player.Learner)
		if !ok {
			continue
		}
		if reward, ok := e.rewards.For(winner, seat); ok {
			l.ApplyTerminalReward(reward)
		}
	}
}

func (e *Local) resetEpisodes() {
	for _, seat := range []game.Symbol{game.X, game.O} {
		if l, ok := e.players[seat].(player.Learner); ok {
			l.ResetEpisode()
		}
	}
}
