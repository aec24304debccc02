package searcher

import (
	"fmt"
	"math"

	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax is an exhaustive alpha-beta searcher. Its cache is owned by the
// instance and shared by every search it runs.
type Minimax struct {
	cache   Cache
	metrics MetricsCollector
}

func WithCache(cache Cache) Option {
	return func(m *Minimax) {
		if cache != nil {
			m.cache = cache
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		cache:   NewMemo(),
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Cache() Cache {
	return m.cache
}

// LastMetrics returns the metrics of the most recent search.
func (m *Minimax) LastMetrics() SearchMetrics {
	return m.metrics.Complete()
}

// FindMove returns the optimal move for me. It never returns an error; a
// failed search panics with ErrSearchInvariant.
func (m *Minimax) FindMove(board *game.Board, me game.Symbol) (int, error) {
	position, _ := m.Search(board, me)
	return position, nil
}

// Search returns the optimal position for me assuming optimal counter-play,
// together with its minimax value.
func (m *Minimax) Search(board *game.Board, me game.Symbol) (position int, value int) {
	if me != game.X && me != game.O {
		panic(fmt.Errorf("%w: cannot search for %s", ErrSearchInvariant, me))
	}

	m.metrics.Start()
	value, position = m.maxValue(board.Cells(), math.MinInt, math.MaxInt, me)
	metric := m.metrics.Complete()

	if position == noMove {
		panic(fmt.Errorf("%w: no move found for %s on %q", ErrSearchInvariant, me, board.Hash()))
	}

	log.Debug().
		Int("position", position).
		Int("value", value).
		Str("board", board.Hash()).
		Int64("nodes", metric.Nodes).
		Int64("cache_hits", metric.CacheHits).
		Msg("minimax-search")
	return position, value
}

func (m *Minimax) maxValue(cells [game.Size]game.Symbol, alpha, beta int, me game.Symbol) (int, int) {
	if result, ok := score(cells, me); ok {
		return result, noMove
	}

	key := Key{Cells: cells, Alpha: alpha, Beta: beta, Me: me, Maximizing: true}
	if entry, ok := m.cache.Get(key); ok {
		m.metrics.AddCacheHit()
		return entry.Value, entry.Position
	}
	m.metrics.AddNode()

	best := math.MinInt
	action := noMove
	for _, p := range game.Available(cells) {
		next := cells
		next[p] = me

		v, _ := m.minValue(next, alpha, beta, me)
		if v > best {
			best = v
			action = p
		}

		alpha = max(alpha, v)
		if beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}

	m.cache.Put(key, Entry{Value: best, Position: action})
	return best, action
}

func (m *Minimax) minValue(cells [game.Size]game.Symbol, alpha, beta int, me game.Symbol) (int, int) {
	if result, ok := score(cells, me); ok {
		return result, noMove
	}

	key := Key{Cells: cells, Alpha: alpha, Beta: beta, Me: me, Maximizing: false}
	if entry, ok := m.cache.Get(key); ok {
		m.metrics.AddCacheHit()
		return entry.Value, entry.Position
	}
	m.metrics.AddNode()

	worst := math.MaxInt
	action := noMove
	for _, p := range game.Available(cells) {
		next := cells
		next[p] = me.Opponent()

		v, _ := m.maxValue(next, alpha, beta, me)
		if v < worst {
			worst = v
			action = p
		}

		beta = min(beta, v)
		if beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}

	m.cache.Put(key, Entry{Value: worst, Position: action})
	return worst, action
}
