package training

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/learner"
	"tictactoe/meta"
	"tictactoe/store"
)

const (
	Mode        = "train"
	partnerName = "partner"
)

type Option func(c *Controller)

// Summary counts the outcomes of a training run.
type Summary struct {
	Cycles   int
	XWins    int
	OWins    int
	Draws    int
	States   int // states in the saved table
	Duration time.Duration
}

// Controller trains a named agent by self-play against a partner table.
// During the first half of the cycles the named table plays X, during the
// second half it plays O. Only the named table is saved.
type Controller struct {
	name            string
	store           store.Store
	primary         *learner.Table
	partner         *learner.Table
	workers         int
	seed            uint64
	progressEvery   int
	learningRate    float64
	explorationRate float64
	rewards         engine.Rewards
	collector       metrics.Collector
}

// WithWorkers plays games in parallel. Workers share both tables.
func WithWorkers(workers int) Option {
	return func(c *Controller) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithSeed makes exploration reproducible. Each worker derives its own seed.
func WithSeed(seed uint64) Option {
	return func(c *Controller) {
		c.seed = seed
	}
}

func WithProgressEvery(cycles int) Option {
	return func(c *Controller) {
		if cycles > 0 {
			c.progressEvery = cycles
		}
	}
}

func WithLearningRate(lr float64) Option {
	return func(c *Controller) {
		if lr > 0 {
			c.learningRate = lr
		}
	}
}

func WithExplorationRate(rate float64) Option {
	return func(c *Controller) {
		if rate >= 0 && rate <= 1 {
			c.explorationRate = rate
		}
	}
}

func WithRewards(rewards engine.Rewards) Option {
	return func(c *Controller) {
		c.rewards = rewards
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(c *Controller) {
		if collector != nil {
			c.collector = collector
		}
	}
}

func NewController(name string, s store.Store, options ...Option) *Controller {
	c := &Controller{ // Default values
		name:            name,
		store:           s,
		primary:         learner.NewTable(),
		partner:         learner.NewTable(),
		workers:         1,
		progressEvery:   meta.ProgressEvery,
		learningRate:    meta.LearningRate,
		explorationRate: meta.ExplorationRate,
		rewards:         engine.DefaultRewards(),
		collector:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Primary is the table trained under the agent name.
func (c *Controller) Primary() *learner.Table {
	return c.primary
}

func (c *Controller) Partner() *learner.Table {
	return c.partner
}

// seats holds one worker's agents, each bound to a shared table.
type seats struct {
	primary *tracked
	partner *tracked
}

// roles returns who plays X and O in cycle i of n.
func (s seats) roles(i, n int) (x, o *tracked) {
	if i < n/2 {
		return s.primary, s.partner
	}
	return s.partner, s.primary
}

// Run plays cycles games and saves the named table.
func (c *Controller) Run(ctx context.Context, cycles int) (Summary, error) {
	start := time.Now()
	log.Info().Str("agent", c.name).Int("cycles", cycles).Int("workers", c.workers).Msg("starting training")

	var (
		next    atomic.Int64
		mu      sync.Mutex
		summary = Summary{Cycles: cycles}
	)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < c.workers; w++ {
		s := c.newSeats(w)
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= cycles {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}

				if i%c.progressEvery == 0 {
					log.Info().Msgf("%d cycles", i)
				}
				if i == cycles/2 {
					log.Info().Msg("switching symbols")
				}

				x, o := s.roles(i, cycles)
				result, err := engine.New(x, o, engine.WithRewards(c.rewards)).Run()
				if err != nil {
					return fmt.Errorf("training game %d failed: %w", i, err)
				}
				c.collector.AddGame(Mode, result.Winner)

				mu.Lock()
				switch result.Winner {
				case game.X:
					summary.XWins++
				case game.O:
					summary.OWins++
				default:
					summary.Draws++
				}
				mu.Unlock()
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary.States = c.primary.Len()
	summary.Duration = time.Since(start)
	c.collector.SetTableSize(c.name, summary.States)
	c.collector.SetTableSize(partnerName, c.partner.Len())

	agent := learner.NewAgent(c.name, learner.WithTable(c.primary))
	if err := agent.Save(ctx, c.store); err != nil {
		return summary, err
	}

	log.Info().Str("agent", c.name).Int("states", summary.States).Dur("duration", summary.Duration).Msg("completed training")
	return summary, nil
}

func (c *Controller) newSeats(worker int) seats {
	seat := func(name string, table *learner.Table, offset uint64) *tracked {
		options := []learner.Option{
			learner.WithTable(table),
			learner.WithLearningRate(c.learningRate),
			learner.WithExplorationRate(c.explorationRate),
		}
		if c.seed != 0 {
			options = append(options, learner.WithSeed(c.seed+2*uint64(worker)+offset))
		}
		return &tracked{Agent: learner.NewAgent(name, options...), collector: c.collector}
	}
	return seats{
		primary: seat(c.name, c.primary, 0),
		partner: seat(partnerName, c.partner, 1),
	}
}

// tracked reports every reward propagation to the collector.
type tracked struct {
	*learner.Agent
	collector metrics.Collector
}

func (t *tracked) ApplyTerminalReward(reward float64) {
	t.collector.AddUpdates(t.Name(), len(t.Trace()))
	t.Agent.ApplyTerminalReward(reward)
}
