package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
)

type Option func(t *Tournament)

type Stat struct {
	Wins   int
	Draws  int
	Losses int
}

func (s Stat) Sum() int {
	return s.Wins + s.Draws + s.Losses
}

func (s *Stat) add(winner, role game.Symbol) {
	switch winner {
	case game.Empty:
		s.Draws++
	case role:
		s.Wins++
	default:
		s.Losses++
	}
}

// Results splits a participant's record by the side it played.
type Results struct {
	PlayingX Stat
	PlayingO Stat
}

func (r Results) Total() Stat {
	return Stat{
		Wins:   r.PlayingX.Wins + r.PlayingO.Wins,
		Draws:  r.PlayingX.Draws + r.PlayingO.Draws,
		Losses: r.PlayingX.Losses + r.PlayingO.Losses,
	}
}

type Participant struct {
	Name   string
	Player player.Player
}

type Standing struct {
	Name string
	Results
}

// Tournament plays a series of games between two participants, tossing a coin
// before each game for who plays X.
type Tournament struct {
	participants [2]Participant
	games        int
	mode         string
	rng          *rand.Rand
	rewards      engine.Rewards
	observer     engine.Observer
	collector    metrics.Collector
	standings    [2]Standing
	records      []metrics.GameRecord
}

func WithGames(games int) Option {
	return func(t *Tournament) {
		if games > 0 {
			t.games = games
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(t *Tournament) {
		if seed != 0 {
			t.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithMode labels the games in metrics and result files.
func WithMode(mode string) Option {
	return func(t *Tournament) {
		if mode != "" {
			t.mode = mode
		}
	}
}

func WithRewards(rewards engine.Rewards) Option {
	return func(t *Tournament) {
		t.rewards = rewards
	}
}

func WithObserver(observer engine.Observer) Option {
	return func(t *Tournament) {
		t.observer = observer
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(t *Tournament) {
		if collector != nil {
			t.collector = collector
		}
	}
}

func NewTournament(a, b Participant, options ...Option) *Tournament {
	if a.Name == b.Name {
		panic(fmt.Sprintf("participants must have distinct names, both are %q", a.Name))
	}
	t := &Tournament{ // Default values
		participants: [2]Participant{a, b},
		games:        meta.EvaluationGames,
		mode:         "tournament",
		rng:          rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		rewards:      engine.DefaultRewards(),
		collector:    metrics.NewDummyCollector(),
	}
	t.standings[0].Name = a.Name
	t.standings[1].Name = b.Name
	for _, option := range options {
		option(t)
	}
	return t
}

// Run plays all games and returns the standings in participant order. It
// stops at the first game that fails.
func (t *Tournament) Run() ([]Standing, error) {
	log.Info().Msgf("starting %s of %d games between %s and %s", t.mode, t.games, t.participants[0].Name, t.participants[1].Name)

	for i := 0; i < t.games; i++ {
		first := t.rng.Intn(2) // plays X
		x, o := t.participants[first], t.participants[1-first]

		options := []engine.Option{engine.WithRewards(t.rewards)}
		if t.observer != nil {
			options = append(options, engine.WithObserver(t.observer))
		}
		result, err := engine.New(x.Player, o.Player, options...).Run()
		if err != nil {
			return nil, fmt.Errorf("game %d of %d failed: %w", i+1, t.games, err)
		}

		t.standings[first].PlayingX.add(result.Winner, game.X)
		t.standings[1-first].PlayingO.add(result.Winner, game.O)
		t.collector.AddGame(t.mode, result.Winner)

		record := metrics.GameRecord{
			ID:       i + 1,
			X:        x.Name,
			O:        o.Name,
			Moves:    result.Moves,
			Duration: result.Duration,
		}
		switch result.Winner {
		case game.X:
			record.Winner = x.Name
		case game.O:
			record.Winner = o.Name
		}
		t.records = append(t.records, record)

		log.Debug().Int("game", i+1).Str("x", x.Name).Str("o", o.Name).Str("winner", record.Winner).Msg("game completed")
	}

	log.Info().Msgf("completed %s", t.mode)
	return t.Standings(), nil
}

func (t *Tournament) Standings() []Standing {
	return []Standing{t.standings[0], t.standings[1]}
}

func (t *Tournament) Records() []metrics.GameRecord {
	return t.records
}

func (t *Tournament) Mode() string {
	return t.mode
}

// Tallies flattens standings into one row per participant and side.
func Tallies(standings []Standing) []metrics.TallyRecord {
	records := make([]metrics.TallyRecord, 0, 2*len(standings))
	for _, s := range standings {
		for _, role := range []struct {
			name string
			stat Stat
		}{{"X", s.PlayingX}, {"O", s.PlayingO}} {
			records = append(records, metrics.TallyRecord{
				Participant: s.Name,
				Role:        role.name,
				Wins:        role.stat.Wins,
				Draws:       role.stat.Draws,
				Losses:      role.stat.Losses,
			})
		}
	}
	return records
}
