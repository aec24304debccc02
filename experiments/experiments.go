package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/learner"
	"tictactoe/meta"
	"tictactoe/searcher"
	"tictactoe/store"
)

const (
	ModeEvaluate = "evaluate"
	ModeDuel     = "duel"
)

// Report is the outcome of an evaluation run. SaveErr is set when the games
// completed but a learned table could not be persisted.
type Report struct {
	Mode      string
	Standings []Standing
	Records   []metrics.GameRecord
	SaveErr   error
}

// Evaluate loads agent, plays it against minimax and saves what it learned.
func Evaluate(ctx context.Context, s store.Store, agent *learner.Agent, options ...Option) (Report, error) {
	if err := agent.Load(ctx, s); err != nil {
		return Report{}, err
	}

	options = append([]Option{WithMode(ModeEvaluate)}, options...)
	t := NewTournament(
		Participant{Name: agent.Name(), Player: agent},
		Participant{Name: meta.MinimaxName, Player: searcher.NewMinimax()},
		options...,
	)
	standings, err := t.Run()
	if err != nil {
		return Report{}, err
	}

	report := Report{Mode: t.Mode(), Standings: standings, Records: t.Records()}
	report.SaveErr = save(ctx, s, t.collector, agent)
	return report, nil
}

// Duel loads two agents and plays them against each other. Both learn under
// the same rewards and both are saved.
func Duel(ctx context.Context, s store.Store, a, b *learner.Agent, options ...Option) (Report, error) {
	if a.Name() == b.Name() {
		return Report{}, fmt.Errorf("an agent cannot duel itself: %s", a.Name())
	}
	for _, agent := range []*learner.Agent{a, b} {
		if err := agent.Load(ctx, s); err != nil {
			return Report{}, err
		}
	}

	options = append([]Option{WithMode(ModeDuel)}, options...)
	t := NewTournament(
		Participant{Name: a.Name(), Player: a},
		Participant{Name: b.Name(), Player: b},
		options...,
	)
	standings, err := t.Run()
	if err != nil {
		return Report{}, err
	}

	report := Report{Mode: t.Mode(), Standings: standings, Records: t.Records()}
	for _, agent := range []*learner.Agent{a, b} {
		if err := save(ctx, s, t.collector, agent); err != nil && report.SaveErr == nil {
			report.SaveErr = err
		}
	}
	return report, nil
}

func save(ctx context.Context, s store.Store, collector metrics.Collector, agent *learner.Agent) error {
	collector.SetTableSize(agent.Name(), agent.Table().Len())
	if err := agent.Save(ctx, s); err != nil {
		log.Error().Err(err).Str("agent", agent.Name()).Msg("failed to save agent")
		return err
	}
	return nil
}

// Export writes the games and tallies of a report under resultsDir.
func Export(resultsDir string, report Report) (string, error) {
	writer, err := metrics.NewWriter(resultsDir, report.Mode)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteGameRecords(report.Records)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteTallies(Tallies(report.Standings))
	if err != nil {
		return "", fmt.Errorf("failed to write tallies: %w", err)
	}
	log.Info().Msg("stored tallies")

	return writer.Dir(), nil
}
