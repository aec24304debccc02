package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tictactoe/game"
)

const namespace = "tictactoe"

// Collector records what happens across many games.
type Collector interface {
	AddGame(mode string, winner game.Symbol)
	AddUpdates(agent string, states int)
	SetTableSize(agent string, states int)
	WriteTextfile(path string) error
}

type collector struct {
	registry   *prometheus.Registry
	games      *prometheus.CounterVec
	updates    *prometheus.CounterVec
	tableSizes *prometheus.GaugeVec
}

// NewCollector registers its metrics on a private registry so that several
// collectors can coexist in one process.
func NewCollector() Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &collector{
		registry: registry,
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Finished games by mode and winner.",
		}, []string{"mode", "winner"}),
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "td_updates_total",
			Help:      "States updated by terminal reward propagation.",
		}, []string{"agent"}),
		tableSizes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "value_table_states",
			Help:      "Number of states in a value table.",
		}, []string{"agent"}),
	}
}

func (m *collector) AddGame(mode string, winner game.Symbol) {
	m.games.WithLabelValues(mode, winner.String()).Inc()
}

func (m *collector) AddUpdates(agent string, states int) {
	m.updates.WithLabelValues(agent).Add(float64(states))
}

func (m *collector) SetTableSize(agent string, states int) {
	m.tableSizes.WithLabelValues(agent).Set(float64(states))
}

// WriteTextfile exports the registry in the node exporter textfile format.
func (m *collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) AddGame(mode string, winner game.Symbol) {}
func (m *dummyCollector) AddUpdates(agent string, states int)     {}
func (m *dummyCollector) SetTableSize(agent string, states int)   {}
func (m *dummyCollector) WriteTextfile(path string) error         { return nil }
