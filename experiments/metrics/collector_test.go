package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

func TestCollector(t *testing.T) {
	c := NewCollector().(*collector)

	c.AddGame("train", game.X)
	c.AddGame("train", game.X)
	c.AddGame("train", game.Empty)
	c.AddGame("evaluate", game.O)
	c.AddUpdates("alice", 3)
	c.AddUpdates("alice", 4)
	c.SetTableSize("alice", 10)
	c.SetTableSize("alice", 12)

	require.Equal(t, 2.0, testutil.ToFloat64(c.games.WithLabelValues("train", "X")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.games.WithLabelValues("train", "nobody")), "draws are labelled nobody")
	require.Equal(t, 1.0, testutil.ToFloat64(c.games.WithLabelValues("evaluate", "O")))
	require.Equal(t, 7.0, testutil.ToFloat64(c.updates.WithLabelValues("alice")))
	require.Equal(t, 12.0, testutil.ToFloat64(c.tableSizes.WithLabelValues("alice")))

	t.Run("textfile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tictactoe.prom")
		require.NoError(t, c.WriteTextfile(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `tictactoe_games_total{mode="train",winner="X"} 2`)
		require.Contains(t, string(data), `tictactoe_value_table_states{agent="alice"} 12`)
	})

	t.Run("independent registries", func(t *testing.T) {
		other := NewCollector().(*collector)
		require.Zero(t, testutil.ToFloat64(other.games.WithLabelValues("train", "X")))
	})
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.AddGame("train", game.X)
	c.AddUpdates("alice", 1)
	c.SetTableSize("alice", 1)
	require.NoError(t, c.WriteTextfile(filepath.Join(t.TempDir(), "none")))
}
