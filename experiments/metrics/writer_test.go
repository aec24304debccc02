package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "evaluate")
	require.NoError(t, err)

	_, err = uuid.Parse(w.RunID())
	require.NoError(t, err, "run id should be a uuid")
	require.Equal(t, filepath.Join(dir, "evaluate", w.RunID()), w.Dir())

	t.Run("games", func(t *testing.T) {
		require.NoError(t, w.WriteGameRecords([]GameRecord{
			{ID: 1, X: "alice", O: "minimax", Winner: "minimax", Moves: 7, Duration: time.Millisecond},
			{ID: 2, X: "minimax", O: "alice", Moves: 9},
		}))
		rows := readCSV(t, filepath.Join(w.Dir(), "games.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"id", "x", "o", "winner", "moves", "duration"}, rows[0])
		require.Equal(t, []string{"1", "alice", "minimax", "minimax", "7", "1ms"}, rows[1])
		require.Equal(t, "", rows[2][3], "draws have no winner")
	})

	t.Run("tallies", func(t *testing.T) {
		require.NoError(t, w.WriteTallies([]TallyRecord{
			{Participant: "alice", Role: "X", Wins: 1, Draws: 2, Losses: 3},
		}))
		rows := readCSV(t, filepath.Join(w.Dir(), "tallies.csv"))
		require.Equal(t, []string{"alice", "X", "1", "2", "3"}, rows[1])
	})

	t.Run("runs do not collide", func(t *testing.T) {
		other, err := NewWriter(dir, "evaluate")
		require.NoError(t, err)
		require.NotEqual(t, w.Dir(), other.Dir())
	})
}
