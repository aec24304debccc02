package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustParse(t *testing.T, hash string) *Board {
	t.Helper()
	b, err := ParseBoard(hash)
	require.NoError(t, err)
	return b
}

// lineWinner enumerates the 8 lines independently of Winner.
func lineWinner(cells [Size]Symbol) (bool, Symbol) {
	rows := [][3]int{}
	for r := 0; r < 3; r++ {
		rows = append(rows, [3]int{r * 3, r*3 + 1, r*3 + 2})
		rows = append(rows, [3]int{r, r + 3, r + 6})
	}
	rows = append(rows, [3]int{0, 4, 8}, [3]int{2, 4, 6})
	for _, l := range rows {
		if cells[l[0]] != Empty && cells[l[0]] == cells[l[1]] && cells[l[1]] == cells[l[2]] {
			return true, cells[l[0]]
		}
	}
	for _, c := range cells {
		if c == Empty {
			return false, Empty
		}
	}
	return true, Empty
}

func TestAvailablePositions(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, NewBoard().AvailablePositions(), "All cells should be available in ascending order")
	})

	t.Run("partially filled board", func(t *testing.T) {
		b := mustParse(t, "X O  X  O")
		require.Equal(t, []int{1, 3, 4, 6, 7}, b.AvailablePositions(), "Only empty cells should be available")
	})

	t.Run("full board", func(t *testing.T) {
		b := mustParse(t, "XOXXOOOXX")
		require.Empty(t, b.AvailablePositions(), "A full board has no available cells")
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("placing on an empty cell", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.ApplyMove(4, X))
		require.Equal(t, "    X    ", b.Hash(), "Only the target cell should change")
	})

	t.Run("placing on an occupied cell", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.ApplyMove(4, X))
		err := b.ApplyMove(4, O)
		require.ErrorIs(t, err, ErrOccupiedCell)
		require.Equal(t, "    X    ", b.Hash(), "A rejected move should not mutate the board")
	})

	t.Run("placing out of range", func(t *testing.T) {
		require.ErrorIs(t, NewBoard().ApplyMove(9, X), ErrInvalidPosition)
		require.ErrorIs(t, NewBoard().ApplyMove(-1, X), ErrInvalidPosition)
	})

	t.Run("placing an empty symbol", func(t *testing.T) {
		require.ErrorIs(t, NewBoard().ApplyMove(0, Empty), ErrInvalidSymbol)
	})
}

func TestWinner(t *testing.T) {
	t.Run("every line wins", func(t *testing.T) {
		for _, line := range Lines {
			var cells [Size]Symbol
			for _, p := range line {
				cells[p] = O
			}
			terminal, winner := FromCells(cells).Winner()
			require.True(t, terminal, "Line %v should end the game", line)
			require.Equal(t, O, winner, "Line %v should be won by O", line)
		}
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		terminal, winner := mustParse(t, "XOXXOOOXX").Winner()
		require.True(t, terminal, "A full board is always terminal")
		require.Equal(t, Empty, winner, "A full board without a line is a draw")
	})

	t.Run("non-terminal board", func(t *testing.T) {
		terminal, winner := mustParse(t, "XO       ").Winner()
		require.False(t, terminal)
		require.Equal(t, Empty, winner)
	})

	t.Run("agrees with exhaustive enumeration", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 5000; i++ {
			var cells [Size]Symbol
			for j := range cells {
				cells[j] = Symbol(r.Intn(3))
			}
			gotTerminal, gotWinner := Winner(cells)
			wantTerminal, wantWinner := lineWinner(cells)
			require.Equal(t, wantTerminal, gotTerminal, "terminal mismatch for %q", Hash(cells))
			if wantWinner != Empty {
				// Several lines may match on arbitrary boards, only the fact of a win is comparable
				require.NotEqual(t, Empty, gotWinner, "winner mismatch for %q", Hash(cells))
			} else {
				require.Equal(t, Empty, gotWinner, "winner mismatch for %q", Hash(cells))
			}
		}
	})
}

func TestTurnToMove(t *testing.T) {
	t.Run("X starts", func(t *testing.T) {
		require.Equal(t, X, NewBoard().TurnToMove())
	})

	t.Run("alternates over random legal sequences", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for game := 0; game < 200; game++ {
			b := NewBoard()
			for moves := 0; ; moves++ {
				if moves%2 == 0 {
					require.Equal(t, X, b.TurnToMove(), "X moves on even move counts")
				} else {
					require.Equal(t, O, b.TurnToMove(), "O moves on odd move counts")
				}
				if terminal, _ := b.Winner(); terminal {
					break
				}
				available := b.AvailablePositions()
				require.NoError(t, b.ApplyMove(available[r.Intn(len(available))], b.TurnToMove()))
				require.Equal(t, moves+1, b.Moves())
			}
		}
	})
}

func TestHash(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b := mustParse(t, "X O  X  O")
		require.Equal(t, "X O  X  O", b.Hash())
	})

	t.Run("clone is independent", func(t *testing.T) {
		b := NewBoard()
		c := b.Clone()
		require.NoError(t, c.ApplyMove(0, X))
		require.Equal(t, "         ", b.Hash(), "Mutating a clone should not affect the original")
	})

	t.Run("rejecting malformed hashes", func(t *testing.T) {
		_, err := ParseBoard("XO")
		require.Error(t, err)
		_, err = ParseBoard("XOZ      ")
		require.ErrorIs(t, err, ErrInvalidSymbol)
	})
}

func TestSymbol(t *testing.T) {
	require.Equal(t, O, X.Opponent())
	require.Equal(t, X, O.Opponent())
	require.Equal(t, Empty, Empty.Opponent())
	require.Equal(t, 'X', X.Mark())
	require.Equal(t, "nobody", Empty.String())
}
