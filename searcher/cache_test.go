package searcher

import (
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestMemo(t *testing.T) {
	key := Key{Alpha: 1, Beta: 2, Me: game.X, Maximizing: true}

	t.Run("storing and loading", func(t *testing.T) {
		c := NewMemo()
		_, ok := c.Get(key)
		require.False(t, ok, "Empty cache should miss")

		c.Put(key, Entry{Value: WIN, Position: 3})
		got, ok := c.Get(key)
		require.True(t, ok)
		require.Equal(t, Entry{Value: WIN, Position: 3}, got)
		require.Equal(t, 1, c.Len())
	})

	t.Run("pruning window is part of the key", func(t *testing.T) {
		c := NewMemo()
		c.Put(key, Entry{Value: WIN, Position: 3})
		other := key
		other.Beta = 3
		_, ok := c.Get(other)
		require.False(t, ok, "A different window should miss")
	})

	t.Run("re-putting does not grow the cache", func(t *testing.T) {
		c := NewMemo()
		c.Put(key, Entry{})
		c.Put(key, Entry{})
		require.Equal(t, 1, c.Len())
	})

	t.Run("reset clears all entries", func(t *testing.T) {
		c := NewMemo()
		c.Put(key, Entry{})
		c.Reset()
		require.Equal(t, 0, c.Len())
		_, ok := c.Get(key)
		require.False(t, ok)
	})
}
