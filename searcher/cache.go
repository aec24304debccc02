package searcher

import (
	"sync"
	"sync/atomic"

	"tictactoe/game"
)

// Key identifies a search call. Alpha and beta are part of the key so that a
// hit is only served under the same pruning window.
type Key struct {
	Cells      [game.Size]game.Symbol
	Alpha      int
	Beta       int
	Me         game.Symbol
	Maximizing bool
}

type Entry struct {
	Value    int
	Position int
}

// Cache memoizes search results. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key Key) (Entry, bool)
	Put(key Key, entry Entry)
	Len() int
	Reset()
}

type memo struct {
	entries sync.Map
	size    atomic.Int64
}

// NewMemo returns an unbounded in-memory cache. Entries are never evicted.
func NewMemo() Cache {
	return &memo{}
}

func (m *memo) Get(key Key) (Entry, bool) {
	v, ok := m.entries.Load(key)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

func (m *memo) Put(key Key, entry Entry) {
	if _, loaded := m.entries.LoadOrStore(key, entry); !loaded {
		m.size.Add(1)
	}
}

func (m *memo) Len() int {
	return int(m.size.Load())
}

func (m *memo) Reset() {
	m.entries.Clear()
	m.size.Store(0)
}

type noCache struct{}

// NewNoCache returns a cache that never hits.
func NewNoCache() Cache {
	return noCache{}
}

func (noCache) Get(Key) (Entry, bool) { return Entry{}, false }
func (noCache) Put(Key, Entry)        {}
func (noCache) Len() int              { return 0 }
func (noCache) Reset()                {}
