package learner

import (
	"maps"
	"sync"
)

// Table maps board hashes to learned values. Unknown states are worth 0.
// Reads may run concurrently; each propagated episode takes the write lock
// once.
type Table struct {
	mu     sync.RWMutex
	values map[string]float64
}

func NewTable() *Table {
	return &Table{values: map[string]float64{}}
}

// FromValues wraps a loaded table. The map is copied.
func FromValues(values map[string]float64) *Table {
	t := NewTable()
	maps.Copy(t.values, values)
	return t
}

func (t *Table) Value(hash string) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values[hash]
}

// Values returns a snapshot of the table.
func (t *Table) Values() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return maps.Clone(t.values)
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

// Replace swaps the content of the table for values.
func (t *Table) Replace(values map[string]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values = maps.Clone(values)
	if t.values == nil {
		t.values = map[string]float64{}
	}
}

// Update propagates reward backwards through trace, most recent state first.
// Every state moves a step of size lr towards the target, and its new value
// becomes the target of the state before it.
func (t *Table) Update(trace []string, reward, lr float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(trace) - 1; i >= 0; i-- {
		hash := trace[i]
		v := t.values[hash]
		v += lr * (reward - v)
		t.values[hash] = v
		reward = v
	}
}
