package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrModelNotFound is returned when no table was saved under a name. It is
	// expected on a first run.
	ErrModelNotFound = errors.New("model not found")

	// ErrDeserialization is returned when a saved table cannot be decoded.
	ErrDeserialization = errors.New("model cannot be deserialized")
)

// Store persists value tables keyed by agent name.
type Store interface {
	Save(ctx context.Context, name string, values map[string]float64) error
	Load(ctx context.Context, name string) (map[string]float64, error)
	Close() error
}

// ModelKey is the name a table is stored under.
func ModelKey(name string) string {
	return "policy_" + name
}

func encode(values map[string]float64) ([]byte, error) {
	if values == nil {
		values = map[string]float64{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize model: %w", err)
	}
	return data, nil
}

func decode(name string, data []byte) (map[string]float64, error) {
	values := map[string]float64{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDeserialization, name, err)
	}
	return values, nil
}

func notFound(name string) error {
	return fmt.Errorf("%w: cannot load agent %s, are you sure you have trained one first?", ErrModelNotFound, name)
}
