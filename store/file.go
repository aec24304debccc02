package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// FileStore keeps one JSON file per agent in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, ModelKey(name))
}

func (s *FileStore) Save(_ context.Context, name string, values map[string]float64) error {
	data, err := encode(values)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	path := s.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("states", len(values)).Msg("saved model")
	return nil
}

func (s *FileStore) Load(_ context.Context, name string) (map[string]float64, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	return decode(name, data)
}

func (s *FileStore) Close() error {
	return nil
}
