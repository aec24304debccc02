package store

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"tictactoe/config"
)

// Open builds the backend selected by the configuration.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.DataDir), nil
	case config.BackendRedis:
		s, err := NewRedisStore(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		}, cfg.Store.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendBadger:
		s, err := NewBadgerStore(BadgerConfig{
			Path:     cfg.BadgerPath(),
			InMemory: cfg.Store.Badger.InMemory,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
