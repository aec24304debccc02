package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore keeps each table as a JSON string under <prefix>policy:<name>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(opts *redis.Options, prefix string) (*RedisStore, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + "policy:" + name
}

func (s *RedisStore) Save(ctx context.Context, name string, values map[string]float64) error {
	data, err := encode(values)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write model %s: %w", s.key(name), err)
	}

	log.Info().Str("key", s.key(name)).Int("states", len(values)).Msg("saved model")
	return nil
}

func (s *RedisStore) Load(ctx context.Context, name string) (map[string]float64, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", s.key(name), err)
	}
	return decode(name, data)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
