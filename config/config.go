package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"tictactoe/meta"
)

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// Config represents the top-level tictactoe.yml configuration
type Config struct {
	DataDir    string           `yaml:"data_dir"`
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
	Learning   LearningConfig   `yaml:"learning"`
	Training   TrainingConfig   `yaml:"training"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// StoreConfig selects where value tables are persisted
type StoreConfig struct {
	Backend string       `yaml:"backend"` // file, redis or badger
	Redis   RedisConfig  `yaml:"redis,omitempty"`
	Badger  BadgerConfig `yaml:"badger,omitempty"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type BadgerConfig struct {
	Path     string `yaml:"path,omitempty"` // Defaults to <data_dir>/badger
	InMemory bool   `yaml:"in_memory,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type LearningConfig struct {
	LearningRate    float64 `yaml:"learning_rate"`
	ExplorationRate float64 `yaml:"exploration_rate"`
	Seed            uint64  `yaml:"seed,omitempty"` // 0 = time based
}

type TrainingConfig struct {
	Workers       int `yaml:"workers"`
	ProgressEvery int `yaml:"progress_every"`
}

type EvaluationConfig struct {
	Games      int    `yaml:"games"`
	ResultsDir string `yaml:"results_dir,omitempty"` // Empty disables CSV output
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // Empty disables the Prometheus export
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Store: StoreConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "tictactoe:"},
		},
		Log: LogConfig{Level: "info"},
		Learning: LearningConfig{
			LearningRate:    meta.LearningRate,
			ExplorationRate: meta.ExplorationRate,
		},
		Training: TrainingConfig{
			Workers:       1,
			ProgressEvery: meta.ProgressEvery,
		},
		Evaluation: EvaluationConfig{Games: meta.EvaluationGames},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.DataDir == "" {
			return errors.New("data_dir is required for the file store")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis store")
		}
	case BackendBadger:
		if !c.Store.Badger.InMemory && c.Store.Badger.Path == "" && c.DataDir == "" {
			return errors.New("store.badger.path or data_dir is required for the badger store")
		}
	default:
		return fmt.Errorf("invalid store.backend: %s (must be 'file', 'redis' or 'badger')", c.Store.Backend)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %s", c.Log.Level)
	}

	if c.Learning.LearningRate <= 0 || c.Learning.LearningRate > 1 {
		return fmt.Errorf("learning.learning_rate must be in (0, 1], got %v", c.Learning.LearningRate)
	}
	if c.Learning.ExplorationRate < 0 || c.Learning.ExplorationRate > 1 {
		return fmt.Errorf("learning.exploration_rate must be in [0, 1], got %v", c.Learning.ExplorationRate)
	}

	if c.Training.Workers < 1 {
		return fmt.Errorf("training.workers must be >= 1, got %d", c.Training.Workers)
	}
	if c.Training.ProgressEvery < 1 {
		return fmt.Errorf("training.progress_every must be >= 1, got %d", c.Training.ProgressEvery)
	}
	if c.Evaluation.Games < 1 {
		return fmt.Errorf("evaluation.games must be >= 1, got %d", c.Evaluation.Games)
	}
	return nil
}

// BadgerPath resolves where the badger store keeps its files.
func (c *Config) BadgerPath() string {
	if c.Store.Badger.Path != "" {
		return c.Store.Badger.Path
	}
	return c.DataDir + "/badger"
}

// Load reads a configuration file on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
