package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"stringgenetics/internal/ga"
)

// Config is the root configuration structure
type Config struct {
	Seed     int64         `yaml:"seed"` // 0 seeds from the clock
	Target   string        `yaml:"target"`
	PoolSize int           `yaml:"pool_size"`
	Run      RunConfig     `yaml:"run"`
	Logging  LogConfig     `yaml:"logging"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// RunConfig bounds the evolution loop
type RunConfig struct {
	Generations   int     `yaml:"generations"`
	TargetFitness float64 `yaml:"target_fitness"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level           string `yaml:"level"`
	Format          string `yaml:"format"` // text|json
	EveryGenSummary bool   `yaml:"every_gen_summary"`
	CSVPath         string `yaml:"csv_path"`
	JSONPath        string `yaml:"json_path"`
	HistoryPath     string `yaml:"history_path"`
	HistorySize     int    `yaml:"history_size"`
}

// MetricsConfig defines the optional Prometheus listener
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a YAML config file and returns a validated Config
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Read parses a YAML config file and applies defaults without validating,
// so callers can apply overrides first
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a config with every default applied and no target set
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 256
	}
	if cfg.Run.Generations == 0 {
		cfg.Run.Generations = 1000
	}
	if cfg.Run.TargetFitness == 0 {
		cfg.Run.TargetFitness = 1.0
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.HistoryPath == "" {
		cfg.Logging.HistoryPath = "runs/history.json"
	}
	if cfg.Logging.HistorySize == 0 {
		cfg.Logging.HistorySize = 100
	}
}

// Validate checks the configuration for values the evolution loop cannot run with
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target is required")
	}
	if _, err := ga.NewCandidate(c.Target); err != nil {
		return fmt.Errorf("target %q: %w", c.Target, err)
	}
	if len(c.Target) < 2 {
		return fmt.Errorf("target %q: %w", c.Target, ga.ErrTooShortForCrossover)
	}
	if c.PoolSize < ga.MinPoolSize {
		return fmt.Errorf("pool_size must be at least %d, got %d", ga.MinPoolSize, c.PoolSize)
	}
	if c.Run.Generations < 1 {
		return fmt.Errorf("run.generations must be positive, got %d", c.Run.Generations)
	}
	if c.Run.TargetFitness <= 0 || c.Run.TargetFitness > 1 {
		return fmt.Errorf("run.target_fitness must be in (0, 1], got %v", c.Run.TargetFitness)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.HistorySize < 1 {
		return fmt.Errorf("logging.history_size must be positive, got %d", c.Logging.HistorySize)
	}
	return nil
}
