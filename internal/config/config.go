// apps/go-solver/internal/config/config.go
//
// Configuration for the CLI and the HTTP server.
// Sources, lowest to highest precedence:
//   1. Defaults (DefaultConfig).
//   2. YAML file (wordle.yaml by default; missing file is not an error).
//   3. Environment variables (a `.env` file is loaded by main):
//        WORDLE_WORDS_FILE, WORDLE_OPENER, WORDLE_SCORER, WORDLE_WORKERS,
//        WORDLE_ROUNDS, WORDLE_SEED, PORT, LOG_LEVEL
//   4. Command-line flags (applied by the cli package).

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Default values for Config.
const (
	DefaultPath     = "wordle.yaml"
	DefaultRounds   = 500
	DefaultSeed     = "wordle"
	DefaultPort     = 5176
	DefaultLogLevel = "info"
)

// Config is the full application configuration.
type Config struct {
	WordsFile string        `yaml:"words_file"`
	Scorer    string        `yaml:"scorer"`
	Solver    solver.Config `yaml:"solver"`
	Bench     BenchConfig   `yaml:"bench"`
	Server    ServerConfig  `yaml:"server"`
	LogLevel  string        `yaml:"log_level"`
}

// BenchConfig holds batch run defaults.
type BenchConfig struct {
	Rounds  int    `yaml:"rounds"`
	Workers int    `yaml:"workers"`
	Seed    string `yaml:"seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Scorer: solver.ScorerPositional,
		Solver: solver.DefaultConfig(),
		Bench: BenchConfig{
			Rounds: DefaultRounds,
			Seed:   DefaultSeed,
		},
		Server:   ServerConfig{Port: DefaultPort},
		LogLevel: DefaultLogLevel,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg from environment variables.
func ApplyEnv(cfg *Config) error {
	cfg.WordsFile = getEnv("WORDLE_WORDS_FILE", cfg.WordsFile)
	cfg.Solver.Opener = getEnv("WORDLE_OPENER", cfg.Solver.Opener)
	cfg.Scorer = getEnv("WORDLE_SCORER", cfg.Scorer)
	cfg.Bench.Seed = getEnv("WORDLE_SEED", cfg.Bench.Seed)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	ints := []struct {
		key string
		dst *int
	}{
		{"WORDLE_WORKERS", &cfg.Bench.Workers},
		{"WORDLE_ROUNDS", &cfg.Bench.Rounds},
		{"PORT", &cfg.Server.Port},
	}
	for _, kv := range ints {
		v := os.Getenv(kv.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: kv.key, Message: "must be an integer"}
		}
		*kv.dst = n
	}
	return nil
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	if c.Solver.HybridThreshold < 0 {
		return ValidationError{Field: "solver.hybrid_threshold", Message: "must not be negative"}
	}
	if err := c.Solver.Validate(); err != nil {
		return ValidationError{Field: "solver.opener", Message: err.Error()}
	}
	if _, err := solver.ScorerFor(c.Scorer, c.Solver); err != nil {
		return ValidationError{Field: "scorer", Message: err.Error()}
	}
	if c.Bench.Rounds > bench.MaxRounds {
		return ValidationError{Field: "bench.rounds", Message: fmt.Sprintf("must not exceed %d", bench.MaxRounds)}
	}
	if c.Bench.Workers < 0 {
		return ValidationError{Field: "bench.workers", Message: "must not be negative"}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return ValidationError{Field: "server.port", Message: "must be between 0 and 65535"}
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
