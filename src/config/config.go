// Package config loads the bluediscs driver settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"bluediscs/src/arith/exact"
)

// MinimumTotal is the smallest disc total the puzzle allows: more than 10^12.
const MinimumTotal uint64 = 1_000_000_000_001

// Config holds all bluediscs configuration.
type Config struct {
	// Search range and fan-out
	Search SearchConfig `yaml:"search"`

	// Probability the search is looking for
	Target FractionConfig `yaml:"target"`

	// Ratio used to derive a starting blue-disc estimate
	Estimate FractionConfig `yaml:"estimate"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig bounds the totals examined by the searcher.
type SearchConfig struct {
	MinTotal uint64 `yaml:"min_total"`
	MaxTotal uint64 `yaml:"max_total"`
	Workers  int    `yaml:"workers"`
	Chunk    uint64 `yaml:"chunk"` // totals per work unit
}

// FractionConfig is a fraction written as two integers.
type FractionConfig struct {
	Numerator   int64 `yaml:"numerator"`
	Denominator int64 `yaml:"denominator"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MinTotal: MinimumTotal,
			MaxTotal: MinimumTotal + 1_000_000,
			Workers:  4,
			Chunk:    10_000,
		},
		Target: FractionConfig{
			Numerator:   1,
			Denominator: 2,
		},
		Estimate: FractionConfig{
			Numerator:   15,
			Denominator: 21,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies BLUEDISCS_* environment variables. Values that
// do not parse are ignored.
func (c *Config) applyEnvOverrides() {
	if v, ok := envUint("BLUEDISCS_MIN_TOTAL"); ok {
		c.Search.MinTotal = v
	}
	if v, ok := envUint("BLUEDISCS_MAX_TOTAL"); ok {
		c.Search.MaxTotal = v
	}
	if v, ok := envUint("BLUEDISCS_WORKERS"); ok {
		c.Search.Workers = int(v)
	}
	if v := os.Getenv("BLUEDISCS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func envUint(key string) (uint64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var (
	ErrEmptyRange       = errors.New("search range is empty")
	ErrZeroDenominator  = errors.New("denominator must not be zero")
	ErrTooFewDiscs      = errors.New("a draw of two discs needs a total of at least 2")
	ErrInvalidWorkers   = errors.New("workers must be positive")
	ErrInvalidChunk     = errors.New("chunk must be positive")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrTargetOutOfRange = errors.New("target probability must lie in (0, 1]")
	ErrRatioOutOfRange  = errors.New("estimate ratio must lie in [0, 1]")
)

// Validate checks the configuration for values the driver cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Search.MinTotal < 2 {
		errs = append(errs, ErrTooFewDiscs)
	}
	if c.Search.MaxTotal < c.Search.MinTotal {
		errs = append(errs, fmt.Errorf("%w: min_total %d > max_total %d", ErrEmptyRange, c.Search.MinTotal, c.Search.MaxTotal))
	}
	if c.Search.Workers <= 0 {
		errs = append(errs, ErrInvalidWorkers)
	}
	if c.Search.Chunk == 0 {
		errs = append(errs, ErrInvalidChunk)
	}
	if c.Target.Denominator == 0 {
		errs = append(errs, fmt.Errorf("target: %w", ErrZeroDenominator))
	} else if c.Target.Numerator == 0 || !c.Target.inUnitInterval() {
		errs = append(errs, fmt.Errorf("%w: %d/%d", ErrTargetOutOfRange, c.Target.Numerator, c.Target.Denominator))
	}
	if c.Estimate.Denominator == 0 {
		errs = append(errs, fmt.Errorf("estimate: %w", ErrZeroDenominator))
	} else if !c.Estimate.inUnitInterval() {
		errs = append(errs, fmt.Errorf("%w: %d/%d", ErrRatioOutOfRange, c.Estimate.Numerator, c.Estimate.Denominator))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.Logging.Level))
	}
	return errors.Join(errs...)
}

// Rational returns the fraction in lowest terms. It panics if the
// denominator is zero; call Validate first.
func (f FractionConfig) Rational() exact.Rational {
	return exact.NewInt64(f.Numerator, f.Denominator)
}

func (f FractionConfig) inUnitInterval() bool {
	n, d := f.Numerator, f.Denominator
	if d < 0 {
		n, d = -n, -d
	}
	return n >= 0 && n <= d
}
