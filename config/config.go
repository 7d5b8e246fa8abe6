// SPDX-License-Identifier: MIT

// Package config loads scanstat run settings from defaults, an optional
// YAML file and SCANSTAT_* environment variables, and turns them into
// scan options.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/scanstat/permute"
	"github.com/katalvlaran/scanstat/scan"
)

// Sentinel validation errors.
var (
	ErrInvalidMCSim     = errors.New("config: num_mcsim must be >= 0")
	ErrInvalidWorkers   = errors.New("config: workers must be >= 0")
	ErrInvalidMaxRows   = errors.New("config: max_result_rows must be positive")
	ErrInvalidMaxCases  = errors.New("config: max_cases must be positive")
	ErrInvalidSeed      = errors.New("config: seed must be an unsigned 64-bit integer")
	ErrInvalidLogLevel  = errors.New("config: unknown log level")
	ErrInvalidLogFormat = errors.New("config: unknown log format")
)

// EnvPrefix is the prefix of every environment override, e.g.
// SCANSTAT_SCAN_NUM_MCSIM=999.
const EnvPrefix = "SCANSTAT"

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config holds all scanstat settings.
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScanConfig mirrors the scan options.
type ScanConfig struct {
	NullModel string `mapstructure:"null_model"`
	// Seed is a decimal uint64; empty draws a random seed per run.
	Seed            string `mapstructure:"seed"`
	NumMCSim        int    `mapstructure:"num_mcsim"`
	Workers         int    `mapstructure:"workers"`
	MaxResultRows   int    `mapstructure:"max_result_rows"`
	MaxCases        int64  `mapstructure:"max_cases"`
	StoreEverything bool   `mapstructure:"store_everything"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from configPath (if not empty), then from
// ./scanstat.yaml or $HOME/.scanstat/scanstat.yaml when present, and
// applies environment overrides. A missing default file is not an error.
func Load(configPath string) (*Config, error) {
	v := New()
	if err := Read(v, configPath); err != nil {
		return nil, err
	}

	return Decode(v)
}

// Read loads the config file into v. An explicit path must exist; the
// default search locations may be empty.
func Read(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("scanstat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.scanstat")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// New returns a viper instance with defaults and environment binding set,
// ready for flags to be bound on top of it.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Scan defaults.
	v.SetDefault("scan.num_mcsim", scan.DefaultNumMCSim)
	v.SetDefault("scan.seed", "")
	v.SetDefault("scan.workers", 0)
	v.SetDefault("scan.store_everything", false)
	v.SetDefault("scan.max_result_rows", scan.DefaultMaxResultRows)
	v.SetDefault("scan.max_cases", scan.DefaultMaxCases)
	v.SetDefault("scan.null_model", scan.DefaultNullModel.String())

	// Logging defaults.
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", FormatConsole)
}

// Validate checks every field; the first problem found is returned.
func (c *Config) Validate() error {
	if c.Scan.NumMCSim < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMCSim, c.Scan.NumMCSim)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Scan.Workers)
	}
	if c.Scan.MaxResultRows <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxRows, c.Scan.MaxResultRows)
	}
	if c.Scan.MaxCases <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxCases, c.Scan.MaxCases)
	}
	if _, _, err := c.Scan.seed(); err != nil {
		return err
	}
	if _, err := permute.ParseNullModel(c.Scan.NullModel); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

func (s ScanConfig) seed() (uint64, bool, error) {
	if s.Seed == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s.Seed), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidSeed, s.Seed)
	}

	return n, true, nil
}

// Options converts the scan settings into scan options. The config must
// have passed Validate.
func (s ScanConfig) Options() ([]scan.Option, error) {
	model, err := permute.ParseNullModel(s.NullModel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	seed, seeded, err := s.seed()
	if err != nil {
		return nil, err
	}
	if s.NumMCSim < 0 || s.Workers < 0 || s.MaxResultRows <= 0 || s.MaxCases <= 0 {
		return nil, fmt.Errorf("config: unvalidated scan settings %+v", s)
	}

	opts := []scan.Option{
		scan.WithNumMCSim(s.NumMCSim),
		scan.WithWorkers(s.Workers),
		scan.WithMaxResultRows(s.MaxResultRows),
		scan.WithMaxCases(s.MaxCases),
		scan.WithNullModel(model),
		scan.WithStoreEverything(s.StoreEverything),
	}
	if seeded {
		opts = append(opts, scan.WithSeed(seed))
	}

	return opts, nil
}
