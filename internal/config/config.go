// Package config holds the scraper's settings and loads them from defaults, an optional
// YAML file and NFLCOMBINE_* environment variables.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration
type Config struct {
	// DataDir holds yearly snapshots, group datasets, results and the archive.
	DataDir string `koanf:"data_dir"`

	// Origin is the statistics site root.
	Origin string `koanf:"origin"`

	// StartYear and EndYear bound the scraped combine years, inclusive.
	StartYear int `koanf:"start_year"`
	EndYear   int `koanf:"end_year"`

	// Workers bounds concurrent profile fetches within one year. 1 is sequential.
	Workers int `koanf:"workers"`

	// RequestsPerSecond caps outgoing requests. 0 disables the limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`

	// CacheTTL is how long computed career values are reused across runs. 0 disables the cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Seed and TrainFraction control the regression train/test split.
	Seed          uint64  `koanf:"seed"`
	TrainFraction float64 `koanf:"train_fraction"`
}

// New creates a Config with defaults
func New() *Config {
	return &Config{
		DataDir:           "~/.local/share/nfl-combine",
		Origin:            "https://www.pro-football-reference.com",
		StartYear:         2000,
		EndYear:           2016,
		Workers:           1,
		RequestsPerSecond: 0,
		Burst:             1,
		UserAgent:         "nfl-combine/1.0 (github.com/pfrederiksen/nfl-combine)",
		Timeout:           30 * time.Second,
		CacheTTL:          7 * 24 * time.Hour,
		LogLevel:          "info",
		Seed:              1,
		TrainFraction:     0.55,
	}
}

// Years returns every year in [StartYear, EndYear]
func (c *Config) Years() []int {
	years := make([]int, 0, c.EndYear-c.StartYear+1)
	for y := c.StartYear; y <= c.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	switch {
	case c.DataDir == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case c.Origin == "":
		return fmt.Errorf("%w: origin must not be empty", ErrInvalidConfig)
	case c.StartYear > c.EndYear:
		return fmt.Errorf("%w: start_year %d is after end_year %d", ErrInvalidConfig, c.StartYear, c.EndYear)
	case c.StartYear < 1987:
		return fmt.Errorf("%w: no combine results before 1987", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	case c.RequestsPerSecond < 0:
		return fmt.Errorf("%w: requests_per_second must not be negative", ErrInvalidConfig)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	case c.CacheTTL < 0:
		return fmt.Errorf("%w: cache_ttl must not be negative", ErrInvalidConfig)
	case c.TrainFraction <= 0 || c.TrainFraction >= 1:
		return fmt.Errorf("%w: train_fraction must be between 0 and 1", ErrInvalidConfig)
	}
	return nil
}
