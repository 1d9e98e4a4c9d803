package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/prashu0705/green-ai-orbit/internal/forecast"
	"github.com/prashu0705/green-ai-orbit/internal/store"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Cache    CacheConfig    `koanf:"cache"`
	Store    StoreConfig    `koanf:"store"`
	Forecast ForecastConfig `koanf:"forecast"`
	Advisor  AdvisorConfig  `koanf:"advisor"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	BasePath     string        `koanf:"base_path"` // Optional base path for reverse proxy (e.g., "/green-ai-orbit")
}

// LogConfig controls log output
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Driver string `koanf:"driver"` // memory or postgres
	DSN    string `koanf:"dsn"`    // postgres connection string
	Seed   bool   `koanf:"seed"`   // load the built-in region catalog when empty
}

// ForecastConfig shapes the generated intensity grid.
// Days pins fixed day labels; when empty, DayCount rolling labels are derived
// from the current date. Hours defaults to the built-in seven slots.
type ForecastConfig struct {
	DayCount int      `koanf:"day_count"`
	Days     []string `koanf:"days"`
	Hours    []string `koanf:"hours"`
}

// AdvisorConfig represents the background opportunity sweep configuration
type AdvisorConfig struct {
	Enabled           bool          `koanf:"enabled"`
	Interval          time.Duration `koanf:"interval"`
	MinSavingsPercent int           `koanf:"min_savings_percent"` // sweeps only report moves at or above this
	Concurrency       int           `koanf:"concurrency"`
}

// Default returns the configuration used when no file is supplied: in-memory
// seeded store, five-day forecast horizon, advisor on a one-minute sweep.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Store: StoreConfig{
			Driver: store.DriverMemory,
			Seed:   true,
		},
		Forecast: ForecastConfig{
			DayCount: forecast.DefaultDayCount,
			Hours:    forecast.DefaultHours,
		},
		Advisor: AdvisorConfig{
			Enabled:           true,
			Interval:          time.Minute,
			MinSavingsPercent: 10,
			Concurrency:       4,
		},
	}
}

// Load loads configuration from the specified file over the defaults. An
// empty path returns the defaults unchanged.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	k := koanf.New(".")

	// Load YAML config
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	switch c.Store.Driver {
	case "", store.DriverMemory:
	case store.DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q", store.DriverMemory, store.DriverPostgres)
	}

	if len(c.Forecast.Days) == 0 && c.Forecast.DayCount <= 0 {
		return fmt.Errorf("forecast.day_count must be positive when forecast.days is empty")
	}
	if len(c.Forecast.Hours) == 0 {
		return fmt.Errorf("forecast.hours must not be empty")
	}

	if c.Advisor.Enabled {
		if c.Advisor.Interval <= 0 {
			return fmt.Errorf("advisor.interval must be positive when the advisor is enabled")
		}
		if c.Advisor.MinSavingsPercent < 0 || c.Advisor.MinSavingsPercent > 100 {
			return fmt.Errorf("advisor.min_savings_percent must be within 0-100")
		}
	}

	return nil
}

// ForecastDays resolves the configured day labels, falling back to a rolling
// horizon starting at now.
func (c *Config) ForecastDays(now time.Time) []string {
	if len(c.Forecast.Days) > 0 {
		return c.Forecast.Days
	}
	return forecast.DaysFrom(now, c.Forecast.DayCount)
}
