package config

import (
	"fmt"
	"os"

	"stock-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Refresh.IntervalSeconds == 0 {
		c.Refresh.IntervalSeconds = 30
	}
	if c.Refresh.TopMovers == 0 {
		c.Refresh.TopMovers = 10
	}
	if c.Refresh.MostActive == 0 {
		c.Refresh.MostActive = 10
	}
	if c.History.DefaultRangeDays == 0 {
		c.History.DefaultRangeDays = 730 // 2 years, the forecast fit window
	}
	if c.History.CacheTTLSeconds == 0 {
		c.History.CacheTTLSeconds = 3600
	}
	if c.Forecast.MinHorizonDays == 0 {
		c.Forecast.MinHorizonDays = 30
	}
	if c.Forecast.MaxHorizonDays == 0 {
		c.Forecast.MaxHorizonDays = 365
	}
	if c.Forecast.CacheTTLSeconds == 0 {
		c.Forecast.CacheTTLSeconds = 3600
	}
	if c.Forecast.IntervalWidth == 0 {
		c.Forecast.IntervalWidth = 0.95
	}
	if c.Network.ConcurrentRequests == 0 {
		c.Network.ConcurrentRequests = 8
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must contain at least one symbol")
	}
	seen := make(map[string]bool, len(c.Watchlist))
	for _, sym := range c.Watchlist {
		if sym == "" {
			return fmt.Errorf("watchlist symbols cannot be empty")
		}
		if seen[sym] {
			return fmt.Errorf("duplicate watchlist symbol: %s", sym)
		}
		seen[sym] = true
	}

	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.Network.ConcurrentRequests <= 0 {
		return fmt.Errorf("concurrent requests must be greater than 0")
	}

	if c.Refresh.IntervalSeconds <= 0 {
		return fmt.Errorf("refresh interval must be greater than 0")
	}
	if c.History.DefaultRangeDays <= 0 {
		return fmt.Errorf("history range days must be greater than 0")
	}

	if c.Forecast.MinHorizonDays <= 0 || c.Forecast.MaxHorizonDays < c.Forecast.MinHorizonDays {
		return fmt.Errorf("invalid forecast horizon bounds: [%d, %d]",
			c.Forecast.MinHorizonDays, c.Forecast.MaxHorizonDays)
	}
	if c.Forecast.IntervalWidth <= 0 || c.Forecast.IntervalWidth >= 1 {
		return fmt.Errorf("forecast interval width must be in (0, 1), got %f", c.Forecast.IntervalWidth)
	}

	if c.Storage.Enabled {
		if c.Storage.DBType == "" {
			return fmt.Errorf("database type cannot be empty when storage is enabled")
		}
		if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
		if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// InWatchlist reports whether symbol is part of the fixed watchlist.
func (c *Config) InWatchlist(symbol string) bool {
	for _, s := range c.Watchlist {
		if s == symbol {
			return true
		}
	}
	return false
}
