package models

// MConfig Structure
type MConfig struct {
	Name      string          `yaml:"name"`
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port"`
	LogLevel  string          `yaml:"log_level"`
	Watchlist []string        `yaml:"watchlist"`
	Refresh   MRefreshConfig  `yaml:"refresh"`
	History   MHistoryConfig  `yaml:"history"`
	Forecast  MForecastConfig `yaml:"forecast"`
	Network   MNetworkConfig  `yaml:"network"`
	Storage   MStorageConfig  `yaml:"storage"`
}

type MRefreshConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	TopMovers       int `yaml:"top_movers"`
	MostActive      int `yaml:"most_active"`
}

type MHistoryConfig struct {
	DefaultRangeDays int `yaml:"default_range_days"`
	CacheTTLSeconds  int `yaml:"cache_ttl_seconds"`
}

type MForecastConfig struct {
	MinHorizonDays  int     `yaml:"min_horizon_days"`
	MaxHorizonDays  int     `yaml:"max_horizon_days"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	IntervalWidth   float64 `yaml:"interval_width"` // e.g. 0.95 for 95% bounds
}

type MNetworkConfig struct {
	RequestTimeout     int    `yaml:"timeout"`
	MaxRetries         int    `yaml:"retries"`
	ConcurrentRequests int    `yaml:"concurrent_requests"`
	UserAgent          string `yaml:"user_agent"`
}

type MStorageConfig struct {
	Enabled            bool   `yaml:"enabled"`
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}
