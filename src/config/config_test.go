package config

import (
	"os"
	"path/filepath"
	"testing"
)

// -----------------------------------------------------------------------------

const minimalYAML = `
name: "test-dashboard"
host: "127.0.0.1"
port: 8060
log_level: "ERROR"
watchlist:
  - AAPL
  - MSFT
network:
  timeout: 20
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigAppliesDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Refresh.IntervalSeconds != 30 {
		t.Errorf("refresh interval = %d, want 30", cfg.Refresh.IntervalSeconds)
	}
	if cfg.History.DefaultRangeDays != 730 {
		t.Errorf("history range = %d, want 730", cfg.History.DefaultRangeDays)
	}
	if cfg.Forecast.MinHorizonDays != 30 || cfg.Forecast.MaxHorizonDays != 365 {
		t.Errorf("horizon bounds = [%d, %d], want [30, 365]",
			cfg.Forecast.MinHorizonDays, cfg.Forecast.MaxHorizonDays)
	}
	if cfg.Forecast.IntervalWidth != 0.95 {
		t.Errorf("interval width = %f, want 0.95", cfg.Forecast.IntervalWidth)
	}
	if cfg.Network.ConcurrentRequests != 8 {
		t.Errorf("concurrent requests = %d, want 8", cfg.Network.ConcurrentRequests)
	}
}

// -----------------------------------------------------------------------------

func TestNewConfigMissingFile(t *testing.T) {
	if _, err := NewConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

// -----------------------------------------------------------------------------

func TestNewConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"bad port", `
name: "test"
host: "127.0.0.1"
port: 80
watchlist: [AAPL]
network: {timeout: 20}
`},
		{"empty watchlist", `
name: "test"
host: "127.0.0.1"
port: 8060
watchlist: []
network: {timeout: 20}
`},
		{"duplicate symbols", `
name: "test"
host: "127.0.0.1"
port: 8060
watchlist: [AAPL, AAPL]
network: {timeout: 20}
`},
		{"inverted horizons", `
name: "test"
host: "127.0.0.1"
port: 8060
watchlist: [AAPL]
network: {timeout: 20}
forecast: {min_horizon_days: 100, max_horizon_days: 50}
`},
		{"sqlite without path", `
name: "test"
host: "127.0.0.1"
port: 8060
watchlist: [AAPL]
network: {timeout: 20}
storage: {enabled: true, db_type: sqlite}
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewConfig(writeConfig(t, tc.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// -----------------------------------------------------------------------------

func TestInWatchlist(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.InWatchlist("AAPL") {
		t.Error("AAPL should be in watchlist")
	}
	if cfg.InWatchlist("TSLA") {
		t.Error("TSLA should not be in watchlist")
	}
}
