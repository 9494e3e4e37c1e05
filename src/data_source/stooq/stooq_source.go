package stooq

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

const csvURL = "https://stooq.com/q/d/l/"

// StooqSource is a secondary provider used when Yahoo cannot serve a symbol.
// Stooq only offers daily CSV history, so quotes are derived from recent bars
// and carry no sector/valuation metadata.
type StooqSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewStooqSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *StooqSource {
	return &StooqSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "StooqSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *StooqSource) Name() string {
	return "stooq"
}

// -----------------------------------------------------------------------------

// stooqSymbol maps a plain US ticker to Stooq's convention (lowercase, ".us").
func stooqSymbol(symbol string) string {
	if strings.Contains(symbol, ".") {
		return strings.ToLower(symbol)
	}
	return strings.ToLower(symbol) + ".us"
}

// -----------------------------------------------------------------------------

func (s *StooqSource) FetchDailyHistory(symbol string, start, end time.Time) ([]models.MPricePoint, error) {
	params := map[string]string{
		"s":  stooqSymbol(symbol),
		"d1": start.UTC().Format("20060102"),
		"d2": end.UTC().Format("20060102"),
		"i":  "d",
	}

	body, err := s.Network.Get(csvURL, params)
	if err != nil {
		return nil, helpers.NewDataUnavailable(symbol, err)
	}

	points, err := s.parseCSV(symbol, string(body))
	if err != nil {
		return nil, helpers.NewDataUnavailable(symbol, err)
	}
	return points, nil
}

// -----------------------------------------------------------------------------

// FetchQuotes derives snapshots from the last week of daily bars.
func (s *StooqSource) FetchQuotes(symbols []string) (map[string]models.MQuote, error) {
	results := make(map[string]models.MQuote, len(symbols))
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -7)

	for _, sym := range symbols {
		points, err := s.FetchDailyHistory(sym, start, end)
		if err != nil || len(points) < 2 {
			s.Logger.Info("Stooq quote unavailable for %s", sym)
			continue
		}

		latest := points[len(points)-1]
		prev := points[len(points)-2]
		change := 0.0
		if prev.Close > 0 {
			change = (latest.Close - prev.Close) / prev.Close * 100
		}

		results[sym] = models.MQuote{
			Symbol:        sym,
			Name:          sym,
			Sector:        "Unknown",
			Price:         latest.Close,
			PercentChange: change,
			Volume:        latest.Volume,
			FetchedAt:     time.Now().UTC(),
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("stooq served none of %d symbols", len(symbols))
	}
	return results, nil
}

// -----------------------------------------------------------------------------

// parseCSV reads Stooq's "Date,Open,High,Low,Close,Volume" daily export.
func (s *StooqSource) parseCSV(symbol, body string) ([]models.MPricePoint, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("empty csv for %s", symbol)
	}
	if !strings.HasPrefix(lines[0], "Date,") {
		return nil, fmt.Errorf("unexpected csv header for %s: %q", symbol, lines[0])
	}

	now := time.Now().UTC()
	var series []models.MPricePoint
	prevClose := 0.0

	for _, line := range lines[1:] {
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) < 5 {
			continue
		}

		day, err := time.ParseInLocation("2006-01-02", fields[0], time.UTC)
		if err != nil {
			s.Logger.Debug("Skipping unparsable row for %s: %q", symbol, line)
			continue
		}

		open, err1 := strconv.ParseFloat(fields[1], 64)
		high, err2 := strconv.ParseFloat(fields[2], 64)
		low, err3 := strconv.ParseFloat(fields[3], 64)
		closeVal, err4 := strconv.ParseFloat(fields[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || closeVal <= 0 {
			continue
		}

		volume := 0.0
		if len(fields) >= 6 {
			volume, _ = strconv.ParseFloat(fields[5], 64)
		}

		pct := 0.0
		if prevClose > 0 {
			pct = (closeVal - prevClose) / prevClose
		}

		series = append(series, models.MPricePoint{
			Symbol:             symbol,
			Date:               day.Unix(),
			Open:               open,
			High:               high,
			Low:                low,
			Close:              closeVal,
			Volume:             volume,
			PricePercentChange: pct,
			FetchedAt:          now,
		})
		prevClose = closeVal
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no valid rows for %s", symbol)
	}

	// Stooq exports are already date-ascending; trust but verify.
	for i := 1; i < len(series); i++ {
		if series[i].Date <= series[i-1].Date {
			return nil, fmt.Errorf("non-monotonic dates in csv for %s", symbol)
		}
	}

	return series, nil
}
