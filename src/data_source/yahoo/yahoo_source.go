package yahoo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

const (
	chartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s"
	profileURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s"
)

type YahooFinanceSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger

	// Company profiles change rarely; fetched once per symbol and cached
	// for the process lifetime.
	profilesMu sync.RWMutex
	profiles   map[string]symbolProfile
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *YahooFinanceSource {
	return &YahooFinanceSource{
		Config:   cfg,
		Network:  netMgr,
		Logger:   logger.NewLogger(cfg.LogLevel, "YahooFinanceSource"),
		profiles: make(map[string]symbolProfile),
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------

// FetchDailyHistory fetches daily bars for [start, end].
func (s *YahooFinanceSource) FetchDailyHistory(symbol string, start, end time.Time) ([]models.MPricePoint, error) {
	params := map[string]string{
		"period1":        strconv.FormatInt(start.Unix(), 10),
		"period2":        strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10),
		"interval":       "1d",
		"includePrePost": "false",
	}

	points, err := s.fetchChart(symbol, params)
	if err != nil {
		return nil, helpers.NewDataUnavailable(symbol, err)
	}
	return points, nil
}

// -----------------------------------------------------------------------------

// FetchQuotes fetches snapshots for all symbols concurrently. Symbols that
// fail are skipped; an error is returned only when every fetch failed.
func (s *YahooFinanceSource) FetchQuotes(symbols []string) (map[string]models.MQuote, error) {
	if len(symbols) == 0 {
		return make(map[string]models.MQuote), nil
	}

	results := make(map[string]models.MQuote)
	var mu sync.Mutex
	var wg sync.WaitGroup
	errors := make([]error, 0, len(symbols))
	var errorsMu sync.Mutex

	// Semaphore for concurrency limit
	sem := make(chan struct{}, s.Config.Network.ConcurrentRequests)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// Small delay to avoid rate limiting
			time.Sleep(10 * time.Millisecond)

			quote, err := s.fetchQuote(sym)
			if err != nil {
				s.Logger.Info("Error fetching symbol %s: %v", sym, err)
				errorsMu.Lock()
				errors = append(errors, err)
				errorsMu.Unlock()
				return
			}

			mu.Lock()
			results[sym] = quote
			mu.Unlock()
		}(symbol)
	}

	wg.Wait()

	s.Logger.Info("YahooFinance: Fetched %d/%d symbols successfully", len(results), len(symbols))

	if len(results) == 0 && len(errors) > 0 {
		return nil, fmt.Errorf("all quote fetches failed: %v", errors[0])
	}

	return results, nil
}

// -----------------------------------------------------------------------------

// fetchQuote builds one snapshot from the last two daily bars plus the cached
// company profile.
func (s *YahooFinanceSource) fetchQuote(symbol string) (models.MQuote, error) {
	// 5 days of daily bars so we span weekends and single-day holidays.
	points, err := s.fetchChart(symbol, map[string]string{
		"interval":       "1d",
		"range":          "5d",
		"includePrePost": "false",
	})
	if err != nil {
		return models.MQuote{}, err
	}
	if len(points) < 2 {
		return models.MQuote{}, fmt.Errorf("not enough bars for %s to derive daily change", symbol)
	}

	latest := points[len(points)-1]
	prev := points[len(points)-2]

	change := 0.0
	if prev.Close > 0 {
		change = (latest.Close - prev.Close) / prev.Close * 100
	}

	profile := s.getProfile(symbol)

	return models.MQuote{
		Symbol:        symbol,
		Name:          profile.Name,
		Sector:        profile.Sector,
		Price:         latest.Close,
		PercentChange: change,
		Volume:        latest.Volume,
		MarketCap:     profile.MarketCap,
		PERatio:       profile.PERatio,
		DividendYield: profile.DividendYield,
		FetchedAt:     time.Now().UTC(),
	}, nil
}

// -----------------------------------------------------------------------------

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					High   []*float64 `json:"high"`   // Use pointers to handle null
					Low    []*float64 `json:"low"`    // Use pointers to handle null
					Open   []*float64 `json:"open"`   // Use pointers to handle null
					Close  []*float64 `json:"close"`  // Use pointers to handle null
					Volume []*float64 `json:"volume"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchChart(symbol string, params map[string]string) ([]models.MPricePoint, error) {
	url := fmt.Sprintf(chartURL, symbol)

	respBytes, err := s.Network.Get(url, params)
	if err != nil {
		return nil, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	return s.parseChartResponse(symbol, respBytes)
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) parseChartResponse(symbol string, data []byte) ([]models.MPricePoint, error) {
	var resp yahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result in response for %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no timestamps in response for %s", symbol)
	}

	indicators := result.Indicators.Quote
	if len(indicators) == 0 {
		return nil, fmt.Errorf("no quote data in response for %s", symbol)
	}

	quote := indicators[0]

	// Alignment check across all OHLCV arrays
	if len(result.Timestamp) != len(quote.Close) ||
		len(result.Timestamp) != len(quote.Open) ||
		len(result.Timestamp) != len(quote.High) ||
		len(result.Timestamp) != len(quote.Low) ||
		len(result.Timestamp) != len(quote.Volume) {
		s.Logger.Info("Data alignment error for %s: Mismatched array lengths", symbol)
		return nil, fmt.Errorf("data alignment error for %s", symbol)
	}

	type dataPoint struct {
		day    int64
		open   float64
		high   float64
		low    float64
		close  float64
		volume float64
	}

	var points []dataPoint
	seenDays := make(map[int64]int)

	for i := 0; i < len(result.Timestamp); i++ {
		// Null handling: any missing field invalidates the bar
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			s.Logger.Debug("Invalid OHLCV data received for %s at index %d", symbol, i)
			continue
		}

		closeVal := *quote.Close[i]
		volume := *quote.Volume[i]
		if closeVal <= 0 || volume < 0 {
			s.Logger.Debug("Skipping invalid point for %s: close=%f, volume=%f", symbol, closeVal, volume)
			continue
		}

		// Normalize to midnight UTC of the trading day so series from
		// different exchanges align on dates.
		t := time.Unix(result.Timestamp[i], 0).UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()

		pt := dataPoint{
			day:    day,
			open:   *quote.Open[i],
			high:   *quote.High[i],
			low:    *quote.Low[i],
			close:  closeVal,
			volume: volume,
		}

		// The last bar of a day wins (Yahoo may emit an intraday partial
		// bar alongside the settled one).
		if idx, ok := seenDays[day]; ok {
			points[idx] = pt
			continue
		}
		seenDays[day] = len(points)
		points = append(points, pt)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].day < points[j].day
	})

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points for %s", symbol)
	}

	// Close-to-close percent changes, seeded with the previous session's close
	prevClose := resp.Chart.Result[0].Meta.ChartPreviousClose
	if prevClose <= 0 {
		prevClose = points[0].close
	}

	now := time.Now().UTC()
	series := make([]models.MPricePoint, 0, len(points))

	for _, point := range points {
		pct := 0.0
		if prevClose > 0 {
			pct = (point.close - prevClose) / prevClose
		}

		series = append(series, models.MPricePoint{
			Symbol:             symbol,
			Date:               point.day,
			Open:               point.open,
			High:               point.high,
			Low:                point.low,
			Close:              point.close,
			Volume:             point.volume,
			PricePercentChange: pct,
			FetchedAt:          now,
		})
		prevClose = point.close
	}

	s.Logger.Debug("Fetched %s: %d daily bars [%d -> %d]",
		symbol, len(series), series[0].Date, series[len(series)-1].Date)

	return series, nil
}

// -----------------------------------------------------------------------------
// Company profile (sector, name, valuation metadata)
// -----------------------------------------------------------------------------

type symbolProfile struct {
	Name          string
	Sector        string
	MarketCap     float64
	PERatio       float64
	DividendYield float64
}

type rawValue struct {
	Raw float64 `json:"raw"`
}

type yahooSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
			Price struct {
				ShortName string   `json:"shortName"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE    rawValue `json:"trailingPE"`
				DividendYield rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// -----------------------------------------------------------------------------

// getProfile returns the cached profile for symbol, fetching it on first use.
// A failed profile fetch degrades to placeholder metadata; quotes still work.
func (s *YahooFinanceSource) getProfile(symbol string) symbolProfile {
	s.profilesMu.RLock()
	if p, ok := s.profiles[symbol]; ok {
		s.profilesMu.RUnlock()
		return p
	}
	s.profilesMu.RUnlock()

	profile, err := s.fetchProfile(symbol)
	if err != nil {
		s.Logger.Warning("Profile fetch failed for %s: %v", symbol, err)
		profile = symbolProfile{Name: symbol, Sector: "Unknown"}
	}

	s.profilesMu.Lock()
	s.profiles[symbol] = profile
	s.profilesMu.Unlock()
	return profile
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchProfile(symbol string) (symbolProfile, error) {
	url := fmt.Sprintf(profileURL, symbol)
	respBytes, err := s.Network.Get(url, map[string]string{
		"modules": "assetProfile,price,summaryDetail",
	})
	if err != nil {
		return symbolProfile{}, err
	}

	var resp yahooSummaryResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return symbolProfile{}, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return symbolProfile{}, fmt.Errorf("yahoo api error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return symbolProfile{}, fmt.Errorf("no profile result for %s", symbol)
	}

	r := resp.QuoteSummary.Result[0]

	profile := symbolProfile{
		Name:          r.Price.ShortName,
		Sector:        r.AssetProfile.Sector,
		MarketCap:     r.Price.MarketCap.Raw,
		PERatio:       r.SummaryDetail.TrailingPE.Raw,
		DividendYield: r.SummaryDetail.DividendYield.Raw * 100,
	}
	if profile.Name == "" {
		profile.Name = symbol
	}
	if profile.Sector == "" {
		profile.Sector = "Unknown"
	}

	return profile, nil
}
