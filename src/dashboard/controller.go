package dashboard

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"stock-dashboard/src/analysis"
	"stock-dashboard/src/analysis/forecast"
	"stock-dashboard/src/charts"
	"stock-dashboard/src/config"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"
)

// -----------------------------------------------------------------------------
// DashboardController drives the refresh cycle and answers the on-demand
// queries. It owns the two TTL caches so a burst of identical requests never
// hammers the provider.
// -----------------------------------------------------------------------------

type DashboardController struct {
	Config     *config.Config
	Logger     *logger.Logger
	Fetcher    interfaces.IHistoryFetcher
	Metrics    *analysis.MetricsComputer
	Forecaster *forecast.ForecastEngine
	Renderer   *charts.ChartRenderer
	Exchange   interfaces.IDataExchanger
	Recorder   interfaces.IRecorder // nil when storage is disabled
	Scheduler  *utils.MarketScheduler

	cron          *cron.Cron
	historyCache  *utils.TTLCache[[]models.MPricePoint]
	forecastCache *utils.TTLCache[*models.MForecastResult]
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardController(
	cfg *config.Config,
	fetcher interfaces.IHistoryFetcher,
	metrics *analysis.MetricsComputer,
	forecaster *forecast.ForecastEngine,
	renderer *charts.ChartRenderer,
	exchange interfaces.IDataExchanger,
	recorder interfaces.IRecorder,
) *DashboardController {
	l := logger.NewLogger(cfg.LogLevel, "DashboardController")

	return &DashboardController{
		Config:        cfg,
		Logger:        l,
		Fetcher:       fetcher,
		Metrics:       metrics,
		Forecaster:    forecaster,
		Renderer:      renderer,
		Exchange:      exchange,
		Recorder:      recorder,
		Scheduler:     utils.NewMarketScheduler(cfg.Watchlist, l),
		cron:          cron.New(),
		historyCache:  utils.NewTTLCache[[]models.MPricePoint](time.Duration(cfg.History.CacheTTLSeconds) * time.Second),
		forecastCache: utils.NewTTLCache[*models.MForecastResult](time.Duration(cfg.Forecast.CacheTTLSeconds) * time.Second),
	}
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start runs one refresh immediately so clients never see an empty dashboard,
// then schedules the recurring cycle. The first fill is not gated on market
// hours: a weekend start still serves last-session data.
func (dc *DashboardController) Start() error {
	dc.refresh(true)

	spec := fmt.Sprintf("@every %ds", dc.Config.Refresh.IntervalSeconds)
	if _, err := dc.cron.AddFunc(spec, dc.Refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}

	if dc.Recorder != nil {
		if _, err := dc.cron.AddFunc("@every 6h", func() {
			if err := dc.Recorder.CleanupOldData(); err != nil {
				dc.Logger.Error("Recorder cleanup failed: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("register cleanup task: %w", err)
		}
	}

	dc.cron.Start()
	dc.Logger.Info("Refresh loop started (%s)", spec)
	return nil
}

// -----------------------------------------------------------------------------

func (dc *DashboardController) Stop() {
	ctx := dc.cron.Stop()
	<-ctx.Done()
	dc.Logger.Info("Refresh loop stopped")
}

// -----------------------------------------------------------------------------
// Refresh Cycle
// -----------------------------------------------------------------------------

// Refresh runs one scheduled cycle. Ticks while every tracked market is
// closed are skipped; the last snapshot stays on display.
func (dc *DashboardController) Refresh() {
	if !dc.Scheduler.AnyMarketOpen() {
		dc.Logger.Debug("All markets closed, skipping refresh")
		return
	}
	dc.refresh(false)
}

// -----------------------------------------------------------------------------

// refresh fetches the whole watchlist, recomputes the derived metrics and
// publishes the snapshot. A symbol that fails is skipped; the cycle only
// aborts when every symbol fails. The initial fill seeds the server state
// without waking clients; recurring cycles broadcast.
func (dc *DashboardController) refresh(initial bool) {
	start := time.Now()

	quotes, err := dc.Fetcher.FetchQuotes(dc.Config.Watchlist)
	if err != nil {
		dc.Logger.Error("Refresh fetch failed: %v", err)
		return
	}

	elapsed := time.Since(start).Seconds()
	skipped := len(dc.Config.Watchlist) - len(quotes)
	if skipped > 0 {
		dc.Logger.Warning("Refresh skipped %d/%d symbols", skipped, len(dc.Config.Watchlist))
	}

	snapshot := &models.MDashboardSnapshot{
		Quotes:     quotes,
		Movers:     dc.Metrics.RankMovers(quotes, dc.Config.Refresh.TopMovers),
		Summary:    dc.Metrics.MarketSummary(quotes),
		Sectors:    dc.Metrics.SectorBreakdown(quotes),
		MostActive: dc.Metrics.MostActive(quotes, dc.Config.Refresh.MostActive),
		Timestamp:  time.Now().Unix(),
		RefreshMetrics: models.MRefreshMetrics{
			FetchTimeSeconds: elapsed,
			ValidSymbols:     len(quotes),
			SkippedSymbols:   skipped,
		},
	}

	if initial {
		dc.Exchange.UpdateSnapshot(snapshot)
	} else {
		dc.Exchange.Broadcast(snapshot)
	}

	if dc.Recorder != nil {
		rows := make([]models.MQuote, 0, len(quotes))
		for _, q := range quotes {
			rows = append(rows, q)
		}
		if err := dc.Recorder.SaveQuotes(rows); err != nil {
			dc.Logger.Error("Failed to record quotes: %v", err)
		}
	}

	// Drop expired cache entries while we're here
	dc.historyCache.Purge()
	dc.forecastCache.Purge()

	dc.Logger.Info("Refresh done: %d symbols in %.2fs", len(quotes), elapsed)
}

// -----------------------------------------------------------------------------
// IDashboardService Implementation
// -----------------------------------------------------------------------------

func (dc *DashboardController) History(symbol string, start, end time.Time, interval string, candles bool) ([]models.MPricePoint, models.MChartSpec, error) {
	series, err := dc.historySeries(symbol, start, end)
	if err != nil {
		return nil, models.MChartSpec{}, err
	}

	chart := dc.Renderer.RenderHistoryChart(symbol, series, interval, candles)
	if interval != analysis.IntervalDaily {
		series = analysis.Resample(series, interval)
	}
	return series, chart, nil
}

// -----------------------------------------------------------------------------

func (dc *DashboardController) Compare(symbolA, symbolB string) (*models.MComparison, models.MChartSpec, error) {
	quotes, err := dc.Fetcher.FetchQuotes([]string{symbolA, symbolB})
	if err != nil {
		return nil, models.MChartSpec{}, err
	}
	quoteA, okA := quotes[symbolA]
	if !okA {
		return nil, models.MChartSpec{}, helpers.NewDataUnavailable(symbolA, nil)
	}
	quoteB, okB := quotes[symbolB]
	if !okB {
		return nil, models.MChartSpec{}, helpers.NewDataUnavailable(symbolB, nil)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -dc.Config.History.DefaultRangeDays)

	histA, err := dc.historySeries(symbolA, start, end)
	if err != nil {
		return nil, models.MChartSpec{}, err
	}
	histB, err := dc.historySeries(symbolB, start, end)
	if err != nil {
		return nil, models.MChartSpec{}, err
	}

	comparison := dc.Metrics.CompareStocks(quoteA, quoteB, histA, histB)
	chart := dc.Renderer.RenderComparisonChart(symbolA, symbolB, histA, histB)
	return &comparison, chart, nil
}

// -----------------------------------------------------------------------------

func (dc *DashboardController) ForecastSymbol(symbol string, horizonDays int) (*models.MForecastResult, models.MChartSpec, error) {
	// Reject out-of-range horizons before any fetching happens.
	minH, maxH := dc.Config.Forecast.MinHorizonDays, dc.Config.Forecast.MaxHorizonDays
	if horizonDays < minH || horizonDays > maxH {
		return nil, models.MChartSpec{}, helpers.NewInvalidHorizon(horizonDays, minH, maxH)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -dc.Config.History.DefaultRangeDays)

	cacheKey := fmt.Sprintf("%s:%d", symbol, horizonDays)
	if cached, ok := dc.forecastCache.Get(cacheKey); ok {
		series, err := dc.historySeries(symbol, start, end)
		if err != nil {
			return nil, models.MChartSpec{}, err
		}
		return cached, dc.Renderer.RenderForecastChart(cached, series), nil
	}

	series, err := dc.historySeries(symbol, start, end)
	if err != nil {
		return nil, models.MChartSpec{}, err
	}

	result, err := dc.Forecaster.Forecast(symbol, series, horizonDays)
	if err != nil {
		return nil, models.MChartSpec{}, err
	}

	dc.forecastCache.Put(cacheKey, result)

	if dc.Recorder != nil {
		if err := dc.Recorder.SaveForecast(result); err != nil {
			dc.Logger.Error("Failed to record forecast for %s: %v", symbol, err)
		}
	}

	return result, dc.Renderer.RenderForecastChart(result, series), nil
}

// -----------------------------------------------------------------------------
// History Cache
// -----------------------------------------------------------------------------

func (dc *DashboardController) historySeries(symbol string, start, end time.Time) ([]models.MPricePoint, error) {
	key := fmt.Sprintf("%s:%s:%s", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if series, ok := dc.historyCache.Get(key); ok {
		return series, nil
	}

	series, err := dc.Fetcher.FetchDailyHistory(symbol, start, end)
	if err != nil {
		return nil, err
	}

	dc.historyCache.Put(key, series)
	return series, nil
}
