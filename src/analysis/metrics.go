package analysis

import (
	"sort"

	"stock-dashboard/src/analysis/core"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// MetricsComputer derives the dashboard's descriptive statistics from quote
// snapshots and price series. Every method is a pure function of its inputs.
type MetricsComputer struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMetricsComputer(cfg *models.MConfig, log *logger.Logger) *MetricsComputer {
	return &MetricsComputer{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// PercentChange returns (latest close - previous close) / previous close for
// a daily series, as a fraction. Series shorter than two points yield 0.
func (m *MetricsComputer) PercentChange(series []models.MPricePoint) float64 {
	if len(series) < 2 {
		return 0
	}
	latest := series[len(series)-1].Close
	previous := series[len(series)-2].Close
	return core.CalculateChangePercent(latest, previous)
}

// -----------------------------------------------------------------------------

// RankMovers sorts quotes by daily percent change descending and returns the
// top and bottom n. Ties are broken by symbol ascending so rankings are
// deterministic across refreshes.
func (m *MetricsComputer) RankMovers(quotes map[string]models.MQuote, n int) models.MMoverRanking {
	ranked := make([]models.MQuote, 0, len(quotes))
	for _, q := range quotes {
		ranked = append(ranked, q)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PercentChange != ranked[j].PercentChange {
			return ranked[i].PercentChange > ranked[j].PercentChange
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})

	if n > len(ranked) {
		n = len(ranked)
	}

	top := make([]models.MQuote, n)
	copy(top, ranked[:n])

	// Bottom n, worst first
	bottom := make([]models.MQuote, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		bottom = append(bottom, ranked[i])
	}

	return models.MMoverRanking{Top: top, Bottom: bottom}
}

// -----------------------------------------------------------------------------

// Correlation computes the Pearson correlation of day-over-day returns on the
// trading dates both series share. The bool is false ("undefined") when the
// overlap has fewer than two dates or either return series has no variance.
func (m *MetricsComputer) Correlation(a, b []models.MPricePoint) (float64, bool) {
	closesA, closesB := alignByDate(a, b)
	if len(closesA) < 2 {
		return 0, false
	}

	return core.CalculateCorrelation(core.DailyReturns(closesA), core.DailyReturns(closesB))
}

// -----------------------------------------------------------------------------

// alignByDate returns the close prices of both series restricted to their
// common trading dates, in ascending date order.
func alignByDate(a, b []models.MPricePoint) ([]float64, []float64) {
	byDate := make(map[int64]float64, len(b))
	for _, p := range b {
		byDate[p.Date] = p.Close
	}

	var closesA, closesB []float64
	for _, p := range a {
		if closeB, ok := byDate[p.Date]; ok {
			closesA = append(closesA, p.Close)
			closesB = append(closesB, closeB)
		}
	}
	return closesA, closesB
}

// -----------------------------------------------------------------------------

// MarketSummary aggregates the whole watchlist snapshot.
func (m *MetricsComputer) MarketSummary(quotes map[string]models.MQuote) models.MMarketSummary {
	summary := models.MMarketSummary{SymbolCount: len(quotes)}
	if len(quotes) == 0 {
		return summary
	}

	peCount := 0
	for _, q := range quotes {
		summary.TotalMarketCap += q.MarketCap
		summary.AveragePercentChange += q.PercentChange
		summary.TotalVolume += q.Volume
		if q.PERatio > 0 {
			summary.AveragePERatio += q.PERatio
			peCount++
		}
	}

	summary.AveragePercentChange /= float64(len(quotes))
	if peCount > 0 {
		summary.AveragePERatio /= float64(peCount)
	}

	return summary
}

// -----------------------------------------------------------------------------

// MostActive returns the n quotes with the highest volume.
func (m *MetricsComputer) MostActive(quotes map[string]models.MQuote, n int) []models.MQuote {
	ranked := make([]models.MQuote, 0, len(quotes))
	for _, q := range quotes {
		ranked = append(ranked, q)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Volume != ranked[j].Volume {
			return ranked[i].Volume > ranked[j].Volume
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// -----------------------------------------------------------------------------

// SectorBreakdown groups the watchlist by sector, sorted by market cap
// descending.
func (m *MetricsComputer) SectorBreakdown(quotes map[string]models.MQuote) []models.MSectorStat {
	bySector := make(map[string]*models.MSectorStat)

	for _, q := range quotes {
		stat, ok := bySector[q.Sector]
		if !ok {
			stat = &models.MSectorStat{Sector: q.Sector}
			bySector[q.Sector] = stat
		}
		stat.SymbolCount++
		stat.TotalMarketCap += q.MarketCap
		stat.AveragePercentChange += q.PercentChange
	}

	stats := make([]models.MSectorStat, 0, len(bySector))
	for _, stat := range bySector {
		stat.AveragePercentChange /= float64(stat.SymbolCount)
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalMarketCap != stats[j].TotalMarketCap {
			return stats[i].TotalMarketCap > stats[j].TotalMarketCap
		}
		return stats[i].Sector < stats[j].Sector
	})

	return stats
}

// -----------------------------------------------------------------------------

// CompareStocks builds the side-by-side comparison of two symbols, including
// the correlation of their aligned daily returns.
func (m *MetricsComputer) CompareStocks(
	quoteA, quoteB models.MQuote,
	histA, histB []models.MPricePoint,
) models.MComparison {

	corr, defined := m.Correlation(histA, histB)
	closesA, _ := alignByDate(histA, histB)

	return models.MComparison{
		SymbolA: quoteA.Symbol,
		SymbolB: quoteB.Symbol,
		Metrics: []models.MComparisonMetric{
			{Metric: "Price", A: quoteA.Price, B: quoteB.Price},
			{Metric: "Change", A: quoteA.PercentChange, B: quoteB.PercentChange},
			{Metric: "Volume", A: quoteA.Volume, B: quoteB.Volume},
			{Metric: "Market Cap", A: quoteA.MarketCap, B: quoteB.MarketCap},
			{Metric: "P/E Ratio", A: quoteA.PERatio, B: quoteB.PERatio},
			{Metric: "Dividend Yield", A: quoteA.DividendYield, B: quoteB.DividendYield},
		},
		ReturnCorrelation:  corr,
		CorrelationDefined: defined,
		OverlappingDays:    len(closesA),
	}
}
