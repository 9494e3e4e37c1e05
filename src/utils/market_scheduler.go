package utils

import (
	"sync"
	"time"

	"stock-dashboard/src/logger"
)

// MarketScheduler tracks which exchanges the watchlist spans and answers
// whether any of them is currently open. The refresh loop uses it to skip
// fetch cycles while every market is closed.
type MarketScheduler struct {
	Calendars map[string]*TradingCalendar
	Logger    *logger.Logger
	mu        sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(symbols []string, l *logger.Logger) *MarketScheduler {
	ms := &MarketScheduler{
		Calendars: make(map[string]*TradingCalendar),
		Logger:    l,
	}
	ms.mapSymbolsToCalendars(symbols)
	return ms
}

// -----------------------------------------------------------------------------

func (ms *MarketScheduler) mapSymbolsToCalendars(symbols []string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.Calendars = make(map[string]*TradingCalendar)
	for _, symbol := range symbols {
		if cal := GetCalendar(symbol); cal != nil {
			ms.Calendars[symbol] = cal
		}
	}

	uniqueCals := make(map[*TradingCalendar]bool)
	for _, cal := range ms.Calendars {
		uniqueCals[cal] = true
	}

	ms.Logger.Info("MarketScheduler: Mapped %d symbols to %d unique calendars.",
		len(symbols), len(uniqueCals))
}

// -----------------------------------------------------------------------------

// CalendarFor returns the trading calendar for one watchlist symbol.
func (ms *MarketScheduler) CalendarFor(symbol string) *TradingCalendar {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if cal, ok := ms.Calendars[symbol]; ok {
		return cal
	}
	return GetCalendar(symbol)
}

// -----------------------------------------------------------------------------

// AnyMarketOpen checks if ANY tracked markets are currently open
func (ms *MarketScheduler) AnyMarketOpen() bool {
	now := time.Now().UTC()

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	uniqueCals := make(map[*TradingCalendar]bool)
	for _, cal := range ms.Calendars {
		uniqueCals[cal] = true
	}

	if len(uniqueCals) == 0 {
		return false
	}

	for cal := range uniqueCals {
		if cal.IsOpenOnMinute(now) {
			return true
		}
	}

	return false
}
