package utils

import (
	"testing"
	"time"

	"stock-dashboard/src/logger"
)

// -----------------------------------------------------------------------------

func TestGetCalendarDefaultsToNYSE(t *testing.T) {
	cal := GetCalendar("AAPL")
	if cal == nil {
		t.Fatal("no calendar for plain US symbol")
	}

	// Saturday noon in New York is never a trading day.
	saturday := time.Date(2024, 3, 9, 12, 0, 0, 0, cal.Timezone)
	if cal.IsTradingDay(saturday) {
		t.Error("Saturday should not be a trading day")
	}
}

// -----------------------------------------------------------------------------

func TestTradingDaysAfterSkipsWeekends(t *testing.T) {
	cal := GetCalendar("AAPL")

	// Friday 2024-03-08; the next 7 calendar days hold at most 5 trading days.
	friday := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	days := cal.TradingDaysAfter(friday, 7)

	if len(days) == 0 || len(days) > 5 {
		t.Fatalf("got %d trading days in a week, want 1-5", len(days))
	}

	prev := friday
	for _, day := range days {
		if !day.After(prev) {
			t.Fatalf("days not strictly increasing at %v", day)
		}
		prev = day

		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("weekend day %v in result", day)
		}
		if day.Hour() != 0 || day.Location() != time.UTC {
			t.Errorf("day %v not normalized to midnight UTC", day)
		}
	}
}

// -----------------------------------------------------------------------------

func TestTradingDaysAfterExcludesStart(t *testing.T) {
	cal := GetCalendar("AAPL")

	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	days := cal.TradingDaysAfter(monday, 3)

	for _, day := range days {
		if !day.After(monday) {
			t.Errorf("start day %v included in result", day)
		}
	}
}

// -----------------------------------------------------------------------------

func TestMarketSchedulerCalendarFor(t *testing.T) {
	l := logger.NewLogger("ERROR", "test")
	ms := NewMarketScheduler([]string{"AAPL", "MSFT"}, l)

	if ms.CalendarFor("AAPL") == nil {
		t.Error("no calendar for tracked symbol")
	}
	// Untracked symbols fall back to a fresh lookup.
	if ms.CalendarFor("GOOG") == nil {
		t.Error("no calendar for untracked symbol")
	}
}
