package utils

import (
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar answers trading-day questions for one symbol's exchange,
// backed by scmhub/calendar.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// micSuffixes maps symbol suffixes to ISO 10383 MIC codes supported by
// scmhub/calendar. Plain symbols default to NYSE.
var micSuffixes = map[string]string{
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".MI": "xmil",
	".MC": "xmad",
	".ST": "xsto",
	".SW": "xswx",
	".TO": "xtse",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".SS": "xshg",
	".SZ": "xshe",
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	mic := "xnys" // Default US NYSE
	for suffix, code := range micSuffixes {
		if strings.HasSuffix(symbol, suffix) {
			mic = code
			break
		}
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for MIC '%s' and fallback 'xnys'. Using simple Mon-Fri fallback.", mic)
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}

		hour := t.Hour()
		minute := t.Minute()

		// 9:30 - 16:00 local exchange time
		return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
	}

	return tc.Calendar.IsOpen(t)
}

// -----------------------------------------------------------------------------

// TradingDaysAfter returns the trading days within the horizonDays calendar
// days following `after` (exclusive), normalized to midnight UTC. Weekends
// and exchange holidays are skipped, so consecutive results may be more than
// one calendar day apart.
func (tc *TradingCalendar) TradingDaysAfter(after time.Time, horizonDays int) []time.Time {
	var days []time.Time
	day := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, time.UTC)

	for i := 1; i <= horizonDays; i++ {
		candidate := day.AddDate(0, 0, i)
		// Check at noon UTC so the exchange-local conversion inside
		// IsTradingDay cannot shift the calendar date.
		check := candidate.Add(12 * time.Hour)
		if tc.IsTradingDay(check) {
			days = append(days, candidate)
		}
	}
	return days
}
