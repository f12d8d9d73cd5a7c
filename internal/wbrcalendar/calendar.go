// Package wbrcalendar implements the calendar arithmetic the WBR period
// builders depend on: weekday-aligned weekly anchors, prior-year offsets,
// and fiscal-quarter/year boundaries. Every date handled here is truncated
// to a calendar day at midnight UTC; DailyObservation dates are expected
// to already be in that form.
package wbrcalendar

import "time"

// Day truncates t to a calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsLastDayOfMonth reports whether d is the last calendar day of its month.
func IsLastDayOfMonth(d time.Time) bool {
	return d.Day() == daysInMonth(d.Year(), d.Month())
}

func daysInMonth(year int, month time.Month) int {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	lastOfThis := firstOfNext.AddDate(0, 0, -1)
	return lastOfThis.Day()
}

// LastDayOfMonth returns the last calendar day of d's month.
func LastDayOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), daysInMonth(d.Year(), d.Month()), 0, 0, 0, 0, time.UTC)
}

// LastFullMonth returns endAnchor if it is already a month-end, otherwise
// the end of the preceding month.
func LastFullMonth(endAnchor time.Time) time.Time {
	if IsLastDayOfMonth(endAnchor) {
		return Day(endAnchor)
	}
	firstOfThisMonth := time.Date(endAnchor.Year(), endAnchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfThisMonth.AddDate(0, 0, -1)
}

// WeeklyAnchors returns n week-ending dates, ascending, the last one being
// endAnchor, each spaced 7 days apart and matching endAnchor's weekday.
func WeeklyAnchors(endAnchor time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	anchor := Day(endAnchor)
	for i := n - 1; i >= 0; i-- {
		out[i] = anchor
		anchor = anchor.AddDate(0, 0, -7)
	}
	return out
}

// MonthlyAnchors returns n month-end dates, ascending, the last one being
// lastFullMonth, one per calendar month going backward.
func MonthlyAnchors(lastFullMonth time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	anchor := lastFullMonth
	for i := n - 1; i >= 0; i-- {
		out[i] = anchor
		firstOfThis := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		anchor = firstOfThis.AddDate(0, 0, -1)
	}
	return out
}

// PriorYearWeekly returns the prior-year anchor for a weekly date: exactly
// 364 days (52 weeks) earlier, which preserves weekday alignment. This must
// never be "unified" with PriorYearMonthly — they are deliberately
// different offsets (weekday alignment vs. month alignment).
func PriorYearWeekly(d time.Time) time.Time {
	return Day(d).AddDate(0, 0, -364)
}

// PriorYearMonthly returns the prior-year anchor for a month-end date: one
// calendar year earlier, landing on the corresponding month-end.
func PriorYearMonthly(d time.Time) time.Time {
	prior := time.Date(d.Year()-1, d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return LastDayOfMonth(prior)
}

// MonthAbbrev maps a three-letter month abbreviation (as used in WBR
// configuration, e.g. "MAR") to a time.Month. Matching is case-insensitive.
func MonthAbbrev(abbrev string) (time.Month, bool) {
	months := map[string]time.Month{
		"JAN": time.January, "FEB": time.February, "MAR": time.March,
		"APR": time.April, "MAY": time.May, "JUN": time.June,
		"JUL": time.July, "AUG": time.August, "SEP": time.September,
		"OCT": time.October, "NOV": time.November, "DEC": time.December,
	}
	m, ok := months[upper3(abbrev)]
	return m, ok
}

// MonthAbbrevName returns the three-letter abbreviation for m (e.g. "Mar").
func MonthAbbrevName(m time.Month) string {
	return m.String()[:3]
}

func upper3(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

// FiscalYearStartMonth returns the first month of the fiscal year given the
// month in which the fiscal year ends.
func FiscalYearStartMonth(fiscalEndMonth time.Month) time.Month {
	return time.Month((int(fiscalEndMonth) % 12) + 1)
}

// FiscalYearStart returns the first day of the fiscal year containing d,
// given the fiscal year's end month.
func FiscalYearStart(d time.Time, fiscalEndMonth time.Month) time.Time {
	startMonth := FiscalYearStartMonth(fiscalEndMonth)
	year := d.Year()
	if int(d.Month()) < int(startMonth) {
		year--
	}
	return time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// FiscalQuarterStart returns the first day of the fiscal quarter containing
// d, given the fiscal year's end month.
func FiscalQuarterStart(d time.Time, fiscalEndMonth time.Month) time.Time {
	yearStart := FiscalYearStart(d, fiscalEndMonth)
	monthsIntoYear := monthDiff(yearStart, d)
	quarterIndex := monthsIntoYear / 3
	return yearStart.AddDate(0, 3*quarterIndex, 0)
}

// MonthStart returns the first day of d's calendar month, ignoring fiscal
// alignment — MTD is always a calendar-month concept per the engine's rules.
func MonthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthDiff(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// DayRange returns every calendar day in [start, end] inclusive, ascending.
func DayRange(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// DaysInInterval counts the calendar days in [start, end] inclusive.
func DaysInInterval(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}
