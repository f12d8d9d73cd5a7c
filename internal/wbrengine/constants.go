// Package wbrengine is the pure computation core: it turns a parsed
// wbrconfig.Config and a wbrtable.Daily observation table into the six
// period artifacts, the box totals, and the period summary that
// internal/wbrdeck projects into a deck.
package wbrengine

// Time periods.
const (
	NumTrailingWeeks      = 6
	NumTrailingMonths     = 12
	MonthlyDataStartIndex = 7 // 6 weeks + 1 separator column in the merged frame
)

// Year-over-year offsets.
const (
	PYWeeklyOffsetDays  = 364 // 52 weeks exactly — preserves weekday alignment
	SixWeeksLookbackDays = 41 // 6*7 - 1
)

// Comparison scaling.
const (
	BPSMultiplier = 10_000 // basis-point metrics: (CY - PY) * 10,000
	PCTMultiplier = 100    // percent-change metrics: ((CY / PY) - 1) * 100
)

// Box-totals row indices. BoxTotals always has exactly NumBoxTotalRows rows:
// a "LastWk" absolute value followed by its WoW and YoY rows, then three
// (absolute, YoY) pairs for MTD/QTD/YTD.
const (
	BoxIdxLastWk  = 0
	BoxIdxWoW     = 1
	BoxIdxYoYWk   = 2
	BoxIdxMTD     = 3
	BoxIdxYoYMTD  = 4
	BoxIdxQTD     = 5
	BoxIdxYoYQTD  = 6
	BoxIdxYTD     = 7
	BoxIdxYoYYTD  = 8
	NumBoxTotalRows = 9
)

// BoxAxisLabels is the fixed axis order for every assembled box-totals table.
var BoxAxisLabels = []string{"LastWk", "WOW", "YOY", "MTD", "YOY", "QTD", "YOY", "YTD", "YOY"}

// PeriodSummary row indices: one row for each data point needed to compute
// all YoY comparisons in the box totals.
const (
	YoYIdxCYWk6 = 0
	YoYIdxCYWk5 = 1
	YoYIdxPYWk6 = 2
	YoYIdxPYWk5 = 3
	YoYIdxCYMTD = 4
	YoYIdxPYMTD = 5
	YoYIdxCYQTD = 6
	YoYIdxPYQTD = 7
	YoYIdxCYYTD = 8
	YoYIdxPYYTD = 9
)

const WeeksPerYear = 52
