package wbrengine

import (
	"time"

	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

// priorYearSameDate returns the date one calendar year before d, preserving
// month and day — the same month-aligned PY offset §4.1 specifies for
// monthly anchors, applied here to the MTD/QTD/YTD to-date anchors.
func priorYearSameDate(d time.Time) time.Time {
	return d.AddDate(-1, 0, 0)
}

// periodToDate aggregates ds over [start, end] with no count-match guard —
// box-total MTD/QTD/YTD values are expected to be partial-period sums.
func periodToDate(ds dailySeries, agg wbrconfig.AggFunc, start, end time.Time) wbrvalue.Value {
	return aggregate(agg, ds.valuesInRange(start, end))
}

// buildPeriodSummaryColumn computes the 10-row periodSummary column for one
// declared metric, per spec.md §4.6 step 3.
func buildPeriodSummaryColumn(
	ds dailySeries,
	m *wbrconfig.Metric,
	weekEnding time.Time,
	fiscalEndMonth time.Month,
) []wbrvalue.Value {
	return buildPeriodSummaryColumnRaw(ds, m.Agg, weekEnding, fiscalEndMonth)
}

// buildPeriodSummaryColumnRaw is buildPeriodSummaryColumn without a Metric,
// used for function-metric operands that are bare daily-column references
// rather than declared metrics.
func buildPeriodSummaryColumnRaw(
	ds dailySeries,
	agg wbrconfig.AggFunc,
	weekEnding time.Time,
	fiscalEndMonth time.Month,
) []wbrvalue.Value {
	col := make([]wbrvalue.Value, 10)

	cyWeekAnchors := wbrcalendar.WeeklyAnchors(weekEnding, 2) // [wk5, wk6]
	cyWeekly := weeklyValues(ds, agg, cyWeekAnchors)
	col[YoYIdxCYWk6] = cyWeekly[1]
	col[YoYIdxCYWk5] = cyWeekly[0]

	pyWeekEnding := wbrcalendar.PriorYearWeekly(weekEnding)
	pyWeekAnchors := wbrcalendar.WeeklyAnchors(pyWeekEnding, 2)
	pyWeekly := weeklyValues(ds, agg, pyWeekAnchors)
	col[YoYIdxPYWk6] = pyWeekly[1]
	col[YoYIdxPYWk5] = pyWeekly[0]

	pyAnchor := priorYearSameDate(weekEnding)

	col[YoYIdxCYMTD] = periodToDate(ds, agg, wbrcalendar.MonthStart(weekEnding), weekEnding)
	col[YoYIdxPYMTD] = periodToDate(ds, agg, wbrcalendar.MonthStart(pyAnchor), pyAnchor)

	col[YoYIdxCYQTD] = periodToDate(ds, agg, wbrcalendar.FiscalQuarterStart(weekEnding, fiscalEndMonth), weekEnding)
	col[YoYIdxPYQTD] = periodToDate(ds, agg, wbrcalendar.FiscalQuarterStart(pyAnchor, fiscalEndMonth), pyAnchor)

	col[YoYIdxCYYTD] = periodToDate(ds, agg, wbrcalendar.FiscalYearStart(weekEnding, fiscalEndMonth), weekEnding)
	col[YoYIdxPYYTD] = periodToDate(ds, agg, wbrcalendar.FiscalYearStart(pyAnchor, fiscalEndMonth), pyAnchor)

	return col
}

// weekAnchorsFor returns the 6 weekly anchors ending at weekEnding.
func weekAnchorsFor(weekEnding time.Time) []time.Time {
	return wbrcalendar.WeeklyAnchors(weekEnding, NumTrailingWeeks)
}

// pyWeekEndingFor returns the prior-year weekly counterpart of weekEnding.
func pyWeekEndingFor(weekEnding time.Time) time.Time {
	return wbrcalendar.PriorYearWeekly(weekEnding)
}

// assembleBoxTotals builds the cyBoxTotals and pyBoxTotals columns for one
// base metric from its periodSummary column, per spec.md §4.6 steps 4-5.
func assembleBoxTotals(col []wbrvalue.Value, method wbrconfig.ComparisonMethod) (cy, py [NumBoxTotalRows]wbrvalue.Value) {
	cy[BoxIdxLastWk] = col[YoYIdxCYWk6]
	cy[BoxIdxMTD] = col[YoYIdxCYMTD]
	cy[BoxIdxQTD] = col[YoYIdxCYQTD]
	cy[BoxIdxYTD] = col[YoYIdxCYYTD]

	cy[BoxIdxWoW] = Compare(col[YoYIdxCYWk6], col[YoYIdxCYWk5], method, true)
	cy[BoxIdxYoYWk] = Compare(col[YoYIdxCYWk6], col[YoYIdxPYWk6], method, true)
	cy[BoxIdxYoYMTD] = Compare(col[YoYIdxCYMTD], col[YoYIdxPYMTD], method, true)
	cy[BoxIdxYoYQTD] = Compare(col[YoYIdxCYQTD], col[YoYIdxPYQTD], method, true)
	cy[BoxIdxYoYYTD] = Compare(col[YoYIdxCYYTD], col[YoYIdxPYYTD], method, true)

	py[BoxIdxLastWk] = col[YoYIdxPYWk6]
	py[BoxIdxMTD] = col[YoYIdxPYMTD]
	py[BoxIdxQTD] = col[YoYIdxPYQTD]
	py[BoxIdxYTD] = col[YoYIdxPYYTD]
	// Comparison rows on the PY side are always null — there is no "PY of PY".

	return cy, py
}

