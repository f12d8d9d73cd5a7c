package wbrengine

import (
	"time"

	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

// weeklyValues computes one aggregated value per week-ending anchor using
// the metric's aggregation function over the 7 calendar days ending (and
// including) each anchor. Left-padding to exactly NumTrailingWeeks rows is
// implicit: anchors are always generated back from endAnchor regardless of
// data coverage, and missing days resolve to Null inside valuesInRange.
func weeklyValues(ds dailySeries, agg wbrconfig.AggFunc, anchors []time.Time) []wbrvalue.Value {
	out := make([]wbrvalue.Value, len(anchors))
	for i, anchor := range anchors {
		weekStart := anchor.AddDate(0, 0, -6)
		out[i] = aggregate(agg, ds.valuesInRange(weekStart, anchor))
	}
	return out
}

// monthlyValuesFull computes one aggregated value per month-end anchor
// using the full calendar month [monthStart, anchor]. No count-match guard
// is applied — this is used for completed months (trailing 12, fiscal
// extension, and PY months, which are always treated as complete).
func monthlyValuesFull(ds dailySeries, agg wbrconfig.AggFunc, anchors []time.Time) []wbrvalue.Value {
	out := make([]wbrvalue.Value, len(anchors))
	for i, anchor := range anchors {
		start := wbrcalendar.MonthStart(anchor)
		out[i] = aggregate(agg, ds.valuesInRange(start, anchor))
	}
	return out
}

// monthlyValuePartial computes the partial-month extension row: the
// interval [monthStart, endAnchor] within the current, not-yet-complete
// month. The strict count-match guard applies: if the non-null day count
// does not equal the interval's day count, the metric's value is null —
// this prevents a partial month's data from masquerading as a complete one.
func monthlyValuePartial(ds dailySeries, agg wbrconfig.AggFunc, endAnchor time.Time) wbrvalue.Value {
	start := wbrcalendar.MonthStart(endAnchor)
	expected := wbrcalendar.DaysInInterval(start, endAnchor)
	if ds.nonNullDayCount(start, endAnchor) != expected {
		return wbrvalue.Null
	}
	return aggregate(agg, ds.valuesInRange(start, endAnchor))
}

// zeroFutureMonthsToNull replaces a reported zero with Null for every row
// from fiscalExtensionStart onward. Projected future months have no
// underlying daily data yet, so an aggregate of zero really means "no
// data", not "observed zero".
func zeroFutureMonthsToNull(values []wbrvalue.Value, fiscalExtensionStart int) {
	for i := fiscalExtensionStart; i < len(values); i++ {
		if values[i].IsZero() {
			values[i] = wbrvalue.Null
		}
	}
}

// MonthlyAnchorPlan is the shared date plan both CY and PY monthly frames
// are built from, so every metric's columns align row-for-row.
type MonthlyAnchorPlan struct {
	CYDates []time.Time // ascending; trailing 12 + optional partial + fiscal extension
	PYDates []time.Time // parallel to CYDates

	PartialIdx          int // index of the partial-month row, or -1
	FiscalExtensionStart int // index where projected fiscal months begin; len(CYDates) if none
}

// BuildMonthlyAnchorPlan computes the CY/PY month-end anchor sequence per
// spec.md §4.3: 12 trailing months ending at the last full month, an extra
// partial-month row when endAnchor is not itself a month-end, and a fiscal
// year extension when the fiscal year-end month differs from endAnchor's
// month.
func BuildMonthlyAnchorPlan(endAnchor time.Time, fiscalEndMonth time.Month) MonthlyAnchorPlan {
	lastFull := wbrcalendar.LastFullMonth(endAnchor)
	cyDates := wbrcalendar.MonthlyAnchors(lastFull, NumTrailingMonths)
	pyDates := make([]time.Time, len(cyDates))
	for i, d := range cyDates {
		pyDates[i] = wbrcalendar.PriorYearMonthly(d)
	}

	partialIdx := -1
	if !wbrcalendar.IsLastDayOfMonth(endAnchor) {
		cyDates = append(cyDates, endAnchor)
		pyPartialMonth := time.Date(endAnchor.Year()-1, endAnchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		pyDates = append(pyDates, wbrcalendar.LastDayOfMonth(pyPartialMonth))
		partialIdx = len(cyDates) - 1
	}

	fiscalExtStart := len(cyDates)
	currentMonth := endAnchor.Month()
	if fiscalEndMonth != currentMonth {
		fyEnd := wbrcalendar.FiscalYearStart(endAnchor, fiscalEndMonth).AddDate(1, 0, -1)
		cursor := wbrcalendar.LastDayOfMonth(time.Date(endAnchor.Year(), endAnchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0))
		for !cursor.After(fyEnd) {
			cyDates = append(cyDates, cursor)
			pyDates = append(pyDates, wbrcalendar.PriorYearMonthly(cursor))
			next := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 2, -1)
			cursor = next
		}
	}

	return MonthlyAnchorPlan{
		CYDates:              cyDates,
		PYDates:               pyDates,
		PartialIdx:            partialIdx,
		FiscalExtensionStart: fiscalExtStart,
	}
}

// EvaluateMonthly computes the CY and PY value sequences for one metric
// across the full monthly anchor plan.
func EvaluateMonthly(ds dailySeries, agg wbrconfig.AggFunc, plan MonthlyAnchorPlan) (cy, py []wbrvalue.Value) {
	cy = make([]wbrvalue.Value, len(plan.CYDates))
	py = make([]wbrvalue.Value, len(plan.PYDates))

	cyFullAnchors := make([]time.Time, 0, len(plan.CYDates))
	cyFullIdx := make([]int, 0, len(plan.CYDates))
	for i, d := range plan.CYDates {
		if i == plan.PartialIdx {
			cy[i] = monthlyValuePartial(ds, agg, d)
			continue
		}
		cyFullAnchors = append(cyFullAnchors, d)
		cyFullIdx = append(cyFullIdx, i)
	}
	fullVals := monthlyValuesFull(ds, agg, cyFullAnchors)
	for k, i := range cyFullIdx {
		cy[i] = fullVals[k]
	}
	zeroFutureMonthsToNull(cy, plan.FiscalExtensionStart)

	py = monthlyValuesFull(ds, agg, plan.PYDates)
	return cy, py
}
