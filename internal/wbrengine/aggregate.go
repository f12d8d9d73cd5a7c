package wbrengine

import (
	"time"

	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
	"github.com/wbr-engine/wbr/internal/wbrtable"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

// aggregate applies a metric's aggregation function to a slice of Values in
// calendar order. This is the single place both daily-duplicate collapsing
// and period-level resampling go through, so "sum propagates null" means
// the same thing at both grains.
func aggregate(fn wbrconfig.AggFunc, vs []wbrvalue.Value) wbrvalue.Value {
	switch fn {
	case wbrconfig.AggSum:
		return wbrvalue.Sum(vs)
	case wbrconfig.AggFirst:
		return wbrvalue.First(vs)
	case wbrconfig.AggLast:
		return wbrvalue.Last(vs)
	case wbrconfig.AggMean:
		return wbrvalue.Mean(vs)
	default:
		return wbrvalue.Null
	}
}

// dailySeries is a metric's per-calendar-day values after daily aggregation
// (duplicate dates on the same day collapsed via the metric's agg
// function), indexed by day for O(1) period-window lookups.
type dailySeries map[time.Time]wbrvalue.Value

// valuesInRange gathers the dailySeries values for every calendar day in
// [start, end] inclusive, in ascending order. Days absent from the series
// are treated as Null, which is what lets "sum" correctly propagate null
// for days with no observation at all, not just explicit nulls.
func (ds dailySeries) valuesInRange(start, end time.Time) []wbrvalue.Value {
	days := wbrcalendar.DayRange(start, end)
	out := make([]wbrvalue.Value, len(days))
	for i, d := range days {
		if v, ok := ds[d]; ok {
			out[i] = v
		} else {
			out[i] = wbrvalue.Null
		}
	}
	return out
}

// nonNullDayCount counts how many distinct calendar days in [start, end]
// have a non-null value in ds — the numerator of the partial-month
// count-match guard.
func (ds dailySeries) nonNullDayCount(start, end time.Time) int {
	count := 0
	for _, d := range wbrcalendar.DayRange(start, end) {
		if v, ok := ds[d]; ok && v.Valid {
			count++
		}
	}
	return count
}

// buildDailySeries extracts and day-aggregates a base (Column or Filter)
// metric from the daily observation table.
func buildDailySeries(daily *wbrtable.Daily, m *wbrconfig.Metric) (dailySeries, error) {
	numeric, err := daily.NumericColumn(m.Column)
	if err != nil {
		return nil, &wbrerrors.DataShapeError{Message: "metric " + m.Name + ": " + err.Error(), Cause: err}
	}

	if m.Kind == wbrconfig.MetricColumn {
		return dailySeries(numeric), nil
	}

	// Filter: restrict rows by predicate, then group remaining rows by date
	// and apply the metric's aggregation per date (collapsing duplicates).
	byDate := map[time.Time][]wbrvalue.Value{}
	for i, date := range daily.Dates {
		row := daily.Row(i)
		keep, err := m.Predicate.Eval(row)
		if err != nil {
			return nil, &wbrerrors.DataShapeError{Message: "metric " + m.Name + ": " + err.Error(), Cause: err}
		}
		if !keep {
			continue
		}
		v := wbrvalue.Null
		switch c := row[m.Column].(type) {
		case float64:
			v = wbrvalue.Of(c)
		case int:
			v = wbrvalue.Of(float64(c))
		}
		day := wbrcalendar.Day(date)
		byDate[day] = append(byDate[day], v)
	}
	out := dailySeries{}
	for date, vs := range byDate {
		out[date] = aggregate(m.Agg, vs)
	}
	return out, nil
}
