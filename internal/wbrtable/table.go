// Package wbrtable defines the columnar table types the engine operates on:
// the raw daily observation table ingested from outside the core, and the
// computed Frame/BoxTotals/PeriodSummary artifacts the pipeline produces.
package wbrtable

import (
	"time"

	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

// Daily is the raw daily observation table: one row per observation, in
// ascending date order (a date may appear on more than one row), plus
// arbitrary columns whose cells may be a float64, a string, or nil (no
// observation). String cells only participate in filter predicates; numeric
// columns participate in aggregation.
type Daily struct {
	Dates   []time.Time
	Columns map[string][]interface{}
}

// NewDaily builds an empty Daily table over the given ascending dates.
func NewDaily(dates []time.Time) *Daily {
	return &Daily{Dates: dates, Columns: map[string][]interface{}{}}
}

// Row returns the cell values for row i across all columns, keyed by column
// name, used by predicate evaluation.
func (d *Daily) Row(i int) map[string]interface{} {
	row := make(map[string]interface{}, len(d.Columns))
	for col, vals := range d.Columns {
		if i < len(vals) {
			row[col] = vals[i]
		}
	}
	return row
}

// NumericColumn converts a column to a per-date map of wbrvalue.Value,
// mapping nil cells to Null and erroring if a cell is non-numeric.
func (d *Daily) NumericColumn(name string) (map[time.Time]wbrvalue.Value, error) {
	cells, ok := d.Columns[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name}
	}
	out := make(map[time.Time]wbrvalue.Value, len(d.Dates))
	for i, date := range d.Dates {
		date = wbrcalendar.Day(date)
		var cell interface{}
		if i < len(cells) {
			cell = cells[i]
		}
		switch v := cell.(type) {
		case nil:
			out[date] = wbrvalue.Null
		case float64:
			out[date] = wbrvalue.Of(v)
		case int:
			out[date] = wbrvalue.Of(float64(v))
		default:
			return nil, &NonNumericCellError{Column: name, Date: date}
		}
	}
	return out, nil
}

// ColumnNotFoundError reports a metric referencing a column absent from the
// daily observation table.
type ColumnNotFoundError struct{ Column string }

func (e *ColumnNotFoundError) Error() string { return "column not found: " + e.Column }

// NonNumericCellError reports a numeric extraction hitting a non-numeric cell.
type NonNumericCellError struct {
	Column string
	Date   time.Time
}

func (e *NonNumericCellError) Error() string {
	return "non-numeric value in column " + e.Column + " at " + e.Date.Format("2006-01-02")
}

// Frame is a columnar period table: a Date column plus one slice of Value
// per metric column, all the same length.
type Frame struct {
	Dates   []time.Time
	Columns map[string][]wbrvalue.Value
}

// NewFrame builds an empty Frame over the given dates.
func NewFrame(dates []time.Time) *Frame {
	return &Frame{Dates: dates, Columns: map[string][]wbrvalue.Value{}}
}

// Len returns the row count.
func (f *Frame) Len() int { return len(f.Dates) }

// Set assigns a column value at row i, allocating the column if needed.
func (f *Frame) Set(col string, i int, v wbrvalue.Value) {
	vals, ok := f.Columns[col]
	if !ok {
		vals = make([]wbrvalue.Value, f.Len())
		f.Columns[col] = vals
	}
	vals[i] = v
}

// Get returns the value of column col at row i, or Null if the column does
// not exist.
func (f *Frame) Get(col string, i int) wbrvalue.Value {
	vals, ok := f.Columns[col]
	if !ok || i >= len(vals) {
		return wbrvalue.Null
	}
	return vals[i]
}

// Column returns the full column slice, allocating an all-null column if it
// does not yet exist.
func (f *Frame) Column(col string) []wbrvalue.Value {
	vals, ok := f.Columns[col]
	if !ok {
		vals = make([]wbrvalue.Value, f.Len())
		f.Columns[col] = vals
	}
	return vals
}

// HasColumn reports whether col has been populated.
func (f *Frame) HasColumn(col string) bool {
	_, ok := f.Columns[col]
	return ok
}

// PYPrefix is the prior-year column-name prefix. The engine's prior-year
// frames and box totals key their columns by the bare metric name and do
// not apply it.
const PYPrefix = "PY__"

// BoxTotals is the fixed 9-row box-total table. Axis holds the row labels in
// the canonical order (LastWk, WOW, YOY, MTD, YOY, QTD, YOY, YTD, YOY).
type BoxTotals struct {
	Axis    []string
	Columns map[string][]wbrvalue.Value
}

// NewBoxTotals allocates a BoxTotals with the fixed 9-row axis.
func NewBoxTotals(axis []string) *BoxTotals {
	return &BoxTotals{Axis: axis, Columns: map[string][]wbrvalue.Value{}}
}

// Len returns the row count (always 9 for a fully assembled box).
func (b *BoxTotals) Len() int { return len(b.Axis) }

// Set assigns a column value at row i, allocating the column if needed.
func (b *BoxTotals) Set(col string, i int, v wbrvalue.Value) {
	vals, ok := b.Columns[col]
	if !ok {
		vals = make([]wbrvalue.Value, b.Len())
		b.Columns[col] = vals
	}
	vals[i] = v
}

// Get returns the value of column col at row i, or Null if absent.
func (b *BoxTotals) Get(col string, i int) wbrvalue.Value {
	vals, ok := b.Columns[col]
	if !ok || i >= len(vals) {
		return wbrvalue.Null
	}
	return vals[i]
}

// Column returns the full column slice, allocating an all-null column if it
// does not yet exist.
func (b *BoxTotals) Column(col string) []wbrvalue.Value {
	vals, ok := b.Columns[col]
	if !ok {
		vals = make([]wbrvalue.Value, b.Len())
		b.Columns[col] = vals
	}
	return vals
}

// PeriodSummary is the 10-row auxiliary table retaining raw CY/PY period
// aggregates (wk6, wk5, MTD, QTD, YTD) so function-metric YoY values can be
// recomputed from operands rather than from already-combined derived
// columns. Row order matches the YoYIdx* constants in internal/wbrengine.
type PeriodSummary struct {
	Columns map[string][]wbrvalue.Value
}

// NewPeriodSummary allocates a PeriodSummary with rows rows (always 10).
func NewPeriodSummary(rows int) *PeriodSummary {
	return &PeriodSummary{Columns: map[string][]wbrvalue.Value{}}
}

// Set assigns a column value at row i, allocating the column (length 10) if
// needed.
func (p *PeriodSummary) Set(col string, i int, v wbrvalue.Value) {
	vals, ok := p.Columns[col]
	if !ok {
		vals = make([]wbrvalue.Value, 10)
		p.Columns[col] = vals
	}
	vals[i] = v
}

// Get returns the value of column col at row i, or Null if absent.
func (p *PeriodSummary) Get(col string, i int) wbrvalue.Value {
	vals, ok := p.Columns[col]
	if !ok || i >= len(vals) {
		return wbrvalue.Null
	}
	return vals[i]
}

// Column returns the full 10-row column slice, allocating an all-null
// column if it does not yet exist.
func (p *PeriodSummary) Column(col string) []wbrvalue.Value {
	vals, ok := p.Columns[col]
	if !ok {
		vals = make([]wbrvalue.Value, 10)
		p.Columns[col] = vals
	}
	return vals
}
