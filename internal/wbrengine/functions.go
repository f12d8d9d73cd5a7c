package wbrengine

import (
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
	"github.com/wbr-engine/wbr/internal/wbrtable"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

type color int

const (
	white color = iota
	gray
	black
)

// Evaluator populates the artifact set for every metric: base
// (Column/Filter) metrics and bare daily columns directly, and function
// metrics once their operands are computed. It walks the function-metric
// dependency graph with a recursive three-color depth-first traversal:
// white (unvisited), gray (on the current path), black (done). Landing on a
// gray node means a cycle.
type Evaluator struct {
	cfg     *wbrconfig.Config
	daily   *wbrtable.Daily
	series  map[string]dailySeries
	plan    MonthlyAnchorPlan
	colors  map[string]color
	stack   []string

	CYWeekly      *wbrtable.Frame
	PYWeekly      *wbrtable.Frame
	CYMonthly     *wbrtable.Frame
	PYMonthly     *wbrtable.Frame
	CYBox         *wbrtable.BoxTotals
	PYBox         *wbrtable.BoxTotals
	PeriodSummary *wbrtable.PeriodSummary
}

// EnsureComputed guarantees every artifact column for metric/column name is
// populated, resolving dependencies recursively and detecting cycles.
func (e *Evaluator) EnsureComputed(name string) error {
	switch e.colors[name] {
	case black:
		return nil
	case gray:
		return &wbrerrors.CircularDependencyError{Cycle: append(append([]string{}, e.stack...), name)}
	}
	e.colors[name] = gray
	e.stack = append(e.stack, name)
	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
		e.colors[name] = black
	}()

	m, isMetric := e.cfg.Metrics[name]
	switch {
	case isMetric && m.Kind == wbrconfig.MetricFunction:
		if err := e.computeFunction(m); err != nil {
			return err
		}
	case isMetric:
		if err := e.computeBase(m); err != nil {
			return err
		}
	default:
		if err := e.computeBareColumn(name); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) computeBase(m *wbrconfig.Metric) error {
	if e.CYWeekly.HasColumn(m.Name) {
		return nil
	}
	ds, err := e.dailySeriesFor(m)
	if err != nil {
		return err
	}
	e.populateFromSeries(m.Name, ds, m.Agg)
	col := buildPeriodSummaryColumn(ds, m, e.cfg.Setup.WeekEnding, e.cfg.Setup.FiscalYearEndMonth)
	for i, v := range col {
		e.PeriodSummary.Set(m.Name, i, v)
	}
	cy, py := assembleBoxTotals(col, m.ComparisonMethod)
	for i := 0; i < NumBoxTotalRows; i++ {
		e.CYBox.Set(m.Name, i, cy[i])
		e.PYBox.Set(m.Name, i, py[i])
	}
	return nil
}

func (e *Evaluator) computeBareColumn(name string) error {
	if e.CYWeekly.HasColumn(name) {
		return nil
	}
	numeric, err := e.daily.NumericColumn(name)
	if err != nil {
		return &wbrerrors.UnknownReferenceError{Reference: name}
	}
	ds := dailySeries(numeric)
	e.series[name] = ds
	e.populateFromSeries(name, ds, wbrconfig.AggSum)
	col := buildPeriodSummaryColumnRaw(ds, wbrconfig.AggSum, e.cfg.Setup.WeekEnding, e.cfg.Setup.FiscalYearEndMonth)
	for i, v := range col {
		e.PeriodSummary.Set(name, i, v)
	}
	return nil
}

func (e *Evaluator) dailySeriesFor(m *wbrconfig.Metric) (dailySeries, error) {
	if ds, ok := e.series[m.Name]; ok {
		return ds, nil
	}
	ds, err := buildDailySeries(e.daily, m)
	if err != nil {
		return nil, err
	}
	e.series[m.Name] = ds
	return ds, nil
}

func (e *Evaluator) populateFromSeries(name string, ds dailySeries, agg wbrconfig.AggFunc) {
	cyAnchors := weekAnchorsFor(e.cfg.Setup.WeekEnding)
	pyAnchors := weekAnchorsFor(pyWeekEndingFor(e.cfg.Setup.WeekEnding))
	cyWeekly := weeklyValues(ds, agg, cyAnchors)
	pyWeekly := weeklyValues(ds, agg, pyAnchors)
	for i, v := range cyWeekly {
		e.CYWeekly.Set(name, i, v)
	}
	for i, v := range pyWeekly {
		e.PYWeekly.Set(name, i, v)
	}

	cyMonthly, pyMonthly := EvaluateMonthly(ds, agg, e.plan)
	for i, v := range cyMonthly {
		e.CYMonthly.Set(name, i, v)
	}
	for i, v := range pyMonthly {
		e.PYMonthly.Set(name, i, v)
	}
}

func (e *Evaluator) computeFunction(m *wbrconfig.Metric) error {
	for _, operand := range m.Operands {
		if err := e.EnsureComputed(operand); err != nil {
			return err
		}
	}

	// A sum reduction treats a null operand as a zero contribution (pandas
	// row-wise sum defaults to skipna=True), matching wbr.py's
	// cy_trailing_six_weeks.iloc[:].sum(axis=1)/summary_data_points.iloc[:].sum(axis=1).
	// difference/product/divide stay null-propagating: the original applies
	// those elementwise (.sub/.mul/.div), not as a reduction.
	sumZeroReplace := m.Op == wbrconfig.OpSum

	applyFrame := func(frame *wbrtable.Frame) {
		cols := make([][]wbrvalue.Value, len(m.Operands))
		for i, op := range m.Operands {
			cols[i] = frame.Column(op)
		}
		out := frame.Column(m.Name)
		for row := range out {
			vals := make([]wbrvalue.Value, len(cols))
			for i, c := range cols {
				vals[i] = c[row]
			}
			out[row] = applyOp(m.Op, vals, sumZeroReplace)
		}
	}
	applyFrame(e.CYWeekly)
	applyFrame(e.PYWeekly)
	applyFrame(e.CYMonthly)
	applyFrame(e.PYMonthly)

	applyBox := func(box *wbrtable.BoxTotals, idx int) {
		vals := make([]wbrvalue.Value, len(m.Operands))
		for i, op := range m.Operands {
			vals[i] = box.Get(op, idx)
		}
		box.Set(m.Name, idx, applyOp(m.Op, vals, sumZeroReplace))
	}
	for _, idx := range []int{BoxIdxLastWk, BoxIdxMTD, BoxIdxQTD, BoxIdxYTD} {
		applyBox(e.CYBox, idx)
		applyBox(e.PYBox, idx)
	}

	zeroReplace := m.Op == wbrconfig.OpSum || m.Op == wbrconfig.OpDifference
	psCol := make([]wbrvalue.Value, 10)
	for row := 0; row < 10; row++ {
		vals := make([]wbrvalue.Value, len(m.Operands))
		for i, op := range m.Operands {
			v := e.PeriodSummary.Get(op, row)
			if zeroReplace {
				v = v.OrZero()
			}
			vals[i] = v
		}
		psCol[row] = applyOp(m.Op, vals, false)
	}
	for i, v := range psCol {
		e.PeriodSummary.Set(m.Name, i, v)
	}

	closure := func(cyIdx, pyIdx, boxIdx int) {
		cy := psCol[cyIdx]
		py := psCol[pyIdx]
		if zeroReplace {
			py = py.ZeroToNull()
		}
		e.CYBox.Set(m.Name, boxIdx, Compare(cy, py, m.ComparisonMethod, true))
	}
	closure(YoYIdxCYWk6, YoYIdxCYWk5, BoxIdxWoW)
	closure(YoYIdxCYWk6, YoYIdxPYWk6, BoxIdxYoYWk)
	closure(YoYIdxCYMTD, YoYIdxPYMTD, BoxIdxYoYMTD)
	closure(YoYIdxCYQTD, YoYIdxPYQTD, BoxIdxYoYQTD)
	closure(YoYIdxCYYTD, YoYIdxPYYTD, BoxIdxYoYYTD)

	return nil
}

// applyOp applies a function metric's operation to its resolved operand
// values for a single row. zeroReplace substitutes 0 for null operands
// first, mirroring a pandas row-wise sum's skipna=True default; computeFunction
// passes it only for the sum op across the 6 artifacts and the box absolute
// rows, where difference/product/divide stay null-propagating. The
// period-summary closure does its own zero-replacement before calling
// applyOp, for both sum and difference.
func applyOp(op wbrconfig.FunctionOp, vals []wbrvalue.Value, zeroReplace bool) wbrvalue.Value {
	if zeroReplace {
		for i, v := range vals {
			vals[i] = v.OrZero()
		}
	}
	switch op {
	case wbrconfig.OpSum:
		return wbrvalue.Sum(vals)
	case wbrconfig.OpDifference:
		if len(vals) != 2 {
			return wbrvalue.Null
		}
		return wbrvalue.Sub(vals[0], vals[1])
	case wbrconfig.OpProduct:
		if len(vals) != 2 {
			return wbrvalue.Null
		}
		return wbrvalue.Mul(vals[0], vals[1])
	case wbrconfig.OpDivide:
		if len(vals) != 2 {
			return wbrvalue.Null
		}
		return wbrvalue.Div(vals[0], vals[1])
	default:
		return wbrvalue.Null
	}
}
