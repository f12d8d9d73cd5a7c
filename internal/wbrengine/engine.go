package wbrengine

import (
	"sort"

	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
	"github.com/wbr-engine/wbr/internal/wbrtable"
)

// Result is the full set of computed artifacts a Run produces: the six
// tabular artifacts from spec.md §3.1 plus the monthly anchor plan the deck
// assembler needs to align x-axis labels with the actual row layout.
type Result struct {
	CYWeekly      *wbrtable.Frame
	PYWeekly      *wbrtable.Frame
	CYMonthly     *wbrtable.Frame
	PYMonthly     *wbrtable.Frame
	CYBox         *wbrtable.BoxTotals
	PYBox         *wbrtable.BoxTotals
	PeriodSummary *wbrtable.PeriodSummary
	MonthlyPlan   MonthlyAnchorPlan
}

// Run is the engine's single entry point: a pure function from (config,
// daily observations) to the computed artifact set. It validates the
// configuration, builds the six artifacts for every declared metric
// (resolving function metrics in dependency order), and appends the raw
// WoW/MoM chart-delta columns.
func Run(cfg *wbrconfig.Config, daily *wbrtable.Daily) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(daily.Dates) == 0 {
		return nil, &wbrerrors.DataShapeError{Message: "daily observation table has no rows"}
	}

	plan := BuildMonthlyAnchorPlan(cfg.Setup.WeekEnding, cfg.Setup.FiscalYearEndMonth)

	res := &Result{
		CYWeekly:      wbrtable.NewFrame(weekAnchorsFor(cfg.Setup.WeekEnding)),
		PYWeekly:      wbrtable.NewFrame(weekAnchorsFor(pyWeekEndingFor(cfg.Setup.WeekEnding))),
		CYMonthly:     wbrtable.NewFrame(plan.CYDates),
		PYMonthly:     wbrtable.NewFrame(plan.PYDates),
		CYBox:         wbrtable.NewBoxTotals(append([]string{}, BoxAxisLabels...)),
		PYBox:         wbrtable.NewBoxTotals(append([]string{}, BoxAxisLabels...)),
		PeriodSummary: wbrtable.NewPeriodSummary(10),
		MonthlyPlan:   plan,
	}

	ev := &Evaluator{
		cfg:           cfg,
		daily:         daily,
		series:        map[string]dailySeries{},
		plan:          plan,
		colors:        map[string]color{},
		CYWeekly:      res.CYWeekly,
		PYWeekly:      res.PYWeekly,
		CYMonthly:     res.CYMonthly,
		PYMonthly:     res.PYMonthly,
		CYBox:         res.CYBox,
		PYBox:         res.PYBox,
		PeriodSummary: res.PeriodSummary,
	}

	// Sorted traversal order makes a reported cycle deterministic without
	// prescribing which member of the cycle the error names, per spec.md
	// §8.3 scenario 5.
	names := make([]string, 0, len(cfg.Metrics))
	for name := range cfg.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ev.EnsureComputed(name); err != nil {
			return nil, err
		}
	}

	for _, name := range names {
		m := cfg.Metrics[name]
		AppendWoW(res.CYWeekly, name, m.ComparisonMethod)
		AppendMoM(res.CYMonthly, name, m.ComparisonMethod)
	}

	return res, nil
}
