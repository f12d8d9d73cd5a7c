package wbrdeck

import (
	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrengine"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
)

func buildChartBlock(res *wbrengine.Result, cfg *wbrconfig.Config, spec wbrconfig.BlockSpec, index int) (Block, error) {
	metricsBody, ok := spec.Body["metrics"].(map[string]interface{})
	if !ok || len(metricsBody) == 0 {
		return nil, &wbrerrors.ConfigurationError{
			Message: "6_12Graph block requires a non-empty metrics map",
			Line:    spec.Line,
		}
	}

	block := ChartBlock{
		PlotStyle: "6_12_chart",
		YScale:    stringOrEmpty(spec.Body["y_scaling"]),
		Tooltip:   cfg.Setup.Tooltip,
		Table:     ChartTable{Header: append([]string{}, wbrengine.BoxAxisLabels...)},
	}
	if title, ok := spec.Body["title"].(string); ok {
		block.Title = title
	}
	block.XAxis = xAxisLabels(cfg.Setup.WeekNumber, res.MonthlyPlan.CYDates)

	isSingleAxis := false
	for name, rawCfg := range metricsBody {
		metricCfg, _ := rawCfg.(map[string]interface{})
		lineStyle := stringOrDefault(metricCfg["line_style"], "primary")
		legendName := stringOrDefault(metricCfg["legend_name"], name)

		if !res.CYWeekly.HasColumn(name) {
			return nil, &wbrerrors.UnknownReferenceError{Reference: name, Line: spec.Line}
		}

		weekly := res.CYWeekly.Column(name)
		monthly := res.CYMonthly.Column(name)
		axis := padAxis(weekly, monthly)
		if singleAxisRatio(weekly, monthly) {
			isSingleAxis = true
		}

		metricAxis := MetricAxis{LineStyle: lineStyle, LegendName: legendName, Current: axis}

		graphPY := true
		if v, ok := metricCfg["graph_prior_year_flag"].(bool); ok {
			graphPY = v
		}
		if graphPY && res.PYWeekly.HasColumn(name) {
			pyWeekly := res.PYWeekly.Column(name)
			pyMonthly := res.PYMonthly.Column(name)
			py := padAxis(pyWeekly, pyMonthly)
			metricAxis.Previous = &py
		}
		block.YAxis = append(block.YAxis, metricAxis)

		block.BoxTotalScale = boxTotalScale(cfg, name)
		if lineStyle != "target" {
			row := make([]interface{}, res.CYBox.Len())
			for i := 0; i < res.CYBox.Len(); i++ {
				row[i] = boxRowOrNA(res.CYBox.Get(name, i))
			}
			block.Table.Body = append(block.Table.Body, row)
		}
	}

	if axes, ok := spec.Body["axes"].(int); ok {
		block.Axes = axes
	} else if isSingleAxis {
		block.Axes = 1
	} else {
		block.Axes = 2
	}

	return block, nil
}

func boxTotalScale(cfg *wbrconfig.Config, name string) string {
	if m, ok := cfg.Metrics[name]; ok && m.ComparisonMethod == wbrconfig.ComparisonBPS {
		return "bps"
	}
	return "%"
}

func stringOrEmpty(v interface{}) string {
	s, _ := v.(string)
	return s
}

func stringOrDefault(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func buildSixWeeksTableBlock(res *wbrengine.Result, cfg *wbrconfig.Config, spec wbrconfig.BlockSpec, _ int) (Block, error) {
	rowsBody, ok := spec.Body["rows"].([]interface{})
	if !ok || len(rowsBody) == 0 {
		return nil, &wbrerrors.ConfigurationError{Message: "6_WeeksTable block requires rows", Line: spec.Line}
	}

	headers := xAxisLabels(cfg.Setup.WeekNumber, nil)[:wbrengine.NumTrailingWeeks]
	headers = append(headers, "QTD", "YTD")

	block := TableBlock{Style: "6_week_table", Headers: headers}
	if title, ok := spec.Body["title"].(string); ok {
		block.Title = title
	}

	for _, raw := range rowsBody {
		rowSpec, _ := raw.(map[string]interface{})
		row, _ := rowSpec["row"].(map[string]interface{})
		metric, _ := row["metric"].(string)
		if metric == "" {
			continue
		}
		if containsSubstr(metric, "MOM") {
			return nil, &wbrerrors.ConfigurationError{
				Message: "MOM metrics are not supported in the 6 weeks table block: " + metric,
				Line:    spec.Line,
			}
		}
		if !res.CYWeekly.HasColumn(metric) {
			return nil, &wbrerrors.UnknownReferenceError{Reference: metric, Line: spec.Line}
		}

		tr := TableRow{
			RowHeader: stringOrEmpty(row["header"]),
			RowStyle:  stringOrEmpty(row["style"]),
			YScale:    stringOrEmpty(row["y_scaling"]),
		}
		weekly := res.CYWeekly.Column(metric)
		for i := 0; i < wbrengine.NumTrailingWeeks; i++ {
			tr.RowData = append(tr.RowData, sixWeekCellOrBlank(weekly[i]))
		}
		if containsSubstr(metric, "WOW") {
			tr.RowData = append(tr.RowData, " ", " ")
		} else {
			tr.RowData = append(tr.RowData,
				sixWeekCellOrBlank(res.CYBox.Get(metric, wbrengine.BoxIdxQTD)),
				sixWeekCellOrBlank(res.CYBox.Get(metric, wbrengine.BoxIdxYTD)),
			)
		}
		block.Rows = append(block.Rows, tr)
	}
	return block, nil
}

func buildTwelveMonthsTableBlock(res *wbrengine.Result, cfg *wbrconfig.Config, spec wbrconfig.BlockSpec, _ int) (Block, error) {
	rowsBody, ok := spec.Body["rows"].([]interface{})
	if !ok || len(rowsBody) == 0 {
		return nil, &wbrerrors.ConfigurationError{Message: "12_MonthsTable block requires rows", Line: spec.Line}
	}

	start, count := twelveMonthWindow(cfg, spec, res.MonthlyPlan)

	block := TableBlock{Style: "12_MonthsTable"}
	if title, ok := spec.Body["title"].(string); ok {
		block.Title = title
	}
	for i := start; i < start+count && i < len(res.MonthlyPlan.CYDates); i++ {
		block.Headers = append(block.Headers, res.MonthlyPlan.CYDates[i].Format("Jan"))
	}

	for _, raw := range rowsBody {
		rowSpec, _ := raw.(map[string]interface{})
		row, _ := rowSpec["row"].(map[string]interface{})
		metric, _ := row["metric"].(string)
		if metric == "" {
			continue
		}
		if !res.CYMonthly.HasColumn(metric) {
			return nil, &wbrerrors.UnknownReferenceError{Reference: metric, Line: spec.Line}
		}
		tr := TableRow{
			RowHeader: stringOrEmpty(row["header"]),
			RowStyle:  stringOrEmpty(row["style"]),
			YScale:    stringOrEmpty(row["y_scaling"]),
		}
		monthly := res.CYMonthly.Column(metric)
		for i := start; i < start+count && i < len(monthly); i++ {
			tr.RowData = append(tr.RowData, sixWeekCellOrBlank(monthly[i]))
		}
		block.Rows = append(block.Rows, tr)
	}
	return block, nil
}

// twelveMonthWindow resolves the starting index and row count for a
// 12_MonthsTable block: either aligned to the fiscal year start month or a
// plain trailing-twelve window, per the block's or deck's x_axis_monthly_display.
func twelveMonthWindow(cfg *wbrconfig.Config, spec wbrconfig.BlockSpec, plan wbrengine.MonthlyAnchorPlan) (start, count int) {
	display, _ := spec.Body["x_axis_monthly_display"].(string)
	if display == "" {
		display = cfg.Setup.XAxisMonthlyDisplay
	}
	count = 12
	if len(plan.CYDates) < count {
		count = len(plan.CYDates)
	}
	if display != "fiscal_year" {
		return 0, count
	}
	for i, d := range plan.CYDates {
		if d.Month() == wbrcalendar.FiscalYearStartMonth(cfg.Setup.FiscalYearEndMonth) {
			return i, count
		}
	}
	return 0, count
}

func containsSubstr(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
