// Package wbrdeck projects the engine's computed artifacts (weekly/monthly
// frames, box totals, period summary) into the block-based presentation
// model spec.md §6.3 describes: charts, trailing tables, sections, and
// embedded content, assembled in the order the configuration's deck
// sequence declares them.
package wbrdeck

import (
	"time"

	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrengine"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

// axisSlots is the padded length of a chart's primary/secondary axis
// sequence: 6 weekly slots, a separator slot, and up to 12 monthly slots.
const axisSlots = 19

// Block is implemented by every deck block variant. The method is unexported
// so only this package's types satisfy it.
type Block interface{ isBlock() }

// AxisSeries holds one metric line's weekly values in the primary half and
// monthly values in the secondary half, each padded to axisSlots with nil
// outside its own half.
type AxisSeries struct {
	Primary   []interface{} `json:"primaryAxis"`
	Secondary []interface{} `json:"secondaryAxis"`
}

// MetricAxis is one metric's contribution to a ChartBlock's yAxis list.
type MetricAxis struct {
	LineStyle  string      `json:"lineStyle"`
	LegendName string      `json:"legendName"`
	Current    AxisSeries  `json:"current"`
	Previous   *AxisSeries `json:"previous,omitempty"`
}

// ChartTable is the box-total table embedded in a ChartBlock: one header row
// (the 9 box-total axis labels) and one body row per metric.
type ChartTable struct {
	Header []string        `json:"tableHeader"`
	Body   [][]interface{} `json:"tableBody"`
}

// ChartBlock is the "6_12Graph" block: a dual-resolution chart (6 trailing
// weeks, up to 12 trailing months) plus its box-total table.
type ChartBlock struct {
	PlotStyle     string       `json:"plotStyle"`
	Title         string       `json:"title,omitempty"`
	YLabel        string       `json:"yLabel"`
	YScale        string       `json:"yScale"`
	BoxTotalScale string       `json:"boxTotalScale"`
	Axes          int          `json:"axes"`
	XAxis         []string     `json:"xAxis"`
	YAxis         []MetricAxis `json:"yAxis"`
	Table         ChartTable   `json:"table"`
	Tooltip       bool         `json:"tooltip"`
}

func (ChartBlock) isBlock() {}

// TableRow is one row of a TableBlock.
type TableRow struct {
	RowHeader string        `json:"rowHeader"`
	RowData   []interface{} `json:"rowData"`
	RowStyle  string        `json:"rowStyle,omitempty"`
	YScale    string        `json:"yScale,omitempty"`
}

// TableBlock is either the "6_week_table" or "12_MonthsTable" block.
type TableBlock struct {
	Style   string     `json:"plotStyle"`
	Title   string     `json:"title,omitempty"`
	Headers []string   `json:"headers"`
	Rows    []TableRow `json:"rows"`
}

func (TableBlock) isBlock() {}

// SectionBlock is a layout-only heading.
type SectionBlock struct {
	PlotStyle string `json:"plotStyle"`
	Title     string `json:"title,omitempty"`
}

func (SectionBlock) isBlock() {}

// EmbeddedBlock is a layout-only iframe embed.
type EmbeddedBlock struct {
	PlotStyle string `json:"plotStyle"`
	ID        string `json:"id"`
	Source    string `json:"source"`
	Name      string `json:"name,omitempty"`
	Title     string `json:"title,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

func (EmbeddedBlock) isBlock() {}

// Deck is the top-level assembled output of spec.md §6.3.
type Deck struct {
	Title               string
	WeekEnding           string
	BlockStartingNumber int
	XAxisMonthlyDisplay string
	Blocks              []Block
}

// blockBuilder produces one assembled Block from a configuration block
// specification and the engine's computed result.
type blockBuilder func(res *wbrengine.Result, cfg *wbrconfig.Config, spec wbrconfig.BlockSpec, index int) (Block, error)

var builders = map[string]blockBuilder{
	"6_12Graph":        buildChartBlock,
	"6_WeeksTable":     buildSixWeeksTableBlock,
	"12_MonthsTable":   buildTwelveMonthsTableBlock,
	"section":          buildSectionBlock,
	"embedded_content": buildEmbeddedBlock,
}

// Build assembles the full deck from the engine's Result and the
// configuration's deck sequence, in declared order.
func Build(cfg *wbrconfig.Config, res *wbrengine.Result) (*Deck, error) {
	deck := &Deck{
		Title:               cfg.Setup.Title,
		WeekEnding:           cfg.Setup.WeekEnding.Format("02 January 2006"),
		BlockStartingNumber: cfg.Setup.BlockStartingNumber,
		XAxisMonthlyDisplay: cfg.Setup.XAxisMonthlyDisplay,
	}
	if deck.BlockStartingNumber == 0 {
		deck.BlockStartingNumber = 1
	}

	for i, spec := range cfg.Deck {
		build, ok := builders[spec.UIType]
		if !ok {
			return nil, &wbrerrors.ConfigurationError{
				Message: "unknown ui_type " + spec.UIType,
				Line:    spec.Line,
			}
		}
		block, err := build(res, cfg, spec, i)
		if err != nil {
			return nil, err
		}
		deck.Blocks = append(deck.Blocks, block)
	}
	return deck, nil
}

func buildSectionBlock(_ *wbrengine.Result, _ *wbrconfig.Config, spec wbrconfig.BlockSpec, _ int) (Block, error) {
	title, _ := spec.Body["title"].(string)
	return SectionBlock{PlotStyle: "section", Title: title}, nil
}

func buildEmbeddedBlock(_ *wbrengine.Result, _ *wbrconfig.Config, spec wbrconfig.BlockSpec, _ int) (Block, error) {
	source, ok := spec.Body["source"].(string)
	if !ok || source == "" {
		return nil, &wbrerrors.ConfigurationError{Message: "embedded_content block requires source", Line: spec.Line}
	}
	block := EmbeddedBlock{PlotStyle: "embedded_content", ID: "iframe_id", Source: source}
	if title, ok := spec.Body["title"].(string); ok {
		block.Title = title
	}
	if name, ok := spec.Body["name"].(string); ok {
		block.Name = name
	}
	block.Width = pixelValue(spec.Body["width"])
	block.Height = pixelValue(spec.Body["height"])
	return block, nil
}

// pixelValue parses a CSS-style pixel dimension ("1024px") or a bare
// integer into its numeric value, per original_source's width/height
// parsing convention.
func pixelValue(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case string:
		s := t
		if len(s) > 2 && s[len(s)-2:] == "px" {
			s = s[:len(s)-2]
		}
		n := 0
		neg := false
		for i, c := range s {
			if i == 0 && c == '-' {
				neg = true
				continue
			}
			if c < '0' || c > '9' {
				return 0
			}
			n = n*10 + int(c-'0')
		}
		if neg {
			n = -n
		}
		return n
	default:
		return 0
	}
}

// xAxisLabels builds the 6 "wk N" weekly tags, a blank separator, and one
// month abbreviation per monthly row actually computed for the run.
func xAxisLabels(weekNumber int, monthlyDates []time.Time) []string {
	labels := make([]string, 0, axisSlots)
	for i := wbrengine.NumTrailingWeeks; i >= 1; i-- {
		n := ((weekNumber-i)%52 + 52) % 52
		labels = append(labels, "wk "+itoa(n+1))
	}
	labels = append(labels, " ")
	for _, d := range monthlyDates {
		labels = append(labels, wbrcalendar.MonthAbbrevName(d.Month()))
	}
	return labels
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// padAxis splits a metric's weekly+monthly values into the padded
// primary/secondary AxisSeries pair a chart line needs.
func padAxis(weekly, monthly []wbrvalue.Value) AxisSeries {
	primary := make([]interface{}, axisSlots)
	secondary := make([]interface{}, axisSlots)
	for i := 0; i < axisSlots; i++ {
		primary[i] = nil
		secondary[i] = nil
	}
	for i, v := range weekly {
		if i >= wbrengine.NumTrailingWeeks {
			break
		}
		primary[i] = valueOrNil(v)
	}
	offset := wbrengine.NumTrailingWeeks + 1
	for i, v := range monthly {
		if offset+i >= axisSlots {
			break
		}
		secondary[offset+i] = valueOrNil(v)
	}
	return AxisSeries{Primary: primary, Secondary: secondary}
}

func valueOrNil(v wbrvalue.Value) interface{} {
	if !v.Valid {
		return nil
	}
	f, _ := v.Float64()
	return f
}

func boxRowOrNA(v wbrvalue.Value) interface{} {
	if !v.Valid {
		return "N/A"
	}
	f, _ := v.Float64()
	return f
}

func sixWeekCellOrBlank(v wbrvalue.Value) interface{} {
	if !v.Valid {
		return " "
	}
	f, _ := v.Float64()
	return f
}

// singleAxisRatio reports whether weekly and monthly series are close enough
// in scale to share one y-axis, per original_source's
// get_primary_and_secondary_axis_value_list: true when 0 < monthlyMax/weeklyMax <= 3.
func singleAxisRatio(weekly, monthly []wbrvalue.Value) bool {
	weeklyMax, anyWeekly := maxValid(weekly)
	monthlyMax, anyMonthly := maxValid(monthly)
	if !anyWeekly || !anyMonthly || weeklyMax <= 0 {
		return false
	}
	ratio := monthlyMax / weeklyMax
	return ratio > 0 && ratio <= 3
}

func maxValid(vs []wbrvalue.Value) (float64, bool) {
	max := 0.0
	found := false
	for _, v := range vs {
		f, ok := v.Float64()
		if !ok {
			continue
		}
		if !found || f > max {
			max = f
			found = true
		}
	}
	return max, found
}
