// Package wbrconfig defines the typed configuration tree the WBR engine
// consumes: setup fields, metric definitions (tagged variant: column,
// filter, function), and the deck block specifications. The package never
// parses YAML itself — internal/configio owns that — so the core stays
// independent of any serialization format.
package wbrconfig

import (
	"fmt"
	"time"

	"github.com/wbr-engine/wbr/internal/wbrerrors"
)

// AggFunc is the aggregation function applied to a column or filter metric.
type AggFunc string

const (
	AggSum   AggFunc = "sum"
	AggFirst AggFunc = "first"
	AggLast  AggFunc = "last"
	AggMean  AggFunc = "mean"
)

// ComparisonMethod selects how the comparison engine scales a CY/PY delta.
type ComparisonMethod string

const (
	ComparisonBPS       ComparisonMethod = "bps"
	ComparisonPctChange ComparisonMethod = "pct_change"
)

// FunctionOp is the arithmetic operation a function metric applies to its
// operands.
type FunctionOp string

const (
	OpSum        FunctionOp = "sum"
	OpDifference FunctionOp = "difference"
	OpProduct    FunctionOp = "product"
	OpDivide     FunctionOp = "divide"
)

// MetricKind tags which variant of MetricDefinition a Metric is.
type MetricKind int

const (
	MetricColumn MetricKind = iota
	MetricFilter
	MetricFunction
)

// Metric is the tagged-variant metric definition from spec.md §3.1.
type Metric struct {
	Name string
	Kind MetricKind
	Line int

	// Column / Filter
	Column    string // base column to extract/aggregate
	Agg       AggFunc
	Predicate *Predicate // nil for plain Column metrics

	// Function
	Op       FunctionOp
	Operands []string // metric or column names

	ComparisonMethod ComparisonMethod
}

// Setup holds the WBR run's top-level parameters.
type Setup struct {
	WeekEnding           time.Time
	WeekNumber           int
	FiscalYearEndMonth   time.Month
	Title                string
	BlockStartingNumber  int
	XAxisMonthlyDisplay  string // "fiscal_year" | "trailing_twelve_months" | ""
	Tooltip              bool
	Line                 int
}

// BlockSpec is one entry in the deck sequence. Body carries the
// block-type-specific fields as a generic map; internal/wbrdeck interprets
// it according to UIType.
type BlockSpec struct {
	UIType string
	Body   map[string]interface{}
	Line   int
}

// Config is the full parsed WBR configuration tree (spec.md §6.1).
type Config struct {
	Setup   Setup
	Metrics map[string]*Metric
	Deck    []BlockSpec
}

// Validate checks the configuration for the structural requirements spec.md
// §7 assigns to ConfigurationError, mirroring the reference validator's
// check_week_ending/validate_aggf checks.
func (c *Config) Validate() error {
	if c.Setup.WeekEnding.IsZero() {
		return &wbrerrors.ConfigurationError{
			Message: "setup.week_ending is required",
			Line:    c.Setup.Line,
		}
	}
	if c.Setup.WeekNumber < 1 || c.Setup.WeekNumber > 52 {
		return &wbrerrors.ConfigurationError{
			Message: fmt.Sprintf("setup.week_number must be 1-52, got %d", c.Setup.WeekNumber),
			Line:    c.Setup.Line,
		}
	}
	if c.Setup.FiscalYearEndMonth == 0 {
		c.Setup.FiscalYearEndMonth = time.December
	}
	if c.Setup.BlockStartingNumber == 0 {
		c.Setup.BlockStartingNumber = 1
	}

	for name, m := range c.Metrics {
		if m.ComparisonMethod == "" {
			m.ComparisonMethod = ComparisonPctChange
		}
		if m.ComparisonMethod != ComparisonBPS && m.ComparisonMethod != ComparisonPctChange {
			return &wbrerrors.ConfigurationError{
				Message: fmt.Sprintf("invalid metric_comparison_method %q for metric %q", m.ComparisonMethod, name),
				Line:    m.Line,
			}
		}
		switch m.Kind {
		case MetricColumn, MetricFilter:
			if m.Agg == "" || m.Column == "" {
				return &wbrerrors.ConfigurationError{
					Message: fmt.Sprintf("metric %q requires aggf and one of column/filter", name),
					Line:    m.Line,
				}
			}
		case MetricFunction:
			if len(m.Operands) == 0 {
				return &wbrerrors.ConfigurationError{
					Message: fmt.Sprintf("function metric %q has no operands", name),
					Line:    m.Line,
				}
			}
			if m.Op != OpSum && len(m.Operands) != 2 {
				return &wbrerrors.ConfigurationError{
					Message: fmt.Sprintf("function metric %q with op %q requires exactly 2 operands", name, m.Op),
					Line:    m.Line,
				}
			}
		}
	}
	return nil
}
