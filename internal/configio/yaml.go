// Package configio decodes the host-facing YAML configuration document into
// the wbrconfig.Config tree the engine consumes. The core never imports a
// YAML library itself; this package is the adapter spec.md §6.1 describes,
// grounded on original_source's SafeLineLoader (__line__ tagging) translated
// to yaml.v3's native Node.Line.
package configio

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
)

const weekEndingLayout = "02-Jan-2006"

// DecodeYAML parses a WBR configuration document.
func DecodeYAML(data []byte) (*wbrconfig.Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &wbrerrors.ConfigurationError{Message: "invalid yaml: " + err.Error()}
	}
	if len(root.Content) == 0 {
		return nil, &wbrerrors.ConfigurationError{Message: "empty configuration document"}
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &wbrerrors.ConfigurationError{Message: "configuration document must be a mapping", Line: doc.Line}
	}

	cfg := &wbrconfig.Config{Metrics: map[string]*wbrconfig.Metric{}}

	setupNode := mappingValue(doc, "setup")
	if setupNode == nil {
		return nil, &wbrerrors.ConfigurationError{Message: "missing setup section", Line: doc.Line}
	}
	setup, err := decodeSetup(setupNode)
	if err != nil {
		return nil, err
	}
	cfg.Setup = *setup

	metricsNode := mappingValue(doc, "metrics")
	if metricsNode == nil {
		return nil, &wbrerrors.ConfigurationError{Message: "missing metrics section", Line: doc.Line}
	}
	metrics, err := decodeMetrics(metricsNode)
	if err != nil {
		return nil, err
	}
	cfg.Metrics = metrics

	if deckNode := mappingValue(doc, "deck"); deckNode != nil {
		deck, err := decodeDeck(deckNode)
		if err != nil {
			return nil, err
		}
		cfg.Deck = deck
	}

	return cfg, nil
}

// mappingValue returns the value node for key in a YAML mapping node, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func stringValue(mapping *yaml.Node, key string) (string, bool) {
	n := mappingValue(mapping, key)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

func intValue(mapping *yaml.Node, key string) (int, bool) {
	s, ok := stringValue(mapping, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func boolValue(mapping *yaml.Node, key string) (bool, bool) {
	s, ok := stringValue(mapping, key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}

func decodeSetup(node *yaml.Node) (*wbrconfig.Setup, error) {
	setup := &wbrconfig.Setup{Line: node.Line}

	weekEndingStr, ok := stringValue(node, "week_ending")
	if !ok {
		return nil, &wbrerrors.ConfigurationError{Message: "setup.week_ending is required", Line: node.Line}
	}
	weekEnding, err := parseWeekEnding(weekEndingStr)
	if err != nil {
		return nil, &wbrerrors.ConfigurationError{
			Message: fmt.Sprintf("week_ending %q is not in DD-MMM-YYYY format: %v", weekEndingStr, err),
			Line:    node.Line,
		}
	}
	setup.WeekEnding = weekEnding

	if n, ok := intValue(node, "week_number"); ok {
		setup.WeekNumber = n
	}
	if title, ok := stringValue(node, "title"); ok {
		setup.Title = title
	}
	if n, ok := intValue(node, "block_starting_number"); ok {
		setup.BlockStartingNumber = n
	}
	if display, ok := stringValue(node, "x_axis_monthly_display"); ok {
		setup.XAxisMonthlyDisplay = display
	}
	if tooltip, ok := boolValue(node, "tooltip"); ok {
		setup.Tooltip = tooltip
	}

	setup.FiscalYearEndMonth = time.December
	if abbrev, ok := stringValue(node, "fiscal_year_end_month"); ok {
		m, ok := wbrcalendar.MonthAbbrev(abbrev)
		if !ok {
			return nil, &wbrerrors.ConfigurationError{
				Message: fmt.Sprintf("fiscal_year_end_month %q is not a recognized month abbreviation", abbrev),
				Line:    node.Line,
			}
		}
		setup.FiscalYearEndMonth = m
	}

	return setup, nil
}

func parseWeekEnding(s string) (time.Time, error) {
	return time.Parse(weekEndingLayout, s)
}
