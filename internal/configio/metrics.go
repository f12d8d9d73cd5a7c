package configio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
)

// decodeMetrics parses the metrics mapping. Each metric is one of three
// shapes, distinguished by which keys are present:
//   - function: { operation: sum|difference|product|divide, operands: [...] }
//   - filter: <predicate expression>, column: <name>, aggf: sum|first|last|mean
//   - column: <name>, aggf: sum|first|last|mean
func decodeMetrics(node *yaml.Node) (map[string]*wbrconfig.Metric, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &wbrerrors.ConfigurationError{Message: "metrics section must be a mapping", Line: node.Line}
	}
	metrics := make(map[string]*wbrconfig.Metric, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		body := node.Content[i+1]
		m, err := decodeMetric(name, body)
		if err != nil {
			return nil, err
		}
		metrics[name] = m
	}
	return metrics, nil
}

func decodeMetric(name string, body *yaml.Node) (*wbrconfig.Metric, error) {
	m := &wbrconfig.Metric{Name: name, Line: body.Line}

	if method, ok := stringValue(body, "metric_comparison_method"); ok {
		m.ComparisonMethod = wbrconfig.ComparisonMethod(method)
	}

	if fn := mappingValue(body, "function"); fn != nil {
		m.Kind = wbrconfig.MetricFunction
		op, _ := stringValue(fn, "operation")
		m.Op = wbrconfig.FunctionOp(op)
		operandsNode := mappingValue(fn, "operands")
		if operandsNode == nil || operandsNode.Kind != yaml.SequenceNode {
			return nil, &wbrerrors.ConfigurationError{
				Message: fmt.Sprintf("function metric %q requires an operands list", name),
				Line:    fn.Line,
			}
		}
		for _, on := range operandsNode.Content {
			m.Operands = append(m.Operands, on.Value)
		}
		return m, nil
	}

	column, hasColumn := stringValue(body, "column")
	filter, hasFilter := stringValue(body, "filter")
	aggf, _ := stringValue(body, "aggf")
	m.Agg = wbrconfig.AggFunc(aggf)

	switch {
	case hasFilter:
		m.Kind = wbrconfig.MetricFilter
		m.Column = column
		pred, err := wbrconfig.ParsePredicate(filter)
		if err != nil {
			return nil, &wbrerrors.ConfigurationError{
				Message: fmt.Sprintf("metric %q has an invalid filter expression: %v", name, err),
				Line:    body.Line,
			}
		}
		m.Predicate = pred
	case hasColumn:
		m.Kind = wbrconfig.MetricColumn
		m.Column = column
	default:
		return nil, &wbrerrors.ConfigurationError{
			Message: fmt.Sprintf("metric %q requires one of function, filter, or column", name),
			Line:    body.Line,
		}
	}
	return m, nil
}

// decodeDeck parses the ordered deck block sequence.
func decodeDeck(node *yaml.Node) ([]wbrconfig.BlockSpec, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, &wbrerrors.ConfigurationError{Message: "deck section must be a sequence", Line: node.Line}
	}
	specs := make([]wbrconfig.BlockSpec, 0, len(node.Content))
	for _, entry := range node.Content {
		block := mappingValue(entry, "block")
		if block == nil {
			return nil, &wbrerrors.ConfigurationError{Message: "deck entry missing block key", Line: entry.Line}
		}
		uiType, _ := stringValue(block, "ui_type")
		if uiType == "" {
			return nil, &wbrerrors.ConfigurationError{Message: "block ui_type is required", Line: block.Line}
		}
		body, err := decodeGeneric(block)
		if err != nil {
			return nil, err
		}
		bodyMap, _ := body.(map[string]interface{})
		specs = append(specs, wbrconfig.BlockSpec{UIType: uiType, Body: bodyMap, Line: block.Line})
	}
	return specs, nil
}

// decodeGeneric converts an arbitrary YAML node into plain Go values
// (map[string]interface{}, []interface{}, string, int, bool) for the deck
// block bodies, whose shape varies per ui_type and is interpreted by
// internal/wbrdeck rather than this package.
func decodeGeneric(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(map[string]interface{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if key == "__line__" {
				continue
			}
			v, err := decodeGeneric(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := decodeGeneric(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return nil, &wbrerrors.ConfigurationError{Message: "invalid scalar value: " + err.Error(), Line: node.Line}
		}
		return v, nil
	default:
		return nil, nil
	}
}
