// Package wbrerrors defines the fatal, non-recoverable error kinds the WBR
// engine can produce. ConfigurationError and UnknownReferenceError carry the
// source line of the offending configuration entry when one is available,
// mirroring the line-tagged mapping nodes the YAML loader this engine's
// config adapter is modeled on attaches to every node it parses.
// CircularDependencyError and DataShapeError carry no line.
package wbrerrors

import "fmt"

// ConfigurationError reports a malformed or incomplete WBR configuration:
// a missing setup field, a metric missing its required aggregation
// parameters, or an invalid comparison method.
type ConfigurationError struct {
	Message string
	Line    int
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("configuration error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// UnknownReferenceError reports a function-metric operand or a deck block
// metric that names neither a declared metric nor a daily observation column.
type UnknownReferenceError struct {
	Reference string
	Line      int
}

func (e *UnknownReferenceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unknown reference %q at line %d", e.Reference, e.Line)
	}
	return fmt.Sprintf("unknown reference %q", e.Reference)
}

// CircularDependencyError reports a cycle in the function-metric dependency
// graph, detected by the three-color DFS in internal/wbrengine.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency among metrics: %v", e.Cycle)
}

// DataShapeError reports a daily-observation table that does not satisfy
// the shape the engine requires: a missing or unparseable Date column, no
// rows at all, a column referenced by the configuration that is absent from
// the data, or a non-numeric cell in a column a metric aggregates.
type DataShapeError struct {
	Message string
	Cause   error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("data shape error: %s", e.Message)
}

func (e *DataShapeError) Unwrap() error { return e.Cause }
