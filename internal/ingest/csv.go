// Package ingest reads the daily observation table from a CSV stream, the
// host-side half of the contract in spec.md §6.2. Grounded on
// original_source/src/wbr.py's `pd.read_csv(csv, parse_dates=['Date'],
// thousands=',')` call: dates are parsed, thousands separators are
// stripped from numeric cells, and rows are sorted ascending by Date before
// reaching the core.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wbr-engine/wbr/internal/wbrcalendar"
	"github.com/wbr-engine/wbr/internal/wbrerrors"
	"github.com/wbr-engine/wbr/internal/wbrtable"
)

// dateLayouts are tried in order; the first in spec.md's own date format
// (used for week_ending) is tried last since Date columns are typically
// ISO-formatted by upstream export tools.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// ReadCSV parses a daily observation CSV into a wbrtable.Daily, sorted
// ascending by Date. Duplicate dates are preserved as separate rows; the
// engine's aggregation primitives collapse them per a metric's agg function.
func ReadCSV(r io.Reader) (*wbrtable.Daily, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &wbrerrors.DataShapeError{Message: "failed to read csv header", Cause: err}
	}

	dateIdx := -1
	for i, h := range header {
		if h == "Date" {
			dateIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, &wbrerrors.DataShapeError{Message: "daily observations csv is missing a Date column"}
	}

	type parsedRow struct {
		date  time.Time
		cells []interface{}
	}
	var rows []parsedRow

	for lineNum := 2; ; lineNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &wbrerrors.DataShapeError{Message: fmt.Sprintf("failed to read csv row %d", lineNum), Cause: err}
		}
		if len(record) <= dateIdx {
			return nil, &wbrerrors.DataShapeError{Message: fmt.Sprintf("csv row %d is missing the Date column", lineNum)}
		}
		d, err := parseDate(record[dateIdx])
		if err != nil {
			return nil, &wbrerrors.DataShapeError{
				Message: fmt.Sprintf("csv row %d has an unparseable Date value %q", lineNum, record[dateIdx]),
				Cause:   err,
			}
		}
		cells := make([]interface{}, len(header))
		for i, v := range record {
			if i == dateIdx {
				continue
			}
			cells[i] = parseCell(v)
		}
		rows = append(rows, parsedRow{date: d, cells: cells})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		dates[i] = row.date
	}
	daily := wbrtable.NewDaily(dates)

	for colIdx, name := range header {
		if colIdx == dateIdx {
			continue
		}
		col := make([]interface{}, len(rows))
		for i, row := range rows {
			if colIdx < len(row.cells) {
				col[i] = row.cells[colIdx]
			}
		}
		daily.Columns[name] = col
	}

	return daily, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return wbrcalendar.Day(t), nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// parseCell classifies a raw CSV cell as nil (empty), a float64 (numeric,
// with thousands separators stripped), or a string (used only by filter
// predicates over categorical columns).
func parseCell(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return f
	}
	return s
}
