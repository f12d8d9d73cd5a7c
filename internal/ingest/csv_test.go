package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbr-engine/wbr/internal/wbrerrors"
)

func TestReadCSVParsesAndSortsAscending(t *testing.T) {
	csv := "Date,Revenue,Region\n" +
		"2024-01-03,30,US\n" +
		"2024-01-01,10,US\n" +
		"2024-01-02,20,EU\n"

	daily, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, daily.Dates, 3)
	assert.True(t, daily.Dates[0].Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, daily.Dates[1].Equal(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, daily.Dates[2].Equal(time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, []interface{}{10.0, 20.0, 30.0}, daily.Columns["Revenue"])
	assert.Equal(t, []interface{}{"US", "EU", "US"}, daily.Columns["Region"])
}

func TestReadCSVStripsThousandsSeparators(t *testing.T) {
	csv := "Date,Revenue\n2024-01-01,\"1,234,567\"\n"
	daily, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1234567.0}, daily.Columns["Revenue"])
}

func TestReadCSVAcceptsMultipleDateLayouts(t *testing.T) {
	for _, c := range []struct {
		raw  string
		want time.Time
	}{
		{"2024-01-01", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"01/15/2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/02/01", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"03-Mar-2024", time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)},
	} {
		csv := "Date,Revenue\n" + c.raw + ",5\n"
		daily, err := ReadCSV(strings.NewReader(csv))
		require.NoError(t, err, c.raw)
		assert.True(t, daily.Dates[0].Equal(c.want), "layout for %q", c.raw)
	}
}

func TestReadCSVEmptyCellIsNil(t *testing.T) {
	csv := "Date,Revenue\n2024-01-01,\n"
	daily, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Nil(t, daily.Columns["Revenue"][0])
}

func TestReadCSVNonNumericCellIsString(t *testing.T) {
	csv := "Date,Region\n2024-01-01,US\n"
	daily, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "US", daily.Columns["Region"][0])
}

func TestReadCSVMissingDateColumnErrors(t *testing.T) {
	csv := "Revenue,Region\n10,US\n"
	_, err := ReadCSV(strings.NewReader(csv))
	require.Error(t, err)
	var shapeErr *wbrerrors.DataShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestReadCSVUnparseableDateErrors(t *testing.T) {
	csv := "Date,Revenue\nnot-a-date,10\n"
	_, err := ReadCSV(strings.NewReader(csv))
	require.Error(t, err)
	var shapeErr *wbrerrors.DataShapeError
	assert.ErrorAs(t, err, &shapeErr)
}
