package wbrtable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

func days(n int) []time.Time {
	out := make([]time.Time, n)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func TestNumericColumnConvertsFloatsAndInts(t *testing.T) {
	d := NewDaily(days(3))
	d.Columns["Revenue"] = []interface{}{10.0, 20, nil}

	col, err := d.NumericColumn("Revenue")
	require.NoError(t, err)

	v0, ok := col[d.Dates[0]].Float64()
	require.True(t, ok)
	assert.Equal(t, 10.0, v0)

	v1, ok := col[d.Dates[1]].Float64()
	require.True(t, ok)
	assert.Equal(t, 20.0, v1)

	assert.False(t, col[d.Dates[2]].Valid)
}

func TestNumericColumnNormalizesNonUTCDatesToMidnight(t *testing.T) {
	loc := time.FixedZone("x", 3*3600)
	d := NewDaily([]time.Time{time.Date(2024, time.January, 1, 15, 30, 0, 0, loc)})
	d.Columns["Revenue"] = []interface{}{5.0}

	col, err := d.NumericColumn("Revenue")
	require.NoError(t, err)

	for k := range col {
		assert.Equal(t, 0, k.Hour())
		assert.Equal(t, time.UTC, k.Location())
	}
}

func TestNumericColumnMissingColumnErrors(t *testing.T) {
	d := NewDaily(days(1))
	_, err := d.NumericColumn("Missing")
	require.Error(t, err)
	var notFound *ColumnNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNumericColumnNonNumericCellErrors(t *testing.T) {
	d := NewDaily(days(1))
	d.Columns["Region"] = []interface{}{"US"}
	_, err := d.NumericColumn("Region")
	require.Error(t, err)
	var badCell *NonNumericCellError
	assert.ErrorAs(t, err, &badCell)
}

func TestFrameSetGetRoundTrip(t *testing.T) {
	f := NewFrame(days(2))
	f.Set("Revenue", 0, wbrvalue.Of(1))
	f.Set("Revenue", 1, wbrvalue.Of(2))

	v, ok := f.Get("Revenue", 0).Float64()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.False(t, f.HasColumn("Missing"))
	assert.True(t, f.HasColumn("Revenue"))
}

func TestFrameGetMissingColumnIsNull(t *testing.T) {
	f := NewFrame(days(2))
	assert.False(t, f.Get("Missing", 0).Valid)
}

func TestFrameColumnAllocatesAllNull(t *testing.T) {
	f := NewFrame(days(3))
	col := f.Column("New")
	assert.Len(t, col, 3)
	for _, v := range col {
		assert.False(t, v.Valid)
	}
}

func TestBoxTotalsSetGetRoundTrip(t *testing.T) {
	axis := []string{"LastWk", "WoW", "YoYWk"}
	b := NewBoxTotals(axis)
	b.Set("Revenue", 0, wbrvalue.Of(70))

	v, ok := b.Get("Revenue", 0).Float64()
	require.True(t, ok)
	assert.Equal(t, 70.0, v)
	assert.Equal(t, 3, b.Len())
}

func TestPeriodSummarySetGetRoundTrip(t *testing.T) {
	p := NewPeriodSummary(10)
	p.Set("Revenue", 4, wbrvalue.Of(310))

	v, ok := p.Get("Revenue", 4).Float64()
	require.True(t, ok)
	assert.Equal(t, 310.0, v)

	col := p.Column("Other")
	assert.Len(t, col, 10)
}
