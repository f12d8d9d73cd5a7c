package wbrengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

func TestAggregateDispatchesPerFunction(t *testing.T) {
	vs := []wbrvalue.Value{wbrvalue.Of(1), wbrvalue.Of(2), wbrvalue.Of(3)}

	sum, _ := aggregate(wbrconfig.AggSum, vs).Float64()
	assert.Equal(t, 6.0, sum)

	mean, _ := aggregate(wbrconfig.AggMean, vs).Float64()
	assert.Equal(t, 2.0, mean)

	first, _ := aggregate(wbrconfig.AggFirst, vs).Float64()
	assert.Equal(t, 1.0, first)

	last, _ := aggregate(wbrconfig.AggLast, vs).Float64()
	assert.Equal(t, 3.0, last)

	assert.False(t, aggregate(wbrconfig.AggFunc("bogus"), vs).Valid)
}

func TestDailySeriesValuesInRangeFillsAbsentDaysWithNull(t *testing.T) {
	d1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	ds := dailySeries{d1: wbrvalue.Of(10), d3: wbrvalue.Of(30)}

	vals := ds.valuesInRange(d1, d3)
	assert.Len(t, vals, 3)
	v0, _ := vals[0].Float64()
	assert.Equal(t, 10.0, v0)
	assert.False(t, vals[1].Valid)
	v2, _ := vals[2].Float64()
	assert.Equal(t, 30.0, v2)
}

func TestDailySeriesNonNullDayCount(t *testing.T) {
	d1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	ds := dailySeries{d1: wbrvalue.Of(10), d2: wbrvalue.Null}

	assert.Equal(t, 1, ds.nonNullDayCount(d1, d3))
}
