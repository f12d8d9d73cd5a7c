package wbrcalendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayTruncatesToMidnightUTC(t *testing.T) {
	t1 := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.FixedZone("x", 3600))
	got := Day(t1)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.UTC, got.Location())
}

func TestWeeklyAnchorsEndsOnAnchorSpacedSevenDays(t *testing.T) {
	end := date(2024, time.March, 15)
	anchors := WeeklyAnchors(end, 6)
	assert.Len(t, anchors, 6)
	assert.True(t, anchors[5].Equal(end))
	for i := 1; i < len(anchors); i++ {
		assert.Equal(t, 7*24*time.Hour, anchors[i].Sub(anchors[i-1]))
	}
}

func TestLastFullMonthAtMonthEndIsIdentity(t *testing.T) {
	end := date(2024, time.February, 29)
	assert.True(t, LastFullMonth(end).Equal(end))
}

func TestLastFullMonthMidMonthRollsBack(t *testing.T) {
	end := date(2024, time.March, 15)
	got := LastFullMonth(end)
	assert.True(t, got.Equal(date(2024, time.February, 29)))
}

func TestMonthlyAnchorsGoBackwardOneCalendarMonthEach(t *testing.T) {
	last := date(2024, time.March, 31)
	anchors := MonthlyAnchors(last, 3)
	assert.True(t, anchors[2].Equal(date(2024, time.March, 31)))
	assert.True(t, anchors[1].Equal(date(2024, time.February, 29)))
	assert.True(t, anchors[0].Equal(date(2024, time.January, 31)))
}

func TestPriorYearWeeklyIs364DaysEarlier(t *testing.T) {
	d := date(2024, time.March, 15)
	py := PriorYearWeekly(d)
	assert.Equal(t, d.Weekday(), py.Weekday())
	assert.Equal(t, 364, int(d.Sub(py).Hours()/24))
}

func TestPriorYearMonthlyLandsOnPriorYearMonthEnd(t *testing.T) {
	py := PriorYearMonthly(date(2024, time.February, 29))
	assert.True(t, py.Equal(date(2023, time.February, 28)))
}

func TestMonthAbbrevRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		abbrev string
		month  time.Month
	}{
		{"jan", time.January},
		{"DEC", time.December},
		{"Jun", time.June},
	} {
		m, ok := MonthAbbrev(tc.abbrev)
		assert.True(t, ok)
		assert.Equal(t, tc.month, m)
		assert.Equal(t, string([]rune(tc.month.String())[:3]), MonthAbbrevName(m))
	}
}

func TestMonthAbbrevUnknown(t *testing.T) {
	_, ok := MonthAbbrev("XYZ")
	assert.False(t, ok)
}

func TestFiscalYearStartMonth(t *testing.T) {
	assert.Equal(t, time.January, FiscalYearStartMonth(time.December))
	assert.Equal(t, time.August, FiscalYearStartMonth(time.July))
}

func TestFiscalYearStartBeforeStartMonthRollsToPriorYear(t *testing.T) {
	got := FiscalYearStart(date(2024, time.March, 1), time.June)
	assert.True(t, got.Equal(date(2023, time.July, 1)))
}

func TestFiscalYearStartAfterStartMonthSameYear(t *testing.T) {
	got := FiscalYearStart(date(2024, time.September, 1), time.June)
	assert.True(t, got.Equal(date(2024, time.July, 1)))
}

func TestFiscalQuarterStart(t *testing.T) {
	got := FiscalQuarterStart(date(2024, time.September, 15), time.June)
	assert.True(t, got.Equal(date(2024, time.July, 1)))
}

func TestDayRangeInclusive(t *testing.T) {
	days := DayRange(date(2024, time.January, 30), date(2024, time.February, 2))
	assert.Len(t, days, 4)
	assert.True(t, days[0].Equal(date(2024, time.January, 30)))
	assert.True(t, days[3].Equal(date(2024, time.February, 2)))
}

func TestDaysInInterval(t *testing.T) {
	assert.Equal(t, 1, DaysInInterval(date(2024, time.January, 1), date(2024, time.January, 1)))
	assert.Equal(t, 7, DaysInInterval(date(2024, time.January, 1), date(2024, time.January, 7)))
}
