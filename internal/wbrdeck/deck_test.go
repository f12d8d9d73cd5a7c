package wbrdeck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrengine"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

func TestPixelValueParsesSuffixAndBare(t *testing.T) {
	assert.Equal(t, 1024, pixelValue("1024px"))
	assert.Equal(t, 42, pixelValue(42))
	assert.Equal(t, -5, pixelValue("-5px"))
	assert.Equal(t, 0, pixelValue("garbage"))
	assert.Equal(t, 0, pixelValue(nil))
}

func TestValueOrNilAndBoxRowOrNAAndSixWeekCellOrBlank(t *testing.T) {
	assert.Nil(t, valueOrNil(wbrvalue.Null))
	assert.Equal(t, 5.0, valueOrNil(wbrvalue.Of(5)))

	assert.Equal(t, "N/A", boxRowOrNA(wbrvalue.Null))
	assert.Equal(t, 5.0, boxRowOrNA(wbrvalue.Of(5)))

	assert.Equal(t, " ", sixWeekCellOrBlank(wbrvalue.Null))
	assert.Equal(t, 5.0, sixWeekCellOrBlank(wbrvalue.Of(5)))
}

func TestSingleAxisRatio(t *testing.T) {
	weekly := []wbrvalue.Value{wbrvalue.Of(100)}
	withinRatio := []wbrvalue.Value{wbrvalue.Of(250)}
	outsideRatio := []wbrvalue.Value{wbrvalue.Of(500)}

	assert.True(t, singleAxisRatio(weekly, withinRatio))
	assert.False(t, singleAxisRatio(weekly, outsideRatio))
	assert.False(t, singleAxisRatio(weekly, []wbrvalue.Value{wbrvalue.Null}))
}

func TestXAxisLabelsWrapsWeekNumberAndAppendsMonths(t *testing.T) {
	months := []time.Time{
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
	}
	labels := xAxisLabels(2, months)

	require.Len(t, labels, wbrengine.NumTrailingWeeks+1+len(months))
	assert.Equal(t, "wk 49", labels[0])
	assert.Equal(t, "wk 2", labels[wbrengine.NumTrailingWeeks-1])
	assert.Equal(t, " ", labels[wbrengine.NumTrailingWeeks])
	assert.Equal(t, "Jan", labels[wbrengine.NumTrailingWeeks+1])
	assert.Equal(t, "Feb", labels[wbrengine.NumTrailingWeeks+2])
}

func TestPadAxisPlacesWeeklyInPrimaryAndMonthlyInSecondary(t *testing.T) {
	weekly := []wbrvalue.Value{wbrvalue.Of(1), wbrvalue.Of(2)}
	monthly := []wbrvalue.Value{wbrvalue.Of(10)}

	series := padAxis(weekly, monthly)
	assert.Equal(t, 1.0, series.Primary[0])
	assert.Equal(t, 2.0, series.Primary[1])
	assert.Nil(t, series.Primary[wbrengine.NumTrailingWeeks+1])
	assert.Equal(t, 10.0, series.Secondary[wbrengine.NumTrailingWeeks+1])
}

func TestBuildSectionBlock(t *testing.T) {
	cfg := &wbrconfig.Config{
		Deck: []wbrconfig.BlockSpec{
			{UIType: "section", Body: map[string]interface{}{"title": "Growth"}},
		},
	}
	res := &wbrengine.Result{}
	deck, err := Build(cfg, res)
	require.NoError(t, err)
	require.Len(t, deck.Blocks, 1)

	section, ok := deck.Blocks[0].(SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Growth", section.Title)
}

func TestBuildEmbeddedBlockRequiresSource(t *testing.T) {
	cfg := &wbrconfig.Config{
		Deck: []wbrconfig.BlockSpec{
			{UIType: "embedded_content", Body: map[string]interface{}{"title": "Dashboard"}},
		},
	}
	_, err := Build(cfg, &wbrengine.Result{})
	assert.Error(t, err)
}

func TestBuildUnknownUITypeErrors(t *testing.T) {
	cfg := &wbrconfig.Config{
		Deck: []wbrconfig.BlockSpec{{UIType: "not_a_real_block"}},
	}
	_, err := Build(cfg, &wbrengine.Result{})
	assert.Error(t, err)
}
