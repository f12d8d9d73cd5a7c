package wbrengine

import (
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrtable"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

// Compare implements the comparison engine from spec.md §4.5: a bps metric
// compares by subtraction, a pct_change metric by ratio. When scale is
// true, the result is multiplied by the metric's scaling constant — this is
// only appropriate for box-total WoW/YoY rows. Per-week and per-month chart
// deltas pass scale=false and emit the raw, unscaled delta.
func Compare(cy, py wbrvalue.Value, method wbrconfig.ComparisonMethod, scale bool) wbrvalue.Value {
	if !cy.Valid || !py.Valid {
		return wbrvalue.Null
	}
	switch method {
	case wbrconfig.ComparisonBPS:
		delta := wbrvalue.Sub(cy, py)
		if scale {
			delta = wbrvalue.Mul(delta, wbrvalue.Of(BPSMultiplier))
		}
		return delta
	default: // pct_change
		denom := py.ZeroToNull()
		ratio := wbrvalue.Sub(wbrvalue.Div(cy, denom), wbrvalue.Of(1))
		if scale {
			ratio = wbrvalue.Mul(ratio, wbrvalue.Of(PCTMultiplier))
		}
		return ratio
	}
}

// AppendWoW appends a week-over-week raw-delta column ("<metric>__WOW") to
// a CY weekly Frame: row i compares row i against row i-1 and is null for
// the first row, which has no prior week.
func AppendWoW(frame *wbrtable.Frame, metric string, method wbrconfig.ComparisonMethod) {
	src := frame.Column(metric)
	dst := frame.Column(metric + "__WOW")
	for i := range src {
		if i == 0 {
			dst[i] = wbrvalue.Null
			continue
		}
		dst[i] = Compare(src[i], src[i-1], method, false)
	}
}

// AppendMoM appends a month-over-month raw-delta column ("<metric>__MOM")
// to a CY monthly Frame, comparing each row against the prior row.
func AppendMoM(frame *wbrtable.Frame, metric string, method wbrconfig.ComparisonMethod) {
	src := frame.Column(metric)
	dst := frame.Column(metric + "__MOM")
	for i := range src {
		if i == 0 {
			dst[i] = wbrvalue.Null
			continue
		}
		dst[i] = Compare(src[i], src[i-1], method, false)
	}
}
