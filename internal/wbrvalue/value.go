// Package wbrvalue defines the nullable numeric type used throughout the
// WBR engine. A metric day, week, or month can be legitimately absent (no
// observation, a filtered-out group, a guarded partial period) and that
// absence must propagate through arithmetic instead of silently becoming
// zero.
package wbrvalue

import "github.com/shopspring/decimal"

// Value is a decimal number with an explicit presence bit. A zero Value
// (Valid == false) represents "no data" and stands in for the NaN/None
// sentinel used by the reference implementation this engine is modeled on.
type Value struct {
	D     decimal.Decimal
	Valid bool
}

// Null is the canonical absent value.
var Null = Value{}

// Of wraps a float64 as a valid Value.
func Of(f float64) Value {
	return Value{D: decimal.NewFromFloat(f), Valid: true}
}

// OfDecimal wraps a decimal.Decimal as a valid Value.
func OfDecimal(d decimal.Decimal) Value {
	return Value{D: d, Valid: true}
}

// Float64 returns the underlying float and whether the value is present.
func (v Value) Float64() (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	f, _ := v.D.Float64()
	return f, true
}

// IsZero reports whether a present value equals zero. A null value is not zero.
func (v Value) IsZero() bool {
	return v.Valid && v.D.IsZero()
}

// ZeroToNull turns a present zero into Null, the guard used before computing
// ratios so that division by a reported zero surfaces as "no data" rather
// than +/-Inf.
func (v Value) ZeroToNull() Value {
	if v.Valid && v.D.IsZero() {
		return Null
	}
	return v
}

// OrZero substitutes 0 for a null value. Used only by the sum/difference
// legs of the function-metric evaluator, never by divide/product — see
// Add, Sub and the engine package for the asymmetry this preserves.
func (v Value) OrZero() Value {
	if !v.Valid {
		return Of(0)
	}
	return v
}

// Add returns a+b. Null propagates: if either operand is null, the result
// is null (skipna=false aggregation semantics).
func Add(a, b Value) Value {
	if !a.Valid || !b.Valid {
		return Null
	}
	return OfDecimal(a.D.Add(b.D))
}

// Sub returns a-b with the same null-propagation rule as Add.
func Sub(a, b Value) Value {
	if !a.Valid || !b.Valid {
		return Null
	}
	return OfDecimal(a.D.Sub(b.D))
}

// Mul returns a*b with the same null-propagation rule as Add.
func Mul(a, b Value) Value {
	if !a.Valid || !b.Valid {
		return Null
	}
	return OfDecimal(a.D.Mul(b.D))
}

// Div returns a/b. Null propagates, and a zero denominator also yields
// Null rather than an infinite result.
func Div(a, b Value) Value {
	if !a.Valid || !b.Valid || b.D.IsZero() {
		return Null
	}
	return OfDecimal(a.D.Div(b.D))
}

// Sum adds a slice of Values, propagating null if any element is null —
// the "skipna=false" rule spec.md requires for the sum aggregation.
func Sum(vs []Value) Value {
	acc := Of(0)
	for _, v := range vs {
		acc = Add(acc, v)
		if !acc.Valid {
			return Null
		}
	}
	return acc
}

// Mean averages the non-null elements of vs, ignoring nulls. Returns Null
// if every element is null.
func Mean(vs []Value) Value {
	sum := decimal.Zero
	count := 0
	for _, v := range vs {
		if v.Valid {
			sum = sum.Add(v.D)
			count++
		}
	}
	if count == 0 {
		return Null
	}
	return OfDecimal(sum.Div(decimal.NewFromInt(int64(count))))
}

// First returns the first non-null element of vs, or Null if none exist.
func First(vs []Value) Value {
	for _, v := range vs {
		if v.Valid {
			return v
		}
	}
	return Null
}

// Last returns the last non-null element of vs, or Null if none exist.
func Last(vs []Value) Value {
	for i := len(vs) - 1; i >= 0; i-- {
		if vs[i].Valid {
			return vs[i]
		}
	}
	return Null
}
