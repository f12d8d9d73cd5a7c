package wbrvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmeticPropagatesNull(t *testing.T) {
	five := Of(5)
	cases := []struct {
		name string
		fn   func(a, b Value) Value
	}{
		{"Add", Add},
		{"Sub", Sub},
		{"Mul", Mul},
		{"Div", Div},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.False(t, c.fn(five, Null).Valid)
			assert.False(t, c.fn(Null, five).Valid)
		})
	}
}

func TestDivByZeroIsNull(t *testing.T) {
	got := Div(Of(10), Of(0))
	assert.False(t, got.Valid)
}

func TestDivHappyPath(t *testing.T) {
	got := Div(Of(9), Of(3))
	f, ok := got.Float64()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
}

func TestSumPropagatesAnyNull(t *testing.T) {
	vs := []Value{Of(1), Null, Of(2)}
	assert.False(t, Sum(vs).Valid)
}

func TestSumAllPresent(t *testing.T) {
	got := Sum([]Value{Of(1), Of(2), Of(3)})
	f, ok := got.Float64()
	assert.True(t, ok)
	assert.Equal(t, 6.0, f)
}

func TestMeanIgnoresNulls(t *testing.T) {
	got := Mean([]Value{Of(2), Null, Of(4)})
	f, ok := got.Float64()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
}

func TestFirstAndLast(t *testing.T) {
	vs := []Value{Null, Of(1), Of(2), Null}
	f, _ := First(vs).Float64()
	assert.Equal(t, 1.0, f)
	l, _ := Last(vs).Float64()
	assert.Equal(t, 2.0, l)
}

func TestFirstAllNullIsNull(t *testing.T) {
	assert.False(t, First([]Value{Null, Null}).Valid)
	assert.False(t, Last([]Value{Null, Null}).Valid)
}

func TestZeroToNull(t *testing.T) {
	assert.False(t, Of(0).ZeroToNull().Valid)
	f, ok := Of(1).ZeroToNull().Float64()
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)
}

func TestOrZero(t *testing.T) {
	f, ok := Null.OrZero().Float64()
	assert.True(t, ok)
	assert.Equal(t, 0.0, f)
}

func TestIsZero(t *testing.T) {
	assert.True(t, Of(0).IsZero())
	assert.False(t, Of(1).IsZero())
	assert.False(t, Null.IsZero())
}
