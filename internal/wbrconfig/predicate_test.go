package wbrconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePredicateSimpleComparison(t *testing.T) {
	p, err := ParsePredicate(`Region == 'US'`)
	require.NoError(t, err)

	ok, err := p.Eval(map[string]interface{}{"Region": "US"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Eval(map[string]interface{}{"Region": "EU"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParsePredicateNumericComparison(t *testing.T) {
	p, err := ParsePredicate(`Tier >= 2`)
	require.NoError(t, err)

	ok, err := p.Eval(map[string]interface{}{"Tier": float64(3)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Eval(map[string]interface{}{"Tier": float64(1)})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParsePredicateAndOr(t *testing.T) {
	p, err := ParsePredicate(`Region == 'US' and (Tier == 'Pro' or Tier == 'Enterprise')`)
	require.NoError(t, err)

	cases := []struct {
		row  map[string]interface{}
		want bool
	}{
		{map[string]interface{}{"Region": "US", "Tier": "Pro"}, true},
		{map[string]interface{}{"Region": "US", "Tier": "Enterprise"}, true},
		{map[string]interface{}{"Region": "US", "Tier": "Free"}, false},
		{map[string]interface{}{"Region": "EU", "Tier": "Pro"}, false},
	}
	for _, c := range cases {
		ok, err := p.Eval(c.row)
		require.NoError(t, err)
		assert.Equal(t, c.want, ok)
	}
}

func TestParsePredicateUnknownColumnErrors(t *testing.T) {
	p, err := ParsePredicate(`Missing == 'x'`)
	require.NoError(t, err)

	_, err = p.Eval(map[string]interface{}{"Region": "US"})
	assert.Error(t, err)
}

func TestParsePredicateMalformedExpression(t *testing.T) {
	_, err := ParsePredicate(`Region ==`)
	assert.Error(t, err)
}

func TestParsePredicateNotEquals(t *testing.T) {
	p, err := ParsePredicate(`Tier != 'Free'`)
	require.NoError(t, err)

	ok, err := p.Eval(map[string]interface{}{"Tier": "Pro"})
	require.NoError(t, err)
	assert.True(t, ok)
}
