package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExchangeRateWalkBounds tests that walked rates stay inside the volatility band
func TestExchangeRateWalkBounds(t *testing.T) {
	rates := DefaultRules2025().RateTable()
	vol := dec("0.15")

	walk := ExchangeRateWalk(rates, nil, 200, vol, newRand(7))
	require.Len(t, walk, 200)
	assert.Equal(t, rates, walk[0], "first period uses the starting rates")

	moved := false
	for i, table := range walk {
		base, ok := table.Rate("USD")
		require.True(t, ok)
		assertDecimal(t, dec("1"), base, "base currency moved in period %d", i)

		for _, code := range rates.Codes() {
			r0, _ := rates.Rate(code)
			r, _ := table.Rate(code)
			lower := r0.Mul(dec("0.55"))
			upper := r0.Mul(dec("1.45"))
			assert.True(t, r.GreaterThanOrEqual(lower) && r.LessThanOrEqual(upper),
				"%s in period %d: %s outside [%s, %s]", code, i, r, lower, upper)
			if !r.Equal(r0) {
				moved = true
			}
		}
	}
	assert.True(t, moved, "a volatile walk should move some rate")
}

func TestExchangeRateWalkDeterministic(t *testing.T) {
	rates := DefaultRules2025().RateTable()

	a := ExchangeRateWalk(rates, []string{"ZWG", "ZAR"}, 10, dec("0.05"), newRand(99))
	b := ExchangeRateWalk(rates, []string{"ZAR", "ZWG"}, 10, dec("0.05"), newRand(99))
	for i := range a {
		for _, code := range []string{"ZWG", "ZAR", "GBP"} {
			ra, _ := a[i].Rate(code)
			rb, _ := b[i].Rate(code)
			assertDecimal(t, ra, rb, "%s period %d", code, i)
		}
	}

	// Unlisted currencies never move
	gbp0, _ := rates.Rate("GBP")
	gbp9, _ := a[9].Rate("GBP")
	assertDecimal(t, gbp0, gbp9)
}

func TestExchangeRateWalkZeroVolatility(t *testing.T) {
	rates := DefaultRules2025().RateTable()
	walk := ExchangeRateWalk(rates, nil, 5, dec("0"), newRand(1))
	for _, table := range walk {
		for _, code := range rates.Codes() {
			r0, _ := rates.Rate(code)
			r, _ := table.Rate(code)
			assertDecimal(t, r0, r)
		}
	}
	assert.Nil(t, ExchangeRateWalk(rates, nil, 0, dec("0.1"), newRand(1)))
}
