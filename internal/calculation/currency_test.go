package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	cc := NewCurrencyConverter(DefaultRules2025().RateTable(), nil)

	tests := []struct {
		name     string
		amount   string
		from     string
		to       string
		expected string
	}{
		{"Base to foreign", "100", "USD", "ZAR", "1850"},
		{"Foreign to base", "1850", "ZAR", "USD", "100"},
		{"Same currency", "42.42", "ZWG", "ZWG", "42.42"},
		{"Case insensitive codes", "10", "usd", "zwg", "268"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cc.Convert(dec(tt.amount), tt.from, tt.to)
			require.NoError(t, err)
			assertDecimal(t, dec(tt.expected), got)
		})
	}
}

// TestConvertRoundTrip tests that converting there and back returns the original amount
func TestConvertRoundTrip(t *testing.T) {
	rates := DefaultRules2025().RateTable()
	cc := NewCurrencyConverter(rates, nil)
	amount := dec("12345.67")

	for _, a := range rates.Codes() {
		for _, b := range rates.Codes() {
			there, err := cc.Convert(amount, a, b)
			require.NoError(t, err)
			back, err := cc.Convert(there, b, a)
			require.NoError(t, err)
			assert.InDelta(t, amount.InexactFloat64(), back.InexactFloat64(), 1e-9, "%s -> %s -> %s", a, b, a)
		}
	}
}

// TestConvertUnknownCurrency tests the identity fallback for codes missing from the table
func TestConvertUnknownCurrency(t *testing.T) {
	cc := NewCurrencyConverter(DefaultRules2025().RateTable(), nil)

	got, err := cc.Convert(dec("100"), "XYZ", "USD")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	assertDecimal(t, dec("100"), got)

	got, err = cc.ToBase(dec("75"), "ABC")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	assertDecimal(t, dec("75"), got)
}

func TestExchangeGainLoss(t *testing.T) {
	tests := []struct {
		name     string
		opening  string
		closing  string
		openRate string
		closRate string
		expected string
	}{
		{"Foreign currency weakens", "1000", "1000", "10", "20", "-50"},
		{"Foreign currency strengthens", "1000", "1000", "20", "10", "50"},
		{"No movement", "500", "500", "18.5", "18.5", "0"},
		{"Balance grows at fixed rate", "100", "300", "2", "2", "100"},
		{"Zero rate treated as identity", "100", "100", "0", "2", "-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExchangeGainLoss(dec(tt.opening), dec(tt.closing), dec(tt.openRate), dec(tt.closRate))
			assertDecimal(t, dec(tt.expected), got)
		})
	}
}

func TestRound(t *testing.T) {
	cc := NewCurrencyConverter(DefaultRules2025().RateTable(), nil)
	assertDecimal(t, dec("10.13"), cc.Round(dec("10.125"), "USD"))
	assertDecimal(t, dec("3.14"), cc.Round(dec("3.14159"), "unknown"))
}
