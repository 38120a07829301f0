package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// CurrencyConverter converts amounts through the base currency as pivot
type CurrencyConverter struct {
	Rates  domain.RateTable
	Logger Logger
}

// NewCurrencyConverter creates a converter over a rate table
func NewCurrencyConverter(rates domain.RateTable, logger Logger) *CurrencyConverter {
	return &CurrencyConverter{Rates: rates, Logger: orNop(logger)}
}

// Convert converts amount from one currency to another: amount / rate(from) * rate(to).
// If either code is unknown (or has no usable rate) the amount is returned unchanged
// together with ErrUnknownCurrency; callers may ignore the error and carry on.
func (cc *CurrencyConverter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromRate, ok := cc.usableRate(from)
	if !ok {
		cc.Logger.Warnf("currency conversion skipped: %q not in rate table", from)
		return amount, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	toRate, ok := cc.usableRate(to)
	if !ok {
		cc.Logger.Warnf("currency conversion skipped: %q not in rate table", to)
		return amount, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}
	if fromRate.Equal(toRate) {
		return amount, nil
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

// ToBase converts amount into the configured base currency.
func (cc *CurrencyConverter) ToBase(amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return cc.Convert(amount, from, cc.Rates.BaseCode())
}

// ExchangeGainLoss is the change in base-currency value of a foreign balance between two
// rates: closing/closingRate - opening/openingRate. Positive is a gain.
// A non-positive rate is treated as 1 so the result stays defined.
func ExchangeGainLoss(openingBalance, closingBalance, openingRate, closingRate decimal.Decimal) decimal.Decimal {
	if !openingRate.IsPositive() {
		openingRate = decimal.NewFromInt(1)
	}
	if !closingRate.IsPositive() {
		closingRate = decimal.NewFromInt(1)
	}
	return closingBalance.Div(closingRate).Sub(openingBalance.Div(openingRate))
}

// ExchangeGainLoss applies the package-level formula using the converter's conventions.
func (cc *CurrencyConverter) ExchangeGainLoss(openingBalance, closingBalance, openingRate, closingRate decimal.Decimal) decimal.Decimal {
	return ExchangeGainLoss(openingBalance, closingBalance, openingRate, closingRate)
}

// Round rounds amount to the currency's decimal places. Unknown codes round to 2 places.
func (cc *CurrencyConverter) Round(amount decimal.Decimal, code string) decimal.Decimal {
	if c, ok := cc.Rates.Currency(code); ok {
		return amount.Round(c.DecimalPlaces)
	}
	return amount.Round(2)
}

func (cc *CurrencyConverter) usableRate(code string) (decimal.Decimal, bool) {
	rate, ok := cc.Rates.Rate(code)
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}
