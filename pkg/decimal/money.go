package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return m.RoundTo(2)
}

// RoundTo rounds to a currency's number of decimal places, half away from zero
func (m Money) RoundTo(places int32) Money {
	return Money{m.Decimal.Round(places)}
}

// PerPeriod splits an annual amount evenly over periodsPerYear periods
func (m Money) PerPeriod(periodsPerYear int) Money {
	if periodsPerYear <= 1 {
		return m
	}
	return Money{m.Decimal.Div(decimal.NewFromInt(int64(periodsPerYear)))}
}

// Annualize scales a per-period amount up to a full year
func (m Money) Annualize(periodsPerYear int) Money {
	if periodsPerYear <= 1 {
		return m
	}
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(periodsPerYear)))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount fixed to two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount with a currency symbol and thousands separators,
// e.g. "$1,234.50" or "-ZiG 12,000.00".
func (m Money) Format(symbol string, places int32) string {
	s := m.Decimal.Abs().StringFixed(places)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if m.Decimal.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	if len(symbol) > 1 {
		b.WriteByte(' ')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatPercent renders a percentage value such as 25.75 as "25.75%"
func FormatPercent(pct decimal.Decimal, places int32) string {
	return pct.StringFixed(places) + "%"
}
