package output

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
	money "github.com/zimtax/taxplanner/pkg/decimal"
)

var (
	// ErrUnsupportedFormat is returned for a format name with no registered formatter
	ErrUnsupportedFormat = errors.New("unsupported report format")
	// ErrMissingSection is returned when a formatter needs a report section the run did not produce
	ErrMissingSection = errors.New("report section not available")
)

// FormatCurrency formats an amount in the given currency with thousands separators,
// falling back to the currency code when no symbol is configured.
func FormatCurrency(amount decimal.Decimal, cur domain.Currency) string {
	symbol := cur.Symbol
	if symbol == "" && cur.Code != "" {
		symbol = cur.Code
	}
	places := cur.DecimalPlaces
	if places == 0 && cur.Code == "" {
		places = 2
	}
	return money.NewMoneyFromDecimal(amount).Format(symbol, places)
}

// FormatPercentage formats a percentage value with 2 decimals.
func FormatPercentage(pct decimal.Decimal) string { return money.FormatPercent(pct, 2) }

// FormatRate formats a fractional rate such as 0.245 as "24.50%".
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

// fixed renders an amount for machine-readable output, rounded to the currency's places.
func fixed(amount decimal.Decimal, cur domain.Currency) string {
	places := cur.DecimalPlaces
	if places == 0 && cur.Code == "" {
		places = 2
	}
	return amount.StringFixed(places)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

var decimalHundred = decimal.NewFromInt(100)
