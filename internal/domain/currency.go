package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is immutable reference data for one currency. RateToBase is the number of
// units of this currency per one unit of the base currency.
type Currency struct {
	Code                        string          `yaml:"code" json:"code"`
	Symbol                      string          `yaml:"symbol" json:"symbol"`
	DecimalPlaces               int32           `yaml:"decimal_places" json:"decimal_places"`
	RateToBase                  decimal.Decimal `yaml:"rate_to_base" json:"rate_to_base"`
	IsBase                      bool            `yaml:"is_base" json:"is_base"`
	RequiresWithholding         bool            `yaml:"requires_withholding" json:"requires_withholding"`
	RequiresInflationAdjustment bool            `yaml:"requires_inflation_adjustment" json:"requires_inflation_adjustment"`
	ExchangeLossNonDeductible   bool            `yaml:"exchange_loss_non_deductible" json:"exchange_loss_non_deductible"`
}

// RateTable is a read-only lookup of currencies by code. Mutating helpers return new tables.
type RateTable struct {
	base       string
	currencies map[string]Currency
}

// NewRateTable indexes the given currencies. Codes are matched case-insensitively.
func NewRateTable(base string, currencies []Currency) RateTable {
	rt := RateTable{
		base:       strings.ToUpper(base),
		currencies: make(map[string]Currency, len(currencies)),
	}
	for _, c := range currencies {
		code := strings.ToUpper(c.Code)
		c.Code = code
		if code == rt.base {
			c.IsBase = true
			c.RateToBase = decimal.NewFromInt(1)
		}
		rt.currencies[code] = c
	}
	return rt
}

// BaseCode returns the base currency code.
func (rt RateTable) BaseCode() string { return rt.base }

// Currency looks up a currency by code.
func (rt RateTable) Currency(code string) (Currency, bool) {
	c, ok := rt.currencies[strings.ToUpper(code)]
	return c, ok
}

// Rate returns the rate to base for a code.
func (rt RateTable) Rate(code string) (decimal.Decimal, bool) {
	c, ok := rt.Currency(code)
	if !ok {
		return decimal.Zero, false
	}
	return c.RateToBase, true
}

// Codes returns all currency codes sorted alphabetically.
func (rt RateTable) Codes() []string {
	codes := make([]string, 0, len(rt.currencies))
	for code := range rt.currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// WithRate returns a copy of the table with one currency's rate replaced.
// The base currency rate cannot be changed.
func (rt RateTable) WithRate(code string, rate decimal.Decimal) RateTable {
	out := RateTable{base: rt.base, currencies: make(map[string]Currency, len(rt.currencies))}
	for k, v := range rt.currencies {
		out.currencies[k] = v
	}
	code = strings.ToUpper(code)
	if c, ok := out.currencies[code]; ok && !c.IsBase {
		c.RateToBase = rate
		out.currencies[code] = c
	}
	return out
}

// Len returns the number of currencies in the table.
func (rt RateTable) Len() int { return len(rt.currencies) }
