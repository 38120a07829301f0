package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodType is the granularity of a projection period
type PeriodType string

const (
	PeriodAnnual    PeriodType = "annual"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodMonthly   PeriodType = "monthly"
)

// PeriodsPerYear returns how many periods of this type make up a tax year.
// Unknown types are treated as annual.
func (pt PeriodType) PeriodsPerYear() int {
	switch pt {
	case PeriodQuarterly:
		return 4
	case PeriodMonthly:
		return 12
	default:
		return 1
	}
}

// Valid reports whether the type is recognised.
func (pt PeriodType) Valid() bool {
	return pt == PeriodAnnual || pt == PeriodQuarterly || pt == PeriodMonthly
}

// Adjustments are the reconciliation items between accounting profit and taxable
// income. Absent fields default to zero.
type Adjustments struct {
	NonDeductible       decimal.Decimal `yaml:"non_deductible,omitempty" json:"non_deductible"`
	NonTaxable          decimal.Decimal `yaml:"non_taxable,omitempty" json:"non_taxable"`
	ExchangeGainsLosses decimal.Decimal `yaml:"exchange_gains_losses,omitempty" json:"exchange_gains_losses"`
}

// CurrencyData carries the currency assumptions of one period.
// Mix weights must sum to at most 1; the remainder is held in base currency.
type CurrencyData struct {
	Mix                       map[string]decimal.Decimal `yaml:"mix,omitempty" json:"mix,omitempty"`
	ExchangeRateScenario      string                     `yaml:"exchange_rate_scenario,omitempty" json:"exchange_rate_scenario,omitempty"`
	InflationAdjustmentFactor decimal.Decimal            `yaml:"inflation_adjustment_factor,omitempty" json:"inflation_adjustment_factor,omitempty"`
	ReportingCurrency         string                     `yaml:"reporting_currency,omitempty" json:"reporting_currency,omitempty"`
}

// InflationFactor returns the adjustment factor, defaulting to 1.
func (cd CurrencyData) InflationFactor() decimal.Decimal {
	if cd.InflationAdjustmentFactor.IsZero() {
		return decimal.NewFromInt(1)
	}
	return cd.InflationAdjustmentFactor
}

// Clone returns a copy that shares no map with the receiver.
func (cd CurrencyData) Clone() CurrencyData {
	out := cd
	if cd.Mix != nil {
		out.Mix = make(map[string]decimal.Decimal, len(cd.Mix))
		for k, v := range cd.Mix {
			out.Mix[k] = v
		}
	}
	return out
}

// PeriodActuals are booked figures that replace projected revenue and expenses.
type PeriodActuals struct {
	Revenue  decimal.Decimal `yaml:"revenue" json:"revenue"`
	Expenses decimal.Decimal `yaml:"expenses" json:"expenses"`
}

// TaxResult is the corporate tax outcome for one period of one scenario
type TaxResult struct {
	AccountingProfit       decimal.Decimal `json:"accounting_profit"`
	TaxableBeforeLosses    decimal.Decimal `json:"taxable_before_losses"`
	TaxableIncome          decimal.Decimal `json:"taxable_income"`
	TaxDue                 decimal.Decimal `json:"tax_due"`
	Levy                   decimal.Decimal `json:"levy"`
	TotalTax               decimal.Decimal `json:"total_tax"`
	EffectiveRate          decimal.Decimal `json:"effective_rate"`
	LossesUtilized         decimal.Decimal `json:"losses_utilized"`
	LossesCarriedForward   decimal.Decimal `json:"losses_carried_forward"`
	CapitalAllowances      decimal.Decimal `json:"capital_allowances"`
	ExchangeAdjustment     decimal.Decimal `json:"exchange_adjustment"`
	ExchangeLossSuppressed bool            `json:"exchange_loss_suppressed"`
}

// Period is one slot of a projection
type Period struct {
	ID           string         `yaml:"id" json:"id"`
	Type         PeriodType     `yaml:"type" json:"type"`
	Year         int            `yaml:"year" json:"year"`
	Sequence     int            `yaml:"sequence" json:"sequence"`
	Label        string         `yaml:"label" json:"label"`
	Actuals      *PeriodActuals `yaml:"actuals,omitempty" json:"actuals,omitempty"`
	Adjustments  Adjustments    `yaml:"adjustments,omitempty" json:"adjustments"`
	CurrencyData CurrencyData   `yaml:"currency_data,omitempty" json:"currency_data"`
	Result       *TaxResult     `yaml:"-" json:"result,omitempty"`
}

// Clone returns a deep copy of the period.
func (p Period) Clone() Period {
	out := p
	if p.Actuals != nil {
		a := *p.Actuals
		out.Actuals = &a
	}
	if p.Result != nil {
		r := *p.Result
		out.Result = &r
	}
	out.CurrencyData = p.CurrencyData.Clone()
	return out
}

// ClonePeriods deep-copies a period list.
func ClonePeriods(periods []Period) []Period {
	if periods == nil {
		return nil
	}
	out := make([]Period, len(periods))
	for i, p := range periods {
		out[i] = p.Clone()
	}
	return out
}
