package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// CorporateTaxInput is everything one period's corporate computation needs.
// Zero values are the documented defaults for every adjustment.
type CorporateTaxInput struct {
	AccountingProfit  decimal.Decimal
	Adjustments       domain.Adjustments
	CapitalAllowances decimal.Decimal
	PreviousLosses    decimal.Decimal
	CurrencyData      domain.CurrencyData
}

// CorporateTaxCalculator reconciles accounting profit to taxable income and applies
// the corporate rate and AIDS levy.
type CorporateTaxCalculator struct {
	Rules  domain.TaxRules
	Rates  domain.RateTable
	Logger Logger

	brackets *BracketResolver
}

// NewCorporateTaxCalculator creates a calculator for one rule set
func NewCorporateTaxCalculator(rules domain.TaxRules, logger Logger) *CorporateTaxCalculator {
	c := &CorporateTaxCalculator{
		Rules:  rules,
		Rates:  rules.RateTable(),
		Logger: orNop(logger),
	}
	if len(rules.CorporateBrackets) > 0 {
		c.brackets = NewBracketResolver(rules.CorporateBrackets)
	}
	return c
}

// Calculate runs the reconciliation for one period. The steps run in a fixed order:
//
//  1. profit + non-deductible - non-taxable
//  2. prior losses offset positive income
//  3. capital allowances, floored at zero
//  4. exchange gains added; exchange losses deducted unless the reporting currency
//     marks them non-deductible
//  5. tax due, levy on tax due, total
//  6. unused losses carried forward
//
// It is total: every input, including a negative profit, produces a result.
func (c *CorporateTaxCalculator) Calculate(in CorporateTaxInput) domain.TaxResult {
	res := domain.TaxResult{
		AccountingProfit:  in.AccountingProfit,
		CapitalAllowances: in.CapitalAllowances,
	}

	taxable := in.AccountingProfit.
		Add(in.Adjustments.NonDeductible).
		Sub(in.Adjustments.NonTaxable)
	res.TaxableBeforeLosses = taxable

	previous := decimal.Max(decimal.Zero, in.PreviousLosses)
	used := decimal.Min(previous, decimal.Max(decimal.Zero, taxable))
	taxable = decimal.Max(decimal.Zero, taxable.Sub(used))
	res.LossesUtilized = used

	taxable = decimal.Max(decimal.Zero, taxable.Sub(in.CapitalAllowances))

	fx := in.Adjustments.ExchangeGainsLosses
	switch {
	case fx.IsPositive():
		res.ExchangeAdjustment = fx
	case fx.IsNegative():
		if c.lossDeductible(in.CurrencyData) {
			res.ExchangeAdjustment = fx
		} else {
			res.ExchangeLossSuppressed = true
			c.Logger.Debugf("exchange loss %s not deductible in %s", fx.StringFixed(2), c.reportingCode(in.CurrencyData))
		}
	}
	taxable = decimal.Max(decimal.Zero, taxable.Add(res.ExchangeAdjustment))
	res.TaxableIncome = taxable

	res.TaxDue = c.taxOn(taxable)
	res.Levy = res.TaxDue.Mul(c.Rules.LevyRate)
	res.TotalTax = res.TaxDue.Add(res.Levy)

	res.LossesCarriedForward = decimal.Max(decimal.Zero, previous.Sub(used))

	if taxable.IsPositive() {
		res.EffectiveRate = res.TotalTax.Div(taxable).Mul(decimal.NewFromInt(100))
	}
	return res
}

func (c *CorporateTaxCalculator) taxOn(taxable decimal.Decimal) decimal.Decimal {
	if c.brackets != nil {
		return c.brackets.Tax(taxable)
	}
	return taxable.Mul(c.Rules.CorporateRate)
}

func (c *CorporateTaxCalculator) reportingCode(cd domain.CurrencyData) string {
	if cd.ReportingCurrency != "" {
		return cd.ReportingCurrency
	}
	return c.Rates.BaseCode()
}

// lossDeductible reports whether an exchange loss may reduce taxable income.
// Unknown reporting currencies are treated as deductible.
func (c *CorporateTaxCalculator) lossDeductible(cd domain.CurrencyData) bool {
	cur, ok := c.Rates.Currency(c.reportingCode(cd))
	if !ok {
		return true
	}
	return !cur.ExchangeLossNonDeductible
}
