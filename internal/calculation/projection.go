package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// ProjectScenario runs one scenario's periods in chronological order and returns the
// per-period projection plus totals. The scenario passed in is not modified; the
// returned summary carries a new copy whose periods hold their tax results.
//
// Loss carry-forward is the only state threaded from one period to the next, so the
// periods of one scenario always run sequentially.
func (ce *CalculationEngine) ProjectScenario(ctx context.Context, company domain.CompanyProfile, assets []domain.Asset, scenario domain.Scenario, rng *rand.Rand) (domain.ScenarioSummary, error) {
	scenario = scenario.Clone()
	periods := scenario.Periods
	if len(periods) == 0 {
		periods = GeneratePeriods(company.PeriodType, company.StartYear, company.PeriodCount)
	}
	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year < periods[j].Year
		}
		return periods[i].Sequence < periods[j].Sequence
	})

	drivers := scenario.Drivers
	volatility := ce.volatility(drivers, company)
	walk := ExchangeRateWalk(ce.Rates, nil, len(periods), volatility, rng)

	allowances := make(map[string]decimal.Decimal, len(periods))
	var assetSchedule []domain.AssetAllowance
	closingAssets := domain.CloneAssets(assets)
	if !drivers.Strategies.DisableCapitalAllowances {
		allowances = ce.Allowances.Schedule(assets, periods)
		assetSchedule = flattenSchedule(assets, ce.Allowances.ScheduleByAsset(assets, periods))
		closingAssets = ce.Allowances.ApplyAllowances(assets, periods)
	}

	summary := domain.ScenarioSummary{
		ScenarioID: scenario.ID,
		Name:       scenario.Name,
		Type:       scenario.Type,
		IsBase:     scenario.IsBase,
		Periods:    make([]domain.PeriodProjection, 0, len(periods)),

		AssetSchedule: assetSchedule,
		ClosingAssets: closingAssets,
	}

	losses := decimal.Max(decimal.Zero, company.OpeningLosses)
	startYear := company.StartYear
	if len(periods) > 0 && startYear == 0 {
		startYear = periods[0].Year
	}

	for i := range periods {
		if err := ctx.Err(); err != nil {
			return domain.ScenarioSummary{}, err
		}
		p := periods[i]
		opening := walk[0]
		if i > 0 {
			opening = walk[i-1]
		}
		row := ce.projectPeriod(p, periodInputs{
			company:    company,
			drivers:    drivers,
			index:      ce.growthIndex(i, p.Year-startYear),
			rates:      walk[i],
			opening:    opening,
			allowances: allowances[p.ID],
			losses:     losses,
		})
		losses = row.Result.LossesCarriedForward

		result := row.Result
		p.Result = &result
		periods[i] = p

		summary.Periods = append(summary.Periods, row)
		summary.TotalRevenue = summary.TotalRevenue.Add(row.Revenue)
		summary.TotalExpenses = summary.TotalExpenses.Add(row.Expenses)
		summary.TotalProfit = summary.TotalProfit.Add(row.AccountingProfit)
		summary.TotalTaxableIncome = summary.TotalTaxableIncome.Add(result.TaxableIncome)
		summary.TotalTax = summary.TotalTax.Add(result.TotalTax)
		summary.TotalAfterTax = summary.TotalAfterTax.Add(row.AfterTaxProfit)
		summary.TotalAllowances = summary.TotalAllowances.Add(result.CapitalAllowances)
	}

	summary.ClosingLosses = losses
	if summary.TotalTaxableIncome.IsPositive() {
		summary.AverageEffectiveRate = summary.TotalTax.Div(summary.TotalTaxableIncome).Mul(decimal.NewFromInt(100))
	}
	scenario.Periods = periods
	summary.Scenario = scenario

	ce.Logger.Debugf("scenario %q: %d periods, total tax %s", scenario.Name, len(periods), summary.TotalTax.StringFixed(2))
	return summary, nil
}

type periodInputs struct {
	company    domain.CompanyProfile
	drivers    domain.Drivers
	index      int // compounding steps since the first period
	rates      domain.RateTable
	opening    domain.RateTable
	allowances decimal.Decimal
	losses     decimal.Decimal
}

// projectPeriod computes one period. Booked actuals replace the projected figures.
func (ce *CalculationEngine) projectPeriod(p domain.Period, in periodInputs) domain.PeriodProjection {
	row := domain.PeriodProjection{
		PeriodID: p.ID,
		Label:    p.Label,
		Year:     p.Year,
		Sequence: p.Sequence,
	}
	cd := ce.currencyData(p, in.company, in.drivers)
	adjustments := p.Adjustments

	if p.Actuals != nil {
		row.Revenue = p.Actuals.Revenue
		row.Expenses = p.Actuals.Expenses
	} else {
		revenue := in.company.BaseRevenue.Mul(growthFactor(in.drivers.RevenueGrowth, in.index))
		expenses := in.company.BaseExpenses.
			Mul(growthFactor(in.drivers.ExpenseGrowth, in.index)).
			Mul(in.drivers.Multiplier())
		if ce.Rules.ProrateSubAnnualPeriods {
			perYear := decimal.NewFromInt(int64(p.Type.PeriodsPerYear()))
			revenue = revenue.Div(perYear)
			expenses = expenses.Div(perYear)
		}

		mix := ce.normalizeMix(cd.Mix, &row)
		conv := NewCurrencyConverter(in.rates, ce.Logger)
		inflate := !in.drivers.Strategies.DisableInflationAdjustment

		var revSlices, expSlices map[string]decimal.Decimal
		row.Revenue, revSlices = ce.aggregate(revenue, mix, conv, cd, inflate, &row)
		row.Expenses, expSlices = ce.aggregate(expenses, mix, conv, cd, inflate, &row)

		fx := decimal.Zero
		for code, rev := range revSlices {
			position := rev.Sub(expSlices[code])
			openingRate, _ := in.opening.Rate(code)
			closingRate, _ := in.rates.Rate(code)
			fx = fx.Add(ExchangeGainLoss(position, position, openingRate, closingRate))
		}
		adjustments.ExchangeGainsLosses = adjustments.ExchangeGainsLosses.Add(fx)
	}

	if len(cd.Mix) > 0 {
		row.ExchangeRates = make(map[string]decimal.Decimal, len(cd.Mix))
		for code := range cd.Mix {
			if r, ok := in.rates.Rate(code); ok {
				row.ExchangeRates[code] = r
			}
		}
	}

	row.AccountingProfit = row.Revenue.Sub(row.Expenses)
	row.Result = ce.Corporate.Calculate(CorporateTaxInput{
		AccountingProfit:  row.AccountingProfit,
		Adjustments:       adjustments,
		CapitalAllowances: in.allowances,
		PreviousLosses:    in.losses,
		CurrencyData:      cd,
	})
	row.AfterTaxProfit = row.AccountingProfit.Sub(row.Result.TotalTax)
	return row
}

// aggregate splits a base-currency amount across the currency mix, books each slice
// in its own currency at the configured rate and converts it back at the period's
// walked rate. The unallocated remainder stays in base currency. It returns the base
// total and the nominal foreign amount per currency.
func (ce *CalculationEngine) aggregate(amount decimal.Decimal, mix map[string]decimal.Decimal, conv *CurrencyConverter, cd domain.CurrencyData, inflate bool, row *domain.PeriodProjection) (decimal.Decimal, map[string]decimal.Decimal) {
	base := ce.Rates.BaseCode()
	total := decimal.Zero
	allocated := decimal.Zero
	nominal := make(map[string]decimal.Decimal, len(mix))

	for _, code := range sortedCodes(mix) {
		w := mix[code]
		slice := amount.Mul(w)
		allocated = allocated.Add(w)

		cur, ok := ce.Rates.Currency(code)
		if !ok || cur.IsBase {
			if !ok {
				row.Warnings = appendOnce(row.Warnings, fmt.Sprintf("unknown currency %s kept in %s", code, base))
			}
			total = total.Add(slice)
			continue
		}
		foreign := slice.Mul(cur.RateToBase)
		nominal[code] = foreign

		converted, err := conv.ToBase(foreign, code)
		if err != nil {
			row.Warnings = appendOnce(row.Warnings, err.Error())
			converted = slice
		}
		if inflate && cur.RequiresInflationAdjustment {
			converted = converted.Mul(cd.InflationFactor())
		}
		total = total.Add(converted)
	}

	remainder := decimal.Max(decimal.Zero, decimal.NewFromInt(1).Sub(allocated))
	total = total.Add(amount.Mul(remainder))
	return total, nominal
}

// normalizeMix drops non-positive weights and scales the mix down when it sums above 1.
func (ce *CalculationEngine) normalizeMix(mix map[string]decimal.Decimal, row *domain.PeriodProjection) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(mix))
	sum := decimal.Zero
	for code, w := range mix {
		if w.IsPositive() {
			out[code] = w
			sum = sum.Add(w)
		}
	}
	one := decimal.NewFromInt(1)
	if sum.GreaterThan(one) {
		row.Warnings = append(row.Warnings, fmt.Sprintf("currency mix sums to %s; scaled to 1", sum.String()))
		for code, w := range out {
			out[code] = w.Div(sum)
		}
	}
	return out
}

// currencyData resolves a period's currency block: period values first, then the
// scenario drivers, then the company defaults.
func (ce *CalculationEngine) currencyData(p domain.Period, company domain.CompanyProfile, drivers domain.Drivers) domain.CurrencyData {
	cd := p.CurrencyData.Clone()
	def := company.DefaultCurrency
	if len(cd.Mix) == 0 {
		switch {
		case len(drivers.CurrencyMix) > 0:
			cd.Mix = drivers.Clone().CurrencyMix
		case len(def.Mix) > 0:
			cd.Mix = def.Clone().Mix
		}
	}
	if cd.ExchangeRateScenario == "" {
		cd.ExchangeRateScenario = firstNonEmpty(drivers.ExchangeRateScenario, def.ExchangeRateScenario)
	}
	if cd.InflationAdjustmentFactor.IsZero() {
		cd.InflationAdjustmentFactor = def.InflationAdjustmentFactor
	}
	if cd.ReportingCurrency == "" {
		cd.ReportingCurrency = firstNonEmpty(company.ReportingCode, def.ReportingCurrency, ce.Rates.BaseCode())
	}
	return cd
}

// volatility picks the walk volatility: an explicit driver value wins over the
// named exchange-rate scenario.
func (ce *CalculationEngine) volatility(drivers domain.Drivers, company domain.CompanyProfile) decimal.Decimal {
	if drivers.Volatility != nil {
		return *drivers.Volatility
	}
	name := firstNonEmpty(drivers.ExchangeRateScenario, company.DefaultCurrency.ExchangeRateScenario)
	return ce.Rules.Volatility(name)
}

func sortedCodes(m map[string]decimal.Decimal) []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func appendOnce(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// growthIndex is the exponent applied to growth rates for the i-th period in
// chronological order. Prorated projections compound once per tax year instead.
func (ce *CalculationEngine) growthIndex(i, yearIndex int) int {
	if ce.Rules.ProrateSubAnnualPeriods {
		return yearIndex
	}
	return i
}

// growthFactor returns (1+growth)^n, or 1 when n is not positive.
func growthFactor(growth decimal.Decimal, n int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if n <= 0 {
		return one
	}
	return one.Add(growth).Pow(decimal.NewFromInt(int64(n)))
}

// flattenSchedule lists per-asset rows in asset order
func flattenSchedule(assets []domain.Asset, byAsset map[string][]domain.AssetAllowance) []domain.AssetAllowance {
	var out []domain.AssetAllowance
	seen := make(map[string]bool, len(assets))
	for _, a := range assets {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, byAsset[a.ID]...)
	}
	return out
}
