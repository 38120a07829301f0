package domain

import (
	"github.com/shopspring/decimal"
)

// CompanyProfile holds the base figures every scenario grows from, in base currency.
// Revenue and expenses are per-period amounts, or annual amounts when the rules
// prorate sub-annual periods. The two readings agree for annual periods.
type CompanyProfile struct {
	Name            string          `yaml:"name" json:"name"`
	BaseRevenue     decimal.Decimal `yaml:"base_revenue" json:"base_revenue"`
	BaseExpenses    decimal.Decimal `yaml:"base_expenses" json:"base_expenses"`
	OpeningLosses   decimal.Decimal `yaml:"opening_losses" json:"opening_losses"`
	StartYear       int             `yaml:"start_year" json:"start_year"`
	PeriodType      PeriodType      `yaml:"period_type" json:"period_type"`
	PeriodCount     int             `yaml:"period_count" json:"period_count"`
	ReportingCode   string          `yaml:"reporting_currency" json:"reporting_currency"`
	DefaultCurrency CurrencyData    `yaml:"currency_data,omitempty" json:"currency_data,omitempty"`
}

// PeriodProjection is the projected line for one period
type PeriodProjection struct {
	PeriodID         string                     `json:"period_id"`
	Label            string                     `json:"label"`
	Year             int                        `json:"year"`
	Sequence         int                        `json:"sequence"`
	Revenue          decimal.Decimal            `json:"revenue"`
	Expenses         decimal.Decimal            `json:"expenses"`
	AccountingProfit decimal.Decimal            `json:"accounting_profit"`
	ExchangeRates    map[string]decimal.Decimal `json:"exchange_rates,omitempty"`
	Result           TaxResult                  `json:"result"`
	AfterTaxProfit   decimal.Decimal            `json:"after_tax_profit"`
	Warnings         []string                   `json:"warnings,omitempty"`
}

// ScenarioSummary condenses one scenario's projection
type ScenarioSummary struct {
	ScenarioID           string             `json:"scenario_id"`
	Name                 string             `json:"name"`
	Type                 ScenarioType       `json:"type"`
	IsBase               bool               `json:"is_base"`
	TotalRevenue         decimal.Decimal    `json:"total_revenue"`
	TotalExpenses        decimal.Decimal    `json:"total_expenses"`
	TotalProfit          decimal.Decimal    `json:"total_profit"`
	TotalTaxableIncome   decimal.Decimal    `json:"total_taxable_income"`
	TotalTax             decimal.Decimal    `json:"total_tax"`
	TotalAfterTax        decimal.Decimal    `json:"total_after_tax"`
	AverageEffectiveRate decimal.Decimal    `json:"average_effective_rate"`
	ClosingLosses        decimal.Decimal    `json:"closing_losses"`
	TotalAllowances      decimal.Decimal    `json:"total_allowances"`
	Periods              []PeriodProjection `json:"periods"`
	AssetSchedule        []AssetAllowance   `json:"asset_schedule,omitempty"`
	ClosingAssets        []Asset            `json:"closing_assets,omitempty"`
	Scenario             Scenario           `json:"-"`
}

// ScenarioComparison ranks scenarios against the base
type ScenarioComparison struct {
	BaseScenario          string          `json:"base_scenario"`
	LowestTaxScenario     string          `json:"lowest_tax_scenario"`
	HighestProfitScenario string          `json:"highest_profit_scenario"`
	TaxSavingVsBase       decimal.Decimal `json:"tax_saving_vs_base"`
	ProfitGainVsBase      decimal.Decimal `json:"profit_gain_vs_base"`
	Considerations        []string        `json:"considerations"`
}

// ProjectionReport is the complete output of a multi-scenario run
type ProjectionReport struct {
	Company      string             `json:"company"`
	BaseCurrency string             `json:"base_currency"`
	TaxYear      int                `json:"tax_year"`
	Scenarios    []ScenarioSummary  `json:"scenarios"`
	Comparison   ScenarioComparison `json:"comparison"`
	Assumptions  []string           `json:"assumptions"`
}
