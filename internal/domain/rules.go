package domain

import (
	"github.com/shopspring/decimal"
)

// AssetCategory identifies the statutory capital allowance class of an asset
type AssetCategory string

const (
	CategoryMotorVehicles       AssetCategory = "motor_vehicles"
	CategoryMoveableAssets      AssetCategory = "moveable_assets"
	CategoryCommercialBuildings AssetCategory = "commercial_buildings"
	CategoryIndustrialBuildings AssetCategory = "industrial_buildings"
	CategoryLeaseImprovements   AssetCategory = "lease_improvements"
	CategoryITEquipment         AssetCategory = "it_equipment"
)

// AssetCategories lists every recognised category in display order.
var AssetCategories = []AssetCategory{
	CategoryMotorVehicles,
	CategoryMoveableAssets,
	CategoryCommercialBuildings,
	CategoryIndustrialBuildings,
	CategoryLeaseImprovements,
	CategoryITEquipment,
}

// Valid reports whether the category is one of the fixed enumeration.
func (c AssetCategory) Valid() bool {
	for _, known := range AssetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// AllowanceRate holds the three statutory rates for a category
type AllowanceRate struct {
	Special     decimal.Decimal `yaml:"special" json:"special"`
	Accelerated decimal.Decimal `yaml:"accelerated" json:"accelerated"`
	WearTear    decimal.Decimal `yaml:"wear_tear" json:"wear_tear"`
}

// FirstYearRate is the one-time claim rate in the year of acquisition.
func (r AllowanceRate) FirstYearRate() decimal.Decimal {
	return decimal.Max(r.Special, r.Accelerated)
}

// TaxBracket is one band of a progressive table. A zero Max on the last band means unbounded.
// Deduct is the cumulative marginal tax at the band's lower bound.
type TaxBracket struct {
	Min    decimal.Decimal `yaml:"min" json:"min"`
	Max    decimal.Decimal `yaml:"max" json:"max"`
	Rate   decimal.Decimal `yaml:"rate" json:"rate"`
	Deduct decimal.Decimal `yaml:"deduct" json:"deduct"`
}

// Unbounded reports whether the band has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.Max.IsZero()
}

// Contains reports whether amount falls inside [Min, Max].
func (b TaxBracket) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.Min) {
		return false
	}
	return b.Unbounded() || amount.LessThanOrEqual(b.Max)
}

// BracketTable is an ordered, contiguous set of bands covering [0, ∞)
type BracketTable []TaxBracket

// NSSAConfig configures the National Social Security Authority contribution
type NSSAConfig struct {
	EmployeeRate        decimal.Decimal `yaml:"employee_rate" json:"employee_rate"`
	EmployerRate        decimal.Decimal `yaml:"employer_rate" json:"employer_rate"`
	MonthlyInsurableCap decimal.Decimal `yaml:"monthly_insurable_cap" json:"monthly_insurable_cap"`
	ContributionCap     decimal.Decimal `yaml:"contribution_cap" json:"contribution_cap"`
}

// TaxRules is the complete rule set for one tax year. It is read-only once built
// and is passed explicitly to every calculator.
type TaxRules struct {
	Year                  int                             `yaml:"year" json:"year"`
	BaseCurrency          string                          `yaml:"base_currency" json:"base_currency"`
	CorporateRate         decimal.Decimal                 `yaml:"corporate_rate" json:"corporate_rate"`
	LevyRate              decimal.Decimal                 `yaml:"levy_rate" json:"levy_rate"`
	VATRate               decimal.Decimal                 `yaml:"vat_rate" json:"vat_rate"`
	NSSA                  NSSAConfig                      `yaml:"nssa" json:"nssa"`
	BonusTaxFreeThreshold decimal.Decimal                 `yaml:"bonus_tax_free_threshold" json:"bonus_tax_free_threshold"`
	ZimdefRate            decimal.Decimal                 `yaml:"zimdef_rate" json:"zimdef_rate"`
	MaxEmployerLevyRate   decimal.Decimal                 `yaml:"max_employer_levy_rate" json:"max_employer_levy_rate"`
	AllowanceRates        map[AssetCategory]AllowanceRate `yaml:"allowance_rates" json:"allowance_rates"`
	PAYEBrackets          BracketTable                    `yaml:"paye_brackets" json:"paye_brackets"`
	CorporateBrackets     BracketTable                    `yaml:"corporate_brackets,omitempty" json:"corporate_brackets,omitempty"`
	Currencies            []Currency                      `yaml:"currencies" json:"currencies"`
	CapAllowancesAtCost   bool                            `yaml:"cap_allowances_at_cost" json:"cap_allowances_at_cost"`

	// ProrateSubAnnualPeriods treats base revenue, base expenses and allowance rates as
	// annual figures split evenly over quarterly or monthly periods, with growth
	// compounding once per tax year. Off: every period is a full compounding step and
	// carries the whole base amount and allowance.
	ProrateSubAnnualPeriods bool `yaml:"prorate_sub_annual_periods" json:"prorate_sub_annual_periods"`

	// Volatility per named exchange-rate scenario (e.g. stable, moderate, volatile)
	ExchangeRateScenarios map[string]decimal.Decimal `yaml:"exchange_rate_scenarios" json:"exchange_rate_scenarios"`
}

// RateTable builds the currency lookup for these rules.
func (r TaxRules) RateTable() RateTable {
	return NewRateTable(r.BaseCurrency, r.Currencies)
}

// Volatility returns the configured volatility for a named exchange-rate scenario, or zero.
func (r TaxRules) Volatility(scenario string) decimal.Decimal {
	if v, ok := r.ExchangeRateScenarios[scenario]; ok {
		return v
	}
	return decimal.Zero
}
