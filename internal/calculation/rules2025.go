package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// DefaultRules2025 returns the Zimbabwe rule set for the 2025 tax year with USD as the
// base currency. PAYE bands are monthly.
func DefaultRules2025() domain.TaxRules {
	d := decimal.NewFromFloat
	return domain.TaxRules{
		Year:          2025,
		BaseCurrency:  "USD",
		CorporateRate: d(0.24),
		LevyRate:      d(0.03), // AIDS levy on tax due
		VATRate:       d(0.15),
		NSSA: domain.NSSAConfig{
			EmployeeRate:        d(0.045),
			EmployerRate:        d(0.045),
			MonthlyInsurableCap: decimal.NewFromInt(700),
			ContributionCap:     d(31.50),
		},
		BonusTaxFreeThreshold: decimal.NewFromInt(700),
		ZimdefRate:            d(0.01),
		MaxEmployerLevyRate:   d(0.03),
		AllowanceRates: map[domain.AssetCategory]domain.AllowanceRate{
			domain.CategoryMotorVehicles:       {Special: d(0.50), Accelerated: d(0.25), WearTear: d(0.20)},
			domain.CategoryMoveableAssets:      {Special: d(0.50), Accelerated: d(0.25), WearTear: d(0.10)},
			domain.CategoryCommercialBuildings: {Special: decimal.Zero, Accelerated: d(0.25), WearTear: d(0.025)},
			domain.CategoryIndustrialBuildings: {Special: d(0.50), Accelerated: d(0.25), WearTear: d(0.05)},
			domain.CategoryLeaseImprovements:   {Special: decimal.Zero, Accelerated: d(0.25), WearTear: d(0.025)},
			domain.CategoryITEquipment:         {Special: d(0.50), Accelerated: d(0.25), WearTear: d(0.25)},
		},
		PAYEBrackets: domain.BracketTable{
			{Min: decimal.Zero, Max: decimal.NewFromInt(100), Rate: decimal.Zero, Deduct: decimal.Zero},
			{Min: d(100.01), Max: decimal.NewFromInt(300), Rate: d(0.20), Deduct: decimal.NewFromInt(20)},
			{Min: d(300.01), Max: decimal.NewFromInt(1000), Rate: d(0.25), Deduct: decimal.NewFromInt(35)},
			{Min: d(1000.01), Max: decimal.NewFromInt(2000), Rate: d(0.30), Deduct: decimal.NewFromInt(85)},
			{Min: d(2000.01), Max: decimal.NewFromInt(3000), Rate: d(0.35), Deduct: decimal.NewFromInt(185)},
			{Min: d(3000.01), Max: decimal.Zero, Rate: d(0.40), Deduct: decimal.NewFromInt(335)},
		},
		Currencies: []domain.Currency{
			{Code: "USD", Symbol: "$", DecimalPlaces: 2, RateToBase: decimal.NewFromInt(1), IsBase: true},
			{Code: "ZWG", Symbol: "ZiG", DecimalPlaces: 2, RateToBase: d(26.80), RequiresWithholding: true, RequiresInflationAdjustment: true, ExchangeLossNonDeductible: true},
			{Code: "ZAR", Symbol: "R", DecimalPlaces: 2, RateToBase: d(18.50)},
			{Code: "BWP", Symbol: "P", DecimalPlaces: 2, RateToBase: d(13.60)},
			{Code: "GBP", Symbol: "£", DecimalPlaces: 2, RateToBase: d(0.79)},
			{Code: "EUR", Symbol: "€", DecimalPlaces: 2, RateToBase: d(0.92)},
		},
		ExchangeRateScenarios: map[string]decimal.Decimal{
			"stable":   d(0.01),
			"moderate": d(0.05),
			"volatile": d(0.15),
		},
	}
}
