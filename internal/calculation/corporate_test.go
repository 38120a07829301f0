package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zimtax/taxplanner/internal/domain"
)

// TestCorporateEndToEnd tests the plain profit case with no reliefs
func TestCorporateEndToEnd(t *testing.T) {
	calc := NewCorporateTaxCalculator(testRules(), nil)

	res := calc.Calculate(CorporateTaxInput{AccountingProfit: dec("100000")})

	assertDecimal(t, dec("100000"), res.TaxableIncome)
	assertDecimal(t, dec("25000"), res.TaxDue)
	assertDecimal(t, dec("750"), res.Levy)
	assertDecimal(t, dec("25750"), res.TotalTax)
	assertDecimal(t, dec("25.75"), res.EffectiveRate)
	assert.True(t, res.LossesCarriedForward.IsZero())
}

func TestCorporateReconciliationOrder(t *testing.T) {
	calc := NewCorporateTaxCalculator(testRules(), nil)

	tests := []struct {
		name            string
		input           CorporateTaxInput
		expectedTaxable string
		expectedUsed    string
		expectedCarried string
	}{
		{
			name: "Adjustments before losses",
			input: CorporateTaxInput{
				AccountingProfit: dec("1000"),
				Adjustments:      domain.Adjustments{NonDeductible: dec("200"), NonTaxable: dec("100")},
				PreviousLosses:   dec("500"),
			},
			expectedTaxable: "600",
			expectedUsed:    "500",
			expectedCarried: "0",
		},
		{
			name: "Allowances after losses",
			input: CorporateTaxInput{
				AccountingProfit:  dec("1000"),
				CapitalAllowances: dec("300"),
				PreviousLosses:    dec("400"),
			},
			expectedTaxable: "300",
			expectedUsed:    "400",
			expectedCarried: "0",
		},
		{
			name: "Allowances larger than income",
			input: CorporateTaxInput{
				AccountingProfit:  dec("1000"),
				CapitalAllowances: dec("5000"),
			},
			expectedTaxable: "0",
			expectedUsed:    "0",
			expectedCarried: "0",
		},
		{
			name: "Negative profit keeps losses",
			input: CorporateTaxInput{
				AccountingProfit: dec("-2500"),
				PreviousLosses:   dec("1000"),
			},
			expectedTaxable: "0",
			expectedUsed:    "0",
			expectedCarried: "1000",
		},
		{
			name: "Exchange gain added after allowances",
			input: CorporateTaxInput{
				AccountingProfit:  dec("1000"),
				CapitalAllowances: dec("1500"),
				Adjustments:       domain.Adjustments{ExchangeGainsLosses: dec("250")},
			},
			expectedTaxable: "250",
			expectedUsed:    "0",
			expectedCarried: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calc.Calculate(tt.input)
			assertDecimal(t, dec(tt.expectedTaxable), res.TaxableIncome, "taxable")
			assertDecimal(t, dec(tt.expectedUsed), res.LossesUtilized, "losses used")
			assertDecimal(t, dec(tt.expectedCarried), res.LossesCarriedForward, "carried forward")
			assert.False(t, res.TotalTax.IsNegative())
		})
	}
}

// TestLossCarryForwardComposition tests that splitting income across periods uses
// losses the same way as one combined period
func TestLossCarryForwardComposition(t *testing.T) {
	calc := NewCorporateTaxCalculator(testRules(), nil)

	first := calc.Calculate(CorporateTaxInput{AccountingProfit: dec("400"), PreviousLosses: dec("1000")})
	assertDecimal(t, dec("400"), first.LossesUtilized)
	assertDecimal(t, dec("600"), first.LossesCarriedForward)
	assert.True(t, first.TaxableIncome.IsZero())

	second := calc.Calculate(CorporateTaxInput{AccountingProfit: dec("900"), PreviousLosses: first.LossesCarriedForward})
	combined := calc.Calculate(CorporateTaxInput{AccountingProfit: dec("1300"), PreviousLosses: dec("1000")})

	assertDecimal(t, combined.TaxableIncome, first.TaxableIncome.Add(second.TaxableIncome))
	assertDecimal(t, combined.TotalTax, first.TotalTax.Add(second.TotalTax))
	assertDecimal(t, combined.LossesUtilized, first.LossesUtilized.Add(second.LossesUtilized))
	assertDecimal(t, combined.LossesCarriedForward, second.LossesCarriedForward)
}

// TestExchangeLossDeductibility tests that a flagged reporting currency suppresses losses
func TestExchangeLossDeductibility(t *testing.T) {
	calc := NewCorporateTaxCalculator(testRules(), nil)
	loss := domain.Adjustments{ExchangeGainsLosses: dec("-400")}

	tests := []struct {
		name             string
		reporting        string
		expectedTaxable  string
		expectSuppressed bool
	}{
		{"Base currency deducts", "", "600", false},
		{"Deductible foreign currency", "ZAR", "600", false},
		{"Non-deductible currency", "ZWG", "1000", true},
		{"Unknown currency deducts", "XYZ", "600", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calc.Calculate(CorporateTaxInput{
				AccountingProfit: dec("1000"),
				Adjustments:      loss,
				CurrencyData:     domain.CurrencyData{ReportingCurrency: tt.reporting},
			})
			assertDecimal(t, dec(tt.expectedTaxable), res.TaxableIncome)
			assert.Equal(t, tt.expectSuppressed, res.ExchangeLossSuppressed)
		})
	}
}

func TestExchangeLossFloorsAtZero(t *testing.T) {
	calc := NewCorporateTaxCalculator(testRules(), nil)
	res := calc.Calculate(CorporateTaxInput{
		AccountingProfit: dec("100"),
		Adjustments:      domain.Adjustments{ExchangeGainsLosses: dec("-400")},
	})
	assert.True(t, res.TaxableIncome.IsZero())
	assert.True(t, res.TotalTax.IsZero())
	assert.True(t, res.EffectiveRate.IsZero())
}

func TestCorporateBrackets(t *testing.T) {
	rules := testRules()
	rules.CorporateBrackets = domain.BracketTable{
		{Min: decimal.Zero, Max: dec("50000"), Rate: dec("0.15"), Deduct: decimal.Zero},
		{Min: dec("50000.01"), Max: decimal.Zero, Rate: dec("0.24"), Deduct: dec("4500")},
	}
	calc := NewCorporateTaxCalculator(rules, nil)

	res := calc.Calculate(CorporateTaxInput{AccountingProfit: dec("100000")})
	assertDecimal(t, dec("19500"), res.TaxDue) // 100000 * 0.24 - 4500
	assertDecimal(t, dec("585"), res.Levy)
}
