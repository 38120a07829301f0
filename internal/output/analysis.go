package output

import (
	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	AfterTaxProfit   decimal.Decimal
	ProfitChange     decimal.Decimal
	PercentageChange decimal.Decimal
	TaxChange        decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest total after-tax profit and
// measures it against the base scenario. Ties keep the earlier scenario.
func AnalyzeScenarios(report *domain.ProjectionReport) Recommendation {
	if report == nil || len(report.Scenarios) == 0 {
		return Recommendation{}
	}
	base := report.Scenarios[0]
	for _, sc := range report.Scenarios {
		if sc.IsBase {
			base = sc
			break
		}
	}
	best := report.Scenarios[0]
	for _, sc := range report.Scenarios[1:] {
		if sc.TotalAfterTax.GreaterThan(best.TotalAfterTax) {
			best = sc
		}
	}

	delta := best.TotalAfterTax.Sub(base.TotalAfterTax)
	pct := decimal.Zero
	if !base.TotalAfterTax.IsZero() {
		pct = delta.Div(base.TotalAfterTax.Abs()).Mul(decimalHundred)
	}
	return Recommendation{
		ScenarioName:     best.Name,
		AfterTaxProfit:   best.TotalAfterTax,
		ProfitChange:     delta,
		PercentageChange: pct,
		TaxChange:        best.TotalTax.Sub(base.TotalTax),
	}
}
