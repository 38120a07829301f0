package calculation

import (
	"fmt"

	"github.com/zimtax/taxplanner/internal/domain"
)

// compareScenarios ranks the scenarios by total tax and after-tax profit and measures
// the best of each against the base scenario. Ties keep the earlier scenario.
func (ce *CalculationEngine) compareScenarios(scenarios []domain.ScenarioSummary) domain.ScenarioComparison {
	var cmp domain.ScenarioComparison
	if len(scenarios) == 0 {
		return cmp
	}

	base := scenarios[0]
	for _, s := range scenarios {
		if s.IsBase {
			base = s
			break
		}
	}
	cmp.BaseScenario = base.Name

	lowestTax := scenarios[0]
	highestProfit := scenarios[0]
	for _, s := range scenarios[1:] {
		if s.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = s
		}
		if s.TotalAfterTax.GreaterThan(highestProfit.TotalAfterTax) {
			highestProfit = s
		}
	}
	cmp.LowestTaxScenario = lowestTax.Name
	cmp.HighestProfitScenario = highestProfit.Name
	cmp.TaxSavingVsBase = base.TotalTax.Sub(lowestTax.TotalTax)
	cmp.ProfitGainVsBase = highestProfit.TotalAfterTax.Sub(base.TotalAfterTax)
	cmp.Considerations = ce.considerations(base, scenarios)
	return cmp
}

// considerations lists plain-language observations about the run
func (ce *CalculationEngine) considerations(base domain.ScenarioSummary, scenarios []domain.ScenarioSummary) []string {
	var notes []string
	for _, s := range scenarios {
		if s.ClosingLosses.IsPositive() {
			notes = append(notes, fmt.Sprintf("%s: %s of assessed losses remain unutilised", s.Name, s.ClosingLosses.StringFixed(2)))
		}
		if s.TotalAllowances.IsZero() && !base.TotalAllowances.IsZero() {
			notes = append(notes, fmt.Sprintf("%s claims no capital allowances", s.Name))
		}
		suppressed := 0
		warnings := 0
		for _, p := range s.Periods {
			if p.Result.ExchangeLossSuppressed {
				suppressed++
			}
			warnings += len(p.Warnings)
		}
		if suppressed > 0 {
			notes = append(notes, fmt.Sprintf("%s: exchange losses disallowed in %d period(s)", s.Name, suppressed))
		}
		if warnings > 0 {
			notes = append(notes, fmt.Sprintf("%s: %d input warning(s), see period detail", s.Name, warnings))
		}
	}
	if len(notes) == 0 {
		notes = append(notes, "No unutilised losses, disallowed exchange losses or input warnings")
	}
	return notes
}
