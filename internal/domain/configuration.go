package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Configuration is the root of a planning input file
type Configuration struct {
	Rules     TaxRules                `yaml:"rules" json:"rules"`
	Company   CompanyProfile          `yaml:"company" json:"company"`
	Assets    []Asset                 `yaml:"assets,omitempty" json:"assets,omitempty"`
	Scenarios []Scenario              `yaml:"scenarios" json:"scenarios"`
	Employees []EmployeePayrollRecord `yaml:"employees,omitempty" json:"employees,omitempty"`
	Seed      int64                   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// BaseScenario returns the scenario flagged as base.
func (c *Configuration) BaseScenario() (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.IsBase {
			return s, true
		}
	}
	return Scenario{}, false
}

// GenerateAssumptions lists the rule values a report was produced under.
func (c *Configuration) GenerateAssumptions() []string {
	pct := func(d decimal.Decimal) float64 { return d.Mul(decimal.NewFromInt(100)).InexactFloat64() }
	periods := "Base revenue, expenses and capital allowances apply in full to every period; growth compounds each period"
	if c.Rules.ProrateSubAnnualPeriods {
		periods = "Base revenue, expenses and capital allowances are annual and spread across the periods of a year; growth compounds each tax year"
	}
	return []string{
		fmt.Sprintf("Tax year %d rules, base currency %s", c.Rules.Year, c.Rules.BaseCurrency),
		fmt.Sprintf("Corporate income tax: %.2f%% plus AIDS levy %.1f%% of tax due", pct(c.Rules.CorporateRate), pct(c.Rules.LevyRate)),
		fmt.Sprintf("NSSA: %.1f%% employee / %.1f%% employer on earnings up to %s", pct(c.Rules.NSSA.EmployeeRate), pct(c.Rules.NSSA.EmployerRate), c.Rules.NSSA.MonthlyInsurableCap.StringFixed(2)),
		fmt.Sprintf("Bonus tax-free threshold: %s per year", c.Rules.BonusTaxFreeThreshold.StringFixed(2)),
		fmt.Sprintf("ZIMDEF: %.1f%% of gross payroll", pct(c.Rules.ZimdefRate)),
		"Capital allowances: first-year max(special, accelerated), wear and tear thereafter",
		periods,
		"Exchange rates follow a bounded random walk per scenario",
	}
}
