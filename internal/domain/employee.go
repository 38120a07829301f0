package domain

import (
	"github.com/shopspring/decimal"
)

// Allowances are the named monthly pay components on top of basic salary
type Allowances struct {
	Living     decimal.Decimal `yaml:"living,omitempty" json:"living"`
	Medical    decimal.Decimal `yaml:"medical,omitempty" json:"medical"`
	Transport  decimal.Decimal `yaml:"transport,omitempty" json:"transport"`
	Housing    decimal.Decimal `yaml:"housing,omitempty" json:"housing"`
	Commission decimal.Decimal `yaml:"commission,omitempty" json:"commission"`
	Bonus      decimal.Decimal `yaml:"bonus,omitempty" json:"bonus"`
	Overtime   decimal.Decimal `yaml:"overtime,omitempty" json:"overtime"`
}

// Total sums every allowance.
func (a Allowances) Total() decimal.Decimal {
	return a.Living.Add(a.Medical).Add(a.Transport).Add(a.Housing).
		Add(a.Commission).Add(a.Bonus).Add(a.Overtime)
}

// EmployeePayrollRecord is the authoritative input for one employee's pay run.
// Any calculation result is derived from it and can be recomputed at any time.
type EmployeePayrollRecord struct {
	ID               string          `yaml:"id" json:"id"`
	Name             string          `yaml:"name" json:"name"`
	Position         string          `yaml:"position,omitempty" json:"position,omitempty"`
	Department       string          `yaml:"department,omitempty" json:"department,omitempty"`
	BasicSalary      decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	Allowances       Allowances      `yaml:"allowances" json:"allowances"`
	APWCRate         decimal.Decimal `yaml:"apwc_rate" json:"apwc_rate"`
	PreviousBonusYTD decimal.Decimal `yaml:"previous_bonus_ytd" json:"previous_bonus_ytd"`
}

// PayrollResult is the full breakdown of one employee's pay for one period
type PayrollResult struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Month      int    `json:"month,omitempty"` // set by year runs

	BasicSalary     decimal.Decimal `json:"basic_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalGross      decimal.Decimal `json:"total_gross"`

	InsurableEarnings decimal.Decimal `json:"insurable_earnings"`
	NSSAEmployee      decimal.Decimal `json:"nssa_employee"`
	NSSAEmployer      decimal.Decimal `json:"nssa_employer"`

	BonusTaxFree  decimal.Decimal `json:"bonus_tax_free"`
	BonusTaxable  decimal.Decimal `json:"bonus_taxable"`
	BonusTax      decimal.Decimal `json:"bonus_tax"`
	BonusRate     decimal.Decimal `json:"bonus_rate"`
	NewBonusYTD   decimal.Decimal `json:"new_bonus_ytd"`
	TaxableGross  decimal.Decimal `json:"taxable_gross"`
	PAYE          decimal.Decimal `json:"paye"`
	AIDSLevy      decimal.Decimal `json:"aids_levy"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`

	ZimdefContribution       decimal.Decimal `json:"zimdef_contribution"`
	EmployerLevyRate         decimal.Decimal `json:"employer_levy_rate"`
	EmployerLevyContribution decimal.Decimal `json:"employer_levy_contribution"`
	TotalEmployerCost        decimal.Decimal `json:"total_employer_cost"`
}

// PayrollTotals aggregates a batch
type PayrollTotals struct {
	Employees         int             `json:"employees"`
	TotalGross        decimal.Decimal `json:"total_gross"`
	TotalNSSAEmployee decimal.Decimal `json:"total_nssa_employee"`
	TotalNSSAEmployer decimal.Decimal `json:"total_nssa_employer"`
	TotalPAYE         decimal.Decimal `json:"total_paye"`
	TotalAIDSLevy     decimal.Decimal `json:"total_aids_levy"`
	TotalBonusTax     decimal.Decimal `json:"total_bonus_tax"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	TotalNet          decimal.Decimal `json:"total_net"`
	TotalZimdef       decimal.Decimal `json:"total_zimdef"`
	TotalEmployerLevy decimal.Decimal `json:"total_employer_levy"`
	TotalEmployerCost decimal.Decimal `json:"total_employer_cost"`
}

// Add folds one result into the totals.
func (t PayrollTotals) Add(r PayrollResult) PayrollTotals {
	t.Employees++
	t.TotalGross = t.TotalGross.Add(r.TotalGross)
	t.TotalNSSAEmployee = t.TotalNSSAEmployee.Add(r.NSSAEmployee)
	t.TotalNSSAEmployer = t.TotalNSSAEmployer.Add(r.NSSAEmployer)
	t.TotalPAYE = t.TotalPAYE.Add(r.PAYE)
	t.TotalAIDSLevy = t.TotalAIDSLevy.Add(r.AIDSLevy)
	t.TotalBonusTax = t.TotalBonusTax.Add(r.BonusTax)
	t.TotalTax = t.TotalTax.Add(r.TotalTax)
	t.TotalNet = t.TotalNet.Add(r.NetSalary)
	t.TotalZimdef = t.TotalZimdef.Add(r.ZimdefContribution)
	t.TotalEmployerLevy = t.TotalEmployerLevy.Add(r.EmployerLevyContribution)
	t.TotalEmployerCost = t.TotalEmployerCost.Add(r.TotalEmployerCost)
	return t
}

// PayrollBatchResult holds per-employee results in input order plus totals
type PayrollBatchResult struct {
	Results []PayrollResult `json:"results"`
	Totals  PayrollTotals   `json:"totals"`
}
