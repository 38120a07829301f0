package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// PayrollCalculator computes PAYE, AIDS levy, NSSA and employer contributions for one
// employee and one monthly pay period.
type PayrollCalculator struct {
	Rules  domain.TaxRules
	PAYE   *BracketResolver
	Logger Logger
}

// NewPayrollCalculator creates a calculator over the rule set's PAYE table
func NewPayrollCalculator(rules domain.TaxRules, logger Logger) *PayrollCalculator {
	return &PayrollCalculator{
		Rules:  rules,
		PAYE:   NewBracketResolver(rules.PAYEBrackets),
		Logger: orNop(logger),
	}
}

// BonusSplit is the outcome of applying the annual tax-free bonus threshold
type BonusSplit struct {
	TaxFree decimal.Decimal
	Taxable decimal.Decimal
	NewYTD  decimal.Decimal
}

// CalculateNSSA returns the employee and employer contributions and the insurable
// earnings they were computed on. Both the insurable-earnings cap and the absolute
// contribution cap apply; the smaller contribution wins.
func (pc *PayrollCalculator) CalculateNSSA(totalGross decimal.Decimal) (employee, employer, insurable decimal.Decimal) {
	nssa := pc.Rules.NSSA
	insurable = decimal.Max(decimal.Zero, totalGross)
	if nssa.MonthlyInsurableCap.IsPositive() {
		insurable = decimal.Min(insurable, nssa.MonthlyInsurableCap)
	}
	employee = insurable.Mul(nssa.EmployeeRate)
	employer = insurable.Mul(nssa.EmployerRate)
	if nssa.ContributionCap.IsPositive() {
		employee = decimal.Min(employee, nssa.ContributionCap)
		employer = decimal.Min(employer, nssa.ContributionCap)
	}
	return employee, employer, insurable
}

// SplitBonus divides the current bonus into tax-free and taxable portions given the
// bonus already paid earlier in the year. The caller must carry NewYTD into the next
// period; periods of one employee cannot be computed out of order.
func (pc *PayrollCalculator) SplitBonus(current, previousYTD decimal.Decimal) BonusSplit {
	current = decimal.Max(decimal.Zero, current)
	previousYTD = decimal.Max(decimal.Zero, previousYTD)
	threshold := pc.Rules.BonusTaxFreeThreshold
	total := previousYTD.Add(current)

	switch {
	case total.LessThanOrEqual(threshold):
		return BonusSplit{TaxFree: current, Taxable: decimal.Zero, NewYTD: total}
	case previousYTD.GreaterThanOrEqual(threshold):
		return BonusSplit{TaxFree: decimal.Zero, Taxable: current, NewYTD: total}
	default:
		free := threshold.Sub(previousYTD)
		return BonusSplit{TaxFree: free, Taxable: current.Sub(free), NewYTD: total}
	}
}

// Calculate computes one employee's monthly pay. The record is not modified and the
// result can be recomputed from it at any time.
func (pc *PayrollCalculator) Calculate(record domain.EmployeePayrollRecord) domain.PayrollResult {
	res := domain.PayrollResult{
		EmployeeID:      record.ID,
		Name:            record.Name,
		BasicSalary:     record.BasicSalary,
		TotalAllowances: record.Allowances.Total(),
	}
	res.TotalGross = record.BasicSalary.Add(res.TotalAllowances)

	res.NSSAEmployee, res.NSSAEmployer, res.InsurableEarnings = pc.CalculateNSSA(res.TotalGross)

	split := pc.SplitBonus(record.Allowances.Bonus, record.PreviousBonusYTD)
	res.BonusTaxFree = split.TaxFree
	res.BonusTaxable = split.Taxable
	res.NewBonusYTD = split.NewYTD

	res.TaxableGross = res.TotalGross.Sub(res.NSSAEmployee).Sub(split.TaxFree)
	res.PAYE = pc.PAYE.Tax(res.TaxableGross)
	res.AIDSLevy = res.PAYE.Mul(pc.Rules.LevyRate)
	res.MarginalRate = pc.PAYE.MarginalRate(res.TaxableGross)

	// Taxable bonus is charged at the employee's own marginal rate.
	res.BonusRate = res.MarginalRate
	res.BonusTax = split.Taxable.Mul(res.BonusRate)

	res.TotalTax = res.PAYE.Add(res.AIDSLevy).Add(res.BonusTax)
	res.NetSalary = res.TotalGross.Sub(res.NSSAEmployee).Sub(res.TotalTax)
	if res.TotalGross.IsPositive() {
		res.EffectiveRate = res.TotalTax.Div(res.TotalGross).Mul(decimal.NewFromInt(100))
	}

	res.ZimdefContribution = res.TotalGross.Mul(pc.Rules.ZimdefRate)
	res.EmployerLevyRate = pc.employerLevyRate(record.APWCRate)
	res.EmployerLevyContribution = res.TotalGross.Mul(res.EmployerLevyRate)
	res.TotalEmployerCost = res.TotalGross.
		Add(res.NSSAEmployer).
		Add(res.ZimdefContribution).
		Add(res.EmployerLevyContribution)

	return res
}

// CalculateYear runs twelve (or len(bonuses)) monthly pay periods in order, feeding
// each month's bonus and threading the year-to-date bonus total. The year starts with
// a zero YTD regardless of the record's PreviousBonusYTD.
func (pc *PayrollCalculator) CalculateYear(record domain.EmployeePayrollRecord, bonusesByMonth []decimal.Decimal) []domain.PayrollResult {
	results := make([]domain.PayrollResult, 0, len(bonusesByMonth))
	ytd := decimal.Zero
	for _, bonus := range bonusesByMonth {
		month := record
		month.Allowances.Bonus = bonus
		month.PreviousBonusYTD = ytd
		r := pc.Calculate(month)
		r.Month = len(results) + 1
		ytd = r.NewBonusYTD
		results = append(results, r)
	}
	return results
}

func (pc *PayrollCalculator) employerLevyRate(requested decimal.Decimal) decimal.Decimal {
	rate := decimal.Max(decimal.Zero, requested)
	if limit := pc.Rules.MaxEmployerLevyRate; limit.IsPositive() && rate.GreaterThan(limit) {
		pc.Logger.Debugf("employer levy rate %s capped at %s", rate, limit)
		rate = limit
	}
	return rate
}
