package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

const (
	grossUpMaxIterations = 50
	grossUpMaxDoublings  = 60
)

var grossUpTolerance = decimal.NewFromFloat(0.01)

// GrossUpResult is the best basic salary found for a target net salary
type GrossUpResult struct {
	TargetNet   decimal.Decimal      `json:"target_net"`
	BasicSalary decimal.Decimal      `json:"basic_salary"`
	Gross       decimal.Decimal      `json:"gross"`
	Net         decimal.Decimal      `json:"net"`
	Residual    decimal.Decimal      `json:"residual"`
	Iterations  int                  `json:"iterations"`
	Converged   bool                 `json:"converged"`
	Result      domain.PayrollResult `json:"result"`
}

// GrossUp searches for the basic salary that yields targetNet, keeping the template's
// allowances and bonus history fixed. The upper bound is found by doubling, then a
// bisection capped at 50 steps narrows it to a tolerance of one cent; when it does not
// converge the closest estimate is returned with Converged false. Iterations counts
// every payroll evaluation, including those of the bound search.
func (pc *PayrollCalculator) GrossUp(targetNet decimal.Decimal, template domain.EmployeePayrollRecord) GrossUpResult {
	out := GrossUpResult{TargetNet: targetNet}
	two := decimal.NewFromInt(2)

	eval := func(basic decimal.Decimal) domain.PayrollResult {
		rec := template
		rec.BasicSalary = basic
		return pc.Calculate(rec)
	}
	record := func(basic decimal.Decimal, r domain.PayrollResult) {
		residual := r.NetSalary.Sub(targetNet)
		if out.Iterations == 0 || residual.Abs().LessThan(out.Residual.Abs()) {
			out.BasicSalary = basic
			out.Gross = r.TotalGross
			out.Net = r.NetSalary
			out.Residual = residual
			out.Result = r
		}
	}

	// Allowances alone may already cover the target.
	lo := decimal.Zero
	low := eval(lo)
	record(lo, low)
	out.Iterations = 1
	if low.NetSalary.GreaterThanOrEqual(targetNet.Sub(grossUpTolerance)) {
		out.Converged = out.Residual.Abs().LessThanOrEqual(grossUpTolerance)
		return out
	}

	// Expand the upper bound until it overshoots the target.
	hi := decimal.Max(targetNet, decimal.NewFromInt(1)).Mul(two)
	for i := 0; i < grossUpMaxDoublings; i++ {
		out.Iterations++
		r := eval(hi)
		record(hi, r)
		if r.NetSalary.GreaterThanOrEqual(targetNet) {
			break
		}
		lo = hi
		hi = hi.Mul(two)
	}

	for i := 0; i < grossUpMaxIterations; i++ {
		out.Iterations++
		mid := lo.Add(hi).Div(two)
		r := eval(mid)
		record(mid, r)

		diff := r.NetSalary.Sub(targetNet)
		if diff.Abs().LessThanOrEqual(grossUpTolerance) {
			out.Converged = true
			return out
		}
		if diff.IsNegative() {
			lo = mid
		} else {
			hi = mid
		}
	}

	pc.Logger.Warnf("gross-up for net %s did not converge after %d iterations (residual %s)",
		targetNet.StringFixed(2), out.Iterations, out.Residual.StringFixed(4))
	return out
}
