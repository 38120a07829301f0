package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/domain"
)

// Prints the monthly payroll breakdown across a salary ladder, then the bonus split.
// An optional argument is grossed up as a target net salary.
func main() {
	ce := calculation.NewCalculationEngine(calculation.DefaultRules2025())
	paye := calculation.NewBracketResolver(ce.Rules.PAYEBrackets)

	fmt.Println("Basic,NSSA,TaxableGross,PAYE,Marginal,AIDSLevy,Net")
	for _, basic := range []int64{100, 300, 700, 1000, 1500, 2000, 3000, 5000} {
		r := ce.Payroll.Calculate(domain.EmployeePayrollRecord{
			ID:          fmt.Sprintf("ladder-%d", basic),
			BasicSalary: decimal.NewFromInt(basic),
		})
		fmt.Printf("%d,%s,%s,%s,%s,%s,%s\n", basic,
			r.NSSAEmployee.StringFixed(2), r.TaxableGross.StringFixed(2), r.PAYE.StringFixed(2),
			paye.MarginalRate(r.TaxableGross).StringFixed(2), r.AIDSLevy.StringFixed(2), r.NetSalary.StringFixed(2))
	}

	// Bonus split around the tax-free threshold
	fmt.Println()
	fmt.Println("Bonus,PreviousYTD,TaxFree,Taxable")
	for _, c := range [][2]int64{{500, 0}, {900, 0}, {900, 400}, {300, 700}} {
		split := ce.Payroll.SplitBonus(decimal.NewFromInt(c[0]), decimal.NewFromInt(c[1]))
		fmt.Printf("%d,%d,%s,%s\n", c[0], c[1], split.TaxFree.StringFixed(2), split.Taxable.StringFixed(2))
	}

	if len(os.Args) > 1 {
		target, err := decimal.NewFromString(os.Args[1])
		if err != nil {
			panic(err)
		}
		g := ce.Payroll.GrossUp(target, domain.EmployeePayrollRecord{ID: "grossup"})
		fmt.Printf("\nGross-up for net %s: basic=%s gross=%s iterations=%d converged=%t\n",
			target.StringFixed(2), g.BasicSalary.StringFixed(2), g.Gross.StringFixed(2), g.Iterations, g.Converged)
	}
}
