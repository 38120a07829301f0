package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/zimtax/taxplanner/internal/domain"
)

// ConsoleVerboseFormatter renders the full period-by-period report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || (report.Projection == nil && report.Payroll == nil) {
		return nil, fmt.Errorf("%w: console needs a projection or payroll run", ErrMissingSection)
	}
	var buf bytes.Buffer
	if report.Projection != nil {
		writeProjection(&buf, report.Projection, report.Currency)
	}
	if report.Payroll != nil {
		writePayroll(&buf, report.Payroll, report.Currency)
	}
	return buf.Bytes(), nil
}

func writeProjection(buf *bytes.Buffer, p *domain.ProjectionReport, cur domain.Currency) {
	rule := strings.Repeat("=", 81)
	fmt.Fprintln(buf, rule)
	fmt.Fprintln(buf, "ZIMBABWE CORPORATE TAX PROJECTION")
	fmt.Fprintln(buf, rule)
	fmt.Fprintf(buf, "Company: %s\n", p.Company)
	fmt.Fprintf(buf, "Tax year rules: %d   Base currency: %s\n", p.TaxYear, p.BaseCurrency)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "KEY ASSUMPTIONS:")
	assumptions := p.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(buf, "• %s\n", a)
	}
	fmt.Fprintln(buf)

	for i, sc := range p.Scenarios {
		title := sc.Name
		if sc.IsBase {
			title += " [BASE]"
		}
		fmt.Fprintf(buf, "SCENARIO %d: %s (%s)\n", i+1, title, sc.Type)
		fmt.Fprintln(buf, strings.Repeat("-", 50))

		tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Period\tRevenue\tExpenses\tProfit\tAllowances\tTaxable\tTax\tAfter tax\tLosses c/f\t")
		for _, row := range sc.Periods {
			r := row.Result
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				row.Label,
				FormatCurrency(row.Revenue, cur),
				FormatCurrency(row.Expenses, cur),
				FormatCurrency(row.AccountingProfit, cur),
				FormatCurrency(r.CapitalAllowances, cur),
				FormatCurrency(r.TaxableIncome, cur),
				FormatCurrency(r.TotalTax, cur),
				FormatCurrency(row.AfterTaxProfit, cur),
				FormatCurrency(r.LossesCarriedForward, cur),
			)
		}
		fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			FormatCurrency(sc.TotalRevenue, cur),
			FormatCurrency(sc.TotalExpenses, cur),
			FormatCurrency(sc.TotalProfit, cur),
			FormatCurrency(sc.TotalAllowances, cur),
			FormatCurrency(sc.TotalTaxableIncome, cur),
			FormatCurrency(sc.TotalTax, cur),
			FormatCurrency(sc.TotalAfterTax, cur),
			FormatCurrency(sc.ClosingLosses, cur),
		)
		tw.Flush()
		fmt.Fprintf(buf, "Average effective rate: %s\n", FormatPercentage(sc.AverageEffectiveRate))

		for _, row := range sc.Periods {
			for _, w := range row.Warnings {
				fmt.Fprintf(buf, "  ! %s: %s\n", row.Label, w)
			}
		}
		fmt.Fprintln(buf)
	}

	cmp := p.Comparison
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Base scenario:            %s\n", cmp.BaseScenario)
	fmt.Fprintf(buf, "Lowest total tax:         %s (saves %s)\n", cmp.LowestTaxScenario, FormatCurrency(cmp.TaxSavingVsBase, cur))
	fmt.Fprintf(buf, "Highest after-tax profit: %s (gains %s)\n", cmp.HighestProfitScenario, FormatCurrency(cmp.ProfitGainVsBase, cur))
	if rec := AnalyzeScenarios(p); rec.ScenarioName != "" {
		fmt.Fprintf(buf, "Recommended: %s, after-tax profit %s (%s vs base)\n", rec.ScenarioName, FormatCurrency(rec.AfterTaxProfit, cur), FormatPercentage(rec.PercentageChange))
	}
	if len(cmp.Considerations) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "CONSIDERATIONS:")
		for _, note := range cmp.Considerations {
			fmt.Fprintf(buf, "• %s\n", note)
		}
	}
	fmt.Fprintln(buf)
}

func writePayroll(buf *bytes.Buffer, pr *domain.PayrollBatchResult, cur domain.Currency) {
	fmt.Fprintln(buf, "PAYROLL REGISTER")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Employee\tGross\tNSSA\tPAYE\tAIDS levy\tBonus tax\tNet\tEmployer cost\t")
	for _, r := range pr.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Name,
			FormatCurrency(r.TotalGross, cur),
			FormatCurrency(r.NSSAEmployee, cur),
			FormatCurrency(r.PAYE, cur),
			FormatCurrency(r.AIDSLevy, cur),
			FormatCurrency(r.BonusTax, cur),
			FormatCurrency(r.NetSalary, cur),
			FormatCurrency(r.TotalEmployerCost, cur),
		)
	}
	t := pr.Totals
	fmt.Fprintf(tw, "TOTAL (%d)\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		t.Employees,
		FormatCurrency(t.TotalGross, cur),
		FormatCurrency(t.TotalNSSAEmployee, cur),
		FormatCurrency(t.TotalPAYE, cur),
		FormatCurrency(t.TotalAIDSLevy, cur),
		FormatCurrency(t.TotalBonusTax, cur),
		FormatCurrency(t.TotalNet, cur),
		FormatCurrency(t.TotalEmployerCost, cur),
	)
	tw.Flush()
	fmt.Fprintf(buf, "ZIMDEF: %s   Employer levy: %s   NSSA employer: %s\n",
		FormatCurrency(t.TotalZimdef, cur),
		FormatCurrency(t.TotalEmployerLevy, cur),
		FormatCurrency(t.TotalNSSAEmployer, cur),
	)
	fmt.Fprintln(buf)
}
