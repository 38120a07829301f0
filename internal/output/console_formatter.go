package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/zimtax/taxplanner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console-lite" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || (report.Projection == nil && report.Payroll == nil) {
		return nil, fmt.Errorf("%w: console-lite needs a projection or payroll run", ErrMissingSection)
	}
	cur := report.Currency
	var buf bytes.Buffer

	if p := report.Projection; p != nil {
		fmt.Fprintln(&buf, "TAX SCENARIO SUMMARY")
		fmt.Fprintln(&buf, "================================")
		fmt.Fprintf(&buf, "%s, tax year %d, amounts in %s\n", p.Company, p.TaxYear, p.BaseCurrency)
		fmt.Fprintln(&buf)
		scenarios := append([]domain.ScenarioSummary(nil), p.Scenarios...)
		sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
		for _, sc := range scenarios {
			marker := ""
			if sc.IsBase {
				marker = " (base)"
			}
			fmt.Fprintf(&buf, "%s%s: Tax=%s AfterTax=%s ETR=%s LossesCF=%s\n",
				sc.Name, marker,
				FormatCurrency(sc.TotalTax, cur),
				FormatCurrency(sc.TotalAfterTax, cur),
				FormatPercentage(sc.AverageEffectiveRate),
				FormatCurrency(sc.ClosingLosses, cur),
			)
		}
		rec := AnalyzeScenarios(p)
		if rec.ScenarioName != "" {
			fmt.Fprintln(&buf)
			fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.ProfitChange, cur), FormatPercentage(rec.PercentageChange))
		}
	}

	if pr := report.Payroll; pr != nil {
		if report.Projection != nil {
			fmt.Fprintln(&buf)
		}
		t := pr.Totals
		fmt.Fprintf(&buf, "Payroll: %d employees, gross %s, PAYE %s, net %s, employer cost %s\n",
			t.Employees,
			FormatCurrency(t.TotalGross, cur),
			FormatCurrency(t.TotalPAYE, cur),
			FormatCurrency(t.TotalNet, cur),
			FormatCurrency(t.TotalEmployerCost, cur),
		)
	}
	return buf.Bytes(), nil
}
