package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVPayrollExporter writes the payroll register, one row per employee plus a totals row.
// Year runs write one row per employee month and fill the Month column.
type CSVPayrollExporter struct{}

func (c CSVPayrollExporter) Name() string      { return "payroll-csv" }
func (c CSVPayrollExporter) Extension() string { return "csv" }

func (c CSVPayrollExporter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Payroll == nil {
		return nil, fmt.Errorf("%w: payroll-csv needs a payroll run", ErrMissingSection)
	}
	cur := report.Currency
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"EmployeeID", "Name", "BasicSalary", "TotalAllowances", "TotalGross",
		"InsurableEarnings", "NSSAEmployee", "NSSAEmployer",
		"BonusTaxFree", "BonusTaxable", "BonusRate", "BonusTax", "NewBonusYTD",
		"TaxableGross", "PAYE", "AIDSLevy", "TotalTax", "NetSalary", "MarginalRate", "EffectiveRate",
		"ZIMDEF", "EmployerLevyRate", "EmployerLevy", "TotalEmployerCost", "Month",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Payroll.Results {
		row := []string{
			r.EmployeeID,
			r.Name,
			fixed(r.BasicSalary, cur),
			fixed(r.TotalAllowances, cur),
			fixed(r.TotalGross, cur),
			fixed(r.InsurableEarnings, cur),
			fixed(r.NSSAEmployee, cur),
			fixed(r.NSSAEmployer, cur),
			fixed(r.BonusTaxFree, cur),
			fixed(r.BonusTaxable, cur),
			r.BonusRate.StringFixed(4),
			fixed(r.BonusTax, cur),
			fixed(r.NewBonusYTD, cur),
			fixed(r.TaxableGross, cur),
			fixed(r.PAYE, cur),
			fixed(r.AIDSLevy, cur),
			fixed(r.TotalTax, cur),
			fixed(r.NetSalary, cur),
			r.MarginalRate.StringFixed(4),
			r.EffectiveRate.StringFixed(2),
			fixed(r.ZimdefContribution, cur),
			r.EmployerLevyRate.StringFixed(4),
			fixed(r.EmployerLevyContribution, cur),
			fixed(r.TotalEmployerCost, cur),
			"",
		}
		if r.Month > 0 {
			row[24] = intToString(r.Month)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	t := report.Payroll.Totals
	totals := make([]string, len(header))
	totals[0] = "TOTAL"
	totals[1] = intToString(t.Employees)
	totals[4] = fixed(t.TotalGross, cur)
	totals[6] = fixed(t.TotalNSSAEmployee, cur)
	totals[7] = fixed(t.TotalNSSAEmployer, cur)
	totals[11] = fixed(t.TotalBonusTax, cur)
	totals[14] = fixed(t.TotalPAYE, cur)
	totals[15] = fixed(t.TotalAIDSLevy, cur)
	totals[16] = fixed(t.TotalTax, cur)
	totals[17] = fixed(t.TotalNet, cur)
	totals[20] = fixed(t.TotalZimdef, cur)
	totals[22] = fixed(t.TotalEmployerLevy, cur)
	totals[23] = fixed(t.TotalEmployerCost, cur)
	if err := w.Write(totals); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
