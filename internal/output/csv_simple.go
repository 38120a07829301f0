package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/zimtax/taxplanner/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	if report == nil || report.Projection == nil {
		return nil, fmt.Errorf("%w: csv needs a projection run", ErrMissingSection)
	}
	cur := report.Currency
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Type", "IsBase", "Periods", "TotalRevenue", "TotalExpenses", "TotalProfit", "TotalAllowances", "TotalTaxableIncome", "TotalTax", "TotalAfterTax", "AverageEffectiveRate", "ClosingLosses"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), report.Projection.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		row := []string{
			sc.Name,
			string(sc.Type),
			boolToString(sc.IsBase),
			intToString(len(sc.Periods)),
			fixed(sc.TotalRevenue, cur),
			fixed(sc.TotalExpenses, cur),
			fixed(sc.TotalProfit, cur),
			fixed(sc.TotalAllowances, cur),
			fixed(sc.TotalTaxableIncome, cur),
			fixed(sc.TotalTax, cur),
			fixed(sc.TotalAfterTax, cur),
			sc.AverageEffectiveRate.StringFixed(2),
			fixed(sc.ClosingLosses, cur),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
