package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/domain"
)

// CSVDetailedExporter writes one row per scenario and period with the full tax
// computation, so every figure can be traced. When any scenario claims capital
// allowances a second section follows after a blank line, one row per asset and
// period, so the CapitalAllowances column can be reconciled asset by asset.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Projection == nil {
		return nil, fmt.Errorf("%w: detailed-csv needs a projection run", ErrMissingSection)
	}
	cur := report.Currency
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Period", "Year", "Sequence", "StartDate", "EndDate",
		"Revenue", "Expenses", "AccountingProfit", "ExchangeAdjustment", "ExchangeLossSuppressed",
		"CapitalAllowances", "TaxableBeforeLosses", "LossesUtilized", "TaxableIncome",
		"TaxDue", "Levy", "TotalTax", "EffectiveRate", "AfterTaxProfit", "LossesCarriedForward",
		"ExchangeRates", "Warnings",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), report.Projection.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		periods := make(map[string]domain.Period, len(sc.Scenario.Periods))
		for _, p := range sc.Scenario.Periods {
			periods[p.ID] = p
		}
		for _, row := range sc.Periods {
			start, end := "", ""
			if p, ok := periods[row.PeriodID]; ok {
				s, e := calculation.PeriodRange(p)
				start, end = s.Format("2006-01-02"), e.Format("2006-01-02")
			}
			r := row.Result
			record := []string{
				sc.Name,
				row.Label,
				intToString(row.Year),
				intToString(row.Sequence),
				start,
				end,
				fixed(row.Revenue, cur),
				fixed(row.Expenses, cur),
				fixed(row.AccountingProfit, cur),
				fixed(r.ExchangeAdjustment, cur),
				boolToString(r.ExchangeLossSuppressed),
				fixed(r.CapitalAllowances, cur),
				fixed(r.TaxableBeforeLosses, cur),
				fixed(r.LossesUtilized, cur),
				fixed(r.TaxableIncome, cur),
				fixed(r.TaxDue, cur),
				fixed(r.Levy, cur),
				fixed(r.TotalTax, cur),
				r.EffectiveRate.StringFixed(2),
				fixed(row.AfterTaxProfit, cur),
				fixed(r.LossesCarriedForward, cur),
				formatRates(row.ExchangeRates),
				strings.Join(row.Warnings, "; "),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	if err := writeAssetSchedule(w, scenarios, cur); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeAssetSchedule(w *csv.Writer, scenarios []domain.ScenarioSummary, cur domain.Currency) error {
	claimed := false
	for _, sc := range scenarios {
		if len(sc.AssetSchedule) > 0 {
			claimed = true
			break
		}
	}
	if !claimed {
		return nil
	}
	if err := w.Write(nil); err != nil {
		return err
	}
	header := []string{"Scenario", "Asset", "Period", "Allowance", "FirstYear", "Cumulative", "ClosingWrittenDownValue"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, sc := range scenarios {
		labels := make(map[string]string, len(sc.Periods))
		for _, p := range sc.Periods {
			labels[p.PeriodID] = p.Label
		}
		assets := make(map[string]domain.Asset, len(sc.ClosingAssets))
		for _, a := range sc.ClosingAssets {
			assets[a.ID] = a
		}
		for _, row := range sc.AssetSchedule {
			name, closing := row.AssetID, ""
			if a, ok := assets[row.AssetID]; ok {
				if a.Name != "" {
					name = a.Name
				}
				closing = fixed(a.BookValue(), cur)
			}
			period := labels[row.PeriodID]
			if period == "" {
				period = row.PeriodID
			}
			record := []string{
				sc.Name,
				name,
				period,
				fixed(row.Allowance, cur),
				boolToString(row.FirstYear),
				fixed(row.Cumulative, cur),
				closing,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatRates renders a rate map as "ZAR=18.5000;ZWG=26.8000" in code order
func formatRates(rates map[string]decimal.Decimal) string {
	if len(rates) == 0 {
		return ""
	}
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = code + "=" + rates[code].StringFixed(4)
	}
	return strings.Join(parts, ";")
}
