package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zimtax/taxplanner/internal/calculation"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestMonteCarloCSVReport(t *testing.T) {
	result := &calculation.MonteCarloResult{
		ScenarioName:   "Base",
		NumSimulations: 3,
		Seed:           42,
		Outcomes: []calculation.SimulationResult{
			{Seed: 42, TotalTax: d(100), AfterTaxProfit: d(300)},
			{Seed: 43, TotalTax: d(110), AfterTaxProfit: d(290)},
			{Seed: 44, TotalTax: d(90), AfterTaxProfit: d(310)},
		},
		TotalTax:       calculation.PercentileRanges{P10: d(90), P25: d(90), P50: d(100), P75: d(110), P90: d(110)},
		AfterTaxProfit: calculation.PercentileRanges{P10: d(290), P25: d(290), P50: d(300), P75: d(310), P90: d(310)},
		MeanTotalTax:   d(100),
	}
	report := &MonteCarloCSVReport{Result: result, Currency: usd}
	dir := filepath.Join(t.TempDir(), "mc")

	require.NoError(t, report.GenerateAllCSVReports(dir))

	summary := readCSV(t, filepath.Join(dir, "monte_carlo_summary.csv"))
	assert.Equal(t, []string{"Metric", "Value", "Description"}, summary[0])
	assert.Equal(t, "Base", summary[1][1])
	assert.Equal(t, "20.00", summary[len(summary)-1][1], "P90-P10 spread")

	detailed := readCSV(t, filepath.Join(dir, "monte_carlo_detailed.csv"))
	require.Len(t, detailed, 4)
	assert.Equal(t, []string{"3", "44", "90.00", "310.00", "0.00"}, detailed[3])

	pct := readCSV(t, filepath.Join(dir, "monte_carlo_percentiles.csv"))
	require.Len(t, pct, 6)
	assert.Equal(t, "100.00", pct[3][1])
}

func TestMonteCarloCSVReportWithoutResult(t *testing.T) {
	report := &MonteCarloCSVReport{}
	err := report.GenerateSummaryCSV(filepath.Join(t.TempDir(), "x.csv"))
	assert.ErrorIs(t, err, ErrMissingSection)
}
