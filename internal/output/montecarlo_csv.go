package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/domain"
)

var errNoSimulation = fmt.Errorf("%w: no simulation result", ErrMissingSection)

// MonteCarloCSVReport generates CSV exports for exchange-rate risk simulation results
type MonteCarloCSVReport struct {
	Result   *calculation.MonteCarloResult
	Currency domain.Currency
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	if m.Result == nil {
		return errNoSimulation
	}
	return m.writeCSV(outputPath, []string{"Metric", "Value", "Description"}, [][]string{
		{"Scenario", m.Result.ScenarioName, "Scenario simulated"},
		{"Number of Simulations", strconv.Itoa(m.Result.NumSimulations), "Total number of simulations run"},
		{"Seed", strconv.FormatInt(m.Result.Seed, 10), "Seed of the first simulation; simulation i uses seed+i"},
		{"Mean Total Tax", fixed(m.Result.MeanTotalTax, m.Currency), "Average total tax across all simulations"},
		{"Median Total Tax", fixed(m.Result.TotalTax.P50, m.Currency), "Median total tax"},
		{"Median After-Tax Profit", fixed(m.Result.AfterTaxProfit.P50, m.Currency), "Median after-tax profit"},
		{"Total Tax Spread (P90-P10)", fixed(m.Result.TotalTax.P90.Sub(m.Result.TotalTax.P10), m.Currency), "Width of the 10-90 percentile band of total tax"},
	})
}

// GenerateDetailedCSV creates a detailed CSV with individual simulation results
func (m *MonteCarloCSVReport) GenerateDetailedCSV(outputPath string) error {
	if m.Result == nil {
		return errNoSimulation
	}
	rows := make([][]string, 0, len(m.Result.Outcomes))
	for i, sim := range m.Result.Outcomes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(sim.Seed, 10),
			fixed(sim.TotalTax, m.Currency),
			fixed(sim.AfterTaxProfit, m.Currency),
			fixed(sim.ClosingLosses, m.Currency),
		})
	}
	return m.writeCSV(outputPath, []string{"SimulationID", "Seed", "TotalTax", "AfterTaxProfit", "ClosingLosses"}, rows)
}

// GeneratePercentileCSV creates a CSV with detailed percentile analysis
func (m *MonteCarloCSVReport) GeneratePercentileCSV(outputPath string) error {
	if m.Result == nil {
		return errNoSimulation
	}
	tax, profit := m.Result.TotalTax, m.Result.AfterTaxProfit
	return m.writeCSV(outputPath, []string{"Percentile", "TotalTax", "AfterTaxProfit", "Interpretation"}, [][]string{
		{"10th", fixed(tax.P10, m.Currency), fixed(profit.P10, m.Currency), "Lowest 10% of outcomes"},
		{"25th", fixed(tax.P25, m.Currency), fixed(profit.P25, m.Currency), "Below typical outcomes"},
		{"50th (Median)", fixed(tax.P50, m.Currency), fixed(profit.P50, m.Currency), "Typical outcome"},
		{"75th", fixed(tax.P75, m.Currency), fixed(profit.P75, m.Currency), "Above typical outcomes"},
		{"90th", fixed(tax.P90, m.Currency), fixed(profit.P90, m.Currency), "Highest 10% of outcomes"},
	})
}

// GenerateAllCSVReports creates all CSV reports in a single directory
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := m.GenerateSummaryCSV(filepath.Join(outputDir, "monte_carlo_summary.csv")); err != nil {
		return fmt.Errorf("failed to generate summary CSV: %w", err)
	}
	if err := m.GenerateDetailedCSV(filepath.Join(outputDir, "monte_carlo_detailed.csv")); err != nil {
		return fmt.Errorf("failed to generate detailed CSV: %w", err)
	}
	if err := m.GeneratePercentileCSV(filepath.Join(outputDir, "monte_carlo_percentiles.csv")); err != nil {
		return fmt.Errorf("failed to generate percentile CSV: %w", err)
	}
	return nil
}

func (m *MonteCarloCSVReport) writeCSV(outputPath string, header []string, rows [][]string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
