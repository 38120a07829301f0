package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMonteCarlo(t *testing.T) {
	ce := NewCalculationEngine(testRules())
	cfg := testConfiguration()
	scenario := cfg.Scenarios[2]

	result, err := ce.RunMonteCarlo(context.Background(), cfg, scenario, MonteCarloConfig{NumSimulations: 50, Seed: 12345})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 50)

	assert.Equal(t, "Currency heavy", result.ScenarioName)
	assert.True(t, result.TotalTax.P10.LessThanOrEqual(result.TotalTax.P50))
	assert.True(t, result.TotalTax.P50.LessThanOrEqual(result.TotalTax.P90))
	assert.True(t, result.AfterTaxProfit.P25.LessThanOrEqual(result.AfterTaxProfit.P75))
	assert.True(t, result.MeanTotalTax.IsPositive())

	for i, o := range result.Outcomes {
		assert.Equal(t, int64(12345+i), o.Seed)
	}

	// Same seed reproduces the distribution
	again, err := ce.RunMonteCarlo(context.Background(), cfg, scenario, MonteCarloConfig{NumSimulations: 50, Seed: 12345, MaxConcurrent: 3})
	require.NoError(t, err)
	assertDecimal(t, result.TotalTax.P50, again.TotalTax.P50)
	assertDecimal(t, result.MeanTotalTax, again.MeanTotalTax)
}

func TestRunMonteCarloInvalid(t *testing.T) {
	ce := NewCalculationEngine(testRules())
	cfg := testConfiguration()
	_, err := ce.RunMonteCarlo(context.Background(), cfg, cfg.Scenarios[0], MonteCarloConfig{})
	assert.Error(t, err)
}

func TestPercentiles(t *testing.T) {
	values := []string{"9", "1", "8", "2", "7", "3", "6", "4", "5", "10"}
	ds := make([]decimal.Decimal, len(values))
	for i, v := range values {
		ds[i] = dec(v)
	}
	p := percentiles(ds)
	assertDecimal(t, dec("2"), p.P10)
	assertDecimal(t, dec("6"), p.P50)
	assertDecimal(t, dec("10"), p.P90)
	assert.Equal(t, PercentileRanges{}, percentiles(nil))
}
