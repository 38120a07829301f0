package calculation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// MonteCarloConfig holds configuration for an exchange-rate risk simulation
type MonteCarloConfig struct {
	NumSimulations int
	Seed           int64
	MaxConcurrent  int
}

// MonteCarloResult summarises many projections of one scenario, each under its own
// exchange-rate path
type MonteCarloResult struct {
	ScenarioName   string             `json:"scenario_name"`
	NumSimulations int                `json:"num_simulations"`
	Seed           int64              `json:"seed"`
	Outcomes       []SimulationResult `json:"outcomes"`
	TotalTax       PercentileRanges   `json:"total_tax"`
	AfterTaxProfit PercentileRanges   `json:"after_tax_profit"`
	MeanTotalTax   decimal.Decimal    `json:"mean_total_tax"`
}

// SimulationResult is the outcome of one simulated path
type SimulationResult struct {
	Seed           int64           `json:"seed"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	AfterTaxProfit decimal.Decimal `json:"after_tax_profit"`
	ClosingLosses  decimal.Decimal `json:"closing_losses"`
}

// PercentileRanges represents percentile ranges for simulation results
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// RunMonteCarlo projects the scenario NumSimulations times. Simulation i uses seed
// Seed+i, so a fixed seed reproduces the whole distribution regardless of scheduling.
func (ce *CalculationEngine) RunMonteCarlo(ctx context.Context, config *domain.Configuration, scenario domain.Scenario, mc MonteCarloConfig) (*MonteCarloResult, error) {
	if mc.NumSimulations <= 0 {
		return nil, fmt.Errorf("number of simulations must be positive, got %d", mc.NumSimulations)
	}
	if mc.Seed == 0 {
		mc.Seed = seedFunc()
	}
	if mc.MaxConcurrent <= 0 {
		mc.MaxConcurrent = 10
	}

	outcomes := make([]SimulationResult, mc.NumSimulations)
	errs := make([]error, mc.NumSimulations)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, mc.MaxConcurrent)

	for i := 0; i < mc.NumSimulations; i++ {
		wg.Add(1)
		go func(simIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire semaphore
			defer func() { <-semaphore }() // Release semaphore

			seed := mc.Seed + int64(simIndex)
			summary, err := ce.ProjectScenario(ctx, config.Company, config.Assets, scenario, newRand(seed))
			if err != nil {
				errs[simIndex] = err
				return
			}
			outcomes[simIndex] = SimulationResult{
				Seed:           seed,
				TotalTax:       summary.TotalTax,
				AfterTaxProfit: summary.TotalAfterTax,
				ClosingLosses:  summary.ClosingLosses,
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("simulation of %q: %w", scenario.Name, err)
		}
	}

	taxes := make([]decimal.Decimal, len(outcomes))
	profits := make([]decimal.Decimal, len(outcomes))
	sum := decimal.Zero
	for i, o := range outcomes {
		taxes[i] = o.TotalTax
		profits[i] = o.AfterTaxProfit
		sum = sum.Add(o.TotalTax)
	}

	return &MonteCarloResult{
		ScenarioName:   scenario.Name,
		NumSimulations: mc.NumSimulations,
		Seed:           mc.Seed,
		Outcomes:       outcomes,
		TotalTax:       percentiles(taxes),
		AfterTaxProfit: percentiles(profits),
		MeanTotalTax:   sum.Div(decimal.NewFromInt(int64(len(outcomes)))),
	}, nil
}

// percentiles sorts values in place and reads off the nearest-rank percentiles
func percentiles(values []decimal.Decimal) PercentileRanges {
	if len(values) == 0 {
		return PercentileRanges{}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	n := len(values)
	return PercentileRanges{
		P10: values[n/10],
		P25: values[n/4],
		P50: values[n/2],
		P75: values[3*n/4],
		P90: values[9*n/10],
	}
}
