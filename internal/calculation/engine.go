package calculation

import (
	"context"
	"fmt"

	"github.com/zimtax/taxplanner/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CalculationEngine orchestrates corporate tax projections and payroll runs for one
// rule set. The rule set is read-only, so one engine can serve concurrent runs.
type CalculationEngine struct {
	Rules      domain.TaxRules
	Rates      domain.RateTable
	Converter  *CurrencyConverter
	Corporate  *CorporateTaxCalculator
	Allowances *AllowanceScheduler
	Payroll    *PayrollCalculator
	Logger     Logger
}

// NewCalculationEngine creates a new calculation engine for a rule set
func NewCalculationEngine(rules domain.TaxRules) *CalculationEngine {
	ce := &CalculationEngine{Rules: rules, Rates: rules.RateTable()}
	ce.SetLogger(NopLogger{})
	return ce
}

// SetLogger sets the logger for the engine and every calculator it owns.
// If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	l = orNop(l)
	ce.Logger = l
	ce.Converter = NewCurrencyConverter(ce.Rates, l)
	ce.Corporate = NewCorporateTaxCalculator(ce.Rules, l)
	ce.Allowances = NewAllowanceScheduler(ce.Rules, l)
	ce.Payroll = NewPayrollCalculator(ce.Rules, l)
}

// RunScenarios projects every scenario of the configuration concurrently and compares
// them. Each scenario draws exchange rates from its own generator seeded with
// seed+index, where seed is the configuration's Seed or, when unset, a fresh seed.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ProjectionReport, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("configuration has no scenarios")
	}

	seed := config.Seed
	if seed == 0 {
		seed = seedFunc()
	}
	ce.Logger.Debugf("running %d scenarios with seed %d", len(config.Scenarios), seed)

	summaries := make([]domain.ScenarioSummary, len(config.Scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i := range config.Scenarios {
		idx := i
		scenario := config.Scenarios[i].Clone()
		g.Go(func() error {
			rng := newRand(seed + int64(idx))
			summary, err := ce.ProjectScenario(gctx, config.Company, config.Assets, scenario, rng)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
			summaries[idx] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.ProjectionReport{
		Company:      config.Company.Name,
		BaseCurrency: ce.Rates.BaseCode(),
		TaxYear:      ce.Rules.Year,
		Scenarios:    summaries,
		Comparison:   ce.compareScenarios(summaries),
		Assumptions:  config.GenerateAssumptions(),
	}, nil
}

// RunPayroll computes the configuration's employee register as one batch.
func (ce *CalculationEngine) RunPayroll(config *domain.Configuration) domain.PayrollBatchResult {
	return ce.Payroll.CalculateBatch(config.Employees)
}

// RunPayrollYear computes a full year of monthly payroll, paying each employee's
// bonus in bonusMonths.
func (ce *CalculationEngine) RunPayrollYear(config *domain.Configuration, bonusMonths []int) (domain.PayrollBatchResult, error) {
	return ce.Payroll.CalculateYearBatch(config.Employees, bonusMonths)
}
