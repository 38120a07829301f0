package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/config"
	"github.com/zimtax/taxplanner/internal/domain"
)

const fixture = "../testdata/example_config.yaml"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func load(t *testing.T) (*domain.Configuration, *calculation.CalculationEngine) {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(fixture)
	require.NoError(t, err)
	return cfg, calculation.NewCalculationEngine(cfg.Rules)
}

func summaryByID(t *testing.T, report *domain.ProjectionReport, id string) domain.ScenarioSummary {
	t.Helper()
	for _, s := range report.Scenarios {
		if s.ScenarioID == id {
			return s
		}
	}
	t.Fatalf("scenario %s missing from report", id)
	return domain.ScenarioSummary{}
}

func TestEndToEndProjection(t *testing.T) {
	cfg, engine := load(t)
	require.Len(t, cfg.Scenarios, 3)

	report, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Scenarios, 3)
	assert.Equal(t, "Chimanimani Agro Processors", report.Company)
	assert.Equal(t, "USD", report.BaseCurrency)
	assert.NotEmpty(t, report.Assumptions)

	base := summaryByID(t, report, "base")
	require.Len(t, base.Periods, 2)

	// 2025: 200,000 profit, 50,000 losses used, 20,000 first-year allowance on the truck
	first := base.Periods[0].Result
	assertDecimal(t, "200000", first.TaxableBeforeLosses)
	assertDecimal(t, "50000", first.LossesUtilized)
	assertDecimal(t, "20000", first.CapitalAllowances)
	assertDecimal(t, "130000", first.TaxableIncome)
	assertDecimal(t, "31200", first.TaxDue)
	assertDecimal(t, "936", first.Levy)
	assertDecimal(t, "32136", first.TotalTax)
	assertDecimal(t, "0", first.LossesCarriedForward)

	// 2026: 10% revenue and 5% expense growth, wear and tear at 20%
	second := base.Periods[1]
	assertDecimal(t, "550000", second.Revenue)
	assertDecimal(t, "315000", second.Expenses)
	assertDecimal(t, "8000", second.Result.CapitalAllowances)
	assertDecimal(t, "227000", second.Result.TaxableIncome)
	assertDecimal(t, "56114.4", second.Result.TotalTax)

	assertDecimal(t, "88250.4", base.TotalTax)
	assertDecimal(t, "28000", base.TotalAllowances)

	noAllow := summaryByID(t, report, "no-allowances")
	assertDecimal(t, "95172", noAllow.TotalTax)
	assertDecimal(t, "0", noAllow.TotalAllowances)

	cmp := report.Comparison
	assert.Equal(t, "Base", cmp.BaseScenario)
	assert.NotEmpty(t, cmp.LowestTaxScenario)
	assert.NotEmpty(t, cmp.Considerations)
}

func TestProjectionIsReproducible(t *testing.T) {
	cfg, engine := load(t)

	first, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	second, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	a := summaryByID(t, first, "zig-exports")
	b := summaryByID(t, second, "zig-exports")
	assert.True(t, a.TotalTax.Equal(b.TotalTax))
	for i := range a.Periods {
		assert.Equal(t, a.Periods[i].ExchangeRates, b.Periods[i].ExchangeRates)
	}
	assert.Contains(t, a.Periods[0].ExchangeRates, "ZWG")
}

func TestProjectionLeavesConfigurationUntouched(t *testing.T) {
	cfg, engine := load(t)
	_, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	for _, s := range cfg.Scenarios {
		assert.Empty(t, s.Periods, "scenario %s", s.Name)
	}
}

func TestEndToEndPayroll(t *testing.T) {
	cfg, engine := load(t)

	batch := engine.RunPayroll(cfg)
	require.Len(t, batch.Results, 2)

	nyasha := batch.Results[0]
	assert.Equal(t, "emp-001", nyasha.EmployeeID)
	assertDecimal(t, "31.5", nyasha.NSSAEmployee)
	assertDecimal(t, "968.5", nyasha.TaxableGross)
	assertDecimal(t, "207.125", nyasha.PAYE)
	assertDecimal(t, "6.21375", nyasha.AIDSLevy)
	assertDecimal(t, "755.16125", nyasha.NetSalary)
	assertDecimal(t, "10", nyasha.ZimdefContribution)
	assertDecimal(t, "10", nyasha.EmployerLevyContribution)

	kuda := batch.Results[1]
	assertDecimal(t, "1500", kuda.TotalGross)
	assertDecimal(t, "700", kuda.BonusTaxFree)
	assertDecimal(t, "200", kuda.BonusTaxable)
	assertDecimal(t, "768.5", kuda.TaxableGross)
	assertDecimal(t, "157.125", kuda.PAYE)
	assertDecimal(t, "50", kuda.BonusTax)
	assertDecimal(t, "1256.66125", kuda.NetSalary)
	assertDecimal(t, "0.03", kuda.EmployerLevyRate, "APWC rate capped")

	assert.Equal(t, 2, batch.Totals.Employees)
	assertDecimal(t, "2500", batch.Totals.TotalGross)
	assertDecimal(t, "2011.8225", batch.Totals.TotalNet)
}

func TestGrossUpReproducesNet(t *testing.T) {
	cfg, engine := load(t)

	template := cfg.Employees[0]
	target := engine.Payroll.Calculate(template).NetSalary

	res := engine.Payroll.GrossUp(target, template)
	require.True(t, res.Converged)
	assert.True(t, res.BasicSalary.Sub(template.BasicSalary).Abs().LessThan(dec("0.05")),
		"basic %s should be close to %s", res.BasicSalary, template.BasicSalary)
}

func TestMonteCarloOnFixture(t *testing.T) {
	cfg, engine := load(t)

	res, err := engine.RunMonteCarlo(context.Background(), cfg, cfg.Scenarios[2], calculation.MonteCarloConfig{NumSimulations: 25, Seed: 11})
	require.NoError(t, err)
	assert.Len(t, res.Outcomes, 25)
	assert.True(t, res.TotalTax.P10.LessThanOrEqual(res.TotalTax.P90))

	// a scenario without volatility has one outcome only
	flat, err := engine.RunMonteCarlo(context.Background(), cfg, cfg.Scenarios[0], calculation.MonteCarloConfig{NumSimulations: 5, Seed: 11})
	require.NoError(t, err)
	assert.True(t, flat.TotalTax.P10.Equal(flat.TotalTax.P90))
	assertDecimal(t, "88250.4", flat.MeanTotalTax)
}
