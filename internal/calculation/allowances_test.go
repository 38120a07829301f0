package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zimtax/taxplanner/internal/domain"
)

func spikeRules(capAtCost bool) domain.TaxRules {
	rules := DefaultRules2025()
	rules.AllowanceRates = map[domain.AssetCategory]domain.AllowanceRate{
		domain.CategoryMoveableAssets: {Special: dec("0.5"), Accelerated: dec("0.25"), WearTear: dec("0.1")},
	}
	rules.CapAllowancesAtCost = capAtCost
	return rules
}

// TestAllowanceFirstYearSpike tests the one-time accelerated claim followed by wear and tear
func TestAllowanceFirstYearSpike(t *testing.T) {
	scheduler := NewAllowanceScheduler(spikeRules(false), nil)
	periods := GeneratePeriods(domain.PeriodAnnual, 2024, 15)
	asset := domain.Asset{ID: "a1", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000")}

	schedule := scheduler.Schedule([]domain.Asset{asset}, periods)
	require.Len(t, schedule, len(periods))

	assertDecimal(t, decimal.Zero, schedule[periods[0].ID], "before acquisition")
	assertDecimal(t, dec("500"), schedule[periods[1].ID], "acquisition year")
	for _, p := range periods[2:] {
		assertDecimal(t, dec("100"), schedule[p.ID], "year %d", p.Year)
	}
}

func TestAllowanceAcquisitionDateWins(t *testing.T) {
	scheduler := NewAllowanceScheduler(spikeRules(false), nil)
	periods := GeneratePeriods(domain.PeriodAnnual, 2025, 2)
	asset := domain.Asset{
		ID:              "a1",
		Category:        domain.CategoryMoveableAssets,
		AcquisitionDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AcquisitionYear: 2025,
		Cost:            dec("1000"),
	}

	schedule := scheduler.Schedule([]domain.Asset{asset}, periods)
	assert.True(t, schedule[periods[0].ID].IsZero())
	assertDecimal(t, dec("500"), schedule[periods[1].ID])
}

// TestAllowanceQuarterlyPeriods tests that every period of the acquisition year carries
// the first-year claim and every later period the full wear-and-tear claim
func TestAllowanceQuarterlyPeriods(t *testing.T) {
	scheduler := NewAllowanceScheduler(spikeRules(false), nil)
	periods := GeneratePeriods(domain.PeriodQuarterly, 2025, 8)
	asset := domain.Asset{ID: "a1", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000")}

	schedule := scheduler.Schedule([]domain.Asset{asset}, periods)
	for _, p := range periods[:4] {
		assertDecimal(t, dec("500"), schedule[p.ID], p.Label)
	}
	for _, p := range periods[4:] {
		assertDecimal(t, dec("100"), schedule[p.ID], p.Label)
	}
}

func TestAllowanceQuarterlyProration(t *testing.T) {
	rules := spikeRules(false)
	rules.ProrateSubAnnualPeriods = true
	scheduler := NewAllowanceScheduler(rules, nil)
	periods := GeneratePeriods(domain.PeriodQuarterly, 2025, 8)
	asset := domain.Asset{ID: "a1", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000")}

	schedule := scheduler.Schedule([]domain.Asset{asset}, periods)
	for _, p := range periods[:4] {
		assertDecimal(t, dec("125"), schedule[p.ID], p.Label)
	}
	for _, p := range periods[4:] {
		assertDecimal(t, dec("25"), schedule[p.ID], p.Label)
	}
}

// TestAllowanceCapAtCost tests the optional cumulative ceiling
func TestAllowanceCapAtCost(t *testing.T) {
	rules := spikeRules(true)
	rules.AllowanceRates[domain.CategoryMoveableAssets] = domain.AllowanceRate{Special: dec("0.5"), WearTear: dec("0.3")}
	scheduler := NewAllowanceScheduler(rules, nil)
	periods := GeneratePeriods(domain.PeriodAnnual, 2025, 4)
	asset := domain.Asset{ID: "a1", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000")}

	rows := scheduler.ScheduleByAsset([]domain.Asset{asset}, periods)["a1"]
	require.Len(t, rows, 4)
	expected := []string{"500", "300", "200", "0"}
	for i, want := range expected {
		assertDecimal(t, dec(want), rows[i].Allowance, "period %d", i)
	}
	assertDecimal(t, dec("1000"), rows[3].Cumulative)
	assert.True(t, rows[0].FirstYear)
	assert.False(t, rows[1].FirstYear)
}

func TestAllowanceUnknownCategory(t *testing.T) {
	scheduler := NewAllowanceScheduler(spikeRules(false), nil)
	periods := GeneratePeriods(domain.PeriodAnnual, 2025, 2)
	assets := []domain.Asset{
		{ID: "a1", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000")},
		{ID: "a2", Category: "spaceships", AcquisitionYear: 2025, Cost: dec("9999")},
	}

	_, err := scheduler.RateFor("spaceships")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	schedule := scheduler.Schedule(assets, periods)
	assertDecimal(t, dec("500"), schedule[periods[0].ID])
	assertDecimal(t, dec("100"), schedule[periods[1].ID])
}

func TestAllowanceUsesBaseCost(t *testing.T) {
	scheduler := NewAllowanceScheduler(spikeRules(false), nil)
	periods := GeneratePeriods(domain.PeriodAnnual, 2025, 1)
	asset := domain.Asset{
		ID:              "a1",
		Category:        domain.CategoryMoveableAssets,
		AcquisitionYear: 2025,
		Cost:            dec("18500"),
		CostCurrency:    "ZAR",
		CostBase:        dec("1000"),
	}

	schedule := scheduler.Schedule([]domain.Asset{asset}, periods)
	assertDecimal(t, dec("500"), schedule[periods[0].ID])
}

// TestApplyAllowances tests that written-down values fall without touching the input
func TestApplyAllowances(t *testing.T) {
	scheduler := NewAllowanceScheduler(spikeRules(false), nil)
	periods := GeneratePeriods(domain.PeriodAnnual, 2025, 5)
	partial := dec("300")
	assets := []domain.Asset{
		{ID: "a1", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000")},
		{ID: "a2", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000"), WrittenDownValue: &partial},
	}

	updated := scheduler.ApplyAllowances(assets, periods)
	require.Len(t, updated, 2)
	require.NotNil(t, updated[0].WrittenDownValue)
	assertDecimal(t, dec("100"), *updated[0].WrittenDownValue) // 1000 - 500 - 4*100
	assertDecimal(t, decimal.Zero, *updated[1].WrittenDownValue)

	assert.Nil(t, assets[0].WrittenDownValue, "input must not change")
	assertDecimal(t, dec("300"), *assets[1].WrittenDownValue)
}

// TestApplyAllowancesWrittenOffAssetStaysAtZero tests that applying allowances period
// after period never raises the written-down value, including once it reaches zero
func TestApplyAllowancesWrittenOffAssetStaysAtZero(t *testing.T) {
	scheduler := NewAllowanceScheduler(spikeRules(false), nil)
	assets := []domain.Asset{{ID: "a1", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2025, Cost: dec("1000")}}

	writtenOff := scheduler.ApplyAllowances(assets, GeneratePeriods(domain.PeriodAnnual, 2025, 6))
	require.NotNil(t, writtenOff[0].WrittenDownValue)
	assert.True(t, writtenOff[0].WrittenDownValue.IsZero())

	next := scheduler.ApplyAllowances(writtenOff, GeneratePeriods(domain.PeriodAnnual, 2031, 1))
	assert.True(t, next[0].WrittenDownValue.IsZero(), "got %s", next[0].WrittenDownValue)

	previous := assets[0].BookValue()
	current := assets
	for year := 2025; year <= 2032; year++ {
		current = scheduler.ApplyAllowances(current, GeneratePeriods(domain.PeriodAnnual, year, 1))
		value := *current[0].WrittenDownValue
		assert.True(t, value.LessThanOrEqual(previous), "year %d: %s rose above %s", year, value, previous)
		previous = value
	}
	assert.True(t, previous.IsZero())
}
