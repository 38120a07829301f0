package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// AllowanceScheduler computes capital allowances for an asset register over a set of
// periods. It only reads the assets it is given.
type AllowanceScheduler struct {
	Rates     map[domain.AssetCategory]domain.AllowanceRate
	CapAtCost bool
	Prorate   bool // spread annual claims over sub-annual periods
	Logger    Logger
}

// NewAllowanceScheduler creates a scheduler from the rule set's category rates
func NewAllowanceScheduler(rules domain.TaxRules, logger Logger) *AllowanceScheduler {
	return &AllowanceScheduler{
		Rates:     rules.AllowanceRates,
		CapAtCost: rules.CapAllowancesAtCost,
		Prorate:   rules.ProrateSubAnnualPeriods,
		Logger:    orNop(logger),
	}
}

// RateFor returns the category rates. Unknown categories yield zero rates and ErrUnknownCategory.
func (as *AllowanceScheduler) RateFor(category domain.AssetCategory) (domain.AllowanceRate, error) {
	r, ok := as.Rates[category]
	if !ok {
		return domain.AllowanceRate{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return r, nil
}

// ScheduleByAsset returns, per asset id, the allowance in each period (in period order).
//
// Each period claims zero before the acquisition year, cost * max(special, accelerated)
// when the period falls in the acquisition year and cost * wear-and-tear after it.
// With Prorate a quarterly or monthly period claims its share of the annual figure.
// With CapAtCost the running total per asset never exceeds its cost.
func (as *AllowanceScheduler) ScheduleByAsset(assets []domain.Asset, periods []domain.Period) map[string][]domain.AssetAllowance {
	out := make(map[string][]domain.AssetAllowance, len(assets))
	for i, rows := range as.scheduleRows(assets, periods) {
		id := assets[i].ID
		out[id] = append(out[id], rows...)
	}
	return out
}

// scheduleRows computes the per-period rows for each asset, index-aligned with assets.
func (as *AllowanceScheduler) scheduleRows(assets []domain.Asset, periods []domain.Period) [][]domain.AssetAllowance {
	out := make([][]domain.AssetAllowance, len(assets))
	for i, asset := range assets {
		rate, err := as.RateFor(asset.Category)
		if err != nil {
			as.Logger.Warnf("asset %s: %v; no allowance claimed", asset.ID, err)
		}
		cost := asset.AllowanceBase()
		acquired := asset.AcquiredIn()
		cumulative := decimal.Zero
		rows := make([]domain.AssetAllowance, 0, len(periods))
		for _, p := range periods {
			row := domain.AssetAllowance{AssetID: asset.ID, PeriodID: p.ID}
			if cost.IsPositive() && p.Year >= acquired {
				if p.Year == acquired {
					row.FirstYear = true
					row.Allowance = cost.Mul(rate.FirstYearRate())
				} else {
					row.Allowance = cost.Mul(rate.WearTear)
				}
				if as.Prorate {
					row.Allowance = row.Allowance.Div(decimal.NewFromInt(int64(p.Type.PeriodsPerYear())))
				}
				if as.CapAtCost {
					remaining := decimal.Max(decimal.Zero, cost.Sub(cumulative))
					row.Allowance = decimal.Min(row.Allowance, remaining)
				}
			}
			cumulative = cumulative.Add(row.Allowance)
			row.Cumulative = cumulative
			rows = append(rows, row)
		}
		out[i] = rows
	}
	return out
}

// Schedule returns the aggregate allowance across all assets keyed by period id.
// Every period id is present, with zero when nothing is claimed.
func (as *AllowanceScheduler) Schedule(assets []domain.Asset, periods []domain.Period) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(periods))
	for _, p := range periods {
		totals[p.ID] = decimal.Zero
	}
	for _, rows := range as.scheduleRows(assets, periods) {
		for _, row := range rows {
			totals[row.PeriodID] = totals[row.PeriodID].Add(row.Allowance)
		}
	}
	return totals
}

// ApplyAllowances returns new asset values with written-down values reduced by the
// allowances claimed over the periods. An asset with no written-down value starts
// from cost; one already written off stays at zero. The value never rises and never
// goes below zero. The input slice is not modified.
func (as *AllowanceScheduler) ApplyAllowances(assets []domain.Asset, periods []domain.Period) []domain.Asset {
	schedule := as.scheduleRows(assets, periods)
	out := make([]domain.Asset, len(assets))
	for i, asset := range assets {
		updated := asset
		wdv := asset.BookValue()
		for _, row := range schedule[i] {
			wdv = wdv.Sub(row.Allowance)
		}
		wdv = decimal.Max(decimal.Zero, decimal.Min(wdv, asset.BookValue()))
		updated.WrittenDownValue = &wdv
		out[i] = updated
	}
	return out
}
