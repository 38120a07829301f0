package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a registered capital asset. WrittenDownValue only ever decreases and is
// updated by producing a new Asset value, never in place. A nil WrittenDownValue
// means no allowance has been applied yet; zero means fully written off.
type Asset struct {
	ID               string           `yaml:"id" json:"id"`
	Name             string           `yaml:"name" json:"name"`
	Category         AssetCategory    `yaml:"category" json:"category"`
	AcquisitionDate  time.Time        `yaml:"acquisition_date,omitempty" json:"acquisition_date,omitempty"`
	AcquisitionYear  int              `yaml:"acquisition_year,omitempty" json:"acquisition_year,omitempty"`
	Cost             decimal.Decimal  `yaml:"cost" json:"cost"`
	CostCurrency     string           `yaml:"cost_currency" json:"cost_currency"`
	CostBase         decimal.Decimal  `yaml:"cost_base,omitempty" json:"cost_base,omitempty"`
	WrittenDownValue *decimal.Decimal `yaml:"written_down_value,omitempty" json:"written_down_value,omitempty"`
}

// AcquiredIn returns the acquisition year, preferring the full date when present.
func (a Asset) AcquiredIn() int {
	if !a.AcquisitionDate.IsZero() {
		return a.AcquisitionDate.Year()
	}
	return a.AcquisitionYear
}

// AllowanceBase is the cost in base currency the allowance is computed on.
func (a Asset) AllowanceBase() decimal.Decimal {
	if !a.CostBase.IsZero() {
		return a.CostBase
	}
	return a.Cost
}

// BookValue is the written-down value, or the allowance base while no allowance has
// been applied.
func (a Asset) BookValue() decimal.Decimal {
	if a.WrittenDownValue != nil {
		return *a.WrittenDownValue
	}
	return a.AllowanceBase()
}

// AssetAllowance is one asset's claim in one period
type AssetAllowance struct {
	AssetID    string          `json:"asset_id"`
	PeriodID   string          `json:"period_id"`
	Allowance  decimal.Decimal `json:"allowance"`
	FirstYear  bool            `json:"first_year"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// CloneAssets copies an asset register, including written-down values.
func CloneAssets(assets []Asset) []Asset {
	if assets == nil {
		return nil
	}
	out := make([]Asset, len(assets))
	for i, a := range assets {
		if a.WrittenDownValue != nil {
			v := *a.WrittenDownValue
			a.WrittenDownValue = &v
		}
		out[i] = a
	}
	return out
}
