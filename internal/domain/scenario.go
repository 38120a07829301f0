package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioType tags what a scenario is meant to explore
type ScenarioType string

const (
	ScenarioBase          ScenarioType = "base"
	ScenarioGrowth        ScenarioType = "growth"
	ScenarioCostCutting   ScenarioType = "cost_cutting"
	ScenarioCurrencyHeavy ScenarioType = "currency_heavy"
	ScenarioCustom        ScenarioType = "custom"
)

// Strategies are tax-optimisation switches. The zero value applies every relief.
type Strategies struct {
	DisableCapitalAllowances   bool `yaml:"disable_capital_allowances" json:"disable_capital_allowances"`
	DisableInflationAdjustment bool `yaml:"disable_inflation_adjustment" json:"disable_inflation_adjustment"`
}

// Drivers are the what-if assumptions applied on top of the company's base figures.
type Drivers struct {
	RevenueGrowth        decimal.Decimal            `yaml:"revenue_growth" json:"revenue_growth"`
	ExpenseGrowth        decimal.Decimal            `yaml:"expense_growth" json:"expense_growth"`
	ExpenseMultiplier    decimal.Decimal            `yaml:"expense_multiplier" json:"expense_multiplier"` // 0 means 1
	CurrencyMix          map[string]decimal.Decimal `yaml:"currency_mix,omitempty" json:"currency_mix,omitempty"`
	ExchangeRateScenario string                     `yaml:"exchange_rate_scenario,omitempty" json:"exchange_rate_scenario,omitempty"`
	Volatility           *decimal.Decimal           `yaml:"volatility,omitempty" json:"volatility,omitempty"` // overrides the named scenario
	Strategies           Strategies                 `yaml:"strategies" json:"strategies"`
}

// Multiplier returns the expense multiplier, treating zero as 1.
func (d Drivers) Multiplier() decimal.Decimal {
	if d.ExpenseMultiplier.IsZero() {
		return decimal.NewFromInt(1)
	}
	return d.ExpenseMultiplier
}

// Clone returns a copy that shares no map or pointer with the receiver.
func (d Drivers) Clone() Drivers {
	out := d
	if d.CurrencyMix != nil {
		out.CurrencyMix = make(map[string]decimal.Decimal, len(d.CurrencyMix))
		for k, v := range d.CurrencyMix {
			out.CurrencyMix[k] = v
		}
	}
	if d.Volatility != nil {
		v := *d.Volatility
		out.Volatility = &v
	}
	return out
}

// Scenario is a named what-if projection owning its own period list.
type Scenario struct {
	ID      string       `yaml:"id" json:"id"`
	Name    string       `yaml:"name" json:"name"`
	Type    ScenarioType `yaml:"type" json:"type"`
	IsBase  bool         `yaml:"is_base" json:"is_base"`
	Drivers Drivers      `yaml:"drivers" json:"drivers"`
	Periods []Period     `yaml:"periods,omitempty" json:"periods,omitempty"`
}

// Clone returns a deep copy of the scenario.
func (s Scenario) Clone() Scenario {
	out := s
	out.Drivers = s.Drivers.Clone()
	out.Periods = ClonePeriods(s.Periods)
	return out
}
