package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a configuration document, fills in defaults and validates the result.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	explicit, err := explicitRuleKeys(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config, explicit)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills every zero-valued rule from the 2025 rule set, defaults the
// company period settings and assigns ids to assets, scenarios, periods and employees
// that have none.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	ip.applyDefaults(config, nil)
}

func (ip *InputParser) applyDefaults(config *domain.Configuration, explicit RuleKeys) {
	config.Rules = MergeRules(config.Rules, calculation.DefaultRules2025(), explicit)

	company := &config.Company
	if company.PeriodType == "" {
		company.PeriodType = domain.PeriodAnnual
	}
	if company.StartYear == 0 {
		company.StartYear = config.Rules.Year
	}
	if company.PeriodCount == 0 {
		company.PeriodCount = company.PeriodType.PeriodsPerYear()
	}

	for i := range config.Assets {
		if config.Assets[i].ID == "" {
			config.Assets[i].ID = uuid.NewString()
		}
		if config.Assets[i].CostCurrency == "" {
			config.Assets[i].CostCurrency = config.Rules.BaseCurrency
		}
	}

	for i := range config.Scenarios {
		s := &config.Scenarios[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.Type == "" {
			s.Type = domain.ScenarioCustom
			if s.IsBase {
				s.Type = domain.ScenarioBase
			}
		}
		if s.Type == domain.ScenarioBase {
			s.IsBase = true
		}
		for j := range s.Periods {
			p := &s.Periods[j]
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			if p.Type == "" {
				p.Type = company.PeriodType
			}
			if p.Sequence == 0 {
				p.Sequence = 1
			}
			if p.Label == "" {
				p.Label = calculation.PeriodLabel(p.Type, p.Year, p.Sequence)
			}
		}
	}

	for i := range config.Employees {
		if config.Employees[i].ID == "" {
			config.Employees[i].ID = uuid.NewString()
		}
	}
}

// RuleKeys is the set of rule keys a configuration document sets explicitly, in
// dotted YAML form such as "levy_rate" or "nssa.contribution_cap".
type RuleKeys map[string]bool

// explicitRuleKeys lists the keys present under the document's rules block. Keys
// with a null value count as absent.
func explicitRuleKeys(data []byte) (RuleKeys, error) {
	var doc struct {
		Rules map[string]interface{} `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	keys := RuleKeys{}
	for key, value := range doc.Rules {
		if value == nil {
			continue
		}
		keys[key] = true
		if nested, ok := value.(map[string]interface{}); ok {
			for sub, v := range nested {
				if v != nil {
					keys[key+"."+sub] = true
				}
			}
		}
	}
	return keys, nil
}

// MergeRules returns r with unset fields taken from def. A numeric field is unset
// when it is zero and not listed in explicit, so an explicit 0 survives; a nil set
// treats every zero as unset. Year, base currency and tables are unset when empty,
// and tables are replaced whole, never merged band by band.
func MergeRules(r, def domain.TaxRules, explicit RuleKeys) domain.TaxRules {
	if r.Year == 0 {
		r.Year = def.Year
	}
	if r.BaseCurrency == "" {
		r.BaseCurrency = def.BaseCurrency
	}
	orDefault := func(key string, v *decimal.Decimal, d decimal.Decimal) {
		if v.IsZero() && !explicit[key] {
			*v = d
		}
	}
	orDefault("corporate_rate", &r.CorporateRate, def.CorporateRate)
	orDefault("levy_rate", &r.LevyRate, def.LevyRate)
	orDefault("vat_rate", &r.VATRate, def.VATRate)
	orDefault("nssa.employee_rate", &r.NSSA.EmployeeRate, def.NSSA.EmployeeRate)
	orDefault("nssa.employer_rate", &r.NSSA.EmployerRate, def.NSSA.EmployerRate)
	orDefault("nssa.monthly_insurable_cap", &r.NSSA.MonthlyInsurableCap, def.NSSA.MonthlyInsurableCap)
	orDefault("nssa.contribution_cap", &r.NSSA.ContributionCap, def.NSSA.ContributionCap)
	orDefault("bonus_tax_free_threshold", &r.BonusTaxFreeThreshold, def.BonusTaxFreeThreshold)
	orDefault("zimdef_rate", &r.ZimdefRate, def.ZimdefRate)
	orDefault("max_employer_levy_rate", &r.MaxEmployerLevyRate, def.MaxEmployerLevyRate)

	if len(r.AllowanceRates) == 0 {
		r.AllowanceRates = def.AllowanceRates
	}
	if len(r.PAYEBrackets) == 0 {
		r.PAYEBrackets = def.PAYEBrackets
	}
	if len(r.Currencies) == 0 {
		r.Currencies = def.Currencies
	}
	if len(r.ExchangeRateScenarios) == 0 {
		r.ExchangeRateScenarios = def.ExchangeRateScenarios
	}
	return r
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateRules(&config.Rules); err != nil {
		return fmt.Errorf("rules validation failed: %w", err)
	}

	rates := config.Rules.RateTable()

	if err := ip.validateCompany(&config.Company, rates); err != nil {
		return fmt.Errorf("company validation failed: %w", err)
	}

	for i, asset := range config.Assets {
		if err := ip.validateAsset(&asset); err != nil {
			return fmt.Errorf("asset %d (%s) validation failed: %w", i, asset.Name, err)
		}
	}

	// Validate scenarios
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario, rates); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}
	set, err := calculation.NewScenarioSet(config.Scenarios...)
	if err != nil {
		return fmt.Errorf("scenario set: %w", err)
	}
	if _, ok := set.Base(); !ok {
		return fmt.Errorf("exactly one base scenario is required, found none")
	}

	for i, employee := range config.Employees {
		if err := ip.validateEmployee(&employee); err != nil {
			return fmt.Errorf("employee %d (%s) validation failed: %w", i, employee.Name, err)
		}
	}

	return nil
}

// validateRules validates rates, tables and currencies of a rule set
func (ip *InputParser) validateRules(rules *domain.TaxRules) error {
	one := decimal.NewFromInt(1)
	for name, rate := range map[string]decimal.Decimal{
		"corporate rate":         rules.CorporateRate,
		"levy rate":              rules.LevyRate,
		"VAT rate":               rules.VATRate,
		"NSSA employee rate":     rules.NSSA.EmployeeRate,
		"NSSA employer rate":     rules.NSSA.EmployerRate,
		"ZIMDEF rate":            rules.ZimdefRate,
		"max employer levy rate": rules.MaxEmployerLevyRate,
	} {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if rules.NSSA.MonthlyInsurableCap.IsNegative() || rules.NSSA.ContributionCap.IsNegative() {
		return fmt.Errorf("NSSA caps cannot be negative")
	}
	if rules.BonusTaxFreeThreshold.IsNegative() {
		return fmt.Errorf("bonus tax-free threshold cannot be negative")
	}

	if err := calculation.ValidateBrackets(rules.PAYEBrackets); err != nil {
		return fmt.Errorf("PAYE brackets: %w", err)
	}
	if len(rules.CorporateBrackets) > 0 {
		if err := calculation.ValidateBrackets(rules.CorporateBrackets); err != nil {
			return fmt.Errorf("corporate brackets: %w", err)
		}
	}

	for category, rate := range rules.AllowanceRates {
		if !category.Valid() {
			return fmt.Errorf("unknown asset category %q", category)
		}
		if rate.Special.IsNegative() || rate.Accelerated.IsNegative() || rate.WearTear.IsNegative() {
			return fmt.Errorf("allowance rates for %s cannot be negative", category)
		}
	}

	seen := make(map[string]bool, len(rules.Currencies))
	for _, c := range rules.Currencies {
		if c.Code == "" {
			return fmt.Errorf("currency code is required")
		}
		if seen[c.Code] {
			return fmt.Errorf("duplicate currency %s", c.Code)
		}
		seen[c.Code] = true
		if !c.RateToBase.IsPositive() && c.Code != rules.BaseCurrency {
			return fmt.Errorf("currency %s must have a positive rate to base", c.Code)
		}
	}
	if _, ok := rules.RateTable().Currency(rules.BaseCurrency); !ok {
		return fmt.Errorf("base currency %s is not in the currency list", rules.BaseCurrency)
	}

	for name, vol := range rules.ExchangeRateScenarios {
		if vol.IsNegative() {
			return fmt.Errorf("volatility of exchange rate scenario %q cannot be negative", name)
		}
	}
	return nil
}

// validateCompany validates the company profile
func (ip *InputParser) validateCompany(company *domain.CompanyProfile, rates domain.RateTable) error {
	if company.Name == "" {
		return fmt.Errorf("company name is required")
	}
	if company.BaseRevenue.IsNegative() {
		return fmt.Errorf("base revenue cannot be negative")
	}
	if company.BaseExpenses.IsNegative() {
		return fmt.Errorf("base expenses cannot be negative")
	}
	if company.OpeningLosses.IsNegative() {
		return fmt.Errorf("opening losses cannot be negative")
	}
	if !company.PeriodType.Valid() {
		return fmt.Errorf("period type must be 'annual', 'quarterly', or 'monthly'")
	}
	if company.PeriodCount <= 0 || company.PeriodCount > 120 {
		return fmt.Errorf("period count must be between 1 and 120")
	}
	if company.ReportingCode != "" {
		if _, ok := rates.Currency(company.ReportingCode); !ok {
			return fmt.Errorf("unknown reporting currency %s", company.ReportingCode)
		}
	}
	return ip.validateCurrencyData("default currency data", company.DefaultCurrency, rates)
}

// validateCurrencyData checks mix codes and weights plus the reporting currency
func (ip *InputParser) validateCurrencyData(where string, cd domain.CurrencyData, rates domain.RateTable) error {
	if err := validateMix(cd.Mix, rates); err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	if cd.InflationAdjustmentFactor.IsNegative() {
		return fmt.Errorf("%s: inflation adjustment factor cannot be negative", where)
	}
	if cd.ReportingCurrency != "" {
		if _, ok := rates.Currency(cd.ReportingCurrency); !ok {
			return fmt.Errorf("%s: unknown reporting currency %s", where, cd.ReportingCurrency)
		}
	}
	return nil
}

func validateMix(mix map[string]decimal.Decimal, rates domain.RateTable) error {
	sum := decimal.Zero
	for code, w := range mix {
		if _, ok := rates.Currency(code); !ok {
			return fmt.Errorf("unknown currency %s in mix", code)
		}
		if w.IsNegative() {
			return fmt.Errorf("mix weight for %s cannot be negative", code)
		}
		sum = sum.Add(w)
	}
	if sum.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("mix weights sum to %s, must be at most 1", sum.String())
	}
	return nil
}

// validateAsset validates a single capital asset
func (ip *InputParser) validateAsset(asset *domain.Asset) error {
	if !asset.Category.Valid() {
		return fmt.Errorf("unknown asset category %q", asset.Category)
	}
	if asset.Cost.IsNegative() || asset.CostBase.IsNegative() {
		return fmt.Errorf("cost cannot be negative")
	}
	if wdv := asset.WrittenDownValue; wdv != nil && wdv.IsNegative() {
		return fmt.Errorf("written-down value cannot be negative")
	}
	if asset.AcquiredIn() <= 0 {
		return fmt.Errorf("acquisition date or year is required")
	}
	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.Scenario, rates domain.RateTable) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	d := scenario.Drivers
	if d.RevenueGrowth.LessThanOrEqual(decimal.NewFromInt(-1)) || d.ExpenseGrowth.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("growth rates must be greater than -100%%")
	}
	if d.ExpenseMultiplier.IsNegative() {
		return fmt.Errorf("expense multiplier cannot be negative")
	}
	if d.Volatility != nil && (d.Volatility.IsNegative() || d.Volatility.GreaterThan(decimal.NewFromInt(1))) {
		return fmt.Errorf("volatility must be between 0 and 1")
	}
	if err := validateMix(d.CurrencyMix, rates); err != nil {
		return fmt.Errorf("drivers: %w", err)
	}

	for _, p := range scenario.Periods {
		if !p.Type.Valid() {
			return fmt.Errorf("period %s: invalid type %q", p.Label, p.Type)
		}
		if p.Year <= 0 {
			return fmt.Errorf("period %s: year is required", p.Label)
		}
		if p.Sequence < 1 || p.Sequence > p.Type.PeriodsPerYear() {
			return fmt.Errorf("period %s: sequence must be between 1 and %d", p.Label, p.Type.PeriodsPerYear())
		}
		if err := ip.validateCurrencyData("period "+p.Label, p.CurrencyData, rates); err != nil {
			return err
		}
	}
	return nil
}

// validateEmployee validates a single employee's payroll record
func (ip *InputParser) validateEmployee(employee *domain.EmployeePayrollRecord) error {
	if employee.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if employee.BasicSalary.IsNegative() {
		return fmt.Errorf("basic salary cannot be negative")
	}
	if employee.PreviousBonusYTD.IsNegative() {
		return fmt.Errorf("previous bonus YTD cannot be negative")
	}
	if employee.APWCRate.IsNegative() || employee.APWCRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("APWC rate must be between 0 and 1")
	}
	a := employee.Allowances
	for _, v := range []decimal.Decimal{a.Living, a.Medical, a.Transport, a.Housing, a.Commission, a.Bonus, a.Overtime} {
		if v.IsNegative() {
			return fmt.Errorf("allowances cannot be negative")
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	d := decimal.NewFromFloat
	rules := calculation.DefaultRules2025()
	volatile := d(0.10)

	config := &domain.Configuration{
		Rules: rules,
		Company: domain.CompanyProfile{
			Name:          "Msasa Engineering (Pvt) Ltd",
			BaseRevenue:   decimal.NewFromInt(1200000),
			BaseExpenses:  decimal.NewFromInt(850000),
			OpeningLosses: decimal.NewFromInt(40000),
			StartYear:     rules.Year,
			PeriodType:    domain.PeriodAnnual,
			PeriodCount:   3,
			ReportingCode: "USD",
			DefaultCurrency: domain.CurrencyData{
				Mix:                       map[string]decimal.Decimal{"ZWG": d(0.30), "ZAR": d(0.10)},
				ExchangeRateScenario:      "moderate",
				InflationAdjustmentFactor: d(1.05),
			},
		},
		Assets: []domain.Asset{
			{Name: "Delivery truck", Category: domain.CategoryMotorVehicles, AcquisitionYear: 2025, Cost: decimal.NewFromInt(60000), CostCurrency: "USD"},
			{Name: "CNC lathe", Category: domain.CategoryMoveableAssets, AcquisitionYear: 2024, Cost: decimal.NewFromInt(150000), CostCurrency: "USD"},
			{Name: "Workshop", Category: domain.CategoryIndustrialBuildings, AcquisitionYear: 2023, Cost: decimal.NewFromInt(400000), CostCurrency: "USD"},
			{Name: "Laptops", Category: domain.CategoryITEquipment, AcquisitionYear: 2025, Cost: decimal.NewFromInt(18000), CostCurrency: "USD"},
		},
		Scenarios: []domain.Scenario{
			{
				Name:   "Base case",
				Type:   domain.ScenarioBase,
				IsBase: true,
				Drivers: domain.Drivers{
					RevenueGrowth: d(0.05),
					ExpenseGrowth: d(0.04),
				},
			},
			{
				Name: "Regional expansion",
				Type: domain.ScenarioGrowth,
				Drivers: domain.Drivers{
					RevenueGrowth: d(0.15),
					ExpenseGrowth: d(0.10),
				},
			},
			{
				Name: "Cost reduction",
				Type: domain.ScenarioCostCutting,
				Drivers: domain.Drivers{
					RevenueGrowth:     d(0.03),
					ExpenseGrowth:     d(0.02),
					ExpenseMultiplier: d(0.90),
				},
			},
			{
				Name: "ZiG-heavy trading",
				Type: domain.ScenarioCurrencyHeavy,
				Drivers: domain.Drivers{
					RevenueGrowth:        d(0.05),
					ExpenseGrowth:        d(0.04),
					CurrencyMix:          map[string]decimal.Decimal{"ZWG": d(0.60), "ZAR": d(0.10)},
					ExchangeRateScenario: "volatile",
					Volatility:           &volatile,
				},
			},
		},
		Employees: []domain.EmployeePayrollRecord{
			{
				Name:        "Tendai Moyo",
				Position:    "Workshop manager",
				Department:  "Operations",
				BasicSalary: decimal.NewFromInt(1800),
				Allowances: domain.Allowances{
					Housing:   decimal.NewFromInt(300),
					Transport: decimal.NewFromInt(150),
				},
				APWCRate: d(0.012),
			},
			{
				Name:        "Rudo Ncube",
				Position:    "Accountant",
				Department:  "Finance",
				BasicSalary: decimal.NewFromInt(1200),
				Allowances: domain.Allowances{
					Medical: decimal.NewFromInt(80),
					Bonus:   decimal.NewFromInt(1200),
				},
				APWCRate:         d(0.012),
				PreviousBonusYTD: decimal.NewFromInt(200),
			},
			{
				Name:        "Blessing Chikwanha",
				Position:    "Machinist",
				Department:  "Operations",
				BasicSalary: decimal.NewFromInt(450),
				Allowances: domain.Allowances{
					Overtime: decimal.NewFromInt(60),
				},
				APWCRate: d(0.012),
			},
		},
		Seed: 2025,
	}
	ip.ApplyDefaults(config)
	return config
}
