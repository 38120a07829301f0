package calculation

import "errors"

var (
	// ErrUnknownCurrency is reported when a currency code is absent from the rate table.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrUnknownCategory is reported when an asset category has no allowance rates.
	ErrUnknownCategory = errors.New("unknown asset category")
	// ErrBaseScenario is returned when an operation would remove the base scenario.
	ErrBaseScenario = errors.New("base scenario cannot be deleted")
	// ErrScenarioNotFound is returned for an unknown scenario id.
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrPeriodNotFound is returned for an unknown period id.
	ErrPeriodNotFound = errors.New("period not found")
)
