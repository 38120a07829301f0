package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zimtax/taxplanner/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal compares decimals by value so 31.5 and 31.50 are equal
func assertDecimal(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !expected.Equal(actual) {
		assert.Fail(t, "decimal mismatch: expected "+expected.String()+", got "+actual.String(), msgAndArgs...)
	}
}

// testRules returns the default rule set with a 25% corporate rate
func testRules() domain.TaxRules {
	rules := DefaultRules2025()
	rules.CorporateRate = dec("0.25")
	return rules
}
