package calculation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zimtax/taxplanner/internal/domain"
)

// TestCalculateBatch tests input ordering and totals across a concurrent batch
func TestCalculateBatch(t *testing.T) {
	pc := NewPayrollCalculator(DefaultRules2025(), nil)

	records := make([]domain.EmployeePayrollRecord, 40)
	for i := range records {
		records[i] = domain.EmployeePayrollRecord{
			ID:          fmt.Sprintf("emp-%02d", i),
			BasicSalary: decimal.NewFromInt(int64(250 + i*125)),
			Allowances:  domain.Allowances{Transport: dec("50")},
			APWCRate:    dec("0.01"),
		}
	}

	batch := pc.CalculateBatch(records)
	require.Len(t, batch.Results, len(records))

	var totalTax, totalNet decimal.Decimal
	for i, r := range batch.Results {
		assert.Equal(t, records[i].ID, r.EmployeeID)
		single := pc.Calculate(records[i])
		assertDecimal(t, single.NetSalary, r.NetSalary, r.EmployeeID)
		totalTax = totalTax.Add(single.TotalTax)
		totalNet = totalNet.Add(single.NetSalary)
	}

	assert.Equal(t, len(records), batch.Totals.Employees)
	assertDecimal(t, totalTax, batch.Totals.TotalTax)
	assertDecimal(t, totalNet, batch.Totals.TotalNet)
}

func TestCalculateBatchEmpty(t *testing.T) {
	pc := NewPayrollCalculator(DefaultRules2025(), nil)
	batch := pc.CalculateBatch(nil)
	assert.Empty(t, batch.Results)
	assert.Equal(t, 0, batch.Totals.Employees)
}

// TestCalculateYearBatch tests month placement of bonuses and whole-year totals
func TestCalculateYearBatch(t *testing.T) {
	pc := NewPayrollCalculator(DefaultRules2025(), nil)
	records := []domain.EmployeePayrollRecord{
		{ID: "a", BasicSalary: dec("1500"), Allowances: domain.Allowances{Bonus: dec("600")}},
		{ID: "b", BasicSalary: dec("800")},
	}

	batch, err := pc.CalculateYearBatch(records, []int{6, 12})
	require.NoError(t, err)
	require.Len(t, batch.Results, 24)
	assert.Equal(t, 2, batch.Totals.Employees)

	first := batch.Results[:12]
	assert.Equal(t, "a", first[0].EmployeeID)
	assert.Equal(t, 1, first[0].Month)
	assert.True(t, first[0].BonusTaxFree.IsZero())
	assertDecimal(t, dec("600"), first[5].BonusTaxFree)
	assertDecimal(t, dec("100"), first[11].BonusTaxFree)
	assertDecimal(t, dec("500"), first[11].BonusTaxable)
	assertDecimal(t, dec("1200"), first[11].NewBonusYTD)
	assert.Equal(t, "b", batch.Results[12].EmployeeID)
	assert.Equal(t, 12, batch.Results[23].Month)

	var gross decimal.Decimal
	for _, r := range batch.Results {
		gross = gross.Add(r.TotalGross)
	}
	assertDecimal(t, gross, batch.Totals.TotalGross)
	assertDecimal(t, dec("28800"), batch.Totals.TotalGross, "27600 salary plus 1200 bonus")
}

func TestCalculateYearBatchRejectsBadMonth(t *testing.T) {
	pc := NewPayrollCalculator(DefaultRules2025(), nil)
	_, err := pc.CalculateYearBatch([]domain.EmployeePayrollRecord{{ID: "a"}}, []int{13})
	assert.Error(t, err)
}
