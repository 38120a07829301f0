package dateutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestQuarterOf tests quarter determination from a date
func TestQuarterOf(t *testing.T) {
	tests := []struct {
		month    time.Month
		expected int
	}{
		{time.January, 1},
		{time.March, 1},
		{time.April, 2},
		{time.June, 2},
		{time.July, 3},
		{time.October, 4},
		{time.December, 4},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			date := time.Date(2025, tt.month, 15, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.expected, QuarterOf(date))
		})
	}
}

func TestMonthsPerPeriod(t *testing.T) {
	tests := []struct {
		periodsPerYear int
		expected       int
	}{
		{1, 12},
		{4, 3},
		{12, 1},
		{0, 12},  // Invalid falls back to annual
		{5, 12},  // Does not divide the year
		{-4, 12}, // Negative falls back to annual
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("PerYear_%d", tt.periodsPerYear), func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsPerPeriod(tt.periodsPerYear))
		})
	}
}

// TestPeriodBoundaries tests start and end dates of generated periods
func TestPeriodBoundaries(t *testing.T) {
	tests := []struct {
		name          string
		year          int
		perYear       int
		sequence      int
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "Annual",
			year:          2025,
			perYear:       1,
			sequence:      1,
			expectedStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "Second quarter",
			year:          2025,
			perYear:       4,
			sequence:      2,
			expectedStart: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "February in a leap year",
			year:          2024,
			perYear:       12,
			sequence:      2,
			expectedStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "December",
			year:          2025,
			perYear:       12,
			sequence:      12,
			expectedStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStart, PeriodStart(tt.year, tt.perYear, tt.sequence))
			assert.Equal(t, tt.expectedEnd, PeriodEnd(tt.year, tt.perYear, tt.sequence))
		})
	}
}

// TestLabels tests the period label formats used in reports
func TestLabels(t *testing.T) {
	assert.Equal(t, "FY2025", FiscalYearLabel(2025))
	assert.Equal(t, "Q3 2026", QuarterLabel(2026, 3))
	assert.Equal(t, "Jan 2025", MonthLabel(2025, time.January))
	assert.Equal(t, "Sep 2027", MonthLabel(2027, time.September))
}
