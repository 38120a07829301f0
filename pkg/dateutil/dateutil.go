package dateutil

import (
	"fmt"
	"time"
)

// QuarterOf returns the calendar quarter (1-4) of a date
func QuarterOf(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}

// MonthsPerPeriod returns the number of months one period spans when a year is
// split into periodsPerYear equal periods. Values that do not divide 12 fall back to 12.
func MonthsPerPeriod(periodsPerYear int) int {
	if periodsPerYear <= 0 || 12%periodsPerYear != 0 {
		return 12
	}
	return 12 / periodsPerYear
}

// PeriodStart returns the first day of the sequence-th period (1-based) of a year.
func PeriodStart(year, periodsPerYear, sequence int) time.Time {
	months := MonthsPerPeriod(periodsPerYear)
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, (sequence-1)*months, 0)
}

// PeriodEnd returns the last day of the sequence-th period of a year
func PeriodEnd(year, periodsPerYear, sequence int) time.Time {
	return PeriodStart(year, periodsPerYear, sequence+1).AddDate(0, 0, -1)
}

// FiscalYearLabel formats a tax year, e.g. FY2025
func FiscalYearLabel(year int) string {
	return fmt.Sprintf("FY%d", year)
}

// QuarterLabel formats a quarter, e.g. Q1 2025
func QuarterLabel(year, quarter int) string {
	return fmt.Sprintf("Q%d %d", quarter, year)
}

// MonthLabel formats a month, e.g. Jan 2025
func MonthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
