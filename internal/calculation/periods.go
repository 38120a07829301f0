package calculation

import (
	"time"

	"github.com/google/uuid"
	"github.com/zimtax/taxplanner/internal/domain"
	"github.com/zimtax/taxplanner/pkg/dateutil"
)

// GeneratePeriods creates count consecutive periods of the given type starting at the
// first period of startYear. Each period gets a fresh id and a label such as FY2025,
// Q1 2025 or Jan 2025. Unknown types generate annual periods.
func GeneratePeriods(periodType domain.PeriodType, startYear, count int) []domain.Period {
	if !periodType.Valid() {
		periodType = domain.PeriodAnnual
	}
	if count <= 0 {
		return []domain.Period{}
	}

	perYear := periodType.PeriodsPerYear()
	periods := make([]domain.Period, 0, count)
	for i := 0; i < count; i++ {
		year := startYear + i/perYear
		seq := i%perYear + 1
		periods = append(periods, domain.Period{
			ID:       uuid.NewString(),
			Type:     periodType,
			Year:     year,
			Sequence: seq,
			Label:    PeriodLabel(periodType, year, seq),
		})
	}
	return periods
}

// PeriodLabel formats the display label of a period
func PeriodLabel(periodType domain.PeriodType, year, sequence int) string {
	start := dateutil.PeriodStart(year, periodType.PeriodsPerYear(), sequence)
	switch periodType {
	case domain.PeriodQuarterly:
		return dateutil.QuarterLabel(year, dateutil.QuarterOf(start))
	case domain.PeriodMonthly:
		return dateutil.MonthLabel(year, start.Month())
	default:
		return dateutil.FiscalYearLabel(year)
	}
}

// PeriodRange returns the first and last calendar day a period covers.
func PeriodRange(p domain.Period) (time.Time, time.Time) {
	perYear := p.Type.PeriodsPerYear()
	seq := p.Sequence
	if seq < 1 {
		seq = 1
	}
	return dateutil.PeriodStart(p.Year, perYear, seq), dateutil.PeriodEnd(p.Year, perYear, seq)
}
