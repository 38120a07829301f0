package calculation

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// CalculateBatch computes every employee independently on a bounded set of goroutines.
// Results keep the input order and totals are aggregated once all workers finish.
func (pc *PayrollCalculator) CalculateBatch(records []domain.EmployeePayrollRecord) domain.PayrollBatchResult {
	results := make([]domain.PayrollResult, len(records))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, batchWorkers(len(records)))

	for i := range records {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[idx] = pc.Calculate(records[idx])
		}(i)
	}
	wg.Wait()

	var totals domain.PayrollTotals
	for _, r := range results {
		totals = totals.Add(r)
	}
	pc.Logger.Infof("payroll batch: %d employees, gross %s, net %s",
		totals.Employees, totals.TotalGross.StringFixed(2), totals.TotalNet.StringFixed(2))

	return domain.PayrollBatchResult{Results: results, Totals: totals}
}

// CalculateYearBatch runs a twelve-month year for every employee. Each record's
// bonus allowance is paid in the listed months (1 to 12) and nowhere else, so the
// tax-free threshold is consumed in month order. Results hold every employee's
// twelve months in turn; totals count employees once and sum the whole year.
func (pc *PayrollCalculator) CalculateYearBatch(records []domain.EmployeePayrollRecord, bonusMonths []int) (domain.PayrollBatchResult, error) {
	paid := make(map[int]bool, len(bonusMonths))
	for _, m := range bonusMonths {
		if m < 1 || m > 12 {
			return domain.PayrollBatchResult{}, fmt.Errorf("bonus month %d is outside 1-12", m)
		}
		paid[m] = true
	}

	years := make([][]domain.PayrollResult, len(records))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, batchWorkers(len(records)))

	for i := range records {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			bonuses := make([]decimal.Decimal, 12)
			for m := range bonuses {
				if paid[m+1] {
					bonuses[m] = records[idx].Allowances.Bonus
				}
			}
			years[idx] = pc.CalculateYear(records[idx], bonuses)
		}(i)
	}
	wg.Wait()

	results := make([]domain.PayrollResult, 0, 12*len(records))
	var totals domain.PayrollTotals
	for _, year := range years {
		for _, r := range year {
			totals = totals.Add(r)
		}
		results = append(results, year...)
	}
	totals.Employees = len(records)
	pc.Logger.Infof("payroll year: %d employees, bonus months %v, gross %s, net %s",
		totals.Employees, bonusMonths, totals.TotalGross.StringFixed(2), totals.TotalNet.StringFixed(2))

	return domain.PayrollBatchResult{Results: results, Totals: totals}, nil
}

func batchWorkers(n int) int {
	workers := runtime.GOMAXPROCS(0)
	if n < workers {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
