package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when a report carries none of its own.
var DefaultAssumptions = []string{
	"Corporate income tax: 24% plus AIDS levy of 3% on tax due",
	"PAYE: 2025 USD monthly bands, quick-deduction method",
	"NSSA: 4.5% employee and 4.5% employer on insurable earnings up to $700 per month",
	"Bonus: first $700 per year tax free, remainder at the employee's marginal rate",
	"Capital allowances: first-year special or accelerated rate, wear and tear thereafter",
	"Assessed losses carried forward without expiry",
}
