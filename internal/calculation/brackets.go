package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// cent is the smallest currency unit tabulated bracket tables step by.
var cent = decimal.NewFromFloat(0.01)

// BracketResolver computes tax on an amount from a progressive bracket table using the
// quick-deduction method: tax = amount * band.Rate - band.Deduct, floored at zero.
// It is shared by PAYE and any banded corporate table.
type BracketResolver struct {
	Brackets domain.BracketTable
}

// NewBracketResolver creates a resolver over a table. The table is not copied; callers
// must not mutate it afterwards.
func NewBracketResolver(brackets domain.BracketTable) *BracketResolver {
	return &BracketResolver{Brackets: brackets}
}

// band returns the band an amount falls in: the highest band whose Min is <= amount.
// Amounts sitting in the one-cent gap between tabulated bands stay in the lower band.
func (br *BracketResolver) band(amount decimal.Decimal) (domain.TaxBracket, bool) {
	var found domain.TaxBracket
	ok := false
	for _, b := range br.Brackets {
		if amount.LessThan(b.Min) {
			break
		}
		found = b
		ok = true
	}
	return found, ok
}

// Tax returns the tax on amount. Non-positive amounts and empty tables yield zero.
func (br *BracketResolver) Tax(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	b, ok := br.band(amount)
	if !ok {
		return decimal.Zero
	}
	return decimal.Max(decimal.Zero, amount.Mul(b.Rate).Sub(b.Deduct))
}

// MarginalRate returns the rate of the band containing amount (zero when none applies).
func (br *BracketResolver) MarginalRate(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		if len(br.Brackets) > 0 {
			return br.Brackets[0].Rate
		}
		return decimal.Zero
	}
	b, ok := br.band(amount)
	if !ok {
		return decimal.Zero
	}
	return b.Rate
}

// TopRate returns the highest rate in the table.
func (br *BracketResolver) TopRate() decimal.Decimal {
	top := decimal.Zero
	for _, b := range br.Brackets {
		top = decimal.Max(top, b.Rate)
	}
	return top
}

// MarginalTax sums rate * income-in-band over every band. It is the slow reference the
// quick-deduction constants must agree with.
func (br *BracketResolver) MarginalTax(amount decimal.Decimal) decimal.Decimal {
	return marginalTax(br.Brackets, amount)
}

func marginalTax(brackets domain.BracketTable, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	var tax decimal.Decimal
	lower := decimal.Zero
	for i, b := range brackets {
		if i == 0 {
			lower = b.Min
		}
		if amount.LessThanOrEqual(lower) {
			break
		}
		upper := amount
		if !b.Unbounded() {
			upper = decimal.Min(amount, b.Max)
		}
		if upper.GreaterThan(lower) {
			tax = tax.Add(upper.Sub(lower).Mul(b.Rate))
		}
		if b.Unbounded() {
			break
		}
		lower = b.Max
	}
	return tax
}

// DeriveDeductions returns a copy of the table with every Deduct set so that the
// quick-deduction formula equals marginal summation at each band's lower edge.
func DeriveDeductions(brackets domain.BracketTable) domain.BracketTable {
	out := make(domain.BracketTable, len(brackets))
	copy(out, brackets)
	for i := range out {
		if i == 0 {
			out[i].Deduct = out[i].Min.Mul(out[i].Rate)
			continue
		}
		edge := out[i-1].Max
		out[i].Deduct = edge.Mul(out[i].Rate).Sub(marginalTax(out[:i], edge))
	}
	return out
}

// ValidateBrackets checks the table invariants: starts at zero, sorted, contiguous to
// within one cent, only the last band unbounded, rates in [0,1], and deduction
// constants consistent with marginal taxation.
func ValidateBrackets(brackets domain.BracketTable) error {
	if len(brackets) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first band must start at 0, got %s", brackets[0].Min)
	}
	one := decimal.NewFromInt(1)
	derived := DeriveDeductions(brackets)
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("band %d: rate %s outside [0,1]", i, b.Rate)
		}
		last := i == len(brackets)-1
		if b.Unbounded() != last {
			if last {
				return fmt.Errorf("band %d: last band must be unbounded (max 0)", i)
			}
			return fmt.Errorf("band %d: only the last band may be unbounded", i)
		}
		if !b.Unbounded() && b.Max.LessThan(b.Min) {
			return fmt.Errorf("band %d: max %s below min %s", i, b.Max, b.Min)
		}
		if i > 0 {
			gap := b.Min.Sub(brackets[i-1].Max)
			if gap.IsNegative() {
				return fmt.Errorf("band %d overlaps band %d", i, i-1)
			}
			if gap.GreaterThan(cent) {
				return fmt.Errorf("gap of %s between band %d and %d", gap, i-1, i)
			}
		}
		if b.Deduct.Sub(derived[i].Deduct).Abs().GreaterThan(cent) {
			return fmt.Errorf("band %d: deduct %s inconsistent with marginal tax (want %s)", i, b.Deduct, derived[i].Deduct.StringFixed(2))
		}
	}
	return nil
}
