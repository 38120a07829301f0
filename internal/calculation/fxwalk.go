package calculation

import (
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/zimtax/taxplanner/internal/domain"
)

// walkBandMultiple bounds every walked rate to r0 * (1 ± walkBandMultiple*volatility).
const walkBandMultiple = 3

// ExchangeRateWalk returns one rate table per period. The first period uses the
// starting rates; every later period moves each listed currency by a factor 1+δ with
// δ drawn uniformly from [-volatility, volatility]. The base currency never moves and
// no rate leaves the band around its starting value. An empty codes list walks every
// non-base currency in the table.
//
// rng must not be shared with another goroutine.
func ExchangeRateWalk(rates domain.RateTable, codes []string, periods int, volatility decimal.Decimal, rng *rand.Rand) []domain.RateTable {
	if periods <= 0 {
		return nil
	}
	if len(codes) == 0 {
		codes = rates.Codes()
	} else {
		codes = append([]string(nil), codes...)
		sort.Strings(codes)
	}
	volatility = decimal.Max(decimal.Zero, volatility)

	one := decimal.NewFromInt(1)
	band := volatility.Mul(decimal.NewFromInt(walkBandMultiple))
	if band.GreaterThanOrEqual(one) {
		band = decimal.NewFromFloat(0.99)
	}
	vol := volatility.InexactFloat64()

	out := make([]domain.RateTable, periods)
	out[0] = rates
	current := rates
	for i := 1; i < periods; i++ {
		for _, code := range codes {
			cur, ok := rates.Currency(code)
			if !ok || cur.IsBase || !cur.RateToBase.IsPositive() {
				continue
			}
			prev, _ := current.Rate(code)
			delta := decimal.NewFromFloat((rng.Float64()*2 - 1) * vol)
			next := prev.Mul(one.Add(delta))

			lower := cur.RateToBase.Mul(one.Sub(band))
			upper := cur.RateToBase.Mul(one.Add(band))
			next = decimal.Min(upper, decimal.Max(lower, next))

			current = current.WithRate(code, next)
		}
		out[i] = current
	}
	return out
}
