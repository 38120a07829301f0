package calculation

import (
	"math/rand"
	"time"
)

// seedFunc returns a pseudo-random seed (override for deterministic projection tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// newRand returns an independent generator for one unit of work.
// Each scenario gets its own so concurrent runs stay reproducible.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
