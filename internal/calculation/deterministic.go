package calculation

import "time"

// nowFunc stamps scenario and projection runs (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the run timestamp provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc supplies the seed of sampled and Monte Carlo runs that do not set one.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// resolveSeed keeps an explicit seed and draws one from seedFunc for 0
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return seedFunc()
}

// trialSeed is the seed of Monte Carlo trial i
func trialSeed(base int64, i int) int64 { return base + int64(i) }
