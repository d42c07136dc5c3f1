// Package rng hands out the random sources used by samplers.
//
// Every sampler owns a *rand.Rand built from its seed, so a configuration
// replays the same sample stream on any platform. Composite samplers
// (balanced runs, triplets) split one seeded source into per-stage sources
// with Derive. A *rand.Rand is not safe for concurrent use; a consumer on
// another goroutine gets its own derived source.
package rng

import "math/rand"

// DefaultSeed replaces a zero seed.
const DefaultSeed int64 = 1

// golden is the SplitMix64 increment (2^64 divided by the golden ratio).
const golden uint64 = 0x9e3779b97f4a7c15

// New returns a source seeded with seed, or with DefaultSeed when seed is 0.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Mix folds a stream id into a parent seed. Nearby inputs give unrelated
// outputs.
func Mix(parent int64, stream uint64) int64 {
	return int64(finalize((uint64(parent) ^ (stream + golden)) + golden))
}

// finalize is the SplitMix64 output function.
func finalize(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Derive splits a child source off base for the given stream id. It draws
// one value from base, so deriving the same id twice yields two different
// children. A nil base derives from DefaultSeed.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(Mix(parent, stream)))
}

// Uniform returns a value drawn uniformly from [lo, hi]. When hi <= lo it
// returns lo without consuming randomness.
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
