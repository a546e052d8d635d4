package utils

import (
	"math/rand"
)

// Roller is the randomness the game rolls against. *rand.Rand satisfies it,
// which lets tests pin a seed.
type Roller interface {
	Float64() float64
	Int63n(n int64) int64
}

// Rand rolls against math/rand's shared source, which is safe for concurrent use
type Rand struct{}

// Float64 returns a float in [0.0, 1.0)
func (Rand) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// Int63n returns an integer in [0, n)
func (Rand) Int63n(n int64) int64 {
	return rand.Int63n(n) //nolint:gosec // Game logic randomness, not security critical
}

// RandomBetween returns an integer in [min, max] inclusive
func RandomBetween(rng Roller, min, max int64) int64 {
	if min >= max {
		return min
	}
	return min + rng.Int63n(max-min+1)
}

// Chance reports whether a roll lands under probability p
func Chance(rng Roller, p float64) bool {
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}

// ClampInt bounds v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
