// This file provides descriptive number-theoretic helpers around Pell
// discriminants: validity, primality, a continued-fraction period estimate,
// and the square-free kernel. They feed the CLI analysis mode and the
// progress heuristic of the fundamental-solution search.
package pell

import (
	"math"
	"math/big"
)

// IsValidDiscriminant reports whether d admits Pell solutions, i.e. d > 1
// and d is not a perfect square.
func IsValidDiscriminant(d uint64) bool {
	return ValidateDiscriminant(d) == nil
}

// IsPrime reports whether d is prime. It relies on the Baillie-PSW and
// Miller-Rabin rounds of big.Int.ProbablyPrime, which are deterministic
// for all 64-bit inputs.
func IsPrime(d uint64) bool {
	if d < 2 {
		return false
	}
	return new(big.Int).SetUint64(d).ProbablyPrime(0)
}

// EstimatePeriodLength estimates the period of the continued-fraction
// expansion of √d. The period is known to be O(√d·ln d); the returned
// value is the heuristic ⌈√d · ln(2√d)⌉, useful for progress estimation
// but carrying no correctness weight — the solver itself never bounds its
// loop by it.
//
// Parameters:
//   - d: The discriminant D.
//
// Returns:
//   - uint64: The estimated period length.
//   - bool: False when d is not a valid Pell discriminant.
func EstimatePeriodLength(d uint64) (uint64, bool) {
	if !IsValidDiscriminant(d) {
		return 0, false
	}
	sqrtD := math.Sqrt(float64(d))
	est := math.Ceil(sqrtD * math.Log(2*sqrtD))
	if est < 1 {
		est = 1
	}
	return uint64(est), true
}

// FundamentalDiscriminant returns the square-free kernel of d: d with all
// square factors divided out. Pell equations for d and for its kernel
// share the same field Q(√d).
func FundamentalDiscriminant(d uint64) uint64 {
	if d == 0 {
		return 0
	}
	for f := uint64(2); f*f <= d; f++ {
		sq := f * f
		for d%sq == 0 {
			d /= sq
		}
	}
	return d
}
