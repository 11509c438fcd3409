// This file implements the continued-fraction search for the fundamental
// (minimal) solution of x² − D·y² = 1.
package pell

import (
	"context"
	"math/big"
)

// MinimalSolution computes the fundamental solution (x₁, y₁) of the Pell
// equation x² − D·y² = 1: the smallest pair with x, y > 0.
//
// The search walks the periodic continued-fraction expansion of √D and
// tests each convergent pₖ/qₖ against the Pell condition. Periodicity of
// the expansion guarantees termination within one period, so the loop
// carries no iteration cap; the context is the only external way to stop
// a pathologically long search.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - d: The discriminant D (must be > 1 and not a perfect square).
//
// Returns:
//   - *big.Int: The x coordinate of the minimal solution.
//   - *big.Int: The y coordinate of the minimal solution.
//   - error: An InvalidDiscriminantError, PerfectSquareError, or the
//     context error if the search was cancelled.
func MinimalSolution(ctx context.Context, d uint64) (*big.Int, *big.Int, error) {
	return minimalSolution(ctx, nil, d)
}

// minimalSolution is the reporter-aware core of MinimalSolution.
// Progress is reported as the fraction of the estimated period consumed;
// the estimate is a heuristic, so the fraction is clamped below 1 until
// the solution is actually found.
func minimalSolution(ctx context.Context, reporter ProgressReporter, d uint64) (*big.Int, *big.Int, error) {
	if err := ValidateDiscriminant(d); err != nil {
		return nil, nil, err
	}

	// Surd-reduction state for √D: m₀ = 0, d₀ = 1, a₀ = ⌊√D⌋.
	// The reference keeps (m, d, a) in 128-bit signed integers because
	// intermediates such as m² exceed 64 bits for D near 2⁶⁴; Go has no
	// int128, so the state lives in (small) big.Ints instead.
	a0 := Isqrt(d)
	bigA0 := new(big.Int).SetUint64(a0)
	m := new(big.Int)
	den := big.NewInt(1)
	a := new(big.Int).Set(bigA0)

	// Convergent window: p₋₂ = 0, p₋₁ = 1, q₋₂ = 1, q₋₁ = 0,
	// so p₀ = a₀ and q₀ = 1.
	pPrev := big.NewInt(1)
	qPrev := big.NewInt(0)
	p := new(big.Int).Set(bigA0)
	q := big.NewInt(1)

	bigD := new(big.Int).SetUint64(d)
	one := big.NewInt(1)
	lhs := new(big.Int)
	t := new(big.Int)

	periodEstimate, _ := EstimatePeriodLength(d)

	for i := uint64(0); ; i++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		// Pell condition: p² − D·q² == 1.
		lhs.Mul(p, p)
		t.Mul(q, q)
		t.Mul(t, bigD)
		lhs.Sub(lhs, t)
		if lhs.Cmp(one) == 0 {
			if reporter != nil {
				reporter(1.0)
			}
			return p, q, nil
		}

		if reporter != nil && periodEstimate > 0 {
			progress := float64(i) / float64(periodEstimate)
			if progress > 0.99 {
				progress = 0.99
			}
			reporter(progress)
		}

		// Advance the surd state:
		//   m ← den·a − m
		//   den ← (D − m²) / den   (exact by the theory of quadratic surds)
		//   a ← ⌊(a₀ + m) / den⌋
		t.Mul(den, a)
		m.Sub(t, m)
		t.Mul(m, m)
		t.Sub(bigD, t)
		den.Quo(t, den)
		a.Add(bigA0, m)
		a.Quo(a, den)

		// Next convergent: pₖ₊₁ = a·pₖ + pₖ₋₁, qₖ₊₁ analogously,
		// then slide the window.
		pNext := new(big.Int).Mul(a, p)
		pNext.Add(pNext, pPrev)
		qNext := new(big.Int).Mul(a, q)
		qNext.Add(qNext, qPrev)
		pPrev, p = p, pNext
		qPrev, q = q, qNext
	}
}
