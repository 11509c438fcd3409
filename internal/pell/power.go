// This file derives the k-th Pell solution from the fundamental one by
// binary exponentiation in Z[√D], using the identity
// (x₁ + y₁√D)ᵏ = xₖ + yₖ√D.
package pell

import (
	"context"
	"math/big"
	"math/bits"
)

// SolutionAt computes the k-th solution (xₖ, yₖ) of x² − D·y² = 1 given the
// fundamental solution (x₁, y₁).
//
// The exponentiation processes the bits of k from least to most significant,
// multiplying the accumulator into the running base power whenever the bit
// is set. This costs O(log k) ring products; the digit count of the result
// grows linearly in k, which is intrinsic to the solution sequence rather
// than a property of the algorithm.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - d: The discriminant D.
//   - x1, y1: The fundamental solution. Never modified.
//   - k: The 1-based solution index.
//
// Returns:
//   - *big.Int: The x coordinate of the k-th solution.
//   - *big.Int: The y coordinate of the k-th solution.
//   - error: An InvalidIndexError if k == 0, or the context error.
func SolutionAt(ctx context.Context, d uint64, x1, y1 *big.Int, k uint64) (*big.Int, *big.Int, error) {
	return solutionAt(ctx, nil, d, x1, y1, k)
}

// solutionAt is the reporter-aware core of SolutionAt. Progress is the
// fraction of exponent bits consumed.
func solutionAt(ctx context.Context, reporter ProgressReporter, d uint64, x1, y1 *big.Int, k uint64) (*big.Int, *big.Int, error) {
	if k == 0 {
		return nil, nil, InvalidIndexError{K: k}
	}
	if k == 1 {
		// The fundamental solution is the answer by definition; copy so
		// the caller cannot alias our inputs.
		return new(big.Int).Set(x1), new(big.Int).Set(y1), nil
	}

	r := newRing(d)

	// Accumulator starts at the multiplicative identity 1 + 0·√D.
	x := big.NewInt(1)
	y := big.NewInt(0)
	baseX := new(big.Int).Set(x1)
	baseY := new(big.Int).Set(y1)

	totalBits := bits.Len64(k)
	for exp, bit := k, 0; exp > 0; exp, bit = exp>>1, bit+1 {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		if exp&1 == 1 {
			x, y = r.mul(x, y, baseX, baseY)
		}
		// The last squaring feeds no further bit; skip the largest
		// multiplication of the whole run.
		if exp > 1 {
			baseX, baseY = r.square(baseX, baseY)
		}

		if reporter != nil {
			reporter(float64(bit+1) / float64(totalBits))
		}
	}

	return x, y, nil
}
