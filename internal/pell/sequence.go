// This file provides batch generation of consecutive solutions and the lazy,
// resettable SolutionSequence generator. Both advance through the solution
// chain with the linear recurrence
//
//	xₖ = x₁·xₖ₋₁ + D·y₁·yₖ₋₁
//	yₖ = x₁·yₖ₋₁ + y₁·xₖ₋₁
//
// which is one ring product per step: strictly cheaper than calling the
// binary exponentiation once per index over a contiguous range.
package pell

import (
	"context"
	"math/big"

	"github.com/agbru/pellcalc/pkg/models"
)

// Solutions returns the first count solutions (k = 1..count) of
// x² − D·y² = 1 in increasing order.
//
// count == 0 yields an empty result without computing the fundamental
// solution, mirroring the contract of the batch API.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - d: The discriminant D.
//   - count: The number of solutions to generate.
//
// Returns:
//   - []models.Solution: The solutions, ordered by index.
//   - error: A discriminant validation error or the context error.
func Solutions(ctx context.Context, d uint64, count int) ([]models.Solution, error) {
	if count == 0 {
		return nil, nil
	}

	x1, y1, err := MinimalSolution(ctx, d)
	if err != nil {
		return nil, err
	}

	r := newRing(d)
	out := make([]models.Solution, 0, count)
	x, y := x1, y1
	for k := 1; k <= count; k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		out = append(out, models.NewSolution(x, y))
		if k < count {
			x, y = r.mul(x, y, x1, y1)
		}
	}
	return out, nil
}

// SolutionSequence lazily generates the unbounded sequence of solutions for
// a fixed discriminant. It holds the fundamental solution, the pair the
// next call to Next will return, and a 1-indexed position counter.
//
// The sequence has single-owner mutation semantics: only Next, Reset, and
// Skip touch its state, and instances are not safe for concurrent use.
type SolutionSequence struct {
	d  uint64
	r  *ring
	x1 *big.Int
	y1 *big.Int

	curX *big.Int
	curY *big.Int
	pos  uint64
}

// NewSolutionSequence constructs a sequence for the discriminant d,
// positioned at k = 1 (the fundamental solution). An invalid d fails here,
// before any iteration is possible, with the same errors as
// MinimalSolution.
//
// Parameters:
//   - ctx: The context for the fundamental-solution search.
//   - d: The discriminant D.
//
// Returns:
//   - *SolutionSequence: The sequence, positioned at the fundamental solution.
//   - error: A discriminant validation error or the context error.
func NewSolutionSequence(ctx context.Context, d uint64) (*SolutionSequence, error) {
	x1, y1, err := MinimalSolution(ctx, d)
	if err != nil {
		return nil, err
	}
	return &SolutionSequence{
		d:    d,
		r:    newRing(d),
		x1:   x1,
		y1:   y1,
		curX: new(big.Int).Set(x1),
		curY: new(big.Int).Set(y1),
		pos:  1,
	}, nil
}

// Next returns the current solution and advances the sequence by one step.
// The sequence never terminates on its own; callers bound consumption
// themselves (for example by taking only the first N pairs).
//
// Parameters:
//   - ctx: The context for managing cancellation.
//
// Returns:
//   - models.Solution: The solution at the current position.
//   - error: The context error if cancelled.
func (s *SolutionSequence) Next(ctx context.Context) (models.Solution, error) {
	select {
	case <-ctx.Done():
		return models.Solution{}, ctx.Err()
	default:
	}

	out := models.NewSolution(s.curX, s.curY)
	s.curX, s.curY = s.r.mul(s.curX, s.curY, s.x1, s.y1)
	s.pos++
	return out, nil
}

// Current returns a copy of the solution the next call to Next will return,
// without advancing.
func (s *SolutionSequence) Current() models.Solution {
	return models.NewSolution(s.curX, s.curY)
}

// Position returns the 1-indexed k of the solution the next call to Next
// will return. A fresh or freshly reset sequence reports 1.
func (s *SolutionSequence) Position() uint64 {
	return s.pos
}

// Reset rewinds the sequence to the fundamental solution in O(1), without
// recomputing the continued fraction.
func (s *SolutionSequence) Reset() {
	s.curX.Set(s.x1)
	s.curY.Set(s.y1)
	s.pos = 1
}

// Skip repositions the sequence at index k, jumping via binary
// exponentiation instead of stepping the recurrence k times. After Skip,
// Position reports k and the next Next returns the k-th solution, a copy
// of which is also returned here.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - k: The 1-based index to jump to.
//
// Returns:
//   - models.Solution: The k-th solution.
//   - error: An InvalidIndexError if k == 0, or the context error.
func (s *SolutionSequence) Skip(ctx context.Context, k uint64) (models.Solution, error) {
	x, y, err := SolutionAt(ctx, s.d, s.x1, s.y1, k)
	if err != nil {
		return models.Solution{}, err
	}
	s.curX, s.curY = x, y
	s.pos = k
	return models.NewSolution(x, y), nil
}
