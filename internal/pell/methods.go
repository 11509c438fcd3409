// This file implements the two built-in solver methods. Both first find the
// fundamental solution through the continued-fraction search, then derive
// the k-th solution: one by binary exponentiation in Z[√D], the other by
// stepping the linear recurrence. The two derivations are algebraically
// identical, which the orchestrator exploits as a cross-check.
package pell

import (
	"context"

	"github.com/agbru/pellcalc/pkg/models"
)

func init() {
	RegisterMethod("fastexp", func() Method { return &FastExpMethod{} })
	RegisterMethod("recurrence", func() Method { return &RecurrenceMethod{} })
}

// scaleReporter maps a sub-task's [0,1] progress into the [lo,hi] slice of
// the overall run. Returns nil when the parent reporter is nil so the hot
// loops can skip reporting entirely.
func scaleReporter(reporter ProgressReporter, lo, hi float64) ProgressReporter {
	if reporter == nil {
		return nil
	}
	return func(progress float64) {
		reporter(lo + progress*(hi-lo))
	}
}

// searchShare is the fraction of overall progress attributed to the
// fundamental-solution search; the remainder covers the k-derivation.
const searchShare = 0.5

// FastExpMethod derives the k-th solution by binary exponentiation,
// O(log k) ring products.
type FastExpMethod struct{}

// Name returns the descriptive name of the method.
func (m *FastExpMethod) Name() string {
	return "Fast Exponentiation (O(log k) ring products)"
}

// SolveAt computes the k-th solution for d.
func (m *FastExpMethod) SolveAt(ctx context.Context, reporter ProgressReporter, d uint64, k uint64) (models.Solution, error) {
	if k == 0 {
		return models.Solution{}, InvalidIndexError{K: k}
	}

	x1, y1, err := minimalSolution(ctx, scaleReporter(reporter, 0, searchShare), d)
	if err != nil {
		return models.Solution{}, err
	}

	x, y, err := solutionAt(ctx, scaleReporter(reporter, searchShare, 1), d, x1, y1, k)
	if err != nil {
		return models.Solution{}, err
	}
	if reporter != nil {
		reporter(1.0)
	}
	return models.Solution{X: x, Y: y}, nil
}

// RecurrenceMethod derives the k-th solution by stepping the linear
// recurrence k−1 times, O(k) ring products. Slower than FastExpMethod for
// a single large index, but the natural choice when consecutive solutions
// are needed anyway.
type RecurrenceMethod struct{}

// Name returns the descriptive name of the method.
func (m *RecurrenceMethod) Name() string {
	return "Iterative Recurrence (O(k) ring products)"
}

// SolveAt computes the k-th solution for d.
func (m *RecurrenceMethod) SolveAt(ctx context.Context, reporter ProgressReporter, d uint64, k uint64) (models.Solution, error) {
	if k == 0 {
		return models.Solution{}, InvalidIndexError{K: k}
	}

	x1, y1, err := minimalSolution(ctx, scaleReporter(reporter, 0, searchShare), d)
	if err != nil {
		return models.Solution{}, err
	}

	stepReporter := scaleReporter(reporter, searchShare, 1)
	r := newRing(d)
	x, y := x1, y1
	for i := uint64(1); i < k; i++ {
		select {
		case <-ctx.Done():
			return models.Solution{}, ctx.Err()
		default:
		}
		x, y = r.mul(x, y, x1, y1)
		if stepReporter != nil {
			stepReporter(float64(i) / float64(k-1))
		}
	}

	if reporter != nil {
		reporter(1.0)
	}
	return models.NewSolution(x, y), nil
}
