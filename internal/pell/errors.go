// Package pell implements solvers for the Pell equation x² − D·y² = 1 over
// arbitrary-precision integers.
// This file defines the typed errors shared by all solver entry points.
package pell

import "fmt"

// InvalidDiscriminantError is returned when D ≤ 1. The equation has no
// positive solutions for such discriminants.
type InvalidDiscriminantError struct {
	// D is the offending discriminant value.
	D uint64
}

// Error returns the error message for an InvalidDiscriminantError.
func (e InvalidDiscriminantError) Error() string {
	return fmt.Sprintf("D must be > 1, got %d", e.D)
}

// PerfectSquareError is returned when D is a perfect square. With √D
// rational the equation degenerates and has no solution with y > 0.
type PerfectSquareError struct {
	// D is the offending discriminant value.
	D uint64
	// Root is the integer square root of D, carried for diagnostics.
	Root uint64
}

// Error returns the error message for a PerfectSquareError.
func (e PerfectSquareError) Error() string {
	return fmt.Sprintf("D must be non-square, got %d which is %d²", e.D, e.Root)
}

// InvalidIndexError is returned when a solution index k = 0 is requested.
// Solution indices are 1-based; k = 1 denotes the fundamental solution.
type InvalidIndexError struct {
	// K is the offending index value.
	K uint64
}

// Error returns the error message for an InvalidIndexError.
func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("k must be > 0, got %d", e.K)
}

// ValidateDiscriminant checks that d is a usable Pell discriminant
// (d > 1 and not a perfect square). All solver entry points call this
// before any computation begins.
//
// Parameters:
//   - d: The discriminant to validate.
//
// Returns:
//   - error: An InvalidDiscriminantError or PerfectSquareError, nil if valid.
func ValidateDiscriminant(d uint64) error {
	if d <= 1 {
		return InvalidDiscriminantError{D: d}
	}
	if r := Isqrt(d); r*r == d {
		return PerfectSquareError{D: d, Root: r}
	}
	return nil
}
