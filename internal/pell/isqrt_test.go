package pell

import (
	"math"
	"testing"
)

// TestIsqrt validates the floor square root against known values,
// including the boundaries of the uint64 range where the float64 seed
// alone is inexact.
func TestIsqrt(t *testing.T) {
	t.Parallel()
	cases := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{8, 2},
		{9, 3},
		{15, 3},
		{16, 4},
		{24, 4},
		{25, 5},
		{991, 31},
		{1 << 40, 1 << 20},
		{(1 << 40) - 1, (1 << 20) - 1},
		{4294967295 * uint64(4294967295), 4294967295},
		{4294967295*uint64(4294967295) - 1, 4294967294},
		{4294967295*uint64(4294967295) + 1, 4294967295},
		{math.MaxUint64, 4294967295},
	}

	for _, tc := range cases {
		got := Isqrt(tc.n)
		if got != tc.want {
			t.Errorf("Isqrt(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

// TestIsqrtExhaustiveSmall cross-checks the floor-root invariant
// r² ≤ n < (r+1)² over a contiguous range.
func TestIsqrtExhaustiveSmall(t *testing.T) {
	t.Parallel()
	for n := uint64(0); n < 1<<16; n++ {
		r := Isqrt(n)
		if r*r > n {
			t.Fatalf("Isqrt(%d) = %d: r² exceeds n", n, r)
		}
		if (r+1)*(r+1) <= n {
			t.Fatalf("Isqrt(%d) = %d: (r+1)² does not exceed n", n, r)
		}
	}
}

// TestIsPerfectSquare validates the perfect-square predicate.
func TestIsPerfectSquare(t *testing.T) {
	t.Parallel()
	squares := []uint64{0, 1, 4, 9, 16, 25, 100, 10000, 4294967295 * uint64(4294967295)}
	for _, n := range squares {
		if !IsPerfectSquare(n) {
			t.Errorf("IsPerfectSquare(%d) = false, want true", n)
		}
	}
	nonSquares := []uint64{2, 3, 5, 991, 999, math.MaxUint64}
	for _, n := range nonSquares {
		if IsPerfectSquare(n) {
			t.Errorf("IsPerfectSquare(%d) = true, want false", n)
		}
	}
}
