package pell

import "math"

// Isqrt computes the integer square root of n: the unique r with
// r² ≤ n < (r+1)².
//
// The float64 square root is only a seed: it is off by one or two units at
// the top of the uint64 range, so the result is refined by Newton iteration
// and then adjusted against the adjacent candidates. Exact for all inputs,
// including 0 and math.MaxUint64.
//
// Parameters:
//   - n: The number to take the square root of.
//
// Returns:
//   - uint64: The floor of √n.
func Isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	if n < 4 {
		return 1
	}

	x := uint64(math.Sqrt(float64(n)))

	// Newton's method: x' = (x + n/x) / 2, monotonically decreasing
	// once x is at or above the true root.
	for {
		next := (x + n/x) / 2
		if next >= x {
			break
		}
		x = next
	}

	// The seed can land below the true root; check neighbours.
	// (x+1)² overflows uint64 once x+1 reaches 2³², and no such x can be
	// a floor root anyway, so the guard also keeps the squaring exact.
	for x+1 < 1<<32 && (x+1)*(x+1) <= n {
		x++
	}
	for x > 0 && x*x > n {
		x--
	}
	return x
}

// IsPerfectSquare reports whether n is a perfect square.
//
// Parameters:
//   - n: The number to test.
//
// Returns:
//   - bool: True iff Isqrt(n)² == n.
func IsPerfectSquare(n uint64) bool {
	r := Isqrt(n)
	return r*r == n
}
