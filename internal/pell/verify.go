package pell

import "math/big"

// Verify reports whether (x, y) satisfies x² == D·y² + 1. It is a pure
// side-channel used to validate solver outputs; nothing in the production
// call chain depends on it.
//
// Parameters:
//   - d: The discriminant D.
//   - x, y: The candidate pair. Never modified.
//
// Returns:
//   - bool: True iff the pair solves the Pell equation for D.
func Verify(d uint64, x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	lhs := new(big.Int).Mul(x, x)
	rhs := new(big.Int).SetUint64(d)
	rhs.Mul(rhs, y)
	rhs.Mul(rhs, y)
	rhs.Add(rhs, big.NewInt(1))
	return lhs.Cmp(rhs) == 0
}
