// This file implements arithmetic in the quadratic ring Z[√D], the algebraic
// structure behind both the fast-exponentiation and recurrence solvers.
// An element x + y·√D is represented by its integer coordinate pair (x, y).
package pell

import "math/big"

// ring carries the discriminant and scratch space for Z[√D] products.
// Reusing the temporaries keeps the hot loops free of per-step allocations
// for everything except the growing results themselves.
//
// A ring instance is not safe for concurrent use; each solver goroutine
// owns its own.
type ring struct {
	d  *big.Int
	t1 *big.Int
	t2 *big.Int
}

// newRing creates ring scratch state for the discriminant d.
func newRing(d uint64) *ring {
	return &ring{
		d:  new(big.Int).SetUint64(d),
		t1: new(big.Int),
		t2: new(big.Int),
	}
}

// mul computes the ring product
//
//	(xa + ya√D)·(xb + yb√D) = (xa·xb + D·ya·yb) + (xa·yb + ya·xb)·√D
//
// and returns the coordinates of the result as fresh values. The inputs are
// never modified, so callers may freely alias them.
func (r *ring) mul(xa, ya, xb, yb *big.Int) (*big.Int, *big.Int) {
	x := new(big.Int).Mul(xa, xb)
	r.t1.Mul(ya, yb)
	r.t1.Mul(r.t1, r.d)
	x.Add(x, r.t1)

	y := new(big.Int).Mul(xa, yb)
	r.t2.Mul(ya, xb)
	y.Add(y, r.t2)

	return x, y
}

// square computes (x + y√D)² = (x² + D·y²) + (2xy)·√D, returning fresh
// coordinate values. Squaring saves one big multiplication over mul.
func (r *ring) square(x, y *big.Int) (*big.Int, *big.Int) {
	xOut := new(big.Int).Mul(x, x)
	r.t1.Mul(y, y)
	r.t1.Mul(r.t1, r.d)
	xOut.Add(xOut, r.t1)

	yOut := new(big.Int).Mul(x, y)
	yOut.Lsh(yOut, 1)

	return xOut, yOut
}
