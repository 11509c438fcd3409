//go:build gmp

// This file provides a GMP-backed solver method, conditionally compiled
// with the "gmp" build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//
// The method performs the whole k-derivation on gmp.Int values and converts
// only the final pair back to math/big, so CGO call overhead is paid per
// ring operation rather than per limb.
package pell

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/pellcalc/pkg/models"
)

func init() {
	RegisterMethod("gmp", func() Method { return &GMPMethod{} })
}

// GMPMethod derives the k-th solution by binary exponentiation with GMP's
// assembly-optimized arithmetic. For the operand sizes a Pell run reaches
// with very large k, GMP multiplication outperforms math/big; for small k
// the CGO overhead can make the default method faster.
type GMPMethod struct{}

// Name returns the descriptive name of the method.
func (m *GMPMethod) Name() string {
	return "GMP Fast Exponentiation (libgmp)"
}

// gmpFromBig converts a non-negative math/big integer to a gmp.Int.
func gmpFromBig(v *big.Int) *gmp.Int {
	return new(gmp.Int).SetBytes(v.Bytes())
}

// bigFromGMP converts a non-negative gmp.Int back to a math/big integer.
func bigFromGMP(g *gmp.Int) *big.Int {
	return new(big.Int).SetBytes(g.Bytes())
}

// gmpRingMul computes the ring product of (xa, ya) and (xb, yb) in Z[√D],
// writing the result into (xOut, yOut). t is scratch space. No output may
// alias an input.
func gmpRingMul(d, xOut, yOut, xa, ya, xb, yb, t *gmp.Int) {
	xOut.Mul(xa, xb)
	t.Mul(ya, yb)
	t.Mul(t, d)
	xOut.Add(xOut, t)

	yOut.Mul(xa, yb)
	t.Mul(ya, xb)
	yOut.Add(yOut, t)
}

// SolveAt computes the k-th solution for d using GMP arithmetic.
func (m *GMPMethod) SolveAt(ctx context.Context, reporter ProgressReporter, d uint64, k uint64) (models.Solution, error) {
	if k == 0 {
		return models.Solution{}, InvalidIndexError{K: k}
	}

	x1, y1, err := minimalSolution(ctx, scaleReporter(reporter, 0, searchShare), d)
	if err != nil {
		return models.Solution{}, err
	}
	if k == 1 {
		if reporter != nil {
			reporter(1.0)
		}
		return models.NewSolution(x1, y1), nil
	}

	bigD := gmpFromBig(new(big.Int).SetUint64(d))
	x := gmp.NewInt(1)
	y := gmp.NewInt(0)
	baseX := gmpFromBig(x1)
	baseY := gmpFromBig(y1)
	tx := gmp.NewInt(0)
	ty := gmp.NewInt(0)
	t := gmp.NewInt(0)

	stepReporter := scaleReporter(reporter, searchShare, 1)
	totalBits := 0
	for e := k; e > 0; e >>= 1 {
		totalBits++
	}

	bit := 0
	for exp := k; exp > 0; exp >>= 1 {
		select {
		case <-ctx.Done():
			return models.Solution{}, ctx.Err()
		default:
		}

		if exp&1 == 1 {
			gmpRingMul(bigD, tx, ty, x, y, baseX, baseY, t)
			x.Set(tx)
			y.Set(ty)
		}
		if exp > 1 {
			gmpRingMul(bigD, tx, ty, baseX, baseY, baseX, baseY, t)
			baseX.Set(tx)
			baseY.Set(ty)
		}

		bit++
		if stepReporter != nil {
			stepReporter(float64(bit) / float64(totalBits))
		}
	}

	if reporter != nil {
		reporter(1.0)
	}
	return models.Solution{X: bigFromGMP(x), Y: bigFromGMP(y)}, nil
}
