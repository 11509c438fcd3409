package pell

import "testing"

// TestIsValidDiscriminant checks the validity predicate boundaries.
func TestIsValidDiscriminant(t *testing.T) {
	t.Parallel()
	valid := []uint64{2, 3, 5, 991}
	for _, d := range valid {
		if !IsValidDiscriminant(d) {
			t.Errorf("IsValidDiscriminant(%d) = false, want true", d)
		}
	}
	invalid := []uint64{0, 1, 4, 9, 16, 100}
	for _, d := range invalid {
		if IsValidDiscriminant(d) {
			t.Errorf("IsValidDiscriminant(%d) = true, want false", d)
		}
	}
}

// TestIsPrime checks the primality helper on small knowns.
func TestIsPrime(t *testing.T) {
	t.Parallel()
	primes := []uint64{2, 3, 5, 7, 13, 61, 991}
	for _, d := range primes {
		if !IsPrime(d) {
			t.Errorf("IsPrime(%d) = false, want true", d)
		}
	}
	composites := []uint64{0, 1, 4, 6, 9, 15, 993}
	for _, d := range composites {
		if IsPrime(d) {
			t.Errorf("IsPrime(%d) = true, want false", d)
		}
	}
}

// TestEstimatePeriodLength checks the heuristic is defined exactly for
// valid discriminants and grows with D.
func TestEstimatePeriodLength(t *testing.T) {
	t.Parallel()
	if _, ok := EstimatePeriodLength(4); ok {
		t.Error("EstimatePeriodLength(4) reported ok for a perfect square")
	}
	if _, ok := EstimatePeriodLength(1); ok {
		t.Error("EstimatePeriodLength(1) reported ok for D=1")
	}

	small, ok := EstimatePeriodLength(2)
	if !ok || small == 0 {
		t.Fatalf("EstimatePeriodLength(2) = %d, %v", small, ok)
	}
	large, ok := EstimatePeriodLength(991)
	if !ok {
		t.Fatal("EstimatePeriodLength(991) not ok")
	}
	if large <= small {
		t.Errorf("estimate did not grow with D: est(2)=%d, est(991)=%d", small, large)
	}
}

// TestFundamentalDiscriminant checks square factors are divided out.
func TestFundamentalDiscriminant(t *testing.T) {
	t.Parallel()
	cases := []struct {
		d    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{8, 2},
		{12, 3},
		{18, 2},
		{45, 5},
		{48, 3},
		{991, 991},
	}
	for _, tc := range cases {
		if got := FundamentalDiscriminant(tc.d); got != tc.want {
			t.Errorf("FundamentalDiscriminant(%d) = %d, want %d", tc.d, got, tc.want)
		}
	}
}
