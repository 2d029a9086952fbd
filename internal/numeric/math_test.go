package numeric

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestCalcCentsIdentity(t *testing.T) {
	const tol = 1e-6
	if c := CalcCents(440, 440); math.Abs(c) > tol {
		t.Errorf("CalcCents(f,f) = %v, want 0", c)
	}
	if c := CalcCents(440, 880); math.Abs(c-1200) > tol {
		t.Errorf("CalcCents(f,2f) = %v, want 1200", c)
	}
}

func TestCentsToRatioRoundTrip(t *testing.T) {
	// CentsToRatio uses a fast approximate exponential, so allow a few
	// cents of slack rather than exact-math tolerances.
	const tol = 5.0
	for _, cents := range []float64{0, 100, 700, 1200, -500} {
		ratio := CentsToRatio(cents)
		back := RatioToCents(ratio)
		if math.Abs(back-cents) > tol {
			t.Errorf("round-trip cents=%v -> ratio=%v -> cents=%v", cents, ratio, back)
		}
	}
}
