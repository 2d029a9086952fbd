package cmaes

import (
	"math"
	"testing"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

// Spec test #7: optimizer convergence on the sphere function for n in {1,2,3}.
func TestMinimizeSphere(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		lower := make([]float64, n)
		upper := make([]float64, n)
		start := make([]float64, n)
		for i := range lower {
			lower[i] = -5
			upper[i] = 5
			start[i] = 2
		}
		f := func(x []float64) float64 {
			sum := 0.0
			for _, v := range x {
				sum += v * v
			}
			return sum
		}
		opts := optimizer.DefaultOptions()
		opts.MaxEvaluations = 20000
		res, err := Minimize(f, lower, upper, start, opts)
		if err != nil {
			t.Fatalf("n=%d: Minimize: %v", n, err)
		}
		for i := range res.Point {
			if math.Abs(res.Point[i]) >= 0.5 {
				t.Errorf("n=%d: Point[%d] = %v, want |x| < 0.5", n, i, res.Point[i])
			}
		}
	}
}

func TestMinimizeRejectsEmptyStart(t *testing.T) {
	opts := optimizer.DefaultOptions()
	_, err := Minimize(func(x []float64) float64 { return 0 }, nil, nil, nil, opts)
	if err == nil {
		t.Fatal("expected error for empty start vector")
	}
}

func TestMinimizeStaysInBounds(t *testing.T) {
	f := func(x []float64) float64 { return -x[0]*x[0] - x[1]*x[1] }
	lower := []float64{-1, -1}
	upper := []float64{1, 1}
	opts := optimizer.DefaultOptions()
	opts.MaxEvaluations = 5000
	res, err := Minimize(f, lower, upper, []float64{0, 0}, opts)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	for i, v := range res.Point {
		if v < lower[i]-1e-9 || v > upper[i]+1e-9 {
			t.Errorf("Point[%d] = %v, out of bounds [%v,%v]", i, v, lower[i], upper[i])
		}
	}
}
