package bobyqa

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
		res, err := Minimize(f, lower, upper, start, opts)
		if err != nil {
			t.Fatalf("n=%d: Minimize: %v", n, err)
		}
		for i := range res.Point {
			if math.Abs(res.Point[i]) >= 0.5 {
				t.Errorf("n=%d: Point[%d] = %v, want |x| < 0.5", n, i, res.Point[i])
			}
		}
		if !res.Converged {
			t.Errorf("n=%d: Converged = false, want true", n)
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
