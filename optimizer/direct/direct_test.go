package direct

import (
	"math"
	"testing"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

// Scenario S6: DIRECT on (x-3)^2 over [0,10], maxEvaluations=1000.
func TestMinimizeScenarioS6(t *testing.T) {
	f := func(x []float64) float64 { return (x[0] - 3) * (x[0] - 3) }
	opts := optimizer.DefaultOptions()
	opts.MaxEvaluations = 1000
	res, err := Minimize(f, []float64{0}, []float64{10}, []float64{5}, opts)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if math.Abs(res.Point[0]-3) >= 0.1 {
		t.Errorf("x* = %v, want |x*-3| < 0.1", res.Point[0])
	}
	if !res.Converged {
		t.Errorf("Converged = false, want true")
	}
}

// Spec test #7: optimizer convergence on the sphere function for n in {1,2,3}.
func TestMinimizeSphere(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		lower := make([]float64, n)
		upper := make([]float64, n)
		start := make([]float64, n)
		for i := range lower {
			lower[i] = -5
			upper[i] = 5
			start[i] = 1
		}
		f := func(x []float64) float64 {
			sum := 0.0
			for _, v := range x {
				sum += v * v
			}
			return sum
		}
		opts := optimizer.DefaultOptions()
		opts.MaxEvaluations = 3000
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

func TestMinimizeRejectsDegenerateBounds(t *testing.T) {
	opts := optimizer.DefaultOptions()
	_, err := Minimize(func(x []float64) float64 { return 0 }, []float64{1}, []float64{1}, []float64{1}, opts)
	if err == nil {
		t.Fatal("expected error for degenerate bounds")
	}
}
