package powell

import (
	"math"
	"testing"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

// Spec test #7: optimizer convergence on the sphere function for n in {1,2,3}.
func TestMinimizeSphere(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		center := make([]float64, n)
		lower := make([]float64, n)
		upper := make([]float64, n)
		start := make([]float64, n)
		for i := range center {
			center[i] = float64(i) + 1
			lower[i] = -10
			upper[i] = 10
			start[i] = 0
		}
		f := func(x []float64) float64 {
			sum := 0.0
			for i, v := range x {
				d := v - center[i]
				sum += d * d
			}
			return sum
		}
		opts := optimizer.DefaultOptions()
		res, err := Minimize(f, lower, upper, start, opts)
		if err != nil {
			t.Fatalf("n=%d: Minimize: %v", n, err)
		}
		for i := range center {
			if math.Abs(res.Point[i]-center[i]) > 1e-3 {
				t.Errorf("n=%d: Point[%d] = %v, want ~%v", n, i, res.Point[i], center[i])
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
	f := func(x []float64) float64 { return -x[0] }
	lower := []float64{-1}
	upper := []float64{1}
	opts := optimizer.DefaultOptions()
	res, err := Minimize(f, lower, upper, []float64{0}, opts)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if res.Point[0] > upper[0]+1e-9 || res.Point[0] < lower[0]-1e-9 {
		t.Errorf("Point[0] = %v, want within [%v,%v]", res.Point[0], lower[0], upper[0])
	}
}
