package mayflyopt

import (
	"math"
	"testing"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

func TestMinimizeSphere(t *testing.T) {
	const c = 3.0
	f := func(x []float64) float64 { return (x[0] - c) * (x[0] - c) }
	opts := optimizer.DefaultOptions()
	opts.MaxIterations = 50

	o := Optimizer{MalePopulation: 10, FemalePopulation: 10}
	res, err := o.Minimize(f, []float64{0}, []float64{10}, []float64{1}, opts)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if math.Abs(res.Point[0]-c) > 1.0 {
		t.Errorf("x* = %v, want roughly close to %v (population search, loose tolerance)", res.Point[0], c)
	}
	if res.Evaluations <= 0 {
		t.Errorf("Evaluations = %d, want > 0", res.Evaluations)
	}
}

func TestMinimizeVariant(t *testing.T) {
	const c = 3.0
	f := func(x []float64) float64 { return (x[0] - c) * (x[0] - c) }
	opts := optimizer.DefaultOptions()
	opts.MaxIterations = 50

	o := Optimizer{MalePopulation: 10, FemalePopulation: 10, Variant: "desma"}
	res, err := o.Minimize(f, []float64{0}, []float64{10}, []float64{1}, opts)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if res.Evaluations <= 0 {
		t.Errorf("Evaluations = %d, want > 0", res.Evaluations)
	}
}

func TestMinimizeUnknownVariantFallsBackToStandard(t *testing.T) {
	const c = 3.0
	f := func(x []float64) float64 { return (x[0] - c) * (x[0] - c) }
	opts := optimizer.DefaultOptions()
	opts.MaxIterations = 50

	o := Optimizer{MalePopulation: 10, FemalePopulation: 10, Variant: "not-a-real-variant"}
	res, err := o.Minimize(f, []float64{0}, []float64{10}, []float64{1}, opts)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if res.Evaluations <= 0 {
		t.Errorf("Evaluations = %d, want > 0", res.Evaluations)
	}
}
