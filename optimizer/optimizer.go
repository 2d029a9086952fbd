// Package optimizer defines the uniform minimize interface shared by every
// concrete optimizer (Brent, BOBYQA, Powell, Simplex/Nelder-Mead, CMA-ES,
// DIRECT, and the Mayfly population-based global search), plus the
// ObjectiveFunc signature the orchestrator and objective layer drive them
// with.
package optimizer

// ObjectiveFunc is a scalar objective over R^n. Implementations are free to
// be non-smooth and to return +Inf for infeasible points (BOBYQA and Powell
// expect bound-respecting callers, but a large finite penalty is safer than
// +Inf for derivative-free trust-region steps).
type ObjectiveFunc func(x []float64) float64

// Result is the uniform return shape every optimizer produces.
type Result struct {
	Point       []float64
	Value       float64
	Evaluations int
	Iterations  int
	Converged   bool
	Message     string
}

// Options carries the tolerances and ceilings common to every optimizer.
// Fields that don't apply to a given algorithm are ignored by it.
type Options struct {
	MaxEvaluations      int
	MaxIterations       int
	RelativeTolerance   float64
	AbsoluteTolerance   float64
	InitialTrustRegion  float64 // BOBYQA rho0
	StoppingTrustRegion float64 // BOBYQA rhoEnd
	StepSizes           []float64
	// Cancel, when non-nil, is polled between iterations; when it returns
	// true the optimizer stops and returns the best point found so far with
	// Converged=false (spec §5 cooperative cancellation).
	Cancel func() bool
}

// DefaultOptions returns the conservative defaults used throughout the
// design kernel when a caller doesn't override them.
func DefaultOptions() Options {
	return Options{
		MaxEvaluations:      10000,
		MaxIterations:       1000,
		RelativeTolerance:   1e-8,
		AbsoluteTolerance:   1e-10,
		InitialTrustRegion:  10,
		StoppingTrustRegion: 1e-8,
	}
}

// Minimizer is the uniform minimize interface every optimizer in this
// package tree implements.
type Minimizer interface {
	Minimize(f ObjectiveFunc, lower, upper, start []float64, opts Options) (Result, error)
}

func cancelled(opts Options) bool {
	return opts.Cancel != nil && opts.Cancel()
}

// ClampVec clips x into [lower, upper] component-wise, returning a new
// slice. Used by every bound-constrained optimizer's candidate-generation
// step.
func ClampVec(x, lower, upper []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		v := x[i]
		if i < len(lower) && v < lower[i] {
			v = lower[i]
		}
		if i < len(upper) && v > upper[i] {
			v = upper[i]
		}
		out[i] = v
	}
	return out
}

// InBounds reports whether x lies within [lower, upper] component-wise.
func InBounds(x, lower, upper []float64) bool {
	for i := range x {
		if x[i] < lower[i] || x[i] > upper[i] {
			return false
		}
	}
	return true
}
