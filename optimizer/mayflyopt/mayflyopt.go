// Package mayflyopt adapts the Mayfly Optimization Algorithm
// (github.com/cwbudde/mayfly) to the optimizer.Minimizer interface, for use
// as the GlobalHole… family's population-based global search (spec §4.5
// "optimizerType = DIRECT" sibling: MAYFLY is this kernel's alternate
// global optimizer when a population-based search is preferred over
// Lipschitzian partitioning).
package mayflyopt

import (
	"math"

	"github.com/cwbudde/mayfly"

	"github.com/cwbudde/wwidesigner-core/internal/numeric"
	"github.com/cwbudde/wwidesigner-core/optimizer"
)

// Optimizer wraps mayfly.Optimize behind optimizer.Minimizer. Because the
// underlying library takes one scalar [LowerBound, UpperBound] box shared
// across all dimensions, per-dimension bounds are enforced inside the
// wrapped objective via a penalty rather than passed to the library
// directly.
type Optimizer struct {
	// Population sizes; zero selects the package defaults (or the
	// selected Variant's own defaults, if set).
	MalePopulation   int
	FemalePopulation int

	// Variant selects one of the library's named algorithm variants
	// ("desma", "olce", "eobbma", "gsasma", "mpma", "aoblmoa"; "ma" or ""
	// for the standard algorithm) via mayfly.NewVariant, starting from
	// that variant's GetConfig() instead of the hand-tuned defaults
	// below. An unrecognized name falls back to the standard algorithm.
	Variant string
}

// Minimize runs the Mayfly algorithm over f, clamped to the tightest common
// envelope of lower/upper and penalized for per-dimension bound violations.
func (o Optimizer) Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	n := len(start)
	envLo, envHi := envelope(lower, upper)

	evaluations := 0
	wrapped := func(x []float64) float64 {
		evaluations++
		penalty := 0.0
		for i, v := range x {
			if v < lower[i] {
				penalty += (lower[i] - v) * (lower[i] - v) * 1e6
			}
			if v > upper[i] {
				penalty += (v - upper[i]) * (v - upper[i]) * 1e6
			}
		}
		return f(x) + penalty
	}

	cfg := o.baseConfig()
	if o.MalePopulation > 0 {
		cfg.NPop = o.MalePopulation
	}
	if o.FemalePopulation > 0 {
		cfg.NPopF = o.FemalePopulation
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = cfg.MaxIterations
	}
	if maxIter <= 0 {
		maxIter = 200
	}
	if opts.MaxEvaluations > 0 {
		perIter := cfg.NPop + cfg.NPopF
		if perIter > 0 && maxIter*perIter > opts.MaxEvaluations {
			maxIter = numeric.MaxInt(opts.MaxEvaluations/perIter, 1)
		}
	}

	cfg.ObjectiveFunc = wrapped
	cfg.ProblemSize = n
	cfg.LowerBound = envLo
	cfg.UpperBound = envHi
	cfg.MaxIterations = maxIter

	res, err := mayfly.Optimize(cfg)
	if err != nil {
		return optimizer.Result{}, err
	}

	point := optimizer.ClampVec(res.GlobalBest.Position, lower, upper)
	return optimizer.Result{
		Point:       point,
		Value:       f(point),
		Evaluations: evaluations,
		Iterations:  res.IterationCount,
		Converged:   numeric.IsFinite(res.GlobalBest.Cost),
		Message:     "mayfly population search completed",
	}, nil
}

// baseConfig returns the starting *mayfly.Config: the selected Variant's
// GetConfig() when o.Variant names a known variant, or the package's own
// hand-tuned defaults otherwise. ObjectiveFunc/ProblemSize/bounds/
// MaxIterations are overwritten by the caller afterward.
func (o Optimizer) baseConfig() *mayfly.Config {
	if o.Variant != "" {
		if v := mayfly.NewVariant(o.Variant); v != nil {
			return v.GetConfig()
		}
	}
	return &mayfly.Config{
		NPop:      20,
		NPopF:     20,
		G:         0.8,
		GDamp:     1.0,
		Dance:     5.0,
		DanceDamp: 0.8,
		FL:        1.0,
		FLDamp:    0.99,
	}
}

func envelope(lower, upper []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := range lower {
		if lower[i] < lo {
			lo = lower[i]
		}
		if upper[i] > hi {
			hi = upper[i]
		}
	}
	return lo, hi
}
