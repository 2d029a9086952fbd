// Package powell implements Powell's conjugate-direction method, each 1-D
// line search delegated to brent.Minimize along a fixed direction (spec
// §4.6).
package powell

import (
	"math"

	"github.com/cwbudde/wwidesigner-core/optimizer"
	"github.com/cwbudde/wwidesigner-core/optimizer/brent"
)

// Minimize runs Powell's method from start, bound-clamping every line-search
// result. The direction set starts as the coordinate axes, once, before
// the first pass; after each pass it replaces its most successful direction with the
// net travel direction of the pass, unless Powell's degeneracy condition
// rejects that replacement.
func Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	n := len(start)
	if n == 0 {
		return optimizer.Result{}, errInvalid("start vector is empty")
	}
	p := optimizer.ClampVec(start, lower, upper)

	relTol := opts.RelativeTolerance
	if relTol <= 0 {
		relTol = 1e-8
	}
	absTol := opts.AbsoluteTolerance
	if absTol <= 0 {
		absTol = 1e-10
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = 200
	}
	maxEval := opts.MaxEvaluations
	if maxEval <= 0 {
		maxEval = 20000
	}

	evaluations := 0
	eval := func(x []float64) float64 {
		evaluations++
		return f(x)
	}

	directions := identityDirections(n)
	fp := eval(p)

	iterations := 0
	converged := false

	for iterations < maxIter {
		if evaluations >= maxEval {
			break
		}
		if opts.Cancel != nil && opts.Cancel() {
			break
		}
		p0 := append([]float64(nil), p...)
		fp0 := fp

		biggestDecrease := 0.0
		biggestIdx := 0

		for i, dir := range directions {
			if evaluations >= maxEval {
				break
			}
			before := fp
			newP, newF, evalsUsed := lineSearch(eval, p, dir, lower, upper, opts)
			evaluations += evalsUsed
			p, fp = newP, newF
			if before-fp > biggestDecrease {
				biggestDecrease = before - fp
				biggestIdx = i
			}
		}

		spread := math.Abs(fp0 - fp)
		if spread <= absTol+relTol*math.Abs(fp0) {
			converged = true
			iterations++
			break
		}

		extrapolated := make([]float64, n)
		for d := range extrapolated {
			extrapolated[d] = 2*p[d] - p0[d]
		}
		extrapolated = optimizer.ClampVec(extrapolated, lower, upper)
		fe := eval(extrapolated)
		evaluations++

		netDir := make([]float64, n)
		for d := range netDir {
			netDir[d] = p[d] - p0[d]
		}

		// Powell's condition (Numerical Recipes formulation): only replace
		// the direction that produced the biggest decrease if doing so
		// doesn't risk collapsing the direction set's linear independence.
		if fe < fp0 {
			t := 2*(fp0-2*fp+fe)*sqr(fp0-fp-biggestDecrease) - biggestDecrease*sqr(fp0-fe)
			if t < 0 {
				newP, newF, evalsUsed := lineSearch(eval, p, netDir, lower, upper, opts)
				evaluations += evalsUsed
				p, fp = newP, newF
				directions[biggestIdx] = netDir
			}
		}

		iterations++
	}

	return optimizer.Result{
		Point:       p,
		Value:       fp,
		Evaluations: evaluations,
		Iterations:  iterations,
		Converged:   converged,
	}, nil
}

func sqr(x float64) float64 { return x * x }

func identityDirections(n int) [][]float64 {
	dirs := make([][]float64, n)
	for i := range dirs {
		d := make([]float64, n)
		d[i] = 1.0
		dirs[i] = d
	}
	return dirs
}

// lineSearch minimizes f(p + t*dir) over t such that p+t*dir stays within
// [lower,upper], via brent.Minimize on the induced 1-D interval.
func lineSearch(eval func([]float64) float64, p, dir, lower, upper []float64, opts optimizer.Options) (newP []float64, newF float64, evalsUsed int) {
	tLo, tHi := tBoundsForDirection(p, dir, lower, upper)
	if tLo >= tHi {
		return append([]float64(nil), p...), eval(p), 1
	}

	along := func(t float64) float64 {
		x := make([]float64, len(p))
		for i := range x {
			x[i] = p[i] + t*dir[i]
		}
		return eval(x)
	}

	wrapped := func(x []float64) float64 { return along(x[0]) }
	lineOpts := opts
	lineOpts.MaxEvaluations = 100
	res, err := brent.Minimize(wrapped, []float64{tLo}, []float64{tHi}, []float64{0}, lineOpts)
	if err != nil {
		return append([]float64(nil), p...), eval(p), 1
	}
	t := res.Point[0]
	x := make([]float64, len(p))
	for i := range x {
		x[i] = p[i] + t*dir[i]
	}
	return x, res.Value, res.Evaluations
}

// tBoundsForDirection computes the largest interval [tLo,tHi] such that
// p+t*dir stays within [lower,upper] for every component with a nonzero
// direction coefficient.
func tBoundsForDirection(p, dir, lower, upper []float64) (tLo, tHi float64) {
	tLo, tHi = math.Inf(-1), math.Inf(1)
	for i, d := range dir {
		if d == 0 {
			continue
		}
		t1 := (lower[i] - p[i]) / d
		t2 := (upper[i] - p[i]) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tLo {
			tLo = t1
		}
		if t2 < tHi {
			tHi = t2
		}
	}
	if math.IsInf(tLo, -1) {
		tLo = -1e6
	}
	if math.IsInf(tHi, 1) {
		tHi = 1e6
	}
	return tLo, tHi
}

type invalidError string

func (e invalidError) Error() string { return string(e) }

func errInvalid(msg string) error { return invalidError("powell: " + msg) }
