// Package bobyqa implements a simplified derivative-free trust-region
// optimizer in the spirit of Powell's BOBYQA: each iteration fits a
// diagonal quadratic model from 2n+1 coordinate samples around the current
// best point, minimizes that model inside the trust region, and grows or
// shrinks the region by the classic actual/predicted reduction ratio (spec
// §4.6). This is not full BOBYQA — it omits BOBYQA's interpolation-set
// maintenance and uses a diagonal (no cross-term) Hessian model — but
// honors the same Options.InitialTrustRegion / StoppingTrustRegion
// contract and converges on smooth unimodal objectives.
package bobyqa

import (
	"math"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

// Minimize runs the trust-region search from start.
func Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	n := len(start)
	if n == 0 {
		return optimizer.Result{}, errInvalid("start vector is empty")
	}
	x := optimizer.ClampVec(start, lower, upper)

	rho := opts.InitialTrustRegion
	if rho <= 0 {
		rho = 10
	}
	rhoEnd := opts.StoppingTrustRegion
	if rhoEnd <= 0 {
		rhoEnd = 1e-8
	}
	// Clamp the initial radius to something sane relative to the box so a
	// caller-supplied InitialTrustRegion meant for a different problem's
	// scale doesn't immediately blow past the bounds.
	maxSpan := 0.0
	for i := range lower {
		if span := upper[i] - lower[i]; span > maxSpan {
			maxSpan = span
		}
	}
	if maxSpan > 0 && rho > 0.5*maxSpan {
		rho = 0.5 * maxSpan
	}

	maxEval := opts.MaxEvaluations
	if maxEval <= 0 {
		maxEval = 5000
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = 1000
	}

	evaluations := 0
	eval := func(p []float64) float64 {
		evaluations++
		return f(optimizer.ClampVec(p, lower, upper))
	}

	fx := eval(x)
	iterations := 0
	converged := false

	for iterations < maxIter && evaluations < maxEval && rho > rhoEnd {
		if opts.Cancel != nil && opts.Cancel() {
			break
		}

		grad := make([]float64, n)
		hess := make([]float64, n)
		for i := 0; i < n; i++ {
			if evaluations+2 > maxEval {
				break
			}
			step := rho
			xp := append([]float64(nil), x...)
			xm := append([]float64(nil), x...)
			xp[i] += step
			xm[i] -= step
			fp := eval(xp)
			fm := eval(xm)
			grad[i] = (fp - fm) / (2 * step)
			hess[i] = (fp - 2*fx + fm) / (step * step)
			if hess[i] < 1e-12 {
				hess[i] = 1e-12
			}
		}

		step := make([]float64, n)
		stepNorm := 0.0
		for i := range step {
			step[i] = -grad[i] / hess[i]
			stepNorm += step[i] * step[i]
		}
		stepNorm = math.Sqrt(stepNorm)
		if stepNorm > rho && stepNorm > 0 {
			scale := rho / stepNorm
			for i := range step {
				step[i] *= scale
			}
		}

		predicted := 0.0
		for i := range step {
			predicted += grad[i]*step[i] + 0.5*hess[i]*step[i]*step[i]
		}
		predicted = -predicted

		candidate := make([]float64, n)
		for i := range candidate {
			candidate[i] = x[i] + step[i]
		}
		candidate = optimizer.ClampVec(candidate, lower, upper)
		fCandidate := eval(candidate)
		actual := fx - fCandidate

		ratio := 0.0
		if predicted > 1e-300 {
			ratio = actual / predicted
		}

		switch {
		case ratio > 0.75:
			rho *= 2
		case ratio < 0.25:
			rho *= 0.5
		}
		if maxSpan > 0 && rho > 0.5*maxSpan {
			rho = 0.5 * maxSpan
		}

		if ratio > 0 && fCandidate < fx {
			x, fx = candidate, fCandidate
		}

		iterations++
	}

	if rho <= rhoEnd {
		converged = true
	}

	return optimizer.Result{
		Point:       x,
		Value:       fx,
		Evaluations: evaluations,
		Iterations:  iterations,
		Converged:   converged,
	}, nil
}

type invalidError string

func (e invalidError) Error() string { return string(e) }

func errInvalid(msg string) error { return invalidError("bobyqa: " + msg) }
