// Package brent implements Brent's method: golden-section search combined
// with inverse parabolic interpolation for 1-D minimization (spec §4.6), and
// the companion bracketed root-finder (bisection falling back from secant /
// inverse-quadratic steps) used by the playing-range solver (spec §4.2).
package brent

import (
	"fmt"
	"math"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

const goldenRatio = 0.3819660112501051 // (3-sqrt(5))/2

// Minimize finds a local minimum of f on [lower[0], upper[0]] via golden
// section search with inverse parabolic interpolation steps accepted only
// when they make sufficient progress (the standard Brent safeguard against
// degenerate parabolic fits). start[0] is clamped into bounds and used as
// the first trial point; the search interval is the whole
// [lower[0], upper[0]].
func Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	if len(lower) != 1 || len(upper) != 1 {
		return optimizer.Result{}, fmt.Errorf("brent: Minimize is 1-D only, got %d dims", len(lower))
	}
	a, b := lower[0], upper[0]
	if a >= b {
		return optimizer.Result{}, fmt.Errorf("brent: lower bound %v must be < upper bound %v", a, b)
	}
	relTol := opts.RelativeTolerance
	if relTol < math.Sqrt(math.SmallestNonzeroFloat64) {
		relTol = 1e-8
	}
	absTol := opts.AbsoluteTolerance
	if absTol <= 0 {
		absTol = 1e-10
	}
	maxEval := opts.MaxEvaluations
	if maxEval <= 0 {
		maxEval = 500
	}

	x := a
	if len(start) > 0 {
		x = math.Max(a, math.Min(b, start[0]))
	} else {
		x = a + goldenRatio*(b-a)
	}
	w, v := x, x
	fx := f([]float64{x})
	fw, fv := fx, fx
	evals := 1

	d, e := 0.0, 0.0

	for it := 0; it < maxEval; it++ {
		if opts.Cancel != nil && opts.Cancel() {
			return optimizer.Result{Point: []float64{x}, Value: fx, Evaluations: evals, Iterations: it, Converged: false, Message: "cancelled"}, nil
		}
		mid := 0.5 * (a + b)
		tol1 := relTol*math.Abs(x) + absTol
		tol2 := 2 * tol1
		if math.Abs(x-mid) <= tol2-0.5*(b-a) {
			return optimizer.Result{Point: []float64{x}, Value: fx, Evaluations: evals, Iterations: it, Converged: true}, nil
		}

		useGolden := true
		if math.Abs(e) > tol1 {
			// Attempt inverse parabolic interpolation through (v,fv),(w,fw),(x,fx).
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q2 := 2 * (q - r)
			if q2 > 0 {
				p = -p
			}
			q2 = math.Abs(q2)
			etemp := e
			e = d
			if math.Abs(p) < math.Abs(0.5*q2*etemp) && p > q2*(a-x) && p < q2*(b-x) {
				d = p / q2
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = sign(tol1, mid-x)
				}
				useGolden = false
			}
		}
		if useGolden {
			if x >= mid {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenRatio * e
		}

		var u float64
		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + sign(tol1, d)
		}
		fu := f([]float64{u})
		evals++
		if evals >= maxEval {
			return optimizer.Result{Point: []float64{x}, Value: fx, Evaluations: evals, Iterations: it, Converged: false, Message: "max evaluations reached"}, nil
		}

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}
	return optimizer.Result{Point: []float64{x}, Value: fx, Evaluations: evals, Converged: false, Message: "max evaluations reached"}, nil
}

func sign(mag, s float64) float64 {
	if s >= 0 {
		return math.Abs(mag)
	}
	return -math.Abs(mag)
}
