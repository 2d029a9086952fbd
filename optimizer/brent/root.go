package brent

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotBracketed is returned by FindRoot when f(lo) and f(hi) share a sign.
var ErrNotBracketed = errors.New("brent: interval is not bracketed (f(lo) and f(hi) share a sign)")

// RootResult is the outcome of a bracketed root search.
type RootResult struct {
	X           float64
	FX          float64
	Evaluations int
	Converged   bool
}

// FindRoot locates a root of f within [lo, hi], which must bracket a sign
// change, combining bisection with secant and inverse-quadratic
// interpolation steps (the classical Brent-Dekker algorithm). relTol/absTol
// bound the final bracket width; maxEval bounds the evaluation count. On
// exhaustion, returns the best bracket point with Converged=false rather
// than an error (spec §7, RootFinderNonConvergence).
func FindRoot(f func(float64) float64, lo, hi, relTol, absTol float64, maxEval int) (RootResult, error) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if relTol <= 0 {
		relTol = 1e-10
	}
	if absTol <= 0 {
		absTol = 1e-12
	}
	if maxEval <= 0 {
		maxEval = 200
	}

	a, b := lo, hi
	fa, fb := f(a), f(b)
	evals := 2
	if sameSign(fa, fb) {
		return RootResult{}, fmt.Errorf("%w: f(%v)=%v f(%v)=%v", ErrNotBracketed, a, fa, b, fb)
	}

	c, fc := a, fa
	d, e := b-a, b-a

	for it := 0; it < maxEval; it++ {
		if sameSign(fb, fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 2*relTol*math.Abs(b) + 0.5*absTol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol || fb == 0 {
			return RootResult{X: b, FX: fb, Evaluations: evals, Converged: true}, nil
		}
		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				qq := fa / fc
				r := fb / fc
				p = s * (2*xm*qq*(qq-r) - (b-a)*(r-1))
				q = (qq - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			minStep := math.Min(3*xm*q-math.Abs(tol*q), math.Abs(e*q))
			if 2*p < minStep {
				e, d = d, p/q
			} else {
				d, e = xm, xm
			}
		} else {
			d, e = xm, xm
		}
		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += sign(tol, xm)
		}
		fb = f(b)
		evals++
	}
	return RootResult{X: b, FX: fb, Evaluations: evals, Converged: false}, nil
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
