// Package simplex implements the Nelder-Mead downhill simplex method with
// bound clipping (spec §4.6).
package simplex

import (
	"math"
	"sort"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

const (
	alpha = 1.0 // reflection
	gamma = 2.0 // expansion
	rho   = 0.5 // contraction
	sigma = 0.5 // shrink
)

type vertex struct {
	x []float64
	f float64
}

// Minimize runs Nelder-Mead from start, building the initial simplex from
// opts.StepSizes (defaulting to 5% of the bound range per dimension) and
// clipping every candidate vertex into [lower, upper]. It reports
// convergence once the spread of vertex values is within the absolute plus
// relative tolerance and the simplex has shrunk to that relative tolerance
// of its largest initial step.
func Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	n := len(start)
	if n == 0 {
		return optimizer.Result{}, errInvalid("start vector is empty")
	}
	if !optimizer.InBounds(start, lower, upper) {
		start = optimizer.ClampVec(start, lower, upper)
	}

	steps := opts.StepSizes
	if len(steps) != n {
		steps = make([]float64, n)
		for i := range steps {
			steps[i] = 0.05 * (upper[i] - lower[i])
			if steps[i] == 0 {
				steps[i] = 0.05
			}
		}
	}

	maxEval := opts.MaxEvaluations
	if maxEval <= 0 {
		maxEval = 10000
	}
	relTol := opts.RelativeTolerance
	if relTol <= 0 {
		relTol = 1e-8
	}
	absTol := opts.AbsoluteTolerance
	if absTol <= 0 {
		absTol = 1e-10
	}

	evaluations := 0
	eval := func(x []float64) float64 {
		evaluations++
		return f(x)
	}
	// newVertex clamps x into bounds before evaluating and storing it, so
	// every vertex the simplex ever holds (and the final returned point)
	// stays inside [lower, upper].
	newVertex := func(x []float64) vertex {
		x = optimizer.ClampVec(x, lower, upper)
		return vertex{x: x, f: eval(x)}
	}

	simplex := make([]vertex, n+1)
	simplex[0] = newVertex(append([]float64(nil), start...))
	for i := 0; i < n; i++ {
		x := append([]float64(nil), start...)
		x[i] += steps[i]
		simplex[i+1] = newVertex(x)
	}

	iterations := 0
	converged := false

	for iterations < opts.MaxIterations || opts.MaxIterations == 0 {
		if evaluations >= maxEval {
			break
		}
		if opts.Cancel != nil && opts.Cancel() {
			break
		}
		sort.Slice(simplex, func(i, j int) bool { return simplex[i].f < simplex[j].f })

		spread := math.Abs(simplex[n].f - simplex[0].f)
		// Equal vertex values alone do not mean convergence: a simplex can
		// straddle the minimum with all vertices on one level set, so its
		// extent must also have shrunk relative to the initial steps.
		extent, initial := 0.0, 0.0
		for d := 0; d < n; d++ {
			initial = math.Max(initial, math.Abs(steps[d]))
			for i := 1; i <= n; i++ {
				extent = math.Max(extent, math.Abs(simplex[i].x[d]-simplex[0].x[d]))
			}
		}
		if spread <= absTol+relTol*math.Abs(simplex[0].f) && extent <= absTol+relTol*initial {
			converged = true
			break
		}

		centroid := make([]float64, n)
		for i := 0; i < n; i++ {
			for d := 0; d < n; d++ {
				centroid[d] += simplex[i].x[d]
			}
		}
		for d := range centroid {
			centroid[d] /= float64(n)
		}

		worst := simplex[n]
		reflectedV := newVertex(reflect(centroid, worst.x, alpha))

		switch {
		case reflectedV.f < simplex[0].f:
			expandedV := newVertex(reflect(centroid, worst.x, gamma))
			if expandedV.f < reflectedV.f {
				simplex[n] = expandedV
			} else {
				simplex[n] = reflectedV
			}
		case reflectedV.f < simplex[n-1].f:
			simplex[n] = reflectedV
		default:
			var contractedV vertex
			if reflectedV.f < worst.f {
				// Outside contraction: reflected beat the worst vertex.
				contractedV = newVertex(reflect(centroid, worst.x, rho))
			} else {
				// Inside contraction: reflected did not improve on worst.
				contractedV = newVertex(reflect(centroid, worst.x, -rho))
			}
			if contractedV.f < worst.f {
				simplex[n] = contractedV
			} else {
				best := simplex[0]
				for i := 1; i <= n; i++ {
					shrunk := make([]float64, n)
					for d := 0; d < n; d++ {
						shrunk[d] = best.x[d] + sigma*(simplex[i].x[d]-best.x[d])
					}
					simplex[i] = newVertex(shrunk)
				}
			}
		}
		iterations++
	}

	sort.Slice(simplex, func(i, j int) bool { return simplex[i].f < simplex[j].f })
	best := simplex[0]
	return optimizer.Result{
		Point:       best.x,
		Value:       best.f,
		Evaluations: evaluations,
		Iterations:  iterations,
		Converged:   converged,
	}, nil
}

// reflect computes centroid + coeff*(centroid-worst).
func reflect(centroid, worst []float64, coeff float64) []float64 {
	out := make([]float64, len(centroid))
	for i := range out {
		out[i] = centroid[i] + coeff*(centroid[i]-worst[i])
	}
	return out
}

type invalidError string

func (e invalidError) Error() string { return string(e) }

func errInvalid(msg string) error { return invalidError("simplex: " + msg) }
