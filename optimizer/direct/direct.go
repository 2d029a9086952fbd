// Package direct implements DIRECT (DIviding RECTangles), a deterministic
// Lipschitzian global optimizer that partitions the search box into
// hyperrectangles and samples each at its centre (spec §4.6).
package direct

import (
	"math"
	"sort"
	"strconv"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

// Epsilon is the convex-hull slope tolerance used to select potentially
// optimal rectangles (spec §4.6 default 1e-4).
const Epsilon = 1e-4

type rectangle struct {
	center  []float64 // normalized to [0,1]^n
	lengths []float64 // normalized side lengths, each a power of 1/3
	f       float64
}

func (r *rectangle) size() float64 {
	sum := 0.0
	for _, l := range r.lengths {
		sum += l * l
	}
	return 0.5 * math.Sqrt(sum)
}

// Minimize runs DIRECT from the whole [lower,upper] box (start is ignored;
// DIRECT is a global method with no meaningful starting point) until
// opts.MaxEvaluations is exhausted or the best value stops improving for
// enough consecutive iterations.
func Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	n := len(lower)
	if n == 0 || len(upper) != n {
		return optimizer.Result{}, errInvalid("lower/upper must be non-empty and equal length")
	}
	for i := range lower {
		if lower[i] >= upper[i] {
			return optimizer.Result{}, errInvalid("lower bound must be strictly less than upper bound in every dimension")
		}
	}

	maxEval := opts.MaxEvaluations
	if maxEval <= 0 {
		maxEval = 2000
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = 200
	}
	relTol := opts.RelativeTolerance
	if relTol <= 0 {
		relTol = 1e-6
	}

	toActual := func(c []float64) []float64 {
		x := make([]float64, n)
		for i := range x {
			x[i] = lower[i] + c[i]*(upper[i]-lower[i])
		}
		return x
	}

	evaluations := 0
	eval := func(c []float64) float64 {
		evaluations++
		return f(toActual(c))
	}

	center0 := make([]float64, n)
	lengths0 := make([]float64, n)
	for i := range center0 {
		center0[i] = 0.5
		lengths0[i] = 1.0
	}
	rects := []*rectangle{{center: center0, lengths: lengths0, f: eval(center0)}}

	bestF := rects[0].f
	stagnant := 0
	iterations := 0
	converged := false

	for iterations < maxIter && evaluations < maxEval {
		if opts.Cancel != nil && opts.Cancel() {
			break
		}
		optimal := potentiallyOptimal(rects, bestF)
		if len(optimal) == 0 {
			break
		}
		before := bestF
		for _, idx := range optimal {
			if evaluations >= maxEval {
				break
			}
			rects = split(rects, idx, eval)
		}
		for _, r := range rects {
			if r.f < bestF {
				bestF = r.f
			}
		}
		if math.Abs(before-bestF) <= relTol*(1+math.Abs(before)) {
			stagnant++
		} else {
			stagnant = 0
		}
		if stagnant >= 20 {
			converged = true
			break
		}
		iterations++
	}

	best := rects[0]
	for _, r := range rects {
		if r.f < best.f {
			best = r
		}
	}
	if evaluations >= maxEval {
		converged = true
	}

	return optimizer.Result{
		Point:       toActual(best.center),
		Value:       best.f,
		Evaluations: evaluations,
		Iterations:  iterations,
		Converged:   converged,
	}, nil
}

// sizeGroup is one distinct rectangle size with its best (size, f) point.
type sizeGroup struct {
	size float64
	f    float64
	idx  int
}

// potentiallyOptimal selects rectangle indices via the convex-hull rule on
// (size, f_centre), grouped by distinct size and filtered by the slope
// tolerance Epsilon (spec §4.6).
func potentiallyOptimal(rects []*rectangle, bestF float64) []int {
	bySize := make(map[string]*sizeGroup)
	order := make([]string, 0)
	for i, r := range rects {
		s := r.size()
		key := sizeKey(s)
		g, ok := bySize[key]
		if !ok {
			bySize[key] = &sizeGroup{size: s, f: r.f, idx: i}
			order = append(order, key)
			continue
		}
		if r.f < g.f {
			g.f = r.f
			g.idx = i
		}
	}
	groups := make([]*sizeGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, bySize[k])
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].size < groups[j].size })

	hull := lowerHull(groups)

	selected := make([]int, 0, len(hull))
	for i, g := range hull {
		k := 0.0
		switch {
		case i < len(hull)-1:
			next := hull[i+1]
			if next.size > g.size {
				k = (next.f - g.f) / (next.size - g.size)
			}
		case i > 0:
			prev := hull[i-1]
			if g.size > prev.size {
				k = (g.f - prev.f) / (g.size - prev.size)
			}
		}
		if k < 0 {
			k = 0
		}
		threshold := bestF - Epsilon*math.Abs(bestF)
		if g.f-k*g.size <= threshold || math.Abs(bestF) < 1e-300 {
			selected = append(selected, g.idx)
		}
	}
	if len(selected) == 0 && len(hull) > 0 {
		selected = append(selected, hull[len(hull)-1].idx)
	}
	return selected
}

func sizeKey(s float64) string {
	return strconv.FormatUint(math.Float64bits(math.Round(s*1e9)/1e9), 16)
}

// lowerHull returns the lower convex hull of groups already sorted by size
// ascending.
func lowerHull(groups []*sizeGroup) []*sizeGroup {
	hull := make([]*sizeGroup, 0, len(groups))
	for _, g := range groups {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], g) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, g)
	}
	return hull
}

func cross(o, a, b *sizeGroup) float64 {
	return (a.size-o.size)*(b.f-o.f) - (a.f-o.f)*(b.size-o.size)
}

// split divides the rectangle at idx along its longest side(s) into thirds,
// sampling the two new centres per longest dimension and ordering the
// splits from the best new sample to the worst so the rectangle holding the
// best sample ends up largest (Jones/Perttunen/Stuckman ordering rule).
func split(rects []*rectangle, idx int, eval func([]float64) float64) []*rectangle {
	r := rects[idx]
	maxLen := 0.0
	for _, l := range r.lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	dims := make([]int, 0)
	for i, l := range r.lengths {
		if math.Abs(l-maxLen) < 1e-12 {
			dims = append(dims, i)
		}
	}

	type cand struct {
		dim                int
		centerLo, centerHi []float64
		fLo, fHi           float64
		bestOfTwo          float64
	}
	cands := make([]cand, 0, len(dims))
	for _, d := range dims {
		delta := r.lengths[d] / 3.0
		cLo := append([]float64(nil), r.center...)
		cHi := append([]float64(nil), r.center...)
		cLo[d] -= delta
		cHi[d] += delta
		fLo := eval(cLo)
		fHi := eval(cHi)
		cands = append(cands, cand{dim: d, centerLo: cLo, centerHi: cHi, fLo: fLo, fHi: fHi, bestOfTwo: math.Min(fLo, fHi)})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].bestOfTwo < cands[j].bestOfTwo })

	out := make([]*rectangle, 0, len(rects)+2*len(cands))
	out = append(out, rects[:idx]...)
	out = append(out, rects[idx+1:]...)

	current := &rectangle{center: append([]float64(nil), r.center...), lengths: append([]float64(nil), r.lengths...), f: r.f}
	for _, c := range cands {
		newLengths := append([]float64(nil), current.lengths...)
		newLengths[c.dim] = current.lengths[c.dim] / 3.0
		current.lengths[c.dim] = newLengths[c.dim]

		out = append(out,
			&rectangle{center: c.centerLo, lengths: append([]float64(nil), newLengths...), f: c.fLo},
			&rectangle{center: c.centerHi, lengths: append([]float64(nil), newLengths...), f: c.fHi},
		)
	}
	out = append(out, current)
	return out
}

type invalidError string

func (e invalidError) Error() string { return string(e) }

func errInvalid(msg string) error { return invalidError("direct: " + msg) }
