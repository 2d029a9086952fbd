// Package cmaes implements a (mu/mu_w, lambda)-CMA-ES evolution strategy
// with rank-mu and rank-one covariance updates (spec §4.6), following the
// standard "purecmaes" presentation. Bounds are handled by clipping each
// candidate into the box and adding a quadratic penalty on the clipped
// distance; candidates are neither mirrored nor resampled.
package cmaes

import (
	"math"
	"sort"

	"github.com/cwbudde/wwidesigner-core/optimizer"
)

// rng is a small deterministic linear congruential generator so CMA-ES
// stays reproducible without depending on math/rand's global state.
type rng struct{ state uint64 }

func newRNG(seed uint64) *rng {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	return &rng{state: seed}
}

func (r *rng) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

func (r *rng) uniform() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

func (r *rng) normal() float64 {
	u1, u2 := r.uniform(), r.uniform()
	if u1 < 1e-300 {
		u1 = 1e-300
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Minimize runs CMA-ES from start, evaluating a bound-penalized objective
// and clipping every sampled candidate into [lower,upper] before scoring.
func Minimize(f optimizer.ObjectiveFunc, lower, upper, start []float64, opts optimizer.Options) (optimizer.Result, error) {
	n := len(start)
	if n == 0 {
		return optimizer.Result{}, errInvalid("start vector is empty")
	}
	mean := optimizer.ClampVec(start, lower, upper)

	maxEval := opts.MaxEvaluations
	if maxEval <= 0 {
		maxEval = 10000
	}
	relTol := opts.RelativeTolerance
	if relTol <= 0 {
		relTol = 1e-10
	}

	lambda := 4 + int(3*math.Log(float64(n)))
	if lambda < 4 {
		lambda = 4
	}
	mu := lambda / 2

	weights := make([]float64, mu)
	sumW := 0.0
	for i := range weights {
		weights[i] = math.Log(float64(mu)+0.5) - math.Log(float64(i+1))
		sumW += weights[i]
	}
	for i := range weights {
		weights[i] /= sumW
	}
	sumWSq := 0.0
	for _, w := range weights {
		sumWSq += w * w
	}
	muEff := 1.0 / sumWSq

	nf := float64(n)
	cSigma := (muEff + 2) / (nf + muEff + 5)
	dSigma := 1 + 2*math.Max(0, math.Sqrt((muEff-1)/(nf+1))-1) + cSigma
	cc := (4 + muEff/nf) / (nf + 4 + 2*muEff/nf)
	c1 := 2 / ((nf+1.3)*(nf+1.3) + muEff)
	cmu := math.Min(1-c1, 2*(muEff-2+1/muEff)/((nf+2)*(nf+2)+muEff))
	chiN := math.Sqrt(nf) * (1 - 1/(4*nf) + 1/(21*nf*nf))

	sigma := 0.0
	for i := range lower {
		span := upper[i] - lower[i]
		if span > sigma {
			sigma = span
		}
	}
	sigma *= 0.3
	if sigma <= 0 {
		sigma = 1.0
	}

	pSigma := make([]float64, n)
	pC := make([]float64, n)
	C := identity(n)
	B := identity(n)
	D := make([]float64, n)
	for i := range D {
		D[i] = 1.0
	}

	r := newRNG(1)

	evaluations := 0
	eval := func(x []float64) float64 {
		evaluations++
		clamped := optimizer.ClampVec(x, lower, upper)
		penalty := 0.0
		for i := range x {
			d := x[i] - clamped[i]
			penalty += d * d * 1e3
		}
		return f(clamped) + penalty
	}

	type sample struct {
		x, z []float64
		f    float64
	}

	bestX := append([]float64(nil), mean...)
	bestF := eval(mean)

	iterations := 0
	stagnant := 0
	converged := false

	for evaluations < maxEval {
		if opts.Cancel != nil && opts.Cancel() {
			break
		}
		samples := make([]sample, lambda)
		for k := 0; k < lambda; k++ {
			if evaluations >= maxEval {
				lambda = k
				samples = samples[:k]
				break
			}
			z := make([]float64, n)
			for i := range z {
				z[i] = r.normal()
			}
			by := matVec(B, scaleVec(D, z))
			x := make([]float64, n)
			for i := range x {
				x[i] = mean[i] + sigma*by[i]
			}
			samples[k] = sample{x: x, z: z, f: eval(x)}
		}
		if len(samples) == 0 {
			break
		}
		sort.Slice(samples, func(i, j int) bool { return samples[i].f < samples[j].f })
		if samples[0].f < bestF {
			if bestF-samples[0].f <= relTol*(1+math.Abs(bestF)) {
				stagnant++
			} else {
				stagnant = 0
			}
			bestF = samples[0].f
			bestX = append([]float64(nil), samples[0].x...)
		} else {
			stagnant++
		}

		muUsed := mu
		if muUsed > len(samples) {
			muUsed = len(samples)
		}
		newMean := make([]float64, n)
		zMean := make([]float64, n)
		for i := 0; i < muUsed && i < len(weights); i++ {
			w := weights[i]
			for d := 0; d < n; d++ {
				newMean[d] += w * samples[i].x[d]
				zMean[d] += w * samples[i].z[d]
			}
		}
		mean = newMean

		bz := matVec(B, zMean)
		for i := range pSigma {
			pSigma[i] = (1-cSigma)*pSigma[i] + math.Sqrt(cSigma*(2-cSigma)*muEff)*bz[i]
		}
		psNorm := norm(pSigma)
		sigma *= math.Exp((cSigma / dSigma) * (psNorm/chiN - 1))

		hSig := 0.0
		if psNorm/math.Sqrt(1-math.Pow(1-cSigma, 2*float64(iterations+1)))/chiN < 1.4+2/(nf+1) {
			hSig = 1
		}
		bdz := matVec(B, scaleVec(D, zMean))
		for i := range pC {
			pC[i] = (1-cc)*pC[i] + hSig*math.Sqrt(cc*(2-cc)*muEff)*bdz[i]
		}

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				rankOne := pC[i] * pC[j]
				rankMu := 0.0
				for k := 0; k < muUsed && k < len(weights); k++ {
					bdzk := matVec(B, scaleVec(D, samples[k].z))
					rankMu += weights[k] * bdzk[i] * bdzk[j]
				}
				C[i][j] = (1-c1-cmu)*C[i][j] + c1*rankOne + cmu*rankMu
			}
		}

		if iterations%10 == 0 {
			B, D = eigenDecompose(C)
		}

		iterations++
		if stagnant >= 50 {
			converged = true
			break
		}
	}

	if evaluations >= maxEval {
		converged = true
	}

	return optimizer.Result{
		Point:       optimizer.ClampVec(bestX, lower, upper),
		Value:       bestF,
		Evaluations: evaluations,
		Iterations:  iterations,
		Converged:   converged,
	}, nil
}

func identity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	return m
}

func matVec(m [][]float64, v []float64) []float64 {
	n := len(v)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += m[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}

func scaleVec(d, v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range out {
		out[i] = d[i] * v[i]
	}
	return out
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// eigenDecompose computes an approximate symmetric eigendecomposition of C
// via cyclic Jacobi rotations, returning eigenvectors B and sqrt-eigenvalues
// D such that C ~ B * diag(D^2) * B^T.
func eigenDecompose(c [][]float64) (B [][]float64, D []float64) {
	n := len(c)
	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), c[i]...)
	}
	v := identity(n)

	for sweep := 0; sweep < 30; sweep++ {
		off := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += a[i][j] * a[i][j]
			}
		}
		if off < 1e-18 {
			break
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < 1e-18 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := sign(theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta == 0 {
					t = 1
				}
				cTheta := 1 / math.Sqrt(t*t+1)
				sTheta := t * cTheta
				app, aqq, apq := a[p][p], a[q][q], a[p][q]
				a[p][p] = cTheta*cTheta*app - 2*sTheta*cTheta*apq + sTheta*sTheta*aqq
				a[q][q] = sTheta*sTheta*app + 2*sTheta*cTheta*apq + cTheta*cTheta*aqq
				a[p][q] = 0
				a[q][p] = 0
				for i := 0; i < n; i++ {
					if i != p && i != q {
						aip, aiq := a[i][p], a[i][q]
						a[i][p] = cTheta*aip - sTheta*aiq
						a[p][i] = a[i][p]
						a[i][q] = sTheta*aip + cTheta*aiq
						a[q][i] = a[i][q]
					}
					vip, viq := v[i][p], v[i][q]
					v[i][p] = cTheta*vip - sTheta*viq
					v[i][q] = sTheta*vip + cTheta*viq
				}
			}
		}
	}

	D = make([]float64, n)
	for i := range D {
		D[i] = math.Sqrt(math.Max(a[i][i], 1e-20))
	}
	return v, D
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

type invalidError string

func (e invalidError) Error() string { return string(e) }

func errInvalid(msg string) error { return invalidError("cmaes: " + msg) }
