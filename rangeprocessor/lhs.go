package rangeprocessor

import "math/rand"

// LHSRangeProcessor is a Latin hypercube sampler: each varying dimension is
// partitioned into numberOfStarts strata, one sample drawn per stratum,
// and the stratum-to-point assignment permuted independently per
// dimension (spec §6).
type LHSRangeProcessor struct {
	mask   *dimensionMask
	points [][]float64
	next   int
}

// NewLHS builds an LHSRangeProcessor.
func NewLHS(lower, upper []float64, numberOfStarts int, varyingDims []int, staticValues []float64, seed int64) (*LHSRangeProcessor, error) {
	if numberOfStarts <= 0 {
		return nil, errInvalid("numberOfStarts must be > 0, got %d", numberOfStarts)
	}
	mask, err := newDimensionMask(lower, upper, varyingDims, staticValues)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	n := numberOfStarts

	perDimSamples := make(map[int][]float64, len(mask.varying))
	for _, d := range mask.varying {
		lo, hi := mask.lower[d], mask.upper[d]
		strataWidth := (hi - lo) / float64(n)
		samples := make([]float64, n)
		for i := 0; i < n; i++ {
			samples[i] = lo + (float64(i)+rng.Float64())*strataWidth
		}
		perm := rng.Perm(n)
		permuted := make([]float64, n)
		for i, p := range perm {
			permuted[i] = samples[p]
		}
		perDimSamples[d] = permuted
	}

	points := make([][]float64, n)
	for i := 0; i < n; i++ {
		values := make(map[int]float64, len(mask.varying))
		for _, d := range mask.varying {
			values[d] = perDimSamples[d][i]
		}
		points[i] = mask.point(values)
	}

	return &LHSRangeProcessor{mask: mask, points: points}, nil
}

func (p *LHSRangeProcessor) NumberOfStarts() int { return len(p.points) }

func (p *LHSRangeProcessor) Next() []float64 {
	pt := p.points[p.next]
	p.next++
	return pt
}
