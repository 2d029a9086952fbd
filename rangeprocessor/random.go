package rangeprocessor

import "math/rand"

// RandomRangeProcessor draws uniform random points in [lower,upper],
// restricted to the varying dimensions and seedable for reproducibility.
type RandomRangeProcessor struct {
	mask   *dimensionMask
	starts int
	rng    *rand.Rand
}

// NewRandom builds a RandomRangeProcessor. varyingDims nil means vary every
// dimension; staticValues nil means pinned dimensions default to the
// midpoint of their bounds.
func NewRandom(lower, upper []float64, numberOfStarts int, varyingDims []int, staticValues []float64, seed int64) (*RandomRangeProcessor, error) {
	if numberOfStarts <= 0 {
		return nil, errInvalid("numberOfStarts must be > 0, got %d", numberOfStarts)
	}
	mask, err := newDimensionMask(lower, upper, varyingDims, staticValues)
	if err != nil {
		return nil, err
	}
	return &RandomRangeProcessor{mask: mask, starts: numberOfStarts, rng: rand.New(rand.NewSource(seed))}, nil
}

func (p *RandomRangeProcessor) NumberOfStarts() int { return p.starts }

func (p *RandomRangeProcessor) Next() []float64 {
	values := make(map[int]float64, len(p.mask.varying))
	for _, d := range p.mask.varying {
		lo, hi := p.mask.lower[d], p.mask.upper[d]
		values[d] = lo + p.rng.Float64()*(hi-lo)
	}
	return p.mask.point(values)
}
