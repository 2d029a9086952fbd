package rangeprocessor

import "math"

// GridRangeProcessor partitions each varying dimension into evenly spaced
// steps and enumerates their cartesian product, stopping at numberOfStarts
// points; when the product is smaller, it yields fewer points (spec §6).
type GridRangeProcessor struct {
	mask   *dimensionMask
	points [][]float64
	next   int
}

// NewGrid builds a GridRangeProcessor. The per-dimension step count is
// chosen as round(numberOfStarts^(1/k)) where k is the number of varying
// dimensions, so a single varying dimension gets exactly numberOfStarts
// evenly spaced points (spec scenario S5).
func NewGrid(lower, upper []float64, numberOfStarts int, varyingDims []int, staticValues []float64) (*GridRangeProcessor, error) {
	if numberOfStarts <= 0 {
		return nil, errInvalid("numberOfStarts must be > 0, got %d", numberOfStarts)
	}
	mask, err := newDimensionMask(lower, upper, varyingDims, staticValues)
	if err != nil {
		return nil, err
	}
	k := len(mask.varying)
	if k == 0 {
		return &GridRangeProcessor{mask: mask, points: [][]float64{mask.point(nil)}}, nil
	}
	perDim := int(math.Round(math.Pow(float64(numberOfStarts), 1.0/float64(k))))
	if perDim < 1 {
		perDim = 1
	}

	steps := make([][]float64, k)
	for i, d := range mask.varying {
		steps[i] = linspace(mask.lower[d], mask.upper[d], perDim)
	}

	var points [][]float64
	combo := make([]int, k)
	for {
		values := make(map[int]float64, k)
		for i, d := range mask.varying {
			values[d] = steps[i][combo[i]]
		}
		points = append(points, mask.point(values))
		if len(points) >= numberOfStarts {
			break
		}
		if !increment(combo, perDim) {
			break
		}
	}
	if len(points) > numberOfStarts {
		points = points[:numberOfStarts]
	}

	return &GridRangeProcessor{mask: mask, points: points}, nil
}

func (p *GridRangeProcessor) NumberOfStarts() int { return len(p.points) }

func (p *GridRangeProcessor) Next() []float64 {
	pt := p.points[p.next]
	p.next++
	return pt
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 0.5 * (lo + hi)
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// increment advances combo (a mixed-radix counter with each digit in
// [0,base)) by one, returning false on overflow.
func increment(combo []int, base int) bool {
	for i := len(combo) - 1; i >= 0; i-- {
		combo[i]++
		if combo[i] < base {
			return true
		}
		combo[i] = 0
	}
	return false
}
