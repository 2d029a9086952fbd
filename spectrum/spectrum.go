// Package spectrum samples a scalar function of frequency over a dense grid
// and locates its interior local extrema with a strict three-point shape
// test (spec §3 Spectrum, §6 "Spectrum return shapes").
package spectrum

// Point is one (frequency, value) sample.
type Point struct {
	Frequency float64
	Value     float64
}

// Sample evaluates f at n evenly spaced frequencies over [fMin, fMax]
// (inclusive of both endpoints, n >= 2).
func Sample(fMin, fMax float64, n int, f func(float64) float64) []Point {
	if n < 2 {
		n = 2
	}
	pts := make([]Point, n)
	step := (fMax - fMin) / float64(n-1)
	for i := 0; i < n; i++ {
		freq := fMin + float64(i)*step
		pts[i] = Point{Frequency: freq, Value: f(freq)}
	}
	return pts
}

// Minima returns the interior points where samples[i-1].Value > samples[i].Value
// < samples[i+1].Value: a strict three-point local-minimum test, scanned in
// increasing-frequency order (spec §5 "fixed scan order").
func Minima(samples []Point) []Point {
	return extrema(samples, func(a, b, c float64) bool { return a > b && b < c })
}

// Maxima returns the interior points where samples[i-1].Value < samples[i].Value
// > samples[i+1].Value (strict three-point local-maximum test).
func Maxima(samples []Point) []Point {
	return extrema(samples, func(a, b, c float64) bool { return a < b && b > c })
}

func extrema(samples []Point, shape func(a, b, c float64) bool) []Point {
	var out []Point
	for i := 1; i < len(samples)-1; i++ {
		if shape(samples[i-1].Value, samples[i].Value, samples[i+1].Value) {
			out = append(out, samples[i])
		}
	}
	return out
}
