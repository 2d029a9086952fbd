package spectrum

import (
	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
)

// ReflectanceSpectrum samples the reflection coefficient R(f) and exposes
// squared-phase-angle extrema plus magnitude minima (spec §6 "Spectrum
// return shapes").
type ReflectanceSpectrum struct {
	AngleSquaredSamples []Point
	AngleSquaredMinima  []Point
	AngleSquaredMaxima  []Point

	MagnitudeSamples []Point
	MagnitudeMinima  []Point
}

// NewReflectanceSpectrum samples calc's reflection coefficient over
// [fMin, fMax] at n points.
func NewReflectanceSpectrum(calc acoustic.Calculator, fingering instrument.Fingering, fMin, fMax float64, n int) ReflectanceSpectrum {
	if n < 2 {
		n = 2
	}
	angleSq := make([]Point, n)
	mag := make([]Point, n)
	step := (fMax - fMin) / float64(n-1)
	for i := 0; i < n; i++ {
		f := fMin + float64(i)*step
		r := calc.CalcReflectionCoefficient(f, fingering)
		a := r.Arg()
		angleSq[i] = Point{Frequency: f, Value: a * a}
		mag[i] = Point{Frequency: f, Value: r.Abs()}
	}
	return ReflectanceSpectrum{
		AngleSquaredSamples: angleSq,
		AngleSquaredMinima:  Minima(angleSq),
		AngleSquaredMaxima:  Maxima(angleSq),
		MagnitudeSamples:    mag,
		MagnitudeMinima:     Minima(mag),
	}
}
