package spectrum

import (
	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
)

// ImpedanceSpectrum is a dense f -> Z(f) sample set for one fingering, with
// its interior extrema detected on |Im(Z)| rather than |Z| (spec §9 Open
// Questions: |Im(Z)| is the conventional wind-instrument resonance
// indicator, since Im(Z) sign changes mark the reactance zero-crossings the
// playing-range solver roots on).
type ImpedanceSpectrum struct {
	Samples []Point
	Minima  []Point
	Maxima  []Point
}

// NewImpedanceSpectrum samples calc's impedance magnitude-of-imaginary-part
// over [fMin, fMax] at n points and detects its extrema.
func NewImpedanceSpectrum(calc acoustic.Calculator, fingering instrument.Fingering, fMin, fMax float64, n int) ImpedanceSpectrum {
	samples := Sample(fMin, fMax, n, func(f float64) float64 {
		z := calc.CalcZ(f, fingering)
		return absIm(z)
	})
	return ImpedanceSpectrum{
		Samples: samples,
		Minima:  Minima(samples),
		Maxima:  Maxima(samples),
	}
}

func absIm(z acoustic.Complex) float64 {
	if z.Im < 0 {
		return -z.Im
	}
	return z.Im
}
