package spectrum

import (
	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
)

// PlayingRangeSpectrum samples impedance and loop gain across a fingering's
// candidate playing range and detects gain maxima, the peaks a playing-range
// solver's bracketing search walks between (spec §6 "Spectrum return
// shapes").
type PlayingRangeSpectrum struct {
	ImpedanceSamples []Point
	GainSamples      []Point
	GainMaxima       []Point
}

// NewPlayingRangeSpectrum samples calc's impedance and CalcGain over
// [fMin, fMax] at n points, using Im(Z) as the impedance map's value (the
// quantity the playing-range solver roots on) and detects gain maxima by
// the interior three-point rule on loop gain.
func NewPlayingRangeSpectrum(calc acoustic.Calculator, fingering instrument.Fingering, fMin, fMax float64, n int) PlayingRangeSpectrum {
	if n < 2 {
		n = 2
	}
	impedance := make([]Point, n)
	gain := make([]Point, n)
	step := (fMax - fMin) / float64(n-1)
	for i := 0; i < n; i++ {
		f := fMin + float64(i)*step
		z := calc.CalcZ(f, fingering)
		impedance[i] = Point{Frequency: f, Value: z.Im}
		gain[i] = Point{Frequency: f, Value: calc.CalcGain(f, z)}
	}
	return PlayingRangeSpectrum{
		ImpedanceSamples: impedance,
		GainSamples:      gain,
		GainMaxima:       Maxima(gain),
	}
}
