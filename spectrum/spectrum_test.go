package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/wwidesigner-core/acoustic/simplecalc"
	"github.com/cwbudde/wwidesigner-core/instrument"
)

// Testable property #5: a smooth unimodal function sampled at >= 5 points
// yields exactly one maximum (or minimum) at the correct interior index.
func TestMaximaUnimodal(t *testing.T) {
	samples := Sample(-2, 2, 9, func(x float64) float64 { return -x * x })
	got := Maxima(samples)
	if len(got) != 1 {
		t.Fatalf("Maxima count = %d, want 1", len(got))
	}
	if math.Abs(got[0].Frequency) > 1e-9 {
		t.Errorf("maximum at f=%v, want 0", got[0].Frequency)
	}
}

func TestMinimaUnimodal(t *testing.T) {
	samples := Sample(-2, 2, 9, func(x float64) float64 { return x * x })
	got := Minima(samples)
	if len(got) != 1 {
		t.Fatalf("Minima count = %d, want 1", len(got))
	}
	if math.Abs(got[0].Frequency) > 1e-9 {
		t.Errorf("minimum at f=%v, want 0", got[0].Frequency)
	}
}

func TestExtremaIgnoreEndpoints(t *testing.T) {
	samples := []Point{{0, 5}, {1, 1}, {2, 3}, {3, 1}, {4, 5}}
	if got := Minima(samples); len(got) != 2 {
		t.Fatalf("Minima count = %d, want 2 (endpoints excluded)", len(got))
	}
}

func testWhistle(t *testing.T) *instrument.Instrument {
	t.Helper()
	in := &instrument.Instrument{
		Unit:       instrument.MM,
		Mouthpiece: instrument.Mouthpiece{Fipple: &instrument.FippleMouthpiece{WindowLength: 5, WindowWidth: 8, Beta: 0.3}},
		BorePoints: []instrument.BorePoint{{Position: 0, Diameter: 16}, {Position: 300, Diameter: 16}},
		Holes: []instrument.Hole{
			{Name: "1", Position: 200, Diameter: 8, Height: 4},
			{Name: "2", Position: 220, Diameter: 8, Height: 4},
			{Name: "3", Position: 240, Diameter: 8, Height: 4},
		},
		Termination: instrument.Termination{FlangeDiameter: 20},
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := in.ConvertToMetres(); err != nil {
		t.Fatalf("ConvertToMetres: %v", err)
	}
	return in
}

func TestImpedanceSpectrumAgainstWhistle(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	fingering := instrument.Fingering{OpenHole: []bool{false, false, false}}

	spec := NewImpedanceSpectrum(calc, fingering, 200, 2000, 50)
	if len(spec.Samples) != 50 {
		t.Fatalf("len(Samples) = %d, want 50", len(spec.Samples))
	}
	for _, pt := range spec.Minima {
		if pt.Value < 0 {
			t.Errorf("|Im(Z)| minimum = %v, want >= 0", pt.Value)
		}
	}
}

func TestReflectanceSpectrumAgainstWhistle(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	fingering := instrument.Fingering{OpenHole: []bool{false, false, false}}

	spec := NewReflectanceSpectrum(calc, fingering, 200, 2000, 50)
	for _, pt := range spec.MagnitudeSamples {
		if pt.Value < 0 {
			t.Errorf("|R| = %v, want >= 0", pt.Value)
		}
	}
	for _, pt := range spec.AngleSquaredSamples {
		if pt.Value < 0 {
			t.Errorf("arg(R)^2 = %v, want >= 0", pt.Value)
		}
	}
}

func TestPlayingRangeSpectrumAgainstWhistle(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	fingering := instrument.Fingering{OpenHole: []bool{false, false, false}}

	spec := NewPlayingRangeSpectrum(calc, fingering, 200, 2000, 50)
	if len(spec.ImpedanceSamples) != 50 || len(spec.GainSamples) != 50 {
		t.Fatalf("unexpected sample counts: impedance=%d gain=%d", len(spec.ImpedanceSamples), len(spec.GainSamples))
	}
}
