package evaluator

import (
	"math"
	"testing"

	"github.com/cwbudde/wwidesigner-core/acoustic/simplecalc"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/tuner"
)

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

func TestCentDeviationEvaluatorFiniteAtTarget(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	tun := tuner.NewSimple(calc)
	ev := NewCentDeviation(tun)

	fingerings := []instrument.Fingering{
		{Note: instrument.Note{Frequency: 440}, OpenHole: []bool{false, false, false}},
	}
	errs := ev.CalculateErrorVector(fingerings)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	if math.IsNaN(errs[0]) || math.IsInf(errs[0], 0) {
		t.Errorf("error = %v, want finite", errs[0])
	}
}

func TestCentDeviationEvaluatorZeroForUntargeted(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	tun := tuner.NewSimple(calc)
	ev := NewCentDeviation(tun)

	fingerings := []instrument.Fingering{
		{OpenHole: []bool{false, false, false}},
	}
	errs := ev.CalculateErrorVector(fingerings)
	if errs[0] != 0 {
		t.Errorf("error = %v, want 0 for untargeted fingering", errs[0])
	}
}

func TestReactanceEvaluatorFinite(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	ev := NewReactance(calc)

	fingerings := []instrument.Fingering{
		{Note: instrument.Note{Frequency: 440}, OpenHole: []bool{false, false, false}},
	}
	errs := ev.CalculateErrorVector(fingerings)
	if math.IsNaN(errs[0]) || math.IsInf(errs[0], 0) {
		t.Errorf("reactance error = %v, want finite", errs[0])
	}
}

func TestFrequencyDeviationEvaluatorPenalty(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	tun := tuner.NewSimple(calc)
	ev := NewFrequencyDeviation(tun)

	// An absurdly high target with no bracketable resonance nearby should
	// fall back to the fT penalty rather than panicking.
	fingerings := []instrument.Fingering{
		{Note: instrument.Note{Frequency: 1e9}, OpenHole: []bool{false, false, false}},
	}
	errs := ev.CalculateErrorVector(fingerings)
	if errs[0] != 1e9 {
		t.Errorf("error = %v, want penalty 1e9", errs[0])
	}
}
