package main

import (
	"testing"

	"github.com/cwbudde/wwidesigner-core/acoustic/simplecalc"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/objective"
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

func TestBuildObjectiveDispatch(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	base := objective.Base{Instrument: in, Calc: calc, OptType: objective.OptimizerBOBYQA, MaxEval: 100}

	cases := map[string]int{
		"hole-position":     3,
		"hole-size":         2,
		"hole-and-position": 6,
	}
	for kind, wantDims := range cases {
		obj := buildObjective(kind, base)
		if obj.NumberOfDimensions() != wantDims {
			t.Errorf("buildObjective(%q).NumberOfDimensions() = %d, want %d", kind, obj.NumberOfDimensions(), wantDims)
		}
	}
}

func TestBuildTunerDefaultsToSimple(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	tun := buildTuner("bogus", calc, 5, in)
	if tun == nil {
		t.Fatal("buildTuner returned nil")
	}
}

func TestBuildRangeProcessorGrid(t *testing.T) {
	rp := buildRangeProcessor("grid", []float64{0, 0}, []float64{1, 1}, 4, 1)
	if rp.NumberOfStarts() == 0 {
		t.Fatal("NumberOfStarts() = 0")
	}
}
