package orchestrator

import (
	"testing"

	"github.com/cwbudde/wwidesigner-core/acoustic/simplecalc"
	"github.com/cwbudde/wwidesigner-core/evaluator"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/objective"
	"github.com/cwbudde/wwidesigner-core/rangeprocessor"
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

func testBase(t *testing.T, optType objective.OptimizerType) objective.Base {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	tun := tuner.NewSimple(calc)
	ev := evaluator.NewCentDeviation(tun)
	tuning := instrument.Tuning{Fingerings: []instrument.Fingering{
		{Note: instrument.Note{Frequency: 1200}, OpenHole: []bool{false, false, false}},
	}}
	return objective.Base{Instrument: in, Calc: calc, Eval: ev, Tuning: tuning, OptType: optType, MaxEval: 500}
}

func TestRunSingleStartHoleSize(t *testing.T) {
	base := testBase(t, objective.OptimizerBOBYQA)
	obj := objective.NewHoleSize(base)
	o := New()
	res, err := o.RunSingleStart(obj, nil)
	if err != nil {
		t.Fatalf("RunSingleStart: %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, message=%q", res.Message)
	}
	if res.Evaluations <= 0 {
		t.Errorf("Evaluations = %d, want > 0", res.Evaluations)
	}
}

func TestRunSingleStartRejectsOutOfBoundsStart(t *testing.T) {
	base := testBase(t, objective.OptimizerBOBYQA)
	obj := objective.NewHoleSize(base)
	_, upper := obj.Bounds()
	bad := make([]float64, len(upper))
	for i := range bad {
		bad[i] = upper[i] + 1
	}
	o := New()
	if _, err := o.RunSingleStart(obj, bad); err == nil {
		t.Fatal("expected bounds-violation error")
	}
}

// Scenario S5-adjacent multi-start exercise: 3 starts over a hole-size
// objective, best-so-far tracked and refined.
func TestRunMultiStart(t *testing.T) {
	base := testBase(t, objective.OptimizerBOBYQA)
	obj := objective.NewHoleSize(base)
	lower, upper := obj.Bounds()
	rp, err := rangeprocessor.NewRandom(lower, upper, 3, nil, nil, 1)
	if err != nil {
		t.Fatalf("NewRandom: %v", err)
	}
	o := New()
	res, err := o.RunMultiStart(obj, rp)
	if err != nil {
		t.Fatalf("RunMultiStart: %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, message=%q", res.Message)
	}
}

// Spec test #8: two-stage preservation — after a two-stage run, the
// objective's evaluator identity is the original one, even though the
// global phase ran under a different evaluator.
func TestRunTwoStagePreservesEvaluatorIdentity(t *testing.T) {
	base := testBase(t, objective.OptimizerBOBYQA)
	in := base.Instrument
	calc := base.Calc
	firstStage := evaluator.NewFrequencyDeviation(tuner.NewSimple(calc))
	base.FirstStageEval = firstStage
	obj := objective.NewHoleSize(base)
	_ = in

	mainEval := obj.Evaluator()
	o := New()
	if _, err := o.RunTwoStage(obj, nil); err != nil {
		t.Fatalf("RunTwoStage: %v", err)
	}
	if obj.Evaluator() != mainEval {
		t.Errorf("Evaluator() after two-stage run is not the original evaluator")
	}
}

func TestRunTwoStageWithoutFirstStageFallsBackToSingleStart(t *testing.T) {
	base := testBase(t, objective.OptimizerBOBYQA)
	obj := objective.NewHoleSize(base)
	o := New()
	res, err := o.RunTwoStage(obj, nil)
	if err != nil {
		t.Fatalf("RunTwoStage: %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, message=%q", res.Message)
	}
}

func TestDispatcherReturnsMinimizerForHeadjoint(t *testing.T) {
	base := testBase(t, objective.OptimizerBOBYQA)
	obj := objective.NewHeadjoint(base, 2)
	d := NewDispatcher()
	m := d.For(obj)
	if m == nil {
		t.Fatal("For returned nil minimizer")
	}
}
