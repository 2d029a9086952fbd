package tuner

import (
	"math"
	"testing"

	"github.com/cwbudde/wwidesigner-core/acoustic/simplecalc"
	"github.com/cwbudde/wwidesigner-core/instrument"
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

func testTuning() instrument.Tuning {
	return instrument.Tuning{
		Fingerings: []instrument.Fingering{
			{Note: instrument.Note{Frequency: 440}, OpenHole: []bool{false, false, false}},
			{Note: instrument.Note{Frequency: 523.25}, OpenHole: []bool{true, true, true}},
		},
	}
}

func TestSimpleInstrumentTunerPredictsFmax(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)

	tuner := NewSimple(calc)
	tuner.SetTuning(testTuning())

	note := tuner.PredictedFrequency(tuner.tuning.Fingerings[0])
	if !note.Ok {
		t.Fatalf("PredictedFrequency: expected Ok")
	}
	if note.Frequency != note.Fmax {
		t.Errorf("simple tuner should report Fmax == Frequency, got %v vs %v", note.Frequency, note.Fmax)
	}
	if note.Frequency <= 0 {
		t.Errorf("Frequency = %v, want > 0", note.Frequency)
	}
}

func TestSimpleInstrumentTunerRejectsUntargetedNote(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)

	tuner := NewSimple(calc)
	note := tuner.PredictedFrequency(instrument.Fingering{OpenHole: []bool{false, false, false}})
	if note.Ok {
		t.Errorf("expected Ok=false for a fingering with no target frequency")
	}
}

func TestLinearVInstrumentTunerPredicts(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)

	tuning := testTuning()
	lv := NewLinearV(calc, 5, in.Mouthpiece.Fipple.WindowLength)
	lv.SetTuning(tuning)
	if !lv.ready {
		t.Fatalf("expected LinearVInstrumentTuner to become ready after SetTuning")
	}

	note := lv.PredictedFrequency(tuning.Fingerings[0])
	if !note.Ok {
		t.Fatalf("PredictedFrequency: expected Ok")
	}
	if note.Frequency <= 0 {
		t.Errorf("Frequency = %v, want > 0", note.Frequency)
	}
	if note.Fmax <= 0 || note.Fmin <= 0 || note.Fmin > note.Fmax {
		t.Errorf("fmax/fmin out of order: fmax=%v fmin=%v", note.Fmax, note.Fmin)
	}
}

func TestLinearVInstrumentTunerClampsBlowLevel(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)

	lv := NewLinearV(calc, 99, in.Mouthpiece.Fipple.WindowLength)
	if lv.blowLevel != 10 {
		t.Errorf("blowLevel = %d, want clamped to 10", lv.blowLevel)
	}
	lv2 := NewLinearV(calc, -5, in.Mouthpiece.Fipple.WindowLength)
	if lv2.blowLevel != 0 {
		t.Errorf("blowLevel = %d, want clamped to 0", lv2.blowLevel)
	}
}

func TestVelocityClamps(t *testing.T) {
	v := velocity(440, 0.005, -100)
	vHi := velocity(440, 0.005, 100)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Errorf("velocity with extreme low rho should clamp, got %v", v)
	}
	if math.IsNaN(vHi) || math.IsInf(vHi, 0) {
		t.Errorf("velocity with extreme high rho should clamp, got %v", vHi)
	}
}
