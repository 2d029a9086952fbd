package instrument

import (
	"math"
	"testing"
)

func TestParseFingeringPattern(t *testing.T) {
	cases := []struct {
		in         string
		wantHoles  []bool
		wantEnd    bool
		wantHasEnd bool
	}{
		{"XXX", []bool{false, false, false}, false, false},
		{"OOO_", []bool{true, true, true}, true, true},
		{"XOX]", []bool{false, true, false}, false, true},
		{"XXX OOO", []bool{false, false, false, true, true, true}, false, false},
	}
	for _, c := range cases {
		holes, end, hasEnd, err := ParseFingeringPattern(c.in)
		if err != nil {
			t.Fatalf("ParseFingeringPattern(%q): %v", c.in, err)
		}
		if len(holes) != len(c.wantHoles) {
			t.Fatalf("ParseFingeringPattern(%q): got %d holes, want %d", c.in, len(holes), len(c.wantHoles))
		}
		for i := range holes {
			if holes[i] != c.wantHoles[i] {
				t.Errorf("ParseFingeringPattern(%q): hole %d = %v, want %v", c.in, i, holes[i], c.wantHoles[i])
			}
		}
		if end != c.wantEnd || hasEnd != c.wantHasEnd {
			t.Errorf("ParseFingeringPattern(%q): openEnd=%v,%v want %v,%v", c.in, end, hasEnd, c.wantEnd, c.wantHasEnd)
		}
	}
}

func TestParseFingeringPatternRejectsGarbage(t *testing.T) {
	if _, _, _, err := ParseFingeringPattern("abc"); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestNewChromaticTuningGeometricProgression(t *testing.T) {
	tuning := NewChromaticTuning("Chromatic", 6, 440, "A4")
	if len(tuning.Fingerings) != 12 {
		t.Fatalf("got %d fingerings, want 12", len(tuning.Fingerings))
	}
	const ratio = 1.0594630943592953 // 2^(1/12)
	for i := 1; i < len(tuning.Fingerings); i++ {
		got := tuning.Fingerings[i].Note.Frequency / tuning.Fingerings[i-1].Note.Frequency
		if math.Abs(got-ratio) > 1e-9 {
			t.Errorf("step %d: ratio = %v, want %v", i, got, ratio)
		}
	}
}

func TestFingeringWeight(t *testing.T) {
	f := Fingering{}
	if f.Weight() != 1 {
		t.Errorf("default weight = %v, want 1", f.Weight())
	}
	f.HasWeight = true
	f.OptimizationWeight = -1
	if f.Weight() != 0 {
		t.Errorf("negative weight = %v, want 0", f.Weight())
	}
	f.OptimizationWeight = 2.5
	if f.Weight() != 2.5 {
		t.Errorf("weight = %v, want 2.5", f.Weight())
	}
}

func TestNoteTarget(t *testing.T) {
	if (Note{Frequency: 440}).Target() != 440 {
		t.Error("target should prefer Frequency")
	}
	if (Note{FrequencyMin: 400}).Target() != 400 {
		t.Error("target should fall back to sole bound")
	}
	if (Note{FrequencyMin: 400, FrequencyMax: 500}).Target() != 0 {
		t.Error("target should be absent when both bounds set and no Frequency")
	}
}

func TestInstrumentValidate(t *testing.T) {
	in := &Instrument{
		Unit:       MM,
		Mouthpiece: Mouthpiece{Fipple: &FippleMouthpiece{WindowLength: 5, WindowWidth: 8, Beta: 0.3}},
		BorePoints: []BorePoint{{Position: 0, Diameter: 16}, {Position: 300, Diameter: 16}},
		Holes: []Hole{
			{Position: 200, Diameter: 8, Height: 4},
			{Position: 240, Diameter: 8, Height: 4},
		},
		Termination: Termination{FlangeDiameter: 20},
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := in.ConvertToMetres(); err != nil {
		t.Fatalf("ConvertToMetres: %v", err)
	}
	if math.Abs(in.BorePoints[1].Position-0.3) > 1e-9 {
		t.Errorf("bore length after conversion = %v, want 0.3", in.BorePoints[1].Position)
	}
}
