package playingrange

import (
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

func TestFindXZeroS1(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	fingering := instrument.Fingering{
		Note:     instrument.Note{Frequency: 440},
		OpenHole: []bool{false, false, false},
	}
	pr := New(calc, fingering)
	f, err := pr.FindXZero(440)
	if err != nil {
		t.Fatalf("FindXZero: %v", err)
	}
	if f <= 0 {
		t.Fatalf("FindXZero returned non-positive frequency %v", f)
	}
}

func TestPlayingRangeMonotone(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	fingering := instrument.Fingering{
		Note:     instrument.Note{Frequency: 440},
		OpenHole: []bool{false, false, false},
	}
	pr := New(calc, fingering)
	fmax, err := pr.FindXZero(440)
	if err != nil {
		t.Fatalf("FindXZero: %v", err)
	}
	fmin, err := pr.FindFmin(fmax)
	if err != nil {
		t.Fatalf("FindFmin: %v", err)
	}
	if fmin > fmax {
		t.Errorf("fmin=%v should be <= fmax=%v", fmin, fmax)
	}
}

func TestFindZRatio(t *testing.T) {
	in := testWhistle(t)
	params := simplecalc.NewPhysicalParameters(20, 101325, 0.5)
	calc := simplecalc.New(in, params)
	fingering := instrument.Fingering{
		Note:     instrument.Note{Frequency: 440},
		OpenHole: []bool{false, false, false},
	}
	pr := New(calc, fingering)
	fmax, err := pr.FindXZero(440)
	if err != nil {
		t.Fatalf("FindXZero: %v", err)
	}
	f, err := pr.FindZRatio(fmax, 0.1)
	if err != nil {
		t.Fatalf("FindZRatio: %v", err)
	}
	if f <= 0 {
		t.Fatalf("FindZRatio returned non-positive frequency")
	}
}
