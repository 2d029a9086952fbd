package design

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wwidesigner-core/instrument"
)

func testWhistle() *instrument.Instrument {
	return &instrument.Instrument{
		Name:       "S1 whistle",
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
}

func TestInstrumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "whistle.json")

	in := testWhistle()
	if err := SaveInstrument(path, in); err != nil {
		t.Fatalf("SaveInstrument: %v", err)
	}

	loaded, err := LoadInstrument(path)
	if err != nil {
		t.Fatalf("LoadInstrument: %v", err)
	}
	if loaded.Unit != instrument.M {
		t.Errorf("loaded.Unit = %v, want M (converted)", loaded.Unit)
	}
	wantDiameter := 0.016
	if math.Abs(loaded.BorePoints[0].Diameter-wantDiameter) > 1e-9 {
		t.Errorf("BorePoints[0].Diameter = %v, want %v", loaded.BorePoints[0].Diameter, wantDiameter)
	}
	if len(loaded.Holes) != 3 {
		t.Fatalf("len(Holes) = %d, want 3", len(loaded.Holes))
	}
}

func TestLoadInstrumentRejectsMissingMouthpieceKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	content := `{
		"unit": "MM",
		"mouthpiece": {},
		"bore_points": [{"position":0,"diameter":16},{"position":300,"diameter":16}],
		"holes": [],
		"termination": {"flange_diameter": 20}
	}`
	if err := writeFile(path, content); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	if _, err := LoadInstrument(path); err == nil {
		t.Fatal("expected error for missing mouthpiece kind")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestTuningRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")

	tuning := instrument.Tuning{Name: "XXX", Fingerings: []instrument.Fingering{
		{Note: instrument.Note{Frequency: 440}, OpenHole: []bool{false, false, false}, HasWeight: true, OptimizationWeight: 2},
	}}
	if err := SaveTuning(path, tuning); err != nil {
		t.Fatalf("SaveTuning: %v", err)
	}
	loaded, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if len(loaded.Fingerings) != 1 {
		t.Fatalf("len(Fingerings) = %d, want 1", len(loaded.Fingerings))
	}
	if loaded.Fingerings[0].Weight() != 2 {
		t.Errorf("Weight() = %v, want 2", loaded.Fingerings[0].Weight())
	}
}

func TestLoadProjectResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	instPath := filepath.Join(dir, "whistle.json")
	tuningPath := filepath.Join(dir, "tuning.json")
	projectPath := filepath.Join(dir, "project.json")

	if err := SaveInstrument(instPath, testWhistle()); err != nil {
		t.Fatalf("SaveInstrument: %v", err)
	}
	tuning := instrument.Tuning{Fingerings: []instrument.Fingering{{Note: instrument.Note{Frequency: 440}, OpenHole: []bool{false, false, false}}}}
	if err := SaveTuning(tuningPath, tuning); err != nil {
		t.Fatalf("SaveTuning: %v", err)
	}
	if err := writeFile(projectPath, `{"instrument_path":"whistle.json","tuning_path":"tuning.json"}`); err != nil {
		t.Fatalf("writeFile: %v", err)
	}

	in, loadedTuning, err := LoadProject(projectPath)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if len(in.Holes) != 3 {
		t.Errorf("len(in.Holes) = %d, want 3", len(in.Holes))
	}
	if len(loadedTuning.Fingerings) != 1 {
		t.Errorf("len(loadedTuning.Fingerings) = %d, want 1", len(loadedTuning.Fingerings))
	}
}
