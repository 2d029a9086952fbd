package design

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/wwidesigner-core/instrument"
)

// TuningFile is the JSON schema for a Tuning document.
type TuningFile struct {
	Name       string           `json:"name"`
	Fingerings []FingeringFile  `json:"fingerings"`
}

// FingeringFile is the JSON form of instrument.Fingering. OpenEnd and
// Weight are pointer-optional: absent means "use the instrument/objective
// default" (mirrors preset.File's override pattern).
type FingeringFile struct {
	Note     NoteFile `json:"note"`
	OpenHole []bool   `json:"open_hole"`
	OpenEnd  *bool    `json:"open_end,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

// NoteFile is the JSON form of instrument.Note.
type NoteFile struct {
	Name         string  `json:"name"`
	Frequency    float64 `json:"frequency"`
	FrequencyMin float64 `json:"frequency_min,omitempty"`
	FrequencyMax float64 `json:"frequency_max,omitempty"`
}

// LoadTuning reads a tuning document from path.
func LoadTuning(path string) (instrument.Tuning, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return instrument.Tuning{}, fmt.Errorf("design: reading tuning file: %w", err)
	}
	var f TuningFile
	if err := json.Unmarshal(b, &f); err != nil {
		return instrument.Tuning{}, fmt.Errorf("design: parsing tuning file: %w", err)
	}
	return f.toTuning(), nil
}

// SaveTuning writes t to path as JSON.
func SaveTuning(path string, t instrument.Tuning) error {
	f := fromTuning(t)
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("design: encoding tuning file: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("design: writing tuning file: %w", err)
	}
	return nil
}

func (f *TuningFile) toTuning() instrument.Tuning {
	t := instrument.Tuning{Name: f.Name}
	for _, ff := range f.Fingerings {
		fingering := instrument.Fingering{
			Note: instrument.Note{
				Name:         ff.Note.Name,
				Frequency:    ff.Note.Frequency,
				FrequencyMin: ff.Note.FrequencyMin,
				FrequencyMax: ff.Note.FrequencyMax,
			},
			OpenHole: append([]bool(nil), ff.OpenHole...),
		}
		if ff.OpenEnd != nil {
			fingering.OpenEnd = *ff.OpenEnd
			fingering.HasOpenEnd = true
		}
		if ff.Weight != nil {
			fingering.OptimizationWeight = *ff.Weight
			fingering.HasWeight = true
		}
		t.Fingerings = append(t.Fingerings, fingering)
	}
	return t
}

func fromTuning(t instrument.Tuning) TuningFile {
	f := TuningFile{Name: t.Name}
	for _, fingering := range t.Fingerings {
		ff := FingeringFile{
			Note: NoteFile{
				Name:         fingering.Note.Name,
				Frequency:    fingering.Note.Frequency,
				FrequencyMin: fingering.Note.FrequencyMin,
				FrequencyMax: fingering.Note.FrequencyMax,
			},
			OpenHole: append([]bool(nil), fingering.OpenHole...),
		}
		if fingering.HasOpenEnd {
			v := fingering.OpenEnd
			ff.OpenEnd = &v
		}
		if fingering.HasWeight {
			v := fingering.OptimizationWeight
			ff.Weight = &v
		}
		f.Fingerings = append(f.Fingerings, ff)
	}
	return f
}

// ProjectFile references an instrument and tuning document by path,
// resolved relative to the project file's own directory (preset.LoadJSON's
// "relative to the document" convention).
type ProjectFile struct {
	InstrumentPath string `json:"instrument_path"`
	TuningPath     string `json:"tuning_path"`
}

// LoadProject reads a project document and the instrument/tuning documents
// it references.
func LoadProject(path string) (*instrument.Instrument, instrument.Tuning, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, instrument.Tuning{}, fmt.Errorf("design: reading project file: %w", err)
	}
	var f ProjectFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, instrument.Tuning{}, fmt.Errorf("design: parsing project file: %w", err)
	}
	in, err := LoadInstrument(resolveRelative(path, f.InstrumentPath))
	if err != nil {
		return nil, instrument.Tuning{}, err
	}
	tuning, err := LoadTuning(resolveRelative(path, f.TuningPath))
	if err != nil {
		return nil, instrument.Tuning{}, err
	}
	return in, tuning, nil
}
