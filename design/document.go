// Package design loads and writes Instrument and Tuning documents as JSON,
// the in-process substitute for the explicitly out-of-scope XML ingestion
// (spec §1), following preset.File's pointer-optional-field pattern: a
// field absent from the document is nil and left at its zero value rather
// than defaulted explicitly.
package design

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wwidesigner-core/instrument"
)

// InstrumentFile is the JSON schema for an Instrument document.
type InstrumentFile struct {
	Name        string              `json:"name"`
	Unit        string              `json:"unit"`
	Mouthpiece  MouthpieceFile      `json:"mouthpiece"`
	BorePoints  []BorePointFile     `json:"bore_points"`
	Holes       []HoleFile          `json:"holes"`
	Termination TerminationFile     `json:"termination"`
}

// MouthpieceFile holds exactly one of Fipple/Embouchure, mirroring
// instrument.Mouthpiece's own invariant.
type MouthpieceFile struct {
	Position   float64          `json:"position"`
	Fipple     *FippleFile      `json:"fipple,omitempty"`
	Embouchure *EmbouchureFile  `json:"embouchure,omitempty"`
	Reed       *ReedFile        `json:"reed,omitempty"`
}

// FippleFile is the JSON form of instrument.FippleMouthpiece.
type FippleFile struct {
	WindowLength  float64 `json:"window_length"`
	WindowWidth   float64 `json:"window_width"`
	WindwayLength float64 `json:"windway_length"`
	Beta          float64 `json:"beta"`
}

// EmbouchureFile is the JSON form of instrument.EmbouchureHole.
type EmbouchureFile struct {
	Diameter        float64 `json:"diameter"`
	AirstreamLength float64 `json:"airstream_length"`
	Beta            float64 `json:"beta"`
}

// ReedFile is the JSON form of instrument.SingleReed.
type ReedFile struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// BorePointFile is the JSON form of instrument.BorePoint.
type BorePointFile struct {
	Position float64 `json:"position"`
	Diameter float64 `json:"diameter"`
}

// HoleFile is the JSON form of instrument.Hole.
type HoleFile struct {
	Name     string  `json:"name"`
	Position float64 `json:"position"`
	Diameter float64 `json:"diameter"`
	Height   float64 `json:"height"`
}

// TerminationFile is the JSON form of instrument.Termination.
type TerminationFile struct {
	FlangeDiameter float64 `json:"flange_diameter"`
}

// LoadInstrument reads an instrument document from path, validates it, and
// converts it to metres.
func LoadInstrument(path string) (*instrument.Instrument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("design: reading instrument file: %w", err)
	}
	var f InstrumentFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("design: parsing instrument file: %w", err)
	}
	in, err := f.toInstrument()
	if err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	if err := in.ConvertToMetres(); err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	return in, nil
}

// SaveInstrument writes in to path as JSON. Dimensions are written as they
// are, tagged with in.Unit; no unit conversion is applied, so an instrument
// already converted to metres is saved in metres with unit "M".
func SaveInstrument(path string, in *instrument.Instrument) error {
	f := fromInstrument(in)
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("design: encoding instrument file: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("design: writing instrument file: %w", err)
	}
	return nil
}

func (f *InstrumentFile) toInstrument() (*instrument.Instrument, error) {
	unit := instrument.Unit(strings.ToUpper(strings.TrimSpace(f.Unit)))
	if unit == "" {
		unit = instrument.M
	}
	in := &instrument.Instrument{
		Name: f.Name,
		Unit: unit,
		Mouthpiece: instrument.Mouthpiece{
			Position: f.Mouthpiece.Position,
		},
		Termination: instrument.Termination{FlangeDiameter: f.Termination.FlangeDiameter},
	}
	if f.Mouthpiece.Fipple != nil {
		in.Mouthpiece.Fipple = &instrument.FippleMouthpiece{
			WindowLength:  f.Mouthpiece.Fipple.WindowLength,
			WindowWidth:   f.Mouthpiece.Fipple.WindowWidth,
			WindwayLength: f.Mouthpiece.Fipple.WindwayLength,
			Beta:          f.Mouthpiece.Fipple.Beta,
		}
	}
	if f.Mouthpiece.Embouchure != nil {
		in.Mouthpiece.Embouchure = &instrument.EmbouchureHole{
			Diameter:        f.Mouthpiece.Embouchure.Diameter,
			AirstreamLength: f.Mouthpiece.Embouchure.AirstreamLength,
			Beta:            f.Mouthpiece.Embouchure.Beta,
		}
	}
	if f.Mouthpiece.Reed != nil {
		in.Mouthpiece.Reed = &instrument.SingleReed{
			Alpha: f.Mouthpiece.Reed.Alpha,
			Beta:  f.Mouthpiece.Reed.Beta,
		}
	}
	if in.Mouthpiece.Fipple == nil && in.Mouthpiece.Embouchure == nil {
		return nil, fmt.Errorf("instrument document: exactly one of mouthpiece.fipple or mouthpiece.embouchure is required")
	}
	for _, bp := range f.BorePoints {
		in.BorePoints = append(in.BorePoints, instrument.BorePoint{Position: bp.Position, Diameter: bp.Diameter})
	}
	for _, h := range f.Holes {
		in.Holes = append(in.Holes, instrument.Hole{Name: h.Name, Position: h.Position, Diameter: h.Diameter, Height: h.Height})
	}
	return in, nil
}

func fromInstrument(in *instrument.Instrument) InstrumentFile {
	f := InstrumentFile{
		Name: in.Name,
		Unit: string(in.Unit),
		Mouthpiece: MouthpieceFile{
			Position: in.Mouthpiece.Position,
		},
		Termination: TerminationFile{FlangeDiameter: in.Termination.FlangeDiameter},
	}
	if in.Mouthpiece.Fipple != nil {
		f.Mouthpiece.Fipple = &FippleFile{
			WindowLength:  in.Mouthpiece.Fipple.WindowLength,
			WindowWidth:   in.Mouthpiece.Fipple.WindowWidth,
			WindwayLength: in.Mouthpiece.Fipple.WindwayLength,
			Beta:          in.Mouthpiece.Fipple.Beta,
		}
	}
	if in.Mouthpiece.Embouchure != nil {
		f.Mouthpiece.Embouchure = &EmbouchureFile{
			Diameter:        in.Mouthpiece.Embouchure.Diameter,
			AirstreamLength: in.Mouthpiece.Embouchure.AirstreamLength,
			Beta:            in.Mouthpiece.Embouchure.Beta,
		}
	}
	if in.Mouthpiece.Reed != nil {
		f.Mouthpiece.Reed = &ReedFile{Alpha: in.Mouthpiece.Reed.Alpha, Beta: in.Mouthpiece.Reed.Beta}
	}
	for _, bp := range in.BorePoints {
		f.BorePoints = append(f.BorePoints, BorePointFile{Position: bp.Position, Diameter: bp.Diameter})
	}
	for _, h := range in.Holes {
		f.Holes = append(f.Holes, HoleFile{Name: h.Name, Position: h.Position, Diameter: h.Diameter, Height: h.Height})
	}
	return f
}

// resolveRelative resolves a possibly-relative path against the directory
// containing doc (preset.LoadJSON's "relative to the document" convention).
func resolveRelative(doc, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(filepath.Dir(doc), path))
}
