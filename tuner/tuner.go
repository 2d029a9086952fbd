// Package tuner implements the InstrumentTuner predictors: SimpleInstrumentTuner
// (report fmax) and LinearVInstrumentTuner (blowing-level air-velocity model
// that picks an interior impedance ratio between the lowest and highest
// target notes) — spec §4.3.
package tuner

import (
	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/playingrange"
)

// PredictedNote is the result of predicting a fingering's playing frequency.
// Fmax/Fmin are populated by LinearVInstrumentTuner; Ok is false when the
// playing-range solver could not find a prediction (spec §4.2/§4.3).
type PredictedNote struct {
	Frequency float64
	Fmax      float64
	Fmin      float64
	Ok        bool
}

// InstrumentTuner predicts the playing frequency for a fingering.
type InstrumentTuner interface {
	SetTuning(tuning instrument.Tuning)
	PredictedFrequency(fingering instrument.Fingering) PredictedNote
}

// SimpleInstrumentTuner reports the highest Im(Z)=0 resonance (fmax) for
// each fingering's target frequency.
type SimpleInstrumentTuner struct {
	calc   acoustic.Calculator
	tuning instrument.Tuning
}

// NewSimple builds a SimpleInstrumentTuner bound to calc.
func NewSimple(calc acoustic.Calculator) *SimpleInstrumentTuner {
	return &SimpleInstrumentTuner{calc: calc}
}

func (t *SimpleInstrumentTuner) SetTuning(tuning instrument.Tuning) { t.tuning = tuning }

func (t *SimpleInstrumentTuner) PredictedFrequency(fingering instrument.Fingering) PredictedNote {
	target := fingering.Note.Target()
	if target <= 0 {
		return PredictedNote{}
	}
	pr := playingrange.New(t.calc, fingering)
	f, err := pr.FindXZero(target)
	if err != nil {
		return PredictedNote{}
	}
	return PredictedNote{Frequency: f, Fmax: f, Ok: true}
}
