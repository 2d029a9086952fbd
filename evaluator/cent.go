package evaluator

import (
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/internal/numeric"
	"github.com/cwbudde/wwidesigner-core/tuner"
)

// centPenalty is charged for a fingering whose target frequency has no
// prediction (spec §4.4).
const centPenalty = 1200.0

// CentDeviationEvaluator reports each fingering's predicted-vs-target
// deviation in cents.
type CentDeviationEvaluator struct {
	tuner tuner.InstrumentTuner
}

// NewCentDeviation builds a CentDeviationEvaluator driven by t.
func NewCentDeviation(t tuner.InstrumentTuner) *CentDeviationEvaluator {
	return &CentDeviationEvaluator{tuner: t}
}

func (e *CentDeviationEvaluator) CalculateErrorVector(fingerings []instrument.Fingering) []float64 {
	e.tuner.SetTuning(instrument.Tuning{Fingerings: fingerings})
	errs := make([]float64, len(fingerings))
	for i, f := range fingerings {
		target := f.Note.Target()
		if target <= 0 {
			errs[i] = 0
			continue
		}
		note := e.tuner.PredictedFrequency(f)
		if !note.Ok {
			errs[i] = centPenalty
			continue
		}
		errs[i] = numeric.CalcCents(target, note.Frequency)
	}
	return errs
}
