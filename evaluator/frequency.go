package evaluator

import (
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/tuner"
)

// FrequencyDeviationEvaluator reports each fingering's predicted-vs-target
// deviation in Hz.
type FrequencyDeviationEvaluator struct {
	tuner tuner.InstrumentTuner
}

// NewFrequencyDeviation builds a FrequencyDeviationEvaluator driven by t.
func NewFrequencyDeviation(t tuner.InstrumentTuner) *FrequencyDeviationEvaluator {
	return &FrequencyDeviationEvaluator{tuner: t}
}

func (e *FrequencyDeviationEvaluator) CalculateErrorVector(fingerings []instrument.Fingering) []float64 {
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
			errs[i] = target
			continue
		}
		errs[i] = note.Frequency - target
	}
	return errs
}
