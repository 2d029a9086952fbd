package evaluator

import (
	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/internal/numeric"
)

// reactancePenalty is charged when Im(Z(fT)) is non-finite (spec §4.4).
const reactancePenalty = 1e6

// ReactanceEvaluator reports Im(Z) at each fingering's target frequency,
// bypassing frequency prediction entirely.
type ReactanceEvaluator struct {
	calc acoustic.Calculator
}

// NewReactance builds a ReactanceEvaluator reading impedance from calc.
func NewReactance(calc acoustic.Calculator) *ReactanceEvaluator {
	return &ReactanceEvaluator{calc: calc}
}

func (e *ReactanceEvaluator) CalculateErrorVector(fingerings []instrument.Fingering) []float64 {
	errs := make([]float64, len(fingerings))
	for i, f := range fingerings {
		target := f.Note.Target()
		if target <= 0 {
			errs[i] = 0
			continue
		}
		im := e.calc.CalcZ(target, f).Im
		if !numeric.IsFinite(im) {
			errs[i] = reactancePenalty
			continue
		}
		errs[i] = im
	}
	return errs
}
