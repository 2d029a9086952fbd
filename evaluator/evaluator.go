// Package evaluator turns a tuning's predicted frequencies (or, for
// ReactanceEvaluator, raw impedance) into an error vector consumed by an
// ObjectiveFunction's norm (spec §4.4).
package evaluator

import "github.com/cwbudde/wwidesigner-core/instrument"

// Evaluator computes one error value per fingering.
type Evaluator interface {
	CalculateErrorVector(fingerings []instrument.Fingering) []float64
}
