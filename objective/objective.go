// Package objective implements the ObjectiveFunction parameterization
// algebra: each concrete type maps a vector of free variables to instrument
// geometry, and reduces an evaluator's error vector to a scalar norm
// (spec §4.5).
package objective

import (
	"fmt"

	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/evaluator"
	"github.com/cwbudde/wwidesigner-core/instrument"
)

// OptimizerType names the optimizer an objective prefers to run under. The
// orchestrator dispatches 1-D objectives to Brent regardless of this value
// (spec §4.6 selection policy).
type OptimizerType string

const (
	OptimizerBrent   OptimizerType = "BRENT"
	OptimizerBOBYQA  OptimizerType = "BOBYQA"
	OptimizerPowell  OptimizerType = "POWELL"
	OptimizerSimplex OptimizerType = "SIMPLEX"
	OptimizerCMAES   OptimizerType = "CMAES"
	OptimizerDIRECT  OptimizerType = "DIRECT"
	OptimizerMayfly  OptimizerType = "MAYFLY"
)

// ConstraintType classifies a variable's value domain for display/unit
// handling purposes.
type ConstraintType string

const (
	Dimensional  ConstraintType = "DIMENSIONAL"
	Dimensionless ConstraintType = "DIMENSIONLESS"
	Boolean      ConstraintType = "BOOLEAN"
	Integer      ConstraintType = "INTEGER"
)

// Constraint documents one free variable: its display name, grouping
// category, and value domain. The category is descriptive only; hole-group
// equal spacing is enforced from the objective's Groups, not from this
// field. Constraints are advisory — they do not themselves clamp values,
// that is ObjectiveFunction's job via bounds.
type Constraint struct {
	Name       string
	Category   string
	Type       ConstraintType
	LowerBound float64
	UpperBound float64
}

// ObjectiveFunction is the shared contract every concrete parameterization
// implements (spec §4.5, §9 "trait-style interface").
type ObjectiveFunction interface {
	// NumberOfDimensions returns n, the free-variable count.
	NumberOfDimensions() int
	// Bounds returns the lower and upper bound vectors, both length n.
	Bounds() (lower, upper []float64)
	// Constraints returns per-dimension advisory metadata, length n.
	Constraints() []Constraint
	// GetGeometryPoint extracts the current free variables from the
	// instrument.
	GetGeometryPoint() []float64
	// SetGeometryPoint writes x back into the instrument, enforcing this
	// objective's geometry invariants.
	SetGeometryPoint(x []float64) error
	// Value evaluates the objective at x: writes the geometry, runs the
	// evaluator over tuning's fingerings, and returns the weighted norm.
	Value(x []float64) float64
	// OptimizerType names the preferred optimizer.
	OptimizerType() OptimizerType
	// MaxEvaluations is the hard evaluation ceiling for this objective.
	MaxEvaluations() int
	// TrustRegionRadii returns the initial and stopping trust-region radii
	// (BOBYQA); objectives that don't care return the package defaults.
	TrustRegionRadii() (initial, stopping float64)
}

// Base holds the fields and behavior shared by every concrete objective:
// the instrument it mutates, the calculator/evaluator/tuning it scores
// against, and the norm computation (spec §4.5 item 4).
type Base struct {
	Instrument *instrument.Instrument
	Calc       acoustic.Calculator
	Eval       evaluator.Evaluator
	Tuning     instrument.Tuning

	// FirstStageEval, when non-nil, is swapped in for Eval during the
	// global phase of a two-stage run (spec §4.7) and must never be
	// mutated by Value.
	FirstStageEval evaluator.Evaluator

	OptType        OptimizerType
	MaxEval        int
	InitialRadius  float64
	StoppingRadius float64
}

// DefaultInitialRadius and DefaultStoppingRadius are BOBYQA's trust-region
// defaults (spec §4.6), used when an objective leaves InitialRadius or
// StoppingRadius at zero.
const (
	DefaultInitialRadius  = 10.0
	DefaultStoppingRadius = 1e-8
)

// CalcNorm computes Σ wᵢ·eᵢ² over an error vector, weights taken from each
// fingering's OptimizationWeight (default 1, spec §4.5 item 4).
func CalcNorm(errs []float64, fingerings []instrument.Fingering) float64 {
	var sum float64
	for i, e := range errs {
		w := 1.0
		if i < len(fingerings) {
			w = fingerings[i].Weight()
		}
		sum += w * e * e
	}
	return sum
}

// Value is the shared Value() implementation: set geometry, score the
// current evaluator over b.Tuning.Fingerings, reduce via CalcNorm. A
// geometry-invariant failure returns a large finite penalty rather than
// panicking (spec §7 GeometryInvariantViolation, BoundsViolation).
func (b *Base) Value(setGeometryPoint func([]float64) error, x []float64) float64 {
	if err := setGeometryPoint(x); err != nil {
		return 1e12
	}
	errs := b.Eval.CalculateErrorVector(b.Tuning.Fingerings)
	return CalcNorm(errs, b.Tuning.Fingerings)
}

// Evaluator returns the evaluator Value currently scores against.
func (b *Base) Evaluator() evaluator.Evaluator { return b.Eval }

// SetEvaluator swaps the evaluator Value scores against (spec §4.7
// two-stage optimization).
func (b *Base) SetEvaluator(e evaluator.Evaluator) { b.Eval = e }

// FirstStageEvaluator returns the configured first-stage evaluator, or nil
// if this objective doesn't support two-stage optimization.
func (b *Base) FirstStageEvaluator() evaluator.Evaluator { return b.FirstStageEval }

func (b *Base) OptimizerType() OptimizerType { return b.OptType }
func (b *Base) MaxEvaluations() int          { return b.MaxEval }
func (b *Base) TrustRegionRadii() (float64, float64) {
	initial, stopping := b.InitialRadius, b.StoppingRadius
	if initial == 0 {
		initial = DefaultInitialRadius
	}
	if stopping == 0 {
		stopping = DefaultStoppingRadius
	}
	return initial, stopping
}

// errGeometry wraps a geometry-invariant violation (spec §7).
func errGeometry(format string, args ...interface{}) error {
	return fmt.Errorf("objective: geometry invariant violated: "+format, args...)
}
