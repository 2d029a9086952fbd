// Package acoustic defines the external boundary of the acoustic
// transmission-matrix evaluator that the design kernel consumes: the
// Calculator interface, complex impedance/reflection results, and the
// physical parameters (speed of sound, density, loss constants) derived
// from ambient conditions. Concrete calculators (a real transmission-matrix
// engine, or the simplecalc reference implementation) live behind this
// interface; the kernel never depends on how Z(f, fingering) is produced.
package acoustic

import "github.com/cwbudde/wwidesigner-core/instrument"

// PhysicalParameters are the ambient-condition-derived constants (speed of
// sound, air density, viscous/thermal loss factors) used by a Calculator.
// They are immutable and safe to share across concurrently running
// calculators (spec §5).
type PhysicalParameters struct {
	Temperature  float64 // degrees Celsius
	Pressure     float64 // Pa
	Humidity     float64 // relative humidity, 0..1
	SpeedOfSound float64 // m/s, derived
	AirDensity   float64 // kg/m^3, derived
}

// Calculator is the external collaborator contract (spec §4.1). A
// conforming implementation must be deterministic and side-effect-free, and
// thread-safe across distinct fingerings (spec §5): Im(Z) and Im(Z)/Re(Z)
// must be continuous in f except at a finite set of fingering-dependent
// discontinuities, with simple (first-order) roots where the playing-range
// solver searches for them.
type Calculator interface {
	// CalcZ returns the complex acoustic impedance at the mouth reference
	// plane for frequency f (Hz) under the given fingering.
	CalcZ(f float64, fingering instrument.Fingering) Complex

	// CalcReflectionCoefficient returns the complex reflection coefficient
	// at the mouth reference plane.
	CalcReflectionCoefficient(f float64, fingering instrument.Fingering) Complex

	// CalcGain returns a scalar loop-gain estimate for playability at
	// (f, Z); G >= 1 indicates a playable region.
	CalcGain(f float64, z Complex) float64

	GetInstrument() *instrument.Instrument
	GetParams() PhysicalParameters
}
