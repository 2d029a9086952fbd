// Package simplecalc is a reference AcousticCalculator implementation: a
// closed-form cylindrical-bore approximation with unflanged-radiation end
// correction. It exists to drive and test the playing-range solver, tuner,
// evaluator, objective, and optimizer layers without a real
// transmission-matrix engine (spec §1 names that engine an out-of-scope
// external collaborator) — it is a stand-in, not a claim of acoustic
// fidelity.
package simplecalc

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
)

// Calculator is a simplecalc.Calculator bound to one Instrument.
type Calculator struct {
	inst   *instrument.Instrument
	params acoustic.PhysicalParameters
}

// NewPhysicalParameters derives speed of sound and air density from
// temperature (Celsius), pressure (Pa), and relative humidity (0..1) using
// the standard Cramer/ideal-gas approximations. This is a convenience for
// simplecalc callers; a real acoustic engine may derive these differently.
func NewPhysicalParameters(temperatureC, pressurePa, humidity float64) acoustic.PhysicalParameters {
	t := temperatureC
	c := 331.45 * math.Sqrt(1.0+t/273.15)
	// Mild humidity correction: speed of sound rises with water-vapor content.
	c += 0.6 * humidity * (t + 20) / 20
	rho := pressurePa / (287.05 * (t + 273.15))
	return acoustic.PhysicalParameters{
		Temperature:  t,
		Pressure:     pressurePa,
		Humidity:     humidity,
		SpeedOfSound: c,
		AirDensity:   rho,
	}
}

// New builds a Calculator for inst (which must already be in metres; call
// inst.ConvertToMetres first) under the given physical parameters.
func New(inst *instrument.Instrument, params acoustic.PhysicalParameters) *Calculator {
	return &Calculator{inst: inst, params: params}
}

func (c *Calculator) GetInstrument() *instrument.Instrument   { return c.inst }
func (c *Calculator) GetParams() acoustic.PhysicalParameters  { return c.params }

// effectiveLength returns the acoustic length of the sounding air column for
// fingering: the distance from the mouthpiece reference to the first open
// hole (holes escape sound there first), or the full bore length if no hole
// is open.
func (c *Calculator) effectiveLength(fingering instrument.Fingering) (length float64, radiusAtEnd float64) {
	mouthPos := c.inst.Mouthpiece.Position
	for i, open := range fingering.OpenHole {
		if open && i < len(c.inst.Holes) {
			h := c.inst.Holes[i]
			return h.Position - mouthPos, h.Diameter / 2
		}
	}
	last := c.inst.BorePoints[len(c.inst.BorePoints)-1]
	return last.Position - mouthPos, last.Diameter / 2
}

// radiationImpedanceRatio returns the unflanged open-end radiation impedance
// (Levine-Schwinger low-ka approximation) normalized by the characteristic
// impedance Z0.
func radiationImpedanceRatio(k, radius float64) complex128 {
	ka := k * radius
	resistive := ka * ka / 4.0
	reactive := 0.6133 * ka
	return complex(resistive, reactive)
}

// calcZRaw returns the complex impedance (in units of the characteristic
// impedance Z0) at frequency f for fingering.
func (c *Calculator) calcZRaw(f float64, fingering instrument.Fingering) complex128 {
	if f <= 0 {
		return complex(math.Inf(1), 0)
	}
	length, radius := c.effectiveLength(fingering)
	if length <= 0 {
		length = 1e-6
	}
	speed := c.params.SpeedOfSound
	if speed <= 0 {
		speed = 343.0
	}
	k := 2 * math.Pi * f / speed
	// Small viscothermal loss coefficient, empirically scaled with 1/radius.
	alpha := 1.0
	if radius > 0 {
		alpha = 3e-5 * math.Sqrt(f) / radius
	}
	gamma := complex(alpha, k)
	zl := radiationImpedanceRatio(k, radius)
	gl := gamma * complex(length, 0)
	chGL := cmplx.Cosh(gl)
	shGL := cmplx.Sinh(gl)
	num := zl*chGL + shGL
	den := chGL + zl*shGL
	if cmplx.Abs(den) < 1e-12 {
		den = complex(1e-12, 0)
	}
	return num / den
}

// CalcZ implements acoustic.Calculator.
func (c *Calculator) CalcZ(f float64, fingering instrument.Fingering) acoustic.Complex {
	z := c.calcZRaw(f, fingering)
	return acoustic.Complex{Re: real(z), Im: imag(z)}
}

// CalcReflectionCoefficient implements acoustic.Calculator via R = (Z-1)/(Z+1)
// in characteristic-impedance-normalized units.
func (c *Calculator) CalcReflectionCoefficient(f float64, fingering instrument.Fingering) acoustic.Complex {
	z := c.calcZRaw(f, fingering)
	r := (z - 1) / (z + 1)
	return acoustic.Complex{Re: real(r), Im: imag(r)}
}

// CalcGain implements acoustic.Calculator with a loop-gain proxy that favors
// frequencies where Re(Z) is small relative to the characteristic
// impedance (the low-loss playable region around a resonance).
func (c *Calculator) CalcGain(f float64, z acoustic.Complex) float64 {
	re := math.Abs(z.Re)
	if re < 1e-9 {
		re = 1e-9
	}
	return 1.0 / re
}
