package tuner

import (
	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/playingrange"
)

// bottomFractions and topFractions are indexed by blowing level 0..10
// (spec §4.3). An anchor note's velocity is v(fmax) - fraction*(v(fmax) -
// v(fmin)), so larger fractions sit nearer v(fmin): bottomFractions
// (0.05-0.35) keep the lowest target note near v(fmax), and topFractions
// (0.80-0.99) put the highest target note near v(fmin).
var bottomFractions = [11]float64{0.35, 0.35, 0.30, 0.30, 0.25, 0.25, 0.20, 0.15, 0.10, 0.10, 0.05}
var topFractions = [11]float64{0.80, 0.85, 0.90, 0.95, 0.90, 0.95, 0.95, 0.95, 0.95, 0.99, 0.99}

// LinearVInstrumentTuner picks an interior impedance ratio per fingering
// from a linear air-velocity model anchored at the tuning's lowest and
// highest target notes (spec §4.3).
type LinearVInstrumentTuner struct {
	calc        acoustic.Calculator
	blowLevel   int
	tuning      instrument.Tuning
	windowLen   float64
	slope       float64
	intercept   float64
	fLow, fHigh float64
	ready       bool
}

// NewLinearV builds a LinearVInstrumentTuner bound to calc. blowLevel is
// clamped to [0,10]. windowLength is the mouthpiece airstream length L used
// in the velocity model.
func NewLinearV(calc acoustic.Calculator, blowLevel int, windowLength float64) *LinearVInstrumentTuner {
	if blowLevel < 0 {
		blowLevel = 0
	}
	if blowLevel > 10 {
		blowLevel = 10
	}
	return &LinearVInstrumentTuner{calc: calc, blowLevel: blowLevel, windowLen: windowLength}
}

// velocity computes v = f*L / clamp(0.26 - 0.037*rho, 0.13, 0.75).
func velocity(f, length, rho float64) float64 {
	denom := 0.26 - 0.037*rho
	if denom < 0.13 {
		denom = 0.13
	}
	if denom > 0.75 {
		denom = 0.75
	}
	return f * length / denom
}

// anchorVelocity finds fmax/fmin for target via the playing-range solver and
// blends them by fraction. If the initial playing range cannot be located,
// it falls back to velocity(fallbackFreq, L, 0) — always the tuning's
// lowest target frequency, regardless of which anchor is being computed
// (spec §9: reimplementers must reproduce this fallback or document an
// intentional change).
func (t *LinearVInstrumentTuner) anchorVelocity(fingering instrument.Fingering, target, fraction, fallbackFreq float64) (v, fmax, fmin float64, ok bool) {
	pr := playingrange.New(t.calc, fingering)
	fx, err := pr.FindXZero(target)
	if err != nil {
		return velocity(fallbackFreq, t.windowLen, 0), 0, 0, false
	}
	fn, err := pr.FindFmin(fx)
	if err != nil {
		vfx := velocity(fx, t.windowLen, t.calc.CalcZ(fx, fingering).Ratio())
		return vfx, fx, 0, true
	}
	rhoMax := t.calc.CalcZ(fx, fingering).Ratio()
	rhoMin := t.calc.CalcZ(fn, fingering).Ratio()
	vMax := velocity(fx, t.windowLen, rhoMax)
	vMin := velocity(fn, t.windowLen, rhoMin)
	return vMax - fraction*(vMax-vMin), fx, fn, true
}

// SetTuning computes the linear velocity model's slope/intercept from the
// tuning's lowest and highest positively-weighted target notes.
func (t *LinearVInstrumentTuner) SetTuning(tuning instrument.Tuning) {
	t.tuning = tuning
	t.ready = false

	var fLow, fHigh float64
	haveAny := false
	for _, f := range tuning.Fingerings {
		if f.Weight() <= 0 {
			continue
		}
		target := f.Note.Target()
		if target <= 0 {
			continue
		}
		if !haveAny || target < fLow {
			fLow = target
		}
		if !haveAny || target > fHigh {
			fHigh = target
		}
		haveAny = true
	}
	if !haveAny {
		return
	}

	var lowFingering, highFingering instrument.Fingering
	for _, f := range tuning.Fingerings {
		if f.Weight() <= 0 {
			continue
		}
		if f.Note.Target() == fLow {
			lowFingering = f
		}
		if f.Note.Target() == fHigh {
			highFingering = f
		}
	}

	vLow, _, _, _ := t.anchorVelocity(lowFingering, fLow, bottomFractions[t.blowLevel], fLow)
	vHigh, _, _, _ := t.anchorVelocity(highFingering, fHigh, topFractions[t.blowLevel], fLow)

	t.fLow, t.fHigh = fLow, fHigh
	if fHigh == fLow {
		t.slope, t.intercept = 0, vLow
	} else {
		t.slope = (vHigh - vLow) / (fHigh - fLow)
		t.intercept = vLow - t.slope*fLow
	}
	t.ready = true
}

// vNom evaluates the linear velocity model at f.
func (t *LinearVInstrumentTuner) vNom(f float64) float64 {
	return t.slope*f + t.intercept
}

// PredictedFrequency computes a target impedance ratio from the linear
// velocity model and locates it via FindZRatio.
func (t *LinearVInstrumentTuner) PredictedFrequency(fingering instrument.Fingering) PredictedNote {
	target := fingering.Note.Target()
	if target <= 0 || !t.ready {
		return PredictedNote{}
	}
	vNom := t.vNom(target)
	if vNom <= 0 {
		return PredictedNote{}
	}
	rhoT := (0.26 - target*t.windowLen/vNom) / 0.037

	pr := playingrange.New(t.calc, fingering)
	fmax, err := pr.FindXZero(target)
	var fmin float64
	if err == nil {
		if fm, ferr := pr.FindFmin(fmax); ferr == nil {
			fmin = fm
		}
	}

	f, err := pr.FindZRatio(target, rhoT)
	if err != nil {
		return PredictedNote{Fmax: fmax, Fmin: fmin}
	}
	return PredictedNote{Frequency: f, Fmax: fmax, Fmin: fmin, Ok: true}
}
