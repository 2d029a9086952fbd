// Package playingrange locates distinguished frequencies of an
// AcousticCalculator's impedance curve near a target frequency: the highest
// Im(Z)=0 resonance, a lower companion root bounding the bottom of the
// playing range, and the frequency nearest a target where Im(Z)/Re(Z)
// equals a given ratio (spec §4.2).
package playingrange

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/wwidesigner-core/acoustic"
	"github.com/cwbudde/wwidesigner-core/instrument"
	"github.com/cwbudde/wwidesigner-core/optimizer/brent"
)

// ErrNoPlayingRange is returned when bracket expansion fails to find a sign
// change within the configured expansion cap. Callers convert this to "no
// prediction" (spec §4.2, §7) rather than treating it as fatal.
var ErrNoPlayingRange = errors.New("playingrange: no bracketing sign change found within expansion cap")

// Options tunes the bracket-expansion and root-finding behavior. The zero
// value is replaced by DefaultOptions at construction time.
type Options struct {
	// ExpansionFactors are the cumulative geometric multipliers tried while
	// searching outward from the target frequency for a sign change.
	ExpansionFactors []float64
	// ExpansionCap bounds how far out the expansion may go, expressed as a
	// frequency ratio (spec's "half-octave" default is 2^0.5).
	ExpansionCap float64
	// FminRatioThreshold is the Im(Z)/Re(Z) value that marks the bottom of
	// a playing range for FindFmin.
	FminRatioThreshold float64
	RelativeTolerance  float64
	AbsoluteTolerance  float64
	MaxEvaluations     int
}

// DefaultOptions returns the kernel's standard bracket/tolerance settings.
func DefaultOptions() Options {
	return Options{
		ExpansionFactors:    []float64{1.01, 1.02, 1.04, 1.08, 1.16, 1.32},
		ExpansionCap:        math.Sqrt2, // half an octave
		FminRatioThreshold:  -1.0,
		RelativeTolerance:   1e-6,
		AbsoluteTolerance:   1e-9,
		MaxEvaluations:      100,
	}
}

// PlayingRange is a short-lived, stateful wrapper around one
// (calculator, fingering) pair; it caches the last evaluated frequency and
// impedance to avoid redundant calculator calls within a single prediction.
type PlayingRange struct {
	calc      acoustic.Calculator
	fingering instrument.Fingering
	opts      Options

	cachedFrequency float64
	cachedZ         acoustic.Complex
	hasCached       bool
}

// New builds a PlayingRange for calc and fingering using DefaultOptions.
func New(calc acoustic.Calculator, fingering instrument.Fingering) *PlayingRange {
	return NewWithOptions(calc, fingering, DefaultOptions())
}

// NewWithOptions builds a PlayingRange with explicit tuning.
func NewWithOptions(calc acoustic.Calculator, fingering instrument.Fingering, opts Options) *PlayingRange {
	if opts.ExpansionFactors == nil && opts.ExpansionCap == 0 && opts.FminRatioThreshold == 0 &&
		opts.RelativeTolerance == 0 && opts.AbsoluteTolerance == 0 && opts.MaxEvaluations == 0 {
		opts = DefaultOptions()
	}
	return &PlayingRange{calc: calc, fingering: fingering, opts: opts}
}

// SetFingering rebinds pr to a new fingering, invalidating the cache.
func (pr *PlayingRange) SetFingering(f instrument.Fingering) {
	pr.fingering = f
	pr.hasCached = false
}

func (pr *PlayingRange) z(f float64) acoustic.Complex {
	if pr.hasCached && pr.cachedFrequency == f {
		return pr.cachedZ
	}
	z := pr.calc.CalcZ(f, pr.fingering)
	pr.cachedFrequency, pr.cachedZ, pr.hasCached = f, z, true
	return z
}

// bracketUpward expands from f0 upward by the configured geometric factors
// until g changes sign, returning the bracket [f0, fHi]. It returns
// ErrNoPlayingRange if the cap is reached first.
func (pr *PlayingRange) bracketUpward(f0 float64, g func(float64) float64) (lo, hi float64, err error) {
	g0 := g(f0)
	if g0 == 0 {
		return f0, f0, nil
	}
	prev := f0
	prevVal := g0
	for _, factor := range pr.opts.ExpansionFactors {
		if factor > pr.opts.ExpansionCap {
			break
		}
		fHi := f0 * factor
		gHi := g(fHi)
		if sameSign(prevVal, gHi) {
			prev, prevVal = fHi, gHi
			continue
		}
		return prev, fHi, nil
	}
	return 0, 0, fmt.Errorf("%w: target %.3f Hz", ErrNoPlayingRange, f0)
}

// bracketDownward mirrors bracketUpward but searches below f0 (used by
// FindFmin, which looks for the bottom of the playing range below fmax).
func (pr *PlayingRange) bracketDownward(f0 float64, g func(float64) float64) (lo, hi float64, err error) {
	g0 := g(f0)
	if g0 == 0 {
		return f0, f0, nil
	}
	prev := f0
	prevVal := g0
	for _, factor := range pr.opts.ExpansionFactors {
		if factor > pr.opts.ExpansionCap {
			break
		}
		fLo := f0 / factor
		if fLo <= 0 {
			break
		}
		gLo := g(fLo)
		if sameSign(prevVal, gLo) {
			prev, prevVal = fLo, gLo
			continue
		}
		return fLo, prev, nil
	}
	return 0, 0, fmt.Errorf("%w: target %.3f Hz", ErrNoPlayingRange, f0)
}

func (pr *PlayingRange) rootFind(lo, hi float64, g func(float64) float64) (float64, error) {
	res, err := brent.FindRoot(g, lo, hi, pr.opts.RelativeTolerance, pr.opts.AbsoluteTolerance, pr.opts.MaxEvaluations)
	if err != nil {
		return 0, err
	}
	return res.X, nil
}

// FindXZero returns the frequency of the nearest resonance at which
// Im(Z)=0 with Re(Z)>0. It scans upward from fT by the ExpansionFactors
// (up to ExpansionCap) and roots the first sign change of Im(Z), i.e. the
// root nearest fT from above; if that root has Re(Z) <= 0 it returns
// ErrNoPlayingRange without searching further.
func (pr *PlayingRange) FindXZero(fT float64) (float64, error) {
	if fT <= 0 {
		return 0, fmt.Errorf("playingrange: target frequency must be > 0, got %v", fT)
	}
	g := func(f float64) float64 { return pr.z(f).Im }
	lo, hi, err := pr.bracketUpward(fT, g)
	if err != nil {
		return 0, err
	}
	f, err := pr.rootFind(lo, hi, g)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoPlayingRange, err)
	}
	if pr.z(f).Re <= 0 {
		return 0, fmt.Errorf("%w: root at %.3f Hz has non-positive Re(Z)", ErrNoPlayingRange, f)
	}
	return f, nil
}

// FindFmin returns the frequency below fmax at which Im(Z)/Re(Z) attains
// FminRatioThreshold, bounding the bottom of the playing range.
func (pr *PlayingRange) FindFmin(fmax float64) (float64, error) {
	if fmax <= 0 {
		return 0, fmt.Errorf("playingrange: fmax must be > 0, got %v", fmax)
	}
	threshold := pr.opts.FminRatioThreshold
	g := func(f float64) float64 { return pr.z(f).Ratio() - threshold }
	lo, hi, err := pr.bracketDownward(fmax, g)
	if err != nil {
		return 0, err
	}
	return pr.rootFind(lo, hi, g)
}

// FindZRatio finds the frequency nearest fT satisfying Im(Z(f))/Re(Z(f)) = r.
func (pr *PlayingRange) FindZRatio(fT, r float64) (float64, error) {
	if fT <= 0 {
		return 0, fmt.Errorf("playingrange: target frequency must be > 0, got %v", fT)
	}
	g := func(f float64) float64 { return pr.z(f).Ratio() - r }
	// A ratio target may sit below fT as readily as above it; root both
	// directions that bracket and keep the root nearer fT.
	best, found := 0.0, false
	var firstErr error
	for _, bracket := range []func(float64, func(float64) float64) (float64, float64, error){pr.bracketUpward, pr.bracketDownward} {
		lo, hi, err := bracket(fT, g)
		if err == nil {
			var f float64
			if f, err = pr.rootFind(lo, hi, g); err == nil && (!found || math.Abs(f-fT) < math.Abs(best-fT)) {
				best, found = f, true
			}
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if !found {
		return 0, firstErr
	}
	return best, nil
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0) || (a == 0 && b == 0)
}
