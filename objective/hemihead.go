package objective

import (
	"math"

	"github.com/cwbudde/wwidesigner-core/instrument"
)

// HemisphericalBoreHead generates the dome-shaped bore-head profile used by
// the …FromTopHemiHead merge variants in place of a straight taper (spec
// §4.5: "hemi-head variants replace the top of the bore with a 10-point
// hemispherical profile").
type HemisphericalBoreHead struct {
	// EquatorDiameter is D, the diameter where the dome meets the
	// constant-bore segment below it.
	EquatorDiameter float64
}

// AddHemiHead returns the 10 interior points plus the equator point of the
// hemisphere whose pole sits at axial position poleZ: each point's axial
// offset z from poleZ and diameter d satisfy (d/2)² + (z−z0)² = (D/2)²,
// where z0 = poleZ + D/2 is the equator's position and D =
// h.EquatorDiameter (spec §4.5 HemisphericalBoreHead.addHemiHead). Points
// are returned pole-to-equator, increasing in both position and diameter;
// the last element is the equator point (diameter D).
func (h HemisphericalBoreHead) AddHemiHead(poleZ float64) []instrument.BorePoint {
	r := h.EquatorDiameter / 2
	pts := make([]instrument.BorePoint, 0, 11)
	for i := 1; i <= 10; i++ {
		t := float64(i) / 11
		z := poleZ + t*r
		d := h.EquatorDiameter * math.Sqrt(t*(2-t))
		pts = append(pts, instrument.BorePoint{Position: z, Diameter: d})
	}
	pts = append(pts, instrument.BorePoint{Position: poleZ + r, Diameter: h.EquatorDiameter})
	return pts
}

// SingleTaperHemiHeadObjectiveFunction is SingleTaperRatioObjectiveFunction
// with the constant-diameter head pair replaced by a hemispherical
// bore-head profile: the existing head diameter becomes the hemisphere's
// equator diameter, the equator sits at the taper's start (displacing the
// old head-pair's second point), and the dome's pole becomes the new bore
// start (spec §4.5 "...FromTopHemiHead"). Dimensions are unchanged from
// SingleTaperRatio — taper ratio, taper start fraction, taper length
// fraction — the head diameter driving the dome is read from the
// instrument, not a free variable.
type SingleTaperHemiHeadObjectiveFunction struct {
	SingleTaperRatioObjectiveFunction
}

// NewSingleTaperHemiHead builds a SingleTaperHemiHeadObjectiveFunction over
// base.
func NewSingleTaperHemiHead(base Base) *SingleTaperHemiHeadObjectiveFunction {
	return &SingleTaperHemiHeadObjectiveFunction{SingleTaperRatioObjectiveFunction{Base: base}}
}

// GetGeometryPoint recovers [ratio, startFrac, lenFrac] from the dome +
// taper-end + foot tail of the bore; on a bore that hasn't yet been shaped
// by SetGeometryPoint it falls back to the same heuristic defaults as
// SingleTaperRatio. ratio recovers exactly; startFrac/lenFrac are
// approximate once the dome has replaced the head, since the hemisphere's
// axial extent (fixed by its equator diameter) generally differs from the
// head segment it replaced and so shifts the bore's effective start.
func (o *SingleTaperHemiHeadObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	n := len(in.BorePoints)
	boreLen := in.BoreLength()
	const domePoints = 11
	if n >= domePoints+2 && boreLen > 0 {
		equator := in.BorePoints[domePoints-1]
		taperEnd := in.BorePoints[n-2]
		foot := in.BorePoints[n-1]
		var ratio float64
		if foot.Diameter != 0 {
			ratio = equator.Diameter / foot.Diameter
		}
		boreStart := in.BorePoints[0].Position
		startFrac := (equator.Position - boreStart) / boreLen
		lenFrac := (taperEnd.Position - equator.Position) / boreLen
		return []float64{ratio, startFrac, lenFrac}
	}
	return []float64{1.5, 0.3, 0.4}
}

// SetGeometryPoint first applies the inherited SingleTaperRatio layout
// (head pair, taper, foot pair), then replaces the head pair with a
// HemisphericalBoreHead whose equator diameter equals the head diameter
// and whose equator lands exactly where the taper starts.
func (o *SingleTaperHemiHeadObjectiveFunction) SetGeometryPoint(x []float64) error {
	if err := o.SingleTaperRatioObjectiveFunction.SetGeometryPoint(x); err != nil {
		return err
	}
	in := o.Instrument
	head := in.BorePoints[0].Diameter
	if head <= 0 {
		return errGeometry("non-positive head diameter %v", head)
	}
	taperStart := in.BorePoints[1].Position
	hemi := HemisphericalBoreHead{EquatorDiameter: head}
	dome := hemi.AddHemiHead(taperStart - head/2)

	rest := in.BorePoints[2:]
	newPoints := make([]instrument.BorePoint, 0, len(dome)+len(rest))
	newPoints = append(newPoints, dome...)
	newPoints = append(newPoints, rest...)
	in.BorePoints = newPoints
	return in.Validate()
}

func (o *SingleTaperHemiHeadObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}
