package objective

// StopperPositionObjectiveFunction varies the distance from the bore's top
// (mouthpiece-end) to the embouchure hole centre — the flute headjoint's
// stopper position (spec §4.5 Headjoint).
type StopperPositionObjectiveFunction struct {
	Base
}

// NewStopperPosition builds a StopperPositionObjectiveFunction over
// base.Instrument, which must carry an Embouchure mouthpiece.
func NewStopperPosition(base Base) *StopperPositionObjectiveFunction {
	return &StopperPositionObjectiveFunction{Base: base}
}

func (o *StopperPositionObjectiveFunction) NumberOfDimensions() int { return 1 }

func (o *StopperPositionObjectiveFunction) Bounds() (lower, upper []float64) {
	boreLen := o.Instrument.BoreLength()
	return []float64{1e-4}, []float64{boreLen * 0.25}
}

func (o *StopperPositionObjectiveFunction) Constraints() []Constraint {
	return []Constraint{{Name: "stopper position", Category: "headjoint", Type: Dimensional}}
}

func (o *StopperPositionObjectiveFunction) GetGeometryPoint() []float64 {
	return []float64{o.Instrument.Mouthpiece.Position - o.Instrument.BorePoints[0].Position}
}

func (o *StopperPositionObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != 1 {
		return errGeometry("expected 1 dimension, got %d", len(x))
	}
	if x[0] <= 0 {
		return errGeometry("non-positive stopper position %v", x[0])
	}
	o.Instrument.Mouthpiece.Position = o.Instrument.BorePoints[0].Position + x[0]
	return o.Instrument.Validate()
}

func (o *StopperPositionObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// NewHeadjoint concatenates stopper position with the top k head-end bore
// diameters (spec §4.5 Headjoint).
func NewHeadjoint(base Base, k int) *ConcatObjectiveFunction {
	stopper := NewStopperPosition(base)
	head := NewBoreDiameterFromTop(base, k)
	return NewConcat(base, false, stopper, head)
}

// NewHoleAndHeadjoint concatenates hole placement with the headjoint
// parameterization (spec §4.5 HoleAndHeadjoint).
func NewHoleAndHeadjoint(base Base, adj BoreLengthAdjustmentType, k int) *ConcatObjectiveFunction {
	pos := NewHolePosition(base, adj)
	head := NewHeadjoint(base, k)
	return NewConcat(base, false, pos, head)
}
