package objective

import (
	"github.com/cwbudde/wwidesigner-core/instrument"
)

// BoreLengthAdjustmentType selects which bore endpoint absorbs a bore-length
// change written by setGeometryPoint (spec §4.5 HolePosition family).
type BoreLengthAdjustmentType int

const (
	// MoveBottom holds the mouthpiece-end bore points fixed and moves only
	// the last (foot) bore point to the new length.
	MoveBottom BoreLengthAdjustmentType = iota
	// PreserveTaper rescales every interior bore point position
	// proportionally to the new length, holding the taper shape (spec §9
	// open question: proportional rule is the contract).
	PreserveTaper
)

// HolePositionObjectiveFunction varies bore length plus each hole's spacing
// from the bore foot upward to the mouthpiece end (spec §4.5).
type HolePositionObjectiveFunction struct {
	Base
	Adjustment BoreLengthAdjustmentType
}

// NewHolePosition builds a HolePositionObjectiveFunction over base, varying
// bore length and hole spacings with the given bore-length adjustment rule.
func NewHolePosition(base Base, adj BoreLengthAdjustmentType) *HolePositionObjectiveFunction {
	return &HolePositionObjectiveFunction{Base: base, Adjustment: adj}
}

func (o *HolePositionObjectiveFunction) NumberOfDimensions() int {
	return 1 + len(o.Instrument.Holes)
}

func (o *HolePositionObjectiveFunction) Bounds() (lower, upper []float64) {
	n := o.NumberOfDimensions()
	lower, upper = make([]float64, n), make([]float64, n)
	boreLen := o.Instrument.BoreLength()
	lower[0], upper[0] = boreLen*0.5, boreLen*2.0
	for i := 1; i < n; i++ {
		lower[i], upper[i] = 1e-4, boreLen
	}
	return lower, upper
}

func (o *HolePositionObjectiveFunction) Constraints() []Constraint {
	n := o.NumberOfDimensions()
	cs := make([]Constraint, n)
	cs[0] = Constraint{Name: "bore length", Category: "bore", Type: Dimensional}
	for i := 1; i < n; i++ {
		cs[i] = Constraint{Name: "hole spacing", Category: "hole", Type: Dimensional}
	}
	return cs
}

// GetGeometryPoint returns [boreLength, footToLowestHoleSpacing,
// spacing(lowest,next)..., spacing(2nd,1st)] — the last entry is the
// spacing between the topmost two holes.
func (o *HolePositionObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	n := len(in.Holes)
	x := make([]float64, 1+n)
	x[0] = in.BoreLength()
	if n == 0 {
		return x
	}
	boreEnd := in.BorePoints[len(in.BorePoints)-1].Position
	x[1] = boreEnd - in.Holes[n-1].Position
	for i := n - 1; i > 0; i-- {
		x[1+(n-i)] = in.Holes[i].Position - in.Holes[i-1].Position
	}
	return x
}

// SetGeometryPoint writes bore length and hole spacings back into the
// instrument, rebuilding hole positions bottom-up.
func (o *HolePositionObjectiveFunction) SetGeometryPoint(x []float64) error {
	in := o.Instrument
	n := len(in.Holes)
	if len(x) != 1+n {
		return errGeometry("expected %d dimensions, got %d", 1+n, len(x))
	}
	if err := applyBoreLength(in, x[0], o.Adjustment); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	boreEnd := in.BorePoints[len(in.BorePoints)-1].Position
	pos := boreEnd - x[1]
	if pos < in.BorePoints[0].Position {
		return errGeometry("hole %d position %v precedes bore start", n-1, pos)
	}
	in.Holes[n-1].Position = pos
	for i := n - 1; i > 0; i-- {
		spacing := x[1+(n-i)]
		if spacing <= 0 {
			return errGeometry("non-positive hole spacing %v", spacing)
		}
		pos -= spacing
		if pos < in.BorePoints[0].Position {
			return errGeometry("hole %d position %v precedes bore start", i-1, pos)
		}
		in.Holes[i-1].Position = pos
	}
	return in.Validate()
}

func (o *HolePositionObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// HolePositionFromTopObjectiveFunction expresses the top hole's position as
// a dimensionless fraction of bore length, remaining spacings downward
// (spec §4.5).
type HolePositionFromTopObjectiveFunction struct {
	Base
	Adjustment BoreLengthAdjustmentType
}

// NewHolePositionFromTop builds a HolePositionFromTopObjectiveFunction over
// base.
func NewHolePositionFromTop(base Base, adj BoreLengthAdjustmentType) *HolePositionFromTopObjectiveFunction {
	return &HolePositionFromTopObjectiveFunction{Base: base, Adjustment: adj}
}

func (o *HolePositionFromTopObjectiveFunction) NumberOfDimensions() int {
	return 1 + len(o.Instrument.Holes)
}

func (o *HolePositionFromTopObjectiveFunction) Bounds() (lower, upper []float64) {
	n := o.NumberOfDimensions()
	lower, upper = make([]float64, n), make([]float64, n)
	boreLen := o.Instrument.BoreLength()
	lower[0], upper[0] = boreLen*0.5, boreLen*2.0
	if n > 1 {
		lower[1], upper[1] = 0, 1
	}
	for i := 2; i < n; i++ {
		lower[i], upper[i] = 1e-4, boreLen
	}
	return lower, upper
}

func (o *HolePositionFromTopObjectiveFunction) Constraints() []Constraint {
	n := o.NumberOfDimensions()
	cs := make([]Constraint, n)
	cs[0] = Constraint{Name: "bore length", Category: "bore", Type: Dimensional}
	if n > 1 {
		cs[1] = Constraint{Name: "top hole fraction", Category: "hole", Type: Dimensionless}
	}
	for i := 2; i < n; i++ {
		cs[i] = Constraint{Name: "hole spacing", Category: "hole", Type: Dimensional}
	}
	return cs
}

// GetGeometryPoint returns [boreLength, topHoleFraction, spacing(1st,2nd),
// ..., spacing(n-1,n)] where fraction is the top hole's position divided by
// bore length.
func (o *HolePositionFromTopObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	n := len(in.Holes)
	x := make([]float64, 1+n)
	boreLen := in.BoreLength()
	x[0] = boreLen
	if n == 0 {
		return x
	}
	boreStart := in.BorePoints[0].Position
	if boreLen > 0 {
		x[1] = (in.Holes[0].Position - boreStart) / boreLen
	}
	for i := 1; i < n; i++ {
		x[1+i] = in.Holes[i].Position - in.Holes[i-1].Position
	}
	return x
}

func (o *HolePositionFromTopObjectiveFunction) SetGeometryPoint(x []float64) error {
	in := o.Instrument
	n := len(in.Holes)
	if len(x) != 1+n {
		return errGeometry("expected %d dimensions, got %d", 1+n, len(x))
	}
	if err := applyBoreLength(in, x[0], o.Adjustment); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	boreStart := in.BorePoints[0].Position
	boreLen := in.BoreLength()
	if x[1] < 0 || x[1] > 1 {
		return errGeometry("top hole fraction %v out of [0,1]", x[1])
	}
	pos := boreStart + x[1]*boreLen
	in.Holes[0].Position = pos
	for i := 1; i < n; i++ {
		spacing := x[1+i]
		if spacing <= 0 {
			return errGeometry("non-positive hole spacing %v", spacing)
		}
		pos += spacing
		in.Holes[i].Position = pos
	}
	boreEnd := in.BorePoints[len(in.BorePoints)-1].Position
	if in.Holes[n-1].Position > boreEnd+1e-9 {
		return errGeometry("hole %d position %v exceeds bore end %v", n-1, in.Holes[n-1].Position, boreEnd)
	}
	return in.Validate()
}

func (o *HolePositionFromTopObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// applyBoreLength rewrites in.BorePoints so BoreLength() becomes newLength,
// per adj (spec §4.5 BoreLengthAdjustmentType).
func applyBoreLength(in *instrument.Instrument, newLength float64, adj BoreLengthAdjustmentType) error {
	if newLength <= 0 {
		return errGeometry("non-positive bore length %v", newLength)
	}
	n := len(in.BorePoints)
	if n < 2 {
		return errGeometry("instrument has fewer than two bore points")
	}
	start := in.BorePoints[0].Position
	oldLength := in.BorePoints[n-1].Position - start

	switch adj {
	case PreserveTaper:
		if oldLength <= 0 {
			in.BorePoints[n-1].Position = start + newLength
			return nil
		}
		scale := newLength / oldLength
		for i := 1; i < n; i++ {
			in.BorePoints[i].Position = start + (in.BorePoints[i].Position-start)*scale
		}
	default: // MoveBottom
		in.BorePoints[n-1].Position = start + newLength
	}
	return nil
}
