package objective

import "github.com/cwbudde/wwidesigner-core/instrument"

// BasicTaperObjectiveFunction reduces the bore to three points: a
// constant-diameter head, a taper start, and the foot diameter expressed as
// a ratio of the head diameter. 2 dimensions: head-length fraction of bore
// length, foot-diameter ratio (spec §4.5).
type BasicTaperObjectiveFunction struct {
	Base
}

// NewBasicTaper builds a BasicTaperObjectiveFunction over base, collapsing
// base.Instrument's bore to three points on first SetGeometryPoint.
func NewBasicTaper(base Base) *BasicTaperObjectiveFunction {
	return &BasicTaperObjectiveFunction{Base: base}
}

func (o *BasicTaperObjectiveFunction) NumberOfDimensions() int { return 2 }

func (o *BasicTaperObjectiveFunction) Bounds() (lower, upper []float64) {
	return []float64{0.05, 0.2}, []float64{0.95, 5.0}
}

func (o *BasicTaperObjectiveFunction) Constraints() []Constraint {
	return []Constraint{
		{Name: "head length fraction", Category: "bore", Type: Dimensionless},
		{Name: "foot diameter ratio", Category: "bore", Type: Dimensionless},
	}
}

func (o *BasicTaperObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	n := len(in.BorePoints)
	boreLen := in.BoreLength()
	head := in.BorePoints[0].Diameter
	var fraction, ratio float64
	if n >= 3 && boreLen > 0 {
		fraction = (in.BorePoints[1].Position - in.BorePoints[0].Position) / boreLen
	} else {
		fraction = 0.5
	}
	foot := in.BorePoints[n-1].Diameter
	if head != 0 {
		ratio = foot / head
	}
	return []float64{fraction, ratio}
}

func (o *BasicTaperObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != 2 {
		return errGeometry("expected 2 dimensions, got %d", len(x))
	}
	fraction, ratio := x[0], x[1]
	if fraction <= 0 || fraction >= 1 {
		return errGeometry("head length fraction %v out of (0,1)", fraction)
	}
	if ratio <= 0 {
		return errGeometry("non-positive foot diameter ratio %v", ratio)
	}
	in := o.Instrument
	n := len(in.BorePoints)
	boreStart := in.BorePoints[0].Position
	boreEnd := in.BorePoints[n-1].Position
	head := in.BorePoints[0].Diameter
	splitPos := boreStart + fraction*(boreEnd-boreStart)
	in.BorePoints = []instrument.BorePoint{
		{Position: boreStart, Diameter: head},
		{Position: splitPos, Diameter: head},
		{Position: boreEnd, Diameter: head * ratio},
	}
	return in.Validate()
}

func (o *BasicTaperObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// SingleTaperRatioObjectiveFunction reduces the bore to four points: a
// constant-diameter head pair and a constant-diameter foot pair joined by a
// single taper segment. 3 dimensions: taper ratio (head/foot diameter),
// taper start fraction (of bore length), taper length fraction (spec
// §4.5).
type SingleTaperRatioObjectiveFunction struct {
	Base
}

// NewSingleTaperRatio builds a SingleTaperRatioObjectiveFunction over base.
func NewSingleTaperRatio(base Base) *SingleTaperRatioObjectiveFunction {
	return &SingleTaperRatioObjectiveFunction{Base: base}
}

func (o *SingleTaperRatioObjectiveFunction) NumberOfDimensions() int { return 3 }

func (o *SingleTaperRatioObjectiveFunction) Bounds() (lower, upper []float64) {
	return []float64{0.2, 0, 0.01}, []float64{5.0, 0.95, 0.95}
}

func (o *SingleTaperRatioObjectiveFunction) Constraints() []Constraint {
	return []Constraint{
		{Name: "taper ratio", Category: "bore", Type: Dimensionless},
		{Name: "taper start fraction", Category: "bore", Type: Dimensionless},
		{Name: "taper length fraction", Category: "bore", Type: Dimensionless},
	}
}

func (o *SingleTaperRatioObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	n := len(in.BorePoints)
	boreLen := in.BoreLength()
	head := in.BorePoints[0].Diameter
	foot := in.BorePoints[n-1].Diameter
	var ratio float64
	if foot != 0 {
		ratio = head / foot
	}
	var startFrac, lenFrac float64
	if n >= 4 && boreLen > 0 {
		startFrac = (in.BorePoints[1].Position - in.BorePoints[0].Position) / boreLen
		lenFrac = (in.BorePoints[2].Position - in.BorePoints[1].Position) / boreLen
	} else {
		startFrac, lenFrac = 0.3, 0.4
	}
	return []float64{ratio, startFrac, lenFrac}
}

func (o *SingleTaperRatioObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != 3 {
		return errGeometry("expected 3 dimensions, got %d", len(x))
	}
	ratio, startFrac, lenFrac := x[0], x[1], x[2]
	if ratio <= 0 {
		return errGeometry("non-positive taper ratio %v", ratio)
	}
	if startFrac < 0 || startFrac >= 1 {
		return errGeometry("taper start fraction %v out of [0,1)", startFrac)
	}
	if lenFrac <= 0 || startFrac+lenFrac > 1 {
		return errGeometry("taper length fraction %v invalid given start %v", lenFrac, startFrac)
	}
	in := o.Instrument
	n := len(in.BorePoints)
	boreStart := in.BorePoints[0].Position
	boreEnd := in.BorePoints[n-1].Position
	boreLen := boreEnd - boreStart
	head := in.BorePoints[0].Diameter
	foot := head / ratio
	taperStart := boreStart + startFrac*boreLen
	taperEnd := taperStart + lenFrac*boreLen
	in.BorePoints = []instrument.BorePoint{
		{Position: boreStart, Diameter: head},
		{Position: taperStart, Diameter: head},
		{Position: taperEnd, Diameter: foot},
		{Position: boreEnd, Diameter: foot},
	}
	return in.Validate()
}

func (o *SingleTaperRatioObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// SingleTaperSimpleRatioObjectiveFunction is SingleTaperRatio with the
// ratio expressed as foot/head rather than head/foot — a display
// convenience over the same four-point geometry.
type SingleTaperSimpleRatioObjectiveFunction struct {
	SingleTaperRatioObjectiveFunction
}

// NewSingleTaperSimpleRatio builds a SingleTaperSimpleRatioObjectiveFunction
// over base.
func NewSingleTaperSimpleRatio(base Base) *SingleTaperSimpleRatioObjectiveFunction {
	return &SingleTaperSimpleRatioObjectiveFunction{SingleTaperRatioObjectiveFunction{Base: base}}
}

func (o *SingleTaperSimpleRatioObjectiveFunction) GetGeometryPoint() []float64 {
	x := o.SingleTaperRatioObjectiveFunction.GetGeometryPoint()
	if x[0] != 0 {
		x[0] = 1.0 / x[0]
	}
	return x
}

func (o *SingleTaperSimpleRatioObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != 3 {
		return errGeometry("expected 3 dimensions, got %d", len(x))
	}
	inverted := append([]float64(nil), x...)
	if inverted[0] != 0 {
		inverted[0] = 1.0 / inverted[0]
	}
	return o.SingleTaperRatioObjectiveFunction.SetGeometryPoint(inverted)
}

func (o *SingleTaperSimpleRatioObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}
