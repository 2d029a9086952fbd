package objective

// BoreDiameterFromBottomObjectiveFunction varies the diameters of the last
// K bore points as dimensionless ratios to their immediate predecessor,
// holding the bore point before the varied range (the "anchor") fixed
// (spec §4.5).
type BoreDiameterFromBottomObjectiveFunction struct {
	Base
	K int
}

// NewBoreDiameterFromBottom builds the objective varying the last k bore
// points of base.Instrument.
func NewBoreDiameterFromBottom(base Base, k int) *BoreDiameterFromBottomObjectiveFunction {
	return &BoreDiameterFromBottomObjectiveFunction{Base: base, K: k}
}

func (o *BoreDiameterFromBottomObjectiveFunction) NumberOfDimensions() int { return o.K }

func (o *BoreDiameterFromBottomObjectiveFunction) Bounds() (lower, upper []float64) {
	n := o.K
	lower, upper = make([]float64, n), make([]float64, n)
	for i := range lower {
		lower[i], upper[i] = 0.3, 3.0
	}
	return lower, upper
}

func (o *BoreDiameterFromBottomObjectiveFunction) Constraints() []Constraint {
	cs := make([]Constraint, o.K)
	for i := range cs {
		cs[i] = Constraint{Name: "bore diameter ratio", Category: "bore", Type: Dimensionless}
	}
	return cs
}

func (o *BoreDiameterFromBottomObjectiveFunction) varyStart() int {
	return len(o.Instrument.BorePoints) - o.K
}

func (o *BoreDiameterFromBottomObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	start := o.varyStart()
	x := make([]float64, o.K)
	for i := 0; i < o.K; i++ {
		idx := start + i
		prev := in.BorePoints[idx-1].Diameter
		if prev == 0 {
			continue
		}
		x[i] = in.BorePoints[idx].Diameter / prev
	}
	return x
}

func (o *BoreDiameterFromBottomObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != o.K {
		return errGeometry("expected %d dimensions, got %d", o.K, len(x))
	}
	in := o.Instrument
	start := o.varyStart()
	if start < 1 {
		return errGeometry("k=%d leaves no anchor bore point", o.K)
	}
	prev := in.BorePoints[start-1].Diameter
	for i := 0; i < o.K; i++ {
		if x[i] <= 0 {
			return errGeometry("non-positive bore diameter ratio %v", x[i])
		}
		d := prev * x[i]
		in.BorePoints[start+i].Diameter = d
		prev = d
	}
	return in.Validate()
}

func (o *BoreDiameterFromBottomObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// BoreDiameterFromTopObjectiveFunction mirrors
// BoreDiameterFromBottomObjectiveFunction over the first K bore points,
// anchored at the point immediately after the varied range.
type BoreDiameterFromTopObjectiveFunction struct {
	Base
	K int
}

// NewBoreDiameterFromTop builds the objective varying the first k bore
// points of base.Instrument.
func NewBoreDiameterFromTop(base Base, k int) *BoreDiameterFromTopObjectiveFunction {
	return &BoreDiameterFromTopObjectiveFunction{Base: base, K: k}
}

func (o *BoreDiameterFromTopObjectiveFunction) NumberOfDimensions() int { return o.K }

func (o *BoreDiameterFromTopObjectiveFunction) Bounds() (lower, upper []float64) {
	n := o.K
	lower, upper = make([]float64, n), make([]float64, n)
	for i := range lower {
		lower[i], upper[i] = 0.3, 3.0
	}
	return lower, upper
}

func (o *BoreDiameterFromTopObjectiveFunction) Constraints() []Constraint {
	cs := make([]Constraint, o.K)
	for i := range cs {
		cs[i] = Constraint{Name: "bore diameter ratio", Category: "bore", Type: Dimensionless}
	}
	return cs
}

func (o *BoreDiameterFromTopObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	x := make([]float64, o.K)
	for i := 0; i < o.K; i++ {
		next := in.BorePoints[i+1].Diameter
		if next == 0 {
			continue
		}
		x[i] = in.BorePoints[i].Diameter / next
	}
	return x
}

func (o *BoreDiameterFromTopObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != o.K {
		return errGeometry("expected %d dimensions, got %d", o.K, len(x))
	}
	in := o.Instrument
	if o.K >= len(in.BorePoints) {
		return errGeometry("k=%d leaves no anchor bore point", o.K)
	}
	next := in.BorePoints[o.K].Diameter
	for i := o.K - 1; i >= 0; i-- {
		if x[i] <= 0 {
			return errGeometry("non-positive bore diameter ratio %v", x[i])
		}
		d := next * x[i]
		in.BorePoints[i].Diameter = d
		next = d
	}
	return in.Validate()
}

func (o *BoreDiameterFromTopObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}
