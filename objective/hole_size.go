package objective

// HoleSizeObjectiveFunction varies each hole's diameter directly (spec
// §4.5).
type HoleSizeObjectiveFunction struct {
	Base
}

// NewHoleSize builds a HoleSizeObjectiveFunction over base.
func NewHoleSize(base Base) *HoleSizeObjectiveFunction {
	return &HoleSizeObjectiveFunction{Base: base}
}

func (o *HoleSizeObjectiveFunction) NumberOfDimensions() int { return len(o.Instrument.Holes) }

func (o *HoleSizeObjectiveFunction) Bounds() (lower, upper []float64) {
	n := o.NumberOfDimensions()
	lower, upper = make([]float64, n), make([]float64, n)
	for i, h := range o.Instrument.Holes {
		lower[i] = h.Diameter * 0.3
		upper[i] = h.Diameter * 2.0
	}
	return lower, upper
}

func (o *HoleSizeObjectiveFunction) Constraints() []Constraint {
	n := o.NumberOfDimensions()
	cs := make([]Constraint, n)
	for i, h := range o.Instrument.Holes {
		name := h.Name
		if name == "" {
			name = "hole diameter"
		}
		cs[i] = Constraint{Name: name, Category: "hole", Type: Dimensional}
	}
	return cs
}

func (o *HoleSizeObjectiveFunction) GetGeometryPoint() []float64 {
	x := make([]float64, len(o.Instrument.Holes))
	for i, h := range o.Instrument.Holes {
		x[i] = h.Diameter
	}
	return x
}

func (o *HoleSizeObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != len(o.Instrument.Holes) {
		return errGeometry("expected %d dimensions, got %d", len(o.Instrument.Holes), len(x))
	}
	for i, d := range x {
		if d <= 0 {
			return errGeometry("non-positive hole diameter %v at index %d", d, i)
		}
		o.Instrument.Holes[i].Diameter = d
	}
	return nil
}

func (o *HoleSizeObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// NafHoleSizeObjectiveFunction is HoleSize for Native American flute
// calibration with the BOBYQA trust region set explicitly (initial 10,
// stopping 1e-8, the same values as the package defaults) (spec §4.5).
type NafHoleSizeObjectiveFunction struct {
	HoleSizeObjectiveFunction
}

// NewNafHoleSize builds a NafHoleSizeObjectiveFunction over base, forcing
// the NAF trust-region defaults.
func NewNafHoleSize(base Base) *NafHoleSizeObjectiveFunction {
	base.InitialRadius = 10
	base.StoppingRadius = 1e-8
	return &NafHoleSizeObjectiveFunction{HoleSizeObjectiveFunction{Base: base}}
}
