package objective

// ConcatObjectiveFunction merges several sub-objectives operating on the
// same instrument into one parameterization, concatenating their free
// variables and summing their bounds/constraints. When SharedBoreLength is
// set, every sub-objective is expected to carry bore length as its first
// dimension; the merge exposes a single shared bore-length variable and
// forwards it to each sub unchanged (spec §9 "Shared bore-length variable
// in merged objectives").
//
// This single type stands in for the whole family of named concatenation
// variants (HoleAndTaper, HoleAndConicalBore, HoleAndBoreDiameterFromBottom/
// FromTop, HoleAndBorePosition, HoleAndBoreSpacingFromTop,
// HoleAndBoreFromBottom, Headjoint merges, ...): each is this generic merge
// applied to a particular pair of sub-objectives, matching the design
// note's preference for composition over a deep type hierarchy (spec §9).
type ConcatObjectiveFunction struct {
	Base
	Subs            []ObjectiveFunction
	SharedBoreLength bool
}

// NewConcat builds a ConcatObjectiveFunction over subs, all assumed to
// mutate the same instrument as base.
func NewConcat(base Base, sharedBoreLength bool, subs ...ObjectiveFunction) *ConcatObjectiveFunction {
	return &ConcatObjectiveFunction{Base: base, Subs: subs, SharedBoreLength: sharedBoreLength}
}

func (o *ConcatObjectiveFunction) NumberOfDimensions() int {
	n := 0
	for i, s := range o.Subs {
		d := s.NumberOfDimensions()
		if o.SharedBoreLength && i > 0 {
			d--
		}
		n += d
	}
	if o.SharedBoreLength && len(o.Subs) == 0 {
		return 0
	}
	return n
}

func (o *ConcatObjectiveFunction) Bounds() (lower, upper []float64) {
	for i, s := range o.Subs {
		sl, su := s.Bounds()
		if o.SharedBoreLength && i > 0 {
			sl, su = sl[1:], su[1:]
		}
		lower = append(lower, sl...)
		upper = append(upper, su...)
	}
	return lower, upper
}

func (o *ConcatObjectiveFunction) Constraints() []Constraint {
	var cs []Constraint
	for i, s := range o.Subs {
		sc := s.Constraints()
		if o.SharedBoreLength && i > 0 {
			sc = sc[1:]
		}
		cs = append(cs, sc...)
	}
	return cs
}

func (o *ConcatObjectiveFunction) GetGeometryPoint() []float64 {
	var x []float64
	for i, s := range o.Subs {
		sx := s.GetGeometryPoint()
		if o.SharedBoreLength && i > 0 {
			sx = sx[1:]
		}
		x = append(x, sx...)
	}
	return x
}

func (o *ConcatObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != o.NumberOfDimensions() {
		return errGeometry("expected %d dimensions, got %d", o.NumberOfDimensions(), len(x))
	}
	offset := 0
	for i, s := range o.Subs {
		d := s.NumberOfDimensions()
		var sx []float64
		if o.SharedBoreLength && i > 0 {
			sx = make([]float64, d)
			sx[0] = x[0]
			copy(sx[1:], x[offset:offset+d-1])
			offset += d - 1
		} else {
			sx = x[offset : offset+d]
			offset += d
		}
		if err := s.SetGeometryPoint(sx); err != nil {
			return err
		}
	}
	return nil
}

func (o *ConcatObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}
