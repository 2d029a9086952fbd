package objective

// HoleGroup is a set of hole indices (into Instrument.Holes, ascending
// order of position) constrained to share one consecutive spacing value
// (spec §4.5 HoleGroup family).
type HoleGroup []int

// validateHoleGroups checks that groups partition [0, nHoles) with no
// duplicates and no gaps (spec §4.5 validation clause).
func validateHoleGroups(groups []HoleGroup, nHoles int) error {
	seen := make([]bool, nHoles)
	count := 0
	for _, g := range groups {
		for _, idx := range g {
			if idx < 0 || idx >= nHoles {
				return errGeometry("hole group index %d out of range [0,%d)", idx, nHoles)
			}
			if seen[idx] {
				return errGeometry("hole group index %d appears in more than one group", idx)
			}
			seen[idx] = true
			count++
		}
	}
	if count != nHoles {
		return errGeometry("hole groups do not partition all %d holes (covered %d)", nHoles, count)
	}
	return nil
}

// groupIDOf returns the index into groups containing hole idx, or -1.
func groupIDOf(groups []HoleGroup, idx int) int {
	for gid, g := range groups {
		for _, h := range g {
			if h == idx {
				return gid
			}
		}
	}
	return -1
}

// groupGapLayout computes the shared-dimension layout for the intra-group
// spacing dims used by both HoleGroupPositionObjectiveFunction and
// HoleGroupFromTopObjectiveFunction: adjacent holes in the same group share
// one dimension, regardless of which direction the caller traverses holes
// in when writing positions (spec §4.5 HoleGroup family).
func groupGapLayout(groups []HoleGroup, nHoles int) (gapDim []int, nGapDims int) {
	gapDim = make([]int, nHoles) // index 0 unused
	dimByGroup := make(map[int]int)
	next := 0
	for i := 1; i < nHoles; i++ {
		gidPrev := groupIDOf(groups, i-1)
		gid := groupIDOf(groups, i)
		if gid != -1 && gid == gidPrev {
			// Internal gap of a group: allocate its shared dimension on
			// first sight, reuse it thereafter.
			if d, ok := dimByGroup[gid]; ok {
				gapDim[i] = d
			} else {
				gapDim[i] = next
				dimByGroup[gid] = next
				next++
			}
			continue
		}
		gapDim[i] = next
		next++
	}
	return gapDim, next
}

// HoleGroupPositionObjectiveFunction is HolePositionObjectiveFunction with
// intra-group spacings collapsed to a single shared dimension per group
// (spec §4.5).
type HoleGroupPositionObjectiveFunction struct {
	Base
	Adjustment BoreLengthAdjustmentType
	Groups     []HoleGroup

	// gapDim[i] (for i in [1,nHoles)) is the dimension index (offset from
	// x[2]) governing the gap between holes[i-1] and holes[i]; gaps that
	// share a dimension belong to the same group.
	gapDim []int
	nDims  int
}

// NewHoleGroupPosition builds a HoleGroupPositionObjectiveFunction, deriving
// the shared-dimension layout from groups. Returns an error if groups do
// not partition the instrument's holes.
func NewHoleGroupPosition(base Base, adj BoreLengthAdjustmentType, groups []HoleGroup) (*HoleGroupPositionObjectiveFunction, error) {
	nHoles := len(base.Instrument.Holes)
	if err := validateHoleGroups(groups, nHoles); err != nil {
		return nil, err
	}
	gapDim, next := groupGapLayout(groups, nHoles)
	o := &HoleGroupPositionObjectiveFunction{Base: base, Adjustment: adj, Groups: groups, gapDim: gapDim, nDims: 2 + next}
	return o, nil
}

func (o *HoleGroupPositionObjectiveFunction) NumberOfDimensions() int { return o.nDims }

func (o *HoleGroupPositionObjectiveFunction) Bounds() (lower, upper []float64) {
	n := o.nDims
	lower, upper = make([]float64, n), make([]float64, n)
	boreLen := o.Instrument.BoreLength()
	lower[0], upper[0] = boreLen*0.5, boreLen*2.0
	for i := 1; i < n; i++ {
		lower[i], upper[i] = 1e-4, boreLen
	}
	return lower, upper
}

func (o *HoleGroupPositionObjectiveFunction) Constraints() []Constraint {
	n := o.nDims
	cs := make([]Constraint, n)
	cs[0] = Constraint{Name: "bore length", Category: "bore", Type: Dimensional}
	for i := 1; i < n; i++ {
		cs[i] = Constraint{Name: "grouped hole spacing", Category: "hole-group", Type: Dimensional}
	}
	return cs
}

func (o *HoleGroupPositionObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	n := len(in.Holes)
	x := make([]float64, o.nDims)
	x[0] = in.BoreLength()
	if n == 0 {
		return x
	}
	boreEnd := in.BorePoints[len(in.BorePoints)-1].Position
	x[1] = boreEnd - in.Holes[n-1].Position
	for i := n - 1; i >= 1; i-- {
		x[2+o.gapDim[i]] = in.Holes[i].Position - in.Holes[i-1].Position
	}
	return x
}

func (o *HoleGroupPositionObjectiveFunction) SetGeometryPoint(x []float64) error {
	in := o.Instrument
	n := len(in.Holes)
	if len(x) != o.nDims {
		return errGeometry("expected %d dimensions, got %d", o.nDims, len(x))
	}
	if err := applyBoreLength(in, x[0], o.Adjustment); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	boreEnd := in.BorePoints[len(in.BorePoints)-1].Position
	pos := boreEnd - x[1]
	in.Holes[n-1].Position = pos
	for i := n - 1; i >= 1; i-- {
		spacing := x[2+o.gapDim[i]]
		if spacing <= 0 {
			return errGeometry("non-positive grouped hole spacing %v", spacing)
		}
		pos -= spacing
		if pos < in.BorePoints[0].Position {
			return errGeometry("hole %d position %v precedes bore start", i-1, pos)
		}
		in.Holes[i-1].Position = pos
	}
	return in.Validate()
}

func (o *HoleGroupPositionObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// HoleGroupFromTopObjectiveFunction is HolePositionFromTopObjectiveFunction
// with intra-group spacings collapsed to a single shared dimension per
// group (spec §4.5 HoleGroupFromTop).
type HoleGroupFromTopObjectiveFunction struct {
	Base
	Adjustment BoreLengthAdjustmentType
	Groups     []HoleGroup

	gapDim []int
	nDims  int
}

// NewHoleGroupFromTop builds a HoleGroupFromTopObjectiveFunction, deriving
// the shared-dimension layout from groups. Returns an error if groups do
// not partition the instrument's holes.
func NewHoleGroupFromTop(base Base, adj BoreLengthAdjustmentType, groups []HoleGroup) (*HoleGroupFromTopObjectiveFunction, error) {
	nHoles := len(base.Instrument.Holes)
	if err := validateHoleGroups(groups, nHoles); err != nil {
		return nil, err
	}
	gapDim, next := groupGapLayout(groups, nHoles)
	o := &HoleGroupFromTopObjectiveFunction{Base: base, Adjustment: adj, Groups: groups, gapDim: gapDim, nDims: 2 + next}
	return o, nil
}

func (o *HoleGroupFromTopObjectiveFunction) NumberOfDimensions() int { return o.nDims }

func (o *HoleGroupFromTopObjectiveFunction) Bounds() (lower, upper []float64) {
	n := o.nDims
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

func (o *HoleGroupFromTopObjectiveFunction) Constraints() []Constraint {
	n := o.nDims
	cs := make([]Constraint, n)
	cs[0] = Constraint{Name: "bore length", Category: "bore", Type: Dimensional}
	if n > 1 {
		cs[1] = Constraint{Name: "top hole fraction", Category: "hole", Type: Dimensionless}
	}
	for i := 2; i < n; i++ {
		cs[i] = Constraint{Name: "grouped hole spacing", Category: "hole-group", Type: Dimensional}
	}
	return cs
}

// GetGeometryPoint returns [boreLength, topHoleFraction, grouped
// spacing...] mirroring HolePositionFromTopObjectiveFunction, but with
// intra-group spacings sharing a dimension per groupGapLayout.
func (o *HoleGroupFromTopObjectiveFunction) GetGeometryPoint() []float64 {
	in := o.Instrument
	n := len(in.Holes)
	x := make([]float64, o.nDims)
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
		x[2+o.gapDim[i]] = in.Holes[i].Position - in.Holes[i-1].Position
	}
	return x
}

func (o *HoleGroupFromTopObjectiveFunction) SetGeometryPoint(x []float64) error {
	in := o.Instrument
	n := len(in.Holes)
	if len(x) != o.nDims {
		return errGeometry("expected %d dimensions, got %d", o.nDims, len(x))
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
		spacing := x[2+o.gapDim[i]]
		if spacing <= 0 {
			return errGeometry("non-positive grouped hole spacing %v", spacing)
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

func (o *HoleGroupFromTopObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}
