package objective

// NewHoleObjectiveFunction concatenates HolePosition and HoleSize into one
// parameterization (spec §4.5 HoleObjectiveFunction). Neither sub carries a
// bore-length dimension conflict here — only HolePosition has one — so the
// merge is plain concatenation, not a shared-dimension merge.
func NewHoleObjectiveFunction(base Base, adj BoreLengthAdjustmentType) *ConcatObjectiveFunction {
	pos := NewHolePosition(base, adj)
	size := NewHoleSize(base)
	return NewConcat(base, false, pos, size)
}

// NewHoleFromTopObjectiveFunction concatenates HolePositionFromTop and
// HoleSize (spec §4.5 HoleFromTopObjectiveFunction).
func NewHoleFromTopObjectiveFunction(base Base, adj BoreLengthAdjustmentType) *ConcatObjectiveFunction {
	pos := NewHolePositionFromTop(base, adj)
	size := NewHoleSize(base)
	return NewConcat(base, false, pos, size)
}

// NewHoleGroupObjectiveFunction concatenates HoleGroupPosition and HoleSize
// (spec §4.5 HoleGroupObjectiveFunction).
func NewHoleGroupObjectiveFunction(base Base, adj BoreLengthAdjustmentType, groups []HoleGroup) (*ConcatObjectiveFunction, error) {
	pos, err := NewHoleGroupPosition(base, adj, groups)
	if err != nil {
		return nil, err
	}
	size := NewHoleSize(base)
	return NewConcat(base, false, pos, size), nil
}

// NewHoleAndTaper concatenates hole placement with a basic taper bore
// (spec §4.5 HoleAndTaper). HolePosition's dim 0 is bore length; BasicTaper's
// dim 0 is head-length fraction, not bore length, so it has no conflicting
// dimension and this is plain concatenation.
func NewHoleAndTaper(base Base, adj BoreLengthAdjustmentType) *ConcatObjectiveFunction {
	pos := NewHolePosition(base, adj)
	taper := NewBasicTaper(base)
	return NewConcat(base, false, pos, taper)
}

// NewHoleAndBoreDiameterFromBottom concatenates hole placement with a
// bottom-anchored bore-diameter ratio parameterization (spec §4.5
// HoleAndBoreDiameterFromBottom).
func NewHoleAndBoreDiameterFromBottom(base Base, adj BoreLengthAdjustmentType, k int) *ConcatObjectiveFunction {
	pos := NewHolePosition(base, adj)
	bore := NewBoreDiameterFromBottom(base, k)
	return NewConcat(base, false, pos, bore)
}

// NewHoleAndBoreDiameterFromTop concatenates hole placement with a
// top-anchored bore-diameter ratio parameterization (spec §4.5
// HoleAndBoreDiameterFromTop).
func NewHoleAndBoreDiameterFromTop(base Base, adj BoreLengthAdjustmentType, k int) *ConcatObjectiveFunction {
	pos := NewHolePosition(base, adj)
	bore := NewBoreDiameterFromTop(base, k)
	return NewConcat(base, false, pos, bore)
}

// NewHoleAndBorePosition concatenates hole placement with single-taper bore
// geometry (spec §4.5 HoleAndBorePosition). Only hole placement carries a
// bore-length variable, so no dimension is shared.
func NewHoleAndBorePosition(base Base, adj BoreLengthAdjustmentType) *ConcatObjectiveFunction {
	pos := NewHolePosition(base, adj)
	taper := NewSingleTaperRatio(base)
	// HolePosition's dim 0 is bore length; SingleTaperRatio has no bore
	// length dimension of its own, so this is again plain concatenation.
	return NewConcat(base, false, pos, taper)
}

// NewHoleAndBoreFromBottom concatenates hole placement (from bottom) with
// a bottom-anchored bore-diameter ratio parameterization and a taper
// (spec §4.5 HoleAndBoreFromBottom).
func NewHoleAndBoreFromBottom(base Base, adj BoreLengthAdjustmentType, k int) *ConcatObjectiveFunction {
	pos := NewHolePosition(base, adj)
	bore := NewBoreDiameterFromBottom(base, k)
	taper := NewBasicTaper(base)
	return NewConcat(base, false, pos, bore, taper)
}

// NewHoleAndBoreSpacingFromTop concatenates hole placement from the top
// with a top-anchored bore-diameter ratio parameterization (spec §4.5
// HoleAndBoreSpacingFromTop).
func NewHoleAndBoreSpacingFromTop(base Base, adj BoreLengthAdjustmentType, k int) *ConcatObjectiveFunction {
	pos := NewHolePositionFromTop(base, adj)
	bore := NewBoreDiameterFromTop(base, k)
	return NewConcat(base, false, pos, bore)
}
