package acoustic

import "math"

// Complex is a minimal complex-number record used for impedance and
// reflection-coefficient results. A dedicated type (rather than the builtin
// complex128) keeps JSON-marshalled reports readable and keeps the
// Calculator interface boundary explicit about units.
type Complex struct {
	Re float64
	Im float64
}

// Abs returns the magnitude of c.
func (c Complex) Abs() float64 {
	return math.Hypot(c.Re, c.Im)
}

// Arg returns the phase angle of c in radians.
func (c Complex) Arg() float64 {
	return math.Atan2(c.Im, c.Re)
}

// Add returns c+o.
func (c Complex) Add(o Complex) Complex {
	return Complex{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

// Ratio returns Im(c)/Re(c), the impedance ratio used throughout the playing
// range solver and the LinearV blowing-level model. When Re is exactly zero
// it returns +Inf if Im >= 0 and -Inf otherwise.
func (c Complex) Ratio() float64 {
	if c.Re == 0 {
		if c.Im >= 0 {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return c.Im / c.Re
}
