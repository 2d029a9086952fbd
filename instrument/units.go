package instrument

import "fmt"

// Unit is the length unit an Instrument's geometry is expressed in.
type Unit string

const (
	MM Unit = "MM"
	IN Unit = "IN"
	M  Unit = "M"
)

// toMetres returns the multiplier that converts a length in u to metres.
func (u Unit) toMetres() (float64, error) {
	switch u {
	case MM:
		return 0.001, nil
	case IN:
		return 0.0254, nil
	case M, "":
		return 1.0, nil
	default:
		return 0, fmt.Errorf("instrument: unknown unit %q", u)
	}
}

// ToMetres converts a length expressed in u to metres.
func (u Unit) ToMetres(v float64) (float64, error) {
	mult, err := u.toMetres()
	if err != nil {
		return 0, err
	}
	return v * mult, nil
}

// FromMetres converts a length in metres to u.
func (u Unit) FromMetres(v float64) (float64, error) {
	mult, err := u.toMetres()
	if err != nil {
		return 0, err
	}
	return v / mult, nil
}
