package objective

// FluteCalibrationObjectiveFunction varies the embouchure hole's airstream
// length and jet beta angle to calibrate a transverse flute's mouthpiece
// model (spec §4.5).
type FluteCalibrationObjectiveFunction struct {
	Base
}

// NewFluteCalibration builds a FluteCalibrationObjectiveFunction over
// base.Instrument, which must carry an Embouchure mouthpiece.
func NewFluteCalibration(base Base) *FluteCalibrationObjectiveFunction {
	return &FluteCalibrationObjectiveFunction{Base: base}
}

func (o *FluteCalibrationObjectiveFunction) NumberOfDimensions() int { return 2 }

func (o *FluteCalibrationObjectiveFunction) Bounds() (lower, upper []float64) {
	return []float64{1e-4, 0.1}, []float64{0.05, 0.7}
}

func (o *FluteCalibrationObjectiveFunction) Constraints() []Constraint {
	return []Constraint{
		{Name: "airstream length", Category: "mouthpiece", Type: Dimensional},
		{Name: "beta", Category: "mouthpiece", Type: Dimensionless},
	}
}

func (o *FluteCalibrationObjectiveFunction) GetGeometryPoint() []float64 {
	e := o.Instrument.Mouthpiece.Embouchure
	if e == nil {
		return []float64{0, 0}
	}
	return []float64{e.AirstreamLength, e.Beta}
}

func (o *FluteCalibrationObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != 2 {
		return errGeometry("expected 2 dimensions, got %d", len(x))
	}
	e := o.Instrument.Mouthpiece.Embouchure
	if e == nil {
		return errGeometry("instrument has no embouchure mouthpiece to calibrate")
	}
	if x[0] <= 0 {
		return errGeometry("non-positive airstream length %v", x[0])
	}
	if x[1] <= 0 || x[1] >= 1 {
		return errGeometry("beta %v out of (0,1)", x[1])
	}
	e.AirstreamLength = x[0]
	e.Beta = x[1]
	return nil
}

func (o *FluteCalibrationObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// WhistleCalibrationObjectiveFunction varies the fipple windway height
// (windway length) and jet beta angle to calibrate a whistle mouthpiece
// model (spec §4.5).
type WhistleCalibrationObjectiveFunction struct {
	Base
}

// NewWhistleCalibration builds a WhistleCalibrationObjectiveFunction over
// base.Instrument, which must carry a Fipple mouthpiece.
func NewWhistleCalibration(base Base) *WhistleCalibrationObjectiveFunction {
	return &WhistleCalibrationObjectiveFunction{Base: base}
}

func (o *WhistleCalibrationObjectiveFunction) NumberOfDimensions() int { return 2 }

func (o *WhistleCalibrationObjectiveFunction) Bounds() (lower, upper []float64) {
	return []float64{1e-4, 0.1}, []float64{0.02, 0.7}
}

func (o *WhistleCalibrationObjectiveFunction) Constraints() []Constraint {
	return []Constraint{
		{Name: "window height", Category: "mouthpiece", Type: Dimensional},
		{Name: "beta", Category: "mouthpiece", Type: Dimensionless},
	}
}

func (o *WhistleCalibrationObjectiveFunction) GetGeometryPoint() []float64 {
	f := o.Instrument.Mouthpiece.Fipple
	if f == nil {
		return []float64{0, 0}
	}
	return []float64{f.WindwayLength, f.Beta}
}

func (o *WhistleCalibrationObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != 2 {
		return errGeometry("expected 2 dimensions, got %d", len(x))
	}
	f := o.Instrument.Mouthpiece.Fipple
	if f == nil {
		return errGeometry("instrument has no fipple mouthpiece to calibrate")
	}
	if x[0] <= 0 {
		return errGeometry("non-positive window height %v", x[0])
	}
	if x[1] <= 0 || x[1] >= 1 {
		return errGeometry("beta %v out of (0,1)", x[1])
	}
	f.WindwayLength = x[0]
	f.Beta = x[1]
	return nil
}

func (o *WhistleCalibrationObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}

// ReedCalibratorObjectiveFunction varies a single-reed mouthpiece's alpha
// and beta parameters (spec §4.5).
type ReedCalibratorObjectiveFunction struct {
	Base
}

// NewReedCalibrator builds a ReedCalibratorObjectiveFunction over
// base.Instrument, which must carry a SingleReed overlay.
func NewReedCalibrator(base Base) *ReedCalibratorObjectiveFunction {
	return &ReedCalibratorObjectiveFunction{Base: base}
}

func (o *ReedCalibratorObjectiveFunction) NumberOfDimensions() int { return 2 }

func (o *ReedCalibratorObjectiveFunction) Bounds() (lower, upper []float64) {
	return []float64{1e-4, 1e-4}, []float64{2.0, 2.0}
}

func (o *ReedCalibratorObjectiveFunction) Constraints() []Constraint {
	return []Constraint{
		{Name: "alpha", Category: "mouthpiece", Type: Dimensionless},
		{Name: "beta", Category: "mouthpiece", Type: Dimensionless},
	}
}

func (o *ReedCalibratorObjectiveFunction) GetGeometryPoint() []float64 {
	r := o.Instrument.Mouthpiece.Reed
	if r == nil {
		return []float64{0, 0}
	}
	return []float64{r.Alpha, r.Beta}
}

func (o *ReedCalibratorObjectiveFunction) SetGeometryPoint(x []float64) error {
	if len(x) != 2 {
		return errGeometry("expected 2 dimensions, got %d", len(x))
	}
	r := o.Instrument.Mouthpiece.Reed
	if r == nil {
		return errGeometry("instrument has no single-reed overlay to calibrate")
	}
	if x[0] <= 0 || x[1] <= 0 {
		return errGeometry("non-positive reed parameter in %v", x)
	}
	r.Alpha = x[0]
	r.Beta = x[1]
	return nil
}

func (o *ReedCalibratorObjectiveFunction) Value(x []float64) float64 {
	return o.Base.Value(o.SetGeometryPoint, x)
}
