package objective

import (
	"math"
	"testing"
)

func TestAddHemiHeadSatisfiesHemisphereEquation(t *testing.T) {
	h := HemisphericalBoreHead{EquatorDiameter: 0.02}
	poleZ := 0.1
	pts := h.AddHemiHead(poleZ)
	if len(pts) != 11 {
		t.Fatalf("len(pts) = %d, want 11", len(pts))
	}
	z0 := poleZ + h.EquatorDiameter/2
	R := h.EquatorDiameter / 2
	for i, p := range pts {
		got := (p.Diameter/2)*(p.Diameter/2) + (p.Position-z0)*(p.Position-z0)
		want := R * R
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("point %d: (d/2)^2+(z-z0)^2 = %v, want %v", i, got, want)
		}
		if p.Position < poleZ-1e-12 || p.Position > z0+1e-12 {
			t.Errorf("point %d position %v out of [poleZ,z0]=[%v,%v]", i, p.Position, poleZ, z0)
		}
	}
	last := pts[len(pts)-1]
	if math.Abs(last.Diameter-h.EquatorDiameter) > 1e-9 {
		t.Errorf("equator diameter = %v, want %v", last.Diameter, h.EquatorDiameter)
	}
	if math.Abs(last.Position-z0) > 1e-9 {
		t.Errorf("equator position = %v, want %v", last.Position, z0)
	}
}

func TestAddHemiHeadMonotonicDiameter(t *testing.T) {
	h := HemisphericalBoreHead{EquatorDiameter: 0.015}
	pts := h.AddHemiHead(0)
	for i := 1; i < len(pts); i++ {
		if pts[i].Diameter <= pts[i-1].Diameter {
			t.Errorf("diameter not strictly increasing at %d: %v <= %v", i, pts[i].Diameter, pts[i-1].Diameter)
		}
		if pts[i].Position <= pts[i-1].Position {
			t.Errorf("position not strictly increasing at %d: %v <= %v", i, pts[i].Position, pts[i-1].Position)
		}
	}
}

func TestSingleTaperHemiHeadObjectiveFunction(t *testing.T) {
	base := testBase(t)
	obj := NewSingleTaperHemiHead(base)
	x := []float64{2.0, 0.2, 0.3}
	if err := obj.SetGeometryPoint(x); err != nil {
		t.Fatalf("SetGeometryPoint: %v", err)
	}
	in := obj.Instrument
	n := len(in.BorePoints)
	if n != 13 {
		t.Fatalf("len(BorePoints) = %d, want 13 (10 interior + equator + taperEnd + foot)", n)
	}
	equator := in.BorePoints[10]
	taperEnd := in.BorePoints[11]
	foot := in.BorePoints[12]
	if equator.Diameter <= in.BorePoints[0].Diameter {
		t.Errorf("equator diameter %v not greater than first dome point %v", equator.Diameter, in.BorePoints[0].Diameter)
	}
	if taperEnd.Diameter != foot.Diameter {
		t.Errorf("taper end diameter %v != foot diameter %v (taper foot pair should be constant)", taperEnd.Diameter, foot.Diameter)
	}
	if foot.Diameter >= equator.Diameter {
		t.Errorf("foot diameter %v should be smaller than equator diameter %v for ratio %v", foot.Diameter, equator.Diameter, x[0])
	}

	// ratio recovers exactly; startFrac/lenFrac are only approximate once
	// the dome has replaced the head (see GetGeometryPoint doc comment).
	x1 := obj.GetGeometryPoint()
	if math.Abs(x1[0]-x[0]) > 1e-6 {
		t.Errorf("GetGeometryPoint()[0] (ratio) = %v, want %v", x1[0], x[0])
	}
	if x1[1] <= 0 || x1[1] >= 1 {
		t.Errorf("GetGeometryPoint()[1] (startFrac) = %v, want in (0,1)", x1[1])
	}
	if x1[2] <= 0 || x1[1]+x1[2] > 1 {
		t.Errorf("GetGeometryPoint()[2] (lenFrac) = %v, invalid given startFrac %v", x1[2], x1[1])
	}
}
