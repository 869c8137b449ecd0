package magneticalc

import (
	"math"
	"testing"
)

func TestParseNormKind(t *testing.T) {
	for kind, name := range normNames {
		got, err := ParseNormKind(name)
		if err != nil || got != kind {
			t.Fatalf("roundtrip %q: got %v, err %v", name, got, err)
		}
	}
	if _, err := ParseNormKind("Manhattan"); err == nil {
		t.Fatal("expected error for unknown norm")
	}
}

func TestNorm_Values(t *testing.T) {
	v := Vector3{1, -2, 2}
	cases := []struct {
		kind NormKind
		want Real
	}{
		{NormX, 1},
		{NormY, -2}, // axis norms keep their sign
		{NormZ, 2},
		{NormRadiusXY, math.Sqrt(5)},
		{NormRadiusXZ, math.Sqrt(5)},
		{NormRadiusYZ, math.Sqrt(8)},
		{NormRadius, 3},
		{NormAngleXY, math.Atan2(1, -2)},
		{NormAngleXZ, math.Atan2(1, 2)},
		{NormAngleYZ, math.Atan2(-2, 2)},
	}
	for _, tc := range cases {
		if got := tc.kind.norm(v); math.Abs(got-tc.want) > 1e-15 {
			t.Fatalf("%v = %.15g, expected %.15g", tc.kind, got, tc.want)
		}
	}
}

func TestConstraint_SignedRange(t *testing.T) {
	// A signed X window only matches the negative slab.
	c := Constraint{Norm: NormX, Min: -1, Max: -0.5, Permeability: 2}
	if !c.Evaluate(Point3{-0.75, 5, 5}) {
		t.Fatal("point inside the slab rejected")
	}
	if c.Evaluate(Point3{0.75, 0, 0}) {
		t.Fatal("mirrored point accepted")
	}
	// Interval ends are inclusive.
	if !c.Evaluate(Point3{-1, 0, 0}) || !c.Evaluate(Point3{-0.5, 0, 0}) {
		t.Fatal("interval ends not inclusive")
	}
}

func TestConstraint_AngleDegrees(t *testing.T) {
	// Angle constraints compare in degrees, wrapped to [0, 360).
	c := Constraint{Norm: NormAngleXY, Min: 80, Max: 100, Permeability: 1}
	if !c.Evaluate(Point3{1, 0, 0}) { // atan2(1, 0) = 90°
		t.Fatal("90° point rejected")
	}
	if c.Evaluate(Point3{0, 1, 0}) { // 0°
		t.Fatal("0° point accepted")
	}

	// Negative angles wrap: -90° compares as 270°.
	wrapped := Constraint{Norm: NormAngleXY, Min: 260, Max: 280, Permeability: 1}
	if !wrapped.Evaluate(Point3{-1, 0, 0}) {
		t.Fatal("270° point rejected")
	}
}

func TestConstraint_RadiusShell(t *testing.T) {
	c := Constraint{Norm: NormRadius, Min: 1, Max: 2, Permeability: 0}
	if c.Evaluate(Point3{0.5, 0, 0}) || c.Evaluate(Point3{0, 0, 3}) {
		t.Fatal("points outside the shell accepted")
	}
	if !c.Evaluate(Point3{0, 1.5, 0}) {
		t.Fatal("point inside the shell rejected")
	}
}
