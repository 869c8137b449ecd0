package magneticalc

import (
	"fmt"
	"math"
)

// NormKind selects a scalar norm of a 3D vector. The same norms serve both
// constraint evaluation (on grid point positions) and the magnitude/angle
// display metrics (on field vectors).
type NormKind int

const (
	NormX NormKind = iota
	NormY
	NormZ
	NormRadiusXY
	NormRadiusXZ
	NormRadiusYZ
	NormRadius
	NormAngleXY
	NormAngleXZ
	NormAngleYZ
)

var normNames = map[NormKind]string{
	NormX:        "X",
	NormY:        "Y",
	NormZ:        "Z",
	NormRadiusXY: "Radius XY",
	NormRadiusXZ: "Radius XZ",
	NormRadiusYZ: "Radius YZ",
	NormRadius:   "Radius",
	NormAngleXY:  "Angle XY",
	NormAngleXZ:  "Angle XZ",
	NormAngleYZ:  "Angle YZ",
}

func (n NormKind) String() string {
	if s, ok := normNames[n]; ok {
		return s
	}
	return fmt.Sprintf("NormKind(%d)", int(n))
}

// ParseNormKind maps a norm name (as used in project files) to its kind.
func ParseNormKind(s string) (NormKind, error) {
	for k, name := range normNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown norm %q", s)
}

// IsAngle reports whether the norm is an angle (radians, range (-π, π]).
func (n NormKind) IsAngle() bool {
	return n == NormAngleXY || n == NormAngleXZ || n == NormAngleYZ
}

// norm evaluates the selected norm of a vector. Angle norms return the
// signed angle of the projection onto the named plane.
func (n NormKind) norm(v Vector3) Real {
	switch n {
	case NormX:
		return v.X
	case NormY:
		return v.Y
	case NormZ:
		return v.Z
	case NormRadiusXY:
		return math.Sqrt(v.X*v.X + v.Y*v.Y)
	case NormRadiusXZ:
		return math.Sqrt(v.X*v.X + v.Z*v.Z)
	case NormRadiusYZ:
		return math.Sqrt(v.Y*v.Y + v.Z*v.Z)
	case NormRadius:
		return v.Len()
	case NormAngleXY:
		return math.Atan2(v.X, v.Y)
	case NormAngleXZ:
		return math.Atan2(v.X, v.Z)
	case NormAngleYZ:
		return math.Atan2(v.Y, v.Z)
	}
	return math.NaN()
}
