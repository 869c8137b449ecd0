package magneticalc

import "math"

// Constraint assigns a relative permeability µ_r to every sampling volume
// point whose selected norm lies in [Min, Max]. Angle norms compare in
// degrees, wrapped to [0, 360). A permeability of 0 excludes the matched
// points from the computation.
type Constraint struct {
	Norm         NormKind
	Min, Max     Real
	Permeability Real
}

// Evaluate this constraint at some point.
func (c Constraint) Evaluate(p Point3) bool {
	value := c.Norm.norm(p.Vec())
	if c.Norm.IsAngle() {
		// Convert signed radians to degrees in [0, 360)
		value = value * 180 / math.Pi
		if value < 0 {
			value += 360
		}
	}
	return c.Min <= value && value <= c.Max
}
