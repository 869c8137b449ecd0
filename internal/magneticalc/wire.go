package magneticalc

import (
	"math"
)

// CurrentElement is a short straight wire segment treated as a differential
// source in the Biot-Savart sum.
type CurrentElement struct {
	Center    Point3
	Direction Vector3
}

// Wire is a 3D piecewise linear curve with some DC current associated with it.
// A Wire is immutable once built; transforms return a new Wire.
type Wire struct {
	Points  []Point3
	Current Real
}

// NewWire validates and constructs a wire from its point sequence.
func NewWire(points []Point3, current Real) (*Wire, error) {
	if len(points) < 2 {
		return nil, ErrInvalidGeometry
	}
	w := &Wire{Points: append([]Point3(nil), points...), Current: current}
	DebugLog("Created wire: %d points, current=%.3f A", len(w.Points), current)
	return w, nil
}

// Elements returns the ordered current elements, one per consecutive point
// pair: segment midpoint plus the difference vector between its endpoints.
func (w *Wire) Elements() []CurrentElement {
	elements := make([]CurrentElement, 0, len(w.Points)-1)
	for i := 0; i < len(w.Points)-1; i++ {
		dir := w.Points[i+1].Sub(w.Points[i])
		center := w.Points[i].Add(dir.Mul(0.5))
		elements = append(elements, CurrentElement{Center: center, Direction: dir})
	}
	return elements
}

// Bounds returns this curve's bounding box.
func (w *Wire) Bounds() (bmin, bmax Point3) {
	bmin, bmax = w.Points[0], w.Points[0]
	for _, p := range w.Points[1:] {
		bmin.X = math.Min(bmin.X, p.X)
		bmin.Y = math.Min(bmin.Y, p.Y)
		bmin.Z = math.Min(bmin.Z, p.Z)
		bmax.X = math.Max(bmax.X, p.X)
		bmax.Y = math.Max(bmax.Y, p.Y)
		bmax.Z = math.Max(bmax.Z, p.Z)
	}
	return
}

// Stretched stretches (and/or mirrors) this curve by some factor in each
// direction. Use +1 / -1 to retain / mirror the curve along an axis.
func (w *Wire) Stretched(factor Vector3) *Wire {
	points := make([]Point3, len(w.Points))
	for i, p := range w.Points {
		points[i] = Point3{p.X * factor.X, p.Y * factor.Y, p.Z * factor.Z}
	}
	return &Wire{Points: points, Current: w.Current}
}

// RotationalSymmetry replicates and rotates this curve count times about an
// axis (0=X, 1=Y, 2=Z) with the given radius, closing the resulting loop.
func (w *Wire) RotationalSymmetry(count int, radius Real, axis int) *Wire {
	if count < 1 {
		count = 1
	}
	axis = ((axis % 3) + 3) % 3

	get := func(p Point3, i int) Real {
		switch i {
		case 0:
			return p.X
		case 1:
			return p.Y
		default:
			return p.Z
		}
	}
	other1 := (axis + 1) % 3
	other2 := (axis + 2) % 3

	points := make([]Point3, 0, count*len(w.Points)+1)
	for c := 0; c < count; c++ {
		a := 2 * math.Pi * Real(c) / Real(count)
		sin, cos := math.Sin(a), math.Cos(a)
		for _, p := range w.Points {
			u := get(p, other1)
			v := get(p, other2) + radius
			points = append(points, Point3{
				X: u*sin - v*cos,
				Y: u*cos + v*sin,
				Z: get(p, axis),
			})
		}
	}
	// Close the resulting loop
	points = append(points, points[0])

	return &Wire{Points: points, Current: w.Current}
}

// Sliced subdivides wire segments into smaller ones until segment lengths
// equal or undershoot the given limit.
func (w *Wire) Sliced(limit Real) (*Wire, error) {
	if limit <= 0 {
		return nil, ErrInvalidResolution
	}

	points := make([]Point3, 0, len(w.Points))
	for i := 0; i < len(w.Points)-1; i++ {
		dir := w.Points[i+1].Sub(w.Points[i])
		slices := int(math.Ceil(dir.Len() / limit))
		if slices < 1 {
			slices = 1
		}
		for j := 0; j < slices; j++ {
			points = append(points, w.Points[i].Add(dir.Mul(Real(j)/Real(slices))))
		}
	}
	points = append(points, w.Points[len(w.Points)-1])

	DebugLog("Sliced wire: %d -> %d points (limit=%.4f)", len(w.Points), len(points), limit)
	return &Wire{Points: points, Current: w.Current}, nil
}
