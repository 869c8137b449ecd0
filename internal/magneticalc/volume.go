package magneticalc

import (
	"math"
)

// Label classifies a grid point.
type Label uint8

const (
	LabelValid Label = iota
	LabelExcluded
)

// SamplingVolume is a labeled 3D grid of field evaluation points over a
// bounding box. Iteration order is row-major with X fastest; that order is
// the canonical index all field and metric arrays align to.
//
// Resolution is in points per unit length and may be fractional; axes whose
// extent is not an integer multiple of the step end up with near- but not
// exactly equidistant spacing (the step is shrunk to fit, never stretched).
type SamplingVolume struct {
	BoundsMin, BoundsMax Point3
	Resolution           Vector3
	Dimension            [3]int

	Points          []Point3
	Permeabilities  []Real
	Labels          []Label
	NeighborIndices [][6]int

	spacing [3]Real // actual per-axis spacing (0 on single-point axes)
}

// NewSamplingVolume builds the grid and applies the constraints in list
// order (last write wins); unmatched points keep µ_r = 1 and LabelValid.
// A constraint permeability of 0 marks its points LabelExcluded; the grid
// keeps its full nx*ny*nz cardinality regardless.
func NewSamplingVolume(bmin, bmax Point3, resolution Vector3, constraints []Constraint) (*SamplingVolume, error) {
	if resolution.X <= 0 || resolution.Y <= 0 || resolution.Z <= 0 {
		return nil, ErrInvalidResolution
	}

	extent := bmax.Sub(bmin)
	res := [3]Real{resolution.X, resolution.Y, resolution.Z}
	ext := [3]Real{extent.X, extent.Y, extent.Z}

	var dim [3]int
	var spacing [3]Real
	for i := 0; i < 3; i++ {
		if ext[i] < 0 {
			return nil, ErrDegenerateVolume
		}
		steps := int(math.Ceil(ext[i]*res[i])) + 1
		dim[i] = steps
		if steps > 1 {
			spacing[i] = ext[i] / Real(steps-1)
			if Real(steps-1) != ext[i]*res[i] {
				DebugLogOnce("Fractional resolution: grid spacing shrunk to fit the extent")
			}
		}
	}

	n64 := int64(dim[0]) * int64(dim[1]) * int64(dim[2])
	if n64 > MaxGridPoints {
		return nil, ErrResourceExhausted
	}
	n := int(n64)

	v := &SamplingVolume{
		BoundsMin:       bmin,
		BoundsMax:       bmax,
		Resolution:      resolution,
		Dimension:       dim,
		Points:          make([]Point3, n),
		Permeabilities:  make([]Real, n),
		Labels:          make([]Label, n),
		NeighborIndices: make([][6]int, n),
		spacing:         spacing,
	}

	bminArr := [3]Real{bmin.X, bmin.Y, bmin.Z}
	for i := 0; i < n; i++ {
		x, y, z := v.indexToXYZ(i)
		p := Point3{
			X: bminArr[0] + spacing[0]*Real(x),
			Y: bminArr[1] + spacing[1]*Real(y),
			Z: bminArr[2] + spacing[2]*Real(z),
		}
		v.Points[i] = p

		permeability := Real(1) // vacuum for unconstrained points
		for _, c := range constraints {
			if c.Evaluate(p) {
				permeability = c.Permeability
			}
		}
		v.Permeabilities[i] = permeability
		if permeability == 0 {
			v.Labels[i] = LabelExcluded
		}
	}

	// Neighborhoods for the finite-difference metrics; -1 marks a missing
	// or excluded neighbor (one-sided differences at the boundary).
	for i := 0; i < n; i++ {
		x, y, z := v.indexToXYZ(i)
		neighborhood := [6]int{
			v.xyzToIndex(x+1, y, z),
			v.xyzToIndex(x, y+1, z),
			v.xyzToIndex(x, y, z+1),
			v.xyzToIndex(x-1, y, z),
			v.xyzToIndex(x, y-1, z),
			v.xyzToIndex(x, y, z-1),
		}
		for j, ni := range neighborhood {
			if ni >= 0 && v.Labels[ni] == LabelExcluded {
				neighborhood[j] = -1
			}
		}
		v.NeighborIndices[i] = neighborhood
	}

	DebugLog("Created sampling volume: dim=(%d, %d, %d), %d points, %d constraints",
		dim[0], dim[1], dim[2], n, len(constraints))
	return v, nil
}

// Count returns the number of grid points (nx*ny*nz).
func (v *SamplingVolume) Count() int { return len(v.Points) }

// Spacing returns the actual per-axis grid spacing. Single-point axes
// report the nominal step 1/resolution.
func (v *SamplingVolume) Spacing() (dx, dy, dz Real) {
	s := v.spacing
	res := [3]Real{v.Resolution.X, v.Resolution.Y, v.Resolution.Z}
	for i := 0; i < 3; i++ {
		if v.Dimension[i] == 1 {
			s[i] = 1 / res[i]
		}
	}
	return s[0], s[1], s[2]
}

// CellVolume returns the volume element dV in cubic metres, using the
// actual grid spacing and the engine length scale.
func (v *SamplingVolume) CellVolume(lengthScale Real) Real {
	dx, dy, dz := v.Spacing()
	return dx * lengthScale * dy * lengthScale * dz * lengthScale
}

func (v *SamplingVolume) indexToXYZ(i int) (x, y, z int) {
	x = i % v.Dimension[0]
	y = (i / v.Dimension[0]) % v.Dimension[1]
	z = i / (v.Dimension[0] * v.Dimension[1])
	return
}

func (v *SamplingVolume) xyzToIndex(x, y, z int) int {
	if x < 0 || x >= v.Dimension[0] || y < 0 || y >= v.Dimension[1] || z < 0 || z >= v.Dimension[2] {
		return -1
	}
	return x + y*v.Dimension[0] + z*v.Dimension[0]*v.Dimension[1]
}

// NearestBounds snaps a bounding box outward to integer grid coordinates,
// e.g. to fully enclose a wire curve.
func NearestBounds(bmin, bmax Point3) (Point3, Point3) {
	return Point3{math.Floor(bmin.X), math.Floor(bmin.Y), math.Floor(bmin.Z)},
		Point3{math.Ceil(bmax.X), math.Ceil(bmax.Y), math.Ceil(bmax.Z)}
}

// PadBounds symmetrically grows (or, with negative padding, shrinks) a
// bounding box, snapping the padding outward to integer grid coordinates.
func PadBounds(bmin, bmax Point3, padding Vector3) (Point3, Point3) {
	return Point3{bmin.X - math.Floor(padding.X), bmin.Y - math.Floor(padding.Y), bmin.Z - math.Floor(padding.Z)},
		Point3{bmax.X + math.Ceil(padding.X), bmax.Y + math.Ceil(padding.Y), bmax.Z + math.Ceil(padding.Z)}
}
