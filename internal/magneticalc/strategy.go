package magneticalc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PointAccumulator sums the raw (unscaled) Biot-Savart contribution of all
// current elements at a single sampling point. The result is scaled by
// I*µ0/4π and the local µ_r afterwards. limited counts element distances
// that were clamped to the distance limit.
type PointAccumulator func(p Point3, want FieldRequest) (a, b Vector3, limited int)

// ReductionStrategy is how the inner element reduction is executed. All
// strategies are numerically equivalent within floating-point tolerance;
// they only differ in summation order and throughput.
type ReductionStrategy interface {
	Name() string
	Available() bool
	// Prepare returns a per-worker accumulator. Each worker gets its own,
	// so accumulators may carry scratch state.
	Prepare(elements []CurrentElement, lengthScale, distanceLimit Real) PointAccumulator
}

const (
	StrategyAuto      = "auto"
	StrategyReference = "reference"
	StrategyBatched   = "batched"
)

// selectStrategy resolves a strategy name. An unavailable or unknown
// request falls back to the reference strategy exactly once; the returned
// error is ErrAccelerationUnavailable-wrapped and informational, the
// strategy is always usable.
func selectStrategy(name string) (ReductionStrategy, error) {
	if name == "" {
		name = StrategyAuto
	}
	if NoAccel {
		return &referenceStrategy{}, nil
	}
	switch name {
	case StrategyReference:
		return &referenceStrategy{}, nil
	case StrategyAuto, StrategyBatched:
		s := &batchedStrategy{}
		if s.Available() {
			return s, nil
		}
		return &referenceStrategy{}, ErrAccelerationUnavailable
	default:
		return &referenceStrategy{}, ErrAccelerationUnavailable
	}
}

// referenceStrategy is the portable, always-available scalar loop.
type referenceStrategy struct{}

func (s *referenceStrategy) Name() string    { return StrategyReference }
func (s *referenceStrategy) Available() bool { return true }

func (s *referenceStrategy) Prepare(elements []CurrentElement, lengthScale, distanceLimit Real) PointAccumulator {
	return func(p Point3, want FieldRequest) (a, b Vector3, limited int) {
		for _, e := range elements {
			d := p.Sub(e.Center).Mul(lengthScale)
			dist := d.Len()
			if dist < distanceLimit {
				dist = distanceLimit
				limited++
			}
			l := e.Direction.Mul(lengthScale)
			if want.A {
				a = a.Add(l.Mul(1 / dist))
			}
			if want.B {
				b = b.Add(l.Cross(d).Mul(1 / (dist * dist * dist)))
			}
		}
		return a, b, limited
	}
}

// batchedStrategy vectorizes the element reduction over flat slices:
// per-element contributions are deposited into scratch arrays in one pass
// and reduced with a single flat sum per component.
type batchedStrategy struct{}

func (s *batchedStrategy) Name() string    { return StrategyBatched }
func (s *batchedStrategy) Available() bool { return true }

func (s *batchedStrategy) Prepare(elements []CurrentElement, lengthScale, distanceLimit Real) PointAccumulator {
	n := len(elements)
	cx, cy, cz := make([]Real, n), make([]Real, n), make([]Real, n)
	lx, ly, lz := make([]Real, n), make([]Real, n), make([]Real, n)
	for j, e := range elements {
		cx[j], cy[j], cz[j] = e.Center.X, e.Center.Y, e.Center.Z
		// Direction is pre-scaled once; the distance vector is scaled per point.
		lx[j], ly[j], lz[j] = e.Direction.X*lengthScale, e.Direction.Y*lengthScale, e.Direction.Z*lengthScale
	}

	sax, say, saz := make([]Real, n), make([]Real, n), make([]Real, n)
	sbx, sby, sbz := make([]Real, n), make([]Real, n), make([]Real, n)

	return func(p Point3, want FieldRequest) (a, b Vector3, limited int) {
		for j := 0; j < n; j++ {
			dx := (p.X - cx[j]) * lengthScale
			dy := (p.Y - cy[j]) * lengthScale
			dz := (p.Z - cz[j]) * lengthScale
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if dist < distanceLimit {
				dist = distanceLimit
				limited++
			}
			if want.A {
				inv := 1 / dist
				sax[j] = lx[j] * inv
				say[j] = ly[j] * inv
				saz[j] = lz[j] * inv
			}
			if want.B {
				inv3 := 1 / (dist * dist * dist)
				sbx[j] = (ly[j]*dz - lz[j]*dy) * inv3
				sby[j] = (lz[j]*dx - lx[j]*dz) * inv3
				sbz[j] = (lx[j]*dy - ly[j]*dx) * inv3
			}
		}
		if want.A {
			a = Vector3{floats.Sum(sax), floats.Sum(say), floats.Sum(saz)}
		}
		if want.B {
			b = Vector3{floats.Sum(sbx), floats.Sum(sby), floats.Sum(sbz)}
		}
		return a, b, limited
	}
}
