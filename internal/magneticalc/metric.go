package magneticalc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MetricKind is the closed set of scalar display metrics derivable from a
// vector field.
type MetricKind int

const (
	MetricMagnitude MetricKind = iota
	MetricMagnitudeX
	MetricMagnitudeY
	MetricMagnitudeZ
	MetricMagnitudeXY
	MetricMagnitudeXZ
	MetricMagnitudeYZ
	MetricAngleXY
	MetricAngleXZ
	MetricAngleYZ
	MetricDivergence
	MetricDivergencePos
	MetricDivergenceNeg
	MetricLogMagnitude
	MetricLogMagnitudeX
	MetricLogMagnitudeY
	MetricLogMagnitudeZ
	MetricLogMagnitudeXY
	MetricLogMagnitudeXZ
	MetricLogMagnitudeYZ
	MetricLogDivergence
	MetricLogDivergencePos
	MetricLogDivergenceNeg
)

var metricNames = map[MetricKind]string{
	MetricMagnitude:        "Magnitude",
	MetricMagnitudeX:       "Magnitude X",
	MetricMagnitudeY:       "Magnitude Y",
	MetricMagnitudeZ:       "Magnitude Z",
	MetricMagnitudeXY:      "Magnitude XY",
	MetricMagnitudeXZ:      "Magnitude XZ",
	MetricMagnitudeYZ:      "Magnitude YZ",
	MetricAngleXY:          "Angle XY",
	MetricAngleXZ:          "Angle XZ",
	MetricAngleYZ:          "Angle YZ",
	MetricDivergence:       "Divergence",
	MetricDivergencePos:    "Divergence+",
	MetricDivergenceNeg:    "Divergence-",
	MetricLogMagnitude:     "Log Magnitude",
	MetricLogMagnitudeX:    "Log Magnitude X",
	MetricLogMagnitudeY:    "Log Magnitude Y",
	MetricLogMagnitudeZ:    "Log Magnitude Z",
	MetricLogMagnitudeXY:   "Log Magnitude XY",
	MetricLogMagnitudeXZ:   "Log Magnitude XZ",
	MetricLogMagnitudeYZ:   "Log Magnitude YZ",
	MetricLogDivergence:    "Log Divergence",
	MetricLogDivergencePos: "Log Divergence+",
	MetricLogDivergenceNeg: "Log Divergence-",
}

func (m MetricKind) String() string {
	if s, ok := metricNames[m]; ok {
		return s
	}
	return fmt.Sprintf("MetricKind(%d)", int(m))
}

// ParseMetricKind maps a metric name (as used in project files) to its kind.
func ParseMetricKind(s string) (MetricKind, error) {
	for k, name := range metricNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", s)
}

// base resolves a Log variant to its underlying metric.
func (m MetricKind) base() (MetricKind, bool) {
	switch m {
	case MetricLogMagnitude:
		return MetricMagnitude, true
	case MetricLogMagnitudeX:
		return MetricMagnitudeX, true
	case MetricLogMagnitudeY:
		return MetricMagnitudeY, true
	case MetricLogMagnitudeZ:
		return MetricMagnitudeZ, true
	case MetricLogMagnitudeXY:
		return MetricMagnitudeXY, true
	case MetricLogMagnitudeXZ:
		return MetricMagnitudeXZ, true
	case MetricLogMagnitudeYZ:
		return MetricMagnitudeYZ, true
	case MetricLogDivergence:
		return MetricDivergence, true
	case MetricLogDivergencePos:
		return MetricDivergencePos, true
	case MetricLogDivergenceNeg:
		return MetricDivergenceNeg, true
	}
	return m, false
}

// Metric is a per-point scalar array, parallel to the sampling volume's
// grid points, tagged with the kind that produced it. Excluded points
// carry NaN; logarithms of non-positive arguments carry -Inf. Both are
// renderer-tolerable sentinels, never errors.
type Metric struct {
	Kind   MetricKind
	Values []Real
}

// ComputeMetric maps a vector field (A or B, co-indexed with the volume's
// grid points) to the selected scalar metric.
//
// The divergence metrics use central differences on the grid neighborhoods
// and fall back to one-sided differences at the volume boundary, where the
// estimate is known to be less accurate. Logarithms are base 10.
func ComputeMetric(kind MetricKind, vectors []Vector3, volume *SamplingVolume) (*Metric, error) {
	if len(vectors) != volume.Count() {
		return nil, fmt.Errorf("field/grid length mismatch: %d != %d", len(vectors), volume.Count())
	}

	base, isLog := kind.base()
	values := make([]Real, len(vectors))

	switch base {
	case MetricMagnitude, MetricMagnitudeX, MetricMagnitudeY, MetricMagnitudeZ,
		MetricMagnitudeXY, MetricMagnitudeXZ, MetricMagnitudeYZ,
		MetricAngleXY, MetricAngleXZ, MetricAngleYZ:
		n := metricNorm(base)
		for i, v := range vectors {
			if volume.Labels[i] == LabelExcluded {
				values[i] = math.NaN()
				continue
			}
			value := n.norm(v)
			if !n.IsAngle() {
				// Magnitude metrics are norms of projections, never signed.
				value = math.Abs(value)
			}
			values[i] = value
		}

	case MetricDivergence, MetricDivergencePos, MetricDivergenceNeg:
		divergence(vectors, volume, values)
		switch base {
		case MetricDivergencePos:
			for i, v := range values {
				values[i] = math.Max(v, 0)
			}
		case MetricDivergenceNeg:
			for i, v := range values {
				values[i] = math.Min(v, 0)
			}
		}

	default:
		return nil, fmt.Errorf("unknown metric %v", kind)
	}

	if isLog {
		for i, v := range values {
			values[i] = log10Magnitude(v)
		}
	}

	return &Metric{Kind: kind, Values: values}, nil
}

// metricNorm maps a magnitude/angle metric to the shared vector norm.
func metricNorm(base MetricKind) NormKind {
	switch base {
	case MetricMagnitudeX:
		return NormX
	case MetricMagnitudeY:
		return NormY
	case MetricMagnitudeZ:
		return NormZ
	case MetricMagnitudeXY:
		return NormRadiusXY
	case MetricMagnitudeXZ:
		return NormRadiusXZ
	case MetricMagnitudeYZ:
		return NormRadiusYZ
	case MetricAngleXY:
		return NormAngleXY
	case MetricAngleXZ:
		return NormAngleXZ
	case MetricAngleYZ:
		return NormAngleYZ
	}
	return NormRadius
}

// divergence estimates ∇·field at every grid point from its neighborhood.
func divergence(vectors []Vector3, volume *SamplingVolume, out []Real) {
	dx, dy, dz := volume.Spacing()
	spacing := [3]Real{dx, dy, dz}

	component := func(v Vector3, axis int) Real {
		switch axis {
		case 0:
			return v.X
		case 1:
			return v.Y
		default:
			return v.Z
		}
	}

	for i := range vectors {
		if volume.Labels[i] == LabelExcluded {
			out[i] = math.NaN()
			continue
		}
		neighborhood := volume.NeighborIndices[i]
		var div Real
		for axis := 0; axis < 3; axis++ {
			plus, minus := neighborhood[axis], neighborhood[axis+3]
			h := spacing[axis]
			switch {
			case plus >= 0 && minus >= 0:
				div += (component(vectors[plus], axis) - component(vectors[minus], axis)) / (2 * h)
			case plus >= 0:
				div += (component(vectors[plus], axis) - component(vectors[i], axis)) / h
			case minus >= 0:
				div += (component(vectors[i], axis) - component(vectors[minus], axis)) / h
			}
		}
		out[i] = div
	}
}

// log10Magnitude is the shared Log-variant transform: log10 of the value's
// magnitude, -Inf below the minimum argument, NaN passed through.
func log10Magnitude(v Real) Real {
	if math.IsNaN(v) {
		return v
	}
	m := math.Abs(v)
	if m < LogNormMinimum {
		return math.Inf(-1)
	}
	return math.Log10(m)
}

// Range returns the smallest and largest finite metric values, skipping
// the NaN/-Inf sentinels. ok is false when no finite value exists.
func (m *Metric) Range() (lo, hi Real, ok bool) {
	finite := make([]Real, 0, len(m.Values))
	for _, v := range m.Values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	return floats.Min(finite), floats.Max(finite), true
}
