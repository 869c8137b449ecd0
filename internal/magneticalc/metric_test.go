package magneticalc

import (
	"context"
	"math"
	"testing"
)

func constantField(volume *SamplingVolume, v Vector3) []Vector3 {
	vectors := make([]Vector3, volume.Count())
	for i := range vectors {
		vectors[i] = v
	}
	return vectors
}

func TestParseMetricKind(t *testing.T) {
	for kind, name := range metricNames {
		got, err := ParseMetricKind(name)
		if err != nil || got != kind {
			t.Fatalf("roundtrip %q: got %v, err %v", name, got, err)
		}
	}
	if _, err := ParseMetricKind("Vorticity"); err == nil {
		t.Fatal("expected error for unknown metric")
	}
}

func TestComputeMetric_LengthMismatch(t *testing.T) {
	volume := newTestVolume(t, 2, nil)
	if _, err := ComputeMetric(MetricMagnitude, make([]Vector3, 3), volume); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestComputeMetric_Magnitudes(t *testing.T) {
	volume := newTestVolume(t, 2, nil)
	vectors := constantField(volume, Vector3{1, -2, 2})

	cases := []struct {
		kind MetricKind
		want Real
	}{
		{MetricMagnitude, 3},
		{MetricMagnitudeX, 1},
		{MetricMagnitudeY, 2}, // magnitudes are unsigned
		{MetricMagnitudeZ, 2},
		{MetricMagnitudeXY, math.Sqrt(5)},
		{MetricMagnitudeXZ, math.Sqrt(5)},
		{MetricMagnitudeYZ, math.Sqrt(8)},
	}
	for _, tc := range cases {
		m, err := ComputeMetric(tc.kind, vectors, volume)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range m.Values {
			if math.Abs(v-tc.want) > 1e-12 {
				t.Fatalf("%v at %d: %.12g, expected %.12g", tc.kind, i, v, tc.want)
			}
		}
	}
}

func TestComputeMetric_AnglesSigned(t *testing.T) {
	volume := newTestVolume(t, 2, nil)

	// Angle XY is atan2(x, y): +X maps to +π/2, -X to -π/2.
	m, err := ComputeMetric(MetricAngleXY, constantField(volume, Vector3{1, 0, 0}), volume)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Values[0]-math.Pi/2) > 1e-12 {
		t.Fatalf("angle = %.12g, expected π/2", m.Values[0])
	}

	m, _ = ComputeMetric(MetricAngleXY, constantField(volume, Vector3{-1, 0, 0}), volume)
	if math.Abs(m.Values[0]+math.Pi/2) > 1e-12 {
		t.Fatalf("angle = %.12g, expected -π/2", m.Values[0])
	}
}

func TestComputeMetric_DivergenceLinearField(t *testing.T) {
	volume := newTestVolume(t, 2, nil)

	// v = (x, 0, 0) has ∇·v = 1 exactly, for central and one-sided
	// differences alike.
	vectors := make([]Vector3, volume.Count())
	for i, p := range volume.Points {
		vectors[i] = Vector3{p.X, 0, 0}
	}

	m, err := ComputeMetric(MetricDivergence, vectors, volume)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Values {
		if math.Abs(v-1) > 1e-12 {
			t.Fatalf("divergence at %d: %.12g, expected 1", i, v)
		}
	}

	pos, _ := ComputeMetric(MetricDivergencePos, vectors, volume)
	neg, _ := ComputeMetric(MetricDivergenceNeg, vectors, volume)
	for i := range pos.Values {
		if math.Abs(pos.Values[i]-1) > 1e-12 || neg.Values[i] != 0 {
			t.Fatalf("clamped divergences at %d: +%g -%g", i, pos.Values[i], neg.Values[i])
		}
	}
}

func TestComputeMetric_DivergenceFreeB(t *testing.T) {
	// The discrete B of a current loop is nearly solenoidal away from the
	// wire; interior central differences should come out orders of
	// magnitude below the field scale.
	wire, _ := NewWire(CircularLoop(4, 64), 1)
	volume := newTestVolume(t, 8, nil)
	engine := NewFieldEngine(DefaultEngineConfig())

	field, err := engine.Compute(context.Background(), wire, volume, FieldRequest{B: true})
	if err != nil {
		t.Fatal(err)
	}
	m, err := ComputeMetric(MetricDivergence, field.B, volume)
	if err != nil {
		t.Fatal(err)
	}

	mag, _ := ComputeMetric(MetricMagnitude, field.B, volume)
	_, bMax, _ := mag.Range()
	dx, _, _ := volume.Spacing()

	for i := range m.Values {
		x, y, z := volume.indexToXYZ(i)
		interior := x > 0 && x < volume.Dimension[0]-1 &&
			y > 0 && y < volume.Dimension[1]-1 &&
			z > 0 && z < volume.Dimension[2]-1
		if !interior {
			continue
		}
		if math.Abs(m.Values[i]) > 1e-2*bMax/dx {
			t.Fatalf("interior divergence at %d too large: %g (field scale %g)", i, m.Values[i], bMax)
		}
	}
}

func TestComputeMetric_LogVariants(t *testing.T) {
	volume := newTestVolume(t, 2, nil)
	vectors := constantField(volume, Vector3{3, 4, 0})

	linear, _ := ComputeMetric(MetricMagnitude, vectors, volume)
	logged, err := ComputeMetric(MetricLogMagnitude, vectors, volume)
	if err != nil {
		t.Fatal(err)
	}
	for i := range logged.Values {
		if math.Abs(logged.Values[i]-math.Log10(linear.Values[i])) > 1e-12 {
			t.Fatalf("log metric at %d: %.12g vs log10(%.12g)", i, logged.Values[i], linear.Values[i])
		}
	}

	// Below the log floor the sentinel is -Inf, not an error.
	tiny, err := ComputeMetric(MetricLogMagnitude, constantField(volume, Vector3{}), volume)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(tiny.Values[0], -1) {
		t.Fatalf("log of zero magnitude = %v, expected -Inf", tiny.Values[0])
	}
}

func TestComputeMetric_ExcludedPointsNaN(t *testing.T) {
	constraints := []Constraint{{Norm: NormZ, Min: 0.25, Max: 10, Permeability: 0}}
	volume := newTestVolume(t, 2, constraints)
	vectors := constantField(volume, Vector3{1, 0, 0})

	for _, kind := range []MetricKind{MetricMagnitude, MetricDivergence, MetricLogMagnitude} {
		m, err := ComputeMetric(kind, vectors, volume)
		if err != nil {
			t.Fatal(err)
		}
		for i := range m.Values {
			if volume.Labels[i] == LabelExcluded && !math.IsNaN(m.Values[i]) {
				t.Fatalf("%v: excluded point %d = %v, expected NaN", kind, i, m.Values[i])
			}
			if volume.Labels[i] == LabelValid && math.IsNaN(m.Values[i]) {
				t.Fatalf("%v: valid point %d is NaN", kind, i)
			}
		}
	}
}

func TestMetricRange_SkipsSentinels(t *testing.T) {
	m := &Metric{Kind: MetricLogMagnitude, Values: []Real{math.NaN(), math.Inf(-1), -2, 3}}
	lo, hi, ok := m.Range()
	if !ok || lo != -2 || hi != 3 {
		t.Fatalf("range = [%g, %g] ok=%v, expected [-2, 3]", lo, hi, ok)
	}

	empty := &Metric{Values: []Real{math.NaN()}}
	if _, _, ok := empty.Range(); ok {
		t.Fatal("expected ok=false for all-sentinel metric")
	}
}
