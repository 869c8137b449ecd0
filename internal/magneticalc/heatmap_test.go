package magneticalc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveMetricHeatmap(t *testing.T) {
	wire, _ := NewWire(CircularLoop(1, 32), 1)
	volume := newTestVolume(t, 2, nil)
	engine := NewFieldEngine(DefaultEngineConfig())
	field, err := engine.Compute(context.Background(), wire, volume, FieldRequest{B: true})
	if err != nil {
		t.Fatal(err)
	}
	metric, err := ComputeMetric(MetricLogMagnitude, field.B, volume)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "plots", "heatmap.png")
	if err := SaveMetricHeatmap(path, volume, metric, -1); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("empty heatmap file")
	}

	if err := SaveMetricHeatmap(path, volume, metric, volume.Dimension[2]); err == nil {
		t.Fatal("expected error for out-of-range slice index")
	}
}
