package magneticalc

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Run executes a full project: build the wire and sampling volume, compute
// the requested fields, derive the scalar quantities and write the
// configured exports. It blocks until done or ctx is cancelled.
func Run(ctx context.Context, cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	wire, err := cfg.Wire.BuildWire()
	if err != nil {
		return err
	}

	volume, err := cfg.Volume.BuildVolume(wire)
	if err != nil {
		return err
	}

	engineCfg := cfg.Engine.EngineConfig()
	engineCfg.Progress = func(percent float64) {
		fmt.Printf("[PROGRESS] %.2f%%\n", percent)
	}
	engine := NewFieldEngine(engineCfg)
	if engine.Degraded() {
		fmt.Printf("[WARNING] strategy %q unavailable, using %s\n", engineCfg.Strategy, engine.Strategy())
	}

	start := time.Now()
	field, err := engine.Compute(ctx, wire, volume, FieldRequest{A: cfg.ComputeA, B: cfg.ComputeB})
	if err != nil {
		return err
	}
	DebugLog("Field: %d points x %d elements, time: %s", volume.Count(), len(wire.Points)-1, time.Since(start))

	derived, err := ComputeDerived(wire, volume, field, engineCfg)
	if err != nil && !errors.Is(err, ErrDivisionByZero) {
		return err
	}

	metricKind, err := ParseMetricKind(cfg.Output.Metric)
	if err != nil {
		return err
	}
	vectors := field.B
	if vectors == nil {
		vectors = field.A
	}
	metric, err := ComputeMetric(metricKind, vectors, volume)
	if err != nil {
		return err
	}

	if cfg.Output.Container != "" {
		if err := SaveContainer(cfg.Output.Container, BuildContainer(wire, volume, field)); err != nil {
			return err
		}
		DebugLog("Saved container: %s", cfg.Output.Container)
	}
	if cfg.Output.WireTXT != "" {
		if err := SaveWireTXT(cfg.Output.WireTXT, wire.Points); err != nil {
			return err
		}
		DebugLog("Saved wire: %s", cfg.Output.WireTXT)
	}
	if cfg.Output.Heatmap != "" {
		zIndex := -1
		if cfg.Output.HeatmapSlice != nil {
			zIndex = *cfg.Output.HeatmapSlice
		}
		if err := SaveMetricHeatmap(cfg.Output.Heatmap, volume, metric, zIndex); err != nil {
			return err
		}
		DebugLog("Saved heatmap: %s", cfg.Output.Heatmap)
	}

	if cfg.Output.Profile {
		fmt.Println(FieldProfile(volume, metric, cfg.Output.ProfileRows))
	}
	if cfg.Output.Summary {
		fmt.Println(FormatSummary(wire, volume, field, derived))
	}

	return nil
}
