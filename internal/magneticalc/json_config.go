package magneticalc

import (
	"encoding/json"
	"fmt"
	"os"
)

type RotSymCfg struct {
	Count  int  `json:"count"`
	Radius Real `json:"radius"`
	Axis   int  `json:"axis"`
}

type WireCfg struct {
	Preset string   `json:"preset,omitempty"`
	File   string   `json:"file,omitempty"`
	Points []Point3 `json:"points,omitempty"`
	// Current is a pointer so an explicit 0 A survives defaulting.
	Current *Real `json:"current,omitempty"`

	Stretch            *Vector3   `json:"stretch,omitempty"`
	RotationalSymmetry *RotSymCfg `json:"rotationalSymmetry,omitempty"`
	SlicerLimit        Real       `json:"slicerLimit,omitempty"`
}

type ConstraintCfg struct {
	Norm         string `json:"norm"`
	Min          Real   `json:"min"`
	Max          Real   `json:"max"`
	Permeability Real   `json:"permeability"`
}

type VolumeCfg struct {
	BoundsMin *Point3 `json:"boundsMin,omitempty"`
	BoundsMax *Point3 `json:"boundsMax,omitempty"`
	// Padding grows the automatic wire-fitted bounds; ignored when explicit
	// bounds are given.
	Padding *Vector3 `json:"padding,omitempty"`

	Resolution    Real            `json:"resolution,omitempty"`
	ResolutionXYZ *Vector3        `json:"resolutionXYZ,omitempty"`
	Constraints   []ConstraintCfg `json:"constraints,omitempty"`
}

type EngineCfg struct {
	Strategy      string `json:"strategy,omitempty"`
	Workers       int    `json:"workers,omitempty"`
	DistanceLimit Real   `json:"distanceLimit,omitempty"`
	LengthScale   Real   `json:"lengthScale,omitempty"`
}

type OutputCfg struct {
	Container string `json:"container,omitempty"`
	WireTXT   string `json:"wireTxt,omitempty"`

	Metric       string `json:"metric,omitempty"`
	Heatmap      string `json:"heatmap,omitempty"`
	HeatmapSlice *int   `json:"heatmapSlice,omitempty"` // Z slice index; defaults to the middle

	Profile     bool `json:"profile,omitempty"` // terminal |B| profile along X through the volume center
	Summary     bool `json:"summary,omitempty"`
	ProfileRows int  `json:"profileRows,omitempty"`
}

type Config struct {
	Wire   WireCfg   `json:"wire"`
	Volume VolumeCfg `json:"volume"`
	Engine EngineCfg `json:"engine,omitempty"`

	ComputeA bool `json:"computeA,omitempty"`
	ComputeB bool `json:"computeB"`

	Output OutputCfg `json:"output,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Defaults / validation
	if cfg.Wire.Preset == "" && cfg.Wire.File == "" && len(cfg.Wire.Points) == 0 {
		return nil, fmt.Errorf("config has no wire (preset, file or points)")
	}
	if cfg.Wire.Current == nil {
		current := Real(DefaultCurrent)
		cfg.Wire.Current = &current
	}
	if cfg.Wire.SlicerLimit <= 0 {
		cfg.Wire.SlicerLimit = DefaultSlicerLimit
	}
	if cfg.Volume.Resolution <= 0 && cfg.Volume.ResolutionXYZ == nil {
		cfg.Volume.Resolution = DefaultResolution
	}
	if !cfg.ComputeA && !cfg.ComputeB {
		cfg.ComputeB = true
	}
	if cfg.Output.Metric == "" {
		cfg.Output.Metric = MetricMagnitude.String()
	}
	if cfg.Output.Container == "" {
		cfg.Output.Container = ContainerOut
	}

	DebugLog("Loaded config from %s: wire=%q, current=%.3f A, resolution=%.2f",
		path, cfg.Wire.Preset, *cfg.Wire.Current, cfg.Volume.Resolution)
	return &cfg, nil
}

// BuildWire validates and constructs the runtime wire, applying the
// configured transforms in order: stretch, rotational symmetry, slicing.
func (cfg *WireCfg) BuildWire() (*Wire, error) {
	points := cfg.Points
	switch {
	case cfg.Preset != "":
		preset := PresetByID(cfg.Preset)
		if preset == nil {
			return nil, fmt.Errorf("unknown wire preset %q", cfg.Preset)
		}
		points = preset.Points
	case cfg.File != "":
		loaded, err := LoadWireTXT(cfg.File)
		if err != nil {
			return nil, err
		}
		points = loaded
	}

	current := Real(DefaultCurrent)
	if cfg.Current != nil {
		current = *cfg.Current
	}
	wire, err := NewWire(points, current)
	if err != nil {
		return nil, err
	}
	if cfg.Stretch != nil {
		wire = wire.Stretched(*cfg.Stretch)
	}
	if rs := cfg.RotationalSymmetry; rs != nil {
		wire = wire.RotationalSymmetry(rs.Count, rs.Radius, rs.Axis)
	}
	return wire.Sliced(cfg.SlicerLimit)
}

// BuildVolume constructs the sampling volume, fitting the bounds around the
// wire when they are not given explicitly.
func (cfg *VolumeCfg) BuildVolume(wire *Wire) (*SamplingVolume, error) {
	var bmin, bmax Point3
	if cfg.BoundsMin != nil && cfg.BoundsMax != nil {
		bmin, bmax = *cfg.BoundsMin, *cfg.BoundsMax
	} else {
		bmin, bmax = NearestBounds(wire.Bounds())
		if cfg.Padding != nil {
			bmin, bmax = PadBounds(bmin, bmax, *cfg.Padding)
		}
	}

	resolution := cfg.ResolutionXYZ
	if resolution == nil {
		resolution = &Vector3{cfg.Resolution, cfg.Resolution, cfg.Resolution}
	}

	constraints := make([]Constraint, 0, len(cfg.Constraints))
	for _, cc := range cfg.Constraints {
		norm, err := ParseNormKind(cc.Norm)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, Constraint{
			Norm: norm, Min: cc.Min, Max: cc.Max, Permeability: cc.Permeability,
		})
	}

	return NewSamplingVolume(bmin, bmax, *resolution, constraints)
}

// EngineConfig resolves the configured engine settings onto the defaults.
func (cfg *EngineCfg) EngineConfig() EngineConfig {
	ec := DefaultEngineConfig()
	if cfg.Strategy != "" {
		ec.Strategy = cfg.Strategy
	}
	if cfg.Workers > 0 {
		ec.Workers = cfg.Workers
	}
	if cfg.DistanceLimit > 0 {
		ec.DistanceLimit = cfg.DistanceLimit
	}
	if cfg.LengthScale > 0 {
		ec.LengthScale = cfg.LengthScale
	}
	return ec
}
