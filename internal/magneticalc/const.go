package magneticalc

import "math"

type Real = float64

const (
	// MuZero is the vacuum permeability (H/m).
	MuZero = 4 * math.Pi * 1e-7

	// LengthScale maps grid coordinates to metres (grid units are centimetres).
	LengthScale = 1e-2

	// DistanceLimit bounds the source/observation distance, mitigating
	// divisions by zero when a grid point coincides with an element center.
	DistanceLimit = 1e-12

	// LogNormMinimum is the smallest argument fed to the logarithmic metrics.
	LogNormMinimum = 1e-12

	DefaultResolution  = 10.0
	DefaultSlicerLimit = 0.05
	DefaultCurrent     = 1.0
	ContainerOut       = "field.json"
	HeatmapOut         = "heatmap.png"

	// MaxGridPoints caps the sampling grid so a bad resolution cannot take
	// the process down while allocating the output arrays.
	MaxGridPoints = 1 << 28

	// workerChunk is the number of grid points a worker claims at a time;
	// cancellation is checked at chunk boundaries only.
	workerChunk = 256
)
