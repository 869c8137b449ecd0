package magneticalc

import "math"

// WirePreset is a named base point sequence, before transforms and current
// assignment.
type WirePreset struct {
	ID     string
	Points []Point3
}

// Preset: A straight line.
var StraightLine = WirePreset{
	ID: "Straight Line",
	Points: []Point3{
		{-0.5, 0, 0},
		{+0.5, 0, 0},
	},
}

// Preset: A single loop with offset connections.
var SingleLoopOffset = WirePreset{
	ID: "Single Loop (offset)",
	Points: []Point3{
		{-0.5, +0.5, +0.5},
		{0, +0.5, +0.5},
		{0, -0.5, +0.5},
		{0, -0.5, -0.5},
		{0, +0.5, -0.5},
		{0, +0.5, +0.5},
		{+0.5, +0.5, +0.5},
	},
}

// Preset: A single loop with centered connections.
var SingleLoopCentered = WirePreset{
	ID: "Single Loop (centered)",
	Points: []Point3{
		{-0.5, +0.5, 0},
		{0, +0.5, 0},
		{0, +0.5, +0.5},
		{0, -0.5, +0.5},
		{0, -0.5, -0.5},
		{0, +0.5, -0.5},
		{0, +0.5, 0},
		{+0.5, +0.5, 0},
	},
}

// Preset: A "compensated" double loop with offset connections.
var CompensatedDoubleLoopOffset = WirePreset{
	ID: "Compensated Double Loop (offset)",
	Points: []Point3{
		{-3.0 / 6, +0.5, +0.5},
		{-1.0 / 6, +0.5, +0.5},
		{-1.0 / 6, -0.5, +0.5},
		{-1.0 / 6, -0.5, -0.5},
		{-1.0 / 6, +0.5, -0.5},
		{-1.0 / 6, +0.5, +0.5},
		{+1.0 / 6, +0.5, +0.5},
		{+1.0 / 6, +0.5, -0.5},
		{+1.0 / 6, -0.5, -0.5},
		{+1.0 / 6, -0.5, +0.5},
		{+1.0 / 6, +0.5, +0.5},
		{+3.0 / 6, +0.5, +0.5},
	},
}

// Preset: A "compensated" double loop with centered connections.
var CompensatedDoubleLoopCentered = WirePreset{
	ID: "Compensated Double Loop (centered)",
	Points: []Point3{
		{-3.0 / 6, +0.5, 0},
		{-1.0 / 6, +0.5, 0},
		{-1.0 / 6, +0.5, +0.5},
		{-1.0 / 6, -0.5, +0.5},
		{-1.0 / 6, -0.5, -0.5},
		{-1.0 / 6, +0.5, -0.5},
		{-1.0 / 6, +0.5, 0},
		{+1.0 / 6, +0.5, 0},
		{+1.0 / 6, +0.5, -0.5},
		{+1.0 / 6, -0.5, -0.5},
		{+1.0 / 6, -0.5, +0.5},
		{+1.0 / 6, +0.5, +0.5},
		{+1.0 / 6, +0.5, 0},
		{+3.0 / 6, +0.5, 0},
	},
}

// WirePresets lists all built-in presets.
var WirePresets = []WirePreset{
	StraightLine,
	SingleLoopOffset,
	SingleLoopCentered,
	CompensatedDoubleLoopOffset,
	CompensatedDoubleLoopCentered,
}

// PresetByID selects a preset by name, or nil if the ID is unknown.
func PresetByID(id string) *WirePreset {
	for i := range WirePresets {
		if WirePresets[i].ID == id {
			return &WirePresets[i]
		}
	}
	return nil
}

// CircularLoop approximates a circle of the given radius in the XY plane,
// centered at the origin, with n segments (closed: first point repeated).
func CircularLoop(radius Real, n int) []Point3 {
	if n < 3 {
		n = 3
	}
	points := make([]Point3, 0, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * Real(i) / Real(n)
		points = append(points, Point3{radius * math.Cos(a), radius * math.Sin(a), 0})
	}
	points = append(points, points[0])
	return points
}
