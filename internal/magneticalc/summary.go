package magneticalc

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	blockStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// FormatSummary renders the computation results as a styled terminal block.
func FormatSummary(wire *Wire, volume *SamplingVolume, field *Field, derived Derived) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Field computation") + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Wire", fmt.Sprintf("%d points, %d elements, %.6g A",
		len(wire.Points), len(wire.Points)-1, wire.Current))
	row("Grid", fmt.Sprintf("%d x %d x %d (%d points)",
		volume.Dimension[0], volume.Dimension[1], volume.Dimension[2], volume.Count()))

	strategy := field.Strategy
	if field.Degraded {
		strategy += warnStyle.Render(" (fallback)")
	}
	row("Strategy", strategy)
	if field.Limited > 0 {
		row("Limited", warnStyle.Render(fmt.Sprintf("%d distance-clamped contributions", field.Limited)))
	}

	row("Energy", formatQuantity(derived.Energy, "J"))
	row("Self-inductance", formatQuantity(derived.SelfInductance, "H"))
	row("Dipole moment", formatQuantity(derived.DipoleMoment, "A*m2"))

	return blockStyle.Render(b.String())
}

func formatQuantity(v Real, unit string) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.6g %s", v, unit)
}

// FieldProfile plots the metric along the X axis through the volume center
// as a terminal graph.
func FieldProfile(volume *SamplingVolume, metric *Metric, rows int) string {
	if rows <= 0 {
		rows = 10
	}
	yMid, zMid := volume.Dimension[1]/2, volume.Dimension[2]/2

	data := make([]float64, 0, volume.Dimension[0])
	for x := 0; x < volume.Dimension[0]; x++ {
		v := metric.Values[volume.xyzToIndex(x, yMid, zMid)]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		data = append(data, v)
	}
	if len(data) < 2 {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(rows),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%v along X through volume center", metric.Kind)),
	)
}
