package magneticalc

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// metricGrid exposes one Z slice of a metric as a GridXYZ for heatmap
// plotting. Sentinel values (NaN, ±Inf) are flattened to the slice minimum
// so the palette mapping stays finite.
type metricGrid struct {
	volume *SamplingVolume
	values []Real
	zIndex int
	floor  Real
}

func (g metricGrid) Dims() (c, r int) { return g.volume.Dimension[0], g.volume.Dimension[1] }

func (g metricGrid) Z(c, r int) Real {
	v := g.values[g.volume.xyzToIndex(c, r, g.zIndex)]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return g.floor
	}
	return v
}

func (g metricGrid) X(c int) Real { return g.volume.Points[g.volume.xyzToIndex(c, 0, 0)].X }
func (g metricGrid) Y(r int) Real { return g.volume.Points[g.volume.xyzToIndex(0, r, 0)].Y }

// SaveMetricHeatmap renders the metric's Z slice as a heatmap PNG. A
// negative zIndex selects the middle slice.
func SaveMetricHeatmap(path string, volume *SamplingVolume, metric *Metric, zIndex int) error {
	if zIndex < 0 {
		zIndex = volume.Dimension[2] / 2
	}
	if zIndex >= volume.Dimension[2] {
		return fmt.Errorf("slice index %d out of range (nz=%d)", zIndex, volume.Dimension[2])
	}

	lo, _, ok := metric.Range()
	if !ok {
		return fmt.Errorf("metric %v has no finite values", metric.Kind)
	}

	g := metricGrid{volume: volume, values: metric.Values, zIndex: zIndex, floor: lo}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%v (z = %.2f)", metric.Kind, volume.Points[volume.xyzToIndex(0, 0, zIndex)].Z)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	pal := moreland.Kindlmann().Palette(255)
	p.Add(plotter.NewHeatMap(g, pal))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	c := vgimg.NewWith(vgimg.UseWH(6*vg.Inch, 5*vg.Inch), vgimg.UseDPI(150))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return w.Flush()
}
