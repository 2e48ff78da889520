package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Figure size in inches.
const (
	plotWidth  = 8.0
	plotHeight = 5.0
)

var (
	fieldColor = color.RGBA{R: 0x00, G: 0x66, B: 0xcc, A: 0xff}
	slabColor  = color.RGBA{R: 0xcc, G: 0x66, B: 0x00, A: 0xff}
)

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Padding = vg.Points(6)
	p.Y.Padding = vg.Points(6)
	p.Add(plotter.NewGrid())
}

// savePlot writes p in the format implied by the file extension (png, svg,
// pdf, ...), creating the parent directory if needed.
func savePlot(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	return p.Save(vg.Length(plotWidth)*vg.Inch, vg.Length(plotHeight)*vg.Inch, path)
}

func linePoints(ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i].X = float64(i)
		pts[i].Y = y
	}
	return pts
}

// ProfilePlot draws one field frame against cell index. When eps is given,
// the real permittivity is overlaid, scaled to the frame's peak.
func ProfilePlot(path string, frame []float64, eps []complex128, title string) error {
	if len(frame) == 0 {
		return fmt.Errorf("profile plot: empty frame")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "cell m"
	p.Y.Label.Text = "field"
	stylePlot(p)

	line, err := plotter.NewLine(linePoints(frame))
	if err != nil {
		return fmt.Errorf("cannot create line plot: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = fieldColor
	p.Add(line)
	p.Legend.Add("field", line)

	if len(eps) > 0 {
		re := make([]float64, len(eps))
		for i, v := range eps {
			re[i] = real(v)
		}

		scale := 1.0
		if peak := floats.Max(re); peak > 0 {
			abs := make([]float64, len(frame))
			for i, v := range frame {
				if v < 0 {
					v = -v
				}
				abs[i] = v
			}
			if fp := floats.Max(abs); fp > 0 {
				scale = fp / peak
			}
		}
		floats.Scale(scale, re)

		slab, err := plotter.NewLine(linePoints(re))
		if err != nil {
			return fmt.Errorf("cannot create permittivity line: %w", err)
		}
		slab.LineStyle.Color = slabColor
		slab.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(slab)
		p.Legend.Add("permittivity (scaled)", slab)
	}

	return savePlot(p, path)
}

// SpectrumPlot draws the one-sided part of a normalized magnitude spectrum
// against axis, which holds the bin centres.
func SpectrumPlot(path string, axis, mags []float64, title string) error {
	n := len(axis)
	if n == 0 || len(mags) < n {
		return fmt.Errorf("spectrum plot: %d bins for %d axis points", len(mags), n)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "frequency (cycles/sample)"
	p.Y.Label.Text = "|X| normalized"
	p.Y.Min = 0
	p.Y.Max = 1.05
	stylePlot(p)

	pts := make(plotter.XYs, n)
	for k := range pts {
		pts[k].X = axis[k]
		pts[k].Y = mags[k]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("cannot create line plot: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = fieldColor
	p.Add(line)

	return savePlot(p, path)
}

// fieldGrid exposes a steps x cells history as plotter.GridXYZ with cells
// on X and steps on Y.
type fieldGrid struct {
	frames [][]float64
}

func (g fieldGrid) Dims() (c, r int)   { return len(g.frames[0]), len(g.frames) }
func (g fieldGrid) Z(c, r int) float64 { return g.frames[r][c] }
func (g fieldGrid) X(c int) float64    { return float64(c) }
func (g fieldGrid) Y(r int) float64    { return float64(r) }

// HeatmapPlot draws a space-time map of a history.
func HeatmapPlot(path string, frames [][]float64, title string) error {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return fmt.Errorf("heatmap plot: empty history")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "cell m"
	p.Y.Label.Text = "step q"
	stylePlot(p)

	pal := moreland.Kindlmann().Palette(255)
	hm := plotter.NewHeatMap(fieldGrid{frames: frames}, pal)
	if hm.Min == hm.Max {
		hm.Min--
		hm.Max++
	}
	p.Add(hm)

	return savePlot(p, path)
}
