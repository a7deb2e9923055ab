// Package chart renders simulation output: line charts of observables,
// heat maps of spin lattices, and compact terminal curves.
package chart

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"ising-mc/internal/core"
	"ising-mc/internal/ising"
)

// DPI of rendered PNGs.
const DPI = 150

// Series is one named curve.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

func (s Series) xys() (plotter.XYs, error) {
	if len(s.X) != len(s.Y) {
		return nil, errors.Errorf("series %q: %d x values, %d y values", s.Name, len(s.X), len(s.Y))
	}
	pts := make(plotter.XYs, len(s.X))
	for i := range pts {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}
	return pts, nil
}

func style(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)
	p.Add(plotter.NewGrid())
}

// Curves plots every series as a line with point markers.
func Curves(title, xLabel, yLabel string, series ...Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	style(p)

	for i, s := range series {
		pts, err := s.xys()
		if err != nil {
			return nil, err
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "series %q", s.Name)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		points.Color = plotutil.Color(i)
		points.Radius = vg.Points(1.5)
		p.Add(line, points)
		if s.Name != "" {
			p.Legend.Add(s.Name, line, points)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// spinGrid exposes a spin lattice as a plotter.GridXYZ. Row 0 is drawn at
// the top.
type spinGrid struct {
	l *core.Lattice[bool]
}

func (g spinGrid) Dims() (c, r int) { return g.l.Cols(), g.l.Rows() }
func (g spinGrid) Z(c, r int) float64 {
	return ising.Spin(g.l.At(g.l.Rows()-1-r, c))
}
func (g spinGrid) X(c int) float64 { return float64(c) }
func (g spinGrid) Y(r int) float64 { return float64(r) }

// Lattice draws the spins of l as a heat map, up spins light and down spins dark.
func Lattice(title string, l *core.Lattice[bool]) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "col"
	p.Y.Label.Text = "row"
	style(p)

	hm := plotter.NewHeatMap(spinGrid{l: l}, moreland.Kindlmann().Palette(2))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)
	return p
}

// WritePNG renders p at widthIn x heightIn inches.
func WritePNG(w io.Writer, p *plot.Plot, widthIn, heightIn float64) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(DPI),
	)
	p.Draw(draw.New(c))

	bw := bufio.NewWriter(w)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return errors.Wrap(bw.Flush(), "write png")
}

// SavePNG writes p to filename, creating parent directories.
func SavePNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	if err := WritePNG(f, p, widthIn, heightIn); err != nil {
		f.Close()
		return errors.Wrapf(err, "%s", filename)
	}
	return errors.Wrapf(f.Close(), "close %s", filename)
}

// ASCII renders ys as a terminal line chart.
func ASCII(ys []float64, width, height int, caption string) string {
	if len(ys) == 0 {
		return ""
	}
	return asciigraph.Plot(ys,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
