// Package render draws golf ball trajectories as a fixed line chart.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/golfsim/internal/projectile"
)

const (
	Width  = 640
	Height = 480
	Title  = "Golf Ball Trajectory"

	dpi = 96

	XMin, XMax = 0.0, 100.0
	YMin, YMax = 0.0, 50.0
)

// LineColor is the color of every series on the chart.
var LineColor = color.RGBA{R: 255, A: 255}

// NewPlot builds the trajectory chart. Points are connected in order; arc,
// when non-empty, is overlaid as a dashed flight path.
func NewPlot(points []projectile.Point, arc []mgl64.Vec2) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = "range (m)"
	p.Y.Label.Text = "height (m)"
	p.Add(plotter.NewGrid())

	if len(points) > 0 {
		line, err := plotter.NewLine(trajectoryXYs(points))
		if err != nil {
			return nil, fmt.Errorf("trajectory series: %w", err)
		}
		line.LineStyle.Color = LineColor
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
	}

	if len(arc) > 0 {
		line, err := plotter.NewLine(arcXYs(arc))
		if err != nil {
			return nil, fmt.Errorf("flight path series: %w", err)
		}
		line.LineStyle.Color = LineColor
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
	}

	// Add widens the axes to the data; pin them afterwards.
	p.X.Min, p.X.Max = XMin, XMax
	p.Y.Min, p.Y.Max = YMin, YMax

	return p, nil
}

// WritePNG draws p onto a Width x Height canvas and encodes it to w.
func WritePNG(w io.Writer, p *plot.Plot) error {
	// vgimg sizes canvases in points; at dpi points per inch this is
	// exactly Width x Height pixels.
	c := vgimg.NewWith(
		vgimg.UseWH(Width*vg.Inch/dpi, Height*vg.Inch/dpi),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG renders the chart to path. The file is closed on every return path.
func SavePNG(path string, points []projectile.Point, arc []mgl64.Vec2) (err error) {
	p, err := NewPlot(points, arc)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := WritePNG(bw, p); err != nil {
		return err
	}
	return bw.Flush()
}

func trajectoryXYs(points []projectile.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.Range
		xys[i].Y = pt.MaxHeight
	}
	return xys
}

func arcXYs(arc []mgl64.Vec2) plotter.XYs {
	xys := make(plotter.XYs, len(arc))
	for i, v := range arc {
		xys[i].X = v.X()
		xys[i].Y = v.Y()
	}
	return xys
}
