package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rangecard/backend/internal/ballistics"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// NewPlot builds a chart of height over distance: the path as a line, with the
// samples overlaid and shaded from blue (launch) to red (impact) by time.
func NewPlot(points []ballistics.Point) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Bullet Trajectory (No Drag)"
	p.X.Label.Text = "X Position (m)"
	p.Y.Label.Text = "Y Position (m)"
	p.Add(plotter.NewGrid())

	if len(points) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("building line: %w", err)
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("building scatter: %w", err)
	}

	end := points[len(points)-1].Time
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		frac := 0.0
		if end > 0 {
			frac = points[i].Time / end
		}
		return draw.GlyphStyle{
			Color:  timeColor(frac),
			Radius: vg.Points(1.5),
			Shape:  draw.CircleGlyph{},
		}
	}

	p.Add(line, scatter)
	return p, nil
}

// WritePlot renders points in the given format ("png", "svg", "pdf").
func WritePlot(w io.Writer, points []ballistics.Point, format string) error {
	p, err := NewPlot(points)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// WritePlotFile saves a PNG plot to path, creating parent directories.
func WritePlotFile(path string, points []ballistics.Point) error {
	return writeFile(path, func(w io.Writer) error { return WritePlot(w, points, "png") })
}

func timeColor(frac float64) color.Color {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return color.RGBA{R: uint8(255 * frac), G: 64, B: uint8(255 * (1 - frac)), A: 255}
}
