package export

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var ErrNoData = errors.New("export: nothing to plot")

// CurvesPlot plots every infected curve against time.
func CurvesPlot(curves [][]int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Active cases over time"
	p.X.Label.Text = "time (days)"
	p.Y.Label.Text = "#active cases"

	for i, c := range curves {
		if len(c) == 0 {
			continue
		}
		points := make(plotter.XYs, len(c))
		for day, v := range c {
			points[day].X = float64(day + 1)
			points[day].Y = float64(v)
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
	}
	return p, nil
}

// TotalsPlot is a histogram of total cases per scenario.
func TotalsPlot(totals []int, bins int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Total cases per scenario"
	p.X.Label.Text = "#total cases"
	p.Y.Label.Text = "#runs in bin"

	if len(totals) == 0 {
		return p, nil
	}
	h, err := TotalsHistogram(totals, bins)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	return p, nil
}

// TotalsHistogram bins the totals the way TotalsPlot draws them.
func TotalsHistogram(totals []int, bins int) (*plotter.Histogram, error) {
	values := make(plotter.Values, len(totals))
	for i, t := range totals {
		values[i] = float64(t)
	}
	return plotter.NewHist(values, bins)
}

// TotalsBins is the number of histogram bins used for n scenario totals.
func TotalsBins(n int) int {
	return max(1, min(10, n))
}

// WriteFigure renders the curves and the totals histogram side by side as a
// PNG.
func WriteFigure(w io.Writer, curves [][]int, totals []int, width, height vg.Length) error {
	if len(curves) == 0 {
		return ErrNoData
	}

	left, err := CurvesPlot(curves)
	if err != nil {
		return err
	}
	right, err := TotalsPlot(totals, TotalsBins(len(totals)))
	if err != nil {
		return err
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 2, PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2}

	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)
	return err
}
