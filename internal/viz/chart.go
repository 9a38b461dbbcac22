package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Red,
	asciigraph.Magenta, asciigraph.Blue, asciigraph.White,
}

// PlotCurves renders one or more infected curves on a shared axis. Shorter
// curves are padded with zeros, which is their value after extinction.
func PlotCurves(curves [][]int, width, height int, caption string) string {
	longest := 0
	for _, c := range curves {
		longest = max(longest, len(c))
	}
	if longest == 0 {
		return ""
	}
	// asciigraph needs at least two points per series.
	longest = max(longest, 2)

	data := make([][]float64, len(curves))
	colors := make([]asciigraph.AnsiColor, len(curves))
	for i, c := range curves {
		data[i] = make([]float64, longest)
		for j, v := range c {
			data[i][j] = float64(v)
		}
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// Bin is one bucket of a histogram over [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram buckets values into n equal-width bins spanning [min, max]. The
// last bin is closed. Constant input yields a single bin of width one. Edges
// and counts agree with gonum/plot's Histogram for the same input.
func Histogram(values []int, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	x := make([]float64, len(values))
	for i, v := range values {
		x[i] = float64(v)
	}
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		return []Bin{{Lo: lo, Hi: lo + 1, Count: len(values)}}
	}

	dividers := floats.Span(make([]float64, n+1), lo, hi)
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	bins[n-1].Hi = hi
	return bins
}

// RenderHistogram draws horizontal bars for a histogram.
func RenderHistogram(bins []Bin, barWidth int) string {
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	if peak == 0 {
		return ""
	}

	var sb strings.Builder
	for _, b := range bins {
		n := b.Count * barWidth / peak
		label := fmt.Sprintf("%7.0f-%-7.0f", b.Lo, b.Hi)
		sb.WriteString(subtleStyle.Render(label) + " " + barStyle.Render(strings.Repeat("█", n)) + fmt.Sprintf(" %d\n", b.Count))
	}
	return sb.String()
}
