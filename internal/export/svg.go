package export

import (
	"fmt"
	"strings"
)

var strokeColors = []string{"#00ff88", "#ffcc00", "#00ccff", "#ff4444", "#ff00ff", "#8888ff"}

// CurvesSVG draws infected curves as SVG paths, day on the x axis. All curves
// share one scale.
func CurvesSVG(curves [][]int, width, height int) string {
	longest, peak := 0, 0
	for _, c := range curves {
		longest = max(longest, len(c))
		for _, v := range c {
			peak = max(peak, v)
		}
	}
	if longest < 2 {
		return ""
	}

	rangeX := float64(longest - 1)
	rangeY := float64(peak)
	if rangeY == 0 {
		rangeY = 1
	}
	// Leave a margin around the plot area.
	padX, padY := float64(width)*0.05, float64(height)*0.05
	plotW, plotH := float64(width)-2*padX, float64(height)-2*padY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, c := range curves {
		if len(c) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColors[i%len(strokeColors)]))
		for day, v := range c {
			x := padX + float64(day)/rangeX*plotW
			y := padY + plotH - float64(v)/rangeY*plotH

			if day == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
