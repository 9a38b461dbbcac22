package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/episim/internal/experiment"
)

// Report renders an ensemble summary panel.
func Report(name string, s experiment.Summary, metrics map[string]float64) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(strings.ToUpper(name)) + "\n\n")
	sb.WriteString(row("scenarios", fmt.Sprintf("%d", s.Scenarios)))
	sb.WriteString(row("total cases", fmt.Sprintf("%.1f ± %.1f", s.MeanTotal, s.StdTotal)))
	sb.WriteString(row("range", fmt.Sprintf("%d – %d", s.MinTotal, s.MaxTotal)))
	sb.WriteString(row("mean duration", fmt.Sprintf("%.1f days", s.MeanDays)))
	sb.WriteString(row("highest peak", fmt.Sprintf("%d", s.MaxPeak)))
	sb.WriteString(row("died out", fmt.Sprintf("%d/%d", s.Extinct, s.Scenarios)))

	if len(metrics) > 0 {
		names := make([]string, 0, len(metrics))
		for k := range metrics {
			names = append(names, k)
		}
		sort.Strings(names)

		sb.WriteString("\n" + subtleStyle.Render("mean metrics") + "\n")
		for _, k := range names {
			sb.WriteString(row(k, fmt.Sprintf("%.4f", metrics[k])))
		}
	}

	return panelStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// MeanMetrics averages each metric over the results that report it.
func MeanMetrics(all []map[string]float64) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, m := range all {
		for k, v := range m {
			sums[k] += v
			counts[k]++
		}
	}
	for k := range sums {
		sums[k] /= float64(counts[k])
	}
	return sums
}
