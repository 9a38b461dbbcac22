package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/episim/internal/export"
	"github.com/san-kum/episim/internal/storage"
	"github.com/san-kum/episim/internal/viz"
)

// loadRuns reads the curves and totals of stored runs.
func loadRuns(runIDs []string) ([][]int, []int, error) {
	st := storage.New(dataDir)
	curves := make([][]int, 0, len(runIDs))
	totals := make([]int, 0, len(runIDs))

	for _, runID := range runIDs {
		meta, err := st.Load(runID)
		if err != nil {
			return nil, nil, err
		}
		series, err := st.LoadSeries(runID)
		if err != nil {
			return nil, nil, err
		}
		curves = append(curves, series)
		totals = append(totals, meta.TotalCases)
	}
	return curves, totals, nil
}

func plotRuns(cmd *cobra.Command, args []string) error {
	curves, totals, err := loadRuns(args)
	if err != nil {
		return err
	}

	for i, runID := range args {
		fmt.Printf("%s  days: %d  total cases: %d\n", runID, len(curves[i]), totals[i])
	}
	fmt.Println()

	graph := viz.PlotCurves(curves, 80, 15, "active cases over time")
	if graph == "" {
		return fmt.Errorf("no data to plot")
	}
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	series, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"day", "infected"}); err != nil {
		return err
	}
	for i, n := range series {
		if err := w.Write([]string{strconv.Itoa(i + 1), strconv.Itoa(n)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func renderFigure(cmd *cobra.Command, args []string) error {
	if pngPath == "" && svgPath == "" {
		return fmt.Errorf("set --png or --svg")
	}
	curves, totals, err := loadRuns(args)
	if err != nil {
		return err
	}
	return writeFigures(curves, totals)
}

func writeFigures(curves [][]int, totals []int) error {
	if pngPath != "" {
		if err := writePNG(pngPath, curves, totals); err != nil {
			return err
		}
		logger.Info("figure written", "path", pngPath)
	}

	if svgPath != "" {
		svg := export.CurvesSVG(curves, 800, 400)
		if svg == "" {
			return fmt.Errorf("write %s: %w", svgPath, export.ErrNoData)
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		logger.Info("figure written", "path", svgPath)
	}
	return nil
}

func writePNG(path string, curves [][]int, totals []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := export.WriteFigure(f, curves, totals, 12*vg.Inch, 4*vg.Inch); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
