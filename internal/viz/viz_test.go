package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/experiment"
)

func TestPlotCurves(t *testing.T) {
	if PlotCurves(nil, 40, 5, "empty") != "" {
		t.Error("expected empty plot for no data")
	}

	out := PlotCurves([][]int{{1, 4, 9, 3}, {2, 2}}, 40, 5, "active cases")
	if !strings.Contains(out, "active cases") {
		t.Error("caption missing")
	}

	if PlotCurves([][]int{{0}}, 40, 5, "single") == "" {
		t.Error("single point series should still render")
	}
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]int{0, 1, 2, 3, 4, 10}, 5)
	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 6 {
		t.Errorf("bins hold %d values, want 6", total)
	}
	if bins[4].Count != 1 {
		t.Errorf("maximum should land in the last bin, got %d", bins[4].Count)
	}
	if bins[0].Lo != 0 || bins[1].Lo != 2 || bins[4].Hi != 10 {
		t.Errorf("unexpected bin edges %+v", bins)
	}

	same := Histogram([]int{5, 5, 5}, 4)
	if len(same) != 1 || same[0].Count != 3 || same[0].Hi != 6 {
		t.Errorf("constant values should collapse to one bin, got %+v", same)
	}

	if Histogram(nil, 3) != nil {
		t.Error("expected nil for no values")
	}
}

func TestRenderHistogram(t *testing.T) {
	out := RenderHistogram(Histogram([]int{1, 2, 2, 9}, 2), 10)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	if RenderHistogram(nil, 10) != "" {
		t.Error("expected empty output")
	}
}

func TestReport(t *testing.T) {
	s := experiment.Summary{Scenarios: 3, MeanTotal: 12.5, MinTotal: 2, MaxTotal: 30, Extinct: 1}
	out := Report("baseline", s, map[string]float64{"attack_rate": 0.25})
	for _, want := range []string{"BASELINE", "12.5", "attack_rate", "1/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMeanMetrics(t *testing.T) {
	got := MeanMetrics([]map[string]float64{{"a": 1, "b": 4}, {"a": 3}})
	if got["a"] != 2 || got["b"] != 4 {
		t.Errorf("unexpected means %v", got)
	}
}

func TestLiveModel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Population.Size = 100
	cfg.Days = 5
	exp, err := experiment.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewLiveModel(exp, 0, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if m.Init() == nil {
		t.Fatal("expected a tick command")
	}

	var model tea.Model = m
	for i := 0; i < 10; i++ {
		model, _ = model.Update(TickMsg(time.Now()))
	}
	live := model.(LiveModel)
	if !live.Done() || live.Day() > 5 {
		t.Errorf("expected a finished run of at most 5 days, got day %d done=%v", live.Day(), live.Done())
	}
	if !strings.Contains(live.View(), "FINISHED") {
		t.Error("view should report the finished run")
	}

	model, _ = live.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if model.(LiveModel).Day() != 0 {
		t.Error("reset should rewind to day 0")
	}

	paused, _ := model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	stepped, _ := paused.Update(TickMsg(time.Now()))
	if stepped.(LiveModel).Day() != 0 {
		t.Error("paused model should not advance")
	}

	_, cmd := stepped.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command")
	}
}
