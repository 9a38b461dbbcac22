package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/experiment"
)

const (
	chartWidth  = 60
	chartHeight = 12
)

type TickMsg time.Time

// LiveModel steps one scenario a day per tick and draws the curve so far.
type LiveModel struct {
	exp      *experiment.Experiment
	scenario int
	runner   *epidemic.Runner
	last     epidemic.DaySnapshot
	interval time.Duration
	running  bool
	done     bool
	err      error
}

func NewLiveModel(exp *experiment.Experiment, scenario int, interval time.Duration) (LiveModel, error) {
	m := LiveModel{exp: exp, scenario: scenario, interval: interval}
	if err := m.reset(); err != nil {
		return LiveModel{}, err
	}
	return m, nil
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.err = m.reset()
		case "n":
			m.scenario++
			m.err = m.reset()
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) reset() error {
	runner, err := m.exp.Setup(m.scenario)
	if err != nil {
		return err
	}
	runner.Reset()
	m.runner = runner
	m.last = epidemic.DaySnapshot{Population: runner.Evolution().Population().Len(), Census: runner.Evolution().Population().Counts()}
	m.running = true
	m.done = runner.Evolution().Population().Len() == 0 || m.exp.Config().Days == 0
	return nil
}

func (m *LiveModel) step() {
	snap, active := m.runner.Step()
	m.last = snap
	if !active || snap.Day >= m.exp.Config().Days {
		m.done = true
	}
}

// Day returns the last simulated day.
func (m LiveModel) Day() int { return m.last.Day }

// Done reports whether the scenario has finished.
func (m LiveModel) Done() bool { return m.done }

// View renders the TUI interface.
func (m LiveModel) View() string {
	cfg := m.exp.Config()

	status := statusRunning.Render("RUNNING")
	switch {
	case m.done:
		status = statusDone.Render("FINISHED")
	case !m.running:
		status = statusPaused.Render("PAUSED")
	}

	var chart string
	if series := m.runner.InfectedOverTime(); len(series) > 1 {
		chart = PlotCurves([][]int{series}, chartWidth, chartHeight, "active cases")
	} else {
		chart = subtleStyle.Render("waiting for data...")
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("%s · scenario %d", strings.ToUpper(cfg.Name), m.scenario)) + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(row("day", fmt.Sprintf("%d / %d", m.last.Day, cfg.Days)))
	s.WriteString(row("susceptible", fmt.Sprintf("%d", m.last.Susceptible)))
	s.WriteString(row("infected", fmt.Sprintf("%d", m.last.Infected)))
	s.WriteString(row("  aware", fmt.Sprintf("%d", m.last.KnownInfected)))
	s.WriteString(row("recovered", fmt.Sprintf("%d", m.last.Recovered)))
	s.WriteString(row("total cases", fmt.Sprintf("%d", m.last.TotalCases())))
	if m.err != nil {
		s.WriteString(statusDone.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset N:Next Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(chart), panelStyle.Render(s.String()))
}
