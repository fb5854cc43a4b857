package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/sim"
)

var scenarioInfo = map[string]string{
	"collision": "elastic and inelastic impacts",
	"gas":       "ideal gas pressure",
	"orbital":   "planets around a fixed star",
	"electric":  "point-charge field lines",
}

// Catalog builds loops for the scenario menu.
type Catalog interface {
	List() []string
	Get(name string) (sim.Scenario, error)
	Defaults(name string) (dynamo.Settings, error)
	DefaultMetrics(name string, st dynamo.Structure) []dynamo.Metric
}

const (
	stateMenu = iota
	stateSim
)

type menu struct {
	state, cursor int
	names         []string
	catalog       Catalog
	err           error
	log           *slog.Logger
	liveModel     Model
}

// NewMenu lists the catalog's scenarios and opens the chosen one live.
func NewMenu(c Catalog, log *slog.Logger) tea.Model {
	return menu{names: c.List(), catalog: c, log: log}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	name := m.names[m.cursor]
	scn, err := m.catalog.Get(name)
	if err != nil {
		m.err = err
		return m, nil
	}
	settings, err := m.catalog.Defaults(name)
	if err != nil {
		m.err = err
		return m, nil
	}
	opts := []sim.Option{sim.WithLogger(m.log)}
	for _, metric := range m.catalog.DefaultMetrics(name, settings.Structure) {
		opts = append(opts, sim.WithMetric(metric))
	}
	m.liveModel = NewModel(name, sim.New(scn, settings, opts...), m.log)
	m.state = stateSim
	return m, m.liveModel.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render("SIMCORE") + "\n    " + sub.Render("2-D physics playground") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.names {
		desc := scenarioInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-12s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", sub.Render(fmt.Sprintf("  %-12s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusStopped.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// Run opens the live viewer for one loop on the alternate screen.
func Run(name string, loop *sim.Loop, log *slog.Logger) error {
	_, err := tea.NewProgram(NewModel(name, loop, log), tea.WithAltScreen()).Run()
	return err
}

// RunMenu opens the scenario menu on the alternate screen.
func RunMenu(c Catalog, log *slog.Logger) error {
	_, err := tea.NewProgram(NewMenu(c, log), tea.WithAltScreen()).Run()
	return err
}
