package viz

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/export"
	"github.com/san-kum/simcore/internal/sim"
	"github.com/san-kum/simcore/internal/vmath"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 300
	frameRate       = 60
	nudgeFraction   = 0.02
)

// chartKeys lists the metrics worth plotting, most informative first.
var chartKeys = []string{"total_energy", "temperature", "kinetic_energy", "net_charge"}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model hosts a simulation loop. Every tick becomes one Frame call; keys map
// to the loop's lifecycle and parameter controls.
type Model struct {
	loop      *sim.Loop
	name      string
	canvas    *Canvas
	view      Viewport
	history   []float64
	chartKey  string
	lastFrame int
	theme     int
	selected  int
	showField bool
	showHelp  bool
	status    string
	log       *slog.Logger
}

func NewModel(name string, loop *sim.Loop, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := Model{
		loop:      loop,
		name:      name,
		canvas:    NewCanvas(width, height),
		history:   make([]float64, 0, historyCapacity),
		lastFrame: -1,
		showField: true,
		log:       log,
	}
	m.fit()
	m.chartKey = pickChartKey(loop.Snapshot().Metrics)
	return m
}

func pickChartKey(metrics map[string]float64) string {
	for _, k := range chartKeys {
		if _, ok := metrics[k]; ok {
			return k
		}
	}
	return ""
}

func (m *Model) fit() {
	b := m.loop.Bounds()
	var world dynamo.Bounds
	if b != nil {
		world = *b
	} else {
		world = Extent(m.loop.Snapshot().Bodies)
	}
	m.view = Fit(world, m.canvas.SubWidth(), m.canvas.SubHeight())
}

func (m Model) Init() tea.Cmd {
	m.loop.Start()
	return tick()
}

// Update handles input events and drives the loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.loop.Stop()
			return m, tea.Quit
		case " ":
			if m.loop.State() == sim.Running {
				m.loop.Pause()
			} else {
				m.loop.Resume()
			}
		case "r":
			m.loop.Reset()
			m.history = m.history[:0]
		case "up", "k":
			m.adjust(func(p *dynamo.Params) { p.Restitution = math.Min(1, p.Restitution+0.05) })
		case "down", "j":
			m.adjust(func(p *dynamo.Params) { p.Restitution = math.Max(0, p.Restitution-0.05) })
		case "+", "=":
			m.adjust(func(p *dynamo.Params) { p.TimeScale *= 1.25 })
		case "-", "_":
			m.adjust(func(p *dynamo.Params) { p.TimeScale /= 1.25 })
		case "tab", "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "f":
			m.showField = !m.showField
		case "n":
			if n := len(m.loop.Snapshot().Bodies); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case "w":
			m.nudge(vmath.Vec{Y: 1})
		case "a":
			m.nudge(vmath.Vec{X: -1})
		case "s":
			m.nudge(vmath.Vec{Y: -1})
		case "d":
			m.nudge(vmath.Vec{X: 1})
		case "e":
			m.saveSVG()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.loop.Frame(time.Time(msg)) {
			return m, tea.Quit
		}
		m.observe()
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjust(edit func(*dynamo.Params)) {
	s := m.loop.Settings()
	p := m.loop.Params()
	edit(&p)
	s.Params = p
	if err := m.loop.Configure(s); err != nil {
		m.log.Warn("configure rejected", "error", err)
	}
}

// nudge drags the selected body by a fraction of the visible world.
func (m *Model) nudge(dir vmath.Vec) {
	bodies := m.loop.Snapshot().Bodies
	if m.selected >= len(bodies) {
		return
	}
	step := nudgeFraction * m.view.World().Width()
	m.loop.Move(m.selected, bodies[m.selected].Pos.Add(dir.Scale(step)))
}

func (m *Model) saveSVG() {
	m.draw()
	path := fmt.Sprintf("simcore_%s_%d.svg", m.name, m.loop.Snapshot().Frame)
	if err := os.WriteFile(path, []byte(export.CanvasToSVG(m.canvas.Grid, 4)), 0644); err != nil {
		m.status = "export failed: " + err.Error()
		m.log.Error("canvas export failed", "path", path, "error", err)
		return
	}
	m.status = "saved " + path
	m.log.Info("canvas exported", "path", path)
}

// observe records the chart metric once per published frame.
func (m *Model) observe() {
	snap := m.loop.Snapshot()
	if snap.Frame == m.lastFrame {
		return
	}
	if snap.Frame < m.lastFrame {
		m.history = m.history[:0]
		m.fit()
	}
	m.lastFrame = snap.Frame
	if m.chartKey == "" {
		return
	}
	m.history = append(m.history, snap.Metric(m.chartKey))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	if b := m.loop.Bounds(); b != nil {
		x0, y0 := m.view.Project(b.Min)
		x1, y1 := m.view.Project(b.Max)
		m.canvas.DrawRect(x0, y0, x1, y1)
	}

	if s, ok := m.loop.FieldSampler(); ok && m.showField {
		drawField(m.canvas, m.view, s, m.loop.Sources(), 16, 8)
	}

	for i, b := range m.loop.Snapshot().Bodies {
		x, y := m.view.Project(b.Pos)
		r := m.view.Length(b.Radius)
		if b.Fixed {
			m.canvas.FillCircle(x, y, max(r, 1))
		} else {
			m.canvas.DrawCircle(x, y, r)
		}
		if i == m.selected {
			m.canvas.DrawCircle(x, y, r+2)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	theme := Themes[m.theme]
	snap := m.loop.Snapshot()

	maxSpeed := 0.0
	for i := range snap.Bodies {
		maxSpeed = math.Max(maxSpeed, snap.Bodies[i].Speed())
	}
	tint := theme.Primary
	if maxSpeed > 0 {
		tint = theme.SpeedColor(maxSpeed / (maxSpeed + 5))
	}
	canvasView := canvasStyle.Foreground(tint).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(GradientText(strings.ToUpper(m.name), theme.Primary, theme.Accent)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption(m.chartKey))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	p := m.loop.Params()
	s.WriteString(MetricLabel.Render("time") + MetricValue.Render(fmt.Sprintf("%.2fs", snap.Time)) + "\n")
	s.WriteString(MetricLabel.Render("frame") + MetricValue.Render(fmt.Sprintf("%d", snap.Frame)) + "\n")
	s.WriteString(MetricLabel.Render("bodies") + MetricValue.Render(fmt.Sprintf("%d", len(snap.Bodies))) + "\n")
	s.WriteString(MetricLabel.Render("restitution") + ProgressBar(p.Restitution, 10) + MetricValue.Render(fmt.Sprintf(" %.2f", p.Restitution)) + "\n")
	s.WriteString(MetricLabel.Render("time scale") + MetricValue.Render(fmt.Sprintf("%.2fx", p.TimeScale)) + "\n")
	s.WriteString(Separator(38) + "\n")

	keys := make([]string, 0, len(snap.Metrics))
	for k := range snap.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.WriteString(MetricLabel.Render(k) + MetricValue.Render(fmt.Sprintf("%.4g", snap.Metrics[k])) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + KeyHint.Render(m.status) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("SP pause  R reset  Q quit  ? help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) statusLine() string {
	switch m.loop.State() {
	case sim.Running:
		return StatusRunning.Render("RUNNING")
	case sim.Paused:
		return StatusPaused.Render("PAUSED")
	case sim.ResetPending:
		return StatusPaused.Render("RESETTING")
	default:
		return StatusStopped.Render("STOPPED")
	}
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset body set           ║
║  Up/K     - Restitution +0.05        ║
║  Down/J   - Restitution -0.05        ║
║  +/-      - Time scale x1.25         ║
║  N        - Select next body         ║
║  W/A/S/D  - Drag selected body       ║
║  F        - Toggle field overlay     ║
║  Tab/T    - Cycle themes             ║
║  E        - Export canvas as SVG     ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
