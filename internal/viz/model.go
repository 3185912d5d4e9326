package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/metrics"
	"github.com/san-kum/mazesim/internal/sim"
)

const (
	defaultWidth    = 64
	defaultHeight   = 22
	historyCapacity = 240
	panelWidth      = 40
)

type TickMsg time.Time

// Model is the terminal walkthrough: a first-person wireframe of the maze
// with a minimap and a status panel.
type Model struct {
	session  *sim.Session
	title    string
	wire     *Wireframe
	view     *Canvas
	mapView  *Canvas
	minimap  *Minimap
	fov      float64
	interval time.Duration
	last     time.Time

	intent        camera.Intent
	width, height int
	showMap       bool
	showHelp      bool

	path        *metrics.PathLength
	goal        *metrics.ReachedEnd
	pathHistory []float64
}

// NewModel wraps a session. interval is the redraw period; each redraw feeds
// the real time since the previous one to the session clock.
func NewModel(s *sim.Session, title string, fov float64, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second / 60
	}
	scene := s.Scene()
	path := metrics.NewPathLength()
	goal := metrics.NewReachedEnd(scene)
	s.AddMetric(path)
	s.AddMetric(goal)

	view := NewCanvas(defaultWidth, defaultHeight)
	mapView := NewCanvas(defaultWidth/2, defaultHeight/2)

	return Model{
		session:     s,
		title:       title,
		wire:        SceneWireframe(scene),
		view:        view,
		mapView:     mapView,
		minimap:     NewMinimap(scene, mapView),
		fov:         fov,
		interval:    interval,
		width:       defaultWidth,
		height:      defaultHeight,
		showMap:     true,
		path:        path,
		goal:        goal,
		pathHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.session.Reset()
			m.path.Reset()
			m.goal.Reset()
			m.pathHistory = m.pathHistory[:0]
		case "m":
			m.showMap = !m.showMap
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		default:
			if in, ok := ApplyKey(m.intent, msg.String()); ok {
				m.intent = in
			}
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		var delta time.Duration
		if !m.last.IsZero() {
			delta = now.Sub(m.last)
		}
		m.last = now
		m.session.Step(m.intent, delta)
		m.record()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := w - panelWidth - 6
	ch := h - 4
	if cw < 16 || ch < 8 {
		return
	}
	m.width, m.height = cw, ch
	m.view = NewCanvas(cw, ch)
	m.mapView = NewCanvas(panelWidth-6, ch/2)
	m.minimap.Fit(m.mapView)
}

func (m *Model) record() {
	if len(m.pathHistory) == historyCapacity {
		copy(m.pathHistory, m.pathHistory[1:])
		m.pathHistory = m.pathHistory[:historyCapacity-1]
	}
	m.pathHistory = append(m.pathHistory, m.path.Value())
}

func (m Model) View() string {
	st := m.session.Camera()

	m.view.Clear()
	RenderView(m.view, m.wire, EyeFor(st, m.fov))
	left := viewStyle().Render(m.view.String())

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")

	if _, ok := m.goal.Step(); ok {
		s.WriteString(goalStyle().Render("END REACHED") + "\n\n")
	} else {
		s.WriteString(valueStyle().Render("EXPLORING") + "\n\n")
	}

	if m.showMap {
		m.mapView.Clear()
		m.minimap.Draw(m.mapView, st)
		s.WriteString(m.mapView.String() + "\n")
	}

	cell := m.session.InCell()
	rows := [][2]string{
		{"Cell", cell.String()},
		{"Position", fmt.Sprintf("%.2f, %.2f", st.X, st.Z)},
		{"Heading", fmt.Sprintf("%.1f°", normalizeDegrees(st.Heading))},
		{"Steps", fmt.Sprintf("%d", m.session.SimulationTime())},
		{"Time", fmt.Sprintf("%.1fs", m.session.Elapsed().Seconds())},
		{"Path", fmt.Sprintf("%.2f", m.path.Value())},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle().Render(r[1]) + "\n")
	}

	s.WriteString("\n" + m.heldKeys() + "\n")

	if len(m.pathHistory) > 1 {
		chart := asciigraph.Plot(m.pathHistory, asciigraph.Height(3), asciigraph.Width(panelWidth-12), asciigraph.Caption("path"))
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(panelWidth-6) + "\n↑↓←→:Move SP:Stop R:Reset\nM:Map T:Theme ?:Help Q:Quit"))
	right := panelStyle.Width(panelWidth).Render(s.String())

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.showHelp {
		return helpOverlay + "\n" + main
	}
	return main
}

func (m Model) heldKeys() string {
	keys := []struct {
		label string
		held  bool
	}{
		{"▲", m.intent.Forward},
		{"▼", m.intent.Backward},
		{"◀", m.intent.Left},
		{"▶", m.intent.Right},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = keyStyle(k.held).Render(k.label)
	}
	return strings.Join(parts, " ")
}

func normalizeDegrees(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Up/W     - Walk forward (latches)   ║
║  Down/S   - Walk backward (latches)  ║
║  Left/A   - Turn left (latches)      ║
║  Right/D  - Turn right (latches)     ║
║  Space    - Release all keys         ║
║  R        - Back to the start        ║
║  M        - Toggle minimap           ║
║  T        - Cycle themes             ║
║  Q/Esc    - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`

// Run starts the walkthrough in the alternate screen and blocks until quit.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
