package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physim/internal/world"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	kickStep        = 0.25
)

type TickMsg time.Time

// Model is the live view: one world stepped once per frame.
type Model struct {
	w        *world.World
	canvas   *Canvas
	renderer *CanvasRenderer
	frame    time.Duration

	mode         string
	hasFireworks bool
	hasPendulum  bool
	launchSlot   int

	energyHistory []float64
	status        string
	showHelp      bool
}

func NewModel(w *world.World) Model {
	cfg := w.Config()
	c := NewCanvas(width, height)
	m := Model{
		w:             w,
		canvas:        c,
		renderer:      NewCanvasRenderer(c),
		frame:         time.Duration(cfg.Dt * float64(time.Second)),
		mode:          cfg.Mode,
		hasFireworks:  cfg.HasFireworks(),
		hasPendulum:   cfg.HasPendulum(),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	w.Render(m.renderer)
	return m
}

// Run blocks until the user quits.
func Run(w *world.World) error {
	p := tea.NewProgram(NewModel(w), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space":
			m.w.TogglePause()
		case "r":
			m.apply(world.Command{Kind: world.CmdReset})
			m.energyHistory = m.energyHistory[:0]
		case "f":
			m.apply(m.nextLaunch())
		case "left", "h":
			m.kick(-kickStep)
		case "right", "l":
			m.kick(kickStep)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.w.Render(m.renderer)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if cmd, ok := m.clickCommand(msg.X, msg.Y, msg.Button); ok {
			m.apply(cmd)
			m.w.Render(m.renderer)
		}
	case TickMsg:
		if err := m.w.Tick(); err != nil {
			m.status = err.Error()
		}
		if !m.w.Paused() {
			m.record()
		}
		m.w.Render(m.renderer)
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) apply(cmd world.Command) {
	if err := m.w.Apply(cmd); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *Model) kick(delta float64) {
	pv, ok := m.w.Pendulum()
	if !ok {
		m.status = "no pendulum in this world"
		return
	}
	m.apply(world.Command{Kind: world.CmdPerturbTheta1, Theta1: pv.Theta1 + delta})
}

// nextLaunch walks launch positions across five evenly spaced slots.
func (m *Model) nextLaunch() world.Command {
	b := m.w.Bounds()
	m.launchSlot = (m.launchSlot + 1) % 5
	return world.Command{Kind: world.CmdLaunchAt, X: b.Width * float64(m.launchSlot+1) / 6}
}

// clickCommand maps a terminal cell to a world command. Clicks outside
// the canvas are ignored.
func (m Model) clickCommand(col, row int, button tea.MouseButton) (world.Command, bool) {
	cx, cy := col-canvasLeft, row-canvasTop
	if cx < 0 || cy < 0 || cx >= m.canvas.Width || cy >= m.canvas.Height {
		return world.Command{}, false
	}
	p := m.renderer.CellCenter(cx, cy)

	perturb := button == tea.MouseButtonRight || !m.hasFireworks
	switch {
	case perturb && m.hasPendulum:
		return world.Command{Kind: world.CmdPerturbTheta1, Theta1: m.w.PointerAngle(p.X(), p.Y())}, true
	case button == tea.MouseButtonLeft && m.hasFireworks:
		return world.Command{Kind: world.CmdLaunchAt, X: p.X()}, true
	}
	return world.Command{}, false
}

func (m *Model) record() {
	e := m.w.KineticEnergy()
	if m.mode == "pendulum" {
		e = m.w.PendulumEnergy()
	}
	m.energyHistory = append(m.energyHistory, e)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	cfg := m.w.Config()
	s.WriteString(headerStyle().Render(strings.ToUpper(cfg.Mode)) + "\n")
	if m.w.Paused() {
		s.WriteString(statusStyle(true).Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(statusStyle(false).Render("RUNNING") + "\n\n")
	}

	s.WriteString(stat("Time", fmt.Sprintf("%.2fs", m.w.Time())))
	s.WriteString(stat("Step", fmt.Sprintf("%d", m.w.StepCount())))
	if cfg.HasBalls() {
		p := m.w.Momentum()
		s.WriteString(stat("Bodies", fmt.Sprintf("%d", len(m.w.Bodies()))))
		s.WriteString(stat("Kinetic", fmt.Sprintf("%.3g", m.w.KineticEnergy())))
		s.WriteString(stat("Momentum", fmt.Sprintf("(%.3g, %.3g)", p.X(), p.Y())))
		s.WriteString(stat("Collisions", fmt.Sprintf("%d", m.w.Collisions())))
	}
	if m.hasFireworks {
		s.WriteString(stat("Rockets", fmt.Sprintf("%d", m.w.EmitterCount())))
		s.WriteString(stat("Sparks", fmt.Sprintf("%d", m.w.ParticleCount())))
		s.WriteString(stat("Launched", fmt.Sprintf("%d", m.w.Launches())))
	}
	if pv, ok := m.w.Pendulum(); ok {
		s.WriteString(stat("θ1 / θ2", fmt.Sprintf("%.2f / %.2f", pv.Theta1, pv.Theta2)))
		s.WriteString(stat("ω1 / ω2", fmt.Sprintf("%.2f / %.2f", pv.Omega1, pv.Omega2)))
		s.WriteString(stat("Energy", fmt.Sprintf("%.4f", pv.Energy)))
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Foreground(CurrentTheme.Accent).Render(chart) + "\n")
		s.WriteString(Sparkline(m.energyHistory, 30) + "\n")
	}
	if m.status != "" {
		s.WriteString(errorStyle().Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset F:Fire ←→:Kick\nT:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		help := helpBox.Render(strings.Join([]string{
			"Space      pause / resume",
			"R          reset from seed",
			"F          launch a firework",
			"← →        kick the upper arm",
			"Left click launch under pointer",
			"Right click swing arm to pointer",
			"T          cycle themes",
			"?          toggle this help",
			"Q          quit",
		}, "\n"))
		return mainView + "\n" + help
	}
	return mainView
}
