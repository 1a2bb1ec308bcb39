package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/world"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var modeInfo = map[string]string{
	"all":       "everything at once",
	"balls":     "elastic collisions",
	"fireworks": "bursts and sparks",
	"pendulum":  "chaotic double pendulum",
}

type entry struct {
	mode, preset string
}

// Menu picks a preset, then hands over to the live view.
type Menu struct {
	entries []entry
	cursor  int
	seed    int64
	logger  *slog.Logger
	live    *Model
	err     error
}

func NewMenu(seed int64, logger *slog.Logger) Menu {
	var entries []entry
	for _, mode := range config.Modes {
		for _, name := range config.ListPresets(mode) {
			entries = append(entries, entry{mode, name})
		}
	}
	return Menu{entries: entries, seed: seed, logger: logger}
}

// RunMenu blocks until the user quits.
func RunMenu(seed int64, logger *slog.Logger) error {
	p := tea.NewProgram(NewMenu(seed, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.entries)-1)
	case "enter":
		w, err := m.build(m.entries[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		live := NewModel(w)
		m.live = &live
		return m, live.Init()
	}
	return m, nil
}

func (m Menu) build(e entry) (*world.World, error) {
	cfg := config.GetPreset(e.mode, e.preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %s/%s", e.mode, e.preset)
	}
	cfg.Seed = m.seed
	opts := []world.Option{}
	if m.logger != nil {
		opts = append(opts, world.WithLogger(m.logger))
	}
	return world.New(cfg, opts...)
}

// Selected is the highlighted mode and preset.
func (m Menu) Selected() (mode, preset string) {
	e := m.entries[m.cursor]
	return e.mode, e.preset
}

func (m Menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	var s strings.Builder
	s.WriteString(headerStyle().Render("PHYSIM") + "\n")
	for i, e := range m.entries {
		line := fmt.Sprintf("%-10s %-12s %s", e.mode, e.preset, dim.Render(modeInfo[e.mode]))
		if i == m.cursor {
			s.WriteString(cyan.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle().Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("↑↓:Select Enter:Start Q:Quit"))
	return canvasStyle.Render(s.String())
}
