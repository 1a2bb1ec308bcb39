package viz

import (
	"image/color"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/vec"
	"github.com/san-kum/physim/internal/world"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet mismatch")
	}
	c.Unset(3, 3)
	if c.Grid[0][1] != blank {
		t.Errorf("unset left %U", c.Grid[0][1])
	}
	c.Set(-1, 0)
	c.Set(100, 0)
	c.Clear()
	if c.Grid[0][0] != blank {
		t.Error("clear failed")
	}
}

func TestCanvasLineAndEllipse(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 0, "")
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Fatalf("dot %d missing from line", x)
		}
	}

	c.Clear()
	c.FillEllipse(10, 10, 3, 3, "#ff0000")
	if !c.IsSet(10, 10) || !c.IsSet(13, 10) || c.IsSet(13, 13) {
		t.Error("ellipse shape wrong")
	}
	if c.Colors[10/4][10/2] != "#ff0000" {
		t.Error("color not recorded")
	}
	if lines := strings.Count(c.String(), "\n"); lines != 5 {
		t.Errorf("expected 5 rows, got %d", lines)
	}
}

func TestCanvasRendererScales(t *testing.T) {
	c := NewCanvas(80, 24)
	r := NewCanvasRenderer(c)
	r.Begin(800, 600)

	r.Body(world.BodyView{Pos: vec.New(400, 300), Radius: 20, Color: color.RGBA{R: 200, A: 255}})
	if !c.IsSet(80, 48) {
		t.Error("body center not drawn")
	}
	r.Particle(world.ParticleView{Pos: vec.New(10, 10), Alpha: 0})
	if c.IsSet(2, 1) {
		t.Error("invisible particle drawn")
	}

	p := r.CellCenter(40, 12)
	if math.Abs(p.X()-405) > 1e-9 || math.Abs(p.Y()-312.5) > 1e-9 {
		t.Errorf("cell center %v", p)
	}
}

func newLive(t *testing.T, mode string) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Mode = mode
	w, err := world.New(cfg)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return NewModel(w)
}

func TestClickCommand(t *testing.T) {
	all := newLive(t, "all")
	cmd, ok := all.clickCommand(canvasLeft+40, canvasTop+20, tea.MouseButtonLeft)
	if !ok || cmd.Kind != world.CmdLaunchAt || math.Abs(cmd.X-405) > 1e-9 {
		t.Errorf("left click in all mode: %v %v", cmd, ok)
	}
	cmd, ok = all.clickCommand(canvasLeft+40, canvasTop+20, tea.MouseButtonRight)
	if !ok || cmd.Kind != world.CmdPerturbTheta1 {
		t.Errorf("right click in all mode: %v %v", cmd, ok)
	}
	if _, ok := all.clickCommand(0, 0, tea.MouseButtonLeft); ok {
		t.Error("click on padding should be ignored")
	}

	pend := newLive(t, "pendulum")
	cmd, ok = pend.clickCommand(canvasLeft+40, canvasTop+23, tea.MouseButtonLeft)
	if !ok || cmd.Kind != world.CmdPerturbTheta1 || cmd.Theta1 > 0.1 {
		t.Errorf("click below pivot should hang the arm: %v %v", cmd, ok)
	}

	balls := newLive(t, "balls")
	if _, ok := balls.clickCommand(canvasLeft+5, canvasTop+5, tea.MouseButtonLeft); ok {
		t.Error("balls mode has nothing to click")
	}
}

func TestLiveKeys(t *testing.T) {
	m := newLive(t, "all")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	if !m.w.Paused() {
		t.Fatal("space should pause")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = next.(Model)
	if m.w.EmitterCount() != 1 {
		t.Errorf("f should launch, have %d emitters", m.w.EmitterCount())
	}

	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.w.StepCount() != 0 {
		t.Error("paused world stepped")
	}

	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show PAUSED")
	}
}

func TestMenuStartsLive(t *testing.T) {
	m := NewMenu(3, nil)
	if len(m.entries) == 0 {
		t.Fatal("no presets listed")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Menu)
	mode, preset := m.Selected()
	if mode == "" || preset == "" {
		t.Fatal("nothing selected")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Menu)
	if m.live == nil || cmd == nil {
		t.Fatalf("enter should start the live view, err=%v", m.err)
	}
	if m.live.w.Config().Seed != 3 {
		t.Error("menu seed not applied")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 2); got != "▁█" {
		t.Errorf("got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("got %q", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)
	seen := map[string]bool{}
	for range Themes {
		seen[CurrentTheme.Name] = true
		NextTheme()
	}
	if len(seen) != len(Themes) || CurrentTheme.Name != ThemeCyberpunk.Name {
		t.Errorf("theme cycle visited %v", seen)
	}
}
