package export

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/physim/internal/analysis"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/vec"
	"github.com/san-kum/physim/internal/world"
)

func TestSnapshotAllMode(t *testing.T) {
	cfg := config.DefaultConfig()
	w, err := world.New(cfg)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	if err := w.LaunchFireworkAt(400); err != nil {
		t.Fatalf("launch: %v", err)
	}

	out := Snapshot(w)
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not a complete document:\n%s", out)
	}
	// balls, the rocket and two bobs
	if n := strings.Count(out, "<circle"); n != cfg.BallCount+3 {
		t.Errorf("expected %d circles, got %d", cfg.BallCount+3, n)
	}
	if !strings.Contains(out, "<polyline") {
		t.Error("missing pendulum arms")
	}
	if !strings.Contains(out, `width="800"`) {
		t.Error("missing width")
	}
}

func TestSVGRendererElements(t *testing.T) {
	s := NewSVG()
	s.Begin(100, 50)
	s.Body(world.BodyView{Pos: vec.New(10, 20), Radius: 5, Color: color.RGBA{R: 255, G: 16, B: 1, A: 255}})
	s.Particle(world.ParticleView{Pos: vec.New(1, 1), Color: color.RGBA{A: 255}, Alpha: 0})
	s.Particle(world.ParticleView{Pos: vec.New(2, 2), Color: color.RGBA{G: 255, A: 255}, Alpha: 51})
	s.End()
	s.End()

	out := s.String()
	if !strings.Contains(out, `fill="#ff1001"`) {
		t.Errorf("body color not rendered:\n%s", out)
	}
	if strings.Count(out, "<circle") != 2 {
		t.Errorf("invisible particle should be skipped:\n%s", out)
	}
	if !strings.Contains(out, `fill-opacity="0.200"`) {
		t.Error("particle alpha not rendered")
	}
	if strings.Count(out, "</svg>") != 1 {
		t.Error("document closed twice")
	}

	var sb strings.Builder
	if _, err := s.WriteTo(&sb); err != nil || sb.String() != out {
		t.Error("WriteTo mismatch")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]analysis.Point{{X: 1, Y: 1}}, 10, 10, "#fff") != "" {
		t.Error("single point should render nothing")
	}
	out := TrajectoryToSVG([]analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, 200, 100, "#00ff00")
	if !strings.Contains(out, `stroke="#00ff00"`) || strings.Count(out, " L") != 2 {
		t.Errorf("unexpected path:\n%s", out)
	}
}
