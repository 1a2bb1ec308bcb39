package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/integrators"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vec"
)

// harmonic is x'' = -x, a non-chaotic reference system.
var harmonic = dynamo.DerivFunc(func(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
})

func TestLyapunovChaoticVsRegular(t *testing.T) {
	dp := physics.NewDoublePendulum()
	chaotic := LyapunovExponent(dp, integrators.NewRK4(), dp.StateAt(math.Pi/2, math.Pi/2), 0.005, 20, 1e-8)
	regular := LyapunovExponent(dp, integrators.NewRK4(), dp.StateAt(0.05, 0.05), 0.005, 20, 1e-8)

	if chaotic <= 0.3 {
		t.Errorf("expected clearly positive exponent for large swing, got %v", chaotic)
	}
	if regular >= chaotic {
		t.Errorf("small swing exponent %v should be below large swing %v", regular, chaotic)
	}
}

func TestLyapunovHarmonicNearZero(t *testing.T) {
	l := LyapunovExponent(harmonic, integrators.NewRK4(), dynamo.State{1, 0}, 0.01, 50, 1e-8)
	if math.Abs(l) > 0.1 {
		t.Errorf("harmonic oscillator exponent %v, want about 0", l)
	}
}

func TestLyapunovDegenerate(t *testing.T) {
	if l := LyapunovExponent(harmonic, integrators.NewRK4(), nil, 0.01, 1, 1e-8); l != 0 {
		t.Errorf("empty state gave %v", l)
	}
	if l := LyapunovExponent(harmonic, integrators.NewRK4(), dynamo.State{1, 0}, 0.01, 0, 1e-8); l != 0 {
		t.Errorf("zero duration gave %v", l)
	}
}

func TestLyapunovSpectrumLength(t *testing.T) {
	dp := physics.NewDoublePendulum()
	s := LyapunovSpectrum(dp, integrators.NewRK4(), dp.StateAt(1, 1), 0.01, 1, 1e-8)
	if len(s) != 4 {
		t.Fatalf("expected 4 values, got %d", len(s))
	}
}

func TestGeneratePortrait(t *testing.T) {
	p := GeneratePortrait(harmonic, integrators.NewRK4(), dynamo.State{1, 0}, 0, 1, 0.01, 2*math.Pi)
	if p == nil {
		t.Fatal("nil portrait")
	}
	for _, pt := range p.Points {
		if r := math.Hypot(pt.X, pt.Y); math.Abs(r-1) > 1e-6 {
			t.Fatalf("point %v off the unit circle", pt)
		}
	}
	if GeneratePortrait(harmonic, integrators.NewRK4(), dynamo.State{1, 0}, 0, 2, 0.01, 1) != nil {
		t.Error("out of range index should give nil")
	}

	art := p.ToASCII(40, 20)
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 lines, got %d", len(lines))
	}
	if !strings.ContainsRune(art, '•') || !strings.ContainsRune(art, '│') {
		t.Error("expected points and a vertical axis")
	}
}

func TestPathPortraitFlipsY(t *testing.T) {
	p := PathPortrait([]vec.Vec2{vec.New(1, 2), vec.New(3, -4)})
	if p.Points[0] != (Point{1, -2}) || p.Points[1] != (Point{3, 4}) {
		t.Errorf("unexpected points %v", p.Points)
	}
	var empty *Portrait
	if empty.ToASCII(10, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}

func TestPoincareSection(t *testing.T) {
	// x crosses zero upward once per period 2π.
	s := GeneratePoincareSection(harmonic, integrators.NewRK4(), dynamo.State{0, -1}, 0, 0, 0, 1, 0.001, 4*math.Pi+0.1)
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 crossings, got %d", len(s.Points))
	}
	for _, p := range s.Points {
		if math.Abs(p.X) > 1e-6 || math.Abs(p.Y-1) > 1e-3 {
			t.Errorf("crossing at %v, want (0, 1)", p)
		}
	}
	if GeneratePoincareSection(harmonic, integrators.NewRK4(), dynamo.State{0, 1}, 5, 0, 0, 1, 0.01, 1) != nil {
		t.Error("out of range index should give nil")
	}
	if (&PoincareSection{}).ToASCII(10, 5) != "no crossings detected" {
		t.Error("empty section message")
	}
}

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	data := make([]float64, 1024)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*5*float64(i)*dt)
	}
	f := DominantFrequency(data, dt)
	if math.Abs(f-5) > 0.2 {
		t.Errorf("dominant frequency %v, want 5", f)
	}
}

func TestFFTPadsToPowerOfTwo(t *testing.T) {
	if n := len(FFT(make([]float64, 100))); n != 128 {
		t.Errorf("expected 128 bins, got %d", n)
	}
	ps := PowerSpectrum([]float64{1, 1, 1, 1})
	if math.Abs(ps[0]-4) > 1e-12 || math.Abs(ps[1]) > 1e-12 {
		t.Errorf("constant signal spectrum %v", ps)
	}
}

func TestBifurcationDiagram(t *testing.T) {
	dp := physics.NewDoublePendulum()
	pts, err := BifurcationDiagram(dp, integrators.NewRK4(), "gravity", 5, 15, 3, 0, 1, dp.StateAt(0.3, 0.3), 0.005, 1, 8)
	if err != nil {
		t.Fatalf("bifurcation: %v", err)
	}
	if len(pts) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(pts))
	}
	for _, p := range pts {
		if len(p.Values) == 0 {
			t.Errorf("no crossings at gravity %v", p.Param)
		}
	}
	if dp.Gravity != 9.81 {
		t.Errorf("gravity not restored: %v", dp.Gravity)
	}
	if BifurcationToASCII(pts, 30, 10) == "" {
		t.Error("empty plot")
	}

	if _, err := BifurcationDiagram(dp, integrators.NewRK4(), "colour", 0, 1, 2, 0, 1, dp.StateAt(0, 0), 0.01, 0, 1); err == nil {
		t.Error("expected unknown param error")
	}
	if _, err := BifurcationDiagram(harmonic, integrators.NewRK4(), "k", 0, 1, 2, 0, 1, dynamo.State{1, 0}, 0.01, 0, 1); err == nil {
		t.Error("expected error for non-tunable system")
	}
}
