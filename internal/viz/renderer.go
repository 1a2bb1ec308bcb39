package viz

import (
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/physim/internal/vec"
	"github.com/san-kum/physim/internal/world"
)

// CanvasRenderer draws world frames onto a Canvas, scaling world pixels
// to dots independently on each axis.
type CanvasRenderer struct {
	c      *Canvas
	sx, sy float64
}

var _ world.Renderer = (*CanvasRenderer)(nil)

func NewCanvasRenderer(c *Canvas) *CanvasRenderer {
	return &CanvasRenderer{c: c, sx: 1, sy: 1}
}

func (r *CanvasRenderer) Begin(width, height float64) {
	r.c.Clear()
	r.sx = float64(r.c.SubWidth()) / width
	r.sy = float64(r.c.SubHeight()) / height
}

func (r *CanvasRenderer) dot(p vec.Vec2) (int, int) {
	return int(math.Floor(p.X() * r.sx)), int(math.Floor(p.Y() * r.sy))
}

func (r *CanvasRenderer) Body(b world.BodyView) {
	x, y := r.dot(b.Pos)
	r.c.FillEllipse(x, y, b.Radius*r.sx, b.Radius*r.sy, rgb(b.Color))
}

func (r *CanvasRenderer) Particle(p world.ParticleView) {
	if p.Alpha == 0 {
		return
	}
	x, y := r.dot(p.Pos)
	r.c.SetColor(x, y, rgb(p.Color))
}

func (r *CanvasRenderer) Pendulum(p world.PendulumView) {
	for _, pt := range p.Trace {
		x, y := r.dot(pt)
		r.c.SetColor(x, y, CurrentTheme.Muted)
	}
	px, py := r.dot(p.Pivot)
	x1, y1 := r.dot(p.Bob1)
	x2, y2 := r.dot(p.Bob2)
	r.c.DrawLine(px, py, x1, y1, CurrentTheme.Text)
	r.c.DrawLine(x1, y1, x2, y2, CurrentTheme.Text)
	r.c.FillEllipse(x1, y1, 1, 1, CurrentTheme.Primary)
	r.c.FillEllipse(x2, y2, 1.5, 1.5, CurrentTheme.Accent)
}

func (r *CanvasRenderer) End() {}

// ToWorld maps a dot back to world pixels at the dot's center.
func (r *CanvasRenderer) ToWorld(x, y int) vec.Vec2 {
	return vec.New((float64(x)+0.5)/r.sx, (float64(y)+0.5)/r.sy)
}

// CellCenter is the world point under the middle of a terminal cell.
func (r *CanvasRenderer) CellCenter(col, row int) vec.Vec2 {
	return vec.New(float64(col*2+1)/r.sx, float64(row*4+2)/r.sy)
}

func rgb(c color.RGBA) lipgloss.Color {
	col, _ := colorful.MakeColor(c)
	return lipgloss.Color(col.Hex())
}
