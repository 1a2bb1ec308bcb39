package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/physim/internal/analysis"
	"github.com/san-kum/physim/internal/world"
)

const background = "#0a0a0a"

// SVG renders world frames as standalone SVG documents.
type SVG struct {
	sb     strings.Builder
	closed bool
}

var _ world.Renderer = (*SVG)(nil)

func NewSVG() *SVG { return &SVG{} }

// Snapshot renders the current frame of w.
func Snapshot(w *world.World) string {
	s := NewSVG()
	w.Render(s)
	return s.String()
}

func (s *SVG) Begin(width, height float64) {
	s.sb.Reset()
	s.closed = false
	fmt.Fprintf(&s.sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func (s *SVG) Body(b world.BodyView) {
	fmt.Fprintf(&s.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Pos.X(), b.Pos.Y(), b.Radius, hex(b.Color))
}

func (s *SVG) Particle(p world.ParticleView) {
	if p.Alpha == 0 {
		return
	}
	fmt.Fprintf(&s.sb, `<circle cx="%.1f" cy="%.1f" r="2" fill="%s" fill-opacity="%.3f"/>
`, p.Pos.X(), p.Pos.Y(), hex(p.Color), float64(p.Alpha)/255)
}

func (s *SVG) Pendulum(p world.PendulumView) {
	if len(p.Trace) > 1 {
		s.sb.WriteString(`<path fill="none" stroke="#00ffff" stroke-opacity="0.5" stroke-width="1.5" d="M`)
		for i, pt := range p.Trace {
			if i > 0 {
				s.sb.WriteString(" L")
			}
			fmt.Fprintf(&s.sb, "%.1f,%.1f", pt.X(), pt.Y())
		}
		s.sb.WriteString("\"/>\n")
	}
	fmt.Fprintf(&s.sb, `<polyline fill="none" stroke="#ffffff" stroke-width="2" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>
`, p.Pivot.X(), p.Pivot.Y(), p.Bob1.X(), p.Bob1.Y(), p.Bob2.X(), p.Bob2.Y())
	fmt.Fprintf(&s.sb, `<circle cx="%.1f" cy="%.1f" r="8" fill="#ff00ff"/>
<circle cx="%.1f" cy="%.1f" r="8" fill="#ffff00"/>
`, p.Bob1.X(), p.Bob1.Y(), p.Bob2.X(), p.Bob2.Y())
}

func (s *SVG) End() {
	if !s.closed {
		s.sb.WriteString("</svg>\n")
		s.closed = true
	}
}

func (s *SVG) String() string { return s.sb.String() }

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.sb.String())
	return int64(n), err
}

func hex(c color.RGBA) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}

// TrajectoryToSVG draws points as one path scaled to fill the image,
// with y up.
func TrajectoryToSVG(points []analysis.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}
