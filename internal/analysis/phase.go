package analysis

import (
	"strings"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

type Point struct{ X, Y float64 }

// Portrait holds a 2D projection of a trajectory.
type Portrait struct {
	XIndex, YIndex int
	Points         []Point
}

// GeneratePortrait integrates from x0 and records (x[xIdx], x[yIdx]) after
// every step. It returns nil when either index is out of range.
func GeneratePortrait(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	xIdx, yIdx int,
	dt, duration float64,
) *Portrait {
	if xIdx >= len(x0) || yIdx >= len(x0) || xIdx < 0 || yIdx < 0 {
		return nil
	}
	p := &Portrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, int(duration/dt)+1),
	}
	x := x0.Clone()
	t := 0.0
	for t < duration {
		x = integ.Step(sys, x, t, dt)
		t += dt
		p.Points = append(p.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}
	return p
}

// PathPortrait converts a screen-space path (y down) into a portrait with
// y up, e.g. the oscillator's bob trace.
func PathPortrait(path []vec.Vec2) *Portrait {
	p := &Portrait{XIndex: 0, YIndex: 1, Points: make([]Point, len(path))}
	for i, v := range path {
		p.Points[i] = Point{X: v.X(), Y: -v.Y()}
	}
	return p
}

// ToASCII plots the portrait on a width x height character grid with
// 10% padding, drawing the axes where they are in view.
func (p *Portrait) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 1 || height <= 1 {
		return ""
	}
	return plotPoints(p.Points, width, height, '•', true)
}

// PoincareSection records points where a coordinate crosses a threshold
// going upward.
type PoincareSection struct {
	Points []Point
}

func GeneratePoincareSection(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	crossIdx int,
	threshold float64,
	recordX, recordY int,
	dt, duration float64,
) *PoincareSection {
	n := len(x0)
	if crossIdx >= n || recordX >= n || recordY >= n {
		return nil
	}
	section := &PoincareSection{}
	x := x0.Clone()
	t := 0.0
	prev := x[crossIdx]

	for t < duration {
		next := integ.Step(sys, x, t, dt)
		t += dt
		curr := next[crossIdx]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			section.Points = append(section.Points, Point{
				X: x[recordX] + frac*(next[recordX]-x[recordX]),
				Y: x[recordY] + frac*(next[recordY]-x[recordY]),
			})
		}
		prev = curr
		x = next
	}
	return section
}

func (s *PoincareSection) ToASCII(width, height int) string {
	if s == nil || len(s.Points) == 0 {
		return "no crossings detected"
	}
	return plotPoints(s.Points, width, height, '•', false)
}

func plotPoints(points []Point, width, height int, mark rune, axes bool) string {
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = mark
		}
	}

	if axes {
		if minX <= 0 && maxX >= 0 {
			col := int(-minX / rangeX * float64(width-1))
			for row := 0; row < height; row++ {
				if canvas[row][col] == ' ' {
					canvas[row][col] = '│'
				}
			}
		}
		if minY <= 0 && maxY >= 0 {
			row := height - 1 - int(-minY/rangeY*float64(height-1))
			for col := 0; col < width; col++ {
				if canvas[row][col] == ' ' {
					canvas[row][col] = '─'
				}
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
