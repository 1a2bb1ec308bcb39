package fireworks

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"

	"github.com/san-kum/physim/internal/vec"
)

// Pattern selects how a burst distributes its sparks.
type Pattern int

const (
	Circular Pattern = iota
	Starburst
	Cascade
)

// Patterns lists every pattern in declaration order.
var Patterns = []Pattern{Circular, Starburst, Cascade}

func (p Pattern) String() string {
	switch p {
	case Circular:
		return "circular"
	case Starburst:
		return "starburst"
	case Cascade:
		return "cascade"
	}
	return fmt.Sprintf("Pattern(%d)", int(p))
}

func ParsePattern(s string) (Pattern, error) {
	for _, p := range Patterns {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern: %s", s)
}

func RandomPattern(rng *rand.Rand) Pattern {
	return Patterns[rng.Intn(len(Patterns))]
}

const (
	starburstSpeedLo = 2.0 / 3
	starburstSpeedHi = 4.0 / 3
	starburstShift   = math.Pi / 8
	cascadeSpread    = 2 * math.Pi / 3
	colorJitter      = 14
)

// burst generates n sparks at origin. Angles follow screen orientation, so
// pi/2 points down.
func burst(p Pattern, rng *rand.Rand, n int, origin vec.Vec2, c color.RGBA, b Burst) []Particle {
	ps := make([]Particle, n)
	for k := range ps {
		var angle, speed float64
		switch p {
		case Circular:
			angle = 2 * math.Pi * float64(k) / float64(n)
			speed = uniform(rng, b.MinSpeed, b.MaxSpeed)
		case Starburst:
			angle = rng.Float64() * 2 * math.Pi
			if k%2 == 0 {
				angle += starburstShift
			}
			speed = uniform(rng, b.MinSpeed*starburstSpeedLo, b.MaxSpeed*starburstSpeedHi)
		case Cascade:
			angle = math.Pi/2 + (rng.Float64()*2-1)*cascadeSpread
			speed = uniform(rng, b.MinSpeed, b.MaxSpeed) * uniform(rng, 0.5, 1.5)
		}
		ps[k] = Particle{
			Pos:      origin,
			Vel:      vec.FromPolar(angle, speed),
			Color:    jitter(rng, c),
			Lifetime: uniform(rng, b.MinLifetime, b.MaxLifetime),
		}
	}
	return ps
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func jitter(rng *rand.Rand, c color.RGBA) color.RGBA {
	ch := func(v uint8) uint8 {
		n := int(v) + rng.Intn(2*colorJitter+1) - colorJitter
		return uint8(min(max(n, 0), 255))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: 255}
}
