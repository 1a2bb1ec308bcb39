package fireworks

import (
	"math/rand"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/rigid"
	"github.com/san-kum/physim/internal/vec"
)

// Launch holds what a spawner needs to place rockets.
type Launch struct {
	MinSpeed, MaxSpeed float64
	// Margin keeps automatic launches away from the side walls.
	Margin float64
	Width  float64
	Floor  float64
}

func (l Launch) Validate() error {
	if !positiveRange(l.MinSpeed, l.MaxSpeed) {
		return dynamo.Invalid("fireworks.launch_speed", [2]float64{l.MinSpeed, l.MaxSpeed}, "must be positive with min <= max")
	}
	if l.Margin < 0 || 2*l.Margin > l.Width {
		return dynamo.Invalid("fireworks.launch_margin", l.Margin, "must be in [0, width/2]")
	}
	return nil
}

// Spawner creates emitters on command and on schedule.
type Spawner struct {
	launch Launch
	sched  *Scheduler
}

func NewSpawner(l Launch, s Schedule) (*Spawner, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	sc, err := NewScheduler(s)
	if err != nil {
		return nil, err
	}
	return &Spawner{launch: l, sched: sc}, nil
}

// LaunchAt creates a rocket at the floor at x.
func (sp *Spawner) LaunchAt(rng *rand.Rand, x float64) (*Emitter, error) {
	if !(x >= 0 && x <= sp.launch.Width) {
		return nil, dynamo.ErrOutOfBounds
	}
	return sp.rocket(rng, x), nil
}

// rocket builds an emitter at x without a bounds check.
func (sp *Spawner) rocket(rng *rand.Rand, x float64) *Emitter {
	speed := uniform(rng, sp.launch.MinSpeed, sp.launch.MaxSpeed)
	return NewEmitter(vec.New(x, sp.launch.Floor), speed, rigid.RandomColor(rng))
}

// Auto returns a new emitter when the schedule is due, or nil.
func (sp *Spawner) Auto(rng *rand.Rand, dt float64) *Emitter {
	if !sp.sched.Due(rng, dt) {
		return nil
	}
	// margins are validated to keep x inside [0, Width]
	x := uniform(rng, sp.launch.Margin, sp.launch.Width-sp.launch.Margin)
	return sp.rocket(rng, x)
}

func (sp *Spawner) Reset() { sp.sched.Reset() }
