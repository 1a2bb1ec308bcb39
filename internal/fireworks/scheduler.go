package fireworks

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/physim/internal/dynamo"
)

// Policy decides when launches happen without a user command.
type Policy int

const (
	Manual Policy = iota
	Bernoulli
	Interval
)

func (p Policy) String() string {
	switch p {
	case Manual:
		return "manual"
	case Bernoulli:
		return "bernoulli"
	case Interval:
		return "interval"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{Manual, Bernoulli, Interval} {
		if s == p.String() {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown scheduler policy: %s", s)
}

type Schedule struct {
	Policy      Policy
	Probability float64
	MinDelay    float64
	MaxDelay    float64
}

func (s Schedule) Validate() error {
	switch s.Policy {
	case Manual:
	case Bernoulli:
		if !probability(s.Probability) {
			return dynamo.Invalid("fireworks.scheduler.probability", s.Probability, "must be in [0,1]")
		}
	case Interval:
		if s.MinDelay < 0 || math.IsNaN(s.MinDelay) {
			return dynamo.Invalid("fireworks.scheduler.min_delay", s.MinDelay, "must be >= 0")
		}
		if !(s.MaxDelay >= s.MinDelay) || math.IsInf(s.MaxDelay, 0) {
			return dynamo.Invalid("fireworks.scheduler.max_delay", s.MaxDelay, "must be >= min_delay")
		}
	default:
		return dynamo.Invalid("fireworks.scheduler.policy", s.Policy, "unknown policy")
	}
	return nil
}

// Scheduler evaluates its policy once per step.
type Scheduler struct {
	s       Schedule
	elapsed float64
	wait    float64
	armed   bool
}

func NewScheduler(s Schedule) (*Scheduler, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{s: s}, nil
}

func (sc *Scheduler) Schedule() Schedule { return sc.s }

// Due reports whether a launch should happen this step. Bernoulli draws
// once per call; Interval waits a fresh uniform delay in
// [MinDelay, MaxDelay] after every launch.
func (sc *Scheduler) Due(rng *rand.Rand, dt float64) bool {
	switch sc.s.Policy {
	case Bernoulli:
		return rng.Float64() < sc.s.Probability
	case Interval:
		if !sc.armed {
			sc.wait = uniform(rng, sc.s.MinDelay, sc.s.MaxDelay)
			sc.armed = true
		}
		sc.elapsed += dt
		if sc.elapsed >= sc.wait {
			sc.elapsed = 0
			sc.armed = false
			return true
		}
	}
	return false
}

// Reset forgets elapsed time.
func (sc *Scheduler) Reset() {
	sc.elapsed = 0
	sc.wait = 0
	sc.armed = false
}
