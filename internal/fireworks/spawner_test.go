package fireworks

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/physim/internal/dynamo"
)

var testLaunch = Launch{MinSpeed: 480, MaxSpeed: 720, Margin: 50, Width: 800, Floor: 600}

func TestSpawnerLaunchAt(t *testing.T) {
	g := NewWithT(t)
	sp, err := NewSpawner(testLaunch, Schedule{Policy: Manual})
	g.Expect(err).NotTo(HaveOccurred())
	rng := rand.New(rand.NewSource(1))

	e, err := sp.LaunchAt(rng, 123)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(e.Phase()).To(Equal(Ascending))
	g.Expect(e.Pos().X()).To(Equal(123.0))
	g.Expect(e.Pos().Y()).To(Equal(600.0))
	g.Expect(-e.Vel().Y()).To(BeNumerically(">=", 480))
	g.Expect(-e.Vel().Y()).To(BeNumerically("<=", 720))
	g.Expect(e.Color().A).To(Equal(uint8(255)))

	for _, x := range []float64{-1, 801} {
		_, err := sp.LaunchAt(rng, x)
		g.Expect(errors.Is(err, dynamo.ErrOutOfBounds)).To(BeTrue())
	}
}

func TestSchedulerManualNeverFires(t *testing.T) {
	sp, _ := NewSpawner(testLaunch, Schedule{Policy: Manual})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if e := sp.Auto(rng, 1.0/60); e != nil {
			t.Fatal("manual policy launched")
		}
	}
}

func TestSchedulerBernoulliRate(t *testing.T) {
	g := NewWithT(t)
	sc, err := NewScheduler(Schedule{Policy: Bernoulli, Probability: 0.1})
	g.Expect(err).NotTo(HaveOccurred())
	rng := rand.New(rand.NewSource(2))

	fired := 0
	for i := 0; i < 10000; i++ {
		if sc.Due(rng, 1.0/60) {
			fired++
		}
	}
	g.Expect(fired).To(BeNumerically("~", 1000, 150))
}

func TestSchedulerIntervalBounds(t *testing.T) {
	g := NewWithT(t)
	sc, err := NewScheduler(Schedule{Policy: Interval, MinDelay: 0.5, MaxDelay: 2})
	g.Expect(err).NotTo(HaveOccurred())
	rng := rand.New(rand.NewSource(3))

	dt := 1.0 / 60
	since := 0.0
	launches := 0
	for i := 0; i < 60*60; i++ {
		since += dt
		if sc.Due(rng, dt) {
			g.Expect(since).To(BeNumerically(">=", 0.5-1e-9))
			g.Expect(since).To(BeNumerically("<=", 2+dt+1e-9))
			since = 0
			launches++
		}
	}
	g.Expect(launches).To(BeNumerically(">=", 30))
}

func TestAutoLaunchRespectsMargin(t *testing.T) {
	g := NewWithT(t)
	sp, _ := NewSpawner(testLaunch, Schedule{Policy: Bernoulli, Probability: 1})
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 200; i++ {
		e := sp.Auto(rng, 1.0/60)
		g.Expect(e).NotTo(BeNil())
		g.Expect(e.Pos().X()).To(BeNumerically(">=", 50))
		g.Expect(e.Pos().X()).To(BeNumerically("<=", 750))
	}
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Schedule
	}{
		{"probability above one", Schedule{Policy: Bernoulli, Probability: 1.5}},
		{"negative min delay", Schedule{Policy: Interval, MinDelay: -1, MaxDelay: 1}},
		{"max below min", Schedule{Policy: Interval, MinDelay: 2, MaxDelay: 1}},
		{"unknown policy", Schedule{Policy: Policy(9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEnvValidate(t *testing.T) {
	env := testEnv()
	if err := env.Validate(); err != nil {
		t.Fatalf("default env invalid: %v", err)
	}
	bad := *env
	bad.Burst.MinCount = 0
	if err := bad.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("zero count: %v", err)
	}
	bad = *env
	bad.Drag = 0
	if err := bad.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("zero drag: %v", err)
	}
}
