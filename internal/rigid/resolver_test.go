package rigid

import (
	"errors"
	"image/color"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

func mustBody(t *testing.T, x, y, vx, vy, r, m, e float64) *Body {
	t.Helper()
	b, err := NewBody(vec.New(x, y), vec.New(vx, vy), r, m, e, color.RGBA{A: 255})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestResolveHeadOnSwap(t *testing.T) {
	g := NewWithT(t)
	a := mustBody(t, 0, 0, 1, 0, 1, 1, 1)
	b := mustBody(t, 1.9, 0, -1, 0, 1, 1, 1)

	n := NewResolver(nil).Resolve([]*Body{a, b})

	g.Expect(n).To(Equal(1))
	g.Expect(a.Vel.X()).To(BeNumerically("~", -1, 1e-12))
	g.Expect(a.Vel.Y()).To(BeNumerically("~", 0, 1e-12))
	g.Expect(b.Vel.X()).To(BeNumerically("~", 1, 1e-12))
	g.Expect(b.Vel.Y()).To(BeNumerically("~", 0, 1e-12))
	g.Expect(vec.Distance(a.Pos, b.Pos)).To(BeNumerically("~", 2, 1e-12))
}

func TestResolveConservesMomentum(t *testing.T) {
	tests := []struct {
		name string
		a, b [7]float64 // x, y, vx, vy, r, m, e
	}{
		{"equal masses oblique", [7]float64{0, 0, 3, 1, 1, 1, 1}, [7]float64{1.5, 0.5, -2, 0, 1, 1, 1}},
		{"unequal masses", [7]float64{0, 0, 4, 0, 2, 4, 1}, [7]float64{3, 0, -1, 2, 1.5, 0.5, 1}},
		{"inelastic", [7]float64{0, 0, 2, -1, 1, 2, 0.3}, [7]float64{1, 1, -1, -2, 1, 3, 0.8}},
		{"perfectly inelastic", [7]float64{0, 0, 1, 0, 1, 1, 0}, [7]float64{1, 0, -1, 0, 1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			a := mustBody(t, tt.a[0], tt.a[1], tt.a[2], tt.a[3], tt.a[4], tt.a[5], tt.a[6])
			b := mustBody(t, tt.b[0], tt.b[1], tt.b[2], tt.b[3], tt.b[4], tt.b[5], tt.b[6])
			before := TotalMomentum([]*Body{a, b})
			keBefore := TotalKinetic([]*Body{a, b})

			hit, err := ResolvePair(a, b)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(hit).To(BeTrue())

			after := TotalMomentum([]*Body{a, b})
			g.Expect(after.X()).To(BeNumerically("~", before.X(), 1e-9))
			g.Expect(after.Y()).To(BeNumerically("~", before.Y(), 1e-9))
			g.Expect(TotalKinetic([]*Body{a, b})).To(BeNumerically("<=", keBefore+1e-9))
		})
	}
}

func TestResolveElasticConservesEnergy(t *testing.T) {
	g := NewWithT(t)
	a := mustBody(t, 0, 0, 3, 1, 1, 2, 1)
	b := mustBody(t, 1.2, 0.9, -2, 0.5, 1, 5, 1)
	before := TotalKinetic([]*Body{a, b})

	_, _ = ResolvePair(a, b)

	g.Expect(TotalKinetic([]*Body{a, b})).To(BeNumerically("~", before, 1e-9))
}

func TestResolveSeparatingPairNoImpulse(t *testing.T) {
	g := NewWithT(t)
	a := mustBody(t, 0, 0, -1, 0.5, 1, 1, 1)
	b := mustBody(t, 1.5, 0, 2, -0.5, 1, 1, 1)
	va, vb := a.Vel, b.Vel

	hit, err := ResolvePair(a, b)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(hit).To(BeFalse())
	g.Expect(a.Vel).To(Equal(va))
	g.Expect(b.Vel).To(Equal(vb))
	// still pushed apart
	g.Expect(vec.Distance(a.Pos, b.Pos)).To(BeNumerically("~", 2, 1e-12))
}

func TestResolveTouchingNotColliding(t *testing.T) {
	g := NewWithT(t)
	a := mustBody(t, 0, 0, 1, 0, 1, 1, 1)
	b := mustBody(t, 2, 0, -1, 0, 1, 1, 1)

	hit, err := ResolvePair(a, b)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(hit).To(BeFalse())
	g.Expect(a.Pos).To(Equal(vec.New(0, 0)))
}

func TestResolveTangentialUnchanged(t *testing.T) {
	g := NewWithT(t)
	a := mustBody(t, 0, 0, 1, 5, 1, 1, 1)
	b := mustBody(t, 1.5, 0, -1, -3, 1, 1, 1)

	_, _ = ResolvePair(a, b)

	g.Expect(a.Vel.Y()).To(BeNumerically("~", 5, 1e-12))
	g.Expect(b.Vel.Y()).To(BeNumerically("~", -3, 1e-12))
}

func TestResolveCoincidentNudgesAlongX(t *testing.T) {
	g := NewWithT(t)
	a := mustBody(t, 5, 5, 0, 0, 1, 1, 1)
	b := mustBody(t, 5, 5, 0, 0, 1, 1, 1)

	hit, err := ResolvePair(a, b)

	g.Expect(errors.Is(err, dynamo.ErrCoincident)).To(BeTrue())
	g.Expect(hit).To(BeFalse())
	g.Expect(a.Pos).To(Equal(vec.New(4, 5)))
	g.Expect(b.Pos).To(Equal(vec.New(6, 5)))

	r := NewResolver(nil)
	c := mustBody(t, 1, 1, 0, 0, 1, 1, 1)
	d := mustBody(t, 1, 1, 0, 0, 1, 1, 1)
	r.Resolve([]*Body{c, d})
	g.Expect(r.Nudges()).To(Equal(1))
}

func TestResolveDeterministicOrder(t *testing.T) {
	build := func() []*Body {
		return []*Body{
			mustBody(t, 0, 0, 2, 0, 1, 1, 1),
			mustBody(t, 1.8, 0, 0, 0, 1, 1, 1),
			mustBody(t, 3.6, 0, -2, 0, 1, 1, 1),
		}
	}
	first, second := build(), build()
	NewResolver(nil).Resolve(first)
	NewResolver(nil).Resolve(second)

	for i := range first {
		if first[i].Pos != second[i].Pos || first[i].Vel != second[i].Vel {
			t.Fatalf("body %d differs between runs", i)
		}
	}
}

func TestNewBodyValidation(t *testing.T) {
	tests := []struct {
		name    string
		r, m, e float64
	}{
		{"zero radius", 0, 1, 1},
		{"negative mass", 1, -1, 1},
		{"restitution above one", 1, 1, 1.1},
		{"negative restitution", 1, 1, -0.1},
		{"nan mass", 1, math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBody(vec.Zero, vec.Zero, tt.r, tt.m, tt.e, color.RGBA{})
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("got %v, want ErrInvalidConfig", err)
			}
			var ce *dynamo.ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("got %T, want *ConfigError", err)
			}
		})
	}
}
