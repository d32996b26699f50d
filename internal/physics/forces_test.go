package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/vector"
)

var _ = Describe("Spring", func() {
	var (
		s *physics.Spring
		m *physics.Mover
	)

	BeforeEach(func() {
		s = physics.NewSpring(vector.New(16, 0), 4)
		m = physics.NewMover(vector.New(16, 4))
	})

	It("applies zero force at rest length", func() {
		Expect(s.Connect(m)).To(Succeed())
		Expect(m.Acceleration.Magnitude()).To(BeNumerically("~", 0, 1e-12))
	})

	It("pulls a stretched mover back toward the anchor", func() {
		m.Position = vector.New(16, 9)
		Expect(s.Connect(m)).To(Succeed())
		// stretch 5, k 0.2
		Expect(m.Acceleration.Y).To(BeNumerically("~", -1, 1e-12))
		Expect(m.Acceleration.X).To(BeNumerically("~", 0, 1e-12))
	})

	It("pushes a compressed mover away from the anchor", func() {
		m.Position = vector.New(18, 0)
		Expect(s.Connect(m)).To(Succeed())
		Expect(m.Acceleration.X).To(BeNumerically("~", 0.4, 1e-12))
	})

	It("overwrites the mover's damping on every connect", func() {
		m.Damping = 0.5
		Expect(s.Connect(m)).To(Succeed())
		Expect(m.Damping).To(Equal(physics.DefaultSpringDamping))

		other := physics.NewSpring(vector.New(0, 0), 4)
		other.Damping = 0.9
		Expect(other.Connect(m)).To(Succeed())
		Expect(m.Damping).To(Equal(0.9))
	})

	Describe("ConstrainLength", func() {
		It("requires a connected mover", func() {
			Expect(s.ConstrainLength(1, 10)).To(MatchError(physics.ErrNotConnected))
		})

		It("snaps an overlong spring to max length and stops the mover", func() {
			m.Position = vector.New(16, 20)
			m.Velocity = vector.New(1, 1)
			Expect(s.Connect(m)).To(Succeed())
			Expect(s.ConstrainLength(1, 10)).To(Succeed())
			Expect(m.Position.ApproxEqual(vector.New(16, 10), 1e-12)).To(BeTrue())
			Expect(m.Velocity).To(Equal(vector.New(0, 0)))
		})

		It("snaps a short spring to min length", func() {
			m.Position = vector.New(16.5, 0)
			Expect(s.Connect(m)).To(Succeed())
			Expect(s.ConstrainLength(2, 10)).To(Succeed())
			Expect(m.Position.ApproxEqual(vector.New(18, 0), 1e-12)).To(BeTrue())
		})

		It("leaves a mover within range untouched", func() {
			m.Velocity = vector.New(0.3, 0)
			Expect(s.Connect(m)).To(Succeed())
			Expect(s.ConstrainLength(1, 10)).To(Succeed())
			Expect(m.Velocity).To(Equal(vector.New(0.3, 0)))
		})
	})

	It("fails on a 3D mover attached to a 2D anchor", func() {
		m3 := physics.NewMover(vector.New3(0, 0, 0))
		Expect(s.Connect(m3)).To(MatchError(vector.ErrDimensionMismatch))
	})

	It("keeps the previous mover when a connect fails", func() {
		Expect(s.Connect(m)).To(Succeed())
		m3 := physics.NewMover(vector.New3(0, 0, 0))
		m3.Damping = 0.5
		Expect(s.Connect(m3)).To(MatchError(vector.ErrDimensionMismatch))

		Expect(s.Mover()).To(BeIdenticalTo(m))
		Expect(m3.Damping).To(Equal(0.5))
		Expect(s.ConstrainLength(1, 10)).To(Succeed())
	})
})

var _ = Describe("Pendulum", func() {
	It("rests at the bottom", func() {
		p := physics.NewPendulum(vector.New(16, 0), 6, 0)
		for k := 0; k < 50; k++ {
			p.Update()
		}
		Expect(p.Angle).To(BeNumerically("~", 0, 1e-12))
		pos, err := p.Position()
		Expect(err).NotTo(HaveOccurred())
		Expect(pos.ApproxEqual(vector.New(16, 6), 1e-12)).To(BeTrue())
	})

	It("accelerates back toward the vertical", func() {
		p := physics.NewPendulum(vector.New(0, 0), 4, math.Pi/2)
		p.Update()
		Expect(p.AngularAcceleration).To(BeNumerically("~", -0.1, 1e-12))
		Expect(p.Angle).To(BeNumerically("<", math.Pi/2))
	})

	It("loses energy through friction", func() {
		p := physics.NewPendulum(vector.New(0, 0), 4, 1)
		e0 := p.Energy()
		for k := 0; k < 500; k++ {
			p.Update()
		}
		Expect(p.Energy()).To(BeNumerically("<", e0))
	})
})

var _ = Describe("Attractor", func() {
	var (
		a *physics.Attractor
		m *physics.Mover
	)

	BeforeEach(func() {
		a = physics.NewAttractor(vector.New(0, 0), 10)
		m = physics.NewMover(vector.New(10, 0))
	})

	It("pulls with an inverse-square force", func() {
		f, err := a.Attraction(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.X).To(BeNumerically("~", -0.4*10/100, 1e-12))
		Expect(f.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("clamps the distance to avoid a singularity", func() {
		m.Position = vector.New(0.001, 0)
		f, err := a.Attraction(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Magnitude()).To(BeNumerically("~", 0.4*10/25, 1e-12))

		m.Position = vector.New(100, 0)
		f, _ = a.Attraction(m)
		Expect(f.Magnitude()).To(BeNumerically("~", 0.4*10/625, 1e-12))
	})

	It("returns a zero force at the attractor itself", func() {
		m.Position = vector.New(0, 0)
		f, err := a.Attraction(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Magnitude()).To(BeZero())
	})

	It("rejects distance clamps that would let the force blow up", func() {
		Expect(a.SetParam("mindist", 0)).To(MatchError(physics.ErrParameterBounds))
		Expect(a.SetParam("mindist", -1)).To(MatchError(physics.ErrParameterBounds))
		Expect(a.SetParam("mindist", physics.DefaultMaxDist+1)).To(MatchError(physics.ErrParameterBounds))
		Expect(a.SetParam("maxdist", physics.DefaultMinDist-1)).To(MatchError(physics.ErrParameterBounds))
		Expect(a.MinDist).To(Equal(physics.DefaultMinDist))
		Expect(a.MaxDist).To(Equal(physics.DefaultMaxDist))

		Expect(a.SetParam("mindist", 0.5)).To(Succeed())
		Expect(a.SetParam("maxdist", 0.5)).To(Succeed())
		m.Position = vector.New(0.001, 0)
		f, err := a.Attraction(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.IsValid()).To(BeTrue())
	})

	It("repels with the negated attraction", func() {
		at, _ := a.Attraction(m)
		rep, err := a.Repulsion(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep).To(Equal(at.Neg()))
	})
})

var _ = Describe("Oscillator", func() {
	It("advances its phase", func() {
		o := &physics.Oscillator{Velocity: math.Pi / 4, Amplitude: 3}
		o.Oscillate()
		o.Oscillate()
		Expect(o.Offset()).To(BeNumerically("~", 3, 1e-12))
	})
})

var _ = Describe("NoiseField", func() {
	It("is deterministic for a seed", func() {
		a := physics.NewNoiseField(42, 0.1)
		b := physics.NewNoiseField(42, 0.1)
		p := vector.New(3, 5)
		for k := 0; k < 5; k++ {
			Expect(a.Force(p)).To(Equal(b.Force(p)))
			a.Advance()
			b.Advance()
		}
	})

	It("produces forces of the configured strength", func() {
		n := physics.NewNoiseField(1, 0.2)
		Expect(n.Force(vector.New(7, 2)).Magnitude()).To(BeNumerically("~", 0.2, 1e-12))
	})
})

var _ = Describe("Registry", func() {
	It("resolves bodies by handle", func() {
		r := physics.NewRegistry()
		id, err := r.Add("bob", physics.NewMover(vector.New(16, 4)))
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Name(id)).To(Equal("bob"))

		s := physics.NewSpring(vector.New(16, 0), 2)
		Expect(r.Connect(s, id)).To(Succeed())
		Expect(r.Update()).To(Succeed())

		m, err := r.Mover(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Position.Y).To(BeNumerically("<", 4))
		Expect(s.Mover()).To(BeIdenticalTo(m))
	})

	It("rejects invalid bodies and unknown handles", func() {
		r := physics.NewRegistry()
		bad := physics.NewMover(vector.New(0, 0))
		bad.Mass = 0
		_, err := r.Add("bad", bad)
		Expect(err).To(MatchError(physics.ErrParameterBounds))

		_, err = r.Mover(3)
		Expect(err).To(MatchError(physics.ErrUnknownBody))
	})
})
