package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/vector"
)

var _ = Describe("Mover", func() {
	var m *physics.Mover

	BeforeEach(func() {
		m = physics.NewMover(vector.New(0, 0))
	})

	Describe("constant gravity", func() {
		It("follows the discrete kinematic sequence", func() {
			const g = 0.25
			for n := 1; n <= 40; n++ {
				Expect(m.ApplyForce(vector.New(0, g*m.Mass))).To(Succeed())
				Expect(m.Update()).To(Succeed())

				Expect(m.Acceleration).To(Equal(vector.New(0, 0)))
				Expect(m.Velocity.Y).To(BeNumerically("~", float64(n)*g, 1e-9))
				Expect(m.Position.Y).To(BeNumerically("~", g*float64(n*(n+1))/2, 1e-9))
			}
			Expect(m.Position.X).To(BeZero())
		})

		It("uses G·mass as weight so acceleration is independent of mass", func() {
			m.Mass = 3
			m.G = 0.5
			Expect(m.GravityForce()).To(Succeed())
			Expect(m.Gravity).To(Equal(vector.New(0, 1.5)))
			Expect(m.Acceleration.Y).To(BeNumerically("~", 0.5, 1e-12))
		})
	})

	It("superposes forces applied in the same tick", func() {
		Expect(m.ApplyForce(vector.New(1, 0))).To(Succeed())
		Expect(m.ApplyForce(vector.New(0, 2))).To(Succeed())
		Expect(m.ApplyForce(vector.New(-0.5, 0))).To(Succeed())
		Expect(m.Acceleration).To(Equal(vector.New(0.5, 2)))
	})

	It("divides forces by mass", func() {
		m.Mass = 4
		Expect(m.ApplyForce(vector.New(2, 8))).To(Succeed())
		Expect(m.Acceleration).To(Equal(vector.New(0.5, 2)))
	})

	It("rejects forces of the wrong dimension without touching state", func() {
		err := m.ApplyForce(vector.New3(1, 1, 1))
		Expect(err).To(MatchError(vector.ErrDimensionMismatch))
		Expect(m.Acceleration).To(Equal(vector.New(0, 0)))
	})

	It("applies damping before the top speed clamp", func() {
		m.Damping = 0.5
		m.TopSpeed = 1
		Expect(m.ApplyForce(vector.New(10, 0))).To(Succeed())
		Expect(m.Update()).To(Succeed())
		Expect(m.Velocity.X).To(BeNumerically("~", 1, 1e-12))
		Expect(m.Position.X).To(BeNumerically("~", 1, 1e-12))

		m.TopSpeed = 0
		Expect(m.ApplyForce(vector.New(1, 0))).To(Succeed())
		Expect(m.Update()).To(Succeed())
		Expect(m.Velocity.X).To(BeNumerically("~", 1, 1e-12))
	})

	It("integrates angular motion only in angular mode", func() {
		m.AngularAcceleration = 0.1
		Expect(m.Update()).To(Succeed())
		Expect(m.Angle).To(BeZero())

		m.Motion = physics.Angular
		Expect(m.Update()).To(Succeed())
		Expect(m.Update()).To(Succeed())
		Expect(m.AngularVelocity).To(BeNumerically("~", 0.2, 1e-12))
		Expect(m.Angle).To(BeNumerically("~", 0.3, 1e-12))
	})

	Describe("drag", func() {
		var env *physics.Environment

		BeforeEach(func() {
			env = &physics.Environment{X: 0, Y: 4, Width: 32, Height: 4, Drag: 0.1}
			m.Velocity = vector.New(0, 2)
		})

		It("opposes velocity with ce·speed² inside the region", func() {
			m.Position = vector.New(5, 6)
			Expect(m.DragForce(env)).To(Succeed())
			Expect(m.Acceleration.X).To(BeNumerically("~", 0, 1e-12))
			Expect(m.Acceleration.Y).To(BeNumerically("~", -0.4, 1e-12))
		})

		It("does nothing outside or exactly on the border", func() {
			m.Position = vector.New(5, 4)
			Expect(m.DragForce(env)).To(Succeed())
			Expect(m.Acceleration).To(Equal(vector.New(0, 0)))

			m.Position = vector.New(5, 1)
			Expect(m.DragForce(env)).To(Succeed())
			Expect(m.Acceleration).To(Equal(vector.New(0, 0)))
		})
	})

	It("applies friction against the direction of travel", func() {
		m.Velocity = vector.New(-3, 0)
		Expect(m.FrictionForce(0.05)).To(Succeed())
		Expect(m.Acceleration.X).To(BeNumerically("~", 0.05, 1e-12))
	})

	It("validates its configuration", func() {
		Expect(m.Validate()).To(Succeed())

		m.Mass = 0
		Expect(m.Validate()).To(MatchError(physics.ErrParameterBounds))

		m.Mass = 1
		m.Velocity = vector.New3(0, 0, 0)
		Expect(m.Validate()).To(MatchError(vector.ErrDimensionMismatch))
	})

	It("exposes tunable parameters", func() {
		Expect(m.SetParam("topspeed", 2)).To(Succeed())
		Expect(m.GetParams()).To(HaveKeyWithValue("topspeed", 2.0))
		Expect(m.SetParam("mass", -1)).To(MatchError(physics.ErrParameterBounds))
		Expect(m.SetParam("nope", 1)).To(HaveOccurred())
	})

	It("reports heading and kinetic energy", func() {
		m.Mass = 2
		m.Velocity = vector.New(0, 3)
		Expect(m.Heading()).To(BeNumerically("~", math.Pi/2, 1e-12))
		Expect(m.KineticEnergy()).To(BeNumerically("~", 9, 1e-12))
	})
})
