// Package physics provides the simulation bodies that drive the LED matrix.
//
// Every body is a small state machine advanced once per frame:
//
//   - [Mover]: point mass; forces accumulate, then [Mover.Update] integrates
//     with semi-implicit Euler and clears the acceleration
//   - [Spring]: damped Hooke spring between an anchor and a Mover
//   - [Pendulum]: angular pendulum with multiplicative friction
//   - [Oscillator]: phase accumulator for periodic motion
//   - [Attractor]: clamped inverse-square attraction and repulsion
//   - [Environment]: rectangular region applying quadratic drag
//   - [NoiseField]: perlin wander force
//
// Springs and attractors never own the movers they act on. They either take
// a *Mover per call or resolve one from a [Registry] by [BodyID].
//
// Most bodies also implement [Configurable] so their parameters can be tuned
// while a scene is running.
//
//	g := physics.NewMover(vector.New(4, 0))
//	for range 10 {
//	    _ = g.GravityForce()
//	    _ = g.Update()
//	}
package physics
