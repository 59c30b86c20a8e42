// Package spring simulates a single-axis damped harmonic oscillator: a
// point mass pulled toward a target position by a spring and slowed by a
// damping force. Unlike a fixed-duration tween, the target can be moved
// while the mass is in flight and the motion bends toward it with no
// velocity discontinuity.
package spring

import "math"

// Default tuning. Underdamped but stable: motion overshoots slightly and
// settles with a natural-feeling deceleration.
const (
	DefaultStrength = 100.0
	DefaultDampness = 4.5
)

const (
	// maxStepMillis is the largest single integration step. Longer
	// deltas are sub-stepped so the integrator stays stable.
	maxStepMillis = 16.0

	// maxDeltaMillis caps a single Advance. A host that was suspended
	// (backgrounded tab, stopped terminal) delivers a huge delta on
	// resume; simulating all of it would teleport the mass.
	maxDeltaMillis = 250.0
)

// Settings tunes a Spring. Strength is the restoring force per unit of
// displacement, Dampness the decelerating force per unit of velocity.
type Settings struct {
	Strength float64
	Dampness float64
}

// DefaultSettings returns the default tuning.
func DefaultSettings() Settings {
	return Settings{Strength: DefaultStrength, Dampness: DefaultDampness}
}

// Spring is a single-axis damped harmonic oscillator. It is a value
// type: every method returns the updated spring and leaves the receiver
// untouched, so a Spring can live inside a Bubble Tea model.
type Spring struct {
	position float64
	velocity float64
	target   float64
	strength float64
	dampness float64
}

// New creates a Spring at position 0 with target 0 and no velocity.
// Non-positive tuning values are replaced by the defaults, so the
// strength/dampness invariants always hold.
func New(s Settings) Spring {
	if s.Strength <= 0 {
		s.Strength = DefaultStrength
	}
	if s.Dampness <= 0 {
		s.Dampness = DefaultDampness
	}
	return Spring{strength: s.Strength, dampness: s.Dampness}
}

// Advance integrates the equation of motion over deltaMillis using
// semi-implicit Euler: acceleration = strength*(target-position) -
// dampness*velocity. Deltas above maxStepMillis are sub-stepped, and the
// total is clamped to maxDeltaMillis. Non-positive deltas are a no-op.
func (s Spring) Advance(deltaMillis float64) Spring {
	if deltaMillis <= 0 {
		return s
	}
	if deltaMillis > maxDeltaMillis {
		deltaMillis = maxDeltaMillis
	}
	for deltaMillis > 0 {
		step := deltaMillis
		if step > maxStepMillis {
			step = maxStepMillis
		}
		dt := step / 1000
		s.velocity += (s.strength*(s.target-s.position) - s.dampness*s.velocity) * dt
		s.position += s.velocity * dt
		deltaMillis -= step
	}
	return s
}

// JumpTo snaps the spring to v: position and target both become v and
// velocity is cleared. No motion results.
func (s Spring) JumpTo(v float64) Spring {
	s.position = v
	s.target = v
	s.velocity = 0
	return s
}

// SetTarget redirects the spring toward v. Position and velocity are
// untouched, so in-flight motion bends toward the new target instead of
// restarting.
func (s Spring) SetTarget(v float64) Spring {
	s.target = v
	return s
}

// Value returns the current position.
func (s Spring) Value() float64 { return s.position }

// Target returns the current target.
func (s Spring) Target() float64 { return s.target }

// Velocity returns the current velocity in units per second.
func (s Spring) Velocity() float64 { return s.velocity }

// AtRest reports whether advancing by one more frame of frameMillis
// would leave the rounded position unchanged: the current and next
// displacements from target must sum to under half a unit. Testing two
// consecutive samples keeps a fast zero-crossing (near target, high
// velocity) from counting as rest.
func (s Spring) AtRest(frameMillis float64) bool {
	next := s.Advance(frameMillis)
	return math.Round((s.position-s.target)+(next.position-s.target)) == 0
}
