package spring

import (
	"math"
	"testing"
)

const frameMillis = 16.0

func TestNewReplacesInvalidSettings(t *testing.T) {
	s := New(Settings{Strength: -1, Dampness: 0})
	if s.strength != DefaultStrength {
		t.Fatalf("expected default strength %v, got %v", DefaultStrength, s.strength)
	}
	if s.dampness != DefaultDampness {
		t.Fatalf("expected default dampness %v, got %v", DefaultDampness, s.dampness)
	}
}

func TestAdvanceZeroDeltaIsNoOp(t *testing.T) {
	s := New(DefaultSettings()).JumpTo(10).SetTarget(50)
	if got := s.Advance(0); got != s {
		t.Fatalf("expected unchanged spring, got %+v", got)
	}
	if got := s.Advance(-5); got != s {
		t.Fatalf("expected unchanged spring for negative delta, got %+v", got)
	}
}

func TestJumpToClearsVelocityAndRetargets(t *testing.T) {
	s := New(DefaultSettings()).SetTarget(100).Advance(frameMillis).Advance(frameMillis)
	if s.Velocity() == 0 {
		t.Fatal("expected spring to be moving before jump")
	}
	s = s.JumpTo(42)
	if s.Value() != 42 || s.Target() != 42 || s.Velocity() != 0 {
		t.Fatalf("expected value=target=42 velocity=0, got value=%v target=%v velocity=%v",
			s.Value(), s.Target(), s.Velocity())
	}
	if !s.AtRest(frameMillis) {
		t.Fatal("expected jumped spring to be at rest")
	}
}

func TestSetTargetPreservesMotion(t *testing.T) {
	s := New(DefaultSettings()).SetTarget(500)
	for i := 0; i < 10; i++ {
		s = s.Advance(frameMillis)
	}
	pos, vel := s.Value(), s.Velocity()

	s = s.SetTarget(0)
	if s.Value() != pos {
		t.Fatalf("expected position unchanged at %v, got %v", pos, s.Value())
	}
	if s.Velocity() != vel {
		t.Fatalf("expected velocity unchanged at %v, got %v", vel, s.Velocity())
	}
	if s.Target() != 0 {
		t.Fatalf("expected target 0, got %v", s.Target())
	}
}

func TestConvergesWithinBoundedTicks(t *testing.T) {
	s := New(DefaultSettings()).SetTarget(2000)
	for i := 0; i < 500; i++ {
		s = s.Advance(frameMillis)
		if s.AtRest(frameMillis) {
			if d := math.Abs(s.Value() - 2000); d >= 0.5 {
				t.Fatalf("at rest %v from target after %d ticks", d, i+1)
			}
			return
		}
	}
	t.Fatalf("spring not at rest after 500 ticks, value %v", s.Value())
}

func TestDisplacementEnvelopeNeverGrows(t *testing.T) {
	s := New(DefaultSettings()).SetTarget(2000)
	for i := 0; i < 500; i++ {
		s = s.Advance(frameMillis)
		if d := math.Abs(s.Value() - 2000); d > 2000 {
			t.Fatalf("displacement %v exceeds initial displacement", d)
		}
	}
}

func TestLargeDeltasDoNotOvershootCatastrophically(t *testing.T) {
	for _, delta := range []float64{50, 100, 250, 5000} {
		s := New(DefaultSettings()).SetTarget(1000)
		for i := 0; i < 200; i++ {
			s = s.Advance(delta)
			if d := math.Abs(s.Value() - 1000); d > 1000 {
				t.Fatalf("delta %v: displacement %v exceeds initial displacement", delta, d)
			}
		}
	}
}

// A spring at 499.6 heading for 500 whose next step lands just past the
// target reads as at rest: the two displacements cancel to under half a
// unit, so one more frame cannot change the rounded output.
func TestAtRestOnFinalCrossing(t *testing.T) {
	s := Spring{
		position: 499.6,
		velocity: 29.6,
		target:   500,
		strength: DefaultStrength,
		dampness: DefaultDampness,
	}
	next := s.Advance(frameMillis)
	if next.Value() <= 500 || next.Value() >= 500.5 {
		t.Fatalf("expected next step just past target, got %v", next.Value())
	}
	if !s.AtRest(frameMillis) {
		t.Fatal("expected spring on its final crossing to be at rest")
	}
}

func TestAtRestFalseAtOscillationPeak(t *testing.T) {
	// Far from target with zero velocity: the next step moves, so the
	// momentary standstill at a swing's peak is not rest.
	s := Spring{
		position: 900,
		velocity: 0,
		target:   500,
		strength: DefaultStrength,
		dampness: DefaultDampness,
	}
	if s.AtRest(frameMillis) {
		t.Fatal("expected spring far from target to not be at rest")
	}
}

func TestAtRestFalseOnFastZeroCrossing(t *testing.T) {
	s := Spring{
		position: 500,
		velocity: 400,
		target:   500,
		strength: DefaultStrength,
		dampness: DefaultDampness,
	}
	if s.AtRest(frameMillis) {
		t.Fatal("expected fast-moving spring at target to not be at rest")
	}
}
