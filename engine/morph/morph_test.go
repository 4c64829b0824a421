package morph

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func tickFor(s State, seconds float32) {
	const dt = 1.0 / 120.0
	for elapsed := float32(0); elapsed < seconds; elapsed += dt {
		s.Tick(dt)
	}
}

func TestInitialStateAtRest(t *testing.T) {
	s := NewState()
	if s.Target() != TargetAssembled {
		t.Fatalf("initial target = %v, want assembled", s.Target())
	}
	if !approx(s.Factor(), 0) || !approx(s.Bloom(), BloomRest) {
		t.Fatalf("initial factor/bloom = %f/%f, want 0/%f", s.Factor(), s.Bloom(), float32(BloomRest))
	}
	if s.Transitioning() {
		t.Fatal("new state must not be transitioning")
	}
}

func TestExplodeTransitionCompletes(t *testing.T) {
	s := NewState()
	s.SetTarget(TargetExploded)

	if !s.Transitioning() {
		t.Fatal("SetTarget must start a transition")
	}
	tickFor(s, ExplodeDuration+0.1)

	if s.Transitioning() {
		t.Fatal("transition should have finished")
	}
	if !approx(s.Factor(), 1) {
		t.Fatalf("factor = %f, want 1", s.Factor())
	}
	if !approx(s.Bloom(), BloomExploded) {
		t.Fatalf("bloom = %f, want %f", s.Bloom(), float32(BloomExploded))
	}
}

func TestAssembleAfterExplodeReturnsToRest(t *testing.T) {
	s := NewState()
	s.SetTarget(TargetExploded)
	tickFor(s, ExplodeDuration+0.1)

	s.SetTarget(TargetAssembled)
	tickFor(s, AssembleDuration+0.1)

	if !approx(s.Factor(), 0) || !approx(s.Bloom(), BloomRest) {
		t.Fatalf("factor/bloom = %f/%f, want 0/%f", s.Factor(), s.Bloom(), float32(BloomRest))
	}
}

func TestRetargetMidFlightOverrides(t *testing.T) {
	s := NewState()
	s.SetTarget(TargetExploded)
	tickFor(s, ExplodeDuration/2)

	mid := s.Factor()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("mid-flight factor = %f, want strictly between 0 and 1", mid)
	}

	// Last-write-wins: the reversal starts from wherever the factor is.
	s.SetTarget(TargetAssembled)
	if s.Target() != TargetAssembled {
		t.Fatalf("target = %v, want assembled", s.Target())
	}
	tickFor(s, AssembleDuration+0.1)
	if !approx(s.Factor(), 0) {
		t.Fatalf("factor = %f, want 0", s.Factor())
	}
}

func TestFactorStaysInUnitInterval(t *testing.T) {
	s := NewState()
	s.SetTarget(TargetExploded)
	const dt = 1.0 / 60.0
	for i := 0; i < 120; i++ {
		s.Tick(dt)
		f := s.Factor()
		if f < 0 || f > 1 {
			t.Fatalf("factor %f escaped [0,1] at tick %d", f, i)
		}
	}
}

func TestBloomMovesWithFactor(t *testing.T) {
	s := NewState()
	s.SetTarget(TargetExploded)
	s.Tick(ExplodeDuration / 4)

	if !s.Transitioning() {
		t.Fatal("should still be transitioning")
	}
	if s.Bloom() <= BloomRest {
		t.Fatalf("bloom = %f, should have risen above %f mid-transition", s.Bloom(), float32(BloomRest))
	}
	if s.Bloom() >= BloomExploded {
		t.Fatalf("bloom = %f, should not yet have reached %f", s.Bloom(), float32(BloomExploded))
	}
}
