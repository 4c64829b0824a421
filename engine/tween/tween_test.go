package tween

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestValueReachesTarget(t *testing.T) {
	v := NewValue(0)
	v.Retarget(1, 0.5, EaseLinear)

	for i := 0; i < 10; i++ {
		v.Tick(0.1)
	}

	if v.Active() {
		t.Fatal("value should be at rest after the full duration")
	}
	if !approx(v.Current(), 1) {
		t.Fatalf("current = %f, want 1", v.Current())
	}
}

func TestValueLinearMidpoint(t *testing.T) {
	v := NewValue(0)
	v.Retarget(10, 1.0, EaseLinear)
	v.Tick(0.5)

	if !approx(v.Current(), 5) {
		t.Fatalf("current at midpoint = %f, want 5", v.Current())
	}
	if !v.Active() {
		t.Fatal("value should still be animating at the midpoint")
	}
}

func TestValueRetargetCancelsInFlight(t *testing.T) {
	v := NewValue(0)
	v.Retarget(1, 1.0, EaseLinear)
	v.Tick(0.5)

	// Last-write-wins: the new animation starts from the current value.
	v.Retarget(0, 1.0, EaseLinear)
	if v.Target() != 0 {
		t.Fatalf("target = %f, want 0", v.Target())
	}
	v.Tick(0.5)
	if !approx(v.Current(), 0.25) {
		t.Fatalf("current = %f, want 0.25 (halfway from 0.5 to 0)", v.Current())
	}
}

func TestValueCancelStopsInPlace(t *testing.T) {
	v := NewValue(0)
	v.Retarget(1, 1.0, EaseLinear)
	v.Tick(0.25)
	v.Cancel()

	if v.Active() {
		t.Fatal("value should be inactive after Cancel")
	}
	if !approx(v.Current(), 0.25) {
		t.Fatalf("current = %f, want 0.25 (frozen where cancelled)", v.Current())
	}

	v.Tick(1.0)
	if !approx(v.Current(), 0.25) {
		t.Fatal("Tick after Cancel must not move the value")
	}
}

func TestValueZeroDurationSnaps(t *testing.T) {
	v := NewValue(3)
	v.Retarget(7, 0, EaseLinear)
	if v.Active() || !approx(v.Current(), 7) {
		t.Fatalf("zero duration should snap: active=%v current=%f", v.Active(), v.Current())
	}
}

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]Easing{
		"linear":     EaseLinear,
		"outQuad":    EaseOutQuad,
		"inOutQuad":  EaseInOutQuad,
		"outCubic":   EaseOutCubic,
		"inOutCubic": EaseInOutCubic,
	}
	for name, f := range curves {
		if !approx(f(0), 0) {
			t.Errorf("%s(0) = %f, want 0", name, f(0))
		}
		if !approx(f(1), 1) {
			t.Errorf("%s(1) = %f, want 1", name, f(1))
		}
	}
	if !approx(EaseInOutQuad(0.5), 0.5) {
		t.Errorf("inOutQuad(0.5) = %f, want 0.5", EaseInOutQuad(0.5))
	}
}

func TestVectorReachesTarget(t *testing.T) {
	v := NewVector([3]float32{0, 0, 0})
	v.Retarget([3]float32{1, 2, 3}, 0.2, EaseOutCubic)

	for i := 0; i < 5; i++ {
		v.Tick(0.05)
	}

	got := v.Current()
	want := [3]float32{1, 2, 3}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("component %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestDriverAdvancesAndStops(t *testing.T) {
	a := NewValue(0)
	b := NewVector([3]float32{0, 0, 0})
	d := NewDriver()
	d.Add(a, b)

	a.Retarget(1, 1.0, EaseLinear)
	b.Retarget([3]float32{2, 0, 0}, 1.0, EaseLinear)
	d.Tick(0.5)

	if !approx(a.Current(), 0.5) {
		t.Fatalf("a = %f, want 0.5", a.Current())
	}
	if !approx(b.Current()[0], 1) {
		t.Fatalf("b.x = %f, want 1", b.Current()[0])
	}

	d.Stop()
	d.Tick(0.5)
	if a.Active() || b.Active() {
		t.Fatal("Stop must cancel all registered tweens")
	}
	if !approx(a.Current(), 0.5) {
		t.Fatal("stopped tween must not reach its target")
	}
}
