// Package tween provides time-bounded animated values with easing curves.
// A tweened value moves from its current value toward a target over a fixed
// duration; retargeting cancels the in-flight animation (last-write-wins).
package tween

// Easing maps normalized elapsed time t in [0,1] to a progress factor in [0,1].
// An easing function must satisfy f(0)=0 and f(1)=1.
type Easing func(t float32) float32

// EaseLinear is the identity curve: constant velocity.
func EaseLinear(t float32) float32 {
	return t
}

// EaseOutQuad decelerates toward the target: f(t) = 1 - (1-t)^2.
func EaseOutQuad(t float32) float32 {
	u := 1 - t
	return 1 - u*u
}

// EaseInOutQuad accelerates through the first half and decelerates through the second.
func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// EaseOutCubic decelerates toward the target: f(t) = 1 - (1-t)^3.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic accelerates through the first half and decelerates through the second.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
