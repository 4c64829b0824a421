package tween

// vector is the implementation of the Vector interface. It animates the three
// components in lockstep through a single shared clock so they arrive together.
type vector struct {
	current [3]float32
	start   [3]float32
	target  [3]float32

	duration float32
	elapsed  float32
	easing   Easing
	active   bool
}

// Vector is an animated 3-component value, used for the particle cloud's
// world position so noisy per-frame tracking input is smoothed rather than
// applied as instantaneous jumps. Semantics match Value: retargeting
// cancels and replaces, Cancel stops in place.
type Vector interface {
	// Current returns the current animated components.
	//
	// Returns:
	//   - [3]float32: the current x, y, z values
	Current() [3]float32

	// Target returns the destination of the active or most recent animation.
	//
	// Returns:
	//   - [3]float32: the target x, y, z values
	Target() [3]float32

	// Active returns whether an animation is in flight.
	//
	// Returns:
	//   - bool: true if the vector is still animating
	Active() bool

	// Retarget starts a new animation from the current components to target.
	// Any in-flight animation is cancelled and replaced (last-write-wins).
	// A non-positive duration snaps to the target immediately.
	//
	// Parameters:
	//   - target: the destination components
	//   - duration: animation length in seconds
	//   - easing: the easing curve (nil defaults to EaseLinear)
	Retarget(target [3]float32, duration float32, easing Easing)

	// Cancel stops the in-flight animation, leaving the components wherever they are.
	Cancel()

	// Snap sets the components immediately, cancelling any in-flight animation.
	//
	// Parameters:
	//   - v: the components to set
	Snap(v [3]float32)

	// Tick advances the animation by dt seconds. A no-op when inactive.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous tick
	Tick(dt float32)
}

var _ Vector = &vector{}

// NewVector creates a Vector at rest holding the given initial components.
//
// Parameters:
//   - initial: the starting components
//
// Returns:
//   - Vector: the newly created tweened vector
func NewVector(initial [3]float32) Vector {
	return &vector{
		current: initial,
		target:  initial,
	}
}

func (v *vector) Current() [3]float32 {
	return v.current
}

func (v *vector) Target() [3]float32 {
	return v.target
}

func (v *vector) Active() bool {
	return v.active
}

func (v *vector) Retarget(target [3]float32, duration float32, easing Easing) {
	if duration <= 0 {
		v.Snap(target)
		return
	}
	if easing == nil {
		easing = EaseLinear
	}
	v.start = v.current
	v.target = target
	v.duration = duration
	v.elapsed = 0
	v.easing = easing
	v.active = true
}

func (v *vector) Cancel() {
	v.active = false
}

func (v *vector) Snap(val [3]float32) {
	v.current = val
	v.target = val
	v.active = false
}

func (v *vector) Tick(dt float32) {
	if !v.active {
		return
	}
	v.elapsed += dt
	if v.elapsed >= v.duration {
		v.current = v.target
		v.active = false
		return
	}
	t := v.easing(v.elapsed / v.duration)
	for i := range v.current {
		v.current[i] = v.start[i] + (v.target[i]-v.start[i])*t
	}
}
