package tween

// value is the implementation of the Value interface.
type value struct {
	current float32
	start   float32
	target  float32

	duration float32
	elapsed  float32
	easing   Easing
	active   bool
}

// Value is a single animated scalar. It holds a current value that moves
// toward a target over a fixed duration using an easing curve each time
// Tick is called. Retargeting mid-flight restarts the animation from the
// current value (no queueing); Cancel stops it wherever it is.
//
// Value is not safe for concurrent use; the engine drives all tweens from
// a single tick context.
type Value interface {
	// Current returns the current animated value.
	//
	// Returns:
	//   - float32: the current value
	Current() float32

	// Target returns the destination value of the active or most recent animation.
	//
	// Returns:
	//   - float32: the target value
	Target() float32

	// Active returns whether an animation is in flight.
	//
	// Returns:
	//   - bool: true if the value is still animating
	Active() bool

	// Retarget starts a new animation from the current value to target.
	// Any in-flight animation is cancelled and replaced (last-write-wins).
	// A non-positive duration snaps the value to the target immediately.
	//
	// Parameters:
	//   - target: the destination value
	//   - duration: animation length in seconds
	//   - easing: the easing curve (nil defaults to EaseLinear)
	Retarget(target, duration float32, easing Easing)

	// Cancel stops the in-flight animation, leaving the value wherever it is.
	// The value is not guaranteed to have reached its target.
	Cancel()

	// Snap sets the value immediately, cancelling any in-flight animation.
	//
	// Parameters:
	//   - v: the value to set
	Snap(v float32)

	// Tick advances the animation by dt seconds. A no-op when inactive.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous tick
	Tick(dt float32)
}

var _ Value = &value{}

// NewValue creates a Value at rest holding the given initial value.
//
// Parameters:
//   - initial: the starting value
//
// Returns:
//   - Value: the newly created tweened value
func NewValue(initial float32) Value {
	return &value{
		current: initial,
		target:  initial,
	}
}

func (v *value) Current() float32 {
	return v.current
}

func (v *value) Target() float32 {
	return v.target
}

func (v *value) Active() bool {
	return v.active
}

func (v *value) Retarget(target, duration float32, easing Easing) {
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

func (v *value) Cancel() {
	v.active = false
}

func (v *value) Snap(val float32) {
	v.current = val
	v.target = val
	v.active = false
}

func (v *value) Tick(dt float32) {
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
	v.current = v.start + (v.target-v.start)*t
}
