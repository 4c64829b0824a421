// Package morph owns the explosion factor: the single scalar in [0,1] that
// blends the particle cloud between its assembled and exploded shapes, plus
// the bloom intensity animated in lockstep with it.
package morph

import "github.com/Carmen-Shannon/nova-go/engine/tween"

// Target identifies one of the two morph destinations.
type Target int

const (
	// TargetAssembled is the compact sphere configuration (factor 0).
	TargetAssembled Target = iota

	// TargetExploded is the dispersed shell configuration (factor 1).
	TargetExploded
)

// String returns the target's display name.
//
// Returns:
//   - string: "assembled" or "exploded"
func (t Target) String() string {
	if t == TargetExploded {
		return "exploded"
	}
	return "assembled"
}

// Transition timing per direction. Assembly pulls the cloud together with a
// symmetric curve; explosion launches fast and settles.
const (
	AssembleDuration = 0.6
	ExplodeDuration  = 0.8

	// Bloom intensity bounds, animated alongside the factor.
	BloomRest     = 1.0
	BloomExploded = 2.0
)

// state is the implementation of the State interface.
type state struct {
	factor tween.Value
	bloom  tween.Value
	target Target
}

// State is the morph state machine: a tweened explosion factor and a tweened
// bloom intensity that share each transition's duration and easing but are
// independently owned values (the bloom is retargeted alongside the factor,
// never derived from it, so the two can diverge in the future).
//
// SetTarget may be issued at any time; a new target cancels and replaces any
// in-flight transition. Callers wanting idempotence (no tween restart when
// re-requesting the active target) track the last issued target themselves,
// as the gesture mapper does.
//
// State is not safe for concurrent use; the engine ticks and reads it from a
// single context.
type State interface {
	// SetTarget starts an animated transition of the factor toward the
	// target (0 for assembled, 1 for exploded) and of the bloom intensity
	// toward its matching bound, both over the direction's fixed duration
	// and easing. Overrides any in-flight transition.
	//
	// Parameters:
	//   - target: the destination state
	SetTarget(target Target)

	// Target returns the most recently requested destination.
	//
	// Returns:
	//   - Target: the current target
	Target() Target

	// Factor returns the current explosion factor in [0,1].
	//
	// Returns:
	//   - float32: the morph factor
	Factor() float32

	// Bloom returns the current bloom intensity.
	//
	// Returns:
	//   - float32: the bloom intensity
	Bloom() float32

	// Transitioning returns whether a transition is in flight.
	//
	// Returns:
	//   - bool: true if the factor is still animating
	Transitioning() bool

	// Tick advances both tweens by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous tick
	Tick(dt float32)
}

var _ State = &state{}
var _ tween.Ticker = State(nil)

// NewState creates a State at rest in the assembled configuration
// (factor 0, bloom at its resting intensity).
//
// Returns:
//   - State: the newly created morph state
func NewState() State {
	return &state{
		factor: tween.NewValue(0),
		bloom:  tween.NewValue(BloomRest),
		target: TargetAssembled,
	}
}

func (s *state) SetTarget(target Target) {
	s.target = target
	switch target {
	case TargetExploded:
		s.factor.Retarget(1, ExplodeDuration, tween.EaseOutCubic)
		s.bloom.Retarget(BloomExploded, ExplodeDuration, tween.EaseOutCubic)
	default:
		s.factor.Retarget(0, AssembleDuration, tween.EaseInOutCubic)
		s.bloom.Retarget(BloomRest, AssembleDuration, tween.EaseInOutCubic)
	}
}

func (s *state) Target() Target {
	return s.target
}

func (s *state) Factor() float32 {
	return s.factor.Current()
}

func (s *state) Bloom() float32 {
	return s.bloom.Current()
}

func (s *state) Transitioning() bool {
	return s.factor.Active()
}

func (s *state) Tick(dt float32) {
	s.factor.Tick(dt)
	s.bloom.Tick(dt)
}
