package particle

import "github.com/Carmen-Shannon/nova-go/common"

// ColorThreshold is the morph factor at which the cloud's hue hard-switches
// from the assembled color to the exploded color. The switch is discrete,
// not interpolated.
const ColorThreshold = 0.5

// cloud is the implementation of the Cloud interface.
type cloud struct {
	assembled Set
	exploded  Set

	// current is the per-frame interpolation buffer. It is owned exclusively
	// by the render side: Positions exposes it for GPU upload only, and no
	// other component ever reads or writes it.
	current []Point

	rotation      [3]float32
	rotationSpeed [3]float32

	assembledColor [4]float32
	explodedColor  [4]float32
}

// Cloud holds the particle state for a visualization session: the two
// immutable target shapes and the mutable interpolation buffer recomputed
// every frame. The cloud also accumulates the rigid rotation of the whole
// formation and resolves the discrete color switch.
//
// Cloud is not safe for concurrent use; the scene drives it from the single
// frame-preparation context.
type Cloud interface {
	// Count returns the number of particles.
	//
	// Returns:
	//   - int: the particle count
	Count() int

	// Interpolate recomputes the full position buffer for the given morph
	// factor: current[i] = assembled[i]*(1-f) + exploded[i]*f.
	//
	// Parameters:
	//   - factor: the morph factor in [0,1]
	Interpolate(factor float32)

	// InterpolateRange recomputes positions for indices [start, end).
	// Ranges are disjoint per caller, so the scene can split the buffer
	// across worker-pool tasks without synchronization.
	//
	// Parameters:
	//   - factor: the morph factor in [0,1]
	//   - start: first index (inclusive)
	//   - end: last index (exclusive)
	InterpolateRange(factor float32, start, end int)

	// Positions returns the live interpolation buffer for GPU upload.
	// The slice is owned by the cloud; callers must not retain or mutate it.
	//
	// Returns:
	//   - []Point: the current positions
	Positions() []Point

	// AdvanceRotation accumulates the cloud's spin by rotationSpeed*dt.
	// Rotation grows monotonically; it is never reset during a session.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous frame
	AdvanceRotation(dt float32)

	// Rotation returns the accumulated rotation angles per axis in radians.
	//
	// Returns:
	//   - [3]float32: rotation around x, y, z
	Rotation() [3]float32

	// Color resolves the cloud's hue for the given morph factor: the
	// assembled color below ColorThreshold, the exploded color at or above.
	//
	// Parameters:
	//   - factor: the morph factor in [0,1]
	//
	// Returns:
	//   - [4]float32: the RGBA color
	Color(factor float32) [4]float32
}

var _ Cloud = &cloud{}

// CloudBuilderOption is a functional option for configuring a Cloud during construction.
type CloudBuilderOption func(*cloud)

// WithRotationSpeed sets the cloud's spin rate in radians per second per axis.
//
// Parameters:
//   - x, y, z: angular velocity around each axis
//
// Returns:
//   - CloudBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(x, y, z float32) CloudBuilderOption {
	return func(c *cloud) {
		c.rotationSpeed = [3]float32{x, y, z}
	}
}

// WithColors sets the two fixed hues the cloud switches between.
//
// Parameters:
//   - assembled: RGBA color below the threshold
//   - exploded: RGBA color at or above the threshold
//
// Returns:
//   - CloudBuilderOption: functional option to set the colors
func WithColors(assembled, exploded [4]float32) CloudBuilderOption {
	return func(c *cloud) {
		c.assembledColor = assembled
		c.explodedColor = exploded
	}
}

// NewCloud creates a Cloud from two index-aligned target shapes.
// Panics if the shapes differ in length or are empty; Generate guarantees
// both invariants, so a panic here indicates caller misuse.
//
// Parameters:
//   - assembled: the assembled target shape
//   - exploded: the exploded target shape (same length)
//   - options: functional options for spin rate and colors
//
// Returns:
//   - Cloud: the newly created cloud, positioned at the assembled shape
func NewCloud(assembled, exploded Set, options ...CloudBuilderOption) Cloud {
	if len(assembled) == 0 || len(assembled) != len(exploded) {
		panic("particle: NewCloud requires non-empty, equal-length shapes")
	}

	c := &cloud{
		assembled:      assembled,
		exploded:       exploded,
		current:        make([]Point, len(assembled)),
		rotationSpeed:  [3]float32{0.06, 0.12, 0},
		assembledColor: [4]float32{0.0, 0.9, 1.0, 1.0},
		explodedColor:  [4]float32{1.0, 0.35, 0.1, 1.0},
	}
	for _, opt := range options {
		opt(c)
	}

	copy(c.current, assembled)
	return c
}

func (c *cloud) Count() int {
	return len(c.current)
}

func (c *cloud) Interpolate(factor float32) {
	c.InterpolateRange(factor, 0, len(c.current))
}

func (c *cloud) InterpolateRange(factor float32, start, end int) {
	for i := start; i < end; i++ {
		a := &c.assembled[i]
		e := &c.exploded[i]
		c.current[i] = Point{
			common.Lerp(a[0], e[0], factor),
			common.Lerp(a[1], e[1], factor),
			common.Lerp(a[2], e[2], factor),
		}
	}
}

func (c *cloud) Positions() []Point {
	return c.current
}

func (c *cloud) AdvanceRotation(dt float32) {
	c.rotation[0] += c.rotationSpeed[0] * dt
	c.rotation[1] += c.rotationSpeed[1] * dt
	c.rotation[2] += c.rotationSpeed[2] * dt
}

func (c *cloud) Rotation() [3]float32 {
	return c.rotation
}

func (c *cloud) Color(factor float32) [4]float32 {
	if factor < ColorThreshold {
		return c.assembledColor
	}
	return c.explodedColor
}
