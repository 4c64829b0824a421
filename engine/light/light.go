package light

import "sync"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents a positionless fill applied uniformly to
	// every particle.
	LightTypeAmbient LightType = iota

	// LightTypePoint represents a light that emits in all directions from a
	// position, attenuating with distance.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	lightType LightType
	position  [3]float32
	color     [3]float32
	intensity float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// The particle shader modulates each point's color by the accumulated light
// contribution before the bloom passes run. Light parameters are marshaled
// into the scene uniform buffer each frame.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient or point)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light contributes to rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled toggles the light's contribution.
	//
	// Parameters:
	//   - enabled: whether the light is active
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light. The default is a white ambient light at full
// intensity.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		lightType: LightTypeAmbient,
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
