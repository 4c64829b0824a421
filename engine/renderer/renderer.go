package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/nova-go/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU surface and the bloom compositor. Callers size
// the particle buffer once, then stream positions and uniforms each frame
// and ask for a composited frame. All methods become no-ops (or errors)
// after Release.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window. A no-op after Release.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// InitParticleBuffers sizes the GPU instance buffer for the given
	// particle count. Must be called before the first RenderFrame.
	//
	// Parameters:
	//   - count: the number of particles to allocate for
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitParticleBuffers(count int) error

	// UpdateParticles uploads packed particle positions (3 float32 per
	// particle) to the GPU instance buffer.
	//
	// Parameters:
	//   - data: the raw position bytes
	UpdateParticles(data []byte)

	// SetUniforms uploads the per-frame scene uniforms: transforms, particle
	// color, light parameters, and bloom knobs.
	//
	// Parameters:
	//   - u: the scene uniforms for the next frame
	SetUniforms(u SceneUniforms)

	// RenderFrame runs the compositor for one frame and presents it: base
	// pass into the transparent offscreen target, bright pass, separable
	// blur, additive composite to the surface.
	//
	// Returns:
	//   - error: an error if the frame could not be rendered
	RenderFrame() error

	// SetPresentMode sets the surface present mode which controls how frames
	// are delivered to the display. A call to Resize is required after
	// changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees all GPU resources held by the renderer. Safe to call
	// more than once.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type,
// bound to the given window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the platform surface descriptor
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(win.Width(), win.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) InitParticleBuffers(count int) error {
	return r.backend.InitParticleBuffers(count)
}

func (r *renderer) UpdateParticles(data []byte) {
	r.backend.WriteParticles(data)
}

func (r *renderer) SetUniforms(u SceneUniforms) {
	r.backend.WriteUniforms(u)
}

func (r *renderer) RenderFrame() error {
	return r.backend.RenderFrame()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.backend.Release()
}
