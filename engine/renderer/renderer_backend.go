package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// SceneUniforms is the per-frame uniform block consumed by the particle
// shader and the bloom passes. Layout matches the WGSL SceneUniforms struct:
// three column-major mat4x4 followed by four vec4.
type SceneUniforms struct {
	Model      [16]float32
	View       [16]float32
	Projection [16]float32

	// Color is the particle color with alpha, premultiplied in the shader.
	Color [4]float32

	// LightColor carries the light RGB in xyz and its intensity in w.
	LightColor [4]float32

	// LightPosition is the world-space light position (w unused).
	LightPosition [4]float32

	// Params packs scalar knobs: x = particle size in view units,
	// y = bloom intensity, z = bright-pass threshold, w unused.
	Params [4]float32
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
