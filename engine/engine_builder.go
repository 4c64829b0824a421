package engine

import (
	"time"

	"github.com/Carmen-Shannon/nova-go/engine/capture"
	"github.com/Carmen-Shannon/nova-go/engine/detector"
	"github.com/Carmen-Shannon/nova-go/engine/renderer"
	"github.com/Carmen-Shannon/nova-go/engine/scene"
	"github.com/Carmen-Shannon/nova-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the window for the session to render into.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer the session releases on teardown.
// This should be the same renderer the scene draws through.
//
// Parameters:
//   - r: the Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene the session advances and draws each frame.
//
// Parameters:
//   - s: the Scene instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scn = s
	}
}

// WithCapture sets the capture camera the tick loop reads frames from.
// Sessions without a camera run the visualization without gesture input.
//
// Parameters:
//   - cam: the capture Camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCapture(cam capture.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.cam = cam
	}
}

// WithDetector sets the hand detector consumed by the gesture mapper.
// Implementations requiring startup (e.g. the MediaPipe subprocess client)
// must be started before the session initializes.
//
// Parameters:
//   - det: the Detector instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDetector(det detector.Detector) EngineBuilderOption {
	return func(e *engine) {
		e.det = det
	}
}

// WithTickRate sets the logic tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithStatusCallback registers the gesture status callback at construction.
//
// Parameters:
//   - callback: function receiving each new status text
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStatusCallback(callback func(status string)) EngineBuilderOption {
	return func(e *engine) {
		e.statusCallback = callback
	}
}
