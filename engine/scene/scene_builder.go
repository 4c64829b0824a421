package scene

// SceneBuilderOption is a functional option applied to a scene during construction via NewScene.
type SceneBuilderOption func(*scene)

// WithComputeWorkers sets the number of goroutines used for the parallel
// per-frame particle interpolation. Defaults to NumCPU-1.
//
// Parameters:
//   - workers: the worker count (values below 1 are clamped to 1)
//
// Returns:
//   - SceneBuilderOption: a function that applies the worker count to a scene
func WithComputeWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		s.computeWorkers = max(workers, 1)
	}
}

// WithParticleSize sets the billboard half-extent in view units.
//
// Parameters:
//   - size: the particle size
//
// Returns:
//   - SceneBuilderOption: a function that applies the particle size to a scene
func WithParticleSize(size float32) SceneBuilderOption {
	return func(s *scene) {
		s.particleSize = size
	}
}

// WithBloomThreshold sets the bright-pass luminance cutoff.
//
// Parameters:
//   - threshold: the luminance threshold
//
// Returns:
//   - SceneBuilderOption: a function that applies the threshold to a scene
func WithBloomThreshold(threshold float32) SceneBuilderOption {
	return func(s *scene) {
		s.bloomThreshold = threshold
	}
}
