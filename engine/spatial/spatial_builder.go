package spatial

type MapperBuilderOption func(*mapperImpl)

// WithDepthHint sets the clip-space depth used for the unprojected sample
// point.
//
// Parameters:
//   - depth: clip-space depth in (0, 1)
//
// Returns:
//   - MapperBuilderOption: a function that sets the depth hint
func WithDepthHint(depth float32) MapperBuilderOption {
	return func(m *mapperImpl) {
		m.depthHint = depth
	}
}
