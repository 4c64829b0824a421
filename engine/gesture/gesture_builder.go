package gesture

type MapperBuilderOption func(*mapperImpl)

// WithPositionSink sets the receiver for palm-center positions.
//
// Parameters:
//   - sink: callback receiving normalized image coordinates
//
// Returns:
//   - MapperBuilderOption: a function that sets the position sink
func WithPositionSink(sink PositionSink) MapperBuilderOption {
	return func(m *mapperImpl) {
		m.sink = sink
	}
}
