package renderer

import "sync"

// MockRenderer is a test implementation of the Renderer interface that
// records calls instead of touching a GPU.
type MockRenderer struct {
	mu sync.Mutex

	width  int
	height int

	particleCount int
	uploads       int
	lastData      []byte
	lastUniforms  SceneUniforms
	frames        int
	released      int
	initErr       error
	frameErr      error
}

var _ Renderer = &MockRenderer{}

// NewMockRenderer creates a new MockRenderer.
//
// Returns:
//   - *MockRenderer: the newly created mock
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

// SetInitError makes InitParticleBuffers fail with err.
func (m *MockRenderer) SetInitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initErr = err
}

// SetFrameError makes RenderFrame fail with err.
func (m *MockRenderer) SetFrameError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frameErr = err
}

// Size returns the last dimensions passed to Resize.
func (m *MockRenderer) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// ParticleCount returns the count passed to InitParticleBuffers.
func (m *MockRenderer) ParticleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.particleCount
}

// Uploads returns the number of UpdateParticles calls.
func (m *MockRenderer) Uploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads
}

// LastData returns the bytes from the most recent UpdateParticles call.
func (m *MockRenderer) LastData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastData
}

// LastUniforms returns the uniforms from the most recent SetUniforms call.
func (m *MockRenderer) LastUniforms() SceneUniforms {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUniforms
}

// Frames returns the number of RenderFrame calls.
func (m *MockRenderer) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// ReleaseCount returns the number of Release calls.
func (m *MockRenderer) ReleaseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

func (m *MockRenderer) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width = width
	m.height = height
}

func (m *MockRenderer) InitParticleBuffers(count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initErr != nil {
		return m.initErr
	}
	m.particleCount = count
	return nil
}

func (m *MockRenderer) UpdateParticles(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	m.lastData = append(m.lastData[:0], data...)
}

func (m *MockRenderer) SetUniforms(u SceneUniforms) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUniforms = u
}

func (m *MockRenderer) RenderFrame() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frameErr != nil {
		return m.frameErr
	}
	m.frames++
	return nil
}

func (m *MockRenderer) SetPresentMode(mode PresentMode) {}

func (m *MockRenderer) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released++
}
