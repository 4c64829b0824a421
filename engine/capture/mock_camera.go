package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a scripted sequence of frames and timestamps for
// testing without a physical device.
type MockCamera struct {
	mu         sync.Mutex
	frames     []*gocv.Mat
	timestamps []float64
	index      int
	loop       bool
	running    bool

	// epoch accumulates across loop wraps so replayed timestamps keep the
	// non-decreasing contract instead of rewinding to the first value.
	epoch float64
}

var _ Camera = &MockCamera{}

// NewMockCamera creates a mock camera replaying the given frames. The
// timestamps slice must match frames in length; when nil, timestamps are
// generated at a fixed 30fps cadence.
func NewMockCamera(frames []*gocv.Mat, timestamps []float64, loop bool) *MockCamera {
	if timestamps == nil {
		timestamps = make([]float64, len(frames))
		for i := range timestamps {
			timestamps[i] = float64(i) / 30.0
		}
	}
	return &MockCamera{
		frames:     frames,
		timestamps: timestamps,
		loop:       loop,
	}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	c.epoch = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, 0, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return nil, 0, ErrReadFailed
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, 0, ErrReadFailed
		}
		step := 1.0 / 30.0
		if len(c.timestamps) > 1 {
			step = c.timestamps[1] - c.timestamps[0]
		}
		c.epoch += c.timestamps[len(c.timestamps)-1] - c.timestamps[0] + step
		c.index = 0
	}

	// Clone so callers can close their copy freely.
	frame := c.frames[c.index].Clone()
	ts := c.epoch + c.timestamps[c.index]
	c.index++

	return &frame, ts, nil
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
