// Package capture provides webcam frame acquisition using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Default camera settings.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrCameraNotOpen is returned when reading from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrReadFailed is returned when the camera produces no frame.
var ErrReadFailed = errors.New("failed to read frame from camera")

// Camera defines the interface for webcam capture implementations.
//
// ReadFrame returns the frame together with a monotonic timestamp in
// seconds; consumers use the timestamp to skip detection work when no new
// frame has arrived.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, float64, error)
	IsOpen() bool
}

// cameraImpl manages video capture from a camera device using GoCV.
type cameraImpl struct {
	deviceID int
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
	epoch    time.Time
	lastTime float64
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the given device ID.
//
// Parameters:
//   - deviceID: index of the capture device, 0 for the default webcam
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(deviceID int) Camera {
	return &cameraImpl{
		deviceID: deviceID,
	}
}

// Open opens the camera for capturing frames. The resolution is pinned to
// 640x480 to keep detection latency down.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return err
	}

	capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)

	c.capture = capture
	c.running = true
	c.epoch = time.Now()
	c.lastTime = 0

	return nil
}

// Close closes the camera and releases resources. Safe to call twice.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera. The caller is responsible
// for closing the returned Mat. The returned timestamp never decreases
// across calls on an open camera.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, 0, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, 0, ErrReadFailed
	}
	if mat.Empty() {
		mat.Close()
		return nil, 0, ErrReadFailed
	}

	ts := time.Since(c.epoch).Seconds()
	if ts < c.lastTime {
		ts = c.lastTime
	}
	c.lastTime = ts

	return &mat, ts, nil
}

// IsOpen reports whether the camera is currently open.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
