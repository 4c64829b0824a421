package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func makeFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestMockCameraReadBeforeOpen(t *testing.T) {
	cam := NewMockCamera(nil, nil, false)
	if _, _, err := cam.ReadFrame(); err != ErrCameraNotOpen {
		t.Fatalf("expected ErrCameraNotOpen, got %v", err)
	}
}

func TestMockCameraTimestampsMonotonic(t *testing.T) {
	frames := makeFrames(t, 4)
	cam := NewMockCamera(frames, nil, false)
	if err := cam.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cam.Close()

	last := -1.0
	for i := 0; i < 4; i++ {
		frame, ts, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
		if ts < last {
			t.Fatalf("timestamp decreased at frame %d: %v < %v", i, ts, last)
		}
		last = ts
	}
}

func TestMockCameraExhaustsWithoutLoop(t *testing.T) {
	frames := makeFrames(t, 2)
	cam := NewMockCamera(frames, []float64{0, 0.1}, false)
	if err := cam.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		frame, _, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
	}
	if _, _, err := cam.ReadFrame(); err != ErrReadFailed {
		t.Fatalf("expected ErrReadFailed after exhaustion, got %v", err)
	}
}

func TestMockCameraLoops(t *testing.T) {
	frames := makeFrames(t, 2)
	cam := NewMockCamera(frames, []float64{0, 0.1}, true)
	if err := cam.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 5; i++ {
		frame, _, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
	}
}

func TestMockCameraLoopTimestampsKeepAdvancing(t *testing.T) {
	frames := makeFrames(t, 2)
	cam := NewMockCamera(frames, []float64{0, 0.1}, true)
	if err := cam.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer cam.Close()

	// Timestamps must stay strictly increasing across the wrap; a replay
	// that rewinds the clock would stall every timestamp-gated consumer.
	last := -1.0
	for i := 0; i < 6; i++ {
		frame, ts, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
		if ts <= last {
			t.Fatalf("timestamp did not advance at frame %d: %v after %v", i, ts, last)
		}
		last = ts
	}
}
