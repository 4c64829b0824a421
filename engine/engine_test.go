package engine

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/nova-go/common"
	"github.com/Carmen-Shannon/nova-go/engine/camera"
	"github.com/Carmen-Shannon/nova-go/engine/capture"
	"github.com/Carmen-Shannon/nova-go/engine/detector"
	"github.com/Carmen-Shannon/nova-go/engine/gesture"
	"github.com/Carmen-Shannon/nova-go/engine/light"
	"github.com/Carmen-Shannon/nova-go/engine/morph"
	"github.com/Carmen-Shannon/nova-go/engine/particle"
	"github.com/Carmen-Shannon/nova-go/engine/renderer"
	"github.com/Carmen-Shannon/nova-go/engine/scene"
	"github.com/Carmen-Shannon/nova-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"gocv.io/x/gocv"
)

// mockWindow drives the session without a display server.
type mockWindow struct {
	mu       sync.Mutex
	onUpdate func()
	onResize func(width, height int)
	closed   bool
	width    int
	height   int
}

var _ window.Window = &mockWindow{}

func newMockWindow() *mockWindow {
	return &mockWindow{width: 1280, height: 720}
}

func (w *mockWindow) SetUpdateCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = callback
}

func (w *mockWindow) SetResizeCallback(callback func(width, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = callback
}

func (w *mockWindow) SetKeyDownCallback(callback func(keyCode uint32)) {}
func (w *mockWindow) SetKeyUpCallback(callback func(keyCode uint32))   {}

func (w *mockWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }

func (w *mockWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed
}

func (w *mockWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *mockWindow) ProcessMessages() {
	for {
		w.mu.Lock()
		closed := w.closed
		callback := w.onUpdate
		w.mu.Unlock()
		if closed {
			return
		}
		if callback != nil {
			callback()
		}
		time.Sleep(time.Millisecond)
	}
}

func (w *mockWindow) Width() int  { return w.width }
func (w *mockWindow) Height() int { return w.height }

func (w *mockWindow) resize(width, height int) {
	w.mu.Lock()
	callback := w.onResize
	w.mu.Unlock()
	if callback != nil {
		callback(width, height)
	}
}

func buildSession(t *testing.T, options ...EngineBuilderOption) (*engine, *mockWindow, *renderer.MockRenderer) {
	t.Helper()

	assembled, exploded, err := particle.Generate(32, particle.DefaultSphereRadius, particle.DefaultExplosionRadius,
		particle.WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	mock := renderer.NewMockRenderer()
	scn, err := scene.NewScene("session",
		camera.NewCamera(),
		particle.NewCloud(assembled, exploded),
		light.NewLight(),
		mock,
		scene.WithComputeWorkers(1),
	)
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}

	win := newMockWindow()
	opts := append([]EngineBuilderOption{
		WithWindow(win),
		WithRenderer(mock),
		WithScene(scn),
	}, options...)
	return NewEngine(opts...).(*engine), win, mock
}

func makeFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { _ = m.Close() })
	return &m
}

func waitForState(t *testing.T, e *engine, want SessionState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", e.State(), want)
}

func TestLifecycle(t *testing.T) {
	e, _, mock := buildSession(t)

	if e.State() != StateUninitialized {
		t.Fatalf("initial state = %v, want uninitialized", e.State())
	}
	if e.ID() == "" {
		t.Fatal("session has no ID")
	}

	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if e.State() != StateReady {
		t.Fatalf("state after init = %v, want ready", e.State())
	}

	done := make(chan error, 1)
	go func() { done <- e.Run() }()
	waitForState(t, e, StateRunning)

	e.Quit()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after quit")
	}

	if e.State() != StateTerminated {
		t.Fatalf("state after quit = %v, want terminated", e.State())
	}
	if mock.Frames() == 0 {
		t.Fatal("no frames rendered while running")
	}
	if mock.ReleaseCount() != 1 {
		t.Fatalf("renderer released %d times, want 1", mock.ReleaseCount())
	}

	// Repeated quits stay no-ops.
	e.Quit()
	if mock.ReleaseCount() != 1 {
		t.Fatalf("renderer released %d times after second quit, want 1", mock.ReleaseCount())
	}
}

func TestInitRequiresComponents(t *testing.T) {
	e := NewEngine().(*engine)
	if err := e.Init(); err == nil {
		t.Fatal("init succeeded without a window")
	}
}

func TestInitOnlyFromUninitialized(t *testing.T) {
	e, _, _ := buildSession(t)
	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := e.Init(); err == nil {
		t.Fatal("second init succeeded")
	}
}

func TestRunRequiresReady(t *testing.T) {
	e, _, _ := buildSession(t)
	if err := e.Run(); err == nil {
		t.Fatal("run succeeded without init")
	}
}

func TestQuitBeforeRun(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{makeFrame(t)}, nil, true)
	det := detector.NewMockDetector()
	e, _, mock := buildSession(t, WithCapture(cam), WithDetector(det))

	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	e.Quit()

	if e.State() != StateTerminated {
		t.Fatalf("state = %v, want terminated", e.State())
	}
	if mock.ReleaseCount() != 1 {
		t.Fatalf("renderer released %d times, want 1", mock.ReleaseCount())
	}
	if cam.IsOpen() {
		t.Fatal("camera still open after teardown")
	}
	if !det.Closed() {
		t.Fatal("detector not closed after teardown")
	}
}

func TestTeardownCancelsPositionTween(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{makeFrame(t)}, nil, true)
	det := detector.NewMockDetector()
	e, _, _ := buildSession(t, WithCapture(cam), WithDetector(det))

	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	e.Scene().SetTargetPosition(5, 0, 0)
	e.Scene().Advance(scene.DefaultPositionTweenDuration/4, 0, 1)
	e.Quit()

	// Teardown cancels the in-flight position tween; the scene must not
	// keep drifting toward the old target afterwards.
	frozen := e.Scene().Position()
	e.Scene().Advance(scene.DefaultPositionTweenDuration, 0, 1)
	if e.Scene().Position() != frozen {
		t.Fatalf("position moved after teardown: %v, want %v", e.Scene().Position(), frozen)
	}
}

func TestStepDrivesGestureMorphAndScene(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{makeFrame(t)}, nil, true)
	det := detector.NewMockDetector()
	det.QueueResults(detector.OpenPalmResult(0.9, 0.15, 0.5, 0.5))

	var statuses []string
	e, _, mock := buildSession(t,
		WithCapture(cam),
		WithDetector(det),
		WithStatusCallback(func(status string) { statuses = append(statuses, status) }),
	)
	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	for i := 0; i < 8; i++ {
		e.step(0.5)
	}

	if e.morphState.Target() != morph.TargetExploded {
		t.Fatalf("morph target = %v, want exploded", e.morphState.Target())
	}
	if got := e.morphState.Factor(); got < 0.99 {
		t.Fatalf("morph factor = %v, want ~1 after the transition", got)
	}
	if e.Status() != gesture.StatusOpenPalm {
		t.Fatalf("status = %q, want %q", e.Status(), gesture.StatusOpenPalm)
	}
	if len(statuses) != 1 || statuses[0] != gesture.StatusOpenPalm {
		t.Fatalf("status callback fired with %v, want one open-palm entry", statuses)
	}
	if err := e.scn.Draw(); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if u := mock.LastUniforms(); u.Params[1] != morph.BloomExploded {
		t.Fatalf("bloom uniform = %v, want %v", u.Params[1], morph.BloomExploded)
	}
}

func TestDebugKeys(t *testing.T) {
	e, _, _ := buildSession(t)
	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	e.handleKey(common.KeyE)
	if e.morphState.Target() != morph.TargetExploded {
		t.Fatalf("target after E = %v, want exploded", e.morphState.Target())
	}

	e.handleKey(common.KeyA)
	if e.morphState.Target() != morph.TargetAssembled {
		t.Fatalf("target after A = %v, want assembled", e.morphState.Target())
	}

	e.handleKey(common.KeySpace)
	if e.morphState.Target() != morph.TargetExploded {
		t.Fatalf("target after Space = %v, want exploded", e.morphState.Target())
	}

	e.handleKey(common.KeyP)
	if !e.profilingEnabled {
		t.Fatal("P did not enable profiling")
	}
}

func TestResizeAfterTeardownIsNoop(t *testing.T) {
	e, win, mock := buildSession(t)
	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	win.resize(800, 600)
	if w, h := mock.Size(); w != 800 || h != 600 {
		t.Fatalf("renderer size = %dx%d, want 800x600", w, h)
	}

	e.Quit()
	win.resize(100, 100)
	if w, h := mock.Size(); w != 800 || h != 600 {
		t.Fatalf("renderer resized after teardown to %dx%d", w, h)
	}
}
