package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/nova-go/common"
	"github.com/Carmen-Shannon/nova-go/engine/capture"
	"github.com/Carmen-Shannon/nova-go/engine/detector"
	"github.com/Carmen-Shannon/nova-go/engine/gesture"
	"github.com/Carmen-Shannon/nova-go/engine/morph"
	"github.com/Carmen-Shannon/nova-go/engine/profiler"
	"github.com/Carmen-Shannon/nova-go/engine/renderer"
	"github.com/Carmen-Shannon/nova-go/engine/scene"
	"github.com/Carmen-Shannon/nova-go/engine/spatial"
	"github.com/Carmen-Shannon/nova-go/engine/tween"
	"github.com/Carmen-Shannon/nova-go/engine/window"
	"github.com/google/uuid"
)

// SessionState identifies where a visualization session is in its lifecycle.
type SessionState int

const (
	// StateUninitialized is the state before Init has been called.
	StateUninitialized SessionState = iota

	// StateReady means Init succeeded and the session can run.
	StateReady

	// StateRunning means the tick loop and window loop are active.
	StateRunning

	// StateTerminated means the session has been torn down. Terminal.
	StateTerminated
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// engine implements the Engine interface.
// Coordinates the logic tick, render, and window threads for one session.
type engine struct {
	id string

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	teardownOnce sync.Once // Ensures GPU and device resources are released once
	wg           sync.WaitGroup

	window   window.Window
	renderer renderer.Renderer
	scn      scene.Scene
	cam      capture.Camera
	det      detector.Detector

	morphState morph.State
	gest       gesture.Mapper
	tweens     tween.Driver

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	statusCallback func(status string)
	lastStatus     string

	state SessionState
	mutex sync.Mutex
}

var _ Engine = &engine{}

// Engine is the main entry point for a visualization session.
// It orchestrates the logic tick loop, the render loop, and window management
// across the uninitialized -> ready -> running -> terminated lifecycle.
type Engine interface {
	// ID returns the unique identifier for this session.
	//
	// Returns:
	//   - string: the session UUID
	ID() string

	// State returns the current lifecycle state.
	//
	// Returns:
	//   - SessionState: the session state
	State() SessionState

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the active scene.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// Status returns the most recent gesture status line.
	//
	// Returns:
	//   - string: the status text
	Status() string

	// SetStatusCallback registers a function called whenever the gesture
	// status line changes.
	//
	// Parameters:
	//   - callback: function receiving the new status text
	SetStatusCallback(callback func(status string))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the logic tick rate in ticks per second.
	// If the session is running, the change takes effect immediately.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// Init transitions the session from uninitialized to ready: opens the
	// capture camera, wires the gesture mapper to the morph state and the
	// spatial mapper, and registers the resize listener. A failure here is
	// terminal for the session.
	//
	// Returns:
	//   - error: error if any required component is missing or fails to open
	Init() error

	// Run starts the logic tick goroutine and blocks processing window
	// messages until the window closes, then tears the session down.
	//
	// Returns:
	//   - error: error if the session is not ready
	Run() error

	// Quit signals all session goroutines to stop and shuts the session down.
	// Safe to call multiple times and before Run; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// The session starts uninitialized with a fresh UUID and a default 60Hz tick
// rate. Options are applied directly to the engine struct via the
// option-builder pattern.
//
// Parameters:
//   - options: functional options for session configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		id:              uuid.NewString(),
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		morphState:      morph.NewState(),
		tweens:          tween.NewDriver(),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		lastStatus:      gesture.StatusNoHand,
		state:           StateUninitialized,
	}

	for _, opt := range options {
		opt(e)
	}

	// All animated values advance in lockstep from the tick loop.
	e.tweens.Add(e.morphState)

	return e
}

func (e *engine) ID() string {
	return e.id
}

func (e *engine) State() SessionState {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.state
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scn
}

func (e *engine) Status() string {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.lastStatus
}

func (e *engine) SetStatusCallback(callback func(status string)) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.statusCallback = callback
}

func (e *engine) Init() error {
	e.mutex.Lock()
	if e.state != StateUninitialized {
		state := e.state
		e.mutex.Unlock()
		return fmt.Errorf("engine: cannot initialize from state %q", state)
	}
	e.mutex.Unlock()

	if e.window == nil {
		return errors.New("engine: no window configured")
	}
	if e.renderer == nil {
		return errors.New("engine: no renderer configured")
	}
	if e.scn == nil {
		return errors.New("engine: no scene configured")
	}

	if e.cam != nil {
		if err := e.cam.Open(); err != nil {
			return fmt.Errorf("engine: open camera: %w", err)
		}
	}

	if e.det != nil {
		sm := spatial.NewMapper(e.scn.Camera())
		e.gest = gesture.NewMapper(e.det, e.morphState,
			gesture.WithPositionSink(func(nx, ny float32) {
				if x, y, z, ok := sm.Map(nx, ny); ok {
					e.scn.SetTargetPosition(x, y, z)
				}
			}),
		)
	}

	e.window.SetKeyDownCallback(e.handleKey)

	e.window.SetResizeCallback(func(width, height int) {
		if e.State() == StateTerminated {
			return
		}
		e.scn.Resize(width, height)
	})

	e.mutex.Lock()
	e.state = StateReady
	e.mutex.Unlock()

	log.Printf("engine %s: session ready", e.id)
	return nil
}

func (e *engine) Run() error {
	e.mutex.Lock()
	if e.state != StateReady {
		state := e.state
		e.mutex.Unlock()
		return fmt.Errorf("engine: cannot run from state %q", state)
	}
	e.state = StateRunning
	e.mutex.Unlock()

	e.window.SetUpdateCallback(e.renderFrame)

	e.wg.Add(2)
	go e.handleTick()
	go e.handleQuit()

	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.teardown()
	return nil
}

// Quit signals all session goroutines to stop and shuts the session down.
// Safe to call multiple times; teardown runs at most once due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.window != nil {
		_ = e.window.Close()
	}

	e.mutex.Lock()
	running := e.state == StateRunning
	e.mutex.Unlock()

	// When the session is running, Run owns teardown after the window loop
	// and tick goroutine have drained.
	if !running {
		e.teardown()
	}
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// teardown releases session resources exactly once: detector, camera, and
// GPU buffers. It is safe before a full start and on repeated calls.
func (e *engine) teardown() {
	e.teardownOnce.Do(func() {
		// In-flight tweens stop where they are, with no guarantee of
		// reaching their targets.
		e.tweens.Stop()
		if e.scn != nil {
			e.scn.Stop()
		}

		if e.det != nil {
			if err := e.det.Close(); err != nil {
				log.Printf("engine %s: close detector: %v", e.id, err)
			}
		}
		if e.cam != nil {
			if err := e.cam.Close(); err != nil {
				log.Printf("engine %s: close camera: %v", e.id, err)
			}
		}
		if e.renderer != nil {
			e.renderer.Release()
		}

		e.mutex.Lock()
		e.state = StateTerminated
		e.mutex.Unlock()

		log.Printf("engine %s: session terminated", e.id)
	})
}

// handleTick runs the fixed-rate logic loop in its own goroutine.
// Each tick reads a capture frame, steps the gesture mapper, advances the
// morph state, and updates the scene. Listens for dynamic rate changes via
// tickRateChannel and exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// step executes one logic tick: gesture mapping before morph advance before
// the scene's cloud interpolation, preserving update ordering.
func (e *engine) step(dt float32) {
	if e.cam != nil && e.gest != nil {
		frame, timestamp, err := e.cam.ReadFrame()
		if err != nil {
			log.Printf("engine %s: read frame: %v", e.id, err)
		} else {
			status, derr := e.gest.Step(frame, timestamp)
			_ = frame.Close()
			if derr != nil {
				log.Printf("engine %s: detect: %v", e.id, derr)
			} else {
				e.publishStatus(status)
			}
		}
	}

	e.tweens.Tick(dt)
	e.scn.Advance(dt, e.morphState.Factor(), e.morphState.Bloom())
}

// renderFrame draws the scene once. Runs on the window thread from the
// message loop's update callback. Recovers from panics to avoid crashing
// the whole process and signals quit on recovery.
func (e *engine) renderFrame() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine %s: render recovered from panic: %v", e.id, r)
			e.signalQuit()
			_ = e.window.Close()
		}
	}()

	if e.State() != StateRunning {
		return
	}

	if err := e.scn.Draw(); err != nil {
		log.Printf("engine %s: draw: %v", e.id, err)
		e.signalQuit()
		_ = e.window.Close()
		return
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// handleKey services the keyboard shortcuts: A/E force a morph state, Space
// toggles it, and P toggles profiling output. Escape is handled by the
// window layer.
func (e *engine) handleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyA:
		e.morphState.SetTarget(morph.TargetAssembled)
	case common.KeyE:
		e.morphState.SetTarget(morph.TargetExploded)
	case common.KeySpace:
		if e.morphState.Target() == morph.TargetAssembled {
			e.morphState.SetTarget(morph.TargetExploded)
		} else {
			e.morphState.SetTarget(morph.TargetAssembled)
		}
	case common.KeyP:
		e.profilingEnabled = !e.profilingEnabled
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// publishStatus records a new gesture status line and fires the status
// callback when the text changed.
func (e *engine) publishStatus(status string) {
	e.mutex.Lock()
	if status == e.lastStatus {
		e.mutex.Unlock()
		return
	}
	e.lastStatus = status
	callback := e.statusCallback
	e.mutex.Unlock()

	if callback != nil {
		callback(status)
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the logic tick rate in ticks per second.
// If the session is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.State() == StateRunning {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}
