// Package gesture classifies hand-detector results into morph targets and
// routes the palm position to the spatial mapper.
package gesture

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/nova-go/engine/detector"
	"github.com/Carmen-Shannon/nova-go/engine/morph"

	"gocv.io/x/gocv"
)

// Classification thresholds over MediaPipe's normalized landmark space.
const (
	PinchThreshold     = 0.08
	PalmScoreThreshold = 0.5
	SpreadThreshold    = 0.2
)

// Status strings surfaced to the host UI.
const (
	StatusNoHand   = "No Hand Detected"
	StatusPinch    = "Gesture: Pinch (Create)"
	StatusOpenPalm = "Gesture: Open Palm (Explode)"
	StatusTracking = "Gesture: Tracking..."
)

// Targeter receives morph target changes. Satisfied by morph.State.
type Targeter interface {
	SetTarget(target morph.Target)
}

// PositionSink receives the palm-center position in normalized image
// coordinates whenever a hand is present.
type PositionSink func(nx, ny float32)

type mapperImpl struct {
	mu *sync.Mutex

	det      detector.Detector
	targeter Targeter
	sink     PositionSink

	lastTarget    morph.Target
	lastTimestamp float64
	hasTimestamp  bool
	status        string
}

// Mapper drives the morph state from per-frame hand detections.
type Mapper interface {
	// Step runs detection on the frame and applies the classification.
	// Detection is skipped when timestamp has not advanced past the
	// previous frame's; the prior status is returned unchanged.
	//
	// Parameters:
	//   - frame: the captured frame
	//   - timestamp: monotonic capture timestamp in seconds
	//
	// Returns:
	//   - string: the current status string
	//   - error: error from the detector, if any
	Step(frame *gocv.Mat, timestamp float64) (string, error)

	// Apply classifies an already-obtained detector result and routes the
	// outcome. A nil result means no hand.
	//
	// Parameters:
	//   - result: the detector result, or nil
	//
	// Returns:
	//   - string: the status string for this result
	Apply(result *detector.Result) string

	// Status returns the most recent status string.
	//
	// Returns:
	//   - string: the current status
	Status() string
}

var _ Mapper = &mapperImpl{}

// NewMapper creates a gesture mapper over the given detector and targeter.
// The initial last-issued target is Assembled, so pinch frames before any
// explosion do not restart the assembly tween.
//
// Parameters:
//   - det: the hand detector to invoke each frame
//   - targeter: receiver of morph target changes
//   - options: functional options to configure the mapper
//
// Returns:
//   - Mapper: the newly created mapper
func NewMapper(det detector.Detector, targeter Targeter, options ...MapperBuilderOption) Mapper {
	m := &mapperImpl{
		mu:         &sync.Mutex{},
		det:        det,
		targeter:   targeter,
		lastTarget: morph.TargetAssembled,
		status:     StatusNoHand,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *mapperImpl) Step(frame *gocv.Mat, timestamp float64) (string, error) {
	m.mu.Lock()
	if m.hasTimestamp && timestamp <= m.lastTimestamp {
		status := m.status
		m.mu.Unlock()
		return status, nil
	}
	m.lastTimestamp = timestamp
	m.hasTimestamp = true
	m.mu.Unlock()

	result, err := m.det.Detect(frame)
	if err != nil {
		return m.Status(), fmt.Errorf("detect: %w", err)
	}
	return m.Apply(result), nil
}

func (m *mapperImpl) Apply(result *detector.Result) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if result == nil {
		m.status = StatusNoHand
		return m.status
	}

	hand := result.Hand()
	if len(hand) <= detector.PalmCenter {
		m.status = StatusNoHand
		return m.status
	}

	// Palm position routes regardless of how the gesture classifies.
	if m.sink != nil {
		palm := hand[detector.PalmCenter]
		m.sink(float32(palm.X), float32(palm.Y))
	}

	dist := detector.Distance(hand[detector.ThumbTip], hand[detector.IndexTip])
	palmScore := result.GestureScore(detector.OpenPalmCategory)

	switch {
	case dist < PinchThreshold:
		m.issue(morph.TargetAssembled)
		m.status = StatusPinch
	case palmScore > PalmScoreThreshold || dist > SpreadThreshold:
		m.issue(morph.TargetExploded)
		m.status = StatusOpenPalm
	default:
		m.status = StatusTracking
	}
	return m.status
}

func (m *mapperImpl) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// issue forwards the target only when it differs from the last issued one.
// Caller must hold the mutex.
func (m *mapperImpl) issue(target morph.Target) {
	if target == m.lastTarget {
		return
	}
	m.lastTarget = target
	if m.targeter != nil {
		m.targeter.SetTarget(target)
	}
}
