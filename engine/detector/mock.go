package detector

import "gocv.io/x/gocv"

// MockDetector is a test implementation of the Detector interface.
// Tests queue results and the mock replays them in order, repeating the
// last one once the queue is drained.
type MockDetector struct {
	results []*Result
	next    int
	calls   int
	err     error
	closed  bool
}

// NewMockDetector creates a new MockDetector with no queued results
// (every Detect reports no hand).
//
// Returns:
//   - *MockDetector: the newly created mock
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// QueueResults appends results to be returned by successive Detect calls.
//
// Parameters:
//   - results: detection results in replay order (nil entries mean no hand)
func (m *MockDetector) QueueResults(results ...*Result) {
	m.results = append(m.results, results...)
}

// SetError makes every subsequent Detect fail with err.
//
// Parameters:
//   - err: the error to return (nil clears it)
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Closed reports whether Close has been called.
//
// Returns:
//   - bool: true if the mock has been closed
func (m *MockDetector) Closed() bool {
	return m.closed
}

// Calls returns the number of Detect invocations so far.
//
// Returns:
//   - int: the invocation count
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the next queued result or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) == 0 {
		return nil, nil
	}
	r := m.results[m.next]
	if m.next < len(m.results)-1 {
		m.next++
	}
	return r, nil
}

// Close marks the mock closed.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

var _ Detector = &MockDetector{}

// PinchResult returns a single-hand Result whose thumb and index fingertips
// are separated by the given normalized distance, centered at (cx, cy).
//
// Parameters:
//   - distance: the fingertip gap in normalized units
//   - cx, cy: the palm-center position in normalized image space
//
// Returns:
//   - *Result: the synthesized detection result
func PinchResult(distance, cx, cy float64) *Result {
	points := make([]Point, NumLandmarks)
	for i := range points {
		points[i] = Point{X: cx, Y: cy}
	}
	points[ThumbTip] = Point{X: cx - distance/2, Y: cy}
	points[IndexTip] = Point{X: cx + distance/2, Y: cy}
	points[PalmCenter] = Point{X: cx, Y: cy}

	return &Result{
		Landmarks: [][]Point{points},
		Gestures:  [][]Category{{{Name: "None", Score: 1}}},
	}
}

// OpenPalmResult returns a single-hand Result classified as an open palm
// with the given confidence, fingertips spread by the given distance.
//
// Parameters:
//   - score: the Open_Palm confidence
//   - distance: the fingertip gap in normalized units
//   - cx, cy: the palm-center position in normalized image space
//
// Returns:
//   - *Result: the synthesized detection result
func OpenPalmResult(score, distance, cx, cy float64) *Result {
	r := PinchResult(distance, cx, cy)
	r.Gestures = [][]Category{{{Name: OpenPalmCategory, Score: score}}}
	return r
}
