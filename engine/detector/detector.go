// Package detector provides the hand-detection seam consumed by the gesture
// mapper. The visualization never inspects frames itself; it hands them to a
// Detector and classifies the returned landmarks.
package detector

import (
	"math"

	"gocv.io/x/gocv"
)

// Landmark indices following the MediaPipe hand landmarker convention.
// The gesture mapper depends contractually on exactly three of them.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	ThumbTip     = 4
	IndexTip     = 8
	PalmCenter   = 9 // middle-finger MCP, used as the hand-center anchor
	NumLandmarks = 21
)

// OpenPalmCategory is the gesture classification name reported by the
// detector for a fully open hand.
const OpenPalmCategory = "Open_Palm"

// Point is a single landmark position in normalized image space
// (x, y in [0,1] with origin top-left; z is relative depth).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Category is a single gesture classification with its confidence score.
type Category struct {
	Name  string  `json:"categoryName"`
	Score float64 `json:"score"`
}

// Result holds one detection pass over a frame. Landmarks and Gestures are
// parallel per hand; the visualization only consumes the first hand of each.
type Result struct {
	// Landmarks is one landmark set per detected hand, NumLandmarks points each.
	Landmarks [][]Point `json:"landmarks"`

	// Gestures is one classification list per detected hand.
	Gestures [][]Category `json:"gestures"`
}

// Hand returns the first detected hand's landmark set, or nil when the
// result carries no hands.
//
// Returns:
//   - []Point: the first hand's landmarks, or nil
func (r *Result) Hand() []Point {
	if r == nil || len(r.Landmarks) == 0 {
		return nil
	}
	return r.Landmarks[0]
}

// GestureScore returns the first hand's confidence score for the named
// classification, or 0 when absent.
//
// Parameters:
//   - name: the category name to look up
//
// Returns:
//   - float64: the confidence score, or 0
func (r *Result) GestureScore(name string) float64 {
	if r == nil || len(r.Gestures) == 0 {
		return 0
	}
	for _, c := range r.Gestures[0] {
		if c.Name == name {
			return c.Score
		}
	}
	return 0
}

// Distance computes the Euclidean distance between two landmark points.
//
// Parameters:
//   - a: first point
//   - b: second point
//
// Returns:
//   - float64: the distance
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Detector is the consumed interface for hand detection implementations.
// The session treats a failing Start as terminal: the visualization never
// runs without a working detector.
type Detector interface {
	// Detect analyzes a video frame. A nil Result with a nil error means no
	// hand was found, which is a normal state rather than a failure.
	//
	// Parameters:
	//   - frame: the BGR video frame to analyze
	//
	// Returns:
	//   - *Result: the detection result, or nil when no hand is present
	//   - error: error if detection itself fails
	Detect(frame *gocv.Mat) (*Result, error)

	// Close releases any resources held by the detector.
	//
	// Returns:
	//   - error: error if shutdown fails
	Close() error
}
