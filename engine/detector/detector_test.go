package detector

import (
	"errors"
	"math"
	"testing"
)

func TestHandReturnsFirstHand(t *testing.T) {
	var nilResult *Result
	if nilResult.Hand() != nil {
		t.Fatal("nil result returned a hand")
	}

	empty := &Result{}
	if empty.Hand() != nil {
		t.Fatal("empty result returned a hand")
	}

	r := PinchResult(0.05, 0.5, 0.5)
	hand := r.Hand()
	if len(hand) != NumLandmarks {
		t.Fatalf("hand has %d landmarks, want %d", len(hand), NumLandmarks)
	}
}

func TestGestureScore(t *testing.T) {
	r := OpenPalmResult(0.8, 0.3, 0.5, 0.5)
	if got := r.GestureScore(OpenPalmCategory); got != 0.8 {
		t.Fatalf("score = %v, want 0.8", got)
	}
	if got := r.GestureScore("Thumbs_Up"); got != 0 {
		t.Fatalf("score for absent category = %v, want 0", got)
	}
}

func TestDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	if got := Distance(a, b); math.Abs(got-5) > 1e-9 {
		t.Fatalf("distance = %v, want 5", got)
	}
}

func TestPinchResultGeometry(t *testing.T) {
	r := PinchResult(0.06, 0.4, 0.6)
	hand := r.Hand()

	if got := Distance(hand[ThumbTip], hand[IndexTip]); math.Abs(got-0.06) > 1e-9 {
		t.Fatalf("fingertip gap = %v, want 0.06", got)
	}
	if hand[PalmCenter].X != 0.4 || hand[PalmCenter].Y != 0.6 {
		t.Fatalf("palm center = (%v, %v), want (0.4, 0.6)", hand[PalmCenter].X, hand[PalmCenter].Y)
	}
}

func TestMockDetectorQueueAndError(t *testing.T) {
	m := NewMockDetector()

	// Empty queue means no hand.
	r, err := m.Detect(nil)
	if err != nil || r != nil {
		t.Fatalf("empty queue: got (%v, %v), want (nil, nil)", r, err)
	}

	first := PinchResult(0.05, 0.5, 0.5)
	second := OpenPalmResult(0.9, 0.3, 0.5, 0.5)
	m.QueueResults(first, second)

	if r, _ := m.Detect(nil); r != first {
		t.Fatal("first detect did not return the first queued result")
	}
	if r, _ := m.Detect(nil); r != second {
		t.Fatal("second detect did not return the second queued result")
	}
	// The last result repeats once the queue is drained.
	if r, _ := m.Detect(nil); r != second {
		t.Fatal("drained queue did not repeat the last result")
	}

	wantErr := errors.New("camera unplugged")
	m.SetError(wantErr)
	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	if m.Calls() != 5 {
		t.Fatalf("calls = %d, want 5", m.Calls())
	}
}
