package gesture

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/nova-go/engine/detector"
	"github.com/Carmen-Shannon/nova-go/engine/morph"
)

// recordingTargeter captures every SetTarget call in order.
type recordingTargeter struct {
	targets []morph.Target
}

func (r *recordingTargeter) SetTarget(target morph.Target) {
	r.targets = append(r.targets, target)
}

func TestApplyClassification(t *testing.T) {
	tests := []struct {
		name       string
		result     *detector.Result
		wantStatus string
	}{
		{"no hand", nil, StatusNoHand},
		{"tight pinch", detector.PinchResult(0.03, 0.5, 0.5), StatusPinch},
		{"wide spread", detector.PinchResult(0.25, 0.5, 0.5), StatusOpenPalm},
		{"confident palm", detector.OpenPalmResult(0.9, 0.1, 0.5, 0.5), StatusOpenPalm},
		{"ambiguous hand", detector.PinchResult(0.15, 0.5, 0.5), StatusTracking},
		{"palm below confidence", detector.OpenPalmResult(0.3, 0.15, 0.5, 0.5), StatusTracking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapper(detector.NewMockDetector(), &recordingTargeter{})
			if got := m.Apply(tt.result); got != tt.wantStatus {
				t.Fatalf("status = %q, want %q", got, tt.wantStatus)
			}
			if m.Status() != tt.wantStatus {
				t.Fatalf("Status() = %q, want %q", m.Status(), tt.wantStatus)
			}
		})
	}
}

func TestApplyTrackingIssuesNoTarget(t *testing.T) {
	rec := &recordingTargeter{}
	m := NewMapper(detector.NewMockDetector(), rec)

	m.Apply(detector.PinchResult(0.15, 0.5, 0.5))
	if len(rec.targets) != 0 {
		t.Fatalf("tracking state issued targets: %v", rec.targets)
	}
}

func TestApplyTargetIdempotence(t *testing.T) {
	rec := &recordingTargeter{}
	m := NewMapper(detector.NewMockDetector(), rec)

	// Initial target is Assembled, so leading pinches issue nothing.
	m.Apply(detector.PinchResult(0.03, 0.5, 0.5))
	m.Apply(detector.PinchResult(0.03, 0.5, 0.5))
	m.Apply(detector.PinchResult(0.25, 0.5, 0.5))
	m.Apply(detector.PinchResult(0.25, 0.5, 0.5))
	m.Apply(detector.PinchResult(0.03, 0.5, 0.5))

	want := []morph.Target{morph.TargetExploded, morph.TargetAssembled}
	if len(rec.targets) != len(want) {
		t.Fatalf("issued %v, want %v", rec.targets, want)
	}
	for i := range want {
		if rec.targets[i] != want[i] {
			t.Fatalf("issued %v, want %v", rec.targets, want)
		}
	}
}

func TestApplyRoutesPalmPosition(t *testing.T) {
	var gotX, gotY float32
	calls := 0
	m := NewMapper(detector.NewMockDetector(), &recordingTargeter{},
		WithPositionSink(func(nx, ny float32) {
			gotX, gotY = nx, ny
			calls++
		}),
	)

	// Position routes even when the gesture only tracks.
	m.Apply(detector.PinchResult(0.15, 0.3, 0.7))
	if calls != 1 {
		t.Fatalf("sink called %d times, want 1", calls)
	}
	if gotX != 0.3 || gotY != 0.7 {
		t.Fatalf("sink received (%v, %v), want (0.3, 0.7)", gotX, gotY)
	}

	// No hand, no routing.
	m.Apply(nil)
	if calls != 1 {
		t.Fatalf("sink called on nil result")
	}
}

func TestStepSkipsStaleTimestamps(t *testing.T) {
	det := detector.NewMockDetector()
	det.QueueResults(detector.PinchResult(0.25, 0.5, 0.5))
	m := NewMapper(det, &recordingTargeter{})

	if _, err := m.Step(nil, 1.0); err != nil {
		t.Fatalf("step: %v", err)
	}
	if det.Calls() != 1 {
		t.Fatalf("detector called %d times, want 1", det.Calls())
	}

	// Same timestamp: detector skipped, status retained.
	status, err := m.Step(nil, 1.0)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if det.Calls() != 1 {
		t.Fatalf("detector called %d times after stale frame, want 1", det.Calls())
	}
	if status != StatusOpenPalm {
		t.Fatalf("stale frame changed status to %q", status)
	}

	// Advancing timestamp resumes detection.
	if _, err := m.Step(nil, 1.1); err != nil {
		t.Fatalf("step: %v", err)
	}
	if det.Calls() != 2 {
		t.Fatalf("detector called %d times, want 2", det.Calls())
	}
}

func TestStepDetectorErrorRetainsStatus(t *testing.T) {
	det := detector.NewMockDetector()
	det.SetError(errors.New("service down"))
	m := NewMapper(det, &recordingTargeter{})

	status, err := m.Step(nil, 1.0)
	if err == nil {
		t.Fatal("expected an error from Step")
	}
	if status != StatusNoHand {
		t.Fatalf("status = %q, want %q", status, StatusNoHand)
	}
}
