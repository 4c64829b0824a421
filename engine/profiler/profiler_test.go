package profiler

import (
	"testing"
	"time"
)

func TestTickLogsAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(20 * time.Millisecond)

	if p.Tick() {
		t.Fatal("logged before the interval elapsed")
	}

	time.Sleep(30 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("did not log after the interval elapsed")
	}

	// Counters reset after a log.
	if p.Tick() {
		t.Fatal("logged again immediately after a report")
	}
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(0)
	if p.updateInterval != time.Second {
		t.Fatalf("interval = %v, want default 1s", p.updateInterval)
	}
	p.SetInterval(-time.Second)
	if p.updateInterval != time.Second {
		t.Fatalf("interval = %v, want default 1s", p.updateInterval)
	}
}
