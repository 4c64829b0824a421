package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastPauseTotal uint64
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInterval changes how often Tick logs statistics.
// Values <= 0 are ignored.
//
// Parameters:
//   - interval: the logging interval
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed:
// FPS, average frame time, live heap, allocation rate, and GC activity.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	frameMs := elapsed.Seconds() * 1000 / float64(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcDelta := p.memStats.NumGC - p.lastGCCount
	pauseDeltaUs := (p.memStats.PauseTotalNs - p.lastPauseTotal) / 1000

	log.Printf("[Profiler] FPS: %.2f (%.2f ms/frame) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d runs, %d µs paused | Sys: %.2f MB",
		fps, frameMs, heapMB, allocRateMB, gcDelta, pauseDeltaUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastPauseTotal = p.memStats.PauseTotalNs
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
