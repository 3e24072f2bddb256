package engine

import (
	"sync"
	"time"
)

// PausableClock is simulation time: it follows the provider but stands still while paused
type PausableClock struct {
	mu       sync.RWMutex
	provider TimeProvider

	start       time.Time     // provider time at creation
	paused      bool
	pausedAt    time.Time     // provider time when the current pause began
	pausedTotal time.Duration // completed pauses
}

// NewPausableClock creates a running clock; nil provider uses the monotonic wall clock
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider: provider,
		start:    provider.Now(),
	}
}

// Now returns simulation time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	ref := pc.provider.Now()
	if pc.paused {
		ref = pc.pausedAt
	}
	return pc.start.Add(ref.Sub(pc.start) - pc.pausedTotal)
}

// Elapsed returns simulation time since creation
func (pc *PausableClock) Elapsed() time.Duration {
	return pc.Now().Sub(pc.start)
}

// Pause freezes simulation time, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.provider.Now()
}

// Resume restarts simulation time, no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.pausedTotal += pc.provider.Now().Sub(pc.pausedAt)
	pc.paused = false
	pc.pausedAt = time.Time{}
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration includes the pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.pausedTotal
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pausedAt)
	}
	return total
}
