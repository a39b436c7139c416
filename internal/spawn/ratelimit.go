package spawn

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// WindowLimiter grants a fixed quota of spawns per fixed time window. The
// counter resets when the window elapses. The clock is injected so tests and
// multi-instance deployments stay deterministic; there is no process-global
// state.
type WindowLimiter struct {
	mu          sync.Mutex
	clock       quartz.Clock
	quota       int
	window      time.Duration
	windowStart time.Time
	count       int
}

// NewWindowLimiter creates a limiter allowing quota calls per window.
func NewWindowLimiter(quota int, window time.Duration, clock quartz.Clock) *WindowLimiter {
	return &WindowLimiter{
		clock:       clock,
		quota:       quota,
		window:      window,
		windowStart: clock.Now(),
	}
}

// Allow consumes one slot, reporting false when the quota for the current
// window is exhausted.
func (l *WindowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}
	if l.count >= l.quota {
		return false
	}
	l.count++
	return true
}
