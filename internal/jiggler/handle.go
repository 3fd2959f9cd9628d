package jiggler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stigoleg/jiggle/internal/platform"
)

// Stats is a snapshot of a run's progress.
type Stats struct {
	Ticks      int
	Moves      int
	Skipped    int
	Clicks     int
	Failures   int
	Fallbacks  int
	LastTarget platform.Point
	LastError  string
	LastTick   time.Time
}

// Handle controls one running jiggler loop. The controller owns the stop
// request; the worker owns the transition to StateStopped.
type Handle struct {
	id        string
	state     atomic.Int32
	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
	cancel    context.CancelFunc
	startedAt time.Time
	endTime   time.Time

	mu                  sync.Mutex
	stats               Stats
	reason              StopReason
	consecutiveFailures int
	everSucceeded       bool
}

func newHandle(id string, cancel context.CancelFunc, d time.Duration) *Handle {
	h := &Handle{
		id:        id,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		cancel:    cancel,
		startedAt: time.Now(),
	}
	if d > 0 {
		h.endTime = h.startedAt.Add(d)
	}
	h.state.Store(int32(StateRunning))
	return h
}

// ID returns the run id used in log lines.
func (h *Handle) ID() string {
	return h.id
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	return State(h.state.Load())
}

// RequestStop asks the loop to exit. It never blocks and may be called any
// number of times.
func (h *Handle) RequestStop() {
	h.stopOnce.Do(func() {
		h.state.CompareAndSwap(int32(StateRunning), int32(StateStopRequested))
		close(h.stop)
	})
}

// Join waits up to timeout for the loop to exit and reports whether it did.
// A non-positive timeout only checks.
func (h *Handle) Join(timeout time.Duration) bool {
	if timeout <= 0 {
		select {
		case <-h.done:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-h.done:
		return true
	case <-timer.C:
		return false
	}
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Reason returns why the run ended, or ReasonNone while it is running.
func (h *Handle) Reason() StopReason {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reason
}

// Stats returns a snapshot of the run counters.
func (h *Handle) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Health reports whether input synthesis currently works.
func (h *Handle) Health() Health {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.consecutiveFailures > 0:
		return HealthFailing
	case h.everSucceeded:
		return HealthOK
	default:
		return HealthUnknown
	}
}

// TimeRemaining returns the remaining duration of a timed run.
func (h *Handle) TimeRemaining() time.Duration {
	if h.endTime.IsZero() || h.State() == StateStopped {
		return 0
	}
	remaining := time.Until(h.endTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Elapsed returns how long the run has been going.
func (h *Handle) Elapsed() time.Duration {
	return time.Since(h.startedAt)
}

func (h *Handle) stopRequested() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}

func (h *Handle) running() bool {
	return h.State() == StateRunning
}

func (h *Handle) finish(reason StopReason) {
	h.mu.Lock()
	h.reason = reason
	h.mu.Unlock()

	h.state.Store(int32(StateStopped))
	h.cancel()
	close(h.done)
}

func (h *Handle) recordTick() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Ticks++
	h.stats.LastTick = time.Now()
}

func (h *Handle) recordSkip() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Skipped++
}

func (h *Handle) recordMove(target platform.Point, fallback bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Moves++
	h.stats.LastTarget = target
	if fallback {
		h.stats.Fallbacks++
	}
	h.consecutiveFailures = 0
	h.everSucceeded = true
}

func (h *Handle) recordClick() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Clicks++
}

func (h *Handle) recordFailure(err error) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Failures++
	h.stats.LastError = err.Error()
	h.consecutiveFailures++
	return h.consecutiveFailures
}
