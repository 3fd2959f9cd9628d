// Package session manages the lifetime of jiggler runs on behalf of the
// terminal UI and the headless runner.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stigoleg/jiggle/internal/jiggler"
	"github.com/stigoleg/jiggle/internal/platform"
)

// DefaultStopTimeout bounds how long Stop waits for the worker to exit.
const DefaultStopTimeout = 5 * time.Second

var (
	// ErrAlreadyRunning is returned when a run is started while another is live.
	ErrAlreadyRunning = errors.New("jiggler already running")

	// ErrStopTimeout is returned when the worker did not exit in time.
	ErrStopTimeout = errors.New("jiggler did not stop in time")
)

// Status is a snapshot of the current or most recent run.
type Status struct {
	RunID     string
	Running   bool
	State     jiggler.State
	Reason    jiggler.StopReason
	Health    jiggler.Health
	Stats     jiggler.Stats
	Duration  time.Duration
	Remaining time.Duration
	Elapsed   time.Duration
}

// Keeper starts and stops jiggler runs. At most one run is live at a time.
type Keeper struct {
	mu          sync.Mutex
	pointer     platform.Pointer
	display     platform.Display
	opts        jiggler.Options
	logger      *zap.Logger
	stopTimeout time.Duration

	handle   *jiggler.Handle
	duration time.Duration
}

// NewKeeper returns a Keeper that runs the jiggler with opts. The Duration
// in opts is ignored; each start chooses its own.
func NewKeeper(pointer platform.Pointer, display platform.Display, opts jiggler.Options, logger *zap.Logger) *Keeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Keeper{
		pointer:     pointer,
		display:     display,
		opts:        opts,
		logger:      logger.Named("keeper"),
		stopTimeout: DefaultStopTimeout,
	}
}

// SetStopTimeout changes how long Stop waits. Non-positive values restore
// the default.
func (k *Keeper) SetStopTimeout(d time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if d <= 0 {
		d = DefaultStopTimeout
	}
	k.stopTimeout = d
}

// StopTimeout returns how long Stop waits.
func (k *Keeper) StopTimeout() time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.stopTimeout
}

// IsRunning reports whether a run is live.
func (k *Keeper) IsRunning() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.liveLocked()
}

func (k *Keeper) liveLocked() bool {
	return k.handle != nil && k.handle.State() != jiggler.StateStopped
}

// StartIndefinite starts a run that lasts until stopped.
func (k *Keeper) StartIndefinite() error {
	return k.start(0)
}

// StartTimed starts a run that stops by itself after d.
func (k *Keeper) StartTimed(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", jiggler.ErrInvalidOptions, d)
	}
	return k.start(d)
}

func (k *Keeper) start(d time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.liveLocked() {
		return ErrAlreadyRunning
	}

	opts := k.opts
	opts.Duration = d
	j, err := jiggler.New(k.pointer, k.display, opts, k.logger)
	if err != nil {
		return err
	}

	h, err := j.Start(context.Background())
	if err != nil {
		return err
	}

	k.handle = h
	k.duration = d
	if d > 0 {
		k.logger.Info("keeper: started", zap.String("run_id", h.ID()), zap.Duration("timed", d))
	} else {
		k.logger.Info("keeper: started", zap.String("run_id", h.ID()))
	}
	return nil
}

// Stop stops the live run, waiting up to the stop timeout.
func (k *Keeper) Stop() error {
	k.mu.Lock()
	timeout := k.stopTimeout
	k.mu.Unlock()
	return k.StopWithTimeout(timeout)
}

// StopWithTimeout requests a stop and waits up to timeout for the worker to
// exit. Stopping when nothing runs is a no-op.
func (k *Keeper) StopWithTimeout(timeout time.Duration) error {
	k.mu.Lock()
	h := k.handle
	k.mu.Unlock()

	if h == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}

	h.RequestStop()
	if !h.Join(timeout) {
		k.logger.Warn("keeper: stop timeout exceeded", zap.Duration("timeout", timeout))
		return fmt.Errorf("%w after %v", ErrStopTimeout, timeout)
	}
	k.logger.Info("keeper: stopped", zap.Stringer("reason", h.Reason()))
	return nil
}

// Done is closed when the current run exits. It returns nil before the first
// start.
func (k *Keeper) Done() <-chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.handle == nil {
		return nil
	}
	return k.handle.Done()
}

// TimeRemaining returns the remaining duration of a timed run.
func (k *Keeper) TimeRemaining() time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.liveLocked() {
		return 0
	}
	return k.handle.TimeRemaining()
}

// Status returns a snapshot of the current or most recent run.
func (k *Keeper) Status() Status {
	k.mu.Lock()
	defer k.mu.Unlock()

	h := k.handle
	if h == nil {
		return Status{State: jiggler.StateStopped}
	}
	return Status{
		RunID:     h.ID(),
		Running:   h.State() != jiggler.StateStopped,
		State:     h.State(),
		Reason:    h.Reason(),
		Health:    h.Health(),
		Stats:     h.Stats(),
		Duration:  k.duration,
		Remaining: h.TimeRemaining(),
		Elapsed:   h.Elapsed(),
	}
}

// Options returns the options runs are started with.
func (k *Keeper) Options() jiggler.Options {
	return k.opts
}
