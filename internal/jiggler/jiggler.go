// Package jiggler keeps the desktop from going idle by nudging the mouse
// cursor on a fixed interval while staying clear of window controls, the
// taskbar and the failsafe corner.
package jiggler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stigoleg/jiggle/internal/motion"
	"github.com/stigoleg/jiggle/internal/platform"
)

// failureWarnEvery limits repeated warnings about the same failing OS call.
const failureWarnEvery = time.Minute

// Jiggler starts idle-prevention runs against a pointer and a display.
type Jiggler struct {
	pointer platform.Pointer
	display platform.Display
	opts    Options
	logger  *zap.Logger
}

// New validates opts and returns a Jiggler. A nil logger discards output.
func New(pointer platform.Pointer, display platform.Display, opts Options, logger *zap.Logger) (*Jiggler, error) {
	if pointer == nil || display == nil {
		return nil, fmt.Errorf("%w: pointer and display are required", ErrInvalidOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.ClickAfterMove && !platform.CanClick(pointer) {
		return nil, fmt.Errorf("%w: click after move needs a pointer that can click", ErrInvalidOptions)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jiggler{
		pointer: pointer,
		display: display,
		opts:    opts,
		logger:  logger.Named("jiggler"),
	}, nil
}

// Options returns the options the Jiggler was built with.
func (j *Jiggler) Options() Options {
	return j.opts
}

// Start checks that the collaborators respond, then runs the loop on its own
// goroutine until the handle is stopped, the failsafe trips, the configured
// duration elapses or ctx is cancelled.
func (j *Jiggler) Start(ctx context.Context) (*Handle, error) {
	g, err := j.display.PrimarySize()
	if err != nil {
		return nil, &StartupError{Op: "query display", Err: err}
	}
	p, err := j.pointer.Location()
	if err != nil {
		return nil, &StartupError{Op: "read cursor", Err: err}
	}

	var cancel context.CancelFunc
	if j.opts.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, j.opts.Duration)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	seed := j.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	id := uuid.NewString()
	logger := j.logger.With(zap.String("run_id", id))
	h := newHandle(id, cancel, j.opts.Duration)

	w := &worker{
		j:      j,
		h:      h,
		logger: logger,
		warp:   j.pointer.MoveTo,
		chooser: chooser{
			rnd:        rnd,
			mode:       j.opts.Mode,
			radius:     j.opts.JitterRadius,
			maxRetries: j.opts.MaxRetries,
		},
		glide:    motion.NewGenerator(rnd),
		activity: newActivityTracker(logger),
		warn:     rate.Sometimes{First: 3, Interval: failureWarnEvery},
	}
	if wp, ok := j.pointer.(platform.Warper); ok {
		w.warp = wp.Warp
	}

	logger.Info("jiggler started",
		zap.Stringer("screen", g),
		zap.Stringer("cursor", p),
		zap.Duration("interval", j.opts.Interval),
		zap.Int("radius", j.opts.JitterRadius),
		zap.String("mode", string(j.opts.Mode)),
		zap.Duration("duration", j.opts.Duration),
		zap.Bool("click", j.opts.ClickAfterMove),
	)

	go w.run(ctx)
	return h, nil
}

// worker is the state of one run. Everything except h is confined to the
// loop goroutine.
type worker struct {
	j        *Jiggler
	h        *Handle
	logger   *zap.Logger
	warp     func(platform.Point) error
	chooser  chooser
	glide    *motion.Generator
	activity *activityTracker
	warn     rate.Sometimes
}

func (w *worker) run(ctx context.Context) {
	reason := ReasonRequested
	defer func() {
		w.logger.Info("jiggler stopped", zap.Stringer("reason", reason), zap.Int("ticks", w.h.Stats().Ticks))
		w.h.finish(reason)
	}()

	for {
		if r, stop := w.stopCause(ctx); stop {
			reason = r
			return
		}

		err := w.safeTick(ctx)
		switch {
		case err == nil, errors.Is(err, errInterrupted):
		case errors.Is(err, platform.ErrFailsafe):
			w.logger.Warn("emergency stop: cursor parked at top-left corner")
			reason = ReasonFailsafe
			return
		default:
			n := w.h.recordFailure(err)
			w.logger.Debug("tick failed", zap.Error(err), zap.Int("consecutive", n))
			w.warn.Do(func() {
				w.logger.Warn("tick failed; will retry next interval", zap.Error(err), zap.Int("consecutive", n))
			})
		}

		w.sleep(ctx, w.j.opts.Interval)
	}
}

func (w *worker) stopCause(ctx context.Context) (StopReason, bool) {
	if w.h.stopRequested() {
		return ReasonRequested, true
	}
	switch ctx.Err() {
	case nil:
		return ReasonNone, false
	case context.DeadlineExceeded:
		return ReasonExpired, true
	default:
		return ReasonCancelled, true
	}
}

// safeTick runs one tick and turns a panic in a collaborator into an error.
func (w *worker) safeTick(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("tick panicked", zap.Any("panic", r))
			err = fmt.Errorf("tick panicked: %v", r)
		}
	}()
	return w.tick(ctx)
}

func (w *worker) tick(ctx context.Context) error {
	w.h.recordTick()

	p, err := w.j.pointer.Location()
	if err != nil {
		return fmt.Errorf("read cursor: %w", err)
	}
	g, err := w.j.display.PrimarySize()
	if err != nil {
		return fmt.Errorf("query display: %w", err)
	}

	if w.j.opts.SkipWhenActive && w.activity.UserActive(p) {
		w.h.recordSkip()
		return nil
	}

	zones := DeriveZones(g, w.j.opts.Zones)
	target, fallback := w.chooser.choose(p, g, zones)
	if fallback {
		w.logger.Debug("all candidates inside avoidance zones; using screen center", zap.Stringer("cursor", p))
	}

	if err := w.move(ctx, p, target); err != nil {
		w.activity.Forget()
		return err
	}
	w.activity.Settled(target)
	w.h.recordMove(target, fallback)
	w.logger.Debug("moved cursor", zap.Stringer("from", p), zap.Stringer("to", target))

	// The center fallback is not zone-checked, so it never gets a click.
	if w.j.opts.ClickAfterMove && !fallback {
		if err := w.j.pointer.(platform.Clicker).Click(); err != nil {
			return fmt.Errorf("click at %s: %w", target, err)
		}
		w.h.recordClick()
	}
	return nil
}

// move walks the glide from `from` to `to`, checking for a stop before every
// step so no input is synthesized once the run leaves StateRunning. Only the
// final step is a verified MoveTo; intermediate steps are warps.
func (w *worker) move(ctx context.Context, from, to platform.Point) error {
	steps := w.glide.Glide(from, to, w.j.opts.Glide)
	for i, s := range steps {
		if !w.h.running() || ctx.Err() != nil {
			return errInterrupted
		}
		step := w.warp
		if i == len(steps)-1 {
			step = w.j.pointer.MoveTo
		}
		if err := step(s.Point); err != nil {
			return fmt.Errorf("move cursor to %s: %w", s.Point, err)
		}
		if s.Delay > 0 && !w.sleep(ctx, s.Delay) {
			return errInterrupted
		}
	}
	return nil
}

// sleep waits for d and reports whether it ran to completion. A stop request
// or a done context wakes it early.
func (w *worker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-w.h.stop:
		return false
	case <-ctx.Done():
		return false
	}
}
