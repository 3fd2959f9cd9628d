package jiggler

import (
	"errors"
	"fmt"
	"time"
)

// Mode selects how candidate targets are generated.
type Mode string

const (
	// ModeJitter nudges the cursor by at most JitterRadius pixels.
	ModeJitter Mode = "jitter"
	// ModeRandom picks an absolute point anywhere on the primary display.
	ModeRandom Mode = "random"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeJitter || m == ModeRandom
}

// ErrInvalidOptions is wrapped by every validation failure.
var ErrInvalidOptions = errors.New("invalid jiggler options")

// Options configures a Jiggler.
type Options struct {
	Interval     time.Duration
	JitterRadius int
	Mode         Mode

	// Glide spreads each move over this duration. Zero moves instantly.
	Glide time.Duration

	// MaxRetries bounds how often a candidate inside a zone is resampled
	// before falling back to the screen center.
	MaxRetries int

	Zones ZoneSizes

	// SkipWhenActive leaves the cursor alone on ticks where it was moved by
	// someone else since the previous tick.
	SkipWhenActive bool

	// ClickAfterMove presses the primary button after each move that landed
	// on a zone-checked target. The pointer must implement platform.Clicker.
	ClickAfterMove bool

	// Duration stops the run after this long. Zero runs until stopped.
	Duration time.Duration

	// Seed fixes the random source. Zero seeds from the clock.
	Seed int64
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Interval:       5 * time.Second,
		JitterRadius:   3,
		Mode:           ModeJitter,
		Glide:          250 * time.Millisecond,
		MaxRetries:     5,
		Zones:          DefaultZoneSizes(),
		SkipWhenActive: true,
	}
}

// Validate checks the preconditions of a run.
func (o Options) Validate() error {
	switch {
	case o.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidOptions, o.Interval)
	case o.JitterRadius < 0:
		return fmt.Errorf("%w: jitter radius must not be negative, got %d", ErrInvalidOptions, o.JitterRadius)
	case !o.Mode.Valid():
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, o.Mode)
	case o.Glide < 0:
		return fmt.Errorf("%w: glide must not be negative, got %v", ErrInvalidOptions, o.Glide)
	case o.Glide >= o.Interval:
		return fmt.Errorf("%w: glide %v must be shorter than interval %v", ErrInvalidOptions, o.Glide, o.Interval)
	case o.MaxRetries < 0:
		return fmt.Errorf("%w: max retries must not be negative, got %d", ErrInvalidOptions, o.MaxRetries)
	case o.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative, got %v", ErrInvalidOptions, o.Duration)
	}

	z := o.Zones
	if z.TopRight.Width < 0 || z.TopRight.Height < 0 || z.StartMenu.Width < 0 || z.StartMenu.Height < 0 ||
		z.TaskbarHeight < 0 || z.CornerGuard < 0 {
		return fmt.Errorf("%w: zone sizes must not be negative", ErrInvalidOptions)
	}
	if !z.TaskbarEdge.Valid() {
		return fmt.Errorf("%w: unknown taskbar edge %q", ErrInvalidOptions, z.TaskbarEdge)
	}
	return nil
}
