package jiggler

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stigoleg/jiggle/internal/platform"
)

// activeLogInterval is how often to log when skipping ticks due to user activity.
const activeLogInterval = 2 * time.Minute

// activityTracker notices when someone other than the jiggler moved the
// cursor between ticks.
type activityTracker struct {
	logger *zap.Logger
	last   platform.Point
	known  bool
	active bool
	note   rate.Sometimes
}

func newActivityTracker(logger *zap.Logger) *activityTracker {
	return &activityTracker{
		logger: logger,
		note:   rate.Sometimes{First: 1, Interval: activeLogInterval},
	}
}

// UserActive reports whether p is further than platform.MoveTolerance from
// where the jiggler left the cursor. A detected move becomes the new
// reference.
func (a *activityTracker) UserActive(p platform.Point) bool {
	if !a.known {
		return false
	}

	if !p.Near(a.last, platform.MoveTolerance) {
		a.last = p
		a.active = true
		a.note.Do(func() {
			a.logger.Info("user is active; skipping tick to avoid interference", zap.Stringer("cursor", p))
		})
		return true
	}

	if a.active {
		a.active = false
		a.logger.Debug("user became idle; resuming", zap.Stringer("cursor", p))
	}
	return false
}

// Settled records where the jiggler left the cursor.
func (a *activityTracker) Settled(p platform.Point) {
	a.last = p
	a.known = true
}

// Forget drops the reference after a failed move, whose outcome is unknown.
func (a *activityTracker) Forget() {
	a.known = false
	a.active = false
}
