package jiggler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stigoleg/jiggle/internal/platform"
)

func TestActivityTracker(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := newActivityTracker(zap.New(core))

	home := platform.Point{X: 100, Y: 100}
	assert.False(t, a.UserActive(home), "nothing is known before the first move")

	a.Settled(home)
	assert.False(t, a.UserActive(home))

	moved := platform.Point{X: 300, Y: 200}
	assert.True(t, a.UserActive(moved))
	assert.True(t, a.UserActive(platform.Point{X: 310, Y: 200}))

	// Cursor stayed put since the last observation.
	assert.False(t, a.UserActive(platform.Point{X: 310, Y: 200}))

	assert.Equal(t, 1, logs.FilterMessage("user is active; skipping tick to avoid interference").Len(),
		"activity should be logged once per interval")
	resumed := logs.FilterMessage("user became idle; resuming").All()
	if assert.Len(t, resumed, 1) {
		assert.Equal(t, zapcore.DebugLevel, resumed[0].Level)
	}
}

func TestActivityTrackerToleratesDrift(t *testing.T) {
	a := newActivityTracker(zap.NewNop())
	target := platform.Point{X: 400, Y: 300}

	for _, landed := range []platform.Point{
		{X: 401, Y: 300},
		{X: 398, Y: 302},
		{X: 400, Y: 299},
	} {
		a.Settled(target)
		assert.False(t, a.UserActive(landed), "landing at %v is within tolerance", landed)
	}

	a.Settled(target)
	assert.True(t, a.UserActive(platform.Point{X: 403, Y: 300}))
}

func TestActivityTrackerForget(t *testing.T) {
	a := newActivityTracker(zap.NewNop())
	a.Settled(platform.Point{X: 10, Y: 10})
	a.Forget()
	assert.False(t, a.UserActive(platform.Point{X: 500, Y: 500}))
}
