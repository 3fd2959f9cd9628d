package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/stigoleg/jiggle/internal/jiggler"
	"github.com/stigoleg/jiggle/internal/platform"
)

type memPointer struct {
	mu  sync.Mutex
	pos platform.Point
	n   int
}

func (p *memPointer) Location() (platform.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, nil
}

func (p *memPointer) MoveTo(to platform.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = to
	p.n++
	return nil
}

type staticDisplay struct {
	g   platform.Geometry
	err error
}

func (d staticDisplay) PrimarySize() (platform.Geometry, error) {
	return d.g, d.err
}

func testKeeper(t *testing.T, d platform.Display) *Keeper {
	t.Helper()
	opts := jiggler.DefaultOptions()
	opts.Interval = 5 * time.Millisecond
	opts.Glide = 0

	k := NewKeeper(&memPointer{pos: platform.Point{X: 400, Y: 300}}, d, opts, zaptest.NewLogger(t))
	t.Cleanup(func() { require.NoError(t, k.Stop()) })
	return k
}

var screen = staticDisplay{g: platform.Geometry{Width: 1280, Height: 800}}

func TestKeeperBasicOperations(t *testing.T) {
	k := testKeeper(t, screen)
	assert.False(t, k.IsRunning())
	assert.Nil(t, k.Done())
	assert.Equal(t, jiggler.StateStopped, k.Status().State)

	require.NoError(t, k.StartIndefinite())
	assert.True(t, k.IsRunning())
	assert.Zero(t, k.TimeRemaining())

	require.Eventually(t, func() bool { return k.Status().Stats.Moves >= 2 }, 2*time.Second, time.Millisecond)

	err := k.StartIndefinite()
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, k.Stop())
	assert.False(t, k.IsRunning())

	status := k.Status()
	assert.False(t, status.Running)
	assert.Equal(t, jiggler.ReasonRequested, status.Reason)
	assert.NotEmpty(t, status.RunID)

	// Stopping twice is harmless.
	require.NoError(t, k.Stop())
}

func TestKeeperTimedRun(t *testing.T) {
	k := testKeeper(t, screen)

	require.NoError(t, k.StartTimed(time.Hour))
	remaining := k.TimeRemaining()
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
	assert.Equal(t, time.Hour, k.Status().Duration)
	require.NoError(t, k.Stop())

	require.NoError(t, k.StartTimed(40*time.Millisecond))
	select {
	case <-k.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed run did not expire")
	}
	assert.Equal(t, jiggler.ReasonExpired, k.Status().Reason)
	assert.False(t, k.IsRunning())
	assert.Zero(t, k.TimeRemaining())
}

func TestKeeperRejectsNonPositiveDuration(t *testing.T) {
	k := testKeeper(t, screen)
	assert.ErrorIs(t, k.StartTimed(0), jiggler.ErrInvalidOptions)
	assert.False(t, k.IsRunning())
}

func TestKeeperRestart(t *testing.T) {
	k := testKeeper(t, screen)

	require.NoError(t, k.StartIndefinite())
	first := k.Status().RunID
	require.NoError(t, k.Stop())

	require.NoError(t, k.StartIndefinite())
	assert.NotEqual(t, first, k.Status().RunID)
	assert.True(t, k.IsRunning())
}

func TestKeeperStartupError(t *testing.T) {
	k := testKeeper(t, staticDisplay{err: errors.New("no display")})

	err := k.StartIndefinite()
	var se *jiggler.StartupError
	require.ErrorAs(t, err, &se)
	assert.False(t, k.IsRunning())
}

func TestKeeperConcurrentStops(t *testing.T) {
	k := testKeeper(t, screen)
	require.NoError(t, k.StartIndefinite())

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- k.Stop()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.False(t, k.IsRunning())
}

func TestSetStopTimeout(t *testing.T) {
	k := testKeeper(t, screen)
	assert.Equal(t, DefaultStopTimeout, k.StopTimeout())
	k.SetStopTimeout(-1)
	assert.Equal(t, DefaultStopTimeout, k.StopTimeout())
	k.SetStopTimeout(time.Second)
	assert.Equal(t, time.Second, k.StopTimeout())
}
