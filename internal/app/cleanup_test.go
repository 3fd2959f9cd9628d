package app

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCleanupManagerRunsInOrder(t *testing.T) {
	cm := NewCleanupManager(time.Second, zaptest.NewLogger(t))

	var order []string
	cm.RegisterFunc("first", func() error { order = append(order, "first"); return nil })
	cm.RegisterFunc("second", func() error { order = append(order, "second"); return nil })

	require.NoError(t, cm.Execute())
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCleanupManagerRunsOnce(t *testing.T) {
	cm := NewCleanupManager(time.Second, nil)

	var calls atomic.Int32
	cm.RegisterFunc("counter", func() error {
		calls.Add(1)
		return errors.New("boom")
	})

	first := cm.Execute()
	second := cm.Execute()
	assert.Equal(t, int32(1), calls.Load())
	assert.Error(t, first)
	assert.Equal(t, first, second)
}

func TestCleanupManagerCollectsErrors(t *testing.T) {
	cm := NewCleanupManager(time.Second, zaptest.NewLogger(t))
	errA := errors.New("a failed")

	ran := false
	cm.RegisterFunc("a", func() error { return errA })
	cm.RegisterFunc("b", func() error { ran = true; return nil })

	err := cm.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.Contains(t, err.Error(), "cleanup a")
	assert.True(t, ran, "a failing cleanup must not block the rest")
}

func TestCleanupManagerRecoversPanics(t *testing.T) {
	cm := NewCleanupManager(time.Second, zaptest.NewLogger(t))

	ran := false
	cm.RegisterFunc("panicky", func() error { panic("oh no") })
	cm.RegisterFunc("after", func() error { ran = true; return nil })

	err := cm.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
	assert.True(t, ran)
}

func TestCleanupManagerTimeout(t *testing.T) {
	cm := NewCleanupManager(50*time.Millisecond, nil)

	release := make(chan struct{})
	defer close(release)
	cm.RegisterFunc("slow", func() error {
		<-release
		return nil
	})

	begin := time.Now()
	err := cm.Execute()
	assert.ErrorIs(t, err, ErrCleanupTimeout)
	assert.Less(t, time.Since(begin), time.Second)
}

func TestCleanupManagerEmptyAndClear(t *testing.T) {
	cm := NewCleanupManager(0, nil)
	assert.Equal(t, DefaultCleanupTimeout, cm.timeout)

	cm.RegisterFunc("never", func() error { return errors.New("should not run") })
	cm.Clear()
	assert.NoError(t, cm.Execute())
}
