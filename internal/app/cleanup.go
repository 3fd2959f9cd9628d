package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCleanupTimeout bounds the whole cleanup pass.
const DefaultCleanupTimeout = 5 * time.Second

// ErrCleanupTimeout is reported when cleanups are still running at the deadline.
var ErrCleanupTimeout = errors.New("cleanup timeout exceeded")

// CleanupResource is something that must be released on shutdown.
type CleanupResource interface {
	Cleanup() error
	Name() string
}

// CleanupFunc adapts a function to CleanupResource.
type CleanupFunc struct {
	name string
	fn   func() error
}

func (c *CleanupFunc) Cleanup() error {
	return c.fn()
}

func (c *CleanupFunc) Name() string {
	return c.name
}

// CleanupManager runs registered cleanups once, in registration order, within
// a deadline. A panicking cleanup is recovered and reported as an error.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	logger      *zap.Logger
	cleanupOnce sync.Once
	result      error
}

// NewCleanupManager creates a manager. A non-positive timeout uses
// DefaultCleanupTimeout.
func NewCleanupManager(timeout time.Duration, logger *zap.Logger) *CleanupManager {
	if timeout <= 0 {
		timeout = DefaultCleanupTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupManager{
		timeout: timeout,
		logger:  logger.Named("cleanup"),
	}
}

// Register adds a resource to be cleaned up.
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function.
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&CleanupFunc{name: name, fn: fn})
}

// Execute runs every cleanup the first time it is called and returns the
// joined errors. Later calls return the same result without running anything.
func (cm *CleanupManager) Execute() error {
	cm.cleanupOnce.Do(func() {
		cm.result = cm.executeWithTimeout()
	})
	return cm.result
}

func (cm *CleanupManager) executeWithTimeout() error {
	cm.mu.Lock()
	resources := make([]CleanupResource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, resource := range resources {
			cm.run(resource, record)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		cm.logger.Warn("cleanup timed out; some resources may not have been released", zap.Duration("timeout", cm.timeout))
		record(ErrCleanupTimeout)
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

func (cm *CleanupManager) run(resource CleanupResource, record func(error)) {
	defer func() {
		if r := recover(); r != nil {
			cm.logger.Error("panic during cleanup", zap.String("resource", resource.Name()), zap.Any("panic", r))
			record(fmt.Errorf("cleanup %s: panic: %v", resource.Name(), r))
		}
	}()

	if err := resource.Cleanup(); err != nil {
		cm.logger.Warn("cleanup failed", zap.String("resource", resource.Name()), zap.Error(err))
		record(fmt.Errorf("cleanup %s: %w", resource.Name(), err))
		return
	}
	cm.logger.Debug("cleaned up", zap.String("resource", resource.Name()))
}

// Clear removes all registered resources without executing cleanup.
func (cm *CleanupManager) Clear() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = cm.resources[:0]
}
