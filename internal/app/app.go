// Package app wires configuration, logging, the input backend and a front end
// into one jiggle process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stigoleg/jiggle/internal/config"
	"github.com/stigoleg/jiggle/internal/observability"
	"github.com/stigoleg/jiggle/internal/platform"
	"github.com/stigoleg/jiggle/internal/session"
	"github.com/stigoleg/jiggle/internal/ui"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// App is one jiggle process.
type App struct {
	Config  *config.Config
	Version string

	// Pointer and Display are the input backend.
	Pointer platform.Pointer
	Display platform.Display

	// CheckCapability reports whether the session allows synthetic input.
	// Nil uses platform.CheckCapability.
	CheckCapability func() platform.Capability

	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the jiggler and blocks until it stops. It returns the process
// exit code.
func (a *App) Run(ctx context.Context) int {
	if a.Stdout == nil {
		a.Stdout = os.Stdout
	}
	if a.Stderr == nil {
		a.Stderr = os.Stderr
	}
	check := a.CheckCapability
	if check == nil {
		check = platform.CheckCapability
	}

	capability := check()
	if !capability.CanSimulate {
		a.fail(errors.New(capability.ErrorMessage))
		if capability.Instructions != "" {
			fmt.Fprintln(a.Stderr, capability.Instructions)
		}
		return ExitFailure
	}

	logger := a.initLogging()

	opts, err := a.Config.JigglerOptions(time.Now())
	if err != nil {
		a.fail(err)
		return ExitFailure
	}
	if capability.Instructions != "" {
		logger.Info("input permissions may be required", zap.String("instructions", capability.Instructions))
	}

	guard := platform.NewFailsafe(a.Pointer, a.Config.Failsafe)
	keeper := session.NewKeeper(guard, a.Display, opts, logger)
	keeper.SetStopTimeout(a.Config.StopTimeout)

	cleanup := NewCleanupManager(keeper.StopTimeout()+time.Second, logger)
	cleanup.RegisterFunc("jiggler", keeper.Stop)
	cleanup.RegisterFunc("logger", func() error {
		observability.Sync()
		return nil
	})
	defer func() {
		if err := cleanup.Execute(); err != nil {
			fmt.Fprintln(a.Stderr, ui.FormatError(err))
		}
	}()

	if opts.Duration > 0 {
		err = keeper.StartTimed(opts.Duration)
	} else {
		err = keeper.StartIndefinite()
	}
	if err != nil {
		logger.Error("failed to start jiggler", zap.Error(err))
		a.fail(err)
		return ExitFailure
	}

	if a.Config.Headless {
		return a.runHeadless(ctx, keeper, logger)
	}
	return a.runTUI(ctx, keeper, logger)
}

// initLogging sends console logs to stderr in headless mode. The terminal UI
// owns the screen, so it logs to a file only.
func (a *App) initLogging() *zap.Logger {
	cfg := a.Config.Logger
	var console zapcore.WriteSyncer
	if a.Config.Headless {
		console = zapcore.Lock(zapcore.AddSync(a.Stderr))
	} else if cfg.LogFile == "" {
		cfg.LogFile = config.DefaultLogFile
	}

	observability.Initialize(cfg, console)
	logger := observability.GetLogger()
	logger.Debug("configuration loaded", zap.Any("config", a.Config), zap.String("version", a.Version))
	return logger
}

func (a *App) fail(err error) {
	fmt.Fprintln(a.Stderr, ui.FormatError(err))
}
