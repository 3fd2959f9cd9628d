package app

import (
	"context"
	"fmt"
	"os/signal"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stigoleg/jiggle/internal/jiggler"
	"github.com/stigoleg/jiggle/internal/session"
)

// runHeadless waits until the run ends by itself, or until a shutdown signal
// or ctx asks for a stop.
func (a *App) runHeadless(ctx context.Context, keeper *session.Keeper, logger *zap.Logger) int {
	sigCtx, stop := signal.NotifyContext(ctx, shutdownSignals()...)
	defer stop()

	opts := keeper.Options()
	fmt.Fprintf(a.Stdout, "jiggle: nudging the cursor every %v (radius %dpx, mode %s). Press Ctrl+C to stop.\n",
		opts.Interval, opts.JitterRadius, opts.Mode)

	done := keeper.Done()
	g, gctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		select {
		case <-done:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	g.Go(func() error {
		select {
		case <-sigCtx.Done():
			logger.Info("shutdown requested; stopping jiggler")
			return keeper.Stop()
		case <-done:
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		a.fail(err)
		return ExitFailure
	}

	a.report(keeper.Status())
	return ExitOK
}

func (a *App) report(s session.Status) {
	var why string
	switch s.Reason {
	case jiggler.ReasonFailsafe:
		why = "failsafe triggered (cursor parked at the top-left corner)"
	case jiggler.ReasonExpired:
		why = "timed run finished"
	default:
		why = "stopped"
	}
	fmt.Fprintf(a.Stdout, "jiggle: %s after %d moves (%d skipped, %d failed)\n",
		why, s.Stats.Moves, s.Stats.Skipped, s.Stats.Failures)
	if s.Stats.Clicks > 0 {
		fmt.Fprintf(a.Stdout, "jiggle: clicked %d times\n", s.Stats.Clicks)
	}
}
