package app

import (
	"context"
	"fmt"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/stigoleg/jiggle/internal/session"
	"github.com/stigoleg/jiggle/internal/ui"
)

// runTUI shows the terminal UI for an already started run.
func (a *App) runTUI(ctx context.Context, keeper *session.Keeper, logger *zap.Logger) int {
	model := ui.RunningModel(keeper)
	model.SetVersion(a.Version)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	sigCtx, stop := signal.NotifyContext(ctx, shutdownSignals()...)
	defer stop()

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-sigCtx.Done():
			logger.Info("shutdown requested; stopping jiggler")
			if err := keeper.Stop(); err != nil {
				logger.Error("error stopping jiggler", zap.Error(err))
			}
			p.Quit()
		case <-finished:
		}
	}()

	final, err := p.Run()
	if err != nil {
		logger.Error("error running program", zap.Error(err))
		a.fail(err)
		return ExitFailure
	}

	if m, ok := final.(ui.Model); ok && m.Notice != "" {
		fmt.Fprintln(a.Stdout, m.Notice)
	}
	return ExitOK
}
