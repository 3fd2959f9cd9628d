// Package cli builds the jiggle command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stigoleg/jiggle/internal/app"
	"github.com/stigoleg/jiggle/internal/config"
	"github.com/stigoleg/jiggle/internal/platform"
	"github.com/stigoleg/jiggle/internal/ui"
)

const (
	appName          = "jiggle"
	shortDescription = "Keep your session from going idle by nudging the mouse."
	longDescription  = `jiggle nudges the mouse cursor by a few pixels on a fixed interval so the
desktop never considers the session idle. Targets avoid window controls,
the taskbar and the start menu.

Move the cursor to the top-left corner at any time to stop immediately.`
)

// Backend creates the input backend. It is only called when the command runs.
type Backend func() (platform.Pointer, platform.Display)

// ExitError carries a non-zero process exit code out of Execute.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCommand returns the jiggle command.
func NewRootCommand(version string, backend Backend) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	cmd := &cobra.Command{
		Use:     appName,
		Short:   shortDescription,
		Long:    longDescription,
		Version: version,
		Example: `  jiggle                  Start with the terminal UI
  jiggle -d 2h30m         Jiggle for 2 hours and 30 minutes
  jiggle -c 17:30         Jiggle until half past five
  jiggle --headless -r 5  Jiggle without the UI using a 5px radius`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadInConfig(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			if backend == nil {
				return errors.New("no input backend available")
			}

			pointer, display := backend()
			a := &app.App{
				Config:  cfg,
				Version: version,
				Pointer: pointer,
				Display: display,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			}
			if code := a.Run(cmd.Context()); code != app.ExitOK {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.SetVersionTemplate(`{{printf "jiggle version %s\n" .Version}}`)
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./jiggle.yaml or ~/.config/jiggle/jiggle.yaml)")
	config.AddFlags(cmd.Flags())
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

// Execute runs cmd and returns the process exit code. Errors that were not
// already reported by the app are printed to stderr.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return app.ExitOK
	}

	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintln(os.Stderr, ui.FormatError(err))
	return app.ExitFailure
}
