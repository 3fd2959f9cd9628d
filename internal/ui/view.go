package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/jiggle/internal/jiggler"
)

const progressWidth = 20

var menuItems = [menuItemCount]string{
	"Jiggle indefinitely",
	"Jiggle for X minutes",
	"Quit",
}

// gradient runs from purple to green across the progress bar.
var gradient = []string{
	"#7D56F4", "#6E5AF5", "#5F5FF7", "#5063F8", "#4168FA",
	"#326CFB", "#2371FD", "#1475FE", "#057AFF", "#007FF5",
	"#0087E1", "#008FCD", "#0097B9", "#009FA5", "#00A791",
	"#00AF7D", "#00B769", "#00BF55", "#43BF6D",
}

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView(m)
	}

	switch m.State {
	case stateMenu:
		return menuView(m)
	case stateTimedInput:
		return timedInputView(m)
	case stateRunning:
		return runningView(m)
	}
	return ""
}

func menuView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Jiggle"))
	b.WriteString("\n\n")
	b.WriteString(Current.Unselected.Render("Select an option:"))
	b.WriteString("\n\n")

	for i, opt := range menuItems {
		if i == m.Selected {
			b.WriteString(Current.Selected.Render("> " + opt))
		} else {
			b.WriteString(Current.Unselected.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	if m.Notice != "" {
		b.WriteString("\n" + Current.Notice.Render(m.Notice))
	}
	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage))
	}

	b.WriteString("\n\n" + m.help.View(m.keys.ForState(stateMenu)))
	return b.String()
}

func timedInputView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Enter Duration"))
	b.WriteString("\n\n")
	b.WriteString(Current.Unselected.Render("Jiggle for how many minutes?"))
	b.WriteString("\n")

	input := m.Input
	if input == "" {
		input = " "
	}
	b.WriteString(Current.InputBox.Render(input))
	b.WriteString("\n\n")

	if m.ErrorMessage != "" {
		b.WriteString(Current.Error.Render(m.ErrorMessage) + "\n\n")
	}

	b.WriteString(m.help.View(m.keys.ForState(stateTimedInput)))
	return b.String()
}

func runningView(m Model) string {
	var b strings.Builder
	s := m.Status

	b.WriteString(Current.Title.Render("Jiggle Active"))
	b.WriteString("\n\n")

	if s.State == jiggler.StateRunning {
		b.WriteString(Current.Active.Render("Keeping the session awake"))
	} else {
		b.WriteString(Current.Inactive.Render("Stopping..."))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(Current.Label.Render(label) + Current.Value.Render(value) + "\n")
	}
	row("State", s.State.String())
	row("Health", healthText(s.Health))
	row("Ticks", fmt.Sprint(s.Stats.Ticks))
	row("Moves", fmt.Sprint(s.Stats.Moves))
	row("Skipped", fmt.Sprint(s.Stats.Skipped))
	row("Failures", fmt.Sprint(s.Stats.Failures))
	if s.Stats.Clicks > 0 {
		row("Clicks", fmt.Sprint(s.Stats.Clicks))
	}
	if s.Stats.Moves > 0 {
		row("Last target", s.Stats.LastTarget.String())
	}
	row("Elapsed", s.Elapsed.Truncate(time.Second).String())

	if s.Duration > 0 {
		remaining := m.TimeRemaining()
		b.WriteString("\n")
		b.WriteString(Current.Countdown.Render(formatCountdown(remaining)))
		b.WriteString("\n")
		b.WriteString(" " + progressBar(1-float64(remaining)/float64(s.Duration), progressWidth))
		b.WriteString("\n")
	}

	if s.Stats.LastError != "" && s.Health == jiggler.HealthFailing {
		b.WriteString("\n" + Current.Warning.Render("Last error: "+s.Stats.LastError))
	}
	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage))
	}

	b.WriteString("\n\n" + m.help.View(m.keys.ForState(stateRunning)))
	return b.String()
}

func healthText(h jiggler.Health) string {
	switch h {
	case jiggler.HealthOK:
		return Current.Active.UnsetPadding().Render("ok")
	case jiggler.HealthFailing:
		return Current.Error.UnsetPadding().Render("failing")
	default:
		return "waiting"
	}
}

func formatCountdown(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d remaining", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d remaining", mins, secs)
}

// progressBar renders progress in [0,1] as a gradient bar of width cells.
func progressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	filled = min(max(filled, 0), width)

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i >= filled {
			bar.WriteString(Current.ProgressBar.Render(" "))
			continue
		}
		color := gradient[i*(len(gradient)-1)/max(1, width-1)]
		bar.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(color)).Render(" "))
	}
	return bar.String()
}

func helpView(m Model) string {
	usage := `Jiggle Help

Usage:
  jiggle [flags]

Flags:
  -i, --interval-seconds float   Seconds between nudges (default 5)
  -r, --radius int               Maximum jitter in pixels (default 3)
  -m, --mode string              jitter or random (default "jitter")
  -d, --duration string          Run for this long ("150" or "2h30m")
  -c, --clock string             Run until this time ("22:00" or "10:00PM")
      --headless                 Run without this interface
      --failsafe                 Stop when the cursor hits the top-left corner (default true)

Examples:
  jiggle                 # Start jiggling with this interface
  jiggle -d 2h30m        # Jiggle for 2 hours and 30 minutes
  jiggle -c 17:30        # Jiggle until half past five
  jiggle --headless -r 5 # Jiggle in the background with a 5px radius

Move the cursor to the top-left corner at any time to stop immediately.`

	var b strings.Builder
	b.WriteString(Current.Help.Render(usage))
	if m.Version != "" {
		b.WriteString("\n\n" + Current.Help.Render("Version "+m.Version))
	}
	b.WriteString("\n\n" + Current.Help.Render("Press h, ? or esc to close help"))
	return b.String()
}
