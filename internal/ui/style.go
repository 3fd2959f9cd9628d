// Package ui provides the terminal user interface for jiggle.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C98A00", Dark: "#FFC940"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title       lipgloss.Style
	Active      lipgloss.Style
	Inactive    lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	InputBox    lipgloss.Style
	Help        lipgloss.Style
	Notice      lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Countdown   lipgloss.Style
	ProgressBar lipgloss.Style
	ErrorBox    lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Active: base.
			Foreground(defaultColors.Special),

		Inactive: base.
			Foreground(defaultColors.Subtle),

		Selected: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Unselected: base,

		Label: lipgloss.NewStyle().
			Width(14).
			PaddingLeft(1).
			Foreground(defaultColors.Subtle),

		Value: lipgloss.NewStyle(),

		InputBox: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Highlight).
			Padding(0, 1),

		Help: base.
			Foreground(defaultColors.Subtle),

		Notice: base.
			Foreground(defaultColors.Special),

		Warning: base.
			Foreground(defaultColors.Warning),

		Error: base.
			Foreground(defaultColors.Error),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),

		ProgressBar: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#333333"}),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Error).
			Padding(0, 1),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()

// FormatError renders a command-line error for the terminal.
func FormatError(err error) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(defaultColors.Error).
		Render("Error")
	return Current.ErrorBox.Render(fmt.Sprintf("%s\n\n%s", header, err.Error()))
}
