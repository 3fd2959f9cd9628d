package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the jiggle screens react to.
type KeyMap struct {
	Quit       key.Binding
	ToggleHelp key.Binding

	// Menu
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Minutes prompt
	Back      key.Binding
	Submit    key.Binding
	Backspace key.Binding

	// Running screen
	Stop key.Binding
}

// DefaultKeys returns the jiggle key bindings.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit:       binding("q/ctrl+c", "quit jiggle", "q", "ctrl+c"),
		ToggleHelp: binding("?", "more keys", "?", "h"),
		Up:         binding("↑/k", "previous", "up", "k"),
		Down:       binding("↓/j", "next", "down", "j"),
		Select:     binding("enter", "choose", "enter", " "),
		Back:       binding("esc", "back to menu", "esc"),
		Submit:     binding("enter", "start timed run", "enter"),
		Backspace:  binding("⌫", "erase digit", "backspace"),
		Stop:       binding("s/enter", "stop jiggling", "s", "enter"),
	}
}

func binding(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// NewHelpModel returns the help bar used under every screen.
func NewHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = " · "
	return h
}

// screenKeys is the help.KeyMap of one screen. Each row of full is a column
// in the expanded help; short is the concatenation of all rows.
type screenKeys struct {
	full [][]key.Binding
}

func (s screenKeys) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, row := range s.full {
		out = append(out, row...)
	}
	return out
}

func (s screenKeys) FullHelp() [][]key.Binding {
	return s.full
}

// ForState returns the bindings shown in the help bar of screen s.
func (k KeyMap) ForState(s state) help.KeyMap {
	switch s {
	case stateMenu:
		return screenKeys{full: [][]key.Binding{{k.Up, k.Down, k.Select}, {k.ToggleHelp, k.Quit}}}
	case stateTimedInput:
		return screenKeys{full: [][]key.Binding{{k.Submit, k.Backspace}, {k.Back, k.Quit}}}
	case stateRunning:
		return screenKeys{full: [][]key.Binding{{k.Stop}, {k.ToggleHelp, k.Quit}}}
	default:
		return screenKeys{full: [][]key.Binding{{k.ToggleHelp, k.Quit}}}
	}
}
