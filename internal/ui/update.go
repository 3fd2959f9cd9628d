package ui

import (
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jiggle/internal/jiggler"
	"github.com/stigoleg/jiggle/internal/util"
)

const (
	menuIndefinite = iota
	menuTimed
	menuQuit
	menuItemCount
)

// maxInputDigits limits the timed input to 9999 minutes.
const maxInputDigits = 4

// refreshMsg asks the running screen to poll the run status.
type refreshMsg time.Time

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.ShowHelp {
		if key.Matches(msg, m.keys.ToggleHelp, m.keys.Back, m.keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	switch m.State {
	case stateMenu:
		return updateMenu(msg, m)
	case stateTimedInput:
		return updateTimedInput(msg, m)
	case stateRunning:
		return updateRunning(msg, m)
	}
	return m, nil
}

func updateMenu(msg tea.Msg, m Model) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.Selected < menuItemCount-1 {
			m.Selected++
		}
	case key.Matches(keyMsg, m.keys.ToggleHelp):
		m.ShowHelp = true
	case key.Matches(keyMsg, m.keys.Quit, m.keys.Back):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Select):
		switch m.Selected {
		case menuIndefinite:
			if err := m.Keeper.StartIndefinite(); err != nil {
				m.ErrorMessage = err.Error()
				return m, nil
			}
			return startedRunning(m)
		case menuTimed:
			m.State = stateTimedInput
			m.Input = ""
			m.ErrorMessage = ""
			m.Notice = ""
		case menuQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func updateTimedInput(msg tea.Msg, m Model) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Submit):
		if m.Input == "" {
			m.ErrorMessage = "Please enter a duration"
			return m, nil
		}
		d, err := util.ParseDuration(m.Input)
		if err != nil {
			m.ErrorMessage = "Invalid duration"
			return m, nil
		}
		if d <= 0 {
			m.ErrorMessage = "Duration must be positive"
			return m, nil
		}
		if err := m.Keeper.StartTimed(d); err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		return startedRunning(m)
	case key.Matches(keyMsg, m.keys.Back):
		m.State = stateMenu
		m.ErrorMessage = ""
	case key.Matches(keyMsg, m.keys.Backspace):
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
			m.ErrorMessage = ""
		}
	case keyMsg.String() == "ctrl+c":
		return m, tea.Quit
	default:
		s := keyMsg.String()
		if len(s) == 1 && unicode.IsDigit(rune(s[0])) && len(m.Input) < maxInputDigits {
			m.Input += s
			m.ErrorMessage = ""
		}
	}
	return m, nil
}

func updateRunning(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			if err := m.Keeper.Stop(); err != nil {
				m.ErrorMessage = err.Error()
				return m, nil
			}
			m.Status = m.Keeper.Status()
			m.State = stateMenu
			m.ErrorMessage = ""
			m.Notice = "Stopped"
		case key.Matches(msg, m.keys.ToggleHelp):
			m.ShowHelp = true
		case key.Matches(msg, m.keys.Quit, m.keys.Back):
			if err := m.Keeper.Stop(); err != nil {
				m.ErrorMessage = err.Error()
			}
			m.Status = m.Keeper.Status()
			return m, tea.Quit
		}

	case refreshMsg:
		m.Status = m.Keeper.Status()
		if m.Status.Running {
			return m, refresh()
		}
		return runEnded(m)
	}
	return m, nil
}

func startedRunning(m Model) (Model, tea.Cmd) {
	m.State = stateRunning
	m.Status = m.Keeper.Status()
	m.ErrorMessage = ""
	m.Notice = ""
	return m, refresh()
}

// runEnded handles a run that ended on its own.
func runEnded(m Model) (Model, tea.Cmd) {
	switch m.Status.Reason {
	case jiggler.ReasonFailsafe:
		m.Aborted = true
		m.Notice = "Failsafe triggered: cursor parked at the top-left corner"
		return m, tea.Quit
	case jiggler.ReasonExpired:
		m.Notice = "Timed run finished"
	default:
		m.Notice = "Stopped"
	}
	m.State = stateMenu
	return m, nil
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
