package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jiggle/internal/session"
)

// refreshInterval is how often the running screen polls the run status.
const refreshInterval = time.Second

// Controller starts and stops jiggler runs. *session.Keeper implements it.
type Controller interface {
	StartIndefinite() error
	StartTimed(d time.Duration) error
	Stop() error
	Status() session.Status
}

// Model holds the current state of the UI and the controller it drives.
type Model struct {
	State        state
	Selected     int
	Input        string
	Keeper       Controller
	ErrorMessage string
	Notice       string
	ShowHelp     bool
	Version      string
	Status       session.Status

	// Aborted is set when the failsafe ended the run and closed the UI.
	Aborted bool

	keys KeyMap
	help help.Model
}

// InitialModel returns a model showing the menu.
func InitialModel(keeper Controller) Model {
	return Model{
		State:  stateMenu,
		Keeper: keeper,
		keys:   DefaultKeys(),
		help:   NewHelpModel(),
	}
}

// RunningModel returns a model for a run the caller already started.
func RunningModel(keeper Controller) Model {
	m := InitialModel(keeper)
	m.State = stateRunning
	m.Status = keeper.Status()
	return m
}

// SetVersion sets the version shown in the help screen.
func (m *Model) SetVersion(v string) {
	m.Version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.State == stateRunning {
		return refresh()
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// TimeRemaining returns the remaining duration of a timed run.
func (m Model) TimeRemaining() time.Duration {
	if m.State != stateRunning {
		return 0
	}
	return m.Status.Remaining
}
