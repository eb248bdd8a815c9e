package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/burst-click/internal/clicker"
	"github.com/stigoleg/burst-click/internal/runner"
)

const refreshInterval = 250 * time.Millisecond

// Model holds the state of the status panel. It only observes the session;
// the engine keeps running on its own goroutine.
type Model struct {
	Runner   *runner.Runner
	Stats    *clicker.Stats
	Params   clicker.Params
	SinkName string
	Version  string

	ShowHelp     bool
	ErrorMessage string
	Quitting     bool

	snapshot clicker.Snapshot
	keys     KeyMap
	help     help.Model
}

// NewModel returns the panel for a running session.
func NewModel(r *runner.Runner, stats *clicker.Stats, params clicker.Params, sinkName string) Model {
	return Model{
		Runner:   r,
		Stats:    stats,
		Params:   params,
		SinkName: sinkName,
		keys:     DefaultKeys(),
		help:     help.New(),
	}
}

// SetVersion sets the version shown in the title.
func (m *Model) SetVersion(v string) {
	m.Version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForRunner(m.Runner))
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}
