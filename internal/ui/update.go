package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/burst-click/internal/runner"
)

// tickMsg is sent when the panel should refresh its counters.
type tickMsg time.Time

// runnerDoneMsg is sent when the engine goroutine returns, either on its
// own or after stopRunner.
type runnerDoneMsg struct {
	err error
}

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Quitting = true
			if m.Runner == nil {
				return m, tea.Quit
			}
			return m, stopRunner(m.Runner)
		case key.Matches(msg, m.keys.ToggleHelp):
			m.ShowHelp = !m.ShowHelp
			m.help.ShowAll = m.ShowHelp
			return m, nil
		case key.Matches(msg, m.keys.ResetHealth):
			if m.Stats != nil {
				m.Stats.ResetSinkHealth()
				m.snapshot = m.Stats.Snapshot()
			}
			return m, nil
		}

	case tickMsg:
		if m.Stats != nil {
			m.snapshot = m.Stats.Snapshot()
		}
		return m, tick()

	case runnerDoneMsg:
		m.Quitting = true
		if msg.err != nil {
			m.ErrorMessage = msg.err.Error()
		}
		return m, tea.Quit
	}

	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForRunner reports when the engine stops, whether requested or not.
func waitForRunner(r *runner.Runner) tea.Cmd {
	if r == nil {
		return nil
	}
	done := r.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return runnerDoneMsg{err: r.Err()}
	}
}

// stopRunner stops the session off the event loop; cleanup may take up to
// its timeout.
func stopRunner(r *runner.Runner) tea.Cmd {
	return func() tea.Msg {
		if err := r.Stop(); err != nil {
			return runnerDoneMsg{err: err}
		}
		return runnerDoneMsg{err: r.Err()}
	}
}
