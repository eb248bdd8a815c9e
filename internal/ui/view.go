package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/burst-click/internal/clicker"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	var b strings.Builder

	title := "burstclick"
	if m.Version != "" {
		title += " " + m.Version
	}
	b.WriteString(Current.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(settingsView(m))
	b.WriteString("\n\n")
	b.WriteString(Current.Panel.Render(countersView(m.snapshot)))
	b.WriteString("\n\n")
	b.WriteString(statusView(m))

	if m.ErrorMessage != "" {
		b.WriteString("\n\n" + Current.Error.Render(m.ErrorMessage))
	}

	b.WriteString("\n\n" + Current.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func settingsView(m Model) string {
	p := m.Params
	rows := [][2]string{
		{"Threshold", fmt.Sprintf("%dms (%d cps)", p.ThresholdMS(), p.MinCPS)},
		{"Burst", fmt.Sprintf("%d extra clicks", p.ExtraClicks)},
		{"Delay", fmt.Sprintf("%s to %s", p.MinDelay, p.MaxDelay)},
		{"Min-delay bias", fmt.Sprintf("%.0f%%", p.WeightedRandomBias*100)},
		{"Sink", m.SinkName},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, Current.Label.Render(fmt.Sprintf("%-15s", row[0]))+Current.Value.Render(row[1]))
	}
	return strings.Join(lines, "\n")
}

func countersView(s clicker.Snapshot) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		Current.TableHeader.Render("button"),
		Current.TableHeader.Render("events"),
		Current.TableHeader.Render("ignored"),
		Current.TableHeader.Render("passed"),
		Current.TableHeader.Render("bursts"),
		Current.TableHeader.Render("injected"),
		Current.TableHeader.Render("failed"),
	)

	rows := []string{header}
	for _, button := range clicker.Buttons {
		c := s.Button(button)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			Current.TableCell.Render(button.String()),
			Current.TableCell.Render(fmt.Sprint(c.Events)),
			Current.TableCell.Render(fmt.Sprint(c.Ignored)),
			Current.TableCell.Render(fmt.Sprint(c.PassThrough)),
			Current.TableCell.Render(fmt.Sprint(c.Bursts)),
			Current.TableCell.Render(fmt.Sprint(c.Synthetic)),
			Current.TableCell.Render(fmt.Sprint(c.SinkFailures)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func statusView(m Model) string {
	var b strings.Builder

	health := m.snapshot.Health
	style := Current.Healthy
	if health == clicker.SinkHealthFailed {
		style = Current.Unhealthy
	}
	b.WriteString(Current.Label.Render("Sink health") + style.Render(health.String()))

	if m.Runner != nil {
		state := "stopped"
		if m.Runner.IsRunning() {
			state = "running"
		}
		b.WriteString("\n" + Current.Label.Render("Session") + Current.Value.Render(m.Runner.Session()))
		b.WriteString("\n" + Current.Label.Render("State") + Current.Value.Render(state))
		b.WriteString("\n" + Current.Label.Render("Uptime") + Current.Value.Render(formatUptime(m.Runner.Uptime())))
	}

	if m.ShowHelp {
		b.WriteString("\n\n" + Current.Help.Render(panelHelp))
	}
	return b.String()
}

func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
}

const panelHelp = `A click on either button that follows the previous one on the same
button faster than the threshold starts a burst of extra clicks. The
burst's own clicks are counted as "ignored" when the hook reports them back.
Events that arrive while a burst is running wait until it finishes.`
