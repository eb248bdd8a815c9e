// Package ui provides the optional terminal status panel.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Healthy     lipgloss.Style
	Unhealthy   lipgloss.Style
	Panel       lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
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

		Label: base.
			Foreground(defaultColors.Subtle),

		Value: lipgloss.NewStyle().
			Bold(true),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(defaultColors.Highlight).
			Width(10).
			Align(lipgloss.Right),

		TableCell: lipgloss.NewStyle().
			Width(10).
			Align(lipgloss.Right),

		Healthy: base.
			Foreground(defaultColors.Special),

		Unhealthy: base.
			Bold(true).
			Foreground(defaultColors.Error),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Highlight).
			Padding(0, 1),

		Help: base.
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
