package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stigoleg/burst-click/internal/platform"
	"github.com/stigoleg/burst-click/internal/ui"
)

// NewSinksCommand lists the click injection methods and whether they work here.
func NewSinksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sinks",
		Short: "List click injection methods available on this system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range platform.Availability() {
				fmt.Fprintln(out, formatSinkInfo(info))
			}
			fmt.Fprintf(out, "\n%s %s\n", ui.Current.Label.Render("auto selects:"), ui.Current.Value.Render(platform.AutoKind()))
			return nil
		},
	}
}

func formatSinkInfo(info platform.SinkInfo) string {
	state := ui.Current.Healthy.Render("available")
	if !info.Available {
		state = ui.Current.Unhealthy.Render("unavailable")
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.Current.Value.Width(10).Render(info.Kind),
		lipgloss.NewStyle().Width(14).Render(state),
		ui.Current.Label.Render(info.Detail),
	)
	if info.Available {
		line += "\n" + ui.Current.Label.Render("  select: "+info.Flag)
	}
	if info.Install != "" {
		line += "\n" + ui.Current.Label.Render("  install: "+info.Install)
	}
	return line
}
