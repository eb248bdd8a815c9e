// Package cli builds the burstclick command tree and wires a clicking
// session together.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stigoleg/burst-click/internal/config"
	"github.com/stigoleg/burst-click/internal/platform"
)

// RootOptions holds the flags of the root command.
type RootOptions struct {
	ConfigPath string
	Sink       string
	Status     bool
	LogFile    string
}

// defaultStatusLog is used when the panel owns the terminal and no log file
// was given.
const defaultStatusLog = "burstclick.log"

// NewRootCommand creates the root command for the burstclick CLI.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(version, defaultDeps())
}

func newRootCommand(version string, d deps) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "burstclick <min_cps> <extra_clicks> <min_delay_ms> <max_delay_ms> <weighted_rand_delay>",
		Short: "Turn fast mouse clicks into bursts",
		Long: `burstclick watches the left and right mouse buttons. When a button is clicked
again faster than min_cps allows, it injects extra_clicks additional clicks
of that button, each followed by a random delay between min_delay_ms and
max_delay_ms. weighted_rand_delay is the probability (0 to 1) of using
min_delay_ms instead of a random delay.

Delays are milliseconds, or Go durations such as 15ms.`,
		Example: `  burstclick 8 2 15 40 0.3
  burstclick --config preset.yaml --status
  burstclick --sink uinput 10 1 20ms 35ms 0`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigPath != "" && len(args) > 0 {
				return errors.New("use either --config or positional parameters, not both")
			}
			if opts.ConfigPath == "" && len(args) == 0 {
				return fmt.Errorf("%w: %s (run with --help for usage)", config.ErrMissingParam, config.ParamNames[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.ConfigPath, args)
			if err != nil {
				return err
			}
			kind, err := platform.ParseKind(opts.Sink)
			if err != nil {
				return err
			}
			return run(cmd, cfg, kind, opts, version, d)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML file with the five parameters")
	cmd.Flags().StringVar(&opts.Sink, "sink", platform.KindAuto, "click injection method (auto|robotgo|uinput|xdotool|ydotool)")
	cmd.Flags().BoolVar(&opts.Status, "status", false, "show the live status panel")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file (default stderr, or "+defaultStatusLog+" with --status)")

	cmd.AddCommand(NewSinksCommand())

	return cmd
}

func loadConfig(path string, args []string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.FromArgs(args)
}
