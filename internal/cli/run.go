package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stigoleg/burst-click/internal/clicker"
	"github.com/stigoleg/burst-click/internal/config"
	"github.com/stigoleg/burst-click/internal/input"
	"github.com/stigoleg/burst-click/internal/platform"
	"github.com/stigoleg/burst-click/internal/runner"
	"github.com/stigoleg/burst-click/internal/ui"
)

// listener produces presses into the bus until stopped.
type listener interface {
	Start() error
	runner.Resource
}

// deps are the OS-facing pieces of a session.
type deps struct {
	newSink     func(kind string) (platform.Sink, error)
	newListener func(bus *input.Bus) listener
}

func defaultDeps() deps {
	return deps{
		newSink: platform.NewSink,
		newListener: func(bus *input.Bus) listener {
			return platform.NewHookListener(bus)
		},
	}
}

func run(cmd *cobra.Command, cfg *config.Config, kind string, opts *RootOptions, version string, d deps) error {
	restoreLog, err := setupLogging(logPath(opts))
	if err != nil {
		return err
	}
	defer restoreLog()

	sink, err := d.newSink(kind)
	if err != nil {
		return err
	}

	bus := input.NewBus()
	stats := &clicker.Stats{}
	engine, err := clicker.New(bus, sink, cfg.Params(), clicker.WithStats(stats))
	if err != nil {
		if cerr := sink.Close(); cerr != nil {
			log.Printf("cli: closing %s sink: %v", sink.Name(), cerr)
		}
		return err
	}

	hook := d.newListener(bus)
	cleanup := runner.NewCleanupManager(0)
	cleanup.Register(hook)
	cleanup.RegisterFunc("event bus", bus.Close)
	cleanup.RegisterFunc(sink.Name()+" sink", sink.Close)

	if err := hook.Start(); err != nil {
		release(cleanup)
		return fmt.Errorf("start input hook: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), runner.ShutdownSignals()...)
	defer stop()

	r := runner.New(engine, cleanup)
	if err := r.Start(ctx); err != nil {
		release(cleanup)
		return err
	}

	if opts.Status {
		if err := runStatus(ctx, r, stats, cfg.Params(), sink.Name(), version); err != nil {
			log.Printf("cli: status panel: %v", err)
		}
	} else {
		select {
		case <-ctx.Done():
			log.Printf("cli: shutting down")
		case <-r.Done():
		}
	}

	if err := r.Stop(); err != nil {
		log.Printf("cli: stop: %v", err)
	}
	return r.Err()
}

func runStatus(ctx context.Context, r *runner.Runner, stats *clicker.Stats, params clicker.Params, sinkName, version string) error {
	model := ui.NewModel(r, stats, params, sinkName)
	model.SetVersion(version)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}

func logPath(opts *RootOptions) string {
	if opts.LogFile == "" && opts.Status {
		return defaultStatusLog
	}
	return opts.LogFile
}

// setupLogging points the standard logger at path, if set, and returns a
// function restoring the previous output.
func setupLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}

	prevOut, prevPrefix, prevFlags := log.Writer(), log.Prefix(), log.Flags()
	f, err := tea.LogToFile(path, "burstclick")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() {
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
		log.SetFlags(prevFlags)
		f.Close()
	}, nil
}

func release(cleanup *runner.CleanupManager) {
	if err := cleanup.Execute(); err != nil {
		log.Printf("cli: cleanup: %v", err)
	}
}
