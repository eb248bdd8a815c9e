//go:build !windows

package runner

import (
	"os"
	"syscall"
)

// ShutdownSignals lists the signals that end a session.
func ShutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	}
}
