// Package runner owns the lifetime of one clicking session: it runs the
// engine on its own goroutine and releases the hook, bus and sink when the
// session ends.
package runner

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine is the part of the clicker engine the runner drives.
type Engine interface {
	Run(ctx context.Context) error
}

// Runner manages a single engine session.
type Runner struct {
	mu        sync.Mutex
	running   bool
	engine    Engine
	cleanup   *CleanupManager
	cancel    context.CancelFunc
	done      chan struct{}
	err       error
	session   string
	startedAt time.Time
}

// New creates a runner for engine. cleanup may be nil.
func New(engine Engine, cleanup *CleanupManager) *Runner {
	if cleanup == nil {
		cleanup = NewCleanupManager(0)
	}
	return &Runner{
		engine:  engine,
		cleanup: cleanup,
	}
}

// Start runs the engine in the background until ctx is done, Stop is
// called, or the engine fails.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return errors.New("runner already running")
	}
	if r.done != nil {
		return errors.New("runner already used")
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.session = uuid.NewString()
	r.startedAt = time.Now()
	r.running = true

	go r.run(runCtx, r.done)

	log.Printf("runner: started session %s", r.session)
	return nil
}

func (r *Runner) run(ctx context.Context, done chan struct{}) {
	err := r.engine.Run(ctx)

	r.mu.Lock()
	r.running = false
	if ctx.Err() == nil {
		// The engine gave up on its own: the source is gone.
		r.err = err
		log.Printf("runner: engine stopped: %v", err)
	}
	r.mu.Unlock()

	close(done)
}

// Done is closed when the engine goroutine has returned. It is nil before Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Err returns the error that ended the session on its own, or nil if the
// session is still running or was stopped.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// IsRunning reports whether the engine goroutine is active.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Session returns the id of the current or last session.
func (r *Runner) Session() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Uptime returns how long the session has been running.
func (r *Runner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startedAt.IsZero() {
		return 0
	}
	return time.Since(r.startedAt)
}

// Stop ends the session.
func (r *Runner) Stop() error {
	return r.StopWithTimeout(0)
}

// StopWithTimeout cancels the engine, releases resources and waits for the
// engine goroutine to return. It is safe to call more than once and after
// the engine stopped on its own.
func (r *Runner) StopWithTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultCleanupTimeout
	}

	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	// Releasing the hook and bus is what unblocks an engine waiting for input.
	cleanupErr := r.cleanup.Execute()

	if done == nil {
		return cleanupErr
	}

	select {
	case <-done:
		log.Printf("runner: stopped")
		return cleanupErr
	case <-time.After(timeout):
		log.Printf("runner: stop timeout exceeded after %v", timeout)
		return errors.Join(cleanupErr, context.DeadlineExceeded)
	}
}
