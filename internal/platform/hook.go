package platform

import (
	"errors"
	"log"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/stigoleg/burst-click/internal/clicker"
	"github.com/stigoleg/burst-click/internal/input"
)

// gohook reports a button press as MouseHold; its MouseDown fires on release.
const pressEvent = hook.MouseHold

// HookListener feeds global left and right presses into an input bus. The
// bus is closed when the hook stops, which ends the engine.
type HookListener struct {
	bus   *input.Bus
	left  *input.Producer
	right *input.Producer

	mu      sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
}

// NewHookListener creates a listener writing to bus.
func NewHookListener(bus *input.Bus) *HookListener {
	return &HookListener{
		bus:   bus,
		left:  bus.Producer(clicker.ButtonLeft),
		right: bus.Producer(clicker.ButtonRight),
		done:  make(chan struct{}),
	}
}

// Start registers the hook and begins processing OS events in the
// background.
func (l *HookListener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return errors.New("hook: already started")
	}
	l.started = true

	hook.Register(pressEvent, []string{}, l.handle)
	s := hook.Start()
	log.Printf("hook: listening for left and right presses")

	go func() {
		defer close(l.done)
		<-hook.Process(s)
		log.Printf("hook: stopped")
		if err := l.bus.Close(); err != nil {
			log.Printf("hook: closing bus: %v", err)
		}
	}()
	return nil
}

func (l *HookListener) handle(e hook.Event) {
	if e.Kind != pressEvent {
		return
	}
	var p *input.Producer
	switch e.Button {
	case hook.MouseMap["left"]:
		p = l.left
	case hook.MouseMap["right"]:
		p = l.right
	default:
		return
	}
	p.Press()
}

// Done is closed after the hook has stopped and the bus is closed.
func (l *HookListener) Done() <-chan struct{} {
	return l.done
}

// Stop ends the OS hook. It is safe to call more than once.
func (l *HookListener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started || l.stopped {
		return nil
	}
	l.stopped = true
	hook.End()
	return nil
}

// Cleanup implements runner.Resource.
func (l *HookListener) Cleanup() error { return l.Stop() }

// Name implements runner.Resource.
func (l *HookListener) Name() string { return "input hook" }
