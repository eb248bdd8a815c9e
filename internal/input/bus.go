// Package input carries button presses from hook callbacks to the engine.
package input

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stigoleg/burst-click/internal/clicker"
)

// ErrClosed is returned by Next once the bus is closed and drained.
var ErrClosed = errors.New("input: bus closed")

// Bus is an unbounded multi-producer, single-consumer FIFO of click events.
//
// Producers never block. The consumer blocks in Next until an event is
// available. Events are delivered in the order they were sent, across both
// buttons.
type Bus struct {
	mu     sync.Mutex
	events []clicker.ClickEvent
	closed bool
	// buffered, size 1; closed by Close to wake the consumer
	signal chan struct{}

	now func() uint64
}

// NewBus creates an empty bus stamping events with the wall clock.
func NewBus() *Bus {
	return &Bus{
		events: make([]clicker.ClickEvent, 0, 64),
		signal: make(chan struct{}, 1),
		now:    NowMS,
	}
}

// NowMS returns wall-clock milliseconds since the Unix epoch.
func NowMS() uint64 {
	return uint64(time.Now().UnixMilli())
}

// Send enqueues ev. It returns false once the bus is closed.
func (b *Bus) Send(ev clicker.ClickEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enqueueLocked(ev)
}

// press stamps and enqueues under one lock so timestamps follow send order.
func (b *Bus) press(button clicker.Button) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enqueueLocked(clicker.ClickEvent{Button: button, TimestampMS: b.now()})
}

func (b *Bus) enqueueLocked(ev clicker.ClickEvent) bool {
	if b.closed {
		return false
	}
	b.events = append(b.events, ev)

	// buffer of 1 coalesces wakeups
	select {
	case b.signal <- struct{}{}:
	default:
	}
	return true
}

// Next removes and returns the oldest event, blocking until one arrives.
// It returns ErrClosed when the bus is closed and empty, or ctx.Err().
func (b *Bus) Next(ctx context.Context) (clicker.ClickEvent, error) {
	for {
		if ev, ok, closed := b.tryNext(); ok {
			return ev, nil
		} else if closed {
			return clicker.ClickEvent{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return clicker.ClickEvent{}, ctx.Err()
		case <-b.signal:
		}
	}
}

func (b *Bus) tryNext() (ev clicker.ClickEvent, ok bool, closed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == 0 {
		return clicker.ClickEvent{}, false, b.closed
	}
	ev = b.events[0]
	if len(b.events) == 1 {
		b.events = b.events[:0]
	} else {
		b.events = b.events[1:]
	}
	return ev, true, b.closed
}

// Len returns the number of buffered events.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Close stops accepting events. Buffered events are still delivered.
// Close is idempotent and always returns nil.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.signal)
	return nil
}

// Producer returns a send-only handle that stamps presses for button.
func (b *Bus) Producer(button clicker.Button) *Producer {
	return &Producer{bus: b, button: button}
}

// Producer is a send-only handle for one button. It holds no engine state;
// pressing only enqueues.
type Producer struct {
	bus    *Bus
	button clicker.Button
}

// Press records a press happening now.
func (p *Producer) Press() bool {
	return p.bus.press(p.button)
}

// Button returns the button this producer reports.
func (p *Producer) Button() clicker.Button {
	return p.button
}
