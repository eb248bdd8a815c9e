// Package clicker decides, per mouse button, whether an observed click is
// ignored, passed through, or amplified into a burst of synthetic clicks.
package clicker

import "context"

// Button identifies one of the two supported mouse buttons.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

const buttonCount = 2

// Buttons lists every supported button in display order.
var Buttons = []Button{ButtonLeft, ButtonRight}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether b is one of the supported buttons.
func (b Button) Valid() bool {
	return b == ButtonLeft || b == ButtonRight
}

// ClickEvent is a single physical button press as seen by the input hook.
// TimestampMS is wall-clock milliseconds since the Unix epoch.
type ClickEvent struct {
	Button      Button
	TimestampMS uint64
}

// Source delivers click events to the engine. Next blocks until an event
// is available, the source is gone, or ctx is done.
type Source interface {
	Next(ctx context.Context) (ClickEvent, error)
}

// Sink injects one synthetic click at the pointer's current position.
type Sink interface {
	Click(button Button) error
	Name() string
}
