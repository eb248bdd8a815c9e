package clicker

import "sync/atomic"

// SinkHealth represents the runtime health of click injection.
type SinkHealth int

const (
	SinkHealthUnknown SinkHealth = iota
	SinkHealthOK
	SinkHealthFailed
)

func (h SinkHealth) String() string {
	switch h {
	case SinkHealthOK:
		return "ok"
	case SinkHealthFailed:
		return "failing"
	default:
		return "unknown"
	}
}

type buttonCounters struct {
	events       atomic.Int64
	ignored      atomic.Int64
	passThrough  atomic.Int64
	bursts       atomic.Int64
	synthetic    atomic.Int64
	sinkFailures atomic.Int64
}

// Stats counts engine activity. It is written by the engine goroutine and
// may be read concurrently from any other goroutine.
type Stats struct {
	buttons [buttonCount]buttonCounters

	// failures since the last ResetSinkHealth
	recentFailures atomic.Int64
	injected       atomic.Int64
}

// ButtonStats is a point-in-time copy of one button's counters.
type ButtonStats struct {
	Events       int64
	Ignored      int64
	PassThrough  int64
	Bursts       int64
	Synthetic    int64
	SinkFailures int64
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Left   ButtonStats
	Right  ButtonStats
	Health SinkHealth
}

// Button returns the counters for b.
func (s Snapshot) Button(b Button) ButtonStats {
	if b == ButtonRight {
		return s.Right
	}
	return s.Left
}

func (s *Stats) recordDecision(b Button, d Decision) {
	c := &s.buttons[b]
	c.events.Add(1)
	switch d {
	case DecisionIgnore:
		c.ignored.Add(1)
	case DecisionPassThrough:
		c.passThrough.Add(1)
	case DecisionAmplify:
		c.bursts.Add(1)
	}
}

func (s *Stats) recordClick(b Button, err error) {
	if err != nil {
		s.buttons[b].sinkFailures.Add(1)
		s.recentFailures.Add(1)
		return
	}
	s.buttons[b].synthetic.Add(1)
	s.injected.Add(1)
}

// SinkHealth reports whether injections have failed since the last reset.
func (s *Stats) SinkHealth() SinkHealth {
	if s.recentFailures.Load() > 0 {
		return SinkHealthFailed
	}
	if s.injected.Load() > 0 {
		return SinkHealthOK
	}
	return SinkHealthUnknown
}

// ResetSinkHealth clears the recent failure counter.
func (s *Stats) ResetSinkHealth() {
	s.recentFailures.Store(0)
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() Snapshot {
	load := func(b Button) ButtonStats {
		c := &s.buttons[b]
		return ButtonStats{
			Events:       c.events.Load(),
			Ignored:      c.ignored.Load(),
			PassThrough:  c.passThrough.Load(),
			Bursts:       c.bursts.Load(),
			Synthetic:    c.synthetic.Load(),
			SinkFailures: c.sinkFailures.Load(),
		}
	}
	return Snapshot{
		Left:   load(ButtonLeft),
		Right:  load(ButtonRight),
		Health: s.SinkHealth(),
	}
}
