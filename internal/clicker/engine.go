package clicker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// burst is the queue committed for one button by the most recent fast click.
type burst struct {
	button Button
	queue  Queue
}

// Engine is the single consumer of click events. It owns every History and
// the pending burst; nothing else may touch them.
//
// Execution is synchronous: while a burst drains the engine does not read
// from its Source, so events that arrive in the meantime wait in the Source
// and are classified afterwards. A newer click never aborts a running burst.
type Engine struct {
	source  Source
	sink    Sink
	params  Params
	builder *Builder
	sleep   SleepFunc
	stats   *Stats

	histories [buttonCount]History
	pending   *burst
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for burst delays.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) {
		e.builder = NewBuilder(rnd, e.params)
	}
}

// WithSleep replaces the function used to wait between synthetic clicks.
func WithSleep(fn SleepFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.sleep = fn
		}
	}
}

// WithStats makes the engine record into s instead of a private Stats.
func WithStats(s *Stats) Option {
	return func(e *Engine) {
		if s != nil {
			e.stats = s
		}
	}
}

// New validates p and returns an engine reading from source and clicking
// through sink.
func New(source Source, sink Sink, p Params, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, errors.New("clicker: nil source")
	}
	if sink == nil {
		return nil, errors.New("clicker: nil sink")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("clicker: %w", err)
	}

	e := &Engine{
		source: source,
		sink:   sink,
		params: p,
		sleep:  sleepContext,
		stats:  &Stats{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.builder == nil {
		e.builder = NewBuilder(nil, p)
	}
	return e, nil
}

// Run alternates NextTick and ExecuteQueue until the source fails or ctx
// is done. It always returns a non-nil error.
func (e *Engine) Run(ctx context.Context) error {
	log.Printf("clicker: running (threshold=%dms extra=%d delay=[%s,%s) bias=%.2f sink=%s)",
		e.params.ThresholdMS(), e.params.ExtraClicks, e.params.MinDelay, e.params.MaxDelay,
		e.params.WeightedRandomBias, e.sink.Name())

	for {
		if err := e.NextTick(ctx); err != nil {
			return err
		}
		if err := e.ExecuteQueue(ctx); err != nil {
			return err
		}
	}
}

// NextTick waits for one event and decides what to do about it. A fast
// click leaves a pending burst for ExecuteQueue.
func (e *Engine) NextTick(ctx context.Context) error {
	ev, err := e.source.Next(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("clicker: event source: %w", err)
	}
	if !ev.Button.Valid() {
		log.Printf("clicker: dropping event for unsupported button %d", ev.Button)
		return nil
	}

	e.dropPending()

	h := &e.histories[ev.Button]
	decision := h.Observe(ev.TimestampMS, e.params.ThresholdMS(), e.params.ExtraClicks)
	e.stats.recordDecision(ev.Button, decision)

	if decision == DecisionAmplify {
		e.pending = &burst{
			button: ev.Button,
			queue:  e.builder.Build(e.params.ExtraClicks, ev.Button),
		}
	}
	return nil
}

// ExecuteQueue drains the pending burst, if any. Clicks go to the sink and
// delays block the calling goroutine. Only ctx cancellation stops a burst
// early; a failed click is logged and counted and the burst goes on.
func (e *Engine) ExecuteQueue(ctx context.Context) error {
	b := e.pending
	if b == nil {
		return nil
	}
	defer func() {
		if e.pending == b {
			e.pending = nil
		}
		e.histories[b.button].FinishBurst()
	}()

	for _, action := range b.queue {
		switch action.Kind {
		case ActionClick:
			err := e.sink.Click(action.Button)
			e.stats.recordClick(action.Button, err)
			if err != nil {
				log.Printf("clicker: %s click via %s failed: %v", action.Button, e.sink.Name(), err)
			}
		case ActionDelay:
			if err := e.sleep(ctx, action.Delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// dropPending discards a burst that was committed but never executed.
func (e *Engine) dropPending() {
	if e.pending == nil {
		return
	}
	e.histories[e.pending.button].FinishBurst()
	e.pending = nil
}

// Pending returns a copy of the burst waiting to execute, or nil.
func (e *Engine) Pending() Queue {
	if e.pending == nil {
		return nil
	}
	return append(Queue(nil), e.pending.queue...)
}

// History returns a copy of the state tracked for button.
func (e *Engine) History(button Button) History {
	return e.histories[button]
}

// Stats returns the counters the engine records into.
func (e *Engine) Stats() *Stats {
	return e.stats
}

// Params returns the configuration the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
