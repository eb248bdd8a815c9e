package clicker

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidMinCPS      = errors.New("min clicks per second must be positive")
	ErrInvalidExtraClicks = errors.New("extra clicks must not be negative")
	ErrInvalidDelayRange  = errors.New("delay range must satisfy 0 <= min <= max")
	ErrInvalidBias        = errors.New("weighted random bias must be within [0,1]")
)

// Params holds the tuning values the engine runs with.
type Params struct {
	// MinCPS is the click rate at or above which a click counts as fast.
	MinCPS int
	// ExtraClicks is the number of synthetic clicks added per burst.
	ExtraClicks int
	MinDelay    time.Duration
	MaxDelay    time.Duration
	// WeightedRandomBias is the probability of using MinDelay outright
	// instead of drawing from [MinDelay, MaxDelay).
	WeightedRandomBias float64
}

// Validate checks the ranges the engine relies on.
func (p Params) Validate() error {
	if p.MinCPS <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinCPS, p.MinCPS)
	}
	if p.ExtraClicks < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidExtraClicks, p.ExtraClicks)
	}
	if p.MinDelay < 0 || p.MaxDelay < p.MinDelay {
		return fmt.Errorf("%w: got min=%s max=%s", ErrInvalidDelayRange, p.MinDelay, p.MaxDelay)
	}
	// written so that NaN fails too
	if !(p.WeightedRandomBias >= 0 && p.WeightedRandomBias <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidBias, p.WeightedRandomBias)
	}
	return nil
}

// ThresholdMS is the click interval below which a click is fast.
// Integer division matches the rate expressed in whole milliseconds.
func (p Params) ThresholdMS() uint64 {
	if p.MinCPS <= 0 {
		return 0
	}
	return uint64(1000 / p.MinCPS)
}
