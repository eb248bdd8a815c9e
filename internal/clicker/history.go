package clicker

// Decision is the outcome of observing one click on a button.
type Decision int

const (
	// DecisionIgnore marks an echo of a synthetic click this engine injected.
	DecisionIgnore Decision = iota + 1
	// DecisionPassThrough marks a slow click; the OS already delivered it.
	DecisionPassThrough
	// DecisionAmplify marks a fast click that should be followed by a burst.
	DecisionAmplify
)

func (d Decision) String() string {
	switch d {
	case DecisionIgnore:
		return "ignore"
	case DecisionPassThrough:
		return "pass-through"
	case DecisionAmplify:
		return "amplify"
	default:
		return "unknown"
	}
}

// Phase is the explicit per-button state.
type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseSkipping means Skip upcoming events are synthetic echoes.
	PhaseSkipping
	// PhaseBursting means a burst for this button is committed and not yet drained.
	PhaseBursting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSkipping:
		return "skipping"
	case PhaseBursting:
		return "bursting"
	default:
		return "unknown"
	}
}

// History tracks the rate-limiting state of one button.
// The zero value is ready to use.
type History struct {
	lastClickedMS uint64
	hasBaseline   bool
	phase         Phase
	skip          int
}

// Observe classifies a click on this button and updates the history in place.
//
// While echoes are pending the click is ignored and the timing baseline is
// left untouched. Otherwise the click is fast when it follows the previous
// accepted click by less than thresholdMS, in which case extra echoes are
// scheduled to be ignored.
func (h *History) Observe(timestampMS, thresholdMS uint64, extra int) Decision {
	if h.skip > 0 {
		h.skip--
		if h.skip == 0 && h.phase == PhaseSkipping {
			h.phase = PhaseIdle
		}
		return DecisionIgnore
	}

	fast := h.hasBaseline &&
		timestampMS >= h.lastClickedMS &&
		timestampMS-h.lastClickedMS < thresholdMS

	h.lastClickedMS = timestampMS
	h.hasBaseline = true

	if !fast {
		h.phase = PhaseIdle
		return DecisionPassThrough
	}

	if extra > 0 {
		h.skip += extra
	}
	h.phase = PhaseBursting
	return DecisionAmplify
}

// FinishBurst leaves PhaseBursting once the burst has drained or was dropped.
func (h *History) FinishBurst() {
	if h.phase != PhaseBursting {
		return
	}
	if h.skip > 0 {
		h.phase = PhaseSkipping
		return
	}
	h.phase = PhaseIdle
}

// Phase returns the current state of the button.
func (h History) Phase() Phase { return h.phase }

// Skip returns how many upcoming events will be ignored.
func (h History) Skip() int { return h.skip }

// LastClickedMS returns the timestamp of the last accepted click.
func (h History) LastClickedMS() uint64 { return h.lastClickedMS }
