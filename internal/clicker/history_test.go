package clicker

import "testing"

func TestHistoryObserve(t *testing.T) {
	const threshold = 500 // min_cps=2

	tests := []struct {
		name      string
		extra     int
		clicks    []uint64
		want      []Decision
		wantSkip  int
		wantPhase Phase
	}{
		{
			name:      "first click has no baseline",
			extra:     3,
			clicks:    []uint64{0},
			want:      []Decision{DecisionPassThrough},
			wantPhase: PhaseIdle,
		},
		{
			name:      "slow clicks pass through",
			extra:     3,
			clicks:    []uint64{0, 600, 1100, 1600},
			want:      []Decision{DecisionPassThrough, DecisionPassThrough, DecisionPassThrough, DecisionPassThrough},
			wantPhase: PhaseIdle,
		},
		{
			name:      "gap equal to threshold is slow",
			extra:     3,
			clicks:    []uint64{1000, 1500},
			want:      []Decision{DecisionPassThrough, DecisionPassThrough},
			wantPhase: PhaseIdle,
		},
		{
			name:      "fast click amplifies",
			extra:     3,
			clicks:    []uint64{0, 200},
			want:      []Decision{DecisionPassThrough, DecisionAmplify},
			wantSkip:  3,
			wantPhase: PhaseBursting,
		},
		{
			name:      "echoes are ignored regardless of timing",
			extra:     3,
			clicks:    []uint64{0, 200, 201, 5000, 90000},
			want:      []Decision{DecisionPassThrough, DecisionAmplify, DecisionIgnore, DecisionIgnore, DecisionIgnore},
			wantSkip:  0,
			wantPhase: PhaseBursting,
		},
		{
			name:      "clock step backwards re-baselines",
			extra:     3,
			clicks:    []uint64{1000, 900, 1000},
			want:      []Decision{DecisionPassThrough, DecisionPassThrough, DecisionAmplify},
			wantSkip:  3,
			wantPhase: PhaseBursting,
		},
		{
			name:      "zero extra clicks amplifies without echoes",
			extra:     0,
			clicks:    []uint64{0, 100, 200},
			want:      []Decision{DecisionPassThrough, DecisionAmplify, DecisionAmplify},
			wantSkip:  0,
			wantPhase: PhaseBursting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h History
			for i, ts := range tt.clicks {
				got := h.Observe(ts, threshold, tt.extra)
				if got != tt.want[i] {
					t.Fatalf("click %d at %dms: got %s, want %s", i, ts, got, tt.want[i])
				}
			}
			if h.Skip() != tt.wantSkip {
				t.Errorf("skip = %d, want %d", h.Skip(), tt.wantSkip)
			}
			if h.Phase() != tt.wantPhase {
				t.Errorf("phase = %s, want %s", h.Phase(), tt.wantPhase)
			}
		})
	}
}

func TestHistoryIgnoreKeepsBaseline(t *testing.T) {
	var h History
	h.Observe(0, 500, 1)
	h.Observe(200, 500, 1)
	h.FinishBurst()

	if got := h.Observe(10000, 500, 1); got != DecisionIgnore {
		t.Fatalf("echo: got %s, want ignore", got)
	}
	if h.LastClickedMS() != 200 {
		t.Fatalf("baseline moved to %d on an ignored click", h.LastClickedMS())
	}
	// Measured against 200, not 10000.
	if got := h.Observe(10100, 500, 1); got != DecisionPassThrough {
		t.Fatalf("after echo: got %s, want pass-through", got)
	}
}

func TestHistorySkipDrainsMonotonically(t *testing.T) {
	var h History
	h.Observe(0, 500, 4)
	h.Observe(10, 500, 4)
	h.FinishBurst()

	if h.Phase() != PhaseSkipping {
		t.Fatalf("phase after burst = %s, want skipping", h.Phase())
	}

	prev := h.Skip()
	for i := 0; i < 4; i++ {
		if got := h.Observe(uint64(20+i), 500, 4); got != DecisionIgnore {
			t.Fatalf("echo %d: got %s, want ignore", i, got)
		}
		if h.Skip() != prev-1 {
			t.Fatalf("skip went from %d to %d", prev, h.Skip())
		}
		prev = h.Skip()
	}

	if h.Skip() != 0 || h.Phase() != PhaseIdle {
		t.Fatalf("after draining: skip=%d phase=%s", h.Skip(), h.Phase())
	}
	if got := h.Observe(5000, 500, 4); got == DecisionIgnore {
		t.Fatal("ignored a click after skip reached zero")
	}
}

func TestHistoryFinishBurst(t *testing.T) {
	var h History
	h.FinishBurst()
	if h.Phase() != PhaseIdle {
		t.Fatalf("FinishBurst on idle history moved to %s", h.Phase())
	}

	h.Observe(0, 500, 0)
	h.Observe(1, 500, 0)
	h.FinishBurst()
	if h.Phase() != PhaseIdle {
		t.Fatalf("empty burst finished in %s, want idle", h.Phase())
	}
}
