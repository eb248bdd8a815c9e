package clicker

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	ActionClick ActionKind = iota + 1
	ActionDelay
)

// Action is one step of a burst: either a click or a pause.
type Action struct {
	Kind   ActionKind
	Button Button
	Delay  time.Duration
}

// Click returns a click action for button.
func Click(button Button) Action {
	return Action{Kind: ActionClick, Button: button}
}

// Delay returns a pause action of d.
func Delay(d time.Duration) Action {
	return Action{Kind: ActionDelay, Delay: d}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionClick:
		return "click(" + a.Button.String() + ")"
	case ActionDelay:
		return "delay(" + a.Delay.String() + ")"
	default:
		return "noop"
	}
}

// Queue is an ordered burst of actions.
type Queue []Action

// Clicks counts the click actions in q.
func (q Queue) Clicks() int {
	return lo.CountBy(q, func(a Action) bool { return a.Kind == ActionClick })
}

// TotalDelay sums every delay in q.
func (q Queue) TotalDelay() time.Duration {
	return lo.SumBy(q, func(a Action) time.Duration {
		if a.Kind != ActionDelay {
			return 0
		}
		return a.Delay
	})
}

func (q Queue) String() string {
	parts := lo.Map(q, func(a Action, _ int) string { return a.String() })
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}

// Builder produces bursts with weighted random inter-click delays.
type Builder struct {
	rnd      *rand.Rand
	minDelay time.Duration
	maxDelay time.Duration
	bias     float64
}

// NewBuilder creates a builder drawing from rnd. A nil rnd is seeded from
// the current time.
func NewBuilder(rnd *rand.Rand, p Params) *Builder {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{
		rnd:      rnd,
		minDelay: p.MinDelay,
		maxDelay: p.MaxDelay,
		bias:     p.WeightedRandomBias,
	}
}

// Build returns count click/delay pairs for button, starting with a click.
func (b *Builder) Build(count int, button Button) Queue {
	if count <= 0 {
		return Queue{}
	}
	q := make(Queue, 0, 2*count)
	for i := 0; i < count; i++ {
		q = append(q, Click(button), Delay(b.nextDelay()))
	}
	return q
}

// nextDelay favours the minimum with probability bias and otherwise draws
// uniformly from [minDelay, maxDelay).
func (b *Builder) nextDelay() time.Duration {
	if b.rnd.Float64() < b.bias {
		return b.minDelay
	}
	span := b.maxDelay - b.minDelay
	if span <= 0 {
		return b.minDelay
	}
	return b.minDelay + time.Duration(b.rnd.Int63n(int64(span)))
}
