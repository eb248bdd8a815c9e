// Package platform connects the click engine to the operating system: a
// global mouse hook feeding the input bus and the sinks that inject
// synthetic clicks.
package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/stigoleg/burst-click/internal/clicker"
)

// Sink kinds accepted by NewSink.
const (
	KindAuto    = "auto"
	KindRobotgo = "robotgo"
	KindUinput  = "uinput"
	KindXdotool = "xdotool"
	KindYdotool = "ydotool"
)

// ErrUnsupported is returned for sink kinds that do not exist on this OS.
var ErrUnsupported = errors.New("sink not supported on this platform")

// Sink is a clicker.Sink holding OS resources that must be released.
type Sink interface {
	clicker.Sink
	Close() error
}

// SinkInfo describes whether a sink kind can be used here.
type SinkInfo struct {
	Kind      string
	Available bool
	Detail    string
	// Install is a shell command that provides the missing tool, if known.
	Install string
	// Flag selects this sink on the command line.
	Flag string
}

// Kinds lists every concrete sink kind in preference order.
func Kinds() []string {
	return []string{KindRobotgo, KindUinput, KindXdotool, KindYdotool}
}

// ParseKind normalizes a --sink value.
func ParseKind(s string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(s))
	if kind == "" {
		return KindAuto, nil
	}
	if kind == KindAuto || lo.Contains(Kinds(), kind) {
		return kind, nil
	}
	return "", fmt.Errorf("unknown sink %q (valid: %s, %s)", s, KindAuto, strings.Join(Kinds(), ", "))
}

// NewSink opens the sink of the given kind. KindAuto picks the best sink for
// the current session.
func NewSink(kind string) (Sink, error) {
	kind, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	if kind == KindAuto {
		kind = autoKind()
	}

	switch kind {
	case KindRobotgo:
		return newRobotgoSink(), nil
	default:
		s, err := newNativeSink(kind)
		if err != nil {
			return nil, fmt.Errorf("%s sink: %w", kind, err)
		}
		return s, nil
	}
}

// Availability reports whether each concrete sink kind can run here.
func Availability() []SinkInfo {
	return lo.Map(Kinds(), func(kind string, _ int) SinkInfo {
		var info SinkInfo
		if kind == KindRobotgo {
			info = robotgoInfo()
		} else {
			info = nativeInfo(kind)
		}
		if info.Flag == "" {
			info.Flag = "--sink " + kind
		}
		return info
	})
}

// AutoKind returns the kind KindAuto resolves to in this session.
func AutoKind() string {
	return autoKind()
}
