//go:build linux

package platform

import (
	"log"

	"github.com/stigoleg/burst-click/internal/platform/linux"
)

func autoKind() string {
	caps := linux.DetectCapabilities()
	if kind := caps.PreferredSink(); kind != "" {
		log.Printf("platform: %s session, using %s sink", caps.DisplayServer, kind)
		return kind
	}
	if caps.DisplayServer == linux.DisplayServerWayland {
		log.Printf("platform: wayland session without uinput access or ydotool; robotgo may not reach other windows")
	}
	return KindRobotgo
}

func newNativeSink(kind string) (Sink, error) {
	switch kind {
	case KindUinput:
		u, err := linux.OpenUinputClicker()
		if err != nil {
			return nil, err
		}
		return u, nil
	case KindXdotool, KindYdotool:
		c, err := linux.NewCommandClicker(kind)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, ErrUnsupported
	}
}

func nativeInfo(kind string) SinkInfo {
	h := linux.SinkHint(kind, linux.DetectCapabilities())
	return SinkInfo{
		Kind:      kind,
		Available: h.Available,
		Detail:    h.Detail,
		Install:   h.Install,
		Flag:      h.Flag,
	}
}

func robotgoInfo() SinkInfo {
	info := SinkInfo{Kind: KindRobotgo, Available: true, Detail: "portable, needs an X11 session on Linux"}
	switch linux.DetectDisplayServer() {
	case linux.DisplayServerWayland:
		info.Detail = "runs through XWayland; native Wayland windows may ignore it"
	case linux.DisplayServerUnknown:
		info.Available = false
		info.Detail = "no display server detected"
	}
	return info
}
