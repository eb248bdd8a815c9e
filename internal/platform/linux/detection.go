//go:build linux

// Package linux provides the Linux click sinks and session detection.
package linux

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
)

// Display server types.
const (
	DisplayServerWayland = "wayland"
	DisplayServerX11     = "x11"
	DisplayServerUnknown = "unknown"
)

const osReleasePath = "/etc/os-release"

// Capabilities is what this session offers for injecting clicks.
type Capabilities struct {
	DisplayServer    string
	XdotoolAvailable bool
	YdotoolAvailable bool
	UinputAccess     bool
	// UinputError explains how to grant access when UinputAccess is false.
	UinputError    string
	PackageManager string
}

// DetectCapabilities inspects the session, PATH, /dev/uinput and the
// distribution.
func DetectCapabilities() Capabilities {
	caps := Capabilities{
		DisplayServer:    DetectDisplayServer(),
		XdotoolAvailable: hasCommand(ToolXdotool),
		YdotoolAvailable: hasCommand(ToolYdotool),
		PackageManager:   detectPackageManager(osReleasePath),
	}
	if err := checkUinputAccess(uinputDevicePath); err != nil {
		caps.UinputError = err.Error()
	} else {
		caps.UinputAccess = true
	}
	return caps
}

// PreferredSink picks the sink for this session: on Wayland uinput if the
// device is writable, then ydotool; elsewhere an empty string, meaning the
// portable sink.
func (c Capabilities) PreferredSink() string {
	if c.DisplayServer != DisplayServerWayland {
		return ""
	}
	if c.UinputAccess {
		return SinkUinput
	}
	if c.YdotoolAvailable {
		return ToolYdotool
	}
	return ""
}

// DetectDisplayServer reports whether clicks will land in a Wayland or an
// X11 session.
func DetectDisplayServer() string {
	session := strings.ToLower(os.Getenv("XDG_SESSION_TYPE"))
	switch {
	case os.Getenv("WAYLAND_DISPLAY") != "" || session == DisplayServerWayland:
		return DisplayServerWayland
	case os.Getenv("DISPLAY") != "" || session == DisplayServerX11:
		return DisplayServerX11
	default:
		return DisplayServerUnknown
	}
}

// packageManager is a package manager and the os-release IDs that use it.
type packageManager struct {
	name string
	ids  []string
}

var packageManagers = []packageManager{
	{"apt", []string{"debian", "ubuntu", "pop", "linuxmint"}},
	{"dnf", []string{"fedora", "rhel", "centos"}},
	{"pacman", []string{"arch", "manjaro", "endeavouros"}},
	{"zypper", []string{"suse", "opensuse", "opensuse-leap", "opensuse-tumbleweed"}},
	{"apk", []string{"alpine"}},
}

func detectPackageManager(path string) string {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if pm := packageManagerFor(parseOSRelease(f)); pm != "" {
			return pm
		}
	}
	names := lo.Map(packageManagers, func(pm packageManager, _ int) string {
		return pm.name
	})
	return lo.FindOrElse(names, "", hasCommand)
}

// parseOSRelease reads the KEY=value lines of an os-release file.
func parseOSRelease(r io.Reader) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok || strings.HasPrefix(key, "#") {
			continue
		}
		fields[key] = strings.ToLower(strings.Trim(value, `"'`))
	}
	return fields
}

// packageManagerFor matches ID first and then each ID_LIKE entry.
func packageManagerFor(osRelease map[string]string) string {
	ids := append([]string{osRelease["ID"]}, strings.Fields(osRelease["ID_LIKE"])...)
	for _, id := range ids {
		for _, pm := range packageManagers {
			if lo.Contains(pm.ids, id) {
				return pm.name
			}
		}
	}
	return ""
}
