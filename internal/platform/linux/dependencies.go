//go:build linux

package linux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"

	"github.com/samber/lo"
)

// Hint tells the user whether a sink works in this session and, if not,
// what to run to make it work.
type Hint struct {
	Available bool
	Detail    string
	// Install is a shell command providing the missing tool, if known.
	Install string
	// Flag selects the sink explicitly.
	Flag string
}

// SinkHint describes one of the Linux sinks against caps.
func SinkHint(sink string, caps Capabilities) Hint {
	h := Hint{Flag: "--sink " + sink}

	switch sink {
	case SinkUinput:
		h.Available = caps.UinputAccess
		h.Detail = "virtual mouse " + uinputDeviceName + ", works on X11 and Wayland"
		if !caps.UinputAccess {
			h.Detail = caps.UinputError
		}
		return h
	case ToolXdotool:
		h.Available = caps.XdotoolAvailable
		h.Detail = "runs xdotool per click, X11 only"
		if caps.DisplayServer == DisplayServerWayland {
			h.Detail = "runs xdotool per click; native Wayland windows never see these clicks"
		}
	case ToolYdotool:
		h.Available = caps.YdotoolAvailable
		h.Detail = "runs ydotool per click, needs the ydotoold daemon"
	default:
		h.Detail = fmt.Sprintf("unknown sink %q", sink)
		return h
	}

	if !h.Available {
		h.Install = installCommand(sink, caps.PackageManager)
		if sink == ToolYdotool && h.Install != "" {
			h.Install += " && systemctl --user enable --now ydotool"
		}
	}
	return h
}

// installCommand returns the command installing tool with pm, or "" when
// the package manager is unknown.
func installCommand(tool, pm string) string {
	switch pm {
	case "apt":
		return "sudo apt install " + tool
	case "dnf":
		return "sudo dnf install " + tool
	case "pacman":
		return "sudo pacman -S " + tool
	case "zypper":
		return "sudo zypper install " + tool
	case "apk":
		return "sudo apk add " + tool
	default:
		return ""
	}
}

// checkUinputAccess reports why burstclick cannot create its virtual mouse
// through path, or nil if it can.
func checkUinputAccess(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s is missing, so the %s virtual mouse cannot be created. Load the module: sudo modprobe uinput", path, uinputDeviceName)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err == nil {
		return f.Close()
	}
	if !inInputGroup() {
		return fmt.Errorf("cannot open %s to create the %s virtual mouse: %w. "+
			"Add yourself to the input group (sudo usermod -aG input $USER, then log in again) "+
			"or use --sink ydotool", path, uinputDeviceName, err)
	}
	return fmt.Errorf("cannot open %s to create the %s virtual mouse: %w. "+
		"Allow the input group to write it with a udev rule: "+
		`KERNEL=="uinput", MODE="0660", GROUP="input"`, path, uinputDeviceName, err)
}

// inInputGroup reports whether the process already has the input group.
func inInputGroup() bool {
	g, err := user.LookupGroup("input")
	if err != nil {
		return false
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return false
	}
	groups, err := os.Getgroups()
	if err != nil {
		return false
	}
	return lo.Contains(groups, gid)
}
