//go:build linux

package linux

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stigoleg/burst-click/internal/clicker"
)

func TestClickArgs(t *testing.T) {
	tests := []struct {
		tool   string
		button clicker.Button
		want   string
	}{
		{ToolXdotool, clicker.ButtonLeft, "click 1"},
		{ToolXdotool, clicker.ButtonRight, "click 3"},
		{ToolYdotool, clicker.ButtonLeft, "click 0xC0"},
		{ToolYdotool, clicker.ButtonRight, "click 0xC1"},
	}
	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.button.String(), func(t *testing.T) {
			args, err := clickArgs(tt.tool, tt.button)
			if err != nil {
				t.Fatalf("clickArgs: %v", err)
			}
			if got := strings.Join(args, " "); got != tt.want {
				t.Errorf("clickArgs() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := clickArgs(ToolXdotool, clicker.Button(9)); err == nil {
		t.Error("expected error for unknown button")
	}
	if _, err := clickArgs("wtype", clicker.ButtonLeft); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestCommandClickerRunsTool(t *testing.T) {
	var calls []string
	c := &CommandClicker{Cmd: ToolYdotool, run: func(name string, args ...string) (string, error) {
		calls = append(calls, name+" "+strings.Join(args, " "))
		return "", nil
	}}

	if err := c.Click(clicker.ButtonRight); err != nil {
		t.Fatalf("Click: %v", err)
	}
	if len(calls) != 1 || calls[0] != "ydotool click 0xC1" {
		t.Fatalf("calls = %v", calls)
	}

	c.run = func(string, ...string) (string, error) {
		return "failed to connect socket", errors.New("exit status 1")
	}
	err := c.Click(clicker.ButtonLeft)
	if err == nil || !strings.Contains(err.Error(), "failed to connect socket") {
		t.Fatalf("Click() error = %v, want tool output", err)
	}
}

func TestClickEvents(t *testing.T) {
	code, err := buttonCode(clicker.ButtonRight)
	if err != nil {
		t.Fatal(err)
	}
	if code != btnRight {
		t.Fatalf("code = %#x, want %#x", code, btnRight)
	}

	evs := clickEvents(code)
	want := []struct {
		etype, code uint16
		value       int32
	}{
		{evKey, btnRight, 1},
		{evSyn, synReport, 0},
		{evKey, btnRight, 0},
		{evSyn, synReport, 0},
	}
	if len(evs) != len(want) {
		t.Fatalf("got %d events, want %d", len(evs), len(want))
	}
	for i, w := range want {
		if evs[i].etype != w.etype || evs[i].code != w.code || evs[i].value != w.value {
			t.Errorf("event %d = %+v, want %+v", i, evs[i], w)
		}
	}

	if _, err := buttonCode(clicker.Button(5)); err == nil {
		t.Error("expected error for unknown button")
	}
}

func TestDetectDisplayServer(t *testing.T) {
	tests := []struct {
		name        string
		wayland     string
		sessionType string
		display     string
		want        string
	}{
		{"wayland socket", "wayland-0", "", "", DisplayServerWayland},
		{"wayland session", "", "wayland", ":0", DisplayServerWayland},
		{"x11 display", "", "", ":0", DisplayServerX11},
		{"x11 session", "", "x11", "", DisplayServerX11},
		{"headless", "", "tty", "", DisplayServerUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WAYLAND_DISPLAY", tt.wayland)
			t.Setenv("XDG_SESSION_TYPE", tt.sessionType)
			t.Setenv("DISPLAY", tt.display)
			if got := DetectDisplayServer(); got != tt.want {
				t.Errorf("DetectDisplayServer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreferredSink(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		want string
	}{
		{"x11 uses portable sink", Capabilities{DisplayServer: DisplayServerX11, UinputAccess: true}, ""},
		{"wayland prefers uinput", Capabilities{DisplayServer: DisplayServerWayland, UinputAccess: true, YdotoolAvailable: true}, "uinput"},
		{"wayland falls back to ydotool", Capabilities{DisplayServer: DisplayServerWayland, YdotoolAvailable: true}, ToolYdotool},
		{"wayland with nothing", Capabilities{DisplayServer: DisplayServerWayland}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.PreferredSink(); got != tt.want {
				t.Errorf("PreferredSink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMouseCapabilities(t *testing.T) {
	if uiSetRelbit != 0x40045566 {
		t.Fatalf("UI_SET_RELBIT = %#x, want 0x40045566", uiSetRelbit)
	}

	want := map[capability]bool{
		{uiSetEvbit, evKey}:     true,
		{uiSetKeybit, btnLeft}:  true,
		{uiSetKeybit, btnRight}: true,
		{uiSetEvbit, evRel}:     true,
		{uiSetRelbit, relX}:     true,
		{uiSetRelbit, relY}:     true,
	}
	got := mouseCapabilities()
	if len(got) != len(want) {
		t.Fatalf("got %d capabilities, want %d: %v", len(got), len(want), got)
	}
	for _, c := range got {
		if !want[c] {
			t.Errorf("unexpected capability %+v", c)
		}
		delete(want, c)
	}
	for c := range want {
		t.Errorf("missing capability %+v", c)
	}
}

func TestPackageManagerFor(t *testing.T) {
	tests := []struct {
		name      string
		osRelease string
		want      string
	}{
		{"ubuntu", "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n", "apt"},
		{"pop via id", "ID=pop\n", "apt"},
		{"fedora", "ID=fedora\nVERSION_ID=40\n", "dnf"},
		{"rocky via id_like", "ID=\"rocky\"\nID_LIKE=\"rhel centos fedora\"\n", "dnf"},
		{"endeavour", "ID=endeavouros\nID_LIKE=arch\n", "pacman"},
		{"tumbleweed", "ID=\"opensuse-tumbleweed\"\nID_LIKE=\"opensuse suse\"\n", "zypper"},
		{"alpine", "ID=alpine\n", "apk"},
		{"comments and junk", "# comment\nnot a field\nID=Debian\n", "apt"},
		{"unknown", "ID=nixos\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := packageManagerFor(parseOSRelease(strings.NewReader(tt.osRelease)))
			if got != tt.want {
				t.Errorf("packageManagerFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSinkHint(t *testing.T) {
	tests := []struct {
		name        string
		sink        string
		caps        Capabilities
		available   bool
		install     string
		detailMatch string
	}{
		{
			name:        "uinput usable",
			sink:        SinkUinput,
			caps:        Capabilities{UinputAccess: true},
			available:   true,
			detailMatch: uinputDeviceName,
		},
		{
			name:        "uinput denied",
			sink:        SinkUinput,
			caps:        Capabilities{UinputError: "cannot open /dev/uinput"},
			detailMatch: "cannot open /dev/uinput",
		},
		{
			name:        "xdotool missing on debian",
			sink:        ToolXdotool,
			caps:        Capabilities{DisplayServer: DisplayServerX11, PackageManager: "apt"},
			install:     "sudo apt install xdotool",
			detailMatch: "X11 only",
		},
		{
			name:        "xdotool on wayland",
			sink:        ToolXdotool,
			caps:        Capabilities{DisplayServer: DisplayServerWayland, XdotoolAvailable: true},
			available:   true,
			detailMatch: "Wayland",
		},
		{
			name:        "ydotool missing on arch",
			sink:        ToolYdotool,
			caps:        Capabilities{PackageManager: "pacman"},
			install:     "sudo pacman -S ydotool && systemctl --user enable --now ydotool",
			detailMatch: "ydotoold",
		},
		{
			name:        "ydotool missing, unknown distro",
			sink:        ToolYdotool,
			caps:        Capabilities{},
			detailMatch: "ydotoold",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SinkHint(tt.sink, tt.caps)
			if h.Available != tt.available {
				t.Errorf("Available = %v, want %v", h.Available, tt.available)
			}
			if h.Install != tt.install {
				t.Errorf("Install = %q, want %q", h.Install, tt.install)
			}
			if !strings.Contains(h.Detail, tt.detailMatch) {
				t.Errorf("Detail = %q, want it to mention %q", h.Detail, tt.detailMatch)
			}
			if h.Flag != "--sink "+tt.sink {
				t.Errorf("Flag = %q", h.Flag)
			}
		})
	}
}

func TestCheckUinputAccess(t *testing.T) {
	dir := t.TempDir()

	err := checkUinputAccess(filepath.Join(dir, "uinput"))
	if err == nil || !strings.Contains(err.Error(), "modprobe uinput") {
		t.Fatalf("missing device: err = %v", err)
	}
	if !strings.Contains(err.Error(), uinputDeviceName) {
		t.Errorf("error does not name the virtual mouse: %v", err)
	}

	writable := filepath.Join(dir, "writable")
	if err := os.WriteFile(writable, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := checkUinputAccess(writable); err != nil {
		t.Fatalf("writable device: %v", err)
	}
}

func TestHasCommand(t *testing.T) {
	tests := []struct {
		command  string
		expected bool
	}{
		{"sh", true},
		{"this-command-definitely-does-not-exist-12345", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := hasCommand(tt.command); got != tt.expected {
			t.Errorf("hasCommand(%q) = %v, want %v", tt.command, got, tt.expected)
		}
	}
}
