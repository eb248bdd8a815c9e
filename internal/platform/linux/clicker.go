//go:build linux

package linux

import (
	"fmt"

	"github.com/stigoleg/burst-click/internal/clicker"
)

// Sink names provided by this package. The command-line tools are named
// after their binaries.
const (
	SinkUinput  = "uinput"
	ToolXdotool = "xdotool"
	ToolYdotool = "ydotool"
)

// CommandClicker injects clicks by running xdotool or ydotool once per
// click.
type CommandClicker struct {
	Cmd string
	run func(name string, args ...string) (string, error)
}

// NewCommandClicker returns a clicker for tool, failing if the tool is not
// installed.
func NewCommandClicker(tool string) (*CommandClicker, error) {
	if tool != ToolXdotool && tool != ToolYdotool {
		return nil, fmt.Errorf("unknown click tool %q", tool)
	}
	if !hasCommand(tool) {
		return nil, fmt.Errorf("%s not found in PATH", tool)
	}
	return &CommandClicker{Cmd: tool, run: runVerbose}, nil
}

func (c *CommandClicker) Click(button clicker.Button) error {
	args, err := clickArgs(c.Cmd, button)
	if err != nil {
		return err
	}
	if out, err := c.run(c.Cmd, args...); err != nil {
		return fmt.Errorf("%s failed: %w (output: %q)", c.Cmd, err, out)
	}
	return nil
}

func (c *CommandClicker) Name() string {
	return c.Cmd
}

func (c *CommandClicker) Close() error { return nil }

// clickArgs builds the arguments for one full click. xdotool numbers
// buttons X11 style; ydotool takes a press+release mask over its own
// button codes.
func clickArgs(tool string, button clicker.Button) ([]string, error) {
	switch tool {
	case ToolXdotool:
		switch button {
		case clicker.ButtonLeft:
			return []string{"click", "1"}, nil
		case clicker.ButtonRight:
			return []string{"click", "3"}, nil
		}
	case ToolYdotool:
		switch button {
		case clicker.ButtonLeft:
			return []string{"click", "0xC0"}, nil
		case clicker.ButtonRight:
			return []string{"click", "0xC1"}, nil
		}
	default:
		return nil, fmt.Errorf("unknown click tool %q", tool)
	}
	return nil, fmt.Errorf("%s: unsupported button %s", tool, button)
}
