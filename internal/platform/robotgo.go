package platform

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/stigoleg/burst-click/internal/clicker"
)

// robotgoSink injects clicks through robotgo at the current pointer position.
type robotgoSink struct{}

func newRobotgoSink() *robotgoSink {
	return &robotgoSink{}
}

func (s *robotgoSink) Click(button clicker.Button) error {
	name, err := robotgoButton(button)
	if err != nil {
		return err
	}
	if err := robotgo.Toggle(name); err != nil {
		return fmt.Errorf("press %s: %w", name, err)
	}
	if err := robotgo.Toggle(name, "up"); err != nil {
		return fmt.Errorf("release %s: %w", name, err)
	}
	return nil
}

func (s *robotgoSink) Name() string { return KindRobotgo }

func (s *robotgoSink) Close() error { return nil }

func robotgoButton(button clicker.Button) (string, error) {
	switch button {
	case clicker.ButtonLeft:
		return "left", nil
	case clicker.ButtonRight:
		return "right", nil
	default:
		return "", fmt.Errorf("unsupported button %s", button)
	}
}
