//go:build linux

package linux

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/stigoleg/burst-click/internal/clicker"
)

// uinput constants.
const (
	uinputDevicePath = "/dev/uinput"
	uinputBusTypeUSB = 0x03
	uinputVendorID   = 0x1234
	uinputProductID  = 0x5679
	uinputDeviceName = "burstclick-mouse"

	// Linux input event types and codes
	evSyn     = 0x00
	evKey     = 0x01
	evRel     = 0x02
	synReport = 0x00
	relX      = 0x00
	relY      = 0x01
	btnLeft   = 0x110
	btnRight  = 0x111

	// uinput ioctl commands
	uiSetEvbit   = 0x40045564 // _IOW('U', 100, int)
	uiSetKeybit  = 0x40045565 // _IOW('U', 101, int)
	uiSetRelbit  = 0x40045566 // _IOW('U', 102, int)
	uiDevCreate  = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502     // _IO('U', 2)

	// the first events after UI_DEV_CREATE are dropped until udev sees the device
	uinputSettleDelay = 200 * time.Millisecond
)

// capability is one UI_SET_*BIT ioctl issued before the device is created.
type capability struct {
	req  uint
	code int
}

// mouseCapabilities declares buttons and relative axes. Without REL_X and
// REL_Y udev does not tag the device ID_INPUT_MOUSE and libinput ignores it.
func mouseCapabilities() []capability {
	return []capability{
		{uiSetEvbit, evKey},
		{uiSetKeybit, btnLeft},
		{uiSetKeybit, btnRight},
		{uiSetEvbit, evRel},
		{uiSetRelbit, relX},
		{uiSetRelbit, relY},
	}
}

type uinputUserDev struct {
	name [80]byte
	id   struct {
		bustype uint16
		vendor  uint16
		product uint16
		version uint16
	}
	ffEffectsMax uint32
	absmax       [64]int32
	absmin       [64]int32
	absfuzz      [64]int32
	absflat      [64]int32
}

type inputEvent struct {
	time  unix.Timeval
	etype uint16
	code  uint16
	value int32
}

// UinputClicker injects clicks through a virtual mouse created with the
// uinput kernel interface. It works on both X11 and Wayland.
type UinputClicker struct {
	mu sync.Mutex
	fd int
}

// OpenUinputClicker creates the virtual device.
func OpenUinputClicker() (*UinputClicker, error) {
	fd, err := unix.Open(uinputDevicePath, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open uinput device: %w", err)
	}
	u := &UinputClicker{fd: fd}

	if err := u.enableCapabilities(); err != nil {
		u.Close()
		return nil, fmt.Errorf("failed to enable mouse capabilities: %w", err)
	}
	if err := u.createDevice(); err != nil {
		u.Close()
		return nil, fmt.Errorf("failed to create uinput device: %w", err)
	}
	time.Sleep(uinputSettleDelay)
	return u, nil
}

func (u *UinputClicker) enableCapabilities() error {
	for _, c := range mouseCapabilities() {
		if err := unix.IoctlSetInt(u.fd, c.req, c.code); err != nil {
			return fmt.Errorf("ioctl %#x(%#x): %w", c.req, c.code, err)
		}
	}
	return nil
}

func (u *UinputClicker) createDevice() error {
	var dev uinputUserDev
	copy(dev.name[:], uinputDeviceName)
	dev.id.bustype = uinputBusTypeUSB
	dev.id.vendor = uinputVendorID
	dev.id.product = uinputProductID

	if _, err := unix.Write(u.fd, (*[unsafe.Sizeof(dev)]byte)(unsafe.Pointer(&dev))[:]); err != nil {
		return err
	}
	return unix.IoctlSetInt(u.fd, uiDevCreate, 0)
}

// Click writes a press and a release of button, each followed by a sync.
func (u *UinputClicker) Click(button clicker.Button) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.fd < 0 {
		return errors.New("uinput device closed")
	}
	for _, ev := range clickEvents(code) {
		if _, err := unix.Write(u.fd, (*[unsafe.Sizeof(ev)]byte)(unsafe.Pointer(&ev))[:]); err != nil {
			return err
		}
	}
	return nil
}

func (u *UinputClicker) Name() string {
	return SinkUinput
}

// Close destroys the virtual device. It is safe to call more than once.
func (u *UinputClicker) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.fd < 0 {
		return nil
	}
	destroyErr := unix.IoctlSetInt(u.fd, uiDevDestroy, 0)
	closeErr := unix.Close(u.fd)
	u.fd = -1
	return errors.Join(destroyErr, closeErr)
}

func buttonCode(button clicker.Button) (uint16, error) {
	switch button {
	case clicker.ButtonLeft:
		return btnLeft, nil
	case clicker.ButtonRight:
		return btnRight, nil
	default:
		return 0, fmt.Errorf("uinput: unsupported button %s", button)
	}
}

func clickEvents(code uint16) []inputEvent {
	return []inputEvent{
		{etype: evKey, code: code, value: 1},
		{etype: evSyn, code: synReport, value: 0},
		{etype: evKey, code: code, value: 0},
		{etype: evSyn, code: synReport, value: 0},
	}
}
