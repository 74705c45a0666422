//go:build linux

package keys

import (
	"fmt"

	evdev "github.com/holoplot/go-evdev"
)

// keyCodes maps controller keys to evdev key codes.
var keyCodes = map[Key]evdev.EvCode{
	KeyW:     evdev.KEY_W,
	KeyA:     evdev.KEY_A,
	KeyS:     evdev.KEY_S,
	KeyD:     evdev.KEY_D,
	KeyShift: evdev.KEY_LEFTSHIFT,
}

// UinputKeyboard is a virtual keyboard backed by a uinput device. Games see
// it as an ordinary keyboard.
type UinputKeyboard struct {
	dev *evdev.InputDevice
}

// NewUinputKeyboard creates the uinput device with the movement keys as its
// only capabilities. Requires access to /dev/uinput (root or the input
// group, typically).
func NewUinputKeyboard(name string) (*UinputKeyboard, error) {
	codes := make([]evdev.EvCode, 0, len(keyCodes))
	for _, c := range keyCodes {
		codes = append(codes, c)
	}

	dev, err := evdev.CreateDevice(name, evdev.InputID{
		BusType: 0x03, // BUS_USB
		Vendor:  0x1d50,
		Product: 0x0099,
		Version: 1,
	}, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: codes,
	})
	if err != nil {
		return nil, fmt.Errorf("create uinput device: %w", err)
	}

	return &UinputKeyboard{dev: dev}, nil
}

// Press holds a key down.
func (k *UinputKeyboard) Press(key Key) error {
	return k.send(key, 1)
}

// Release lets a key up.
func (k *UinputKeyboard) Release(key Key) error {
	return k.send(key, 0)
}

func (k *UinputKeyboard) send(key Key, value int32) error {
	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("unmapped key %q", key)
	}
	if err := k.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}); err != nil {
		return fmt.Errorf("write key event: %w", err)
	}
	if err := k.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.EvCode(evdev.SYN_REPORT), Value: 0}); err != nil {
		return fmt.Errorf("write syn report: %w", err)
	}
	return nil
}

// Close destroys the uinput device. The kernel releases any keys still held
// when the device goes away, but callers should ReleaseAll first for
// predictable ordering.
func (k *UinputKeyboard) Close() error {
	return k.dev.Close()
}
