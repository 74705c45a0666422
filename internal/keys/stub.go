//go:build !linux

package keys

import "errors"

// UinputKeyboard is not available on non-Linux platforms.
type UinputKeyboard struct{}

// NewUinputKeyboard returns an error on non-Linux platforms.
func NewUinputKeyboard(name string) (*UinputKeyboard, error) {
	return nil, errors.New("keys: uinput not supported on this platform (requires Linux)")
}

// Press is not implemented on non-Linux platforms.
func (k *UinputKeyboard) Press(Key) error {
	return errors.New("keys: not supported")
}

// Release is not implemented on non-Linux platforms.
func (k *UinputKeyboard) Release(Key) error {
	return errors.New("keys: not supported")
}

// Close is not implemented on non-Linux platforms.
func (k *UinputKeyboard) Close() error {
	return nil
}
