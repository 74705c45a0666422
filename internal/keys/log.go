package keys

import "log"

// LogKeyboard logs transitions instead of delivering them, for dry runs on
// a bench without /dev/uinput.
type LogKeyboard struct{}

// Press logs the press.
func (LogKeyboard) Press(key Key) error {
	log.Printf("dry-run: press %s", key)
	return nil
}

// Release logs the release.
func (LogKeyboard) Release(key Key) error {
	log.Printf("dry-run: release %s", key)
	return nil
}

// Close is a no-op.
func (LogKeyboard) Close() error {
	return nil
}
