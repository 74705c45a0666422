// Package keys translates motion states into held virtual keys.
// The real implementation creates a uinput keyboard device.
// The fake implementation records transitions for testing.
package keys

// Key is a virtual key this controller can hold.
type Key string

const (
	KeyW     Key = "W"
	KeyA     Key = "A"
	KeyS     Key = "S"
	KeyD     Key = "D"
	KeyShift Key = "SHIFT"
)

// All lists every key the mapper may touch, in the order used for
// deterministic press and release sequencing.
var All = []Key{KeyW, KeyA, KeyS, KeyD, KeyShift}

// Keyboard delivers key transitions to the host. Delivery is best-effort;
// implementations must tolerate a redundant press or release even though
// the Mapper never issues one.
type Keyboard interface {
	// Press holds a key down.
	Press(key Key) error

	// Release lets a key up.
	Release(key Key) error

	// Close releases the underlying device.
	Close() error
}
