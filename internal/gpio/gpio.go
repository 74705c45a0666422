// Package gpio provides sensor input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Sample is one raw reading of the sensor levels. A high level means the
// switch is closed (a magnet is over the sensor). B is always false in the
// single-sensor variant.
type Sample struct {
	A bool
	B bool
}

// Reader reads the instantaneous electrical state of the sensor pins.
type Reader interface {
	// Read returns the raw, undebounced sensor levels.
	Read() (Sample, error)

	// Close releases GPIO resources.
	Close() error
}

// Indicator drives the activity LED. Implemented by readers that have an
// LED line configured.
type Indicator interface {
	SetLED(on bool) error
}

// Default pin assignment (BCM numbering), matching the reference wiring:
// sensor A on GP16, sensor B on GP18.
const (
	DefaultPinA = 16
	DefaultPinB = 18
)
