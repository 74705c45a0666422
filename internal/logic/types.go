// Package logic contains the pure sensor-to-keys decision pipeline.
// This package has NO external dependencies (no GPIO, uinput, MQTT, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// SensorID identifies a physical wheel sensor.
type SensorID string

const (
	// SensorA is the reference sensor, and the only one in the
	// single-sensor variant.
	SensorA SensorID = "A"
	// SensorB is the second sensor in the dual variant.
	SensorB SensorID = "B"
)

// EdgeKind is the polarity of a debounced transition.
type EdgeKind string

const (
	Rising  EdgeKind = "RISING"
	Falling EdgeKind = "FALLING"
)

// Edge is a debounced transition on one sensor.
type Edge struct {
	Sensor SensorID
	Kind   EdgeKind
	Time   time.Time
}

// Direction is the inferred wheel rotation direction.
type Direction string

const (
	DirectionUnknown  Direction = "UNKNOWN"
	DirectionForward  Direction = "FORWARD"
	DirectionBackward Direction = "BACKWARD"
)

// Pace is the discrete cadence level.
type Pace string

const (
	PaceStopped Pace = "STOPPED"
	PaceSlow    Pace = "SLOW"
	PaceFast    Pace = "FAST"
)

// MotionState is the classifier output consumed by the key mapper.
// At most one MotionState is active at any instant.
type MotionState struct {
	Pace      Pace
	Direction Direction
}

// Stopped reports whether no motion is detected.
func (m MotionState) Stopped() bool {
	return m.Pace == PaceStopped
}

// Sample is one poll of the raw sensor levels.
// B is ignored in the single-sensor variant.
type Sample struct {
	A    bool
	B    bool
	Time time.Time
}

// Counters track pipeline activity since startup.
type Counters struct {
	EdgesA    int // accepted edges on sensor A
	EdgesB    int // accepted edges on sensor B
	Intervals int // interval samples emitted
	Stops     int // transitions into Stopped
	Flips     int // direction changes while moving
}
