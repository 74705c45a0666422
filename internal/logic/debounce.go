package logic

import "time"

// sensorLevel tracks debounce state for a single sensor.
type sensorLevel struct {
	// Current stable (debounced) level
	stable bool
	// Time of the last accepted transition
	lastAccepted time.Time
	// Whether the first sample has established the stable level
	primed bool
}

// Debouncer filters raw sensor levels into clean edges. A transition is
// accepted only when the raw level differs from the stable level AND the
// debounce window has elapsed since the last accepted transition on that
// sensor. Everything else is discarded silently; contact bounce is
// expected, not exceptional.
type Debouncer struct {
	window time.Duration
	levels map[SensorID]*sensorLevel
}

// NewDebouncer creates a debouncer with the given accept window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		levels: make(map[SensorID]*sensorLevel),
	}
}

// Accept feeds one raw sample. It returns the accepted edge and true, or a
// zero Edge and false when the sample is absorbed.
func (d *Debouncer) Accept(sensor SensorID, raw bool, now time.Time) (Edge, bool) {
	lv := d.levels[sensor]
	if lv == nil {
		lv = &sensorLevel{}
		d.levels[sensor] = lv
	}

	// The first sample establishes the stable level without an edge.
	if !lv.primed {
		lv.primed = true
		lv.stable = raw
		lv.lastAccepted = now
		return Edge{}, false
	}

	if raw == lv.stable {
		return Edge{}, false
	}
	if now.Sub(lv.lastAccepted) < d.window {
		return Edge{}, false
	}

	lv.stable = raw
	lv.lastAccepted = now

	kind := Falling
	if raw {
		kind = Rising
	}
	return Edge{Sensor: sensor, Kind: kind, Time: now}, true
}

// Level returns the current stable level for a sensor. Sensors that have
// not been sampled yet read as low.
func (d *Debouncer) Level(sensor SensorID) bool {
	if lv := d.levels[sensor]; lv != nil {
		return lv.stable
	}
	return false
}
