package logic

import "time"

// EdgeTimer measures the elapsed time between consecutive rising edges on
// the reference sensor. The interval between revolutions (or magnet passes)
// is the raw cadence signal.
type EdgeTimer struct {
	reference  SensorID
	lastRising time.Time
}

// NewEdgeTimer creates a timer keyed to the given reference sensor.
func NewEdgeTimer(reference SensorID) *EdgeTimer {
	return &EdgeTimer{reference: reference}
}

// Observe feeds one edge. On a rising edge of the reference sensor it
// returns the delta since the previous one; the first rising edge only
// establishes the baseline. Falling edges and other sensors never produce
// an interval.
func (t *EdgeTimer) Observe(edge Edge) (time.Duration, bool) {
	if edge.Sensor != t.reference || edge.Kind != Rising {
		return 0, false
	}
	if t.lastRising.IsZero() {
		t.lastRising = edge.Time
		return 0, false
	}
	interval := edge.Time.Sub(t.lastRising)
	t.lastRising = edge.Time
	return interval, true
}

// Reset clears the baseline so the next rising edge starts a new
// measurement. Called after a stop.
func (t *EdgeTimer) Reset() {
	t.lastRising = time.Time{}
}
