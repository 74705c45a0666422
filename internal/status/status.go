// Package status provides a thread-safe status tracker for the controller
// daemon. The poll loop writes it every tick; the HTTP handlers read it.
package status

import (
	"sync"
	"time"

	"github.com/veraxus/deskcycle-controller/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	Variant          string
	PollMs           int64
	DebounceMs       int64
	StopTimeoutMs    int64
	FastThresholdMs  int64
	HysteresisMargin float64
	Broker           string
	HTTPAddr         string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	State         logic.MotionState
	HeldKeys      []string
	Counts        logic.Counters
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.MotionState{Pace: logic.PaceStopped, Direction: logic.DirectionUnknown},
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the motion state, held keys, and counters.
// Called from the poll loop on every tick.
func (t *Tracker) Update(state logic.MotionState, held []string, counts logic.Counters) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.HeldKeys = append([]string(nil), held...)
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
