package logic

import "time"

// Classifier maps interval history into a discrete pace. It applies
// hysteresis when leaving Fast so jitter around the threshold cannot make
// the sprint key chatter, and it declares a stop when no rising edge has
// been seen for the stop timeout; the sensor layer cannot signal the
// absence of edges itself.
type Classifier struct {
	fastThreshold time.Duration
	margin        float64
	stopTimeout   time.Duration

	pace       Pace
	lastRising time.Time
	seenRising bool
}

// NewClassifier creates a classifier. Constants are validated by the config
// package before they reach here.
func NewClassifier(fastThreshold time.Duration, margin float64, stopTimeout time.Duration) *Classifier {
	return &Classifier{
		fastThreshold: fastThreshold,
		margin:        margin,
		stopTimeout:   stopTimeout,
		pace:          PaceStopped,
	}
}

// NoteRising records sensor liveness. Any accepted rising edge on any
// sensor holds off the stop timeout; either switch proves the wheel is
// still turning.
func (c *Classifier) NoteRising(now time.Time) {
	c.lastRising = now
	c.seenRising = true
}

// Classify produces the motion state for this poll iteration. With no new
// interval and the stop timeout not yet expired the state is unchanged, so
// repeated calls are idempotent.
func (c *Classifier) Classify(interval time.Duration, hasInterval bool, dir Direction, now time.Time) MotionState {
	if !c.seenRising || now.Sub(c.lastRising) > c.stopTimeout {
		// Stopping is governed solely by the timeout, never by hysteresis.
		c.pace = PaceStopped
		return MotionState{Pace: PaceStopped, Direction: dir}
	}

	if hasInterval {
		switch {
		case c.pace == PaceFast:
			// Leaving Fast needs an interval clearly above the threshold.
			if interval > time.Duration(float64(c.fastThreshold)*c.margin) {
				c.pace = PaceSlow
			}
		case interval < c.fastThreshold:
			c.pace = PaceFast
		default:
			c.pace = PaceSlow
		}
	}

	// Between a stop and the first full interval the pace stays Stopped:
	// the first rising edge only establishes the timing baseline.
	return MotionState{Pace: c.pace, Direction: dir}
}

// Pace returns the current pace.
func (c *Classifier) Pace() Pace {
	return c.pace
}
