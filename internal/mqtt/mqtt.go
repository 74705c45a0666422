// Package mqtt provides optional telemetry publishing with abstraction for
// testing. The controller is fully functional without a broker; telemetry
// exists so cadence can be logged and graphed alongside the rest of a home
// automation stack. Delivery is fire-and-forget and never stalls the
// polling loop.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/veraxus/deskcycle-controller/internal/logic"
)

// Topic is the MQTT topic for motion events.
const Topic = "deskcycle/controller/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "deskcycle/controller/system"

// MotionEvent is one motion-state transition.
type MotionEvent struct {
	Timestamp time.Time
	State     logic.MotionState
	Keys      []string // keys held after the transition
}

// SystemEvent represents a system lifecycle event.
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g. "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g. "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // whether the broker should retain the message
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a motion transition to the broker. A failure must not
	// crash or block the polling loop.
	Publish(event MotionEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Cycle MotionPayload `json:"cycle"`
}

// MotionPayload contains the motion event details.
type MotionPayload struct {
	Timestamp string   `json:"timestamp"`
	Pace      string   `json:"pace"`
	Direction string   `json:"direction"`
	Keys      []string `json:"keys"`
}

// FormatPayload creates the JSON payload for a motion event.
func FormatPayload(event MotionEvent) ([]byte, error) {
	keys := event.Keys
	if keys == nil {
		keys = []string{}
	}
	payload := Payload{
		Cycle: MotionPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Pace:      string(event.State.Pace),
			Direction: string(event.State.Direction),
			Keys:      keys,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(MotionEvent) error       { return nil }
func (NopPublisher) PublishSystem(SystemEvent) error { return nil }
func (NopPublisher) Close() error                    { return nil }
