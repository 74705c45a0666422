package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Pace          string     `json:"pace"`
	Direction     string     `json:"direction"`
	HeldKeys      []string   `json:"held_keys"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"counters"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker,omitempty"`
}

// CountsJSON is the JSON representation of the pipeline counters.
type CountsJSON struct {
	EdgesA    int `json:"edges_a"`
	EdgesB    int `json:"edges_b"`
	Intervals int `json:"intervals"`
	Stops     int `json:"stops"`
	Flips     int `json:"direction_flips"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Variant          string  `json:"variant"`
	PollMs           int64   `json:"poll_ms"`
	DebounceMs       int64   `json:"debounce_ms"`
	StopTimeoutMs    int64   `json:"stop_timeout_ms"`
	FastThresholdMs  int64   `json:"fast_threshold_ms"`
	HysteresisMargin float64 `json:"hysteresis_margin"`
	Broker           string  `json:"broker,omitempty"`
	HTTPAddr         string  `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	held := snap.HeldKeys
	if held == nil {
		held = []string{}
	}

	return StatusInner{
		Pace:          string(snap.State.Pace),
		Direction:     string(snap.State.Direction),
		HeldKeys:      held,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			EdgesA:    snap.Counts.EdgesA,
			EdgesB:    snap.Counts.EdgesB,
			Intervals: snap.Counts.Intervals,
			Stops:     snap.Counts.Stops,
			Flips:     snap.Counts.Flips,
		},
		Config: ConfigJSON{
			Variant:          snap.Config.Variant,
			PollMs:           snap.Config.PollMs,
			DebounceMs:       snap.Config.DebounceMs,
			StopTimeoutMs:    snap.Config.StopTimeoutMs,
			FastThresholdMs:  snap.Config.FastThresholdMs,
			HysteresisMargin: snap.Config.HysteresisMargin,
			Broker:           snap.Config.Broker,
			HTTPAddr:         snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
