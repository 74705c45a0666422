package mqtt

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/veraxus/deskcycle-controller/internal/logic"
)

func TestFormatPayload(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	event := MotionEvent{
		Timestamp: at,
		State:     logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionForward},
		Keys:      []string{"W", "SHIFT"},
	}

	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	var got Payload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Cycle.Timestamp != "2026-03-14T09:26:53Z" {
		t.Errorf("timestamp: got %q", got.Cycle.Timestamp)
	}
	if got.Cycle.Pace != "FAST" {
		t.Errorf("pace: got %q", got.Cycle.Pace)
	}
	if got.Cycle.Direction != "FORWARD" {
		t.Errorf("direction: got %q", got.Cycle.Direction)
	}
	if len(got.Cycle.Keys) != 2 || got.Cycle.Keys[0] != "W" || got.Cycle.Keys[1] != "SHIFT" {
		t.Errorf("keys: got %v", got.Cycle.Keys)
	}
}

func TestFormatPayloadNilKeys(t *testing.T) {
	event := MotionEvent{
		Timestamp: time.Now(),
		State:     logic.MotionState{Pace: logic.PaceStopped, Direction: logic.DirectionUnknown},
	}
	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	// Stopped publishes an empty array, not null.
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys, ok := raw["cycle"]["keys"].([]any)
	if !ok {
		t.Fatalf("keys is %T, want array", raw["cycle"]["keys"])
	}
	if len(keys) != 0 {
		t.Errorf("keys: got %v, want empty", keys)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	data, err := FormatSystemPayload(SystemEvent{Timestamp: at, Event: "SHUTDOWN", Reason: "SIGTERM"})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	var got SystemPayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", got.System.Event)
	}
	if got.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", got.System.Reason)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"system":{"event":"STARTUP"}}`)
	data, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: got %s", data)
	}
}

func TestRingBufferFIFO(t *testing.T) {
	r := newRingBuffer(4)
	for i := 0; i < 3; i++ {
		r.push(bufferedMsg{topic: Topic, payload: []byte{byte(i)}})
	}
	if r.len() != 3 {
		t.Fatalf("len: got %d, want 3", r.len())
	}

	msgs := r.drainAll()
	if len(msgs) != 3 {
		t.Fatalf("drained %d, want 3", len(msgs))
	}
	for i, m := range msgs {
		if m.payload[0] != byte(i) {
			t.Errorf("message %d out of order: got %d", i, m.payload[0])
		}
	}
	if r.len() != 0 {
		t.Errorf("len after drain: got %d", r.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	r := newRingBuffer(3)
	for i := 0; i < 5; i++ {
		r.push(bufferedMsg{payload: []byte{byte(i)}})
	}

	msgs := r.drainAll()
	if len(msgs) != 3 {
		t.Fatalf("drained %d, want 3", len(msgs))
	}
	want := []byte{2, 3, 4}
	for i, m := range msgs {
		if m.payload[0] != want[i] {
			t.Errorf("message %d: got %d, want %d", i, m.payload[0], want[i])
		}
	}
}

func TestRingBufferDrainEmpty(t *testing.T) {
	r := newRingBuffer(2)
	if msgs := r.drainAll(); msgs != nil {
		t.Errorf("expected nil from empty drain, got %v", msgs)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	event := MotionEvent{
		Timestamp: time.Now(),
		State:     logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionForward},
		Keys:      []string{"W"},
	}
	if err := f.Publish(event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(f.Events) != 1 || len(f.Payloads) != 1 {
		t.Fatalf("events=%d payloads=%d, want 1/1", len(f.Events), len(f.Payloads))
	}

	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Fatalf("publish system: %v", err)
	}
	if len(f.SystemEvents) != 1 {
		t.Fatalf("system events: got %d", len(f.SystemEvents))
	}

	f.Reset()
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("reset did not clear events")
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = fmt.Errorf("broker down")
	if err := f.Publish(MotionEvent{}); err == nil {
		t.Error("expected configured publish error")
	}
	if len(f.Events) != 0 {
		t.Error("failed publish should not be recorded")
	}
}
