package keys

import (
	"errors"
	"reflect"
	"testing"

	"github.com/veraxus/deskcycle-controller/internal/logic"
)

func TestMapperTargetTable(t *testing.T) {
	tests := []struct {
		name  string
		state logic.MotionState
		want  []Key
	}{
		{"stopped", logic.MotionState{Pace: logic.PaceStopped, Direction: logic.DirectionUnknown}, nil},
		{"stopped forward", logic.MotionState{Pace: logic.PaceStopped, Direction: logic.DirectionForward}, nil},
		{"slow forward", logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionForward}, []Key{KeyW}},
		{"fast forward", logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionForward}, []Key{KeyW, KeyShift}},
		{"slow backward", logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionBackward}, []Key{KeyS}},
		{"fast backward", logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionBackward}, []Key{KeyS}},
		{"slow unknown", logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionUnknown}, nil},
		{"fast unknown", logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionUnknown}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewFakeKeyboard()
			m := NewMapper(kb)
			if err := m.Apply(tt.state); err != nil {
				t.Fatalf("apply: %v", err)
			}
			if got := m.Held(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("held keys: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapperNoRedundantTransitions(t *testing.T) {
	kb := NewFakeKeyboard()
	m := NewMapper(kb)

	slow := logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionForward}
	for i := 0; i < 5; i++ {
		if err := m.Apply(slow); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	// Five identical states, exactly one press.
	if len(kb.Transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d: %v", len(kb.Transitions), kb.Transitions)
	}
	if kb.Transitions[0] != (Transition{Key: KeyW, Pressed: true}) {
		t.Errorf("unexpected transition %v", kb.Transitions[0])
	}
}

func TestMapperReleaseBeforePress(t *testing.T) {
	kb := NewFakeKeyboard()
	m := NewMapper(kb)

	m.Apply(logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionForward})
	kb.Transitions = nil

	// Forward to backward swaps W for S; the release must come first so W
	// and S are never down together.
	m.Apply(logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionBackward})

	want := []Transition{
		{Key: KeyW, Pressed: false},
		{Key: KeyS, Pressed: true},
	}
	if !reflect.DeepEqual(kb.Transitions, want) {
		t.Errorf("transitions: got %v, want %v", kb.Transitions, want)
	}
}

func TestMapperFastAddsShiftOnly(t *testing.T) {
	kb := NewFakeKeyboard()
	m := NewMapper(kb)

	m.Apply(logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionForward})
	kb.Transitions = nil

	m.Apply(logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionForward})

	// W stays held; only Shift is pressed.
	want := []Transition{{Key: KeyShift, Pressed: true}}
	if !reflect.DeepEqual(kb.Transitions, want) {
		t.Errorf("transitions: got %v, want %v", kb.Transitions, want)
	}
}

func TestMapperStopReleasesAllOnce(t *testing.T) {
	kb := NewFakeKeyboard()
	m := NewMapper(kb)

	m.Apply(logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionForward})
	kb.Transitions = nil

	stopped := logic.MotionState{Pace: logic.PaceStopped, Direction: logic.DirectionUnknown}
	m.Apply(stopped)
	m.Apply(stopped)

	want := []Transition{
		{Key: KeyW, Pressed: false},
		{Key: KeyShift, Pressed: false},
	}
	if !reflect.DeepEqual(kb.Transitions, want) {
		t.Errorf("transitions: got %v, want %v", kb.Transitions, want)
	}
	if len(kb.Down) != 0 {
		t.Errorf("keys still down: %v", kb.Down)
	}
}

func TestMapperReleaseAll(t *testing.T) {
	kb := NewFakeKeyboard()
	m := NewMapper(kb)

	m.Apply(logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionForward})
	if err := m.ReleaseAll(); err != nil {
		t.Fatalf("release all: %v", err)
	}
	if got := m.Held(); len(got) != 0 {
		t.Errorf("held after ReleaseAll: %v", got)
	}
}

func TestMapperTracksIntentOnDeliveryError(t *testing.T) {
	kb := NewFakeKeyboard()
	kb.PressError = errors.New("device gone")
	m := NewMapper(kb)

	err := m.Apply(logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionForward})
	if err == nil {
		t.Fatal("expected delivery error")
	}

	// The failed press is not retried on the next identical state.
	kb.PressError = nil
	if err := m.Apply(logic.MotionState{Pace: logic.PaceSlow, Direction: logic.DirectionForward}); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(kb.Transitions) != 0 {
		t.Errorf("expected no retry, got %v", kb.Transitions)
	}
}

func TestMapperHeldStrings(t *testing.T) {
	kb := NewFakeKeyboard()
	m := NewMapper(kb)

	m.Apply(logic.MotionState{Pace: logic.PaceFast, Direction: logic.DirectionForward})
	want := []string{"W", "SHIFT"}
	if got := m.HeldStrings(); !reflect.DeepEqual(got, want) {
		t.Errorf("held strings: got %v, want %v", got, want)
	}
}
