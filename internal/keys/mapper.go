package keys

import "github.com/veraxus/deskcycle-controller/internal/logic"

// Mapper owns the set of currently held keys. It is the only component that
// talks to the Keyboard: every motion state maps to a target key set, and
// the mapper applies the difference, never issuing a redundant press or
// release. Releases happen before presses so conflicting keys (W and S) are
// never held together, even transiently.
type Mapper struct {
	kb   Keyboard
	held map[Key]bool
}

// NewMapper creates a mapper with no keys held.
func NewMapper(kb Keyboard) *Mapper {
	return &Mapper{
		kb:   kb,
		held: make(map[Key]bool),
	}
}

// targetFor is the fixed motion-to-keys table. Stopped and unknown
// direction both hold nothing.
func targetFor(state logic.MotionState) map[Key]bool {
	target := make(map[Key]bool, 2)
	if state.Pace == logic.PaceStopped || state.Direction == logic.DirectionUnknown {
		return target
	}
	switch state.Direction {
	case logic.DirectionForward:
		target[KeyW] = true
		if state.Pace == logic.PaceFast {
			target[KeyShift] = true
		}
	case logic.DirectionBackward:
		target[KeyS] = true
	}
	return target
}

// Apply reconciles the held set with the target for the given state.
// Held-key bookkeeping tracks intent regardless of delivery errors: a
// failed transition is reported but not retried here.
func (m *Mapper) Apply(state logic.MotionState) error {
	target := targetFor(state)

	var firstErr error
	for _, k := range All {
		if m.held[k] && !target[k] {
			if err := m.kb.Release(k); err != nil && firstErr == nil {
				firstErr = err
			}
			delete(m.held, k)
		}
	}
	for _, k := range All {
		if target[k] && !m.held[k] {
			if err := m.kb.Press(k); err != nil && firstErr == nil {
				firstErr = err
			}
			m.held[k] = true
		}
	}
	return firstErr
}

// ReleaseAll releases every held key. Called on shutdown so the game is not
// left with a key stuck down.
func (m *Mapper) ReleaseAll() error {
	return m.Apply(logic.MotionState{Pace: logic.PaceStopped, Direction: logic.DirectionUnknown})
}

// Held returns the currently held keys in stable order.
func (m *Mapper) Held() []Key {
	var held []Key
	for _, k := range All {
		if m.held[k] {
			held = append(held, k)
		}
	}
	return held
}

// HeldStrings returns the held keys as plain strings for telemetry and the
// status page.
func (m *Mapper) HeldStrings() []string {
	held := m.Held()
	out := make([]string, len(held))
	for i, k := range held {
		out[i] = string(k)
	}
	return out
}
