package keys

// Transition records one press or release, in order.
type Transition struct {
	Key     Key
	Pressed bool
}

// FakeKeyboard records transitions for test assertions.
type FakeKeyboard struct {
	// Transitions contains every press and release in delivery order.
	Transitions []Transition

	// Down mirrors which keys the host would currently see held.
	Down map[Key]bool

	// PressError, if set, will be returned by Press.
	PressError error

	// ReleaseError, if set, will be returned by Release.
	ReleaseError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeKeyboard creates a FakeKeyboard with no keys down.
func NewFakeKeyboard() *FakeKeyboard {
	return &FakeKeyboard{Down: make(map[Key]bool)}
}

// Press records a press.
func (f *FakeKeyboard) Press(key Key) error {
	if f.PressError != nil {
		return f.PressError
	}
	f.Transitions = append(f.Transitions, Transition{Key: key, Pressed: true})
	f.Down[key] = true
	return nil
}

// Release records a release.
func (f *FakeKeyboard) Release(key Key) error {
	if f.ReleaseError != nil {
		return f.ReleaseError
	}
	f.Transitions = append(f.Transitions, Transition{Key: key, Pressed: false})
	delete(f.Down, key)
	return nil
}

// Close marks the keyboard as closed.
func (f *FakeKeyboard) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded transitions.
func (f *FakeKeyboard) Reset() {
	f.Transitions = nil
	f.Down = make(map[Key]bool)
	f.Closed = false
	f.PressError = nil
	f.ReleaseError = nil
}
