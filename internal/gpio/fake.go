package gpio

import "errors"

// FakeReader is a test double that returns scripted sensor samples.
type FakeReader struct {
	// Samples contains scripted raw levels. Each call to Read consumes the
	// next sample; the last sample repeats once exhausted.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// LED records the most recent SetLED value.
	LED bool

	// Closed tracks if Close was called.
	Closed bool

	// ReadError, if set, will be returned by Read.
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeReader) Read() (Sample, error) {
	if f.ReadError != nil {
		return Sample{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Sample{}, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

// SetLED records the LED state.
func (f *FakeReader) SetLED(on bool) error {
	f.LED = on
	return nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}
