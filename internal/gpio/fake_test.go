package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderConsumesSamples(t *testing.T) {
	samples := []Sample{
		{A: false, B: false},
		{A: true, B: false},
		{A: true, B: true},
	}
	f := NewFakeReader(samples)

	for i, want := range samples {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got != want {
			t.Errorf("read %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestFakeReaderRepeatsLastSample(t *testing.T) {
	f := NewFakeReader([]Sample{{A: false}, {A: true}})

	f.Read()
	f.Read()
	for i := 0; i < 3; i++ {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !got.A {
			t.Errorf("repeat %d: expected last sample to repeat", i)
		}
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)
	if _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderReadError(t *testing.T) {
	f := NewFakeReader([]Sample{{}})
	f.ReadError = errors.New("boom")
	if _, err := f.Read(); err == nil {
		t.Error("expected configured read error")
	}
}

func TestFakeReaderLEDAndClose(t *testing.T) {
	f := NewFakeReader([]Sample{{}})

	if err := f.SetLED(true); err != nil {
		t.Fatalf("set led: %v", err)
	}
	if !f.LED {
		t.Error("LED state not recorded")
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !f.Closed {
		t.Error("Closed not recorded")
	}

	f.Reset()
	if f.Closed {
		t.Error("Reset did not clear Closed")
	}
}
