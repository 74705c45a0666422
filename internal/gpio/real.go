//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the sensors from actual hardware using the Linux GPIO
// character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	lineA *gpiocdev.Line
	lineB *gpiocdev.Line // nil in the single-sensor variant
	led   *gpiocdev.Line // nil when no LED is configured
}

// NewRealReader requests the sensor lines as inputs with pull-down to match
// the reed-switch wiring (a closing switch pulls the pin high). Pass
// pinB < 0 for the single-sensor variant and pinLED < 0 to skip the
// activity LED.
func NewRealReader(chipName string, pinA, pinB, pinLED int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	lineA, err := chip.RequestLine(pinA, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request sensor A pin %d: %w", pinA, err)
	}

	var lineB *gpiocdev.Line
	if pinB >= 0 {
		lineB, err = chip.RequestLine(pinB, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			lineA.Close()
			chip.Close()
			return nil, fmt.Errorf("request sensor B pin %d: %w", pinB, err)
		}
	}

	var led *gpiocdev.Line
	if pinLED >= 0 {
		led, err = chip.RequestLine(pinLED, gpiocdev.AsOutput(0))
		if err != nil {
			if lineB != nil {
				lineB.Close()
			}
			lineA.Close()
			chip.Close()
			return nil, fmt.Errorf("request LED pin %d: %w", pinLED, err)
		}
	}

	return &RealReader{
		chip:  chip,
		lineA: lineA,
		lineB: lineB,
		led:   led,
	}, nil
}

// Read returns the raw sensor levels.
func (r *RealReader) Read() (Sample, error) {
	var s Sample

	a, err := r.lineA.Value()
	if err != nil {
		return Sample{}, fmt.Errorf("read sensor A: %w", err)
	}
	s.A = a != 0

	if r.lineB != nil {
		b, err := r.lineB.Value()
		if err != nil {
			return Sample{}, fmt.Errorf("read sensor B: %w", err)
		}
		s.B = b != 0
	}

	return s, nil
}

// SetLED drives the activity LED. A no-op when no LED line is configured.
func (r *RealReader) SetLED(on bool) error {
	if r.led == nil {
		return nil
	}
	v := 0
	if on {
		v = 1
	}
	return r.led.SetValue(v)
}

// Close releases GPIO resources. The LED is switched off first so it does
// not stay lit after exit; the inputs already match boot defaults (input
// with pull-down) and are left as-is.
func (r *RealReader) Close() error {
	var errs []error

	if r.led != nil {
		if err := r.led.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED: %w", err))
		}
		if err := r.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED: %w", err))
		}
	}
	if r.lineB != nil {
		if err := r.lineB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sensor B: %w", err))
		}
	}
	if r.lineA != nil {
		if err := r.lineA.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sensor A: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
