package logic

import "time"

// Decoder infers rotation direction from debounced edges. Implementations
// are owned by the pipeline and are not safe for concurrent use.
type Decoder interface {
	// Observe feeds one edge and returns the updated direction.
	Observe(edge Edge) Direction

	// Direction returns the current direction without new input.
	Direction() Direction

	// Reset clears history after a stop so the next ride starts fresh.
	Reset()
}

// SingleDecoder is the single-sensor strategy. One switch closing per
// revolution carries no phase information, so any motion reads as forward.
type SingleDecoder struct{}

// NewSingleDecoder creates the forward-only decoder.
func NewSingleDecoder() *SingleDecoder {
	return &SingleDecoder{}
}

func (*SingleDecoder) Observe(Edge) Direction { return DirectionForward }
func (*SingleDecoder) Direction() Direction   { return DirectionForward }
func (*SingleDecoder) Reset()                 {}

// DualDecoder is the two-sensor strategy. The sensors sit a few millimeters
// apart, so each magnet pass activates one shortly before the other and the
// identity order of consecutive rising edges encodes direction. Keying off
// sensor identity rather than rotation angle keeps the decoder agnostic to
// the number of magnets on the wheel.
//
// A rising edge on A whose predecessor was on B means forward rotation; the
// reverse order means backward. Same-sensor pairs and pairs whose timestamps
// are indistinguishable within the simultaneity tolerance hold the previous
// direction rather than resetting it, so a noisy magnet pass cannot flicker
// an established direction back to Unknown. Only an ambiguous first pair,
// with no direction established yet, reads Unknown.
type DualDecoder struct {
	tolerance time.Duration
	last      Edge
	hasLast   bool
	dir       Direction
}

// NewDualDecoder creates a dual-sensor decoder with the given simultaneity
// tolerance.
func NewDualDecoder(tolerance time.Duration) *DualDecoder {
	return &DualDecoder{
		tolerance: tolerance,
		dir:       DirectionUnknown,
	}
}

// Observe feeds one edge and returns the updated direction.
func (d *DualDecoder) Observe(edge Edge) Direction {
	if edge.Kind != Rising {
		return d.dir
	}
	if !d.hasLast {
		d.last = edge
		d.hasLast = true
		return d.dir
	}

	prev := d.last
	d.last = edge

	if prev.Sensor == edge.Sensor {
		// Same sensor twice: half a pair was missed. Hold direction.
		return d.dir
	}
	if edge.Time.Sub(prev.Time) <= d.tolerance {
		// Indistinguishable ordering. Hold direction.
		return d.dir
	}

	if edge.Sensor == SensorA {
		d.dir = DirectionForward
	} else {
		d.dir = DirectionBackward
	}
	return d.dir
}

// Direction returns the current direction.
func (d *DualDecoder) Direction() Direction {
	return d.dir
}

// Reset clears edge history and the direction.
func (d *DualDecoder) Reset() {
	d.last = Edge{}
	d.hasLast = false
	d.dir = DirectionUnknown
}
