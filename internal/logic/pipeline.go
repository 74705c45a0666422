package logic

import "time"

// Config holds the pipeline tuning constants. Validation happens in the
// config package before a Pipeline is built.
type Config struct {
	DebounceWindow        time.Duration
	StopTimeout           time.Duration
	FastThreshold         time.Duration
	HysteresisMargin      float64
	SimultaneityTolerance time.Duration
	DualSensor            bool
}

// Pipeline owns all mutable pipeline state: the debounce tables, the edge
// timer baseline, the decoder history, the classifier pace, and the activity
// counters. It is driven to completion inside a single poll iteration by its
// owner and is not safe for concurrent use.
type Pipeline struct {
	debouncer  *Debouncer
	timer      *EdgeTimer
	decoder    Decoder
	classifier *Classifier

	dual   bool
	state  MotionState
	counts Counters
}

// NewPipeline builds a pipeline for the configured variant.
func NewPipeline(cfg Config) *Pipeline {
	var dec Decoder
	if cfg.DualSensor {
		dec = NewDualDecoder(cfg.SimultaneityTolerance)
	} else {
		dec = NewSingleDecoder()
	}
	return &Pipeline{
		debouncer:  NewDebouncer(cfg.DebounceWindow),
		timer:      NewEdgeTimer(SensorA),
		decoder:    dec,
		classifier: NewClassifier(cfg.FastThreshold, cfg.HysteresisMargin, cfg.StopTimeout),
		dual:       cfg.DualSensor,
		state:      MotionState{Pace: PaceStopped, Direction: DirectionUnknown},
	}
}

// Process drives one poll iteration: debounce the raw levels, time rising
// edges, update direction, and classify. The returned MotionState is the
// single source of truth for the key mapper.
func (p *Pipeline) Process(sample Sample) MotionState {
	var (
		interval    time.Duration
		hasInterval bool
	)

	edges := make([]Edge, 0, 2)
	if e, ok := p.debouncer.Accept(SensorA, sample.A, sample.Time); ok {
		edges = append(edges, e)
	}
	if p.dual {
		if e, ok := p.debouncer.Accept(SensorB, sample.B, sample.Time); ok {
			edges = append(edges, e)
		}
	}

	dir := p.decoder.Direction()
	for _, e := range edges {
		switch e.Sensor {
		case SensorA:
			p.counts.EdgesA++
		case SensorB:
			p.counts.EdgesB++
		}
		if e.Kind == Rising {
			p.classifier.NoteRising(e.Time)
		}

		prev := dir
		dir = p.decoder.Observe(e)
		if prev != DirectionUnknown && dir != prev {
			p.counts.Flips++
		}

		if d, ok := p.timer.Observe(e); ok {
			interval, hasInterval = d, true
			p.counts.Intervals++
		}
	}

	next := p.classifier.Classify(interval, hasInterval, dir, sample.Time)

	if next.Stopped() && !p.state.Stopped() {
		// End of a ride: clear the timing baseline and decoder history so
		// the next ride starts fresh.
		p.timer.Reset()
		p.decoder.Reset()
		next.Direction = p.decoder.Direction()
		p.counts.Stops++
	}

	p.state = next
	return next
}

// State returns the motion state from the most recent Process call.
func (p *Pipeline) State() MotionState {
	return p.state
}

// Counters returns the activity counters since startup.
func (p *Pipeline) Counters() Counters {
	return p.counts
}
