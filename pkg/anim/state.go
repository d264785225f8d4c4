package anim

import (
	"fmt"
	"time"
)

// State identifies the active mode of the animation state machine. Exactly
// one state is active at a time.
type State int

const (
	// StateIdle means no animation is running.
	StateIdle State = iota
	// StateSpinning means the indeterminate spinner is sweeping and its
	// arc length is converging to the resting length.
	StateSpinning
	// StateEndSpinning means the spinner arc is easing down to zero
	// before the machine returns to idle.
	StateEndSpinning
	// StateEndSpinningStartAnimating is the hybrid hand-off: the spinner
	// keeps sweeping and shrinking until its rotation completes a full
	// revolution, then a value arc grows while the spinner finishes
	// shrinking.
	StateEndSpinningStartAnimating
	// StateAnimating means the determinate value is interpolating from
	// its start value to its target.
	StateAnimating
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpinning:
		return "spinning"
	case StateEndSpinning:
		return "end-spinning"
	case StateEndSpinningStartAnimating:
		return "end-spinning-start-animating"
	case StateAnimating:
		return "animating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// tickOutcome is what a state's tick handler reports back to the engine.
// The reschedule decision is computed inside the handler, before the engine
// performs any fallible follow-up work.
type tickOutcome struct {
	redraw     bool
	reschedule bool
}

// stateVariant holds the per-state ephemeral fields and the state's tick
// handler. Each variant is created at transition entry and discarded at
// transition exit, so a state only ever carries the fields it needs.
type stateVariant interface {
	kind() State
	tick(e *Engine, now time.Time) tickOutcome
}

// lengthEase is the transition-local easing window for spinner arc length
// changes.
type lengthEase struct {
	start    time.Time
	duration time.Duration
	fromLen  float64
}

// ratio returns the eased progress of the window at the given instant,
// clamped to [0, 1]. A zero or negative duration counts as finished, which
// keeps the division finite.
func (l lengthEase) ratio(now time.Time, curve Curve) float64 {
	if l.duration <= 0 {
		return curve(1)
	}
	t := float64(now.Sub(l.start)) / float64(l.duration)
	if t > 1 {
		t = 1
	}
	return curve(t)
}

type idleState struct{}

func (idleState) kind() State { return StateIdle }

func (idleState) tick(e *Engine, now time.Time) tickOutcome {
	// Stale tick for an abandoned state: nothing to do, do not reschedule.
	return tickOutcome{}
}

type spinningState struct {
	ease lengthEase
}

func (*spinningState) kind() State { return StateSpinning }

func (s *spinningState) tick(e *Engine, now time.Time) tickOutcome {
	ratio := s.ease.ratio(now, e.lengthCurve)

	if delta := e.barLenCur - e.barLenOrig; delta < 1 && delta > -1 {
		// Length is within bounds, snap to the resting length.
		e.barLenCur = e.barLenOrig
	} else if e.barLenCur < e.barLenOrig {
		// Too short, grow.
		e.barLenCur = s.ease.fromLen + (e.barLenOrig-s.ease.fromLen)*ratio
	} else {
		// Too long, shrink.
		e.barLenCur = s.ease.fromLen - (s.ease.fromLen-e.barLenOrig)*ratio
	}

	e.sweep += e.spinSpeed
	if e.sweep > 360 {
		e.sweep = 0
	}
	return tickOutcome{redraw: true, reschedule: true}
}

type endSpinningState struct {
	ease lengthEase
}

func (*endSpinningState) kind() State { return StateEndSpinning }

func (s *endSpinningState) tick(e *Engine, now time.Time) tickOutcome {
	ratio := s.ease.ratio(now, e.lengthCurve)
	e.barLenCur = s.ease.fromLen * (1 - ratio)
	e.sweep += e.spinSpeed

	if e.barLenCur < 0.01 {
		// Spinner fully retracted, this cycle is finished.
		e.state = idleState{}
		return tickOutcome{redraw: true}
	}
	return tickOutcome{redraw: true, reschedule: true}
}

type hybridState struct {
	ease       lengthEase
	valueStart time.Time
	drawArc    bool
}

func (*hybridState) kind() State { return StateEndSpinningStartAnimating }

func (s *hybridState) tick(e *Engine, now time.Time) tickOutcome {
	// Shrink the spinner toward its resting length until the value arc
	// takes over.
	if e.barLenCur > e.barLenOrig && !s.drawArc {
		ratio := s.ease.ratio(now, e.lengthCurve)
		e.barLenCur = s.ease.fromLen * (1 - ratio)
	}

	e.sweep += e.spinSpeed

	// Once the rotation completes a full revolution, start animating the
	// value and re-arm the length ease to retract the spinner completely.
	if e.sweep > 360 && !s.drawArc {
		s.drawArc = true
		s.valueStart = now
		s.ease = lengthEase{
			start:    now,
			duration: e.lengthChangeDuration(e.barLenCur),
			fromLen:  e.barLenCur,
		}
	}

	if s.drawArc {
		e.sweep = 360
		e.stepValue(now, s.valueStart)
		ratio := s.ease.ratio(now, e.lengthCurve)
		e.barLenCur = s.ease.fromLen * (1 - ratio)
	}

	if e.barLenCur < 0.1 {
		// Spinner no longer visible, hand off to the value animation.
		e.barLenCur = e.barLenOrig
		e.state = &animatingState{start: s.valueStart}
	}
	return tickOutcome{redraw: true, reschedule: true}
}

type animatingState struct {
	start time.Time
}

func (*animatingState) kind() State { return StateAnimating }

func (s *animatingState) tick(e *Engine, now time.Time) tickOutcome {
	if e.stepValue(now, s.start) {
		e.current = e.valueTo
		e.state = idleState{}
		return tickOutcome{redraw: true}
	}
	return tickOutcome{redraw: true, reschedule: true}
}
