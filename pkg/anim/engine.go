// Package anim implements the animation state machine behind the circular
// progress gauge.
//
// The engine runs in one of two mutually exclusive visual modes: an
// indeterminate spinning mode and a determinate value mode, with animated
// transitions between them. Commands (StartSpin, StopSpin, SetValue,
// SetValueAnimated) move the machine between states; a self-scheduled tick
// advances the interpolation and requests redraws.
//
// The engine is strictly single-owner: all commands and ticks must be
// applied from one goroutine. Hosts that accept commands from other
// goroutines are responsible for marshaling them onto the owning goroutine
// before applying them, typically via a bubbletea program's Send.
package anim

import (
	"fmt"
	"math"
	"time"
)

// Defaults used when the corresponding option is not supplied.
const (
	DefaultTickInterval      = 15 * time.Millisecond
	DefaultSpinSpeed         = 2.8
	DefaultSpinnerLength     = 42.0
	DefaultMaxValue          = 100.0
	DefaultAnimationDuration = 1200 * time.Millisecond
)

// Engine owns all animation state. It consumes commands and ticks,
// recomputes the renderable quantities (current value, spinner sweep angle,
// spinner arc length) and requests redraws through a caller-set callback.
type Engine struct {
	clock     Clock
	scheduler TickScheduler
	redraw    func()

	tickInterval time.Duration
	spinSpeed    float64 // degrees advanced per tick
	duration     time.Duration
	valueCurve   Curve
	lengthCurve  Curve

	maxValue  float64
	current   float64
	valueFrom float64
	valueTo   float64

	barLenOrig float64
	barLenCur  float64
	sweep      float64

	state      stateVariant
	cancelTick CancelFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. Defaults to the system clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithScheduler sets the tick scheduler. Defaults to a timer scheduler.
func WithScheduler(s TickScheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithTickInterval sets the delay between ticks.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// WithSpinSpeed sets the degrees the spinner advances per tick.
func WithSpinSpeed(degrees float64) Option {
	return func(e *Engine) {
		if degrees > 0 {
			e.spinSpeed = degrees
		}
	}
}

// WithSpinnerLength sets the resting arc length of the spinner in degrees.
func WithSpinnerLength(degrees float64) Option {
	return func(e *Engine) {
		if degrees >= 0 {
			e.barLenOrig = degrees
			e.barLenCur = degrees
		}
	}
}

// WithValueCurve sets the easing curve for value animations.
func WithValueCurve(c Curve) Option {
	return func(e *Engine) {
		if c != nil {
			e.valueCurve = c
		}
	}
}

// WithLengthCurve sets the easing curve for spinner length changes.
func WithLengthCurve(c Curve) Option {
	return func(e *Engine) {
		if c != nil {
			e.lengthCurve = c
		}
	}
}

// WithRedraw sets the callback invoked whenever the renderable state
// changed and the host should repaint.
func WithRedraw(fn func()) Option {
	return func(e *Engine) { e.redraw = fn }
}

// NewEngine creates an engine in the idle state.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:        SystemClock(),
		scheduler:    TimerScheduler(),
		tickInterval: DefaultTickInterval,
		spinSpeed:    DefaultSpinSpeed,
		duration:     DefaultAnimationDuration,
		valueCurve:   AccelerateDecelerate,
		lengthCurve:  Decelerate,
		maxValue:     DefaultMaxValue,
		barLenOrig:   DefaultSpinnerLength,
		barLenCur:    DefaultSpinnerLength,
		state:        idleState{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSpin puts the engine in spinning mode. Calling it while already
// spinning is a no-op.
func (e *Engine) StartSpin() {
	switch s := e.state.(type) {
	case idleState, *animatingState:
		e.enterSpinning()
	case *endSpinningState:
		// Resume: keep the running length ease so the arc grows back
		// from wherever the retraction left it.
		e.state = &spinningState{ease: s.ease}
		e.scheduleTick()
	case *hybridState:
		e.enterSpinning()
	}
}

// StopSpin begins retracting the spinner. Ignored unless the engine is
// spinning.
func (e *Engine) StopSpin() {
	if _, ok := e.state.(*spinningState); !ok {
		return
	}
	e.state = &endSpinningState{ease: e.newLengthEase(e.barLenCur)}
	e.scheduleTick()
}

// SetValue sets the value immediately, without animation. Any running
// animation is abandoned and the engine returns to idle.
func (e *Engine) SetValue(v float64) {
	e.valueFrom = v
	e.valueTo = v
	e.current = v
	e.state = idleState{}
	e.stopTick()
	e.requestRedraw()
}

// SetValueAnimated animates the value from one value to another over the
// given duration. In spinning mode this starts the hybrid hand-off: the
// spinner winds down while the value arc grows from zero to the target.
func (e *Engine) SetValueAnimated(from, to float64, duration time.Duration) error {
	if duration < 0 {
		return fmt.Errorf("invalid animation duration %v: must not be negative", duration)
	}
	e.duration = duration

	switch s := e.state.(type) {
	case idleState:
		e.valueFrom = from
		e.valueTo = to
		e.current = from
		e.state = &animatingState{start: e.clock.Now()}
		e.scheduleTick()
	case *spinningState, *endSpinningState:
		e.enterHybrid(to)
	case *hybridState:
		// Retarget only; the spinner wind-down keeps its ramp and the
		// value still starts from zero.
		e.valueTo = to
		e.scheduleTick()
	case *animatingState:
		// Restart from the current interpolated point, not the old
		// start value.
		e.valueFrom = e.current
		e.valueTo = to
		s.start = e.clock.Now()
	}
	return nil
}

// SetValueAnimatedTo animates from the current value to the target.
func (e *Engine) SetValueAnimatedTo(to float64, duration time.Duration) error {
	return e.SetValueAnimated(e.current, to, duration)
}

// SetMaxValue sets the maximum value used to map values to arc degrees.
func (e *Engine) SetMaxValue(max float64) error {
	if max <= 0 || math.IsInf(max, 0) || math.IsNaN(max) {
		return fmt.Errorf("invalid max value %v: must be a positive finite number", max)
	}
	e.maxValue = max
	return nil
}

// Tick advances the active animation by one step. It is normally invoked
// by the scheduler; hosts driving the engine manually (tests, simulations)
// may call it directly.
func (e *Engine) Tick() {
	e.cancelTick = nil
	out := e.state.tick(e, e.clock.Now())
	if out.reschedule {
		e.scheduleTick()
	}
	if out.redraw {
		e.requestRedraw()
	}
}

// Close cancels any pending tick. Hosts must call it from their teardown
// path; a tick already in flight after Close is a harmless no-op.
func (e *Engine) Close() {
	e.stopTick()
}

// CurrentValue returns the current determinate value. While a value
// animation is in flight it lies between the animation's start value and
// target; once settled it equals the target.
func (e *Engine) CurrentValue() float64 { return e.current }

// MaxValue returns the configured maximum value.
func (e *Engine) MaxValue() float64 { return e.maxValue }

// SpinnerSweepAngle returns the spinner's current rotation in degrees.
func (e *Engine) SpinnerSweepAngle() float64 { return e.sweep }

// SpinnerArcLength returns the spinner's current arc length in degrees.
func (e *Engine) SpinnerArcLength() float64 { return e.barLenCur }

// State returns the active state of the machine.
func (e *Engine) State() State { return e.state.kind() }

// IsDrawingValueArcWhileSpinning reports whether the hybrid hand-off has
// begun growing the value arc alongside the shrinking spinner.
func (e *Engine) IsDrawingValueArcWhileSpinning() bool {
	s, ok := e.state.(*hybridState)
	return ok && s.drawArc
}

// TickInterval returns the delay between ticks.
func (e *Engine) TickInterval() time.Duration { return e.tickInterval }

func (e *Engine) enterSpinning() {
	// Seed the arc from the current value so the spinner appears to take
	// over from the value arc.
	seed := 360 / e.maxValue * e.current
	e.barLenCur = seed
	e.sweep = seed
	e.state = &spinningState{ease: e.newLengthEase(e.barLenOrig)}
	e.scheduleTick()
}

func (e *Engine) enterHybrid(to float64) {
	e.valueFrom = 0 // the value arc grows from zero after spinning
	e.valueTo = to
	e.state = &hybridState{
		ease:       e.newLengthEase(e.barLenCur),
		valueStart: e.clock.Now(),
	}
	e.scheduleTick()
}

// newLengthEase opens an easing window sized so the spinner covers the
// given number of degrees at half speed.
func (e *Engine) newLengthEase(degrees float64) lengthEase {
	return lengthEase{
		start:    e.clock.Now(),
		duration: e.lengthChangeDuration(degrees),
		fromLen:  e.barLenCur,
	}
}

func (e *Engine) lengthChangeDuration(degrees float64) time.Duration {
	ticks := degrees / e.spinSpeed
	return time.Duration(2 * ticks * float64(e.tickInterval))
}

// stepValue interpolates the current value along the running value
// animation. It reports true when the animation has finished. A non-finite
// interpolation result counts as finished so an unrecoverable numeric
// state settles at the target instead of corrupting subsequent ticks.
func (e *Engine) stepValue(now time.Time, start time.Time) bool {
	t := 1.0
	if e.duration > 0 {
		t = float64(now.Sub(start)) / float64(e.duration)
		if t > 1 {
			t = 1
		}
	}
	ratio := e.valueCurve(t)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return true
	}
	e.current = e.valueFrom + (e.valueTo-e.valueFrom)*ratio
	return t >= 1
}

// scheduleTick arranges exactly one future tick, replacing any tick that
// is still pending.
func (e *Engine) scheduleTick() {
	e.stopTick()
	e.cancelTick = e.scheduler.ScheduleAfter(e.tickInterval, e.Tick)
}

func (e *Engine) stopTick() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
}

func (e *Engine) requestRedraw() {
	if e.redraw != nil {
		e.redraw()
	}
}
