package anim

import (
	"testing"
	"time"
)

// manualClock is a Clock whose time only moves when the test advances it.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1000, 0)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// manualScheduler captures scheduled ticks so tests can fire them
// deterministically.
type manualScheduler struct {
	pending   *scheduledTick
	scheduled int
	canceled  int
}

type scheduledTick struct {
	fn func()
}

func (s *manualScheduler) ScheduleAfter(delay time.Duration, fn func()) CancelFunc {
	st := &scheduledTick{fn: fn}
	s.pending = st
	s.scheduled++
	return func() {
		if s.pending == st {
			s.pending = nil
			s.canceled++
		}
		st.fn = nil
	}
}

func (s *manualScheduler) fire() {
	st := s.pending
	s.pending = nil
	if st != nil && st.fn != nil {
		st.fn()
	}
}

func (s *manualScheduler) active() int {
	if s.pending != nil {
		return 1
	}
	return 0
}

func newTestEngine() (*Engine, *manualClock, *manualScheduler) {
	clk := newManualClock()
	sch := &manualScheduler{}
	e := NewEngine(WithClock(clk), WithScheduler(sch))
	return e, clk, sch
}

// step advances the clock by one tick interval and fires the pending tick.
func step(e *Engine, clk *manualClock, sch *manualScheduler) {
	clk.advance(e.TickInterval())
	sch.fire()
}

func TestSetValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0},
		{"mid", 50},
		{"max", 100},
		{"fractional", 33.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, sch := newTestEngine()
			e.SetValue(tt.value)

			if e.State() != StateIdle {
				t.Errorf("expected idle state, got %s", e.State())
			}
			if e.CurrentValue() != tt.value {
				t.Errorf("expected value %v exactly, got %v", tt.value, e.CurrentValue())
			}
			if sch.active() != 0 {
				t.Errorf("expected no pending tick, got %d", sch.active())
			}
		})
	}
}

func TestSetValueAbortsSpinning(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.StartSpin()
	for i := 0; i < 10; i++ {
		step(e, clk, sch)
	}

	e.SetValue(75)

	if e.State() != StateIdle {
		t.Errorf("expected idle state, got %s", e.State())
	}
	if e.CurrentValue() != 75 {
		t.Errorf("expected value 75, got %v", e.CurrentValue())
	}
	if sch.active() != 0 {
		t.Errorf("expected pending tick to be canceled, got %d active", sch.active())
	}
}

func TestSetValueAnimated(t *testing.T) {
	e, clk, sch := newTestEngine()

	if err := e.SetValueAnimated(10, 80, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.State() != StateAnimating {
		t.Fatalf("expected animating state, got %s", e.State())
	}
	if e.CurrentValue() != 10 {
		t.Errorf("expected current value 10 at start, got %v", e.CurrentValue())
	}

	for i := 0; i < 1000 && sch.active() > 0; i++ {
		step(e, clk, sch)
		v := e.CurrentValue()
		if v < 10 || v > 80 {
			t.Fatalf("value %v escaped [10, 80] during animation", v)
		}
	}

	if e.State() != StateIdle {
		t.Errorf("expected idle after animation, got %s", e.State())
	}
	if e.CurrentValue() != 80 {
		t.Errorf("expected final value 80, got %v", e.CurrentValue())
	}
	if sch.active() != 0 {
		t.Errorf("expected no pending tick after settling, got %d", sch.active())
	}
}

func TestSetValueAnimatedZeroDuration(t *testing.T) {
	e, clk, sch := newTestEngine()

	if err := e.SetValueAnimated(0, 40, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	step(e, clk, sch)

	if e.State() != StateIdle {
		t.Errorf("expected idle after zero-duration animation, got %s", e.State())
	}
	if e.CurrentValue() != 40 {
		t.Errorf("expected value 40, got %v", e.CurrentValue())
	}
}

func TestSetValueAnimatedRetarget(t *testing.T) {
	e, clk, sch := newTestEngine()

	if err := e.SetValueAnimated(0, 100, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		step(e, clk, sch)
	}
	mid := e.CurrentValue()
	if mid <= 0 || mid >= 100 {
		t.Fatalf("expected mid-flight value in (0, 100), got %v", mid)
	}

	// Restart toward a new target from the interpolated point.
	if err := e.SetValueAnimated(999, 20, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State() != StateAnimating {
		t.Fatalf("expected animating state, got %s", e.State())
	}
	if e.CurrentValue() != mid {
		t.Errorf("expected restart from %v, got %v", mid, e.CurrentValue())
	}

	for i := 0; i < 1000 && sch.active() > 0; i++ {
		step(e, clk, sch)
	}
	if e.CurrentValue() != 20 {
		t.Errorf("expected final value 20, got %v", e.CurrentValue())
	}
}

func TestStartSpinIdempotent(t *testing.T) {
	e, _, sch := newTestEngine()

	e.StartSpin()
	e.StartSpin()

	if e.State() != StateSpinning {
		t.Errorf("expected spinning state, got %s", e.State())
	}
	if sch.active() != 1 {
		t.Errorf("expected exactly one pending tick, got %d", sch.active())
	}
}

func TestSpinnerLengthConverges(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.SetValue(0) // seed length and sweep from zero
	e.StartSpin()

	for i := 0; i < 100; i++ {
		step(e, clk, sch)
	}

	if got := e.SpinnerArcLength(); got != DefaultSpinnerLength {
		t.Errorf("expected arc length to settle at %v, got %v", DefaultSpinnerLength, got)
	}
	if e.State() != StateSpinning {
		t.Errorf("expected still spinning, got %s", e.State())
	}
}

func TestSweepAngleWraps(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.SetValue(0)
	e.StartSpin()

	for i := 0; i < 500; i++ {
		step(e, clk, sch)
		if a := e.SpinnerSweepAngle(); a < 0 || a > 360 {
			t.Fatalf("sweep angle %v escaped [0, 360]", a)
		}
	}
}

func TestStopSpinWindsDown(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.SetValue(0)
	e.StartSpin()
	for i := 0; i < 50; i++ {
		step(e, clk, sch)
	}

	e.StopSpin()
	if e.State() != StateEndSpinning {
		t.Fatalf("expected end-spinning state, got %s", e.State())
	}

	prev := e.SpinnerArcLength()
	for i := 0; i < 1000 && e.State() == StateEndSpinning; i++ {
		step(e, clk, sch)
		cur := e.SpinnerArcLength()
		if cur > prev {
			t.Fatalf("arc length grew from %v to %v while winding down", prev, cur)
		}
		prev = cur
	}

	if e.State() != StateIdle {
		t.Errorf("expected idle after wind-down, got %s", e.State())
	}
	if prev >= 0.01 {
		t.Errorf("expected arc length below 0.01, got %v", prev)
	}
	if sch.active() != 0 {
		t.Errorf("expected no pending tick after wind-down, got %d", sch.active())
	}
}

func TestStopSpinIgnoredWhenIdle(t *testing.T) {
	e, _, sch := newTestEngine()
	e.StopSpin()

	if e.State() != StateIdle {
		t.Errorf("expected idle state, got %s", e.State())
	}
	if sch.scheduled != 0 {
		t.Errorf("expected no tick scheduled, got %d", sch.scheduled)
	}
}

func TestEndSpinningResume(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.SetValue(0)
	e.StartSpin()
	for i := 0; i < 50; i++ {
		step(e, clk, sch)
	}
	e.StopSpin()
	for i := 0; i < 5; i++ {
		step(e, clk, sch)
	}

	e.StartSpin()
	if e.State() != StateSpinning {
		t.Fatalf("expected spinning after resume, got %s", e.State())
	}

	for i := 0; i < 200; i++ {
		step(e, clk, sch)
	}
	if got := e.SpinnerArcLength(); got != DefaultSpinnerLength {
		t.Errorf("expected arc length to recover to %v, got %v", DefaultSpinnerLength, got)
	}
}

func TestHybridHandOff(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.SetValue(0)
	e.StartSpin()
	for i := 0; i < 30; i++ {
		step(e, clk, sch)
	}

	if err := e.SetValueAnimated(0, 50, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State() != StateEndSpinningStartAnimating {
		t.Fatalf("expected hybrid state, got %s", e.State())
	}

	// Phase one: the sweep must complete a full revolution exactly once
	// before the value arc appears.
	flips := 0
	for i := 0; i < 5000 && !e.IsDrawingValueArcWhileSpinning(); i++ {
		before := e.SpinnerSweepAngle()
		step(e, clk, sch)
		if e.IsDrawingValueArcWhileSpinning() {
			flips++
			if before+e.spinSpeed <= 360 {
				t.Errorf("value arc appeared before the sweep completed a revolution (sweep %v)", before)
			}
		}
	}
	if flips != 1 {
		t.Fatalf("expected the value arc to appear exactly once, flips=%d", flips)
	}

	// Phase two: sweep pinned at 360, arc length strictly decreasing
	// until the spinner disappears.
	prev := e.SpinnerArcLength()
	for i := 0; i < 5000 && e.State() == StateEndSpinningStartAnimating; i++ {
		step(e, clk, sch)
		if e.State() != StateEndSpinningStartAnimating {
			break
		}
		if a := e.SpinnerSweepAngle(); a != 360 {
			t.Fatalf("expected sweep pinned at 360, got %v", a)
		}
		cur := e.SpinnerArcLength()
		if cur >= prev {
			t.Fatalf("arc length did not strictly decrease: %v -> %v", prev, cur)
		}
		prev = cur
	}

	if e.State() != StateAnimating {
		t.Fatalf("expected animating after hand-off, got %s", e.State())
	}
	if got := e.SpinnerArcLength(); got != DefaultSpinnerLength {
		t.Errorf("expected arc length reset to %v, got %v", DefaultSpinnerLength, got)
	}

	for i := 0; i < 5000 && sch.active() > 0; i++ {
		step(e, clk, sch)
	}
	if e.CurrentValue() != 50 {
		t.Errorf("expected final value 50, got %v", e.CurrentValue())
	}
	if e.State() != StateIdle {
		t.Errorf("expected idle after animation, got %s", e.State())
	}
}

func TestHybridRetarget(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.SetValue(0)
	e.StartSpin()
	for i := 0; i < 10; i++ {
		step(e, clk, sch)
	}
	if err := e.SetValueAnimated(0, 50, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Retargeting while winding down updates only the target; the value
	// still ramps from zero.
	if err := e.SetValueAnimated(999, 70, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State() != StateEndSpinningStartAnimating {
		t.Fatalf("expected hybrid state after retarget, got %s", e.State())
	}
	if e.valueFrom != 0 {
		t.Errorf("expected value ramp start to stay 0, got %v", e.valueFrom)
	}
	if e.valueTo != 70 {
		t.Errorf("expected target 70, got %v", e.valueTo)
	}

	for i := 0; i < 10000 && sch.active() > 0; i++ {
		step(e, clk, sch)
	}
	if e.CurrentValue() != 70 {
		t.Errorf("expected final value 70, got %v", e.CurrentValue())
	}
}

func TestHybridAbortToSpin(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.SetValue(0)
	e.StartSpin()
	for i := 0; i < 10; i++ {
		step(e, clk, sch)
	}
	if err := e.SetValueAnimated(0, 50, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.StartSpin()
	if e.State() != StateSpinning {
		t.Errorf("expected spinning after abort, got %s", e.State())
	}
	if e.IsDrawingValueArcWhileSpinning() {
		t.Error("expected value arc flag cleared after abort")
	}
	if sch.active() != 1 {
		t.Errorf("expected exactly one pending tick, got %d", sch.active())
	}
}

func TestAnimatingToSpin(t *testing.T) {
	e, clk, sch := newTestEngine()
	if err := e.SetValueAnimated(0, 80, 300*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		step(e, clk, sch)
	}

	e.StartSpin()
	if e.State() != StateSpinning {
		t.Errorf("expected spinning, got %s", e.State())
	}
}

func TestInvalidCommands(t *testing.T) {
	t.Run("negative duration", func(t *testing.T) {
		e, _, _ := newTestEngine()
		err := e.SetValueAnimated(0, 10, -time.Second)
		if err == nil {
			t.Fatal("expected error for negative duration")
		}
		if e.State() != StateIdle {
			t.Errorf("expected state unchanged, got %s", e.State())
		}
	})

	t.Run("non-positive max value", func(t *testing.T) {
		for _, max := range []float64{0, -1} {
			e, _, _ := newTestEngine()
			if err := e.SetMaxValue(max); err == nil {
				t.Errorf("expected error for max value %v", max)
			}
			if e.MaxValue() != DefaultMaxValue {
				t.Errorf("expected max value unchanged, got %v", e.MaxValue())
			}
		}
	})
}

func TestStaleTickIsNoOp(t *testing.T) {
	e, clk, sch := newTestEngine()
	e.StartSpin()
	fn := sch.pending.fn // hold the queued tick as if already in flight
	e.SetValue(10)

	clk.advance(e.TickInterval())
	fn() // stale tick for the abandoned spinning state

	if e.State() != StateIdle {
		t.Errorf("expected idle, got %s", e.State())
	}
	if e.CurrentValue() != 10 {
		t.Errorf("expected value 10, got %v", e.CurrentValue())
	}
}

func TestCloseCancelsPendingTick(t *testing.T) {
	e, _, sch := newTestEngine()
	e.StartSpin()
	e.Close()

	if sch.active() != 0 {
		t.Errorf("expected pending tick canceled, got %d active", sch.active())
	}
}

func TestSpinSeedsFromCurrentValue(t *testing.T) {
	e, _, _ := newTestEngine()
	e.SetValue(25) // a quarter of the default max of 100
	e.StartSpin()

	if got := e.SpinnerArcLength(); got != 90 {
		t.Errorf("expected seeded arc length 90, got %v", got)
	}
	if got := e.SpinnerSweepAngle(); got != 90 {
		t.Errorf("expected seeded sweep 90, got %v", got)
	}
}
