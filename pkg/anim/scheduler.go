package anim

import "time"

// CancelFunc cancels a scheduled tick. Calling it after the tick has fired
// is a no-op.
type CancelFunc func()

// TickScheduler delivers delayed tick callbacks to the engine. The engine
// keeps at most one tick pending: scheduling a new tick always cancels the
// previous handle first.
//
// Implementations decide on which execution context the callback runs. The
// engine itself is single-owner; hosts that run the engine on a dedicated
// goroutine (for example a bubbletea Update loop) must provide a scheduler
// that marshals the callback onto that goroutine.
type TickScheduler interface {
	ScheduleAfter(delay time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules ticks with time.AfterFunc. Callbacks fire on a
// timer goroutine, so it is only suitable when nothing else touches the
// engine, such as headless simulations.
func TimerScheduler() TickScheduler {
	return timerScheduler{}
}

type timerScheduler struct{}

func (timerScheduler) ScheduleAfter(delay time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// FuncScheduler adapts a function to the TickScheduler interface.
type FuncScheduler func(delay time.Duration, fn func()) CancelFunc

func (f FuncScheduler) ScheduleAfter(delay time.Duration, fn func()) CancelFunc {
	return f(delay, fn)
}
