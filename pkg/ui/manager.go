package ui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/windlass/ringview/pkg/anim"
	"github.com/windlass/ringview/pkg/feed"
)

// ProgramScheduler marshals animation ticks onto the Bubbletea update
// loop. Timers fire on their own goroutines, so the tick callback is
// wrapped in a message and executed when the program processes it. The
// engine itself is only ever touched from the update loop.
type ProgramScheduler struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewProgramScheduler creates a scheduler with no program attached.
// Ticks scheduled before SetProgram are dropped.
func NewProgramScheduler() *ProgramScheduler {
	return &ProgramScheduler{}
}

// SetProgram attaches the running program.
func (s *ProgramScheduler) SetProgram(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

// ScheduleAfter arranges for fn to run on the update loop after the
// delay. The returned cancel prevents fn from running even when the
// message is already in flight.
func (s *ProgramScheduler) ScheduleAfter(delay time.Duration, fn func()) anim.CancelFunc {
	var stopped atomic.Bool
	timer := time.AfterFunc(delay, func() {
		s.mu.Lock()
		p := s.program
		s.mu.Unlock()
		if p == nil || stopped.Load() {
			return
		}
		p.Send(EngineTickMsg{run: func() {
			if !stopped.Load() {
				fn()
			}
		}})
	})
	return func() {
		stopped.Store(true)
		timer.Stop()
	}
}

// Runner drives a model with updates from a feed.
type Runner struct {
	scheduler *ProgramScheduler
	program   *tea.Program
}

// NewRunner creates a runner for the model. The scheduler must be the
// one the model's engine was built with.
func NewRunner(m Model, scheduler *ProgramScheduler, opts ...tea.ProgramOption) *Runner {
	p := tea.NewProgram(m, opts...)
	scheduler.SetProgram(p)
	return &Runner{
		scheduler: scheduler,
		program:   p,
	}
}

// Pump forwards feed updates to the program until the channel closes or
// the context is canceled.
func (r *Runner) Pump(ctx context.Context, updates <-chan feed.Update) {
	go func() {
		for {
			select {
			case u, ok := <-updates:
				if !ok {
					r.program.Send(FeedClosedMsg{})
					return
				}
				r.program.Send(FeedMsg(u))
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run blocks until the program exits and returns the final model.
func (r *Runner) Run() (Model, error) {
	final, err := r.program.Run()
	if err != nil {
		return Model{}, err
	}
	return final.(Model), nil
}

// Quit stops the program.
func (r *Runner) Quit() {
	r.program.Quit()
}
