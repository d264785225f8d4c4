package ui

import (
	"fmt"

	"github.com/windlass/ringview/pkg/feed"
)

// SimpleOutput prints feed progress line by line for non-interactive
// runs. Phases print once; determinate progress prints at 10% steps.
type SimpleOutput struct {
	name        string
	lastPhase   feed.Phase
	lastPercent int
	failed      bool
}

// NewSimpleOutput creates a simple non-interactive output.
func NewSimpleOutput(name string) *SimpleOutput {
	return &SimpleOutput{
		name:        name,
		lastPercent: -1,
	}
}

// Update prints a progress update when it carries new information.
func (s *SimpleOutput) Update(u feed.Update) {
	if u.Phase == feed.PhaseFailed {
		s.failed = true
		msg := u.Message
		if u.Err != nil {
			msg = u.Err.Error()
		}
		fmt.Printf("%s %s: %s\n", SymbolError, s.name, msg)
		return
	}
	if u.Phase == feed.PhaseComplete {
		fmt.Printf("%s %s: %s\n", SymbolSuccess, s.name, u.Message)
		return
	}

	if u.Phase != s.lastPhase {
		s.lastPhase = u.Phase
		s.lastPercent = -1
		fmt.Printf("● %s: %s\n", s.name, string(u.Phase))
	}

	if u.Percent >= 0 {
		step := int(u.Percent) / 10 * 10
		if step > s.lastPercent {
			s.lastPercent = step
			fmt.Printf("  %s: %d%%\n", s.name, step)
		}
	}
}

// Failed reports whether a failure was printed.
func (s *SimpleOutput) Failed() bool {
	return s.failed
}
