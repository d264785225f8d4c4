// Package feed produces progress updates from real operations (git
// clones, HTTP downloads, system metrics) for display on a gauge.
package feed

import (
	"context"
	"time"
)

// Phase represents the current phase of a fed operation.
type Phase string

const (
	PhaseInit       Phase = "initializing"
	PhaseConnecting Phase = "connecting"
	PhaseFetching   Phase = "fetching"
	PhaseSampling   Phase = "sampling"
	PhaseComplete   Phase = "complete"
	PhaseFailed     Phase = "failed"
)

// Update is one progress report. Percent is in [0, 100], or negative when
// the operation's extent is unknown.
type Update struct {
	Phase   Phase
	Percent float64
	Message string
	Err     error
}

// IsTerminal returns true if no further updates follow.
func (u Update) IsTerminal() bool {
	return u.Phase == PhaseComplete || u.Phase == PhaseFailed
}

// Feed produces progress updates until its operation completes or the
// context is canceled. The returned channel is closed when the feed
// stops; the last update before close is terminal for finite feeds.
type Feed interface {
	Run(ctx context.Context) (<-chan Update, error)

	// Type returns the feed type (git, http, system).
	Type() string
}

// Options configures feed behavior.
type Options struct {
	// Git-specific options
	Branch  string
	Depth   int
	Shallow bool

	// HTTP-specific options
	UserAgent     string
	RetryAttempts int
	RetryDelay    time.Duration

	// System-specific options
	SampleInterval time.Duration
}

// DefaultOptions returns options with default values.
func DefaultOptions() Options {
	return Options{
		Depth:          1,
		Shallow:        true,
		UserAgent:      "Ringview/1.0",
		RetryAttempts:  3,
		RetryDelay:     2 * time.Second,
		SampleInterval: 500 * time.Millisecond,
	}
}

// send delivers an update without blocking a stalled consumer; stale
// intermediate updates are dropped.
func send(ch chan<- Update, u Update) {
	select {
	case ch <- u:
	default:
	}
}
