package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Metric selects which host quantity a SystemFeed samples.
type Metric string

const (
	MetricCPU    Metric = "cpu"
	MetricMemory Metric = "memory"
)

// SystemFeed continuously samples a host metric as a percentage. Unlike
// the git and http feeds it never completes; it runs until the context
// is canceled.
type SystemFeed struct {
	Metric  Metric
	options Options
}

// NewSystemFeed creates a feed sampling the given metric.
func NewSystemFeed(metric Metric, opts Options) *SystemFeed {
	return &SystemFeed{
		Metric:  metric,
		options: opts,
	}
}

// Type returns the feed type.
func (s *SystemFeed) Type() string {
	return "system"
}

// Run starts sampling until the context is canceled.
func (s *SystemFeed) Run(ctx context.Context) (<-chan Update, error) {
	switch s.Metric {
	case MetricCPU, MetricMemory:
	default:
		return nil, fmt.Errorf("system feed: unknown metric %q", s.Metric)
	}

	interval := s.options.SampleInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	updates := make(chan Update, 10)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			pct, err := s.sample(ctx)
			if err != nil {
				updates <- Update{
					Phase: PhaseFailed,
					Err:   fmt.Errorf("sample %s: %w", s.Metric, err),
				}
				return
			}
			send(updates, Update{
				Phase:   PhaseSampling,
				Percent: pct,
				Message: string(s.Metric),
			})

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}

func (s *SystemFeed) sample(ctx context.Context) (float64, error) {
	switch s.Metric {
	case MetricCPU:
		// Interval 0 compares against the previous sample instead of
		// blocking.
		percents, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			return 0, err
		}
		if len(percents) == 0 {
			return 0, fmt.Errorf("no cpu data")
		}
		return percents[0], nil
	case MetricMemory:
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return 0, err
		}
		return vm.UsedPercent, nil
	}
	return 0, fmt.Errorf("unknown metric %q", s.Metric)
}
