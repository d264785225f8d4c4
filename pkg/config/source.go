package config

import "time"

// SourceType defines what kind of value source drives the gauge.
type SourceType string

const (
	SourceTypeGit    SourceType = "git"
	SourceTypeHTTP   SourceType = "http"
	SourceTypeSystem SourceType = "system"
)

// SystemMetric selects which host metric a system source samples.
type SystemMetric string

const (
	MetricCPU    SystemMetric = "cpu"
	MetricMemory SystemMetric = "memory"
)

// Source represents a single named progress source definition.
type Source struct {
	Name     string
	Type     SourceType
	URL      string         // Clone or download URL (git and http sources)
	Metric   SystemMetric   // Sampled metric (system sources)
	Interval *time.Duration // Override global sample interval
	Shallow  *bool          // Override global shallow clone setting
	Depth    *int           // Override global clone depth
	Unit     string         // Unit label shown next to the value
}

// SourceFile is the raw TOML structure for a source.
type SourceFile struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	URL      string `toml:"url,omitempty"`
	Metric   string `toml:"metric,omitempty"`
	Interval string `toml:"interval,omitempty"`
	Shallow  *bool  `toml:"shallow,omitempty"`
	Depth    *int   `toml:"depth,omitempty"`
	Unit     string `toml:"unit,omitempty"`
}

// GetInterval returns the sample interval for this source.
func (s *Source) GetInterval(defaultInterval time.Duration) time.Duration {
	if s.Interval != nil {
		return *s.Interval
	}
	return defaultInterval
}

// IsShallow returns whether to use a shallow clone for this source.
func (s *Source) IsShallow(defaultShallow bool) bool {
	if s.Shallow != nil {
		return *s.Shallow
	}
	return defaultShallow
}

// GetDepth returns the clone depth for this source.
func (s *Source) GetDepth(defaultDepth int) int {
	if s.Depth != nil {
		return *s.Depth
	}
	return defaultDepth
}

// GetMetric returns the sampled metric, defaulting to CPU usage.
func (s *Source) GetMetric() SystemMetric {
	if s.Metric == "" {
		return MetricCPU
	}
	return s.Metric
}
