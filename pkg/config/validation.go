package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/windlass/ringview/pkg/anim"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the entire configuration.
func ValidateConfig(cfg *Config) error {
	if err := validateGauge(&cfg.Gauge); err != nil {
		return err
	}
	if err := validateAnimation(&cfg.Animation); err != nil {
		return err
	}

	if cfg.HTTP.RetryAttempts < 0 {
		return &ValidationError{Field: "http.retry_attempts", Message: "must not be negative"}
	}
	if cfg.Git.CloneDepth < 1 {
		return &ValidationError{Field: "git.clone_depth", Message: "must be at least 1"}
	}

	sourceNames := make(map[string]bool)
	for i, src := range cfg.Sources {
		if err := validateSource(&src, i); err != nil {
			return err
		}
		if sourceNames[src.Name] {
			return &ValidationError{
				Field:   fmt.Sprintf("source[%d].name", i),
				Message: fmt.Sprintf("duplicate source name: %s", src.Name),
			}
		}
		sourceNames[src.Name] = true
	}

	return nil
}

func validateGauge(g *GaugeConfig) error {
	if g.BarWidth < 0 {
		return &ValidationError{Field: "gauge.bar_width", Message: "must not be negative"}
	}
	if g.RimWidth < 0 {
		return &ValidationError{Field: "gauge.rim_width", Message: "must not be negative"}
	}
	if g.ContourSize < 0 {
		return &ValidationError{Field: "gauge.contour_size", Message: "must not be negative"}
	}
	if g.Padding < 0 {
		return &ValidationError{Field: "gauge.padding", Message: "must not be negative"}
	}
	if !g.AutoTextSize && g.TextSize <= 0 {
		return &ValidationError{
			Field:   "gauge.text_size",
			Message: "must be positive when auto_text_size is disabled",
		}
	}
	if g.RelUnitSize <= 0 || g.RelUnitSize >= 1 {
		return &ValidationError{
			Field:   "gauge.relative_unit_size",
			Message: "must be between 0 and 1 exclusive",
		}
	}
	return nil
}

func validateAnimation(a *AnimationConfig) error {
	if a.TickInterval <= 0 {
		return &ValidationError{Field: "animation.tick_interval", Message: "must be positive"}
	}
	if a.SpinSpeed <= 0 {
		return &ValidationError{Field: "animation.spin_speed", Message: "must be positive"}
	}
	if a.SpinnerLength <= 0 || a.SpinnerLength > 360 {
		return &ValidationError{
			Field:   "animation.spinner_length",
			Message: "must be in (0, 360]",
		}
	}
	if a.Duration < 0 {
		return &ValidationError{Field: "animation.duration", Message: "must not be negative"}
	}
	if a.SampleInterval <= 0 {
		return &ValidationError{Field: "animation.sample_interval", Message: "must be positive"}
	}
	if _, ok := anim.CurveByName(a.ValueCurve); !ok {
		return &ValidationError{
			Field:   "animation.value_curve",
			Message: fmt.Sprintf("unknown curve: %s", a.ValueCurve),
		}
	}
	if _, ok := anim.CurveByName(a.LengthCurve); !ok {
		return &ValidationError{
			Field:   "animation.length_curve",
			Message: fmt.Sprintf("unknown curve: %s", a.LengthCurve),
		}
	}
	return nil
}

func validateSource(src *Source, index int) error {
	prefix := fmt.Sprintf("source[%d]", index)

	if src.Name == "" {
		return &ValidationError{Field: prefix + ".name", Message: "name is required"}
	}

	switch src.Type {
	case SourceTypeGit, SourceTypeHTTP:
		if src.URL == "" {
			return &ValidationError{Field: prefix + ".url", Message: "url is required"}
		}
		if err := validateURL(src.URL); err != nil {
			return &ValidationError{Field: prefix + ".url", Message: err.Error()}
		}
	case SourceTypeSystem:
		if src.URL != "" {
			return &ValidationError{
				Field:   prefix + ".url",
				Message: "system sources do not take a url",
			}
		}
		switch src.GetMetric() {
		case MetricCPU, MetricMemory:
		default:
			return &ValidationError{
				Field:   prefix + ".metric",
				Message: fmt.Sprintf("invalid metric: %s (must be 'cpu' or 'memory')", src.Metric),
			}
		}
	case "":
		return &ValidationError{Field: prefix + ".type", Message: "type is required"}
	default:
		return &ValidationError{
			Field:   prefix + ".type",
			Message: fmt.Sprintf("invalid type: %s (must be 'git', 'http', or 'system')", src.Type),
		}
	}

	if src.Interval != nil && *src.Interval <= 0 {
		return &ValidationError{Field: prefix + ".interval", Message: "must be positive"}
	}

	return nil
}

func validateURL(rawURL string) error {
	// Handle git@ SSH URLs
	if strings.HasPrefix(rawURL, "git@") {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme == "" {
		return fmt.Errorf("URL must have a scheme (http, https, git, or file)")
	}

	// file:// URLs don't require a host (local paths)
	if u.Scheme == "file" {
		if u.Path == "" {
			return fmt.Errorf("file:// URL must have a path")
		}
		return nil
	}

	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}

	return nil
}
