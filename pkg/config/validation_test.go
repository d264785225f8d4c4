package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Sources = []Source{
		{Name: "repo", Type: SourceTypeGit, URL: "https://github.com/test/repo.git"},
		{Name: "file", Type: SourceTypeHTTP, URL: "https://example.com/file.bin"},
		{Name: "cpu", Type: SourceTypeSystem, Metric: MetricCPU},
	}
	return cfg
}

func TestValidateConfig_Valid(t *testing.T) {
	if err := ValidateConfig(validTestConfig()); err != nil {
		t.Errorf("expected valid config, got: %v", err)
	}
}

func TestValidateConfig_Gauge(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{
			name:  "negative bar width",
			mut:   func(c *Config) { c.Gauge.BarWidth = -1 },
			field: "gauge.bar_width",
		},
		{
			name:  "negative rim width",
			mut:   func(c *Config) { c.Gauge.RimWidth = -0.5 },
			field: "gauge.rim_width",
		},
		{
			name:  "negative padding",
			mut:   func(c *Config) { c.Gauge.Padding = -2 },
			field: "gauge.padding",
		},
		{
			name: "fixed text size missing",
			mut: func(c *Config) {
				c.Gauge.AutoTextSize = false
				c.Gauge.TextSize = 0
			},
			field: "gauge.text_size",
		},
		{
			name:  "relative unit size out of range",
			mut:   func(c *Config) { c.Gauge.RelUnitSize = 1.5 },
			field: "gauge.relative_unit_size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mut(cfg)
			assertValidationError(t, ValidateConfig(cfg), tt.field)
		})
	}
}

func TestValidateConfig_Animation(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{
			name:  "zero tick interval",
			mut:   func(c *Config) { c.Animation.TickInterval = 0 },
			field: "animation.tick_interval",
		},
		{
			name:  "zero spin speed",
			mut:   func(c *Config) { c.Animation.SpinSpeed = 0 },
			field: "animation.spin_speed",
		},
		{
			name:  "spinner length too long",
			mut:   func(c *Config) { c.Animation.SpinnerLength = 420 },
			field: "animation.spinner_length",
		},
		{
			name:  "negative duration",
			mut:   func(c *Config) { c.Animation.Duration = -time.Second },
			field: "animation.duration",
		},
		{
			name:  "unknown value curve",
			mut:   func(c *Config) { c.Animation.ValueCurve = "bouncy" },
			field: "animation.value_curve",
		},
		{
			name:  "unknown length curve",
			mut:   func(c *Config) { c.Animation.LengthCurve = "wobble" },
			field: "animation.length_curve",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mut(cfg)
			assertValidationError(t, ValidateConfig(cfg), tt.field)
		})
	}
}

func TestValidateConfig_Sources(t *testing.T) {
	tests := []struct {
		name  string
		src   Source
		field string
	}{
		{
			name:  "missing name",
			src:   Source{Type: SourceTypeGit, URL: "https://example.com/x.git"},
			field: ".name",
		},
		{
			name:  "missing type",
			src:   Source{Name: "x", URL: "https://example.com/x.git"},
			field: ".type",
		},
		{
			name:  "invalid type",
			src:   Source{Name: "x", Type: "ftp", URL: "ftp://example.com/x"},
			field: ".type",
		},
		{
			name:  "git source without url",
			src:   Source{Name: "x", Type: SourceTypeGit},
			field: ".url",
		},
		{
			name:  "url without scheme",
			src:   Source{Name: "x", Type: SourceTypeHTTP, URL: "example.com/file"},
			field: ".url",
		},
		{
			name:  "system source with url",
			src:   Source{Name: "x", Type: SourceTypeSystem, URL: "https://example.com"},
			field: ".url",
		},
		{
			name:  "system source with bad metric",
			src:   Source{Name: "x", Type: SourceTypeSystem, Metric: "disk"},
			field: ".metric",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Sources = []Source{tt.src}
			assertValidationError(t, ValidateConfig(cfg), tt.field)
		})
	}
}

func TestValidateConfig_SSHURLAllowed(t *testing.T) {
	cfg := validTestConfig()
	cfg.Sources = []Source{
		{Name: "ssh", Type: SourceTypeGit, URL: "git@github.com:test/repo.git"},
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("expected git@ URL to validate, got: %v", err)
	}
}

func TestValidateConfig_DuplicateSourceNames(t *testing.T) {
	cfg := validTestConfig()
	cfg.Sources = append(cfg.Sources, cfg.Sources[0])
	assertValidationError(t, ValidateConfig(cfg), ".name")
}

func TestValidateConfig_NegativeSourceInterval(t *testing.T) {
	cfg := validTestConfig()
	bad := -time.Second
	cfg.Sources[0].Interval = &bad
	assertValidationError(t, ValidateConfig(cfg), ".interval")
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error on %s, got nil", field)
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(verr.Field, field) {
		t.Errorf("expected error on field containing '%s', got '%s'", field, verr.Field)
	}
}
