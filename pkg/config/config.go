package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = ".ringview.toml"

	// DefaultSampleInterval is the default interval between source samples.
	DefaultSampleInterval = 500 * time.Millisecond

	// DefaultRetryAttempts is the default number of HTTP retry attempts.
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the default delay between retries.
	DefaultRetryDelay = 2 * time.Second

	// DefaultCloneDepth is the default shallow clone depth.
	DefaultCloneDepth = 1

	// DefaultUserAgent identifies HTTP downloads.
	DefaultUserAgent = "Ringview/1.0"
)

// Config represents the parsed and validated configuration.
type Config struct {
	Gauge      GaugeConfig
	Animation  AnimationConfig
	HTTP       HTTPConfig
	Git        GitConfig
	Sources    []Source
	configPath string // Path to the config file
}

// GaugeConfig holds visual settings for the gauge.
type GaugeConfig struct {
	BarWidth     float64
	RimWidth     float64
	ContourSize  float64
	Padding      float64
	BarColor     string
	RimColor     string
	SpinnerColor string
	FillColor    string
	ContourColor string
	TextColor    string
	UnitColor    string
	Text         string
	ShowPercent  bool
	Unit         string
	ShowUnit     bool
	AutoTextSize bool
	TextSize     float64
	UnitSize     float64
	TextScale    float64
	UnitScale    float64
	RelUnitSize  float64
}

// AnimationConfig holds timing settings for the animation engine.
type AnimationConfig struct {
	TickInterval   time.Duration
	SpinSpeed      float64
	SpinnerLength  float64
	Duration       time.Duration
	ValueCurve     string
	LengthCurve    string
	SampleInterval time.Duration
}

// HTTPConfig holds HTTP-specific settings.
type HTTPConfig struct {
	UserAgent     string
	RetryAttempts int
	RetryDelay    time.Duration
}

// GitConfig holds Git-specific settings.
type GitConfig struct {
	ShallowClone bool
	CloneDepth   int
}

// ConfigFile represents the raw TOML structure for file I/O.
type ConfigFile struct {
	Gauge     GaugeConfigFile     `toml:"gauge"`
	Animation AnimationConfigFile `toml:"animation"`
	HTTP      HTTPConfigFile      `toml:"http"`
	Git       GitConfigFile       `toml:"git"`
	Sources   []SourceFile        `toml:"source"`
}

// GaugeConfigFile is the raw TOML structure for gauge settings.
type GaugeConfigFile struct {
	BarWidth     *float64 `toml:"bar_width"`
	RimWidth     *float64 `toml:"rim_width"`
	ContourSize  *float64 `toml:"contour_size"`
	Padding      *float64 `toml:"padding"`
	BarColor     string   `toml:"bar_color"`
	RimColor     string   `toml:"rim_color"`
	SpinnerColor string   `toml:"spinner_color"`
	FillColor    string   `toml:"fill_color"`
	ContourColor string   `toml:"contour_color"`
	TextColor    string   `toml:"text_color"`
	UnitColor    string   `toml:"unit_color"`
	Text         string   `toml:"text"`
	ShowPercent  *bool    `toml:"show_percent"`
	Unit         string   `toml:"unit"`
	ShowUnit     *bool    `toml:"show_unit"`
	AutoTextSize *bool    `toml:"auto_text_size"`
	TextSize     *float64 `toml:"text_size"`
	UnitSize     *float64 `toml:"unit_size"`
	TextScale    *float64 `toml:"text_scale"`
	UnitScale    *float64 `toml:"unit_scale"`
	RelUnitSize  *float64 `toml:"relative_unit_size"`
}

// AnimationConfigFile is the raw TOML structure for animation settings.
type AnimationConfigFile struct {
	TickInterval   string   `toml:"tick_interval"`
	SpinSpeed      *float64 `toml:"spin_speed"`
	SpinnerLength  *float64 `toml:"spinner_length"`
	Duration       string   `toml:"duration"`
	ValueCurve     string   `toml:"value_curve"`
	LengthCurve    string   `toml:"length_curve"`
	SampleInterval string   `toml:"sample_interval"`
}

// HTTPConfigFile is the raw TOML structure for HTTP settings.
type HTTPConfigFile struct {
	UserAgent     string `toml:"user_agent"`
	RetryAttempts *int   `toml:"retry_attempts"`
	RetryDelay    string `toml:"retry_delay"`
}

// GitConfigFile is the raw TOML structure for Git settings.
type GitConfigFile struct {
	ShallowClone *bool `toml:"shallow_clone"`
	CloneDepth   *int  `toml:"clone_depth"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	var cf ConfigFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg, err := parseConfigFile(&cf)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for the configuration file in the current
// directory, then in the user's home directory.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	candidates := []string{filepath.Join(cwd, ConfigFileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ConfigFileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("config file not found: %s", candidates[0])
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("config path not set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	cf := toConfigFile(c)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// Path returns the path to the config file.
func (c *Config) Path() string {
	return c.configPath
}

// GetSource returns a source by name.
func (c *Config) GetSource(name string) (*Source, bool) {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i], true
		}
	}
	return nil, false
}

// AddSource adds a source to the configuration.
func (c *Config) AddSource(src Source) error {
	if _, exists := c.GetSource(src.Name); exists {
		return fmt.Errorf("source already exists: %s", src.Name)
	}
	c.Sources = append(c.Sources, src)
	return nil
}

// RemoveSource removes a source from the configuration.
func (c *Config) RemoveSource(name string) error {
	for i, src := range c.Sources {
		if src.Name == name {
			c.Sources = append(c.Sources[:i], c.Sources[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("source not found: %s", name)
}

func parseConfigFile(cf *ConfigFile) (*Config, error) {
	cfg := NewDefaultConfig()

	// Gauge section
	gf := &cf.Gauge
	setFloat(&cfg.Gauge.BarWidth, gf.BarWidth)
	setFloat(&cfg.Gauge.RimWidth, gf.RimWidth)
	setFloat(&cfg.Gauge.ContourSize, gf.ContourSize)
	setFloat(&cfg.Gauge.Padding, gf.Padding)
	setString(&cfg.Gauge.BarColor, gf.BarColor)
	setString(&cfg.Gauge.RimColor, gf.RimColor)
	setString(&cfg.Gauge.SpinnerColor, gf.SpinnerColor)
	setString(&cfg.Gauge.FillColor, gf.FillColor)
	setString(&cfg.Gauge.ContourColor, gf.ContourColor)
	setString(&cfg.Gauge.TextColor, gf.TextColor)
	setString(&cfg.Gauge.UnitColor, gf.UnitColor)
	cfg.Gauge.Text = gf.Text
	setBool(&cfg.Gauge.ShowPercent, gf.ShowPercent)
	setString(&cfg.Gauge.Unit, gf.Unit)
	setBool(&cfg.Gauge.ShowUnit, gf.ShowUnit)
	setBool(&cfg.Gauge.AutoTextSize, gf.AutoTextSize)
	setFloat(&cfg.Gauge.TextSize, gf.TextSize)
	setFloat(&cfg.Gauge.UnitSize, gf.UnitSize)
	setFloat(&cfg.Gauge.TextScale, gf.TextScale)
	setFloat(&cfg.Gauge.UnitScale, gf.UnitScale)
	setFloat(&cfg.Gauge.RelUnitSize, gf.RelUnitSize)

	// Animation section
	af := &cf.Animation
	if err := setDuration(&cfg.Animation.TickInterval, af.TickInterval, "tick_interval"); err != nil {
		return nil, err
	}
	setFloat(&cfg.Animation.SpinSpeed, af.SpinSpeed)
	setFloat(&cfg.Animation.SpinnerLength, af.SpinnerLength)
	if err := setDuration(&cfg.Animation.Duration, af.Duration, "duration"); err != nil {
		return nil, err
	}
	setString(&cfg.Animation.ValueCurve, af.ValueCurve)
	setString(&cfg.Animation.LengthCurve, af.LengthCurve)
	if err := setDuration(&cfg.Animation.SampleInterval, af.SampleInterval, "sample_interval"); err != nil {
		return nil, err
	}

	// HTTP section
	setString(&cfg.HTTP.UserAgent, cf.HTTP.UserAgent)
	if cf.HTTP.RetryAttempts != nil {
		cfg.HTTP.RetryAttempts = *cf.HTTP.RetryAttempts
	}
	if err := setDuration(&cfg.HTTP.RetryDelay, cf.HTTP.RetryDelay, "retry_delay"); err != nil {
		return nil, err
	}

	// Git section
	setBool(&cfg.Git.ShallowClone, cf.Git.ShallowClone)
	if cf.Git.CloneDepth != nil {
		cfg.Git.CloneDepth = *cf.Git.CloneDepth
	}

	// Sources
	for _, sf := range cf.Sources {
		src := Source{
			Name:    sf.Name,
			Type:    SourceType(sf.Type),
			URL:     sf.URL,
			Metric:  SystemMetric(sf.Metric),
			Shallow: sf.Shallow,
			Depth:   sf.Depth,
			Unit:    sf.Unit,
		}
		if sf.Interval != "" {
			interval, err := time.ParseDuration(sf.Interval)
			if err != nil {
				return nil, fmt.Errorf("failed to parse interval for source %s: %w", sf.Name, err)
			}
			src.Interval = &interval
		}
		cfg.Sources = append(cfg.Sources, src)
	}

	return cfg, nil
}

func toConfigFile(c *Config) *ConfigFile {
	cf := &ConfigFile{}

	// Gauge section
	cf.Gauge = GaugeConfigFile{
		BarWidth:     &c.Gauge.BarWidth,
		RimWidth:     &c.Gauge.RimWidth,
		ContourSize:  &c.Gauge.ContourSize,
		Padding:      &c.Gauge.Padding,
		BarColor:     c.Gauge.BarColor,
		RimColor:     c.Gauge.RimColor,
		SpinnerColor: c.Gauge.SpinnerColor,
		FillColor:    c.Gauge.FillColor,
		ContourColor: c.Gauge.ContourColor,
		TextColor:    c.Gauge.TextColor,
		UnitColor:    c.Gauge.UnitColor,
		Text:         c.Gauge.Text,
		ShowPercent:  &c.Gauge.ShowPercent,
		Unit:         c.Gauge.Unit,
		ShowUnit:     &c.Gauge.ShowUnit,
		AutoTextSize: &c.Gauge.AutoTextSize,
		TextSize:     &c.Gauge.TextSize,
		UnitSize:     &c.Gauge.UnitSize,
		TextScale:    &c.Gauge.TextScale,
		UnitScale:    &c.Gauge.UnitScale,
		RelUnitSize:  &c.Gauge.RelUnitSize,
	}

	// Animation section
	cf.Animation = AnimationConfigFile{
		TickInterval:   c.Animation.TickInterval.String(),
		SpinSpeed:      &c.Animation.SpinSpeed,
		SpinnerLength:  &c.Animation.SpinnerLength,
		Duration:       c.Animation.Duration.String(),
		ValueCurve:     c.Animation.ValueCurve,
		LengthCurve:    c.Animation.LengthCurve,
		SampleInterval: c.Animation.SampleInterval.String(),
	}

	// HTTP section
	cf.HTTP.UserAgent = c.HTTP.UserAgent
	cf.HTTP.RetryAttempts = &c.HTTP.RetryAttempts
	cf.HTTP.RetryDelay = c.HTTP.RetryDelay.String()

	// Git section
	cf.Git.ShallowClone = &c.Git.ShallowClone
	cf.Git.CloneDepth = &c.Git.CloneDepth

	// Sources
	for _, src := range c.Sources {
		sf := SourceFile{
			Name:    src.Name,
			Type:    string(src.Type),
			URL:     src.URL,
			Metric:  string(src.Metric),
			Shallow: src.Shallow,
			Depth:   src.Depth,
			Unit:    src.Unit,
		}
		if src.Interval != nil {
			sf.Interval = src.Interval.String()
		}
		cf.Sources = append(cf.Sources, sf)
	}

	return cf
}

// NewDefaultConfig creates a new configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Gauge: GaugeConfig{
			BarWidth:     4,
			RimWidth:     4,
			Padding:      2,
			BarColor:     "39",
			RimColor:     "238",
			SpinnerColor: "39",
			FillColor:    "",
			ContourColor: "238",
			TextColor:    "231",
			UnitColor:    "245",
			ShowPercent:  true,
			AutoTextSize: true,
			TextSize:     16,
			UnitSize:     10,
			TextScale:    1,
			UnitScale:    1,
			RelUnitSize:  0.3,
		},
		Animation: AnimationConfig{
			TickInterval:   15 * time.Millisecond,
			SpinSpeed:      2.8,
			SpinnerLength:  42,
			Duration:       1200 * time.Millisecond,
			ValueCurve:     "accelerate-decelerate",
			LengthCurve:    "decelerate",
			SampleInterval: DefaultSampleInterval,
		},
		HTTP: HTTPConfig{
			UserAgent:     DefaultUserAgent,
			RetryAttempts: DefaultRetryAttempts,
			RetryDelay:    DefaultRetryDelay,
		},
		Git: GitConfig{
			ShallowClone: true,
			CloneDepth:   DefaultCloneDepth,
		},
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func setDuration(dst *time.Duration, src, field string) error {
	if src == "" {
		return nil
	}
	d, err := time.ParseDuration(src)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", field, err)
	}
	*dst = d
	return nil
}
