package gauge

// Style carries the visual configuration of a gauge. It is a plain value
// object, typically produced from the config layer; the gauge reads it and
// surfaces map its widths and colors onto their own paints.
type Style struct {
	// Stroke widths and padding, in surface units.
	BarWidth    float64
	RimWidth    float64
	ContourSize float64
	Padding     float64

	// Colors, as terminal color strings understood by lipgloss.
	BarColor     string
	RimColor     string
	SpinnerColor string
	FillColor    string
	ContourColor string
	TextColor    string
	UnitColor    string

	// Text holds a fixed string to show instead of the current value.
	Text string
	// ShowPercent renders the auto value as a percentage of the max
	// value rather than the raw value.
	ShowPercent bool

	Unit     string
	ShowUnit bool

	// AutoTextSize derives font sizes from the available region. When
	// false, TextSize and UnitSize are used as configured.
	AutoTextSize bool
	TextSize     float64
	UnitSize     float64

	// Scale factors applied on top of auto-sized text.
	TextScale float64
	UnitScale float64

	// RelativeUnitSize is the unit's share of the text region in
	// auto-size mode.
	RelativeUnitSize float64
}

// DefaultStyle returns the stock look.
func DefaultStyle() Style {
	return Style{
		BarWidth:         4,
		RimWidth:         4,
		ContourSize:      0,
		Padding:          2,
		BarColor:         "39",
		RimColor:         "238",
		SpinnerColor:     "39",
		TextColor:        "231",
		UnitColor:        "245",
		ShowPercent:      true,
		AutoTextSize:     true,
		TextScale:        1,
		UnitScale:        1,
		RelativeUnitSize: 0.3,
	}
}
