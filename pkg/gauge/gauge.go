// Package gauge orchestrates rendering of the circular progress indicator:
// it reads the animation engine's current quantities, resolves text layout
// through the geometry package (recomputing only when the displayed text
// length changes) and issues draw calls to a Surface.
package gauge

import (
	"strconv"

	"github.com/windlass/ringview/pkg/anim"
	"github.com/windlass/ringview/pkg/geometry"
)

// Gauge draws one circular progress indicator.
type Gauge struct {
	engine   *anim.Engine
	style    Style
	measurer geometry.Measurer

	bounds     geometry.Bounds
	textRegion geometry.Rect
	layout     geometry.TextLayout

	// textLen caches the length of the last laid-out text; glyph
	// measurement is too expensive to repeat every frame.
	textLen int
}

// Option configures a Gauge.
type Option func(*Gauge)

// WithMeasurer sets the text measurer. Defaults to a terminal cell
// measurer.
func WithMeasurer(m geometry.Measurer) Option {
	return func(g *Gauge) { g.measurer = m }
}

// New creates a gauge drawing the given engine's state.
func New(engine *anim.Engine, style Style, opts ...Option) *Gauge {
	g := &Gauge{
		engine:   engine,
		style:    style,
		measurer: geometry.CellMeasurer{Aspect: geometry.DefaultCellAspect},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Engine returns the animation engine driving this gauge.
func (g *Gauge) Engine() *anim.Engine { return g.engine }

// Style returns the current style.
func (g *Gauge) Style() Style { return g.style }

// SetStyle replaces the style and invalidates the cached text layout.
func (g *Gauge) SetStyle(s Style) {
	g.style = s
	g.invalidateLayout()
}

// SetShowUnit toggles the unit string and invalidates the cached layout.
func (g *Gauge) SetShowUnit(show bool) {
	g.style.ShowUnit = show
	g.invalidateLayout()
}

// Resize re-derives the drawing bounds for a surface of the given size.
func (g *Gauge) Resize(width, height float64) {
	g.bounds = geometry.DeriveBounds(width, height, g.metrics())
	g.textRegion = geometry.InnerTextRegion(g.bounds.Circle, g.metrics(), g.style.ShowUnit)
	g.invalidateLayout()
}

// Bounds returns the derived drawing rectangles.
func (g *Gauge) Bounds() geometry.Bounds { return g.bounds }

// ValueAtPoint maps a point on the surface to the value whose arc would
// end there. Used for seek interactions.
func (g *Gauge) ValueAtPoint(p geometry.Point) float64 {
	angle := geometry.AngleFromPoint(g.bounds.Center, p)
	return g.engine.MaxValue() / 360 * angle
}

// Draw renders one frame onto the surface. Frames with degenerate bounds
// (an unmeasured or collapsed surface) are skipped entirely.
func (g *Gauge) Draw(s Surface) {
	if g.bounds.Circle.IsEmpty() {
		return
	}

	if g.style.FillColor != "" {
		s.DrawArc(g.bounds.InnerCircle, 0, 360, ArcFill)
	}
	if g.style.RimWidth > 0 {
		s.DrawArc(g.bounds.Circle, 0, 360, ArcRim)
	}
	if g.style.ContourSize > 0 {
		s.DrawArc(g.bounds.OuterContour, 0, 360, ArcContour)
		s.DrawArc(g.bounds.InnerContour, 0, 360, ArcContour)
	}

	degrees := 360 / g.engine.MaxValue() * g.engine.CurrentValue()

	switch g.engine.State() {
	case anim.StateSpinning, anim.StateEndSpinning:
		g.drawSpinner(s)
	case anim.StateEndSpinningStartAnimating:
		g.drawSpinner(s)
		if g.engine.IsDrawingValueArcWhileSpinning() {
			g.drawValue(s, degrees)
		}
	default:
		g.drawValue(s, degrees)
	}
}

func (g *Gauge) drawSpinner(s Surface) {
	length := g.engine.SpinnerArcLength()
	if length < 0 {
		length = 1
	}
	start := g.engine.SpinnerSweepAngle() - 90 - length
	s.DrawArc(g.bounds.Circle, start, length, ArcSpinner)
}

func (g *Gauge) drawValue(s Surface, degrees float64) {
	s.DrawArc(g.bounds.Circle, -90, degrees, ArcBar)

	text := g.displayText()
	g.layoutText(text)

	if g.layout.TextSize > 0 {
		s.DrawText(text, g.layout.Text, g.layout.TextSize, TextValue)
	}
	if g.layout.HasUnit && g.layout.UnitSize > 0 {
		s.DrawText(g.style.Unit, g.layout.Unit, g.layout.UnitSize, TextUnit)
	}
}

// displayText returns the string shown in the middle of the gauge: the
// fixed text when configured, otherwise the current value formatted as a
// percentage or raw integer.
func (g *Gauge) displayText() string {
	if g.style.Text != "" {
		return g.style.Text
	}
	if g.style.ShowPercent {
		return strconv.Itoa(int(100 / g.engine.MaxValue() * g.engine.CurrentValue()))
	}
	return strconv.Itoa(int(g.engine.CurrentValue()))
}

// layoutText resolves font sizes and placement, but only when the text
// length actually changed since the last frame.
func (g *Gauge) layoutText(text string) {
	if len(text) == g.textLen {
		return
	}
	g.textLen = len(text)

	if g.style.AutoTextSize {
		fit := geometry.AutoFit{
			Measurer:         g.measurer,
			BaseSize:         baseFontSize,
			TextScale:        g.style.TextScale,
			UnitScale:        g.style.UnitScale,
			RelativeUnitSize: g.style.RelativeUnitSize,
		}
		g.layout = fit.Layout(text, g.style.Unit, g.textRegion, g.style.ShowUnit)
		return
	}

	fit := geometry.FixedFit{
		Measurer: g.measurer,
		TextSize: g.style.TextSize,
		UnitSize: g.style.UnitSize,
	}
	g.layout = fit.Layout(text, g.style.Unit, g.bounds.Circle, g.bounds.InnerCircle, g.style.ShowUnit)
}

func (g *Gauge) invalidateLayout() {
	g.textLen = 0
	g.layout = geometry.TextLayout{}
}

func (g *Gauge) metrics() geometry.Metrics {
	return geometry.Metrics{
		BarWidth:      g.style.BarWidth,
		RimWidth:      g.style.RimWidth,
		ContourSize:   g.style.ContourSize,
		PaddingLeft:   g.style.Padding,
		PaddingTop:    g.style.Padding,
		PaddingRight:  g.style.Padding,
		PaddingBottom: g.style.Padding,
	}
}

// baseFontSize is the reference size auto-fit scales from; the absolute
// value is irrelevant as long as it is positive.
const baseFontSize = 10
