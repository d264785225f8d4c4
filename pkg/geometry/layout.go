package geometry

import (
	"math"
	"strings"
)

const (
	// unitGapFactor widens the space reserved between the value text and
	// the unit string slightly beyond the unit's own share.
	unitGapFactor = 1.03

	// Aspect correction applied to the inner text region when a unit
	// shares it: narrower horizontally, taller vertically, so the
	// combined block centers well inside the circle.
	unitRegionScaleX = 0.77
	unitRegionScaleY = 1.33

	// singleCharInset narrows the text region for one-character strings,
	// which otherwise look lost in the full region.
	singleCharInset = 0.1

	// fixedUnitGapFrac sizes the gap between value and unit text in
	// fixed-size mode, as a fraction of the inner circle width.
	fixedUnitGapFrac = 0.05
)

// Metrics holds the stroke and padding inputs that shape the circle.
type Metrics struct {
	BarWidth    float64
	RimWidth    float64
	ContourSize float64

	PaddingLeft   float64
	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
}

// Bounds is the full set of rectangles a frame is drawn into.
type Bounds struct {
	// Circle is the stroke path of the progress arc and rim.
	Circle Rect
	// InnerCircle bounds the filled background circle.
	InnerCircle Rect
	// OuterContour and InnerContour flank the rim.
	OuterContour Rect
	InnerContour Rect
	// Center of the circle.
	Center Point
}

// DeriveBounds computes the drawing rectangles for a surface of the given
// size. The content region is squared off and centered first, so the
// circle never degenerates into an ellipse. Collapsed or unmeasured
// surfaces yield the zero Bounds.
func DeriveBounds(width, height float64, m Metrics) Bounds {
	innerW := width - m.PaddingLeft - m.PaddingRight
	innerH := height - m.PaddingTop - m.PaddingBottom
	side := math.Min(innerW, innerH)
	if side <= 2*m.BarWidth {
		return Bounds{}
	}

	// Split the slack evenly so the square content region stays centered.
	padLeft := m.PaddingLeft + (innerW-side)/2
	padTop := m.PaddingTop + (innerH-side)/2

	circle := NewRect(
		padLeft+m.BarWidth,
		padTop+m.BarWidth,
		padLeft+side-m.BarWidth,
		padTop+side-m.BarWidth,
	)
	inner := NewRect(
		padLeft+m.BarWidth*1.5,
		padTop+m.BarWidth*1.5,
		padLeft+side-m.BarWidth*1.5,
		padTop+side-m.BarWidth*1.5,
	)
	contour := m.RimWidth/2 + m.ContourSize/2

	return Bounds{
		Circle:       circle,
		InnerCircle:  inner,
		OuterContour: circle.Inset(-contour, -contour),
		InnerContour: circle.Inset(contour, contour),
		Center:       circle.Center(),
	}
}

// InnerTextRegion returns the largest axis-aligned rectangle inscribed in
// the circle, less the stroke and contour allowances. When a unit string
// will share the region an empirical aspect correction is applied so the
// combined text block fits. Degenerate circle bounds yield the zero Rect.
func InnerTextRegion(circle Rect, m Metrics, showUnit bool) Rect {
	if circle.IsEmpty() {
		return Rect{}
	}

	circleWidth := circle.Width() - math.Max(m.BarWidth, m.RimWidth) - 2*m.ContourSize
	side := circleWidth / 2 * math.Sqrt2
	delta := (circle.Width() - side) / 2

	scaleX, scaleY := 1.0, 1.0
	if showUnit {
		scaleX = unitRegionScaleX
		scaleY = unitRegionScaleY
	}

	r := circle.Inset(delta*scaleX, delta*scaleY)
	if r.IsEmpty() {
		return Rect{}
	}
	return r
}

// NarrowForSingleChar shrinks a text region horizontally for
// one-character strings.
func NarrowForSingleChar(region Rect) Rect {
	return region.Inset(region.Width()*singleCharInset, 0)
}

// BestFitSize returns the font size at which text fills the target
// rectangle: the text is measured at baseSize and uniformly scaled to fit,
// preserving aspect ratio. The digit '1' is normalized to '0' before
// measuring because many fonts render it narrower, which would make
// auto-sized text shift as digits change.
func BestFitSize(m Measurer, text string, baseSize float64, target Rect) float64 {
	if target.IsEmpty() || text == "" || baseSize <= 0 {
		return 0
	}

	normalized := strings.ReplaceAll(text, "1", "0")
	bounds := m.TextBounds(normalized, baseSize)
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return 0
	}

	scale := math.Min(target.Width()/bounds.Width(), target.Height()/bounds.Height())
	return baseSize * scale
}

// CenteredTextRect measures text at the given size and centers its
// bounding box within bounds.
func CenteredTextRect(m Measurer, text string, size float64, bounds Rect) Rect {
	tb := m.TextBounds(text, size)
	left := bounds.Left + (bounds.Width()-tb.Width())/2
	top := bounds.Top + (bounds.Height()-tb.Height())/2
	return NewRect(left, top, left+tb.Width(), top+tb.Height())
}

// TextLayout is the resolved placement of the value text and, optionally,
// its unit.
type TextLayout struct {
	TextSize float64
	Text     Rect

	HasUnit  bool
	UnitSize float64
	Unit     Rect
}

// AutoFit computes the layout when font sizes are derived from the
// available region. The unit, when shown, is scaled relative to the value
// text and laid out in a strip reserved on the right.
type AutoFit struct {
	Measurer         Measurer
	BaseSize         float64
	TextScale        float64
	UnitScale        float64
	RelativeUnitSize float64
}

// Layout fits the value text and optional unit inside the region.
func (a AutoFit) Layout(text, unit string, region Rect, showUnit bool) TextLayout {
	if region.IsEmpty() || text == "" {
		return TextLayout{}
	}
	if len([]rune(text)) == 1 {
		region = NarrowForSingleChar(region)
	}

	textRect := region
	if showUnit {
		// Reserve trailing space for the unit.
		textRect.Right = region.Right - region.Width()*a.RelativeUnitSize*unitGapFactor
	}

	size := BestFitSize(a.Measurer, text, a.BaseSize, textRect) * a.textScale()
	out := TextLayout{
		TextSize: size,
		Text:     CenteredTextRect(a.Measurer, text, size, textRect),
	}
	if !showUnit {
		return out
	}

	unitRect := region
	unitRect.Left = region.Left + region.Width()*(1-a.RelativeUnitSize)*unitGapFactor
	out.HasUnit = true
	out.UnitSize = BestFitSize(a.Measurer, unit, a.BaseSize, unitRect) * a.unitScale()
	out.Unit = CenteredTextRect(a.Measurer, unit, out.UnitSize, unitRect)

	// Align the unit with the top of the value text.
	out.Unit = out.Unit.Offset(0, out.Text.Top-out.Unit.Top)
	return out
}

func (a AutoFit) textScale() float64 {
	if a.TextScale <= 0 {
		return 1
	}
	return a.TextScale
}

func (a AutoFit) unitScale() float64 {
	if a.UnitScale <= 0 {
		return 1
	}
	return a.UnitScale
}

// FixedFit computes the layout for configured font sizes. The pair is
// centered as a block: the value shifts left to make room and the unit
// sits right of it with a gap proportional to the inner circle width.
type FixedFit struct {
	Measurer Measurer
	TextSize float64
	UnitSize float64
}

// Layout centers the value text in the circle bounds, placing the unit to
// its right.
func (f FixedFit) Layout(text, unit string, circle, innerCircle Rect, showUnit bool) TextLayout {
	if circle.IsEmpty() || text == "" {
		return TextLayout{}
	}

	out := TextLayout{
		TextSize: f.TextSize,
		Text:     CenteredTextRect(f.Measurer, text, f.TextSize, circle),
	}
	if !showUnit {
		return out
	}

	gap := innerCircle.Width() * fixedUnitGapFrac
	unitRect := CenteredTextRect(f.Measurer, unit, f.UnitSize, circle)

	// Shift the value left by half the unit's footprint so the block
	// stays visually centered.
	out.Text = out.Text.Offset(-(unitRect.Width()/2 + gap/2), 0)

	unitRect = unitRect.Offset(out.Text.Right-unitRect.Left+gap, 0)
	unitRect = unitRect.Offset(0, out.Text.Top-unitRect.Top)

	out.HasUnit = true
	out.UnitSize = f.UnitSize
	out.Unit = unitRect
	return out
}
