package gauge

import "github.com/windlass/ringview/pkg/geometry"

// ArcKind selects which paint a surface applies to an arc.
type ArcKind int

const (
	ArcFill ArcKind = iota
	ArcRim
	ArcContour
	ArcBar
	ArcSpinner
)

// TextKind selects which paint a surface applies to a text run.
type TextKind int

const (
	TextValue TextKind = iota
	TextUnit
)

// Surface is the drawing target the gauge renders onto. Implementations
// own all paint and pixel concerns; the gauge only decides what to draw
// and where.
//
// Angles follow screen convention: 0 degrees at 3 o'clock, increasing
// clockwise, so the gauge's 12 o'clock anchor is -90.
type Surface interface {
	// Size returns the drawable extent in surface units.
	Size() (width, height float64)

	// DrawArc strokes an arc along the oval inscribed in bounds.
	DrawArc(bounds geometry.Rect, startDeg, sweepDeg float64, kind ArcKind)

	// DrawText draws text inside rect at the given font size.
	DrawText(text string, rect geometry.Rect, size float64, kind TextKind)
}
